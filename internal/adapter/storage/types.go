package storage

import "github.com/niksmo/storefront-session/internal/core/domain"

// Persisted snapshot layout. Display fields are cached next to the
// product id so surfaces can render without a live catalog fetch;
// stale price data until the next catalog read is accepted.

type (
	sessionSnapshotV1 struct {
		Cart           []cartItemV1 `json:"cart"`
		Wishlist       []productV1  `json:"wishlist"`
		Compare        []productV1  `json:"compare_products"`
		RecentlyViewed []productV1  `json:"recently_viewed"`
	}

	cartItemV1 struct {
		Product  productV1 `json:"product"`
		Quantity int       `json:"quantity"`
	}

	productV1 struct {
		ProductID      string    `json:"product_id"`
		Name           string    `json:"name"`
		SKU            string    `json:"sku,omitempty"`
		Brand          string    `json:"brand"`
		Category       string    `json:"category"`
		Origin         string    `json:"origin,omitempty"`
		Description    string    `json:"description,omitempty"`
		Price          priceV1   `json:"price"`
		OriginalPrice  priceV1   `json:"original_price"`
		Rating         float64   `json:"rating"`
		ReviewCount    int       `json:"review_count"`
		Badge          string    `json:"badge,omitempty"`
		AvailableStock int       `json:"available_stock"`
		Images         []imageV1 `json:"images,omitempty"`
	}

	priceV1 struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}

	imageV1 struct {
		URL string `json:"url"`
		Alt string `json:"alt,omitempty"`
	}
)

func toSnapshotV1(s domain.SessionSnapshot) (v sessionSnapshotV1) {
	for _, it := range s.Cart {
		v.Cart = append(v.Cart, cartItemV1{
			Product:  toProductV1(it.Product),
			Quantity: it.Quantity,
		})
	}
	v.Wishlist = toProductsV1(s.Wishlist)
	v.Compare = toProductsV1(s.Compare)
	v.RecentlyViewed = toProductsV1(s.RecentlyViewed)
	return v
}

func (v sessionSnapshotV1) toDomain() (s domain.SessionSnapshot) {
	for _, it := range v.Cart {
		s.Cart = append(s.Cart, domain.CartItem{
			Product:  it.Product.toDomain(),
			Quantity: it.Quantity,
		})
	}
	s.Wishlist = toDomainProducts(v.Wishlist)
	s.Compare = toDomainProducts(v.Compare)
	s.RecentlyViewed = toDomainProducts(v.RecentlyViewed)
	return s
}

func toProductsV1(ps []domain.Product) (vs []productV1) {
	for _, p := range ps {
		vs = append(vs, toProductV1(p))
	}
	return vs
}

func toDomainProducts(vs []productV1) (ps []domain.Product) {
	for _, v := range vs {
		ps = append(ps, v.toDomain())
	}
	return ps
}

func toProductV1(p domain.Product) (v productV1) {
	v.ProductID = p.ProductID
	v.Name = p.Name
	v.SKU = p.SKU
	v.Brand = p.Brand
	v.Category = p.Category
	v.Origin = p.Origin
	v.Description = p.Description
	v.Price = priceV1{Amount: p.Price.Amount, Currency: p.Price.Currency}
	v.OriginalPrice = priceV1{
		Amount:   p.OriginalPrice.Amount,
		Currency: p.OriginalPrice.Currency,
	}
	v.Rating = p.Rating
	v.ReviewCount = p.ReviewCount
	v.Badge = p.Badge
	v.AvailableStock = p.AvailableStock

	for _, img := range p.Images {
		v.Images = append(v.Images, imageV1{URL: img.URL, Alt: img.Alt})
	}
	return v
}

func (v productV1) toDomain() (p domain.Product) {
	p.ProductID = v.ProductID
	p.Name = v.Name
	p.SKU = v.SKU
	p.Brand = v.Brand
	p.Category = v.Category
	p.Origin = v.Origin
	p.Description = v.Description
	p.Price = domain.ProductPrice{
		Amount:   v.Price.Amount,
		Currency: v.Price.Currency,
	}
	p.OriginalPrice = domain.ProductPrice{
		Amount:   v.OriginalPrice.Amount,
		Currency: v.OriginalPrice.Currency,
	}
	p.Rating = v.Rating
	p.ReviewCount = v.ReviewCount
	p.Badge = v.Badge
	p.AvailableStock = v.AvailableStock

	for _, img := range v.Images {
		p.Images = append(p.Images, domain.ProductImage{URL: img.URL, Alt: img.Alt})
	}
	return p
}
