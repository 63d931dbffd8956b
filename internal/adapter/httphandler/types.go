package httphandler

import "github.com/niksmo/storefront-session/internal/core/domain"

type (
	Product struct {
		ProductID      string         `json:"product_id"`
		Name           string         `json:"name"`
		SKU            string         `json:"sku,omitempty"`
		Brand          string         `json:"brand"`
		Category       string         `json:"category"`
		Origin         string         `json:"origin,omitempty"`
		Description    string         `json:"description,omitempty"`
		Price          ProductPrice   `json:"price"`
		OriginalPrice  *ProductPrice  `json:"original_price,omitempty"`
		Rating         float64        `json:"rating"`
		ReviewCount    int            `json:"review_count"`
		Badge          string         `json:"badge,omitempty"`
		AvailableStock int            `json:"available_stock"`
		Images         []ProductImage `json:"images,omitempty"`
	}

	ProductPrice struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}

	ProductImage struct {
		URL string `json:"url"`
		Alt string `json:"alt,omitempty"`
	}

	CartItem struct {
		Product   Product      `json:"product"`
		Quantity  int          `json:"quantity"`
		LineTotal ProductPrice `json:"line_total"`
	}

	CartView struct {
		Items     []CartItem   `json:"items"`
		Total     ProductPrice `json:"total"`
		UnitCount int          `json:"unit_count"`
		LineCount int          `json:"line_count"`
	}

	ProductsView struct {
		Items []Product `json:"items"`
	}

	OverlayView struct {
		CartDrawerOpen bool     `json:"cart_drawer_open"`
		SearchOpen     bool     `json:"search_open"`
		QuickView      *Product `json:"quick_view,omitempty"`
	}

	AddCartItem struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}

	UpdateCartItem struct {
		Quantity int `json:"quantity"`
	}

	AddItem struct {
		ProductID string `json:"product_id"`
	}
)

func toProduct(p domain.Product) (v Product) {
	v.ProductID = p.ProductID
	v.Name = p.Name
	v.SKU = p.SKU
	v.Brand = p.Brand
	v.Category = p.Category
	v.Origin = p.Origin
	v.Description = p.Description
	v.Price = ProductPrice{Amount: p.Price.Amount, Currency: p.Price.Currency}
	if !p.OriginalPrice.IsZero() {
		v.OriginalPrice = &ProductPrice{
			Amount:   p.OriginalPrice.Amount,
			Currency: p.OriginalPrice.Currency,
		}
	}
	v.Rating = p.Rating
	v.ReviewCount = p.ReviewCount
	v.Badge = p.Badge
	v.AvailableStock = p.AvailableStock

	for _, img := range p.Images {
		v.Images = append(v.Images, ProductImage{URL: img.URL, Alt: img.Alt})
	}
	return v
}

func toProductsView(ps []domain.Product) ProductsView {
	v := ProductsView{Items: make([]Product, len(ps))}
	for i, p := range ps {
		v.Items[i] = toProduct(p)
	}
	return v
}

func toCartItem(it domain.CartItem) CartItem {
	lineUnits := it.Product.Price.MinorUnits() * int64(it.Quantity)
	lineTotal := domain.PriceFromMinorUnits(lineUnits, it.Product.Price.Currency)
	return CartItem{
		Product:  toProduct(it.Product),
		Quantity: it.Quantity,
		LineTotal: ProductPrice{
			Amount:   lineTotal.Amount,
			Currency: lineTotal.Currency,
		},
	}
}
