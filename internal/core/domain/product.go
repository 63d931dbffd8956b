package domain

import "math"

type (
	// A Product is a read-only catalog record.
	// The session never mutates product fields, it only keeps copies.
	Product struct {
		ProductID      string
		Name           string
		SKU            string
		Brand          string
		Category       string
		Origin         string
		Description    string
		Price          ProductPrice
		OriginalPrice  ProductPrice
		Rating         float64
		ReviewCount    int
		Badge          string
		AvailableStock int
		Images         []ProductImage
	}

	ProductPrice struct {
		Amount   float64
		Currency string
	}

	ProductImage struct {
		URL string
		Alt string
	}
)

// Valid reports whether the record carries a usable identifier.
func (p Product) Valid() bool {
	return p.ProductID != ""
}

// Normalize clamps fields coming from an external catalog record
// into the documented domain ranges.
func (p Product) Normalize() Product {
	p.Rating = min(max(p.Rating, 0), 5)
	if p.ReviewCount < 0 {
		p.ReviewCount = 0
	}
	if p.AvailableStock < 0 {
		p.AvailableStock = 0
	}
	return p
}

// PrimaryImage returns the first image or a zero value.
func (p Product) PrimaryImage() ProductImage {
	if len(p.Images) == 0 {
		return ProductImage{}
	}
	return p.Images[0]
}

// MinorUnits converts the amount to integer minor currency units,
// e.g. 12.99 -> 1299.
func (p ProductPrice) MinorUnits() int64 {
	return int64(math.Round(p.Amount * 100))
}

func (p ProductPrice) IsZero() bool {
	return p.Amount == 0 && p.Currency == ""
}

// PriceFromMinorUnits builds a price from integer minor units.
func PriceFromMinorUnits(units int64, currency string) ProductPrice {
	return ProductPrice{Amount: float64(units) / 100, Currency: currency}
}
