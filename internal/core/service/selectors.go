package service

// Derived selectors: pure read-only aggregates over the store state.
// Calling a selector twice with no intervening mutation returns
// identical results.

import "github.com/niksmo/storefront-session/internal/core/domain"

// CartTotal sums price x quantity over the cart lines, accumulating
// in integer minor units so the result is exact to the cent.
// A session is single-currency; the first line's currency is used.
func (s *Store) CartTotal() domain.ProductPrice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var units int64
	var currency string
	for _, it := range s.cart {
		if currency == "" {
			currency = it.Product.Price.Currency
		}
		units += it.Product.Price.MinorUnits() * int64(it.Quantity)
	}
	return domain.PriceFromMinorUnits(units, currency)
}

// CartUnitCount is the total unit quantity across all lines.
// This is the number storefront surfaces display on the cart badge.
func (s *Store) CartUnitCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for _, it := range s.cart {
		n += it.Quantity
	}
	return n
}

// CartLineCount is the number of distinct cart lines.
func (s *Store) CartLineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cart)
}

// IsInCart reports cart membership by product id.
func (s *Store) IsInCart(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cartIndex(s.cart, productID) >= 0
}

// IsInWishlist reports wishlist membership by product id.
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return productIndex(s.wishlist, productID) >= 0
}

// IsInCompare reports compare-set membership by product id.
func (s *Store) IsInCompare(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return productIndex(s.compare, productID) >= 0
}

// CompareFull reports whether the compare set is at capacity.
func (s *Store) CompareFull() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.compare) >= s.cfg.CompareLimit
}
