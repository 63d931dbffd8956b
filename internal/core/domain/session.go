package domain

type (
	// A CartItem is a cart line: one product with a positive quantity.
	// A line with quantity reduced to zero is removed, never stored.
	CartItem struct {
		Product  Product
		Quantity int
	}

	// A SessionSnapshot is the persisted part of the session state.
	// Overlay flags are transient and excluded on purpose.
	SessionSnapshot struct {
		Cart           []CartItem
		Wishlist       []Product
		Compare        []Product
		RecentlyViewed []Product
	}

	// An Overlay holds transient UI flags shared by the storefront
	// surfaces: drawers, modals and the single quick-view target.
	Overlay struct {
		CartDrawerOpen bool
		SearchOpen     bool
		QuickView      Product
		HasQuickView   bool
	}
)

// IsEmpty reports whether the snapshot holds no shopping data.
func (s SessionSnapshot) IsEmpty() bool {
	return len(s.Cart) == 0 &&
		len(s.Wishlist) == 0 &&
		len(s.Compare) == 0 &&
		len(s.RecentlyViewed) == 0
}
