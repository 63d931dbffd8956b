package domain

type ShopperEventKind string

const (
	EventProductViewed ShopperEventKind = "product_viewed"
	EventCartAdded     ShopperEventKind = "cart_added"
	EventCartRemoved   ShopperEventKind = "cart_removed"
	EventWishlistAdded ShopperEventKind = "wishlist_added"
	EventCompareAdded  ShopperEventKind = "compare_added"
)

// A ShopperEvent describes one shopper interaction, produced
// fire-and-forget for downstream consumers.
type ShopperEvent struct {
	SessionID string
	Kind      ShopperEventKind
	ProductID string
	Name      string
	Brand     string
	Price     ProductPrice
	Quantity  int
	UnixMilli int64
}
