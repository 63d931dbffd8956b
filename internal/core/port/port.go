package port

import (
	"context"

	"github.com/niksmo/storefront-session/internal/core/domain"
)

// SnapshotStorage persists the session snapshot between runs.
type SnapshotStorage interface {
	LoadSnapshot(context.Context) (domain.SessionSnapshot, error)
	SaveSnapshot(context.Context, domain.SessionSnapshot) error
}

// CatalogReader resolves product records from the catalog read model.
type CatalogReader interface {
	ReadProduct(ctx context.Context, productID string) (domain.Product, error)
	SearchProducts(ctx context.Context, name string, limit int) ([]domain.Product, error)
	ListNewest(ctx context.Context, limit int) ([]domain.Product, error)
}

// ProductsSaver accepts catalog records flowing in from the platform.
type ProductsSaver interface {
	SaveProducts(context.Context, []domain.Product) error
}

// ProductsStorage writes catalog records into the read model.
type ProductsStorage interface {
	StoreProducts(context.Context, []domain.Product) error
}

// EventsProducer emits shopper interaction events.
type EventsProducer interface {
	ProduceEvent(context.Context, domain.ShopperEvent) error
}

// CartOperator mutates the shopper's cart.
type CartOperator interface {
	AddToCart(ctx context.Context, productID string, quantity int)
	UpdateCartQuantity(productID string, quantity int)
	RemoveFromCart(productID string)
}

// WishlistOperator mutates the shopper's wishlist.
type WishlistOperator interface {
	AddToWishlist(ctx context.Context, productID string)
	RemoveFromWishlist(productID string)
}

// CompareOperator mutates the shopper's compare set.
type CompareOperator interface {
	AddToCompare(ctx context.Context, productID string)
	RemoveFromCompare(productID string)
	ClearCompare()
}

// ProductViewer records a product view: recently-viewed history,
// the quick-view overlay target and the viewed event.
type ProductViewer interface {
	ViewProduct(ctx context.Context, productID string)
	CloseQuickView()
}

// OverlayOperator flips the transient UI flags.
type OverlayOperator interface {
	ToggleCartDrawer()
	ToggleSearch()
}

// SessionReader exposes read-only session state and selectors.
type SessionReader interface {
	Cart() []domain.CartItem
	Wishlist() []domain.Product
	Compare() []domain.Product
	RecentlyViewed() []domain.Product
	Overlay() domain.Overlay
	CartTotal() domain.ProductPrice
	CartUnitCount() int
	CartLineCount() int
}
