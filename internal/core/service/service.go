package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/storefront-session/internal/core/domain"
	"github.com/niksmo/storefront-session/internal/core/port"
)

var _ port.CartOperator = (*SessionService)(nil)
var _ port.WishlistOperator = (*SessionService)(nil)
var _ port.CompareOperator = (*SessionService)(nil)
var _ port.ProductViewer = (*SessionService)(nil)
var _ port.OverlayOperator = (*SessionService)(nil)

// A SessionService fronts the session store for UI consumers:
// it resolves product ids against the catalog read model, applies
// the store mutation and emits a shopper event. Catalog misses are
// no-ops for the store, so consumers never see an error.
type SessionService struct {
	store     *Store
	catalog   port.CatalogReader
	events    port.EventsProducer
	sessionID string
}

func NewSessionService(
	store *Store,
	catalog port.CatalogReader,
	events port.EventsProducer,
	sessionID string,
) SessionService {
	return SessionService{
		store:     store,
		catalog:   catalog,
		events:    events,
		sessionID: sessionID,
	}
}

func (s SessionService) AddToCart(ctx context.Context, productID string, quantity int) {
	const op = "SessionService.AddToCart"

	p, ok := s.resolve(ctx, productID, op)
	if !ok {
		return
	}
	s.store.AddToCart(p, quantity)
	s.produce(ctx, domain.EventCartAdded, p, quantity)
}

func (s SessionService) UpdateCartQuantity(productID string, quantity int) {
	s.store.UpdateCartQuantity(productID, quantity)
}

func (s SessionService) RemoveFromCart(productID string) {
	p, ok := s.cartProduct(productID)
	s.store.RemoveFromCart(productID)
	if ok {
		s.produce(context.Background(), domain.EventCartRemoved, p, 0)
	}
}

func (s SessionService) AddToWishlist(ctx context.Context, productID string) {
	const op = "SessionService.AddToWishlist"

	p, ok := s.resolve(ctx, productID, op)
	if !ok {
		return
	}
	already := s.store.IsInWishlist(productID)
	s.store.AddToWishlist(p)
	if !already {
		s.produce(ctx, domain.EventWishlistAdded, p, 0)
	}
}

func (s SessionService) RemoveFromWishlist(productID string) {
	s.store.RemoveFromWishlist(productID)
}

func (s SessionService) AddToCompare(ctx context.Context, productID string) {
	const op = "SessionService.AddToCompare"

	p, ok := s.resolve(ctx, productID, op)
	if !ok {
		return
	}
	already := s.store.IsInCompare(productID) || s.store.CompareFull()
	s.store.AddToCompare(p)
	if !already {
		s.produce(ctx, domain.EventCompareAdded, p, 0)
	}
}

func (s SessionService) RemoveFromCompare(productID string) {
	s.store.RemoveFromCompare(productID)
}

func (s SessionService) ClearCompare() {
	s.store.ClearCompare()
}

// ViewProduct records a product view: the product is promoted in the
// recently-viewed history, becomes the quick-view target and a viewed
// event is emitted.
func (s SessionService) ViewProduct(ctx context.Context, productID string) {
	const op = "SessionService.ViewProduct"

	p, ok := s.resolve(ctx, productID, op)
	if !ok {
		return
	}
	s.store.AddToRecentlyViewed(p)
	s.store.OpenQuickView(p)
	s.produce(ctx, domain.EventProductViewed, p, 0)
}

func (s SessionService) CloseQuickView() {
	s.store.CloseQuickView()
}

func (s SessionService) ToggleCartDrawer() {
	s.store.ToggleCartDrawer()
}

func (s SessionService) ToggleSearch() {
	s.store.ToggleSearch()
}

func (s SessionService) resolve(
	ctx context.Context, productID, op string,
) (domain.Product, bool) {
	log := slog.With("op", op)

	if productID == "" {
		return domain.Product{}, false
	}
	if s.catalog == nil {
		log.Warn("no catalog reader, operation skipped")
		return domain.Product{}, false
	}

	p, err := s.catalog.ReadProduct(ctx, productID)
	if err != nil {
		log.Warn("unknown product, operation skipped",
			"productID", productID, "err", err)
		return domain.Product{}, false
	}
	return p, true
}

func (s SessionService) produce(
	ctx context.Context, kind domain.ShopperEventKind, p domain.Product, quantity int,
) {
	const op = "SessionService.produce"

	if s.events == nil {
		return
	}

	evt := domain.ShopperEvent{
		SessionID: s.sessionID,
		Kind:      kind,
		ProductID: p.ProductID,
		Name:      p.Name,
		Brand:     p.Brand,
		Price:     p.Price,
		Quantity:  quantity,
		UnixMilli: time.Now().UnixMilli(),
	}
	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce shopper event", "op", op, "err", err)
	}
}

func (s SessionService) cartProduct(productID string) (domain.Product, bool) {
	for _, it := range s.store.Cart() {
		if it.Product.ProductID == productID {
			return it.Product, true
		}
	}
	return domain.Product{}, false
}
