package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/niksmo/storefront-session/internal/core/domain"
	"github.com/niksmo/storefront-session/internal/core/port"
)

const (
	DefaultCompareLimit        = 4
	DefaultRecentlyViewedLimit = 12
)

// StoreConfig bounds the session collections.
type StoreConfig struct {
	CompareLimit        int
	RecentlyViewedLimit int
}

func (c *StoreConfig) normalize() {
	if c.CompareLimit <= 0 {
		c.CompareLimit = DefaultCompareLimit
	}
	if c.RecentlyViewedLimit <= 0 {
		c.RecentlyViewedLimit = DefaultRecentlyViewedLimit
	}
}

type listener struct {
	id int
	fn func()
}

// A Store is the single source of truth for one shopper session:
// cart, wishlist, compare set, recently-viewed history and the
// transient overlay flags.
//
// Every mutation runs to completion in the strict order
// mutate -> persist -> notify. Operations are total: malformed input
// and absent identifiers are no-ops, never errors. Accessors return
// copies; callers must not mutate retrieved state in place.
type Store struct {
	mu         sync.RWMutex
	cfg        StoreConfig
	storage    port.SnapshotStorage
	persistOff bool

	cart           []domain.CartItem
	wishlist       []domain.Product
	compare        []domain.Product
	recentlyViewed []domain.Product
	overlay        domain.Overlay

	listeners  []listener
	listenerID int
}

// NewStore constructs a session store and hydrates it from storage.
// A nil storage, a failed load or a malformed snapshot all yield an
// empty session; initialization never fails.
func NewStore(ctx context.Context, storage port.SnapshotStorage, cfg StoreConfig) *Store {
	const op = "Store.NewStore"
	log := slog.With("op", op)

	cfg.normalize()
	s := &Store{cfg: cfg, storage: storage}

	if storage == nil {
		log.Info("no snapshot storage, session is in-memory only")
		return s
	}

	snap, err := storage.LoadSnapshot(ctx)
	if err != nil {
		log.Warn("failed to load snapshot, starting empty", "err", err)
		return s
	}
	s.hydrate(snap)
	return s
}

// Subscribe registers fn to run synchronously after each
// state-changing mutation and returns the unsubscribe function.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listenerID++
	id := s.listenerID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// AddToCart merges the product into the cart. Non-positive quantity
// is clamped to 1; an existing line has its quantity incremented.
func (s *Store) AddToCart(p domain.Product, quantity int) {
	p = p.Normalize()
	if !p.Valid() {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	s.apply(true, func() bool {
		if i := cartIndex(s.cart, p.ProductID); i >= 0 {
			s.cart[i].Quantity += quantity
			return true
		}
		s.cart = append(s.cart, domain.CartItem{Product: p, Quantity: quantity})
		return true
	})
}

// RemoveFromCart drops the line if present, a no-op otherwise.
func (s *Store) RemoveFromCart(productID string) {
	s.apply(true, func() bool {
		i := cartIndex(s.cart, productID)
		if i < 0 {
			return false
		}
		s.cart = append(s.cart[:i], s.cart[i+1:]...)
		return true
	})
}

// UpdateCartQuantity sets the line quantity. Quantity <= 0 removes
// the line entirely, matching RemoveFromCart.
func (s *Store) UpdateCartQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}
	s.apply(true, func() bool {
		i := cartIndex(s.cart, productID)
		if i < 0 {
			return false
		}
		if s.cart[i].Quantity == quantity {
			return false
		}
		s.cart[i].Quantity = quantity
		return true
	})
}

// AddToWishlist adds the product once. Re-adding neither duplicates
// nor reorders the entry.
func (s *Store) AddToWishlist(p domain.Product) {
	p = p.Normalize()
	if !p.Valid() {
		return
	}
	s.apply(true, func() bool {
		if productIndex(s.wishlist, p.ProductID) >= 0 {
			return false
		}
		s.wishlist = append(s.wishlist, p)
		return true
	})
}

func (s *Store) RemoveFromWishlist(productID string) {
	s.apply(true, func() bool {
		i := productIndex(s.wishlist, productID)
		if i < 0 {
			return false
		}
		s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
		return true
	})
}

// AddToCompare appends the product, keeping insertion order.
// Already-present products and additions beyond the capacity are
// silently ignored.
func (s *Store) AddToCompare(p domain.Product) {
	p = p.Normalize()
	if !p.Valid() {
		return
	}
	s.apply(true, func() bool {
		if productIndex(s.compare, p.ProductID) >= 0 {
			return false
		}
		if len(s.compare) >= s.cfg.CompareLimit {
			return false
		}
		s.compare = append(s.compare, p)
		return true
	})
}

func (s *Store) RemoveFromCompare(productID string) {
	s.apply(true, func() bool {
		i := productIndex(s.compare, productID)
		if i < 0 {
			return false
		}
		s.compare = append(s.compare[:i], s.compare[i+1:]...)
		return true
	})
}

func (s *Store) ClearCompare() {
	s.apply(true, func() bool {
		if len(s.compare) == 0 {
			return false
		}
		s.compare = nil
		return true
	})
}

// AddToRecentlyViewed promotes the product to the front of the
// history, de-duplicating a stale position and evicting the oldest
// entries beyond the capacity.
func (s *Store) AddToRecentlyViewed(p domain.Product) {
	p = p.Normalize()
	if !p.Valid() {
		return
	}
	s.apply(true, func() bool {
		if i := productIndex(s.recentlyViewed, p.ProductID); i >= 0 {
			s.recentlyViewed = append(s.recentlyViewed[:i], s.recentlyViewed[i+1:]...)
		}
		s.recentlyViewed = append([]domain.Product{p}, s.recentlyViewed...)
		if len(s.recentlyViewed) > s.cfg.RecentlyViewedLimit {
			s.recentlyViewed = s.recentlyViewed[:s.cfg.RecentlyViewedLimit]
		}
		return true
	})
}

func (s *Store) ToggleCartDrawer() {
	s.apply(false, func() bool {
		s.overlay.CartDrawerOpen = !s.overlay.CartDrawerOpen
		return true
	})
}

func (s *Store) ToggleSearch() {
	s.apply(false, func() bool {
		s.overlay.SearchOpen = !s.overlay.SearchOpen
		return true
	})
}

// OpenQuickView sets the single quick-view target.
func (s *Store) OpenQuickView(p domain.Product) {
	p = p.Normalize()
	if !p.Valid() {
		return
	}
	s.apply(false, func() bool {
		s.overlay.QuickView = p
		s.overlay.HasQuickView = true
		return true
	})
}

func (s *Store) CloseQuickView() {
	s.apply(false, func() bool {
		if !s.overlay.HasQuickView {
			return false
		}
		s.overlay.QuickView = domain.Product{}
		s.overlay.HasQuickView = false
		return true
	})
}

// Cart returns a copy of the cart lines.
func (s *Store) Cart() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCart(s.cart)
}

// Wishlist returns a copy of the wishlist entries.
func (s *Store) Wishlist() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.wishlist)
}

// Compare returns a copy of the compare set in insertion order.
func (s *Store) Compare() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.compare)
}

// RecentlyViewed returns a copy of the history, most recent first.
func (s *Store) RecentlyViewed() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.recentlyViewed)
}

// Overlay returns the current overlay flags.
func (s *Store) Overlay() domain.Overlay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlay
}

// Snapshot returns a copy of the persisted part of the state.
func (s *Store) Snapshot() domain.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// apply runs the mutation under the lock, persists the snapshot and
// notifies subscribers. Mutations reporting no change skip both.
func (s *Store) apply(persist bool, mutate func() bool) {
	s.mu.Lock()
	if !mutate() {
		s.mu.Unlock()
		return
	}
	if persist {
		s.persistLocked()
	}
	fns := make([]func(), len(s.listeners))
	for i, l := range s.listeners {
		fns[i] = l.fn
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Store) persistLocked() {
	const op = "Store.persist"

	if s.storage == nil || s.persistOff {
		return
	}
	err := s.storage.SaveSnapshot(context.Background(), s.snapshotLocked())
	if err != nil {
		slog.Warn(
			"failed to save snapshot, session continues in-memory only",
			"op", op, "err", err,
		)
		s.persistOff = true
	}
}

func (s *Store) snapshotLocked() domain.SessionSnapshot {
	return domain.SessionSnapshot{
		Cart:           cloneCart(s.cart),
		Wishlist:       cloneProducts(s.wishlist),
		Compare:        cloneProducts(s.compare),
		RecentlyViewed: cloneProducts(s.recentlyViewed),
	}
}

// hydrate applies a loaded snapshot, enforcing the same invariants
// as the mutation operations: de-duplication, positive quantities
// and collection bounds.
func (s *Store) hydrate(snap domain.SessionSnapshot) {
	seen := make(map[string]struct{})
	for _, it := range snap.Cart {
		p := it.Product.Normalize()
		if !p.Valid() || it.Quantity < 1 {
			continue
		}
		if _, ok := seen[p.ProductID]; ok {
			continue
		}
		seen[p.ProductID] = struct{}{}
		s.cart = append(s.cart, domain.CartItem{Product: p, Quantity: it.Quantity})
	}

	s.wishlist = dedupeProducts(snap.Wishlist, 0)
	s.compare = dedupeProducts(snap.Compare, s.cfg.CompareLimit)
	s.recentlyViewed = dedupeProducts(snap.RecentlyViewed, s.cfg.RecentlyViewedLimit)
}

func cartIndex(items []domain.CartItem, productID string) int {
	if productID == "" {
		return -1
	}
	for i, it := range items {
		if it.Product.ProductID == productID {
			return i
		}
	}
	return -1
}

func productIndex(ps []domain.Product, productID string) int {
	if productID == "" {
		return -1
	}
	for i, p := range ps {
		if p.ProductID == productID {
			return i
		}
	}
	return -1
}

func cloneCart(items []domain.CartItem) []domain.CartItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]domain.CartItem, len(items))
	copy(dup, items)
	return dup
}

func cloneProducts(ps []domain.Product) []domain.Product {
	if len(ps) == 0 {
		return nil
	}
	dup := make([]domain.Product, len(ps))
	copy(dup, ps)
	return dup
}

func dedupeProducts(ps []domain.Product, limit int) (out []domain.Product) {
	seen := make(map[string]struct{})
	for _, p := range ps {
		p = p.Normalize()
		if !p.Valid() {
			continue
		}
		if _, ok := seen[p.ProductID]; ok {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		seen[p.ProductID] = struct{}{}
		out = append(out, p)
	}
	return out
}
