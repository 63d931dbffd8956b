package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/niksmo/storefront-session/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogReader struct {
	mock.Mock
}

func (m *MockCatalogReader) ReadProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogReader) SearchProducts(
	ctx context.Context, name string, limit int,
) ([]domain.Product, error) {
	args := m.Called(ctx, name, limit)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogReader) ListNewest(
	ctx context.Context, limit int,
) ([]domain.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Product), args.Error(1)
}

type fakeEventsProducer struct {
	mu     sync.Mutex
	events []domain.ShopperEvent
	err    error
}

func (f *fakeEventsProducer) ProduceEvent(
	_ context.Context, evt domain.ShopperEvent,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeEventsProducer) produced() []domain.ShopperEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events
}

func newTestService(
	t *testing.T, catalog *MockCatalogReader, events *fakeEventsProducer,
) (SessionService, *Store) {
	t.Helper()
	store := NewStore(context.Background(), nil, StoreConfig{})
	svc := NewSessionService(store, catalog, events, "testSessionID")
	return svc, store
}

func TestSessionServiceAddToCart(t *testing.T) {
	t.Run("KnownProduct", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		events := &fakeEventsProducer{}
		svc, store := newTestService(t, catalog, events)

		p := testProduct("p1", 12.99)
		catalog.On("ReadProduct", mock.Anything, "p1").Return(p, nil)

		svc.AddToCart(t.Context(), "p1", 2)

		cart := store.Cart()
		require.Len(t, cart, 1)
		assert.Equal(t, 2, cart[0].Quantity)

		evts := events.produced()
		require.Len(t, evts, 1)
		assert.Equal(t, domain.EventCartAdded, evts[0].Kind)
		assert.Equal(t, "testSessionID", evts[0].SessionID)
		assert.Equal(t, "p1", evts[0].ProductID)
		assert.Equal(t, 2, evts[0].Quantity)
	})

	t.Run("UnknownProductNoOp", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		events := &fakeEventsProducer{}
		svc, store := newTestService(t, catalog, events)

		catalog.On("ReadProduct", mock.Anything, "missing").
			Return(domain.Product{}, errors.New("not found"))

		svc.AddToCart(t.Context(), "missing", 1)

		assert.Empty(t, store.Cart())
		assert.Empty(t, events.produced())
	})

	t.Run("EmptyIDSkipsCatalog", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		events := &fakeEventsProducer{}
		svc, store := newTestService(t, catalog, events)

		svc.AddToCart(t.Context(), "", 1)

		assert.Empty(t, store.Cart())
		catalog.AssertNotCalled(t, "ReadProduct")
	})

	t.Run("ProducerErrorDoesNotBlockMutation", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		events := &fakeEventsProducer{err: errors.New("broker down")}
		svc, store := newTestService(t, catalog, events)

		p := testProduct("p1", 10)
		catalog.On("ReadProduct", mock.Anything, "p1").Return(p, nil)

		svc.AddToCart(t.Context(), "p1", 1)

		assert.Len(t, store.Cart(), 1)
	})
}

func TestSessionServiceRemoveFromCart(t *testing.T) {
	t.Run("EmitsRemovedEvent", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		events := &fakeEventsProducer{}
		svc, store := newTestService(t, catalog, events)

		p := testProduct("p1", 10)
		catalog.On("ReadProduct", mock.Anything, "p1").Return(p, nil)

		svc.AddToCart(t.Context(), "p1", 1)
		svc.RemoveFromCart("p1")

		assert.Empty(t, store.Cart())

		evts := events.produced()
		require.Len(t, evts, 2)
		assert.Equal(t, domain.EventCartRemoved, evts[1].Kind)
		assert.Equal(t, "p1", evts[1].ProductID)
	})

	t.Run("AbsentProductNoEvent", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		events := &fakeEventsProducer{}
		svc, _ := newTestService(t, catalog, events)

		svc.RemoveFromCart("missing")

		assert.Empty(t, events.produced())
	})
}

func TestSessionServiceWishlist(t *testing.T) {
	t.Run("RepeatAddSingleEvent", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		events := &fakeEventsProducer{}
		svc, store := newTestService(t, catalog, events)

		p := testProduct("w1", 5)
		catalog.On("ReadProduct", mock.Anything, "w1").Return(p, nil)

		svc.AddToWishlist(t.Context(), "w1")
		svc.AddToWishlist(t.Context(), "w1")

		assert.Len(t, store.Wishlist(), 1)

		evts := events.produced()
		require.Len(t, evts, 1)
		assert.Equal(t, domain.EventWishlistAdded, evts[0].Kind)
	})
}

func TestSessionServiceCompare(t *testing.T) {
	t.Run("NoEventWhenFull", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		events := &fakeEventsProducer{}
		svc, store := newTestService(t, catalog, events)

		for _, id := range []string{"a", "b", "c", "d", "e"} {
			catalog.On("ReadProduct", mock.Anything, id).
				Return(testProduct(id, 1), nil)
			svc.AddToCompare(t.Context(), id)
		}

		assert.Len(t, store.Compare(), DefaultCompareLimit)
		assert.Len(t, events.produced(), DefaultCompareLimit)
	})
}

func TestSessionServiceViewProduct(t *testing.T) {
	catalog := new(MockCatalogReader)
	events := &fakeEventsProducer{}
	svc, store := newTestService(t, catalog, events)

	p := testProduct("p1", 10)
	catalog.On("ReadProduct", mock.Anything, "p1").Return(p, nil)

	svc.ViewProduct(t.Context(), "p1")

	rv := store.RecentlyViewed()
	require.Len(t, rv, 1)
	assert.Equal(t, "p1", rv[0].ProductID)

	ov := store.Overlay()
	require.True(t, ov.HasQuickView)
	assert.Equal(t, "p1", ov.QuickView.ProductID)

	evts := events.produced()
	require.Len(t, evts, 1)
	assert.Equal(t, domain.EventProductViewed, evts[0].Kind)

	svc.CloseQuickView()
	assert.False(t, store.Overlay().HasQuickView)
}
