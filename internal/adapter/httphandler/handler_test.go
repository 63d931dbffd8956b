package httphandler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/storefront-session/internal/adapter/httphandler"
	"github.com/niksmo/storefront-session/internal/core/domain"
	"github.com/niksmo/storefront-session/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	products map[string]domain.Product
}

func (c stubCatalog) ReadProduct(
	_ context.Context, productID string,
) (domain.Product, error) {
	p, ok := c.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %q not found", productID)
	}
	return p, nil
}

func (c stubCatalog) SearchProducts(
	context.Context, string, int,
) ([]domain.Product, error) {
	return nil, nil
}

func (c stubCatalog) ListNewest(context.Context, int) ([]domain.Product, error) {
	return nil, nil
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	catalog := stubCatalog{products: map[string]domain.Product{
		"p1": {
			ProductID: "p1",
			Name:      "testName",
			Price:     domain.ProductPrice{Amount: 12.99, Currency: "RUB"},
		},
		"p2": {
			ProductID: "p2",
			Name:      "testName2",
			Price:     domain.ProductPrice{Amount: 8.50, Currency: "RUB"},
		},
	}}

	store := service.NewStore(t.Context(), nil, service.StoreConfig{})
	session := service.NewSessionService(store, catalog, nil, "testSessionID")

	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, session, store)
	httphandler.RegisterWishlist(mux, session, store)
	httphandler.RegisterCompare(mux, session, store)
	httphandler.RegisterRecentlyViewed(mux, session, store)
	httphandler.RegisterOverlay(mux, session, session, store)
	return mux
}

func doRequest(
	t *testing.T, mux *http.ServeMux, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestCartEndpoints(t *testing.T) {
	t.Run("PostAndGet", func(t *testing.T) {
		mux := newTestMux(t)

		w := doRequest(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": "p1", "quantity": 2}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": "p2", "quantity": 3}`)
		require.Equal(t, http.StatusOK, w.Code)

		var view httphandler.CartView
		err := json.Unmarshal(w.Body.Bytes(), &view)
		require.NoError(t, err)

		require.Len(t, view.Items, 2)
		assert.Equal(t, 5, view.UnitCount)
		assert.Equal(t, 2, view.LineCount)
		assert.InDelta(t, 51.48, view.Total.Amount, 0.0001)
		assert.Equal(t, "RUB", view.Total.Currency)
	})

	t.Run("PostUnknownProductKeepsCartEmpty", func(t *testing.T) {
		mux := newTestMux(t)

		w := doRequest(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": "missing", "quantity": 1}`)
		require.Equal(t, http.StatusOK, w.Code)

		var view httphandler.CartView
		err := json.Unmarshal(w.Body.Bytes(), &view)
		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})

	t.Run("PostWithoutProductID", func(t *testing.T) {
		mux := newTestMux(t)

		w := doRequest(t, mux, http.MethodPost, "/v1/cart/items",
			`{"quantity": 1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("PostInvalidJSON", func(t *testing.T) {
		mux := newTestMux(t)

		w := doRequest(t, mux, http.MethodPost, "/v1/cart/items", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("PatchZeroRemovesLine", func(t *testing.T) {
		mux := newTestMux(t)

		doRequest(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": "p1", "quantity": 2}`)

		w := doRequest(t, mux, http.MethodPatch, "/v1/cart/items/p1",
			`{"quantity": 0}`)
		require.Equal(t, http.StatusOK, w.Code)

		var view httphandler.CartView
		err := json.Unmarshal(w.Body.Bytes(), &view)
		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})

	t.Run("DeleteItem", func(t *testing.T) {
		mux := newTestMux(t)

		doRequest(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": "p1", "quantity": 1}`)

		w := doRequest(t, mux, http.MethodDelete, "/v1/cart/items/p1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var view httphandler.CartView
		err := json.Unmarshal(w.Body.Bytes(), &view)
		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})
}

func TestCompareEndpoints(t *testing.T) {
	t.Run("ClearAll", func(t *testing.T) {
		mux := newTestMux(t)

		doRequest(t, mux, http.MethodPost, "/v1/compare/items",
			`{"product_id": "p1"}`)
		doRequest(t, mux, http.MethodPost, "/v1/compare/items",
			`{"product_id": "p2"}`)

		w := doRequest(t, mux, http.MethodDelete, "/v1/compare", "")
		require.Equal(t, http.StatusOK, w.Code)

		var view httphandler.ProductsView
		err := json.Unmarshal(w.Body.Bytes(), &view)
		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})
}

func TestOverlayEndpoints(t *testing.T) {
	t.Run("QuickViewLifecycle", func(t *testing.T) {
		mux := newTestMux(t)

		w := doRequest(t, mux, http.MethodPost, "/v1/overlay/quick-view",
			`{"product_id": "p1"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var view httphandler.OverlayView
		err := json.Unmarshal(w.Body.Bytes(), &view)
		require.NoError(t, err)
		require.NotNil(t, view.QuickView)
		assert.Equal(t, "p1", view.QuickView.ProductID)

		w = doRequest(t, mux, http.MethodDelete, "/v1/overlay/quick-view", "")
		require.Equal(t, http.StatusOK, w.Code)

		var closedView httphandler.OverlayView
		err = json.Unmarshal(w.Body.Bytes(), &closedView)
		require.NoError(t, err)
		assert.Nil(t, closedView.QuickView)

		rv := doRequest(t, mux, http.MethodGet, "/v1/recently-viewed", "")
		var rvView httphandler.ProductsView
		err = json.Unmarshal(rv.Body.Bytes(), &rvView)
		require.NoError(t, err)
		require.Len(t, rvView.Items, 1)
		assert.Equal(t, "p1", rvView.Items[0].ProductID)
	})

	t.Run("Toggles", func(t *testing.T) {
		mux := newTestMux(t)

		w := doRequest(
			t, mux, http.MethodPost, "/v1/overlay/cart-drawer/toggle", "")
		require.Equal(t, http.StatusOK, w.Code)

		var view httphandler.OverlayView
		err := json.Unmarshal(w.Body.Bytes(), &view)
		require.NoError(t, err)
		assert.True(t, view.CartDrawerOpen)
		assert.False(t, view.SearchOpen)
	})
}
