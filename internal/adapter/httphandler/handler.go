package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront-session/internal/adapter/storage"
	"github.com/niksmo/storefront-session/internal/core/port"
)

const defaultCatalogLimit = 20

// Mutation handlers respond with the post-mutation collection, so a
// consumer always renders the state every other surface observes.
// Unknown product ids leave the state unchanged and still get 200.

type CartHandler struct {
	cart port.CartOperator
	view port.SessionReader
}

func RegisterCart(
	mux *http.ServeMux, cart port.CartOperator, view port.SessionReader,
) {
	h := CartHandler{cart, view}
	mux.HandleFunc("GET /v1/cart/items", h.GetItems)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
}

func (h CartHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetItems"
	writeJSON(w, op, h.cartView())
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var v AddCartItem
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if v.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	h.cart.AddToCart(r.Context(), v.ProductID, v.Quantity)
	writeJSON(w, op, h.cartView())
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	var v UpdateCartItem
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.cart.UpdateCartQuantity(r.PathValue("id"), v.Quantity)
	writeJSON(w, op, h.cartView())
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"

	h.cart.RemoveFromCart(r.PathValue("id"))
	writeJSON(w, op, h.cartView())
}

func (h CartHandler) cartView() CartView {
	items := h.view.Cart()
	total := h.view.CartTotal()

	v := CartView{
		Items:     make([]CartItem, len(items)),
		Total:     ProductPrice{Amount: total.Amount, Currency: total.Currency},
		UnitCount: h.view.CartUnitCount(),
		LineCount: h.view.CartLineCount(),
	}
	for i, it := range items {
		v.Items[i] = toCartItem(it)
	}
	return v
}

type WishlistHandler struct {
	wishlist port.WishlistOperator
	view     port.SessionReader
}

func RegisterWishlist(
	mux *http.ServeMux, wishlist port.WishlistOperator, view port.SessionReader,
) {
	h := WishlistHandler{wishlist, view}
	mux.HandleFunc("GET /v1/wishlist/items", h.GetItems)
	mux.HandleFunc("POST /v1/wishlist/items", h.PostItem)
	mux.HandleFunc("DELETE /v1/wishlist/items/{id}", h.DeleteItem)
}

func (h WishlistHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.GetItems"
	writeJSON(w, op, toProductsView(h.view.Wishlist()))
}

func (h WishlistHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.PostItem"

	id, ok := decodeAddItem(w, r, op)
	if !ok {
		return
	}
	h.wishlist.AddToWishlist(r.Context(), id)
	writeJSON(w, op, toProductsView(h.view.Wishlist()))
}

func (h WishlistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.DeleteItem"

	h.wishlist.RemoveFromWishlist(r.PathValue("id"))
	writeJSON(w, op, toProductsView(h.view.Wishlist()))
}

type CompareHandler struct {
	compare port.CompareOperator
	view    port.SessionReader
}

func RegisterCompare(
	mux *http.ServeMux, compare port.CompareOperator, view port.SessionReader,
) {
	h := CompareHandler{compare, view}
	mux.HandleFunc("GET /v1/compare/items", h.GetItems)
	mux.HandleFunc("POST /v1/compare/items", h.PostItem)
	mux.HandleFunc("DELETE /v1/compare/items/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/compare", h.DeleteAll)
}

func (h CompareHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	const op = "CompareHandler.GetItems"
	writeJSON(w, op, toProductsView(h.view.Compare()))
}

func (h CompareHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CompareHandler.PostItem"

	id, ok := decodeAddItem(w, r, op)
	if !ok {
		return
	}
	h.compare.AddToCompare(r.Context(), id)
	writeJSON(w, op, toProductsView(h.view.Compare()))
}

func (h CompareHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CompareHandler.DeleteItem"

	h.compare.RemoveFromCompare(r.PathValue("id"))
	writeJSON(w, op, toProductsView(h.view.Compare()))
}

func (h CompareHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	const op = "CompareHandler.DeleteAll"

	h.compare.ClearCompare()
	writeJSON(w, op, toProductsView(h.view.Compare()))
}

type RecentlyViewedHandler struct {
	viewer port.ProductViewer
	view   port.SessionReader
}

func RegisterRecentlyViewed(
	mux *http.ServeMux, viewer port.ProductViewer, view port.SessionReader,
) {
	h := RecentlyViewedHandler{viewer, view}
	mux.HandleFunc("GET /v1/recently-viewed", h.GetItems)
	mux.HandleFunc("POST /v1/recently-viewed", h.PostItem)
}

func (h RecentlyViewedHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	const op = "RecentlyViewedHandler.GetItems"
	writeJSON(w, op, toProductsView(h.view.RecentlyViewed()))
}

func (h RecentlyViewedHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "RecentlyViewedHandler.PostItem"

	id, ok := decodeAddItem(w, r, op)
	if !ok {
		return
	}
	h.viewer.ViewProduct(r.Context(), id)
	writeJSON(w, op, toProductsView(h.view.RecentlyViewed()))
}

type OverlayHandler struct {
	overlay port.OverlayOperator
	viewer  port.ProductViewer
	view    port.SessionReader
}

func RegisterOverlay(
	mux *http.ServeMux,
	overlay port.OverlayOperator,
	viewer port.ProductViewer,
	view port.SessionReader,
) {
	h := OverlayHandler{overlay, viewer, view}
	mux.HandleFunc("GET /v1/overlay", h.GetOverlay)
	mux.HandleFunc("POST /v1/overlay/cart-drawer/toggle", h.ToggleCartDrawer)
	mux.HandleFunc("POST /v1/overlay/search/toggle", h.ToggleSearch)
	mux.HandleFunc("POST /v1/overlay/quick-view", h.OpenQuickView)
	mux.HandleFunc("DELETE /v1/overlay/quick-view", h.CloseQuickView)
}

func (h OverlayHandler) GetOverlay(w http.ResponseWriter, r *http.Request) {
	const op = "OverlayHandler.GetOverlay"
	writeJSON(w, op, h.overlayView())
}

func (h OverlayHandler) ToggleCartDrawer(w http.ResponseWriter, r *http.Request) {
	const op = "OverlayHandler.ToggleCartDrawer"

	h.overlay.ToggleCartDrawer()
	writeJSON(w, op, h.overlayView())
}

func (h OverlayHandler) ToggleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "OverlayHandler.ToggleSearch"

	h.overlay.ToggleSearch()
	writeJSON(w, op, h.overlayView())
}

func (h OverlayHandler) OpenQuickView(w http.ResponseWriter, r *http.Request) {
	const op = "OverlayHandler.OpenQuickView"

	id, ok := decodeAddItem(w, r, op)
	if !ok {
		return
	}
	h.viewer.ViewProduct(r.Context(), id)
	writeJSON(w, op, h.overlayView())
}

func (h OverlayHandler) CloseQuickView(w http.ResponseWriter, r *http.Request) {
	const op = "OverlayHandler.CloseQuickView"

	h.viewer.CloseQuickView()
	writeJSON(w, op, h.overlayView())
}

func (h OverlayHandler) overlayView() OverlayView {
	o := h.view.Overlay()
	v := OverlayView{
		CartDrawerOpen: o.CartDrawerOpen,
		SearchOpen:     o.SearchOpen,
	}
	if o.HasQuickView {
		qv := toProduct(o.QuickView)
		v.QuickView = &qv
	}
	return v
}

type CatalogHandler struct {
	catalog port.CatalogReader
}

func RegisterCatalog(mux *http.ServeMux, catalog port.CatalogReader) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /v1/catalog/products", h.GetProducts)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	limit := defaultCatalogLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	ctx := r.Context()
	name := r.URL.Query().Get("name")

	var err error
	var view ProductsView
	if name != "" {
		ps, searchErr := h.catalog.SearchProducts(ctx, name, limit)
		view, err = toProductsView(ps), searchErr
	} else {
		ps, listErr := h.catalog.ListNewest(ctx, limit)
		view, err = toProductsView(ps), listErr
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, "catalog is unavailable", http.StatusServiceUnavailable)
		log.Error("failed to read catalog", "err", err)
		return
	}

	if len(view.Items) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, op, view)
}

func decodeAddItem(
	w http.ResponseWriter, r *http.Request, op string,
) (string, bool) {
	log := slog.With("op", op)

	var v AddItem
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return "", false
	}
	if v.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return "", false
	}
	return v.ProductID, true
}

func writeJSON(w http.ResponseWriter, op string, v any) {
	log := slog.With("op", op)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
