package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/abcshop/go-shop-core/internal/cart"
	"github.com/abcshop/go-shop-core/internal/inventory"
	"github.com/abcshop/go-shop-core/internal/orders"
	"github.com/abcshop/go-shop-core/internal/redisx"
)

// Handler marshals HTTP requests into the plain-value core operations. Auth
// and request validation live in front of it; everything here assumes an
// authenticated caller.
type Handler struct {
	Catalog  *inventory.Catalog
	Stock    *inventory.Coordinator
	Cart     *cart.Store
	Wishlist *cart.Wishlist
	Ledger   *orders.Ledger
	Redis    *redis.Client // optional read cache
	Service  string
}

func (h *Handler) Register(r *chi.Mux) {
	r.Post("/products", h.addProducts)
	r.Get("/products", h.listProducts)
	r.Delete("/products/{id}", h.removeProduct)
	r.Patch("/products/{id}/price", h.updatePrice)
	r.Get("/products/{id}/stock", h.getStock)

	r.Post("/cart/items", h.addCartItem)
	r.Delete("/cart/items", h.removeCartItem)
	r.Get("/cart", h.getCart)

	r.Post("/wishlist/items", h.addWishlistItem)
	r.Delete("/wishlist/items", h.removeWishlistItem)
	r.Get("/wishlist", h.getWishlist)

	r.Post("/orders", h.placeOrder)
	r.Post("/orders/{id}/cancel", h.cancelOrder)
	r.Post("/orders/{id}/status", h.advanceStatus)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/orders", h.listOrders)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps the core error taxonomy onto status codes. Expected
// conditions (duplicates, stock, state machine) are conflicts; malformed
// identifiers and enums are bad requests.
func writeErr(w http.ResponseWriter, err error) {
	var (
		insufficient *inventory.InsufficientStockError
		unknownEnum  *inventory.UnknownEnumError
		transition   *orders.InvalidTransitionError
	)
	switch {
	// RejectedError wraps the stock failure, so errors.As reaches through it.
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": fmt.Sprintf("insufficient stock, only %d available", insufficient.Available),
		})
	case errors.Is(err, inventory.ErrNotFound), errors.Is(err, orders.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, orders.ErrAlreadyCancelled):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "order already cancelled"})
	case errors.Is(err, cart.ErrOutOfStock),
		errors.Is(err, cart.ErrDuplicateItem),
		errors.Is(err, inventory.ErrDuplicateProduct),
		errors.As(err, &transition):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.As(err, &unknownEnum),
		errors.Is(err, inventory.ErrInvalidPage),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrInvalidPrice):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// ---- catalog ----

type addProductsResp struct {
	Added   []inventory.Product `json:"added"`
	Skipped []skippedProduct    `json:"skipped,omitempty"`
}

type skippedProduct struct {
	Product inventory.Product `json:"product"`
	Reason  string            `json:"reason"`
}

func (h *Handler) addProducts(w http.ResponseWriter, r *http.Request) {
	var req []inventory.Product
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if len(req) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing products"})
		return
	}

	results := h.Catalog.AddProducts(req)
	var resp addProductsResp
	for _, res := range results {
		if res.Err != nil {
			resp.Skipped = append(resp.Skipped, skippedProduct{Product: res.Product, Reason: res.Err.Error()})
			continue
		}
		resp.Added = append(resp.Added, res.Product)
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	category, err := inventory.CategoryOf(queryInt(r, "category", 0))
	if err != nil {
		writeErr(w, err)
		return
	}
	products, err := h.Catalog.ListByCategory(category, queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) removeProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	category, err := inventory.CategoryOf(queryInt(r, "category", 0))
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := h.Catalog.Remove(id, category); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updatePrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	var req struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := h.Catalog.UpdatePrice(id, req.Price); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getStock serves the advisory availability read. It tries the redis snapshot
// first and falls back to the coordinator.
func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyStockQty, id)
		if qty, err := h.Redis.Get(r.Context(), key).Int(); err == nil {
			writeJSON(w, http.StatusOK, map[string]int{"product_id": id, "quantity": qty})
			return
		}
	}
	qty, err := h.Stock.CheckAvailable(id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"product_id": id, "quantity": qty})
}

// ---- cart & wishlist ----

type itemReq struct {
	UserID    int `json:"user_id"`
	ProductID int `json:"product_id"`
	Category  int `json:"category"`
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req itemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	category, err := inventory.CategoryOf(req.Category)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := h.Cart.AddItem(req.UserID, req.ProductID, category); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	h.Cart.RemoveItem(queryInt(r, "user_id", 0), queryInt(r, "product_id", 0))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.Cart.GetCart(queryInt(r, "user_id", 0), queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) addWishlistItem(w http.ResponseWriter, r *http.Request) {
	var req itemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	category, err := inventory.CategoryOf(req.Category)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := h.Wishlist.Add(req.UserID, req.ProductID, category); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) removeWishlistItem(w http.ResponseWriter, r *http.Request) {
	h.Wishlist.Remove(queryInt(r, "user_id", 0), queryInt(r, "product_id", 0))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.Wishlist.List(queryInt(r, "user_id", 0), queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ---- orders ----

type placeOrderReq struct {
	UserID      int    `json:"user_id"`
	ProductID   int    `json:"product_id"`
	Quantity    int    `json:"quantity"`
	Address     string `json:"address"`
	PaymentMode int    `json:"payment_mode"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	mode, err := orders.PaymentModeOf(req.PaymentMode)
	if err != nil {
		writeErr(w, err)
		return
	}
	order, err := h.Ledger.PlaceOrder(req.UserID, req.ProductID, req.Quantity, req.Address, mode)
	if err != nil {
		writeErr(w, err)
		return
	}
	// Checkout success empties the cart entry for this product.
	h.Cart.RemoveItem(req.UserID, req.ProductID)
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Ledger.CancelOrder(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) advanceStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status int `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	next, err := orders.StatusOf(req.Status)
	if err != nil {
		writeErr(w, err)
		return
	}
	order, err := h.Ledger.AdvanceStatus(chi.URLParam(r, "id"), next)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	// Cached status first, full order on miss.
	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		if s, err := h.Redis.Get(r.Context(), key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}
	order, err := h.Ledger.GetOrder(orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	out, err := h.Ledger.ListOrders(queryInt(r, "user_id", 0), queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
