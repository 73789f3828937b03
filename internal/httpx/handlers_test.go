package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcshop/go-shop-core/internal/cart"
	"github.com/abcshop/go-shop-core/internal/inventory"
	"github.com/abcshop/go-shop-core/internal/orders"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	catalog := inventory.NewCatalog()
	stock := inventory.NewCoordinator(catalog)
	h := &Handler{
		Catalog:  catalog,
		Stock:    stock,
		Cart:     cart.NewStore(catalog, stock),
		Wishlist: cart.NewWishlist(catalog),
		Ledger:   orders.NewLedger(catalog, stock, nil, "httpx-test"),
		Service:  "httpx-test",
	}
	router := NewRouter()
	h.Register(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out bytes.Buffer
	_, _ = out.ReadFrom(resp.Body)
	return resp, out.Bytes()
}

func seedMobile(t *testing.T, srv *httptest.Server, qty int) int {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/products", []map[string]any{{
		"category": 1, "brand_name": "Acme", "model": "X1", "price": 100, "quantity": qty,
	}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var parsed struct {
		Added []inventory.Product `json:"added"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Len(t, parsed.Added, 1)
	return parsed.Added[0].ID
}

func TestProductsEndpoints(t *testing.T) {
	srv := newServer(t)
	id := seedMobile(t, srv, 3)

	// Duplicate add is skipped, not an error.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/products", []map[string]any{{
		"category": 1, "brand_name": "Acme", "model": "X1", "price": 90, "quantity": 1,
	}})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, string(body), "already exists")

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/products?category=1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []inventory.Product
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, id, listed[0].ID)

	// Unknown category id must fail, never default.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/products?category=9", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/products?category=1&page=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/products/%d/stock", srv.URL, id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/products/%d?category=1", srv.URL, id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/products/%d?category=1", srv.URL, id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartEndpoints(t *testing.T) {
	srv := newServer(t)
	id := seedMobile(t, srv, 1)

	add := map[string]any{"user_id": 1, "product_id": id, "category": 1}
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/cart/items", add)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/cart/items", add)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "duplicate cart item")

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/cart?user_id=1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var view cart.View
	require.NoError(t, json.Unmarshal(body, &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 100.0, view.Total)

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/cart/items?user_id=1&product_id=%d", srv.URL, id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCartEndpoints_OutOfStock(t *testing.T) {
	srv := newServer(t)
	id := seedMobile(t, srv, 0)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/cart/items",
		map[string]any{"user_id": 1, "product_id": id, "category": 1})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "out of stock")

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/cart?user_id=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view cart.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Empty(t, view.Items)
}

func TestOrderEndpoints(t *testing.T) {
	srv := newServer(t)
	id := seedMobile(t, srv, 2)

	place := map[string]any{
		"user_id": 1, "product_id": id, "quantity": 2,
		"address": "12 Main St", "payment_mode": 4,
	}
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/orders", place)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order orders.Order
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, 200.0, order.TotalAmount)

	// Sold out: user-facing message carries the available amount.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/orders", map[string]any{
		"user_id": 2, "product_id": id, "quantity": 1,
		"address": "9 Side St", "payment_mode": 1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "insufficient stock, only 0 available")

	// Unknown payment mode id.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/orders", map[string]any{
		"user_id": 1, "product_id": id, "quantity": 1,
		"address": "12 Main St", "payment_mode": 9,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/orders?user_id=1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []orders.Order
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed, 1)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/orders/"+order.ID+"/cancel", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/orders/"+order.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "order already cancelled")

	// Stock is back after the single cancellation.
	resp, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/products/%d/stock", srv.URL, id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stock map[string]int
	require.NoError(t, json.Unmarshal(body, &stock))
	assert.Equal(t, 2, stock["quantity"])
}

func TestOrderEndpoints_AdvanceStatus(t *testing.T) {
	srv := newServer(t)
	id := seedMobile(t, srv, 1)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/orders", map[string]any{
		"user_id": 1, "product_id": id, "quantity": 1,
		"address": "12 Main St", "payment_mode": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order orders.Order
	require.NoError(t, json.Unmarshal(body, &order))

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/orders/"+order.ID+"/status", map[string]any{"status": 3})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Cancellation must go through the cancel endpoint.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/orders/"+order.ID+"/status", map[string]any{"status": 4})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/orders/"+order.ID+"/status", map[string]any{"status": 9})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWishlistEndpoints(t *testing.T) {
	srv := newServer(t)
	id := seedMobile(t, srv, 0) // out of stock is fine on a wishlist

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/wishlist/items",
		map[string]any{"user_id": 1, "product_id": id, "category": 1})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/wishlist?user_id=1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var items []cart.Item
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 1)

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/wishlist/items?user_id=1&product_id=%d", srv.URL, id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
