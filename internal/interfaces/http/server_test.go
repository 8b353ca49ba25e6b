package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/infrastructure/catalog"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// client replays the session cookie like a browser would
type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newTestClient(t *testing.T) *client {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Name: "Storefront", Environment: "test"},
		Session: config.SessionConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			CookieName: "storefront_session",
			Expiry:     time.Hour,
		},
		Storage:  config.StorageConfig{KeyPrefix: "storefront"},
		Checkout: config.CheckoutConfig{Delay: 10 * time.Millisecond},
	}

	c, err := catalog.Seed()
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	sessions := session.NewManager(session.Config{
		Storage:       storage.NewMemory(),
		KeyPrefix:     cfg.Storage.KeyPrefix,
		CheckoutDelay: cfg.Checkout.Delay,
		Logger:        logger.Discard(),
		Metrics:       m,
	})
	t.Cleanup(sessions.Close)

	srv := NewServer(cfg, Dependencies{
		Catalog:  c,
		Sessions: sessions,
		Logger:   logger.Discard(),
		Metrics:  m,
		Gatherer: reg,
	})
	return &client{t: t, handler: srv.Handler()}
}

func (c *client) do(method, path string, body any) (int, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type productList struct {
	Products []struct {
		ID string `json:"id"`
	} `json:"products"`
	Total  int `json:"total"`
	Facets struct {
		Categories []string `json:"categories"`
		Brands     []string `json:"brands"`
	} `json:"facets"`
}

func productIDs(l productList) []string {
	ids := make([]string, len(l.Products))
	for i, p := range l.Products {
		ids[i] = p.ID
	}
	return ids
}

type cartBody struct {
	Items []struct {
		Quantity int    `json:"quantity"`
		Size     string `json:"size"`
		Color    string `json:"color"`
	} `json:"items"`
	Totals struct {
		ItemCount     int    `json:"item_count"`
		TotalQuantity int    `json:"total_quantity"`
		SubTotal      string `json:"sub_total"`
	} `json:"totals"`
}

func TestListProductsUsesSessionFilters(t *testing.T) {
	c := newTestClient(t)

	code, env := c.do(http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[productList](t, env.Data)
	assert.Equal(t, 10, list.Total)
	assert.Equal(t, "4", list.Products[0].ID, "newest first")

	code, _ = c.do(http.MethodPatch, "/api/v1/filters", map[string]any{
		"brands":      []string{"Strider"},
		"price_range": map[string]any{"min": 0, "max": 1000},
	})
	require.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodPut, "/api/v1/filters/sort", map[string]string{"sort_option": "price-low-to-high"})
	require.Equal(t, http.StatusOK, code)

	_, env = c.do(http.MethodGet, "/api/v1/products", nil)
	list = decode[productList](t, env.Data)
	assert.Equal(t, []string{"9", "10"}, productIDs(list), "boundary price 1000 included")

	code, _ = c.do(http.MethodDelete, "/api/v1/filters", nil)
	require.Equal(t, http.StatusOK, code)
	_, env = c.do(http.MethodGet, "/api/v1/products?limit=3&page=2", nil)
	list = decode[productList](t, env.Data)
	assert.Equal(t, 10, list.Total)
	assert.Equal(t, []string{"2", "4", "5"}, productIDs(list), "sort survives a reset")
}

func TestFilterValidation(t *testing.T) {
	c := newTestClient(t)

	code, _ := c.do(http.MethodPut, "/api/v1/filters/sort", map[string]string{"sort_option": "cheapest"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodPatch, "/api/v1/filters", map[string]any{
		"price_range": map[string]any{"min": 500, "max": 100},
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSearchAndCategoryScope(t *testing.T) {
	c := newTestClient(t)

	code, _ := c.do(http.MethodPut, "/api/v1/filters/search", map[string]string{"query": "wool"})
	require.Equal(t, http.StatusOK, code)

	_, env := c.do(http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, []string{"3"}, productIDs(decode[productList](t, env.Data)))

	_, _ = c.do(http.MethodPut, "/api/v1/filters/search", map[string]string{"query": ""})
	code, env = c.do(http.MethodGet, "/api/v1/categories/accessories/products", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[productList](t, env.Data)
	assert.Equal(t, []string{"7", "8"}, productIDs(list))
	assert.Equal(t, []string{"Atelier Roux"}, list.Facets.Brands)
	assert.Equal(t, []string{"men", "women", "accessories", "footwear"}, list.Facets.Categories)

	code, _ = c.do(http.MethodGet, "/api/v1/categories/garden/products", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCartFlow(t *testing.T) {
	c := newTestClient(t)

	code, _ := c.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "1", "size": "M", "color": "White", "quantity": 2})
	require.Equal(t, http.StatusOK, code)
	code, env := c.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "1", "size": "M", "color": "White"})
	require.Equal(t, http.StatusOK, code)

	body := decode[cartBody](t, env.Data)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 3, body.Items[0].Quantity)
	assert.Equal(t, "179.97", body.Totals.SubTotal)

	code, _ = c.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "1"})
	assert.Equal(t, http.StatusUnprocessableEntity, code, "variant selection required")
	code, _ = c.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "6", "size": "M", "color": "Navy"})
	assert.Equal(t, http.StatusConflict, code, "out of stock")
	code, _ = c.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "nope"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = c.do(http.MethodPut, "/api/v1/cart/items/1", map[string]any{"quantity": 0, "size": "M", "color": "White"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, env = c.do(http.MethodPut, "/api/v1/cart/items/1", map[string]any{"quantity": 5, "size": "M", "color": "White"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 5, decode[cartBody](t, env.Data).Totals.TotalQuantity)

	_, env = c.do(http.MethodGet, "/api/v1/cart/count", nil)
	assert.JSONEq(t, `{"count":5}`, string(env.Data))

	code, env = c.do(http.MethodDelete, "/api/v1/cart/items/1?size=M&color=White", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[cartBody](t, env.Data).Items)
}

func TestWishlistMoveToCart(t *testing.T) {
	c := newTestClient(t)

	for i := 0; i < 2; i++ {
		code, _ := c.do(http.MethodPost, "/api/v1/wishlist/items", map[string]string{"product_id": "5"})
		require.Equal(t, http.StatusOK, code)
	}
	_, env := c.do(http.MethodGet, "/api/v1/wishlist", nil)
	assert.Equal(t, 1, decode[struct {
		Count int `json:"count"`
	}](t, env.Data).Count)

	_, env = c.do(http.MethodGet, "/api/v1/products/5", nil)
	assert.Contains(t, string(env.Data), `"in_wishlist":true`)

	code, _ := c.do(http.MethodPost, "/api/v1/wishlist/items/5/move-to-cart", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code, "selection required")

	code, _ = c.do(http.MethodPost, "/api/v1/wishlist/items/5/move-to-cart", map[string]string{"size": "S", "color": "Black"})
	require.Equal(t, http.StatusOK, code)

	_, env = c.do(http.MethodGet, "/api/v1/wishlist/items/5", nil)
	assert.Contains(t, string(env.Data), `"in_wishlist":false`)
	_, env = c.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Len(t, decode[cartBody](t, env.Data).Items, 1)

	code, _ = c.do(http.MethodPost, "/api/v1/wishlist/items/5/move-to-cart", map[string]string{"size": "S", "color": "Black"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAuthFlow(t *testing.T) {
	c := newTestClient(t)

	code, _ := c.do(http.MethodGet, "/api/v1/auth/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "admin@shop.example"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "admin@shop.example", "password": "x"})
	require.Equal(t, http.StatusOK, code)

	code, env := c.do(http.MethodGet, "/api/v1/auth/profile", nil)
	require.Equal(t, http.StatusOK, code)
	profile := decode[struct {
		Name        string `json:"name"`
		Role        string `json:"role"`
		DisplayName string `json:"display_name"`
		IsAdmin     bool   `json:"is_admin"`
	}](t, env.Data)
	assert.Equal(t, "admin", profile.Name)
	assert.Equal(t, "admin", profile.Role)
	assert.Equal(t, "admin", profile.DisplayName)
	assert.True(t, profile.IsAdmin)

	code, _ = c.do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodGet, "/api/v1/auth/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCheckoutFlow(t *testing.T) {
	c := newTestClient(t)

	code, _ := c.do(http.MethodPost, "/api/v1/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, code, "empty cart")

	_, _ = c.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "8"})
	code, _ = c.do(http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusAccepted, code)

	code, _ = c.do(http.MethodPost, "/api/v1/checkout", nil)
	assert.Equal(t, http.StatusConflict, code, "already in progress")

	require.Eventually(t, func() bool {
		_, env := c.do(http.MethodGet, "/api/v1/checkout", nil)
		return strings.Contains(string(env.Data), `"completed_at"`)
	}, time.Second, 5*time.Millisecond)

	_, env := c.do(http.MethodGet, "/api/v1/checkout", nil)
	assert.Contains(t, string(env.Data), `"in_progress":false`)

	_, env = c.do(http.MethodGet, "/api/v1/cart/count", nil)
	assert.JSONEq(t, `{"count":1}`, string(env.Data), "cart is kept")
}

func TestSessionsAreIsolated(t *testing.T) {
	alice := newTestClient(t)
	_, _ = alice.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "8"})

	bob := &client{t: t, handler: alice.handler}
	_, env := bob.do(http.MethodGet, "/api/v1/cart/count", nil)
	assert.JSONEq(t, `{"count":0}`, string(env.Data))

	_, env = alice.do(http.MethodGet, "/api/v1/cart/count", nil)
	assert.JSONEq(t, `{"count":1}`, string(env.Data))
}

func TestOperationalEndpoints(t *testing.T) {
	c := newTestClient(t)

	code, _ := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, code)

	_, _ = c.do(http.MethodGet, "/api/v1/products", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront_http_requests_total")
	assert.Contains(t, w.Body.String(), "storefront_active_sessions 1")
}
