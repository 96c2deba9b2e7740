package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bhojnalaya/ordercore/internal/analytics"
	"github.com/bhojnalaya/ordercore/internal/auth"
	"github.com/bhojnalaya/ordercore/internal/cart"
	"github.com/bhojnalaya/ordercore/internal/catalog"
	"github.com/bhojnalaya/ordercore/internal/ledger"
	"github.com/bhojnalaya/ordercore/internal/storage"
	"github.com/bhojnalaya/ordercore/pkg/types"
)

const (
	customerToken = "tok-cust"
	operatorToken = "tok-ops"
)

type testEnv struct {
	handler http.Handler
	store   *storage.SQLiteStorage
	items   map[string]*types.MenuItem
}

func setupServer(t *testing.T) *testEnv {
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	items := map[string]*types.MenuItem{
		"dal":  {Name: "Dal Tadka", UnitPrice: 120, Category: "Curries", IsAvailable: true},
		"naan": {Name: "Butter Naan", UnitPrice: 30, Category: "Breads", IsAvailable: true},
	}
	for _, item := range items {
		require.NoError(t, store.UpsertMenuItem(ctx, item))
	}

	cat := catalog.New(store)
	resolver, err := auth.NewStaticResolver(
		fmt.Sprintf("%s=42:customer,%s=1:operator", customerToken, operatorToken))
	require.NoError(t, err)

	server := NewServer(
		cart.NewStore(store, cat),
		ledger.New(store),
		analytics.New(store, cat, time.UTC),
		resolver,
		zap.NewNop(),
	)
	return &testEnv{handler: server.Router(), store: store, items: items}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	env := setupServer(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAuthRequired(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cart", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartFlow(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodGet, "/api/cart", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[types.CartView](t, rec)
	assert.Empty(t, view.Lines)

	rec = env.do(t, http.MethodPost, "/api/cart/items", customerToken,
		addItemRequest{MenuItemID: env.items["dal"].ID, Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	view = decode[types.CartView](t, rec)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, 240.0, view.Subtotal)

	// Re-adding increments
	rec = env.do(t, http.MethodPost, "/api/cart/items", customerToken,
		addItemRequest{MenuItemID: env.items["dal"].ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	view = decode[types.CartView](t, rec)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 3, view.Lines[0].Quantity)

	lineID := view.Lines[0].ID
	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/cart/items/%d", lineID),
		customerToken, setQuantityRequest{Quantity: 5})
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[types.CartView](t, rec)
	assert.Equal(t, 5, view.Lines[0].Quantity)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/cart/items/%d", lineID),
		customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[types.CartView](t, rec)
	assert.Empty(t, view.Lines)
}

func TestCartValidation(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPost, "/api/cart/items", customerToken,
		addItemRequest{MenuItemID: env.items["dal"].ID, Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[errorResponse](t, rec)
	assert.Equal(t, "quantity", resp.Field)

	rec = env.do(t, http.MethodPost, "/api/cart/items", customerToken,
		addItemRequest{MenuItemID: 9999, Quantity: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClearCart(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPost, "/api/cart/items", customerToken,
		addItemRequest{MenuItemID: env.items["dal"].ID, Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/cart", customerToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cart", customerToken, nil)
	view := decode[types.CartView](t, rec)
	assert.Empty(t, view.Lines)
}

func checkoutBody() checkoutRequest {
	return checkoutRequest{
		Phone:         "9000000000",
		PaymentMethod: "cash",
		OrderType:     "takeout",
	}
}

func TestCheckoutFlow(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPost, "/api/cart/items", customerToken,
		addItemRequest{MenuItemID: env.items["dal"].ID, Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/orders", customerToken, checkoutBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[types.Order](t, rec)
	assert.Equal(t, types.StatusPending, order.Status)
	assert.Equal(t, 240.0, order.Total)
	require.Len(t, order.Lines, 1)

	// Cart is now empty; a second checkout fails
	rec = env.do(t, http.MethodPost, "/api/orders", customerToken, checkoutBody())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Order shows up in the customer's list
	rec = env.do(t, http.MethodGet, "/api/orders", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]types.Order](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), customerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckoutValidation(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPost, "/api/cart/items", customerToken,
		addItemRequest{MenuItemID: env.items["dal"].ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := checkoutBody()
	body.OrderType = "delivery" // no address
	rec = env.do(t, http.MethodPost, "/api/orders", customerToken, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[errorResponse](t, rec)
	assert.Equal(t, "address", resp.Field)
}

func TestCancelOrder(t *testing.T) {
	env := setupServer(t)
	order := placeOrder(t, env)

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", order.ID), customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[types.Order](t, rec)
	assert.Equal(t, types.StatusCancelled, got.Status)

	// A cancelled order accepts no further transitions
	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID),
		operatorToken, updateStatusRequest{Status: "processing"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func placeOrder(t *testing.T, env *testEnv) types.Order {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/cart/items", customerToken,
		addItemRequest{MenuItemID: env.items["dal"].ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/orders", customerToken, checkoutBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[types.Order](t, rec)
}

func TestAdminRequiresOperator(t *testing.T) {
	env := setupServer(t)

	for _, path := range []string{
		"/api/admin/orders",
		"/api/admin/orders/recent",
		"/api/admin/analytics/summary",
		"/api/admin/analytics/dashboard",
	} {
		rec := env.do(t, http.MethodGet, path, customerToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestAdminOrders(t *testing.T) {
	env := setupServer(t)
	order := placeOrder(t, env)

	rec := env.do(t, http.MethodGet, "/api/admin/orders", operatorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]types.Order](t, rec)
	require.Len(t, orders, 1)

	rec = env.do(t, http.MethodGet, "/api/admin/orders/recent?limit=5", operatorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID),
		operatorToken, updateStatusRequest{Status: "processing"})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[types.Order](t, rec)
	assert.Equal(t, types.StatusProcessing, got.Status)

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID),
		operatorToken, updateStatusRequest{Status: "shipped"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsEndpoints(t *testing.T) {
	env := setupServer(t)
	placeOrder(t, env)

	rec := env.do(t, http.MethodGet, "/api/admin/analytics/summary", operatorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[analytics.Summary](t, rec)
	assert.Equal(t, 1, summary.OrderCount)
	assert.Equal(t, 120.0, summary.TotalRevenue)

	rec = env.do(t, http.MethodGet, "/api/admin/analytics/status-breakdown", operatorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	buckets := decode[[]analytics.StatusBucket](t, rec)
	require.Len(t, buckets, 1)
	assert.Equal(t, types.StatusPending, buckets[0].Status)

	rec = env.do(t, http.MethodGet, "/api/admin/analytics/top-items?n=3", operatorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]analytics.ItemSales](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, "Dal Tadka", items[0].Name)

	rec = env.do(t, http.MethodGet, "/api/admin/analytics/category-sales", operatorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/analytics/daily-trend", operatorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	trend := decode[[]analytics.DailyPoint](t, rec)
	require.Len(t, trend, 1)

	rec = env.do(t, http.MethodGet, "/api/admin/analytics/dashboard", operatorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decode[analytics.Dashboard](t, rec)
	assert.Equal(t, 1, dash.Summary.OrderCount)
}

func TestAnalyticsDateFilters(t *testing.T) {
	env := setupServer(t)
	placeOrder(t, env)

	rec := env.do(t, http.MethodGet, "/api/admin/analytics/summary?start=2000-01-01&end=2000-01-02", operatorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[analytics.Summary](t, rec)
	assert.Equal(t, 0, summary.OrderCount)

	rec = env.do(t, http.MethodGet, "/api/admin/analytics/summary?start=not-a-date", operatorToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/analytics/summary?start=2026-01-02&end=2026-01-01", operatorToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderOwnership(t *testing.T) {
	env := setupServer(t)
	order := placeOrder(t, env)

	// Operator can read any order through the customer endpoint
	rec := env.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), operatorToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/orders/9999", customerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/orders/abc", customerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
