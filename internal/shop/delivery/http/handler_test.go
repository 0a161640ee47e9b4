package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/shop-console/internal/inbox"
	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/media"
	"github.com/tair/shop-console/internal/shop/repository"
	"github.com/tair/shop-console/internal/shop/usecase/command"
	"github.com/tair/shop-console/internal/shop/usecase/query"
	"github.com/tair/shop-console/pkg/auth"
)

type stubLimiter struct {
	allowed bool
	err     error
}

func (l stubLimiter) Allow(context.Context, string) (bool, int, time.Time, error) {
	return l.allowed, 0, time.Now().Add(time.Minute), l.err
}

func (stubLimiter) Limit() int { return 1 }

type testServer struct {
	router *mux.Router
	store  *repository.MemoryStore
}

func newTestServer(t *testing.T, limiter Limiter) *testServer {
	t.Helper()
	hashed, err := auth.HashPassword(domain.DefaultAdminPassword)
	require.NoError(t, err)

	store := repository.NewMemoryStore(domain.Dataset{
		Products:   domain.DefaultProducts(),
		Inventory:  domain.DefaultInventory(),
		Orders:     domain.DefaultOrders(),
		Categories: domain.DefaultCategories(),
		Settings:   domain.Settings{AdminPasswordHash: hashed},
	}, nil)
	tokens := auth.NewTokenIssuer("test-secret", time.Minute)
	images := media.PassthroughImageStore{}
	place := command.NewPlaceOrderHandler(store, domain.NoopPublisher{})
	classify := query.NewClassifyMessageHandler(store)

	h := NewShopHandler(
		Commands{
			AddProduct:    command.NewAddProductHandler(store, images),
			UpdateProduct: command.NewUpdateProductHandler(store, images),
			DeleteProduct: command.NewDeleteProductHandler(store),
			SetStock:      command.NewSetStockHandler(store),
			PlaceOrder:    place,
			SimulateOrder: command.NewSimulateOrderHandler(store, place),
			MarkShipped:   command.NewMarkShippedHandler(store),
			MarkDelivered: command.NewMarkDeliveredHandler(store),
			DeleteOrder:   command.NewDeleteOrderHandler(store),
			AddCategory:   command.NewAddCategoryHandler(store),
			DelCategory:   command.NewDeleteCategoryHandler(store),
			Admin:         command.NewAdminHandler(store, tokens),
			Instagram:     command.NewInstagramHandler(store),
		},
		Queries{
			ListProducts:   query.NewListProductsHandler(store),
			GetProduct:     query.NewGetProductHandler(store),
			ListInventory:  query.NewListInventoryHandler(store),
			Stats:          query.NewGetStatsHandler(store),
			ListOrders:     query.NewListOrdersHandler(store),
			ListCategories: query.NewListCategoriesHandler(store),
			Settings:       query.NewGetSettingsHandler(store),
			Classify:       classify,
		},
		inbox.NewFeed(classify),
		tokens,
		limiter,
	)

	router := mux.NewRouter()
	RegisterMiddlewares(router, MiddlewareConfig{EnableLogging: true})
	h.RegisterRoutes(router)
	h.RegisterHealthCheck(router, nil)
	return &testServer{router: router, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, header ...string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	rec, resp := s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"password": domain.DefaultAdminPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	return data["token"].(string)
}

func TestAddProductCreatesInventoryRecord(t *testing.T) {
	s := newTestServer(t, nil)

	rec, resp := s.do(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "니트 가디건", "category": "Outer", "basePrice": 54000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "OT-006", resp.Data.(map[string]interface{})["code"])

	ds := s.store.Snapshot()
	assert.Len(t, ds.Products, 6)
	assert.Len(t, ds.Inventory, 6)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"validation", http.MethodPost, "/api/orders", map[string]interface{}{"customerName": "", "productName": "x", "quantity": 1}, http.StatusBadRequest},
		{"negative stock", http.MethodPut, "/api/inventory/p1/stock", map[string]int{"quantity": -1}, http.StatusBadRequest},
		{"missing quantity", http.MethodPut, "/api/inventory/p1/stock", map[string]string{}, http.StatusBadRequest},
		{"unknown order", http.MethodPost, "/api/orders/nope/ship", map[string]string{"trackingNumber": "T", "shippingDate": "2025-01-01"}, http.StatusNotFound},
		{"unknown product", http.MethodGet, "/api/products/nope", nil, http.StatusNotFound},
		{"bad lane", http.MethodGet, "/api/inbox?lane=spam", nil, http.StatusBadRequest},
		{"wrong password", http.MethodPost, "/api/admin/login", map[string]string{"password": "nope"}, http.StatusUnauthorized},
		{"duplicate prefix", http.MethodPost, "/api/categories", map[string]string{"name": "Dresses", "prefix": "DR"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestDeleteOrderRequiresAdminToken(t *testing.T) {
	s := newTestServer(t, nil)

	rec, _ := s.do(t, http.MethodDelete, "/api/orders/101", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/orders/101", nil, "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	stockBefore := s.store.Snapshot().Inventory
	rec, resp := s.do(t, http.MethodDelete, "/api/orders/101", nil, "Authorization", "Bearer "+s.login(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	ds := s.store.Snapshot()
	assert.Len(t, ds.Orders, 1)
	assert.Equal(t, stockBefore, ds.Inventory)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t, nil)

	rec, resp := s.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"customerName": "Kim", "productName": "린넨 원피스 (Beige)", "quantity": 7, "source": "instagram",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := resp.Data.(map[string]interface{})["id"].(string)
	assert.Equal(t, 0, s.store.Snapshot().Inventory[0].Stock)

	rec, _ = s.do(t, http.MethodPost, "/api/orders/"+id+"/ship", map[string]string{"trackingNumber": "CJ-1", "shippingDate": "2025-03-01"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = s.do(t, http.MethodPost, "/api/orders/"+id+"/deliver", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Delivered", resp.Data.(map[string]interface{})["status"])

	rec, resp = s.do(t, http.MethodGet, "/api/orders?search=kim", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, resp.Data.(map[string]interface{})["total"])
}

func TestSettingsFlow(t *testing.T) {
	s := newTestServer(t, nil)

	_, resp := s.do(t, http.MethodGet, "/api/settings", nil)
	assert.Equal(t, false, resp.Data.(map[string]interface{})["isPasswordSet"])

	rec, _ := s.do(t, http.MethodPost, "/api/settings/password/setup", map[string]string{"password": "abcd", "confirm": "abcd"})
	require.Equal(t, http.StatusOK, rec.Code)

	_, resp = s.do(t, http.MethodGet, "/api/settings", nil)
	assert.Equal(t, true, resp.Data.(map[string]interface{})["isPasswordSet"])

	rec, _ = s.do(t, http.MethodPost, "/api/settings/password/change", map[string]string{"currentPassword": "wrong", "newPassword": "efgh"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, resp = s.do(t, http.MethodPost, "/api/settings/instagram", map[string]string{"handle": "@wildflower"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp.Data.(map[string]interface{})["connected"])

	rec, _ = s.do(t, http.MethodDelete, "/api/settings/instagram", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, s.store.Snapshot().Settings.Instagram.Connected)
}

func TestInboxOverHTTP(t *testing.T) {
	s := newTestServer(t, nil)

	rec, resp := s.do(t, http.MethodPost, "/api/inbox", map[string]string{"username": "박진상", "content": "환불해줘요!"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Manual_Required", resp.Data.(map[string]interface{})["status"])

	_, resp = s.do(t, http.MethodGet, "/api/inbox?lane=manual", nil)
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 1, data["manualCount"])
	assert.Len(t, data["messages"], 1)

	_, resp = s.do(t, http.MethodPost, "/api/classify", map[string]string{"text": "hello", "sender": "x"})
	assert.Equal(t, "Auto_Replied", resp.Data.(map[string]interface{})["status"])
}

func TestLoginRateLimited(t *testing.T) {
	s := newTestServer(t, stubLimiter{allowed: false})

	rec, _ := s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"password": domain.DefaultAdminPassword})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
}

func TestLoginLimiterErrorFailsOpen(t *testing.T) {
	s := newTestServer(t, stubLimiter{err: errors.New("redis down")})

	rec, _ := s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"password": domain.DefaultAdminPassword})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthCheckReportsBackend(t *testing.T) {
	s := newTestServer(t, nil)
	rec, resp := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	router := mux.NewRouter()
	(&ShopHandler{}).RegisterHealthCheck(router, func(context.Context) error { return errors.New("down") })
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
