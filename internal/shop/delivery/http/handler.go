package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/shop-console/internal/inbox"
	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/metrics"
	"github.com/tair/shop-console/internal/shop/usecase/command"
	"github.com/tair/shop-console/internal/shop/usecase/query"
	"github.com/tair/shop-console/pkg/auth"
	"github.com/tair/shop-console/pkg/logger"
)

// Commands groups the command handlers the API dispatches to
type Commands struct {
	AddProduct    *command.AddProductHandler
	UpdateProduct *command.UpdateProductHandler
	DeleteProduct *command.DeleteProductHandler
	SetStock      *command.SetStockHandler
	PlaceOrder    *command.PlaceOrderHandler
	SimulateOrder *command.SimulateOrderHandler
	MarkShipped   *command.MarkShippedHandler
	MarkDelivered *command.MarkDeliveredHandler
	DeleteOrder   *command.DeleteOrderHandler
	AddCategory   *command.AddCategoryHandler
	DelCategory   *command.DeleteCategoryHandler
	Admin         *command.AdminHandler
	Instagram     *command.InstagramHandler
}

// Queries groups the query handlers the API dispatches to
type Queries struct {
	ListProducts   *query.ListProductsHandler
	GetProduct     *query.GetProductHandler
	ListInventory  *query.ListInventoryHandler
	Stats          *query.GetStatsHandler
	ListOrders     *query.ListOrdersHandler
	ListCategories *query.ListCategoriesHandler
	Settings       *query.GetSettingsHandler
	Classify       *query.ClassifyMessageHandler
}

// ShopHandler handles HTTP requests for the console using CQRS pattern
type ShopHandler struct {
	cmd     Commands
	qry     Queries
	inbox   *inbox.Feed
	tokens  *auth.TokenIssuer
	limiter Limiter
}

// NewShopHandler creates a new shop handler. limiter may be nil.
func NewShopHandler(cmd Commands, qry Queries, feed *inbox.Feed, tokens *auth.TokenIssuer, limiter Limiter) *ShopHandler {
	return &ShopHandler{cmd: cmd, qry: qry, inbox: feed, tokens: tokens, limiter: limiter}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		metrics.HTTPRequests.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func (h *ShopHandler) RegisterRoutes(router *mux.Router) {
	admin := AdminMiddleware(h.tokens)
	route := func(path string, fn http.HandlerFunc, methods ...string) {
		router.HandleFunc(path, metricsMiddleware(path, fn)).Methods(methods...)
	}

	// Catalog
	route("/api/products", h.ListProducts, http.MethodGet)
	route("/api/products", h.AddProduct, http.MethodPost)
	route("/api/products/{id}", h.GetProduct, http.MethodGet)
	route("/api/products/{id}", h.UpdateProduct, http.MethodPatch)
	route("/api/products/{id}", admin(h.DeleteProduct), http.MethodDelete)
	route("/api/stats", h.GetStats, http.MethodGet)

	// Inventory
	route("/api/inventory", h.ListInventory, http.MethodGet)
	route("/api/inventory/{product_id}/stock", h.SetStock, http.MethodPut)

	// Orders
	route("/api/orders", h.ListOrders, http.MethodGet)
	route("/api/orders", h.PlaceOrder, http.MethodPost)
	route("/api/orders/simulate", h.SimulateOrder, http.MethodPost)
	route("/api/orders/{id}/ship", h.MarkShipped, http.MethodPost)
	route("/api/orders/{id}/deliver", h.MarkDelivered, http.MethodPost)
	route("/api/orders/{id}", admin(h.DeleteOrder), http.MethodDelete)

	// Categories
	route("/api/categories", h.ListCategories, http.MethodGet)
	route("/api/categories", h.AddCategory, http.MethodPost)
	route("/api/categories/{id}", h.DeleteCategory, http.MethodDelete)

	// Settings and admin session
	route("/api/settings", h.GetSettings, http.MethodGet)
	route("/api/settings/password/setup", h.SetupPassword, http.MethodPost)
	route("/api/settings/password/change", h.ChangePassword, http.MethodPost)
	route("/api/settings/instagram", h.ConnectInstagram, http.MethodPost)
	route("/api/settings/instagram", h.DisconnectInstagram, http.MethodDelete)
	route("/api/admin/login", RateLimitMiddleware(h.limiter)(h.Login), http.MethodPost)

	// Inbox
	route("/api/inbox", h.ListInbox, http.MethodGet)
	route("/api/inbox", h.ReceiveMessage, http.MethodPost)
	route("/api/classify", h.ClassifyMessage, http.MethodPost)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// RegisterHealthCheck serves /health
// @Summary Health check
// @Description Check service health and snapshot backend connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *ShopHandler) RegisterHealthCheck(router *mux.Router, check HealthCheck) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Error:   "Snapshot backend unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Shop console is healthy",
		})
	}).Methods(http.MethodGet)
}

// decode reads a JSON request body into dst, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// respondDomainError maps the domain error taxonomy onto status codes
func respondDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		logger.Error(ctx).Err(err).Msg("Request failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}
