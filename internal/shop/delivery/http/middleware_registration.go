package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// MiddlewareConfig holds middleware configuration
type MiddlewareConfig struct {
	EnableLogging bool
	EnableTracing bool
	// Timeout bounds each request; zero disables it.
	Timeout        time.Duration
	AllowedOrigins []string
}

// DefaultMiddlewareConfig returns default middleware configuration
func DefaultMiddlewareConfig(timeout time.Duration) MiddlewareConfig {
	return MiddlewareConfig{
		EnableLogging:  true,
		EnableTracing:  true,
		Timeout:        timeout,
		AllowedOrigins: []string{"*"},
	}
}

// RegisterMiddlewares registers all middlewares to the router
func RegisterMiddlewares(router *mux.Router, config MiddlewareConfig) {
	router.Use(RecoveryMiddleware)
	router.Use(RequestIDMiddleware)

	// Tracing runs before logging so request logs carry the trace id
	if config.EnableTracing {
		router.Use(func(next http.Handler) http.Handler {
			return TracingMiddleware("http-request", next)
		})
	}

	if config.EnableLogging {
		router.Use(LoggingMiddleware)
	}

	if config.Timeout > 0 {
		router.Use(func(next http.Handler) http.Handler {
			return http.TimeoutHandler(next, config.Timeout, `{"success":false,"error":"Request timed out"}`)
		})
	}
}

// WithCORS wraps the router with the CORS policy the console frontend needs
func WithCORS(router http.Handler, config MiddlewareConfig) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
	})
	return c.Handler(router)
}
