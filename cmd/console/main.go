package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/shop-console/docs"
	"github.com/tair/shop-console/internal/shop"
	httpDelivery "github.com/tair/shop-console/internal/shop/delivery/http"
	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/media"
	"github.com/tair/shop-console/internal/shop/metrics"
	"github.com/tair/shop-console/internal/shop/repository"
	"github.com/tair/shop-console/internal/snapshot"
	"github.com/tair/shop-console/kafka"
	"github.com/tair/shop-console/pkg/auth"
	"github.com/tair/shop-console/pkg/config"
	"github.com/tair/shop-console/pkg/database"
	"github.com/tair/shop-console/pkg/logger"
	"github.com/tair/shop-console/pkg/tracing"
)

func main() {
	cfg, err := config.Load(".", "./config")
	if err != nil {
		logger.Init("shop-console", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.Service.Name, cfg.Service.IsDevelopment())
	logger.SetLevel(cfg.Log.Level)

	logger.Logger.Info().
		Str("service", cfg.Service.Name).
		Str("environment", cfg.Service.Environment).
		Str("log_level", cfg.Log.Level).
		Str("snapshot_backend", cfg.Snapshot.Backend).
		Msg("Starting shop console")

	tp, err := tracing.InitTracer(cfg.Service.Name, cfg.Tracing)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Snapshot storage
	blobs, health, closeBlobs := openBlobStore(cfg)
	defer closeBlobs()

	breaker := snapshot.NewBreakerBlobStore(
		snapshot.NewTracingBlobStore(blobs, cfg.Snapshot.Backend),
		cfg.Snapshot.BreakerFailures,
		cfg.Snapshot.BreakerCooldown,
	)
	gateway := snapshot.NewGateway(breaker)

	dataset := gateway.Load(ctx)
	store := repository.NewMemoryStore(dataset, gateway)
	metrics.CatalogSize.Set(float64(len(dataset.Products)))

	logger.Logger.Info().
		Int("products", len(dataset.Products)).
		Int("orders", len(dataset.Orders)).
		Int("categories", len(dataset.Categories)).
		Msg("Console state loaded")

	// Outbound collaborators
	var images media.ImageStore = media.PassthroughImageStore{}
	if cfg.Cloudinary.URL != "" {
		cld, err := media.NewCloudinaryImageStore(cfg.Cloudinary.URL, cfg.Service.Name)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize image store")
		}
		images = cld
	}

	var publisher domain.EventPublisher = domain.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka publisher")
		}
		defer kp.Close()
		publisher = kp
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var limiter httpDelivery.Limiter
	if rdb, ok := blobs.(*snapshot.RedisBlobStore); ok {
		limiter = httpDelivery.NewRedisRateLimiter(rdb.Client(), "shop:ratelimit:login:", cfg.Auth.LoginLimit, cfg.Auth.LoginWindow)
	}

	// Initialize handler with Wire DI
	app, err := shop.InitializeApp(store, images, publisher, tokens, limiter)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	if err := app.Inbox.SeedDemo(ctx); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to seed demo inbox")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		consumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, []string{cfg.Kafka.InboxTopic})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka consumer")
		}
		defer consumer.Close()

		consumer.RegisterHandler(kafka.EventTypeInboundMessage, kafka.InboundMessageHandler(
			func(ctx context.Context, username, content string) error {
				_, err := app.Inbox.Receive(ctx, username, content)
				return err
			},
		))
		consumer.Start(ctx)
	}

	server := newHTTPServer(cfg, app.Handler, health)

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTP.Port).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to flush tracer")
	}
	logger.Logger.Info().Msg("Server exited")
}

// openBlobStore connects the configured snapshot backend. The returned health check is nil for
// the in-memory backend.
func openBlobStore(cfg *config.Config) (snapshot.BlobStore, httpDelivery.HealthCheck, func()) {
	switch cfg.Snapshot.Backend {
	case "redis":
		rdb, err := database.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		health := func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		return snapshot.NewRedisBlobStore(rdb, cfg.Redis.Prefix), health, func() { _ = rdb.Close() }

	case "postgres":
		db, err := database.NewGormConnection(cfg.Postgres)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
		}

		store := snapshot.NewGormBlobStore(db)
		if err := store.AutoMigrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		logger.Logger.Info().Msg("Database initialized successfully")

		return store, sqlDB.PingContext, func() { _ = sqlDB.Close() }

	case "memory", "":
		return snapshot.NewMemoryBlobStore(), nil, func() {}

	default:
		logger.Logger.Fatal().Str("backend", cfg.Snapshot.Backend).Msg("Unknown snapshot backend")
		return nil, nil, nil
	}
}

func newHTTPServer(cfg *config.Config, handler *httpDelivery.ShopHandler, health httpDelivery.HealthCheck) *http.Server {
	// Setup router
	router := mux.NewRouter()

	mwConfig := httpDelivery.DefaultMiddlewareConfig(cfg.HTTP.Timeout)
	httpDelivery.RegisterMiddlewares(router, mwConfig)

	// Register routes
	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, health)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	docs.SwaggerInfo.Host = "localhost:" + cfg.HTTP.Port
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           httpDelivery.WithCORS(router, mwConfig),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
