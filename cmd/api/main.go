// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ldplus/collsync/internal/adapters/db"
	redis_a "github.com/ldplus/collsync/internal/adapters/redis_adapter"
	"github.com/ldplus/collsync/internal/adapters/shopify"
	"github.com/ldplus/collsync/internal/core/services"
	"github.com/ldplus/collsync/internal/handlers"
	"github.com/ldplus/collsync/internal/handlers/middleware"
	"github.com/ldplus/collsync/internal/pkg/config"
	"github.com/ldplus/collsync/internal/pkg/locker"
	"github.com/ldplus/collsync/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting collection sync api",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("shop", cfg.Shopify.ShopDomain),
		slog.String("tracked_collection", cfg.TrackedCollectionGID()),
	)

	ctx := context.Background()

	// Production credentials come from Secrets Manager when configured.
	if err := cfg.ApplyShopifySecrets(ctx, slogger.Logger); err != nil {
		slogger.Error("failed to resolve credentials", slog.Any("error", err))
		os.Exit(1)
	}

	deps, err := initializeDependencies(ctx, cfg, slogger.Logger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer deps.cleanup()

	if !cfg.IsProduction() {
		if err := runMigrations(ctx, cfg, slogger.Logger); err != nil {
			slogger.Error("failed to run migrations", slog.Any("error", err))
			// Don't exit in development, just warn
		}
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.Any("error", err))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.Any("error", err))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database        *db.Database
	redisClient     *redis.Client
	asynqClient     *asynq.Client
	asynqInspector  *asynq.Inspector
	webhookHandler  *handlers.WebhookHandler
	settingsHandler *handlers.SettingsHandler
	syncHandler     *handlers.SyncHandler
	healthHandler   *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolTimeout:     cfg.Redis.PoolTimeout,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient

	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	// Admin API adapters
	shopifyClient := shopify.NewClient(shopify.Config{
		ShopDomain:     cfg.Shopify.ShopDomain,
		AccessToken:    cfg.Shopify.AccessToken,
		APIVersion:     cfg.Shopify.APIVersion,
		CallTimeout:    cfg.Shopify.CallTimeout,
		RateLimitRPS:   cfg.Shopify.RateLimitRPS,
		RateLimitBurst: cfg.Shopify.RateLimitBurst,
	}, logger)

	catalog := shopify.NewCatalog(shopifyClient, shopify.CatalogConfig{
		MemberPageSize:   cfg.Sync.MembershipPageSize,
		VariantPageSize:  cfg.Sync.VariantPageSize,
		LocationPageSize: cfg.Sync.LocationPageSize,
	}, logger)

	snapshots := shopify.NewSnapshotStore(catalog, logger)
	settings := shopify.NewSettingsStore(catalog, cache, shopify.SettingsConfig{
		DefaultQuantityFallback: cfg.Sync.DefaultQuantityFallback,
		ExpirationHoursFallback: cfg.Sync.ExpirationHoursFallback,
		CacheTTL:                cfg.Sync.SettingsCacheTTL,
	}, logger)

	// Sync core
	collectionID := cfg.TrackedCollectionGID()
	keyedLocker := locker.New()
	runs := db.NewRunRepository(database, logger)
	setter := services.NewSetter(catalog, logger)
	reconciler := services.NewReconciler(catalog, snapshots, settings, setter, keyedLocker, runs, collectionID, logger)

	// Handlers
	deps.webhookHandler = handlers.NewWebhookHandler(reconciler, cfg.Shopify.WebhookSecret, collectionID, logger)
	deps.settingsHandler = handlers.NewSettingsHandler(settings, logger)
	deps.syncHandler = handlers.NewSyncHandler(deps.asynqClient, catalog, runs, collectionID, logger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, deps.asynqInspector, cfg, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, log *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps, cfg)

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux
	handler = middleware.RequestID(handler)
	handler = middleware.Logger(log)(handler)
	handler = middleware.Recovery(log)(handler)

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}
	handler = middleware.SecureHeaders(handler)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config) {
	apiV1 := "/api/v1"

	if cfg.Server.EnableHealthCheck {
		mux.HandleFunc("GET /health", deps.healthHandler.Health)
		mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
	}

	// Webhook ingress: no auth middleware here, the handler verifies the
	// HMAC signature itself.
	mux.HandleFunc("POST /webhooks/collections/update", deps.webhookHandler.CollectionUpdate)

	// Settings
	mux.HandleFunc("GET "+apiV1+"/settings/default-quantity", deps.settingsHandler.GetDefaultQuantity)
	mux.HandleFunc("PUT "+apiV1+"/settings/default-quantity", deps.settingsHandler.SetDefaultQuantity)
	mux.HandleFunc("GET "+apiV1+"/settings/expiration-hours", deps.settingsHandler.GetExpirationHours)
	mux.HandleFunc("PUT "+apiV1+"/settings/expiration-hours", deps.settingsHandler.SetExpirationHours)

	// Sync administration
	mux.HandleFunc("POST "+apiV1+"/snapshot/initialize", deps.syncHandler.InitializeSnapshot)
	mux.HandleFunc("GET "+apiV1+"/products", deps.syncHandler.ListProducts)
	mux.HandleFunc("GET "+apiV1+"/runs", deps.syncHandler.ListRuns)
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}

	return db.RunMigrationsWithRetry(ctx, migrationConfig, logger, 3)
}
