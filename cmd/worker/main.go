// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ldplus/collsync/internal/adapters/db"
	redis_a "github.com/ldplus/collsync/internal/adapters/redis_adapter"
	"github.com/ldplus/collsync/internal/adapters/shopify"
	"github.com/ldplus/collsync/internal/core/services"
	"github.com/ldplus/collsync/internal/pkg/config"
	"github.com/ldplus/collsync/internal/pkg/locker"
	"github.com/ldplus/collsync/internal/pkg/logger"
	"github.com/ldplus/collsync/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("starting sync worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr),
		slog.String("tracked_collection", cfg.TrackedCollectionGID()))

	ctx := context.Background()

	if err := cfg.ApplyShopifySecrets(ctx, slogger.Logger); err != nil {
		slogger.Error("failed to resolve credentials", slog.Any("error", err))
		os.Exit(1)
	}

	database, err := initDatabase(ctx, cfg, slogger.Logger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slogger.Error("failed to connect to Redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer redisClient.Close()

	processor, err := buildSyncProcessor(cfg, database, redisClient, slogger.Logger)
	if err != nil {
		slogger.Error("failed to build sync processor", slog.Any("error", err))
		os.Exit(1)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     cfg.Asynq.Concurrency,
		Queues:          cfg.Asynq.Queues,
		StrictPriority:  cfg.Asynq.StrictPriority,
		ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
		RetryDelayFunc:  exponentialBackoff,
		ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
		HealthCheckFunc: healthCheck,
		Logger:          newAsynqLogger(slogger.Logger),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(workers.TypeExpirationSweep, processor.ProcessExpirationSweep)
	mux.HandleFunc(workers.TypeCollectionResort, processor.ProcessCollectionResort)
	mux.HandleFunc(workers.TypeSnapshotInit, processor.ProcessSnapshotInit)

	scheduler, err := setupScheduler(cfg, redisOpt, slogger.Logger)
	if err != nil {
		slogger.Error("failed to set up scheduler", slog.Any("error", err))
		os.Exit(1)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.Any("error", err))
			shutdown <- syscall.SIGTERM
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			slogger.Error("failed to run scheduler", slog.Any("error", err))
			shutdown <- syscall.SIGTERM
		}
	}()

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.String("sweep_schedule", cfg.Sync.SweepSchedule),
		slog.String("resort_schedule", cfg.Sync.ResortSchedule))

	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

// buildSyncProcessor wires the sync services the periodic tasks drive.
func buildSyncProcessor(cfg *config.Config, database *db.Database, redisClient *redis.Client, logger *slog.Logger) (*workers.SyncProcessor, error) {
	location, err := time.LoadLocation(cfg.Sync.ReferenceTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid reference timezone %q: %w", cfg.Sync.ReferenceTimezone, err)
	}

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

	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)
	snapshots := shopify.NewSnapshotStore(catalog, logger)
	settings := shopify.NewSettingsStore(catalog, cache, shopify.SettingsConfig{
		DefaultQuantityFallback: cfg.Sync.DefaultQuantityFallback,
		ExpirationHoursFallback: cfg.Sync.ExpirationHoursFallback,
		CacheTTL:                cfg.Sync.SettingsCacheTTL,
	}, logger)

	collectionID := cfg.TrackedCollectionGID()
	keyedLocker := locker.New()
	runs := db.NewRunRepository(database, logger)
	setter := services.NewSetter(catalog, logger)

	reconciler := services.NewReconciler(catalog, snapshots, settings, setter, keyedLocker, runs, collectionID, logger)
	sweeper := services.NewSweeper(catalog, settings, keyedLocker, runs, collectionID, location, nil, logger)
	sorter := services.NewSorter(catalog, keyedLocker, runs, collectionID, logger)

	return workers.NewSyncProcessor(sweeper, sorter, reconciler, logger), nil
}

// setupScheduler registers the periodic sweep and resort tasks.
func setupScheduler(cfg *config.Config, redisOpt asynq.RedisClientOpt, logger *slog.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger: newAsynqLogger(logger),
	})

	if _, err := scheduler.Register(cfg.Sync.SweepSchedule, workers.NewExpirationSweepTask()); err != nil {
		return nil, fmt.Errorf("failed to register sweep schedule: %w", err)
	}
	if _, err := scheduler.Register(cfg.Sync.ResortSchedule, workers.NewCollectionResortTask()); err != nil {
		return nil, fmt.Errorf("failed to register resort schedule: %w", err)
	}

	return scheduler, nil
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.Database, error) {
	dbConfig := &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     10, // Fewer connections for worker
		MinConnections:     2,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}

	return db.NewDatabase(ctx, dbConfig, logger)
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.Any("error", err))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.Any("error", err))
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
