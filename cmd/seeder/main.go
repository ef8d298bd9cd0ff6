// cmd/seeder/main.go
//
// Seeds the membership snapshot for the tracked collection. Run once
// after install, or whenever the snapshot needs to be rebuilt from the
// collection's live membership.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ldplus/collsync/internal/adapters/db"
	"github.com/ldplus/collsync/internal/adapters/shopify"
	"github.com/ldplus/collsync/internal/core/services"
	"github.com/ldplus/collsync/internal/pkg/config"
	"github.com/ldplus/collsync/internal/pkg/locker"
	"github.com/ldplus/collsync/internal/pkg/logger"
)

func main() {
	var (
		timeout = flag.Duration("timeout", 5*time.Minute, "overall seeding timeout")
		dryRun  = flag.Bool("dry-run", false, "list the membership without writing the snapshot")
		verbose = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	slogger := logger.SetupLogger(level, "text")

	if err := run(slogger.Logger, *timeout, *dryRun); err != nil {
		slogger.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(slogger *slog.Logger, timeout time.Duration, dryRun bool) error {
	cfg, err := config.Load(slogger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := cfg.ApplyShopifySecrets(ctx, slogger); err != nil {
		return fmt.Errorf("failed to resolve credentials: %w", err)
	}

	collectionID := cfg.TrackedCollectionGID()
	slogger.Info("seeding membership snapshot",
		slog.String("shop", cfg.Shopify.ShopDomain),
		slog.String("collection_id", collectionID))

	shopifyClient := shopify.NewClient(shopify.Config{
		ShopDomain:     cfg.Shopify.ShopDomain,
		AccessToken:    cfg.Shopify.AccessToken,
		APIVersion:     cfg.Shopify.APIVersion,
		CallTimeout:    cfg.Shopify.CallTimeout,
		RateLimitRPS:   cfg.Shopify.RateLimitRPS,
		RateLimitBurst: cfg.Shopify.RateLimitBurst,
	}, slogger)

	catalog := shopify.NewCatalog(shopifyClient, shopify.CatalogConfig{
		MemberPageSize:   cfg.Sync.MembershipPageSize,
		VariantPageSize:  cfg.Sync.VariantPageSize,
		LocationPageSize: cfg.Sync.LocationPageSize,
	}, slogger)

	if dryRun {
		members, err := catalog.CollectionMembers(ctx, collectionID)
		if err != nil {
			return fmt.Errorf("failed to list collection members: %w", err)
		}
		for _, m := range members {
			expires := "-"
			if m.ExpiresOn != nil {
				expires = m.ExpiresOn.String()
			}
			fmt.Printf("%s\t%s\t%s\n", m.ID, expires, m.Title)
		}
		slogger.Info("dry run complete", slog.Int("members", len(members)))
		return nil
	}

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.Name,
		SSLMode:        cfg.Database.SSLMode,
		MaxConnections: 2,
		MinConnections: 1,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, slogger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	snapshots := shopify.NewSnapshotStore(catalog, slogger)
	settings := shopify.NewSettingsStore(catalog, nil, shopify.SettingsConfig{
		DefaultQuantityFallback: cfg.Sync.DefaultQuantityFallback,
		ExpirationHoursFallback: cfg.Sync.ExpirationHoursFallback,
	}, slogger)
	setter := services.NewSetter(catalog, slogger)
	runs := db.NewRunRepository(database, slogger)

	reconciler := services.NewReconciler(
		catalog, snapshots, settings, setter, locker.New(), runs, collectionID, slogger)

	ids, err := reconciler.InitializeSnapshot(ctx)
	if err != nil {
		return err
	}

	slogger.Info("snapshot seeded",
		slog.String("collection_id", collectionID),
		slog.Int("members", len(ids)))
	return nil
}
