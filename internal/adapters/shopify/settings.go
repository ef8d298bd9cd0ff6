// internal/adapters/shopify/settings.go
package shopify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ldplus/collsync/internal/core/ports"
)

// Cache keys for the two shop-level settings.
const (
	cacheKeyDefaultQuantity = "settings:default_quantity"
	cacheKeyExpirationHours = "settings:expiration_hours"
)

// SettingsConfig holds fallbacks and cache tuning for the settings store.
type SettingsConfig struct {
	DefaultQuantityFallback int
	ExpirationHoursFallback int
	CacheTTL                time.Duration
}

// SettingsStore reads and writes the two shop-level scalar settings as
// shop metafields, with a short-TTL cache in front of reads. Writes
// invalidate the cached key so the admin surface and the sync core stay
// coherent.
type SettingsStore struct {
	catalog ports.CatalogClient
	cache   ports.CacheRepository // may be nil
	cfg     SettingsConfig
	logger  *slog.Logger
}

// Statically assert that *SettingsStore implements the SettingsStore port.
var _ ports.SettingsStore = (*SettingsStore)(nil)

// NewSettingsStore creates a metafield-backed settings store. cache may
// be nil, in which case every read goes to the platform.
func NewSettingsStore(catalog ports.CatalogClient, cache ports.CacheRepository, cfg SettingsConfig, logger *slog.Logger) *SettingsStore {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	return &SettingsStore{
		catalog: catalog,
		cache:   cache,
		cfg:     cfg,
		logger:  logger.With(slog.String("adapter", "settings_store")),
	}
}

// DefaultQuantity returns the target quantity for newly added products,
// falling back to the configured default when the metafield is absent.
func (s *SettingsStore) DefaultQuantity(ctx context.Context) (int, error) {
	return s.readInt(ctx, cacheKeyDefaultQuantity, KeyDefaultQuantity, s.cfg.DefaultQuantityFallback)
}

// SetDefaultQuantity persists the default quantity setting.
func (s *SettingsStore) SetDefaultQuantity(ctx context.Context, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("default quantity cannot be negative")
	}
	return s.writeInt(ctx, cacheKeyDefaultQuantity, KeyDefaultQuantity, quantity)
}

// ExpirationHours returns the hour offset applied to expiration cutoffs,
// falling back to the configured default when the metafield is absent.
func (s *SettingsStore) ExpirationHours(ctx context.Context) (int, error) {
	return s.readInt(ctx, cacheKeyExpirationHours, KeyExpirationHours, s.cfg.ExpirationHoursFallback)
}

// SetExpirationHours persists the expiration hour offset setting.
func (s *SettingsStore) SetExpirationHours(ctx context.Context, hours int) error {
	return s.writeInt(ctx, cacheKeyExpirationHours, KeyExpirationHours, hours)
}

func (s *SettingsStore) readInt(ctx context.Context, cacheKey, metafieldKey string, fallback int) (int, error) {
	if s.cache != nil {
		var cached int
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	shopID, err := s.catalog.ShopID(ctx)
	if err != nil {
		return 0, err
	}

	value, found, err := s.catalog.Metafield(ctx, shopID, NamespaceApp, metafieldKey)
	if err != nil {
		return 0, err
	}

	result := fallback
	if found {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("setting %s holds non-integer value %q: %w", metafieldKey, value, err)
		}
		result = parsed
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cacheKey, result, s.cfg.CacheTTL); err != nil {
			s.logger.DebugContext(ctx, "failed to cache setting",
				slog.String("key", cacheKey),
				slog.String("error", err.Error()))
		}
	}
	return result, nil
}

func (s *SettingsStore) writeInt(ctx context.Context, cacheKey, metafieldKey string, value int) error {
	shopID, err := s.catalog.ShopID(ctx)
	if err != nil {
		return err
	}

	err = s.catalog.SetMetafield(ctx, ports.MetafieldInput{
		OwnerID:   shopID,
		Namespace: NamespaceApp,
		Key:       metafieldKey,
		Type:      TypeNumberInteger,
		Value:     strconv.Itoa(value),
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKey); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate cached setting",
				slog.String("key", cacheKey),
				slog.String("error", err.Error()))
		}
	}

	s.logger.InfoContext(ctx, "setting updated",
		slog.String("setting", metafieldKey),
		slog.Int("value", value))
	return nil
}
