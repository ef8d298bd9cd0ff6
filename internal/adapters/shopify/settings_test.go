package shopify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	redis_a "github.com/ldplus/collsync/internal/adapters/redis_adapter"
	"github.com/ldplus/collsync/internal/adapters/shopify"
	"github.com/ldplus/collsync/internal/core/ports"
	"github.com/ldplus/collsync/test/helpers"
	"github.com/ldplus/collsync/test/mocks"
)

const testShopID = "gid://shopify/Shop/1"

func newSettingsStore(t *testing.T, cache ports.CacheRepository) (*shopify.SettingsStore, *mocks.MockCatalogClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogClient(ctrl)

	store := shopify.NewSettingsStore(catalog, cache, shopify.SettingsConfig{
		DefaultQuantityFallback: 15,
		ExpirationHoursFallback: 0,
		CacheTTL:                time.Minute,
	}, helpers.TestLogger())
	return store, catalog
}

func newTestCache(t *testing.T) ports.CacheRepository {
	t.Helper()
	tr := helpers.SetupTestRedis(t)
	return redis_a.NewCache(tr.Client, time.Minute, helpers.TestLogger())
}

func TestSettingsStore_DefaultQuantity(t *testing.T) {
	t.Run("reads_metafield_value", func(t *testing.T) {
		store, catalog := newSettingsStore(t, nil)

		catalog.EXPECT().ShopID(gomock.Any()).Return(testShopID, nil)
		catalog.EXPECT().
			Metafield(gomock.Any(), testShopID, shopify.NamespaceApp, shopify.KeyDefaultQuantity).
			Return("25", true, nil)

		quantity, err := store.DefaultQuantity(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 25, quantity)
	})

	t.Run("missing_metafield_uses_fallback", func(t *testing.T) {
		store, catalog := newSettingsStore(t, nil)

		catalog.EXPECT().ShopID(gomock.Any()).Return(testShopID, nil)
		catalog.EXPECT().
			Metafield(gomock.Any(), testShopID, shopify.NamespaceApp, shopify.KeyDefaultQuantity).
			Return("", false, nil)

		quantity, err := store.DefaultQuantity(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 15, quantity)
	})

	t.Run("non_integer_metafield_is_an_error", func(t *testing.T) {
		store, catalog := newSettingsStore(t, nil)

		catalog.EXPECT().ShopID(gomock.Any()).Return(testShopID, nil)
		catalog.EXPECT().
			Metafield(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("plenty", true, nil)

		_, err := store.DefaultQuantity(context.Background())

		assert.Error(t, err)
	})

	t.Run("second_read_is_served_from_cache", func(t *testing.T) {
		store, catalog := newSettingsStore(t, newTestCache(t))

		// The platform is consulted exactly once.
		catalog.EXPECT().ShopID(gomock.Any()).Return(testShopID, nil).Times(1)
		catalog.EXPECT().
			Metafield(gomock.Any(), testShopID, shopify.NamespaceApp, shopify.KeyDefaultQuantity).
			Return("30", true, nil).
			Times(1)

		first, err := store.DefaultQuantity(context.Background())
		require.NoError(t, err)

		second, err := store.DefaultQuantity(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 30, first)
		assert.Equal(t, 30, second)
	})

	t.Run("write_invalidates_the_cache", func(t *testing.T) {
		store, catalog := newSettingsStore(t, newTestCache(t))

		gomock.InOrder(
			// Initial read populates the cache with 30.
			catalog.EXPECT().ShopID(gomock.Any()).Return(testShopID, nil),
			catalog.EXPECT().
				Metafield(gomock.Any(), testShopID, shopify.NamespaceApp, shopify.KeyDefaultQuantity).
				Return("30", true, nil),
			// Write persists 40 and drops the cached value.
			catalog.EXPECT().ShopID(gomock.Any()).Return(testShopID, nil),
			catalog.EXPECT().
				SetMetafield(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, in ports.MetafieldInput) error {
					assert.Equal(t, testShopID, in.OwnerID)
					assert.Equal(t, shopify.KeyDefaultQuantity, in.Key)
					assert.Equal(t, shopify.TypeNumberInteger, in.Type)
					assert.Equal(t, "40", in.Value)
					return nil
				}),
			// Next read goes back to the platform.
			catalog.EXPECT().ShopID(gomock.Any()).Return(testShopID, nil),
			catalog.EXPECT().
				Metafield(gomock.Any(), testShopID, shopify.NamespaceApp, shopify.KeyDefaultQuantity).
				Return("40", true, nil),
		)

		quantity, err := store.DefaultQuantity(context.Background())
		require.NoError(t, err)
		require.Equal(t, 30, quantity)

		require.NoError(t, store.SetDefaultQuantity(context.Background(), 40))

		quantity, err = store.DefaultQuantity(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 40, quantity)
	})

	t.Run("negative_quantity_is_rejected_locally", func(t *testing.T) {
		store, _ := newSettingsStore(t, nil)

		assert.Error(t, store.SetDefaultQuantity(context.Background(), -5))
	})
}

func TestSettingsStore_ExpirationHours(t *testing.T) {
	t.Run("negative_offset_round_trips", func(t *testing.T) {
		store, catalog := newSettingsStore(t, nil)

		catalog.EXPECT().ShopID(gomock.Any()).Return(testShopID, nil)
		catalog.EXPECT().
			SetMetafield(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in ports.MetafieldInput) error {
				assert.Equal(t, shopify.KeyExpirationHours, in.Key)
				assert.Equal(t, "-12", in.Value)
				return nil
			})

		assert.NoError(t, store.SetExpirationHours(context.Background(), -12))
	})

	t.Run("missing_metafield_uses_fallback", func(t *testing.T) {
		store, catalog := newSettingsStore(t, nil)

		catalog.EXPECT().ShopID(gomock.Any()).Return(testShopID, nil)
		catalog.EXPECT().
			Metafield(gomock.Any(), testShopID, shopify.NamespaceApp, shopify.KeyExpirationHours).
			Return("", false, nil)

		hours, err := store.ExpirationHours(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, hours)
	})

	t.Run("shop_lookup_failure_is_propagated", func(t *testing.T) {
		store, catalog := newSettingsStore(t, nil)

		catalog.EXPECT().ShopID(gomock.Any()).Return("", errors.New("graphql: throttled"))

		_, err := store.ExpirationHours(context.Background())

		assert.Error(t, err)
	})
}
