package shopify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ldplus/collsync/internal/adapters/shopify"
	"github.com/ldplus/collsync/internal/core/ports"
	"github.com/ldplus/collsync/test/helpers"
	"github.com/ldplus/collsync/test/mocks"
)

const snapshotCollection = "gid://shopify/Collection/42"

func TestSnapshotStore_Load(t *testing.T) {
	t.Run("parses_persisted_snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalog := mocks.NewMockCatalogClient(ctrl)
		store := shopify.NewSnapshotStore(catalog, helpers.TestLogger())

		catalog.EXPECT().
			Metafield(gomock.Any(), snapshotCollection, shopify.NamespaceApp, shopify.KeySnapshot).
			Return(`["gid://shopify/Product/1","gid://shopify/Product/2"]`, true, nil)

		ids, found, err := store.Load(context.Background(), snapshotCollection)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []string{helpers.ProductGID(1), helpers.ProductGID(2)}, ids)
	})

	t.Run("missing_metafield_means_no_snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalog := mocks.NewMockCatalogClient(ctrl)
		store := shopify.NewSnapshotStore(catalog, helpers.TestLogger())

		catalog.EXPECT().
			Metafield(gomock.Any(), snapshotCollection, shopify.NamespaceApp, shopify.KeySnapshot).
			Return("", false, nil)

		ids, found, err := store.Load(context.Background(), snapshotCollection)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, ids)
	})

	t.Run("corrupt_snapshot_is_an_error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalog := mocks.NewMockCatalogClient(ctrl)
		store := shopify.NewSnapshotStore(catalog, helpers.TestLogger())

		catalog.EXPECT().
			Metafield(gomock.Any(), snapshotCollection, shopify.NamespaceApp, shopify.KeySnapshot).
			Return(`["gid://shopify/Product/1"`, true, nil)

		_, _, err := store.Load(context.Background(), snapshotCollection)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "corrupt membership snapshot")
	})

	t.Run("lookup_failure_is_propagated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalog := mocks.NewMockCatalogClient(ctrl)
		store := shopify.NewSnapshotStore(catalog, helpers.TestLogger())

		catalog.EXPECT().
			Metafield(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", false, errors.New("graphql: throttled"))

		_, _, err := store.Load(context.Background(), snapshotCollection)

		assert.Error(t, err)
	})
}

func TestSnapshotStore_Save(t *testing.T) {
	t.Run("writes_snapshot_as_reference_list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalog := mocks.NewMockCatalogClient(ctrl)
		store := shopify.NewSnapshotStore(catalog, helpers.TestLogger())

		catalog.EXPECT().
			SetMetafield(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in ports.MetafieldInput) error {
				assert.Equal(t, snapshotCollection, in.OwnerID)
				assert.Equal(t, shopify.NamespaceApp, in.Namespace)
				assert.Equal(t, shopify.KeySnapshot, in.Key)
				assert.Equal(t, shopify.TypeProductReferenceList, in.Type)
				assert.JSONEq(t, `["gid://shopify/Product/7"]`, in.Value)
				return nil
			})

		err := store.Save(context.Background(), snapshotCollection, []string{helpers.ProductGID(7)})

		assert.NoError(t, err)
	})

	t.Run("nil_membership_writes_empty_array", func(t *testing.T) {
		// A collection emptied out must overwrite the snapshot, not
		// leave the stale one behind.
		ctrl := gomock.NewController(t)
		catalog := mocks.NewMockCatalogClient(ctrl)
		store := shopify.NewSnapshotStore(catalog, helpers.TestLogger())

		catalog.EXPECT().
			SetMetafield(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in ports.MetafieldInput) error {
				assert.JSONEq(t, `[]`, in.Value)
				return nil
			})

		assert.NoError(t, store.Save(context.Background(), snapshotCollection, nil))
	})

	t.Run("write_failure_is_propagated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalog := mocks.NewMockCatalogClient(ctrl)
		store := shopify.NewSnapshotStore(catalog, helpers.TestLogger())

		catalog.EXPECT().
			SetMetafield(gomock.Any(), gomock.Any()).
			Return(errors.New("userErrors: owner not found"))

		err := store.Save(context.Background(), snapshotCollection, []string{helpers.ProductGID(1)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to persist membership snapshot")
	})
}
