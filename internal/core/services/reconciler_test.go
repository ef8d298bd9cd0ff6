// internal/core/services/reconciler_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/services"
	"github.com/ldplus/collsync/internal/pkg/locker"
	"github.com/ldplus/collsync/test/helpers"
	"github.com/ldplus/collsync/test/mocks"
)

const trackedCollection = "gid://shopify/Collection/42"

type reconcilerMocks struct {
	catalog   *mocks.MockCatalogClient
	snapshots *mocks.MockSnapshotStore
	settings  *mocks.MockSettingsStore
	setter    *mocks.MockInventorySetter
	runs      *mocks.MockRunRepository
}

func newReconciler(t *testing.T) (*services.Reconciler, reconcilerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := reconcilerMocks{
		catalog:   mocks.NewMockCatalogClient(ctrl),
		snapshots: mocks.NewMockSnapshotStore(ctrl),
		settings:  mocks.NewMockSettingsStore(ctrl),
		setter:    mocks.NewMockInventorySetter(ctrl),
		runs:      mocks.NewMockRunRepository(ctrl),
	}
	r := services.NewReconciler(
		m.catalog, m.snapshots, m.settings, m.setter,
		locker.New(), m.runs, trackedCollection, helpers.TestLogger(),
	)
	return r, m
}

func members(ids ...string) []domain.CollectionMember {
	out := make([]domain.CollectionMember, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.CollectionMember{ID: id})
	}
	return out
}

func TestReconciler_Reconcile_AppliesDiff(t *testing.T) {
	r, m := newReconciler(t)
	ctx := context.Background()

	// Membership moved from {A, B} to {B, C}: C enters at the default
	// quantity, A leaves and is zeroed.
	m.catalog.EXPECT().
		CollectionMembers(ctx, trackedCollection).
		Return(members("A", "B", "C")[1:], nil) // {B, C}
	m.snapshots.EXPECT().
		Load(ctx, trackedCollection).
		Return([]string{"A", "B"}, true, nil)
	m.settings.EXPECT().
		DefaultQuantity(ctx).
		Return(10, nil)
	m.catalog.EXPECT().
		VariantStock(ctx, "C").
		Return(nil, nil) // no existing stock, so the default applies
	m.setter.EXPECT().
		SetInventory(ctx, "C", 10).
		Return(domain.OutcomeSuccess, nil)
	m.setter.EXPECT().
		SetInventory(ctx, "A", 0).
		Return(domain.OutcomeSuccess, nil)
	m.snapshots.EXPECT().
		Save(ctx, trackedCollection, []string{"B", "C"}).
		Return(nil)
	m.runs.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, run *domain.SyncRun) error {
			assert.Equal(t, domain.TriggerWebhook, run.Trigger)
			assert.Equal(t, domain.RunCompleted, run.Status)
			assert.Equal(t, 1, run.Added)
			assert.Equal(t, 1, run.Removed)
			return nil
		})

	result, err := r.Reconcile(ctx, trackedCollection)
	require.NoError(t, err)
	assert.Equal(t, domain.ReconcileCompleted, result.Status)
	assert.Equal(t, []string{"C"}, result.Added)
	assert.Equal(t, []string{"A"}, result.Removed)
	assert.False(t, result.Partial)
}

func TestReconciler_Reconcile_IgnoresUntrackedCollection(t *testing.T) {
	r, _ := newReconciler(t)

	result, err := r.Reconcile(context.Background(), "gid://shopify/Collection/999")
	require.NoError(t, err)
	assert.Equal(t, domain.ReconcileIgnored, result.Status)
}

func TestReconciler_Reconcile_SkipsWhenLocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := reconcilerMocks{
		catalog:   mocks.NewMockCatalogClient(ctrl),
		snapshots: mocks.NewMockSnapshotStore(ctrl),
		settings:  mocks.NewMockSettingsStore(ctrl),
		setter:    mocks.NewMockInventorySetter(ctrl),
		runs:      mocks.NewMockRunRepository(ctrl),
	}

	lock := locker.New()
	require.True(t, lock.TryAcquire(trackedCollection))
	defer lock.Release(trackedCollection)

	m.runs.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, run *domain.SyncRun) error {
			assert.Equal(t, domain.RunSkipped, run.Status)
			return nil
		})

	r := services.NewReconciler(
		m.catalog, m.snapshots, m.settings, m.setter,
		lock, m.runs, trackedCollection, helpers.TestLogger(),
	)

	result, err := r.Reconcile(context.Background(), trackedCollection)
	require.NoError(t, err)
	assert.Equal(t, domain.ReconcileSkipped, result.Status)
}

func TestReconciler_Reconcile_SeedsMissingSnapshot(t *testing.T) {
	r, m := newReconciler(t)
	ctx := context.Background()

	m.catalog.EXPECT().
		CollectionMembers(ctx, trackedCollection).
		Return(members("A", "B"), nil)
	m.snapshots.EXPECT().
		Load(ctx, trackedCollection).
		Return(nil, false, nil)
	// Seeding writes the snapshot without touching any inventory.
	m.snapshots.EXPECT().
		Save(ctx, trackedCollection, []string{"A", "B"}).
		Return(nil)
	m.runs.EXPECT().
		Record(ctx, gomock.Any()).
		Return(nil)

	result, err := r.Reconcile(ctx, trackedCollection)
	require.NoError(t, err)
	assert.Equal(t, domain.ReconcileCompleted, result.Status)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
}

func TestReconciler_Reconcile_UnchangedMembership(t *testing.T) {
	r, m := newReconciler(t)
	ctx := context.Background()

	m.catalog.EXPECT().
		CollectionMembers(ctx, trackedCollection).
		Return(members("A", "B"), nil)
	m.snapshots.EXPECT().
		Load(ctx, trackedCollection).
		Return([]string{"A", "B"}, true, nil)
	m.runs.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, run *domain.SyncRun) error {
			assert.Equal(t, domain.RunCompleted, run.Status)
			assert.Zero(t, run.Added)
			assert.Zero(t, run.Removed)
			return nil
		})

	result, err := r.Reconcile(ctx, trackedCollection)
	require.NoError(t, err)
	assert.Equal(t, domain.ReconcileCompleted, result.Status)
}

func TestReconciler_Reconcile_SkipsStockedAddition(t *testing.T) {
	r, m := newReconciler(t)
	ctx := context.Background()

	m.catalog.EXPECT().
		CollectionMembers(ctx, trackedCollection).
		Return(members("A", "B"), nil)
	m.snapshots.EXPECT().
		Load(ctx, trackedCollection).
		Return([]string{"A"}, true, nil)
	m.settings.EXPECT().
		DefaultQuantity(ctx).
		Return(15, nil)
	// B already carries stock; no quantity write must happen.
	m.catalog.EXPECT().
		VariantStock(ctx, "B").
		Return([]domain.VariantStock{
			{
				InventoryItemID: "gid://shopify/InventoryItem/21",
				Locations: []domain.StockLocation{
					{LocationID: "gid://shopify/Location/1", Available: 7},
				},
			},
		}, nil)
	m.snapshots.EXPECT().
		Save(ctx, trackedCollection, []string{"A", "B"}).
		Return(nil)
	m.runs.EXPECT().
		Record(ctx, gomock.Any()).
		Return(nil)

	result, err := r.Reconcile(ctx, trackedCollection)
	require.NoError(t, err)
	assert.Equal(t, domain.ReconcileCompleted, result.Status)
	assert.False(t, result.Partial)
}

func TestReconciler_Reconcile_PartialApplication(t *testing.T) {
	r, m := newReconciler(t)
	ctx := context.Background()

	m.catalog.EXPECT().
		CollectionMembers(ctx, trackedCollection).
		Return(members("B"), nil)
	m.snapshots.EXPECT().
		Load(ctx, trackedCollection).
		Return([]string{"A", "B"}, true, nil)
	m.setter.EXPECT().
		SetInventory(ctx, "A", 0).
		Return(domain.OutcomePartial, nil)
	// The snapshot still advances on partial application.
	m.snapshots.EXPECT().
		Save(ctx, trackedCollection, []string{"B"}).
		Return(nil)
	m.runs.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, run *domain.SyncRun) error {
			assert.Equal(t, domain.RunPartial, run.Status)
			return nil
		})

	result, err := r.Reconcile(ctx, trackedCollection)
	require.NoError(t, err)
	assert.Equal(t, domain.ReconcileCompleted, result.Status)
	assert.True(t, result.Partial)
}

func TestReconciler_Reconcile_MemberListingFailure(t *testing.T) {
	r, m := newReconciler(t)
	ctx := context.Background()

	m.catalog.EXPECT().
		CollectionMembers(ctx, trackedCollection).
		Return(nil, errors.New("api unavailable"))
	m.runs.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, run *domain.SyncRun) error {
			assert.Equal(t, domain.RunFailed, run.Status)
			assert.Contains(t, run.Error, "api unavailable")
			return nil
		})

	_, err := r.Reconcile(ctx, trackedCollection)
	require.Error(t, err)
}

func TestReconciler_InitializeSnapshot(t *testing.T) {
	r, m := newReconciler(t)
	ctx := context.Background()

	m.catalog.EXPECT().
		CollectionMembers(ctx, trackedCollection).
		Return(members("A", "B", "C"), nil)
	m.snapshots.EXPECT().
		Save(ctx, trackedCollection, []string{"A", "B", "C"}).
		Return(nil)
	m.runs.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, run *domain.SyncRun) error {
			assert.Equal(t, domain.TriggerSeed, run.Trigger)
			assert.Equal(t, domain.RunCompleted, run.Status)
			return nil
		})

	ids, err := r.InitializeSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, ids)
}
