// internal/core/services/sorter_test.go
package services_test

import (
	"context"
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

func TestSortMoves(t *testing.T) {
	tests := []struct {
		name     string
		members  []domain.CollectionMember
		expected []domain.ProductMove
	}{
		{
			name: "ascending_by_date",
			members: []domain.CollectionMember{
				helpers.CreateTestMember(t, 1, "2024-03-01"),
				helpers.CreateTestMember(t, 2, "2024-01-15"),
				helpers.CreateTestMember(t, 3, "2024-02-10"),
			},
			expected: []domain.ProductMove{
				{ProductID: helpers.ProductGID(2), Position: 0},
				{ProductID: helpers.ProductGID(3), Position: 1},
				{ProductID: helpers.ProductGID(1), Position: 2},
			},
		},
		{
			name: "missing_dates_sort_last",
			members: []domain.CollectionMember{
				helpers.CreateTestMember(t, 1, ""),
				helpers.CreateTestMember(t, 2, "2024-12-31"),
				helpers.CreateTestMember(t, 3, ""),
			},
			expected: []domain.ProductMove{
				{ProductID: helpers.ProductGID(2), Position: 0},
				{ProductID: helpers.ProductGID(1), Position: 1},
				{ProductID: helpers.ProductGID(3), Position: 2},
			},
		},
		{
			name: "equal_dates_break_ties_on_id",
			members: []domain.CollectionMember{
				helpers.CreateTestMember(t, 9, "2024-05-01"),
				helpers.CreateTestMember(t, 8, "2024-05-01"),
			},
			expected: []domain.ProductMove{
				{ProductID: helpers.ProductGID(8), Position: 0},
				{ProductID: helpers.ProductGID(9), Position: 1},
			},
		},
		{
			name:     "empty_membership",
			members:  nil,
			expected: []domain.ProductMove{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moves := services.SortMoves(tt.members)
			assert.Equal(t, tt.expected, moves)
		})
	}
}

func TestSorter_Resort(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogClient(ctrl)
	runs := mocks.NewMockRunRepository(ctrl)
	ctx := context.Background()

	catalog.EXPECT().
		CollectionMembers(ctx, trackedCollection).
		Return([]domain.CollectionMember{
			helpers.CreateTestMember(t, 1, "2024-03-01"),
			helpers.CreateTestMember(t, 2, "2024-01-15"),
		}, nil)
	catalog.EXPECT().
		ReorderCollection(ctx, trackedCollection, []domain.ProductMove{
			{ProductID: helpers.ProductGID(2), Position: 0},
			{ProductID: helpers.ProductGID(1), Position: 1},
		}).
		Return("gid://shopify/Job/888", nil)
	runs.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, run *domain.SyncRun) error {
			assert.Equal(t, domain.TriggerResort, run.Trigger)
			assert.Equal(t, domain.RunCompleted, run.Status)
			assert.Equal(t, 2, run.Moves)
			return nil
		})

	sorter := services.NewSorter(catalog, locker.New(), runs, trackedCollection, helpers.TestLogger())
	result, err := sorter.Resort(ctx)
	require.NoError(t, err)
	assert.Len(t, result.Moves, 2)
	assert.Equal(t, "gid://shopify/Job/888", result.JobID)
}

func TestSorter_Resort_SkipsWhenLocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogClient(ctrl)
	runs := mocks.NewMockRunRepository(ctrl)

	lock := locker.New()
	require.True(t, lock.TryAcquire(trackedCollection))
	defer lock.Release(trackedCollection)

	runs.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, run *domain.SyncRun) error {
			assert.Equal(t, domain.RunSkipped, run.Status)
			return nil
		})

	sorter := services.NewSorter(catalog, lock, runs, trackedCollection, helpers.TestLogger())
	result, err := sorter.Resort(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Moves)
}

func TestSorter_Resort_EmptyCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogClient(ctrl)
	runs := mocks.NewMockRunRepository(ctrl)
	ctx := context.Background()

	catalog.EXPECT().
		CollectionMembers(ctx, trackedCollection).
		Return(nil, nil)
	runs.EXPECT().Record(ctx, gomock.Any()).Return(nil)

	sorter := services.NewSorter(catalog, locker.New(), runs, trackedCollection, helpers.TestLogger())
	result, err := sorter.Resort(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Moves)
	assert.Empty(t, result.JobID)
}
