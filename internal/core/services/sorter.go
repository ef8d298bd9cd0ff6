// internal/core/services/sorter.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/ports"
)

// Sorter reorders the tracked collection ascending by expiration date.
// Products without a date sort last; ties break on product ID so the
// order is deterministic.
type Sorter struct {
	catalog      ports.CatalogClient
	locker       ports.Locker
	runs         ports.RunRepository
	collectionID string
	logger       *slog.Logger
}

// Statically assert that *Sorter implements the Sorter interface.
var _ ports.Sorter = (*Sorter)(nil)

// NewSorter creates a new collection resort service
func NewSorter(
	catalog ports.CatalogClient,
	locker ports.Locker,
	runs ports.RunRepository,
	collectionID string,
	logger *slog.Logger,
) *Sorter {
	return &Sorter{
		catalog:      catalog,
		locker:       locker,
		runs:         runs,
		collectionID: collectionID,
		logger:       logger.With(slog.String("service", "sorter")),
	}
}

// Resort computes the target position of every member and submits the
// full reorder as a single batch mutation.
func (s *Sorter) Resort(ctx context.Context) (domain.SortResult, error) {
	if !s.locker.TryAcquire(s.collectionID) {
		s.logger.InfoContext(ctx, "collection busy, skipping resort",
			slog.String("collection_id", s.collectionID))
		s.record(ctx, domain.NewSyncRun(domain.TriggerResort, s.collectionID).
			Finish(domain.RunSkipped, nil))
		return domain.SortResult{}, nil
	}
	defer s.locker.Release(s.collectionID)

	run := domain.NewSyncRun(domain.TriggerResort, s.collectionID)

	members, err := s.catalog.CollectionMembers(ctx, s.collectionID)
	if err != nil {
		err = fmt.Errorf("failed to list collection members: %w", err)
		s.record(ctx, run.Finish(domain.RunFailed, err))
		return domain.SortResult{}, err
	}

	moves := SortMoves(members)
	run.Moves = len(moves)

	if len(moves) == 0 {
		s.record(ctx, run.Finish(domain.RunCompleted, nil))
		return domain.SortResult{}, nil
	}

	jobID, err := s.catalog.ReorderCollection(ctx, s.collectionID, moves)
	if err != nil {
		err = fmt.Errorf("failed to reorder collection: %w", err)
		s.record(ctx, run.Finish(domain.RunFailed, err))
		return domain.SortResult{}, err
	}

	s.record(ctx, run.Finish(domain.RunCompleted, nil))

	s.logger.InfoContext(ctx, "collection reordered",
		slog.String("collection_id", s.collectionID),
		slog.Int("moves", len(moves)),
		slog.String("job_id", jobID))

	return domain.SortResult{Moves: moves, JobID: jobID}, nil
}

// SortMoves computes the target 0-based position of every member,
// ascending by expiration date. A missing date counts as infinitely far
// in the future.
func SortMoves(members []domain.CollectionMember) []domain.ProductMove {
	sorted := make([]domain.CollectionMember, len(members))
	copy(sorted, members)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.ExpiresOn == nil && b.ExpiresOn == nil:
			return a.ID < b.ID
		case a.ExpiresOn == nil:
			return false
		case b.ExpiresOn == nil:
			return true
		}
		as, bs := a.ExpiresOn.String(), b.ExpiresOn.String()
		if as != bs {
			return as < bs
		}
		return a.ID < b.ID
	})

	moves := make([]domain.ProductMove, 0, len(sorted))
	for pos, m := range sorted {
		moves = append(moves, domain.ProductMove{ProductID: m.ID, Position: pos})
	}
	return moves
}

func (s *Sorter) record(ctx context.Context, run *domain.SyncRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Record(ctx, run); err != nil {
		s.logger.ErrorContext(ctx, "failed to record sync run",
			slog.String("run_id", run.RunID.String()),
			slog.Any("error", err))
	}
}
