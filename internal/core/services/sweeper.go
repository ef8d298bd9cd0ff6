// internal/core/services/sweeper.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/ports"
)

// Sweeper removes products whose expiration cutoff has passed from the
// tracked collection. The cutoff is each product's date at midnight in
// the reference zone, minus the configured hour offset.
type Sweeper struct {
	catalog      ports.CatalogClient
	settings     ports.SettingsStore
	locker       ports.Locker
	runs         ports.RunRepository
	collectionID string
	location     *time.Location
	now          func() time.Time
	logger       *slog.Logger
}

// Statically assert that *Sweeper implements the Sweeper interface.
var _ ports.Sweeper = (*Sweeper)(nil)

// NewSweeper creates a new expiration sweep service. now may be nil, in
// which case the wall clock is used.
func NewSweeper(
	catalog ports.CatalogClient,
	settings ports.SettingsStore,
	locker ports.Locker,
	runs ports.RunRepository,
	collectionID string,
	location *time.Location,
	now func() time.Time,
	logger *slog.Logger,
) *Sweeper {
	if now == nil {
		now = time.Now
	}
	return &Sweeper{
		catalog:      catalog,
		settings:     settings,
		locker:       locker,
		runs:         runs,
		collectionID: collectionID,
		location:     location,
		now:          now,
		logger:       logger.With(slog.String("service", "sweeper")),
	}
}

// Sweep lists the collection's membership, selects the expired products
// and removes them in one batch mutation. Products without a parseable
// expiration date never expire.
func (s *Sweeper) Sweep(ctx context.Context) (domain.SweepResult, error) {
	if !s.locker.TryAcquire(s.collectionID) {
		s.logger.InfoContext(ctx, "collection busy, skipping sweep",
			slog.String("collection_id", s.collectionID))
		s.record(ctx, domain.NewSyncRun(domain.TriggerSweep, s.collectionID).
			Finish(domain.RunSkipped, nil))
		return domain.SweepResult{}, nil
	}
	defer s.locker.Release(s.collectionID)

	run := domain.NewSyncRun(domain.TriggerSweep, s.collectionID)

	hours, err := s.settings.ExpirationHours(ctx)
	if err != nil {
		err = fmt.Errorf("failed to read expiration hours: %w", err)
		s.record(ctx, run.Finish(domain.RunFailed, err))
		return domain.SweepResult{}, err
	}

	members, err := s.catalog.CollectionMembers(ctx, s.collectionID)
	if err != nil {
		err = fmt.Errorf("failed to list collection members: %w", err)
		s.record(ctx, run.Finish(domain.RunFailed, err))
		return domain.SweepResult{}, err
	}

	now := s.now().In(s.location)
	var expired []string
	for _, m := range members {
		if m.ExpiresOn == nil {
			continue
		}
		if m.ExpiresOn.Expired(now, hours, s.location) {
			expired = append(expired, m.ID)
		}
	}

	run.Expired = len(expired)

	if len(expired) == 0 {
		s.logger.InfoContext(ctx, "no expired products",
			slog.String("collection_id", s.collectionID),
			slog.Int("members", len(members)))
		s.record(ctx, run.Finish(domain.RunCompleted, nil))
		return domain.SweepResult{}, nil
	}

	jobID, err := s.catalog.RemoveFromCollection(ctx, s.collectionID, expired)
	if err != nil {
		err = fmt.Errorf("failed to remove expired products: %w", err)
		s.record(ctx, run.Finish(domain.RunFailed, err))
		return domain.SweepResult{}, err
	}

	s.record(ctx, run.Finish(domain.RunCompleted, nil))

	s.logger.InfoContext(ctx, "expired products removed",
		slog.String("collection_id", s.collectionID),
		slog.Int("expired", len(expired)),
		slog.String("job_id", jobID))

	// Inventory zeroing for the removed products happens in the webhook
	// reconciliation the removal itself triggers.
	return domain.SweepResult{Expired: expired, JobID: jobID}, nil
}

func (s *Sweeper) record(ctx context.Context, run *domain.SyncRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Record(ctx, run); err != nil {
		s.logger.ErrorContext(ctx, "failed to record sync run",
			slog.String("run_id", run.RunID.String()),
			slog.Any("error", err))
	}
}
