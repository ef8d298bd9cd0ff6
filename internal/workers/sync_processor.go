// internal/workers/sync_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ldplus/collsync/internal/core/ports"
)

const (
	TypeExpirationSweep  = "sync:expiration_sweep"
	TypeCollectionResort = "sync:collection_resort"
	TypeSnapshotInit     = "sync:snapshot_init"
)

// NewExpirationSweepTask creates a periodic expiration sweep task
func NewExpirationSweepTask() *asynq.Task {
	return asynq.NewTask(TypeExpirationSweep, nil)
}

// NewCollectionResortTask creates a periodic collection resort task
func NewCollectionResortTask() *asynq.Task {
	return asynq.NewTask(TypeCollectionResort, nil)
}

// NewSnapshotInitTask creates a one-off snapshot initialization task
func NewSnapshotInitTask() *asynq.Task {
	return asynq.NewTask(TypeSnapshotInit, nil)
}

// SyncProcessor handles the scheduled sync tasks. Lock contention inside
// a service is a successful no-op, not a retryable failure; real aborts
// propagate so asynq retries them.
type SyncProcessor struct {
	sweeper     ports.Sweeper
	sorter      ports.Sorter
	initializer ports.SnapshotInitializer
	logger      *slog.Logger
}

// NewSyncProcessor creates a new sync task processor
func NewSyncProcessor(
	sweeper ports.Sweeper,
	sorter ports.Sorter,
	initializer ports.SnapshotInitializer,
	logger *slog.Logger,
) *SyncProcessor {
	return &SyncProcessor{
		sweeper:     sweeper,
		sorter:      sorter,
		initializer: initializer,
		logger:      logger.With(slog.String("processor", "sync")),
	}
}

// ProcessExpirationSweep runs one expiration sweep
func (p *SyncProcessor) ProcessExpirationSweep(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	result, err := p.sweeper.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("expiration sweep failed: %w", err)
	}

	p.logger.InfoContext(ctx, "expiration sweep finished",
		slog.Int("expired", len(result.Expired)),
		slog.String("job_id", result.JobID),
		slog.Duration("took", time.Since(start)))

	return nil
}

// ProcessCollectionResort runs one collection resort
func (p *SyncProcessor) ProcessCollectionResort(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	result, err := p.sorter.Resort(ctx)
	if err != nil {
		return fmt.Errorf("collection resort failed: %w", err)
	}

	p.logger.InfoContext(ctx, "collection resort finished",
		slog.Int("moves", len(result.Moves)),
		slog.String("job_id", result.JobID),
		slog.Duration("took", time.Since(start)))

	return nil
}

// ProcessSnapshotInit seeds the membership snapshot
func (p *SyncProcessor) ProcessSnapshotInit(ctx context.Context, t *asynq.Task) error {
	ids, err := p.initializer.InitializeSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot initialization failed: %w", err)
	}

	p.logger.InfoContext(ctx, "snapshot initialized",
		slog.Int("members", len(ids)))

	return nil
}
