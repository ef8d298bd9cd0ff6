// internal/adapters/db/run_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/ports"
)

const defaultRunListLimit = 50

// runRepository implements ports.RunRepository
type runRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewRunRepository creates a new sync run repository
func NewRunRepository(db *Database, logger *slog.Logger) ports.RunRepository {
	return &runRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "sync_runs")),
	}
}

// Record persists a finished sync run
func (r *runRepository) Record(ctx context.Context, run *domain.SyncRun) error {
	query := `
		INSERT INTO sync_runs (
			run_id, trigger, collection_id, status,
			added_count, removed_count, expired_count, move_count,
			error, started_at, finished_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	_, err := r.db.Exec(ctx, query,
		run.RunID, run.Trigger, run.CollectionID, run.Status,
		run.Added, run.Removed, run.Expired, run.Moves,
		run.Error, run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}

	r.logger.DebugContext(ctx, "sync run recorded",
		slog.String("run_id", run.RunID.String()),
		slog.String("trigger", string(run.Trigger)),
		slog.String("status", string(run.Status)))

	return nil
}

// List retrieves recent sync runs, newest first, with optional filters
func (r *runRepository) List(ctx context.Context, params ports.RunListParams) ([]domain.SyncRun, error) {
	qb := squirrel.Select(
		"run_id", "trigger", "collection_id", "status",
		"added_count", "removed_count", "expired_count", "move_count",
		"error", "started_at", "finished_at",
	).From("sync_runs").
		OrderBy("started_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if params.Trigger != "" {
		qb = qb.Where(squirrel.Eq{"trigger": params.Trigger})
	}
	if params.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": params.Status})
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultRunListLimit
	}
	qb = qb.Limit(uint64(limit))

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun
	for rows.Next() {
		var run domain.SyncRun
		err := rows.Scan(
			&run.RunID, &run.Trigger, &run.CollectionID, &run.Status,
			&run.Added, &run.Removed, &run.Expired, &run.Moves,
			&run.Error, &run.StartedAt, &run.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync runs: %w", err)
	}

	return runs, nil
}
