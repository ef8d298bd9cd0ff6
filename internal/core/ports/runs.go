// internal/core/ports/runs.go
package ports

import (
	"context"

	"github.com/ldplus/collsync/internal/core/domain"
)

// RunListParams filters the run history listing.
type RunListParams struct {
	Trigger string
	Status  string
	Limit   int
}

// RunRepository persists the sync run audit trail.
// This interface is implemented by the database adapter.
type RunRepository interface {
	Record(ctx context.Context, run *domain.SyncRun) error
	List(ctx context.Context, params RunListParams) ([]domain.SyncRun, error)
}
