// internal/core/ports/sync.go
package ports

import (
	"context"

	"github.com/ldplus/collsync/internal/core/domain"
)

// Reconciler is the application service port for the webhook-triggered
// membership reconciliation. Implemented by services.Reconciler.
type Reconciler interface {
	// Reconcile diffs the collection's current membership against the
	// persisted snapshot and applies inventory changes. Events for
	// collections other than the tracked one yield ReconcileIgnored;
	// lock contention yields ReconcileSkipped.
	Reconcile(ctx context.Context, collectionID string) (domain.ReconcileResult, error)
}

// InventorySetter drives every (item, location) pair of a product to an
// absolute target quantity. Implemented by services.Setter.
type InventorySetter interface {
	SetInventory(ctx context.Context, productID string, quantity int) (domain.InventoryOutcome, error)
}

// Sweeper removes products whose expiration cutoff has passed from the
// tracked collection. Implemented by services.Sweeper.
type Sweeper interface {
	Sweep(ctx context.Context) (domain.SweepResult, error)
}

// Sorter reorders the tracked collection ascending by expiration date.
// Implemented by services.Sorter.
type Sorter interface {
	Resort(ctx context.Context) (domain.SortResult, error)
}

// SnapshotInitializer seeds the membership snapshot from the
// collection's current membership. Implemented by services.Reconciler.
type SnapshotInitializer interface {
	InitializeSnapshot(ctx context.Context) (ids []string, err error)
}
