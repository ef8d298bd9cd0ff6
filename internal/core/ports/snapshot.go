// internal/core/ports/snapshot.go
package ports

import "context"

// SnapshotStore persists the membership snapshot: the set of product IDs
// believed to be in the tracked collection as of the last successful
// reconciliation. The snapshot survives process restarts.
type SnapshotStore interface {
	// Load returns the last persisted snapshot. found is false when the
	// snapshot has never been initialized.
	Load(ctx context.Context, collectionID string) (ids []string, found bool, err error)

	// Save overwrites the snapshot with the full current membership.
	Save(ctx context.Context, collectionID string, ids []string) error
}
