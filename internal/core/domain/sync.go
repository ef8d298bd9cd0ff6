// internal/core/domain/sync.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CollectionMember is one product as returned by the collection
// membership listing, along with its expiration date metafield when the
// product carries one.
type CollectionMember struct {
	ID        string
	Title     string
	ExpiresOn *Date
}

// StockLocation is a stocking point at which an inventory item's
// quantity is tracked independently.
type StockLocation struct {
	LocationID string
	Name       string
	Available  int
}

// VariantStock describes one variant of a product together with its
// inventory item and every location that currently tracks a level for it.
type VariantStock struct {
	VariantID       string
	InventoryItemID string
	Locations       []StockLocation
}

// ProductMove expresses the target absolute position (0-based) of a
// product within the collection's manual sort order.
type ProductMove struct {
	ProductID string
	Position  int
}

// InventoryOutcome summarizes a fan-out of quantity writes across all
// (item, location) pairs of a product.
type InventoryOutcome string

const (
	OutcomeSuccess InventoryOutcome = "success"
	OutcomePartial InventoryOutcome = "partial"
	OutcomeFailure InventoryOutcome = "failure"
)

// ReconcileStatus is the outcome of one orchestrator invocation.
type ReconcileStatus string

const (
	// ReconcileCompleted means the diff was computed and applied and the
	// snapshot was persisted.
	ReconcileCompleted ReconcileStatus = "completed"
	// ReconcileSkipped means another reconciliation already held the lock
	// for this collection. Duplicate webhook deliveries are expected and
	// safely droppable, so this is a defined outcome, not an error.
	ReconcileSkipped ReconcileStatus = "skipped"
	// ReconcileIgnored means the event was for a collection other than
	// the tracked one.
	ReconcileIgnored ReconcileStatus = "ignored"
)

// ReconcileResult reports what a reconciliation run did.
type ReconcileResult struct {
	Status  ReconcileStatus
	Added   []string
	Removed []string
	// Partial is set when at least one per-product inventory update did
	// not fully apply. The snapshot is still persisted; the next run's
	// diff self-corrects any divergence.
	Partial bool
}

// SweepResult reports which products an expiration sweep removed.
type SweepResult struct {
	Expired []string
	JobID   string
}

// SortResult reports the reorder a resort run submitted.
type SortResult struct {
	Moves []ProductMove
	JobID string
}

// RunTrigger identifies what started a sync run.
type RunTrigger string

const (
	TriggerWebhook RunTrigger = "webhook"
	TriggerSweep   RunTrigger = "sweep"
	TriggerResort  RunTrigger = "resort"
	TriggerSeed    RunTrigger = "seed"
)

// RunStatus is the recorded outcome of a sync run.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunSkipped   RunStatus = "skipped"
	RunPartial   RunStatus = "partial"
	RunFailed    RunStatus = "failed"
)

// SyncRun is one row of the run history audit trail.
type SyncRun struct {
	RunID        uuid.UUID  `json:"run_id"`
	Trigger      RunTrigger `json:"trigger"`
	CollectionID string     `json:"collection_id"`
	Status       RunStatus  `json:"status"`
	Added        int        `json:"added"`
	Removed      int        `json:"removed"`
	Expired      int        `json:"expired"`
	Moves        int        `json:"moves"`
	Error        string     `json:"error,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   time.Time  `json:"finished_at"`
}

// NewSyncRun starts a run record for the given trigger.
func NewSyncRun(trigger RunTrigger, collectionID string) *SyncRun {
	return &SyncRun{
		RunID:        uuid.New(),
		Trigger:      trigger,
		CollectionID: collectionID,
		StartedAt:    time.Now().UTC(),
	}
}

// Finish stamps the run with its final status. A non-nil err is recorded
// verbatim.
func (r *SyncRun) Finish(status RunStatus, err error) *SyncRun {
	r.Status = status
	r.FinishedAt = time.Now().UTC()
	if err != nil {
		r.Error = err.Error()
	}
	return r
}
