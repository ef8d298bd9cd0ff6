// internal/core/services/reconciler.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/ports"
)

// Reconciler orchestrates the webhook-triggered membership
// reconciliation: it diffs the collection's live membership against the
// persisted snapshot, applies inventory changes for products entering
// and leaving, and advances the snapshot.
type Reconciler struct {
	catalog      ports.CatalogClient
	snapshots    ports.SnapshotStore
	settings     ports.SettingsStore
	setter       ports.InventorySetter
	locker       ports.Locker
	runs         ports.RunRepository
	collectionID string
	logger       *slog.Logger
}

var (
	_ ports.Reconciler          = (*Reconciler)(nil)
	_ ports.SnapshotInitializer = (*Reconciler)(nil)
)

// NewReconciler creates a new reconciliation service for the tracked
// collection.
func NewReconciler(
	catalog ports.CatalogClient,
	snapshots ports.SnapshotStore,
	settings ports.SettingsStore,
	setter ports.InventorySetter,
	locker ports.Locker,
	runs ports.RunRepository,
	collectionID string,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		catalog:      catalog,
		snapshots:    snapshots,
		settings:     settings,
		setter:       setter,
		locker:       locker,
		runs:         runs,
		collectionID: collectionID,
		logger:       logger.With(slog.String("service", "reconciler")),
	}
}

// Reconcile handles one collection update event.
//
// Events for collections other than the tracked one are ignored without
// taking the lock. Lock contention yields ReconcileSkipped: duplicate
// webhook deliveries are expected, and the holder's final snapshot save
// makes the dropped event's changes visible to the next delivery.
func (r *Reconciler) Reconcile(ctx context.Context, collectionID string) (domain.ReconcileResult, error) {
	if collectionID != r.collectionID {
		r.logger.DebugContext(ctx, "event for untracked collection ignored",
			slog.String("collection_id", collectionID))
		return domain.ReconcileResult{Status: domain.ReconcileIgnored}, nil
	}

	if !r.locker.TryAcquire(r.collectionID) {
		r.logger.InfoContext(ctx, "reconciliation already in progress, skipping",
			slog.String("collection_id", r.collectionID))
		r.record(ctx, domain.NewSyncRun(domain.TriggerWebhook, r.collectionID).
			Finish(domain.RunSkipped, nil))
		return domain.ReconcileResult{Status: domain.ReconcileSkipped}, nil
	}
	defer r.locker.Release(r.collectionID)

	run := domain.NewSyncRun(domain.TriggerWebhook, r.collectionID)

	members, err := r.catalog.CollectionMembers(ctx, r.collectionID)
	if err != nil {
		err = fmt.Errorf("failed to list collection members: %w", err)
		r.record(ctx, run.Finish(domain.RunFailed, err))
		return domain.ReconcileResult{}, err
	}

	current := memberIDs(members)

	previous, found, err := r.snapshots.Load(ctx, r.collectionID)
	if err != nil {
		err = fmt.Errorf("failed to load membership snapshot: %w", err)
		r.record(ctx, run.Finish(domain.RunFailed, err))
		return domain.ReconcileResult{}, err
	}

	if !found {
		// First event ever: seed the snapshot from the live membership
		// without touching inventory. The products already in the
		// collection predate tracking.
		r.logger.InfoContext(ctx, "no snapshot found, seeding from live membership",
			slog.String("collection_id", r.collectionID),
			slog.Int("members", len(current)))
		if err := r.snapshots.Save(ctx, r.collectionID, current); err != nil {
			err = fmt.Errorf("failed to seed membership snapshot: %w", err)
			r.record(ctx, run.Finish(domain.RunFailed, err))
			return domain.ReconcileResult{}, err
		}
		r.record(ctx, run.Finish(domain.RunCompleted, nil))
		return domain.ReconcileResult{Status: domain.ReconcileCompleted}, nil
	}

	diff := domain.DiffMembership(previous, current)
	run.Added = len(diff.Added)
	run.Removed = len(diff.Removed)

	if len(diff.Added) == 0 && len(diff.Removed) == 0 {
		r.logger.InfoContext(ctx, "membership unchanged",
			slog.String("collection_id", r.collectionID),
			slog.Int("members", len(current)))
		r.record(ctx, run.Finish(domain.RunCompleted, nil))
		return domain.ReconcileResult{Status: domain.ReconcileCompleted}, nil
	}

	partial := false

	if len(diff.Added) > 0 {
		defaultQty, err := r.settings.DefaultQuantity(ctx)
		if err != nil {
			err = fmt.Errorf("failed to read default quantity: %w", err)
			r.record(ctx, run.Finish(domain.RunFailed, err))
			return domain.ReconcileResult{}, err
		}

		for _, productID := range diff.Added {
			if r.hasStock(ctx, productID) {
				// Already stocked, most likely re-added by hand. Leave
				// the manual quantities alone.
				r.logger.InfoContext(ctx, "added product already stocked, skipping quantity write",
					slog.String("product_id", productID))
				continue
			}
			outcome, err := r.setter.SetInventory(ctx, productID, defaultQty)
			if err != nil || outcome != domain.OutcomeSuccess {
				partial = true
				r.logger.WarnContext(ctx, "stocking added product did not fully apply",
					slog.String("product_id", productID),
					slog.String("outcome", string(outcome)),
					slog.Any("error", err))
			}
		}
	}

	for _, productID := range diff.Removed {
		outcome, err := r.setter.SetInventory(ctx, productID, 0)
		if err != nil || outcome != domain.OutcomeSuccess {
			partial = true
			r.logger.WarnContext(ctx, "zeroing removed product did not fully apply",
				slog.String("product_id", productID),
				slog.String("outcome", string(outcome)),
				slog.Any("error", err))
		}
	}

	// The snapshot advances even on partial application: the recorded
	// membership is what the collection actually contains, and lingering
	// inventory divergence surfaces in the run history.
	if err := r.snapshots.Save(ctx, r.collectionID, current); err != nil {
		err = fmt.Errorf("failed to save membership snapshot: %w", err)
		r.record(ctx, run.Finish(domain.RunFailed, err))
		return domain.ReconcileResult{}, err
	}

	status := domain.RunCompleted
	if partial {
		status = domain.RunPartial
	}
	r.record(ctx, run.Finish(status, nil))

	r.logger.InfoContext(ctx, "reconciliation completed",
		slog.String("collection_id", r.collectionID),
		slog.Int("added", len(diff.Added)),
		slog.Int("removed", len(diff.Removed)),
		slog.Bool("partial", partial))

	return domain.ReconcileResult{
		Status:  domain.ReconcileCompleted,
		Added:   diff.Added,
		Removed: diff.Removed,
		Partial: partial,
	}, nil
}

// InitializeSnapshot seeds the membership snapshot from the collection's
// current membership, overwriting any existing snapshot.
func (r *Reconciler) InitializeSnapshot(ctx context.Context) ([]string, error) {
	if !r.locker.TryAcquire(r.collectionID) {
		return nil, fmt.Errorf("collection %s is busy, try again", r.collectionID)
	}
	defer r.locker.Release(r.collectionID)

	run := domain.NewSyncRun(domain.TriggerSeed, r.collectionID)

	members, err := r.catalog.CollectionMembers(ctx, r.collectionID)
	if err != nil {
		err = fmt.Errorf("failed to list collection members: %w", err)
		r.record(ctx, run.Finish(domain.RunFailed, err))
		return nil, err
	}

	ids := memberIDs(members)
	if err := r.snapshots.Save(ctx, r.collectionID, ids); err != nil {
		err = fmt.Errorf("failed to save membership snapshot: %w", err)
		r.record(ctx, run.Finish(domain.RunFailed, err))
		return nil, err
	}

	r.record(ctx, run.Finish(domain.RunCompleted, nil))

	r.logger.InfoContext(ctx, "membership snapshot initialized",
		slog.String("collection_id", r.collectionID),
		slog.Int("members", len(ids)))

	return ids, nil
}

// hasStock reports whether any location tracks a positive available
// quantity for any variant of the product.
func (r *Reconciler) hasStock(ctx context.Context, productID string) bool {
	variants, err := r.catalog.VariantStock(ctx, productID)
	if err != nil {
		// Unknown stock state: fall through to the write, which is
		// idempotent anyway.
		r.logger.WarnContext(ctx, "failed to check current stock",
			slog.String("product_id", productID),
			slog.Any("error", err))
		return false
	}
	for _, variant := range variants {
		for _, loc := range variant.Locations {
			if loc.Available > 0 {
				return true
			}
		}
	}
	return false
}

// record persists the run best-effort. A failed audit write never fails
// the sync itself.
func (r *Reconciler) record(ctx context.Context, run *domain.SyncRun) {
	if r.runs == nil {
		return
	}
	if err := r.runs.Record(ctx, run); err != nil {
		r.logger.ErrorContext(ctx, "failed to record sync run",
			slog.String("run_id", run.RunID.String()),
			slog.Any("error", err))
	}
}

func memberIDs(members []domain.CollectionMember) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids
}
