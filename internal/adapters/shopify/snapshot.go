// internal/adapters/shopify/snapshot.go
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ldplus/collsync/internal/core/ports"
)

// SnapshotStore persists the membership snapshot as a collection-level
// metafield holding a JSON array of product GIDs. The metafield survives
// process restarts, which is what makes the reconciliation protocol
// self-correcting across deploys.
type SnapshotStore struct {
	catalog ports.CatalogClient
	logger  *slog.Logger
}

// Statically assert that *SnapshotStore implements the SnapshotStore port.
var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a metafield-backed snapshot store.
func NewSnapshotStore(catalog ports.CatalogClient, logger *slog.Logger) *SnapshotStore {
	return &SnapshotStore{
		catalog: catalog,
		logger:  logger.With(slog.String("adapter", "snapshot_store")),
	}
}

// Load returns the last persisted snapshot for the collection. found is
// false when the snapshot metafield has never been written.
func (s *SnapshotStore) Load(ctx context.Context, collectionID string) ([]string, bool, error) {
	value, found, err := s.catalog.Metafield(ctx, collectionID, NamespaceApp, KeySnapshot)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load membership snapshot: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, false, fmt.Errorf("corrupt membership snapshot: %w", err)
	}
	return ids, true, nil
}

// Save overwrites the snapshot with the full current membership list.
func (s *SnapshotStore) Save(ctx context.Context, collectionID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	value, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode membership snapshot: %w", err)
	}

	err = s.catalog.SetMetafield(ctx, ports.MetafieldInput{
		OwnerID:   collectionID,
		Namespace: NamespaceApp,
		Key:       KeySnapshot,
		Type:      TypeProductReferenceList,
		Value:     string(value),
	})
	if err != nil {
		return fmt.Errorf("failed to persist membership snapshot: %w", err)
	}

	s.logger.DebugContext(ctx, "membership snapshot persisted",
		slog.String("collection_id", collectionID),
		slog.Int("products", len(ids)))
	return nil
}
