// internal/core/ports/catalog.go
package ports

import (
	"context"

	"github.com/ldplus/collsync/internal/core/domain"
)

// MetafieldInput is one metafield write.
type MetafieldInput struct {
	OwnerID   string
	Namespace string
	Key       string
	Type      string
	Value     string
}

// SetQuantityInput is one absolute inventory quantity write for an
// (item, location) pair. The write carries a correction reason and tells
// the platform to skip its compare-quantity optimistic-lock check.
type SetQuantityInput struct {
	InventoryItemID string
	LocationID      string
	Quantity        int
	Reason          string
}

// CatalogClient defines the capability surface the sync core consumes
// from the commerce platform's Admin API.
// This interface is implemented by the Shopify adapter.
type CatalogClient interface {
	// ShopID returns the shop's global ID, used as the owner of
	// shop-level metafields.
	ShopID(ctx context.Context) (string, error)

	// CollectionMembers lists every product currently in the collection,
	// following pagination cursors, together with each product's
	// expiration date metafield when present. The listing is
	// duplicate-free.
	CollectionMembers(ctx context.Context, collectionID string) ([]domain.CollectionMember, error)

	// Metafield reads a single metafield value. found is false when the
	// owner has no metafield under that namespace/key.
	Metafield(ctx context.Context, ownerID, namespace, key string) (value string, found bool, err error)

	// SetMetafield writes a metafield. Platform userErrors are returned
	// as an error.
	SetMetafield(ctx context.Context, in MetafieldInput) error

	// ProductDate reads one product's expiration date metafield.
	ProductDate(ctx context.Context, productID string) (domain.Date, bool, error)

	// VariantStock resolves all variants of a product with their
	// inventory items and tracked stock locations.
	VariantStock(ctx context.Context, productID string) ([]domain.VariantStock, error)

	// SetInventoryQuantity drives one (item, location) pair to an
	// absolute quantity.
	SetInventoryQuantity(ctx context.Context, in SetQuantityInput) error

	// RemoveFromCollection removes the given products from the
	// collection in one batch mutation and returns the platform job ID.
	RemoveFromCollection(ctx context.Context, collectionID string, productIDs []string) (jobID string, err error)

	// ReorderCollection submits the target absolute position of every
	// product as a single batch mutation and returns the platform job ID.
	ReorderCollection(ctx context.Context, collectionID string, moves []domain.ProductMove) (jobID string, err error)
}
