// internal/core/services/setter.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/ports"
)

// inventoryWriteReason is recorded on every quantity write so the
// platform's inventory history attributes the change.
const inventoryWriteReason = "correction"

// Setter drives every (item, location) pair of a product to an absolute
// quantity. Partial failures are aggregated, never raised: the next
// reconciliation self-corrects any divergence.
type Setter struct {
	catalog ports.CatalogClient
	logger  *slog.Logger
}

// Statically assert that *Setter implements the InventorySetter interface.
var _ ports.InventorySetter = (*Setter)(nil)

// NewSetter creates a new inventory setter service
func NewSetter(catalog ports.CatalogClient, logger *slog.Logger) *Setter {
	return &Setter{
		catalog: catalog,
		logger:  logger.With(slog.String("service", "inventory_setter")),
	}
}

// SetInventory fans the target quantity out across all variants of the
// product and every location tracking their inventory items.
func (s *Setter) SetInventory(ctx context.Context, productID string, quantity int) (domain.InventoryOutcome, error) {
	variants, err := s.catalog.VariantStock(ctx, productID)
	if err != nil {
		return domain.OutcomeFailure, fmt.Errorf("failed to resolve variant stock for %s: %w", productID, err)
	}

	var attempted, failed int
	for _, variant := range variants {
		if len(variant.Locations) == 0 {
			s.logger.WarnContext(ctx, "variant has no stocked locations, skipping",
				slog.String("product_id", productID),
				slog.String("variant_id", variant.VariantID))
			continue
		}

		for _, loc := range variant.Locations {
			attempted++
			err := s.catalog.SetInventoryQuantity(ctx, ports.SetQuantityInput{
				InventoryItemID: variant.InventoryItemID,
				LocationID:      loc.LocationID,
				Quantity:        quantity,
				Reason:          inventoryWriteReason,
			})
			if err != nil {
				failed++
				s.logger.ErrorContext(ctx, "inventory quantity write failed",
					slog.String("product_id", productID),
					slog.String("inventory_item_id", variant.InventoryItemID),
					slog.String("location_id", loc.LocationID),
					slog.Any("error", err))
			}
		}
	}

	switch {
	case attempted == 0:
		// Nothing to write. The product either has no variants or no
		// location tracks any of its items.
		s.logger.WarnContext(ctx, "no inventory levels found for product",
			slog.String("product_id", productID))
		return domain.OutcomeSuccess, nil
	case failed == 0:
		s.logger.InfoContext(ctx, "inventory quantity applied",
			slog.String("product_id", productID),
			slog.Int("quantity", quantity),
			slog.Int("levels", attempted))
		return domain.OutcomeSuccess, nil
	case failed == attempted:
		return domain.OutcomeFailure, nil
	default:
		s.logger.WarnContext(ctx, "inventory quantity partially applied",
			slog.String("product_id", productID),
			slog.Int("failed", failed),
			slog.Int("attempted", attempted))
		return domain.OutcomePartial, nil
	}
}
