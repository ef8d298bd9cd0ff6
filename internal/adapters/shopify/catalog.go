// internal/adapters/shopify/catalog.go
package shopify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/ports"
)

// Metafield namespaces and keys used by the sync core.
const (
	NamespaceApp    = "app"
	NamespaceCustom = "custom"

	KeySnapshot        = "product_ids"
	KeyDefaultQuantity = "default_inventory_quantity"
	KeyExpirationHours = "expired_inventory_hours"
	KeyExpirationDate  = "Date"

	TypeNumberInteger        = "number_integer"
	TypeProductReferenceList = "list.product_reference"
)

// CatalogConfig holds page sizes for the paginated listings.
type CatalogConfig struct {
	MemberPageSize   int
	VariantPageSize  int
	LocationPageSize int
}

// Catalog implements the catalog capability surface over the Admin API.
type Catalog struct {
	client *Client
	cfg    CatalogConfig
	logger *slog.Logger

	// shop ID is stable for the process lifetime
	shopMu sync.Mutex
	shopID string
}

// Statically assert that *Catalog implements the CatalogClient interface.
var _ ports.CatalogClient = (*Catalog)(nil)

// NewCatalog creates a new catalog adapter.
func NewCatalog(client *Client, cfg CatalogConfig, logger *slog.Logger) *Catalog {
	if cfg.MemberPageSize <= 0 {
		cfg.MemberPageSize = 50
	}
	if cfg.VariantPageSize <= 0 {
		cfg.VariantPageSize = 10
	}
	if cfg.LocationPageSize <= 0 {
		cfg.LocationPageSize = 10
	}
	return &Catalog{
		client: client,
		cfg:    cfg,
		logger: logger.With(slog.String("adapter", "catalog")),
	}
}

// ShopID returns the shop's global ID, fetching it once and memoizing.
func (c *Catalog) ShopID(ctx context.Context) (string, error) {
	c.shopMu.Lock()
	defer c.shopMu.Unlock()

	if c.shopID != "" {
		return c.shopID, nil
	}

	var resp struct {
		Shop struct {
			ID string `json:"id"`
		} `json:"shop"`
	}
	if err := c.client.Do(ctx, `{ shop { id } }`, nil, &resp); err != nil {
		return "", fmt.Errorf("failed to fetch shop id: %w", err)
	}
	if resp.Shop.ID == "" {
		return "", fmt.Errorf("shop id missing from response")
	}

	c.shopID = resp.Shop.ID
	return c.shopID, nil
}

const collectionMembersQuery = `
query collectionMembers($id: ID!, $first: Int!, $after: String) {
  collection(id: $id) {
    products(first: $first, after: $after) {
      pageInfo { hasNextPage endCursor }
      edges {
        node {
          id
          title
          metafield(namespace: "custom", key: "Date") { value }
        }
      }
    }
  }
}`

// CollectionMembers lists the collection's current membership, following
// pagination cursors until exhausted. Each member carries its expiration
// date metafield when present; a malformed date value is reported as a
// member without a date, not a listing failure.
func (c *Catalog) CollectionMembers(ctx context.Context, collectionID string) ([]domain.CollectionMember, error) {
	var members []domain.CollectionMember
	var after *string

	for {
		variables := map[string]interface{}{
			"id":    collectionID,
			"first": c.cfg.MemberPageSize,
		}
		if after != nil {
			variables["after"] = *after
		}

		var resp struct {
			Collection *struct {
				Products struct {
					PageInfo struct {
						HasNextPage bool   `json:"hasNextPage"`
						EndCursor   string `json:"endCursor"`
					} `json:"pageInfo"`
					Edges []struct {
						Node struct {
							ID        string `json:"id"`
							Title     string `json:"title"`
							Metafield *struct {
								Value string `json:"value"`
							} `json:"metafield"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"products"`
			} `json:"collection"`
		}

		if err := c.client.Do(ctx, collectionMembersQuery, variables, &resp); err != nil {
			return nil, fmt.Errorf("failed to list collection members: %w", err)
		}
		if resp.Collection == nil {
			return nil, fmt.Errorf("collection %s not found", collectionID)
		}

		for _, edge := range resp.Collection.Products.Edges {
			member := domain.CollectionMember{
				ID:    edge.Node.ID,
				Title: edge.Node.Title,
			}
			if mf := edge.Node.Metafield; mf != nil && mf.Value != "" {
				date, err := domain.ParseDate(mf.Value)
				if err != nil {
					c.logger.WarnContext(ctx, "unparseable expiration date metafield",
						slog.String("product_id", edge.Node.ID),
						slog.String("value", mf.Value))
				} else {
					member.ExpiresOn = &date
				}
			}
			members = append(members, member)
		}

		if !resp.Collection.Products.PageInfo.HasNextPage {
			break
		}
		cursor := resp.Collection.Products.PageInfo.EndCursor
		after = &cursor
	}

	return members, nil
}

// Metafield reads one metafield. The owner type is derived from the
// global ID so shop, collection and product owners all resolve through
// their own query root.
func (c *Catalog) Metafield(ctx context.Context, ownerID, namespace, key string) (string, bool, error) {
	var query string
	variables := map[string]interface{}{
		"namespace": namespace,
		"key":       key,
	}

	switch {
	case strings.Contains(ownerID, "/Shop/"):
		query = `
query shopMetafield($namespace: String!, $key: String!) {
  shop { metafield(namespace: $namespace, key: $key) { value } }
}`
	case strings.Contains(ownerID, "/Collection/"):
		query = `
query collectionMetafield($id: ID!, $namespace: String!, $key: String!) {
  collection(id: $id) { metafield(namespace: $namespace, key: $key) { value } }
}`
		variables["id"] = ownerID
	case strings.Contains(ownerID, "/Product/"):
		query = `
query productMetafield($id: ID!, $namespace: String!, $key: String!) {
  product(id: $id) { metafield(namespace: $namespace, key: $key) { value } }
}`
		variables["id"] = ownerID
	default:
		return "", false, fmt.Errorf("unsupported metafield owner %q", ownerID)
	}

	var resp struct {
		Shop       *metafieldHolder `json:"shop"`
		Collection *metafieldHolder `json:"collection"`
		Product    *metafieldHolder `json:"product"`
	}
	if err := c.client.Do(ctx, query, variables, &resp); err != nil {
		return "", false, fmt.Errorf("failed to read metafield %s.%s: %w", namespace, key, err)
	}

	for _, holder := range []*metafieldHolder{resp.Shop, resp.Collection, resp.Product} {
		if holder != nil {
			if holder.Metafield == nil {
				return "", false, nil
			}
			return holder.Metafield.Value, true, nil
		}
	}
	return "", false, fmt.Errorf("metafield owner %s not found", ownerID)
}

type metafieldHolder struct {
	Metafield *struct {
		Value string `json:"value"`
	} `json:"metafield"`
}

const metafieldsSetMutation = `
mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields { id key }
    userErrors { field message }
  }
}`

// SetMetafield writes one metafield. Platform userErrors come back as an
// error value.
func (c *Catalog) SetMetafield(ctx context.Context, in ports.MetafieldInput) error {
	variables := map[string]interface{}{
		"metafields": []map[string]interface{}{{
			"ownerId":   in.OwnerID,
			"namespace": in.Namespace,
			"key":       in.Key,
			"type":      in.Type,
			"value":     in.Value,
		}},
	}

	var resp struct {
		MetafieldsSet struct {
			UserErrors UserErrors `json:"userErrors"`
		} `json:"metafieldsSet"`
	}
	if err := c.client.Do(ctx, metafieldsSetMutation, variables, &resp); err != nil {
		return fmt.Errorf("failed to set metafield %s.%s: %w", in.Namespace, in.Key, err)
	}
	if err := resp.MetafieldsSet.UserErrors.Err(); err != nil {
		return fmt.Errorf("metafield %s.%s rejected: %w", in.Namespace, in.Key, err)
	}
	return nil
}

// ProductDate reads one product's expiration date metafield.
func (c *Catalog) ProductDate(ctx context.Context, productID string) (domain.Date, bool, error) {
	value, found, err := c.Metafield(ctx, productID, NamespaceCustom, KeyExpirationDate)
	if err != nil || !found {
		return domain.Date{}, false, err
	}
	date, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, false, err
	}
	return date, true, nil
}

const variantStockQuery = `
query variantStock($id: ID!, $first: Int!, $after: String, $locations: Int!) {
  product(id: $id) {
    variants(first: $first, after: $after) {
      pageInfo { hasNextPage endCursor }
      edges {
        node {
          id
          inventoryItem {
            id
            inventoryLevels(first: $locations) {
              edges {
                node {
                  location { id name }
                  quantities(names: ["available"]) { name quantity }
                }
              }
            }
          }
        }
      }
    }
  }
}`

// VariantStock resolves every variant of the product with its inventory
// item and all locations that currently track a level for it, following
// variant pagination cursors.
func (c *Catalog) VariantStock(ctx context.Context, productID string) ([]domain.VariantStock, error) {
	var variants []domain.VariantStock
	var after *string

	for {
		variables := map[string]interface{}{
			"id":        productID,
			"first":     c.cfg.VariantPageSize,
			"locations": c.cfg.LocationPageSize,
		}
		if after != nil {
			variables["after"] = *after
		}

		var resp struct {
			Product *struct {
				Variants struct {
					PageInfo struct {
						HasNextPage bool   `json:"hasNextPage"`
						EndCursor   string `json:"endCursor"`
					} `json:"pageInfo"`
					Edges []struct {
						Node struct {
							ID            string `json:"id"`
							InventoryItem struct {
								ID              string `json:"id"`
								InventoryLevels struct {
									Edges []struct {
										Node struct {
											Location struct {
												ID   string `json:"id"`
												Name string `json:"name"`
											} `json:"location"`
											Quantities []struct {
												Name     string `json:"name"`
												Quantity int    `json:"quantity"`
											} `json:"quantities"`
										} `json:"node"`
									} `json:"edges"`
								} `json:"inventoryLevels"`
							} `json:"inventoryItem"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"variants"`
			} `json:"product"`
		}

		if err := c.client.Do(ctx, variantStockQuery, variables, &resp); err != nil {
			return nil, fmt.Errorf("failed to resolve variants for %s: %w", productID, err)
		}
		if resp.Product == nil {
			return nil, fmt.Errorf("product %s not found", productID)
		}

		for _, edge := range resp.Product.Variants.Edges {
			vs := domain.VariantStock{
				VariantID:       edge.Node.ID,
				InventoryItemID: edge.Node.InventoryItem.ID,
			}
			for _, levelEdge := range edge.Node.InventoryItem.InventoryLevels.Edges {
				loc := domain.StockLocation{
					LocationID: levelEdge.Node.Location.ID,
					Name:       levelEdge.Node.Location.Name,
				}
				for _, q := range levelEdge.Node.Quantities {
					if q.Name == "available" {
						loc.Available = q.Quantity
					}
				}
				vs.Locations = append(vs.Locations, loc)
			}
			variants = append(variants, vs)
		}

		if !resp.Product.Variants.PageInfo.HasNextPage {
			break
		}
		cursor := resp.Product.Variants.PageInfo.EndCursor
		after = &cursor
	}

	return variants, nil
}

const inventorySetMutation = `
mutation inventorySet($input: InventorySetQuantitiesInput!) {
  inventorySetQuantities(input: $input) {
    inventoryAdjustmentGroup { reason }
    userErrors { field message }
  }
}`

// SetInventoryQuantity issues one absolute quantity write, skipping the
// platform's compare-quantity optimistic-lock check.
func (c *Catalog) SetInventoryQuantity(ctx context.Context, in ports.SetQuantityInput) error {
	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"reason":                in.Reason,
			"name":                  "available",
			"ignoreCompareQuantity": true,
			"quantities": []map[string]interface{}{{
				"inventoryItemId": in.InventoryItemID,
				"locationId":      in.LocationID,
				"quantity":        in.Quantity,
			}},
		},
	}

	var resp struct {
		InventorySetQuantities struct {
			UserErrors UserErrors `json:"userErrors"`
		} `json:"inventorySetQuantities"`
	}
	if err := c.client.Do(ctx, inventorySetMutation, variables, &resp); err != nil {
		return fmt.Errorf("failed to set inventory quantity: %w", err)
	}
	if err := resp.InventorySetQuantities.UserErrors.Err(); err != nil {
		return fmt.Errorf("inventory quantity rejected: %w", err)
	}
	return nil
}

const collectionRemoveMutation = `
mutation collectionRemoveProducts($id: ID!, $productIds: [ID!]!) {
  collectionRemoveProducts(id: $id, productIds: $productIds) {
    job { id }
    userErrors { field message }
  }
}`

// RemoveFromCollection removes the given products in one batch mutation.
func (c *Catalog) RemoveFromCollection(ctx context.Context, collectionID string, productIDs []string) (string, error) {
	variables := map[string]interface{}{
		"id":         collectionID,
		"productIds": productIDs,
	}

	var resp struct {
		CollectionRemoveProducts struct {
			Job *struct {
				ID string `json:"id"`
			} `json:"job"`
			UserErrors UserErrors `json:"userErrors"`
		} `json:"collectionRemoveProducts"`
	}
	if err := c.client.Do(ctx, collectionRemoveMutation, variables, &resp); err != nil {
		return "", fmt.Errorf("failed to remove products from collection: %w", err)
	}
	if err := resp.CollectionRemoveProducts.UserErrors.Err(); err != nil {
		return "", fmt.Errorf("collection remove rejected: %w", err)
	}

	var jobID string
	if resp.CollectionRemoveProducts.Job != nil {
		jobID = resp.CollectionRemoveProducts.Job.ID
	}
	return jobID, nil
}

const collectionReorderMutation = `
mutation collectionReorderProducts($id: ID!, $moves: [MoveInput!]!) {
  collectionReorderProducts(id: $id, moves: $moves) {
    job { id }
    userErrors { field message }
  }
}`

// ReorderCollection submits every product's target absolute position as
// a single batch mutation. The platform applies the batch atomically.
func (c *Catalog) ReorderCollection(ctx context.Context, collectionID string, moves []domain.ProductMove) (string, error) {
	moveInputs := make([]map[string]interface{}, len(moves))
	for i, move := range moves {
		// newPosition is a UInt serialized as a string in the Admin API.
		moveInputs[i] = map[string]interface{}{
			"id":          move.ProductID,
			"newPosition": strconv.Itoa(move.Position),
		}
	}

	variables := map[string]interface{}{
		"id":    collectionID,
		"moves": moveInputs,
	}

	var resp struct {
		CollectionReorderProducts struct {
			Job *struct {
				ID string `json:"id"`
			} `json:"job"`
			UserErrors UserErrors `json:"userErrors"`
		} `json:"collectionReorderProducts"`
	}
	if err := c.client.Do(ctx, collectionReorderMutation, variables, &resp); err != nil {
		return "", fmt.Errorf("failed to reorder collection: %w", err)
	}
	if err := resp.CollectionReorderProducts.UserErrors.Err(); err != nil {
		return "", fmt.Errorf("collection reorder rejected: %w", err)
	}

	var jobID string
	if resp.CollectionReorderProducts.Job != nil {
		jobID = resp.CollectionReorderProducts.Job.ID
	}
	return jobID, nil
}
