// internal/core/services/setter_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/ports"
	"github.com/ldplus/collsync/internal/core/services"
	"github.com/ldplus/collsync/test/helpers"
	"github.com/ldplus/collsync/test/mocks"
)

func TestSetter_SetInventory(t *testing.T) {
	productID := helpers.ProductGID(1)

	tests := []struct {
		name            string
		quantity        int
		setupMocks      func(*mocks.MockCatalogClient)
		expectedOutcome domain.InventoryOutcome
		expectedError   bool
	}{
		{
			name:     "writes_every_item_location_pair",
			quantity: 10,
			setupMocks: func(m *mocks.MockCatalogClient) {
				m.EXPECT().
					VariantStock(gomock.Any(), productID).
					Return([]domain.VariantStock{
						{
							VariantID:       "gid://shopify/ProductVariant/11",
							InventoryItemID: "gid://shopify/InventoryItem/21",
							Locations: []domain.StockLocation{
								{LocationID: "gid://shopify/Location/1", Name: "Main", Available: 0},
								{LocationID: "gid://shopify/Location/2", Name: "Annex", Available: 3},
							},
						},
						{
							VariantID:       "gid://shopify/ProductVariant/12",
							InventoryItemID: "gid://shopify/InventoryItem/22",
							Locations: []domain.StockLocation{
								{LocationID: "gid://shopify/Location/1", Name: "Main", Available: 0},
							},
						},
					}, nil)
				m.EXPECT().
					SetInventoryQuantity(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, in ports.SetQuantityInput) error {
						assert.Equal(t, 10, in.Quantity)
						assert.Equal(t, "correction", in.Reason)
						return nil
					}).
					Times(3)
			},
			expectedOutcome: domain.OutcomeSuccess,
		},
		{
			name:     "variant_without_locations_is_skipped",
			quantity: 5,
			setupMocks: func(m *mocks.MockCatalogClient) {
				m.EXPECT().
					VariantStock(gomock.Any(), productID).
					Return([]domain.VariantStock{
						{
							VariantID:       "gid://shopify/ProductVariant/11",
							InventoryItemID: "gid://shopify/InventoryItem/21",
						},
					}, nil)
			},
			expectedOutcome: domain.OutcomeSuccess,
		},
		{
			name:     "no_variants_is_a_noop",
			quantity: 5,
			setupMocks: func(m *mocks.MockCatalogClient) {
				m.EXPECT().
					VariantStock(gomock.Any(), productID).
					Return(nil, nil)
			},
			expectedOutcome: domain.OutcomeSuccess,
		},
		{
			name:     "partial_when_some_writes_fail",
			quantity: 0,
			setupMocks: func(m *mocks.MockCatalogClient) {
				m.EXPECT().
					VariantStock(gomock.Any(), productID).
					Return([]domain.VariantStock{
						{
							VariantID:       "gid://shopify/ProductVariant/11",
							InventoryItemID: "gid://shopify/InventoryItem/21",
							Locations: []domain.StockLocation{
								{LocationID: "gid://shopify/Location/1", Available: 4},
								{LocationID: "gid://shopify/Location/2", Available: 2},
							},
						},
					}, nil)
				gomock.InOrder(
					m.EXPECT().
						SetInventoryQuantity(gomock.Any(), gomock.Any()).
						Return(nil),
					m.EXPECT().
						SetInventoryQuantity(gomock.Any(), gomock.Any()).
						Return(errors.New("throttled")),
				)
			},
			expectedOutcome: domain.OutcomePartial,
		},
		{
			name:     "failure_when_every_write_fails",
			quantity: 0,
			setupMocks: func(m *mocks.MockCatalogClient) {
				m.EXPECT().
					VariantStock(gomock.Any(), productID).
					Return([]domain.VariantStock{
						{
							VariantID:       "gid://shopify/ProductVariant/11",
							InventoryItemID: "gid://shopify/InventoryItem/21",
							Locations: []domain.StockLocation{
								{LocationID: "gid://shopify/Location/1", Available: 4},
							},
						},
					}, nil)
				m.EXPECT().
					SetInventoryQuantity(gomock.Any(), gomock.Any()).
					Return(errors.New("throttled"))
			},
			expectedOutcome: domain.OutcomeFailure,
		},
		{
			name:     "stock_lookup_error_is_raised",
			quantity: 5,
			setupMocks: func(m *mocks.MockCatalogClient) {
				m.EXPECT().
					VariantStock(gomock.Any(), productID).
					Return(nil, errors.New("api unavailable"))
			},
			expectedOutcome: domain.OutcomeFailure,
			expectedError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			catalog := mocks.NewMockCatalogClient(ctrl)
			tt.setupMocks(catalog)

			setter := services.NewSetter(catalog, helpers.TestLogger())
			outcome, err := setter.SetInventory(context.Background(), productID, tt.quantity)

			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expectedOutcome, outcome)
		})
	}
}
