package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/ports"
	"github.com/ldplus/collsync/internal/handlers"
	"github.com/ldplus/collsync/internal/workers"
	"github.com/ldplus/collsync/test/helpers"
	"github.com/ldplus/collsync/test/mocks"
)

type syncHandlerMocks struct {
	catalog *mocks.MockCatalogClient
	runs    *mocks.MockRunRepository
}

func newSyncHandler(t *testing.T) (*handlers.SyncHandler, syncHandlerMocks, *helpers.TestRedis) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := syncHandlerMocks{
		catalog: mocks.NewMockCatalogClient(ctrl),
		runs:    mocks.NewMockRunRepository(ctrl),
	}

	testRedis := helpers.SetupTestRedis(t)
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: testRedis.Server.Addr()})
	t.Cleanup(func() { asynqClient.Close() })

	h := handlers.NewSyncHandler(
		asynqClient,
		m.catalog,
		m.runs,
		"gid://shopify/Collection/42",
		helpers.TestLogger(),
	)
	return h, m, testRedis
}

func TestSyncHandler_InitializeSnapshot(t *testing.T) {
	t.Run("queues_initialization_on_the_worker", func(t *testing.T) {
		h, _, testRedis := newSyncHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshot/initialize", nil)
		w := httptest.NewRecorder()
		h.InitializeSnapshot(w, req)

		require.Equal(t, http.StatusAccepted, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "gid://shopify/Collection/42", resp["collection_id"])
		assert.Equal(t, "queued", resp["status"])
		assert.NotEmpty(t, resp["task_id"])

		inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: testRedis.Server.Addr()})
		defer inspector.Close()
		pending, err := inspector.ListPendingTasks("critical")
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, workers.TypeSnapshotInit, pending[0].Type)
	})

	t.Run("enqueue_failure_is_an_error", func(t *testing.T) {
		h, _, testRedis := newSyncHandler(t)
		testRedis.Server.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshot/initialize", nil)
		w := httptest.NewRecorder()
		h.InitializeSnapshot(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSyncHandler_ListProducts(t *testing.T) {
	t.Run("lists_members_with_expiration_dates", func(t *testing.T) {
		h, m, _ := newSyncHandler(t)

		m.catalog.EXPECT().
			CollectionMembers(gomock.Any(), "gid://shopify/Collection/42").
			Return([]domain.CollectionMember{
				helpers.CreateTestMember(t, 1, "2026-09-01"),
				helpers.CreateTestMember(t, 2, ""),
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		w := httptest.NewRecorder()
		h.ListProducts(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Count    int                    `json:"count"`
			Products []handlers.ProductView `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, helpers.ProductGID(1), resp.Products[0].ID)
		assert.Equal(t, "2026-09-01", resp.Products[0].ExpiresOn)
		assert.Empty(t, resp.Products[1].ExpiresOn)
	})

	t.Run("catalog_failure_is_bad_gateway", func(t *testing.T) {
		h, m, _ := newSyncHandler(t)

		m.catalog.EXPECT().
			CollectionMembers(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("graphql: throttled"))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		w := httptest.NewRecorder()
		h.ListProducts(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestSyncHandler_ListRuns(t *testing.T) {
	t.Run("passes_filters_through", func(t *testing.T) {
		h, m, _ := newSyncHandler(t)

		m.runs.EXPECT().
			List(gomock.Any(), ports.RunListParams{Trigger: "sweep", Status: "completed", Limit: 10}).
			Return([]domain.SyncRun{*helpers.CreateTestSyncRun(func(r *domain.SyncRun) {
				r.Trigger = domain.TriggerSweep
			})}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/runs?trigger=sweep&status=completed&limit=10", nil)
		w := httptest.NewRecorder()
		h.ListRuns(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Count int              `json:"count"`
			Runs  []domain.SyncRun `json:"runs"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, domain.TriggerSweep, resp.Runs[0].Trigger)
	})

	t.Run("invalid_limit_is_a_bad_request", func(t *testing.T) {
		h, _, _ := newSyncHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/runs?limit=zero", nil)
		w := httptest.NewRecorder()
		h.ListRuns(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty_history_returns_empty_list", func(t *testing.T) {
		h, m, _ := newSyncHandler(t)

		m.runs.EXPECT().
			List(gomock.Any(), ports.RunListParams{}).
			Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
		w := httptest.NewRecorder()
		h.ListRuns(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"count":0,"runs":[]}`, w.Body.String())
	})
}
