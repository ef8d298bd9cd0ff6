// internal/handlers/sync.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/ports"
	"github.com/ldplus/collsync/internal/workers"
)

// SyncHandler exposes the sync core's admin surface: snapshot seeding,
// the tracked collection's membership view and the run history.
type SyncHandler struct {
	asynqClient  *asynq.Client
	catalog      ports.CatalogClient
	runs         ports.RunRepository
	collectionID string
	logger       *slog.Logger
}

// NewSyncHandler creates a new sync admin handler
func NewSyncHandler(
	asynqClient *asynq.Client,
	catalog ports.CatalogClient,
	runs ports.RunRepository,
	collectionID string,
	logger *slog.Logger,
) *SyncHandler {
	return &SyncHandler{
		asynqClient:  asynqClient,
		catalog:      catalog,
		runs:         runs,
		collectionID: collectionID,
		logger:       logger.With(slog.String("handler", "sync")),
	}
}

// ProductView is one row of the membership listing.
type ProductView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ExpiresOn string `json:"expires_on,omitempty"`
}

// InitializeSnapshot handles POST /api/v1/snapshot/initialize.
// Seeding walks the whole collection, so it runs on the worker with its
// retry semantics rather than inside the request.
func (h *SyncHandler) InitializeSnapshot(w http.ResponseWriter, r *http.Request) {
	info, err := h.asynqClient.EnqueueContext(r.Context(), workers.NewSnapshotInitTask(),
		asynq.Queue("critical"),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to enqueue snapshot initialization",
			slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue snapshot initialization")
		return
	}

	h.logger.InfoContext(r.Context(), "snapshot initialization queued",
		slog.String("task_id", info.ID),
		slog.String("collection_id", h.collectionID))

	h.respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"collection_id": h.collectionID,
		"task_id":       info.ID,
		"status":        "queued",
	})
}

// ListProducts handles GET /api/v1/products
func (h *SyncHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	members, err := h.catalog.CollectionMembers(r.Context(), h.collectionID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list collection members",
			slog.Any("error", err))
		h.respondError(w, http.StatusBadGateway, "Failed to list products")
		return
	}

	products := make([]ProductView, 0, len(members))
	for _, m := range members {
		view := ProductView{ID: m.ID, Title: m.Title}
		if m.ExpiresOn != nil {
			view.ExpiresOn = m.ExpiresOn.String()
		}
		products = append(products, view)
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"collection_id": h.collectionID,
		"count":         len(products),
		"products":      products,
	})
}

// ListRuns handles GET /api/v1/runs
func (h *SyncHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	params := ports.RunListParams{
		Trigger: r.URL.Query().Get("trigger"),
		Status:  r.URL.Query().Get("status"),
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			h.respondError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		params.Limit = limit
	}

	runs, err := h.runs.List(r.Context(), params)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list sync runs",
			slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}

	if runs == nil {
		runs = []domain.SyncRun{}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(runs),
		"runs":  runs,
	})
}

func (h *SyncHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *SyncHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
