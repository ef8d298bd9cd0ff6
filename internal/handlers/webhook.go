// internal/handlers/webhook.go
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ldplus/collsync/internal/adapters/shopify"
	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/ports"
)

const maxWebhookBodyBytes = 1 << 20 // 1 MiB

// WebhookHandler receives collection update webhooks and drives the
// reconciliation. The response is always fast: the heavy lifting happens
// synchronously but within the platform's webhook deadline because a
// single collection's diff is small.
type WebhookHandler struct {
	reconciler   ports.Reconciler
	secret       string
	collectionID string
	logger       *slog.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(reconciler ports.Reconciler, secret, collectionID string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		reconciler:   reconciler,
		secret:       secret,
		collectionID: collectionID,
		logger:       logger.With(slog.String("handler", "webhook")),
	}
}

// collectionUpdatePayload is the relevant subset of the platform's
// collections/update webhook body.
type collectionUpdatePayload struct {
	ID int64 `json:"id"`
}

// CollectionUpdate handles POST /webhooks/collections/update
func (h *WebhookHandler) CollectionUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	// HMAC runs over the raw bytes, before any parsing.
	hmacHeader := r.Header.Get("X-Shopify-Hmac-Sha256")
	if !shopify.VerifyWebhookHMAC(body, hmacHeader, h.secret) {
		h.logger.WarnContext(r.Context(), "webhook HMAC verification failed",
			slog.String("topic", r.Header.Get("X-Shopify-Topic")),
			slog.String("shop", r.Header.Get("X-Shopify-Shop-Domain")))
		h.respondError(w, http.StatusUnauthorized, "HMAC verification failed")
		return
	}

	var payload collectionUpdatePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	collectionID := fmt.Sprintf("gid://shopify/Collection/%d", payload.ID)

	result, err := h.reconciler.Reconcile(r.Context(), collectionID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "reconciliation failed",
			slog.String("collection_id", collectionID),
			slog.Any("error", err))
		// A 500 makes the platform redeliver, which is what we want for
		// transient failures.
		h.respondError(w, http.StatusInternalServerError, "Reconciliation failed")
		return
	}

	switch result.Status {
	case domain.ReconcileIgnored:
		h.respondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
	case domain.ReconcileSkipped:
		h.respondJSON(w, http.StatusOK, map[string]string{"status": "skipped"})
	default:
		h.respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "completed",
			"added":   len(result.Added),
			"removed": len(result.Removed),
			"partial": result.Partial,
		})
	}
}

func (h *WebhookHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *WebhookHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
