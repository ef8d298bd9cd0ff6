// internal/handlers/settings.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ldplus/collsync/internal/core/ports"
)

// SettingsHandler exposes the two shop-level sync settings over the
// admin API.
type SettingsHandler struct {
	settings ports.SettingsStore
	logger   *slog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings ports.SettingsStore, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		logger:   logger.With(slog.String("handler", "settings")),
	}
}

// UpdateQuantityRequest is the body for PUT /api/v1/settings/default-quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateHoursRequest is the body for PUT /api/v1/settings/expiration-hours
type UpdateHoursRequest struct {
	Hours int `json:"hours"`
}

// GetDefaultQuantity handles GET /api/v1/settings/default-quantity
func (h *SettingsHandler) GetDefaultQuantity(w http.ResponseWriter, r *http.Request) {
	quantity, err := h.settings.DefaultQuantity(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to read default quantity",
			slog.Any("error", err))
		h.respondError(w, http.StatusBadGateway, "Failed to read setting")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]int{"quantity": quantity})
}

// SetDefaultQuantity handles PUT /api/v1/settings/default-quantity
func (h *SettingsHandler) SetDefaultQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Quantity < 0 {
		h.respondError(w, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}

	if err := h.settings.SetDefaultQuantity(r.Context(), req.Quantity); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write default quantity",
			slog.Any("error", err))
		h.respondError(w, http.StatusBadGateway, "Failed to write setting")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]int{"quantity": req.Quantity})
}

// GetExpirationHours handles GET /api/v1/settings/expiration-hours
func (h *SettingsHandler) GetExpirationHours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.settings.ExpirationHours(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to read expiration hours",
			slog.Any("error", err))
		h.respondError(w, http.StatusBadGateway, "Failed to read setting")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]int{"hours": hours})
}

// SetExpirationHours handles PUT /api/v1/settings/expiration-hours
//
// Negative values are valid: they push the cutoff past midnight,
// extending a product's lifetime.
func (h *SettingsHandler) SetExpirationHours(w http.ResponseWriter, r *http.Request) {
	var req UpdateHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.settings.SetExpirationHours(r.Context(), req.Hours); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write expiration hours",
			slog.Any("error", err))
		h.respondError(w, http.StatusBadGateway, "Failed to write setting")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]int{"hours": req.Hours})
}

func (h *SettingsHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *SettingsHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
