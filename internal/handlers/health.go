// internal/handlers/health.go
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ldplus/collsync/internal/adapters/db"
	"github.com/ldplus/collsync/internal/pkg/config"
)

// Queues the worker consumes, in priority order. The health surface
// reports backlog per queue so a stalled sweep shows up before the shop
// notices unsold inventory lingering.
var workerQueues = []string{"critical", "default", "low"}

// HealthHandler reports the state of the sync service's three backing
// pieces: the run-history database, the settings cache, and the task
// queues the periodic sweep and resort ride on.
type HealthHandler struct {
	db        *db.Database
	redis     *redis.Client
	inspector *asynq.Inspector
	config    *config.Config
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(
	database *db.Database,
	redisClient *redis.Client,
	inspector *asynq.Inspector,
	cfg *config.Config,
	logger *slog.Logger,
) *HealthHandler {
	return &HealthHandler{
		db:        database,
		redis:     redisClient,
		inspector: inspector,
		config:    cfg,
		logger:    logger.With(slog.String("handler", "health")),
		startTime: time.Now(),
	}
}

// HealthReport is the body of GET /health.
type HealthReport struct {
	Status            string                 `json:"status"`
	Version           string                 `json:"version"`
	Environment       string                 `json:"environment"`
	TrackedCollection string                 `json:"tracked_collection"`
	Uptime            string                 `json:"uptime"`
	Timestamp         time.Time              `json:"timestamp"`
	Checks            map[string]CheckResult `json:"checks"`
}

// CheckResult is the outcome of probing one dependency.
type CheckResult struct {
	Status  string                 `json:"status"`
	Error   string                 `json:"error,omitempty"`
	Latency string                 `json:"latency,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report := HealthReport{
		Status:            "ok",
		Version:           h.config.App.Version,
		Environment:       h.config.App.Environment,
		TrackedCollection: h.config.TrackedCollectionGID(),
		Uptime:            time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:         time.Now(),
		Checks:            make(map[string]CheckResult),
	}

	report.Checks["database"] = h.checkDatabase(ctx)
	report.Checks["redis"] = h.checkRedis(ctx)
	if h.inspector != nil {
		report.Checks["queues"] = h.checkQueues(ctx)
	}

	for _, check := range report.Checks {
		if check.Status != "ok" {
			report.Status = "degraded"
			break
		}
	}

	statusCode := http.StatusOK
	if report.Status != "ok" {
		statusCode = http.StatusServiceUnavailable
	}
	h.writeJSON(ctx, w, statusCode, report)
}

// Readiness handles GET /ready. Ready means the service can accept a
// webhook: the run store and the cache both answer. Queue backlog never
// blocks readiness, a congested worker still wants fresh events.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ready := true
	details := make(map[string]string)

	if err := h.db.Ping(ctx); err != nil {
		ready = false
		details["database"] = "not ready"
	} else {
		details["database"] = "ready"
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		ready = false
		details["redis"] = "not ready"
	} else {
		details["redis"] = "ready"
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}
	h.writeJSON(ctx, w, statusCode, map[string]interface{}{
		"ready":              ready,
		"tracked_collection": h.config.TrackedCollectionGID(),
		"details":            details,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckResult {
	start := time.Now()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "database health check failed",
			slog.Any("error", err))
		return CheckResult{Status: "failing", Error: err.Error()}
	}

	result := CheckResult{
		Status:  "ok",
		Latency: time.Since(start).String(),
		Details: make(map[string]interface{}),
	}
	for k, v := range h.db.Health(ctx) {
		result.Details[k] = v
	}
	return result
}

func (h *HealthHandler) checkRedis(ctx context.Context) CheckResult {
	start := time.Now()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		h.logger.ErrorContext(ctx, "redis health check failed",
			slog.Any("error", err))
		return CheckResult{Status: "failing", Error: err.Error()}
	}

	poolStats := h.redis.PoolStats()
	return CheckResult{
		Status:  "ok",
		Latency: time.Since(start).String(),
		Details: map[string]interface{}{
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
		},
	}
}

// checkQueues reports backlog for the worker's queues and whether any
// worker is consuming them at all.
func (h *HealthHandler) checkQueues(ctx context.Context) CheckResult {
	start := time.Now()

	servers, err := h.inspector.Servers()
	if err != nil {
		h.logger.ErrorContext(ctx, "queue health check failed",
			slog.Any("error", err))
		return CheckResult{Status: "failing", Error: err.Error()}
	}

	result := CheckResult{
		Status:  "ok",
		Latency: time.Since(start).String(),
		Details: map[string]interface{}{
			"workers": len(servers),
		},
	}

	backlog := make(map[string]interface{})
	for _, queue := range workerQueues {
		qInfo, err := h.inspector.GetQueueInfo(queue)
		if err != nil {
			// Queue does not exist until its first task; not a failure.
			continue
		}
		backlog[queue] = map[string]interface{}{
			"pending":   qInfo.Pending,
			"active":    qInfo.Active,
			"scheduled": qInfo.Scheduled,
			"retry":     qInfo.Retry,
			"archived":  qInfo.Archived,
		}
	}
	result.Details["queues"] = backlog

	return result
}

func (h *HealthHandler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode health response",
			slog.Any("error", err))
	}
}
