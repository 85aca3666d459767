package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/segyhp/fintrack/pkg/response"
)

// DBPinger is satisfied by *sqlx.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// CachePinger is satisfied by *cache.Store.
type CachePinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      DBPinger
	cache   CachePinger
	timeout time.Duration
}

func NewHealthHandler(db DBPinger, cache CachePinger, timeout time.Duration) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		timeout: timeout,
	}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health performs a basic health check
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	response.Success(w, status)
}

// Ready performs readiness check including database and cache connectivity.
// The cache is advisory, so a cache failure degrades the status without
// failing the probe.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		status.Status = "error"
		status.Checks["database"] = "failed: " + err.Error()
	} else {
		status.Checks["database"] = "ok"
	}

	cacheCtx, cacheCancel := context.WithTimeout(r.Context(), h.timeout)
	defer cacheCancel()

	if err := h.cache.Ping(cacheCtx); err != nil {
		if status.Status == "ok" {
			status.Status = "degraded"
		}
		status.Checks["cache"] = "failed: " + err.Error()
	} else {
		status.Checks["cache"] = "ok"
	}

	if status.Status == "error" {
		response.JSON(w, http.StatusServiceUnavailable, status)
		return
	}

	response.Success(w, status)
}
