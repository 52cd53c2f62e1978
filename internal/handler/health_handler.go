package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		slog.Warn("health check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Error:  "database is unreachable",
		})
		return
	}

	version, err := h.health.SchemaVersion(ctx)
	if err != nil {
		slog.Warn("schema version check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Error:  "schema version is unknown",
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		SchemaVersion: version,
	})
}
