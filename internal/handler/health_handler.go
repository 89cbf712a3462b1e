package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"hypefeed/internal/models"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		OK:        true,
		Timestamp: time.Now().UnixMilli(),
		Database:  "up",
	}

	if h.DB == nil {
		resp.Database = "down"
	} else if err := h.DB.HealthCheck(); err != nil {
		slog.WarnContext(r.Context(), "database health check failed", "error", err)
		resp.Database = "down"
	}

	writeJSON(w, resp, http.StatusOK)
}
