package handlers

import (
	"log/slog"
	"net/http"

	"hypefeed/internal/models"
)

// ToggleHype never reports a server failure to the caller: the toggle is
// logged and answered with action "none" so the client just refreshes.
func (h *Handlers) ToggleHype(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleHypeRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	action, err := h.HypeService.ToggleHype(r.Context(), req.UserID, req.PostID)
	if err != nil {
		slog.ErrorContext(r.Context(), "toggle hype failed",
			"user_id", req.UserID,
			"post_id", req.PostID,
			"error", err,
		)
		action = models.HypeNone
	}

	writeJSON(w, models.HypeResponse{Action: action}, http.StatusOK)
}
