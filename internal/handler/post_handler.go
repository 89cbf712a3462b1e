package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"hypefeed/internal/models"
	"hypefeed/internal/service"
)

const degradedHeader = "X-Feed-Degraded"

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	id, err := h.PostService.CreatePost(r.Context(), req.UserID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, msgEmptyContent, http.StatusBadRequest)
			return
		}
		slog.ErrorContext(r.Context(), "create post failed", "user_id", req.UserID, "error", err)
		writeError(w, msgCreatePostFailed, http.StatusInternalServerError)
		return
	}

	writeJSON(w, models.CreatePostResponse{ID: id}, http.StatusCreated)
}

// ListFeed serves GET /posts?user_id=ID. A missing or malformed user_id
// reads the feed as nobody in particular.
func (h *Handlers) ListFeed(w http.ResponseWriter, r *http.Request) {
	viewerID := viewerFromQuery(r)

	posts, err := h.PostService.ListFeed(r.Context(), viewerID)
	if err != nil {
		if h.Cfg != nil && h.Cfg.FeedDegradedEmpty {
			slog.WarnContext(r.Context(), "feed unavailable, serving empty list", "viewer_id", viewerID, "error", err)
			w.Header().Set(degradedHeader, "true")
			writeJSON(w, []models.FeedPost{}, http.StatusOK)
			return
		}
		slog.ErrorContext(r.Context(), "list feed failed", "viewer_id", viewerID, "error", err)
		writeError(w, msgFeedFailed, http.StatusInternalServerError)
		return
	}

	writeJSON(w, posts, http.StatusOK)
}

func viewerFromQuery(r *http.Request) int64 {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return 0
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
