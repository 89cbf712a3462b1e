package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"hypefeed/internal/models"
)

const (
	msgInvalidBody        = "Invalid request body."
	msgFillAllFields      = "Fill all fields."
	msgUserExists         = "User already exists."
	msgInvalidCredentials = "Invalid credentials."
	msgRegisterFailed     = "Error creating user"
	msgEmptyContent       = "Post content cannot be empty."
	msgCreatePostFailed   = "Error creating post"
	msgFeedFailed         = "Error loading feed"
	msgNotFound           = "Not found."
	msgMethodNotAllowed   = "Method not allowed."
)

// writeError sends the standard {"error": message} body.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, models.ErrorResponse{Error: message}, statusCode)
}

func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decodeJSON reads the body into dst and runs struct validation on it.
func (h *Handlers) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return h.Validate.Struct(dst)
}
