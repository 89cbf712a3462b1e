package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hypefeed/internal/models"
	"hypefeed/internal/service"
)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, msgFillAllFields, http.StatusBadRequest)
		return
	}

	identity, err := h.AuthService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeError(w, msgFillAllFields, http.StatusBadRequest)
		case errors.Is(err, service.ErrConflict):
			writeError(w, msgUserExists, http.StatusBadRequest)
		default:
			slog.ErrorContext(r.Context(), "register failed", "username", req.Username, "error", err)
			writeError(w, msgRegisterFailed, http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, identity, http.StatusCreated)
}

// Login answers 401 for every failure so callers cannot probe usernames.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	identity, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrAuth) {
			slog.ErrorContext(r.Context(), "login failed", "username", req.Username, "error", err)
		}
		writeError(w, msgInvalidCredentials, http.StatusUnauthorized)
		return
	}

	writeJSON(w, identity, http.StatusOK)
}
