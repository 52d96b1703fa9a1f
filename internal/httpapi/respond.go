// Package httpapi holds the small helpers shared by the module HTTP handlers.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

// WriteJSON encodes v as the response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing left to do but note it.
		slog.Default().Error("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// WriteError maps a service error onto an HTTP status. Unclassified errors
// become 500 and are logged; the body never leaks internals for those.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var validationErr *apperrors.ValidationError
	var deniedErr *apperrors.AccessDeniedError

	switch {
	case apperrors.IsNotFound(err):
		WriteJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.As(err, &validationErr):
		WriteJSON(w, http.StatusBadRequest, errorBody{Error: validationErr.Error()})
	case errors.As(err, &deniedErr):
		status := http.StatusForbidden
		if deniedErr.Reason == apperrors.ReasonNotAuthenticated {
			status = http.StatusUnauthorized
		}
		WriteJSON(w, status, errorBody{Error: deniedErr.Error()})
	default:
		logger.Error("internal error", "error", err)
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
