package common

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the JSON error envelope: {"error": {"title", "description"}}.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the human-readable message shown to the user.
type ErrorDetail struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode JSON response", "err", err)
	}
}

// WriteError writes the error envelope with the status derived from err.
func WriteError(logger *slog.Logger, w http.ResponseWriter, err error, title, description string) {
	WriteJSON(logger, w, StatusFor(err), ErrorBody{Error: ErrorDetail{Title: title, Description: description}})
}
