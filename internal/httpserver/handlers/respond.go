package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ranchbook/internal/storage"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	env := errorEnvelope{Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// respondStorageError maps storage sentinels to their HTTP status and
// falls back to 500 for anything unexpected.
func respondStorageError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, message, err)
	case errors.Is(err, storage.ErrConflict):
		respondError(w, http.StatusConflict, message, err)
	default:
		respondError(w, http.StatusInternalServerError, message, nil)
	}
}
