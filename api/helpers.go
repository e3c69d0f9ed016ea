package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/garnizeh/buildsite/pkg/repository"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, map[string]string{"error": msg}, status)
}

// writeStoreError maps repository errors onto the HTTP taxonomy:
// not found 404, duplicate unique field 409, anything else 500 with
// the underlying error surfaced.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, "not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrConflict):
		writeError(w, err.Error(), http.StatusConflict)
	default:
		writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

// validDate checks the YYYY-MM-DD format used for project date ranges.
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
