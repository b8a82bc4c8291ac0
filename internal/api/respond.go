package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rpattn/portfolio/internal/service"
)

type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

// writeError maps service errors onto the response contract: validation and
// reference failures are 400, missing records 404, everything else a generic
// 500 with the detail kept server-side.
func writeError(w http.ResponseWriter, log *slog.Logger, r *http.Request, err error) {
	var validationErr *service.ValidationError
	var refErr *service.ReferenceError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Details: validationErr.Problems})
	case errors.As(err, &refErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: refErr.Error()})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	default:
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// decodeJSON reads a request body into dst, reporting malformed JSON as a
// ValidationError so it lands on the 400 path.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return service.NewValidationError(fmt.Sprintf("invalid payload: %v", err))
	}
	return nil
}
