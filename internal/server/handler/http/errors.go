package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/akulikov/timelimit/internal/models"
	"github.com/akulikov/timelimit/internal/service"
)

// errorResponse is the JSON body for every failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a service error onto the HTTP status taxonomy:
// ValidationError → 400, ErrUnauthorized → 401, ErrNotFound → 404,
// anything else → 500.
func writeError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Client not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// recordID validates the {id} URL parameter as a UUID. Writes a 400 response
// and returns false when it is malformed.
func recordID(w http.ResponseWriter, id string) bool {
	if uuid.Validate(id) != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id: expected a UUID"})
		return false
	}
	return true
}
