package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/akulikov/timelimit/internal/middleware"
	"github.com/akulikov/timelimit/internal/models"
	"github.com/akulikov/timelimit/internal/service"
)

// SyncService defines the synchronization operations required by the
// StateHandler.
type SyncService interface {
	// Reconcile decides whether the patch may be applied to the record.
	Reconcile(ctx context.Context, id, authKey string, patch models.RecordPatch, parentMode bool) (service.SyncResult, error)
	// Fetch returns the client-facing projection of the record.
	Fetch(ctx context.Context, id, authKey string) (models.ClientRecord, error)
}

// StateHandler handles HTTP requests for reading and synchronizing records.
type StateHandler struct {
	SyncService SyncService
}

// syncResponse is the JSON body of a sync outcome. Delta is either the
// issued auth key (creation) or the current record (stale rejection).
type syncResponse struct {
	Accepted bool   `json:"accepted"`
	Delta    any    `json:"delta,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Sync handles POST /api/sync/{id}?parentMode= requests.
// It decodes a partial record body, invokes the synchronization engine, and
// reports whether the changes were accepted, returning the current state as
// a delta when they were not.
func (h *StateHandler) Sync(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !recordID(w, id) {
		return
	}
	authKey := middleware.GetAuthKeyFromContext(r.Context())
	parentMode, _ := strconv.ParseBool(r.URL.Query().Get("parentMode"))

	var patch models.RecordPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, syncResponse{Error: "invalid body"})
		return
	}

	result, err := h.SyncService.Reconcile(r.Context(), id, authKey, patch, parentMode)
	if err != nil {
		writeSyncError(w, err)
		return
	}

	resp := syncResponse{Accepted: result.Accepted}
	switch {
	case result.AuthKey != "":
		resp.Delta = map[string]string{"authKey": result.AuthKey}
	case result.Delta != nil:
		resp.Delta = result.Delta
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeSyncError mirrors writeError but keeps the sync response shape.
func writeSyncError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, syncResponse{Error: vErr.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, syncResponse{Error: "Unauthorized"})
	default:
		writeJSON(w, http.StatusInternalServerError, syncResponse{Error: "internal error"})
	}
}

// Fetch handles GET /api/get/{id} requests and responds with the
// client-facing record.
func (h *StateHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !recordID(w, id) {
		return
	}
	authKey := middleware.GetAuthKeyFromContext(r.Context())

	rec, err := h.SyncService.Fetch(r.Context(), id, authKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
