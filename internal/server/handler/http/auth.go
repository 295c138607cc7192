package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akulikov/timelimit/internal/middleware"
)

// AuthService defines the authorization operations required by the
// HTTP handlers.
type AuthService interface {
	// Authorize verifies the password for the record and issues a new
	// auth key on success.
	Authorize(ctx context.Context, id, password string) (string, error)
	// Deauthorize deletes the record, revoking every issued key.
	Deauthorize(ctx context.Context, id, authKey string) error
}

// AuthHandler handles HTTP requests for key issuance and revocation.
type AuthHandler struct {
	// AuthService performs the underlying authorization operations.
	AuthService AuthService
}

// Authorize handles GET /api/auth/{id}?password= requests.
// On a password match it responds with a freshly issued auth key.
func (h *AuthHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !recordID(w, id) {
		return
	}
	password := r.URL.Query().Get("password")
	if password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "password is required"})
		return
	}

	key, err := h.AuthService.Authorize(r.Context(), id, password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"authKey": key,
	})
}

// Deauthorize handles DELETE /api/deauth/{id} requests.
// Any valid auth key deletes the whole record and all keys with it.
func (h *AuthHandler) Deauthorize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !recordID(w, id) {
		return
	}
	authKey := middleware.GetAuthKeyFromContext(r.Context())

	if err := h.AuthService.Deauthorize(r.Context(), id, authKey); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
