// Package http provides HTTP routing and handlers for the timelimit
// synchronization API.
package http

import (
	"net/http"

	"github.com/akulikov/timelimit/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs an HTTP handler serving the synchronization API.
//
// Routes:
//
//	GET    /api/get/{id}     → stateHandler.Fetch
//	GET    /api/auth/{id}    → authHandler.Authorize
//	DELETE /api/deauth/{id}  → authHandler.Deauthorize
//	POST   /api/sync/{id}    → stateHandler.Sync
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger) — logs every request
//  2. BearerAuth                 — extracts the Authorization header key
//  3. AllowContentType           — rejects non-JSON bodies on /api/sync
func NewRouter(
	authHandler *AuthHandler,
	stateHandler *StateHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Make the bearer auth key available to every handler
	r.Use(middleware.BearerAuth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/get/{id}", stateHandler.Fetch)
		r.Get("/auth/{id}", authHandler.Authorize)
		r.Delete("/deauth/{id}", authHandler.Deauthorize)

		r.Group(func(r chi.Router) {
			// Only allow sync bodies with Content-Type: application/json
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/sync/{id}", stateHandler.Sync)
		})
	})

	return r
}
