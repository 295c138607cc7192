// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const authKeyKey ctxKey = "authKey"

// BearerAuth extracts the auth key from the Authorization header and stores
// it in the request context. The header is accepted either as a raw key or
// as "Bearer <key>". Requests without a header pass through with an empty
// key; whether a key is required is decided per operation downstream.
func BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("Authorization")
		if after, ok := strings.CutPrefix(key, "Bearer "); ok {
			key = after
		}
		ctx := context.WithValue(r.Context(), authKeyKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAuthKeyFromContext extracts the bearer auth key from the request
// context. Returns an empty string if not found.
func GetAuthKeyFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(authKeyKey).(string); ok {
		return s
	}
	return ""
}
