package middleware

import (
	"net/http"

	"github.com/avylov/tokenauth"
)

// Require wraps a handler and rejects anonymous requests with 401. Pair it
// with [Gate], which resolves the identity this guard checks.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := tokenauth.IdentityFromContext(r.Context()); !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole wraps a handler and rejects requests whose identity lacks the
// role. Anonymous requests get 401, authenticated-but-unauthorized get 403.
func RequireRole(role tokenauth.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := tokenauth.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !identity.HasRole(role) {
			http.Error(w, "insufficient authority", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
