package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/avylov/tokenauth"
)

// Header names used by the HTTP adapters.
const (
	HeaderAuthorization = "Authorization"
	HeaderRefreshToken  = "X-Refresh-Token"
)

// Authenticator verifies an access token and returns the identity it
// encodes. Satisfied by [tokenauth.Service].
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (tokenauth.Identity, error)
}

// gateObserver is an optional upgrade: authenticators that also count gate
// outcomes (like [tokenauth.Service]) get per-request metrics for free.
type gateObserver interface {
	ObserveGate(authenticated bool)
}

// Gate returns a middleware that attaches an identity to the request context
// when the Authorization header carries a valid access token. It never
// aborts: a missing or invalid token clears any inherited identity and the
// request proceeds anonymously. A panic inside token verification is
// contained the same way.
//
// Downstream handlers read the outcome with [tokenauth.IdentityFromContext].
func Gate(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, authenticated := resolveIdentity(auth, r)
			if observer, ok := auth.(gateObserver); ok {
				observer.ObserveGate(authenticated)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveIdentity returns the request context with the identity attached,
// or with any inherited identity cleared. It absorbs panics so the gate
// never takes the request down; next.ServeHTTP runs exactly once either way.
func resolveIdentity(auth Authenticator, r *http.Request) (ctx context.Context, authenticated bool) {
	ctx = r.Context()

	defer func() {
		if v := recover(); v != nil {
			log.Printf("tokenauth: panic during authentication: %v", v)
			ctx = tokenauth.ClearIdentity(r.Context())
			authenticated = false
		}
	}()

	token := r.Header.Get(HeaderAuthorization)
	if token == "" {
		return tokenauth.ClearIdentity(ctx), false
	}

	identity, err := auth.Authenticate(ctx, token)
	if err != nil {
		return tokenauth.ClearIdentity(ctx), false
	}

	return tokenauth.WithIdentity(ctx, identity), true
}
