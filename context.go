package tokenauth

import "context"

type identityContextKey struct{}

// WithIdentity attaches the authenticated identity to ctx for the remainder
// of the request. Downstream ownership checks read it back through
// [IdentityFromContext].
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// ClearIdentity removes any identity previously attached to ctx. The gate
// uses it on verification failure so a stale identity never leaks into the
// rest of the chain.
func ClearIdentity(ctx context.Context) context.Context {
	return context.WithValue(ctx, identityContextKey{}, nil)
}

// IdentityFromContext returns the request-scoped identity, if one was
// attached by the authorization gate or by [WithIdentity].
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}

	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
