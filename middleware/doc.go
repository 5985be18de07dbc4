// Package middleware adapts the session service to net/http. The central
// piece is [Gate], a non-aborting authorization filter: it resolves an
// identity from the Authorization header when one is present and valid, and
// lets every request proceed either way. Endpoint-level guards like
// [Require] and [RequireRole] decide what an anonymous request may reach.
package middleware
