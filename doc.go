// Package tokenauth is the session and token lifecycle core for a multi-user
// backend: it authenticates credentials, issues signed access tokens and
// rotating refresh tokens, persists refresh-token state in Redis, and revokes
// session state on logout.
//
// The package is the public surface. It exposes [Service], [Builder],
// [Config], sentinel errors, and value types ([Identity], [TokenPair]).
// Token encoding lives in the jwt subpackage, refresh persistence in the
// refresh subpackage, and HTTP enforcement in the middleware subpackage;
// flow orchestration lives under internal/ and is never exported.
//
// Service methods are safe for concurrent use after construction through
// [Builder.Build]. Concurrent logins or refreshes for the same username race
// at the store: the last save wins and the losing refresh token is rejected
// on its next presentation. That is the intended single-session revocation
// semantic, not a defect.
//
// # What this package must NOT do
//
//   - Expose the Redis client or raw store errors in its public API.
//   - Distinguish "unknown username" from "wrong password" in any externally
//     observable way.
//   - Retry storage failures; they abort the operation and surface typed.
package tokenauth
