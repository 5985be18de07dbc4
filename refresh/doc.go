// Package refresh persists refresh-token state in Redis: one live token per
// username, stored under a configured key prefix with TTL equal to the
// refresh lifetime. Saving overwrites any prior token for the username,
// which is the implicit revocation that makes rotated-out tokens permanently
// unusable server-side.
//
// Store methods never leak raw Redis errors. Connectivity failures are
// wrapped into the per-operation kinds [ErrSaveFailed], [ErrRetrieveFailed],
// and [ErrDeleteFailed], all of which also match [ErrUnavailable], so the
// session layer can distinguish "no such token" (business condition) from
// "store unreachable" (infrastructure condition).
package refresh
