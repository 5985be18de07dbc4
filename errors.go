package tokenauth

import "errors"

var (
	// ErrAuthenticationFailed covers bad credentials and refresh-token
	// mismatch. It never reveals whether the username exists.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrTokenInvalid covers malformed, unsigned, wrong-algorithm, and
	// expired tokens. The precise cause is logged, not returned.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenNotFound means no active refresh session exists for the
	// subject (already logged out, or rotated away).
	ErrTokenNotFound = errors.New("no active session for subject")
	// ErrStorageSave is an exported constant or variable used by the session service.
	ErrStorageSave = errors.New("refresh token save failed")
	// ErrStorageRetrieve is an exported constant or variable used by the session service.
	ErrStorageRetrieve = errors.New("refresh token retrieve failed")
	// ErrStorageDelete is an exported constant or variable used by the session service.
	ErrStorageDelete = errors.New("refresh token delete failed")
	// ErrServiceNotReady is an exported constant or variable used by the session service.
	ErrServiceNotReady = errors.New("service not initialized")
)
