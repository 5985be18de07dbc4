// Package jwt encodes and verifies the signed tokens issued by the session
// service: HS256 JWTs whose claims carry the subject username, an ordered
// authority list, issuance and expiry timestamps, and a unique token ID.
//
// Access and refresh tokens share one signing key and claims shape but carry
// different TTLs and transport conventions: access tokens are prefixed with
// the "Bearer " scheme for the Authorization header, refresh tokens travel
// raw in a dedicated header. That asymmetry is preserved bit-for-bit for
// client interoperability.
//
// The signing key is process-wide and loaded once at startup. Key rotation
// is a known operational gap: tokens carry no kid and the codec holds no
// verify-key set, so replacing the key invalidates all outstanding tokens.
package jwt
