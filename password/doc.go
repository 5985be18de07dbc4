// Package password provides argon2id hashing and verification in the PHC
// string format, used by the directory-backed credential verifier. Hashes
// embed their own parameters, so old hashes stay verifiable after the
// active parameters change; NeedsUpgrade flags them for rehash on next
// successful login.
package password
