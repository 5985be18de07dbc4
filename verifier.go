package tokenauth

import (
	"context"
	"sync"

	"github.com/avylov/tokenauth/password"
)

// directoryVerifier is the default [CredentialVerifier]: user lookup through
// a [Directory], password check through argon2id. Every failure mode,
// including unknown usernames, deleted accounts, malformed stored hashes, and
// wrong passwords, collapses into [ErrAuthenticationFailed] so callers leak
// nothing about which part failed.
type directoryVerifier struct {
	directory Directory
	hasher    *password.Argon2
}

// NewDirectoryVerifier wires a [Directory] and an argon2id hasher into a
// [CredentialVerifier].
func NewDirectoryVerifier(dir Directory, hasher *password.Argon2) CredentialVerifier {
	return &directoryVerifier{directory: dir, hasher: hasher}
}

func (v *directoryVerifier) Verify(ctx context.Context, username, pass string) (Identity, error) {
	record, err := v.directory.GetByUsername(ctx, username)
	if err != nil {
		return Identity{}, ErrAuthenticationFailed
	}
	if record.Deleted {
		return Identity{}, ErrAuthenticationFailed
	}

	ok, err := v.hasher.Verify(pass, record.PasswordHash)
	if err != nil || !ok {
		return Identity{}, ErrAuthenticationFailed
	}

	return Identity{
		Username:    record.Username,
		Authorities: []Role{record.Role},
	}, nil
}

// MemoryDirectory is a mutex-guarded in-memory [Directory] for tests and
// examples. Not intended for production use.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]UserRecord
}

// NewMemoryDirectory returns an empty directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[string]UserRecord)}
}

// Put upserts a record, keyed by username.
func (d *MemoryDirectory) Put(record UserRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[record.Username] = record
}

// GetByUsername implements [Directory].
func (d *MemoryDirectory) GetByUsername(_ context.Context, username string) (UserRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	record, ok := d.users[username]
	if !ok {
		return UserRecord{}, ErrAuthenticationFailed
	}
	return record, nil
}
