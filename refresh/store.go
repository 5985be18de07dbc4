package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is matched by every infrastructure failure kind below.
var ErrUnavailable = errors.New("refresh store unavailable")

// ErrSaveFailed is an exported constant or variable used by the refresh store.
var ErrSaveFailed = errors.New("refresh token save failed")

// ErrRetrieveFailed is an exported constant or variable used by the refresh store.
var ErrRetrieveFailed = errors.New("refresh token retrieve failed")

// ErrDeleteFailed is an exported constant or variable used by the refresh store.
var ErrDeleteFailed = errors.New("refresh token delete failed")

// ErrNotFound is returned by Find when no live token exists for the
// username. It is a business condition, not an infrastructure failure.
var ErrNotFound = errors.New("refresh token not found")

// Store is a Redis-backed username -> refresh-token mapping with
// store-enforced TTL.
//
// Writes for the same username are last-write-wins: Redis treats the per-key
// SET as atomic, and a concurrent login or refresh race resolves to whichever
// save lands last. The loser's token is rejected on its next presentation,
// which is the intended single-session semantic.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore creates a refresh [Store] backed by the given Redis client.
// prefix namespaces the keys; ttl must equal the refresh-token lifetime so
// abandoned sessions expire with their tokens.
func NewStore(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) key(username string) string {
	return s.prefix + username
}

// Save upserts the token for username with the configured TTL, overwriting
// any prior token (implicit revocation).
func (s *Store) Save(ctx context.Context, username, token string) error {
	if err := s.redis.Set(ctx, s.key(username), token, s.ttl).Err(); err != nil {
		return storeFailure(ErrSaveFailed, err)
	}
	return nil
}

// Find returns the live token for username, or [ErrNotFound] if none exists.
func (s *Store) Find(ctx context.Context, username string) (string, error) {
	token, err := s.redis.Get(ctx, s.key(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", storeFailure(ErrRetrieveFailed, err)
	}
	return token, nil
}

// Delete removes the token for username. Deleting an absent key is not an
// error; the operation is idempotent.
func (s *Store) Delete(ctx context.Context, username string) error {
	if err := s.redis.Del(ctx, s.key(username)).Err(); err != nil {
		return storeFailure(ErrDeleteFailed, err)
	}
	return nil
}

// TTL reports the remaining lifetime of the stored token for username.
// Returns [ErrNotFound] if no token exists.
func (s *Store) TTL(ctx context.Context, username string) (time.Duration, error) {
	d, err := s.redis.TTL(ctx, s.key(username)).Result()
	if err != nil {
		return 0, storeFailure(ErrRetrieveFailed, err)
	}
	if d < 0 {
		return 0, ErrNotFound
	}
	return d, nil
}

// Ping returns a point-in-time store availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), storeFailure(ErrRetrieveFailed, err)
	}
	return time.Since(start), nil
}

func storeFailure(kind error, cause error) error {
	return fmt.Errorf("%w: %w: %v", kind, ErrUnavailable, cause)
}
