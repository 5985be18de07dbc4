package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, "rt:", time.Hour), mr
}

func TestSaveAndFind(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "alice", "token-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Find(ctx, "alice")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != "token-1" {
		t.Fatalf("Find = %q, want token-1", got)
	}
}

func TestFindMissingReturnsNotFound(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.Find(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find err = %v, want ErrNotFound", err)
	}
	if errors.Is(err, ErrUnavailable) {
		t.Fatal("ErrNotFound must not match ErrUnavailable")
	}
}

func TestSaveOverwritesPreviousToken(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "alice", "token-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "alice", "token-2"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Find(ctx, "alice")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != "token-2" {
		t.Fatalf("Find = %q, want token-2 (last write wins)", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "alice", "token-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "alice"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}

	if _, err := store.Find(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find after delete = %v, want ErrNotFound", err)
	}
}

func TestTokenExpiresWithTTL(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "alice", "token-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ttl, err := store.TTL(ctx, "alice")
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("TTL = %v, want in (0, 1h]", ttl)
	}

	mr.FastForward(time.Hour + time.Second)

	if _, err := store.Find(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find after TTL = %v, want ErrNotFound", err)
	}
	if _, err := store.TTL(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("TTL after expiry = %v, want ErrNotFound", err)
	}
}

func TestKeysAreNamespacedByPrefix(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "alice", "token-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got, err := mr.Get("rt:alice"); err != nil || got != "token-1" {
		t.Fatalf("raw key rt:alice = %q, %v", got, err)
	}
}

func TestFailureKindsMatchUnavailable(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	mr.Close()

	err := store.Save(ctx, "alice", "token-1")
	if !errors.Is(err, ErrSaveFailed) || !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Save err = %v, want ErrSaveFailed wrapping ErrUnavailable", err)
	}

	_, err = store.Find(ctx, "alice")
	if !errors.Is(err, ErrRetrieveFailed) || !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Find err = %v, want ErrRetrieveFailed wrapping ErrUnavailable", err)
	}

	err = store.Delete(ctx, "alice")
	if !errors.Is(err, ErrDeleteFailed) || !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Delete err = %v, want ErrDeleteFailed wrapping ErrUnavailable", err)
	}

	if _, err := store.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Ping err = %v, want ErrUnavailable", err)
	}
}
