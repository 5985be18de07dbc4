package jwt

import (
	"strings"
	"testing"
	"time"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()

	codec, err := NewCodec(Config{
		Key:        []byte("0123456789abcdef0123456789abcdef"),
		AccessTTL:  10 * time.Minute,
		RefreshTTL: 14 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func TestNewCodecRejectsEmptyKey(t *testing.T) {
	_, err := NewCodec(Config{AccessTTL: time.Minute, RefreshTTL: time.Hour})
	if err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestNewCodecRejectsZeroTTL(t *testing.T) {
	_, err := NewCodec(Config{Key: []byte("k"), AccessTTL: 0, RefreshTTL: time.Hour})
	if err == nil {
		t.Fatal("expected error for zero access TTL")
	}

	_, err = NewCodec(Config{Key: []byte("k"), AccessTTL: time.Minute, RefreshTTL: 0})
	if err == nil {
		t.Fatal("expected error for zero refresh TTL")
	}
}

func TestIssueAccessCarriesSchemePrefix(t *testing.T) {
	codec := testCodec(t)

	access, err := codec.Issue("alice", []string{"USER"}, KindAccess)
	if err != nil {
		t.Fatalf("Issue access: %v", err)
	}
	if !strings.HasPrefix(access, SchemePrefix) {
		t.Fatalf("access token missing scheme prefix: %q", access)
	}

	refresh, err := codec.Issue("alice", []string{"USER"}, KindRefresh)
	if err != nil {
		t.Fatalf("Issue refresh: %v", err)
	}
	if strings.HasPrefix(refresh, SchemePrefix) {
		t.Fatalf("refresh token must be raw, got prefix: %q", refresh)
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := testCodec(t)

	token, err := codec.Issue("alice", []string{"USER", "ADMIN"}, KindAccess)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if got := codec.Subject(claims); got != "alice" {
		t.Fatalf("Subject = %q, want alice", got)
	}

	auth := codec.Authorities(claims)
	if len(auth) != 2 || auth[0] != "USER" || auth[1] != "ADMIN" {
		t.Fatalf("Authorities = %v, want [USER ADMIN]", auth)
	}
}

func TestVerifyAcceptsRawAccessToken(t *testing.T) {
	codec := testCodec(t)

	token, err := codec.Issue("alice", []string{"USER"}, KindAccess)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	raw := strings.TrimPrefix(token, SchemePrefix)
	if _, err := codec.Verify(raw); err != nil {
		t.Fatalf("Verify without prefix: %v", err)
	}
}

func TestIssuedTokensDiffer(t *testing.T) {
	codec := testCodec(t)

	a, err := codec.Issue("alice", []string{"USER"}, KindRefresh)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	b, err := codec.Issue("alice", []string{"USER"}, KindRefresh)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if a == b {
		t.Fatal("two tokens minted for the same subject must differ (jti)")
	}
}

func TestVerifyExpiryMatchesKind(t *testing.T) {
	codec, err := NewCodec(Config{
		Key:        []byte("0123456789abcdef0123456789abcdef"),
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	access, err := codec.Issue("alice", nil, KindAccess)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := codec.Verify(access)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != time.Minute {
		t.Fatalf("access lifetime = %v, want 1m", lifetime)
	}

	refresh, err := codec.Issue("alice", nil, KindRefresh)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err = codec.Verify(refresh)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	lifetime = claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != time.Hour {
		t.Fatalf("refresh lifetime = %v, want 1h", lifetime)
	}
}
