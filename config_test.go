package tokenauth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func validTestConfig() Config {
	cfg := DefaultConfig()
	cfg.JWT.SigningSecret = base64.StdEncoding.EncodeToString([]byte("test-signing-secret-32-bytes-ok!"))
	return cfg
}

func TestDefaultConfigValidatesWithSecret(t *testing.T) {
	cfg := validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsMissingSecret(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestValidateRejectsBadBase64Secret(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JWT.SigningSecret = "not base64 at all!!!"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for undecodable secret")
	}
	if !strings.Contains(err.Error(), "base64") {
		t.Fatalf("err = %v, want base64 mention", err)
	}
}

func TestValidateRejectsShortKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JWT.SigningSecret = base64.StdEncoding.EncodeToString([]byte("short"))

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for key shorter than 32 bytes")
	}
}

func TestValidateRejectsBadTTLs(t *testing.T) {
	cfg := validTestConfig()
	cfg.JWT.AccessTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero access TTL")
	}

	cfg = validTestConfig()
	cfg.JWT.RefreshTTL = -time.Hour
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative refresh TTL")
	}

	cfg = validTestConfig()
	cfg.JWT.AccessTTL = cfg.JWT.RefreshTTL
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for access TTL >= refresh TTL")
	}
}

func TestValidateRejectsEmptyKeyPrefix(t *testing.T) {
	cfg := validTestConfig()
	cfg.Store.KeyPrefix = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty key prefix")
	}
}

func TestBuilderRequiresCollaborators(t *testing.T) {
	if _, err := New().WithConfig(validTestConfig()).Build(); err == nil {
		t.Fatal("expected error without redis client")
	}
}

func TestBuilderIsSingleUse(t *testing.T) {
	b := New()
	_, _ = b.Build()
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error on second Build")
	}
}
