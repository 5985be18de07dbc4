package tokenauth

import (
	"encoding/base64"
	"errors"
	"time"
)

// Config defines a public type used by tokenauth APIs.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	JWT     JWTConfig
	Store   StoreConfig
	Metrics MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig holds the signing key material and token lifetimes. The secret is
// base64-encoded symmetric key material, decoded exactly once at
// [Builder.Build]; an undecodable secret fails startup.
type JWTConfig struct {
	SigningSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig controls the refresh-token store key layout. Stored keys are
// KeyPrefix + username; values are raw refresh token strings with TTL equal
// to the refresh lifetime.
type StoreConfig struct {
	KeyPrefix string
}

// MetricsConfig defines a public type used by tokenauth APIs.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

const minSigningKeyBytes = 32

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the baseline configuration: short access lifetime,
// two-week refresh lifetime, "rt:" store prefix, metrics off. The signing
// secret has no default and must always be supplied.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  10 * time.Minute,
			RefreshTTL: 14 * 24 * time.Hour,
		},
		Store: StoreConfig{
			KeyPrefix: "rt:",
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// Config is value-copied; only the secret string is shared, and strings
	// are immutable, so a plain copy is sufficient today. Kept as a function
	// so future byte-slice fields get cloned in one place.
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate checks the configuration and returns the first violation found.
func (c *Config) Validate() error {
	if c.JWT.SigningSecret == "" {
		return errors.New("JWT SigningSecret is required")
	}
	key, err := base64.StdEncoding.DecodeString(c.JWT.SigningSecret)
	if err != nil {
		return errors.New("JWT SigningSecret must be valid base64")
	}
	if len(key) < minSigningKeyBytes {
		return errors.New("JWT SigningSecret must decode to >= 32 bytes")
	}

	if c.JWT.AccessTTL <= 0 {
		return errors.New("JWT AccessTTL must be > 0")
	}
	if c.JWT.RefreshTTL <= 0 {
		return errors.New("JWT RefreshTTL must be > 0")
	}
	if c.JWT.AccessTTL >= c.JWT.RefreshTTL {
		return errors.New("JWT AccessTTL must be shorter than RefreshTTL")
	}

	if c.Store.KeyPrefix == "" {
		return errors.New("Store KeyPrefix is required")
	}

	return nil
}

func (c *Config) signingKey() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.JWT.SigningSecret)
	if err != nil {
		return nil, errors.New("JWT SigningSecret must be valid base64")
	}
	return key, nil
}
