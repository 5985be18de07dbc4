package tokenauth

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/avylov/tokenauth/jwt"
	"github.com/avylov/tokenauth/password"
	"github.com/avylov/tokenauth/refresh"
)

// Builder assembles a [Service]. Builders are single-use: Build consumes the
// builder and a second Build call fails.
type Builder struct {
	config   Config
	redis    redis.UniversalClient
	verifier CredentialVerifier
	built    bool
}

// New returns a builder pre-loaded with [DefaultConfig]. A signing secret,
// a Redis client, and a credential verifier must still be supplied before
// Build succeeds.
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithSigningSecret sets the base64-encoded symmetric signing key.
func (b *Builder) WithSigningSecret(secret string) *Builder {
	b.config.JWT.SigningSecret = secret
	return b
}

// WithRedis sets the Redis client backing the refresh-token store. The
// service never owns the client lifecycle; close it alongside the host.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithVerifier sets the credential verifier used by Login.
func (b *Builder) WithVerifier(v CredentialVerifier) *Builder {
	b.verifier = v
	return b
}

// WithDirectory wires the default directory-backed verifier: user lookup via
// dir, password verification via hasher. Mutually exclusive with
// [Builder.WithVerifier]; the last call wins.
func (b *Builder) WithDirectory(dir Directory, hasher *password.Argon2) *Builder {
	b.verifier = NewDirectoryVerifier(dir, hasher)
	return b
}

// WithMetricsEnabled toggles the counter registry.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the verification latency histogram. Implies
// nothing unless metrics are also enabled.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, decodes the signing key, and wires the
// codec, store, and metrics into a ready [Service].
func (b *Builder) Build() (*Service, error) {
	if b.built {
		return nil, errors.New("builder already consumed")
	}
	b.built = true

	if err := b.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if b.redis == nil {
		return nil, errors.New("redis client is required")
	}
	if b.verifier == nil {
		return nil, errors.New("credential verifier is required")
	}

	key, err := b.config.signingKey()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	codec, err := jwt.NewCodec(jwt.Config{
		Key:        key,
		AccessTTL:  b.config.JWT.AccessTTL,
		RefreshTTL: b.config.JWT.RefreshTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}

	return &Service{
		config:   b.config,
		codec:    codec,
		store:    refresh.NewStore(b.redis, b.config.Store.KeyPrefix, b.config.JWT.RefreshTTL),
		verifier: b.verifier,
		metrics:  NewMetrics(b.config.Metrics),
	}, nil
}
