package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind selects the TTL and transport convention for an issued token.
type Kind int

const (
	// KindAccess tokens are short-lived and carry the scheme prefix.
	KindAccess Kind = iota
	// KindRefresh tokens are long-lived and issued raw.
	KindRefresh
)

// SchemePrefix is the transport prefix carried by access tokens only.
const SchemePrefix = "Bearer "

// Config defines a public type used by the token codec.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	Key        []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Claims is the payload embedded in every issued token. Authorities is the
// ordered set of role strings minted at authentication time; the domain maps
// it back to its closed role enum after verification.
type Claims struct {
	Authorities []string `json:"auth"`
	jwt.RegisteredClaims
}

// Codec issues and verifies signed tokens with a single symmetric key.
type Codec struct {
	config Config
}

// NewCodec validates the config and returns a ready codec.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Key) == 0 {
		return nil, errors.New("signing key required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}

	return &Codec{config: cfg}, nil
}

// Issue builds claims for subject, signs them, and returns the encoded
// token. Expiry is always issuance time plus the configured TTL for kind.
// The jti claim is a fresh UUID, so two tokens minted for the same subject
// within the same second still differ.
func (c *Codec) Issue(subject string, authorities []string, kind Kind) (string, error) {
	ttl := c.config.AccessTTL
	if kind == KindRefresh {
		ttl = c.config.RefreshTTL
	}

	now := time.Now()
	claims := Claims{
		Authorities: authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.config.Key)
	if err != nil {
		return "", err
	}

	if kind == KindAccess {
		return SchemePrefix + signed, nil
	}
	return signed, nil
}

var errEmptyToken = errors.New("empty token")

// Verify strips any scheme prefix, then checks structure, signature
// algorithm, signature, and expiry. Callers treat every non-nil error as the
// single invalid-token condition; [Cause] classifies the error for
// failure-point logging only.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	tokenStr = strings.TrimPrefix(tokenStr, SchemePrefix)
	if tokenStr == "" {
		return nil, errEmptyToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return c.config.Key, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// Subject extracts the username from verified claims. It assumes a prior
// successful [Codec.Verify]; behavior on unverified input is undefined.
func (c *Codec) Subject(claims *Claims) string {
	return claims.Subject
}

// Authorities extracts the ordered authority strings from verified claims.
// It assumes a prior successful [Codec.Verify].
func (c *Codec) Authorities(claims *Claims) []string {
	return claims.Authorities
}

// Cause classifies a Verify error into a short stable label for logs.
func Cause(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, errEmptyToken):
		return "empty"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "algorithm"
	default:
		return "invalid"
	}
}
