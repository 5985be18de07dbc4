package tokenauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/avylov/tokenauth/internal/flows"
	"github.com/avylov/tokenauth/jwt"
	"github.com/avylov/tokenauth/refresh"
)

// Service is the session lifecycle engine: credential login, access-token
// verification, one-time-use refresh rotation, and logout revocation. Build
// one with [Builder]; a zero Service is not usable.
//
// All methods are safe for concurrent use. The service holds no per-request
// state; identities travel through context, never through the service.
type Service struct {
	config   Config
	codec    *jwt.Codec
	store    *refresh.Store
	verifier CredentialVerifier
	metrics  *Metrics
}

/*
====================================
LOGIN
====================================
*/

// Login authenticates the credentials and, on success, issues a fresh token
// pair and persists the refresh token under the username, overwriting any
// previous session (implicit single-session revocation).
//
// Every credential failure, including unknown usernames, empty inputs, and
// deleted accounts, returns [ErrAuthenticationFailed] with no further detail.
func (s *Service) Login(ctx context.Context, username, password string) (TokenPair, error) {
	result, err := flows.RunLogin(ctx, username, password, flows.LoginDeps{
		VerifyCredentials: s.verifyCredentials,
		IssueAccess:       s.issueAccess,
		IssueRefresh:      s.issueRefresh,
		SaveToken:         s.store.Save,
		Errors: flows.LoginErrors{
			ServiceNotReady:      ErrServiceNotReady,
			AuthenticationFailed: ErrAuthenticationFailed,
		},
	})
	if err != nil {
		s.metrics.Inc(MetricLoginFailure)
		return TokenPair{}, s.mapStoreError(err)
	}

	s.metrics.Inc(MetricLoginSuccess)
	return TokenPair{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, nil
}

func (s *Service) verifyCredentials(ctx context.Context, username, password string) (string, []string, error) {
	if s.verifier == nil {
		return "", nil, ErrServiceNotReady
	}

	identity, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	return identity.Username, authorityStrings(identity.Authorities), nil
}

/*
====================================
AUTHENTICATE
====================================
*/

// Authenticate verifies an access token and returns the identity it encodes.
// No store round-trip happens here; access tokens are self-contained and
// remain valid until expiry even after logout. Every verification failure
// surfaces as [ErrTokenInvalid].
func (s *Service) Authenticate(ctx context.Context, token string) (Identity, error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe(MetricAuthenticateLatency, time.Since(start))
	}()

	claims, err := s.codec.Verify(token)
	if err != nil {
		log.Printf("tokenauth: access token rejected (%s)", jwt.Cause(err))
		return Identity{}, ErrTokenInvalid
	}

	return Identity{
		Username:    s.codec.Subject(claims),
		Authorities: parseAuthorities(s.codec.Authorities(claims)),
	}, nil
}

/*
====================================
REFRESH
====================================
*/

// Refresh rotates a refresh token: the presented token is verified, matched
// byte-for-byte against the stored token for its subject, and, on success,
// replaced by a freshly issued pair. The presented token is invalid after
// this call returns, whether it succeeded or not.
//
// A verified token that does not match the stored one means the token was
// rotated out already; the attempt is treated as reuse and fails with
// [ErrAuthenticationFailed].
func (s *Service) Refresh(ctx context.Context, token string) (TokenPair, error) {
	result := flows.RunRefresh(ctx, token, flows.RefreshDeps{
		VerifyToken:  s.verifyRefreshToken,
		FindToken:    s.store.Find,
		IsNotFound:   func(err error) bool { return errors.Is(err, refresh.ErrNotFound) },
		TokensEqual:  tokensEqual,
		IssueAccess:  s.issueAccess,
		IssueRefresh: s.issueRefresh,
		DeleteToken:  s.store.Delete,
		SaveToken:    s.store.Save,
	})

	switch result.Failure {
	case flows.RefreshFailureNone:
		s.metrics.Inc(MetricRefreshSuccess)
		return TokenPair{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		}, nil

	case flows.RefreshFailureInvalidToken:
		s.metrics.Inc(MetricRefreshFailure)
		log.Printf("tokenauth: refresh token rejected (%s)", jwt.Cause(result.Err))
		return TokenPair{}, ErrTokenInvalid

	case flows.RefreshFailureNotFound:
		s.metrics.Inc(MetricRefreshFailure)
		return TokenPair{}, ErrTokenNotFound

	case flows.RefreshFailureMismatch:
		s.metrics.Inc(MetricRefreshReuseDetected)
		s.metrics.Inc(MetricRefreshFailure)
		log.Printf("tokenauth: refresh token reuse detected for subject %q", result.Subject)
		return TokenPair{}, ErrAuthenticationFailed

	default:
		s.metrics.Inc(MetricRefreshFailure)
		return TokenPair{}, s.mapStoreError(result.Err)
	}
}

func (s *Service) verifyRefreshToken(token string) (string, []string, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return "", nil, err
	}
	return s.codec.Subject(claims), s.codec.Authorities(claims), nil
}

// tokensEqual compares in constant time. Both sides are attacker-influenced
// strings of potentially different lengths.
func tokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

/*
====================================
LOGOUT
====================================
*/

// Logout revokes the stored refresh token for username. It is idempotent:
// logging out a subject with no live session succeeds. Outstanding access
// tokens are not recalled and expire on their own.
func (s *Service) Logout(ctx context.Context, username string) error {
	err := flows.RunLogout(ctx, username, flows.LogoutDeps{
		DeleteToken: s.store.Delete,
	})
	if err != nil {
		return s.mapStoreError(err)
	}

	s.metrics.Inc(MetricLogout)
	return nil
}

/*
====================================
SUPPORT
====================================
*/

func (s *Service) issueAccess(subject string, authorities []string) (string, error) {
	return s.codec.Issue(subject, authorities, jwt.KindAccess)
}

func (s *Service) issueRefresh(subject string, authorities []string) (string, error) {
	return s.codec.Issue(subject, authorities, jwt.KindRefresh)
}

// mapStoreError translates refresh store failure kinds into the package
// sentinels and counts infrastructure failures. Non-store errors pass
// through unchanged.
func (s *Service) mapStoreError(err error) error {
	var sentinel error
	switch {
	case errors.Is(err, refresh.ErrSaveFailed):
		sentinel = ErrStorageSave
	case errors.Is(err, refresh.ErrRetrieveFailed):
		sentinel = ErrStorageRetrieve
	case errors.Is(err, refresh.ErrDeleteFailed):
		sentinel = ErrStorageDelete
	default:
		return err
	}

	s.metrics.Inc(MetricStorageFailure)
	log.Printf("tokenauth: refresh store failure: %v", err)
	return fmt.Errorf("%w: %v", sentinel, err)
}

// StoreTTL reports the remaining lifetime of the stored refresh token for
// username, or [ErrTokenNotFound] if none exists.
func (s *Service) StoreTTL(ctx context.Context, username string) (time.Duration, error) {
	d, err := s.store.TTL(ctx, username)
	if err != nil {
		if errors.Is(err, refresh.ErrNotFound) {
			return 0, ErrTokenNotFound
		}
		return 0, s.mapStoreError(err)
	}
	return d, nil
}

// Ping checks refresh store availability and reports round-trip latency.
func (s *Service) Ping(ctx context.Context) (time.Duration, error) {
	d, err := s.store.Ping(ctx)
	if err != nil {
		return d, s.mapStoreError(err)
	}
	return d, nil
}

// ObserveGate counts a per-request authorization gate outcome. Called by
// the HTTP middleware once per request.
func (s *Service) ObserveGate(authenticated bool) {
	if authenticated {
		s.metrics.Inc(MetricGateAuthenticated)
		return
	}
	s.metrics.Inc(MetricGateAnonymous)
}

// MetricsSnapshot exposes a point-in-time copy of the service counters for
// the metrics/export bridges.
func (s *Service) MetricsSnapshot() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// MetricsEnabled reports whether the service records metrics at all.
func (s *Service) MetricsEnabled() bool {
	return s.metrics.Enabled()
}
