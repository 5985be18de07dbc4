package tokenauth

import "context"

// Role is the closed authority set carried in token claims. It is an enum at
// the domain boundary and serializes to a string only at the token layer.
type Role uint8

const (
	// RoleUser is an exported constant or variable used by the session service.
	RoleUser Role = iota
	// RoleAdmin is an exported constant or variable used by the session service.
	RoleAdmin
)

// String returns the claim-layer spelling of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "UNKNOWN"
	}
}

// ParseRole maps a claim string back to a [Role]. Unknown strings report
// ok=false and are dropped by callers rather than invented.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "USER":
		return RoleUser, true
	case "ADMIN":
		return RoleAdmin, true
	default:
		return 0, false
	}
}

// Identity is the request-scoped authenticated principal: the token subject
// plus its authorities. It is an immutable value threaded through context,
// never a shared mutable singleton.
type Identity struct {
	Username    string
	Authorities []Role
}

// HasRole reports whether the identity carries the given role.
func (id Identity) HasRole(r Role) bool {
	for _, have := range id.Authorities {
		if have == r {
			return true
		}
	}
	return false
}

// TokenPair is returned by [Service.Login] and [Service.Refresh]. The access
// token is self-contained and carries the "Bearer " scheme prefix expected by
// the Authorization header; the refresh token is the raw signed string.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// CredentialVerifier is the external collaborator that authenticates a
// username/password pair. Implementations must return
// [ErrAuthenticationFailed] for every failure mode so that username
// existence is never observable.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (Identity, error)
}

// UserRecord is the directory view of an account. The core reads only
// username, role, password hash, and deletion status; everything else about
// the account lives with the directory collaborator.
type UserRecord struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	Deleted      bool
}

// Directory is the user-lookup interface backing the default
// [CredentialVerifier]. See [NewDirectoryVerifier].
type Directory interface {
	GetByUsername(ctx context.Context, username string) (UserRecord, error)
}

func authorityStrings(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	return out
}

func parseAuthorities(raw []string) []Role {
	out := make([]Role, 0, len(raw))
	for _, s := range raw {
		if r, ok := ParseRole(s); ok {
			out = append(out, r)
		}
	}
	return out
}
