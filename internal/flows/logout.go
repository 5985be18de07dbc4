package flows

import "context"

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	DeleteToken func(ctx context.Context, username string) error
}

// RunLogout destroys the stored refresh token for the subject. The delete is
// idempotent: logging out an already logged-out subject succeeds.
func RunLogout(ctx context.Context, username string, deps LogoutDeps) error {
	return deps.DeleteToken(ctx, username)
}
