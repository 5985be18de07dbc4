package flows

import "context"

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	ServiceNotReady      error
	AuthenticationFailed error
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	VerifyCredentials func(ctx context.Context, username, password string) (string, []string, error)
	IssueAccess       func(subject string, authorities []string) (string, error)
	IssueRefresh      func(subject string, authorities []string) (string, error)
	SaveToken         func(ctx context.Context, username, token string) error

	Errors LoginErrors
}

// LoginResult is the flow-local login response shape.
type LoginResult struct {
	Subject      string
	AccessToken  string
	RefreshToken string
}

// RunLogin verifies credentials, issues a fresh token pair, and persists the
// refresh token, overwriting any previous session for the subject. Every
// credential failure surfaces as the single AuthenticationFailed error so
// username existence is never observable; storage and issuance errors pass
// through untouched for the host to classify.
func RunLogin(ctx context.Context, username, password string, deps LoginDeps) (*LoginResult, error) {
	if deps.VerifyCredentials == nil ||
		deps.IssueAccess == nil ||
		deps.IssueRefresh == nil ||
		deps.SaveToken == nil {
		return nil, deps.Errors.ServiceNotReady
	}

	if username == "" || password == "" {
		return nil, deps.Errors.AuthenticationFailed
	}

	subject, authorities, err := deps.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, deps.Errors.AuthenticationFailed
	}
	password = ""

	access, err := deps.IssueAccess(subject, authorities)
	if err != nil {
		return nil, err
	}

	refresh, err := deps.IssueRefresh(subject, authorities)
	if err != nil {
		return nil, err
	}

	if err := deps.SaveToken(ctx, subject, refresh); err != nil {
		return nil, err
	}

	return &LoginResult{
		Subject:      subject,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
