package flows

import "context"

// RefreshFailureKind classifies refresh flow failures for root-level mapping.
type RefreshFailureKind int

const (
	RefreshFailureNone RefreshFailureKind = iota
	RefreshFailureInvalidToken
	RefreshFailureNotFound
	RefreshFailureRetrieve
	RefreshFailureMismatch
	RefreshFailureIssue
	RefreshFailureDelete
	RefreshFailureSave
)

// RefreshResult carries either the issued token pair or failure metadata.
type RefreshResult struct {
	Failure      RefreshFailureKind
	Err          error
	Subject      string
	AccessToken  string
	RefreshToken string
}

// RefreshDeps captures refresh flow dependencies.
type RefreshDeps struct {
	VerifyToken  func(token string) (string, []string, error)
	FindToken    func(ctx context.Context, username string) (string, error)
	IsNotFound   func(error) bool
	TokensEqual  func(a, b string) bool
	IssueAccess  func(subject string, authorities []string) (string, error)
	IssueRefresh func(subject string, authorities []string) (string, error)
	DeleteToken  func(ctx context.Context, username string) error
	SaveToken    func(ctx context.Context, username, token string) error
}

// RunRefresh executes the strict one-time-use rotation protocol:
//
//  1. Verify the presented token before any store access.
//  2. Extract the subject and look up the stored token for it.
//  3. Compare presented and stored byte-for-byte; a mismatch means the
//     presented token was rotated out and is being replayed.
//  4. Issue a new pair from the presented token's authorities, delete the
//     old record, save the new one.
//
// Every successful refresh invalidates the token just used, even though it
// has not expired.
func RunRefresh(ctx context.Context, presented string, deps RefreshDeps) RefreshResult {
	subject, authorities, err := deps.VerifyToken(presented)
	if err != nil {
		return RefreshResult{
			Failure: RefreshFailureInvalidToken,
			Err:     err,
		}
	}

	stored, err := deps.FindToken(ctx, subject)
	if err != nil {
		if deps.IsNotFound != nil && deps.IsNotFound(err) {
			return RefreshResult{
				Failure: RefreshFailureNotFound,
				Err:     err,
				Subject: subject,
			}
		}
		return RefreshResult{
			Failure: RefreshFailureRetrieve,
			Err:     err,
			Subject: subject,
		}
	}

	if !deps.TokensEqual(presented, stored) {
		return RefreshResult{
			Failure: RefreshFailureMismatch,
			Subject: subject,
		}
	}

	access, err := deps.IssueAccess(subject, authorities)
	if err != nil {
		return RefreshResult{
			Failure: RefreshFailureIssue,
			Err:     err,
			Subject: subject,
		}
	}

	next, err := deps.IssueRefresh(subject, authorities)
	if err != nil {
		return RefreshResult{
			Failure: RefreshFailureIssue,
			Err:     err,
			Subject: subject,
		}
	}

	if err := deps.DeleteToken(ctx, subject); err != nil {
		return RefreshResult{
			Failure: RefreshFailureDelete,
			Err:     err,
			Subject: subject,
		}
	}

	if err := deps.SaveToken(ctx, subject, next); err != nil {
		return RefreshResult{
			Failure: RefreshFailureSave,
			Err:     err,
			Subject: subject,
		}
	}

	return RefreshResult{
		Failure:      RefreshFailureNone,
		Subject:      subject,
		AccessToken:  access,
		RefreshToken: next,
	}
}
