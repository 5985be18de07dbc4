package flows

import (
	"context"
	"errors"
	"testing"
)

var (
	errNotReady   = errors.New("not ready")
	errAuthFailed = errors.New("authentication failed")
)

func loginDeps(saved map[string]string) LoginDeps {
	return LoginDeps{
		VerifyCredentials: func(_ context.Context, username, password string) (string, []string, error) {
			if username == "alice" && password == "correct-horse" {
				return "alice", []string{"USER"}, nil
			}
			return "", nil, errors.New("bad credentials")
		},
		IssueAccess: func(subject string, authorities []string) (string, error) {
			return "access-token", nil
		},
		IssueRefresh: func(subject string, authorities []string) (string, error) {
			return "refresh-token", nil
		},
		SaveToken: func(_ context.Context, username, token string) error {
			saved[username] = token
			return nil
		},
		Errors: LoginErrors{
			ServiceNotReady:      errNotReady,
			AuthenticationFailed: errAuthFailed,
		},
	}
}

func TestRunLoginHappyPath(t *testing.T) {
	saved := make(map[string]string)

	result, err := RunLogin(context.Background(), "alice", "correct-horse", loginDeps(saved))
	if err != nil {
		t.Fatalf("RunLogin: %v", err)
	}

	if result.Subject != "alice" {
		t.Fatalf("Subject = %q, want alice", result.Subject)
	}
	if result.AccessToken != "access-token" || result.RefreshToken != "refresh-token" {
		t.Fatalf("tokens = %q/%q", result.AccessToken, result.RefreshToken)
	}
	if saved["alice"] != "refresh-token" {
		t.Fatalf("saved = %v, want refresh-token under alice", saved)
	}
}

func TestRunLoginRejectsEmptyInputs(t *testing.T) {
	saved := make(map[string]string)
	deps := loginDeps(saved)

	if _, err := RunLogin(context.Background(), "", "correct-horse", deps); !errors.Is(err, errAuthFailed) {
		t.Fatalf("empty username err = %v", err)
	}
	if _, err := RunLogin(context.Background(), "alice", "", deps); !errors.Is(err, errAuthFailed) {
		t.Fatalf("empty password err = %v", err)
	}
	if len(saved) != 0 {
		t.Fatal("nothing should be saved for rejected logins")
	}
}

func TestRunLoginUniformCredentialFailure(t *testing.T) {
	deps := loginDeps(make(map[string]string))

	_, err := RunLogin(context.Background(), "alice", "wrong-horse", deps)
	if !errors.Is(err, errAuthFailed) {
		t.Fatalf("err = %v, want the uniform authentication failure", err)
	}
}

func TestRunLoginReportsNotReadyWithMissingDeps(t *testing.T) {
	deps := loginDeps(make(map[string]string))
	deps.SaveToken = nil

	if _, err := RunLogin(context.Background(), "alice", "correct-horse", deps); !errors.Is(err, errNotReady) {
		t.Fatalf("err = %v, want not-ready", err)
	}
}

func TestRunLoginPassesStorageErrorsThrough(t *testing.T) {
	deps := loginDeps(make(map[string]string))
	storageErr := errors.New("connection refused")
	deps.SaveToken = func(context.Context, string, string) error { return storageErr }

	_, err := RunLogin(context.Background(), "alice", "correct-horse", deps)
	if !errors.Is(err, storageErr) {
		t.Fatalf("err = %v, want raw storage error", err)
	}
}
