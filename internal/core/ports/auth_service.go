package ports

import (
	"context"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

type AuthService interface {
	// Signup registers a new user and returns the user plus a signed session
	// token. The welcome email is dispatched asynchronously and never fails
	// the signup.
	Signup(ctx context.Context, fullName, email, password string) (*domain.User, string, error)
	// Login verifies credentials and returns the user plus a signed session
	// token. Failures are always domain.ErrInvalidCredentials regardless of
	// which credential component was wrong.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	UpdateProfilePic(ctx context.Context, userID, image string) (*domain.User, error)
}

// IdentityVerifier resolves a bearer credential to the user it encodes.
// Verification has no side effects. It fails with domain.ErrInvalidCredential
// when the token is malformed, unsigned, or expired, and with
// domain.ErrIdentityNotFound when the token is well formed but the account no
// longer exists.
type IdentityVerifier interface {
	VerifyCredential(ctx context.Context, credential string) (*domain.User, error)
}
