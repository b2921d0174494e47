package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	repo := newStubUserRepo()
	user, err := repo.Create(context.Background(), &domain.User{FullName: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := NewTokenService(repo, "secret", time.Hour)
	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	got, err := svc.VerifyCredential(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyCredential returned error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}
}

func TestTokenService_VerifyCredential_Malformed(t *testing.T) {
	svc := NewTokenService(newStubUserRepo(), "secret", time.Hour)

	for _, credential := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.VerifyCredential(context.Background(), credential); err != domain.ErrInvalidCredential {
			t.Fatalf("credential %q: expected ErrInvalidCredential, got %v", credential, err)
		}
	}
}

func TestTokenService_VerifyCredential_WrongSecret(t *testing.T) {
	repo := newStubUserRepo()
	user, _ := repo.Create(context.Background(), &domain.User{FullName: "Bob", Email: "bob@example.com"})

	issuer := NewTokenService(repo, "secret-a", time.Hour)
	verifier := NewTokenService(repo, "secret-b", time.Hour)

	token, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.VerifyCredential(context.Background(), token); err != domain.ErrInvalidCredential {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestTokenService_VerifyCredential_Expired(t *testing.T) {
	repo := newStubUserRepo()
	user, _ := repo.Create(context.Background(), &domain.User{FullName: "Carol", Email: "carol@example.com"})

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	svc := NewTokenService(repo, "secret", time.Hour)
	if _, err := svc.VerifyCredential(context.Background(), expired); err != domain.ErrInvalidCredential {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestTokenService_VerifyCredential_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewTokenService(repo, "secret", time.Hour)

	token, err := svc.Issue(&domain.User{ID: "deleted-user"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := svc.VerifyCredential(context.Background(), token); err != domain.ErrIdentityNotFound {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestTokenService_VerifyCredential_WrongAlgorithm(t *testing.T) {
	repo := newStubUserRepo()
	user, _ := repo.Create(context.Background(), &domain.User{FullName: "Dan", Email: "dan@example.com"})

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	// Signed with the none algorithm, which the verifier must reject even
	// though the claims are well formed.
	tkn, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	svc := NewTokenService(repo, "secret", time.Hour)
	if _, err := svc.VerifyCredential(context.Background(), tkn); err != domain.ErrInvalidCredential {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}
