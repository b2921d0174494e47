package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
	"github.com/AYUSHMAAN1812/chatify/internal/core/ports"
)

// defaultTokenTTL keeps a session cookie valid for a week.
const defaultTokenTTL = 7 * 24 * time.Hour

// TokenService issues signed session tokens and resolves them back to users.
// The same instance backs both the REST auth middleware and the websocket
// connection gate, so both transports share one authentication semantics.
type TokenService struct {
	users    ports.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewTokenService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &TokenService{users: users, secret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

// Issue signs an HS256 token carrying the user id.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyCredential implements ports.IdentityVerifier. It is a pure function
// of the credential, the signing secret, and the current time (expiry), plus
// a read of the user record.
func (s *TokenService) VerifyCredential(ctx context.Context, credential string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredential
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, domain.ErrInvalidCredential
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("verify credential: %w", err)
	}
	return user, nil
}
