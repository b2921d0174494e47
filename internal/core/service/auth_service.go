package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
	"github.com/AYUSHMAAN1812/chatify/internal/core/ports"
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService implements signup, login, and profile updates.
type AuthService struct {
	users    ports.UserRepository
	tokens   *TokenService
	uploader ports.ImageUploader
	welcome  ports.WelcomeNotifier
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tokens *TokenService,
	uploader ports.ImageUploader,
	welcome ports.WelcomeNotifier,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, tokens: tokens, uploader: uploader, welcome: welcome, log: log}
}

func (s *AuthService) Signup(ctx context.Context, fullName, email, password string) (*domain.User, string, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, "", domain.ErrInvalidSignup
	}
	if len(password) < minPasswordLen {
		return nil, "", domain.ErrInvalidSignup
	}
	if !emailPattern.MatchString(email) {
		return nil, "", domain.ErrInvalidSignup
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, "", err
	}

	// The account is committed; the welcome email is a side channel that
	// must never fail the signup.
	if s.welcome != nil {
		s.welcome.Enqueue(created.Email, created.FullName)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user signed up")
	return created, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Never reveal which credential component was wrong.
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) UpdateProfilePic(ctx context.Context, userID, image string) (*domain.User, error) {
	if image == "" {
		return nil, domain.ErrInvalidSignup
	}

	url, err := s.uploader.Upload(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("upload profile pic: %w", err)
	}

	return s.users.UpdateProfilePic(ctx, userID, url)
}
