// Package auth implements registration, login and token authentication.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/agawojdecka/polarify/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Service handles account registration and opaque-token authentication.
// Tokens are minted once at registration and returned again at login.
type Service struct {
	users  domain.UserRepository
	tokens domain.AuthTokenRepository
}

func NewService(users domain.UserRepository, tokens domain.AuthTokenRepository) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a new account and returns its auth token.
// Returns domain.ErrEmailOrUsernameTaken when either is already in use.
func (s *Service) Register(ctx context.Context, username, email, password string) (string, error) {
	taken, err := s.users.IsEmailOrUsernameTaken(ctx, email, username)
	if err != nil {
		return "", fmt.Errorf("failed to check email/username: %w", err)
	}
	if taken {
		return "", domain.ErrEmailOrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, email, string(hash))
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Create(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to create auth token: %w", err)
	}

	return token, nil
}

// Login verifies the credentials and returns the user together with its
// token. Unknown email and wrong password both surface as
// domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	auth, err := s.users.GetAuthByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(auth.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GetByUserID(ctx, auth.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load auth token: %w", err)
	}

	return &auth.User, token, nil
}

// Authenticate resolves an opaque token to its user.
// Returns domain.ErrTokenNotFound for unknown tokens.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.GetUserID(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}
