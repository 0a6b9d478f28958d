package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agawojdecka/polarify/internal/domain"
	apperrors "github.com/agawojdecka/polarify/internal/errors"
	"github.com/labstack/echo/v4"
)

// requireAuth resolves the Authorization header to a user and stores it in
// the request context. Both "Bearer <token>" and a raw token are accepted.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return apperrors.UnauthorizedError("Authorization header missing")
		}

		token := strings.TrimPrefix(header, "Bearer ")

		user, err := s.auth.Authenticate(c.Request().Context(), token)
		if errors.Is(err, domain.ErrTokenNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			return apperrors.UnauthorizedError("invalid auth token")
		}
		if err != nil {
			return apperrors.InternalError("failed to authenticate", err)
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		return next(c)
	}
}

// currentUser returns the authenticated user placed by requireAuth.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get("user").(*domain.User)
	if !ok {
		return nil, apperrors.InternalError("no authenticated user in context", nil)
	}
	return user, nil
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.ValidationError("username, email and password are required")
	}

	token, err := s.auth.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, domain.ErrEmailOrUsernameTaken) {
		return apperrors.ValidationError("This email or username is already in use.")
	}
	if err != nil {
		return apperrors.InternalError("failed to register user", err)
	}

	if err := c.JSON(201, registerResponse{Token: token}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	user, token, err := s.auth.Login(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return apperrors.ValidationError("Incorrect login details.")
	}
	if err != nil {
		return apperrors.InternalError("failed to log in", err)
	}

	if err := c.JSON(200, loginResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
