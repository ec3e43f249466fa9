package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/rs/zerolog"
)

// AuthService handles signup, login and resolving the caller of a request.
type AuthService struct {
	users  *UserService
	tokens *TokenService
	log    zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *UserService, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    log.With().Str("component", "auth_service").Logger(),
	}
}

// Signup creates an account. Role must be teacher or student.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Msg("User signed up")
	return user, nil
}

// Login checks email, password and role and issues a session token.
// Every mismatch yields ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.users.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if string(user.Role) != req.Role {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     token,
		TokenType: "bearer",
		User:      user.Public(),
	}, nil
}

// Authenticate resolves a raw bearer token to the current user record.
// Token failures wrap both ErrUnauthenticated and the token error; a token
// for a deleted account yields ErrUserNotFound.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*model.User, error) {
	if rawToken == "" {
		return nil, ErrUnauthenticated
	}

	userID, err := s.tokens.VerifyToken(rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// RequireRole fails with ErrForbidden unless user has exactly role.
func (s *AuthService) RequireRole(user *model.User, role model.Role) error {
	return requireRole(user, role)
}
