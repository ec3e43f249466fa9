package service

import (
	"context"
	"fmt"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/security"
)

// UserStore persists user records.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// UserService is the credential store: it owns password hashing and user lookup.
type UserService struct {
	users  UserStore
	hasher *security.PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, hasher *security.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// CreateUser hashes the password and stores a new account.
// Fails with ErrInvalidRole or ErrDuplicateEmail.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// HashPassword returns the encoded argon2id hash of raw.
func (s *UserService) HashPassword(raw string) (string, error) {
	hash, err := s.hasher.Hash(raw)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword reports whether raw matches storedHash. A malformed stored
// hash never verifies.
func (s *UserService) VerifyPassword(raw, storedHash string) bool {
	ok, err := s.hasher.Verify(raw, storedHash)
	return err == nil && ok
}

// GetByEmail retrieves a user by exact email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
