package service

import (
	"errors"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/repository"
)

// Domain errors. Handlers map these to status codes; anything else is a 500.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrInvalidCredentials  = errors.New("invalid email, password or role")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFoundOrForbidden = errors.New("not found or not owned by user")
	ErrFileRequired        = errors.New("file is required")
	ErrFileTooLarge        = errors.New("file too large")

	ErrInvalidRole        = model.ErrInvalidRole
	ErrUserNotFound       = repository.ErrUserNotFound
	ErrDuplicateEmail     = repository.ErrDuplicateEmail
	ErrAlreadySubmitted   = repository.ErrAlreadySubmitted
	ErrAssignmentNotFound = repository.ErrAssignmentNotFound
)

// requireRole is the strict role check shared by the guard and the ownership rules.
func requireRole(user *model.User, role model.Role) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if user.Role != role {
		return ErrForbidden
	}
	return nil
}
