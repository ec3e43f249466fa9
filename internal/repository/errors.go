package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors translated from PostgreSQL results.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAlreadySubmitted   = errors.New("assignment already submitted")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Named in migrations/000001_init.up.sql.
const (
	fkSubmissionAssignment = "submissions_assignment_id_fkey"
	fkSubmissionStudent    = "submissions_student_id_fkey"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func pgConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// submissionInsertError translates a failed submission insert.
func submissionInsertError(err error) error {
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		return ErrAlreadySubmitted
	case pgForeignKeyViolation:
		switch pgConstraint(err) {
		case fkSubmissionAssignment:
			return ErrAssignmentNotFound
		case fkSubmissionStudent:
			return ErrUserNotFound
		}
	}
	return fmt.Errorf("insert submission: %w", err)
}
