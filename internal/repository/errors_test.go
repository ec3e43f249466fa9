package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestSubmissionInsertError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "duplicate",
			err:  &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "submissions_assignment_student_key"},
			want: ErrAlreadySubmitted,
		},
		{
			name: "missing assignment",
			err:  &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: fkSubmissionAssignment},
			want: ErrAssignmentNotFound,
		},
		{
			name: "deleted student",
			err:  &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: fkSubmissionStudent},
			want: ErrUserNotFound,
		},
		{
			name: "wrapped",
			err:  fmt.Errorf("query: %w", &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: fkSubmissionStudent}),
			want: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, submissionInsertError(tt.err), tt.want)
		})
	}
}

func TestSubmissionInsertError_Unrecognized(t *testing.T) {
	unknownFK := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "some_other_fkey"}
	err := submissionInsertError(unknownFK)
	assert.NotErrorIs(t, err, ErrAssignmentNotFound)
	assert.NotErrorIs(t, err, ErrUserNotFound)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))

	plain := errors.New("conn closed")
	assert.ErrorIs(t, submissionInsertError(plain), plain)
}
