package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/repository/repotest"
	"github.com/edutrack/edutrack-backend/internal/security"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789abcdef"

type testEnv struct {
	db          *repotest.DB
	files       *repotest.Files
	users       *UserService
	tokens      *TokenService
	auth        *AuthService
	assignments *AssignmentService
	submissions *SubmissionService
	students    *StudentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := repotest.NewDB()
	files := repotest.NewFiles()
	log := zerolog.Nop()

	hasher := security.NewPasswordHasher(security.Argon2Params{Time: 1, Memory: 1024, Threads: 1})
	users := NewUserService(db.Users(), hasher)
	tokens := NewTokenService([]byte(testSecret), 24*time.Hour)

	return &testEnv{
		db:          db,
		files:       files,
		users:       users,
		tokens:      tokens,
		auth:        NewAuthService(users, tokens, log),
		assignments: NewAssignmentService(db.Assignments(), files, 1024, log),
		submissions: NewSubmissionService(db.Submissions(), db.Assignments(), files, 1024, log),
		students:    NewStudentService(db.Profiles()),
	}
}

func (e *testEnv) createUser(t *testing.T, name string, role model.Role) *model.User {
	t.Helper()
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
	u, err := e.users.CreateUser(context.Background(), name, email, "password123", role)
	require.NoError(t, err)
	return u
}

func (e *testEnv) createAssignment(t *testing.T, teacher *model.User, title string, due time.Time) *model.Assignment {
	t.Helper()
	a, err := e.assignments.Create(context.Background(), teacher, NewAssignment{
		Title:       title,
		Description: title + " description",
		DueDate:     due,
	})
	require.NoError(t, err)
	return a
}

func upload(name, body string) *FileUpload {
	return &FileUpload{
		Filename:    name,
		Size:        int64(len(body)),
		ContentType: "application/pdf",
		Body:        strings.NewReader(body),
	}
}
