package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/security"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	teacher, err := env.auth.Signup(ctx, model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Role: "teacher"})
	require.NoError(t, err)
	student, err := env.auth.Signup(ctx, model.SignupRequest{Name: "Bob", Email: "bob@example.com", Password: "secret123", Role: "student"})
	require.NoError(t, err)

	assert.NotEqual(t, teacher.ID, student.ID)
	assert.Equal(t, model.RoleTeacher, teacher.Role)
	assert.NotEqual(t, "secret123", teacher.PasswordHash)
	assert.Contains(t, teacher.PasswordHash, "$argon2id$")

	t.Run("duplicate email", func(t *testing.T) {
		_, err := env.auth.Signup(ctx, model.SignupRequest{Name: "Other", Email: "alice@example.com", Password: "x", Role: "student"})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := env.auth.Signup(ctx, model.SignupRequest{Name: "Eve", Email: "eve@example.com", Password: "x", Role: "admin"})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Role: "teacher"})
	require.NoError(t, err)

	resp, err := env.auth.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "secret123", Role: "teacher"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "Alice", resp.User.Name)

	id, err := env.tokens.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id)

	tests := []struct {
		name string
		req  model.LoginRequest
	}{
		{name: "wrong password", req: model.LoginRequest{Email: "alice@example.com", Password: "wrong", Role: "teacher"}},
		{name: "wrong role", req: model.LoginRequest{Email: "alice@example.com", Password: "secret123", Role: "student"}},
		{name: "unknown role", req: model.LoginRequest{Email: "alice@example.com", Password: "secret123", Role: "admin"}},
		{name: "unknown email", req: model.LoginRequest{Email: "nobody@example.com", Password: "secret123", Role: "teacher"}},
		{name: "email case differs", req: model.LoginRequest{Email: "ALICE@example.com", Password: "secret123", Role: "teacher"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Login(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "Alice", model.RoleTeacher)

	token, err := env.tokens.IssueToken(alice.ID)
	require.NoError(t, err)

	user, err := env.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)
	assert.Equal(t, model.RoleTeacher, user.Role)

	t.Run("empty token", func(t *testing.T) {
		_, err := env.auth.Authenticate(ctx, "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := env.auth.Authenticate(ctx, "abc.def.ghi")
		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		past := func() time.Time { return time.Now().Add(-48 * time.Hour) }
		old := NewTokenService([]byte(testSecret), time.Hour, WithClock(past))
		expired, err := old.IssueToken(alice.ID)
		require.NoError(t, err)

		_, err = env.auth.Authenticate(ctx, expired)
		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("deleted user", func(t *testing.T) {
		bob := env.createUser(t, "Bob", model.RoleStudent)
		bobToken, err := env.tokens.IssueToken(bob.ID)
		require.NoError(t, err)

		env.db.DeleteUser(bob.ID)

		_, err = env.auth.Authenticate(ctx, bobToken)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthService_RequireRole(t *testing.T) {
	env := newTestEnv(t)
	teacher := &model.User{ID: 1, Role: model.RoleTeacher}
	student := &model.User{ID: 2, Role: model.RoleStudent}

	assert.NoError(t, env.auth.RequireRole(teacher, model.RoleTeacher))
	assert.NoError(t, env.auth.RequireRole(student, model.RoleStudent))
	assert.ErrorIs(t, env.auth.RequireRole(teacher, model.RoleStudent), ErrForbidden)
	assert.ErrorIs(t, env.auth.RequireRole(student, model.RoleTeacher), ErrForbidden)
	assert.ErrorIs(t, env.auth.RequireRole(nil, model.RoleTeacher), ErrUnauthenticated)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func TestAuthService_StoreFailuresAreNotCredentialErrors(t *testing.T) {
	store := new(mockUserStore)
	dbDown := errors.New("connection refused")
	store.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, dbDown)
	store.On("GetByID", mock.Anything, 1).Return(nil, dbDown)

	hasher := security.NewPasswordHasher(security.Argon2Params{Time: 1, Memory: 1024, Threads: 1})
	tokens := NewTokenService([]byte(testSecret), time.Hour)
	auth := NewAuthService(NewUserService(store, hasher), tokens, zerolog.Nop())

	_, err := auth.Login(context.Background(), model.LoginRequest{Email: "alice@example.com", Password: "x", Role: "teacher"})
	assert.ErrorIs(t, err, dbDown)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)

	token, err := tokens.IssueToken(1)
	require.NoError(t, err)
	_, err = auth.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, dbDown)
	assert.NotErrorIs(t, err, ErrUserNotFound)

	store.AssertExpectations(t)
}
