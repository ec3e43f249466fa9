package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/response"
	"github.com/edutrack/edutrack-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth map[string]struct {
	user *model.User
	err  error
}

func (f fakeAuth) Authenticate(_ context.Context, raw string) (*model.User, error) {
	if raw == "" {
		return nil, service.ErrUnauthenticated
	}
	r, ok := f[raw]
	if !ok {
		return nil, fmt.Errorf("%w: %w", service.ErrUnauthenticated, service.ErrInvalidToken)
	}
	return r.user, r.err
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func guardedRouter(auth Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	authed := r.Group("/", RequireAuth(auth))
	authed.GET("/me", func(c *gin.Context) {
		response.Success(c, http.StatusOK, CurrentUser(c).Public())
	})
	authed.GET("/teacher", RequireRole(model.RoleTeacher), func(c *gin.Context) {
		response.Success(c, http.StatusOK, nil)
	})
	authed.GET("/student", RequireRole(model.RoleStudent), func(c *gin.Context) {
		response.Success(c, http.StatusOK, nil)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	teacher := &model.User{ID: 1, Name: "Alice", Role: model.RoleTeacher}
	auth := fakeAuth{
		"teacher": {user: teacher},
		"expired": {err: fmt.Errorf("%w: %w", service.ErrUnauthenticated, service.ErrExpiredToken)},
		"deleted": {err: service.ErrUserNotFound},
		"db-down": {err: errors.New("connection refused")},
	}
	r := guardedRouter(auth)

	tests := []struct {
		name     string
		header   string
		query    string
		wantCode int
		wantErr  response.ErrCode
	}{
		{name: "no token", wantCode: http.StatusUnauthorized, wantErr: response.ErrTokenRequired},
		{name: "non bearer scheme", header: "Basic teacher", wantCode: http.StatusUnauthorized, wantErr: response.ErrTokenRequired},
		{name: "bearer", header: "Bearer teacher", wantCode: http.StatusOK},
		{name: "lowercase bearer", header: "bearer teacher", wantCode: http.StatusOK},
		{name: "query token ignored", query: "teacher", wantCode: http.StatusUnauthorized, wantErr: response.ErrTokenRequired},
		{name: "invalid", header: "Bearer junk", wantCode: http.StatusUnauthorized, wantErr: response.ErrTokenInvalid},
		{name: "expired", header: "Bearer expired", wantCode: http.StatusUnauthorized, wantErr: response.ErrTokenExpired},
		{name: "deleted user", header: "Bearer deleted", wantCode: http.StatusUnauthorized, wantErr: response.ErrTokenInvalid},
		{name: "store failure", header: "Bearer db-down", wantCode: http.StatusInternalServerError, wantErr: response.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/me"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorCode(t, w))
			} else {
				assert.Contains(t, w.Body.String(), `"name":"Alice"`)
				assert.NotContains(t, w.Body.String(), "password")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	auth := fakeAuth{
		"teacher": {user: &model.User{ID: 1, Role: model.RoleTeacher}},
		"student": {user: &model.User{ID: 2, Role: model.RoleStudent}},
	}
	r := guardedRouter(auth)

	tests := []struct {
		token    string
		path     string
		wantCode int
	}{
		{token: "teacher", path: "/teacher", wantCode: http.StatusOK},
		{token: "student", path: "/student", wantCode: http.StatusOK},
		{token: "student", path: "/teacher", wantCode: http.StatusForbidden},
		{token: "teacher", path: "/student", wantCode: http.StatusForbidden},
		{token: "", path: "/teacher", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.token+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusForbidden {
				assert.Equal(t, response.ErrForbidden, errorCode(t, w))
			}
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireRole(model.RoleTeacher), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiter_TokenBucket(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := rl.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := rl.Allow(ctx, "1.2.3.4")
	assert.False(t, ok, "bucket empty")

	ok, _ = rl.Allow(ctx, "5.6.7.8")
	assert.True(t, ok, "other clients unaffected")

	now = now.Add(30 * time.Second)
	ok, _ = rl.Allow(ctx, "1.2.3.4")
	assert.False(t, ok, "no partial refill")

	now = now.Add(31 * time.Second)
	ok, _ = rl.Allow(ctx, "1.2.3.4")
	assert.True(t, ok, "refilled after a full interval")
}

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	args := m.Called(ctx, key, ttl)
	return args.Get(0).(int64), args.Error(1)
}

func TestRedisRateLimiter_FixedWindow(t *testing.T) {
	counter := new(mockCounter)
	now := time.Unix(120, 0)
	rl := &RedisRateLimiter{counter: counter, rate: 2, interval: time.Minute, now: func() time.Time { return now }}
	ctx := context.Background()

	counter.On("Incr", ctx, "ratelimit:auth:1.2.3.4:2", time.Minute).Return(int64(1), nil).Once()
	counter.On("Incr", ctx, "ratelimit:auth:1.2.3.4:2", time.Minute).Return(int64(2), nil).Once()
	counter.On("Incr", ctx, "ratelimit:auth:1.2.3.4:2", time.Minute).Return(int64(3), nil).Once()

	for _, want := range []bool{true, true, false} {
		ok, err := rl.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.Equal(t, want, ok)
	}

	now = time.Unix(180, 0)
	counter.On("Incr", ctx, "ratelimit:auth:1.2.3.4:3", time.Minute).Return(int64(1), nil).Once()
	ok, err := rl.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok, "new window")

	counter.AssertExpectations(t)
}

type stubLimiter struct {
	ok  bool
	err error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.ok, s.err }

func TestRateLimitMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		limiter  Limiter
		wantCode int
	}{
		{name: "allowed", limiter: stubLimiter{ok: true}, wantCode: http.StatusOK},
		{name: "exceeded", limiter: stubLimiter{ok: false}, wantCode: http.StatusTooManyRequests},
		{name: "limiter down fails open", limiter: stubLimiter{err: errors.New("redis down")}, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", RateLimit(tt.limiter, zerolog.Nop()), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusTooManyRequests {
				assert.Equal(t, response.ErrRateLimitExceeded, errorCode(t, w))
			}
		})
	}
}

func TestBrotli(t *testing.T) {
	big := strings.Repeat("edutrack ", 500)
	r := gin.New()
	r.Use(Brotli())
	r.GET("/big", func(c *gin.Context) {
		// Several writes, the later ones shorter than MinLength.
		c.Status(http.StatusOK)
		_, _ = c.Writer.WriteString(big)
		_, _ = c.Writer.WriteString("tail")
	})
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "tiny") })

	t.Run("compresses large bodies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/big", nil)
		req.Header.Set("Accept-Encoding", "gzip, br")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "br", w.Header().Get("Content-Encoding"))
		plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
		require.NoError(t, err)
		assert.Equal(t, big+"tail", string(plain))
	})

	t.Run("leaves small bodies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/small", nil)
		req.Header.Set("Accept-Encoding", "br")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, "tiny", w.Body.String())
	})

	t.Run("respects q=0", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/big", nil)
		req.Header.Set("Accept-Encoding", "br;q=0")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, big+"tail", w.Body.String())
	})
}
