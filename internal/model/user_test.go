package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{raw: "teacher", want: RoleTeacher},
		{raw: "student", want: RoleStudent},
		{raw: "Teacher", wantErr: true},
		{raw: "admin", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseRole(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRole)
				assert.False(t, Role(tt.raw).Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestUser_NeverSerializesPasswordHash(t *testing.T) {
	u := &User{
		ID:           7,
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "$argon2id$secret",
		Role:         RoleTeacher,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, v := range []any{u, u.Public()} {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "argon2id")
		assert.NotContains(t, string(raw), "password")
	}

	pub := u.Public()
	assert.Equal(t, u.ID, pub.ID)
	assert.Equal(t, u.Email, pub.Email)
	assert.Equal(t, RoleTeacher, pub.Role)
}
