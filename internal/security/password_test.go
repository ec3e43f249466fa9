package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Small parameters keep the suite fast; the encoding is the same.
var testParams = Argon2Params{Time: 1, Memory: 1024, Threads: 1}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(testParams)

	for _, pw := range []string{"password123", "", "päss wörd", strings.Repeat("x", 128)} {
		encoded, err := h.Hash(pw)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$t=1,m=1024,p=1$"))

		ok, err := h.Verify(pw, encoded)
		require.NoError(t, err)
		assert.True(t, ok, "password %q should verify", pw)
	}
}

func TestPasswordHasher_RejectsOtherPassword(t *testing.T) {
	h := NewPasswordHasher(testParams)

	encoded, err := h.Hash("correct horse")
	require.NoError(t, err)

	for _, pw := range []string{"correct hors", "Correct horse", "correct horse ", ""} {
		ok, err := h.Verify(pw, encoded)
		require.NoError(t, err)
		assert.False(t, ok, "password %q must not verify", pw)
	}
}

func TestPasswordHasher_SaltsEachHash(t *testing.T) {
	h := NewPasswordHasher(testParams)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_UsesStoredParameters(t *testing.T) {
	old := NewPasswordHasher(testParams)
	encoded, err := old.Hash("pw")
	require.NoError(t, err)

	tuned := NewPasswordHasher(Argon2Params{Time: 2, Memory: 2048, Threads: 2})
	ok, err := tuned.Verify("pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(testParams)

	for _, encoded := range []string{
		"",
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		"$argon2i$v=19$t=1,m=1024,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$t=1,m=1024,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$t=1,m=1024,p=1$!!!$a2V5",
		"$argon2id$v=19$t=1,m=8,p=1$c2FsdHNhbHQ$",
		"$argon2id$v=19$t=0,m=1024,p=1$c2FsdHNhbHQ$a2V5",
		"$argon2id$v=19$t=1,m=1024,p=0$c2FsdHNhbHQ$a2V5",
		"$argon2id$v=19$t=1,m=0,p=1$c2FsdHNhbHQ$a2V5",
		"$argon2id$v=19$t=1,m=4294967295,p=1$c2FsdHNhbHQ$a2V5",
		"$argon2id$v=19$t=4294967295,m=1024,p=1$c2FsdHNhbHQ$a2V5",
	} {
		ok, err := h.Verify("pw", encoded)
		assert.ErrorIs(t, err, ErrMalformedHash, encoded)
		assert.False(t, ok)
	}
}
