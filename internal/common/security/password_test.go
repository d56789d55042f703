package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("password1")
	require.NoError(t, err)

	assert.NotEqual(t, "password1", hash, "hash must never equal the plaintext")
	assert.True(t, CheckPasswordHash("password1", hash))
	assert.False(t, CheckPasswordHash("password2", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("password1")
	require.NoError(t, err)
	h2, err := HashPassword("password1")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "bcrypt hashes are salted")
}
