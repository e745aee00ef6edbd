package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretRoundTrip(t *testing.T) {
	salt, err := randomSalt()
	require.NoError(t, err)
	require.Len(t, salt, 16)

	secret := generateSecret("correct horse", "pepper", salt)
	assert.True(t, verifySecret("correct horse", "pepper", secret))
	assert.False(t, verifySecret("wrong horse", "pepper", secret))
	assert.False(t, verifySecret("correct horse", "other-pepper", secret))
}

func TestSecretSaltMatters(t *testing.T) {
	saltA, err := randomSalt()
	require.NoError(t, err)
	saltB, err := randomSalt()
	require.NoError(t, err)
	require.NotEqual(t, saltA, saltB)

	a := generateSecret("pw", "pepper", saltA)
	b := generateSecret("pw", "pepper", saltB)
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}
