package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(secret, 42, "0xabc", TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(secret, TokenTypeAccess, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "0xabc", claims.Address)
}

func TestParseRejectsWrongType(t *testing.T) {
	token, err := GenerateToken(secret, 1, "", "refresh", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TokenTypeAccess, token)
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(secret, 1, "", TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other"), TokenTypeAccess, token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := GenerateToken(secret, 1, "", TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TokenTypeAccess, token)
	assert.Error(t, err)
}

func TestShouldRotate(t *testing.T) {
	token, err := GenerateToken(secret, 1, "", TokenTypeAccess, 10*time.Second)
	require.NoError(t, err)
	claims, err := ParseToken(secret, TokenTypeAccess, token)
	require.NoError(t, err)

	assert.True(t, ShouldRotate(claims, time.Minute))
	assert.False(t, ShouldRotate(claims, time.Second))
}
