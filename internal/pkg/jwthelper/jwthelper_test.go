package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("secret")

	token, err := GenerateToken(key, "admin", "curl/8.0", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "curl/8.0", claims.UserAgent)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseToken_Rejects(t *testing.T) {
	key := []byte("secret")

	expired, err := GenerateToken(key, "admin", "", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(key, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	valid, err := GenerateToken(key, "admin", "", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken([]byte("other"), valid)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Tokens signed with another algorithm are refused even with the right key.
	other := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := other.SignedString(key)
	require.NoError(t, err)
	_, err = ParseToken(key, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
