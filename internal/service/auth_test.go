package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	s := NewAuthService("admin", string(hash))

	assert.NoError(t, s.Login("admin", "hunter2"))
	assert.ErrorIs(t, s.Login("admin", "hunter3"), ErrWrongCredentials)
	assert.ErrorIs(t, s.Login("root", "hunter2"), ErrWrongCredentials)

	unset := NewAuthService("admin", "")
	assert.ErrorIs(t, unset.Login("admin", ""), ErrWrongCredentials)
}
