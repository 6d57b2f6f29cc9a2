package service

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrWrongCredentials = errors.New("wrong username or password")

// AuthService checks the single admin account configured for the event.
type AuthService struct {
	username     string
	passwordHash []byte
}

func NewAuthService(username, passwordHash string) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: []byte(passwordHash),
	}
}

func (s *AuthService) Login(username, password string) error {
	if len(s.passwordHash) == 0 {
		return ErrWrongCredentials
	}

	sameUser := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !sameUser || err != nil {
		return ErrWrongCredentials
	}

	return nil
}
