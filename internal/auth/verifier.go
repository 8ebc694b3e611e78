package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any username or password mismatch.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Verifier checks a username and password.
type Verifier interface {
	Verify(username, password string) error
}

// BcryptVerifier accepts one username whose password matches a bcrypt hash.
type BcryptVerifier struct {
	Username     string
	PasswordHash string
}

// Verify returns ErrInvalidCredentials unless both username and password match.
func (v *BcryptVerifier) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(v.Username)) == 1

	// Always run the hash comparison so a wrong username costs the same.
	err := bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("checking password: %w", err)
	}
	if !userOK || err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// AllowAll accepts every login. It is used when no credentials are configured.
type AllowAll struct{}

// Verify always succeeds.
func (AllowAll) Verify(string, string) error { return nil }

// HashPassword returns a bcrypt hash of password for the config file.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
