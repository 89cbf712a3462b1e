package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"hypefeed/internal/config"
)

// Credentials turns a submitted password into its stored form and checks
// a login attempt against it.
type Credentials interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

// PlaintextCredentials stores passwords verbatim and compares with ==.
// It exists so databases written by earlier deployments keep working.
type PlaintextCredentials struct{}

func (PlaintextCredentials) Hash(password string) (string, error) {
	return password, nil
}

func (PlaintextCredentials) Compare(stored, password string) bool {
	return stored == password
}

type BcryptCredentials struct {
	Cost int
}

func (c BcryptCredentials) Hash(password string) (string, error) {
	cost := c.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptCredentials) Compare(stored, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	return err == nil
}

// NewCredentials picks the scheme named by PASSWORD_SCHEME.
func NewCredentials(scheme string) (Credentials, error) {
	switch scheme {
	case "", config.PasswordPlaintext:
		return PlaintextCredentials{}, nil
	case config.PasswordBcrypt:
		return BcryptCredentials{}, nil
	default:
		return nil, errors.New("unknown password scheme " + scheme)
	}
}
