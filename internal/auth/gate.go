package auth

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrWrongPassword = errors.New("wrong password")

// Gate guards the whole application behind one shared password, kept as a
// bcrypt hash.
type Gate struct {
	passwordHash []byte
	issuer       *Issuer
}

func NewGate(passwordHash string, issuer *Issuer) *Gate {
	return &Gate{passwordHash: []byte(passwordHash), issuer: issuer}
}

func (g *Gate) Login(password string) (string, time.Time, error) {
	if password == "" {
		return "", time.Time{}, ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrWrongPassword
	}
	return g.issuer.Issue()
}
