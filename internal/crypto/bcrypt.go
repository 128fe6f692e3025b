package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned by Hash for passwords bcrypt cannot accept.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// bcryptHasher is the bcrypt implementation of [PasswordHasher].
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a [PasswordHasher] backed by bcrypt.
// A cost outside [bcrypt.MinCost, bcrypt.MaxCost] selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash implements [PasswordHasher].
func (h *bcryptHasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// Verify implements [PasswordHasher]. Any error reported by bcrypt, including
// a malformed or truncated digest, counts as a mismatch.
func (h *bcryptHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
