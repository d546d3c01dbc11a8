package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var (
	// ErrEmptyPassword is returned when hashing a blank password.
	ErrEmptyPassword = errors.New("password is empty")
	// ErrPasswordTooLong is returned for passwords over MaxPasswordBytes.
	ErrPasswordTooLong = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
)

// Hasher hashes and verifies passwords with bcrypt at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost, which must be within bcrypt's bounds.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{cost: cost}, nil
}

// Hash returns a salted bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash is a mismatch.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
