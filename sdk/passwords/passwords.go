// Package passwords hashes and checks passwords with bcrypt.
package passwords

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 12

// MaxLength is the longest password bcrypt accepts, in bytes.
const MaxLength = 72

// ErrMismatch is returned when a password does not match its hash.
var ErrMismatch = errors.New("password mismatch")

type Hasher struct {
	cost      int
	dummyOnce sync.Once
	dummy     []byte
}

// NewHasher returns a Hasher using cost, or DefaultCost when cost is out
// of bcrypt's range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash fails with bcrypt.ErrPasswordTooLong past MaxLength bytes, so
// callers validate the length first.
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare reports ErrMismatch for a wrong password, including one too long
// to ever have been hashed.
func (h *Hasher) Compare(hash, password string) error {
	if len(password) > MaxLength {
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}

// CompareDummy spends the same time as Compare against a throwaway hash.
// Callers use it when the account does not exist.
func (h *Hasher) CompareDummy(password string) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("zentask-dummy-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
