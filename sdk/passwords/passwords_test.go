package passwords_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jrazmi/zentask/sdk/passwords"
	"golang.org/x/crypto/bcrypt"
)

func TestHashCompare(t *testing.T) {
	h := passwords.NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals password")
	}
	if err := h.Compare(hash, "hunter22"); err != nil {
		t.Errorf("Compare() error = %v", err)
	}
	if err := h.Compare(hash, "hunter23"); !errors.Is(err, passwords.ErrMismatch) {
		t.Errorf("Compare() wrong password error = %v, want ErrMismatch", err)
	}
	if err := h.Compare("not-a-hash", "hunter22"); err == nil || errors.Is(err, passwords.ErrMismatch) {
		t.Errorf("Compare() malformed hash error = %v", err)
	}

	h.CompareDummy("anything")
}

func TestCostFallback(t *testing.T) {
	h := passwords.NewHasher(99)
	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatal(err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatal(err)
	}
	if cost != passwords.DefaultCost {
		t.Errorf("cost = %d, want %d", cost, passwords.DefaultCost)
	}
}

func TestMaxLength(t *testing.T) {
	h := passwords.NewHasher(bcrypt.MinCost)

	longest := strings.Repeat("a", passwords.MaxLength)
	hash, err := h.Hash(longest)
	if err != nil {
		t.Fatalf("Hash() at MaxLength error = %v", err)
	}
	if _, err := h.Hash(longest + "a"); !errors.Is(err, bcrypt.ErrPasswordTooLong) {
		t.Errorf("Hash() past MaxLength error = %v", err)
	}
	if err := h.Compare(hash, longest+"a"); !errors.Is(err, passwords.ErrMismatch) {
		t.Errorf("Compare() past MaxLength error = %v, want ErrMismatch", err)
	}
}
