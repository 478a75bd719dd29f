package cryptids_test

import (
	"strings"
	"testing"

	"github.com/jrazmi/zentask/sdk/cryptids"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		id, err := cryptids.GenerateID()
		if err != nil {
			t.Fatal(err)
		}
		if len(id) != cryptids.IDLength {
			t.Fatalf("len(%q) = %d", id, len(id))
		}
		for _, r := range id {
			if !strings.ContainsRune(cryptids.IDAlphabet, r) {
				t.Fatalf("unexpected rune %q in %q", r, id)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateCustomIDValidation(t *testing.T) {
	if _, err := cryptids.GenerateCustomID("a", 4); err == nil {
		t.Error("expected error for one-letter alphabet")
	}
	if _, err := cryptids.GenerateCustomID("ab", 0); err == nil {
		t.Error("expected error for zero size")
	}
}
