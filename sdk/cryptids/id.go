// Package cryptids generates short random identifiers, used for request
// trace ids.
package cryptids

import (
	"crypto/rand"
	"errors"
)

var (
	IDAlphabet = "bcdfghjklmnpqrstvwxyZBCDFGHJKLMNPQRSTVWXYZ0123456789"
	IDLength   = 18
)

// GenerateID creates a random id from the default alphabet and length.
func GenerateID() (string, error) {
	return generateID(IDAlphabet, IDLength)
}

func GenerateCustomID(alphabet string, size int) (string, error) {
	return generateID(alphabet, size)
}

func generateID(alphabet string, size int) (string, error) {
	if len(alphabet) < 2 {
		return "", errors.New("alphabet must contain at least 2 characters")
	}
	if size < 1 {
		return "", errors.New("size must be at least 1")
	}

	// Smallest all-ones mask covering the alphabet. Bytes that land past
	// the alphabet are rejected to keep the distribution uniform.
	mask := 1
	for mask < len(alphabet) {
		mask = (mask << 1) | 1
	}

	step := max(int(float64(size)*1.6), size)
	id := make([]byte, size)
	buf := make([]byte, step)

	for n := 0; n < size; {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for i := 0; i < len(buf) && n < size; i++ {
			idx := int(buf[i]) & mask
			if idx >= len(alphabet) {
				continue
			}
			id[n] = alphabet[idx]
			n++
		}
	}

	return string(id), nil
}
