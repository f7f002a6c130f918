package sec

import (
	"crypto/rand"

	"golang.org/x/crypto/bcrypt"
)

// CompareKey returns an error if the provided key does not resolve to the
// given hash. The comparison of the derived digest runs in constant time.
func CompareKey[T ~string | ~[]byte](key T, hash []byte) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(key))
}

// HashKey generates a salted hash for a given key. Hashing the same key twice
// yields different digests. It errors if the key is longer than 72 bytes.
func HashKey[T ~string | ~[]byte](key T) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
}

// GenerateKey returns a new random API key.
func GenerateKey() string {
	return rand.Text()
}
