package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize  = 16 // Salt size in bytes
	NonceSize = 12 // GCM nonce size
	TagSize   = 16 // GCM authentication tag size

	KeySize       = 32 // AES-256 key size (current scheme)
	LegacyKeySize = 16 // AES-128 key size (legacy scheme)

	// Iterations is part of the on-disk format contract. Vaults written with
	// a different count cannot be opened, so it must never become
	// configurable.
	Iterations = 10000
)

// DeriveKey derives a symmetric key from a passphrase and salt using
// PBKDF2-HMAC-SHA256. keyLen is KeySize for the current scheme or
// LegacyKeySize for the legacy one.
func DeriveKey(passphrase, salt []byte, keyLen int) []byte {
	return pbkdf2.Key(passphrase, salt, Iterations, keyLen, sha256.New)
}

// GenerateRandom generates n random bytes
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
