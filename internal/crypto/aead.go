package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

var (
	ErrAuthFailed = errors.New("authentication failed")
)

// SealGCM encrypts plaintext with AES-256-GCM under key, using a freshly
// generated nonce. The nonce must never be reused with the same key, so a new
// one is drawn from crypto/rand on every call. Returns the nonce, the
// authentication tag and the ciphertext as separate slices so the caller can
// lay them out in the vault envelope.
func SealGCM(plaintext, key []byte) (nonce, tag, ciphertext []byte, err error) {
	if len(key) != KeySize {
		return nil, nil, nil, fmt.Errorf("invalid key length %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce, err = GenerateRandom(NonceSize)
	if err != nil {
		return nil, nil, nil, err
	}

	// Seal appends ciphertext||tag
	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagSize
	return nonce, sealed[split:], sealed[:split], nil
}

// OpenGCM decrypts and verifies an AES-256-GCM ciphertext. Any single-bit
// change to nonce, tag, ciphertext or key yields ErrAuthFailed and no
// plaintext is ever returned.
func OpenGCM(nonce, tag, ciphertext, key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key length %d", len(key))
	}
	if len(nonce) != NonceSize || len(tag) != TagSize {
		return nil, ErrAuthFailed
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}
