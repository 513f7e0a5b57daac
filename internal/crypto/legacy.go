package crypto

import (
	"crypto/aes"
	"crypto/sha256"
	"errors"
	"fmt"
)

// Legacy scheme: AES-128-ECB over padded plaintext, with a SHA-256 checksum
// of the plaintext stored unencrypted next to the ciphertext. ECB provides no
// semantic security (equal plaintext blocks encrypt to equal ciphertext
// blocks) and the checksum only detects accidental corruption. Kept strictly
// for reading vaults written by older tooling.

const LegacyChecksumSize = sha256.Size

var (
	ErrBadPadding = errors.New("invalid padding")
)

// LegacyDecrypt decrypts a legacy ciphertext and verifies the plaintext
// checksum. The checksum result is reported as a flag rather than an error,
// matching the historical behavior: callers get the plaintext either way but
// must treat verified=false as wrong password or corruption.
func LegacyDecrypt(ciphertext, checksum, key []byte) (plaintext []byte, verified bool, err error) {
	if len(key) != LegacyKeySize {
		return nil, false, fmt.Errorf("invalid key length %d", len(key))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, false, fmt.Errorf("ciphertext length %d not block aligned", len(ciphertext))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += aes.BlockSize {
		block.Decrypt(padded[i:i+aes.BlockSize], ciphertext[i:i+aes.BlockSize])
	}

	plaintext, err = stripPadding(padded)
	if err != nil {
		ClearBytes(padded)
		return nil, false, err
	}

	sum := sha256.Sum256(plaintext)
	verified = ConstantTimeCompare(sum[:], checksum)
	return plaintext, verified, nil
}

// LegacyChecksum computes the plaintext checksum stored in legacy vault
// headers.
func LegacyChecksum(plaintext []byte) []byte {
	sum := sha256.Sum256(plaintext)
	return sum[:]
}

// LegacyEncrypt pads and encrypts plaintext with AES-128-ECB. It exists only
// so tests can build fixtures for the read path; the vault write path never
// produces the legacy format.
func LegacyEncrypt(plaintext, key []byte) ([]byte, error) {
	if len(key) != LegacyKeySize {
		return nil, fmt.Errorf("invalid key length %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := addPadding(plaintext)
	ciphertext := make([]byte, len(padded))
	for i := 0; i < len(padded); i += aes.BlockSize {
		block.Encrypt(ciphertext[i:i+aes.BlockSize], padded[i:i+aes.BlockSize])
	}
	ClearBytes(padded)
	return ciphertext, nil
}

// addPadding appends the pad value N repeated N times, N in 1..16. A full
// extra block is added when the plaintext is already block aligned.
func addPadding(data []byte) []byte {
	n := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// stripPadding validates and removes padding added by addPadding.
func stripPadding(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrBadPadding
	}
	n := int(data[len(data)-1])
	if n < 1 || n > aes.BlockSize || n > len(data) {
		return nil, ErrBadPadding
	}
	return data[:len(data)-n], nil
}
