package vault

import (
	"bytes"
	"errors"
	"testing"

	"github.com/live-labs/credvault/internal/crypto"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte(`{"entries":[]}`)
	passphrase := []byte("correct horse")

	blob, err := Encrypt(plaintext, passphrase)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	decrypted, verified, err := Decrypt(blob, passphrase)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !verified {
		t.Error("authenticated decrypt should report verified")
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("round trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestEncryptFreshSaltAndNonce(t *testing.T) {
	plaintext := []byte(`{"entries":[]}`)
	passphrase := []byte("correct horse")

	b1, err := Encrypt(plaintext, passphrase)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	b2, err := Encrypt(plaintext, passphrase)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if bytes.Equal(b1, b2) {
		t.Error("two encryptions of the same document must not produce identical bytes")
	}

	e1, err := DecodeEnvelope(b1)
	if err != nil {
		t.Fatalf("DecodeEnvelope failed: %v", err)
	}
	e2, err := DecodeEnvelope(b2)
	if err != nil {
		t.Fatalf("DecodeEnvelope failed: %v", err)
	}
	if bytes.Equal(e1.Salt, e2.Salt) {
		t.Error("salt must be regenerated on every encryption")
	}
	if bytes.Equal(e1.Nonce, e2.Nonce) {
		t.Error("nonce must be regenerated on every encryption")
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	blob, err := Encrypt([]byte(`{"entries":[]}`), []byte("correct horse"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if _, _, err := Decrypt(blob, []byte("wrong")); !errors.Is(err, ErrAuthFailed) {
		t.Errorf("expected ErrAuthFailed, got %v", err)
	}
}

func TestDecryptTamperedBlob(t *testing.T) {
	passphrase := []byte("correct horse")
	blob, err := Encrypt([]byte(`{"entries":[]}`), passphrase)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	// Flip one byte in every region past the magic: salt, nonce, tag,
	// ciphertext. All must fail closed.
	for i := len(Magic); i < len(blob); i++ {
		tampered := append([]byte(nil), blob...)
		tampered[i] ^= 0x01
		if _, _, err := Decrypt(tampered, passphrase); !errors.Is(err, ErrAuthFailed) {
			t.Fatalf("byte %d: expected ErrAuthFailed, got %v", i, err)
		}
	}
}

// legacyFixture builds a legacy-layout vault blob the way the old tooling
// wrote them.
func legacyFixture(t *testing.T, plaintext, passphrase []byte) []byte {
	t.Helper()
	salt := bytes.Repeat([]byte{0xA5}, crypto.SaltSize)
	key := crypto.DeriveKey(passphrase, salt, crypto.LegacyKeySize)
	ciphertext, err := crypto.LegacyEncrypt(plaintext, key)
	if err != nil {
		t.Fatalf("failed to build legacy fixture: %v", err)
	}

	blob := append([]byte(nil), salt...)
	blob = append(blob, crypto.LegacyChecksum(plaintext)...)
	blob = append(blob, ciphertext...)
	return blob
}

func TestDecryptLegacyVault(t *testing.T) {
	plaintext := []byte(`{"entries":[{"serviceName":"Mail","username":"a@b.com"}]}`)
	passphrase := []byte("correct horse")
	blob := legacyFixture(t, plaintext, passphrase)

	decrypted, verified, err := Decrypt(blob, passphrase)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !verified {
		t.Error("untampered legacy vault should verify")
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("legacy round trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestDecryptLegacyVaultCorrupted(t *testing.T) {
	plaintext := []byte(`{"entries":[{"serviceName":"Mail","username":"a@b.com"}]}`)
	passphrase := []byte("correct horse")
	blob := legacyFixture(t, plaintext, passphrase)

	// Flip one ciphertext byte in the first block. The legacy scheme has no
	// authentication, so decryption succeeds but the checksum must not.
	blob[legacyHeaderSize] ^= 0x01
	decrypted, verified, err := Decrypt(blob, passphrase)
	if err != nil {
		t.Fatalf("legacy decrypt must not raise on corruption: %v", err)
	}
	if verified {
		t.Error("corrupted legacy vault must not verify")
	}
	if bytes.Equal(decrypted, plaintext) {
		t.Error("corrupted ciphertext should not yield original plaintext")
	}
}
