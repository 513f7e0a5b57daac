package crypto

import (
	"bytes"
	"strings"
	"testing"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0xAB}, SaltSize)

	k1 := DeriveKey([]byte("correct horse"), salt, KeySize)
	k2 := DeriveKey([]byte("correct horse"), salt, KeySize)
	if !bytes.Equal(k1, k2) {
		t.Error("same passphrase and salt should derive the same key")
	}
	if len(k1) != KeySize {
		t.Errorf("expected %d byte key, got %d", KeySize, len(k1))
	}

	k3 := DeriveKey([]byte("wrong"), salt, KeySize)
	if bytes.Equal(k1, k3) {
		t.Error("different passphrases should derive different keys")
	}

	otherSalt := bytes.Repeat([]byte{0xCD}, SaltSize)
	k4 := DeriveKey([]byte("correct horse"), otherSalt, KeySize)
	if bytes.Equal(k1, k4) {
		t.Error("different salts should derive different keys")
	}

	legacy := DeriveKey([]byte("correct horse"), salt, LegacyKeySize)
	if len(legacy) != LegacyKeySize {
		t.Errorf("expected %d byte legacy key, got %d", LegacyKeySize, len(legacy))
	}
}

func TestSealOpenGCMRoundTrip(t *testing.T) {
	key, err := GenerateRandom(KeySize)
	if err != nil {
		t.Fatalf("GenerateRandom failed: %v", err)
	}
	plaintext := []byte(`{"entries":[]}`)

	nonce, tag, ciphertext, err := SealGCM(plaintext, key)
	if err != nil {
		t.Fatalf("SealGCM failed: %v", err)
	}
	if len(nonce) != NonceSize {
		t.Errorf("expected %d byte nonce, got %d", NonceSize, len(nonce))
	}
	if len(tag) != TagSize {
		t.Errorf("expected %d byte tag, got %d", TagSize, len(tag))
	}
	if len(ciphertext) != len(plaintext) {
		t.Errorf("GCM ciphertext length should equal plaintext length")
	}

	decrypted, err := OpenGCM(nonce, tag, ciphertext, key)
	if err != nil {
		t.Fatalf("OpenGCM failed: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("round trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestSealGCMFreshNonce(t *testing.T) {
	key, err := GenerateRandom(KeySize)
	if err != nil {
		t.Fatalf("GenerateRandom failed: %v", err)
	}

	n1, _, c1, err := SealGCM([]byte("secret"), key)
	if err != nil {
		t.Fatalf("SealGCM failed: %v", err)
	}
	n2, _, c2, err := SealGCM([]byte("secret"), key)
	if err != nil {
		t.Fatalf("SealGCM failed: %v", err)
	}

	if bytes.Equal(n1, n2) {
		t.Error("two encryptions must not reuse a nonce")
	}
	if bytes.Equal(c1, c2) {
		t.Error("two encryptions of the same plaintext must not produce identical ciphertext")
	}
}

func TestOpenGCMFailClosed(t *testing.T) {
	key, err := GenerateRandom(KeySize)
	if err != nil {
		t.Fatalf("GenerateRandom failed: %v", err)
	}
	nonce, tag, ciphertext, err := SealGCM([]byte("secret"), key)
	if err != nil {
		t.Fatalf("SealGCM failed: %v", err)
	}

	flip := func(b []byte) []byte {
		out := append([]byte(nil), b...)
		out[0] ^= 0x01
		return out
	}

	if _, err := OpenGCM(flip(nonce), tag, ciphertext, key); err != ErrAuthFailed {
		t.Errorf("flipped nonce: expected ErrAuthFailed, got %v", err)
	}
	if _, err := OpenGCM(nonce, flip(tag), ciphertext, key); err != ErrAuthFailed {
		t.Errorf("flipped tag: expected ErrAuthFailed, got %v", err)
	}
	if _, err := OpenGCM(nonce, tag, flip(ciphertext), key); err != ErrAuthFailed {
		t.Errorf("flipped ciphertext: expected ErrAuthFailed, got %v", err)
	}
	if _, err := OpenGCM(nonce, tag, ciphertext, flip(key)); err != ErrAuthFailed {
		t.Errorf("flipped key: expected ErrAuthFailed, got %v", err)
	}
}

func TestGeneratePassword(t *testing.T) {
	p1, err := GeneratePassword(DefaultPasswordLength)
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}
	if len(p1) != DefaultPasswordLength {
		t.Errorf("expected length %d, got %d", DefaultPasswordLength, len(p1))
	}
	for _, r := range p1 {
		if !strings.ContainsRune(passwordAlphabet, r) {
			t.Errorf("character %q outside alphabet", r)
		}
	}

	p2, err := GeneratePassword(DefaultPasswordLength)
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}
	if p1 == p2 {
		t.Error("two generated passwords should differ")
	}
}
