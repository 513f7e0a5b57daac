package vault

import (
	"bytes"
	"crypto/aes"
	"fmt"

	"github.com/live-labs/credvault/internal/crypto"
)

// Magic identifies the current envelope layout and leaves room for future
// versions. Legacy files carry no tag and are recognized by exclusion.
var Magic = []byte("VLT2")

// Version tags the envelope variant resolved at decode time.
type Version int

const (
	VersionLegacy Version = iota + 1
	VersionAuthenticated
)

// Envelope is the decoded on-disk container: everything needed to decrypt a
// vault except the passphrase. Nonce and Tag are set only for the
// authenticated variant, Checksum only for the legacy one.
type Envelope struct {
	Version    Version
	Salt       []byte
	Nonce      []byte
	Tag        []byte
	Checksum   []byte
	Ciphertext []byte
}

const (
	authHeaderSize   = 4 + crypto.SaltSize + crypto.NonceSize + crypto.TagSize
	legacyHeaderSize = crypto.SaltSize + crypto.LegacyChecksumSize
)

// DecodeEnvelope parses a vault file blob. Blobs starting with the magic are
// parsed as the authenticated layout; anything else must pass the legacy
// shape check (total length >= 48, ciphertext a positive multiple of the AES
// block size) or the blob is not a vault at all.
func DecodeEnvelope(blob []byte) (*Envelope, error) {
	if len(blob) >= len(Magic) && bytes.Equal(blob[:len(Magic)], Magic) {
		if len(blob) <= authHeaderSize {
			return nil, fmt.Errorf("%w: vault file too small", ErrBadFormat)
		}
		off := len(Magic)
		env := &Envelope{Version: VersionAuthenticated}
		env.Salt = append([]byte(nil), blob[off:off+crypto.SaltSize]...)
		off += crypto.SaltSize
		env.Nonce = append([]byte(nil), blob[off:off+crypto.NonceSize]...)
		off += crypto.NonceSize
		env.Tag = append([]byte(nil), blob[off:off+crypto.TagSize]...)
		off += crypto.TagSize
		env.Ciphertext = append([]byte(nil), blob[off:]...)
		return env, nil
	}

	if len(blob) <= legacyHeaderSize {
		return nil, fmt.Errorf("%w: vault file too small", ErrBadFormat)
	}
	ctLen := len(blob) - legacyHeaderSize
	if ctLen%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: bad header and ciphertext not block aligned", ErrBadFormat)
	}

	env := &Envelope{Version: VersionLegacy}
	env.Salt = append([]byte(nil), blob[:crypto.SaltSize]...)
	env.Checksum = append([]byte(nil), blob[crypto.SaltSize:legacyHeaderSize]...)
	env.Ciphertext = append([]byte(nil), blob[legacyHeaderSize:]...)
	return env, nil
}

// Encode serializes the envelope. Only the authenticated layout is ever
// written; legacy vaults are upgraded on their next save.
func (e *Envelope) Encode() ([]byte, error) {
	if e.Version != VersionAuthenticated {
		return nil, fmt.Errorf("%w: refusing to write legacy layout", ErrBadFormat)
	}
	if len(e.Salt) != crypto.SaltSize || len(e.Nonce) != crypto.NonceSize || len(e.Tag) != crypto.TagSize {
		return nil, fmt.Errorf("%w: bad header field lengths", ErrBadFormat)
	}
	if len(e.Ciphertext) == 0 {
		return nil, fmt.Errorf("%w: empty ciphertext", ErrBadFormat)
	}

	blob := make([]byte, 0, authHeaderSize+len(e.Ciphertext))
	blob = append(blob, Magic...)
	blob = append(blob, e.Salt...)
	blob = append(blob, e.Nonce...)
	blob = append(blob, e.Tag...)
	blob = append(blob, e.Ciphertext...)
	return blob, nil
}
