package vault

import (
	"fmt"

	"github.com/live-labs/credvault/internal/crypto"
)

// Encrypt seals a plaintext document into a vault blob. A fresh salt and
// nonce are generated on every call; the derived key is wiped before
// returning.
func Encrypt(plaintext, passphrase []byte) ([]byte, error) {
	salt, err := crypto.GenerateRandom(crypto.SaltSize)
	if err != nil {
		return nil, err
	}

	key := crypto.DeriveKey(passphrase, salt, crypto.KeySize)
	defer crypto.ClearBytes(key)

	nonce, tag, ciphertext, err := crypto.SealGCM(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt vault: %w", err)
	}

	env := &Envelope{
		Version:    VersionAuthenticated,
		Salt:       salt,
		Nonce:      nonce,
		Tag:        tag,
		Ciphertext: ciphertext,
	}
	return env.Encode()
}

// Decrypt opens a vault blob with the passphrase. For the authenticated
// layout any verification failure is ErrAuthFailed and no plaintext is
// returned. For the legacy layout the plaintext is returned together with the
// checksum result: verified=false means wrong passphrase or corruption and
// callers must treat it as fatal, but historically the format surfaced it as
// a flag rather than an error.
func Decrypt(blob, passphrase []byte) (plaintext []byte, verified bool, err error) {
	env, err := DecodeEnvelope(blob)
	if err != nil {
		return nil, false, err
	}

	switch env.Version {
	case VersionAuthenticated:
		key := crypto.DeriveKey(passphrase, env.Salt, crypto.KeySize)
		defer crypto.ClearBytes(key)

		plaintext, err = crypto.OpenGCM(env.Nonce, env.Tag, env.Ciphertext, key)
		if err != nil {
			return nil, false, err
		}
		return plaintext, true, nil

	case VersionLegacy:
		key := crypto.DeriveKey(passphrase, env.Salt, crypto.LegacyKeySize)
		defer crypto.ClearBytes(key)

		plaintext, verified, err = crypto.LegacyDecrypt(env.Ciphertext, env.Checksum, key)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrBadFormat, err)
		}
		return plaintext, verified, nil

	default:
		return nil, false, fmt.Errorf("%w: unknown version %d", ErrBadFormat, env.Version)
	}
}
