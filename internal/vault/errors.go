package vault

import (
	"errors"

	"github.com/live-labs/credvault/internal/crypto"
)

var (
	// ErrBadFormat reports a malformed envelope or an unparseable document.
	// Distinct from ErrAuthFailed so callers can tell "not a vault file"
	// apart from "wrong password or corrupted file".
	ErrBadFormat = errors.New("invalid vault format")

	// ErrAuthFailed reports a failed authenticated decryption: wrong
	// passphrase or tampered ciphertext.
	ErrAuthFailed = crypto.ErrAuthFailed

	// ErrEntryNotFound reports an operation referencing an unknown entry id.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrVaultExists reports an attempt to initialize over an existing vault.
	ErrVaultExists = errors.New("vault already exists")
)
