package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/credvault/internal/crypto"
	"github.com/live-labs/credvault/internal/keyring"
	"github.com/live-labs/credvault/internal/state"
	"github.com/live-labs/credvault/internal/vault"
)

// KeyringSave verifies the vault passphrase and caches it in the OS keyring
func KeyringSave(path string) {
	password, err := ReadPassword("Vault password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)

	// Never cache an unverified password
	store, err := vault.Open(path, password)
	if err != nil {
		HandleError(err)
	}
	verified := store.Verified
	store.Close()
	if !verified {
		fmt.Fprintf(os.Stderr, "Error: checksum mismatch: wrong password or corrupted vault\n")
		os.Exit(1)
	}

	info := vaultID(path)
	if err := keyring.SavePassword(info.ID, string(password)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Password saved to keyring")
}

// KeyringDelete removes the cached passphrase from the OS keyring
func KeyringDelete(path string) {
	info := lookupState(path)
	if info == nil {
		fmt.Println("No password stored in keyring")
		return
	}
	if err := keyring.DeletePassword(info.ID); err != nil {
		fmt.Println("No password stored in keyring")
		return
	}
	fmt.Println("✓ Password removed from keyring")
}

// KeyringStatus reports whether a passphrase is cached for the vault
func KeyringStatus(path string) {
	info := lookupState(path)
	if info == nil || !keyring.HasPassword(info.ID) {
		fmt.Println("Password: not stored")
		return
	}
	fmt.Println("Password: stored in keyring")
}

// vaultID returns tracked state for the vault, registering it on first use.
func vaultID(path string) *state.VaultInfo {
	statePath, err := state.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	db, err := state.Open(statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer db.Close()

	info, err := db.Touch(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return info
}
