package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/live-labs/credvault/internal/crypto"
	"github.com/live-labs/credvault/internal/keyring"
	"github.com/live-labs/credvault/internal/state"
	"github.com/live-labs/credvault/internal/vault"
)

const (
	passwordEnv  = "CREDVAULT_PASSWORD"
	vaultFileEnv = "CREDVAULT_FILE"

	defaultVaultFile = "credentials.vault"
)

// VaultPath resolves the vault file location: the -f flag when given, then
// CREDVAULT_FILE, then credentials.vault in the current directory.
func VaultPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := os.Getenv(vaultFileEnv); path != "" {
		return path
	}
	return defaultVaultFile
}

// ReadPassword reads a passphrase from the terminal without echoing
func ReadPassword(prompt string) ([]byte, error) {
	fmt.Print(prompt)

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// ReadPasswordConfirm reads a passphrase twice and ensures they match
func ReadPasswordConfirm() ([]byte, error) {
	password1, err := ReadPassword("Enter password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password1)

	password2, err := ReadPassword("Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password2)

	if !crypto.ConstantTimeCompare(password1, password2) {
		return nil, fmt.Errorf("passwords do not match")
	}

	result := make([]byte, len(password1))
	copy(result, password1)
	return result, nil
}

// GetPasswordFromEnv reads the passphrase from CREDVAULT_PASSWORD
func GetPasswordFromEnv() []byte {
	password := os.Getenv(passwordEnv)
	if password == "" {
		return nil
	}
	// Return a copy to avoid issues when clearing the bytes
	result := make([]byte, len(password))
	copy(result, []byte(password))
	return result
}

// GetPasswordForInit reads the passphrase for a new vault: the environment
// variable when set, otherwise an interactive prompt with confirmation.
func GetPasswordForInit() ([]byte, error) {
	if password := GetPasswordFromEnv(); password != nil {
		return password, nil
	}
	return ReadPasswordConfirm()
}

// GetPassword resolves the vault passphrase: environment variable first, then
// the OS keyring (when the vault has a cached entry), then a terminal prompt.
// The caller is responsible for calling crypto.ClearBytes on the result.
func GetPassword(vaultPath, prompt string) ([]byte, error) {
	if password := GetPasswordFromEnv(); password != nil {
		return password, nil
	}

	if info := lookupState(vaultPath); info != nil {
		if cached, err := keyring.GetPassword(info.ID); err == nil && cached != "" {
			return []byte(cached), nil
		}
	}

	password, err := ReadPassword(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// GetPasswordOrExit is like GetPassword but exits on error
func GetPasswordOrExit(vaultPath, prompt string) []byte {
	password, err := GetPassword(vaultPath, prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return password
}

// OpenStore opens the vault at path, resolving the passphrase and recording
// the vault in the state database. Exits with a user-facing message on any
// failure; a legacy checksum mismatch is treated exactly like a wrong
// password so no suspect plaintext is ever shown.
func OpenStore(path string) *vault.Store {
	password := GetPasswordOrExit(path, "Vault password: ")
	defer crypto.ClearBytes(password)

	store, err := vault.Open(path, password)
	if err != nil {
		HandleError(err)
	}
	if !store.Verified {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: checksum mismatch: wrong password or corrupted vault\n")
		os.Exit(1)
	}

	touchState(path)
	return store
}

// lookupState fetches tracked vault info, tolerating a missing or broken
// state database.
func lookupState(path string) *state.VaultInfo {
	statePath, err := state.DefaultPath()
	if err != nil {
		return nil
	}
	db, err := state.Open(statePath)
	if err != nil {
		return nil
	}
	defer db.Close()

	info, err := db.Get(path)
	if err != nil {
		return nil
	}
	return info
}

// touchState records the vault as recently opened. Best effort: state
// database problems never block vault access.
func touchState(path string) {
	statePath, err := state.DefaultPath()
	if err != nil {
		return
	}
	db, err := state.Open(statePath)
	if err != nil {
		return
	}
	defer db.Close()
	_, _ = db.Touch(path)
}

// ParseEntryID parses a numeric entry id argument
func ParseEntryID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid entry id %q\n", arg)
		os.Exit(1)
	}
	return id
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, vault.ErrAuthFailed):
		fmt.Fprintf(os.Stderr, "Error: wrong password or corrupted vault\n")
	case errors.Is(err, vault.ErrBadFormat):
		fmt.Fprintf(os.Stderr, "Error: not a valid vault file\n")
	case errors.Is(err, vault.ErrEntryNotFound):
		fmt.Fprintf(os.Stderr, "Error: entry not found\n")
		fmt.Fprintf(os.Stderr, "Use 'credvault ls' to see entry ids\n")
	case errors.Is(err, vault.ErrVaultExists):
		fmt.Fprintf(os.Stderr, "Error: vault file already exists\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}
