package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/credvault/internal/crypto"
	"github.com/live-labs/credvault/internal/keyring"
)

// Passwd changes the vault passphrase and re-encrypts the whole file. A
// cached keyring passphrase is updated so it does not go stale.
func Passwd(path string) {
	store := OpenStore(path)
	defer store.Close()

	fmt.Println("New vault password:")
	newPassword, err := ReadPasswordConfirm()
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(newPassword)

	if err := store.ChangePassphrase(newPassword); err != nil {
		store.Close()
		HandleError(err)
	}

	if info := lookupState(path); info != nil && keyring.HasPassword(info.ID) {
		if err := keyring.SavePassword(info.ID, string(newPassword)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to update keyring: %s\n", err)
		}
	}

	fmt.Println("✓ Vault password changed")
}
