package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/live-labs/credvault/internal/crypto"
	"github.com/live-labs/credvault/internal/vault"
)

// Init creates a new empty vault file
func Init(path string) {
	password, err := GetPasswordForInit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)

	store, err := vault.Create(path, password)
	if err != nil {
		if errors.Is(err, vault.ErrVaultExists) {
			fmt.Fprintf(os.Stderr, "Error: %s already exists\n", path)
			fmt.Fprintf(os.Stderr, "Use 'credvault ls -f %s' to see its contents\n", path)
			os.Exit(1)
		}
		HandleError(err)
	}
	defer store.Close()

	touchState(path)
	fmt.Printf("✓ Created vault %s\n", path)
}
