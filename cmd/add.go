package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/credvault/internal/crypto"
	"github.com/live-labs/credvault/internal/vault"
)

// Add creates a new entry at the end of the list. With generate set the
// password is produced by the built-in generator; an empty password without
// generate triggers a prompt.
func Add(path, service, username, password, notes string, generate bool, genLength int) {
	if service == "" {
		fmt.Fprintf(os.Stderr, "Error: service name is required\n")
		os.Exit(1)
	}

	if generate {
		generated, err := crypto.GeneratePassword(genLength)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		password = generated
	} else if password == "" {
		raw, err := ReadPassword("Entry password (empty to leave blank): ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		password = string(raw)
		crypto.ClearBytes(raw)
	}

	store := OpenStore(path)
	defer store.Close()

	entry := &vault.Entry{
		ServiceName: service,
		Username:    username,
		Password:    password,
		Notes:       notes,
	}
	if err := store.Add(entry); err != nil {
		store.Close()
		HandleError(err)
	}

	fmt.Printf("✓ Added %s (id %d)\n", entry.Display(), entry.ID)
	if generate {
		fmt.Printf("Generated password: %s\n", entry.Password)
	}
}
