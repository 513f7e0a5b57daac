package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/credvault/internal/vault"
)

// Diff compares the vault document against a plaintext JSON file and prints
// a unified diff. No output means the two match.
func Diff(path, otherFile string) {
	other, err := os.ReadFile(otherFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	store := OpenStore(path)
	defer store.Close()

	doc, err := store.Document()
	if err != nil {
		store.Close()
		HandleError(err)
	}

	diff := vault.UnifiedDiff(otherFile, doc, other)
	if diff == "" {
		fmt.Println("No differences.")
		return
	}
	fmt.Print(diff)
}
