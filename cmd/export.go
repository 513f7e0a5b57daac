package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/live-labs/credvault/internal/psafe"
	"github.com/live-labs/credvault/internal/vault"
)

// Export writes the decrypted vault document as plaintext JSON. Format
// "json" emits the vault document itself; "psafe" emits a Password Safe
// record list ready for the psafe3 tooling. Output goes to stdout unless a
// file is given, in which case it is created owner-readable only.
func Export(path, outFile, format string) {
	store := OpenStore(path)
	defer store.Close()

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = store.Document()
	case "psafe":
		records := psafe.FromEntries(store.All())
		data, err = json.MarshalIndent(records, "", "  ")
	default:
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: unknown export format %q (json or psafe)\n", format)
		os.Exit(1)
	}
	if err != nil {
		store.Close()
		HandleError(err)
	}

	if outFile == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(outFile, append(data, '\n'), vault.FilePermSecure); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Exported %d entries to %s\n", store.Len(), outFile)
	fmt.Println("Warning: the export is plaintext. Delete it when done.")
}
