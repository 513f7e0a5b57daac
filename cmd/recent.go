package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/live-labs/credvault/internal/state"
)

// Recent lists tracked vaults, most recently opened first. Does not require
// a password.
func Recent() {
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

	infos, err := db.Recent()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if len(infos) == 0 {
		fmt.Println("No vaults opened yet.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LAST OPENED\tVAULT")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\n", info.LastOpened.Format("2006-01-02 15:04"), info.Path)
	}
	w.Flush()
}
