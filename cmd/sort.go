package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/credvault/internal/state"
)

// Sort resorts the vault by service name. The direction alternates between
// invocations: ascending first, then flipping each time, remembered per vault
// in the state database.
func Sort(path string) {
	descending := false
	if info := lookupState(path); info != nil {
		descending = info.SortDesc
	}

	store := OpenStore(path)
	defer store.Close()

	if err := store.Sort(descending); err != nil {
		store.Close()
		HandleError(err)
	}
	rememberSortDesc(path, !descending)

	if descending {
		fmt.Println("✓ Sorted by service name (descending)")
	} else {
		fmt.Println("✓ Sorted by service name (ascending)")
	}
}

func rememberSortDesc(path string, desc bool) {
	statePath, err := state.DefaultPath()
	if err != nil {
		return
	}
	db, err := state.Open(statePath)
	if err != nil {
		return
	}
	defer db.Close()
	if err := db.SetSortDesc(path, desc); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to remember sort direction: %s\n", err)
	}
}
