package cmd

import (
	"fmt"
)

// Move shifts an entry up or down the list by delta positions. Moving past
// either end leaves the list untouched.
func Move(path string, id, delta int) {
	store := OpenStore(path)
	defer store.Close()

	if err := store.Reorder(id, delta); err != nil {
		store.Close()
		HandleError(err)
	}

	e, err := store.Get(id)
	if err != nil {
		store.Close()
		HandleError(err)
	}
	fmt.Printf("✓ %s is now at position %d\n", e.Display(), e.Order+1)
}
