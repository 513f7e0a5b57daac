package cmd

import (
	"fmt"
)

// Remove deletes entries by id. Each removal persists before the next one
// runs, so a bad id later in the list cannot undo earlier deletions.
func Remove(path string, ids []int) {
	store := OpenStore(path)
	defer store.Close()

	for _, id := range ids {
		e, err := store.Get(id)
		if err != nil {
			store.Close()
			HandleError(err)
		}
		label := e.Display()
		if err := store.Delete(id); err != nil {
			store.Close()
			HandleError(err)
		}
		fmt.Printf("✓ Removed %s (id %d)\n", label, id)
	}
}
