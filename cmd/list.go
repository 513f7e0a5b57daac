package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
)

// List prints the vault entries in order. Passwords are never shown here;
// use 'show -p' for that.
func List(path string) {
	store := OpenStore(path)
	defer store.Close()

	if store.Len() == 0 {
		fmt.Println("Vault is empty. Use 'credvault add' to create an entry.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSERVICE\tUSERNAME\tNOTES")
	for _, e := range store.All() {
		notes := e.Notes
		if len(notes) > 40 {
			notes = notes[:37] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.ServiceName, e.Username, notes)
	}
	w.Flush()

	fmt.Printf("\n%d entries\n", store.Len())
}
