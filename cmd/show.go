package cmd

import (
	"fmt"
)

// Show prints a single entry. The password is masked unless showPassword is
// set.
func Show(path string, id int, showPassword bool) {
	store := OpenStore(path)
	defer store.Close()

	e, err := store.Get(id)
	if err != nil {
		store.Close()
		HandleError(err)
	}

	fmt.Printf("Service:  %s\n", e.ServiceName)
	fmt.Printf("Username: %s\n", e.Username)
	if showPassword {
		fmt.Printf("Password: %s\n", e.Password)
	} else {
		fmt.Printf("Password: ******** (use -p to reveal)\n")
	}
	if e.Notes != "" {
		fmt.Printf("Notes:    %s\n", e.Notes)
	}
	for k, v := range e.Extra {
		fmt.Printf("%-9s %v\n", k+":", v)
	}
}
