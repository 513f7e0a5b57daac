package cmd

import (
	"fmt"
)

// Edit updates the given fields of an entry. Nil pointers mean "leave as is"
// so a field can also be set to the empty string. The entry keeps its list
// position.
func Edit(path string, id int, service, username, password, notes *string) {
	store := OpenStore(path)
	defer store.Close()

	current, err := store.Get(id)
	if err != nil {
		store.Close()
		HandleError(err)
	}

	e := current.Clone()
	if service != nil {
		e.ServiceName = *service
	}
	if username != nil {
		e.Username = *username
	}
	if password != nil {
		e.Password = *password
	}
	if notes != nil {
		e.Notes = *notes
	}

	if err := store.Update(e); err != nil {
		store.Close()
		HandleError(err)
	}
	fmt.Printf("✓ Updated %s (id %d)\n", e.Display(), e.ID)
}
