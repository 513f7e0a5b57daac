// Package psafe maps Password Safe v3 records to and from vault entries.
//
// The .psafe3 binary format itself is handled by a dedicated binding exposed
// through the Safe interface; this package only owns the field mapping
// between its record shape and the generic vault entry.
package psafe

import (
	"github.com/live-labs/credvault/internal/vault"
)

// Record is one Password Safe entry in the JSON-ready shape the psafe3
// tooling emits. Only Title/Username/Password/Notes are mapped onto vault
// entries; the remaining fields ride along as extras so a later export back
// to a safe loses nothing.
type Record struct {
	UUID     string `json:"UUID,omitempty"`
	Group    string `json:"Group,omitempty"`
	Title    string `json:"Title"`
	Username string `json:"Username"`
	Password string `json:"Password"`
	Notes    string `json:"Notes"`
	URL      string `json:"URL,omitempty"`
	Email    string `json:"Email Address,omitempty"`
	Created  string `json:"Creation Time,omitempty"`
	Modified string `json:"Entry Last Modified,omitempty"`
}

// Safe is the external psafe3 binding: given a password it reads structured
// records from a safe, and writes records back. Implementations live outside
// this module.
type Safe interface {
	Open(path, password string) ([]Record, error)
	Write(path string, records []Record, password string) error
}

// metadata keys preserved through a vault round trip.
const (
	extraUUID     = "psafeUUID"
	extraGroup    = "group"
	extraURL      = "url"
	extraEmail    = "email"
	extraCreated  = "created"
	extraModified = "modified"
)

// ToEntries converts safe records to vault entries in list order. Ids are
// left unset for the store to assign.
func ToEntries(records []Record) []*vault.Entry {
	entries := make([]*vault.Entry, 0, len(records))
	for i, r := range records {
		e := &vault.Entry{
			ServiceName: r.Title,
			Username:    r.Username,
			Password:    r.Password,
			Notes:       r.Notes,
			Order:       i,
		}
		setExtra(e, extraUUID, r.UUID)
		setExtra(e, extraGroup, r.Group)
		setExtra(e, extraURL, r.URL)
		setExtra(e, extraEmail, r.Email)
		setExtra(e, extraCreated, r.Created)
		setExtra(e, extraModified, r.Modified)
		entries = append(entries, e)
	}
	return entries
}

// FromEntries converts vault entries back to safe records, restoring the
// metadata preserved by ToEntries.
func FromEntries(entries []*vault.Entry) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, Record{
			Title:    e.ServiceName,
			Username: e.Username,
			Password: e.Password,
			Notes:    e.Notes,
			UUID:     getExtra(e, extraUUID),
			Group:    getExtra(e, extraGroup),
			URL:      getExtra(e, extraURL),
			Email:    getExtra(e, extraEmail),
			Created:  getExtra(e, extraCreated),
			Modified: getExtra(e, extraModified),
		})
	}
	return records
}

func setExtra(e *vault.Entry, key, value string) {
	if value == "" {
		return
	}
	if e.Extra == nil {
		e.Extra = map[string]any{}
	}
	e.Extra[key] = value
}

func getExtra(e *vault.Entry, key string) string {
	s, _ := e.Extra[key].(string)
	return s
}
