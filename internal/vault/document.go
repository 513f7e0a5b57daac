package vault

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The decrypted plaintext is a JSON document in one of two shapes: a bare
// array of records, or an object with an "entries" key (matched
// case-insensitively) plus arbitrary sibling keys. Sibling keys and
// unrecognized per-record keys round-trip unchanged.

const entriesKey = "entries"

// recognizedField reports whether a per-record key maps onto the Entry
// struct. serviceName and title are synonyms; both are kept in sync on write.
func recognizedField(key string) bool {
	switch strings.ToLower(key) {
	case "id", "servicename", "title", "username", "password", "notes", "order":
		return true
	}
	return false
}

// parseDocument normalizes a decrypted document into entries plus the extras
// bag. Missing ids stay zero for the store to assign; missing or unparseable
// order values default to the record's position in the input list.
func parseDocument(plaintext []byte) ([]*Entry, map[string]any, error) {
	var doc any
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	var records []any
	extras := map[string]any{}

	switch d := doc.(type) {
	case []any:
		records = d
	case map[string]any:
		// An object without an entries key is an empty vault whose fields all
		// ride along as extras.
		for k, v := range d {
			if strings.ToLower(k) == entriesKey {
				if v != nil {
					list, ok := v.([]any)
					if !ok {
						return nil, nil, fmt.Errorf("%w: entries is not a list", ErrBadFormat)
					}
					records = list
				}
				continue
			}
			extras[k] = v
		}
	default:
		return nil, nil, fmt.Errorf("%w: document is not an object or list", ErrBadFormat)
	}

	entries := make([]*Entry, 0, len(records))
	for idx, rec := range records {
		fields, ok := rec.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("%w: entry %d is not an object", ErrBadFormat, idx)
		}
		entries = append(entries, parseRecord(fields, idx))
	}
	return entries, extras, nil
}

// ParseDocument parses a plaintext JSON document in either accepted shape.
// Used by import, which takes the same document format the vault stores.
func ParseDocument(plaintext []byte) ([]*Entry, map[string]any, error) {
	return parseDocument(plaintext)
}

func parseRecord(fields map[string]any, position int) *Entry {
	e := &Entry{Order: position}

	known := make(map[string]any, len(fields))
	for k, v := range fields {
		if recognizedField(k) {
			known[strings.ToLower(k)] = v
			continue
		}
		if e.Extra == nil {
			e.Extra = map[string]any{}
		}
		e.Extra[k] = v
	}

	if id, ok := parseInt(known["id"]); ok {
		e.ID = id
	}
	// serviceName wins over its title synonym when both are present
	e.ServiceName = stringField(known["servicename"])
	if e.ServiceName == "" {
		e.ServiceName = stringField(known["title"])
	}
	e.Username = stringField(known["username"])
	e.Password = stringField(known["password"])
	e.Notes = stringField(known["notes"])
	if order, ok := parseInt(known["order"]); ok {
		e.Order = order
	}
	return e
}

// serializeDocument builds the canonical document: entries under "entries"
// with serviceName and title kept in sync, extras merged at the top level.
func serializeDocument(entries []*Entry, extras map[string]any) ([]byte, error) {
	records := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		rec := make(map[string]any, len(e.Extra)+7)
		for k, v := range e.Extra {
			rec[k] = v
		}
		rec["id"] = e.ID
		rec["serviceName"] = e.ServiceName
		rec["title"] = e.ServiceName
		rec["username"] = e.Username
		rec["password"] = e.Password
		rec["notes"] = e.Notes
		rec["order"] = e.Order
		records = append(records, rec)
	}

	doc := make(map[string]any, len(extras)+1)
	for k, v := range extras {
		doc[k] = v
	}
	doc[entriesKey] = records

	plaintext, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize vault document: %w", err)
	}
	return plaintext, nil
}
