package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/live-labs/credvault/internal/crypto"
)

const FilePermSecure = 0600 // vault file: owner rw only

// Store is the in-memory ordered collection of entries decoded from one vault
// file. It owns the passphrase for its lifetime and persists the whole
// document after every mutation. A store is not safe for concurrent use;
// callers serialize access.
type Store struct {
	path       string
	passphrase []byte
	entries    map[int]*Entry
	extras     map[string]any
	nextID     int

	// Verified is false when a legacy vault decrypted but its plaintext
	// checksum did not match. Callers must treat that like a wrong password.
	Verified bool
}

// Open decrypts the vault at path and loads its entries. A missing file
// yields an empty store so a first Add can create the vault. The store keeps
// a copy of the passphrase; call Close to wipe it.
func Open(path string, passphrase []byte) (*Store, error) {
	s := &Store{
		path:       path,
		passphrase: append([]byte(nil), passphrase...),
		entries:    map[int]*Entry{},
		extras:     map[string]any{},
		nextID:     1,
		Verified:   true,
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		s.Close()
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}

	if err := s.load(blob); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Create initializes a new vault file holding an empty document. Fails with
// ErrVaultExists if the file is already there.
func Create(path string, passphrase []byte) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, ErrVaultExists
	}

	s := &Store{
		path:       path,
		passphrase: append([]byte(nil), passphrase...),
		entries:    map[int]*Entry{},
		extras:     map[string]any{},
		nextID:     1,
		Verified:   true,
	}
	if err := s.Save(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// load decodes, decrypts and parses a vault blob into the store.
func (s *Store) load(blob []byte) error {
	plaintext, verified, err := Decrypt(blob, s.passphrase)
	if err != nil {
		return err
	}
	defer crypto.ClearBytes(plaintext)
	s.Verified = verified

	entries, extras, err := parseDocument(plaintext)
	if err != nil {
		return err
	}
	s.extras = extras

	for _, e := range entries {
		if e.ID == 0 {
			e.ID = s.nextID
		}
		s.entries[e.ID] = e
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
	return nil
}

// Close wipes the passphrase and drops the entries. The plaintext secrets are
// the asset being protected; a store must not outlive its use.
func (s *Store) Close() {
	crypto.ClearBytes(s.passphrase)
	s.passphrase = nil
	s.entries = nil
	s.extras = nil
}

// Path returns the vault file location.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// All returns the entries sorted by (order, id).
func (s *Store) All() []*Entry {
	out := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get returns the entry with the given id.
func (s *Store) Get(id int) (*Entry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return e, nil
}

// Add inserts an entry at the end of the list and persists. A zero ID gets
// the next counter value; ids are never reused within a process even after
// deletes.
func (s *Store) Add(e *Entry) error {
	if e.ID == 0 {
		e.ID = s.nextID
	}
	if _, exists := s.entries[e.ID]; exists {
		return fmt.Errorf("duplicate entry id %d", e.ID)
	}

	maxOrder := -1
	for _, cur := range s.entries {
		if cur.Order > maxOrder {
			maxOrder = cur.Order
		}
	}
	e.Order = maxOrder + 1

	s.entries[e.ID] = e
	if e.ID >= s.nextID {
		s.nextID = e.ID + 1
	}
	return s.Save()
}

// Update replaces a stored entry wholesale, Order included. Callers editing a
// field fetch the entry, mutate it and pass it back, which keeps the existing
// order; supplying a different Order moves the entry.
func (s *Store) Update(e *Entry) error {
	if _, ok := s.entries[e.ID]; !ok {
		return ErrEntryNotFound
	}
	s.entries[e.ID] = e
	return s.Save()
}

// Delete removes an entry. Remaining ids and orders are left untouched; the
// dense order sequence is restored by the next Reorder or Sort.
func (s *Store) Delete(id int) error {
	if _, ok := s.entries[id]; !ok {
		return ErrEntryNotFound
	}
	delete(s.entries, id)
	return s.Save()
}

// Reorder moves an entry by delta positions in the (order, id) sequence and
// renormalizes every order value to its dense index. Moving past either end
// of the list is a no-op, not an error.
func (s *Store) Reorder(id, delta int) error {
	if _, ok := s.entries[id]; !ok {
		return ErrEntryNotFound
	}

	items := s.All()
	idx := -1
	for i, e := range items {
		if e.ID == id {
			idx = i
			break
		}
	}
	newIdx := idx + delta
	if newIdx < 0 || newIdx >= len(items) {
		return nil
	}

	items[idx], items[newIdx] = items[newIdx], items[idx]
	for i, e := range items {
		e.Order = i
	}
	return s.Save()
}

// Sort resorts all entries by case-insensitive service name and renormalizes
// order values to the new sequence.
func (s *Store) Sort(descending bool) error {
	items := s.All()
	sort.SliceStable(items, func(i, j int) bool {
		a := strings.ToLower(items[i].ServiceName)
		b := strings.ToLower(items[j].ServiceName)
		if descending {
			return a > b
		}
		return a < b
	})
	for i, e := range items {
		e.Order = i
	}
	return s.Save()
}

// ChangePassphrase re-encrypts the vault under a new passphrase.
func (s *Store) ChangePassphrase(newPassphrase []byte) error {
	old := s.passphrase
	s.passphrase = append([]byte(nil), newPassphrase...)
	if err := s.Save(); err != nil {
		crypto.ClearBytes(s.passphrase)
		s.passphrase = old
		return err
	}
	crypto.ClearBytes(old)
	return nil
}

// Extras returns the unrecognized top-level document fields.
func (s *Store) Extras() map[string]any {
	return s.extras
}

// Document serializes the current state to the plaintext JSON document.
func (s *Store) Document() ([]byte, error) {
	return serializeDocument(s.All(), s.extras)
}

// Save serializes, encrypts with a fresh salt and nonce, and replaces the
// vault file atomically. Either the new file lands completely or the previous
// one stays intact.
func (s *Store) Save() error {
	plaintext, err := s.Document()
	if err != nil {
		return err
	}
	defer crypto.ClearBytes(plaintext)

	blob, err := Encrypt(plaintext, s.passphrase)
	if err != nil {
		return err
	}

	return writeFileAtomic(s.path, blob, FilePermSecure)
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over the destination.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write vault: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close vault: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace vault: %w", err)
	}
	return nil
}
