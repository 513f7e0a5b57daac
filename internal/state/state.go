// Package state persists non-secret per-user application state in a BBolt
// database under the user config directory: stable vault ids (used as OS
// keyring keys), last-opened timestamps and the sort direction toggle.
// Nothing in here is sensitive; the vault file itself holds the secrets.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var vaultsBucket = []byte("vaults")

// VaultInfo is the tracked state for one vault file, keyed by its absolute
// path.
type VaultInfo struct {
	ID         string    `json:"id"` // stable id, used as the keyring key
	Path       string    `json:"path"`
	LastOpened time.Time `json:"lastOpened"`
	SortDesc   bool      `json:"sortDesc"` // direction the next sort should use
}

// DB is the state database handle.
type DB struct {
	db *bolt.DB
}

// DefaultPath returns the per-user state database location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "credvault", "state.db"), nil
}

// Open opens or creates the state database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(vaultsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize state database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Touch records that the vault at path was opened now, creating its entry
// (with a fresh id) on first sight. Returns the up-to-date info.
func (d *DB) Touch(path string) (*VaultInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	var info VaultInfo
	err = d.db.Update(func(tx *bolt.Tx) error {
		vaults := tx.Bucket(vaultsBucket)
		if data := vaults.Get([]byte(abs)); data != nil {
			if err := json.Unmarshal(data, &info); err != nil {
				return fmt.Errorf("failed to decode vault state: %w", err)
			}
		} else {
			info = VaultInfo{ID: uuid.NewString(), Path: abs}
		}
		info.LastOpened = time.Now()

		data, err := json.Marshal(info)
		if err != nil {
			return err
		}
		return vaults.Put([]byte(abs), data)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Get returns the tracked info for a vault path, or nil if never opened.
func (d *DB) Get(path string) (*VaultInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	var info *VaultInfo
	err = d.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(vaultsBucket).Get([]byte(abs))
		if data == nil {
			return nil
		}
		info = &VaultInfo{}
		return json.Unmarshal(data, info)
	})
	return info, err
}

// SetSortDesc stores the direction the next sort of this vault should use.
// Flipping it after each sort makes the direction alternate.
func (d *DB) SetSortDesc(path string, desc bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	return d.db.Update(func(tx *bolt.Tx) error {
		vaults := tx.Bucket(vaultsBucket)
		var info VaultInfo
		if data := vaults.Get([]byte(abs)); data != nil {
			if err := json.Unmarshal(data, &info); err != nil {
				return fmt.Errorf("failed to decode vault state: %w", err)
			}
		} else {
			info = VaultInfo{ID: uuid.NewString(), Path: abs, LastOpened: time.Now()}
		}
		info.SortDesc = desc

		data, err := json.Marshal(info)
		if err != nil {
			return err
		}
		return vaults.Put([]byte(abs), data)
	})
}

// Recent returns all tracked vaults, most recently opened first.
func (d *DB) Recent() ([]VaultInfo, error) {
	var infos []VaultInfo
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(vaultsBucket).ForEach(func(k, v []byte) error {
			var info VaultInfo
			if err := json.Unmarshal(v, &info); err != nil {
				return err
			}
			infos = append(infos, info)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].LastOpened.After(infos[j].LastOpened)
	})
	return infos, nil
}

// Forget drops the tracked state for a vault path.
func (d *DB) Forget(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(vaultsBucket).Delete([]byte(abs))
	})
}
