package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.vault")
	s, err := Create(path, []byte("test123"))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// assertInvariants checks that ids are unique and the order values form a
// dense 0..n-1 sequence matching list position.
func assertInvariants(t *testing.T, s *Store) {
	t.Helper()
	seen := map[int]bool{}
	for i, e := range s.All() {
		assert.False(t, seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true
		assert.Equal(t, i, e.Order, "order not dense at position %d", i)
	}
}

func TestAddAssignsIDAndOrder(t *testing.T) {
	s := testStore(t)

	e1 := &Entry{ServiceName: "Mail", Username: "a@b.com", Password: "x"}
	require.NoError(t, s.Add(e1))
	assert.Equal(t, 1, e1.ID)
	assert.Equal(t, 0, e1.Order)

	e2 := &Entry{ServiceName: "Bank"}
	require.NoError(t, s.Add(e2))
	assert.Equal(t, 2, e2.ID)
	assert.Equal(t, 1, e2.Order)
}

func TestIDsNeverReused(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Add(&Entry{ServiceName: "A"}))
	e2 := &Entry{ServiceName: "B"}
	require.NoError(t, s.Add(e2))
	require.NoError(t, s.Delete(e2.ID))

	e3 := &Entry{ServiceName: "C"}
	require.NoError(t, s.Add(e3))
	assert.Equal(t, 3, e3.ID, "deleted ids must not be reused")
}

func TestUpdateReplacesWholesale(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Add(&Entry{ServiceName: "Mail", Password: "old"}))

	got, err := s.Get(1)
	require.NoError(t, err)

	edited := got.Clone()
	edited.Password = "new"
	require.NoError(t, s.Update(edited))

	got, err = s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Password)
	assert.Equal(t, 0, got.Order, "fetch-mutate-update keeps the existing order")
}

func TestUpdateUnknownID(t *testing.T) {
	s := testStore(t)
	err := s.Update(&Entry{ID: 99, ServiceName: "ghost"})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestDeleteUnknownID(t *testing.T) {
	s := testStore(t)
	assert.ErrorIs(t, s.Delete(99), ErrEntryNotFound)
}

func TestReorder(t *testing.T) {
	s := testStore(t)
	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, s.Add(&Entry{ServiceName: name}))
	}

	// Move B up: B A C
	require.NoError(t, s.Reorder(2, -1))
	names := []string{}
	for _, e := range s.All() {
		names = append(names, e.ServiceName)
	}
	assert.Equal(t, []string{"B", "A", "C"}, names)
	assertInvariants(t, s)
}

func TestReorderBoundaryNoOp(t *testing.T) {
	s := testStore(t)
	for _, name := range []string{"A", "B"} {
		require.NoError(t, s.Add(&Entry{ServiceName: name}))
	}

	before := []string{}
	for _, e := range s.All() {
		before = append(before, e.ServiceName)
	}

	// First entry up and last entry down are no-ops, not errors.
	require.NoError(t, s.Reorder(1, -1))
	require.NoError(t, s.Reorder(2, 1))

	after := []string{}
	for _, e := range s.All() {
		after = append(after, e.ServiceName)
	}
	assert.Equal(t, before, after)

	assert.ErrorIs(t, s.Reorder(99, 1), ErrEntryNotFound)
}

func TestSort(t *testing.T) {
	s := testStore(t)
	for _, name := range []string{"zebra", "Apple", "mango"} {
		require.NoError(t, s.Add(&Entry{ServiceName: name}))
	}

	require.NoError(t, s.Sort(false))
	names := []string{}
	for _, e := range s.All() {
		names = append(names, e.ServiceName)
	}
	assert.Equal(t, []string{"Apple", "mango", "zebra"}, names, "sort is case-insensitive")
	assertInvariants(t, s)

	require.NoError(t, s.Sort(true))
	names = names[:0]
	for _, e := range s.All() {
		names = append(names, e.ServiceName)
	}
	assert.Equal(t, []string{"zebra", "mango", "Apple"}, names)
	assertInvariants(t, s)
}

func TestInvariantsAfterMixedOperations(t *testing.T) {
	s := testStore(t)

	for _, name := range []string{"E", "A", "C", "B", "D"} {
		require.NoError(t, s.Add(&Entry{ServiceName: name}))
	}
	require.NoError(t, s.Delete(3))
	require.NoError(t, s.Reorder(2, 1))
	require.NoError(t, s.Sort(false))
	require.NoError(t, s.Reorder(5, -1))
	got, err := s.Get(4)
	require.NoError(t, err)
	edited := got.Clone()
	edited.Notes = "edited"
	require.NoError(t, s.Update(edited))

	assertInvariants(t, s)
	assert.Equal(t, 4, s.Len())
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.vault")
	passphrase := []byte("test123")

	s, err := Create(path, passphrase)
	require.NoError(t, err)
	require.NoError(t, s.Add(&Entry{ServiceName: "Mail", Username: "a@b.com", Password: "x"}))
	require.NoError(t, s.Add(&Entry{ServiceName: "Bank", Password: "y"}))
	s.Close()

	reopened, err := Open(path, passphrase)
	require.NoError(t, err)
	defer reopened.Close()

	assert.True(t, reopened.Verified)
	require.Equal(t, 2, reopened.Len())

	e, err := reopened.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Mail", e.ServiceName)
	assert.Equal(t, "x", e.Password)
}

func TestOpenWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.vault")

	s, err := Create(path, []byte("correct horse"))
	require.NoError(t, err)
	s.Close()

	_, err = Open(path, []byte("wrong"))
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestOpenMissingFileYieldsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.vault")

	s, err := Open(path, []byte("test123"))
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, 0, s.Len())

	// File is only created on first save.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreateRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.vault")

	s, err := Create(path, []byte("test123"))
	require.NoError(t, err)
	s.Close()

	_, err = Create(path, []byte("test123"))
	assert.ErrorIs(t, err, ErrVaultExists)
}

func TestExtrasRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.vault")
	passphrase := []byte("test123")

	plaintext := []byte(`{"entries": [{"serviceName": "Mail"}], "customKey": "v"}`)
	blob, err := Encrypt(plaintext, passphrase)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, blob, 0600))

	s, err := Open(path, passphrase)
	require.NoError(t, err)
	assert.Equal(t, "v", s.Extras()["customKey"])

	// Mutate and persist, then verify the extra survived the rewrite.
	require.NoError(t, s.Add(&Entry{ServiceName: "Bank"}))
	s.Close()

	reopened, err := Open(path, passphrase)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, "v", reopened.Extras()["customKey"])
	assert.Equal(t, 2, reopened.Len())
}

func TestLegacyVaultUpgradedOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.vault")
	passphrase := []byte("correct horse")

	plaintext := []byte(`{"entries":[{"id":1,"serviceName":"Mail","order":0}]}`)
	require.NoError(t, os.WriteFile(path, legacyFixture(t, plaintext, passphrase), 0600))

	s, err := Open(path, passphrase)
	require.NoError(t, err)
	assert.True(t, s.Verified)
	require.Equal(t, 1, s.Len())

	// Any mutation rewrites the file in the authenticated layout.
	require.NoError(t, s.Add(&Entry{ServiceName: "Bank"}))
	s.Close()

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	env, err := DecodeEnvelope(blob)
	require.NoError(t, err)
	assert.Equal(t, VersionAuthenticated, env.Version)
}

func TestLegacyVaultChecksumMismatchReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.vault")
	passphrase := []byte("correct horse")

	plaintext := []byte(`{"entries":[{"id":1,"serviceName":"Mail","order":0},{"id":2,"serviceName":"Bank","order":1}]}`)
	blob := legacyFixture(t, plaintext, passphrase)
	blob[legacyHeaderSize] ^= 0x01
	require.NoError(t, os.WriteFile(path, blob, 0600))

	// The garbled first block no longer parses as JSON, so the open fails
	// outright; a corrupted legacy vault must never look healthy.
	_, err := Open(path, passphrase)
	assert.Error(t, err)
}

func TestChangePassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.vault")

	s, err := Create(path, []byte("oldpass"))
	require.NoError(t, err)
	require.NoError(t, s.Add(&Entry{ServiceName: "Mail", Password: "x"}))
	require.NoError(t, s.ChangePassphrase([]byte("newpass")))
	s.Close()

	_, err = Open(path, []byte("oldpass"))
	assert.ErrorIs(t, err, ErrAuthFailed)

	reopened, err := Open(path, []byte("newpass"))
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, 1, reopened.Len())
}

func TestOpenNotAVaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a vault"), 0600))

	_, err := Open(path, []byte("test123"))
	assert.ErrorIs(t, err, ErrBadFormat)
}
