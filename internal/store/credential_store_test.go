package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matmarket/internal/domain"
	"matmarket/internal/store"
)

func TestCredentials_LoadMissing_InitialisesEmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s := store.NewCredentialFileStore(path, nil)

	creds, err := s.LoadCredentials()
	require.NoError(t, err)
	assert.Empty(t, creds)

	b, err := os.ReadFile(path)
	require.NoError(t, err, "missing snapshot should be persisted on first load")
	assert.JSONEq(t, `{}`, string(b))
}

func TestCredentials_SaveLoad_RoundTrip(t *testing.T) {
	s := store.NewCredentialFileStore(filepath.Join(t.TempDir(), "users.json"), nil)

	want := domain.Credentials{"a@x.io": "pw1", "b@x.io": "pw2"}
	require.NoError(t, s.SaveCredentials(want))

	got, err := s.LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// save(load()) leaves the data set unchanged.
	require.NoError(t, s.SaveCredentials(got))
	again, err := s.LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, want, again)
}

func TestCredentials_SaveReplacesWholeSnapshot(t *testing.T) {
	s := store.NewCredentialFileStore(filepath.Join(t.TempDir(), "users.json"), nil)

	require.NoError(t, s.SaveCredentials(domain.Credentials{"old@x.io": "pw"}))
	require.NoError(t, s.SaveCredentials(domain.Credentials{"new@x.io": "pw"}))

	got, err := s.LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, domain.Credentials{"new@x.io": "pw"}, got)
}

func TestCredentials_CorruptSnapshot_IsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := store.NewCredentialFileStore(path, nil)
	creds, err := s.LoadCredentials()
	require.NoError(t, err)
	assert.Empty(t, creds)
	assert.NotNil(t, creds)
}

func TestCredentials_NullSnapshot_IsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o600))

	creds, err := store.NewCredentialFileStore(path, nil).LoadCredentials()
	require.NoError(t, err)
	require.NotNil(t, creds)
	creds["a@x.io"] = "writable"
}

func TestCredentials_AddCredential(t *testing.T) {
	s := store.NewCredentialFileStore(filepath.Join(t.TempDir(), "users.json"), nil)

	added, err := s.AddCredential("a@x.io", "first")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddCredential("a@x.io", "second")
	require.NoError(t, err)
	assert.False(t, added)

	creds, err := s.LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, domain.Credentials{"a@x.io": "first"}, creds)
}

func TestCredentials_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	// The parent "directory" is a regular file, so nothing can be written.
	s := store.NewCredentialFileStore(filepath.Join(blocker, "users.json"), nil)
	err := s.SaveCredentials(domain.Credentials{"a@x.io": "pw"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnwritable)
}
