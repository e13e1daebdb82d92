package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "nested", "session.json"))
}

func TestStore_LoadWithoutFile(t *testing.T) {
	_, err := newStore(t).Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_SaveLoadClear(t *testing.T) {
	s := newStore(t)
	id := Identity{ID: "pm-1", Name: "Pat", Role: "project_manager", Email: "pat@example.com"}

	require.NoError(t, s.Save(id, false))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Empty(t, s.RememberedEmail())

	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
	_, statErr := os.Stat(s.path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_RememberSurvivesLogout(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(Identity{ID: "pm-1", Email: "pat@example.com"}, true))

	require.NoError(t, s.Clear())
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, "pat@example.com", s.RememberedEmail())

	// Logging in again without remember forgets the email.
	require.NoError(t, s.Save(Identity{ID: "pm-1", Email: "pat@example.com"}, false))
	assert.Empty(t, s.RememberedEmail())
}

func TestStore_EmptyEmailIsLoggedOut(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(Identity{ID: "pm-1", Name: "Pat"}, false))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_CorruptFileIsLoggedOut(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0o700))
	require.NoError(t, os.WriteFile(s.path, []byte("{not json"), 0o600))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}
