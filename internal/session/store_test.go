package session_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairydesk/internal/session"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store, err := session.NewStore(path)
	require.NoError(t, err)

	want := session.Session{
		UserID:   3,
		Username: "fatou",
		Role:     session.RoleSupervisor,
		Token:    "bearer-token",
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStoreLoadMissingFileYieldsZeroSession(t *testing.T) {
	store, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	got, err := store.Load()
	require.NoError(t, err)
	assert.False(t, got.Authenticated())
}

func TestStoreLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := session.NewStore(path)
	require.NoError(t, err)

	_, err = store.Load()
	assert.Error(t, err)
}

func TestStoreClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := session.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(session.Session{Token: "t"}))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing an absent file is not an error")

	got, err := store.Load()
	require.NoError(t, err)
	assert.False(t, got.Authenticated())
}

func TestStoreFileModeIsPrivate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix file modes only")
	}

	path := filepath.Join(t.TempDir(), "session.json")
	store, err := session.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(session.Session{Token: "t"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
