package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptySession(t *testing.T) {
	sess, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.AuthToken())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "session.json")
	want := &Context{Token: "tok", UserID: "u1", UserName: "alice"}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.Authenticated())

	// The file holds the token; it must not be world-readable.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, Save(path, &Context{Token: "tok"}))
	require.NoError(t, Clear(path))
	require.NoError(t, Clear(path))

	sess, err := Load(path)
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestOwnsTrimsAndRejectsEmpty(t *testing.T) {
	sess := &Context{UserName: " alice "}
	assert.True(t, sess.Owns("alice"))
	assert.True(t, sess.Owns("alice "))
	assert.False(t, sess.Owns("bob"))

	var nobody *Context
	assert.False(t, nobody.Owns("alice"))
	assert.False(t, (&Context{}).Owns(""))
}
