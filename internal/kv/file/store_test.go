package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finvoice/internal/kv"
	"github.com/MrJamesThe3rd/finvoice/internal/kv/file"
)

func TestStore_GetMissing(t *testing.T) {
	s, err := file.New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "finvoice_goals")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestStore_PutReplaces(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := file.New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "finvoice_profile", []byte(`{"name":"A long first value"}`)))
	require.NoError(t, s.Put(ctx, "finvoice_profile", []byte(`{"name":"B"}`)))

	got, err := s.Get(ctx, "finvoice_profile")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"B"}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "finvoice_profile.json", entries[0].Name())
}

func TestStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := file.New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "k", []byte("v")))

	_, err = os.Stat(filepath.Join(dir, "k.json"))
	assert.NoError(t, err)
}

func TestStore_InvalidKey(t *testing.T) {
	s, err := file.New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, s.Put(context.Background(), key, []byte("x")), key)
	}
}
