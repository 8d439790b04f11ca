package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	t.Run("rejects empty path", func(t *testing.T) {
		_, err := CleanPath("  ")
		assert.ErrorIs(t, err, ErrEmptyPath)
	})

	t.Run("rejects shell characters", func(t *testing.T) {
		for _, c := range forbiddenChars {
			_, err := CleanPath("/tmp/plan" + c + "x.ics")
			assert.Error(t, err, "expected error for %q", c)
		}
	})

	t.Run("resolves existing file", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "history.csv")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

		got, err := CleanPath(file)
		require.NoError(t, err)
		want, _ := filepath.EvalSymlinks(file)
		assert.Equal(t, want, got)
	})

	t.Run("keeps missing file cleaned", func(t *testing.T) {
		dir := t.TempDir()
		got, err := CleanPath(filepath.Join(dir, "out", "..", "plan.ics"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "plan.ics"), got)
	})
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "plan.json")
	require.NoError(t, WriteFile(path, []byte(`{"days":[]}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"days":[]}`, string(data))
}
