package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	t.Run("matching file path is returned as is", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "cell.hcl")
		touch(t, file)

		files, err := FindFilesByExtension(file, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{file}, files)
	})

	t.Run("non-matching file path yields nothing", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "notes.txt")
		touch(t, file)

		files, err := FindFilesByExtension(file, ".hcl")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("directory is walked recursively", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "a.hcl"))
		touch(t, filepath.Join(dir, "nested", "b.hcl"))
		touch(t, filepath.Join(dir, "nested", "skip.txt"))

		files, err := FindFilesByExtension(dir, ".hcl")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(dir, "a.hcl"),
			filepath.Join(dir, "nested", "b.hcl"),
		}, files)
	})

	t.Run("missing path is an error", func(t *testing.T) {
		_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "absent"), ".hcl")
		assert.Error(t, err)
	})

	t.Run("empty extension panics", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = FindFilesByExtension(t.TempDir(), "")
		})
	})
}
