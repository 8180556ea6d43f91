package atomicfile

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesFileWithExactBytes(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/data/rendered/2025-10-28_standup.md"

	require.NoError(t, Write(fs, path, []byte("hello world")))

	got, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))
}

func TestWriteCreatesParentDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/data/deep/nested/dir/file.json"

	require.NoError(t, Write(fs, path, []byte("{}")))

	exists, err := afero.DirExists(fs, filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWriteLeavesNoTempFileBehind(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/data/rendered/doc.md"
	require.NoError(t, Write(fs, path, []byte("content")))

	entries, err := afero.ReadDir(fs, filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doc.md", entries[0].Name())
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/data/doc.md"

	require.NoError(t, Write(fs, path, []byte("version one")))
	require.NoError(t, Write(fs, path, []byte("version two")))

	got, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "version two", string(got))
}

func TestWriteToReadOnlyFsLeavesDestinationUntouched(t *testing.T) {
	base := afero.NewMemMapFs()
	path := "/data/doc.md"
	require.NoError(t, afero.WriteFile(base, path, []byte("original"), 0o600))

	roFs := afero.NewReadOnlyFs(base)
	err := Write(roFs, path, []byte("attempted overwrite"))
	assert.Error(t, err)

	got, readErr := afero.ReadFile(base, path)
	require.NoError(t, readErr)
	assert.Equal(t, "original", string(got))
}
