package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles_CreatesAndSkipsUnchanged(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	files := []GeneratedFile{{
		Filename: "wire_enumarg.go",
		Content:  []byte("// " + Header + "\n\npackage wire\n"),
	}}

	results, err := WriteFiles(files, dir)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Changed)
	assert.Equal(t, filepath.Join(dir, "wire_enumarg.go"), results[0].Path)

	got, err := os.ReadFile(results[0].Path)
	require.NoError(t, err)
	assert.Equal(t, files[0].Content, got)

	results, err = WriteFiles(files, dir)
	require.NoError(t, err)
	assert.False(t, results[0].Changed)
}

func TestWriteFiles_ReplacesStaleGeneratedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wire_enumarg.go")
	require.NoError(t, os.WriteFile(path, []byte("// "+Header+"\n\npackage old\n"), filePerm))

	results, err := WriteFiles([]GeneratedFile{{
		Filename: "wire_enumarg.go",
		Content:  []byte("// " + Header + "\n\npackage wire\n"),
	}}, dir)
	require.NoError(t, err)
	assert.True(t, results[0].Changed)
}

func TestWriteFiles_RefusesHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wire_enumarg.go")
	require.NoError(t, os.WriteFile(path, []byte("package wire\n"), filePerm))

	_, err := WriteFiles([]GeneratedFile{{
		Filename: "wire_enumarg.go",
		Content:  []byte("// " + Header + "\n\npackage wire\n"),
	}}, dir)
	require.ErrorIs(t, err, ErrNotGenerated)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package wire\n", string(got))
}

func TestRemoveStale(t *testing.T) {
	dir := t.TempDir()

	generated := filepath.Join(dir, "wire_enumarg.go")
	require.NoError(t, os.WriteFile(generated, []byte("// "+Header+"\n\npackage wire\n"), 0o644))

	removed, err := RemoveStale(generated)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoFileExists(t, generated)

	removed, err = RemoveStale(generated)
	require.NoError(t, err)
	assert.False(t, removed, "missing file")

	handWritten := filepath.Join(dir, "conv.go")
	require.NoError(t, os.WriteFile(handWritten, []byte("package wire\n"), 0o644))

	removed, err = RemoveStale(handWritten)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.FileExists(t, handWritten)
}
