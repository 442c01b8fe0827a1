package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrNotGenerated is returned when a write would replace a file that does
// not carry the generated-code header.
var ErrNotGenerated = errors.New("refusing to overwrite hand-written file")

// WriteResult reports what WriteFiles did with one file.
type WriteResult struct {
	Path    string
	Changed bool
}

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Files whose content is
// already up to date are left untouched so watchers do not fire again.
func WriteFiles(files []GeneratedFile, outputDir string) ([]WriteResult, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	results := make([]WriteResult, 0, len(files))

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		changed, err := writeFile(outputPath, file.Content)
		if err != nil {
			return results, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		results = append(results, WriteResult{Path: outputPath, Changed: changed})
	}

	return results, nil
}

func writeFile(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return false, err
	case bytes.Equal(existing, content):
		return false, nil
	case !IsGenerated(existing):
		return false, ErrNotGenerated
	}

	if err := os.WriteFile(path, content, filePerm); err != nil {
		return false, err
	}

	return true, nil
}

// IsGenerated reports whether src starts with the generated-code header.
func IsGenerated(src []byte) bool {
	return bytes.HasPrefix(src, []byte("// "+Header))
}

// RemoveStale deletes the generated file at path. Missing files and files
// without the generated-code header are left alone; it reports whether a
// file was removed.
func RemoveStale(path string) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	if !IsGenerated(existing) {
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("removing %s: %w", path, err)
	}

	return true, nil
}
