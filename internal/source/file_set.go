package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"fortio.org/safecast"
)

// File is one registered source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineStarts holds the byte offset of the first byte of every line.
	LineStarts []uint32
}

// FileSet is the table of files spans refer to. Files are only ever added;
// readers may resolve spans concurrently with each other.
type FileSet struct {
	mu    sync.RWMutex
	files []*File
	index map[string]FileID
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add registers content under path and returns its id. Adding a path that is
// already present returns the existing id without replacing the content.
func (fs *FileSet) Add(path string, content []byte) FileID {
	path = filepath.ToSlash(filepath.Clean(path))

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if id, ok := fs.index[path]; ok {
		return id
	}

	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}

	f := &File{
		ID:         FileID(n),
		Path:       path,
		Content:    content,
		LineStarts: lineStarts(content),
	}
	fs.files = append(fs.files, f)
	fs.index[path] = f.ID

	return f.ID
}

// Load reads path from disk and registers it.
func (fs *FileSet) Load(path string) (FileID, error) {
	if id, ok := fs.Lookup(path); ok {
		return id, nil
	}

	// #nosec G304 -- path comes from the package loader
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading source %s: %w", path, err)
	}

	return fs.Add(path, content), nil
}

// Lookup returns the id registered for path.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	id, ok := fs.index[filepath.ToSlash(filepath.Clean(path))]

	return id, ok
}

// Get returns the file for id, or nil if id is unknown.
func (fs *FileSet) Get(id FileID) *File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if int(id) >= len(fs.files) {
		return nil
	}

	return fs.files[id]
}

// Resolve converts both ends of a span into line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol, ok bool) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}, false
	}

	return f.Position(span.Start), f.Position(span.End), true
}

// SpanOf builds a span for the byte range [start, end) of the file at id.
func (fs *FileSet) SpanOf(id FileID, start, end int) (Span, error) {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		return Span{}, fmt.Errorf("span start: %w", err)
	}

	e, err := safecast.Conv[uint32](end)
	if err != nil {
		return Span{}, fmt.Errorf("span end: %w", err)
	}

	if e < s {
		e = s
	}

	return Span{File: id, Start: s, End: e}, nil
}

// Position returns the line and column of a byte offset. Offsets past the end
// of the file clamp to the end.
func (f *File) Position(off uint32) LineCol {
	if n := uint32(len(f.Content)); off > n {
		off = n
	}

	// index of the last line start <= off
	i := sort.Search(len(f.LineStarts), func(i int) bool {
		return f.LineStarts[i] > off
	}) - 1
	if i < 0 {
		i = 0
	}

	return LineCol{Line: uint32(i) + 1, Col: off - f.LineStarts[i] + 1}
}

// Line returns the text of a 1-based line without its line ending, or an
// empty string when the line does not exist. Content is stored as read, so
// offsets match the go/token positions spans are built from.
func (f *File) Line(line uint32) string {
	if line == 0 || int(line) > len(f.LineStarts) {
		return ""
	}

	start := f.LineStarts[line-1]
	end := uint32(len(f.Content))
	if int(line) < len(f.LineStarts) {
		end = f.LineStarts[line] - 1
	}

	text := strings.TrimSuffix(string(f.Content[start:end]), "\n")

	return strings.TrimSuffix(text, "\r")
}

func lineStarts(content []byte) []uint32 {
	starts := []uint32{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			starts = append(starts, uint32(i+1))
		}
	}

	return starts
}
