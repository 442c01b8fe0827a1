package capability

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"enumarg-generator/internal/enum"
)

// manifestSchemaVersion must be bumped whenever Manifest changes shape.
const manifestSchemaVersion uint16 = 1

// ErrSchemaMismatch is returned when a manifest was written by an
// incompatible version.
var ErrSchemaMismatch = errors.New("capability manifest schema mismatch")

// Manifest is the on-disk form of a Registry.
type Manifest struct {
	Schema  uint16          `msgpack:"schema"`
	Entries []ManifestEntry `msgpack:"entries"`
}

// ManifestEntry is the on-disk form of an Entry.
type ManifestEntry struct {
	PkgPath      string   `msgpack:"pkg"`
	Enum         string   `msgpack:"enum"`
	Width        uint8    `msgpack:"width"`
	Capabilities []string `msgpack:"capabilities"`
}

// Manifest returns the registry contents in manifest form.
func (r *Registry) Manifest() *Manifest {
	entries := r.Entries()

	m := &Manifest{
		Schema:  manifestSchemaVersion,
		Entries: make([]ManifestEntry, 0, len(entries)),
	}

	for _, e := range entries {
		caps := make([]string, len(e.Capabilities))
		for i, c := range e.Capabilities {
			caps[i] = c.String()
		}

		m.Entries = append(m.Entries, ManifestEntry{
			PkgPath:      e.PkgPath,
			Enum:         e.Enum,
			Width:        uint8(e.Width),
			Capabilities: caps,
		})
	}

	return m
}

// Seed adds every entry of m to the registry.
func (r *Registry) Seed(m *Manifest) error {
	if m.Schema != manifestSchemaVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, m.Schema, manifestSchemaVersion)
	}

	for _, me := range m.Entries {
		w := enum.Width(me.Width)
		if !w.Valid() {
			return fmt.Errorf("manifest entry %s.%s: unsupported width %d", me.PkgPath, me.Enum, me.Width)
		}

		e := Entry{PkgPath: me.PkgPath, Enum: me.Enum, Width: w}
		for _, name := range me.Capabilities {
			c, err := parseCapability(name)
			if err != nil {
				return fmt.Errorf("manifest entry %s.%s: %w", me.PkgPath, me.Enum, err)
			}

			e.Capabilities = append(e.Capabilities, c)
		}

		r.Add(e)
	}

	return nil
}

func parseCapability(name string) (enum.Capability, error) {
	for _, c := range enum.Capabilities {
		if c.String() == name {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown capability %q", name)
}

// SaveManifest writes the registry to path atomically.
func (r *Registry) SaveManifest(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".enumarg-manifest-*")
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(r.Manifest()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing manifest: %w", err)
	}

	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("replacing manifest: %w", err)
	}

	return nil
}

// LoadManifest seeds the registry from the manifest at path. A missing file
// is not an error; it reports false.
func (r *Registry) LoadManifest(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("opening manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	var m Manifest
	if err := msgpack.NewDecoder(f).Decode(&m); err != nil {
		return false, fmt.Errorf("decoding manifest %s: %w", path, err)
	}

	if err := r.Seed(&m); err != nil {
		return false, fmt.Errorf("loading manifest %s: %w", path, err)
	}

	return true, nil
}
