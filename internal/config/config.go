package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"enumarg-generator/internal/enum"
)

// CurrentVersion is the only configuration version understood.
const CurrentVersion = "1"

// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// File is a parsed configuration file.
type File struct {
	Version  string      `yaml:"version" toml:"version"`
	Package  string      `yaml:"package,omitempty" toml:"package,omitempty"`
	Output   string      `yaml:"output,omitempty" toml:"output,omitempty"`
	FileName string      `yaml:"file,omitempty" toml:"file,omitempty"`
	Manifest string      `yaml:"manifest,omitempty" toml:"manifest,omitempty"`
	Enums    []EnumEntry `yaml:"enums,omitempty" toml:"enums,omitempty"`
}

// EnumEntry requests a width for one type.
type EnumEntry struct {
	// Type is a bare, alias-qualified or import-path-qualified type name.
	Type string `yaml:"type" toml:"type"`
	// Width accepts the forms of enum.ParseWidth: 8, u8, uint8.
	Width string `yaml:"width" toml:"width"`
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}
}

// Validate checks version, widths and duplicate type entries.
func (f *File) Validate() error {
	var errs []error

	if f.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("unsupported version %q (want %q)", f.Version, CurrentVersion))
	}

	seen := make(map[string]bool, len(f.Enums))
	for i, e := range f.Enums {
		if e.Type == "" {
			errs = append(errs, fmt.Errorf("enums[%d]: missing type", i))
			continue
		}

		if seen[e.Type] {
			errs = append(errs, fmt.Errorf("enums[%d]: duplicate type %q", i, e.Type))
		}

		seen[e.Type] = true

		if _, err := enum.ParseWidth(e.Width); err != nil {
			errs = append(errs, fmt.Errorf("enums[%d] (%s): %w", i, e.Type, err))
		}
	}

	return errors.Join(errs...)
}

// Widths returns the requested widths keyed by type name. The file must
// have passed Validate.
func (f *File) Widths() map[string]enum.Width {
	out := make(map[string]enum.Width, len(f.Enums))
	for _, e := range f.Enums {
		if w, err := enum.ParseWidth(e.Width); err == nil {
			out[e.Type] = w
		}
	}

	return out
}

// Types returns the configured type names, sorted.
func (f *File) Types() []string {
	return slices.Sorted(maps.Keys(f.Widths()))
}
