package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enumarg-generator/internal/enum"
)

const yamlConfig = `
version: "1"
package: ./wire/...
output: gen
file: wire_conv.go
manifest: .enumarg/capabilities.msgpack
enums:
  - type: EnumArg
    width: u8
  - type: example.com/wire.Status
    width: "32"
`

const tomlConfig = `
version = "1"
package = "./wire/..."
output = "gen"
file = "wire_conv.go"
manifest = ".enumarg/capabilities.msgpack"

[[enums]]
type = "EnumArg"
width = "u8"

[[enums]]
type = "example.com/wire.Status"
width = "32"
`

func assertWireConfig(t *testing.T, f *File) {
	t.Helper()

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "./wire/...", f.Package)
	assert.Equal(t, "gen", f.Output)
	assert.Equal(t, "wire_conv.go", f.FileName)
	assert.Equal(t, ".enumarg/capabilities.msgpack", f.Manifest)
	assert.Equal(t, []EnumEntry{
		{Type: "EnumArg", Width: "u8"},
		{Type: "example.com/wire.Status", Width: "32"},
	}, f.Enums)
	require.NoError(t, f.Validate())
	assert.Equal(t, map[string]enum.Width{
		"EnumArg":                 enum.W8,
		"example.com/wire.Status": enum.W32,
	}, f.Widths())
}

func TestParse_YAML(t *testing.T) {
	f, err := Parse([]byte(yamlConfig), FormatYAML)
	require.NoError(t, err)
	assertWireConfig(t, f)
}

func TestParse_TOML(t *testing.T) {
	f, err := Parse([]byte(tomlConfig), FormatTOML)
	require.NoError(t, err)
	assertWireConfig(t, f)
}

func TestParse_Defaults(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			f, err := Parse(nil, format)
			require.NoError(t, err)
			assert.Equal(t, CurrentVersion, f.Version)
			assert.Empty(t, f.Enums)
		})
	}
}

func TestParse_UnknownKeys(t *testing.T) {
	_, err := Parse([]byte("version: \"1\"\nwidths: {}\n"), FormatYAML)
	require.Error(t, err)

	_, err = Parse([]byte("version = \"1\"\nwidths = 8\n"), FormatTOML)
	require.ErrorContains(t, err, `unknown key "widths"`)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("{}"), Format("json"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFile_Validate(t *testing.T) {
	f := &File{
		Version: "2",
		Enums: []EnumEntry{
			{Type: "A", Width: "u8"},
			{Type: "A", Width: "u16"},
			{Type: "", Width: "u8"},
			{Type: "B", Width: "u12"},
		},
	}

	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported version "2"`)
	assert.Contains(t, err.Error(), `enums[1]: duplicate type "A"`)
	assert.Contains(t, err.Error(), "enums[2]: missing type")
	assert.Contains(t, err.Error(), "enums[3] (B): invalid width")
}

func TestFile_Widths(t *testing.T) {
	f := &File{Enums: []EnumEntry{{Type: "A", Width: "u8"}, {Type: "wire.B", Width: "16"}}}

	assert.Equal(t, map[string]enum.Width{"A": enum.W8, "wire.B": enum.W16}, f.Widths())
	assert.Equal(t, []string{"A", "wire.B"}, f.Types())
}

func TestLoadFile_RoundTrip(t *testing.T) {
	for _, name := range []string{"enumarg.yaml", "enumarg.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := &File{
				Version: CurrentVersion,
				Package: "./...",
				Enums:   []EnumEntry{{Type: "EnumArg", Width: "u8"}},
			}

			require.NoError(t, WriteFile(want, path))

			got, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "enumarg.json"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("enums:\n  - type: A\n    width: u7\n"), 0o644))

	_, err = LoadFile(bad)
	require.ErrorContains(t, err, "invalid config")
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	_, ok, err := Find(nested)
	require.NoError(t, err)
	assert.False(t, ok)

	want := filepath.Join(root, "a", "enumarg.toml")
	require.NoError(t, os.WriteFile(want, []byte("version = \"1\"\n"), 0o644))

	got, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"enumarg.yaml":  FormatYAML,
		"x/ENUMARG.YML": FormatYAML,
		"enumarg.toml":  FormatTOML,
	} {
		got, err := FormatOf(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
}
