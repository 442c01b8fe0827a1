package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enumarg-generator/internal/diagnostic"
	"enumarg-generator/internal/source"
)

const wireSrc = `package wire

//enumarg:width u8
type EnumArg uint16

const (
	EnumArgSmall EnumArg = 1
	EnumArgBig   EnumArg = 256
)
`

// declSpan registers src and returns the span of the first occurrence of decl.
func declSpan(t *testing.T, fs *source.FileSet, path, src, decl string) source.Span {
	t.Helper()

	id := fs.Add(path, []byte(src))
	start := strings.Index(src, decl)
	require.GreaterOrEqual(t, start, 0, "declaration %q not found", decl)

	span, err := fs.SpanOf(id, start, start+len(decl))
	require.NoError(t, err)

	return span
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()

	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestPretty_SingleDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	span := declSpan(t, fs, "wire/enums.go", wireSrc, "EnumArg uint16")

	d := diagnostic.NewError(diagnostic.CodeTraitBoundNotSatisfied, span,
		"the trait bound `u8: From<EnumArg>` is not satisfied").
		WithLabel("the trait `From<EnumArg>` is not implemented for `u8`").
		WithHelp("the following other types implement trait `From<T>`:\n  `u8` implements `From<bool>`").
		WithHelp("see issue #48214 <https://github.com/rust-lang/rust/issues/48214>")

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, []diagnostic.Diagnostic{d}, fs, Options{}))

	newGoldie(t).Assert(t, "single_diagnostic", buf.Bytes())
}

func TestPretty_MultipleDiagnosticsSeparatedByBlankLine(t *testing.T) {
	fs := source.NewFileSet()
	span := declSpan(t, fs, "wire/enums.go", wireSrc, "EnumArg uint16")

	diags := []diagnostic.Diagnostic{
		diagnostic.NewError(diagnostic.CodeDuplicateDiscriminant, span, "first").WithLabel("here"),
		diagnostic.NewError(diagnostic.CodeDuplicateDiscriminant, span, "second").
			WithNote("required for `u8` to implement `Into<EnumArg>`"),
	}

	got := PrettyString(diags, fs, Options{})

	want := "error[EA0002]: first\n" +
		" --> wire/enums.go:4:6\n" +
		"  |\n" +
		"4 | type EnumArg uint16\n" +
		"  |      ^^^^^^^^^^^^^^ here\n" +
		"\n" +
		"error[EA0002]: second\n" +
		" --> wire/enums.go:4:6\n" +
		"  |\n" +
		"4 | type EnumArg uint16\n" +
		"  |      ^^^^^^^^^^^^^^\n" +
		"  = note: required for `u8` to implement `Into<EnumArg>`\n"

	assert.Equal(t, want, got)
}

func TestPretty_WideGutter(t *testing.T) {
	src := strings.Repeat("\n", 11) + "type Transform uint32\n"

	fs := source.NewFileSet()
	span := declSpan(t, fs, "display/transform.go", src, "Transform")

	got := PrettyString([]diagnostic.Diagnostic{
		diagnostic.NewError("EA0005", span, "enum declares no variants"),
	}, fs, Options{})

	want := "error[EA0005]: enum declares no variants\n" +
		"  --> display/transform.go:12:6\n" +
		"   |\n" +
		"12 | type Transform uint32\n" +
		"   |      ^^^^^^^^^\n"

	assert.Equal(t, want, got)
}

func TestPretty_TabsAndWideRunes(t *testing.T) {
	src := "package x\n\ttype Enum型 uint8\n"

	fs := source.NewFileSet()
	span := declSpan(t, fs, "x.go", src, "Enum型")

	got := PrettyString([]diagnostic.Diagnostic{
		diagnostic.NewError("EA0003", span, "msg"),
	}, fs, Options{TabWidth: 2})

	assert.Contains(t, got, " --> x.go:2:7\n")
	assert.Contains(t, got, "2 |   type Enum型 uint8\n")
	// "  type " is 7 columns; the CJK rune is two columns wide
	assert.Contains(t, got, "  | "+strings.Repeat(" ", 7)+"^^^^^^\n")
}

func TestPretty_MultiLineSpanUnderlinesFirstLine(t *testing.T) {
	src := "type (\n\tA uint8\n)\n"

	fs := source.NewFileSet()
	span := declSpan(t, fs, "x.go", src, src[:len(src)-1])

	got := PrettyString([]diagnostic.Diagnostic{
		diagnostic.NewError("EA0003", span, "msg"),
	}, fs, Options{})

	assert.Contains(t, got, "1 | type (\n  | ^^^^^^\n")
}

func TestPretty_UnresolvedSpanOmitsLocation(t *testing.T) {
	d := diagnostic.NewError("EA0001", source.Span{File: 9}, "no source").WithHelp("still shown")

	got := PrettyString([]diagnostic.Diagnostic{d}, nil, Options{})

	assert.Equal(t, "error[EA0001]: no source\n  = help: still shown\n", got)
}

func TestPretty_BaseDirMakesPathsRelative(t *testing.T) {
	fs := source.NewFileSet()
	span := declSpan(t, fs, "/work/repo/wire/enums.go", wireSrc, "EnumArg uint16")

	got := PrettyString([]diagnostic.Diagnostic{
		diagnostic.NewError("EA0001", span, "m"),
	}, fs, Options{BaseDir: "/work/repo"})

	assert.Contains(t, got, " --> wire/enums.go:4:6\n")
}

func TestPretty_ColorWrapsHeader(t *testing.T) {
	fs := source.NewFileSet()
	span := declSpan(t, fs, "wire/enums.go", wireSrc, "EnumArg uint16")
	diags := []diagnostic.Diagnostic{diagnostic.NewError("EA0001", span, "m")}

	plain := PrettyString(diags, fs, Options{})
	colored := PrettyString(diags, fs, Options{Color: true})

	assert.NotContains(t, plain, "\x1b[")
	assert.Contains(t, colored, "\x1b[")
	assert.NotEqual(t, plain, colored)
}

func TestPretty_Idempotent(t *testing.T) {
	fs := source.NewFileSet()
	span := declSpan(t, fs, "wire/enums.go", wireSrc, "EnumArg uint16")
	diags := []diagnostic.Diagnostic{
		diagnostic.NewError("EA0001", span, "m").WithLabel("l").WithHelp("h"),
	}

	assert.Equal(t, PrettyString(diags, fs, Options{}), PrettyString(diags, fs, Options{}))
}
