package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enumarg-generator/internal/diagnostic"
	"enumarg-generator/internal/enum"
	"enumarg-generator/internal/source"
)

func TestEnumGraph_Descriptors_FromDirectives(t *testing.T) {
	graph, _ := loadWire(t, map[string]string{"enums.go": wireSrc})

	descs, diags, err := graph.Descriptors(nil)
	require.NoError(t, err)
	assert.Zero(t, diags.Len())

	require.Len(t, descs, 2, "Mode has no width and is skipped")
	assert.Equal(t, "EnumArg", descs[0].Name)
	assert.Equal(t, enum.W8, descs[0].Width)
	assert.Equal(t, "example.com/wire", descs[0].PkgPath)
	assert.Equal(t, "Flag", descs[1].Name)
	assert.Equal(t, enum.W32, descs[1].Width)
}

func TestEnumGraph_Descriptors_OverridesWin(t *testing.T) {
	graph, _ := loadWire(t, map[string]string{"enums.go": wireSrc})

	descs, _, err := graph.Descriptors(Widths{
		"wire.EnumArg": enum.W16,
		"Mode":         enum.W64,
	})
	require.NoError(t, err)

	require.Len(t, descs, 3)
	assert.Equal(t, "EnumArg", descs[0].Name)
	assert.Equal(t, enum.W16, descs[0].Width)
	assert.Equal(t, "Mode", descs[1].Name)
	assert.Equal(t, enum.W64, descs[1].Width)
}

func TestEnumGraph_Descriptors_UnknownType(t *testing.T) {
	graph, _ := loadWire(t, map[string]string{"enums.go": wireSrc})

	_, _, err := graph.Descriptors(Widths{"EnumArgs": enum.W8})
	require.ErrorIs(t, err, ErrTypeNotFound)
	assert.EqualError(t, err, "type not found: EnumArgs (did you mean EnumArg?)")

	_, _, err = graph.Descriptors(Widths{"Zzz": enum.W8})
	assert.EqualError(t, err, "type not found: Zzz")
}

func TestEnumGraph_Descriptors_ExtractorDiagnostics(t *testing.T) {
	graph, _ := loadWire(t, map[string]string{
		"enums.go": `package wire

//enumarg:width u12
type Bad uint8

const BadA Bad = 1

type Text string

const TextA Text = "a"

type Empty uint8

type Signed int

const (
	SignedA Signed = -2
	SignedB Signed = 1
)
`,
	})

	descs, diags, err := graph.Descriptors(Widths{
		"Text":   enum.W8,
		"Empty":  enum.W8,
		"Signed": enum.W8,
	})
	require.NoError(t, err)
	assert.Empty(t, descs)

	require.Equal(t, 4, diags.Len())

	codes := make([]diagnostic.Code, 0, diags.Len())
	for _, d := range diags.Items {
		codes = append(codes, d.Code)
	}

	assert.Equal(t, []diagnostic.Code{
		diagnostic.CodeInvalidWidth,
		diagnostic.CodeUnsupportedType,
		diagnostic.CodeNoVariants,
		diagnostic.CodeNegativeDiscriminant,
	}, codes)

	assert.Equal(t, "invalid width `u12` in `//enumarg:width` directive", diags.Items[0].Message)
	assert.Equal(t, "enum `Text` has unsupported underlying type `string`", diags.Items[1].Message)
	assert.Equal(t, "enum `Empty` declares no variants", diags.Items[2].Message)
	assert.Equal(t, "discriminant `-2` of variant `SignedA` is negative", diags.Items[3].Message)
	assert.Equal(t, "example.com/wire.Signed", diags.Items[3].Subject)
}

func TestTypeID(t *testing.T) {
	id := TypeID{PkgPath: "example.com/wire", Name: "EnumArg"}
	assert.Equal(t, "example.com/wire.EnumArg", id.String())
	assert.Equal(t, "wire.EnumArg", id.Qualified())

	bare := TypeID{Name: "EnumArg"}
	assert.Equal(t, "EnumArg", bare.String())
	assert.Equal(t, "EnumArg", bare.Qualified())
}

func TestEnumGraph_CheckWidths_Ambiguous(t *testing.T) {
	fs := source.NewFileSet()
	a := NewAnalyzer(fs)

	for _, pkg := range []string{"a", "b"} {
		_, err := a.LoadSource("example.com/"+pkg+"/wire", pkg, map[string][]byte{
			"mode.go": []byte("package wire\n\ntype Mode uint8\n\nconst ModeRead Mode = 0\n"),
		})
		require.NoError(t, err)
	}

	graph := a.Graph()

	err := graph.CheckWidths(Widths{"Mode": enum.W8})
	require.ErrorIs(t, err, ErrAmbiguousType)
	assert.EqualError(t, err, "ambiguous type: Mode matches example.com/a/wire.Mode, example.com/b/wire.Mode")

	require.NoError(t, graph.CheckWidths(Widths{"example.com/b/wire.Mode": enum.W8}))

	descs, _, err := graph.Descriptors(Widths{"example.com/b/wire.Mode": enum.W8})
	require.NoError(t, err)
	require.Len(t, descs, 1)
	assert.Equal(t, "example.com/b/wire", descs[0].PkgPath)
}

func TestEnumGraph_Descriptors_FlagLayerBeatsMoreSpecificConfigKey(t *testing.T) {
	graph, _ := loadWire(t, map[string]string{"enums.go": wireSrc})

	flags := Widths{"EnumArg": enum.W32}
	cfg := Widths{"wire.EnumArg": enum.W16, "example.com/wire.Mode": enum.W64}

	descs, _, err := graph.Descriptors(flags, cfg)
	require.NoError(t, err)

	require.Len(t, descs, 3)
	assert.Equal(t, "EnumArg", descs[0].Name)
	assert.Equal(t, enum.W32, descs[0].Width, "flag wins over config")
	assert.Equal(t, "Mode", descs[1].Name)
	assert.Equal(t, enum.W64, descs[1].Width, "config applies when no flag names the type")
	assert.Equal(t, "Flag", descs[2].Name)
	assert.Equal(t, enum.W32, descs[2].Width, "directive applies when no layer names the type")
}

func TestEnumGraph_CheckWidths_AllLayers(t *testing.T) {
	graph, _ := loadWire(t, map[string]string{"enums.go": wireSrc})

	err := graph.CheckWidths(Widths{"EnumArg": enum.W8}, Widths{"Modes": enum.W8})
	require.ErrorIs(t, err, ErrTypeNotFound)
	assert.EqualError(t, err, "type not found: Modes (did you mean Mode?)")
}
