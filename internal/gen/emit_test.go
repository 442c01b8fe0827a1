package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enumarg-generator/internal/enum"
)

func TestGenerateFile_Content(t *testing.T) {
	a := Synthesize(validated(t, "EnumArg", enum.W8, "Second", 2, "First", 1))

	code := GenerateFile("wire", a).GoString()

	assert.Contains(t, code, "// "+Header)
	assert.Contains(t, code, "package wire")
	assert.Contains(t, code, "func EnumArgToUint8(v EnumArg) uint8 {")
	assert.Contains(t, code, "func EnumArgFromUint8(v uint8) (EnumArg, error) {")
	assert.Contains(t, code, "case Second:")
	assert.Contains(t, code, "return Second, nil")
	assert.Contains(t, code, `"invalid EnumArg discriminant %d"`)
	assert.Contains(t, code, `"enumarg: undeclared EnumArg value %d"`)
	assert.NotContains(t, code, "uint64(", "discriminants are untyped constants")

	// ascending discriminants in the fallible direction
	assert.Less(t, strings.Index(code, "case 1:"), strings.Index(code, "case 2:"))
	// declaration order in the total direction
	assert.Less(t, strings.Index(code, "case Second:"), strings.Index(code, "case First:"))
}

func TestRender_ParsesAsGo(t *testing.T) {
	a := Synthesize(validated(t, "EnumArg", enum.W8, "Small", 1, "Big", 255))
	b := Synthesize(validated(t, "mode", enum.W64, "off", 0, "on", 1))

	file, err := Render("wire", a, b)
	require.NoError(t, err)
	assert.Equal(t, "wire_enumarg.go", file.Filename)
	assert.True(t, IsGenerated(file.Content))

	parsed, err := parser.ParseFile(token.NewFileSet(), file.Filename, file.Content, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal(t, "wire", parsed.Name.Name)

	var funcs []string
	for _, decl := range parsed.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			funcs = append(funcs, fn.Name.Name)
		}
	}

	assert.Equal(t, []string{"EnumArgToUint8", "EnumArgFromUint8", "modeToUint64", "modeFromUint64"}, funcs)
}

func TestRender_Idempotent(t *testing.T) {
	build := func() []byte {
		a := Synthesize(validated(t, "EnumArg", enum.W32, "A", 0, "B", 10, "C", 5))
		file, err := Render("wire", a)
		require.NoError(t, err)

		return file.Content
	}

	assert.Equal(t, build(), build())
}
