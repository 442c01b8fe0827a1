package gen

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/dave/jennifer/jen"
)

// Header is the first line of every generated file.
const Header = "Code generated by enumarg-generator. DO NOT EDIT."

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the base name of the file (e.g., "wire_enumarg.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// GenerateFile builds the conversion file for one package. Enums are emitted
// in the order given.
func GenerateFile(pkgName string, artifacts ...*Artifacts) *jen.File {
	f := jen.NewFile(pkgName)
	f.HeaderComment(Header)
	f.ImportName("fmt", "fmt")

	for _, a := range artifacts {
		genIntegerFromEnum(f, a)
		genEnumFromInteger(f, a)
	}

	return f
}

// Render formats the package file and names it after the package.
func Render(pkgName string, artifacts ...*Artifacts) (GeneratedFile, error) {
	var buf bytes.Buffer
	if err := GenerateFile(pkgName, artifacts...).Render(&buf); err != nil {
		return GeneratedFile{}, fmt.Errorf("rendering %s: %w", FileName(pkgName), err)
	}

	return GeneratedFile{Filename: FileName(pkgName), Content: buf.Bytes()}, nil
}

// genIntegerFromEnum emits the total enum -> integer switch.
func genIntegerFromEnum(f *jen.File, a *Artifacts) {
	name := a.Enum.Name()
	integer := a.Enum.Width().GoType()
	conv := a.IntegerFromEnum

	f.Commentf("%s converts v to its %s wire discriminant.", conv.Func, integer)
	f.Commentf("It panics if v is not a declared %s constant.", name)
	f.Func().Id(conv.Func).Params(jen.Id("v").Id(name)).Id(integer).Block(
		jen.Switch(jen.Id("v")).BlockFunc(func(g *jen.Group) {
			for _, c := range conv.Cases {
				g.Case(jen.Id(c.Variant)).Block(jen.Return(discriminant(c.Value)))
			}

			g.Default().Block(jen.Panic(jen.Qual("fmt", "Sprintf").Call(
				jen.Lit("enumarg: undeclared "+name+" value %d"), jen.Id("v"),
			)))
		}),
	)
	f.Line()
}

// genEnumFromInteger emits the fallible integer -> enum switch.
func genEnumFromInteger(f *jen.File, a *Artifacts) {
	name := a.Enum.Name()
	integer := a.Enum.Width().GoType()
	conv := a.EnumFromInteger

	f.Commentf("%s converts a %s wire discriminant to %s.", conv.Func, integer, name)
	f.Func().Id(conv.Func).Params(jen.Id("v").Id(integer)).Params(jen.Id(name), jen.Error()).Block(
		jen.Switch(jen.Id("v")).BlockFunc(func(g *jen.Group) {
			for _, c := range conv.Cases {
				g.Case(discriminant(c.Value)).Block(jen.Return(jen.Id(c.Variant), jen.Nil()))
			}

			g.Default().Block(jen.Return(jen.Lit(0), jen.Qual("fmt", "Errorf").Call(
				jen.Lit("invalid "+name+" discriminant %d"), jen.Id("v"),
			)))
		}),
	)
	f.Line()
}

// discriminant renders an untyped decimal constant. jen.Lit would wrap a
// uint64 in a conversion.
func discriminant(v uint64) jen.Code {
	return jen.Op(strconv.FormatUint(v, 10))
}
