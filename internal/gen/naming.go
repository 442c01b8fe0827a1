package gen

import (
	"strings"

	"github.com/go-openapi/inflect"

	"enumarg-generator/internal/enum"
)

// FileSuffix is appended to the package name to form the generated file name.
const FileSuffix = "_enumarg.go"

// FuncNames are the generated function names for one enum.
type FuncNames struct {
	ToInteger   string
	FromInteger string
}

// FuncNamesFor returns <Enum>To<GoType> and <Enum>From<GoType>, e.g.
// EnumArgToUint8. An unexported enum yields unexported functions.
func FuncNamesFor(enumName string, w enum.Width) FuncNames {
	integer := inflect.Camelize(w.GoType())

	return FuncNames{
		ToInteger:   enumName + "To" + integer,
		FromInteger: enumName + "From" + integer,
	}
}

// FileName returns the generated file name for a package.
func FileName(pkgName string) string {
	return strings.ToLower(pkgName) + FileSuffix
}
