package analyze

import (
	"slices"

	"enumarg-generator/internal/common"
	"enumarg-generator/internal/enum"
	"enumarg-generator/internal/source"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "example.com/wire"
	Name    string // e.g., "EnumArg"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Qualified returns the type name prefixed with its package alias, e.g.
// "wire.EnumArg".
func (t TypeID) Qualified() string {
	if alias := common.PkgAlias(t.PkgPath); alias != "" {
		return alias + "." + t.Name
	}

	return t.Name
}

// Directive is a parsed //enumarg:width comment.
type Directive struct {
	// Raw is the argument as written, e.g. "u8".
	Raw string
	// Width is valid only when Err is nil.
	Width enum.Width
	Err   error
}

// Negative records a constant with a negative value.
type Negative struct {
	Name  string
	Value string
	Span  source.Span
}

// EnumInfo describes one package-level named type. Types whose underlying
// type is not an integer are kept so that requests for them can be
// diagnosed.
type EnumInfo struct {
	ID      TypeID
	PkgName string
	// Dir is the directory of the declaring file.
	Dir string
	// Underlying is the underlying type as written by go/types, e.g. "uint16".
	Underlying string
	// Integer reports whether Underlying is an integer kind.
	Integer bool
	// Span covers "Name Type" of the type spec.
	Span source.Span
	// Variants are the non-negative constants, in source order.
	Variants []enum.Variant
	// Negatives are constants that cannot be discriminants.
	Negatives []Negative
	// Directive is nil when the doc comment carries none.
	Directive *Directive
}

// IsEnum reports whether the type is an integer type with at least one
// constant.
func (e *EnumInfo) IsEnum() bool {
	return e.Integer && (len(e.Variants) > 0 || len(e.Negatives) > 0)
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Named types in source order
}

// EnumGraph holds every named type from loaded packages.
type EnumGraph struct {
	// Types maps TypeID to EnumInfo.
	Types map[TypeID]*EnumInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// order lists packages as they were loaded.
	order []string
}

// NewEnumGraph creates a new empty EnumGraph.
func NewEnumGraph() *EnumGraph {
	return &EnumGraph{
		Types:    make(map[TypeID]*EnumInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the EnumInfo for a given TypeID, or nil if not found.
func (g *EnumGraph) GetType(id TypeID) *EnumInfo {
	return g.Types[id]
}

// All returns every type in load order: packages as loaded, types in
// source order.
func (g *EnumGraph) All() []*EnumInfo {
	var out []*EnumInfo
	for _, path := range g.order {
		for _, id := range g.Packages[path].Types {
			out = append(out, g.Types[id])
		}
	}

	return out
}

// Enums returns the types satisfying IsEnum, in load order.
func (g *EnumGraph) Enums() []*EnumInfo {
	return slices.DeleteFunc(g.All(), func(e *EnumInfo) bool { return !e.IsEnum() })
}

func (g *EnumGraph) addPackage(p *PackageInfo) {
	if _, ok := g.Packages[p.Path]; !ok {
		g.order = append(g.order, p.Path)
	}

	g.Packages[p.Path] = p
}
