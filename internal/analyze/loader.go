package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"enumarg-generator/internal/enum"
	"enumarg-generator/internal/source"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// WidthDirective prefixes the doc comment line selecting an enum's width.
const WidthDirective = "//enumarg:width"

// Analyzer loads Go packages and collects their enum declarations.
type Analyzer struct {
	files  *source.FileSet
	graph  *EnumGraph
	dir    string
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory package patterns are resolved against.
func WithDir(dir string) Option {
	return func(a *Analyzer) { a.dir = dir }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates a new Analyzer. Source files it reads are registered
// in files so diagnostics can quote them.
func NewAnalyzer(files *source.FileSet, opts ...Option) *Analyzer {
	a := &Analyzer{
		files:  files,
		graph:  NewEnumGraph(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Graph returns the current enum graph.
func (a *Analyzer) Graph() *EnumGraph {
	return a.graph
}

// unit is one type-checked package, however it was loaded.
type unit struct {
	path  string
	name  string
	dir   string
	fset  *token.FileSet
	files []*ast.File
	info  *types.Info
	read  func(filename string) ([]byte, error)
}

// LoadPackages loads the specified packages and adds their types to the graph.
// Patterns are standard Go package patterns (e.g., "./wire", "example.com/wire/...").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*EnumGraph, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		u := unit{
			path:  pkg.PkgPath,
			name:  pkg.Name,
			fset:  pkg.Fset,
			files: pkg.Syntax,
			info:  pkg.TypesInfo,
			read:  os.ReadFile,
		}

		if len(pkg.GoFiles) > 0 {
			u.dir = filepath.Dir(pkg.GoFiles[0])
		}

		if err := a.processPackage(u); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// LoadSource type-checks in-memory files as a single package rooted at dir.
// Keys of files are file names relative to dir. Imports are resolved with
// the default importer.
func (a *Analyzer) LoadSource(pkgPath, dir string, files map[string][]byte) (*EnumGraph, error) {
	fset := token.NewFileSet()
	contents := make(map[string][]byte, len(files))

	var syntax []*ast.File
	for _, name := range slices.Sorted(maps.Keys(files)) {
		filename := filepath.Join(dir, name)
		contents[filename] = files[name]

		f, err := parser.ParseFile(fset, filename, files[name], parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filename, err)
		}

		syntax = append(syntax, f)
	}

	info := &types.Info{Defs: make(map[*ast.Ident]types.Object)}
	conf := types.Config{Importer: importer.Default()}

	pkg, err := conf.Check(pkgPath, fset, syntax, info)
	if err != nil {
		return nil, fmt.Errorf("type-checking %s: %w", pkgPath, err)
	}

	u := unit{
		path:  pkgPath,
		name:  pkg.Name(),
		dir:   dir,
		fset:  fset,
		files: syntax,
		info:  info,
		read: func(filename string) ([]byte, error) {
			return contents[filename], nil
		},
	}

	if err := a.processPackage(u); err != nil {
		return nil, fmt.Errorf("failed to process package %s: %w", pkgPath, err)
	}

	return a.graph, nil
}

// fileUnit pairs a parsed file with its registered source.
type fileUnit struct {
	syntax *ast.File
	tok    *token.File
	id     source.FileID
}

// processPackage collects named types first and their constants second, so
// constants declared ahead of their type (or in another file) still attach.
func (a *Analyzer) processPackage(u unit) error {
	pkgInfo := &PackageInfo{Path: u.path, Name: u.name, Dir: u.dir}

	files := make([]fileUnit, 0, len(u.files))
	for _, f := range u.files {
		tok := u.fset.File(f.Pos())

		content, err := u.read(tok.Name())
		if err != nil {
			return fmt.Errorf("reading %s: %w", tok.Name(), err)
		}

		files = append(files, fileUnit{syntax: f, tok: tok, id: a.files.Add(tok.Name(), content)})
	}

	byObj := make(map[*types.TypeName]*EnumInfo)

	for _, fu := range files {
		for _, gd := range genDecls(fu.syntax, token.TYPE) {
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				if ts.Assign.IsValid() || ts.TypeParams != nil {
					continue
				}

				obj, ok := u.info.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}

				span, err := a.span(fu, ts.Name.Pos(), ts.Type.End())
				if err != nil {
					return fmt.Errorf("type %s: %w", ts.Name.Name, err)
				}

				underlying := obj.Type().Underlying()
				info := &EnumInfo{
					ID:         TypeID{PkgPath: u.path, Name: ts.Name.Name},
					PkgName:    u.name,
					Dir:        u.dir,
					Underlying: underlying.String(),
					Integer:    isInteger(underlying),
					Span:       span,
					Directive:  typeDirective(gd, ts),
				}

				byObj[obj] = info
				a.graph.Types[info.ID] = info
				pkgInfo.Types = append(pkgInfo.Types, info.ID)
			}
		}
	}

	for _, fu := range files {
		for _, gd := range genDecls(fu.syntax, token.CONST) {
			for _, spec := range gd.Specs {
				if err := a.collectConstants(fu, u.info, spec.(*ast.ValueSpec), byObj); err != nil {
					return err
				}
			}
		}
	}

	a.graph.addPackage(pkgInfo)
	a.logger.Debug("package analyzed",
		"pkg", u.path,
		"types", len(pkgInfo.Types),
		"files", len(files))

	return nil
}

func (a *Analyzer) collectConstants(fu fileUnit, info *types.Info, vs *ast.ValueSpec, byObj map[*types.TypeName]*EnumInfo) error {
	for _, name := range vs.Names {
		if name.Name == "_" {
			continue
		}

		c, ok := info.Defs[name].(*types.Const)
		if !ok {
			continue
		}

		named, ok := c.Type().(*types.Named)
		if !ok {
			continue
		}

		target := byObj[named.Obj()]
		if target == nil || !target.Integer {
			continue
		}

		span, err := a.span(fu, name.Pos(), name.End())
		if err != nil {
			return fmt.Errorf("constant %s: %w", name.Name, err)
		}

		val := c.Val()
		if constant.Sign(val) < 0 {
			target.Negatives = append(target.Negatives, Negative{Name: name.Name, Value: val.ExactString(), Span: span})
			continue
		}

		v, exact := constant.Uint64Val(val)
		if !exact {
			return fmt.Errorf("constant %s: value %s is not a uint64", name.Name, val.ExactString())
		}

		target.Variants = append(target.Variants, enum.Variant{Name: name.Name, Value: v, Span: span})
	}

	return nil
}

func (a *Analyzer) span(fu fileUnit, from, to token.Pos) (source.Span, error) {
	return a.files.SpanOf(fu.id, fu.tok.Offset(from), fu.tok.Offset(to))
}

func genDecls(f *ast.File, tok token.Token) []*ast.GenDecl {
	var out []*ast.GenDecl
	for _, decl := range f.Decls {
		if gd, ok := decl.(*ast.GenDecl); ok && gd.Tok == tok {
			out = append(out, gd)
		}
	}

	return out
}

func isInteger(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Info()&types.IsInteger != 0
}

// typeDirective finds the width directive for ts. A grouped declaration
// carries the comment on the spec, a single one on the declaration.
func typeDirective(gd *ast.GenDecl, ts *ast.TypeSpec) *Directive {
	if d := parseDirective(ts.Doc); d != nil {
		return d
	}

	if !gd.Lparen.IsValid() {
		return parseDirective(gd.Doc)
	}

	return nil
}

func parseDirective(doc *ast.CommentGroup) *Directive {
	if doc == nil {
		return nil
	}

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, WidthDirective)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}

		d := &Directive{Raw: strings.TrimSpace(rest)}
		d.Width, d.Err = enum.ParseWidth(d.Raw)

		return d
	}

	return nil
}
