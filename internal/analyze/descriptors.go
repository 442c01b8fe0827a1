package analyze

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"enumarg-generator/internal/common"
	"enumarg-generator/internal/diagnostic"
	"enumarg-generator/internal/enum"
	"enumarg-generator/internal/match"
)

// ErrTypeNotFound is returned when a width is requested for a type that no
// loaded package declares.
var ErrTypeNotFound = errors.New("type not found")

// ErrAmbiguousType is returned when a requested name matches types in more
// than one package.
var ErrAmbiguousType = errors.New("ambiguous type")

// Widths maps type names to requested widths. A key is a bare name
// ("EnumArg"), an alias-qualified name ("wire.EnumArg") or an import-path
// qualified name ("example.com/wire.EnumArg").
type Widths map[string]enum.Width

// lookup returns the width requested for id, most specific key first.
func (w Widths) lookup(id TypeID) (enum.Width, bool) {
	for _, k := range []string{id.String(), id.Qualified(), id.Name} {
		if width, ok := w[k]; ok {
			return width, true
		}
	}

	return 0, false
}

// Find returns every type matching name under the rules of Widths keys.
func (g *EnumGraph) Find(name string) []*EnumInfo {
	var out []*EnumInfo
	for _, info := range g.All() {
		id := info.ID
		if name == id.String() || name == id.Qualified() || name == id.Name {
			out = append(out, info)
		}
	}

	return out
}

// resolveWidth returns the width for id from the first layer that names it.
func resolveWidth(layers []Widths, id TypeID) (enum.Width, bool) {
	for _, l := range layers {
		if w, ok := l.lookup(id); ok {
			return w, true
		}
	}

	return 0, false
}

// CheckWidths verifies that every key of every layer names exactly one
// loaded type.
func (g *EnumGraph) CheckWidths(layers ...Widths) error {
	var errs []error

	names := make(map[string]struct{})
	for _, l := range layers {
		for name := range l {
			names[name] = struct{}{}
		}
	}

	for _, name := range slices.Sorted(maps.Keys(names)) {
		found := g.Find(name)

		if common.IsMultiple(found) {
			ids := make([]string, 0, len(found))
			for _, info := range found {
				ids = append(ids, info.ID.String())
			}

			errs = append(errs, fmt.Errorf("%w: %s matches %s", ErrAmbiguousType, name, strings.Join(ids, ", ")))

			continue
		}

		if !common.IsEmpty(found) {
			continue
		}

		if suggestion, ok := match.Closest(name, g.names()); ok {
			errs = append(errs, fmt.Errorf("%w: %s (did you mean %s?)", ErrTypeNotFound, name, suggestion))
		} else {
			errs = append(errs, fmt.Errorf("%w: %s", ErrTypeNotFound, name))
		}
	}

	return errors.Join(errs...)
}

func (g *EnumGraph) names() []string {
	var out []string
	for _, info := range g.All() {
		out = append(out, info.ID.Name)
	}

	return out
}

// Descriptors builds a descriptor for every type that has a width, in load
// order. layers are ordered highest precedence first (flags, then config)
// and all of them take precedence over //enumarg:width directives; a more
// specific key in a lower layer never beats a higher layer. Types with no
// width are skipped. Types that cannot be derived produce diagnostics
// instead of descriptors.
func (g *EnumGraph) Descriptors(layers ...Widths) ([]enum.Descriptor, diagnostic.Diagnostics, error) {
	var (
		descs []enum.Descriptor
		diags diagnostic.Diagnostics
	)

	if err := g.CheckWidths(layers...); err != nil {
		return nil, diags, err
	}

	for _, info := range g.All() {
		width, ok := resolveWidth(layers, info.ID)
		if !ok && info.Directive != nil {
			if info.Directive.Err != nil {
				diags.Add(invalidWidth(info))
				continue
			}

			width, ok = info.Directive.Width, true
		}

		if !ok {
			continue
		}

		d, problems := info.Descriptor(width)
		if len(problems) > 0 {
			diags.Add(problems...)
			continue
		}

		descs = append(descs, d)
	}

	return descs, diags, nil
}

// Descriptor converts info into a descriptor at width w, or explains why it
// cannot be derived. Every diagnostic is anchored at the type declaration.
func (e *EnumInfo) Descriptor(w enum.Width) (enum.Descriptor, []diagnostic.Diagnostic) {
	var problems []diagnostic.Diagnostic

	switch {
	case !e.Integer:
		problems = append(problems, e.diag(diagnostic.CodeUnsupportedType,
			fmt.Sprintf("enum `%s` has unsupported underlying type `%s`", e.ID.Name, e.Underlying)).
			WithLabel("expected an integer type").
			WithHelp(fmt.Sprintf("declare it as `type %s %s`", e.ID.Name, w.GoType())))

	case len(e.Variants) == 0 && len(e.Negatives) == 0:
		problems = append(problems, e.diag(diagnostic.CodeNoVariants,
			fmt.Sprintf("enum `%s` declares no variants", e.ID.Name)).
			WithLabel(fmt.Sprintf("no constants of type `%s` found", e.ID.Name)))
	}

	for _, n := range e.Negatives {
		problems = append(problems, e.diag(diagnostic.CodeNegativeDiscriminant,
			fmt.Sprintf("discriminant `%s` of variant `%s` is negative", n.Value, n.Name)).
			WithLabel(fmt.Sprintf("variant `%s` has a negative discriminant", n.Name)).
			WithHelp(fmt.Sprintf("the range of `%s` is `0..=%d`", w.Scalar(), w.Max())))
	}

	if len(problems) > 0 {
		return enum.Descriptor{}, problems
	}

	d, err := enum.NewDescriptor(e.ID.PkgPath, e.ID.Name, w, e.Span, e.Variants)
	if err != nil {
		return enum.Descriptor{}, []diagnostic.Diagnostic{
			e.diag(diagnostic.CodeNoVariants, err.Error()),
		}
	}

	return d, nil
}

func invalidWidth(e *EnumInfo) diagnostic.Diagnostic {
	return e.diag(diagnostic.CodeInvalidWidth,
		fmt.Sprintf("invalid width `%s` in `%s` directive", e.Directive.Raw, WidthDirective)).
		WithLabel("unsupported width").
		WithHelp("expected one of `u8`, `u16`, `u32` or `u64`")
}

func (e *EnumInfo) diag(code diagnostic.Code, msg string) diagnostic.Diagnostic {
	return diagnostic.NewError(code, e.Span, msg).WithSubject(e.ID.String())
}
