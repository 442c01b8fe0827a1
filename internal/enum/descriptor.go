package enum

import (
	"errors"
	"fmt"

	"enumarg-generator/internal/source"
)

// ErrNoVariants is returned by NewDescriptor for an enum without variants.
var ErrNoVariants = errors.New("enum declares no variants")

// Variant is one enum constant and its discriminant.
type Variant struct {
	Name  string
	Value uint64
	// Span points at the constant's declaration.
	Span source.Span
}

// Descriptor is the extracted form of one enum declaration plus the width
// requested for it. Descriptors are values: nothing mutates them after
// NewDescriptor returns.
type Descriptor struct {
	// Name is the Go type name, e.g. "EnumArg".
	Name string
	// PkgPath is the import path of the declaring package.
	PkgPath string
	// Variants in declaration order. Never empty.
	Variants []Variant
	// Width is the requested wire width.
	Width Width
	// Span covers the enum's type declaration.
	Span source.Span
}

// NewDescriptor builds a descriptor, copying variants.
func NewDescriptor(pkgPath, name string, width Width, span source.Span, variants []Variant) (Descriptor, error) {
	if len(variants) == 0 {
		return Descriptor{}, fmt.Errorf("%s: %w", name, ErrNoVariants)
	}

	if !width.Valid() {
		return Descriptor{}, fmt.Errorf("%s: unsupported width %d", name, width)
	}

	return Descriptor{
		Name:     name,
		PkgPath:  pkgPath,
		Variants: append([]Variant(nil), variants...),
		Width:    width,
		Span:     span,
	}, nil
}

// QualifiedName returns PkgPath.Name, or Name when the package is unknown.
func (d Descriptor) QualifiedName() string {
	if d.PkgPath == "" {
		return d.Name
	}

	return d.PkgPath + "." + d.Name
}

// Validated is a descriptor whose discriminants all fit the width and are
// pairwise distinct. Only Validate constructs it.
type Validated struct {
	desc Descriptor
}

// Name returns the enum type name.
func (v *Validated) Name() string { return v.desc.Name }

// PkgPath returns the declaring package path.
func (v *Validated) PkgPath() string { return v.desc.PkgPath }

// Width returns the validated wire width.
func (v *Validated) Width() Width { return v.desc.Width }

// Span returns the declaration span.
func (v *Validated) Span() source.Span { return v.desc.Span }

// Variants returns a copy of the variants in declaration order.
func (v *Validated) Variants() []Variant {
	return append([]Variant(nil), v.desc.Variants...)
}

// Descriptor returns a copy of the underlying descriptor.
func (v *Validated) Descriptor() Descriptor {
	d := v.desc
	d.Variants = v.Variants()

	return d
}
