package gen

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"enumarg-generator/internal/enum"
)

// ErrUnknownDiscriminant is returned by FromInteger for a value no variant
// declares.
var ErrUnknownDiscriminant = errors.New("unknown discriminant")

// ErrUnknownVariant is returned by ToInteger for a name the enum does not
// declare.
var ErrUnknownVariant = errors.New("unknown variant")

// Case is one row of a conversion table.
type Case struct {
	Variant string
	Value   uint64
}

// Conversion is one direction of the synthesized mapping.
type Conversion struct {
	// Func is the name of the generated Go function.
	Func string
	// Cases in evaluation order.
	Cases []Case
}

// Artifacts is everything synthesized for one validated enum.
type Artifacts struct {
	Enum *enum.Validated
	// IntegerFromEnum maps every variant, in declaration order.
	IntegerFromEnum Conversion
	// EnumFromInteger tests discriminants in ascending order.
	EnumFromInteger Conversion
	// Capabilities realized by these artifacts. Always both.
	Capabilities []enum.Capability
}

// Synthesize builds the conversion artifacts for v. It cannot fail: every
// precondition was established by enum.Validate.
func Synthesize(v *enum.Validated) *Artifacts {
	variants := v.Variants()

	forward := make([]Case, len(variants))
	for i, variant := range variants {
		forward[i] = Case{Variant: variant.Name, Value: variant.Value}
	}

	backward := slices.Clone(forward)
	slices.SortStableFunc(backward, func(a, b Case) int {
		return cmp.Compare(a.Value, b.Value)
	})

	names := FuncNamesFor(v.Name(), v.Width())

	return &Artifacts{
		Enum:            v,
		IntegerFromEnum: Conversion{Func: names.ToInteger, Cases: forward},
		EnumFromInteger: Conversion{Func: names.FromInteger, Cases: backward},
		Capabilities:    slices.Clone(enum.Capabilities),
	}
}

// ToInteger returns the discriminant of the named variant.
func (a *Artifacts) ToInteger(variant string) (uint64, error) {
	for _, c := range a.IntegerFromEnum.Cases {
		if c.Variant == variant {
			return c.Value, nil
		}
	}

	return 0, fmt.Errorf("%s.%s: %w", a.Enum.Name(), variant, ErrUnknownVariant)
}

// FromInteger returns the variant whose discriminant is x.
func (a *Artifacts) FromInteger(x uint64) (string, error) {
	for _, c := range a.EnumFromInteger.Cases {
		if c.Value == x {
			return c.Variant, nil
		}

		if c.Value > x {
			break
		}
	}

	return "", fmt.Errorf("%s from %s %d: %w", a.Enum.Name(), a.Enum.Width().Scalar(), x, ErrUnknownDiscriminant)
}

// Realizes reports whether the artifacts provide capability c.
func (a *Artifacts) Realizes(c enum.Capability) bool {
	return slices.Contains(a.Capabilities, c)
}
