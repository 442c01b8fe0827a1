package report

import (
	"fmt"
	"slices"
	"strings"

	"enumarg-generator/internal/diagnostic"
	"enumarg-generator/internal/enum"
)

// Implementers lists enums already known to realize IntegerFromEnum for a
// width. The capability registry satisfies it.
type Implementers interface {
	EnumsInto(w enum.Width) []string
}

// Reporter builds diagnostics. It holds no per-call state and is safe for
// concurrent use as long as its Implementers is.
type Reporter struct {
	implementers Implementers
}

// New creates a Reporter. impl may be nil, in which case only builtin
// implementers are listed.
func New(impl Implementers) *Reporter {
	return &Reporter{implementers: impl}
}

// Failures returns one error diagnostic per validation failure, in the order
// the validator produced them. Every diagnostic is anchored at d.Span.
func (r *Reporter) Failures(d enum.Descriptor, failures enum.Failures) []diagnostic.Diagnostic {
	out := make([]diagnostic.Diagnostic, 0, len(failures))

	for _, f := range failures {
		switch f := f.(type) {
		case *enum.DiscriminantOutOfRange:
			out = append(out, diagnostic.NewError(
				diagnostic.CodeDiscriminantOutOfRange,
				d.Span,
				fmt.Sprintf("discriminant `%d` of variant %s does not fit in %s",
					f.Value, code(f.Variant), code(f.Width.Scalar())),
			).
				WithLabel(fmt.Sprintf("variant %s is out of range", code(f.Variant))).
				WithHelp(fmt.Sprintf("the range of %s is `0..=%d`", code(f.Width.Scalar()), f.Width.Max())).
				WithSubject(d.QualifiedName()))

		case *enum.DuplicateDiscriminant:
			out = append(out, diagnostic.NewError(
				diagnostic.CodeDuplicateDiscriminant,
				d.Span,
				fmt.Sprintf("discriminant value `%d` assigned more than once", f.Value),
			).
				WithLabel(fmt.Sprintf("%s and %s share discriminant `%d`", code(f.First), code(f.Second), f.Value)).
				WithHelp(fmt.Sprintf("%s repeats the discriminant first assigned to %s", code(f.Second), code(f.First))).
				WithSubject(d.QualifiedName()))
		}
	}

	return out
}

// MissingCapabilities returns one diagnostic per missing direction.
// IntegerFromEnum always precedes EnumFromInteger, whatever order missing
// lists them in; duplicates are reported once.
func (r *Reporter) MissingCapabilities(d enum.Descriptor, missing []enum.Capability) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic

	for _, c := range enum.Capabilities {
		if !slices.Contains(missing, c) {
			continue
		}

		switch c {
		case enum.IntegerFromEnum:
			out = append(out, r.integerFromEnum(d))
		case enum.EnumFromInteger:
			out = append(out, r.enumFromInteger(d))
		}
	}

	return out
}

// integerFromEnum: `<int>: From<Enum>` is not satisfied.
func (r *Reporter) integerFromEnum(d enum.Descriptor) diagnostic.Diagnostic {
	integer := d.Width.Scalar()

	return diagnostic.NewError(
		diagnostic.CodeTraitBoundNotSatisfied,
		d.Span,
		fmt.Sprintf("the trait bound %s is not satisfied", bound(integer, "From", d.Name)),
	).
		WithLabel(fmt.Sprintf("the trait %s is not implemented for %s", code(trait("From", d.Name)), code(integer))).
		WithHelp(r.implementersHelp(d)).
		WithHelp(IssueHelp).
		WithSubject(d.QualifiedName())
}

// enumFromInteger: `Enum: From<int>` is not satisfied, which in turn leaves
// the fallible conversion unsatisfied.
func (r *Reporter) enumFromInteger(d enum.Descriptor) diagnostic.Diagnostic {
	integer := d.Width.Scalar()

	return diagnostic.NewError(
		diagnostic.CodeTraitBoundNotSatisfied,
		d.Span,
		fmt.Sprintf("the trait bound %s is not satisfied", bound(d.Name, "From", integer)),
	).
		WithLabel(fmt.Sprintf("the trait %s is not implemented for %s", code(trait("From", integer)), code(d.Name))).
		WithNote(fmt.Sprintf("required for %s to implement %s", code(integer), code(trait("Into", d.Name)))).
		WithNote(fmt.Sprintf("required for %s to implement %s", code(d.Name), code(trait("TryFrom", integer)))).
		WithHelp(IssueHelp).
		WithSubject(d.QualifiedName())
}

// implementersHelp lists other types the integer already converts from:
// bool, char from u32 up, every narrower width, then enums realized
// elsewhere (sorted).
func (r *Reporter) implementersHelp(d enum.Descriptor) string {
	integer := d.Width.Scalar()

	sources := []string{"bool"}
	if d.Width >= enum.W32 {
		sources = append(sources, "char")
	}

	for _, w := range d.Width.Narrower() {
		sources = append(sources, w.Scalar())
	}

	if r.implementers != nil {
		enums := slices.Clone(r.implementers.EnumsInto(d.Width))
		slices.Sort(enums)

		for _, name := range slices.Compact(enums) {
			if name != d.Name {
				sources = append(sources, name)
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "the following other types implement trait %s:", code(trait("From", "T")))

	for i, src := range sources {
		if i == maxImplementers {
			fmt.Fprintf(&b, "\n  and %d others", len(sources)-maxImplementers)
			break
		}

		fmt.Fprintf(&b, "\n  %s implements %s", code(integer), code(trait("From", src)))
	}

	return b.String()
}
