package enum

import (
	"errors"
	"fmt"
)

// Failure is one validation finding. The concrete types are
// *DiscriminantOutOfRange and *DuplicateDiscriminant.
type Failure interface {
	error
	failure()
}

// DiscriminantOutOfRange reports a discriminant larger than Width.Max().
type DiscriminantOutOfRange struct {
	Variant string
	Value   uint64
	Width   Width
}

func (f *DiscriminantOutOfRange) Error() string {
	return fmt.Sprintf("discriminant %d of variant %s does not fit in %s", f.Value, f.Variant, f.Width.Scalar())
}

func (*DiscriminantOutOfRange) failure() {}

// DuplicateDiscriminant reports a variant reusing the discriminant of an
// earlier one. First is the canonical (earliest) variant.
type DuplicateDiscriminant struct {
	First  string
	Second string
	Value  uint64
}

func (f *DuplicateDiscriminant) Error() string {
	return fmt.Sprintf("variants %s and %s share discriminant %d", f.First, f.Second, f.Value)
}

func (*DuplicateDiscriminant) failure() {}

// Failures is the ordered set of findings from one validation pass.
type Failures []Failure

// Err joins all failures into one error, or returns nil when there are none.
func (fs Failures) Err() error {
	if len(fs) == 0 {
		return nil
	}

	errs := make([]error, len(fs))
	for i, f := range fs {
		errs[i] = f
	}

	return errors.Join(errs...)
}

// OutOfRange returns only the DiscriminantOutOfRange findings.
func (fs Failures) OutOfRange() []*DiscriminantOutOfRange {
	var out []*DiscriminantOutOfRange
	for _, f := range fs {
		if o, ok := f.(*DiscriminantOutOfRange); ok {
			out = append(out, o)
		}
	}

	return out
}

// Duplicates returns only the DuplicateDiscriminant findings.
func (fs Failures) Duplicates() []*DuplicateDiscriminant {
	var out []*DuplicateDiscriminant
	for _, f := range fs {
		if d, ok := f.(*DuplicateDiscriminant); ok {
			out = append(out, d)
		}
	}

	return out
}
