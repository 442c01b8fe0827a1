package enum

// Validate checks that every discriminant of d fits d.Width and that no two
// variants share a discriminant. It returns either a Validated enum or the
// complete, non-empty list of failures, never both.
//
// Findings are reported in declaration order of the variant that triggers
// them. When one variant is both out of range and a duplicate, the range
// finding comes first.
//
// d is expected to come from NewDescriptor, which guarantees a supported
// width and at least one variant.
func Validate(d Descriptor) (*Validated, Failures) {
	var failures Failures

	first := make(map[uint64]string, len(d.Variants))
	for _, v := range d.Variants {
		if !d.Width.Fits(v.Value) {
			failures = append(failures, &DiscriminantOutOfRange{
				Variant: v.Name,
				Value:   v.Value,
				Width:   d.Width,
			})
		}

		if canonical, ok := first[v.Value]; ok {
			failures = append(failures, &DuplicateDiscriminant{
				First:  canonical,
				Second: v.Name,
				Value:  v.Value,
			})

			continue
		}

		first[v.Value] = v.Name
	}

	if len(failures) > 0 {
		return nil, failures
	}

	desc := d
	desc.Variants = append([]Variant(nil), d.Variants...)

	return &Validated{desc: desc}, nil
}
