package derive

import (
	"enumarg-generator/internal/enum"
	"enumarg-generator/internal/gen"
)

// Outcome is the result of deriving one declaration: artifacts on success,
// failures otherwise.
type Outcome struct {
	Descriptor enum.Descriptor
	Artifacts  *gen.Artifacts
	Failures   enum.Failures
}

// OK reports whether the declaration was synthesized.
func (o Outcome) OK() bool {
	return o.Artifacts != nil
}

// Derive validates d and synthesizes its conversions. It is pure.
func Derive(d enum.Descriptor) Outcome {
	v, failures := enum.Validate(d)
	if len(failures) > 0 {
		return Outcome{Descriptor: d, Failures: failures}
	}

	return Outcome{Descriptor: d, Artifacts: gen.Synthesize(v)}
}
