package diagnostic

// Code identifies a kind of diagnostic. Codes are stable across releases.
type Code string

// Codes raised by enumarg-generator itself.
const (
	// CodeDiscriminantOutOfRange: a discriminant exceeds 2^width-1.
	CodeDiscriminantOutOfRange Code = "EA0001"
	// CodeDuplicateDiscriminant: two variants share a discriminant.
	CodeDuplicateDiscriminant Code = "EA0002"
	// CodeUnsupportedType: the enum's underlying type is not an integer.
	CodeUnsupportedType Code = "EA0003"
	// CodeNegativeDiscriminant: a constant has a negative value.
	CodeNegativeDiscriminant Code = "EA0004"
	// CodeNoVariants: the type has no constants.
	CodeNoVariants Code = "EA0005"
	// CodeInvalidWidth: the width directive could not be parsed.
	CodeInvalidWidth Code = "EA0006"
)

// CodeTraitBoundNotSatisfied mirrors the host's own code for a required
// conversion relationship that was never realized.
const CodeTraitBoundNotSatisfied Code = "E0277"
