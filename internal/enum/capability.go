package enum

//go:generate go tool stringer -type=Capability -output=capability_string.go

// Capability names one of the two conversion relationships a derived enum
// must realize. It carries no data; it is a label for diagnostics.
type Capability int

const (
	// IntegerFromEnum is the total enum -> integer direction.
	IntegerFromEnum Capability = iota
	// EnumFromInteger is the fallible integer -> enum direction.
	EnumFromInteger
)

// Capabilities lists every capability in dependency order: the fallible
// direction requires the total one to be reported first.
var Capabilities = []Capability{IntegerFromEnum, EnumFromInteger}
