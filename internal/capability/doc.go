// Package capability records which conversion capabilities have been
// realized, and answers the host's question "does this enum implement that
// conversion at this width?".
//
// A Registry is filled from synthesized artifacts and may be seeded from a
// manifest written by an earlier run, so enums derived in other packages are
// known as implementers.
package capability
