// Package enum models enum declarations destined for a fixed-width wire
// integer and validates them.
//
// Key types:
//   - Width: the requested wire width (8, 16, 32 or 64 bits)
//   - Descriptor: enum name, ordered variants and width, as extracted
//   - Validated: a descriptor proven to fit its width with unique discriminants
//   - Failure: DiscriminantOutOfRange or DuplicateDiscriminant
//   - Capability: IntegerFromEnum or EnumFromInteger, used as a label
package enum
