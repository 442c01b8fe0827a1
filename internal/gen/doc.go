// Package gen synthesizes enum/integer conversions for validated enums.
//
// Synthesis has two halves that share one table:
//   - Artifacts evaluate the conversions in-process (ToInteger, FromInteger).
//   - GenerateFile renders them as Go source with jennifer, one file per
//     package, which WriteFiles puts on disk.
//
// For an enum EnumArg at width u8 the generated functions are
//
//	func EnumArgToUint8(v EnumArg) uint8
//	func EnumArgFromUint8(v uint8) (EnumArg, error)
//
// The first is total over the declared variants. The second tests
// discriminants in ascending order and rejects anything else.
package gen
