// Package analyze extracts enum declarations from Go packages.
//
// It loads packages with golang.org/x/tools/go/packages and walks the AST in
// source order, using go/types to evaluate constants. An enum is a named
// type whose underlying type is an integer, together with the package-level
// constants of that type.
//
// The width an enum is derived at comes from a directive in the type's doc
// comment,
//
//	//enumarg:width u8
//	type EnumArg uint16
//
// or from an override supplied by the caller (command line or config file).
//
// Key types:
//   - TypeID: package import path + type name
//   - EnumInfo: one named type, its variants and its width directive
//   - EnumGraph: every EnumInfo of the loaded packages, in source order
package analyze
