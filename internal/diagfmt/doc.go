// Package diagfmt renders diagnostics as text transcripts or JSON.
//
// The text form is fixed and inspectable:
//
//	error[E0277]: the trait bound `u8: From<EnumArg>` is not satisfied
//	 --> wire/enums.go:7:6
//	  |
//	7 | type EnumArg uint16
//	  |      ^^^^^^^^^^^^^^ the trait `From<EnumArg>` is not implemented for `u8`
//	  = help: see issue #48214 <https://github.com/rust-lang/rust/issues/48214>
//
// Diagnostics are separated by one blank line.
package diagfmt
