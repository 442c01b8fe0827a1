// Package report turns validation failures and missing conversion
// capabilities into diagnostics.
//
// Two sources map to two shapes:
//   - enum.Failure: one error per failure, anchored at the enum declaration
//   - missing enum.Capability: one error per missing direction, worded the
//     way the host's own capability check words an unsatisfied bound
//
// The reporter only builds values; rendering lives in package diagfmt.
package report
