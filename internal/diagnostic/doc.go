// Package diagnostic provides the structured diagnostics produced when an
// enum cannot be derived.
//
// Key capabilities:
//   - Severity, stable codes and primary messages
//   - An opaque source span plus an inline label for the caret line
//   - Ordered help/note lines
//   - An ordered accumulator that never drops entries
package diagnostic
