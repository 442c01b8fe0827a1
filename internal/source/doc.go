// Package source holds the read-only table of source files that diagnostics
// point into.
//
// A Span is an opaque handle (file id plus byte range). Producers create spans
// while extracting declarations; everything downstream only forwards them
// until the transcript renderer resolves them to line and column.
package source
