package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"enumarg-generator/internal/common"
	"enumarg-generator/internal/source"
)

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a stable identifier for this kind of diagnostic.
	Code Code
	// Message is the primary, one-line description.
	Message string
	// Span anchors the diagnostic in source. It is forwarded, never inspected.
	Span source.Span
	// Label is printed after the caret markers, if set.
	Label string
	// Notes are trailing help/note lines, in order.
	Notes []Note
	// Subject names the declaration the diagnostic is about (if any).
	Subject string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// NoteKind selects the prefix of a trailing note line.
type NoteKind int

const (
	// NoteHelp renders as "= help: ...".
	NoteHelp NoteKind = iota
	// NoteNote renders as "= note: ...".
	NoteNote
)

// String returns the rendered prefix word.
func (k NoteKind) String() string {
	switch k {
	case NoteHelp:
		return "help"
	case NoteNote:
		return "note"
	default:
		return common.UnknownStr
	}
}

// Note is a trailing explanatory line. Text may span several lines.
type Note struct {
	Kind NoteKind
	Text string
}

// New creates a diagnostic without label or notes.
func New(sev Severity, code Code, span source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Span:     span,
		Message:  msg,
	}
}

// NewError creates an error-severity diagnostic.
func NewError(code Code, span source.Span, msg string) Diagnostic {
	return New(SeverityError, code, span, msg)
}

// WithLabel returns a copy of d with the caret label set.
func (d Diagnostic) WithLabel(label string) Diagnostic {
	d.Label = label
	return d
}

// WithSubject returns a copy of d naming the declaration it concerns.
func (d Diagnostic) WithSubject(subject string) Diagnostic {
	d.Subject = subject
	return d
}

// WithHelp returns a copy of d with a help line appended.
func (d Diagnostic) WithHelp(text string) Diagnostic {
	return d.withNote(NoteHelp, text)
}

// WithNote returns a copy of d with a note line appended.
func (d Diagnostic) WithNote(text string) Diagnostic {
	return d.withNote(NoteNote, text)
}

func (d Diagnostic) withNote(kind NoteKind, text string) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{Kind: kind, Text: text})

	return d
}

// String returns a single-line form: "[Subject] error[CODE]: message".
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Subject != "" {
		b.WriteString("[" + d.Subject + "] ")
	}

	b.WriteString(d.Severity.String())
	if d.Code != "" {
		fmt.Fprintf(&b, "[%s]", d.Code)
	}

	b.WriteString(": ")
	b.WriteString(d.Message)

	return b.String()
}

// Diagnostics is an ordered, append-only list of diagnostics.
type Diagnostics struct {
	Items []Diagnostic
}

// Add appends diagnostics in order.
func (d *Diagnostics) Add(items ...Diagnostic) {
	d.Items = append(d.Items, items...)
}

// AddError appends an error diagnostic and returns it for inspection.
func (d *Diagnostics) AddError(code Code, span source.Span, msg string) Diagnostic {
	diag := NewError(code, span, msg)
	d.Items = append(d.Items, diag)

	return diag
}

// Len returns the number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Items)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	for i := range d.Items {
		if d.Items[i].Severity >= SeverityError {
			return true
		}
	}

	return false
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Errors returns the error-severity diagnostics, in order.
func (d *Diagnostics) Errors() []Diagnostic {
	var out []Diagnostic
	for _, item := range d.Items {
		if item.Severity == SeverityError {
			out = append(out, item)
		}
	}

	return out
}

// Merge appends all diagnostics of other after the existing ones.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Items = append(d.Items, other.Items...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors() {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}
