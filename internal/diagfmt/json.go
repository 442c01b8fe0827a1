package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"enumarg-generator/internal/diagnostic"
	"enumarg-generator/internal/source"
)

// JSONDiagnostic is the wire shape of one diagnostic in JSON output.
type JSONDiagnostic struct {
	Severity  string     `json:"severity"`
	Code      string     `json:"code,omitempty"`
	Message   string     `json:"message"`
	Subject   string     `json:"subject,omitempty"`
	File      string     `json:"file,omitempty"`
	Line      uint32     `json:"line,omitempty"`
	Column    uint32     `json:"column,omitempty"`
	EndLine   uint32     `json:"end_line,omitempty"`
	EndColumn uint32     `json:"end_column,omitempty"`
	Label     string     `json:"label,omitempty"`
	Notes     []JSONNote `json:"notes,omitempty"`
}

// JSONNote is one trailing note.
type JSONNote struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// ToJSON converts diagnostics to their JSON shape, resolving spans with fs.
func ToJSON(diags []diagnostic.Diagnostic, fs *source.FileSet, opts Options) []JSONDiagnostic {
	out := make([]JSONDiagnostic, 0, len(diags))

	for _, d := range diags {
		jd := JSONDiagnostic{
			Severity: d.Severity.String(),
			Code:     string(d.Code),
			Message:  d.Message,
			Subject:  d.Subject,
			Label:    d.Label,
		}

		if fs != nil {
			if f := fs.Get(d.Span.File); f != nil {
				start, end, _ := fs.Resolve(d.Span)
				jd.File = DisplayPath(f.Path, opts.BaseDir)
				jd.Line, jd.Column = start.Line, start.Col
				jd.EndLine, jd.EndColumn = end.Line, end.Col
			}
		}

		for _, n := range d.Notes {
			jd.Notes = append(jd.Notes, JSONNote{Kind: n.Kind.String(), Text: n.Text})
		}

		out = append(out, jd)
	}

	return out
}

// JSON writes diags as an indented JSON array.
func JSON(w io.Writer, diags []diagnostic.Diagnostic, fs *source.FileSet, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(ToJSON(diags, fs, opts)); err != nil {
		return fmt.Errorf("encoding diagnostics: %w", err)
	}

	return nil
}
