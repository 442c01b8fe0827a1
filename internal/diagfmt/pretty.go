package diagfmt

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"enumarg-generator/internal/diagnostic"
	"enumarg-generator/internal/source"
)

type palette struct {
	severity map[diagnostic.Severity]*color.Color
	gutter   *color.Color
	marker   *color.Color
	bold     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		severity: map[diagnostic.Severity]*color.Color{
			diagnostic.SeverityError:   color.New(color.FgRed, color.Bold),
			diagnostic.SeverityWarning: color.New(color.FgYellow, color.Bold),
			diagnostic.SeverityInfo:    color.New(color.FgCyan, color.Bold),
		},
		gutter: color.New(color.FgBlue, color.Bold),
		marker: color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}

	all := []*color.Color{p.gutter, p.marker, p.bold}
	for _, c := range p.severity {
		all = append(all, c)
	}

	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Pretty writes the text transcript of diags to w. fs resolves spans; when it
// is nil, or a span cannot be resolved, the location block is omitted.
func Pretty(w io.Writer, diags []diagnostic.Diagnostic, fs *source.FileSet, opts Options) error {
	p := newPalette(opts.Color)

	var buf bytes.Buffer
	for i := range diags {
		if i > 0 {
			buf.WriteByte('\n')
		}

		renderOne(&buf, &diags[i], fs, opts, p)
	}

	_, err := w.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("writing diagnostics: %w", err)
	}

	return nil
}

// PrettyString is Pretty into a string.
func PrettyString(diags []diagnostic.Diagnostic, fs *source.FileSet, opts Options) string {
	var b strings.Builder
	_ = Pretty(&b, diags, fs, opts)

	return b.String()
}

// location is a resolved span, ready to print.
type location struct {
	path   string
	line   uint32
	col    uint32
	text   string // source line with tabs expanded
	pad    int    // display columns before the span
	carets int    // display columns covered by the span
}

func renderOne(buf *bytes.Buffer, d *diagnostic.Diagnostic, fs *source.FileSet, opts Options, p palette) {
	sev := p.severity[d.Severity]
	if sev == nil {
		sev = p.bold
	}

	header := d.Severity.String()
	if d.Code != "" {
		header += "[" + string(d.Code) + "]"
	}

	buf.WriteString(sev.Sprint(header))
	buf.WriteString(p.bold.Sprint(": " + d.Message))
	buf.WriteByte('\n')

	loc, ok := resolve(d.Span, fs, opts)

	gutter := 1
	if ok {
		gutter = len(strconv.FormatUint(uint64(loc.line), 10))
	}

	indent := strings.Repeat(" ", gutter+1)

	if ok {
		fmt.Fprintf(buf, "%s%s%s:%d:%d\n", strings.Repeat(" ", gutter), p.gutter.Sprint("--> "), loc.path, loc.line, loc.col)
		fmt.Fprintf(buf, "%s%s\n", indent, p.gutter.Sprint("|"))
		fmt.Fprintf(buf, "%s%s%s\n", p.gutter.Sprint(strconv.FormatUint(uint64(loc.line), 10)), p.gutter.Sprint(" | "), loc.text)

		marker := p.marker.Sprint(strings.Repeat("^", loc.carets))
		if d.Label != "" {
			marker += " " + p.marker.Sprint(d.Label)
		}

		fmt.Fprintf(buf, "%s%s%s%s\n", indent, p.gutter.Sprint("| "), strings.Repeat(" ", loc.pad), marker)
	}

	for _, n := range d.Notes {
		prefix := "= " + n.Kind.String() + ": "
		lines := strings.Split(n.Text, "\n")

		fmt.Fprintf(buf, "%s%s%s\n", indent, p.bold.Sprint(prefix), lines[0])

		cont := indent + strings.Repeat(" ", len(prefix))
		for _, l := range lines[1:] {
			fmt.Fprintf(buf, "%s%s\n", cont, l)
		}
	}
}

func resolve(span source.Span, fs *source.FileSet, opts Options) (location, bool) {
	if fs == nil {
		return location{}, false
	}

	f := fs.Get(span.File)
	if f == nil {
		return location{}, false
	}

	start, end, ok := fs.Resolve(span)
	if !ok {
		return location{}, false
	}

	raw := f.Line(start.Line)

	startCol := min(int(start.Col)-1, len(raw))
	endCol := len(raw)
	if end.Line == start.Line {
		endCol = min(int(end.Col)-1, len(raw))
	}

	endCol = max(endCol, startCol)

	tab := strings.Repeat(" ", opts.tabWidth())
	expand := func(s string) string { return strings.ReplaceAll(s, "\t", tab) }

	return location{
		path:   DisplayPath(f.Path, opts.BaseDir),
		line:   start.Line,
		col:    start.Col,
		text:   expand(raw),
		pad:    runewidth.StringWidth(expand(raw[:startCol])),
		carets: max(1, runewidth.StringWidth(expand(raw[startCol:endCol]))),
	}, true
}

// DisplayPath returns path relative to baseDir when it lies below it.
func DisplayPath(path, baseDir string) string {
	if baseDir == "" {
		return path
	}

	rel, err := filepath.Rel(baseDir, filepath.FromSlash(path))
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return filepath.ToSlash(rel)
}
