package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"enumarg-generator/internal/analyze"
	"enumarg-generator/internal/diagfmt"
	"enumarg-generator/internal/enum"
)

// EnumSummary is one row of the analyze listing.
type EnumSummary struct {
	Type       string `json:"type"`
	Underlying string `json:"underlying"`
	Variants   int    `json:"variants"`
	Negative   int    `json:"negative,omitempty"`
	// Width is empty when the enum will not be derived.
	Width string `json:"width,omitempty"`
	// Directive is the //enumarg:width argument as written.
	Directive string `json:"directive,omitempty"`
	File      string `json:"file,omitempty"`
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &loadOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "List the enums found in packages",
		Long: `Load packages and list every integer type that has constants, with
the width it would be derived at. Enums without a width are listed but
not derived by check or gen.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, rootOpts, opts)
		},
	}

	opts.bind(cmd)

	return cmd
}

func runAnalyze(cmd *cobra.Command, rootOpts *RootOptions, opts *loadOptions) error {
	logger := newLogger(rootOpts, cmd.ErrOrStderr())

	s, err := opts.load(cmd.Context(), logger)
	if err != nil {
		return err
	}

	rows := summarize(s)
	out := cmd.OutOrStdout()

	if rootOpts.Format == "json" {
		return writeJSON(out, rows)
	}

	return writeSummaryTable(out, rows)
}

// summarize lists the enums of s in load order.
func summarize(s *session) []EnumSummary {
	widths := make(map[string]enum.Width, len(s.descs))
	for _, d := range s.descs {
		widths[d.QualifiedName()] = d.Width
	}

	enums := s.graph.Enums()
	rows := make([]EnumSummary, 0, len(enums))

	for _, e := range enums {
		row := EnumSummary{
			Type:       e.ID.Qualified(),
			Underlying: e.Underlying,
			Variants:   len(e.Variants),
			Negative:   len(e.Negatives),
			File:       fileOf(s, e),
		}

		if w, ok := widths[e.ID.String()]; ok {
			row.Width = w.Scalar()
		}

		if e.Directive != nil {
			row.Directive = e.Directive.Raw
		}

		rows = append(rows, row)
	}

	return rows
}

func fileOf(s *session, e *analyze.EnumInfo) string {
	f := s.files.Get(e.Span.File)
	if f == nil {
		return ""
	}

	start, _, ok := s.files.Resolve(e.Span)
	if !ok {
		return f.Path
	}

	return fmt.Sprintf("%s:%d", relPath(f.Path), start.Line)
}

func writeSummaryTable(w io.Writer, rows []EnumSummary) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no enums found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tUNDERLYING\tVARIANTS\tWIDTH\tLOCATION")

	for _, r := range rows {
		width := r.Width
		if width == "" {
			width = "-"
		}

		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.Type, r.Underlying, r.Variants, width, r.File)
	}

	return tw.Flush()
}

// relPath shortens path against the working directory when it is below it.
func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}

	return diagfmt.DisplayPath(path, wd)
}
