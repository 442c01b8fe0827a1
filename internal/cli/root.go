package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json"
	Color   string // "auto" | "on" | "off"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidColors defines the allowed --color values.
var ValidColors = []string{"auto", "on", "off"}

// NewRootCommand creates the root command for the enumarg-generator CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "enumarg-generator",
		Short: "Derive wire-integer conversions for Go enums",
		Long: `enumarg-generator derives conversions between Go enums and the fixed-width
unsigned integers used as scalar arguments in a D-Bus style wire encoding.

For every enum with a width it emits a total enum -> integer function and a
fallible integer -> enum function, or diagnostics explaining why it could not.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			if !slices.Contains(ValidColors, opts.Color) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid color %q: must be one of %v", opts.Color, ValidColors))
			}

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "auto", "colorize diagnostics (auto|on|off)")

	cmd.AddCommand(NewAnalyzeCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewGenCommand(opts))

	return cmd
}

// newLogger writes structured logs to w; --verbose lowers the level to Debug.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
