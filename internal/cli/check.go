package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"enumarg-generator/internal/capability"
	"enumarg-generator/internal/derive"
	"enumarg-generator/internal/diagnostic"
)

// deriveOptions are the flags of commands that run derivation.
type deriveOptions struct {
	loadOptions
	Manifest    string
	Concurrency int
}

func (o *deriveOptions) bind(cmd *cobra.Command) {
	o.loadOptions.bind(cmd)
	cmd.Flags().StringVar(&o.Manifest, "manifest", "", "capability manifest seeding earlier realizations (default: config manifest)")
	cmd.Flags().IntVar(&o.Concurrency, "concurrency", 0, "parallel derivations (default: GOMAXPROCS)")
}

// manifestPath returns --manifest, else the config entry resolved against
// the config directory.
func (o *deriveOptions) manifestPath(s *session) string {
	if o.Manifest != "" {
		return o.Manifest
	}

	return s.resolve(s.cfg.Manifest)
}

// outcome is a load plus the derivation run over it.
type outcome struct {
	*session
	registry *capability.Registry
	result   *derive.Result
}

// diagnostics returns extractor diagnostics followed by derivation
// diagnostics.
func (o *outcome) diagnostics() []diagnostic.Diagnostic {
	var all diagnostic.Diagnostics
	all.Merge(o.diags)
	all.Merge(o.result.Diagnostics)

	return all.Items
}

// runDerive loads packages and derives every described enum.
func (o *deriveOptions) runDerive(ctx context.Context, logger *slog.Logger) (*outcome, error) {
	s, err := o.load(ctx, logger)
	if err != nil {
		return nil, err
	}

	registry := capability.NewRegistry()

	if path := o.manifestPath(s); path != "" {
		ok, err := registry.LoadManifest(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "loading manifest", err)
		}

		logger.Debug("manifest", "path", path, "found", ok, "entries", registry.Len())
	}

	popts := []derive.Option{derive.WithLogger(logger)}
	if o.Concurrency > 0 {
		popts = append(popts, derive.WithConcurrency(o.Concurrency))
	}

	res, err := derive.New(registry, popts...).Run(ctx, s.descs)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "derivation interrupted", err)
	}

	return &outcome{session: s, registry: registry, result: res}, nil
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &deriveOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report diagnostics without writing files",
		Long: `Derive every enum that has a width and print the diagnostics the
derivation produces. Exit status is 1 when any diagnostic is an error.`,
		Example: `  enumarg-generator check --pkg ./wire
  enumarg-generator check --pkg ./wire --type EnumArg --width 8
  enumarg-generator check --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, rootOpts, opts)
		},
	}

	opts.bind(cmd)

	return cmd
}

func runCheck(cmd *cobra.Command, rootOpts *RootOptions, opts *deriveOptions) error {
	logger := newLogger(rootOpts, cmd.ErrOrStderr())

	o, err := opts.runDerive(cmd.Context(), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report(rootOpts, out, o); err != nil {
		return WrapExitError(ExitCommandError, "writing diagnostics", err)
	}

	if rootOpts.Format == "text" {
		fmt.Fprintf(out, "%d enum(s) checked, %d failed\n", len(o.descs), o.result.Failed())
	}

	return failureExit(o)
}

// report prints every diagnostic of o.
func report(rootOpts *RootOptions, w io.Writer, o *outcome) error {
	wd, _ := os.Getwd()

	return writeDiagnostics(rootOpts, w, o.diagnostics(), o.files, wd)
}

// failureExit returns an ExitFailure error when any diagnostic is an error.
func failureExit(o *outcome) error {
	diags := diagnostic.Diagnostics{Items: o.diagnostics()}
	if !diags.HasErrors() {
		return nil
	}

	return &ExitError{
		Code:    ExitFailure,
		Message: fmt.Sprintf("%d error(s)", len(diags.Errors())),
		Err:     o.result.Err(),
	}
}
