package cli

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"enumarg-generator/internal/diagfmt"
	"enumarg-generator/internal/gen"
	"enumarg-generator/internal/watch"
)

type genOptions struct {
	deriveOptions
	Out   string
	Watch bool
}

// GenReport is the JSON output of gen.
type GenReport struct {
	Files       []GenFile                `json:"files"`
	Diagnostics []diagfmt.JSONDiagnostic `json:"diagnostics"`
}

// GenFile describes one written file.
type GenFile struct {
	Path    string   `json:"path"`
	Package string   `json:"package"`
	Enums   []string `json:"enums"`
	Changed bool     `json:"changed"`
	// Removed marks a previously generated file deleted because its
	// package no longer derives any enum.
	Removed bool `json:"removed,omitempty"`
}

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate conversion functions",
		Long: `Derive every enum that has a width and write one file of conversion
functions per package. Enums that fail derivation are reported and left
out; the others are still written. Exit status is 1 when any diagnostic
is an error.

With --watch, gen keeps running and regenerates when package sources or
the config file change.`,
		Example: `  enumarg-generator gen --pkg ./wire
  enumarg-generator gen --pkg ./... --manifest .enumarg.msgpack
  enumarg-generator gen --watch`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, rootOpts, opts)
		},
	}

	opts.deriveOptions.bind(cmd)
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output directory (default: config output, then each package's directory)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "regenerate on source changes")

	return cmd
}

func runGen(cmd *cobra.Command, rootOpts *RootOptions, opts *genOptions) error {
	logger := newLogger(rootOpts, cmd.ErrOrStderr())

	if !opts.Watch {
		_, err := generate(cmd, rootOpts, opts, logger)
		return err
	}

	o, err := generate(cmd, rootOpts, opts, logger)
	if err != nil && GetExitCode(err) != ExitFailure {
		return err
	}

	dirs := watchDirs(o)
	logger.Info("watching", "dirs", dirs)

	w := watch.New(dirs, watch.WithLogger(logger), watch.SkipInitialRun())

	return w.Run(cmd.Context(), func(ctx context.Context) error {
		_, err := generate(cmd, rootOpts, opts, logger)
		return err
	})
}

// generate runs one load-derive-write cycle.
func generate(cmd *cobra.Command, rootOpts *RootOptions, opts *genOptions, logger *slog.Logger) (*outcome, error) {
	ctx := cmd.Context()

	o, err := opts.runDerive(ctx, logger)
	if err != nil {
		return nil, err
	}

	written, err := opts.write(o, logger)
	if err != nil {
		return o, err
	}

	if path := opts.manifestPath(o.session); path != "" {
		if err := o.registry.SaveManifest(path); err != nil {
			return o, WrapExitError(ExitCommandError, "saving manifest", err)
		}

		logger.Debug("saved manifest", "path", path, "entries", o.registry.Len())
	}

	out := cmd.OutOrStdout()

	if rootOpts.Format == "json" {
		wd, _ := os.Getwd()
		rep := GenReport{
			Files:       written,
			Diagnostics: diagfmt.ToJSON(o.diagnostics(), o.files, diagfmt.Options{BaseDir: wd}),
		}

		if rep.Files == nil {
			rep.Files = []GenFile{}
		}

		if err := writeJSON(out, rep); err != nil {
			return o, WrapExitError(ExitCommandError, "writing report", err)
		}

		return o, failureExit(o)
	}

	if err := report(rootOpts, out, o); err != nil {
		return o, WrapExitError(ExitCommandError, "writing diagnostics", err)
	}

	changed, unchanged, removed := 0, 0, 0
	for _, f := range written {
		switch {
		case f.Removed:
			removed++
			fmt.Fprintf(out, "removed %s\n", relPath(f.Path))
		case f.Changed:
			changed++
			fmt.Fprintf(out, "wrote %s\n", relPath(f.Path))
		default:
			unchanged++
		}
	}

	fmt.Fprintf(out, "%d file(s) written, %d unchanged, %d enum(s) failed\n",
		changed, unchanged, o.result.Failed())

	if removed > 0 {
		fmt.Fprintf(out, "%d stale file(s) removed\n", removed)
	}

	return o, failureExit(o)
}

// write renders and writes one file per package holding derived enums.
// Packages left without derived enums lose their previously generated file.
func (opts *genOptions) write(o *outcome, logger *slog.Logger) ([]GenFile, error) {
	var written []GenFile

	targets := make(map[string]bool)

	for _, pa := range o.result.ByPackage() {
		pkg, ok := o.graph.Packages[pa.PkgPath]
		if !ok {
			return written, NewExitError(ExitCommandError, fmt.Sprintf("package %s was not loaded", pa.PkgPath))
		}

		file, err := gen.Render(pkg.Name, pa.Artifacts...)
		if err != nil {
			return written, WrapExitError(ExitCommandError, "rendering", err)
		}

		file.Filename = opts.fileName(o, pkg.Name)
		dir := opts.outputDir(o, pkg.Dir)

		results, err := gen.WriteFiles([]gen.GeneratedFile{file}, dir)
		if err != nil {
			return written, WrapExitError(ExitCommandError, "writing "+pa.PkgPath, err)
		}

		enums := make([]string, 0, len(pa.Artifacts))
		for _, a := range pa.Artifacts {
			enums = append(enums, a.Enum.Name())
		}

		for _, r := range results {
			logger.Debug("generated", "path", r.Path, "changed", r.Changed, "enums", len(enums))
			targets[r.Path] = true
			written = append(written, GenFile{Path: r.Path, Package: pa.PkgPath, Enums: enums, Changed: r.Changed})
		}
	}

	for _, path := range slices.Sorted(maps.Keys(o.graph.Packages)) {
		pkg := o.graph.Packages[path]
		if pkg.Dir == "" {
			continue
		}

		stale := filepath.Join(opts.outputDir(o, pkg.Dir), opts.fileName(o, pkg.Name))
		if targets[stale] {
			continue
		}

		removed, err := gen.RemoveStale(stale)
		if err != nil {
			return written, WrapExitError(ExitCommandError, "removing stale output of "+path, err)
		}

		if removed {
			logger.Debug("removed stale file", "path", stale)
			targets[stale] = true
			written = append(written, GenFile{Path: stale, Package: path, Enums: []string{}, Changed: true, Removed: true})
		}
	}

	return written, nil
}

// fileName picks the config file name, then <pkg>_enumarg.go.
func (opts *genOptions) fileName(o *outcome, pkgName string) string {
	if o.cfg.FileName != "" {
		return o.cfg.FileName
	}

	return gen.FileName(pkgName)
}

// outputDir picks --out, then the config output, then the package directory.
func (opts *genOptions) outputDir(o *outcome, pkgDir string) string {
	switch {
	case opts.Out != "":
		return opts.Out
	case o.cfg.Output != "":
		return o.resolve(o.cfg.Output)
	default:
		return pkgDir
	}
}

// watchDirs lists the loaded package directories plus the config directory.
func watchDirs(o *outcome) []string {
	var dirs []string
	if o == nil {
		return dirs
	}

	for _, pkg := range o.graph.Packages {
		if pkg.Dir != "" {
			dirs = append(dirs, pkg.Dir)
		}
	}

	if o.cfgDir != "" {
		dirs = append(dirs, o.cfgDir)
	}

	slices.Sort(dirs)

	return slices.Compact(dirs)
}
