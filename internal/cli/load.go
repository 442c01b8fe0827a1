package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"enumarg-generator/internal/analyze"
	"enumarg-generator/internal/config"
	"enumarg-generator/internal/diagnostic"
	"enumarg-generator/internal/enum"
	"enumarg-generator/internal/source"
)

// loadOptions are the flags shared by commands that load packages.
type loadOptions struct {
	Config string
	Pkg    string
	Dir    string
	Types  []string
	Width  string
	NoFind bool
}

func (o *loadOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&o.Config, "config", "", "config file (default: enumarg.yaml, enumarg.yml or enumarg.toml in . or a parent)")
	flags.StringVar(&o.Pkg, "pkg", "", "package pattern to load (default: config package, then ./...)")
	flags.StringVar(&o.Dir, "dir", "", "directory to resolve package patterns against")
	flags.StringSliceVar(&o.Types, "type", nil, "type to derive, as Name or Name=width (repeatable)")
	flags.StringVar(&o.Width, "width", "", "width for --type entries without one (8, 16, 32, 64)")
	flags.BoolVar(&o.NoFind, "no-config", false, "do not look for a config file")
}

// session is the state one load produced.
type session struct {
	files *source.FileSet
	graph *analyze.EnumGraph
	cfg   *config.File
	// cfgDir is the directory relative config paths resolve against.
	cfgDir string
	descs  []enum.Descriptor
	// diags holds extractor diagnostics, in load order.
	diags diagnostic.Diagnostics
}

// flagWidths parses --type and --width into a width map.
func (o *loadOptions) flagWidths() (map[string]enum.Width, error) {
	out := make(map[string]enum.Width, len(o.Types))

	var fallback *enum.Width
	if o.Width != "" {
		w, err := enum.ParseWidth(o.Width)
		if err != nil {
			return nil, fmt.Errorf("--width: %w", err)
		}

		fallback = &w
	}

	for _, t := range o.Types {
		name, raw, ok := strings.Cut(t, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("--type %q: missing type name", t)
		}

		if !ok {
			if fallback == nil {
				return nil, fmt.Errorf("--type %s: no width (use %s=<width> or --width)", name, name)
			}

			out[name] = *fallback
			continue
		}

		w, err := enum.ParseWidth(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("--type %s: %w", name, err)
		}

		out[name] = w
	}

	if fallback != nil && len(o.Types) == 0 {
		return nil, errors.New("--width requires at least one --type")
	}

	return out, nil
}

// loadConfig resolves the config file; a missing default file yields an
// empty config rooted at the working directory.
func (o *loadOptions) loadConfig(logger *slog.Logger) (*config.File, string, error) {
	path := o.Config
	if path == "" && !o.NoFind {
		found, ok, err := config.Find(".")
		if err != nil {
			return nil, "", err
		}

		if ok {
			path = found
		}
	}

	if path == "" {
		return &config.File{Version: config.CurrentVersion}, "", nil
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, "", err
	}

	logger.Debug("loaded config", "path", path, "enums", len(cfg.Enums))

	return cfg, filepath.Dir(path), nil
}

// load reads config, loads packages and extracts descriptors. Errors are
// command errors; extractor diagnostics are returned in the session.
func (o *loadOptions) load(ctx context.Context, logger *slog.Logger) (*session, error) {
	flags, err := o.flagWidths()
	if err != nil {
		return nil, NewExitError(ExitCommandError, err.Error())
	}

	cfg, cfgDir, err := o.loadConfig(logger)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading config", err)
	}

	pattern, dir := o.Pkg, o.Dir
	switch {
	case pattern != "":
	case cfg.Package != "":
		pattern = cfg.Package
		if dir == "" {
			dir = cfgDir
		}
	default:
		pattern = "./..."
	}

	files := source.NewFileSet()
	a := analyze.NewAnalyzer(files, analyze.WithDir(dir), analyze.WithLogger(logger))

	logger.Debug("loading packages", "pattern", pattern, "dir", dir)

	graph, err := a.LoadPackages(ctx, pattern)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading packages", err)
	}

	descs, diags, err := graph.Descriptors(flags, cfg.Widths())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "resolving widths", err)
	}

	return &session{
		files:  files,
		graph:  graph,
		cfg:    cfg,
		cfgDir: cfgDir,
		descs:  descs,
		diags:  diags,
	}, nil
}

// resolve makes a config-relative path absolute against the config dir.
func (s *session) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || s.cfgDir == "" {
		return path
	}

	return filepath.Join(s.cfgDir, path)
}
