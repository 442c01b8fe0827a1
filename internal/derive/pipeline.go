package derive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"enumarg-generator/internal/capability"
	"enumarg-generator/internal/diagnostic"
	"enumarg-generator/internal/enum"
	"enumarg-generator/internal/gen"
	"enumarg-generator/internal/report"
)

// ErrDiagnostics is returned by Result.Err when a run produced
// error-severity diagnostics.
var ErrDiagnostics = errors.New("derivation failed")

// Pipeline derives many declarations against one capability registry.
type Pipeline struct {
	registry *capability.Registry
	reporter *report.Reporter
	logger   *slog.Logger
	limit    int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for progress output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithConcurrency bounds the number of declarations derived at once.
// Values below 1 mean GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) { p.limit = n }
}

// New creates a pipeline that records realized capabilities in registry.
func New(registry *capability.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: registry,
		reporter: report.New(registry),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.limit < 1 {
		p.limit = runtime.GOMAXPROCS(0)
	}

	return p
}

// Result holds everything one run produced.
type Result struct {
	// Outcomes in declaration order.
	Outcomes []Outcome
	// Diagnostics in declaration order; for each failed declaration the
	// validation failures come first, then missing capabilities.
	Diagnostics diagnostic.Diagnostics
}

// Artifacts returns the synthesized artifacts in declaration order.
func (r *Result) Artifacts() []*gen.Artifacts {
	var out []*gen.Artifacts
	for _, o := range r.Outcomes {
		if o.OK() {
			out = append(out, o.Artifacts)
		}
	}

	return out
}

// Failed returns the number of declarations that were not synthesized.
func (r *Result) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK() {
			n++
		}
	}

	return n
}

// Err returns an error wrapping ErrDiagnostics if any diagnostic is an error.
func (r *Result) Err() error {
	if !r.Diagnostics.HasErrors() {
		return nil
	}

	return fmt.Errorf("%w: %d error(s) in %d declaration(s)", ErrDiagnostics, len(r.Diagnostics.Errors()), r.Failed())
}

// Run derives every descriptor. Derivation runs in parallel; registration
// and reporting happen afterwards, in the order of descs. Registry entries
// for the derived declarations are replaced; others are kept. A non-nil error
// means the run was cancelled; domain failures are reported through
// Result.Diagnostics.
func (p *Pipeline) Run(ctx context.Context, descs []enum.Descriptor) (*Result, error) {
	outcomes := make([]Outcome, len(descs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for i, d := range descs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			outcomes[i] = Derive(d)
			p.logger.Debug("derived",
				"enum", d.QualifiedName(),
				"width", d.Width.Scalar(),
				"ok", outcomes[i].OK())

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("deriving: %w", err)
	}

	// Seeded entries for a re-derived declaration are stale: this run's
	// outcome replaces them, and a failure realizes nothing.
	for _, d := range descs {
		p.registry.Forget(d.PkgPath, d.Name, d.Width)
	}

	for _, o := range outcomes {
		if o.OK() {
			p.registry.Register(o.Artifacts)
		}
	}

	res := &Result{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.OK() {
			continue
		}

		res.Diagnostics.Add(p.reporter.Failures(o.Descriptor, o.Failures)...)
		res.Diagnostics.Add(p.reporter.MissingCapabilities(o.Descriptor, p.registry.Missing(o.Descriptor))...)
	}

	p.logger.Info("derivation finished",
		"enums", len(descs),
		"synthesized", len(descs)-res.Failed(),
		"diagnostics", res.Diagnostics.Len())

	return res, nil
}

// PackageArtifacts groups artifacts that belong in one generated file.
type PackageArtifacts struct {
	PkgPath   string
	Artifacts []*gen.Artifacts
}

// ByPackage groups the synthesized artifacts by package, packages in order
// of first appearance.
func (r *Result) ByPackage() []PackageArtifacts {
	var out []PackageArtifacts

	index := make(map[string]int)
	for _, a := range r.Artifacts() {
		pkg := a.Enum.PkgPath()

		i, ok := index[pkg]
		if !ok {
			i = len(out)
			index[pkg] = i
			out = append(out, PackageArtifacts{PkgPath: pkg})
		}

		out[i].Artifacts = append(out[i].Artifacts, a)
	}

	return out
}
