package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/chainspec"
	"github.com/aretw0/chainspec/internal/logging"
	"github.com/aretw0/chainspec/internal/presentation/graph"
	"github.com/aretw0/chainspec/internal/specfile"
	"github.com/aretw0/chainspec/pkg/config"
	"github.com/aretw0/chainspec/pkg/dsl"
	"github.com/aretw0/chainspec/pkg/observability"
	"github.com/aretw0/chainspec/pkg/ports"
	"github.com/aretw0/chainspec/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
)

// Options are the settings shared by every command working on a spec file.
type Options struct {
	File string
	// MaxRetries overrides the configuration when it is not negative.
	MaxRetries int
	Eventually bool
	Debug      bool
	// Delay replaces the sleeping delay, mostly for tests.
	Delay ports.DelayFunc
}

// Project is a compiled spec file ready to run.
type Project struct {
	Spec     *specfile.Spec
	Config   config.Config
	Metrics  *observability.Metrics
	Registry *prometheus.Registry
	Logger   *slog.Logger
	options  []chainspec.Option
}

// Open loads and compiles the spec file of opts.
// Settings are layered: environment, then the config section of the file, then flags.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*Project, error) {
	if logger == nil {
		logger = createLogger(opts.Debug)
	}

	doc, err := specfile.Load(opts.File)
	if err != nil {
		return nil, err
	}
	spec, err := specfile.Compile(ctx, doc, dsl.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.File, err)
	}

	cfg := doc.Config.Apply(config.FromEnv(logger), logger.With("file", opts.File))
	if opts.MaxRetries >= 0 {
		cfg.MaxRetries = opts.MaxRetries
	}
	if opts.Eventually {
		cfg.ShouldMeansEventually = true
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	p := &Project{
		Spec:     spec,
		Config:   cfg,
		Metrics:  metrics,
		Registry: registry,
		Logger:   logger,
	}
	p.options = []chainspec.Option{
		chainspec.WithConfig(cfg),
		chainspec.WithLogger(logger),
		chainspec.WithLifecycleHooks(metrics.Hooks()),
	}
	if opts.Debug {
		p.options = append(p.options, chainspec.WithLifecycleHooks(logging.DebugHooks(logger)))
	}
	if opts.Delay != nil {
		p.options = append(p.options, chainspec.WithDelay(opts.Delay))
	}
	return p, nil
}

// Run realizes the spec into a fresh suite and runs it.
func (p *Project) Run(ctx context.Context) (*runner.Report, error) {
	return chainspec.Run(ctx, p.Spec.Root, p.options...)
}

// Graph renders the action tree, styling the cases of last when given.
func (p *Project) Graph(last *runner.Report) string {
	if last == nil {
		return graph.GenerateMermaid(p.Spec.Root, nil)
	}
	overlay := &graph.Overlay{}
	for _, c := range last.Cases {
		if c.Status == runner.StatusPassed {
			overlay.Passed = append(overlay.Passed, c.FullName())
		} else {
			overlay.Failed = append(overlay.Failed, c.FullName())
		}
	}
	return graph.GenerateMermaid(p.Spec.Root, overlay)
}

// Close releases the subject source.
func (p *Project) Close() error {
	return p.Spec.Close()
}
