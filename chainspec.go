package chainspec

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/chainspec/internal/runtime"
	"github.com/aretw0/chainspec/pkg/config"
	"github.com/aretw0/chainspec/pkg/domain"
	"github.com/aretw0/chainspec/pkg/dsl"
	"github.com/aretw0/chainspec/pkg/ports"
	"github.com/aretw0/chainspec/pkg/runner"
)

// Version is set at build time.
var Version = "dev"

// Spec is the high-level entry point of the library.
// It owns one action tree and the settings used to realize it.
type Spec struct {
	builder  *dsl.Builder
	settings settings
}

type settings struct {
	cfg      *config.Config
	delay    ports.DelayFunc
	hooks    domain.LifecycleHooks
	asserter ports.Asserter
	logger   *slog.Logger
}

// Option defines a functional option for configuring a Spec.
type Option func(*settings)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithConfig replaces the configuration read from the environment.
func WithConfig(cfg config.Config) Option {
	return func(s *settings) {
		s.cfg = &cfg
	}
}

// WithDelay sets the primitive waiting before each retry attempt.
func WithDelay(delay ports.DelayFunc) Option {
	return func(s *settings) {
		s.delay = delay
	}
}

// WithAsserter replaces the default assertion engine.
func WithAsserter(a ports.Asserter) Option {
	return func(s *settings) {
		s.asserter = a
	}
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.cfg == nil {
		cfg := config.FromEnv(s.logger)
		s.cfg = &cfg
	}
	return s
}

// New creates a spec whose subject is produced by step.
// Without WithConfig the retry settings come from the environment.
func New(description string, step domain.StepFunc, opts ...Option) *Spec {
	s := newSettings(opts)
	dslOpts := []dsl.Option{dsl.WithLogger(s.logger)}
	if s.asserter != nil {
		dslOpts = append(dslOpts, dsl.WithAsserter(s.asserter))
	}
	return &Spec{
		builder:  dsl.New(description, step, dslOpts...),
		settings: s,
	}
}

// FromSource creates a spec whose subject is fetched from src on every run and retry.
func FromSource(ctx context.Context, description string, src ports.SubjectSource, opts ...Option) *Spec {
	return New(description, func(any) (any, error) {
		return src.Fetch(ctx)
	}, opts...)
}

// Subject returns the handle of the root node, the start of every chain.
func (s *Spec) Subject() *dsl.Handle {
	return s.builder.Subject()
}

// Build returns the action tree, or the errors recorded while chaining.
func (s *Spec) Build() (*domain.Node, error) {
	return s.builder.Build()
}

// Realize registers the tree with r. Nothing executes until r runs.
func (s *Spec) Realize(ctx context.Context, r ports.SpecRunner) error {
	root, err := s.Build()
	if err != nil {
		return err
	}
	return realize(ctx, root, r, s.settings)
}

// Run realizes the tree into a fresh runner.Suite and runs it.
func (s *Spec) Run(ctx context.Context) (*runner.Report, error) {
	root, err := s.Build()
	if err != nil {
		return nil, err
	}
	return run(ctx, root, s.settings)
}

// Realize registers an existing tree with r.
func Realize(ctx context.Context, root *domain.Node, r ports.SpecRunner, opts ...Option) error {
	return realize(ctx, root, r, newSettings(opts))
}

// Run realizes an existing tree into a fresh runner.Suite and runs it.
func Run(ctx context.Context, root *domain.Node, opts ...Option) (*runner.Report, error) {
	return run(ctx, root, newSettings(opts))
}

func realize(ctx context.Context, root *domain.Node, r ports.SpecRunner, s settings) error {
	retryOpts := []runtime.RetrierOption{
		runtime.WithRetryHooks(s.hooks),
		runtime.WithRetryLogger(s.logger),
	}
	if s.delay != nil {
		retryOpts = append(retryOpts, runtime.WithDelay(s.delay))
	}
	retrier := runtime.NewRetrier(*s.cfg, retryOpts...)
	return runtime.NewRealizer(r, retrier,
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithLogger(s.logger),
	).Realize(ctx, root)
}

func run(ctx context.Context, root *domain.Node, s settings) (*runner.Report, error) {
	suite := runner.NewSuite(runner.WithLogger(s.logger))
	if err := realize(ctx, root, suite, s); err != nil {
		return nil, err
	}
	return suite.Run(ctx), nil
}
