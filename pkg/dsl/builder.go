package dsl

import (
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/chainspec/pkg/assertion"
	"github.com/aretw0/chainspec/pkg/domain"
	"github.com/aretw0/chainspec/pkg/ports"
)

// Builder owns the tree under construction.
type Builder struct {
	root     *domain.Node
	asserter ports.Asserter
	logger   *slog.Logger
	err      error
}

// Option configures a Builder.
type Option func(*Builder)

// WithAsserter sets the assertion engine used by synthesized steps.
func WithAsserter(a ports.Asserter) Option {
	return func(b *Builder) {
		b.asserter = a
	}
}

// WithLogger sets the logger receiving node creation traces.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates a builder whose root group runs step to produce the subject.
func New(description string, step domain.StepFunc, opts ...Option) *Builder {
	b := &Builder{
		root: domain.NewRoot(description, step),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.asserter == nil {
		b.asserter = assertion.New()
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b
}

// Subject returns the handle of the root node.
func (b *Builder) Subject() *Handle {
	return &Handle{node: b.root, builder: b}
}

// Root returns the root node, even when the build recorded an error.
func (b *Builder) Root() *domain.Node { return b.root }

// Err returns the errors recorded while chaining.
func (b *Builder) Err() error { return b.err }

// Build returns the root of the tree, or the errors recorded while chaining.
func (b *Builder) Build() (*domain.Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.root, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
		return
	}
	b.err = errors.Join(b.err, err)
}
