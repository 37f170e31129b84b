package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/chainspec/pkg/domain"
	"github.com/aretw0/chainspec/pkg/ports"
)

// GroupPrefix starts the label of every group block.
const GroupPrefix = "when doing "

// Realizer turns an action tree into spec runner registrations.
type Realizer struct {
	runner  ports.SpecRunner
	retrier *Retrier
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// RealizerOption configures a Realizer.
type RealizerOption func(*Realizer)

// WithLifecycleHooks registers observability hooks for group and case steps.
func WithLifecycleHooks(hooks domain.LifecycleHooks) RealizerOption {
	return func(r *Realizer) {
		r.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) RealizerOption {
	return func(r *Realizer) {
		r.logger = logger
	}
}

// NewRealizer creates a realizer registering into runner and executing steps through retrier.
func NewRealizer(runner ports.SpecRunner, retrier *Retrier, opts ...RealizerOption) *Realizer {
	r := &Realizer{
		runner:  runner,
		retrier: retrier,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Realize validates the tree under root and registers it with the spec runner.
// Nothing executes until the runner drives the registered hooks and cases.
func (r *Realizer) Realize(ctx context.Context, root *domain.Node) error {
	if err := Validate(root); err != nil {
		return err
	}
	r.logger.DebugContext(ctx, "realizing tree", "root", root.Description())
	r.deferred(ctx, root, func() any { return nil })
	return nil
}

// Validate checks that every step node sits below a case.
func Validate(root *domain.Node) error {
	return validate(root, false)
}

func validate(n *domain.Node, inCase bool) error {
	switch n.Kind() {
	case domain.KindGroup:
	case domain.KindCase:
		inCase = true
	case domain.KindStep:
		if !inCase {
			return fmt.Errorf("%w: %q under %q", domain.ErrStepOutsideCase, n.Label(), n.Parent().Label())
		}
	default:
		return fmt.Errorf("%w: %s at %q", domain.ErrUnknownKind, n.Kind(), n.Label())
	}
	for _, c := range n.Children() {
		if err := validate(c, inCase); err != nil {
			return err
		}
	}
	return nil
}

// deferred registers n as a block whose execution happens later.
func (r *Realizer) deferred(ctx context.Context, n *domain.Node, prev func() any) {
	switch n.Kind() {
	case domain.KindGroup:
		r.group(ctx, n, prev)
	case domain.KindCase:
		r.kase(ctx, n, prev)
	}
}

func (r *Realizer) group(ctx context.Context, n *domain.Node, prev func() any) {
	r.runner.Describe(GroupPrefix+n.Label(), func() {
		var result any
		r.runner.Before(func() error {
			v, err := domain.Execute(ctx, r.hooks, n, prev())
			if err != nil {
				return fmt.Errorf("%s%s: %w", GroupPrefix, n.Label(), err)
			}
			result = v
			return nil
		})

		current := func() any { return result }
		for _, c := range n.Children() {
			r.deferred(ctx, c, current)
		}
	})
}

func (r *Realizer) kase(ctx context.Context, n *domain.Node, prev func() any) {
	r.runner.It(CaseLabel(n), func() error {
		v, err := domain.Execute(ctx, r.hooks, n, prev())
		if err != nil {
			return domain.Annotate(err)
		}
		return r.children(ctx, n, v)
	})
}

// immediate executes n and its subtree right away. Steps go through the retry engine.
func (r *Realizer) immediate(ctx context.Context, n *domain.Node, prev any) error {
	var (
		v   any
		err error
	)
	if n.Kind() == domain.KindStep {
		v, err = r.retrier.Execute(ctx, n, prev)
	} else {
		v, err = domain.Execute(ctx, r.hooks, n, prev)
		err = domain.Annotate(err)
	}
	if err != nil {
		return err
	}
	return r.children(ctx, n, v)
}

func (r *Realizer) children(ctx context.Context, n *domain.Node, result any) error {
	for _, c := range n.Children() {
		if err := r.immediate(ctx, c, result); err != nil {
			return err
		}
	}
	return nil
}

// CaseLabel joins the labels along the single-child spine starting at n.
func CaseLabel(n *domain.Node) string {
	var chunks []string
	for current := n; current != nil; {
		chunks = append(chunks, current.Label())
		children := current.Children()
		if len(children) != 1 {
			break
		}
		current = children[0]
	}
	return strings.Join(chunks, " ")
}
