package runtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/chainspec/pkg/config"
	"github.com/aretw0/chainspec/pkg/domain"
	"github.com/aretw0/chainspec/pkg/ports"
)

// Retrier executes assertion steps and retries eventual ones.
type Retrier struct {
	cfg    config.Config
	delay  ports.DelayFunc
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// RetrierOption configures a Retrier.
type RetrierOption func(*Retrier)

// WithDelay sets the primitive that waits before each retry attempt.
func WithDelay(delay ports.DelayFunc) RetrierOption {
	return func(r *Retrier) {
		r.delay = delay
	}
}

// WithRetryHooks registers observability hooks.
func WithRetryHooks(hooks domain.LifecycleHooks) RetrierOption {
	return func(r *Retrier) {
		r.hooks = hooks
	}
}

// WithRetryLogger sets the logger receiving retry progress.
func WithRetryLogger(logger *slog.Logger) RetrierOption {
	return func(r *Retrier) {
		r.logger = logger
	}
}

// NewRetrier creates a retry engine. An invalid configuration is replaced by
// the defaults with a warning.
func NewRetrier(cfg config.Config, opts ...RetrierOption) *Retrier {
	r := &Retrier{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := cfg.Validate(); err != nil {
		r.logger.Warn("invalid retry configuration, using defaults", "err", err)
		r.cfg = config.Default()
		r.cfg.ShouldMeansEventually = cfg.ShouldMeansEventually
	}
	if r.delay == nil {
		r.delay = SleepDelay(r.cfg.RetryInterval)
	}
	return r
}

// SleepDelay waits d and then runs the attempt.
func SleepDelay(d time.Duration) ports.DelayFunc {
	return func(attempt func() error) error {
		time.Sleep(d)
		return attempt()
	}
}

// ImmediateDelay runs the attempt right away.
func ImmediateDelay(attempt func() error) error { return attempt() }

// Execute runs the step of n against prev.
//
// An assertion failure of a node under shouldEventually (or any should chain
// when ShouldMeansEventually is set) is retried up to MaxRetries times. Each
// attempt replays the ancestors of n root-first to recompute the previous
// result, then runs n again. Assertion failures that end execution are
// annotated with their expected and actual values.
func (r *Retrier) Execute(ctx context.Context, n *domain.Node, prev any) (any, error) {
	result, err := domain.Execute(ctx, r.hooks, n, prev)
	if err == nil {
		return result, nil
	}
	if domain.Classify(err) != domain.FailureAssertion || !r.eligible(n) {
		return nil, domain.Annotate(err)
	}

	var last *domain.AssertionError
	errors.As(err, &last)

	for attempt := 1; attempt <= r.cfg.MaxRetries; attempt++ {
		r.logger.InfoContext(ctx, "assertion failed; retrying",
			"step", n.Label(), "attempt", attempt, "max", r.cfg.MaxRetries)
		if r.hooks.OnRetry != nil {
			r.hooks.OnRetry(ctx, &domain.RetryEvent{
				EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventRetry},
				Description: n.Label(),
				Attempt:     attempt,
				Max:         r.cfg.MaxRetries,
				Err:         err,
			})
		}

		err = r.delay(func() error {
			replayed, err := r.replay(ctx, n.Parent())
			if err != nil {
				return err
			}
			result, err = domain.Execute(ctx, r.hooks, n, replayed)
			return err
		})
		if err == nil {
			return result, nil
		}

		if domain.Classify(err) != domain.FailureAssertion {
			r.logger.DebugContext(ctx, "retry stopped by non-assertion failure", "step", n.Label(), "err", err)
			return nil, &domain.RetryError{Attempts: attempt + 1, Last: err, Assertion: last}
		}
		errors.As(err, &last)
	}

	return nil, domain.Annotate(err)
}

func (r *Retrier) eligible(n *domain.Node) bool {
	return n.UnderEventually() || (r.cfg.ShouldMeansEventually && n.UnderAssertion())
}

// replay re-executes from the root down to n, returning n's result.
func (r *Retrier) replay(ctx context.Context, n *domain.Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	ancestors := n.Ancestors()
	var prev any
	for i := len(ancestors) - 1; i >= 0; i-- {
		result, err := domain.Execute(ctx, r.hooks, ancestors[i], prev)
		if err != nil {
			return nil, err
		}
		prev = result
	}
	return prev, nil
}
