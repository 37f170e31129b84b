package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepStart EventType = "step_start"
	EventStepEnd   EventType = "step_end"
	EventRetry     EventType = "retry"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent represents the start or end of a node execution.
type StepEvent struct {
	EventBase
	Description string        `json:"description"`
	Kind        Kind          `json:"kind"`
	Duration    time.Duration `json:"duration,omitempty"`
	Err         error         `json:"-"`
	Node        *Node         `json:"-"`
}

// RetryEvent is emitted before each retry attempt of an assertion step.
type RetryEvent struct {
	EventBase
	Description string `json:"description"`
	Attempt     int    `json:"attempt"`
	Max         int    `json:"max"`
	Err         error  `json:"-"`
}

// LifecycleHooks defines callbacks for execution observability.
type LifecycleHooks struct {
	OnStepStart func(context.Context, *StepEvent)
	OnStepEnd   func(context.Context, *StepEvent)
	OnRetry     func(context.Context, *RetryEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStepStart: chain(h.OnStepStart, other.OnStepStart),
		OnStepEnd:   chain(h.OnStepEnd, other.OnStepEnd),
		OnRetry:     chain(h.OnRetry, other.OnRetry),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

// Execute runs n against prev and reports it through the hooks.
func Execute(ctx context.Context, hooks LifecycleHooks, n *Node, prev any) (any, error) {
	if hooks.OnStepStart != nil {
		hooks.OnStepStart(ctx, &StepEvent{
			EventBase:   EventBase{Timestamp: time.Now(), Type: EventStepStart},
			Description: n.Label(),
			Kind:        n.Kind(),
			Node:        n,
		})
	}

	start := time.Now()
	result, err := n.Execute(prev)

	if hooks.OnStepEnd != nil {
		hooks.OnStepEnd(ctx, &StepEvent{
			EventBase:   EventBase{Timestamp: time.Now(), Type: EventStepEnd},
			Description: n.Label(),
			Kind:        n.Kind(),
			Duration:    time.Since(start),
			Err:         err,
			Node:        n,
		})
	}
	return result, err
}
