package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(prev any) (any, error) { return prev, nil }

func TestNode_AncestorsNearestFirst(t *testing.T) {
	for _, depth := range []int{0, 1, 2, 7, 50} {
		t.Run(fmt.Sprintf("depth %d", depth), func(t *testing.T) {
			root := NewRoot("root", identity)
			nodes := []*Node{root}
			current := root
			for i := 0; i < depth; i++ {
				current = current.Attach(KindGroup, fmt.Sprintf("n%d", i), identity)
				nodes = append(nodes, current)
			}

			ancestors := current.Ancestors()
			require.Len(t, ancestors, depth+1)
			for i, a := range ancestors {
				assert.Same(t, nodes[len(nodes)-1-i], a)
			}

			// ancestors(N) == N followed by ancestors(parent(N))
			if current.Parent() != nil {
				assert.Equal(t, append([]*Node{current}, current.Parent().Ancestors()...), ancestors)
			}

			roots := 0
			for _, a := range ancestors {
				if a.IsRoot() {
					roots++
				}
			}
			assert.Equal(t, 1, roots)
			assert.Same(t, root, ancestors[len(ancestors)-1])
			assert.Same(t, root, current.Root())
		})
	}
}

func TestNode_RootIsGroup(t *testing.T) {
	root := NewRoot("subject", nil)
	assert.Equal(t, KindGroup, root.Kind())
	assert.True(t, root.IsRoot())
	assert.Nil(t, root.Parent())
}

func TestNode_ChildrenKeepAttachmentOrder(t *testing.T) {
	root := NewRoot("root", identity)
	a := root.Attach(KindGroup, "a", identity)
	b := root.Attach(KindCase, "b", identity)
	c := root.Attach(KindGroup, "c", identity)

	assert.Equal(t, []*Node{a, b, c}, root.Children())
	assert.Same(t, root, b.Parent())
}

func TestNode_Invoke(t *testing.T) {
	root := NewRoot("root", identity)
	should := root.Attach(KindCase, DescriptionShould, identity)
	step := should.Attach(KindStep, "equal", identity)

	assert.False(t, step.Invoked())
	assert.Equal(t, "equal", step.Label())

	require.NoError(t, step.Invoke(5, "x"))
	assert.True(t, step.Invoked())
	assert.Equal(t, []any{5, "x"}, step.Args())
	assert.Equal(t, `equal 5,"x"`, step.Label())

	err := should.Invoke(1)
	assert.ErrorIs(t, err, ErrNotInvocable)
}

func TestNode_InvokeWithoutArguments(t *testing.T) {
	root := NewRoot("root", identity)
	step := root.Attach(KindCase, DescriptionShould, identity).Attach(KindStep, "ok", identity)

	require.NoError(t, step.Invoke())
	assert.True(t, step.Invoked())
	assert.Equal(t, "ok", step.Label())
}

func TestNode_AssertionContext(t *testing.T) {
	root := NewRoot("root", identity)
	group := root.Attach(KindGroup, "fetch", identity)
	should := group.Attach(KindCase, DescriptionShould, identity)
	step := should.Attach(KindStep, "to", identity)
	eventually := group.Attach(KindCase, DescriptionShouldEventually, identity)
	late := eventually.Attach(KindStep, "equal", identity)

	assert.False(t, group.UnderAssertion())
	assert.True(t, should.UnderAssertion())
	assert.True(t, step.UnderAssertion())
	assert.False(t, step.UnderEventually())
	assert.True(t, late.UnderEventually())

	// A group that merely carries the label is not an entry.
	impostor := root.Attach(KindGroup, DescriptionShouldEventually, identity)
	assert.False(t, impostor.UnderEventually())
}

func TestNode_Execute(t *testing.T) {
	double := NewRoot("double", func(prev any) (any, error) { return prev.(int) * 2, nil })
	got, err := double.Execute(21)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	passthrough := NewRoot("nil step", nil)
	got, err = passthrough.Execute("x")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

func TestExecute_Hooks(t *testing.T) {
	boom := errors.New("boom")
	n := NewRoot("failing", func(any) (any, error) { return nil, boom })

	var events []EventType
	var endErr error
	hooks := LifecycleHooks{
		OnStepStart: func(_ context.Context, e *StepEvent) { events = append(events, e.Type) },
		OnStepEnd: func(_ context.Context, e *StepEvent) {
			events = append(events, e.Type)
			endErr = e.Err
		},
	}

	_, err := Execute(context.Background(), hooks, n, nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []EventType{EventStepStart, EventStepEnd}, events)
	assert.ErrorIs(t, endErr, boom)
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := LifecycleHooks{OnRetry: func(context.Context, *RetryEvent) { calls = append(calls, "a") }}
	b := LifecycleHooks{
		OnRetry:     func(context.Context, *RetryEvent) { calls = append(calls, "b") },
		OnStepStart: func(context.Context, *StepEvent) { calls = append(calls, "start") },
	}

	merged := a.Merge(b)
	merged.OnRetry(context.Background(), &RetryEvent{})
	merged.OnStepStart(context.Background(), &StepEvent{})
	assert.Nil(t, merged.OnStepEnd)
	assert.Equal(t, []string{"a", "b", "start"}, calls)
}
