package chainspec_test

import (
	"context"
	"testing"

	"github.com/aretw0/chainspec"
	"github.com/aretw0/chainspec/pkg/assertion"
	"github.com/aretw0/chainspec/pkg/config"
	"github.com/aretw0/chainspec/pkg/domain"
	"github.com/aretw0/chainspec/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter(values ...int) (domain.StepFunc, *int) {
	calls := 0
	return func(any) (any, error) {
		i := calls
		if i >= len(values) {
			i = len(values) - 1
		}
		calls++
		return map[string]any{"count": values[i]}, nil
	}, &calls
}

func immediate(attempt func() error) error { return attempt() }

func TestSpec_Run(t *testing.T) {
	step, calls := counter(1, 2, 5)
	var retries []int
	var ended int

	spec := chainspec.New("reading the counter", step,
		chainspec.WithConfig(config.Config{MaxRetries: 5}),
		chainspec.WithDelay(immediate),
		chainspec.WithLifecycleHooks(domain.LifecycleHooks{
			OnRetry: func(_ context.Context, e *domain.RetryEvent) { retries = append(retries, e.Attempt) },
		}),
		chainspec.WithLifecycleHooks(domain.LifecycleHooks{
			OnStepEnd: func(context.Context, *domain.StepEvent) { ended++ },
		}),
	)
	count := spec.Subject().Get("count")
	count.ShouldEventually().Call("equal", 5)
	count.Should().Call("above", 0)

	report, err := spec.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Cases, 2)
	assert.True(t, report.OK(), "%+v", report.Cases)
	assert.Equal(t, []int{1, 2}, retries)
	assert.Equal(t, 3, *calls)
	assert.Positive(t, ended)
}

func TestSpec_ConfigFromEnvironment(t *testing.T) {
	t.Setenv(config.EnvShouldMeansEventually, "true")
	t.Setenv(config.EnvMaxRetries, "1")

	step, _ := counter(4, 5)
	spec := chainspec.New("reading the counter", step, chainspec.WithDelay(immediate))
	spec.Subject().Get("count").Should().Call("equal", 5)

	report, err := spec.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK(), "%+v", report.Cases)
}

func TestSpec_RealizeIntoSuite(t *testing.T) {
	step, calls := counter(5)
	spec := chainspec.New("reading the counter", step, chainspec.WithConfig(config.Default()))
	spec.Subject().Get("count").Should().Call("equal", 5)

	suite := runner.NewSuite()
	require.NoError(t, spec.Realize(context.Background(), suite))
	assert.Equal(t, 1, suite.Len())
	assert.Zero(t, *calls, "realization executes nothing")

	runner.RunT(t, suite)
	assert.Equal(t, 1, *calls)
}

func TestSpec_BuildErrors(t *testing.T) {
	spec := chainspec.New("subject", nil, chainspec.WithConfig(config.Default()))
	spec.Subject().Get("inspect")

	_, err := spec.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrReservedMember)
	assert.ErrorIs(t, spec.Realize(context.Background(), runner.NewSuite()), domain.ErrReservedMember)
}

func TestSpec_WithAsserter(t *testing.T) {
	recorder := &recordingAsserter{Engine: assertion.New()}
	spec := chainspec.New("subject", func(any) (any, error) { return 5, nil },
		chainspec.WithConfig(config.Default()),
		chainspec.WithAsserter(recorder),
	)
	spec.Subject().Should().Call("equal", 5)

	report, err := spec.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, []any{5}, recorder.subjects)
}

func TestRun_InvalidTree(t *testing.T) {
	root := domain.NewRoot("subject", nil)
	root.Attach(domain.KindStep, "equal", nil)

	_, err := chainspec.Run(context.Background(), root, chainspec.WithConfig(config.Default()))
	assert.ErrorIs(t, err, domain.ErrStepOutsideCase)
}

type recordingAsserter struct {
	assertion.Engine
	subjects []any
}

func (r *recordingAsserter) Expect(subject any) any {
	r.subjects = append(r.subjects, subject)
	return r.Engine.Expect(subject)
}
