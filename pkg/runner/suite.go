package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Suite implements ports.SpecRunner by recording registrations and running them later.
// A Suite is not safe for concurrent use.
type Suite struct {
	root    *group
	current *group
	logger  *slog.Logger
	running bool
}

type group struct {
	name    string
	parent  *group
	befores []func() error
	items   []item
}

// item is either a nested group or a case.
type item struct {
	group *group
	kase  *testCase
}

type testCase struct {
	name string
	body func() error
}

// Option configures a Suite.
type Option func(*Suite)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Suite) {
		s.logger = logger
	}
}

// NewSuite creates an empty suite.
func NewSuite(opts ...Option) *Suite {
	root := &group{}
	s := &Suite{root: root, current: root}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Describe opens a group and runs body immediately to register its content.
func (s *Suite) Describe(name string, body func()) {
	g := &group{name: name, parent: s.current}
	s.current.items = append(s.current.items, item{group: g})

	s.current = g
	defer func() { s.current = g.parent }()
	body()
}

// Before registers a setup hook of the current group.
func (s *Suite) Before(fn func() error) {
	s.current.befores = append(s.current.befores, fn)
}

// It registers a case in the current group.
func (s *Suite) It(name string, body func() error) {
	s.current.items = append(s.current.items, item{kase: &testCase{name: name, body: body}})
}

// Len returns the number of registered cases.
func (s *Suite) Len() int { return s.root.cases() }

// Groups returns the number of registered groups.
func (s *Suite) Groups() int { return s.root.groups() }

// Run executes every registered case in registration order.
// Setup hooks of a group run once, before its first case, and only if the group
// contains cases. A failing hook marks every case below it as errored.
// Cancelling ctx skips the cases that have not started yet.
func (s *Suite) Run(ctx context.Context) *Report {
	report := &Report{}
	if s.running {
		return report
	}
	s.running = true
	defer func() { s.running = false }()

	start := time.Now()
	s.runGroup(ctx, s.root, nil, nil, report)
	report.Duration = time.Since(start)

	s.logger.Info("suite finished",
		"cases", len(report.Cases),
		"passed", report.Passed(),
		"failed", report.Failed(),
		"duration", report.Duration)
	return report
}

func (s *Suite) runGroup(ctx context.Context, g *group, path []string, inherited error, report *Report) {
	if g.cases() == 0 {
		return
	}
	if g.name != "" {
		path = append(path[:len(path):len(path)], g.name)
	}

	setupErr := inherited
	if setupErr == nil {
		for _, before := range g.befores {
			if err := protect(before); err != nil {
				s.logger.Debug("setup failed", "group", g.name, "err", err)
				setupErr = err
				break
			}
		}
	}

	for _, it := range g.items {
		if it.group != nil {
			s.runGroup(ctx, it.group, path, setupErr, report)
			continue
		}
		report.Cases = append(report.Cases, s.runCase(ctx, it.kase, path, setupErr))
	}
}

func (s *Suite) runCase(ctx context.Context, c *testCase, path []string, setupErr error) CaseResult {
	result := CaseResult{Path: path, Name: c.name}

	switch {
	case ctx.Err() != nil:
		result.Status = StatusSkipped
		result.setErr(ctx.Err())
	case setupErr != nil:
		result.Status = StatusErrored
		result.setErr(setupErr)
	default:
		start := time.Now()
		err := protect(c.body)
		result.Duration = time.Since(start)
		if err != nil {
			result.Status = StatusFailed
			result.setErr(err)
		} else {
			result.Status = StatusPassed
		}
	}

	s.logger.Debug("case finished", "case", result.FullName(), "status", result.Status, "err", result.Err)
	return result
}

// protect turns a panic inside fn into an error.
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func (g *group) cases() int {
	n := 0
	for _, it := range g.items {
		if it.kase != nil {
			n++
		} else {
			n += it.group.cases()
		}
	}
	return n
}

func (g *group) groups() int {
	n := 0
	for _, it := range g.items {
		if it.group != nil {
			n += 1 + it.group.groups()
		}
	}
	return n
}
