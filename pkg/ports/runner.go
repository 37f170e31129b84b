package ports

// SpecRunner registers executable blocks. All three primitives nest.
type SpecRunner interface {
	// Describe opens a named group and runs body immediately to register its content.
	Describe(name string, body func())

	// Before registers a setup hook that runs once before the cases of the current group.
	Before(fn func() error)

	// It registers a named case whose body runs when the suite executes.
	It(name string, body func() error)
}

// DelayFunc runs attempt at least once, now or after some delay,
// and returns whatever attempt returns.
type DelayFunc func(attempt func() error) error
