package ports

import "context"

// SubjectSource produces the subject value of a spec.
// Sources are fetched again on every retry of an eventual assertion.
type SubjectSource interface {
	Fetch(ctx context.Context) (any, error)
}

// SourceFunc adapts a function to SubjectSource.
type SourceFunc func(ctx context.Context) (any, error)

// Fetch implements SubjectSource.
func (f SourceFunc) Fetch(ctx context.Context) (any, error) { return f(ctx) }
