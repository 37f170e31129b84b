package ports

import "github.com/aretw0/chainspec/pkg/domain"

// Asserter is the assertion engine behind "should" chains.
type Asserter interface {
	// Expect returns an assertion context for subject.
	// The context is the previous result of the first step of every assertion chain.
	Expect(subject any) any

	// Member looks up name on value with the expected shape.
	// It fails with a *domain.MemberError when the member is missing or has another shape.
	// Assertions that fail report a *domain.AssertionError.
	Member(value any, name string, kind domain.MemberKind) (any, error)
}
