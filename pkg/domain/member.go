package domain

// MemberKind is the expected shape of a member.
type MemberKind string

const (
	MemberFunction MemberKind = "function"
	MemberProperty MemberKind = "property"
)

// Callable is a function-valued member resolved by a checked lookup.
type Callable func(args ...any) (any, error)
