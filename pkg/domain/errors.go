package domain

import (
	"errors"
	"fmt"
)

// ErrMissingMember is returned when a value lacks a member or has it in the wrong shape.
var ErrMissingMember = errors.New("missing member")

// ErrReservedMember is returned when a builder is asked for an introspection member name.
var ErrReservedMember = errors.New("reserved member name")

// ErrNotInvocable is returned when call arguments are recorded on a node that is not a step.
var ErrNotInvocable = errors.New("node is not invocable")

// ErrStepOutsideCase is returned when a step node is attached directly under a group.
var ErrStepOutsideCase = errors.New("step outside of a case")

// ErrUnknownKind is returned when realization meets a node kind it does not know.
var ErrUnknownKind = errors.New("unknown node kind")

// MemberError describes a failed checked-member lookup.
type MemberError struct {
	Name   string
	Want   MemberKind
	Target string // type of the value the member was looked up on
	Reason string
}

func (e *MemberError) Error() string {
	msg := fmt.Sprintf("%s %q on %s", e.Want, e.Name, e.Target)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return fmt.Sprintf("%v: %s", ErrMissingMember, msg)
}

func (e *MemberError) Unwrap() error { return ErrMissingMember }

// AssertionError is the distinguished failure kind of the assertion engine.
type AssertionError struct {
	Message  string
	Expected any
	Actual   any
}

func (e *AssertionError) Error() string { return e.Message }

// Annotated returns a copy whose message carries the expected and actual values.
func (e *AssertionError) Annotated() *AssertionError {
	return &AssertionError{
		Message:  fmt.Sprintf("expected: %s   actual: %s", RenderValue(e.Expected), RenderValue(e.Actual)),
		Expected: e.Expected,
		Actual:   e.Actual,
	}
}

// Failure classifies an error returned by a step.
type Failure int

const (
	FailureNone Failure = iota
	FailureAssertion
	FailureOther
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureAssertion:
		return "assertion"
	default:
		return "other"
	}
}

// Classify sorts err into assertion failures and everything else.
func Classify(err error) Failure {
	if err == nil {
		return FailureNone
	}
	var ae *AssertionError
	if errors.As(err, &ae) {
		return FailureAssertion
	}
	return FailureOther
}

// Annotate rewrites assertion failures with their expected and actual values.
// Other errors are returned unchanged.
func Annotate(err error) error {
	var ae *AssertionError
	if errors.As(err, &ae) {
		return ae.Annotated()
	}
	return err
}

// RetryError reports an error that ended a retry loop after an earlier assertion failure.
// It unwraps to the latest error so classification follows it.
type RetryError struct {
	Attempts  int
	Last      error
	Assertion *AssertionError
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("after %d attempt(s): %v (previous assertion failure: %s)", e.Attempts, e.Last, e.Assertion.Annotated().Message)
}

func (e *RetryError) Unwrap() error { return e.Last }
