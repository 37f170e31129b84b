package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Failure
	}{
		{"nil", nil, FailureNone},
		{"assertion", &AssertionError{Message: "nope"}, FailureAssertion},
		{"wrapped assertion", fmt.Errorf("step: %w", &AssertionError{}), FailureAssertion},
		{"missing member", &MemberError{Name: "x", Want: MemberProperty, Target: "int"}, FailureOther},
		{"plain", errors.New("io"), FailureOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestAnnotate(t *testing.T) {
	err := Annotate(fmt.Errorf("wrapped: %w", &AssertionError{Message: "x", Expected: 5, Actual: 4}))
	assert.EqualError(t, err, "expected: 5   actual: 4")

	var ae *AssertionError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, 5, ae.Expected)

	plain := errors.New("plain")
	assert.Same(t, plain, Annotate(plain))
}

func TestMemberError(t *testing.T) {
	err := &MemberError{Name: "len", Want: MemberFunction, Target: "string", Reason: "not a method"}
	assert.ErrorIs(t, err, ErrMissingMember)
	assert.Contains(t, err.Error(), `function "len" on string`)
}

func TestRetryError(t *testing.T) {
	unavailable := errors.New("unavailable")
	err := &RetryError{
		Attempts:  3,
		Last:      unavailable,
		Assertion: &AssertionError{Expected: "up", Actual: "down"},
	}

	assert.ErrorIs(t, err, unavailable)
	assert.Equal(t, FailureOther, Classify(err))
	assert.Contains(t, err.Error(), `expected: "up"   actual: "down"`)
}
