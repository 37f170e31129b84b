package assertion

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/chainspec/pkg/domain"
	"github.com/stretchr/testify/assert"
)

// Engine is the default assertion engine.
type Engine struct{}

// New returns the default assertion engine.
func New() Engine { return Engine{} }

// Expect implements ports.Asserter.
func (Engine) Expect(subject any) any { return Expect(subject) }

// Member implements ports.Asserter.
func (Engine) Member(value any, name string, kind domain.MemberKind) (any, error) {
	return Member(value, name, kind)
}

// Assertion is the context of an assertion chain.
// Language chains return the assertion itself; assertions return it too on success
// so chains can continue with And.
type Assertion struct {
	subject any
	negate  bool
}

// Expect starts an assertion chain on subject.
func Expect(subject any) *Assertion {
	return &Assertion{subject: subject}
}

// Subject returns the value under assertion.
func (a *Assertion) Subject() any { return a.subject }

// Language chains.

func (a *Assertion) To() *Assertion    { return a }
func (a *Assertion) Be() *Assertion    { return a }
func (a *Assertion) Been() *Assertion  { return a }
func (a *Assertion) Is() *Assertion    { return a }
func (a *Assertion) That() *Assertion  { return a }
func (a *Assertion) Which() *Assertion { return a }
func (a *Assertion) And() *Assertion   { return a }
func (a *Assertion) Has() *Assertion   { return a }
func (a *Assertion) Have() *Assertion  { return a }
func (a *Assertion) With() *Assertion  { return a }
func (a *Assertion) At() *Assertion    { return a }
func (a *Assertion) Of() *Assertion    { return a }
func (a *Assertion) Same() *Assertion  { return a }
func (a *Assertion) Does() *Assertion  { return a }
func (a *Assertion) Still() *Assertion { return a }

// Deep is accepted for readability; Eql is always deep.
func (a *Assertion) Deep() *Assertion { return a }

// Not negates every assertion that follows in the chain.
func (a *Assertion) Not() *Assertion {
	return &Assertion{subject: a.subject, negate: !a.negate}
}

// Property assertions.

// True asserts the subject is the boolean true.
func (a *Assertion) True() (*Assertion, error) {
	return a.check(a.subject == true, true, "be true")
}

// False asserts the subject is the boolean false.
func (a *Assertion) False() (*Assertion, error) {
	return a.check(a.subject == false, false, "be false")
}

// Nil asserts the subject is nil, including typed nils.
func (a *Assertion) Nil() (*Assertion, error) {
	return a.check(assert.ObjectsAreEqual(nil, a.subject) || isNil(a.subject), nil, "be nil")
}

// Exist asserts the subject is not nil.
func (a *Assertion) Exist() (*Assertion, error) {
	return a.check(!isNil(a.subject), "a value", "exist")
}

// Ok asserts the subject is truthy: not nil, not false and not a zero value.
func (a *Assertion) Ok() (*Assertion, error) {
	return a.check(!isNil(a.subject) && !isZero(a.subject), "a truthy value", "be ok")
}

// Empty asserts the subject is empty (zero value, or zero length).
func (a *Assertion) Empty() (*Assertion, error) {
	ok := a.run(func(t assert.TestingT) bool { return assert.Empty(t, a.subject) })
	return a.check(ok, "empty", "be empty")
}

// Function assertions.

// Equal asserts the subject equals expected, converting between compatible types.
func (a *Assertion) Equal(expected any) (*Assertion, error) {
	return a.check(assert.ObjectsAreEqualValues(expected, a.subject), expected, "equal %s", domain.RenderValue(expected))
}

// Equals is an alias of Equal.
func (a *Assertion) Equals(expected any) (*Assertion, error) { return a.Equal(expected) }

// Eq is an alias of Equal.
func (a *Assertion) Eq(expected any) (*Assertion, error) { return a.Equal(expected) }

// Eql asserts the subject deeply equals expected without type conversion.
func (a *Assertion) Eql(expected any) (*Assertion, error) {
	return a.check(assert.ObjectsAreEqual(expected, a.subject), expected, "deeply equal %s", domain.RenderValue(expected))
}

// Above asserts the subject is a number greater than n.
func (a *Assertion) Above(n any) (*Assertion, error) {
	return a.compare(n, "be above", func(t assert.TestingT, x, y float64) bool { return assert.Greater(t, x, y) })
}

// Gt is an alias of Above.
func (a *Assertion) Gt(n any) (*Assertion, error) { return a.Above(n) }

// Below asserts the subject is a number less than n.
func (a *Assertion) Below(n any) (*Assertion, error) {
	return a.compare(n, "be below", func(t assert.TestingT, x, y float64) bool { return assert.Less(t, x, y) })
}

// Lt is an alias of Below.
func (a *Assertion) Lt(n any) (*Assertion, error) { return a.Below(n) }

// Least asserts the subject is a number greater than or equal to n.
func (a *Assertion) Least(n any) (*Assertion, error) {
	return a.compare(n, "be at least", func(t assert.TestingT, x, y float64) bool { return assert.GreaterOrEqual(t, x, y) })
}

// Most asserts the subject is a number less than or equal to n.
func (a *Assertion) Most(n any) (*Assertion, error) {
	return a.compare(n, "be at most", func(t assert.TestingT, x, y float64) bool { return assert.LessOrEqual(t, x, y) })
}

// Include asserts a string contains a substring, a slice an element, or a map a key.
func (a *Assertion) Include(element any) (*Assertion, error) {
	ok := a.run(func(t assert.TestingT) bool { return assert.Contains(t, a.subject, element) })
	return a.check(ok, element, "include %s", domain.RenderValue(element))
}

// Contain is an alias of Include.
func (a *Assertion) Contain(element any) (*Assertion, error) { return a.Include(element) }

// LengthOf asserts the subject has length n.
func (a *Assertion) LengthOf(n int) (*Assertion, error) {
	ok := a.run(func(t assert.TestingT) bool { return assert.Len(t, a.subject, n) })
	if !ok {
		return a.checkActual(false, n, length(a.subject), "have length %d", n)
	}
	return a.checkActual(true, n, n, "have length %d", n)
}

// Length is an alias of LengthOf.
func (a *Assertion) Length(n int) (*Assertion, error) { return a.LengthOf(n) }

// Match asserts the subject's string form matches the regular expression.
func (a *Assertion) Match(pattern string) (*Assertion, error) {
	ok := a.run(func(t assert.TestingT) bool { return assert.Regexp(t, pattern, a.subject) })
	return a.check(ok, pattern, "match %s", pattern)
}

// A asserts the subject's type. Besides Go kind and type names it accepts
// "number", "array", "object" and "nil".
func (a *Assertion) A(typeName string) (*Assertion, error) {
	actual := typeOf(a.subject)
	ok := false
	for _, name := range actual {
		if strings.EqualFold(name, typeName) {
			ok = true
			break
		}
	}
	return a.checkActual(ok, typeName, actual[0], "be a %s", typeName)
}

// An is an alias of A.
func (a *Assertion) An(typeName string) (*Assertion, error) { return a.A(typeName) }

// Property asserts the subject has the named property and continues the chain on it.
// With a value, the property must also equal it.
func (a *Assertion) Property(name string, value ...any) (*Assertion, error) {
	v, err := Member(a.subject, name, domain.MemberProperty)
	found := err == nil
	if len(value) == 0 || !found {
		if _, err := a.check(found, name, "have property %q", name); err != nil {
			return nil, err
		}
		if !found || a.negate {
			return a, nil
		}
		return &Assertion{subject: v}, nil
	}

	ok := assert.ObjectsAreEqualValues(value[0], v)
	if _, err := a.checkActual(ok, value[0], v, "have property %q of %s", name, domain.RenderValue(value[0])); err != nil {
		return nil, err
	}
	return &Assertion{subject: v, negate: a.negate}, nil
}

func (a *Assertion) compare(n any, phrase string, cmp func(assert.TestingT, float64, float64) bool) (*Assertion, error) {
	x, okx := toFloat(a.subject)
	y, oky := toFloat(n)
	if !okx || !oky {
		return nil, &domain.AssertionError{
			Message:  fmt.Sprintf("expected %s to %s %s, but it is not a number", domain.RenderValue(a.subject), phrase, domain.RenderValue(n)),
			Expected: n,
			Actual:   a.subject,
		}
	}
	ok := a.run(func(t assert.TestingT) bool { return cmp(t, x, y) })
	return a.check(ok, n, "%s %s", phrase, domain.RenderValue(n))
}

func (a *Assertion) check(ok bool, expected any, format string, args ...any) (*Assertion, error) {
	return a.checkActual(ok, expected, a.subject, format, args...)
}

func (a *Assertion) checkActual(ok bool, expected, actual any, format string, args ...any) (*Assertion, error) {
	if ok != a.negate {
		return a, nil
	}
	not := ""
	if a.negate {
		not = "not "
	}
	return nil, &domain.AssertionError{
		Message:  fmt.Sprintf("expected %s to %s%s", domain.RenderValue(a.subject), not, fmt.Sprintf(format, args...)),
		Expected: expected,
		Actual:   actual,
	}
}

// run evaluates a testify assertion against a collector instead of a test.
func (a *Assertion) run(fn func(assert.TestingT) bool) bool {
	return fn(&collector{})
}

// collector satisfies assert.TestingT and swallows testify's failure output.
type collector struct {
	failures []string
}

func (c *collector) Errorf(format string, args ...any) {
	c.failures = append(c.failures, fmt.Sprintf(format, args...))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func isZero(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.String, reflect.Array:
		return rv.Len() == 0
	}
	return rv.IsZero()
}

func length(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.String, reflect.Array, reflect.Chan:
		return rv.Len()
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// typeOf lists the names the subject answers to, most specific first.
func typeOf(v any) []string {
	if v == nil {
		return []string{"nil"}
	}
	rv := reflect.ValueOf(v)
	names := []string{rv.Type().String(), rv.Kind().String()}
	if _, ok := toFloat(v); ok {
		names = append(names, "number")
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		names = append(names, "array")
	case reflect.Map, reflect.Struct:
		names = append(names, "object")
	}
	return names
}
