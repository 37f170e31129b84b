package assertion

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/chainspec/pkg/domain"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Member looks up name on value and checks that it has the wanted shape.
//
// Lookup order: methods, exported struct fields, string map keys. Method and
// field names are tried as given and then with the first letter upper-cased,
// so "equal" resolves to Equal. A property resolved from a method calls it
// without arguments; such getters may return (T) or (T, error). A function
// resolves to a domain.Callable.
func Member(value any, name string, kind domain.MemberKind) (any, error) {
	if value == nil {
		return nil, memberError(value, name, kind, "value is nil")
	}
	rv := reflect.ValueOf(value)

	for _, candidate := range candidates(name) {
		if m := rv.MethodByName(candidate); m.IsValid() {
			switch kind {
			case domain.MemberFunction:
				return callable(m), nil
			default:
				if m.Type().NumIn() != 0 {
					return nil, memberError(value, name, kind, "is a function")
				}
				return unpack(m.Call(nil))
			}
		}
	}

	if f, ok := field(rv, name); ok {
		return shaped(value, name, kind, f)
	}

	if v, ok := mapKey(rv, name); ok {
		return shaped(value, name, kind, v)
	}

	return nil, memberError(value, name, kind, "not found")
}

func shaped(owner any, name string, kind domain.MemberKind, v reflect.Value) (any, error) {
	isFunc := v.Kind() == reflect.Func && !v.IsNil()
	switch {
	case kind == domain.MemberFunction && !isFunc:
		return nil, memberError(owner, name, kind, "is a property")
	case kind == domain.MemberFunction:
		return callable(v), nil
	case isFunc:
		return nil, memberError(owner, name, kind, "is a function")
	}
	return v.Interface(), nil
}

func field(rv reflect.Value, name string) (reflect.Value, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	for _, candidate := range candidates(name) {
		sf, ok := rv.Type().FieldByName(candidate)
		if !ok || !sf.IsExported() {
			continue
		}
		return rv.FieldByIndex(sf.Index), true
	}
	return reflect.Value{}, false
}

func mapKey(rv reflect.Value, name string) (reflect.Value, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return reflect.Value{}, false
	}
	v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	// Unwrap interface values (map[string]any) so kind checks see the dynamic type.
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v, true
}

func candidates(name string) []string {
	if name == "" {
		return nil
	}
	r, size := utf8.DecodeRuneInString(name)
	upper := string(unicode.ToUpper(r)) + name[size:]
	if upper == name {
		return []string{name}
	}
	return []string{name, upper}
}

func callable(fn reflect.Value) domain.Callable {
	return func(args ...any) (any, error) {
		in, err := arguments(fn.Type(), args)
		if err != nil {
			return nil, err
		}
		return unpack(fn.Call(in))
	}
}

func arguments(ft reflect.Type, args []any) ([]reflect.Value, error) {
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("want at least %d argument(s), got %d", n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("want %d argument(s), got %d", n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if ft.IsVariadic() && i >= n-1 {
			pt = ft.In(n - 1).Elem()
		} else {
			pt = ft.In(i)
		}

		if arg == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(arg)
		switch {
		case av.Type().AssignableTo(pt):
			in[i] = av
		case av.Type().ConvertibleTo(pt):
			in[i] = av.Convert(pt)
		default:
			return nil, fmt.Errorf("argument %d: cannot use %T as %s", i, arg, pt)
		}
	}
	return in, nil
}

// unpack maps call results onto (value, error).
func unpack(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type() == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	case 2:
		if out[1].Type() == errorType {
			if err := asError(out[1]); err != nil {
				return nil, err
			}
			return out[0].Interface(), nil
		}
	}
	values := make([]any, len(out))
	for i, v := range out {
		values[i] = v.Interface()
	}
	return values, nil
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}

func memberError(value any, name string, kind domain.MemberKind, reason string) error {
	return &domain.MemberError{
		Name:   name,
		Want:   kind,
		Target: fmt.Sprintf("%T", value),
		Reason: reason,
	}
}
