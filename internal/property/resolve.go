package property

import (
	"errors"
	"fmt"
)

var (
	ErrNoValue      = errors.New("property has no value")
	ErrTypeMismatch = errors.New("property type mismatch")
)

// Getter is the resolved form of a computed value. Each call re-evaluates the
// underlying expression.
type Getter func() (any, error)

// Properties is the resolved view handed to Component.Configure. Literal
// entries hold their value; computed entries hold a Getter.
type Properties map[string]any

// Resolve turns a model into Properties.
func Resolve(d *Definitions) Properties {
	props := make(Properties, d.Len())
	if d == nil {
		return props
	}
	for name, v := range d.values {
		props[name] = v.Resolve()
	}
	return props
}

// IsComputed reports whether name resolved to a Getter.
func (p Properties) IsComputed(name string) bool {
	_, ok := p[name].(Getter)
	return ok
}

// Eval reads the current value of a resolved property and converts it to T.
// Getters are invoked; numeric values are converted between int and float kinds.
func Eval[T any](raw any) (T, error) {
	var zero T
	v := raw
	if g, ok := raw.(Getter); ok {
		var err error
		if v, err = g(); err != nil {
			return zero, err
		}
	}
	if v == nil {
		return zero, ErrNoValue
	}
	if t, ok := v.(T); ok {
		return t, nil
	}
	if n, ok := convertNumber(v, zero); ok {
		return n.(T), nil
	}
	return zero, fmt.Errorf("%w: have %T, want %T", ErrTypeMismatch, v, zero)
}

// EvalOr is Eval with a fallback for missing values and evaluation errors.
func EvalOr[T any](raw any, fallback T) T {
	v, err := Eval[T](raw)
	if err != nil {
		return fallback
	}
	return v
}

func convertNumber(v any, target any) (any, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	default:
		return nil, false
	}
	switch target.(type) {
	case int:
		return int(f), true
	case int32:
		return int32(f), true
	case int64:
		return int64(f), true
	case float32:
		return float32(f), true
	case float64:
		return f, true
	}
	return nil, false
}
