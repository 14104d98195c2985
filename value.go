package fifth

import (
	"fmt"
	"reflect"
	"strings"
)

// Value is any datum the machine can hold: a number, a string, a composite
// built by gather, a *Var data cell, or anything a host callable produced.
// There is no static type; individual words constrain what they accept.
type Value interface{}

// Var is the one mutable cell a created word owns. It is pushed by
// reference, so load and store observe each other across invocations.
type Var struct {
	value Value
}

// NewVar allocates a data cell holding the given initial value.
func NewVar(v Value) *Var { return &Var{value: v} }

// Load returns the cell's current value.
func (va *Var) Load() Value { return va.value }

// Store replaces the cell's value.
func (va *Var) Store(v Value) { va.value = v }

func (va *Var) String() string {
	return fmt.Sprintf("var(%v)", formatValue(va.value))
}

// formatValue renders a value the way print does: strings quoted,
// composites bracketed, everything else per fmt.
func formatValue(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", val)
	case []Value:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, el := range val {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(formatValue(el))
		}
		sb.WriteByte(']')
		return sb.String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// displayValue is formatValue without string quoting, for print output.
func displayValue(v Value) string {
	if s, ok := v.(string); ok {
		return s
	}
	return formatValue(v)
}

// valueInt narrows a value to a host int for words that take counts or
// stack depths.
func valueInt(op string, v Value) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("%v: not an integer: %v", op, formatValue(v))
}

// valueRune narrows a value to a rune for echo.
func valueRune(op string, v Value) (rune, error) {
	switch r := v.(type) {
	case int:
		return rune(r), nil
	case rune:
		return r, nil
	case int64:
		return rune(r), nil
	case string:
		for _, first := range r {
			return first, nil
		}
	}
	return 0, fmt.Errorf("%v: not a character: %v", op, formatValue(v))
}

// equalValues compares without panicking on uncomparable kinds like
// composites.
func equalValues(a, b Value) bool {
	return reflect.DeepEqual(a, b)
}

func numericOp(op string, a, b Value, ifn func(a, b int) (int, error), ffn func(a, b float64) float64) (Value, error) {
	switch av := a.(type) {
	case int:
		switch bv := b.(type) {
		case int:
			return ifn(av, bv)
		case float64:
			return ffn(float64(av), bv), nil
		}
	case float64:
		switch bv := b.(type) {
		case int:
			return ffn(av, float64(bv)), nil
		case float64:
			return ffn(av, bv), nil
		}
	}
	return nil, fmt.Errorf("%v: not numeric: %v %v", op, formatValue(a), formatValue(b))
}

func compareValues(op string, a, b Value) (int, error) {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs), nil
		}
	}
	v, err := numericOp(op, a, b, func(a, b int) (int, error) {
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		}
		return 0, nil
	}, func(a, b float64) float64 {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	if err != nil {
		return 0, err
	}
	n, err := valueInt(op, v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return -1, nil
	} else if n > 0 {
		return 1, nil
	}
	return 0, nil
}
