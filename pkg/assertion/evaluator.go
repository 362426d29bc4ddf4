package assertion

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Evaluator is a function that evaluates a single assertion type
// against a concrete value. It returns whether the assertion
// passed and a human-readable explanation.
type Evaluator func(assertion Definition, value any) (bool, string)

// Equal reports whether actual and expected are equal under the
// module's same-value contract:
//
//   - Numbers compare numerically regardless of Go width
//     (int(4) equals float64(4)). NaN equals NaN; +0 and -0 are
//     equal.
//   - Strings compare by codepoints (Go ==).
//   - Booleans compare by identity; no truthy coercion anywhere.
//   - Slices and maps compare structurally, element-wise under
//     the same rules.
//   - nil equals nil only.
//
// This single definition backs the "equals" evaluator and the
// harness Equals primitive, so every call site shares the same
// semantics.
func Equal(actual, expected any) bool {
	if actual == nil || expected == nil {
		return actual == nil && expected == nil
	}

	if af, aok := toNumeric(actual); aok {
		ef, eok := toNumeric(expected)
		if !eok {
			return false
		}
		if math.IsNaN(af) && math.IsNaN(ef) {
			return true
		}
		return af == ef
	}

	switch a := actual.(type) {
	case string:
		e, ok := expected.(string)
		return ok && a == e
	case bool:
		e, ok := expected.(bool)
		return ok && a == e
	}

	av := reflect.ValueOf(actual)
	ev := reflect.ValueOf(expected)

	switch av.Kind() {
	case reflect.Slice, reflect.Array:
		if ev.Kind() != reflect.Slice && ev.Kind() != reflect.Array {
			return false
		}
		if av.Len() != ev.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			if !Equal(
				av.Index(i).Interface(),
				ev.Index(i).Interface(),
			) {
				return false
			}
		}
		return true
	case reflect.Map:
		if ev.Kind() != reflect.Map {
			return false
		}
		// MapIndex panics on a key of the wrong type, so maps
		// with different key types are never equal.
		if av.Type().Key() != ev.Type().Key() {
			return false
		}
		if av.Len() != ev.Len() {
			return false
		}
		for _, key := range av.MapKeys() {
			e := ev.MapIndex(key)
			if !e.IsValid() {
				return false
			}
			if !Equal(
				av.MapIndex(key).Interface(),
				e.Interface(),
			) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(actual, expected)
}

// Format returns a printable representation of a value for
// failure messages. Strings are quoted so that "1" and 1 are
// distinguishable; nil renders as "null".
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(val)
	case float64:
		if math.IsNaN(val) {
			return "NaN"
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// toNumeric converts any Go numeric value to float64. The
// second return is false for non-numeric values.
func toNumeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
