package assertion

import (
	"fmt"
	"regexp"
	"strings"
)

// evaluateEquals checks that a value equals the expected value
// under the same-value contract documented on Equal.
func evaluateEquals(
	assertion Definition,
	value any,
) (bool, string) {
	if Equal(value, assertion.Value) {
		return true, fmt.Sprintf(
			"equals %s", Format(assertion.Value),
		)
	}

	return false, fmt.Sprintf(
		"expected %s but got %s",
		Format(assertion.Value), Format(value),
	)
}

// evaluateNotEquals checks that a value differs from the
// expected value.
func evaluateNotEquals(
	assertion Definition,
	value any,
) (bool, string) {
	if !Equal(value, assertion.Value) {
		return true, fmt.Sprintf(
			"differs from %s", Format(assertion.Value),
		)
	}

	return false, fmt.Sprintf(
		"expected a value different from %s",
		Format(assertion.Value),
	)
}

// evaluateIsTrue checks that a value is the boolean true.
// Exact identity, no truthy coercion.
func evaluateIsTrue(
	_ Definition,
	value any,
) (bool, string) {
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Sprintf(
			"expected true but got non-boolean %s",
			Format(value),
		)
	}
	if !b {
		return false, "expected true but got false"
	}
	return true, "value is true"
}

// evaluateIsFalse checks that a value is the boolean false.
func evaluateIsFalse(
	_ Definition,
	value any,
) (bool, string) {
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Sprintf(
			"expected false but got non-boolean %s",
			Format(value),
		)
	}
	if b {
		return false, "expected false but got true"
	}
	return true, "value is false"
}

// evaluateNotEmpty checks that a value is non-nil and non-empty.
func evaluateNotEmpty(
	_ Definition,
	value any,
) (bool, string) {
	if value == nil {
		return false, "value is nil"
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return false, "string is empty"
		}
	case []any:
		if len(v) == 0 {
			return false, "array is empty"
		}
	case map[string]any:
		if len(v) == 0 {
			return false, "map is empty"
		}
	}

	return true, "value is not empty"
}

// evaluateExactCount checks that a countable value exactly
// matches the expected count.
func evaluateExactCount(
	assertion Definition,
	value any,
) (bool, string) {
	count, ok := toCount(value)
	if !ok {
		return false, "value is not countable"
	}

	expected, ok := toInt(assertion.Value)
	if !ok {
		return false, "expected value is not a number"
	}

	if count == expected {
		return true, fmt.Sprintf(
			"count %d == %d", count, expected,
		)
	}

	return false, fmt.Sprintf(
		"count %d != %d", count, expected,
	)
}

// evaluateMinCount checks that a countable value meets a
// minimum count.
func evaluateMinCount(
	assertion Definition,
	value any,
) (bool, string) {
	count, ok := toCount(value)
	if !ok {
		return false, "value is not countable"
	}

	minCount, ok := toInt(assertion.Value)
	if !ok {
		return false, "expected value is not a number"
	}

	if count >= minCount {
		return true, fmt.Sprintf(
			"count %d >= %d", count, minCount,
		)
	}

	return false, fmt.Sprintf(
		"count %d < %d", count, minCount,
	)
}

// evaluateContains checks that a string value contains the
// expected substring, or that an array contains an equal
// element.
func evaluateContains(
	assertion Definition,
	value any,
) (bool, string) {
	switch v := value.(type) {
	case string:
		expected, ok := assertion.Value.(string)
		if !ok {
			return false, "expected value is not a string"
		}
		if strings.Contains(v, expected) {
			return true, fmt.Sprintf(
				"contains %s", Format(expected),
			)
		}
		return false, fmt.Sprintf(
			"does not contain %s", Format(expected),
		)
	case []any:
		for _, item := range v {
			if Equal(item, assertion.Value) {
				return true, fmt.Sprintf(
					"contains %s", Format(assertion.Value),
				)
			}
		}
		return false, fmt.Sprintf(
			"no element equals %s", Format(assertion.Value),
		)
	}

	return false, "value is not a string or array"
}

// evaluateOneOf checks that a value equals at least one of the
// expected values.
func evaluateOneOf(
	assertion Definition,
	value any,
) (bool, string) {
	if len(assertion.Values) == 0 {
		return false, "no expected values given"
	}

	for _, expected := range assertion.Values {
		if Equal(value, expected) {
			return true, fmt.Sprintf(
				"matches %s", Format(expected),
			)
		}
	}

	return false, fmt.Sprintf(
		"%s is not one of the expected values",
		Format(value),
	)
}

// evaluateMatches checks that a string value matches the
// expected regular expression.
func evaluateMatches(
	assertion Definition,
	value any,
) (bool, string) {
	str, ok := value.(string)
	if !ok {
		return false, "value is not a string"
	}

	pattern, ok := assertion.Value.(string)
	if !ok {
		return false, "expected value is not a string"
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Sprintf(
			"invalid pattern: %v", err,
		)
	}

	if re.MatchString(str) {
		return true, fmt.Sprintf(
			"matches /%s/", pattern,
		)
	}

	return false, fmt.Sprintf(
		"%s does not match /%s/", Format(str), pattern,
	)
}

// evaluateOrdered checks that a sequence equals the expected
// values in the exact order given. It is the assertion used
// against event logs: the observed delivery order must match
// the expected order element for element.
func evaluateOrdered(
	assertion Definition,
	value any,
) (bool, string) {
	items, ok := toSlice(value)
	if !ok {
		return false, "value is not a sequence"
	}

	if len(items) != len(assertion.Values) {
		return false, fmt.Sprintf(
			"sequence has %d elements, expected %d",
			len(items), len(assertion.Values),
		)
	}

	for i, expected := range assertion.Values {
		if !Equal(items[i], expected) {
			return false, fmt.Sprintf(
				"element %d is %s, expected %s",
				i, Format(items[i]), Format(expected),
			)
		}
	}

	return true, fmt.Sprintf(
		"sequence matches expected order of %d elements",
		len(items),
	)
}

// evaluateNoDuplicates checks that a sequence contains no
// duplicate values (compared via fmt.Sprintf("%v")).
func evaluateNoDuplicates(
	_ Definition,
	value any,
) (bool, string) {
	items, ok := toSlice(value)
	if !ok {
		return false, "value is not a sequence"
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := fmt.Sprintf("%v", item)
		if seen[key] {
			return false, fmt.Sprintf(
				"duplicate found: %s", key,
			)
		}
		seen[key] = true
	}

	return true, "no duplicates found"
}

// evaluateAllPass checks that all items in a slice of results
// have passed. Accepts []Result or []any with map entries
// containing a "passed" key.
func evaluateAllPass(
	_ Definition,
	value any,
) (bool, string) {
	results, ok := value.([]Result)
	if !ok {
		items, ok := value.([]any)
		if !ok {
			return false, "value is not an array of results"
		}
		for i, item := range items {
			if m, ok := item.(map[string]any); ok {
				if passed, exists := m["passed"]; exists {
					if p, ok := passed.(bool); ok && !p {
						return false, fmt.Sprintf(
							"item %d failed", i,
						)
					}
				}
			}
		}
		return true, "all items passed"
	}

	for _, result := range results {
		if !result.Passed {
			return false, fmt.Sprintf(
				"assertion '%s' failed: %s",
				result.Type, result.Message,
			)
		}
	}

	return true, "all assertions passed"
}

// evaluateMaxLatency checks that a numeric duration value does
// not exceed the specified maximum (in milliseconds).
func evaluateMaxLatency(
	assertion Definition,
	value any,
) (bool, string) {
	latency, ok := toInt64(value)
	if !ok {
		return false, "value is not a number"
	}

	maxLatency, ok := toInt64(assertion.Value)
	if !ok {
		return false, "expected value is not a number"
	}

	if latency <= maxLatency {
		return true, fmt.Sprintf(
			"latency %dms <= %dms", latency, maxLatency,
		)
	}

	return false, fmt.Sprintf(
		"latency %dms > %dms", latency, maxLatency,
	)
}

// --- helpers ---

// toInt converts an any value to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	case int64:
		return int(n), true
	}
	return 0, false
}

// toInt64 converts an any value to int64.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// toCount extracts an integer count from a value. It handles
// numbers, strings, slices, and maps.
func toCount(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case string:
		return len(val), true
	case []any:
		return len(val), true
	case []string:
		return len(val), true
	case map[string]any:
		return len(val), true
	}
	return 0, false
}

// toSlice normalizes slice values to []any.
func toSlice(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return items, true
	}
	return nil, false
}
