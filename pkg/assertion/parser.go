package assertion

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCompact parses a compact assertion string of the form
// "type:target[:value]" into a Definition. Numeric and boolean
// values are converted; everything else stays a string.
//
// Examples:
//
//	"not_empty:cues"            -> not_empty on cues
//	"exact_count:cues:2"        -> exact_count on cues, 2
//	"equals:cues.0.align:start" -> equals on cues.0.align
func ParseCompact(s string) (Definition, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Definition{}, fmt.Errorf(
			"invalid compact assertion %q: want type:target[:value]",
			s,
		)
	}

	def := Definition{
		Type:   parts[0],
		Target: parts[1],
	}

	if len(parts) == 3 {
		def.Value = coerceScalar(parts[2])
	}

	return def, nil
}

// coerceScalar converts a compact-form value string to the most
// specific scalar type it parses as.
func coerceScalar(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
