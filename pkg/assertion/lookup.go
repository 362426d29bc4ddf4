package assertion

import (
	"strconv"
	"strings"
)

// Lookup resolves a dotted target path inside a map of named
// values. Path segments index into nested maps by key and into
// sequences by decimal position; the pseudo-segment "length"
// resolves to the element count of a sequence, string, or map.
//
// Examples against {"cues": [{"align": "start"}]}:
//
//	"cues"          -> the sequence
//	"cues.length"   -> 1
//	"cues.0.align"  -> "start"
func Lookup(values map[string]any, target string) (any, bool) {
	if target == "" {
		return nil, false
	}

	segments := strings.Split(target, ".")

	current, exists := values[segments[0]]
	if !exists {
		return nil, false
	}

	for _, segment := range segments[1:] {
		if segment == "length" {
			count, ok := toCount(current)
			if !ok {
				return nil, false
			}
			current = count
			continue
		}

		if m, ok := current.(map[string]any); ok {
			next, ok := m[segment]
			if !ok {
				return nil, false
			}
			current = next
			continue
		}

		// Positional segments index any sequence toSlice
		// understands, so []string behaves like []any.
		seq, ok := toSlice(current)
		if !ok {
			return nil, false
		}
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= len(seq) {
			return nil, false
		}
		current = seq[idx]
	}

	return current, true
}
