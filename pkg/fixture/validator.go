package fixture

import (
	"fmt"
	"os"

	"digital.vasic.conformance/pkg/assertion"
)

// ValidationError represents a validation issue found in a
// fixture.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("assertions[%d].%s: %s",
			e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a parsed fixture and returns all problems
// found. Assertion types are checked against the engine's
// registered evaluators so unknown types surface at load time
// rather than mid-run.
func Validate(f *Fixture, engine assertion.Engine) []ValidationError {
	var errors []ValidationError

	if f.Title == "" {
		errors = append(errors, ValidationError{
			Field: "title", Message: "title is required", Index: -1,
		})
	}
	if len(f.Assertions) == 0 {
		errors = append(errors, ValidationError{
			Field:   "assertions",
			Message: "at least one assertion is required",
			Index:   -1,
		})
	}
	if f.TimeoutMS < 0 {
		errors = append(errors, ValidationError{
			Field:   "timeout_ms",
			Message: "timeout must not be negative",
			Index:   -1,
		})
	}

	for i, a := range f.Assertions {
		if a.Type == "" {
			errors = append(errors, ValidationError{
				Field: "type", Message: "assertion type is required",
				Index: i,
			})
		} else if engine != nil && !engine.HasEvaluator(a.Type) {
			errors = append(errors, ValidationError{
				Field: "type",
				Message: fmt.Sprintf(
					"unknown assertion type: %s", a.Type,
				),
				Index: i,
			})
		}
		if a.Target == "" {
			errors = append(errors, ValidationError{
				Field: "target", Message: "assertion target is required",
				Index: i,
			})
		}
	}

	return errors
}

// ValidateFile parses and validates a fixture file.
func ValidateFile(path string, engine assertion.Engine) []ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{
			{Field: "file", Message: err.Error(), Index: -1},
		}
	}

	f, err := ParseBytes(data)
	if err != nil {
		return []ValidationError{
			{Field: "format", Message: err.Error(), Index: -1},
		}
	}

	return Validate(f, engine)
}
