package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_RegistersAllBuiltins(t *testing.T) {
	e := NewEngine()

	builtins := []string{
		"equals", "not_equals", "is_true", "is_false",
		"not_empty", "exact_count", "min_count",
		"contains", "one_of", "matches", "ordered",
		"no_duplicates", "all_pass", "max_latency",
	}

	for _, name := range builtins {
		assert.True(t, e.HasEvaluator(name),
			"missing built-in evaluator: %s", name)
	}
}

func TestDefaultEngine_Register_Success(t *testing.T) {
	e := NewEngine()

	err := e.Register("custom", func(
		_ Definition, _ any,
	) (bool, string) {
		return true, "custom ok"
	})

	require.NoError(t, err)
	assert.True(t, e.HasEvaluator("custom"))
}

func TestDefaultEngine_Register_Duplicate(t *testing.T) {
	e := NewEngine()

	err := e.Register("equals", func(
		_ Definition, _ any,
	) (bool, string) {
		return true, "dup"
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestDefaultEngine_Evaluate_UnknownType(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:   "nonexistent",
		Target: "x",
	}, "hello")

	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "unknown assertion type")
}

func TestDefaultEngine_Evaluate_SetsFields(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:   "equals",
		Target: "cues.0.align",
		Value:  "start",
	}, "start")

	assert.True(t, r.Passed)
	assert.Equal(t, "equals", r.Type)
	assert.Equal(t, "cues.0.align", r.Target)
	assert.Equal(t, "start", r.Expected)
	assert.Equal(t, "start", r.Actual)
}

func TestDefaultEngine_Evaluate_MultiValueExpected(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:   "ordered",
		Target: "events",
		Values: []any{"e1", "e2"},
	}, []any{"e1", "e2"})

	assert.True(t, r.Passed)
	assert.Equal(t, []any{"e1", "e2"}, r.Expected)
}

func TestDefaultEngine_EvaluateAll_MissingTarget(t *testing.T) {
	e := NewEngine()

	results := e.EvaluateAll(
		[]Definition{
			{Type: "not_empty", Target: "missing"},
		},
		map[string]any{"other": "value"},
	)

	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Contains(t, results[0].Message, "target not found")
}

func TestDefaultEngine_EvaluateAll_FixtureScenario(t *testing.T) {
	e := NewEngine()

	values := map[string]any{
		"cues": []any{
			map[string]any{"align": "start"},
			map[string]any{"position": float64(100)},
		},
	}

	results := e.EvaluateAll(
		[]Definition{
			{Type: "exact_count", Target: "cues", Value: 2},
			{Type: "equals", Target: "cues.length", Value: 2},
			{Type: "equals", Target: "cues.0.align", Value: "start"},
			{Type: "equals", Target: "cues.1.position", Value: 100},
		},
		values,
	)

	require.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.Passed,
			"assertion %s on %s failed: %s",
			r.Type, r.Target, r.Message)
	}
}

func TestLookup(t *testing.T) {
	values := map[string]any{
		"cues": []any{
			map[string]any{"align": "start"},
		},
		"status": "OK",
	}

	v, ok := Lookup(values, "status")
	assert.True(t, ok)
	assert.Equal(t, "OK", v)

	v, ok = Lookup(values, "cues.length")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = Lookup(values, "cues.0.align")
	assert.True(t, ok)
	assert.Equal(t, "start", v)

	_, ok = Lookup(values, "cues.1.align")
	assert.False(t, ok)

	_, ok = Lookup(values, "cues.x")
	assert.False(t, ok)

	_, ok = Lookup(values, "")
	assert.False(t, ok)
}

func TestLookup_StringSlice(t *testing.T) {
	// In-process engines may return typed slices; positional
	// segments index them the same way as []any.
	values := map[string]any{
		"tags": []string{"e1", "e2"},
	}

	v, ok := Lookup(values, "tags.1")
	assert.True(t, ok)
	assert.Equal(t, "e2", v)

	v, ok = Lookup(values, "tags.length")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = Lookup(values, "tags.2")
	assert.False(t, ok)
}
