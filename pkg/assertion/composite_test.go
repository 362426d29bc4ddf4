package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllPassComposite(t *testing.T) {
	e := NewEngine()
	values := map[string]any{"status": "OK"}

	r := AllPassComposite(e, []Definition{
		{Type: "not_empty", Target: "status"},
		{Type: "equals", Target: "status", Value: "OK"},
	}, values)
	assert.True(t, r.Passed)

	r = AllPassComposite(e, []Definition{
		{Type: "equals", Target: "status", Value: "FAIL"},
	}, values)
	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "equals")
}

func TestAnyPassComposite(t *testing.T) {
	e := NewEngine()
	values := map[string]any{"status": "OK"}

	r := AnyPassComposite(e, []Definition{
		{Type: "equals", Target: "status", Value: "FAIL"},
		{Type: "equals", Target: "status", Value: "OK"},
	}, values)
	assert.True(t, r.Passed)

	r = AnyPassComposite(e, []Definition{
		{Type: "equals", Target: "status", Value: "FAIL"},
	}, values)
	assert.False(t, r.Passed)
}
