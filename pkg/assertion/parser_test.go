package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompact(t *testing.T) {
	def, err := ParseCompact("exact_count:cues:2")
	require.NoError(t, err)
	assert.Equal(t, "exact_count", def.Type)
	assert.Equal(t, "cues", def.Target)
	assert.Equal(t, 2, def.Value)
}

func TestParseCompact_NoValue(t *testing.T) {
	def, err := ParseCompact("not_empty:cues")
	require.NoError(t, err)
	assert.Equal(t, "not_empty", def.Type)
	assert.Equal(t, "cues", def.Target)
	assert.Nil(t, def.Value)
}

func TestParseCompact_ScalarCoercion(t *testing.T) {
	def, err := ParseCompact("equals:cues.0.align:start")
	require.NoError(t, err)
	assert.Equal(t, "start", def.Value)

	def, err = ParseCompact("equals:cues.1.position:100")
	require.NoError(t, err)
	assert.Equal(t, 100, def.Value)

	def, err = ParseCompact("equals:flag:true")
	require.NoError(t, err)
	assert.Equal(t, true, def.Value)

	def, err = ParseCompact("equals:score:1.5")
	require.NoError(t, err)
	assert.Equal(t, 1.5, def.Value)
}

func TestParseCompact_Invalid(t *testing.T) {
	_, err := ParseCompact("not_empty")
	require.Error(t, err)

	_, err = ParseCompact(":cues")
	require.Error(t, err)

	_, err = ParseCompact("equals:")
	require.Error(t, err)
}
