package textdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	c := Compare("a\nb\nc", "a\nx\nc", FormatPlain, DefaultOptions())

	assert.Equal(t, Stats{Additions: 1, Deletions: 1, Modifications: 1, Total: 1, Identical: 2}, c.Result.Stats)
	assert.Equal(t, Align("a\nb\nc", "a\nx\nc", DefaultOptions()), c.Alignment)
	assert.Equal(t, []int{1}, c.Blocks)
	assert.False(t, c.Identical())
}

func TestCompare_FormatsBeforeDiffing(t *testing.T) {
	c := Compare(`{"a":1,"b":[1,2]}`, "{\n  \"a\": 1,\n  \"b\": [1, 2]\n}", FormatJSON, DefaultOptions())

	require.True(t, c.Identical(), "left %q right %q", c.Left, c.Right)
	assert.Equal(t, c.Left, c.Right)
	assert.Empty(t, c.Blocks)
}

func TestCompare_NormalizesOptions(t *testing.T) {
	c := Compare("a", "b", FormatPlain, Options{Mode: Mode(9), ContextSize: -2})
	assert.Equal(t, ModeLines, c.Options.Mode)
	assert.Equal(t, DefaultContextSize, c.Options.ContextSize)
}

func TestCompare_AgreesWithCompute(t *testing.T) {
	for _, pair := range samplePairs {
		for _, opts := range allOptions() {
			c := Compare(pair[0], pair[1], FormatPlain, opts)
			assert.Equal(t, Compute(pair[0], pair[1], opts), c.Result)
			assert.Equal(t, Blocks(c.Alignment), c.Blocks)
		}
	}
}
