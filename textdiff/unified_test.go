package textdiff

import (
	"strings"
	"testing"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsePatch(t *testing.T, patch string) []*gitdiff.TextFragment {
	t.Helper()
	files, _, err := gitdiff.Parse(strings.NewReader(patch))
	require.NoError(t, err)
	require.Len(t, files, 1)
	return files[0].TextFragments
}

func countFragmentLines(frags []*gitdiff.TextFragment) (added, deleted int) {
	for _, f := range frags {
		added += int(f.LinesAdded)
		deleted += int(f.LinesDeleted)
	}
	return added, deleted
}

func TestUnified_Identical(t *testing.T) {
	patch, err := Unified("a", "b", "x\ny\n", "x\ny", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, patch)
}

func TestUnified_MatchesStats(t *testing.T) {
	for _, pair := range samplePairs {
		for _, opts := range []Options{
			DefaultOptions(),
			{IgnoreCase: true, ContextSize: 1},
			{IgnoreWhitespace: true, ContextSize: 2},
		} {
			patch, err := Unified("left", "right", pair[0], pair[1], opts)
			require.NoError(t, err)

			st := Compute(pair[0], pair[1], opts).Stats
			if st.Total == 0 {
				assert.Empty(t, patch)
				continue
			}
			added, deleted := countFragmentLines(parsePatch(t, patch))
			assert.Equal(t, st.Additions, added, "pair %q opts %+v", pair, opts)
			assert.Equal(t, st.Deletions, deleted, "pair %q opts %+v", pair, opts)
		}
	}
}

func TestUnified_Content(t *testing.T) {
	patch, err := Unified("a.txt", "b.txt", "a\nb\nc", "a\nx\nc", DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, patch, "--- a.txt\n+++ b.txt\n")
	assert.Contains(t, patch, "-b\n+x\n")
	assert.Contains(t, patch, " a\n")
	assert.Contains(t, patch, " c\n")
}

func TestUnified_IgnoredDifferencesAreContext(t *testing.T) {
	patch, err := Unified("a", "b", "Foo\nbar\n", "foo\nbaz\n", Options{IgnoreCase: true, ContextSize: 3})
	require.NoError(t, err)
	assert.Contains(t, patch, " Foo\n")
	assert.NotContains(t, patch, "+foo")

	added, deleted := countFragmentLines(parsePatch(t, patch))
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, deleted)
}

func TestUnified_ContextSize(t *testing.T) {
	var left, right []string
	for i := 1; i <= 10; i++ {
		line := string(rune('a' + i - 1))
		left = append(left, line)
		if i == 2 || i == 9 {
			line = strings.ToUpper(line)
		}
		right = append(right, line)
	}
	text1 := strings.Join(left, "\n")
	text2 := strings.Join(right, "\n")

	patch, err := Unified("a", "b", text1, text2, Options{ContextSize: 1})
	require.NoError(t, err)
	frags := parsePatch(t, patch)
	require.Len(t, frags, 2)
	for _, f := range frags {
		assert.Equal(t, int64(1), f.LinesAdded)
		assert.Equal(t, int64(1), f.LinesDeleted)
	}
}
