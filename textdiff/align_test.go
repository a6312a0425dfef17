package textdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(content string, kind Kind, number int) LineRecord {
	return LineRecord{Content: content, Kind: kind, Number: number}
}

var empty = LineRecord{Kind: Empty}

func TestAlign_Rows(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		opts      Options
		wantLeft  []LineRecord
		wantRight []LineRecord
	}{
		{
			name:      "modification pair",
			a:         "a\nb\nc",
			b:         "a\nx\nc",
			wantLeft:  []LineRecord{rec("a", Unchanged, 1), rec("b", Removed, 2), rec("c", Unchanged, 3)},
			wantRight: []LineRecord{rec("a", Unchanged, 1), rec("x", Added, 2), rec("c", Unchanged, 3)},
		},
		{
			name:      "pure addition",
			a:         "a\nb",
			b:         "a\nb\nc",
			wantLeft:  []LineRecord{rec("a", Unchanged, 1), rec("b", Unchanged, 2), empty},
			wantRight: []LineRecord{rec("a", Unchanged, 1), rec("b", Unchanged, 2), rec("c", Added, 3)},
		},
		{
			name:      "pure deletion",
			a:         "a\nb\nc",
			b:         "a\nc",
			wantLeft:  []LineRecord{rec("a", Unchanged, 1), rec("b", Removed, 2), rec("c", Unchanged, 3)},
			wantRight: []LineRecord{rec("a", Unchanged, 1), empty, rec("c", Unchanged, 2)},
		},
		{
			name:      "uneven modification",
			a:         "a\nb\nd",
			b:         "a\nx\ny\nz\nd",
			wantLeft:  []LineRecord{rec("a", Unchanged, 1), rec("b", Removed, 2), empty, empty, rec("d", Unchanged, 3)},
			wantRight: []LineRecord{rec("a", Unchanged, 1), rec("x", Added, 2), rec("y", Added, 3), rec("z", Added, 4), rec("d", Unchanged, 5)},
		},
		{
			name:      "normalized match keeps original content",
			a:         "Foo\nBAR",
			b:         "foo\nbar\nbaz",
			opts:      Options{IgnoreCase: true},
			wantLeft:  []LineRecord{rec("Foo", Unchanged, 1), rec("BAR", Unchanged, 2), empty},
			wantRight: []LineRecord{rec("foo", Unchanged, 1), rec("bar", Unchanged, 2), rec("baz", Added, 3)},
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Align(tt.a, tt.b, tt.opts)
			assert.Equal(t, tt.wantLeft, got.Left)
			assert.Equal(t, tt.wantRight, got.Right)
		})
	}
}

func TestAlignRuns_ConsecutivePairs(t *testing.T) {
	lines1 := []string{"r1", "r2"}
	lines2 := []string{"a1", "a2", "a3"}
	runs := []Run{
		{Kind: Removed, Value: "r1\n", Count: 1},
		{Kind: Added, Value: "a1\na2\n", Count: 2},
		{Kind: Removed, Value: "r2", Count: 1},
		{Kind: Added, Value: "a3", Count: 1},
	}

	got := alignRuns(lines1, lines2, runs)
	assert.Equal(t, []LineRecord{rec("r1", Removed, 1), empty, rec("r2", Removed, 2)}, got.Left)
	assert.Equal(t, []LineRecord{rec("a1", Added, 1), rec("a2", Added, 2), rec("a3", Added, 3)}, got.Right)
}

func TestAlignRuns_AddedBeforeRemovedIsNotPaired(t *testing.T) {
	runs := []Run{
		{Kind: Added, Value: "a", Count: 1},
		{Kind: Removed, Value: "r", Count: 1},
	}

	got := alignRuns([]string{"r"}, []string{"a"}, runs)
	assert.Equal(t, []LineRecord{empty, rec("r", Removed, 1)}, got.Left)
	assert.Equal(t, []LineRecord{rec("a", Added, 1), empty}, got.Right)
	assert.False(t, got.IsModified(0))
	assert.False(t, got.IsModified(1))
}

func TestAlign_Invariants(t *testing.T) {
	for _, pair := range samplePairs {
		for _, opts := range allOptions() {
			a := Align(pair[0], pair[1], opts)
			require.Len(t, a.Right, len(a.Left))

			var left, right []string
			for i := range a.Left {
				l, r := a.Left[i], a.Right[i]
				assert.False(t, l.Kind == Empty && r.Kind == Empty, "row %d is empty on both sides", i)
				if l.Kind == Unchanged || r.Kind == Unchanged {
					assert.Equal(t, l.Kind, r.Kind, "row %d", i)
					assert.Equal(t, opts.key(l.Content), opts.key(r.Content), "row %d", i)
				}
				if l.Kind != Empty {
					left = append(left, l.Content)
					assert.Equal(t, len(left), l.Number)
				}
				if r.Kind != Empty {
					right = append(right, r.Content)
					assert.Equal(t, len(right), r.Number)
				}
			}
			assert.Equal(t, SplitLines(pair[0]), left, "pair %q", pair)
			assert.Equal(t, SplitLines(pair[1]), right, "pair %q", pair)
		}
	}
}

func TestAlignment_Inline(t *testing.T) {
	a := Align("a\nb\nc", "a\nx\nc", DefaultOptions())
	require.True(t, a.IsModified(1))
	assert.False(t, a.IsModified(0))
	assert.False(t, a.IsModified(-1))
	assert.False(t, a.IsModified(a.Len()))

	_, _, ok := a.Inline(1, DefaultOptions())
	assert.False(t, ok, "line mode has no inline overlay")

	_, _, ok = a.Inline(0, Options{Mode: ModeChars})
	assert.False(t, ok, "unchanged rows have no inline overlay")

	left, right, ok := a.Inline(1, Options{Mode: ModeChars})
	require.True(t, ok)
	assert.Equal(t, []Segment{{Text: "b", Kind: Removed}}, left)
	assert.Equal(t, []Segment{{Text: "x", Kind: Added}}, right)
}
