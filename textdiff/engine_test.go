package textdiff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// samplePairs is a small corpus reused by the property tests.
var samplePairs = [][2]string{
	{"", ""},
	{"", "a\nb"},
	{"a\nb", ""},
	{"a\nb\nc", "a\nb\nc"},
	{"a\nb\nc", "a\nx\nc"},
	{"a\nb", "a\nb\nc"},
	{"a\n", "a"},
	{"\n\n", "\n"},
	{"Hello World", "hello world"},
	{"Hello  World\nfoo\n", "hello world\nFoo\nbar\n"},
	{"  indented\ttab\nline", "indented tab\nLINE\nextra"},
	{"one\ntwo\nthree\nfour\nfive", "zero\none\nthree\nFOUR\nfive\nsix"},
	{"x\ny\nz", "z\ny\nx"},
	{"same\n\n\nblank", "same\n\nblank\n\n"},
}

func allOptions() []Options {
	var out []Options
	for _, mode := range Modes() {
		for _, ic := range []bool{false, true} {
			for _, iw := range []bool{false, true} {
				out = append(out, Options{Mode: mode, IgnoreCase: ic, IgnoreWhitespace: iw, ContextSize: DefaultContextSize})
			}
		}
	}
	return out
}

func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		opts Options
		want Stats
	}{
		{
			name: "identical",
			a:    "a\nb\nc",
			b:    "a\nb\nc",
			opts: DefaultOptions(),
			want: Stats{Identical: 3},
		},
		{
			name: "one modified line",
			a:    "a\nb\nc",
			b:    "a\nx\nc",
			opts: DefaultOptions(),
			want: Stats{Additions: 1, Deletions: 1, Modifications: 1, Total: 1, Identical: 2},
		},
		{
			name: "one added line",
			a:    "a\nb",
			b:    "a\nb\nc",
			opts: DefaultOptions(),
			want: Stats{Additions: 1, Total: 1, Identical: 2},
		},
		{
			name: "ignore case",
			a:    "Hello World",
			b:    "hello world",
			opts: Options{IgnoreCase: true},
			want: Stats{Identical: 1},
		},
		{
			name: "case significant by default",
			a:    "Hello World",
			b:    "hello world",
			opts: DefaultOptions(),
			want: Stats{Additions: 1, Deletions: 1, Modifications: 1, Total: 1},
		},
		{
			name: "ignore whitespace",
			a:    "a  b\n c\t",
			b:    "a b\nc",
			opts: Options{IgnoreWhitespace: true},
			want: Stats{Identical: 2},
		},
		{
			name: "empty left",
			a:    "",
			b:    "a\nb",
			opts: DefaultOptions(),
			want: Stats{Additions: 2, Total: 2},
		},
		{
			name: "empty right",
			a:    "a\nb\n",
			b:    "",
			opts: DefaultOptions(),
			want: Stats{Deletions: 2, Total: 2},
		},
		{
			name: "more deletions than additions",
			a:    "a\nb\nc\nd",
			b:    "a\nx",
			opts: DefaultOptions(),
			want: Stats{Additions: 1, Deletions: 3, Modifications: 1, Total: 3, Identical: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.a, tt.b, tt.opts)
			assert.Equal(t, tt.want, got.Stats)
		})
	}
}

func TestCompute_Runs(t *testing.T) {
	got := Compute("a\nb\nc", "a\nx\nc", DefaultOptions())
	require.Equal(t, []Run{
		{Kind: Unchanged, Value: "a\n", Count: 1},
		{Kind: Removed, Value: "b\n", Count: 1},
		{Kind: Added, Value: "x\n", Count: 1},
		{Kind: Unchanged, Value: "c", Count: 1},
	}, got.Changes)

	got = Compute("a\nb", "a\nb\nc", DefaultOptions())
	require.Equal(t, []Run{
		{Kind: Unchanged, Value: "a\nb", Count: 2},
		{Kind: Added, Value: "c", Count: 1},
	}, got.Changes)

	got = Compute("", "", DefaultOptions())
	require.Empty(t, got.Changes)
	require.Equal(t, Stats{}, got.Stats)
}

func TestCompute_RunValuesKeepOriginalText(t *testing.T) {
	got := Compute("Alpha\nBeta\n", "alpha\nGamma\n", Options{IgnoreCase: true})
	require.Len(t, got.Changes, 3)
	assert.Equal(t, Run{Kind: Unchanged, Value: "Alpha\n", Count: 1}, got.Changes[0])
	assert.Equal(t, Run{Kind: Removed, Value: "Beta\n", Count: 1}, got.Changes[1])
	assert.Equal(t, Run{Kind: Added, Value: "Gamma\n", Count: 1}, got.Changes[2])
}

func TestCompute_Identity(t *testing.T) {
	for _, pair := range samplePairs {
		for _, text := range pair {
			for _, opts := range allOptions() {
				got := Compute(text, text, opts)
				assert.Equal(t, Stats{Identical: len(SplitLines(text))}, got.Stats, "text %q opts %+v", text, opts)
			}
		}
	}
}

func TestCompute_StatsConsistency(t *testing.T) {
	for _, pair := range samplePairs {
		for _, opts := range allOptions() {
			st := Compute(pair[0], pair[1], opts).Stats
			assert.Equal(t, min(st.Additions, st.Deletions), st.Modifications)
			assert.Equal(t, st.Additions+st.Deletions-st.Modifications, st.Total)
		}
	}
}

func TestCompute_RunCountsMatchValues(t *testing.T) {
	for _, pair := range samplePairs {
		for _, run := range Compute(pair[0], pair[1], DefaultOptions()).Changes {
			assert.Equal(t, run.Count, countLines(run.Value), "run %+v", run)
		}
	}
}

func TestCompute_ReconstructsLeftText(t *testing.T) {
	for _, pair := range samplePairs {
		var b strings.Builder
		for _, run := range Compute(pair[0], pair[1], DefaultOptions()).Changes {
			if run.Kind != Added {
				b.WriteString(run.Value)
			}
		}
		assert.Equal(t, pair[0], b.String())
	}
}

func TestCompute_Deterministic(t *testing.T) {
	for _, pair := range samplePairs {
		for _, opts := range allOptions() {
			first := Compute(pair[0], pair[1], opts)
			for i := 0; i < 3; i++ {
				require.Equal(t, first, Compute(pair[0], pair[1], opts))
			}
		}
	}
}

func TestCompute_TogglesNeverIncreaseTotal(t *testing.T) {
	for _, pair := range samplePairs {
		base := Compute(pair[0], pair[1], DefaultOptions()).Stats.Total
		for _, opts := range []Options{
			{IgnoreCase: true},
			{IgnoreWhitespace: true},
			{IgnoreCase: true, IgnoreWhitespace: true},
		} {
			got := Compute(pair[0], pair[1], opts).Stats.Total
			assert.LessOrEqual(t, got, base, "pair %q opts %+v", pair, opts)
		}
	}
}

func TestCompute_LargeInput(t *testing.T) {
	var a, b []string
	for i := 0; i < 2000; i++ {
		a = append(a, fmt.Sprintf("line %d", i))
		if i%100 == 0 {
			b = append(b, fmt.Sprintf("changed %d", i))
			continue
		}
		b = append(b, fmt.Sprintf("line %d", i))
	}
	st := Compute(strings.Join(a, "\n"), strings.Join(b, "\n"), DefaultOptions()).Stats
	assert.Equal(t, Stats{Additions: 20, Deletions: 20, Modifications: 20, Total: 20, Identical: 1980}, st)
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"\n", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
		{"a\n\n", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countLines(tt.value), "countLines(%q)", tt.value)
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{""}, SplitLines("\n"))
	assert.Equal(t, []string{"a"}, SplitLines("a\n"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb"))
}

func TestOptions_Normalized(t *testing.T) {
	opts := Options{Mode: Mode(42), ContextSize: -5}.Normalized()
	assert.Equal(t, ModeLines, opts.Mode)
	assert.Equal(t, DefaultContextSize, opts.ContextSize)

	opts = Options{Mode: ModeWords, ContextSize: 0}.Normalized()
	assert.Equal(t, ModeWords, opts.Mode)
	assert.Equal(t, 0, opts.ContextSize)

	// Out-of-range values never make Compute fail.
	st := Compute("a", "b", Options{Mode: Mode(-1), ContextSize: -1}).Stats
	assert.Equal(t, 1, st.Total)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"lines", ModeLines},
		{"chars", ModeChars},
		{"characters", ModeChars},
		{"Words", ModeWords},
		{"sentences", ModeSentences},
		{"", ModeLines},
		{"bogus", ModeLines},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseMode(tt.in), "ParseMode(%q)", tt.in)
	}
	for _, m := range Modes() {
		assert.Equal(t, m, ParseMode(m.String()))
	}
}
