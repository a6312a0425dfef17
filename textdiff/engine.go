package textdiff

import "strings"

// Run is a contiguous span of the line diff. Value holds the run's lines as they appear in the source text (the left text for unchanged
// runs), each terminated by '\n' unless it is the source's unterminated last line. Count is the number of lines in the run.
type Run struct {
	Kind  Kind
	Value string
	Count int
}

// Stats aggregates line-level change counts.
//
// Modifications is min(Additions, Deletions): overlapping added and removed lines count as changed lines. Total is the number of distinct
// change locations, Additions + Deletions - Modifications.
type Stats struct {
	Additions     int
	Deletions     int
	Modifications int
	Total         int
	Identical     int
}

// Result is the output of Compute.
type Result struct {
	Changes []Run
	Stats   Stats
}

// Compute diffs text1 against text2 line by line and aggregates statistics. Statistics are always line-granular regardless of opts.Mode.
// Compute is total: every pair of strings produces a result.
func Compute(text1, text2 string, opts Options) Result {
	opts = opts.Normalized()
	runs := lineRuns(text1, text2, opts)
	return Result{Changes: runs, Stats: statsOf(runs)}
}

// lineRuns runs the line diff on normalized keys and maps the result back onto the original lines.
func lineRuns(text1, text2 string, opts Options) []Run {
	lines1 := SplitLines(text1)
	lines2 := SplitLines(text2)
	term1 := strings.HasSuffix(text1, "\n")
	term2 := strings.HasSuffix(text2, "\n")

	spans := diffTokens(lineTokens(lines1, opts), lineTokens(lines2, opts))
	runs := make([]Run, 0, len(spans))
	for _, s := range spans {
		if s.kind == Added {
			runs = append(runs, Run{
				Kind:  Added,
				Value: joinLines(lines2, s.newFrom, s.newTo, term2),
				Count: s.newTo - s.newFrom,
			})
			continue
		}
		runs = append(runs, Run{
			Kind:  s.kind,
			Value: joinLines(lines1, s.oldFrom, s.oldTo, term1),
			Count: s.oldTo - s.oldFrom,
		})
	}
	return runs
}

func statsOf(runs []Run) Stats {
	var st Stats
	for _, r := range runs {
		n := countLines(r.Value)
		switch r.Kind {
		case Added:
			st.Additions += n
		case Removed:
			st.Deletions += n
		default:
			st.Identical += n
		}
	}
	st.Modifications = min(st.Additions, st.Deletions)
	st.Total = st.Additions + st.Deletions - st.Modifications
	return st
}

// countLines counts the lines in a run's text: one per '\n', plus one for a final fragment without a trailing separator.
func countLines(value string) int {
	parts := strings.Split(value, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return len(parts)
}
