package textdiff

// Comparison is everything a presentation layer needs for one render: the formatted inputs, statistics, aligned rows and navigation stops.
// A Comparison is never updated in place; changing either text or any option means calling Compare again.
type Comparison struct {
	Format    string
	Options   Options
	Left      string // text1 after formatting
	Right     string // text2 after formatting
	Result    Result
	Alignment Alignment
	Blocks    []int
}

// Compare runs the full pipeline: formatting, line diff and statistics, row alignment, and change-block indexing.
func Compare(text1, text2, format string, opts Options) Comparison {
	opts = opts.Normalized()
	left := Format(text1, format)
	right := Format(text2, format)

	runs := lineRuns(left, right, opts)
	alignment := alignRuns(SplitLines(left), SplitLines(right), runs)

	return Comparison{
		Format:    format,
		Options:   opts,
		Left:      left,
		Right:     right,
		Result:    Result{Changes: runs, Stats: statsOf(runs)},
		Alignment: alignment,
		Blocks:    Blocks(alignment),
	}
}

// Identical reports whether the comparison found no changes.
func (c Comparison) Identical() bool {
	return c.Result.Stats.Total == 0
}
