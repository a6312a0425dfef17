package textdiff

// LineRecord is one rendered row on one side of the comparison.
type LineRecord struct {
	Content string
	Kind    Kind
	Number  int // 1-based line number in the source text; 0 for Empty rows
}

// Alignment is a pair of index-aligned row sequences: Left[i] and Right[i] render on the same visual row. Both slices always have the same
// length, and at most one of Left[i], Right[i] is Empty.
type Alignment struct {
	Left  []LineRecord
	Right []LineRecord
}

// Align builds the side-by-side rows for text1 and text2. The normalized line diff decides how rows are classified and paired; row content
// and line numbers always come from the original lines.
func Align(text1, text2 string, opts Options) Alignment {
	opts = opts.Normalized()
	return alignRuns(SplitLines(text1), SplitLines(text2), lineRuns(text1, text2, opts))
}

// alignRuns walks runs with independent cursors into lines1 and lines2. A removed run immediately followed by an added run is a
// modification pair and is zipped positionally; every other changed run is padded on the opposite side. Runs are consumed at most once.
func alignRuns(lines1, lines2 []string, runs []Run) Alignment {
	var a Alignment
	l, r := 0, 0

	for i := 0; i < len(runs); i++ {
		run := runs[i]
		switch run.Kind {
		case Unchanged:
			a.zip(take(lines1, &l, run.Count, Unchanged), take(lines2, &r, run.Count, Unchanged))
		case Removed:
			left := take(lines1, &l, run.Count, Removed)
			var right []LineRecord
			if i+1 < len(runs) && runs[i+1].Kind == Added {
				right = take(lines2, &r, runs[i+1].Count, Added)
				i++
			}
			a.zip(left, right)
		case Added:
			a.zip(nil, take(lines2, &r, run.Count, Added))
		}
	}
	return a
}

// take returns up to n records starting at *at, advancing the cursor.
func take(lines []string, at *int, n int, kind Kind) []LineRecord {
	recs := make([]LineRecord, 0, n)
	for k := 0; k < n && *at < len(lines); k++ {
		recs = append(recs, LineRecord{Content: lines[*at], Kind: kind, Number: *at + 1})
		*at++
	}
	return recs
}

func (a *Alignment) zip(left, right []LineRecord) {
	n := max(len(left), len(right))
	for k := 0; k < n; k++ {
		a.Left = append(a.Left, recordAt(left, k))
		a.Right = append(a.Right, recordAt(right, k))
	}
}

func recordAt(recs []LineRecord, k int) LineRecord {
	if k < len(recs) {
		return recs[k]
	}
	return LineRecord{Kind: Empty}
}

// Len returns the number of rows.
func (a Alignment) Len() int {
	return len(a.Left)
}

// IsModified reports whether row i is part of a modification pair, i.e. a removed line rendered opposite an added line.
func (a Alignment) IsModified(i int) bool {
	if i < 0 || i >= len(a.Left) || i >= len(a.Right) {
		return false
	}
	return a.Left[i].Kind == Removed && a.Right[i].Kind == Added
}

// Inline computes the inline overlay for row i. ok is false when the row is not a modification pair or opts.Mode is ModeLines.
func (a Alignment) Inline(i int, opts Options) (left, right []Segment, ok bool) {
	opts = opts.Normalized()
	if opts.Mode == ModeLines || !a.IsModified(i) {
		return nil, nil, false
	}
	left, right = Inline(a.Left[i].Content, a.Right[i].Content, opts.Mode, opts.IgnoreCase, opts.IgnoreWhitespace)
	return left, right, true
}
