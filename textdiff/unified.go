package textdiff

import (
	"github.com/aymanbagabas/go-udiff"
)

// Unified renders the line diff of text1 and text2 as a unified patch with opts.ContextSize lines of context. Hunks follow the same
// normalized comparison as Compute, so lines that differ only by ignored case or whitespace appear as context (with the text1 version).
// Both sides are treated as newline-terminated. Identical inputs produce "".
func Unified(oldLabel, newLabel, text1, text2 string, opts Options) (string, error) {
	opts = opts.Normalized()
	lines1 := SplitLines(text1)
	lines2 := SplitLines(text2)

	edits := unifiedEdits(lines1, lines2, lineRuns(text1, text2, opts))
	if len(edits) == 0 {
		return "", nil
	}
	return udiff.ToUnified(oldLabel, newLabel, joinLines(lines1, 0, len(lines1), true), edits, opts.ContextSize)
}

// unifiedEdits converts line runs into byte-offset edits against the newline-terminated left text. A modification pair becomes a single
// replacing edit.
func unifiedEdits(lines1, lines2 []string, runs []Run) []udiff.Edit {
	var edits []udiff.Edit
	off, l, r := 0, 0, 0

	for i := 0; i < len(runs); i++ {
		run := runs[i]
		switch run.Kind {
		case Unchanged:
			off += len(joinLines(lines1, l, l+run.Count, true))
			l += run.Count
			r += run.Count
		case Removed:
			removed := joinLines(lines1, l, l+run.Count, true)
			e := udiff.Edit{Start: off, End: off + len(removed)}
			off = e.End
			l += run.Count
			if i+1 < len(runs) && runs[i+1].Kind == Added {
				e.New = joinLines(lines2, r, r+runs[i+1].Count, true)
				r += runs[i+1].Count
				i++
			}
			edits = append(edits, e)
		case Added:
			edits = append(edits, udiff.Edit{Start: off, End: off, New: joinLines(lines2, r, r+run.Count, true)})
			r += run.Count
		}
	}
	return edits
}
