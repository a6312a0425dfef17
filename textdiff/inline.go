package textdiff

import "strings"

// Segment is a fragment of one side of an inline diff.
type Segment struct {
	Text string
	Kind Kind
}

// Inline diffs two single lines at the granularity of mode. The left result holds unchanged and removed fragments in order; the right
// result holds unchanged and added fragments. Both share the same unchanged backbone, but each side shows its own original text, so case
// survives ignoreCase. Newlines inside either line are dropped first.
//
// In ModeLines each side is a single segment: unchanged when the normalized lines match, removed/added otherwise.
func Inline(left, right string, mode Mode, ignoreCase, ignoreWhitespace bool) (leftSegs, rightSegs []Segment) {
	left = strings.ReplaceAll(left, "\n", "")
	right = strings.ReplaceAll(right, "\n", "")

	if mode <= ModeLines || mode > ModeSentences {
		if normalizeKey(left, ignoreCase, ignoreWhitespace) == normalizeKey(right, ignoreCase, ignoreWhitespace) {
			return appendSegment(nil, left, Unchanged), appendSegment(nil, right, Unchanged)
		}
		return appendSegment(nil, left, Removed), appendSegment(nil, right, Added)
	}

	lHead, lToks, lTail := inlineTokens(left, mode, ignoreCase, ignoreWhitespace)
	rHead, rToks, rTail := inlineTokens(right, mode, ignoreCase, ignoreWhitespace)

	leftSegs = appendSegment(leftSegs, lHead, Unchanged)
	rightSegs = appendSegment(rightSegs, rHead, Unchanged)
	for _, s := range diffTokens(lToks, rToks) {
		switch s.kind {
		case Unchanged:
			leftSegs = appendSegment(leftSegs, joinTokens(lToks[s.oldFrom:s.oldTo]), Unchanged)
			rightSegs = appendSegment(rightSegs, joinTokens(rToks[s.newFrom:s.newTo]), Unchanged)
		case Removed:
			leftSegs = appendSegment(leftSegs, joinTokens(lToks[s.oldFrom:s.oldTo]), Removed)
		case Added:
			rightSegs = appendSegment(rightSegs, joinTokens(rToks[s.newFrom:s.newTo]), Added)
		}
	}
	leftSegs = appendSegment(leftSegs, lTail, Unchanged)
	rightSegs = appendSegment(rightSegs, rTail, Unchanged)
	return leftSegs, rightSegs
}

func joinTokens(toks []token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.text)
	}
	return b.String()
}

// appendSegment appends text as a kind segment, merging into the previous segment when the kinds match. Empty text is dropped.
func appendSegment(segs []Segment, text string, kind Kind) []Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Kind == kind {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Text: text, Kind: kind})
}
