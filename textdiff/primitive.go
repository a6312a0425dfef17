package textdiff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Kind classifies a change run, an inline segment, or a line record.
type Kind int

const (
	Unchanged Kind = iota
	Added
	Removed
	Empty // placeholder row with no source line; only used by LineRecord
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// span is one run of a sequence diff, expressed as half-open token ranges into the old and new sequences.
type span struct {
	kind           Kind
	oldFrom, oldTo int
	newFrom, newTo int
}

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
	surrogates   = surrogateMax - surrogateMin + 1
)

// maxTokens is the number of distinct keys that can be encoded as valid, non-surrogate runes.
const maxTokens = utf8.MaxRune - surrogates

// tokenRune encodes the i-th distinct key. Surrogates are skipped since they do not survive a rune/string round trip inside
// diffmatchpatch.
func tokenRune(i int) rune {
	r := rune(i + 1)
	if r >= surrogateMin {
		r += surrogates
	}
	return r
}

// diffTokens computes a minimal edit script between a and b, comparing tokens by key. Each distinct key is mapped to one rune (the
// DiffLinesToRunes technique) so that diffmatchpatch diffs whole tokens. Within a change group removed spans precede added spans.
func diffTokens(a, b []token) []span {
	index := make(map[string]rune)
	encode := func(toks []token) ([]rune, bool) {
		runes := make([]rune, len(toks))
		for i, t := range toks {
			r, ok := index[t.key]
			if !ok {
				if len(index) >= maxTokens {
					return nil, false
				}
				r = tokenRune(len(index))
				index[t.key] = r
			}
			runes[i] = r
		}
		return runes, true
	}

	ra, okA := encode(a)
	rb, okB := encode(b)
	if !okA || !okB {
		return replaceAll(len(a), len(b))
	}

	dmp := diffmatchpatch.New()
	// No deadline: bisect runs to completion, so output is minimal and the same for the same input.
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(ra, rb, false)

	var spans []span
	i, j := 0, 0
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		if n == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			spans = appendSpan(spans, span{kind: Unchanged, oldFrom: i, oldTo: i + n, newFrom: j, newTo: j + n})
			i += n
			j += n
		case diffmatchpatch.DiffDelete:
			spans = appendSpan(spans, span{kind: Removed, oldFrom: i, oldTo: i + n, newFrom: j, newTo: j})
			i += n
		case diffmatchpatch.DiffInsert:
			spans = appendSpan(spans, span{kind: Added, oldFrom: i, oldTo: i, newFrom: j, newTo: j + n})
			j += n
		}
	}
	return spans
}

// appendSpan appends s, extending the previous span when both have the same kind.
func appendSpan(spans []span, s span) []span {
	if n := len(spans); n > 0 && spans[n-1].kind == s.kind {
		spans[n-1].oldTo = s.oldTo
		spans[n-1].newTo = s.newTo
		return spans
	}
	return append(spans, s)
}

func replaceAll(oldLen, newLen int) []span {
	var spans []span
	if oldLen > 0 {
		spans = append(spans, span{kind: Removed, oldTo: oldLen})
	}
	if newLen > 0 {
		spans = append(spans, span{kind: Added, oldFrom: oldLen, oldTo: oldLen, newTo: newLen})
	}
	return spans
}
