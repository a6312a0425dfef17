package textdiff

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// token is one unit handed to the sequence diff. Text is displayed; key is compared.
type token struct {
	text string
	key  string
}

// SplitLines splits text into lines without their '\n' terminators. A final newline does not start an extra line, so "a\n" and "a" both
// have one line, and "" has none.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// joinLines rebuilds the text of lines[from:to] as it appears in a source text, terminating every line except the source's unterminated
// last line.
func joinLines(lines []string, from, to int, terminated bool) string {
	var b strings.Builder
	for i := from; i < to && i < len(lines); i++ {
		b.WriteString(lines[i])
		if i < len(lines)-1 || terminated {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func lineTokens(lines []string, opts Options) []token {
	toks := make([]token, len(lines))
	for i, l := range lines {
		toks[i] = token{text: l, key: opts.key(l)}
	}
	return toks
}

// splitUnits breaks a single line into the units compared by mode.
func splitUnits(s string, mode Mode) []string {
	var units []string
	switch mode {
	case ModeChars:
		iter := graphemes.FromString(s)
		for iter.Next() {
			units = append(units, iter.Value())
		}
	case ModeWords:
		iter := words.FromString(s)
		for iter.Next() {
			units = append(units, iter.Value())
		}
	case ModeSentences:
		iter := sentences.FromString(s)
		for iter.Next() {
			units = append(units, iter.Value())
		}
	default:
		if s != "" {
			units = append(units, s)
		}
	}
	return units
}

func isBlank(s string) bool {
	return s != "" && strings.TrimSpace(s) == ""
}

// inlineTokens tokenizes a line for inline diffing. With ignoreWhitespace, whitespace runs collapse into a single token keyed " ", and
// leading/trailing whitespace is returned separately as head and tail so it never takes part in the comparison.
func inlineTokens(s string, mode Mode, ignoreCase, ignoreWhitespace bool) (head string, toks []token, tail string) {
	units := splitUnits(s, mode)
	for _, u := range units {
		if ignoreWhitespace && isBlank(u) && len(toks) > 0 && isBlank(toks[len(toks)-1].text) {
			toks[len(toks)-1].text += u
			continue
		}
		toks = append(toks, token{text: u})
	}

	if ignoreWhitespace {
		if len(toks) > 0 && isBlank(toks[0].text) {
			head = toks[0].text
			toks = toks[1:]
		}
		if len(toks) > 0 && isBlank(toks[len(toks)-1].text) {
			tail = toks[len(toks)-1].text
			toks = toks[:len(toks)-1]
		}
	}

	for i := range toks {
		if ignoreWhitespace && isBlank(toks[i].text) {
			toks[i].key = " "
			continue
		}
		toks[i].key = normalizeKey(toks[i].text, ignoreCase, ignoreWhitespace)
	}
	return head, toks, tail
}
