package textdiff

import "strings"

// Mode is the unit of comparison used for inline rendering.
type Mode int

const (
	ModeLines Mode = iota
	ModeChars
	ModeWords
	ModeSentences
)

// DefaultContextSize is the number of unchanged lines kept around each hunk of a unified patch.
const DefaultContextSize = 3

func (m Mode) String() string {
	switch m {
	case ModeLines:
		return "lines"
	case ModeChars:
		return "chars"
	case ModeWords:
		return "words"
	case ModeSentences:
		return "sentences"
	default:
		return "lines"
	}
}

// ParseMode converts a mode name to a Mode. Unknown names fall back to ModeLines.
func ParseMode(name string) Mode {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "chars", "characters":
		return ModeChars
	case "words":
		return ModeWords
	case "sentences":
		return ModeSentences
	default:
		return ModeLines
	}
}

// Modes returns every mode in cycling order.
func Modes() []Mode {
	return []Mode{ModeLines, ModeChars, ModeWords, ModeSentences}
}

// Options configures a comparison. A given Options value and pair of texts fully determine the result.
type Options struct {
	Mode             Mode
	IgnoreCase       bool
	IgnoreWhitespace bool
	ContextSize      int
}

// DefaultOptions returns line mode with case and whitespace significant.
func DefaultOptions() Options {
	return Options{
		Mode:        ModeLines,
		ContextSize: DefaultContextSize,
	}
}

// Normalized returns a copy of o with invalid values clamped to safe defaults.
func (o Options) Normalized() Options {
	if o.ContextSize < 0 {
		o.ContextSize = DefaultContextSize
	}
	if o.Mode < ModeLines || o.Mode > ModeSentences {
		o.Mode = ModeLines
	}
	return o
}

// key returns the comparison key for a line or token. Case is folded before whitespace is collapsed.
func (o Options) key(s string) string {
	return normalizeKey(s, o.IgnoreCase, o.IgnoreWhitespace)
}

func normalizeKey(s string, ignoreCase, ignoreWhitespace bool) string {
	if ignoreCase {
		s = strings.ToLower(s)
	}
	if ignoreWhitespace {
		s = strings.Join(strings.Fields(s), " ")
	}
	return s
}
