package app

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"stormlightlabs.org/textcompare/textdiff"
)

const (
	paneSeparator = " │ "
	tabWidth      = 4
	gutterWidth   = 6 // marker column plus "%4d│"
)

var (
	removedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Background(lipgloss.Color("52"))
	addedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Background(lipgloss.Color("22"))
	removedSpanStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("124")).Bold(true)
	addedSpanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("28")).Bold(true)
	emptyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Faint(true)
	gutterStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	markerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	statsStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sameStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
)

// highlighter colors unchanged rows with chroma. A nil *highlighter leaves text alone.
type highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// newHighlighter returns a highlighter for a format name, or nil when the format names no known language.
func newHighlighter(format string) *highlighter {
	if format == "" || format == textdiff.FormatPlain {
		return nil
	}

	lexer := lexers.Get(format)
	if lexer == nil {
		return nil
	}

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return nil
	}

	return &highlighter{lexer: lexer, style: style, formatter: formatter}
}

func (h *highlighter) highlight(content string) string {
	if h == nil || content == "" {
		return content
	}

	iterator, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var highlighted strings.Builder
	if err := h.formatter.Format(&highlighted, h.style, iterator); err != nil {
		return content
	}

	// Lexers may append a newline to their input.
	return strings.ReplaceAll(highlighted.String(), "\n", "")
}

// paneRenderer turns alignment rows into fixed-width terminal lines.
type paneRenderer struct {
	comparison  textdiff.Comparison
	leftWidth   int
	rightWidth  int
	highlighter *highlighter
}

func newPaneRenderer(c textdiff.Comparison, leftWidth, rightWidth int, highlight bool) *paneRenderer {
	r := &paneRenderer{
		comparison: c,
		leftWidth:  max(leftWidth, gutterWidth+1),
		rightWidth: max(rightWidth, gutterWidth+1),
	}
	if highlight {
		r.highlighter = newHighlighter(c.Format)
	}
	return r
}

// render returns one line per alignment row for each side, unmarked.
func (r *paneRenderer) render() (left, right []string) {
	a := r.comparison.Alignment
	left = make([]string, 0, a.Len())
	right = make([]string, 0, a.Len())

	for i := 0; i < a.Len(); i++ {
		leftSegs, rightSegs, _ := a.Inline(i, r.comparison.Options)
		left = append(left, r.row(a.Left[i], leftSegs, r.leftWidth))
		right = append(right, r.row(a.Right[i], rightSegs, r.rightWidth))
	}
	return left, right
}

// row renders one record. The first column is left blank for the block marker.
func (r *paneRenderer) row(rec textdiff.LineRecord, segs []textdiff.Segment, width int) string {
	gutter := "    │"
	if rec.Kind != textdiff.Empty {
		gutter = fmt.Sprintf("%4d│", rec.Number)
	}

	return fit(" "+gutterStyle.Render(gutter)+r.content(rec, segs, width), width)
}

func (r *paneRenderer) content(rec textdiff.LineRecord, segs []textdiff.Segment, width int) string {
	text := expandTabs(rec.Content)
	switch rec.Kind {
	case textdiff.Empty:
		return emptyStyle.Render(strings.Repeat("╱", max(width-gutterWidth, 0)))
	case textdiff.Unchanged:
		return r.highlighter.highlight(text)
	}

	base, span := removedStyle, removedSpanStyle
	if rec.Kind == textdiff.Added {
		base, span = addedStyle, addedSpanStyle
	}
	if len(segs) == 0 {
		return base.Render(text)
	}

	var b strings.Builder
	for _, seg := range segs {
		style := base
		if seg.Kind != textdiff.Unchanged {
			style = span
		}
		b.WriteString(style.Render(expandTabs(seg.Text)))
	}
	return b.String()
}

// fit truncates or pads s to exactly width printable cells.
func fit(s string, width int) string {
	w := ansi.PrintableRuneWidth(s)
	if w > width {
		return truncate.String(s, uint(width))
	}
	return s + strings.Repeat(" ", width-w)
}

// markRow replaces the blank marker column of a rendered row with the selected-block marker.
func markRow(row string) string {
	return markerStyle.Render("▌") + strings.TrimPrefix(row, " ")
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// statsLine summarizes a comparison in one line.
func statsLine(st textdiff.Stats) string {
	if st.Total == 0 {
		return sameStyle.Render("Files are identical") + statsStyle.Render(fmt.Sprintf(" (%d lines)", st.Identical))
	}
	return statsStyle.Render(fmt.Sprintf("%d changes: ", st.Total)) +
		addedStyle.Render(fmt.Sprintf("+%d", st.Additions)) + " " +
		removedStyle.Render(fmt.Sprintf("-%d", st.Deletions)) +
		statsStyle.Render(fmt.Sprintf(" | %d modified | %d identical", st.Modifications, st.Identical))
}

// paneWidths splits width into two panes around the separator.
func paneWidths(width int) (left, right int) {
	available := max(width-ansi.PrintableRuneWidth(paneSeparator), 0)
	left = available / 2
	right = available - left
	return left, right
}

// RenderReport renders a comparison for non-interactive output: a stats line, then the side-by-side rows at the given total width.
func RenderReport(c textdiff.Comparison, width int, highlight bool) string {
	var b strings.Builder
	b.WriteString(statsLine(c.Result.Stats) + "\n")
	if c.Identical() {
		return b.String()
	}

	leftWidth, rightWidth := paneWidths(width)
	left, right := newPaneRenderer(c, leftWidth, rightWidth, highlight).render()

	b.WriteString("\n")
	for i := range left {
		b.WriteString(left[i] + paneSeparator + right[i] + "\n")
	}
	return b.String()
}
