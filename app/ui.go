package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/wordwrap"
	"stormlightlabs.org/textcompare/textdiff"
)

// sessionState represents the current view of the TUI.
type sessionState int

const (
	compareView sessionState = iota
	formatPickerView
)

// DebounceDelay is how long option changes settle before the comparison is recomputed.
const DebounceDelay = 50 * time.Millisecond

const helpText = "j/k: scroll | n/p: next/prev change | i: ignore case | w: ignore whitespace | m: mode | f: format | " +
	"h: highlighting | y: scroll sync | c: copy patch | s: save defaults | q: quit"

// Session is everything needed to start the TUI.
type Session struct {
	Left            Source
	Right           Source
	Options         textdiff.Options
	Format          string
	SyntaxHighlight bool
	Logger          *ComparisonLogger
}

// model represents the state of the TUI application.
type model struct {
	state      sessionState
	left       Source
	right      Source
	opts       textdiff.Options
	format     string
	viewer     *DiffViewer
	formatList list.Model
	logger     *ComparisonLogger
	gen        int
	status     string
	width      int
	height     int
}

// formatItem represents an item in the format picker.
type formatItem struct {
	name string
}

func (i formatItem) FilterValue() string { return i.name }
func (i formatItem) Title() string       { return i.name }
func (i formatItem) Description() string {
	switch i.name {
	case textdiff.FormatJSON:
		return "pretty-print, then compare"
	case textdiff.FormatSQL:
		return "one clause per line, then compare"
	case textdiff.FormatPlain:
		return "compare as is"
	default:
		return "compare as is, highlight as " + i.name
	}
}

// recomputeMsg fires once option changes have settled. Only the latest generation is applied.
type recomputeMsg struct {
	gen int
}

// statusMsg is a transient message shown under the panes.
type statusMsg struct {
	text string
}

// NewModel creates the TUI model and computes the first comparison.
func NewModel(s Session) model {
	format := s.Format
	if format == "" {
		format = textdiff.FormatPlain
	}

	items := make([]list.Item, 0, len(textdiff.Formats()))
	for _, f := range textdiff.Formats() {
		items = append(items, formatItem{name: f})
	}
	formatList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	formatList.Title = "Format"

	m := model{
		state:      compareView,
		left:       s.Left,
		right:      s.Right,
		opts:       s.Options.Normalized(),
		format:     format,
		formatList: formatList,
		logger:     s.Logger,
	}
	m.viewer = NewDiffViewer(m.compare(), s.Left.Name, s.Right.Name, s.SyntaxHighlight)
	return m
}

// Init initializes the TUI application.
func (m model) Init() tea.Cmd {
	return nil
}

// compare runs the pipeline on the current inputs and settings.
func (m model) compare() textdiff.Comparison {
	start := time.Now()
	c := textdiff.Compare(m.left.Text, m.right.Text, m.format, m.opts)
	elapsed := time.Since(start)

	log.Debug("Compared", "left", m.left.Name, "right", m.right.Name, "format", m.format, "mode", m.opts.Mode,
		"changes", c.Result.Stats.Total, "elapsed", elapsed)
	m.logger.LogComparison(m.left.Name, m.right.Name, c, elapsed)
	return c
}

// scheduleRecompute bumps the generation and arms the debounce timer for it.
func (m *model) scheduleRecompute() tea.Cmd {
	m.gen++
	gen := m.gen
	return tea.Tick(DebounceDelay, func(time.Time) tea.Msg {
		return recomputeMsg{gen: gen}
	})
}

// Update handles messages and updates the model accordingly.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formatList.SetSize(m.width-4, m.height-4)
		m.viewer.Update(tea.WindowSizeMsg{Width: m.width, Height: m.viewerHeight()})
		return m, nil

	case recomputeMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.viewer.SetComparison(m.compare())
		return m, nil

	case statusMsg:
		m.status = msg.text
		return m, nil

	case tea.KeyMsg:
		if m.state == formatPickerView {
			return m.updateFormatPicker(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "i":
			m.opts.IgnoreCase = !m.opts.IgnoreCase
			return m, m.scheduleRecompute()
		case "w":
			m.opts.IgnoreWhitespace = !m.opts.IgnoreWhitespace
			return m, m.scheduleRecompute()
		case "m":
			m.opts.Mode = nextMode(m.opts.Mode)
			return m, m.scheduleRecompute()
		case "f":
			m.state = formatPickerView
			return m, nil
		case "c":
			return m, m.copyPatch()
		case "s":
			return m, m.saveDefaults()
		}
	}

	_, cmd := m.viewer.Update(msg)
	return m, cmd
}

func (m model) updateFormatPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.formatList.FilterState() != list.Filtering {
			m.state = compareView
			return m, nil
		}
	case "enter":
		if m.formatList.FilterState() != list.Filtering {
			m.state = compareView
			if item, ok := m.formatList.SelectedItem().(formatItem); ok && item.name != m.format {
				m.format = item.name
				return m, m.scheduleRecompute()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.formatList, cmd = m.formatList.Update(msg)
	return m, cmd
}

// nextMode cycles through the comparison modes.
func nextMode(mode textdiff.Mode) textdiff.Mode {
	modes := textdiff.Modes()
	for i, md := range modes {
		if md == mode {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

// copyPatch copies the unified patch of the current comparison to the clipboard.
func (m model) copyPatch() tea.Cmd {
	c := m.viewer.Comparison()
	left, right := m.left.Name, m.right.Name
	return func() tea.Msg {
		patch, err := textdiff.Unified(left, right, c.Left, c.Right, c.Options)
		if err != nil {
			return statusMsg{fmt.Sprintf("failed to build patch: %v", err)}
		}
		if patch == "" {
			return statusMsg{"Nothing to copy: files are identical"}
		}
		if err := clipboard.WriteAll(patch); err != nil {
			return statusMsg{fmt.Sprintf("failed to copy to clipboard: %v", err)}
		}
		return statusMsg{"Patch copied to clipboard"}
	}
}

// saveDefaults stores the current options and format in the config file.
func (m model) saveDefaults() tea.Cmd {
	opts, format := m.opts, m.format
	return func() tea.Msg {
		if err := SaveDefaults(opts, format); err != nil {
			return statusMsg{err.Error()}
		}
		return statusMsg{"Defaults saved"}
	}
}

func (m model) help() string {
	if m.width <= 0 {
		return helpText
	}
	return wordwrap.String(helpText, m.width)
}

// viewerHeight is the terminal height minus the title, options, status and help lines.
func (m model) viewerHeight() int {
	footer := 1 + strings.Count(m.help(), "\n") + 1
	return max(m.height-2-footer, viewerChrome+1)
}

// View renders the TUI.
func (m model) View() string {
	if m.state == formatPickerView {
		return m.formatPickerView()
	}

	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Render("Text Compare")

	b.WriteString(title + "\n")
	b.WriteString(statsStyle.Render(m.optionsLine()) + "\n")
	b.WriteString(m.viewer.View())

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString("\n" + statsStyle.Render(m.status) + "\n")
	b.WriteString(helpStyle.Render(m.help()))

	return b.String()
}

func (m model) optionsLine() string {
	return fmt.Sprintf("Mode: %s | Ignore case: %t | Ignore whitespace: %t | Format: %s | Highlighting: %t",
		m.opts.Mode, m.opts.IgnoreCase, m.opts.IgnoreWhitespace, m.format, m.viewer.syntaxHighlight)
}

// formatPickerView renders the format selection list.
func (m model) formatPickerView() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Render("Select Format")

	b.WriteString(title + "\n\n")

	style := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("205"))
	b.WriteString(style.Render(m.formatList.View()))
	b.WriteString("\n\nEnter: Select | Esc: Back | /: Filter")

	return b.String()
}
