package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"stormlightlabs.org/textcompare/textdiff"
)

// paneSide identifies a viewport when scroll sync is off.
type paneSide int

const (
	leftPane paneSide = iota
	rightPane
)

const (
	// viewerChrome is the stats line plus the pane title line.
	viewerChrome = 2
	scrollFrame  = 16 * time.Millisecond
)

// scrollStepMsg advances the smooth scroll of jump id by one frame.
type scrollStepMsg struct {
	id int
}

// DiffViewer represents the side-by-side viewer of one comparison.
type DiffViewer struct {
	leftViewport  viewport.Model
	rightViewport viewport.Model

	comparison      textdiff.Comparison
	leftTitle       string
	rightTitle      string
	syntaxHighlight bool
	scrollSync      bool
	activePane      paneSide
	width           int
	height          int

	// Rendered rows without the block marker; rebuilt when the comparison, width or highlighting changes.
	leftRows  []string
	rightRows []string

	nav          *Navigator
	jumpID       int
	scrollTarget int
}

// NewDiffViewer creates a viewer for c with the given pane titles.
func NewDiffViewer(c textdiff.Comparison, leftTitle, rightTitle string, syntaxHighlight bool) *DiffViewer {
	dv := &DiffViewer{
		leftViewport:    viewport.New(0, 0),
		rightViewport:   viewport.New(0, 0),
		comparison:      c,
		leftTitle:       leftTitle,
		rightTitle:      rightTitle,
		syntaxHighlight: syntaxHighlight,
		scrollSync:      true,
		nav:             NewNavigator(c.Blocks, DefaultResyncRows),
	}
	dv.renderDiff()
	return dv
}

// SetComparison swaps in a freshly computed comparison. The block selection is cleared and any jump in flight is dropped; the scroll
// position is kept.
func (dv *DiffViewer) SetComparison(c textdiff.Comparison) {
	dv.comparison = c
	dv.nav.Reset(c.Blocks)
	dv.jumpID++
	dv.renderDiff()
}

// Comparison returns the comparison on display.
func (dv *DiffViewer) Comparison() textdiff.Comparison {
	return dv.comparison
}

// Navigator exposes the block navigation state.
func (dv *DiffViewer) Navigator() *Navigator {
	return dv.nav
}

// Init initializes the diff viewer
func (dv *DiffViewer) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the diff viewer
func (dv *DiffViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		dv.width = msg.Width
		dv.height = msg.Height

		leftWidth, rightWidth := paneWidths(dv.width)
		dv.leftViewport.Width = leftWidth
		dv.rightViewport.Width = rightWidth
		dv.leftViewport.Height = max(dv.height-viewerChrome, 1)
		dv.rightViewport.Height = dv.leftViewport.Height

		dv.renderDiff()
		return dv, nil

	case scrollStepMsg:
		return dv, dv.step(msg.id)

	case tea.KeyMsg:
		switch msg.String() {
		case "h":
			dv.syntaxHighlight = !dv.syntaxHighlight
			dv.renderDiff()
			return dv, nil
		case "y":
			dv.scrollSync = !dv.scrollSync
			if dv.scrollSync {
				dv.rightViewport.SetYOffset(dv.leftViewport.YOffset)
			}
			return dv, nil
		case "tab":
			if !dv.scrollSync {
				dv.activePane = 1 - dv.activePane
			}
			return dv, nil
		case "n":
			return dv, dv.jump(textdiff.Next)
		case "p", "N":
			return dv, dv.jump(textdiff.Prev)
		}
	}

	return dv, dv.scroll(msg)
}

// scroll forwards msg to the viewports and keeps block selection in step with the new position.
func (dv *DiffViewer) scroll(msg tea.Msg) tea.Cmd {
	var leftCmd, rightCmd tea.Cmd

	prevLeftY := dv.leftViewport.YOffset
	prevRightY := dv.rightViewport.YOffset

	if dv.scrollSync || dv.activePane == leftPane {
		dv.leftViewport, leftCmd = dv.leftViewport.Update(msg)
	}
	if dv.scrollSync || dv.activePane == rightPane {
		dv.rightViewport, rightCmd = dv.rightViewport.Update(msg)
	}

	if dv.scrollSync {
		if dv.leftViewport.YOffset != prevLeftY {
			dv.rightViewport.SetYOffset(dv.leftViewport.YOffset)
		}
		if dv.rightViewport.YOffset != prevRightY {
			dv.leftViewport.SetYOffset(dv.rightViewport.YOffset)
		}
	}

	if dv.leftViewport.YOffset != prevLeftY || dv.rightViewport.YOffset != prevRightY {
		if dv.nav.Scrolling() {
			dv.nav.Cancel()
			dv.jumpID++
		}
		dv.observe()
	}

	return tea.Batch(leftCmd, rightCmd)
}

// jump selects the next or previous change block and starts scrolling it to the middle of the panes.
func (dv *DiffViewer) jump(dir textdiff.Direction) tea.Cmd {
	row, ok := dv.nav.Jump(dir)
	if !ok {
		return nil
	}

	dv.scrollTarget = dv.clampOffset(row - dv.leftViewport.Height/2)
	dv.nav.Land(dv.scrollTarget)
	dv.jumpID++
	dv.refreshContent()

	return dv.step(dv.jumpID)
}

// step moves both panes a third of the remaining distance (at least one row) toward the jump target.
func (dv *DiffViewer) step(id int) tea.Cmd {
	if id != dv.jumpID || !dv.nav.Scrolling() {
		return nil
	}

	cur := dv.leftViewport.YOffset
	delta := dv.scrollTarget - cur
	move := delta / 3
	if move == 0 && delta != 0 {
		move = delta / abs(delta)
	}
	dv.setOffset(cur + move)

	if delta != 0 && dv.leftViewport.YOffset == cur {
		dv.nav.Land(cur)
	}
	dv.observe()

	if dv.nav.Scrolling() {
		return tea.Tick(scrollFrame, func(time.Time) tea.Msg {
			return scrollStepMsg{id: id}
		})
	}
	return nil
}

func (dv *DiffViewer) setOffset(y int) {
	dv.leftViewport.SetYOffset(y)
	dv.rightViewport.SetYOffset(y)
}

func (dv *DiffViewer) clampOffset(y int) int {
	maxOffset := max(len(dv.leftRows)-dv.leftViewport.Height, 0)
	return min(max(y, 0), maxOffset)
}

// activeViewport is the pane whose position drives block selection. It is the left one while scrolling is synced.
func (dv *DiffViewer) activeViewport() *viewport.Model {
	if !dv.scrollSync && dv.activePane == rightPane {
		return &dv.rightViewport
	}
	return &dv.leftViewport
}

// observe reports the active pane's position to the navigator and redraws the marker if the selection moved.
func (dv *DiffViewer) observe() {
	prev := dv.nav.Current()
	vp := dv.activeViewport()
	dv.nav.Observe(vp.YOffset, vp.YOffset+vp.Height/2)
	if dv.nav.Current() != prev {
		dv.refreshContent()
	}
}

// renderDiff rebuilds the rendered rows for the current comparison, width and highlighting.
func (dv *DiffViewer) renderDiff() {
	leftWidth, rightWidth := paneWidths(dv.width)
	dv.leftRows, dv.rightRows = newPaneRenderer(dv.comparison, leftWidth, rightWidth, dv.syntaxHighlight).render()
	dv.refreshContent()
}

// refreshContent pushes the rendered rows into the viewports, marking the rows of the selected block.
func (dv *DiffViewer) refreshContent() {
	if len(dv.leftRows) == 0 {
		dv.leftViewport.SetContent("No content to display")
		dv.rightViewport.SetContent("No content to display")
		return
	}

	left := append([]string(nil), dv.leftRows...)
	right := append([]string(nil), dv.rightRows...)

	isChanged := func(row int) bool {
		return dv.comparison.Alignment.Left[row].Kind != textdiff.Unchanged
	}
	if from, to, ok := dv.nav.CurrentRows(isChanged, len(left)); ok {
		for i := from; i < to; i++ {
			left[i] = markRow(left[i])
			right[i] = markRow(right[i])
		}
	}

	dv.leftViewport.SetContent(strings.Join(left, "\n"))
	dv.rightViewport.SetContent(strings.Join(right, "\n"))
}

// View renders the diff viewer
func (dv *DiffViewer) View() string {
	var b strings.Builder

	b.WriteString(statsLine(dv.comparison.Result.Stats) + statsStyle.Render(dv.blockInfo()) + "\n")

	leftWidth, rightWidth := paneWidths(dv.width)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	b.WriteString(titleStyle.Render(fit(dv.leftTitle, leftWidth)) + paneSeparator + titleStyle.Render(fit(dv.rightTitle, rightWidth)) + "\n")

	leftLines := strings.Split(dv.leftViewport.View(), "\n")
	rightLines := strings.Split(dv.rightViewport.View(), "\n")
	rows := max(len(leftLines), len(rightLines))
	for i := 0; i < rows; i++ {
		left, right := "", ""
		if i < len(leftLines) {
			left = leftLines[i]
		}
		if i < len(rightLines) {
			right = rightLines[i]
		}
		b.WriteString(fit(left, leftWidth) + paneSeparator + right)
		if i < rows-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (dv *DiffViewer) blockInfo() string {
	count := dv.nav.Count()
	if count == 0 {
		return ""
	}
	if cur := dv.nav.Current(); cur >= 0 {
		return fmt.Sprintf(" | block %d/%d", cur+1, count)
	}
	return fmt.Sprintf(" | %d blocks", count)
}
