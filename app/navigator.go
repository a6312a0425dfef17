package app

import "stormlightlabs.org/textcompare/textdiff"

// navState tracks whether the viewport is moving because of a block jump.
type navState int

const (
	navIdle navState = iota
	navJumping
)

// DefaultResyncRows is how far, in rows, the first change block may sit from the viewport center before passive scrolling selects or
// clears it.
const DefaultResyncRows = 5

// Navigator is the view-state of change-block navigation: the block rows of the current comparison, the selected block, and whether a
// jump is still scrolling into place.
//
// While a jump is in flight, scroll observations do not re-select a block, so the animation cannot fight the selection it was started
// for. The jump ends when an observed offset reaches the landing offset.
type Navigator struct {
	blocks    []int
	current   int
	threshold int
	state     navState
	landing   int
}

// NewNavigator returns an idle navigator with no block selected.
func NewNavigator(blocks []int, threshold int) *Navigator {
	if threshold <= 0 {
		threshold = DefaultResyncRows
	}
	return &Navigator{blocks: blocks, current: -1, threshold: threshold}
}

// Reset replaces the block list, clears the selection and cancels any jump.
func (n *Navigator) Reset(blocks []int) {
	n.blocks = blocks
	n.current = -1
	n.state = navIdle
	n.landing = 0
}

// Current returns the selected block index, or -1.
func (n *Navigator) Current() int { return n.current }

// Count returns the number of blocks.
func (n *Navigator) Count() int { return len(n.blocks) }

// Scrolling reports whether a jump has not landed yet.
func (n *Navigator) Scrolling() bool { return n.state == navJumping }

// CurrentRows returns the half-open row range of the selected block, ending at the next block or at rows. ok is false when nothing is
// selected.
func (n *Navigator) CurrentRows(isChanged func(row int) bool, rows int) (from, to int, ok bool) {
	if n.current < 0 || n.current >= len(n.blocks) {
		return 0, 0, false
	}
	from = n.blocks[n.current]
	to = from
	for to < rows && isChanged(to) {
		to++
	}
	return from, to, true
}

// Jump selects the next or previous block, wrapping around, and enters the jumping state. It returns the first row of the selected block;
// ok is false when there are no blocks.
func (n *Navigator) Jump(dir textdiff.Direction) (row int, ok bool) {
	n.current = textdiff.NextBlock(n.current, len(n.blocks), dir)
	if n.current < 0 {
		return 0, false
	}
	n.state = navJumping
	return n.blocks[n.current], true
}

// Land records the viewport offset the current jump settles at.
func (n *Navigator) Land(offset int) {
	n.landing = offset
}

// Cancel abandons an in-flight jump, e.g. when the user scrolls manually.
func (n *Navigator) Cancel() {
	n.state = navIdle
}

// Observe reports a viewport offset and the row at the viewport center. During a jump it only watches for the landing offset. Otherwise
// it re-selects the block nearest the center: nothing is selected while the first block is more than threshold rows below the center,
// and from no selection the first block is only picked once it is within threshold rows of the center.
func (n *Navigator) Observe(offset, center int) {
	if n.state == navJumping {
		if offset == n.landing {
			n.state = navIdle
		}
		return
	}
	if len(n.blocks) == 0 {
		n.current = -1
		return
	}

	first := n.blocks[0]
	if n.current == -1 {
		if abs(first-center) < n.threshold {
			n.current = 0
		}
		return
	}
	if first > center+n.threshold {
		n.current = -1
		return
	}
	n.current = n.nearest(center)
}

// nearest returns the index of the block whose first row is closest to row. Ties go to the earlier block.
func (n *Navigator) nearest(row int) int {
	best, bestDist := 0, abs(n.blocks[0]-row)
	for i, b := range n.blocks[1:] {
		if d := abs(b - row); d < bestDist {
			best, bestDist = i+1, d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
