package textdiff

// Direction is a navigation direction over change blocks.
type Direction int

const (
	Next Direction = iota
	Prev
)

// Blocks returns the first row of every change block in a. A change block is a maximal run of consecutive rows whose left record is not
// Unchanged; each block is one navigation stop regardless of its length.
func Blocks(a Alignment) []int {
	var blocks []int
	inBlock := false
	for i, rec := range a.Left {
		changed := rec.Kind != Unchanged
		if changed && !inBlock {
			blocks = append(blocks, i)
		}
		inBlock = changed
	}
	return blocks
}

// NextBlock moves current one block in dir, wrapping around count blocks. -1 means no block is selected: Next from -1 selects the first
// block and Prev from -1 selects the last. With no blocks the result is -1.
func NextBlock(current, count int, dir Direction) int {
	if count <= 0 {
		return -1
	}
	if current < -1 || current >= count {
		current = -1
	}
	if dir == Prev {
		if current == -1 {
			return count - 1
		}
		return (current - 1 + count) % count
	}
	if current == -1 {
		return 0
	}
	return (current + 1) % count
}
