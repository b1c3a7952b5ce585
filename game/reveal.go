package game

import "fmt"

// Reveal opens the cell at (x, y). A zero-count cell cascades to its
// neighbors until the region is bounded by numbered cells or the grid edge.
// Rejected calls leave the board untouched.
func (b *Board) Reveal(x, y int) (Outcome, error) {
	if b.phase != InProgress {
		return Continue, fmt.Errorf("%w: board is %s", ErrGameOver, b.phase)
	}
	if err := b.checkBounds(x, y); err != nil {
		return Continue, err
	}

	cell := &b.cells[y][x]
	if cell.IsRevealed {
		return Continue, fmt.Errorf("%w: (%d,%d)", ErrAlreadyRevealed, x, y)
	}
	if cell.IsFlagged {
		return Continue, fmt.Errorf("%w: (%d,%d)", ErrFlaggedCell, x, y)
	}

	b.revealCell(x, y)
	if cell.IsMine {
		b.phase = Lost
		return HitMine, nil
	}

	if cell.NeighborCount == 0 {
		b.cascade(x, y)
	}

	if b.revealed == b.SafeCellCount() {
		b.phase = Won
		return Win, nil
	}
	return Continue, nil
}

// cascade walks the zero-count region around (x, y) with an explicit stack.
// Cells adjacent to a zero-count cell are never mines, so no mine is reached.
func (b *Board) cascade(x, y int) {
	stack := []Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range neighborOffsets {
			nx, ny := p.X+d[0], p.Y+d[1]
			if !b.InBounds(nx, ny) || b.cells[ny][nx].IsRevealed {
				continue
			}
			b.revealCell(nx, ny)
			if b.cells[ny][nx].NeighborCount == 0 {
				stack = append(stack, Point{X: nx, Y: ny})
			}
		}
	}
}

// revealCell marks one cell revealed, dropping any flag on it.
func (b *Board) revealCell(x, y int) {
	cell := &b.cells[y][x]
	if cell.IsFlagged {
		cell.IsFlagged = false
		b.flags--
	}
	cell.IsRevealed = true
	b.revealed++
}

// RevealAll opens every cell regardless of flags. It is meant for the
// end-of-game display and does not change the phase.
func (b *Board) RevealAll() {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if !b.cells[y][x].IsRevealed {
				b.revealCell(x, y)
			}
		}
	}
}

// ToggleFlag flips the flag on an unrevealed cell.
func (b *Board) ToggleFlag(x, y int) error {
	if b.phase != InProgress {
		return fmt.Errorf("%w: board is %s", ErrGameOver, b.phase)
	}
	if err := b.checkBounds(x, y); err != nil {
		return err
	}

	cell := &b.cells[y][x]
	if cell.IsRevealed {
		return fmt.Errorf("%w: (%d,%d)", ErrAlreadyRevealed, x, y)
	}

	cell.IsFlagged = !cell.IsFlagged
	if cell.IsFlagged {
		b.flags++
	} else {
		b.flags--
	}
	return nil
}
