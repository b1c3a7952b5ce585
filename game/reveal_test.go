package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// floodRegion computes the cells a reveal at start should open, recursively
// and independently of cascade.
func floodRegion(b *Board, start Point) map[Point]bool {
	seen := map[Point]bool{}
	var visit func(x, y int)
	visit = func(x, y int) {
		p := Point{X: x, Y: y}
		if x < 0 || x >= b.width || y < 0 || y >= b.height || seen[p] {
			return
		}
		seen[p] = true
		if b.cells[y][x].IsMine || b.cells[y][x].NeighborCount != 0 {
			return
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				visit(x+dx, y+dy)
			}
		}
	}
	visit(start.X, start.Y)
	return seen
}

func countRevealed(b *Board) int {
	n := 0
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x].IsRevealed {
				n++
			}
		}
	}
	return n
}

func findCell(b *Board, match func(Cell) bool) (Point, bool) {
	for y := range b.cells {
		for x := range b.cells[y] {
			if match(b.cells[y][x]) {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}

func TestRevealFixedSeedScenario(t *testing.T) {
	const seed = 20240611

	b, err := NewBoard(9, 9, 10, rand.NewSource(seed))
	require.NoError(t, err)
	require.Equal(t, 10, countMines(b))

	zero, ok := findCell(b, func(c Cell) bool { return !c.IsMine && c.NeighborCount == 0 })
	require.True(t, ok, "expected a zero-count cell on a 9x9 board with 10 mines")

	region := floodRegion(b, zero)
	outcome, err := b.Reveal(zero.X, zero.Y)
	require.NoError(t, err)
	assert.Contains(t, []Outcome{Continue, Win}, outcome)
	assert.Equal(t, len(region), b.RevealedCount())
	assert.Equal(t, countRevealed(b), b.RevealedCount())
	for y := range b.cells {
		for x := range b.cells[y] {
			c := b.cells[y][x]
			assert.Equal(t, region[Point{X: x, Y: y}], c.IsRevealed, "(%d,%d)", x, y)
			if c.IsMine {
				assert.False(t, c.IsRevealed, "cascade revealed mine at (%d,%d)", x, y)
			}
		}
	}

	// Same seed, same layout: hit a mine on a fresh board.
	fresh, err := NewBoard(9, 9, 10, rand.NewSource(seed))
	require.NoError(t, err)
	require.Equal(t, b.cells[zero.Y][zero.X].NeighborCount, fresh.cells[zero.Y][zero.X].NeighborCount)

	mine, ok := findCell(fresh, func(c Cell) bool { return c.IsMine })
	require.True(t, ok)
	before := fresh.RevealedCount()

	outcome, err = fresh.Reveal(mine.X, mine.Y)
	require.NoError(t, err)
	assert.Equal(t, HitMine, outcome)
	assert.Equal(t, Lost, fresh.Phase())
	assert.Equal(t, before+1, fresh.RevealedCount())
	assert.Equal(t, 1, countRevealed(fresh))
}

func TestRevealNumberedCellDoesNotCascade(t *testing.T) {
	b, err := NewBoardWithMines(3, 3, []Point{{X: 0, Y: 0}})
	require.NoError(t, err)

	outcome, err := b.Reveal(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)
	assert.Equal(t, 1, b.RevealedCount())
}

func TestRevealCascadeStopsAtNumbers(t *testing.T) {
	// Column of mines at x=2 splits the grid.
	mines := []Point{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}
	b, err := NewBoardWithMines(5, 4, mines)
	require.NoError(t, err)

	outcome, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)

	// x=0 are zeros, x=1 are numbers, the right side stays hidden.
	assert.Equal(t, 8, b.RevealedCount())
	for y := 0; y < 4; y++ {
		assert.True(t, b.cells[y][0].IsRevealed)
		assert.True(t, b.cells[y][1].IsRevealed)
		assert.False(t, b.cells[y][2].IsRevealed)
		assert.False(t, b.cells[y][3].IsRevealed)
		assert.False(t, b.cells[y][4].IsRevealed)
	}
}

func TestRevealWin(t *testing.T) {
	b, err := NewBoardWithMines(3, 3, []Point{{X: 2, Y: 2}})
	require.NoError(t, err)

	outcome, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Win, outcome)
	assert.Equal(t, Won, b.Phase())
	assert.Equal(t, b.SafeCellCount(), b.RevealedCount())
	assert.False(t, b.cells[2][2].IsRevealed)

	t.Run("single cell board wins on first reveal", func(t *testing.T) {
		one, err := NewBoardWithMines(1, 1, nil)
		require.NoError(t, err)
		outcome, err := one.Reveal(0, 0)
		require.NoError(t, err)
		assert.Equal(t, Win, outcome)
	})

	t.Run("win reached over several reveals", func(t *testing.T) {
		b, err := NewBoardWithMines(2, 2, []Point{{X: 0, Y: 0}})
		require.NoError(t, err)
		for _, p := range []Point{{X: 1, Y: 0}, {X: 0, Y: 1}} {
			outcome, err := b.Reveal(p.X, p.Y)
			require.NoError(t, err)
			assert.Equal(t, Continue, outcome)
		}
		outcome, err := b.Reveal(1, 1)
		require.NoError(t, err)
		assert.Equal(t, Win, outcome)
	})
}

func TestRevealMineAfterProgressStillLoses(t *testing.T) {
	b, err := NewBoardWithMines(2, 2, []Point{{X: 0, Y: 0}})
	require.NoError(t, err)

	_, err = b.Reveal(1, 0)
	require.NoError(t, err)
	_, err = b.Reveal(0, 1)
	require.NoError(t, err)

	outcome, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, HitMine, outcome)
	assert.Equal(t, Lost, b.Phase())
}

func TestRevealRejections(t *testing.T) {
	newBoard := func(t *testing.T) *Board {
		b, err := NewBoardWithMines(3, 3, []Point{{X: 0, Y: 0}})
		require.NoError(t, err)
		return b
	}

	t.Run("out of bounds", func(t *testing.T) {
		b := newBoard(t)
		for _, p := range []Point{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 3}} {
			_, err := b.Reveal(p.X, p.Y)
			assert.ErrorIs(t, err, ErrOutOfBounds)
		}
		assert.Zero(t, b.RevealedCount())
	})

	t.Run("already revealed", func(t *testing.T) {
		b := newBoard(t)
		_, err := b.Reveal(1, 1)
		require.NoError(t, err)
		snapshot := b.cells[1][1]

		_, err = b.Reveal(1, 1)
		assert.ErrorIs(t, err, ErrAlreadyRevealed)
		assert.Equal(t, 1, b.RevealedCount())
		assert.Equal(t, snapshot, b.cells[1][1])
	})

	t.Run("flagged", func(t *testing.T) {
		b := newBoard(t)
		require.NoError(t, b.ToggleFlag(0, 0))

		_, err := b.Reveal(0, 0)
		assert.ErrorIs(t, err, ErrFlaggedCell)
		assert.Zero(t, b.RevealedCount())
		assert.Equal(t, InProgress, b.Phase())
		assert.True(t, b.cells[0][0].IsFlagged)
	})

	t.Run("after loss", func(t *testing.T) {
		b := newBoard(t)
		_, err := b.Reveal(0, 0)
		require.NoError(t, err)

		_, err = b.Reveal(2, 2)
		assert.ErrorIs(t, err, ErrGameOver)
		assert.Equal(t, 1, b.RevealedCount())
		assert.ErrorIs(t, b.ToggleFlag(2, 2), ErrGameOver)
	})
}

func TestCascadeClearsFlags(t *testing.T) {
	b, err := NewBoardWithMines(4, 1, []Point{{X: 3, Y: 0}})
	require.NoError(t, err)
	require.NoError(t, b.ToggleFlag(1, 0))
	require.Equal(t, 1, b.FlagCount())

	outcome, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Win, outcome)
	assert.False(t, b.cells[0][1].IsFlagged)
	assert.True(t, b.cells[0][1].IsRevealed)
	assert.Zero(t, b.FlagCount())
}

func TestRevealAll(t *testing.T) {
	b, err := NewBoard(9, 9, 10, rand.NewSource(3))
	require.NoError(t, err)

	mine, ok := findCell(b, func(c Cell) bool { return c.IsMine })
	require.True(t, ok)
	flagged, ok := findCell(b, func(c Cell) bool { return !c.IsMine })
	require.True(t, ok)
	require.NoError(t, b.ToggleFlag(flagged.X, flagged.Y))

	_, err = b.Reveal(mine.X, mine.Y)
	require.NoError(t, err)

	b.RevealAll()
	assert.Equal(t, 81, b.RevealedCount())
	assert.Equal(t, 81, countRevealed(b))
	assert.Zero(t, b.FlagCount())
	assert.Equal(t, Lost, b.Phase())
}

func TestToggleFlag(t *testing.T) {
	b, err := NewBoardWithMines(3, 3, []Point{{X: 0, Y: 0}})
	require.NoError(t, err)

	t.Run("toggle twice restores", func(t *testing.T) {
		require.NoError(t, b.ToggleFlag(2, 2))
		assert.True(t, b.cells[2][2].IsFlagged)
		assert.Equal(t, 1, b.FlagCount())

		require.NoError(t, b.ToggleFlag(2, 2))
		assert.False(t, b.cells[2][2].IsFlagged)
		assert.Zero(t, b.FlagCount())
	})

	t.Run("revealed cell rejected", func(t *testing.T) {
		_, err := b.Reveal(1, 1)
		require.NoError(t, err)
		assert.ErrorIs(t, b.ToggleFlag(1, 1), ErrAlreadyRevealed)
		assert.False(t, b.cells[1][1].IsFlagged)
	})

	t.Run("out of bounds", func(t *testing.T) {
		assert.ErrorIs(t, b.ToggleFlag(5, 5), ErrOutOfBounds)
	})

	t.Run("flagging never changes phase", func(t *testing.T) {
		require.NoError(t, b.ToggleFlag(0, 0))
		assert.Equal(t, InProgress, b.Phase())
		assert.Equal(t, 1, b.RevealedCount())
	})
}

func TestRevealedCountMatchesScan(t *testing.T) {
	b, err := NewBoard(16, 16, 40, rand.NewSource(11))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200 && b.Phase() == InProgress; i++ {
		x, y := rng.Intn(16), rng.Intn(16)
		if b.cells[y][x].IsMine {
			continue
		}
		_, _ = b.Reveal(x, y)
		assert.Equal(t, countRevealed(b), b.RevealedCount())
	}
	assert.Equal(t, b.Phase() == Won, b.RevealedCount() == b.SafeCellCount())
}
