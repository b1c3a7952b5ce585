package game

import (
	"fmt"
	"math/rand"
	"time"
)

// neighborOffsets lists the 8-connected directions.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// NewBoard validates the dimensions, allocates the grid and places mineCount
// mines at random positions drawn from src. A nil src seeds from the clock.
func NewBoard(width, height, mineCount int, src rand.Source) (*Board, error) {
	if err := validateConfig(width, height, mineCount); err != nil {
		return nil, err
	}
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}

	b := newEmptyBoard(width, height, mineCount)
	b.placeMines(rand.New(src))
	return b, nil
}

// NewBoardWithMines builds a board with mines at exactly the given points.
func NewBoardWithMines(width, height int, mines []Point) (*Board, error) {
	if err := validateConfig(width, height, len(mines)); err != nil {
		return nil, err
	}

	b := newEmptyBoard(width, height, len(mines))
	for _, p := range mines {
		if !b.InBounds(p.X, p.Y) {
			return nil, fmt.Errorf("%w: mine at (%d,%d) outside %dx%d grid", ErrConfiguration, p.X, p.Y, width, height)
		}
		if b.cells[p.Y][p.X].IsMine {
			return nil, fmt.Errorf("%w: duplicate mine at (%d,%d)", ErrConfiguration, p.X, p.Y)
		}
		b.addMine(p.X, p.Y)
	}
	return b, nil
}

func validateConfig(width, height, mineCount int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: dimensions %dx%d must be at least 1x1", ErrConfiguration, width, height)
	}
	if mineCount < 0 || mineCount >= width*height {
		return fmt.Errorf("%w: mine count %d must be in range [0, %d)", ErrConfiguration, mineCount, width*height)
	}
	return nil
}

func newEmptyBoard(width, height, mineCount int) *Board {
	cells := make([][]Cell, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]Cell, width)
	}
	return &Board{
		width:     width,
		height:    height,
		mineCount: mineCount,
		cells:     cells,
		phase:     InProgress,
	}
}

// placeMines uses rejection sampling: pick a position, resample on collision.
func (b *Board) placeMines(rng *rand.Rand) {
	for placed := 0; placed < b.mineCount; {
		x := rng.Intn(b.width)
		y := rng.Intn(b.height)
		if b.cells[y][x].IsMine {
			continue
		}
		b.addMine(x, y)
		placed++
	}
}

// addMine marks (x, y) as a mine and bumps the count of each non-mine neighbor.
func (b *Board) addMine(x, y int) {
	b.cells[y][x].IsMine = true
	for _, d := range neighborOffsets {
		nx, ny := x+d[0], y+d[1]
		if !b.InBounds(nx, ny) || b.cells[ny][nx].IsMine {
			continue
		}
		b.cells[ny][nx].NeighborCount++
	}
}

func (b *Board) Width() int { return b.width }
func (b *Board) Height() int { return b.height }
func (b *Board) MineCount() int { return b.mineCount }
func (b *Board) RevealedCount() int { return b.revealed }
func (b *Board) FlagCount() int { return b.flags }
func (b *Board) Phase() Phase { return b.phase }

// SafeCellCount is the number of cells that have to be revealed to win.
func (b *Board) SafeCellCount() int {
	return b.width*b.height - b.mineCount
}

// InBounds reports whether (x, y) lies on the grid.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns a copy of the cell at (x, y).
func (b *Board) Cell(x, y int) (Cell, error) {
	if err := b.checkBounds(x, y); err != nil {
		return Cell{}, err
	}
	return b.cells[y][x], nil
}

// Neighbors returns the in-bounds 8-connected neighbors of (x, y).
func (b *Board) Neighbors(x, y int) []Point {
	points := make([]Point, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		nx, ny := x+d[0], y+d[1]
		if b.InBounds(nx, ny) {
			points = append(points, Point{X: nx, Y: ny})
		}
	}
	return points
}

func (b *Board) checkBounds(x, y int) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d grid", ErrOutOfBounds, x, y, b.width, b.height)
	}
	return nil
}
