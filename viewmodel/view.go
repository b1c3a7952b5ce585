package viewmodel

import (
	"github.com/amGusforshort/MineCweeper/game"
)

// Cell display states.
const (
	StateHidden  = "hidden"
	StateFlagged = "flagged"
	StateOpened  = "opened"
)

// CellView is what a renderer needs to know about one cell.
type CellView struct {
	State  string
	Count  int
	IsMine bool
}

type GameView struct {
	Width          int
	Height         int
	Cells          [][]CellView // indexed [y][x]
	MinesRemaining int
	IsGameOver     bool
	IsGameClear    bool
}

// NewGameView snapshots the board. Mine status is only exposed for opened
// cells, so a view of a game in progress never leaks the layout.
func NewGameView(b *game.Board) GameView {
	if b == nil {
		return GameView{}
	}

	h := b.Height()
	w := b.Width()

	grid := make([][]CellView, h)
	for y := 0; y < h; y++ {
		grid[y] = make([]CellView, w)
		for x := 0; x < w; x++ {
			c, _ := b.Cell(x, y)
			v := CellView{State: StateHidden}

			switch {
			case c.IsRevealed:
				v.State = StateOpened
				v.IsMine = c.IsMine
				if !c.IsMine {
					v.Count = c.NeighborCount
				}
			case c.IsFlagged:
				v.State = StateFlagged
			}
			grid[y][x] = v
		}
	}

	return GameView{
		Width:          w,
		Height:         h,
		Cells:          grid,
		MinesRemaining: b.MineCount() - b.FlagCount(),
		IsGameOver:     b.Phase() == game.Lost,
		IsGameClear:    b.Phase() == game.Won,
	}
}
