package game

// Cell holds the state of a single grid position.
type Cell struct {
	IsMine        bool // set once at generation
	IsRevealed    bool // never reverts once true
	IsFlagged     bool // only meaningful while unrevealed
	NeighborCount int  // mines among the 8 surrounding cells
}

// Point addresses a cell by column (X) and row (Y).
type Point struct {
	X, Y int
}

// Outcome is the result of a single Reveal.
type Outcome int

const (
	Continue Outcome = iota
	Win
	HitMine
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Win:
		return "win"
	case HitMine:
		return "hit_mine"
	default:
		return "unknown"
	}
}

// Phase is the state of the game as a whole. It only changes on Reveal.
type Phase int

const (
	InProgress Phase = iota
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Board owns the grid and the running counters for one game.
type Board struct {
	width     int
	height    int
	mineCount int
	cells     [][]Cell // indexed [y][x]

	// revealed is only touched by reveal so it never needs a rescan.
	revealed int
	flags    int
	phase    Phase
}
