package solver

import (
	"math/rand"
	"time"

	"github.com/amGusforshort/MineCweeper/game"
)

type MoveType int

const (
	MoveOpen MoveType = iota
	MoveFlag
)

func (t MoveType) String() string {
	if t == MoveFlag {
		return "flag"
	}
	return "open"
}

// Strategy names reported on a Move.
const (
	StrategyLogic  = "Logic"
	StrategyTank   = "Tank"
	StrategyRandom = "Random"
)

type Move struct {
	X, Y       int
	Type       MoveType
	IsGuess    bool    // true when no deduction backs the move
	Strategy   string  // one of the Strategy* names
	Confidence float64 // probability the move is correct, 0.0-1.0
}

// Solver inspects a board through its public accessors and never mutates it.
type Solver struct {
	board *game.Board
	rng   *rand.Rand
}

// New wraps b. A nil rng is seeded from the clock.
func New(b *game.Board, rng *rand.Rand) *Solver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Solver{board: b, rng: rng}
}

// NextMove proposes a move, or nil when the game is over or nothing is left
// to open.
func (s *Solver) NextMove() *Move {
	if s.board == nil || s.board.Phase() != game.InProgress {
		return nil
	}

	if move := s.findSafeMove(); move != nil {
		return move
	}
	if move := s.findFlagMove(); move != nil {
		return move
	}
	if move := newTank(s.board).solve(); move != nil {
		return move
	}
	return s.findRandomMove()
}

func (s *Solver) cell(p game.Point) game.Cell {
	c, _ := s.board.Cell(p.X, p.Y)
	return c
}

// findSafeMove looks for a number whose mines are all flagged already.
func (s *Solver) findSafeMove() *Move {
	for y := 0; y < s.board.Height(); y++ {
		for x := 0; x < s.board.Width(); x++ {
			c := s.cell(game.Point{X: x, Y: y})
			if !c.IsRevealed || c.IsMine || c.NeighborCount == 0 {
				continue
			}
			_, flags, hidden := s.neighborInfo(x, y)
			if flags == c.NeighborCount && len(hidden) > 0 {
				return &Move{X: hidden[0].X, Y: hidden[0].Y, Type: MoveOpen, Strategy: StrategyLogic, Confidence: 1.0}
			}
		}
	}
	return nil
}

// findFlagMove looks for a number whose unrevealed neighbors must all be mines.
func (s *Solver) findFlagMove() *Move {
	for y := 0; y < s.board.Height(); y++ {
		for x := 0; x < s.board.Width(); x++ {
			c := s.cell(game.Point{X: x, Y: y})
			if !c.IsRevealed || c.IsMine || c.NeighborCount == 0 {
				continue
			}
			unrevealed, _, hidden := s.neighborInfo(x, y)
			if unrevealed == c.NeighborCount && len(hidden) > 0 {
				return &Move{X: hidden[0].X, Y: hidden[0].Y, Type: MoveFlag, Strategy: StrategyLogic, Confidence: 1.0}
			}
		}
	}
	return nil
}

func (s *Solver) findRandomMove() *Move {
	var candidates []game.Point
	for y := 0; y < s.board.Height(); y++ {
		for x := 0; x < s.board.Width(); x++ {
			c := s.cell(game.Point{X: x, Y: y})
			if !c.IsRevealed && !c.IsFlagged {
				candidates = append(candidates, game.Point{X: x, Y: y})
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	choice := candidates[s.rng.Intn(len(candidates))]
	return &Move{
		X: choice.X, Y: choice.Y,
		Type:       MoveOpen,
		IsGuess:    true,
		Strategy:   StrategyRandom,
		Confidence: s.globalSafety(len(candidates)),
	}
}

// globalSafety is the chance a uniformly chosen hidden cell is safe, assuming
// every flag is correct.
func (s *Solver) globalSafety(hidden int) float64 {
	left := s.board.MineCount() - s.board.FlagCount()
	if left <= 0 {
		return 1.0
	}
	return max(0, 1.0-float64(left)/float64(hidden))
}

// neighborInfo counts unrevealed and flagged neighbors of (cx, cy) and lists
// the unrevealed ones that carry no flag.
func (s *Solver) neighborInfo(cx, cy int) (unrevealed int, flags int, hidden []game.Point) {
	for _, p := range s.board.Neighbors(cx, cy) {
		c := s.cell(p)
		if c.IsRevealed {
			continue
		}
		unrevealed++
		if c.IsFlagged {
			flags++
		} else {
			hidden = append(hidden, p)
		}
	}
	return
}
