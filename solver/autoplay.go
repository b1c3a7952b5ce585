package solver

import (
	"github.com/amGusforshort/MineCweeper/game"
)

// Result summarizes one game played by the solver.
type Result struct {
	Phase   game.Phase
	Moves   int
	Guesses int
	Flags   int
}

// Play applies NextMove until the game ends or the solver runs out of moves.
func (s *Solver) Play() (Result, error) {
	var res Result
	for {
		move := s.NextMove()
		if move == nil {
			res.Phase = s.board.Phase()
			return res, nil
		}

		res.Moves++
		if move.IsGuess {
			res.Guesses++
		}

		switch move.Type {
		case MoveOpen:
			if _, err := s.board.Reveal(move.X, move.Y); err != nil {
				return res, err
			}
		case MoveFlag:
			if err := s.board.ToggleFlag(move.X, move.Y); err != nil {
				return res, err
			}
			res.Flags++
		}
	}
}
