package game

import "errors"

var (
	ErrConfiguration   = errors.New("invalid board configuration")
	ErrOutOfBounds     = errors.New("coordinates out of bounds")
	ErrAlreadyRevealed = errors.New("cell is already revealed")
	ErrFlaggedCell     = errors.New("cell is flagged")
	ErrGameOver        = errors.New("game is over")
)
