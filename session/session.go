package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/amGusforshort/MineCweeper/game"
	"github.com/amGusforshort/MineCweeper/solver"
	"github.com/amGusforshort/MineCweeper/viewmodel"
)

// State is a step of the session loop.
type State int

const (
	SelectingDifficulty State = iota
	Playing
	Finished
	Exited
)

func (s State) String() string {
	switch s {
	case SelectingDifficulty:
		return "selecting_difficulty"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

const (
	clearScreen = "\x1b[H\x1b[2J"
	cursorUp2   = "\x1b[2A"
	cursorPrev  = "\x1b[1F"
)

const helpText = `Symbols:
1 - 8: number of surrounding mines
!: flagged cell
#: mine
.: unrevealed cell

Commands:
r y x: reveal cell at position (x,y)
f y x: flag/unflag cell at position (x,y)
hint: suggest a move
help: prints this list
quit: quits the game
`

// Options configures a Session.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Logger *logrus.Logger
	// Seed drives every board of the session; 0 seeds from the clock.
	Seed int64
	// ANSI enables colours and screen clearing.
	ANSI bool
	// Difficulty skips the menu for the first game when set.
	Difficulty *Difficulty
	// NewBoard builds the board for each game; nil uses game.NewBoard.
	NewBoard BoardFactory
}

// BoardFactory creates the board for a new game of difficulty d.
type BoardFactory func(d Difficulty, src rand.Source) (*game.Board, error)

func randomBoard(d Difficulty, src rand.Source) (*game.Board, error) {
	return game.NewBoard(d.Width, d.Height, d.Mines, src)
}

// Session drives games over a line-oriented terminal.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	log    *logrus.Logger
	rng    *rand.Rand
	boards BoardFactory
	ansi   bool
	state  State

	preset     *Difficulty
	difficulty Difficulty
	board      *game.Board
	gameID     uuid.UUID
	games      int
}

func New(opts Options) *Session {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	boards := opts.NewBoard
	if boards == nil {
		boards = randomBoard
	}
	return &Session{
		in:     bufio.NewScanner(opts.In),
		out:    opts.Out,
		log:    log,
		rng:    rand.New(rand.NewSource(seed)),
		boards: boards,
		ansi:   opts.ANSI,
		state:  SelectingDifficulty,
		preset: opts.Difficulty,
	}
}

// State reports where the loop currently is.
func (s *Session) State() State { return s.state }

// Board is the board of the current or last game, nil before the first one.
func (s *Session) Board() *game.Board { return s.board }

// Run loops until the player quits or input ends.
func (s *Session) Run() error {
	for s.state != Exited {
		var (
			next State
			err  error
		)
		switch s.state {
		case SelectingDifficulty:
			next, err = s.selectDifficulty()
		case Playing:
			next, err = s.play()
		case Finished:
			next, err = s.askReplay()
		}
		if errors.Is(err, io.EOF) {
			s.log.WithField("state", s.state).Info("input closed")
			next, err = Exited, nil
		}
		if err != nil {
			return err
		}
		s.state = next
	}
	s.log.WithField("games", s.games).Info("session ended")
	return nil
}

func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) esc(seq string) {
	if s.ansi {
		s.printf("%s", seq)
	}
}

func (s *Session) selectDifficulty() (State, error) {
	if s.preset != nil {
		d := *s.preset
		s.preset = nil
		return s.startGame(d)
	}

	for {
		s.esc(clearScreen)
		s.printf("MineCweeper\nDifficulty options\n")
		for _, d := range Presets {
			s.printf("(%s)%s - %dx%d grid, %d mines\n", d.Key, d.Name[1:], d.Width, d.Height, d.Mines)
		}
		s.printf("Choose difficulty:\n\n(Type 'quit' to quit)\n")
		s.esc(cursorUp2)

		line, err := s.readLine()
		if err != nil {
			return Exited, err
		}
		if line == "quit" {
			return Exited, nil
		}
		if d, ok := LookupDifficulty(line); ok {
			return s.startGame(d)
		}
	}
}

func (s *Session) startGame(d Difficulty) (State, error) {
	board, err := s.boards(d, rand.NewSource(s.rng.Int63()))
	if err != nil {
		return Exited, err
	}

	s.board = board
	s.difficulty = d
	s.gameID = uuid.New()
	s.games++
	s.gameLog().Info("game started")

	s.refresh()
	return Playing, nil
}

func (s *Session) gameLog() *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"game_id":    s.gameID.String(),
		"difficulty": s.difficulty.Name,
	})
}

func (s *Session) refresh() {
	s.esc(clearScreen)
	if err := viewmodel.Render(s.out, viewmodel.NewGameView(s.board), s.ansi); err != nil {
		s.gameLog().WithError(err).Warn("render failed")
	}
}

func (s *Session) play() (State, error) {
	for {
		line, err := s.readLine()
		if err != nil {
			return Exited, err
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			s.gameLog().WithError(err).Debug("rejected input")
			s.refresh()
			s.printf("Invalid command: '%s'.\n", line)
			continue
		}
		if cmd.Action == ActionQuit {
			s.gameLog().Info("game abandoned")
			return Exited, nil
		}

		next, msg := s.execute(cmd)
		s.refresh()
		s.printf("%s", msg)
		if next != Playing {
			return next, nil
		}
	}
}

// execute applies one command to the board and returns the next state and
// the message to show under the board.
func (s *Session) execute(cmd Command) (State, string) {
	switch cmd.Action {
	case ActionHelp:
		return Playing, helpText
	case ActionMeta:
		return Playing, s.meta(cmd.Meta)
	case ActionHint:
		return Playing, s.hint()
	case ActionFlag:
		if err := s.board.ToggleFlag(cmd.Col, cmd.Row); err != nil {
			return Playing, s.moveError(err, cmd)
		}
	case ActionReveal:
		outcome, err := s.board.Reveal(cmd.Col, cmd.Row)
		if err != nil {
			return Playing, s.moveError(err, cmd)
		}
		switch outcome {
		case game.HitMine:
			s.board.RevealAll()
			s.logOutcome(outcome)
			return Finished, "You hit a mine! You lose!\n"
		case game.Win:
			s.logOutcome(outcome)
			return Finished, "You won!\n"
		}
	}
	return Playing, ""
}

func (s *Session) logOutcome(outcome game.Outcome) {
	s.gameLog().WithFields(logrus.Fields{
		"outcome":  outcome.String(),
		"revealed": s.board.RevealedCount(),
		"flags":    s.board.FlagCount(),
	}).Info("game finished")
}

func (s *Session) moveError(err error, cmd Command) string {
	s.gameLog().WithError(err).Debug("move rejected")
	switch {
	case errors.Is(err, game.ErrOutOfBounds):
		return fmt.Sprintf("Invalid coordinates (%d,%d).\n", cmd.Col, cmd.Row)
	case errors.Is(err, game.ErrAlreadyRevealed):
		return "Cell is already revealed.\n"
	case errors.Is(err, game.ErrFlaggedCell):
		return "Cell is flagged.\n"
	default:
		return err.Error() + "\n"
	}
}

func (s *Session) meta(name string) string {
	switch name {
	case "pcb":
		var sb strings.Builder
		if err := viewmodel.RenderClean(&sb, s.board); err != nil {
			s.gameLog().WithError(err).Warn("render failed")
		}
		return sb.String()
	default:
		return fmt.Sprintf("Unknown meta command: '%s'.\n", name)
	}
}

func (s *Session) hint() string {
	move := solver.New(s.board, s.rng).NextMove()
	if move == nil {
		return "No move to suggest.\n"
	}
	return fmt.Sprintf("Hint: %s %d %d (%s, %.0f%% sure)\n",
		hintVerb(move.Type), move.Y, move.X, move.Strategy, move.Confidence*100)
}

func hintVerb(t solver.MoveType) string {
	if t == solver.MoveFlag {
		return "f"
	}
	return "r"
}

func (s *Session) askReplay() (State, error) {
	for {
		s.printf("Try again?\n\n(Y/N)")
		s.esc(cursorPrev)
		s.printf("\n")

		line, err := s.readLine()
		if err != nil {
			return Exited, err
		}
		switch strings.ToUpper(line) {
		case "Y":
			return SelectingDifficulty, nil
		case "N", "QUIT":
			return Exited, nil
		}
	}
}
