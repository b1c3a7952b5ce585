package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Action int

const (
	ActionReveal Action = iota
	ActionFlag
	ActionHelp
	ActionHint
	ActionQuit
	ActionMeta
)

var ErrInvalidCommand = errors.New("invalid command")

// Command is one parsed line of player input. Row and Col are only set for
// reveal and flag; Meta holds the name of a '.'-prefixed command.
type Command struct {
	Action Action
	Row    int
	Col    int
	Meta   string
}

// ParseCommand understands:
//
//	r <row> <col>   reveal
//	f <row> <col>   flag or unflag
//	help, hint, quit
//	.<name>         meta command
//
// Coordinates are not range checked here; the board does that.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, ".") {
		return Command{Action: ActionMeta, Meta: line[1:]}, nil
	}

	switch line {
	case "help":
		return Command{Action: ActionHelp}, nil
	case "hint":
		return Command{Action: ActionHint}, nil
	case "quit":
		return Command{Action: ActionQuit}, nil
	}

	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Command{}, fmt.Errorf("%w: %q", ErrInvalidCommand, line)
	}

	var action Action
	switch fields[0] {
	case "r":
		action = ActionReveal
	case "f":
		action = ActionFlag
	default:
		return Command{}, fmt.Errorf("%w: unknown action %q", ErrInvalidCommand, fields[0])
	}

	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return Command{}, fmt.Errorf("%w: row %q is not a number", ErrInvalidCommand, fields[1])
	}
	col, err := strconv.Atoi(fields[2])
	if err != nil {
		return Command{}, fmt.Errorf("%w: column %q is not a number", ErrInvalidCommand, fields[2])
	}

	return Command{Action: action, Row: row, Col: col}, nil
}
