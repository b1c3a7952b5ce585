package session

import (
	"fmt"
	"strings"
)

// Difficulty is a preset board configuration.
type Difficulty struct {
	Key    string // menu key
	Name   string
	Width  int
	Height int
	Mines  int
}

var (
	Easy   = Difficulty{Key: "E", Name: "easy", Width: 9, Height: 9, Mines: 10}
	Medium = Difficulty{Key: "M", Name: "medium", Width: 16, Height: 16, Mines: 40}
	Hard   = Difficulty{Key: "H", Name: "hard", Width: 30, Height: 16, Mines: 99}
)

// Presets lists the difficulties in menu order.
var Presets = []Difficulty{Easy, Medium, Hard}

func (d Difficulty) String() string {
	return fmt.Sprintf("%s (%dx%d, %d mines)", d.Name, d.Width, d.Height, d.Mines)
}

// LookupDifficulty finds a preset by menu key or name, ignoring case.
func LookupDifficulty(s string) (Difficulty, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Presets {
		if strings.EqualFold(s, d.Key) || strings.EqualFold(s, d.Name) {
			return d, true
		}
	}
	return Difficulty{}, false
}
