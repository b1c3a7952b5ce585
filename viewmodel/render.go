package viewmodel

import (
	"fmt"
	"io"
	"strings"

	"github.com/amGusforshort/MineCweeper/game"
)

// Glyphs used for each kind of cell.
const (
	GlyphHidden = '.'
	GlyphFlag   = '!'
	GlyphMine   = '#'
	GlyphEmpty  = ' '
)

type painter struct {
	sb    strings.Builder
	color bool
}

func (p *painter) esc(seq string) {
	if p.color {
		p.sb.WriteString(seq)
	}
}

func (p *painter) text(s string) { p.sb.WriteString(s) }

// Render draws the board framed with column digits on top and row numbers on
// the left. Row numbers are y, column digits are x.
func Render(w io.Writer, v GameView, color bool) error {
	p := &painter{color: color}

	p.text("   X ")
	for x := 0; x < v.Width; x++ {
		units := x % 10
		sep := " "
		if units == 9 {
			sep = "|"
		}
		fmt.Fprintf(&p.sb, "%d%s", units, sep)
	}
	p.text("\n Y")
	p.frameLine(v.Width)

	for y := 0; y < v.Height; y++ {
		fmt.Fprintf(&p.sb, "%2d", y)
		p.esc(ansiFrame)
		p.text(" |")
		if len(v.Cells[y]) > 0 && v.Cells[y][0].State == StateOpened {
			p.esc(bgRevealed)
		} else {
			p.esc(bgHidden)
		}
		p.text(" ")
		for x := 0; x < v.Width; x++ {
			p.cell(v.Cells[y][x])
		}
		p.esc(ansiFrame)
		p.text("| ")
		p.esc(ansiReset)
		p.text("\n")
	}

	p.text("  ")
	p.frameLine(v.Width)

	_, err := io.WriteString(w, p.sb.String())
	return err
}

func (p *painter) frameLine(width int) {
	p.esc(ansiFrame)
	p.text(" +")
	p.text(strings.Repeat("-", width*2+1))
	p.text("+ ")
	p.esc(ansiReset)
	p.text("\n")
}

func (p *painter) cell(c CellView) {
	p.esc(ansiBold)
	switch c.State {
	case StateOpened:
		p.esc(bgRevealed)
		switch {
		case c.IsMine:
			p.esc(fgMine)
			p.sb.WriteRune(GlyphMine)
		case c.Count > 0:
			p.esc(countColors[c.Count])
			fmt.Fprintf(&p.sb, "%d", c.Count)
		default:
			p.sb.WriteRune(GlyphEmpty)
		}
	case StateFlagged:
		p.esc(bgHidden)
		p.esc(fgFlag)
		p.sb.WriteRune(GlyphFlag)
	default:
		p.esc(bgHidden)
		p.esc(fgHidden)
		p.sb.WriteRune(GlyphHidden)
	}
	p.text(" ")
	p.esc(ansiReset)
}

// RenderClean prints the solution grid: '#' for mines, the count otherwise.
func RenderClean(w io.Writer, b *game.Board) error {
	var sb strings.Builder
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c, _ := b.Cell(x, y)
			if c.IsMine {
				sb.WriteString("# ")
			} else {
				fmt.Fprintf(&sb, "%d ", c.NeighborCount)
			}
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
