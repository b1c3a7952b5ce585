package solver

import (
	"github.com/amGusforshort/MineCweeper/game"
)

// Segments with more unknowns than this are skipped; enumeration is 2^n.
const maxSegmentSize = 18

// tank enumerates every mine assignment of the frontier that agrees with the
// revealed numbers, one connected segment at a time.
type tank struct {
	board *game.Board
}

func newTank(b *game.Board) *tank {
	return &tank{board: b}
}

type segment struct {
	unknowns []game.Point
	rules    []rule
}

// rule says that exactly mines of the unknowns at cells are mines.
type rule struct {
	cells []int
	mines int
}

func (t *tank) solve() *Move {
	var best *Move
	bestProb := 1.0

	for _, seg := range t.segments() {
		if len(seg.unknowns) > maxSegmentSize {
			continue
		}
		counts, total := seg.enumerate()
		if total == 0 {
			continue
		}

		for i, n := range counts {
			p := seg.unknowns[i]
			if n == 0 {
				return &Move{X: p.X, Y: p.Y, Type: MoveOpen, Strategy: StrategyTank, Confidence: 1.0}
			}
			if n == total {
				return &Move{X: p.X, Y: p.Y, Type: MoveFlag, Strategy: StrategyTank, Confidence: 1.0}
			}
			prob := float64(n) / float64(total)
			if prob < bestProb {
				bestProb = prob
				best = &Move{
					X: p.X, Y: p.Y,
					Type:       MoveOpen,
					IsGuess:    true,
					Strategy:   StrategyTank,
					Confidence: 1.0 - prob,
				}
			}
		}
	}
	return best
}

func (t *tank) cell(p game.Point) game.Cell {
	c, _ := t.board.Cell(p.X, p.Y)
	return c
}

func (t *tank) key(p game.Point) int {
	return p.Y*t.board.Width() + p.X
}

// hiddenAround returns the unflagged unrevealed neighbors of p and the number
// of flags around it.
func (t *tank) hiddenAround(p game.Point) (hidden []game.Point, flags int) {
	for _, n := range t.board.Neighbors(p.X, p.Y) {
		c := t.cell(n)
		switch {
		case c.IsRevealed:
		case c.IsFlagged:
			flags++
		default:
			hidden = append(hidden, n)
		}
	}
	return hidden, flags
}

// segments groups frontier cells that share a constraining number.
func (t *tank) segments() []*segment {
	type constraint struct {
		hidden []game.Point
		mines  int
	}

	var constraints []constraint
	unknowns := make(map[int]game.Point)
	adj := make(map[int][]int)

	for y := 0; y < t.board.Height(); y++ {
		for x := 0; x < t.board.Width(); x++ {
			p := game.Point{X: x, Y: y}
			c := t.cell(p)
			if !c.IsRevealed || c.IsMine || c.NeighborCount == 0 {
				continue
			}
			hidden, flags := t.hiddenAround(p)
			if len(hidden) == 0 {
				continue
			}
			constraints = append(constraints, constraint{hidden: hidden, mines: c.NeighborCount - flags})

			for i, a := range hidden {
				ka := t.key(a)
				unknowns[ka] = a
				for _, b := range hidden[i+1:] {
					kb := t.key(b)
					adj[ka] = append(adj[ka], kb)
					adj[kb] = append(adj[kb], ka)
				}
			}
		}
	}

	// Walk keys in grid order so the result does not depend on map order.
	var keys []int
	for k := 0; k < t.board.Width()*t.board.Height(); k++ {
		if _, ok := unknowns[k]; ok {
			keys = append(keys, k)
		}
	}

	visited := make(map[int]bool)
	var segments []*segment
	for _, start := range keys {
		if visited[start] {
			continue
		}

		local := make(map[int]int)
		seg := &segment{}
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			local[curr] = len(seg.unknowns)
			seg.unknowns = append(seg.unknowns, unknowns[curr])

			for _, next := range adj[curr] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		for _, c := range constraints {
			// A constraint's cells are connected, so checking one is enough.
			if _, ok := local[t.key(c.hidden[0])]; !ok {
				continue
			}
			r := rule{cells: make([]int, len(c.hidden)), mines: c.mines}
			for i, h := range c.hidden {
				r.cells[i] = local[t.key(h)]
			}
			seg.rules = append(seg.rules, r)
		}
		segments = append(segments, seg)
	}
	return segments
}

// enumerate counts, for every unknown, how many consistent assignments put a
// mine on it, along with the total number of consistent assignments.
func (seg *segment) enumerate() (counts []int, total int) {
	n := len(seg.unknowns)
	counts = make([]int, n)

	cellRules := make([][]int, n)
	assigned := make([]int, len(seg.rules))
	undecided := make([]int, len(seg.rules))
	for ri, r := range seg.rules {
		undecided[ri] = len(r.cells)
		for _, ci := range r.cells {
			cellRules[ci] = append(cellRules[ci], ri)
		}
	}

	config := make([]bool, n)
	feasible := func(ci int) bool {
		for _, ri := range cellRules[ci] {
			need := seg.rules[ri].mines
			if assigned[ri] > need || assigned[ri]+undecided[ri] < need {
				return false
			}
		}
		return true
	}

	var backtrack func(i int)
	backtrack = func(i int) {
		if i == n {
			total++
			for ci, mine := range config {
				if mine {
					counts[ci]++
				}
			}
			return
		}

		for _, mine := range [2]bool{true, false} {
			config[i] = mine
			for _, ri := range cellRules[i] {
				undecided[ri]--
				if mine {
					assigned[ri]++
				}
			}
			if feasible(i) {
				backtrack(i + 1)
			}
			for _, ri := range cellRules[i] {
				undecided[ri]++
				if mine {
					assigned[ri]--
				}
			}
		}
		config[i] = false
	}
	backtrack(0)
	return counts, total
}
