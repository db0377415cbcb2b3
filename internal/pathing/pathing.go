// Package pathing computes walking distances to the target and the scalar
// objective the annealer maximizes.
package pathing

import (
	"github.com/juanigsrz/emberward-pathfinder/internal/board"
)

// Unreachable marks a cell the search from the target never reached.
const Unreachable = -1

// InfeasibleScore stands in for an unreachable objective when a numeric
// value is needed. It is lower than any distance a grid can produce.
const InfeasibleScore = -1_000_000

// neighbours in exploration order: up, down, left, right.
var neighbours = [4]board.Position{{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}}

// Field holds the distance from every cell to the target.
type Field struct {
	rows int
	cols int
	dist []int
}

// At returns the distance at p, or Unreachable.
func (f *Field) At(p board.Position) int {
	if p.Row < 0 || p.Row >= f.rows || p.Col < 0 || p.Col >= f.cols {
		return Unreachable
	}
	return f.dist[p.Row*f.cols+p.Col]
}

// Reachable reports whether p was reached from the target.
func (f *Field) Reachable(p board.Position) bool {
	return f.At(p) != Unreachable
}

// Distances runs a breadth-first search from target over walkable cells.
// The target is at distance 0; cells never reached are Unreachable.
func Distances(g *board.Grid, target board.Position) *Field {
	f := &Field{rows: g.Rows(), cols: g.Cols(), dist: make([]int, g.Len())}
	for i := range f.dist {
		f.dist[i] = Unreachable
	}
	if !g.InBounds(target) {
		return f
	}

	queue := make([]board.Position, 0, g.Len())
	queue = append(queue, target)
	f.dist[g.Index(target)] = 0

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		d := f.dist[g.Index(cur)]
		for _, n := range neighbours {
			next := board.Pos(cur.Row+n.Row, cur.Col+n.Col)
			if !g.InBounds(next) || !g.Get(next).Walkable() {
				continue
			}
			i := g.Index(next)
			if f.dist[i] != Unreachable {
				continue
			}
			f.dist[i] = d + 1
			queue = append(queue, next)
		}
	}
	return f
}
