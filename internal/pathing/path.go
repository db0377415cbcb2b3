package pathing

import (
	"github.com/juanigsrz/emberward-pathfinder/internal/board"
)

// ShortestPath returns one shortest walk from `from` to the field's origin,
// both ends included. It steps to the first neighbour, in exploration order,
// whose distance is one less. Returns false if `from` is unreachable.
func ShortestPath(f *Field, from board.Position) ([]board.Position, bool) {
	d := f.At(from)
	if d == Unreachable {
		return nil, false
	}

	path := make([]board.Position, 0, d+1)
	path = append(path, from)
	cur := from
	for d > 0 {
		for _, n := range neighbours {
			next := board.Pos(cur.Row+n.Row, cur.Col+n.Col)
			if f.At(next) == d-1 {
				cur = next
				break
			}
		}
		d--
		path = append(path, cur)
	}
	return path, true
}

// Overlay draws the shortest path of every spawn onto a copy of g, marking
// walked Free and Unbuildable cells with mark. Spawns and the target keep
// their labels.
func Overlay(g *board.Grid, spawns []board.Position, target board.Position, mark byte) []string {
	f := Distances(g, target)
	onPath := make(map[board.Position]bool)
	for _, sp := range spawns {
		path, ok := ShortestPath(f, sp)
		if !ok {
			continue
		}
		for _, p := range path {
			onPath[p] = true
		}
	}

	lines := g.Lines()
	for r := range lines {
		row := []byte(lines[r])
		for c := range row {
			cell := board.Cell(row[c])
			if onPath[board.Pos(r, c)] && (cell == board.Free || cell == board.Unbuildable) {
				row[c] = mark
			}
		}
		lines[r] = string(row)
	}
	return lines
}
