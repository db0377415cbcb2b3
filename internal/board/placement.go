package board

import "fmt"

// Placement is a concrete piece on the grid: the absolute cells it covers
// and the symbol they are labelled with.
type Placement struct {
	Symbol byte
	Cells  []Position
}

// TryPlace computes the cells a shape would cover when anchored at anchor.
// offsets are relative (row, col) displacements from the anchor.
//
// Returns nil if any cell falls off the grid, is not currently Free, or is a
// terrain obstacle or unbuildable cell. TryPlace never mutates g.
func TryPlace(g *Grid, anchor Position, offsets []Position, t *Terrain) []Position {
	cells := make([]Position, 0, len(offsets))
	for _, off := range offsets {
		p := Pos(anchor.Row+off.Row, anchor.Col+off.Col)
		if !g.InBounds(p) {
			return nil
		}
		if g.Get(p) != Free || t.IsObstacle(p) || t.IsUnbuildable(p) {
			return nil
		}
		cells = append(cells, p)
	}
	return cells
}

// Apply labels every cell with symbol.
// Panics if symbol is a terrain label; such a placement could never be reverted.
func Apply(g *Grid, cells []Position, symbol byte) {
	if Cell(symbol).IsTerrain() {
		panic(fmt.Sprintf("board: piece symbol %q collides with a terrain label", symbol))
	}
	for _, p := range cells {
		g.set(p, Cell(symbol))
	}
}

// Revert relabels every cell as Free. It is the exact inverse of Apply.
func Revert(g *Grid, cells []Position) {
	for _, p := range cells {
		g.set(p, Free)
	}
}

// PlacementSet is the ordered collection of active placements.
type PlacementSet struct {
	items []Placement
}

// Len returns the number of active placements.
func (s *PlacementSet) Len() int {
	return len(s.items)
}

// At returns the i-th placement.
func (s *PlacementSet) At(i int) Placement {
	return s.items[i]
}

// Add appends a placement.
func (s *PlacementSet) Add(p Placement) {
	s.items = append(s.items, p)
}

// RemoveAt deletes the i-th placement, preserving the order of the rest.
func (s *PlacementSet) RemoveAt(i int) Placement {
	p := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return p
}

// Slice returns a copy of the active placements.
func (s *PlacementSet) Slice() []Placement {
	out := make([]Placement, len(s.items))
	copy(out, s.items)
	return out
}

// Covered returns the number of cells occupied by all placements.
func (s *PlacementSet) Covered() int {
	n := 0
	for _, p := range s.items {
		n += len(p.Cells)
	}
	return n
}
