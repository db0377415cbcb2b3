package board

import (
	"strings"
)

// Cell is the label of a single grid square.
// Any byte that is not one of the terrain labels below is a piece symbol.
type Cell byte

// Terrain labels, matching the map text format.
const (
	Free        Cell = '.'
	Obstacle    Cell = '#'
	Unbuildable Cell = 'X'
	Spawn       Cell = 'S'
	Target      Cell = 'T'
)

// IsTerrain reports whether c is one of the fixed terrain labels.
func (c Cell) IsTerrain() bool {
	switch c {
	case Free, Obstacle, Unbuildable, Spawn, Target:
		return true
	}
	return false
}

// IsPieceSymbol reports whether c may label a placed piece cell: an upper-case
// letter that is not already a terrain label.
func (c Cell) IsPieceSymbol() bool {
	return c >= 'A' && c <= 'Z' && !c.IsTerrain()
}

// Walkable reports whether a path may pass through a cell with this label.
// Unbuildable cells are walkable: they only refuse pieces.
func (c Cell) Walkable() bool {
	switch c {
	case Free, Spawn, Target, Unbuildable:
		return true
	}
	return false
}

// Position is a (row, column) pair on the grid.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Less orders positions row-major.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Grid is a mutable R×C array of cell labels.
//
// Outside this package a Grid is read-only; labels only change through
// Apply and Revert so the grid never drifts from the active placements.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates a grid of the given size with every cell Free.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	for i := range g.cells {
		g.cells[i] = Free
	}
	return g
}

// Clone creates an independent copy of the Grid.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	clone := &Grid{rows: g.rows, cols: g.cols, cells: make([]Cell, len(g.cells))}
	copy(clone.cells, g.cells)
	return clone
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Get returns the label at p.
// Returns Obstacle for out-of-bounds positions, which are never walkable.
func (g *Grid) Get(p Position) Cell {
	if !g.InBounds(p) {
		return Obstacle
	}
	return g.cells[g.index(p)]
}

// Index returns the linear index of p, row-major.
func (g *Grid) Index(p Position) int {
	return g.index(p)
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Equal reports whether both grids have the same size and labels.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Count returns how many cells carry label c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Lines returns the grid as one string per row.
func (g *Grid) Lines() []string {
	lines := make([]string, g.rows)
	for r := 0; r < g.rows; r++ {
		row := make([]byte, g.cols)
		for c := 0; c < g.cols; c++ {
			row[c] = byte(g.cells[r*g.cols+c])
		}
		lines[r] = string(row)
	}
	return lines
}

// String returns the grid in map text format, rows separated by newlines.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

func (g *Grid) index(p Position) int {
	return p.Row*g.cols + p.Col
}

// set writes a label without validation. Callers are Apply, Revert and the parser.
func (g *Grid) set(p Position, c Cell) {
	g.cells[g.index(p)] = c
}
