package board

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMap        = errors.New("map has no rows")
	ErrNoSpawn         = errors.New("no spawn (S) found in map")
	ErrNoTarget        = errors.New("no target (T) found in map")
	ErrMultipleTargets = errors.New("map has more than one target (T)")
	ErrRaggedRows      = errors.New("map rows differ in length")
	ErrInvalidCell     = errors.New("invalid map character")
)

func invalidCellError(p Position, ch byte) error {
	return fmt.Errorf("%w: '%c' at row %d, col %d", ErrInvalidCell, ch, p.Row, p.Col)
}

// Consistent reports whether g still matches the terrain it was derived from:
// same size, and every non-Free terrain label exactly where the terrain put it.
// Cells that were Free may be Free or hold a piece symbol.
func (t *Terrain) Consistent(g *Grid) bool {
	if g.Rows() != t.rows || g.Cols() != t.cols {
		return false
	}
	for i, want := range t.initial.cells {
		got := g.cells[i]
		if want == Free {
			if got != Free && got.IsTerrain() {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}
