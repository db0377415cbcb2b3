package pieces

import (
	"fmt"
	"slices"

	"github.com/juanigsrz/emberward-pathfinder/internal/board"
)

// Catalog is the read-only list of pieces a search draws from.
type Catalog []Piece

// Catalog preset names accepted by ByName.
const (
	DefaultName   = "default"
	TetrominoName = "tetromino"
)

func shape(cells ...[2]int) Orientation {
	o := make(Orientation, len(cells))
	for i, c := range cells {
		o[i] = board.Pos(c[0], c[1])
	}
	return o
}

// DefaultCatalog returns the reference catalog: a 1×5 line that is only ever
// placed horizontally, and a 3-cell corner in all four rotations.
func DefaultCatalog() Catalog {
	line := shape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{0, 4})
	corner := shape([2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1})

	return Catalog{
		Fixed('I', line),
		{Symbol: 'L', Orientations: AllRotations(corner)},
	}
}

// TetrominoCatalog returns the seven tetrominoes with all distinct rotations.
// T and S are already map labels, so those shapes use M and N.
func TetrominoCatalog() Catalog {
	bases := []struct {
		symbol byte
		base   Orientation
	}{
		{'I', shape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})},
		{'O', shape([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1})},
		{'M', shape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 1})},
		{'N', shape([2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}, [2]int{1, 1})},
		{'Z', shape([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{1, 2})},
		{'J', shape([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2})},
		{'L', shape([2]int{0, 2}, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2})},
	}

	c := make(Catalog, 0, len(bases))
	for _, b := range bases {
		p, err := New(b.symbol, b.base)
		if err != nil {
			// Unreachable: every base shape is non-empty.
			panic("tetromino catalog: " + err.Error())
		}
		c = append(c, p)
	}
	return c
}

// ByName resolves a catalog preset.
func ByName(name string) (Catalog, error) {
	switch name {
	case DefaultName, "":
		return DefaultCatalog(), nil
	case TetrominoName:
		return TetrominoCatalog(), nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownCatalog, name, Names())
}

// Names lists the available presets.
func Names() []string {
	return []string{DefaultName, TetrominoName}
}

// Validate checks that every piece has at least one orientation, that every
// orientation is non-empty and covers the same number of cells, and that no
// symbol collides with a map label.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: catalog is empty", ErrEmptyShape)
	}
	for _, p := range c {
		if board.Cell(p.Symbol).IsTerrain() {
			return fmt.Errorf("piece symbol %q collides with a map label", p.Symbol)
		}
		if len(p.Orientations) == 0 || slices.ContainsFunc(p.Orientations, func(o Orientation) bool { return len(o) == 0 }) {
			return fmt.Errorf("%w: piece %q", ErrEmptyShape, p.Symbol)
		}
		size := p.Size()
		for i, o := range p.Orientations {
			if len(o) != size {
				return fmt.Errorf("%w: piece %q orientation %d has %d cells, want %d", ErrShapeSize, p.Symbol, i, len(o), size)
			}
		}
	}
	return nil
}
