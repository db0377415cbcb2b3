// Package pieces defines the multi-cell shapes the annealer may place and
// generates their distinct rotations.
package pieces

import (
	"errors"
	"slices"

	"github.com/juanigsrz/emberward-pathfinder/internal/board"
)

var (
	ErrUnknownCatalog = errors.New("unknown piece catalog")
	ErrEmptyShape     = errors.New("piece shape has no cells")
	ErrShapeSize      = errors.New("piece orientations differ in size")
)

// Orientation is one rotated variant of a shape, as (row, col) offsets from
// the anchor cell.
type Orientation []board.Position

// Piece is a shape together with every orientation it may be placed in.
type Piece struct {
	Symbol       byte
	Orientations []Orientation
}

// Size returns the number of cells a piece covers.
func (p Piece) Size() int {
	if len(p.Orientations) == 0 {
		return 0
	}
	return len(p.Orientations[0])
}

// Rotate turns every offset (x, y) into (-y, x), a quarter turn about the anchor.
func Rotate(o Orientation) Orientation {
	out := make(Orientation, len(o))
	for i, off := range o {
		out[i] = board.Pos(-off.Col, off.Row)
	}
	return out
}

// Canonical returns a sorted copy of o. Two orientations cover the same
// relative cells exactly when their canonical forms are equal.
func Canonical(o Orientation) Orientation {
	out := slices.Clone(o)
	slices.SortFunc(out, func(a, b board.Position) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return out
}

// AllRotations returns the distinct 0°, 90°, 180° and 270° rotations of base,
// in the order they are first produced. base itself is always first.
func AllRotations(base Orientation) []Orientation {
	var rotations []Orientation
	var seen []Orientation

	o := base
	for i := 0; i < 4; i++ {
		key := Canonical(o)
		if !slices.ContainsFunc(seen, func(s Orientation) bool { return slices.Equal(s, key) }) {
			seen = append(seen, key)
			rotations = append(rotations, o)
		}
		o = Rotate(o)
	}
	return rotations
}

// New builds a piece from a base shape with all of its distinct rotations.
func New(symbol byte, base Orientation) (Piece, error) {
	if len(base) == 0 {
		return Piece{}, ErrEmptyShape
	}
	return Piece{Symbol: symbol, Orientations: AllRotations(base)}, nil
}

// Fixed builds a piece that may only be placed in the given orientations.
func Fixed(symbol byte, orientations ...Orientation) Piece {
	return Piece{Symbol: symbol, Orientations: orientations}
}
