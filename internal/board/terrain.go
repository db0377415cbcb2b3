package board

import (
	"github.com/zyedidia/generic/mapset"
)

// Terrain describes the fixed part of a map: its size, the spawns and the
// target, and which cells are obstacles or refuse pieces.
//
// Terrain is immutable after construction; it is safe to share the same
// pointer between every grid derived from it.
type Terrain struct {
	rows    int
	cols    int
	spawns  []Position
	target  Position
	initial *Grid

	obstacles   mapset.Set[Position]
	unbuildable mapset.Set[Position]
}

// NewTerrain builds a Terrain from a fully labelled grid.
// The grid is cloned; later changes to g do not affect the Terrain.
func NewTerrain(g *Grid) (*Terrain, error) {
	if g == nil || g.Len() == 0 {
		return nil, ErrEmptyMap
	}

	t := &Terrain{
		rows:        g.Rows(),
		cols:        g.Cols(),
		initial:     g.Clone(),
		obstacles:   mapset.New[Position](),
		unbuildable: mapset.New[Position](),
	}

	targets := 0
	for r := 0; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			p := Pos(r, c)
			switch cell := g.Get(p); cell {
			case Spawn:
				t.spawns = append(t.spawns, p)
			case Target:
				t.target = p
				targets++
			case Obstacle:
				t.obstacles.Put(p)
			case Unbuildable:
				t.unbuildable.Put(p)
			case Free:
			default:
				return nil, invalidCellError(p, byte(cell))
			}
		}
	}

	if len(t.spawns) == 0 {
		return nil, ErrNoSpawn
	}
	if targets == 0 {
		return nil, ErrNoTarget
	}
	if targets > 1 {
		return nil, ErrMultipleTargets
	}
	return t, nil
}

// Rows returns the number of grid rows.
func (t *Terrain) Rows() int {
	return t.rows
}

// Cols returns the number of grid columns.
func (t *Terrain) Cols() int {
	return t.cols
}

// Spawns returns a copy of the spawn positions in row-major order.
func (t *Terrain) Spawns() []Position {
	out := make([]Position, len(t.spawns))
	copy(out, t.spawns)
	return out
}

// Target returns the target position.
func (t *Terrain) Target() Position {
	return t.target
}

// IsObstacle reports whether p is a fixed obstacle.
func (t *Terrain) IsObstacle(p Position) bool {
	return t.obstacles.Has(p)
}

// IsUnbuildable reports whether p refuses pieces.
func (t *Terrain) IsUnbuildable(p Position) bool {
	return t.unbuildable.Has(p)
}

// ObstacleCount returns the number of fixed obstacles.
func (t *Terrain) ObstacleCount() int {
	return t.obstacles.Size()
}

// UnbuildableCount returns the number of unbuildable cells.
func (t *Terrain) UnbuildableCount() int {
	return t.unbuildable.Size()
}

// Buildable reports whether a piece may ever occupy p.
// Only cells that were Free in the map qualify.
func (t *Terrain) Buildable(p Position) bool {
	return t.initial.InBounds(p) && t.initial.Get(p) == Free
}

// Grid returns a fresh copy of the initial grid, with no pieces placed.
func (t *Terrain) Grid() *Grid {
	return t.initial.Clone()
}
