// Package oracle computes exact optima for the single-cell wall variant of
// the problem on small maps. It enumerates every wall subset, so it is only
// a sanity bound for tests and tiny maps; the annealer never calls it.
package oracle

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/juanigsrz/emberward-pathfinder/internal/board"
	"github.com/juanigsrz/emberward-pathfinder/internal/pathing"
)

// DefaultLimit is the largest number of buildable cells enumerated by default.
const DefaultLimit = 18

// MaxLimit is the hard cap on buildable cells. Layouts are counted in a
// uint64, so 64 or more cells cannot be enumerated at all.
const MaxLimit = 63

// Wall is the symbol used for single-cell walls.
const Wall byte = 'W'

var ErrTooLarge = errors.New("too many buildable cells for exhaustive search")

// Result is the best wall layout found.
type Result struct {
	Score      pathing.Score
	Grid       *board.Grid
	Walls      int // Wall count of Grid
	Candidates int // Number of buildable cells enumerated
	Layouts    int // Number of layouts evaluated
}

// MaxWallDistance returns the largest objective reachable by walling off any
// subset of the buildable cells of terrain. Ties keep the layout with the
// fewest walls. limit caps the number of buildable cells; 0 means DefaultLimit,
// and limits above MaxLimit are lowered to it.
func MaxWallDistance(terrain *board.Terrain, limit int) (*Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	g := terrain.Grid()
	var cells []board.Position
	for r := 0; r < terrain.Rows(); r++ {
		for c := 0; c < terrain.Cols(); c++ {
			p := board.Pos(r, c)
			if terrain.Buildable(p) {
				cells = append(cells, p)
			}
		}
	}
	if len(cells) > limit {
		return nil, fmt.Errorf("%w: %d cells, limit %d", ErrTooLarge, len(cells), limit)
	}

	spawns, target := terrain.Spawns(), terrain.Target()
	res := &Result{
		Score:      pathing.Objective(g, spawns, target),
		Grid:       g.Clone(),
		Candidates: len(cells),
		Layouts:    1,
	}

	// Walk the subsets in Gray-code order so each step toggles one wall.
	walled := make([]bool, len(cells))
	walls := 0
	total := uint64(1) << len(cells)
	for i := uint64(1); i < total; i++ {
		bit := bits.TrailingZeros64(i)
		cell := []board.Position{cells[bit]}
		if walled[bit] {
			board.Revert(g, cell)
			walls--
		} else {
			board.Apply(g, cell, Wall)
			walls++
		}
		walled[bit] = !walled[bit]
		res.Layouts++

		score := pathing.Objective(g, spawns, target)
		if score.Better(res.Score) || (score == res.Score && walls < res.Walls) {
			res.Score = score
			res.Grid = g.Clone()
			res.Walls = walls
		}
	}
	return res, nil
}
