package pathing

import (
	"strconv"

	"github.com/juanigsrz/emberward-pathfinder/internal/board"
)

// Score is the objective of a grid: either the shortest spawn-to-target
// distance, or unreachable when some spawn cannot reach the target.
type Score struct {
	distance  int
	reachable bool
}

// Reached returns a reachable score with distance d.
func Reached(d int) Score {
	return Score{distance: d, reachable: true}
}

// Blocked returns the unreachable score.
func Blocked() Score {
	return Score{}
}

// Reachable reports whether every spawn reaches the target.
func (s Score) Reachable() bool {
	return s.reachable
}

// Distance returns the distance and whether it is meaningful.
func (s Score) Distance() (int, bool) {
	return s.distance, s.reachable
}

// Value maps the score onto the integers for the acceptance rule.
// Unreachable scores map to InfeasibleScore.
func (s Score) Value() int {
	if !s.reachable {
		return InfeasibleScore
	}
	return s.distance
}

// Better reports whether s is strictly better than o.
// Any reachable score beats an unreachable one.
func (s Score) Better(o Score) bool {
	return s.Value() > o.Value()
}

func (s Score) String() string {
	if !s.reachable {
		return "unreachable"
	}
	return strconv.Itoa(s.distance)
}

// MarshalJSON encodes reachable scores as their distance and unreachable
// scores as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.reachable {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(s.distance)), nil
}

// Objective returns the minimum distance to target over all spawns,
// or Blocked if any spawn is unreachable.
func Objective(g *board.Grid, spawns []board.Position, target board.Position) Score {
	return FieldObjective(Distances(g, target), spawns)
}

// FieldObjective is Objective over an already computed field.
func FieldObjective(f *Field, spawns []board.Position) Score {
	if len(spawns) == 0 {
		return Blocked()
	}
	best := -1
	for _, sp := range spawns {
		d := f.At(sp)
		if d == Unreachable {
			return Blocked()
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return Reached(best)
}
