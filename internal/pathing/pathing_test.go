package pathing

import (
	"testing"

	"github.com/juanigsrz/emberward-pathfinder/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, m string) *board.Terrain {
	t.Helper()
	terrain, err := board.ParseString(m)
	require.NoError(t, err)
	return terrain
}

func TestDistances_OpenGrid(t *testing.T) {
	terrain := parse(t, ""+
		"S....\n"+
		".....\n"+
		".....\n"+
		".....\n"+
		"....T\n")

	f := Distances(terrain.Grid(), terrain.Target())
	assert.Equal(t, 0, f.At(terrain.Target()))
	assert.Equal(t, 8, f.At(board.Pos(0, 0)))
	assert.Equal(t, 4, f.At(board.Pos(0, 4)))

	score := Objective(terrain.Grid(), terrain.Spawns(), terrain.Target())
	d, ok := score.Distance()
	require.True(t, ok)
	assert.Equal(t, 8, d)
}

func TestDistances_Detour(t *testing.T) {
	terrain := parse(t, ""+
		"S#...\n"+
		".#.#.\n"+
		"...#T\n")

	f := Distances(terrain.Grid(), terrain.Target())
	// S down to (2,0), over to (2,2), up to (0,2), across and down to T.
	assert.Equal(t, 10, f.At(board.Pos(0, 0)))
	assert.Equal(t, Unreachable, f.At(board.Pos(0, 1)), "obstacles are never reached")
}

func TestDistances_UnbuildableIsWalkable(t *testing.T) {
	terrain := parse(t, "SXT")
	f := Distances(terrain.Grid(), terrain.Target())
	assert.Equal(t, 2, f.At(board.Pos(0, 0)))
}

func TestDistances_PiecesBlock(t *testing.T) {
	terrain := parse(t, "S.T\n...")
	g := terrain.Grid()
	board.Apply(g, []board.Position{board.Pos(0, 1)}, 'L')

	f := Distances(g, terrain.Target())
	assert.Equal(t, 4, f.At(board.Pos(0, 0)))
	assert.False(t, f.Reachable(board.Pos(0, 1)))
}

func TestObjective_WallSeparates(t *testing.T) {
	terrain := parse(t, ""+
		"S..\n"+
		"###\n"+
		"..T\n")

	score := Objective(terrain.Grid(), terrain.Spawns(), terrain.Target())
	assert.False(t, score.Reachable())
	assert.Equal(t, InfeasibleScore, score.Value())
	assert.Equal(t, "unreachable", score.String())
}

func TestObjective_MinimumOverSpawns(t *testing.T) {
	terrain := parse(t, ""+
		"S...S\n"+
		".....\n"+
		"..T..\n")

	score := Objective(terrain.Grid(), terrain.Spawns(), terrain.Target())
	assert.Equal(t, Reached(4), score)
}

func TestObjective_AnySpawnUnreachable(t *testing.T) {
	terrain := parse(t, ""+
		"S#S\n"+
		"##.\n"+
		"..T\n")

	score := Objective(terrain.Grid(), terrain.Spawns(), terrain.Target())
	assert.False(t, score.Reachable(), "one blocked spawn makes the grid infeasible")
}

func TestScore_Ordering(t *testing.T) {
	assert.True(t, Reached(0).Better(Blocked()))
	assert.True(t, Reached(5).Better(Reached(4)))
	assert.False(t, Reached(4).Better(Reached(4)))
	assert.False(t, Blocked().Better(Blocked()))
	assert.Less(t, Blocked().Value(), Reached(0).Value())
}

func TestScore_MarshalJSON(t *testing.T) {
	b, err := Reached(12).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "12", string(b))

	b, err = Blocked().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestShortestPath(t *testing.T) {
	terrain := parse(t, ""+
		"S#.\n"+
		"...\n"+
		"#.T\n")

	f := Distances(terrain.Grid(), terrain.Target())
	path, ok := ShortestPath(f, board.Pos(0, 0))
	require.True(t, ok)
	require.Len(t, path, 5)
	assert.Equal(t, board.Pos(0, 0), path[0])
	assert.Equal(t, terrain.Target(), path[len(path)-1])
	for i := 1; i < len(path); i++ {
		dr := path[i].Row - path[i-1].Row
		dc := path[i].Col - path[i-1].Col
		assert.Equal(t, 1, dr*dr+dc*dc, "steps must be orthogonal")
	}
}

func TestShortestPath_Unreachable(t *testing.T) {
	terrain := parse(t, "S#T")
	f := Distances(terrain.Grid(), terrain.Target())
	_, ok := ShortestPath(f, board.Pos(0, 0))
	assert.False(t, ok)
}

func TestOverlay(t *testing.T) {
	terrain := parse(t, "S..\n##.\nX.T")
	lines := Overlay(terrain.Grid(), terrain.Spawns(), terrain.Target(), '*')
	assert.Equal(t, []string{"S**", "##*", "X.T"}, lines)
}
