package annealer

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/juanigsrz/emberward-pathfinder/internal/board"
	"github.com/juanigsrz/emberward-pathfinder/internal/pathing"
	"github.com/juanigsrz/emberward-pathfinder/internal/pieces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openGrid = "" +
	"S....\n" +
	".....\n" +
	".....\n" +
	".....\n" +
	"....T\n"

func testOptions(iterations int, seed int64) *Options {
	opts := DefaultOptions()
	opts.Iterations = iterations
	opts.Seed = seed
	opts.ProgressEvery = 0
	return opts
}

func parse(t *testing.T, m string) *board.Terrain {
	t.Helper()
	terrain, err := board.ParseString(m)
	require.NoError(t, err)
	return terrain
}

func TestRun_OpenGrid(t *testing.T) {
	terrain := parse(t, openGrid)
	opts := testOptions(3000, 42)

	a, err := New(terrain, opts)
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3000, res.Iterations)
	assert.False(t, res.Stopped)
	assert.Equal(t, pathing.Reached(8), res.Baseline)
	assert.False(t, res.Baseline.Better(res.Score), "best %v is worse than baseline %v", res.Score, res.Baseline)
	assert.InEpsilon(t, opts.InitialTemp*math.Pow(opts.Alpha, 3000), res.FinalTemp, 1e-9)
	assert.Equal(t, 3000, res.Accepted+res.Rejected+res.Infeasible)

	// The reported grid must be a valid layout whose objective is the reported score.
	assert.True(t, terrain.Consistent(res.Grid))
	assert.Equal(t, res.Score, pathing.Objective(res.Grid, terrain.Spawns(), terrain.Target()))

	covered := 0
	for _, p := range res.Placements {
		for _, c := range p.Cells {
			assert.Equal(t, board.Cell(p.Symbol), res.Grid.Get(c))
		}
		covered += len(p.Cells)
	}
	free := res.Grid.Count(board.Free)
	assert.Equal(t, 23, free+covered, "every buildable cell is free or covered exactly once")
}

func TestRun_Deterministic(t *testing.T) {
	terrain := parse(t, openGrid)

	run := func() *Result {
		a, err := New(terrain, testOptions(2000, 7))
		require.NoError(t, err)
		res, err := a.Run(context.Background())
		require.NoError(t, err)
		return res
	}

	first, second := run(), run()
	assert.True(t, first.Grid.Equal(second.Grid))
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Accepted, second.Accepted)
	assert.Equal(t, first.Rejected, second.Rejected)
	assert.Equal(t, first.Infeasible, second.Infeasible)
}

func TestRun_WithRand(t *testing.T) {
	terrain := parse(t, openGrid)

	a1, err := New(terrain, testOptions(500, 1))
	require.NoError(t, err)
	a2, err := New(terrain, testOptions(500, 99))
	require.NoError(t, err)

	res1, err := a1.WithRand(rand.New(rand.NewSource(5))).Run(context.Background())
	require.NoError(t, err)
	res2, err := a2.WithRand(rand.New(rand.NewSource(5))).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res1.Grid.Equal(res2.Grid), "the injected source decides the trajectory")
}

func TestRun_InfeasibleMovesStillCool(t *testing.T) {
	// Nothing can be built, so every iteration is a failed add-move.
	terrain := parse(t, "S.X\nXXT")
	opts := testOptions(100, 3)

	a, err := New(terrain, opts)
	require.NoError(t, err)
	res, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100, res.Iterations)
	assert.Equal(t, 100, res.Infeasible)
	assert.Zero(t, res.Accepted)
	assert.Empty(t, res.Placements)
	assert.InEpsilon(t, opts.InitialTemp*math.Pow(opts.Alpha, 100), res.FinalTemp, 1e-9)
	assert.True(t, res.Grid.Equal(terrain.Grid()))
}

func TestRun_CancelledContext(t *testing.T) {
	terrain := parse(t, openGrid)
	a, err := New(terrain, testOptions(1000, 1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := a.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStopped))
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, res)
	assert.True(t, res.Stopped)
	assert.Zero(t, res.Iterations)
	assert.Equal(t, res.Baseline, res.Score)
}

func TestRun_Progress(t *testing.T) {
	terrain := parse(t, openGrid)
	opts := testOptions(12, 1)
	opts.ProgressEvery = 5

	var seen []int
	var temps []float64
	opts.Progress = func(iteration int, temperature float64, best pathing.Score) {
		seen = append(seen, iteration)
		temps = append(temps, temperature)
		assert.True(t, best.Reachable())
	}

	a, err := New(terrain, opts)
	require.NoError(t, err)
	_, err = a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 5, 10}, seen)
	assert.InEpsilon(t, opts.InitialTemp*opts.Alpha, temps[0], 1e-12, "progress reports the cooled temperature")
}

func TestStep_StateStaysConsistent(t *testing.T) {
	terrain := parse(t, ""+
		"S.......\n"+
		"..##....\n"+
		"....XX..\n"+
		"S......T\n")
	opts := testOptions(1, 11)
	opts.Catalog = pieces.TetrominoCatalog()

	a, err := New(terrain, opts)
	require.NoError(t, err)

	s := &a.state
	for i := 0; i < 2000; i++ {
		a.step()

		require.True(t, terrain.Consistent(s.grid))
		require.Equal(t, s.placements.Covered(), s.grid.Len()-countTerrain(s.grid))
		require.Equal(t, s.score, pathing.Objective(s.grid, terrain.Spawns(), terrain.Target()))
		require.True(t, s.score.Reachable(), "a blocked layout is never accepted from a reachable one")
		require.False(t, s.score.Better(s.bestScore))
	}
	assert.Equal(t, 2000, s.iteration)
}

func countTerrain(g *board.Grid) int {
	n := 0
	for _, c := range []board.Cell{board.Free, board.Obstacle, board.Unbuildable, board.Spawn, board.Target} {
		n += g.Count(c)
	}
	return n
}

func TestAccept_Law(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	const trials = 200000

	for _, tc := range []struct{ delta, temp float64 }{
		{-1, 1},
		{-2, 3},
		{-5, 10},
		{-1, 0.5},
	} {
		accepted := 0
		for i := 0; i < trials; i++ {
			if Accept(tc.delta, tc.temp, rng.Float64()) {
				accepted++
			}
		}
		want := math.Exp(tc.delta / tc.temp)
		got := float64(accepted) / trials
		assert.InDelta(t, want, got, 0.005, "delta=%g T=%g", tc.delta, tc.temp)
		assert.Equal(t, want, Probability(tc.delta, tc.temp))
	}
}

func TestAccept_NonNegativeDelta(t *testing.T) {
	assert.True(t, Accept(0, 1, 0.9999))
	assert.True(t, Accept(3, 1e-9, 0.9999))
	assert.Equal(t, 1.0, Probability(0, 1))
}

func TestAccept_InfeasibleNeverAccepted(t *testing.T) {
	delta := float64(pathing.Blocked().Value() - pathing.Reached(3).Value())
	assert.False(t, Accept(delta, DefaultInitialTemp, 0))
	assert.False(t, Accept(delta, 0, 0), "a frozen temperature rejects every worsening move")
}

func TestOptions_Validate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero iterations", func(o *Options) { o.Iterations = 0 }},
		{"zero temperature", func(o *Options) { o.InitialTemp = 0 }},
		{"alpha one", func(o *Options) { o.Alpha = 1 }},
		{"alpha zero", func(o *Options) { o.Alpha = 0 }},
		{"add probability zero", func(o *Options) { o.AddProbability = 0 }},
		{"negative progress", func(o *Options) { o.ProgressEvery = -1 }},
		{"empty catalog", func(o *Options) { o.Catalog = pieces.Catalog{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(opts)
			err := opts.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOptions))

			_, err = New(parse(t, openGrid), opts)
			assert.True(t, errors.Is(err, ErrInvalidOptions))
		})
	}
}
