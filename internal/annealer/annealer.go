// Package annealer searches for piece placements that lengthen the shortest
// spawn-to-target path, using simulated annealing with a Metropolis
// acceptance rule and a geometric cooling schedule.
package annealer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/juanigsrz/emberward-pathfinder/internal/board"
	"github.com/juanigsrz/emberward-pathfinder/internal/pathing"
	"github.com/juanigsrz/emberward-pathfinder/internal/pieces"
)

var (
	ErrInvalidOptions = errors.New("invalid annealer options")
	ErrStopped        = errors.New("search stopped before the iteration budget")
)

// state is everything the loop mutates. It is owned by one Annealer.
type state struct {
	grid        *board.Grid
	score       pathing.Score
	placements  board.PlacementSet
	best        *board.Grid
	bestScore   pathing.Score
	bestPlaced  []board.Placement
	temperature float64
	iteration   int

	accepted   int
	rejected   int
	infeasible int
}

// Result is the outcome of a search.
type Result struct {
	Grid       *board.Grid       // Best grid seen
	Score      pathing.Score     // Objective of Grid
	Baseline   pathing.Score     // Objective with no pieces placed
	Placements []board.Placement // Pieces on Grid

	Iterations int
	FinalTemp  float64
	Accepted   int
	Rejected   int
	Infeasible int
	Elapsed    time.Duration
	Stopped    bool // True if the context or deadline ended the run early
}

// Annealer runs one Monte-Carlo chain over piece placements.
type Annealer struct {
	terrain *board.Terrain
	options *Options
	catalog pieces.Catalog
	rng     *rand.Rand
	spawns  []board.Position
	target  board.Position
	state   state
}

// New creates an annealer for the given terrain.
func New(terrain *board.Terrain, options *Options) (*Annealer, error) {
	if options == nil {
		options = DefaultOptions()
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	catalog := options.Catalog
	if catalog == nil {
		catalog = pieces.DefaultCatalog()
	}

	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &Annealer{
		terrain: terrain,
		options: options,
		catalog: catalog,
		rng:     rand.New(rand.NewSource(seed)),
		spawns:  terrain.Spawns(),
		target:  terrain.Target(),
	}
	a.reset()
	return a, nil
}

// WithRand replaces the random source. It must be called before Run.
func (a *Annealer) WithRand(rng *rand.Rand) *Annealer {
	a.rng = rng
	return a
}

// reset initializes the state from the terrain: no pieces, T = T0.
func (a *Annealer) reset() {
	g := a.terrain.Grid()
	score := a.evaluate(g)
	a.state = state{
		grid:        g,
		score:       score,
		best:        g.Clone(),
		bestScore:   score,
		temperature: a.options.InitialTemp,
	}
}

// Run performs the search for the configured number of iterations and
// returns the best grid seen.
//
// If ctx is cancelled or the deadline passes, Run stops at the top of the next
// iteration and returns the best result so far together with ErrStopped.
func (a *Annealer) Run(ctx context.Context) (*Result, error) {
	logger := log.With().Str("module", "annealer").Logger()
	a.reset()
	baseline := a.state.score

	logger.Debug().
		Int("iterations", a.options.Iterations).
		Float64("t0", a.options.InitialTemp).
		Float64("alpha", a.options.Alpha).
		Int("pieces", len(a.catalog)).
		Stringer("baseline", baseline).
		Msg("search started")

	start := time.Now()
	var stopErr error
	for it := 0; it < a.options.Iterations; it++ {
		if err := a.interrupted(ctx); err != nil {
			stopErr = fmt.Errorf("%w at iteration %d: %w", ErrStopped, it, err)
			break
		}

		a.step()

		if a.options.ProgressEvery > 0 && it%a.options.ProgressEvery == 0 && a.options.Progress != nil {
			a.options.Progress(it, a.state.temperature, a.state.bestScore)
		}
	}

	s := &a.state
	res := &Result{
		Grid:       s.best.Clone(),
		Score:      s.bestScore,
		Baseline:   baseline,
		Placements: append([]board.Placement(nil), s.bestPlaced...),
		Iterations: s.iteration,
		FinalTemp:  s.temperature,
		Accepted:   s.accepted,
		Rejected:   s.rejected,
		Infeasible: s.infeasible,
		Elapsed:    time.Since(start),
		Stopped:    stopErr != nil,
	}

	logEvent(logger, stopErr).
		Int("iterations", res.Iterations).
		Stringer("best", res.Score).
		Int("covered", s.placements.Covered()).
		Dur("elapsed", res.Elapsed).
		Msg("search finished")

	return res, stopErr
}

func logEvent(l zerolog.Logger, err error) *zerolog.Event {
	if err != nil {
		return l.Warn().Err(err)
	}
	return l.Debug()
}

// interrupted reports why the loop must stop, if it must.
func (a *Annealer) interrupted(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if !a.options.Deadline.IsZero() && time.Now().After(a.options.Deadline) {
		return context.DeadlineExceeded
	}
	return nil
}

// step runs one iteration: propose a move, score it, accept or undo it, cool.
func (a *Annealer) step() {
	s := &a.state
	if s.placements.Len() == 0 || a.rng.Float64() < a.options.AddProbability {
		a.tryAdd()
	} else {
		a.tryRemove()
	}
	s.temperature *= a.options.Alpha
	s.iteration++
}

func (a *Annealer) tryAdd() {
	s := &a.state
	piece := a.catalog[a.rng.Intn(len(a.catalog))]
	shape := piece.Orientations[a.rng.Intn(len(piece.Orientations))]
	anchor := board.Pos(a.rng.Intn(s.grid.Rows()), a.rng.Intn(s.grid.Cols()))

	cells := board.TryPlace(s.grid, anchor, shape, a.terrain)
	if cells == nil {
		s.infeasible++
		return
	}

	board.Apply(s.grid, cells, piece.Symbol)
	score := a.evaluate(s.grid)
	if !a.accept(score) {
		board.Revert(s.grid, cells)
		s.rejected++
		return
	}
	s.placements.Add(board.Placement{Symbol: piece.Symbol, Cells: cells})
	a.commit(score)
}

func (a *Annealer) tryRemove() {
	s := &a.state
	i := a.rng.Intn(s.placements.Len())
	p := s.placements.At(i)

	board.Revert(s.grid, p.Cells)
	score := a.evaluate(s.grid)
	if !a.accept(score) {
		board.Apply(s.grid, p.Cells, p.Symbol)
		s.rejected++
		return
	}
	s.placements.RemoveAt(i)
	a.commit(score)
}

// accept applies the Metropolis rule to a candidate score.
// A random value is drawn only for worsening moves.
func (a *Annealer) accept(score pathing.Score) bool {
	delta := float64(score.Value() - a.state.score.Value())
	if delta >= 0 {
		return true
	}
	return Accept(delta, a.state.temperature, a.rng.Float64())
}

// commit makes the tentative grid current and records a new best on strict improvement.
func (a *Annealer) commit(score pathing.Score) {
	s := &a.state
	s.score = score
	s.accepted++
	if score.Better(s.bestScore) {
		s.bestScore = score
		s.best = s.grid.Clone()
		s.bestPlaced = s.placements.Slice()
	}
}

func (a *Annealer) evaluate(g *board.Grid) pathing.Score {
	return pathing.Objective(g, a.spawns, a.target)
}

// Accept is the Metropolis criterion: improvements and ties are always
// accepted, a worsening delta is accepted iff u < exp(delta/temp).
// u must be uniform in [0, 1).
func Accept(delta, temp, u float64) bool {
	if delta >= 0 {
		return true
	}
	return u < Probability(delta, temp)
}

// Probability returns the chance that a move with the given delta is accepted.
func Probability(delta, temp float64) float64 {
	if delta >= 0 {
		return 1
	}
	return math.Exp(delta / temp)
}
