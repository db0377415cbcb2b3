package annealer

import (
	"fmt"
	"time"

	"github.com/juanigsrz/emberward-pathfinder/internal/pathing"
	"github.com/juanigsrz/emberward-pathfinder/internal/pieces"
)

const (
	DefaultIterations     = 200000
	DefaultInitialTemp    = 50.0
	DefaultAlpha          = 0.9995
	DefaultAddProbability = 0.6
	DefaultProgressEvery  = 5000
)

// ProgressFunc receives periodic progress from a running search.
type ProgressFunc func(iteration int, temperature float64, best pathing.Score)

// Options configures a search.
type Options struct {
	Iterations     int            // Iteration budget; the loop has no other exit
	InitialTemp    float64        // Starting temperature T0
	Alpha          float64        // Cooling factor applied every iteration
	Seed           int64          // Seed for reproducible runs (0 = random)
	AddProbability float64        // Chance of an add-move when pieces are placed
	Catalog        pieces.Catalog // Pieces to draw from. nil means the default catalog.

	ProgressEvery int          // Progress cadence in iterations (0 disables)
	Progress      ProgressFunc // Called every ProgressEvery iterations if set

	// Deadline bounds wall-clock time. The zero value means no deadline.
	Deadline time.Time
}

// DefaultOptions returns the reference search parameters.
func DefaultOptions() *Options {
	return &Options{
		Iterations:     DefaultIterations,
		InitialTemp:    DefaultInitialTemp,
		Alpha:          DefaultAlpha,
		Seed:           0,
		AddProbability: DefaultAddProbability,
		Catalog:        nil, // nil → pieces.DefaultCatalog inside New
		ProgressEvery:  DefaultProgressEvery,
	}
}

// Validate checks the options are usable.
func (o *Options) Validate() error {
	if o.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidOptions, o.Iterations)
	}
	if o.InitialTemp <= 0 {
		return fmt.Errorf("%w: initial temperature must be positive, got %g", ErrInvalidOptions, o.InitialTemp)
	}
	if o.Alpha <= 0 || o.Alpha >= 1 {
		return fmt.Errorf("%w: alpha must be in (0, 1), got %g", ErrInvalidOptions, o.Alpha)
	}
	if o.AddProbability <= 0 || o.AddProbability > 1 {
		return fmt.Errorf("%w: add probability must be in (0, 1], got %g", ErrInvalidOptions, o.AddProbability)
	}
	if o.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress cadence must not be negative, got %d", ErrInvalidOptions, o.ProgressEvery)
	}
	if o.Catalog != nil {
		if err := o.Catalog.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
		}
	}
	return nil
}
