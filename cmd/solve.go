package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/juanigsrz/emberward-pathfinder/internal/annealer"
	"github.com/juanigsrz/emberward-pathfinder/internal/board"
	"github.com/juanigsrz/emberward-pathfinder/internal/pathing"
	"github.com/juanigsrz/emberward-pathfinder/internal/pieces"
)

// pathMark labels walked cells in path overlays.
const pathMark = '*'

var (
	iterations    int
	initialTemp   float64
	alpha         float64
	seed          int64
	catalogName   string
	progressEvery int
	solveTimeout  time.Duration
	jsonOutput    bool
	showPath      bool
)

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve MAP",
		Short: "Search for a piece layout that lengthens the shortest path",
		Long: `Run simulated annealing over piece placements and print the best map found.

Examples:
  pathfinder solve maps/arena.txt
  pathfinder solve maps/arena.txt --iterations 1000000 --temp 10 --alpha 0.9999
  pathfinder solve maps/arena.txt --seed 42 --catalog tetromino --json`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}

	defaults := annealer.DefaultOptions()
	solveCmd.Flags().IntVarP(&iterations, "iterations", "n", defaults.Iterations, "Iteration budget")
	solveCmd.Flags().Float64Var(&initialTemp, "temp", defaults.InitialTemp, "Initial temperature")
	solveCmd.Flags().Float64Var(&alpha, "alpha", defaults.Alpha, "Cooling factor per iteration, in (0, 1)")
	solveCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = time-based)")
	solveCmd.Flags().StringVarP(&catalogName, "catalog", "c", pieces.DefaultName, "Piece catalog ("+strings.Join(pieces.Names(), ", ")+")")
	solveCmd.Flags().IntVar(&progressEvery, "progress", defaults.ProgressEvery, "Log progress every N iterations (0 disables)")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "Stop early after this long (0 = run the full budget)")
	solveCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	solveCmd.Flags().BoolVar(&showPath, "path", false, "Also print the best map with its shortest path marked")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	terrain, err := board.ParseFile(args[0])
	if err != nil {
		return err
	}

	catalog, err := pieces.ByName(catalogName)
	if err != nil {
		return err
	}

	opts := annealer.DefaultOptions()
	opts.Iterations = iterations
	opts.InitialTemp = initialTemp
	opts.Alpha = alpha
	opts.Seed = seed
	opts.Catalog = catalog
	opts.ProgressEvery = progressEvery
	opts.Progress = func(iteration int, temperature float64, best pathing.Score) {
		log.Info().
			Int("iter", iteration).
			Float64("temp", temperature).
			Stringer("best", best).
			Msg("progress")
	}
	if solveTimeout > 0 {
		opts.Deadline = time.Now().Add(solveTimeout)
	}

	a, err := annealer.New(terrain, opts)
	if err != nil {
		return err
	}

	log.Info().
		Str("map", args[0]).
		Int("rows", terrain.Rows()).
		Int("cols", terrain.Cols()).
		Int("spawns", len(terrain.Spawns())).
		Str("catalog", catalogName).
		Msg("starting search")

	res, err := a.Run(cmd.Context())
	if err != nil {
		if !errors.Is(err, annealer.ErrStopped) {
			return err
		}
		log.Warn().Err(err).Msg("search stopped early, reporting best so far")
	}

	log.Info().
		Dur("elapsed", res.Elapsed).
		Stringer("baseline", res.Baseline).
		Stringer("best", res.Score).
		Int("pieces", len(res.Placements)).
		Msg("search finished")
	if res.Grid.Equal(terrain.Grid()) {
		log.Info().Msg("no piece layout beat the empty map")
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, terrain, res)
	}
	return writeText(out, terrain, res)
}

type placementJSON struct {
	Symbol string   `json:"symbol"`
	Cells  [][2]int `json:"cells"`
}

type solveJSON struct {
	Score      pathing.Score   `json:"score"`
	Baseline   pathing.Score   `json:"baseline"`
	Grid       []string        `json:"grid"`
	Path       []string        `json:"path,omitempty"`
	Placements []placementJSON `json:"placements"`
	Iterations int             `json:"iterations"`
	FinalTemp  float64         `json:"final_temperature"`
	Accepted   int             `json:"accepted"`
	Rejected   int             `json:"rejected"`
	Infeasible int             `json:"infeasible"`
	ElapsedMS  int64           `json:"elapsed_ms"`
	Stopped    bool            `json:"stopped"`
}

func writeJSON(w io.Writer, terrain *board.Terrain, res *annealer.Result) error {
	doc := solveJSON{
		Score:      res.Score,
		Baseline:   res.Baseline,
		Grid:       res.Grid.Lines(),
		Placements: make([]placementJSON, 0, len(res.Placements)),
		Iterations: res.Iterations,
		FinalTemp:  res.FinalTemp,
		Accepted:   res.Accepted,
		Rejected:   res.Rejected,
		Infeasible: res.Infeasible,
		ElapsedMS:  res.Elapsed.Milliseconds(),
		Stopped:    res.Stopped,
	}
	if showPath {
		doc.Path = pathing.Overlay(res.Grid, terrain.Spawns(), terrain.Target(), pathMark)
	}
	for _, p := range res.Placements {
		pj := placementJSON{Symbol: string(p.Symbol), Cells: make([][2]int, len(p.Cells))}
		for i, c := range p.Cells {
			pj.Cells[i] = [2]int{c.Row, c.Col}
		}
		doc.Placements = append(doc.Placements, pj)
	}

	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func writeText(w io.Writer, terrain *board.Terrain, res *annealer.Result) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Best distance: %s (baseline %s)\n", res.Score, res.Baseline)
	fmt.Fprintf(&sb, "Pieces placed: %d\n\n", len(res.Placements))
	sb.WriteString("Best solution:\n")
	sb.WriteString(res.Grid.String())
	sb.WriteString("\n")

	if showPath {
		sb.WriteString("\nShortest path:\n")
		sb.WriteString(strings.Join(pathing.Overlay(res.Grid, terrain.Spawns(), terrain.Target(), pathMark), "\n"))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
