package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/juanigsrz/emberward-pathfinder/internal/board"
	"github.com/juanigsrz/emberward-pathfinder/internal/oracle"
)

var oracleLimit int

func init() {
	oracleCmd := &cobra.Command{
		Use:   "oracle MAP",
		Short: "Exhaustively find the best single-cell wall layout of a small map",
		Long: `Enumerate every subset of single-cell walls over the buildable cells and
report the largest achievable spawn-to-target distance.

This is an upper-bound sanity check for tiny maps: runtime doubles with every
buildable cell, so maps above --limit buildable cells are refused.`,
		Args: cobra.ExactArgs(1),
		RunE: runOracle,
	}
	oracleCmd.Flags().IntVar(&oracleLimit, "limit", oracle.DefaultLimit, fmt.Sprintf("Maximum number of buildable cells to enumerate (at most %d)", oracle.MaxLimit))
	rootCmd.AddCommand(oracleCmd)
}

func runOracle(cmd *cobra.Command, args []string) error {
	terrain, err := board.ParseFile(args[0])
	if err != nil {
		return err
	}

	res, err := oracle.MaxWallDistance(terrain, oracleLimit)
	if err != nil {
		return err
	}

	log.Info().
		Int("candidates", res.Candidates).
		Int("layouts", res.Layouts).
		Stringer("best", res.Score).
		Msg("oracle finished")

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Max distance: %s with %d walls\n\n%s\n", res.Score, res.Walls, res.Grid)
	return err
}
