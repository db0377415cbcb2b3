package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juanigsrz/emberward-pathfinder/internal/board"
	"github.com/juanigsrz/emberward-pathfinder/internal/pathing"
)

func init() {
	inspectCmd := &cobra.Command{
		Use:   "inspect MAP",
		Short: "Print a map's spawn distances and its current shortest path",
		Long: `Print spawn distances and the shortest path of a map.

The map may already contain placed pieces (any upper-case letter other than
S, T and X), for example the output of solve. Piece cells block movement.`,
		Args: cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	terrain, g, err := board.ParseLayoutFile(args[0])
	if err != nil {
		return err
	}

	field := pathing.Distances(g, terrain.Target())

	var sb strings.Builder
	fmt.Fprintf(&sb, "Size: %d x %d\n", terrain.Rows(), terrain.Cols())
	fmt.Fprintf(&sb, "Target: (%d, %d)\n", terrain.Target().Row, terrain.Target().Col)
	fmt.Fprintf(&sb, "Obstacles: %d, unbuildable: %d, buildable: %d\n",
		terrain.ObstacleCount(), terrain.UnbuildableCount(), g.Count(board.Free))
	if placed := terrain.Grid().Count(board.Free) - g.Count(board.Free); placed > 0 {
		fmt.Fprintf(&sb, "Piece cells: %d\n", placed)
	}

	for _, sp := range terrain.Spawns() {
		if d := field.At(sp); d == pathing.Unreachable {
			fmt.Fprintf(&sb, "Spawn (%d, %d): unreachable\n", sp.Row, sp.Col)
		} else {
			fmt.Fprintf(&sb, "Spawn (%d, %d): %d\n", sp.Row, sp.Col, d)
		}
	}
	fmt.Fprintf(&sb, "Baseline score: %s\n\n", pathing.FieldObjective(field, terrain.Spawns()))
	sb.WriteString(strings.Join(pathing.Overlay(g, terrain.Spawns(), terrain.Target(), pathMark), "\n"))
	sb.WriteString("\n")

	_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return err
}
