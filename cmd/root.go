package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "pathfinder",
	Short: "Place pieces on a map to lengthen the walk from spawns to the target",
	Long: `pathfinder searches for a placement of fixed-shape pieces on a grid map that
maximizes the shortest walk from every spawn (S) to the target (T).

Map format: one row per line, '.' free, '#' obstacle, 'X' unbuildable,
'S' spawn, 'T' target.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console or json)")
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("command failed")
	}
	return err
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	zerolog.SetGlobalLevel(level)

	switch logFormat {
	case "console":
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			With().Timestamp().Logger()
	case "json":
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	default:
		return fmt.Errorf("invalid log format %q (use console or json)", logFormat)
	}
	return nil
}
