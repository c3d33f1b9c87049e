package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pipes/internal/progress"
)

var flagResetPlayer string

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget which stages a player has cleared",
	Long: `Clear the progress of a player in the configured backend.
Clear records shown by 'pipes records' are kept.

Examples:
  pipes reset
  pipes reset --player ana`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().StringVar(&flagResetPlayer, "player", "", "Player to reset (default: current user)")
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	player := flagResetPlayer
	if player == "" {
		player = localPlayer()
	}

	n, err := e.resetProgress(ctx, player)
	if err != nil {
		return err
	}
	fmt.Printf("Forgot %d cleared stage(s) for %s.\n", n, player)
	return nil
}

// resetProgress empties a player's tracker and returns how many stages were
// marked cleared before.
func (e *env) resetProgress(ctx context.Context, player string) (int, error) {
	tracker := e.tracker(player)
	before, err := progress.ClearSet(ctx, tracker, e.catalog.IDs())
	if err != nil {
		return 0, err
	}
	if err := progress.Reset(ctx, tracker); err != nil {
		return 0, err
	}
	e.logger.Info("progress reset", "player", player, "backend", e.cfg.Progress.Backend)
	return len(before), nil
}
