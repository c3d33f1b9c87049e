package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var flagRecordsLimit int

var recordsCmd = &cobra.Command{
	Use:   "records <stage>",
	Short: "Show the best clears of a stage",
	Long: `Display the clears of a stage with the fewest rotations first.

Examples:
  pipes records 01-tutorial
  pipes records 04-fork --limit 25`,
	Args: cobra.ExactArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of records to show")
}

func runRecords(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	stageID := args[0]

	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	lvl, ok := e.catalog.Get(stageID)
	if !ok {
		return fmt.Errorf("unknown stage %q, run 'pipes list' to see available stages", stageID)
	}

	records, err := e.store.BestClears(ctx, stageID, flagRecordsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Records - %s\n", lvl.Name)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pipes play %s' to set the first record!\n", stageID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-9s  %-8s  %s\n", "Rank", "Player", "Rotations", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-9s  %-8s  %s\n", "----", "------", "---------", "----", "----")
	for i, r := range records {
		fmt.Printf("  %-4d  %-12s  %-9d  %-8s  %s\n",
			i+1, r.Player, r.Rotations, r.Duration.Round(100*time.Millisecond), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := e.store.GetStageStats(ctx, stageID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Clears: %d  Best: %d  Average: %.1f rotations\n", stats.Clears, stats.BestRotations, stats.AvgRotations)
	}
	return nil
}
