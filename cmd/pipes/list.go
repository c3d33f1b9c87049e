package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pipes/internal/platform/tui"
	"github.com/vovakirdan/tui-pipes/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stages",
	Long:  `Shows every stage in play order: builtin stages, then the levels directory, then the database.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	entries, err := tui.PickerEntries(ctx, e.catalog, e.tracker(localPlayer()))
	if err != nil {
		return err
	}

	stats, err := e.store.GetAllStageStats(ctx)
	if err != nil {
		e.logger.Warn("cannot load stage stats", "err", err)
	}

	printStageList(os.Stdout, entries, stats)
	return nil
}

// printStageList writes the stage table. stats may be nil.
func printStageList(w io.Writer, entries []tui.PickerEntry, stats map[string]*storage.StageStats) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No stages available.")
		return
	}

	fmt.Fprintln(w, "Stages:")
	fmt.Fprintln(w)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range entries {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Fprintf(w, "  %-*s  %-5s  %-2s  %-4s  %s\n", maxIDLen, "ID", "Size", "", "Best", "Name")
	fmt.Fprintf(w, "  %-*s  %-5s  %-2s  %-4s  %s\n", maxIDLen, "--", "----", "", "----", "----")

	cleared := 0
	for _, s := range entries {
		mark := ""
		if s.Cleared {
			mark = "✓"
			cleared++
		}
		best := "-"
		if st, ok := stats[s.ID]; ok && st.Clears > 0 {
			best = fmt.Sprint(st.BestRotations)
		}
		size := fmt.Sprintf("%dx%d", s.Width, s.Height)
		fmt.Fprintf(w, "  %-*s  %-5s  %-2s  %-4s  %s\n", maxIDLen, s.ID, size, mark, best, s.Name)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d of %d cleared. Play with: pipes play <id>\n", cleared, len(entries))
}
