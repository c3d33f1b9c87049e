package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

var showCmd = &cobra.Command{
	Use:   "show <stage>",
	Short: "Print a stage with its water flow",
	Long: `Prints the stage as text. Connected pipes are drawn heavy, and any
repairs made to malformed stage data are listed below the board.

Examples:
  pipes show 01-tutorial`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer e.close()

	lvl, ok := e.catalog.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown stage %q, run 'pipes list' to see available stages", args[0])
	}

	grid, anomalies := lvl.ToGrid()
	res := core.Evaluate(grid)

	fmt.Printf("%s (%s, %dx%d)\n", lvl.Name, lvl.ID, grid.W, grid.H)
	if lvl.FilePath != "" {
		fmt.Printf("Source: %s\n", lvl.FilePath)
	}
	fmt.Println()
	fmt.Println(core.RenderASCII(grid, res))
	fmt.Println()
	fmt.Printf("Ends reached: %d/%d", len(res.ReachedSinks), len(res.Sinks))
	if res.Solved {
		fmt.Print("  (solved as shipped)")
	}
	fmt.Println()

	if len(anomalies) > 0 {
		fmt.Println()
		fmt.Println("Repairs:")
		for _, a := range anomalies {
			fmt.Printf("  %v\n", a)
		}
	}
	return nil
}
