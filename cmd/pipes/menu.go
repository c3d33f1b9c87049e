package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pipes/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick stages interactively",
	Long: `Opens the stage picker. Cleared stages are marked with ✓.
Press Tab in the picker for the records board.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	return tui.RunApp(ctx, e.appDeps(localPlayer()), e.runtimeConfig())
}
