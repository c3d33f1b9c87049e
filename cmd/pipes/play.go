package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes"
	"github.com/vovakirdan/tui-pipes/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [stage]",
	Short: "Play pipes",
	Long: `Start playing at the given stage, or at the first stage not yet cleared.
Clearing a stage moves on to the next one.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Space/Enter       - Rotate the pipe under the cursor
  R                 - Restart the stage
  N                 - Skip to the next stage
  B/Esc             - Stage picker
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Examples:
  pipes play
  pipes play 03-detour
  pipes play --levels ./my-stages my-stage`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	if e.catalog.Len() == 0 {
		return fmt.Errorf("no stages available")
	}

	deps := e.appDeps(localPlayer())
	palette := deps.Theme.Palette
	game := pipes.New(ctx, e.catalog, pipes.Options{
		Tracker:     deps.Tracker,
		Recorder:    deps.Recorder,
		Logger:      deps.Logger,
		Player:      deps.Player,
		Palette:     &palette,
		ClearBanner: deps.ClearBanner,
	})

	stageID := ""
	if len(args) == 1 {
		stageID = args[0]
		if _, ok := e.catalog.Get(stageID); !ok {
			return fmt.Errorf("unknown stage %q, run 'pipes list' to see available stages", stageID)
		}
	} else {
		entries, err := tui.PickerEntries(ctx, e.catalog, deps.Tracker)
		if err != nil {
			return err
		}
		stageID = entries[0].ID
		for _, en := range entries {
			if !en.Cleared {
				stageID = en.ID
				break
			}
		}
	}

	for {
		cfg := e.runtimeConfig()
		game.Reset(cfg)
		if err := game.Start(stageID); err != nil {
			return err
		}

		back, err := tui.Run(game, e.theme, cfg)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}

		next, quit, err := pickStage(cmd, e, deps)
		if err != nil || quit {
			return err
		}
		stageID = next
	}
}

// pickStage shows the picker, and the records board when asked, until the
// player chooses a stage or quits.
func pickStage(cmd *cobra.Command, e *env, deps tui.AppDeps) (string, bool, error) {
	ctx := cmd.Context()
	for {
		entries, err := tui.PickerEntries(ctx, e.catalog, deps.Tracker)
		if err != nil {
			return "", false, err
		}
		cfg := e.runtimeConfig()

		res, err := tui.RunStagePicker(entries, e.theme, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			return "", false, err
		}
		switch {
		case res.Quit:
			return "", true, nil
		case res.StageID != "":
			return res.StageID, false, nil
		case res.WantsRecords:
			back, err := tui.RunRecords(ctx, e.store, entries, e.theme, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return "", false, err
			}
			if !back {
				return "", true, nil
			}
		}
	}
}
