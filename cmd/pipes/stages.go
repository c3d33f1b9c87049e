package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/levels"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/levels/formats"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Manage stages stored in the database",
	Long: `Stored stages are played after the builtin and directory stages
(unless levels.include_db is false) and are served by the HTTP API.`,
}

var stagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored stages",
	Args:  cobra.NoArgs,
	RunE:  runStagesList,
}

var stagesImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import stage files (.yaml, .yml, .toml, .json)",
	Long: `Stores each file in the database, replacing a stored stage with the
same ID. Files without an id field take their base name as ID.

Examples:
  pipes stages import ./my-stage.yaml
  pipes stages import ./stages/*.toml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStagesImport,
}

var flagExportFormat string

var stagesExportCmd = &cobra.Command{
	Use:   "export <stage>",
	Short: "Print any stage as YAML or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runStagesExport,
}

var stagesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored stage",
	Args:  cobra.ExactArgs(1),
	RunE:  runStagesDelete,
}

var (
	flagNewID     string
	flagNewName   string
	flagNewWidth  int
	flagNewHeight int
)

var stagesNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a blank stage",
	Long: fmt.Sprintf(`Creates a stage of straight pipes with a fixed start in the top-left
corner and a fixed end in the bottom-right corner. Export it, edit the
file and import it again to finish it.

Sizes range from %d to %d.

Examples:
  pipes stages new --name "Long way round" --width 6 --height 4`, core.MinEditorSize, core.MaxEditorSize),
	Args: cobra.NoArgs,
	RunE: runStagesNew,
}

func init() {
	stagesExportCmd.Flags().StringVar(&flagExportFormat, "format", "yaml", "Output format: yaml or json")

	stagesNewCmd.Flags().StringVar(&flagNewID, "id", "", "Stage ID (default: a fresh UUID)")
	stagesNewCmd.Flags().StringVar(&flagNewName, "name", "", "Stage name")
	stagesNewCmd.Flags().IntVar(&flagNewWidth, "width", 5, "Columns")
	stagesNewCmd.Flags().IntVar(&flagNewHeight, "height", 5, "Rows")
	//nolint:errcheck // Flag is defined above
	stagesNewCmd.MarkFlagRequired("name")

	stagesCmd.AddCommand(stagesListCmd, stagesImportCmd, stagesExportCmd, stagesDeleteCmd, stagesNewCmd)
}

func runStagesList(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer e.close()

	records, err := e.store.ListStages(cmd.Context())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No stored stages. Add one with 'pipes stages import <file>'.")
		return nil
	}

	fmt.Printf("  %-36s  %-5s  %-16s  %s\n", "ID", "Size", "Updated", "Name")
	fmt.Printf("  %-36s  %-5s  %-16s  %s\n", "--", "----", "-------", "----")
	for _, r := range records {
		fmt.Printf("  %-36s  %-5s  %-16s  %s\n",
			r.ID, fmt.Sprintf("%dx%d", r.Width, r.Height), r.UpdatedAt.Format("2006-01-02 15:04"), r.Name)
	}
	return nil
}

func runStagesImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	for _, path := range args {
		lvl, err := levels.ReadFile(path)
		if err != nil {
			return err
		}
		if _, anomalies := lvl.ToGrid(); len(anomalies) > 0 {
			for _, a := range anomalies {
				e.logger.Warn("stage will be repaired on load", "file", path, "anomaly", a)
			}
		}

		if err := e.store.SaveStage(ctx, lvl.Stage()); err != nil {
			return err
		}
		fmt.Printf("Imported %s as %s\n", path, lvl.ID)
	}
	return nil
}

func runStagesExport(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer e.close()

	lvl, ok := e.catalog.Get(args[0])
	if !ok {
		rec, err := e.store.GetStage(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("unknown stage %q: %w", args[0], err)
		}
		lvl = levels.Level{ID: rec.ID, Name: rec.Name, Width: rec.Width, Height: rec.Height, Pipes: rec.Pipes}
	}

	doc := formats.FromStage(lvl.Stage())
	doc.Metadata = lvl.Metadata

	var data []byte
	switch strings.ToLower(flagExportFormat) {
	case "yaml", "yml":
		data, err = formats.EncodeYAML(doc)
	case "json":
		data, err = formats.EncodeJSON(doc)
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q, want yaml or json", flagExportFormat)
	}
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runStagesDelete(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.store.DeleteStage(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("cannot delete %q: %w", args[0], err)
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func runStagesNew(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	ed, err := core.NewEditor(flagNewWidth, flagNewHeight)
	if err != nil {
		return err
	}
	if err := ed.Place(core.P(0, 0), core.Start, true); err != nil {
		return err
	}
	if err := ed.Place(core.P(flagNewHeight-1, flagNewWidth-1), core.End, true); err != nil {
		return err
	}

	stage, err := e.store.CreateStage(ctx, ed.Stage(flagNewID, flagNewName))
	if err != nil {
		return err
	}
	fmt.Printf("Created %s (%dx%d)\n", stage.ID, stage.Width, stage.Height)
	fmt.Printf("Edit it with: pipes stages export %s > stage.yaml\n", stage.ID)
	return nil
}
