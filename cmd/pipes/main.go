// pipes is a pipe-rotation puzzle for the terminal.
//
// Usage:
//
//	pipes list                 - List stages and which ones are cleared
//	pipes play [stage]         - Play, starting at a stage
//	pipes menu                 - Stage picker, game and records in one session
//	pipes serve                - Start the SSH server and the stage API
//	pipes records <stage>      - Show the fewest-rotation clears of a stage
//	pipes reset                - Forget your cleared stages
//	pipes show <stage>         - Print a stage with its water flow
//	pipes stages <subcommand>  - Manage stages stored in the database
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.pipes/config.yaml)
//	--db <path>      - Database path (overrides storage.path)
//	--levels <dir>   - Extra stage directory (overrides levels.dir)
//	--theme <name>   - Color theme (overrides ui.theme)
//	--verbose        - Debug logging
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfigPath string
	flagDBPath     string
	flagLevelsDir  string
	flagTheme      string
	flagVerbose    bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pipes",
	Short: "Pipes - rotate the pipes until the water reaches every end",
	Long: `Pipes is a terminal puzzle: rotate pipe segments until water from
every start reaches every end.

Available commands:
  list     - Show all stages
  play     - Play directly, optionally from a given stage
  menu     - Interactive stage picker
  serve    - Start the SSH server and HTTP stage API
  records  - View the best clears of a stage
  show     - Print a stage as text
  stages   - Import, list, export, create and delete stored stages

Examples:
  pipes list
  pipes play 02-bend
  pipes menu --theme neon
  pipes serve --ssh :2222 --http :8080
  pipes records 01-tutorial`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Extra stage directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Color theme: classic, neon, pastel, monochrome")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(stagesCmd)
}
