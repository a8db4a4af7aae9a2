// runner is a terminal endless-runner: dodge hazards, leap pits, chase score.
//
// Usage:
//
//	runner play              - Play in the current terminal
//	runner serve             - Start SSH server for remote play
//	runner scores            - Show the best runs
//	runner pattern <variant> - Inspect a generated terrain pattern
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.runner/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register it
	_ "github.com/vovakirdan/tui-runner/internal/runner"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Pattern Runner - an endless runner in your terminal",
	Long: `Pattern Runner is a terminal side-scroller. The world scrolls ever
faster while procedurally generated terrain patterns throw pits, spikes,
blocks and a patrolling plane at you. Jump, double-jump, and hold the key
to stretch the arc.

Available commands:
  play     - Play in the current terminal
  serve    - Start SSH server for remote play
  scores   - View the best runs
  pattern  - Inspect a generated terrain pattern

Examples:
  runner play
  runner play --difficulty hard
  runner serve --ssh :2222
  runner scores
  runner pattern spikes --seed 7`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/runs.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(patternCmd)
}
