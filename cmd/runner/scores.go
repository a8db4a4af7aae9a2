package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagScoresBoard bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the top 10 runs: score, distance, pickups, and how each run ended.

Examples:
  runner scores
  runner scores --board    # interactive scoreboard
  runner scores --clear    # wipe all recorded runs`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresBoard, "board", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if clearErr := store.ClearRuns("runner"); clearErr != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", clearErr)
			os.Exit(1)
		}
		fmt.Println("All runs cleared.")
		return
	}

	if flagScoresBoard {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, boardErr := tui.RunScoreboard(store, "runner", width, height); boardErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", boardErr)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns("runner", 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Runs - Pattern Runner")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first record!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-10s  %-8s  %-16s  %s\n", "Rank", "Score", "Distance", "Pickups", "Cause", "Date")
	fmt.Printf("  %-4s  %-8s  %-10s  %-8s  %-16s  %s\n", "----", "-----", "--------", "-------", "-----", "----")

	for i, entry := range runs {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-10.0f  %-8d  %-16s  %s\n",
			i+1, entry.Score, entry.Distance, entry.Pickups, entry.Cause, dateStr)
	}

	fmt.Println()
	if high, highErr := store.HighScore("runner"); highErr == nil {
		fmt.Printf("Best score: %d\n", high)
	}
	if dist, distErr := store.BestDistance("runner"); distErr == nil {
		fmt.Printf("Longest run: %.0f units\n", dist)
	}
}
