package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flaptrivia/internal/config"
	"github.com/vovakirdan/flaptrivia/internal/registry"
	"github.com/vovakirdan/flaptrivia/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best scores and recent runs",
	Long: `Display the best scores, recent runs and totals for a mode, or for
every mode when none is given.

Examples:
  flaptrivia scores
  flaptrivia scores hard --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Rows per section")
}

func runScores(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var modes []string
	if len(args) == 1 {
		mode, err := config.ParseMode(args[0])
		if err != nil {
			return err
		}
		modes = []string{string(mode)}
	} else {
		for _, g := range registry.List() {
			modes = append(modes, g.ID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	for i, mode := range modes {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := printModeScores(cmd, store, mode); err != nil {
			return err
		}
	}
	return nil
}

func printModeScores(cmd *cobra.Command, store *storage.Store, mode string) error {
	out := cmd.OutOrStdout()

	stats, err := store.GetModeStats(mode)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "== %s ==\n", mode)
	if stats.RunsCount == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintf(out, "Play 'flaptrivia play %s' to record the first one!\n", mode)
		return nil
	}
	fmt.Fprintf(out, "Runs: %d  Victories: %d  Best: %d  Average: %.1f  Last played: %s\n\n",
		stats.RunsCount, stats.Victories, stats.HighScore, stats.AvgScore,
		stats.LastPlayed.Format("2006-01-02 15:04"))

	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Best scores:")
	fmt.Fprintf(out, "  %-4s  %-8s  %s\n", "Rank", "Score", "Date")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-8d  %s\n", i+1, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	runs, err := store.RecentRuns(mode, flagScoresLimit)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent runs:")
	fmt.Fprintf(out, "  %-8s  %-5s  %-7s  %-8s  %-6s  %-7s  %s\n",
		"Run", "Score", "Rewards", "Answered", "Deaths", "Result", "Date")
	for _, r := range runs {
		result := "quit"
		if r.Victory {
			result = "victory"
		}
		fmt.Fprintf(out, "  %-8s  %-5d  %-7d  %-8d  %-6d  %-7s  %s\n",
			shortID(r.ID), r.Score, r.Rewards, r.Answered, r.Deaths, result,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
