package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/color-cascade/internal/games/cascade"
	"github.com/vovakirdan/color-cascade/internal/storage"
)

var (
	flagScoresLimit int
	flagShowRuns    bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent runs",
	Long: `Display the leaderboard, lifetime statistics and, with --runs, the most
recent run summaries.

Examples:
  cascade scores
  cascade scores --limit 20 --runs
  cascade scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "How many entries to show")
	scoresCmd.Flags().BoolVar(&flagShowRuns, "runs", false, "Also list recent runs")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores and runs")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(loadSettings().DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagClear {
		if err := store.ClearScores(cascade.ID); err != nil {
			return err
		}
		fmt.Fprintln(out, "Scores cleared.")
		return nil
	}

	scores, err := store.TopScores(cascade.ID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "High Scores - Color Cascade")
	fmt.Fprintln(out)
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out, "Run 'cascade play' to set the first one!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(cascade.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Games: %d  Best: %d  Average: %.0f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)

	if !flagShowRuns {
		return nil
	}

	runs, err := store.RecentRuns(cascade.ID, flagScoresLimit)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent Runs")
	fmt.Fprintf(out, "  %-8s  %-8s  %-5s  %-7s  %-5s  %s\n", "Run", "Score", "Level", "Cleared", "Combo", "Time")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-8s  %-8d  %-5d  %-7d  %-5d  %s\n",
			r.RunID[:8], r.Score, r.Level, r.BlocksCleared, r.MaxCombo,
			(time.Duration(r.Duration) * time.Second).String())
	}
	return nil
}
