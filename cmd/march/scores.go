package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/penguin-march/internal/games/march"
	"github.com/vovakirdan/penguin-march/internal/platform/tui"
	"github.com/vovakirdan/penguin-march/internal/registry"
	"github.com/vovakirdan/penguin-march/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the best runs",
	Long: `Display the best runs and overall stats for a game. Runs are ranked
by knockouts, then wins before losses, then the fastest time.

Examples:
  march scores
  march scores --limit 25
  march scores --tui
  march scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse runs in an interactive table")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := march.ID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'march list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all runs of %s.\n", gameID)
		return nil
	case flagScoresTUI:
		width, height := terminalSize()
		return tui.RunScoreboard(store, width, height)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'march play %s' to set the first record!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-4s  %-6s  %-8s  %-12s  %s\n", "Rank", "KOs", "Result", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-4s  %-6s  %-8s  %-12s  %s\n", "----", "---", "------", "----", "------", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-4d  %-6s  %-8s  %-12s  %s\n",
			i+1, r.Score, r.Outcome, tui.FormatTicks(r.Ticks), player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Wins: %d  Losses: %d  Best: %d KOs  Average: %.1f\n",
		stats.Runs, stats.Wins, stats.Losses, stats.HighScore, stats.AvgScore)
	if stats.FastestWin > 0 {
		fmt.Printf("Fastest win: %s\n", tui.FormatTicks(stats.FastestWin))
	}
	return nil
}
