package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagHistorySize   int
	flagHistoryLimit  int
	flagHistoryRecent bool
	flagHistoryPlayer string
	flagHistoryClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the best finished games",
	Long: `Display finished games from the results database.

By default the best games for one board size are listed: highest tile
first, fewer moves breaking ties. Use --recent for the latest games.

Examples:
  t2048 history
  t2048 history --size 5 --limit 20
  t2048 history --recent
  t2048 history --recent --player alice
  t2048 history --size 3 --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistorySize, "size", 4, "Board size")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of games to show")
	historyCmd.Flags().BoolVar(&flagHistoryRecent, "recent", false, "Show the most recent games instead of the best")
	historyCmd.Flags().StringVar(&flagHistoryPlayer, "player", "", "Only show games of this player (with --recent)")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete every recorded game for the board size")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearResults(flagHistorySize); err != nil {
			return err
		}
		fmt.Printf("Cleared %dx%d results\n", flagHistorySize, flagHistorySize)
		return nil
	}

	var results []storage.GameResult
	switch {
	case flagHistoryRecent && flagHistoryPlayer != "":
		fmt.Printf("Recent games - %s\n", flagHistoryPlayer)
		results, err = store.PlayerResults(flagHistoryPlayer, flagHistoryLimit)
	case flagHistoryRecent:
		fmt.Println("Recent games")
		results, err = store.RecentResults(flagHistoryLimit)
	default:
		fmt.Printf("Best games - %dx%d\n", flagHistorySize, flagHistorySize)
		results, err = store.BestResults(flagHistorySize, flagHistoryLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048 play' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-5s  %-7s  %-6s  %-7s  %-7s  %-12s  %s\n", "Rank", "Board", "Max", "Moves", "Sum", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-5s  %-7s  %-6s  %-7s  %-7s  %-12s  %s\n", "----", "-----", "---", "-----", "---", "----", "------", "----")

	for i, r := range results {
		board := fmt.Sprintf("%dx%d", r.BoardSize, r.BoardSize)
		dur := (time.Duration(r.Duration) * time.Second).String()
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-5s  %-7d  %-6d  %-7d  %-7s  %-12s  %s\n",
			i+1, board, r.MaxTile, r.Moves, r.TileSum, dur, r.Player, dateStr)
	}

	if !flagHistoryRecent {
		stats, err := store.Stats(flagHistorySize)
		if err == nil && stats.GamesCount > 0 {
			fmt.Println()
			fmt.Printf("  %d games, best tile %d, %.1f moves on average\n",
				stats.GamesCount, stats.BestTile, stats.AvgMoves)
		}
	}
	return nil
}
