package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/questfolio/questfolio/internal/config"
	"github.com/questfolio/questfolio/internal/storage"
)

var (
	flagLimit  int
	flagPlayer string
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show Snake high scores",
	Long: `Display the top Snake scores, or one player's level and best score.

Examples:
  questfolio scores
  questfolio scores --limit 20
  questfolio scores --player alice
  questfolio scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Show a single player's progress")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all Snake scores (player progress is kept)")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	dbPath := cfg.Storage.Path
	if flagDBPath != "" {
		dbPath = flagDBPath
	}
	if dbPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no database configured")
		os.Exit(1)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := clearScores(store, os.Stdout); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagPlayer != "" {
		if err := printPlayer(store, flagPlayer); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error retrieving player: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(storage.GameSnake, flagLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Snake")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'questfolio play --tab snake' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %-6s  %s\n", "Rank", "Player", "Score", "Length", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %-6s  %s\n", "----", "------", "-----", "------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-6d  %-6d  %s\n", i+1, entry.Player, entry.Score, entry.Length, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(storage.GameSnake); err == nil {
		fmt.Printf("Best: %d   Games recorded: %d\n", stats.HighScore, stats.GamesCount)
	}
}

// clearScores deletes every Snake score and reports how many were removed.
func clearScores(store *storage.Store, out io.Writer) error {
	stats, err := store.GetGameStats(storage.GameSnake)
	if err != nil {
		return err
	}
	if err := store.ClearScores(storage.GameSnake); err != nil {
		return err
	}
	fmt.Fprintf(out, "Cleared %d Snake scores.\n", stats.GamesCount)
	return nil
}

func printPlayer(store *storage.Store, name string) error {
	rec, ok, err := store.LoadProgress(name)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("No progress recorded for %s.\n", name)
		return nil
	}
	best, err := store.PlayerHighScore(storage.GameSnake, name)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", rec.Name)
	fmt.Printf("  Level         %d\n", rec.Level)
	fmt.Printf("  Experience    %d\n", rec.Exp)
	fmt.Printf("  Food eaten    %d\n", rec.FoodEaten)
	fmt.Printf("  Games played  %d\n", rec.GamesPlayed)
	fmt.Printf("  Best score    %d\n", best)
	return nil
}
