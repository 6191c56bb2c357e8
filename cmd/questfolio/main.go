// questfolio is an RPG-styled portfolio for the terminal with a built-in Snake
// game that levels up the visitor.
//
// Usage:
//
//	questfolio               - Open the portfolio locally (same as play)
//	questfolio play          - Open the portfolio locally
//	questfolio serve         - Serve the portfolio over SSH, optionally with an HTTP API
//	questfolio scores        - Show Snake high scores
//	questfolio joke          - Print a random dad joke
//
// Global flags:
//
//	--config <path>   - App config YAML
//	--profile <path>  - Profile YAML
//	--jokes <path>    - Jokes file, one "setup<>punchline" per line
//	--db <path>       - Database path (default from config: ~/.questfolio/questfolio.db)
//	--seed <value>    - RNG seed for reproducible food placement
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagProfile string
	flagJokes   string
	flagDBPath  string
	flagSeed    int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "questfolio",
	Short: "Questfolio - an RPG portfolio in your terminal",
	Long: `Questfolio presents a portfolio as a character sheet: stats, skills,
quests, and achievements. Play the Snake game to earn experience and level up.

Available commands:
  play     - Open the portfolio locally (default)
  serve    - Start SSH server for remote visitors
  scores   - View Snake high scores
  joke     - Print a random dad joke

Examples:
  questfolio
  questfolio play --tab snake
  questfolio serve --ssh :2222 --http :8080
  questfolio scores --limit 5`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to app config YAML")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Path to profile YAML")
	rootCmd.PersistentFlags().StringVar(&flagJokes, "jokes", "", "Path to jokes file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagTab, "tab", "profile", "Starting tab: profile, skills, quests, achievements, snake, or 1-5")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(jokeCmd)
}
