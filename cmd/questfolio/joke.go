package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/questfolio/questfolio/internal/jokes"
)

var flagJSON bool

var jokeCmd = &cobra.Command{
	Use:   "joke",
	Short: "Print a random dad joke",
	Long: `Print a random dad joke from the jokes file.

Examples:
  questfolio joke
  questfolio joke --jokes ./jokes.txt
  questfolio joke --json`,
	Args: cobra.NoArgs,
	Run:  runJoke,
}

func init() {
	jokeCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the joke as JSON")
}

func runJoke(_ *cobra.Command, _ []string) {
	book, err := jokes.Load(flagJokes, flagSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using built-in joke: %v\n", err)
	}
	joke := book.Random()

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(joke); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(joke.Setup)
	fmt.Println(joke.Punchline)
}
