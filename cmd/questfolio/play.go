package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/questfolio/questfolio/internal/config"
	"github.com/questfolio/questfolio/internal/core"
	"github.com/questfolio/questfolio/internal/platform/tui"
)

var flagTab string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the portfolio locally",
	Long: `Open the portfolio in this terminal.

Controls:
  Tab/Shift+Tab, 1-5  - Switch tabs
  Enter               - Reveal the joke punchline
  N                   - Next joke
  Arrows/WASD         - Steer the snake
  R                   - Restart (after game over)
  H                   - High scores
  Q/Ctrl+C            - Quit

Examples:
  questfolio play
  questfolio play --tab snake --seed 42
  questfolio play --profile ./me.yaml --jokes ./jokes.txt`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTab, "tab", "profile", "Starting tab: profile, skills, quests, achievements, snake, or 1-5")
}

func runPlay(_ *cobra.Command, _ []string) {
	startTab, ok := tui.ParseTab(flagTab)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown tab %q\n", flagTab)
		os.Exit(1)
	}

	c, err := loadContent()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLocalLog()
	logger.Info("starting local session", "tab", startTab, "storage", c.store != nil)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	player := os.Getenv("USER")
	if player == "" {
		player = core.DefaultConfig().Player
	}

	deps := tui.Deps{
		Config:  c.cfg,
		Profile: c.profile,
		Jokes:   c.jokes,
		Logger:  logger,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
			Player:  player,
		},
		StartTab: startTab,
	}
	if c.store != nil {
		deps.Store = c.store
	}

	runErr := tui.Run(context.Background(), deps)

	// Close store and log before potential exit
	c.Close()
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running questfolio: %v\n", runErr)
		os.Exit(1)
	}
}

// openLocalLog sends logs to ~/.questfolio/questfolio.log so they stay off the
// alt screen. Logging is discarded if the file cannot be opened.
func openLocalLog() (*log.Logger, func()) {
	path := config.UserPath("questfolio.log")
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "questfolio",
	})
	return logger, func() { f.Close() }
}
