package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/questfolio/questfolio/internal/core"
	"github.com/questfolio/questfolio/internal/games/snake"
)

// SnakeTab is the Snake Game tab: the board, the score line, and the high
// score overlay. The engine lives behind the runner; the tab only holds the
// latest snapshot and the live activation, if any.
type SnakeTab struct {
	runner     *snake.Runner
	activation *snake.Activation
	gen        int // Bumped per activation so stale frames are dropped
	interval   time.Duration
	cellSize   int
	screen     *core.Screen

	snap        snake.Snapshot
	best        int
	saved       bool // Run already recorded for the current game over
	foodThisRun int

	showScores bool
	scoreboard Scoreboard
}

// NewSnakeTab creates the tab around runner.
func NewSnakeTab(runner *snake.Runner, interval time.Duration, cellSize, best int, player string) SnakeTab {
	snap := runner.Snapshot()
	side := snap.GridSize * max(cellSize, 1)
	return SnakeTab{
		runner:     runner,
		interval:   interval,
		cellSize:   max(cellSize, 1),
		screen:     core.NewScreen(side*2, side),
		snap:       snap,
		best:       best,
		scoreboard: NewScoreboard(player, 10),
	}
}

// Active reports whether the tick timer is running.
func (t SnakeTab) Active() bool {
	return t.activation != nil
}

// Snapshot returns the last observed game state.
func (t SnakeTab) Snapshot() snake.Snapshot {
	return t.snap
}

// activate starts the tick timer under ctx and returns the frame listener.
func (t SnakeTab) activate(ctx context.Context) (SnakeTab, tea.Cmd) {
	t = t.deactivate()
	t.gen++
	t.activation = t.runner.Activate(ctx, t.interval)
	return t, waitForFrame(t.activation, t.gen)
}

// deactivate stops the tick timer. The game resumes where it was on the next
// activate.
func (t SnakeTab) deactivate() SnakeTab {
	if t.activation != nil {
		t.activation.Stop()
		t.activation = nil
	}
	return t
}

// handleFrame records a tick and keeps listening. The engine has already
// applied every tick it reports, so events are always returned. A frame from a
// stopped activation does not replace the snapshot; its channel is drained
// until closed.
func (t SnakeTab) handleFrame(msg frameMsg) (SnakeTab, []snake.Event, tea.Cmd) {
	if t.activation == nil || msg.gen != t.gen {
		return t, msg.frame.Events, waitForFrame(msg.src, msg.gen)
	}
	t.snap = msg.frame.Snapshot
	return t, msg.frame.Events, waitForFrame(t.activation, t.gen)
}

// steer forwards a direction to the runner.
func (t SnakeTab) steer(d snake.Direction) {
	t.runner.SetDirection(d)
}

// restart begins a new run after game over.
func (t SnakeTab) restart() SnakeTab {
	t.snap = t.runner.Reset()
	t.saved = false
	t.foodThisRun = 0
	return t
}

// View renders the board with its score line.
func (t SnakeTab) View() string {
	if t.showScores {
		return t.scoreboard.View()
	}

	t.screen.Clear()
	snake.Render(snake.Stretch(t.screen, 2, 1), t.snap, t.cellSize)
	board := panelStyle.Padding(0).BorderForeground(lipgloss.Color("3")).Render(RenderScreen(t.screen))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Snake Game"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Use the arrow keys or WASD to move. Eat food to gain experience!"))
	b.WriteString("\n\n")
	b.WriteString(board)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Score: %d   Best: %d", t.snap.Score, max(t.best, t.snap.Score)))

	if t.snap.Over() {
		b.WriteString("\n\n")
		b.WriteString(gameOverStyle.Render("Game Over!"))
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render("Press r to restart, h for high scores"))
	}
	return b.String()
}
