// Package tui provides the Bubble Tea front end of questfolio: the loading
// screen, the tabbed portfolio shell, the Snake tab, and the SSH server that
// serves it all to remote terminals.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/questfolio/questfolio/internal/games/snake"
)

// loadingTickMsg advances the loading bar.
type loadingTickMsg struct {
	gen int
}

// loadingDoneMsg ends the loading screen.
type loadingDoneMsg struct {
	gen int
}

// popupDoneMsg hides the profile popup.
type popupDoneMsg struct {
	gen int
}

// frameMsg carries one snake tick from an activation.
type frameMsg struct {
	gen   int
	src   *snake.Activation
	frame snake.Frame
}

const loadingTickInterval = 50 * time.Millisecond

// after delivers msg once d has elapsed. The generation inside msg lets the
// receiver ignore timers it has since superseded.
func after(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// waitForFrame returns a command that waits for the next frame of a. It
// yields nil once the activation is stopped.
func waitForFrame(a *snake.Activation, gen int) tea.Cmd {
	return func() tea.Msg {
		if a == nil {
			return nil
		}
		f, ok := <-a.Frames()
		if !ok {
			return nil
		}
		return frameMsg{gen: gen, src: a, frame: f}
	}
}
