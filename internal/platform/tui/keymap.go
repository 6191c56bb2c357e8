package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/questfolio/questfolio/internal/core"
	"github.com/questfolio/questfolio/internal/games/snake"
)

// KeyMap defines every key binding of the portfolio shell.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	GoToTab    key.Binding
	Reveal     key.Binding
	NextJoke   key.Binding
	PlaySnake  key.Binding
	Restart    key.Binding
	Scoreboard key.Binding
	Dismiss    key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev tab"),
		),
		GoToTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "jump to tab"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "reveal punchline"),
		),
		NextJoke: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next joke"),
		),
		PlaySnake: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "play snake"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Scoreboard: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "high scores"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.GoToTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.GoToTab},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Reveal, k.NextJoke, k.Restart, k.Scoreboard},
		{k.Dismiss, k.Quit},
	}
}

// tabHelp is the help.KeyMap shown under a specific tab.
type tabHelp []key.Binding

func (t tabHelp) ShortHelp() []key.Binding  { return t }
func (t tabHelp) FullHelp() [][]key.Binding { return [][]key.Binding{t} }

// KeyMapper translates Bubble Tea key messages to shell actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.NextTab):
		return core.ActionNextTab, false
	case key.Matches(msg, k.PrevTab):
		return core.ActionPrevTab, false
	case key.Matches(msg, k.Reveal):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Dismiss):
		return core.ActionBack, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.NextJoke):
		return core.ActionNextJoke, false
	case key.Matches(msg, k.Scoreboard):
		return core.ActionScoreboard, false
	}
	return core.ActionNone, false
}

// TabIndex returns the zero-based tab selected by a number key.
func (km *KeyMapper) TabIndex(msg tea.KeyMsg) (int, bool) {
	if !key.Matches(msg, km.keys.GoToTab) {
		return 0, false
	}
	s := msg.String()
	return int(s[0] - '1'), true
}

// IsPlaySnake reports whether msg is the popup shortcut to the Snake tab.
func (km *KeyMapper) IsPlaySnake(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.keys.PlaySnake)
}

// ActionToDirection converts a directional action into a snake direction.
func ActionToDirection(a core.Action) (snake.Direction, bool) {
	switch a {
	case core.ActionUp:
		return snake.DirUp, true
	case core.ActionDown:
		return snake.DirDown, true
	case core.ActionLeft:
		return snake.DirLeft, true
	case core.ActionRight:
		return snake.DirRight, true
	}
	return 0, false
}
