package core

// Action represents a semantic action, abstracted from physical key presses.
// This lets the snake view and the shell work with intents rather than raw keys.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow
	ActionDown            // S, Down arrow
	ActionLeft            // A, Left arrow
	ActionRight           // D, Right arrow
	ActionConfirm         // Enter - reveal punchline, accept popup
	ActionBack            // Esc - dismiss popup / overlay
	ActionRestart         // R - restart after game over
	ActionNextTab         // Tab
	ActionPrevTab         // Shift+Tab
	ActionNextJoke        // N - fetch another joke
	ActionScoreboard      // H - toggle high scores
	ActionQuit            // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionNextTab:
		return "NextTab"
	case ActionPrevTab:
		return "PrevTab"
	case ActionNextJoke:
		return "NextJoke"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
