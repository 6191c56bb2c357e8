package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/questfolio/questfolio/internal/storage"
)

const maxScores = 50 // Max scores to load

// ScoreSource is what the scoreboard reads from.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// Scoreboard is the high score overlay of the Snake tab.
type Scoreboard struct {
	table  table.Model
	scores []storage.ScoreEntry
	player string
	err    error
	height int
}

// NewScoreboard creates an empty scoreboard; call Load to fill it.
func NewScoreboard(player string, height int) Scoreboard {
	sb := Scoreboard{player: player, height: height}
	sb.table = sb.createTable()
	return sb
}

// createTable creates a new table with the leaderboard columns.
func (sb *Scoreboard) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 6},
		{Title: "Length", Width: 7},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(sb.height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Load refreshes the scores from src. A nil source leaves the board empty.
func (sb *Scoreboard) Load(src ScoreSource) {
	sb.scores, sb.err = nil, nil
	if src != nil {
		sb.scores, sb.err = src.TopScores(storage.GameSnake, maxScores)
	}
	sb.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (sb *Scoreboard) updateTableRows() {
	rows := make([]table.Row, len(sb.scores))
	for i, s := range sb.scores {
		name := s.Player
		if name == sb.player {
			name += " *"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			name,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Length),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	sb.table.SetRows(rows)
	sb.table.GotoTop()
}

// SetHeight resizes the visible table.
func (sb *Scoreboard) SetHeight(h int) {
	sb.height = h
	sb.table.SetHeight(max(h, 3))
}

// Update forwards scrolling keys to the table.
func (sb Scoreboard) Update(msg tea.Msg) (Scoreboard, tea.Cmd) {
	var cmd tea.Cmd
	sb.table, cmd = sb.table.Update(msg)
	return sb, cmd
}

// View renders the table or an empty message.
func (sb Scoreboard) View() string {
	title := titleStyle.Render("HIGH SCORES")

	var body string
	switch {
	case sb.err != nil:
		body = gameOverStyle.Render("Could not load scores: " + sb.err.Error())
	case len(sb.scores) == 0:
		body = mutedStyle.Italic(true).Padding(1, 2).
			Render("No scores recorded yet.\nPlay a game to set a high score!")
	default:
		body = sb.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", panelStyle.Render(body))
}
