package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/questfolio/questfolio/internal/profile"
)

const (
	expBarWidth   = 30
	statBarWidth  = 24
	questBarWidth = 40
	loadBarWidth  = 32
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.loading {
		return m.loadingView()
	}

	sections := []string{
		m.headerView(),
		m.tabBarView(),
		"",
		m.contentView(),
		"",
		m.footerView(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) loadingView() string {
	block := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Loading Adventure..."),
		"",
		m.spinner.View()+" "+progressBar(m.loadPct, loadBarWidth, lipgloss.Color("11")),
		"",
		subtitleStyle.Render("Preparing your quest..."),
		"",
		helpStyle.Render("press any key to skip"),
	)
	if m.width <= 0 || m.height <= 0 {
		return block
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

func (m Model) headerView() string {
	p := m.deps.Profile
	st := m.tracker.State()
	rules := m.tracker.Rules()

	lines := []string{
		titleStyle.Render(p.Name),
		subtitleStyle.Render(fmt.Sprintf("Level %d %s", st.Level, p.Title)),
		mutedStyle.Render("Experience ") +
			progressBar(st.Percent(rules), expBarWidth, lipgloss.Color("12")) +
			mutedStyle.Render(fmt.Sprintf(" %d/%d", st.Exp, rules.ExpPerLevel)),
	}
	for i := range lines {
		lines[i] = centerText(lines[i], m.width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) tabBarView() string {
	tabs := make([]string, tabCount)
	for i := range tabCount {
		label := fmt.Sprintf("%d %s", i+1, Tab(i))
		if Tab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width)
}

func (m Model) contentView() string {
	switch m.tab {
	case TabProfile:
		return m.profileView()
	case TabSkills:
		return skillsView(m.deps.Profile)
	case TabQuests:
		return questsView(m.deps.Profile)
	case TabAchievements:
		return achievementsView(m.deps.Profile)
	case TabSnake:
		return m.snake.View()
	}
	return ""
}

func (m Model) profileView() string {
	var b strings.Builder

	if m.popup {
		b.WriteString(popupStyle.Render("Bored? Play the Snake Game to increase your level!  [s] Play Snake Game"))
		b.WriteString("\n\n")
	}

	b.WriteString(titleStyle.Render("Character Stats"))
	b.WriteString("\n")
	for _, s := range m.deps.Profile.Stats {
		color, ok := statColors[s.Color]
		if !ok {
			color = statColors["blue"]
		}
		name := lipgloss.NewStyle().Bold(true).Foreground(color).Width(14).Render(s.Name)
		b.WriteString(fmt.Sprintf("%s %s %3d\n", name, progressBar(s.Value, statBarWidth, color), s.Value))
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Dad Joke of the Day"))
	b.WriteString("\n")

	joke := lipgloss.NewStyle().Italic(true).Render(m.joke.Setup)
	if m.revealed {
		joke += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render(m.joke.Punchline)
	} else {
		joke += "\n" + helpStyle.Render("[enter] Reveal Punchline")
	}
	b.WriteString(jokeStyle.Render(joke))

	return b.String()
}

func skillsView(p profile.Profile) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Skills"))
	b.WriteString("\n")

	star := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	for _, s := range p.Skills {
		name := lipgloss.NewStyle().Bold(true).Width(12).Render(s.Name)
		stars := star.Render(strings.Repeat("★", s.Stars)) +
			barEmptyStyle.Render(strings.Repeat("☆", profile.MaxStars-s.Stars))
		b.WriteString(name + " " + stars + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func questsView(p profile.Profile) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Completed Quests"))
	b.WriteString("\n")

	name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	for _, q := range p.Quests {
		b.WriteString(name.Render(q.Name))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(q.Description))
		b.WriteString("\n")
		b.WriteString(progressBar(q.Progress, questBarWidth, lipgloss.Color("12")))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func achievementsView(p profile.Profile) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Achievements"))
	b.WriteString("\n")

	medal := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("◆")
	for _, a := range p.Achievements {
		b.WriteString(medal + " " + a + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) footerView() string {
	links := make([]string, 0, len(m.deps.Profile.Links))
	for _, l := range m.deps.Profile.Links {
		links = append(links, subtitleStyle.Render(l.Label)+" "+mutedStyle.Render(l.URL))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		centerText(strings.Join(links, "  "), m.width),
		helpStyle.Render(m.help.View(m.tabKeys())),
	)
}

// tabKeys lists the bindings relevant to the current tab.
func (m Model) tabKeys() tabHelp {
	k := m.keys.Keys()
	nav := []key.Binding{k.NextTab, k.GoToTab}

	switch m.tab {
	case TabProfile:
		out := append(nav, k.Reveal, k.NextJoke)
		if m.popup {
			out = append(out, k.PlaySnake, k.Dismiss)
		}
		return append(out, k.Quit)
	case TabSnake:
		if m.snake.showScores {
			return append(nav, k.Scoreboard, k.Quit)
		}
		out := append(nav, k.Up, k.Down, k.Left, k.Right, k.Scoreboard)
		if m.snake.Snapshot().Over() {
			out = append(out, k.Restart)
		}
		return append(out, k.Quit)
	}
	return append(nav, k.Quit)
}
