package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/questfolio/questfolio/internal/config"
	"github.com/questfolio/questfolio/internal/core"
	"github.com/questfolio/questfolio/internal/games/snake"
	"github.com/questfolio/questfolio/internal/jokes"
	"github.com/questfolio/questfolio/internal/profile"
	"github.com/questfolio/questfolio/internal/progress"
	"github.com/questfolio/questfolio/internal/storage"
)

// Tab identifies a section of the portfolio.
type Tab int

const (
	TabProfile Tab = iota
	TabSkills
	TabQuests
	TabAchievements
	TabSnake
	tabCount
)

var tabNames = [tabCount]string{"Profile", "Skills", "Quests", "Achievements", "Snake Game"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "unknown"
	}
	return tabNames[t]
}

// ParseTab resolves a tab by name or 1-based number.
func ParseTab(s string) (Tab, bool) {
	switch s {
	case "profile", "1":
		return TabProfile, true
	case "skills", "2":
		return TabSkills, true
	case "quests", "3":
		return TabQuests, true
	case "achievements", "4":
		return TabAchievements, true
	case "snake", "5":
		return TabSnake, true
	}
	return 0, false
}

// Store is the persistence the shell uses. *storage.Store satisfies it.
type Store interface {
	ScoreSource
	SaveScore(gameID, player string, score, length int) (storage.ScoreEntry, error)
	PlayerHighScore(gameID, player string) (int, error)
	SaveProgress(name string, level, exp, foodDelta, gamesDelta int) error
	LoadProgress(name string) (storage.PlayerRecord, bool, error)
}

// Deps bundles everything a session needs.
type Deps struct {
	Config   config.AppConfig
	Profile  profile.Profile
	Jokes    *jokes.Book
	Store    Store // nil runs without persistence
	Logger   *log.Logger
	Runtime  core.RuntimeConfig
	StartTab Tab
}

// Model is the Bubble Tea model for one portfolio session.
type Model struct {
	ctx    context.Context
	deps   Deps
	player string
	logger *log.Logger
	keys   *KeyMapper
	help   help.Model
	width  int
	height int

	loading    bool
	loadingGen int
	loadStart  time.Time
	loadPct    int
	spinner    spinner.Model

	popup    bool
	popupGen int

	tab      Tab
	joke     jokes.Joke
	revealed bool

	tracker     *progress.Tracker
	pendingFood int // Food eaten since the last progress save

	snake    SnakeTab
	quitting bool
}

// NewModel creates a session model. ctx bounds the snake timer; it should be
// the SSH session context for remote users.
func NewModel(ctx context.Context, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	player := deps.Runtime.Player
	if player == "" {
		player = core.DefaultConfig().Player
	}
	cfg := deps.Config

	rules := progress.Rules{ExpPerFood: cfg.Progress.ExpPerFood, ExpPerLevel: cfg.Progress.ExpPerLevel}
	start := progress.State{Level: cfg.Progress.StartLevel}
	best := 0
	if deps.Store != nil {
		if rec, ok, err := deps.Store.LoadProgress(player); err != nil {
			deps.Logger.Warn("could not load progress", "player", player, "err", err)
		} else if ok {
			start = progress.State{Level: rec.Level, Exp: rec.Exp}
		}
		if hs, err := deps.Store.PlayerHighScore(storage.GameSnake, player); err == nil {
			best = hs
		}
	}

	engineCfg, err := cfg.Game.Engine(deps.Runtime.Seed)
	if err != nil {
		deps.Logger.Warn("invalid game config, using defaults", "err", err)
		engineCfg = snake.DefaultConfig()
		engineCfg.Seed = deps.Runtime.Seed
	}
	runner := snake.NewRunner(snake.New(engineCfg))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	h := help.New()
	h.ShowAll = false

	m := Model{
		ctx:       ctx,
		deps:      deps,
		player:    player,
		logger:    deps.Logger,
		keys:      NewKeyMapper(),
		help:      h,
		width:     deps.Runtime.ScreenW,
		height:    deps.Runtime.ScreenH,
		loading:   cfg.UI.LoadingDuration > 0,
		loadStart: time.Now(),
		spinner:   sp,
		tab:       deps.StartTab,
		joke:      deps.Jokes.Random(),
		tracker:   progress.NewTracker(rules, start),
		snake:     NewSnakeTab(runner, cfg.Game.TickInterval, cfg.Game.CellSize, best, player),
	}
	if m.tab < 0 || m.tab >= tabCount {
		m.tab = TabProfile
	}
	m.help.Width = m.width
	return m
}

// Init initializes the model and starts the loading screen.
func (m Model) Init() tea.Cmd {
	if m.loading {
		return tea.Batch(
			m.spinner.Tick,
			after(loadingTickInterval, loadingTickMsg{gen: m.loadingGen}),
			after(m.deps.Config.UI.LoadingDuration, loadingDoneMsg{gen: m.loadingGen}),
		)
	}
	return func() tea.Msg { return loadingDoneMsg{gen: m.loadingGen} }
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.snake.scoreboard.SetHeight(msg.Height - 16)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadingTickMsg:
		if !m.loading || msg.gen != m.loadingGen {
			return m, nil
		}
		total := m.deps.Config.UI.LoadingDuration
		m.loadPct = core.Clamp(int(time.Since(m.loadStart)*100/total), 0, 100)
		return m, after(loadingTickInterval, loadingTickMsg{gen: m.loadingGen})

	case loadingDoneMsg:
		if msg.gen != m.loadingGen {
			return m, nil
		}
		return m.finishLoading()

	case popupDoneMsg:
		if msg.gen == m.popupGen {
			m.popup = false
		}
		return m, nil

	case frameMsg:
		var events []snake.Event
		var cmd tea.Cmd
		m.snake, events, cmd = m.snake.handleFrame(msg)
		for _, ev := range events {
			m.handleEvent(ev, msg.frame.Snapshot)
		}
		return m, cmd
	}

	return m, nil
}

// finishLoading leaves the loading screen and enters the shell.
func (m Model) finishLoading() (tea.Model, tea.Cmd) {
	m.loading = false
	m.loadingGen++
	m.loadPct = 100

	var cmds []tea.Cmd
	if m.tab == TabProfile {
		cmds = append(cmds, m.showPopup())
	}
	if m.tab == TabSnake {
		var cmd tea.Cmd
		m.snake, cmd = m.snake.activate(m.ctx)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// showPopup displays the snake invitation and schedules its dismissal.
func (m *Model) showPopup() tea.Cmd {
	m.popup = true
	m.popupGen++
	return after(m.deps.Config.UI.PopupDuration, popupDoneMsg{gen: m.popupGen})
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		return m.quit()
	}

	if m.loading {
		// Any key skips the loading screen
		return m.finishLoading()
	}

	if m.popup && m.tab == TabProfile {
		switch {
		case m.keys.IsPlaySnake(msg):
			m.popup = false
			return m.switchTab(TabSnake)
		case action == core.ActionBack:
			m.popup = false
			return m, nil
		}
	}

	if idx, ok := m.keys.TabIndex(msg); ok {
		return m.switchTab(Tab(idx))
	}
	switch action {
	case core.ActionNextTab:
		return m.switchTab((m.tab + 1) % tabCount)
	case core.ActionPrevTab:
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	}

	switch m.tab {
	case TabProfile:
		return m.handleProfileAction(action)
	case TabSnake:
		return m.handleSnakeKey(msg, action)
	}
	return m, nil
}

func (m Model) handleProfileAction(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionConfirm:
		m.revealed = true
	case core.ActionNextJoke:
		m.joke = m.deps.Jokes.Random()
		m.revealed = false
	}
	return m, nil
}

func (m Model) handleSnakeKey(msg tea.KeyMsg, action core.Action) (tea.Model, tea.Cmd) {
	if m.snake.showScores {
		switch action {
		case core.ActionScoreboard, core.ActionBack:
			m.snake.showScores = false
			var cmd tea.Cmd
			m.snake, cmd = m.snake.activate(m.ctx)
			return m, cmd
		}
		var cmd tea.Cmd
		m.snake.scoreboard, cmd = m.snake.scoreboard.Update(msg)
		return m, cmd
	}

	if d, ok := ActionToDirection(action); ok {
		m.snake.steer(d)
		return m, nil
	}

	switch action {
	case core.ActionRestart:
		if m.snake.Snapshot().Over() {
			m.snake = m.snake.restart()
		}
	case core.ActionScoreboard:
		m.snake = m.snake.deactivate()
		m.snake.scoreboard.Load(m.scoreSource())
		m.snake.showScores = true
	}
	return m, nil
}

// switchTab moves to t, stopping or starting the snake timer as needed.
func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	if t < 0 || t >= tabCount || t == m.tab {
		return m, nil
	}

	if m.tab == TabSnake {
		m.snake = m.snake.deactivate()
		m.flushProgress(0)
	}
	m.tab = t
	if t != TabProfile {
		m.popup = false
	}

	if t == TabSnake && !m.snake.showScores {
		var cmd tea.Cmd
		m.snake, cmd = m.snake.activate(m.ctx)
		return m, cmd
	}
	return m, nil
}

// handleEvent couples engine events to progress and persistence. snap is the
// state reported with the event. Progress is saved as soon as it changes so a
// dropped SSH connection loses nothing.
func (m *Model) handleEvent(ev snake.Event, snap snake.Snapshot) {
	switch ev {
	case snake.EventFoodConsumed:
		m.snake.foodThisRun++
		m.pendingFood++
		if gained := m.tracker.FoodConsumed(); gained > 0 {
			m.logger.Info("level up", "player", m.player, "level", m.tracker.State().Level)
		}
		m.flushProgress(0)

	case snake.EventGameOver:
		m.recordRun(snap)
	}
}

// recordRun saves the finished run once. Saves are best effort.
func (m *Model) recordRun(snap snake.Snapshot) {
	if m.snake.saved {
		return
	}
	m.snake.saved = true

	m.snake.best = max(m.snake.best, snap.Score)
	m.logger.Info("game over", "player", m.player, "score", snap.Score, "length", len(snap.Snake))

	if m.deps.Store != nil && snap.Score > 0 {
		if _, err := m.deps.Store.SaveScore(storage.GameSnake, m.player, snap.Score, len(snap.Snake)); err != nil {
			m.logger.Warn("could not save score", "err", err)
		}
	}
	m.flushProgress(1)
}

// flushProgress persists the tracker along with food eaten since the last save.
// Food left pending by a failed save is retried on the next flush.
func (m *Model) flushProgress(games int) {
	if m.deps.Store == nil || (m.pendingFood == 0 && games == 0) {
		return
	}
	s := m.tracker.State()
	if err := m.deps.Store.SaveProgress(m.player, s.Level, s.Exp, m.pendingFood, games); err != nil {
		m.logger.Warn("could not save progress", "err", err)
		return
	}
	m.pendingFood = 0
}

func (m Model) scoreSource() ScoreSource {
	if m.deps.Store == nil {
		return nil
	}
	return m.deps.Store
}

// quit stops the snake timer, saves progress, and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.snake = m.snake.deactivate()
	m.flushProgress(0)
	m.quitting = true
	return m, tea.Quit
}

// Progress returns the current level and experience.
func (m Model) Progress() progress.State {
	return m.tracker.State()
}

// Run starts the Bubble Tea program for a local session.
func Run(ctx context.Context, deps Deps) error {
	model := NewModel(ctx, deps)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		// Covers exits that bypass quit, such as context cancellation
		m.snake.deactivate()
	}
	return err
}
