package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/penguin-march/internal/config"
	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/registry"
	"github.com/vovakirdan/penguin-march/internal/storage"
)

// Tunable is implemented by games that accept a new tuning at runtime.
type Tunable interface {
	SetTuning(config.Tuning)
}

// Options carries the optional collaborators of a Model.
type Options struct {
	Store      *storage.Store
	Player     string // recorded with each run
	Difficulty string
	Logger     *log.Logger

	// Tunings delivers reloaded tunings; they reach the game through
	// Tunable and apply from its next restart.
	Tunings <-chan config.Tuning

	// ScreenshotDir defaults to ~/.march/screenshots.
	ScreenshotDir string
}

// tuningMsg carries a reloaded tuning into the update loop.
type tuningMsg config.Tuning

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	config core.RuntimeConfig
	opts   Options
	logger *log.Logger

	keys  KeyMap
	help  help.Model
	frame core.InputFrame
	axis  heldAxis

	state    core.GameState
	ticks    int // ticks of the current attempt
	runSaved bool
	quitting bool
	notice   string
}

// NewModel creates a model for game. The game is reset in Init.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := Model{
		game:   game,
		config: cfg,
		opts:   opts,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		frame:  core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, m.gameHeight())
	return m
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), waitTuning(m.opts.Tunings))
}

// waitTuning blocks on the next reloaded tuning. A nil or closed channel
// stops the wait.
func waitTuning(ch <-chan config.Tuning) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return tuningMsg(t)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(msg.Width, m.gameHeight())
		return m, nil

	case TickMsg:
		return m.handleTick()

	case tuningMsg:
		if g, ok := m.game.(Tunable); ok {
			g.SetTuning(config.Tuning(msg))
			m.notice = "tuning reloaded, applies on restart"
			m.logger.Info("tuning reloaded", "difficulty", msg.Difficulty)
		}
		return m, waitTuning(m.opts.Tunings)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.notice = "saved " + path
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, m.gameHeight())
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.saveRun(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit
	case core.ActionLeft, core.ActionRight:
		m.axis.press(action)
	}
	m.frame.Set(action)
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.frame.Has(core.ActionRestart) && !m.state.GameOver {
		m.saveRun(storage.OutcomeQuit)
		m.axis.release()
	}
	m.frame.Axis = m.axis.value()

	prev := m.state
	m.state = m.game.Step(m.frame).State
	if !m.state.Paused {
		m.ticks++
	}
	m.axis.tick()
	m.frame.Clear()

	switch {
	case m.state.GameOver && !prev.GameOver:
		outcome := storage.OutcomeLost
		if m.state.Won {
			outcome = storage.OutcomeWon
		}
		m.saveRun(outcome)
	case !m.state.GameOver && (prev.GameOver || m.runSaved):
		m.ticks = 0
		m.runSaved = false
		m.notice = ""
	}
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the current attempt once. Persistence is best effort.
func (m *Model) saveRun(outcome string) {
	if m.runSaved || m.ticks == 0 {
		return
	}
	m.runSaved = true
	if m.opts.Store == nil {
		return
	}
	run := storage.Run{
		GameID:     m.game.ID(),
		Player:     m.opts.Player,
		Outcome:    outcome,
		Score:      m.state.Score,
		Ticks:      m.ticks,
		Difficulty: m.opts.Difficulty,
	}
	if _, err := m.opts.Store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Debug("run saved", "outcome", outcome, "score", run.Score, "ticks", run.Ticks)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot find home directory: %w", err)
		}
		dir = filepath.Join(home, ".march", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405.000"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

func (m Model) helpView() string {
	line := m.help.View(m.keys)
	if m.notice != "" && !m.help.ShowAll {
		line = noticeStyle.Render(m.notice) + "  " + line
	}
	return helpStyle.Render(line)
}

// gameHeight is the screen height left after the help area.
func (m Model) gameHeight() int {
	return max(m.config.ScreenH-lipgloss.Height(m.helpView()), 0)
}

// View renders the game and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.helpView()
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState { return m.state }

// Run starts a full-screen program for game and blocks until it exits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
