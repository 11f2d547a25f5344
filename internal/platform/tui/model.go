package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/color-cascade/internal/core"
	"github.com/vovakirdan/color-cascade/internal/logging"
	"github.com/vovakirdan/color-cascade/internal/registry"
	"github.com/vovakirdan/color-cascade/internal/storage"
)

// Model is the Bubble Tea model running one game. The game draws into the
// screen buffer; the help line sits underneath it.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	config core.RuntimeConfig

	keys KeyMap
	help help.Model

	frame    core.InputFrame
	state    core.GameState
	quitting bool
	recorded bool // score and run saved for the current game over
}

// NewModel creates a model for game. store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	m := Model{
		game:   game,
		store:  store,
		logger: logger,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, m.boardHeight())
	return m
}

// boardHeight is the screen height left for the game under the help view.
func (m Model) boardHeight() int {
	return max(m.config.ScreenH-lipgloss.Height(m.help.View(m.keys)), 1)
}

func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.boardHeight()
	return cfg
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles key presses, resizes and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.fit()
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.fit()
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionRestart && !m.state.GameOver && !m.state.Paused {
		return m, nil
	}
	m.frame.Set(action)
	return m, nil
}

// fit resizes the screen buffer and lets the game follow. Games that cannot
// resize in place are restarted unless their run is already over.
func (m *Model) fit() {
	m.help.Width = m.config.ScreenW
	h := m.boardHeight()
	m.screen.Resize(m.config.ScreenW, h)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, h)
		return
	}
	if !m.state.GameOver {
		m.game.Reset(m.gameConfig())
	}
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.state = m.game.Step(m.frame).State
	m.frame.Clear()

	if m.state.GameOver {
		m.record()
	} else {
		m.recorded = false
	}
	return m, tickCmd(m.config.TickRate)
}

// record saves the finished run once. Failures are logged; play goes on.
func (m *Model) record() {
	if m.recorded {
		return
	}
	m.recorded = true
	if m.store == nil || m.state.Score <= 0 {
		return
	}

	if _, err := m.store.SaveScore(m.game.ID(), m.state.Score); err != nil {
		m.logger.Error("save score", "game", m.game.ID(), "error", err)
	}

	s, ok := m.game.(registry.Summarizer)
	if !ok {
		return
	}
	sum := s.Summary()
	id, err := m.store.SaveRun(storage.Run{
		GameID:        m.game.ID(),
		Score:         sum.Score,
		Level:         sum.Level,
		BlocksCleared: sum.BlocksCleared,
		MaxCombo:      sum.MaxCombo,
		Duration:      sum.Duration,
	})
	if err != nil {
		m.logger.Error("save run", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Info("run recorded", "run_id", id, "score", sum.Score, "level", sum.Level)
}

// saveScreenshot writes the current board as plain text under ~/.arcade/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the board and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run plays game in the local terminal until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(game, store, cfg, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
