package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/flaptrivia/internal/core"
	"github.com/vovakirdan/flaptrivia/internal/registry"
	"github.com/vovakirdan/flaptrivia/internal/storage"
)

// footerRows is the height reserved below the playfield for key help.
const footerRows = 1

// Model is the Bubble Tea model for one flaptrivia session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	menuReturn bool // Quit goes back to the caller's menu instead of exiting
	backToMenu bool

	session   string
	runID     string
	startedAt time.Time
	runSaved  bool // Whether the current run has been written to the store
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithSession tags saved runs with a session id (an SSH session, say).
func WithSession(id string) ModelOption {
	return func(m *Model) { m.session = id }
}

// WithLogger sets the logger for storage failures.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMenuReturn makes Quit end the run and hand control back to an
// enclosing session model instead of exiting the program.
func WithMenuReturn() ModelOption {
	return func(m *Model) { m.menuReturn = true }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playfieldRows(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       h,
		logger:     log.New(io.Discard),
		inputFrame: core.NewInputFrame(),
		session:    "local",
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.beginRun()
	return m
}

func playfieldRows(h int) int {
	return core.Max(h-footerRows, 1)
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.finishRun()
		if m.menuReturn {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize only resizes the buffer; the playfield scales to fit, so the
// run keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	// Restart ends the current run and the game starts a new one in the
	// same step.
	if m.inputFrame.Has(core.ActionRestart) && restartable(m.gameState) {
		m.finishRun()
		m.beginRun()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.Victory && !m.runSaved {
		m.finishRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restartable mirrors the states in which the game accepts Restart.
func restartable(s core.GameState) bool {
	return s.Victory || (s.Paused && s.Phase == "paused")
}

func (m *Model) beginRun() {
	m.runID = uuid.NewString()
	m.startedAt = time.Now()
	m.runSaved = false
}

// finishRun stores the current run once. Empty runs are not recorded.
func (m *Model) finishRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true

	s := m.gameState
	if m.store == nil || (s.Score == 0 && s.Answered == 0 && !s.Victory) {
		return
	}
	run := storage.Run{
		ID:       m.runID,
		Session:  m.session,
		Mode:     m.game.ID(),
		Score:    s.Score,
		Rewards:  s.Rewards,
		Answered: s.Answered,
		Deaths:   s.Deaths,
		Victory:  s.Victory,
		Duration: time.Since(m.startedAt),
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("cannot save run", "run", m.runID, "err", err)
		return
	}
	m.logger.Info("run saved", "run", m.runID, "mode", run.Mode, "score", run.Score, "victory", run.Victory)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".flaptrivia", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the playfield and the key help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.ShortHelpView(m.keys.Keys.ShortHelp()))
}

// GameState returns the state after the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// BackToMenu reports whether the player left the game for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunID returns the id the current run will be saved under.
func (m Model) RunID() string {
	return m.runID
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
