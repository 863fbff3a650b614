// Package flappy implements flaptrivia: a Flappy Bird run that is
// interrupted by trivia questions. Machine holds the rules; Game adapts it
// to the platform's Game interface.
package flappy

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flaptrivia/internal/audio"
	"github.com/vovakirdan/flaptrivia/internal/config"
	"github.com/vovakirdan/flaptrivia/internal/core"
	"github.com/vovakirdan/flaptrivia/internal/quiz"
	"github.com/vovakirdan/flaptrivia/internal/registry"
)

var (
	settingsMu    sync.RWMutex
	configPath    string
	questionsPath string
	sink          audio.Sink = audio.Nop{}
	logger                   = log.New(io.Discard)
)

// SetConfigPath sets the custom game config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetQuestionsPath sets the custom question bank path for loading.
func SetQuestionsPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	questionsPath = path
}

// SetSink routes audio cues of games created afterwards. nil silences them.
func SetSink(s audio.Sink) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	sink = audio.OrNop(s)
}

// SetLogger sets the logger of games created afterwards.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadAssets loads and validates the configuration and question bank for
// mode using the paths set by SetConfigPath and SetQuestionsPath.
func LoadAssets(mode config.Mode) (config.GameConfig, *quiz.Bank, error) {
	settingsMu.RLock()
	cfgPath, qPath := configPath, questionsPath
	settingsMu.RUnlock()

	cfg, err := config.Load(cfgPath, mode)
	if err != nil {
		return cfg, nil, err
	}
	bank, err := quiz.LoadBank(qPath)
	if err != nil {
		return cfg, nil, err
	}
	if err := bank.CheckRewardTarget(cfg.Trivia.RewardTarget); err != nil {
		return cfg, nil, err
	}
	return cfg, bank, nil
}

// Game implements registry.Game for one difficulty tier.
type Game struct {
	mode    config.Mode
	machine *Machine
	rc      core.RuntimeConfig
	tick    uint64
}

// New creates a game for mode.
func New(mode config.Mode) *Game {
	return &Game{mode: mode}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.mode {
	case config.ModeHard:
		return "Flaptrivia (hard)"
	default:
		return "Flaptrivia (lenient)"
	}
}

// Mode returns the difficulty tier.
func (g *Game) Mode() config.Mode {
	return g.mode
}

// Reset starts a fresh session with the seed from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rc = cfg
	g.tick = 0

	settingsMu.RLock()
	s, l := sink, logger
	settingsMu.RUnlock()

	gameCfg, bank, err := LoadAssets(g.mode)
	if err != nil {
		l.Warn("falling back to built-in game data", "err", err)
		gameCfg = config.DefaultGameConfig()
		//nolint:errcheck // built-in tiers always exist
		config.ApplyMode(&gameCfg, g.mode)
		bank = quiz.DefaultBank()
	}

	g.machine = NewMachine(gameCfg, bank, cfg.Seed,
		WithSink(s),
		WithLogger(l.With("mode", g.mode)),
	)
	g.machine.StartGame()
}

// Machine exposes the underlying state machine.
func (g *Game) Machine() *Machine {
	return g.machine
}

// Step advances the game by one tick. Due events run first, then input,
// then the simulation.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	m := g.machine
	dt := g.rc.TickMillis()
	g.tick++

	m.BeginTick(dt)
	ApplyInput(m, in)
	r := m.Simulate(dt)
	return core.StepResult{State: g.State(), Died: r.Died}
}

// ApplyInput routes one tick's actions to the machine operation each one
// means in the current state and popup.
func ApplyInput(m *Machine, in core.InputFrame) {
	if in.Has(core.ActionRestart) && (m.State() == StateVictory || (m.State() == StatePaused && m.Popup() == PopupNone)) {
		m.Restart()
		m.StartGame()
		return
	}

	if in.Has(core.ActionPause) {
		if m.State() == StatePlaying {
			m.Pause()
		} else {
			m.Resume()
		}
	}

	if opt := in.Option(); opt >= 0 {
		switch m.Popup() {
		case PopupQuestion:
			m.Answer(opt)
		case PopupRevival:
			m.Revive(opt)
		}
	}
	if in.Has(core.ActionBack) {
		m.GiveUp()
	}
	if in.Has(core.ActionConfirm) {
		m.Continue()
	}
	if in.Has(core.ActionJump) {
		m.Jump()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	m := g.machine
	if m == nil {
		return core.GameState{}
	}
	phase := m.State().String()
	if m.Popup() != PopupNone {
		phase = m.Popup().String()
	}
	return core.GameState{
		Score:    m.Score(),
		GameOver: m.State() == StateVictory,
		Paused:   m.State() == StatePaused,
		Victory:  m.State() == StateVictory,
		Phase:    phase,
		Rewards:  len(m.Rewards()),
		Answered: len(m.Answered()),
		Deaths:   m.Deaths(),
	}
}

// Register one game per difficulty tier.
func init() {
	for _, mode := range []config.Mode{config.ModeLenient, config.ModeHard} {
		registry.Register(string(mode), func() registry.Game {
			return New(mode)
		})
	}
}
