package flappy

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flaptrivia/internal/audio"
	"github.com/vovakirdan/flaptrivia/internal/config"
	"github.com/vovakirdan/flaptrivia/internal/quiz"
)

// State is the top-level phase of a session.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver // transient, recovery runs in the same call
	StateVictory
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameOver"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Popup is the sub-state shown while paused. PopupNone means a manual pause.
type Popup int

const (
	PopupNone Popup = iota
	PopupQuestion
	PopupReveal
	PopupReward
	PopupNoReward
	PopupRevival
	PopupCountdown
)

func (p Popup) String() string {
	switch p {
	case PopupNone:
		return "none"
	case PopupQuestion:
		return "question"
	case PopupReveal:
		return "reveal"
	case PopupReward:
		return "reward"
	case PopupNoReward:
		return "noReward"
	case PopupRevival:
		return "revival"
	case PopupCountdown:
		return "countdown"
	default:
		return "unknown"
	}
}

// CountdownPhase is the visible phase of the resume countdown.
type CountdownPhase int

const (
	CountdownReady CountdownPhase = iota
	CountdownGo
)

// Report describes what happened during one Tick.
type Report struct {
	Died   bool // a collision or failed answer triggered recovery
	Passed int  // pipes newly passed
	Asked  bool // a question popup opened
}

// Option configures a Machine.
type Option func(*Machine)

// WithSink routes audio cues to s.
func WithSink(s audio.Sink) Option {
	return func(m *Machine) { m.sink = audio.OrNop(s) }
}

// WithLogger logs state transitions to l at debug level.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// Machine owns every piece of session state and exposes the transitions.
// All methods must be called from one goroutine. Methods whose
// preconditions do not hold return without effect.
type Machine struct {
	cfg       config.GameConfig
	bank      *quiz.Bank
	physics   Physics
	collider  Collider
	scheduler Scheduler
	pipes     *PipeField
	quizRng   *rand.Rand
	sink      audio.Sink
	logger    *log.Logger
	seed      int64

	state  State
	popup  Popup
	token  uint64
	clock  float64 // session clock, advances outside the menu
	events EventQueue

	elapsed        float64 // playing time
	score          int
	bird           Bird
	progress       int
	answered       quiz.IDSet
	rewards        quiz.IDSet
	lastQuestionAt float64
	credits        int
	redemptions    *quiz.Redemptions
	saves          SaveLog
	deaths         int

	current      int // bank position of the open question, -1 when none
	presentation quiz.Presentation
	revealID     int
	revealReward bool
	lastReward   int
	countdown    CountdownPhase
}

// NewMachine creates a machine in the menu state. cfg must already have a
// mode applied and be valid.
func NewMachine(cfg config.GameConfig, bank *quiz.Bank, seed int64, opts ...Option) *Machine {
	m := &Machine{
		cfg:       cfg,
		bank:      bank,
		physics:   NewPhysics(cfg),
		collider:  NewCollider(cfg),
		scheduler: NewScheduler(cfg.Trivia, bank),
		pipes:     NewPipeField(cfg, seed),
		sink:      audio.Nop{},
		logger:    log.New(io.Discard),
		seed:      seed,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reset()
	return m
}

// reset clears all session state back to the menu.
func (m *Machine) reset() {
	m.pipes.Reset(m.seed)
	m.quizRng = rand.New(rand.NewSource(m.seed + 1))
	m.events.Clear()
	m.saves.Clear()
	m.state = StateMenu
	m.popup = PopupNone
	m.token++
	m.clock = 0
	m.elapsed = 0
	m.score = 0
	m.bird = m.spawnBird()
	m.progress = 0
	m.answered = quiz.NewIDSet()
	m.rewards = quiz.NewIDSet()
	m.lastQuestionAt = noQuestionYet
	m.credits = m.cfg.Trivia.RevivalCredits
	m.redemptions = quiz.NewRedemptions()
	m.deaths = 0
	m.current = -1
	m.revealID = 0
	m.revealReward = false
	m.lastReward = 0
	m.countdown = CountdownReady
}

func (m *Machine) spawnBird() Bird {
	return Bird{X: m.cfg.Bird.X, Y: m.cfg.Bird.Y}
}

// StartGame leaves the menu: full reset, first pipe, playing.
func (m *Machine) StartGame() {
	if m.state != StateMenu {
		return
	}
	m.reset()
	m.pipes.Spawn()
	m.setState(StatePlaying)
}

// Jump flaps the bird. Only while playing.
func (m *Machine) Jump() {
	if m.state != StatePlaying {
		return
	}
	m.bird = m.physics.Jump(m.bird)
	m.sink.Play(audio.CueJump)
}

// Pause freezes the simulation. Only while playing.
func (m *Machine) Pause() {
	if m.state != StatePlaying {
		return
	}
	m.setState(StatePaused)
}

// Resume continues after a manual pause. Popups never close this way.
func (m *Machine) Resume() {
	if m.state != StatePaused || m.popup != PopupNone {
		return
	}
	m.setState(StatePlaying)
}

// Restart clears the session back to the menu. Allowed after victory and
// from a manual pause.
func (m *Machine) Restart() {
	if m.state == StateVictory || (m.state == StatePaused && m.popup == PopupNone) {
		m.logger.Debug("restart", "from", m.state, "score", m.score)
		m.reset()
	}
}

// Answer submits the option shown at slot for the open question.
func (m *Machine) Answer(slot int) {
	if m.popup != PopupQuestion || m.current < 0 {
		return
	}
	q := m.bank.At(m.current)
	if m.presentation.Original(slot) < 0 {
		return
	}

	if m.presentation.IsCorrect(q, slot) {
		m.logger.Debug("answer", "question", q.ID, "correct", true)
		m.resolve(q.ID)
		m.beginReveal(q.ID)
		return
	}

	m.logger.Debug("answer", "question", q.ID, "correct", false, "credits", m.credits)
	if m.credits > 0 {
		m.setPopup(PopupRevival)
		return
	}
	m.resolve(q.ID)
	m.fail()
}

// Revive submits choice for the revival challenge. Already redeemed or out
// of range choices are ignored.
func (m *Machine) Revive(choice int) {
	if m.popup != PopupRevival || m.current < 0 {
		return
	}
	q := m.bank.At(m.current)

	switch m.redemptions.Attempt(m.bank.Revival(), choice) {
	case quiz.VerdictRevived:
		m.credits--
		m.logger.Debug("revived", "question", q.ID, "credits", m.credits)
		m.resolve(q.ID)
		m.beginReveal(q.ID)
	case quiz.VerdictFailed:
		m.resolve(q.ID)
		m.fail()
	}
}

// GiveUp abandons the revival challenge as a failure.
func (m *Machine) GiveUp() {
	if m.popup != PopupRevival || m.current < 0 {
		return
	}
	m.resolve(m.bank.At(m.current).ID)
	m.fail()
}

// Continue is the designated close action of the reveal, reward and
// no-reward popups.
func (m *Machine) Continue() {
	switch m.popup {
	case PopupReveal:
		m.reveal()
	case PopupReward, PopupNoReward:
		m.startCountdown()
	}
}

// Tick advances the session by dt milliseconds: due events first, then the
// simulation when playing.
func (m *Machine) Tick(dt float64) Report {
	m.BeginTick(dt)
	return m.Simulate(dt)
}

// BeginTick advances the session clock and applies due events. Input
// handlers run between BeginTick and Simulate.
func (m *Machine) BeginTick(dt float64) {
	if m.state == StateMenu || dt < 0 {
		return
	}
	m.clock += dt
	for _, ev := range m.events.ConsumeDue(m.clock) {
		m.apply(ev)
	}
}

// Simulate runs physics, pipes, collision, scheduler and victory check in
// that order. Does nothing unless playing.
func (m *Machine) Simulate(dt float64) Report {
	var r Report
	if m.state != StatePlaying || dt < 0 {
		return r
	}

	m.elapsed += dt
	m.bird = m.physics.Integrate(m.bird, dt)
	m.pipes.Tick(dt)
	r.Passed = m.pipes.Advance(dt, m.bird.X)
	m.score += r.Passed

	if m.collider.Check(m.bird, m.pipes.pipes) {
		m.logger.Debug("collision", "score", m.score, "elapsed", m.elapsed)
		m.fail()
		r.Died = true
		return r
	}

	if idx, ok := m.scheduler.Poll(m.elapsed, m.lastQuestionAt, m.progress, m.answered); ok {
		m.showQuestion(idx)
		r.Asked = true
		return r
	}

	m.checkVictory()
	return r
}

func (m *Machine) apply(ev Event) {
	if ev.Token != m.token {
		m.logger.Debug("event dropped", "kind", ev.Kind, "token", ev.Token, "current", m.token)
		return
	}
	switch ev.Kind {
	case EventReveal:
		if m.popup == PopupReveal {
			m.reveal()
		}
	case EventCountdownGo:
		if m.popup == PopupCountdown {
			m.countdown = CountdownGo
		}
	case EventCountdownDone:
		if m.popup == PopupCountdown {
			m.setPopup(PopupNone)
			m.setState(StatePlaying)
		}
	}
}

func (m *Machine) showQuestion(idx int) {
	q := m.bank.At(idx)
	m.progress = idx
	m.current = idx
	m.lastQuestionAt = m.elapsed
	m.presentation = quiz.Present(q, m.quizRng)
	m.setState(StatePaused)
	m.setPopup(PopupQuestion)
	m.logger.Debug("question", "id", q.ID, "elapsed", m.elapsed)
}

// resolve records id as answered and takes a save point.
func (m *Machine) resolve(id int) {
	m.answered.Add(id)
	m.snapshot()
}

func (m *Machine) beginReveal(id int) {
	m.revealID = id
	m.revealReward = m.bank.HasReward(id)
	m.setPopup(PopupReveal)
	m.schedule(float64(m.cfg.Trivia.RevealDelay), EventReveal)
}

func (m *Machine) reveal() {
	if !m.revealReward {
		m.setPopup(PopupNoReward)
		return
	}
	m.rewards.Add(m.revealID)
	m.lastReward = m.revealID
	m.sink.Play(audio.CueReward)
	m.logger.Debug("reward", "question", m.revealID, "collected", m.rewards.Len())
	if m.checkVictory() {
		return
	}
	m.setPopup(PopupReward)
}

func (m *Machine) startCountdown() {
	m.setState(StatePaused)
	m.setPopup(PopupCountdown)
	m.countdown = CountdownReady
	ready := float64(m.cfg.Trivia.ReadyDuration)
	m.schedule(ready, EventCountdownGo)
	m.schedule(ready+float64(m.cfg.Trivia.GoDuration), EventCountdownDone)
}

func (m *Machine) schedule(delay float64, kind EventKind) {
	m.events.Push(Event{Due: m.clock + delay, Token: m.token, Kind: kind})
}

// fail runs the failure path: death cue, transient game over, then
// recovery from the latest save point or a restart that keeps quiz progress.
func (m *Machine) fail() {
	m.sink.Play(audio.CueDeath)
	m.deaths++
	m.setState(StateGameOver)
	m.setPopup(PopupNone)
	m.current = -1

	if !m.restoreLatest() {
		m.restartWithProgress()
	}
	m.startCountdown()
}

func (m *Machine) snapshot() {
	if !m.cfg.Active.SavePoints {
		return
	}
	m.saves.Append(SavePoint{
		Elapsed:        m.elapsed,
		Score:          m.score,
		Bird:           m.bird,
		Pipes:          m.pipes.pipes,
		ProgressIndex:  m.progress,
		Answered:       m.answered,
		LastQuestionAt: m.lastQuestionAt,
	})
}

// restoreLatest rewinds to the latest save point. The answered set becomes
// the union of the save point and the live set so it never shrinks.
func (m *Machine) restoreLatest() bool {
	sp, ok := m.saves.Latest()
	if !ok {
		return false
	}
	m.elapsed = sp.Elapsed
	m.score = sp.Score
	m.bird = sp.Bird
	m.pipes.Restore(sp.Pipes)
	if sp.ProgressIndex > m.progress {
		m.progress = sp.ProgressIndex
	}
	sp.Answered.Union(m.answered)
	m.answered = sp.Answered
	m.lastQuestionAt = sp.LastQuestionAt
	m.logger.Debug("restored", "elapsed", m.elapsed, "score", m.score, "answered", m.answered.Len())
	return true
}

func (m *Machine) restartWithProgress() {
	m.elapsed = 0
	m.score = 0
	m.bird = m.spawnBird()
	m.pipes.Clear()
	m.pipes.Spawn()
	m.lastQuestionAt = noQuestionYet
	m.logger.Debug("restarted", "answered", m.answered.Len(), "rewards", m.rewards.Len())
}

func (m *Machine) checkVictory() bool {
	if m.state == StateVictory || m.rewards.Len() < m.cfg.Trivia.RewardTarget {
		return false
	}
	m.setPopup(PopupNone)
	m.setState(StateVictory)
	m.events.Clear()
	return true
}

func (m *Machine) setState(s State) {
	if m.state == s {
		return
	}
	m.logger.Debug("state", "from", m.state, "to", s)
	m.state = s
}

// setPopup switches the popup and bumps the token, so events scheduled for
// the previous popup are dropped.
func (m *Machine) setPopup(p Popup) {
	m.token++
	m.popup = p
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Popup returns the open popup.
func (m *Machine) Popup() Popup { return m.popup }

// Bird returns the bird.
func (m *Machine) Bird() Bird { return m.bird }

// Pipes returns a copy of the live pipes.
func (m *Machine) Pipes() []Pipe { return m.pipes.Pipes() }

// Score returns pipes passed in the current run.
func (m *Machine) Score() int { return m.score }

// Elapsed returns milliseconds of playing time.
func (m *Machine) Elapsed() float64 { return m.elapsed }

// Credits returns remaining revival credits.
func (m *Machine) Credits() int { return m.credits }

// Deaths returns how many times recovery ran this session.
func (m *Machine) Deaths() int { return m.deaths }

// ProgressIndex returns the bank position of the latest shown question.
func (m *Machine) ProgressIndex() int { return m.progress }

// Answered returns the resolved question ids in ascending order.
func (m *Machine) Answered() []int { return m.answered.IDs() }

// Rewards returns the collected reward ids in ascending order.
func (m *Machine) Rewards() []int { return m.rewards.IDs() }

// SavePoints returns the number of stored save points.
func (m *Machine) SavePoints() int { return m.saves.Len() }

// PendingEvents returns the number of queued deferred events.
func (m *Machine) PendingEvents() int { return m.events.Len() }

// Countdown returns the countdown phase; meaningful while PopupCountdown.
func (m *Machine) Countdown() CountdownPhase { return m.countdown }

// Config returns the configuration the machine runs with.
func (m *Machine) Config() config.GameConfig { return m.cfg }

// Bank returns the question bank.
func (m *Machine) Bank() *quiz.Bank { return m.bank }

// UntilNextQuestion returns ms of play left before the next question, or
// -1 when every question is resolved.
func (m *Machine) UntilNextQuestion() float64 {
	if m.scheduler.Dormant(m.progress, m.answered) {
		return -1
	}
	return m.scheduler.Until(m.elapsed, m.lastQuestionAt)
}

// OpenQuestion returns the question behind the question or revival popup
// and its options in displayed order.
func (m *Machine) OpenQuestion() (quiz.Question, []quiz.Option, bool) {
	if m.current < 0 || (m.popup != PopupQuestion && m.popup != PopupRevival) {
		return quiz.Question{}, nil, false
	}
	q := m.bank.At(m.current)
	return q, m.presentation.Options(q), true
}

// RevivalOptions returns the challenge and which options were redeemed.
func (m *Machine) RevivalOptions() (quiz.Challenge, []bool) {
	c := m.bank.Revival()
	used := make([]bool, len(c.Options))
	for i := range used {
		used[i] = m.redemptions.Used(i)
	}
	return c, used
}

// LastReward returns the question whose reward was granted most recently.
func (m *Machine) LastReward() (quiz.Question, bool) {
	if m.lastReward == 0 {
		return quiz.Question{}, false
	}
	return m.bank.ByID(m.lastReward)
}

// RevealedQuestion returns the question whose outcome is being revealed.
func (m *Machine) RevealedQuestion() (quiz.Question, bool) {
	if m.revealID == 0 {
		return quiz.Question{}, false
	}
	return m.bank.ByID(m.revealID)
}

func (m *Machine) String() string {
	return fmt.Sprintf("flappy.Machine{state=%s popup=%s score=%d elapsed=%.0f answered=%d rewards=%d}",
		m.state, m.popup, m.score, m.elapsed, m.answered.Len(), m.rewards.Len())
}
