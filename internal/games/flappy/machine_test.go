package flappy

import (
	"testing"

	"github.com/vovakirdan/flaptrivia/internal/audio"
	"github.com/vovakirdan/flaptrivia/internal/config"
	"github.com/vovakirdan/flaptrivia/internal/quiz"
)

const stepMs = 10.0

// newTestMachine returns a started machine whose bird floats in place and
// whose pipe gaps always contain it, so only the test decides when it dies.
func newTestMachine(t *testing.T, mode config.Mode) (*Machine, *audio.Recorder) {
	t.Helper()
	cfg := config.DefaultGameConfig()
	if err := config.ApplyMode(&cfg, mode); err != nil {
		t.Fatal(err)
	}
	cfg.Physics.Gravity = 0
	cfg.Obstacles.MinHeight = 0
	cfg.Obstacles.Gap = 500

	rec := &audio.Recorder{}
	m := NewMachine(cfg, quiz.DefaultBank(), 42, WithSink(rec))
	m.StartGame()
	return m, rec
}

func advance(m *Machine, ms float64) {
	for done := 0.0; done < ms; done += stepMs {
		m.Tick(stepMs)
	}
}

func playUntilQuestion(t *testing.T, m *Machine) {
	t.Helper()
	for i := 0; i < 100000; i++ {
		if m.Popup() == PopupQuestion {
			return
		}
		m.Tick(stepMs)
	}
	t.Fatalf("no question appeared: %s", m)
}

func correctSlot(t *testing.T, m *Machine) int {
	t.Helper()
	q := m.bank.At(m.current)
	for slot := range m.presentation.Order {
		if m.presentation.IsCorrect(q, slot) {
			return slot
		}
	}
	t.Fatal("open question has no correct slot")
	return -1
}

func wrongSlot(t *testing.T, m *Machine) int {
	t.Helper()
	return 1 - correctSlot(t, m)
}

// finishCountdown runs the clock until play resumes.
func finishCountdown(t *testing.T, m *Machine) {
	t.Helper()
	if m.Popup() != PopupCountdown {
		t.Fatalf("expected countdown, got %s", m)
	}
	advance(m, 2000)
	if m.State() != StatePlaying {
		t.Fatalf("countdown did not resume play: %s", m)
	}
}

func crash(m *Machine) Report {
	m.bird.Y = m.physics.GroundY - m.physics.Radius
	return m.Tick(stepMs)
}

func TestStartGame(t *testing.T) {
	cfg := config.DefaultGameConfig()
	m := NewMachine(cfg, quiz.DefaultBank(), 1)

	if m.State() != StateMenu {
		t.Fatalf("new machine should be in menu, got %s", m.State())
	}
	m.Tick(stepMs)
	m.Jump()
	if m.Elapsed() != 0 || len(m.Pipes()) != 0 {
		t.Error("menu should not simulate")
	}

	m.StartGame()
	if m.State() != StatePlaying {
		t.Errorf("StartGame() state = %s, expected playing", m.State())
	}
	if len(m.Pipes()) != 1 {
		t.Errorf("StartGame() should spawn one pipe, got %d", len(m.Pipes()))
	}
	if m.Credits() != 3 {
		t.Errorf("Credits() = %d, expected 3", m.Credits())
	}

	m.StartGame()
	if len(m.Pipes()) != 1 {
		t.Error("StartGame outside the menu should be ignored")
	}
}

func TestJumpOnlyWhilePlaying(t *testing.T) {
	m, rec := newTestMachine(t, config.ModeLenient)

	m.Jump()
	if m.Bird().Y != 232 || rec.Count(audio.CueJump) != 1 {
		t.Errorf("Jump while playing: Y = %g, cues = %v", m.Bird().Y, rec.Cues)
	}

	m.Pause()
	m.Jump()
	if m.Bird().Y != 232 || rec.Count(audio.CueJump) != 1 {
		t.Error("Jump while paused should be ignored")
	}
}

func TestPauseResume(t *testing.T) {
	m, _ := newTestMachine(t, config.ModeLenient)
	advance(m, 100)

	m.Pause()
	if m.State() != StatePaused {
		t.Fatalf("Pause() state = %s", m.State())
	}
	before := m.Elapsed()
	advance(m, 5000)
	if m.Elapsed() != before {
		t.Error("simulation should be frozen while paused")
	}

	m.Resume()
	if m.State() != StatePlaying {
		t.Errorf("Resume() state = %s, expected playing", m.State())
	}

	m.Resume()
	m.Pause()
	m.Pause()
	if m.State() != StatePaused {
		t.Error("repeated Pause should be a no-op")
	}
}

func TestResumeDoesNotClosePopups(t *testing.T) {
	m, _ := newTestMachine(t, config.ModeLenient)
	playUntilQuestion(t, m)

	m.Resume()
	m.Continue()
	if m.Popup() != PopupQuestion || m.State() != StatePaused {
		t.Errorf("question popup closed through an unrelated action: %s", m)
	}
}

func TestFirstQuestionTiming(t *testing.T) {
	m, _ := newTestMachine(t, config.ModeLenient)

	advance(m, 9990)
	if m.Popup() != PopupNone {
		t.Fatalf("question appeared early at %g ms", m.Elapsed())
	}
	playUntilQuestion(t, m)
	if m.Elapsed() != 10000 {
		t.Errorf("first question at %g ms, expected 10000", m.Elapsed())
	}

	q, opts, ok := m.OpenQuestion()
	if !ok || q.ID != 1 || len(opts) != 2 {
		t.Errorf("OpenQuestion() = %d, %d options, %v", q.ID, len(opts), ok)
	}
}

func TestCorrectRewardFlow(t *testing.T) {
	m, rec := newTestMachine(t, config.ModeLenient)
	playUntilQuestion(t, m)

	m.Answer(correctSlot(t, m))
	if m.Popup() != PopupReveal {
		t.Fatalf("expected reveal, got %s", m.Popup())
	}
	if got := m.Answered(); len(got) != 1 || got[0] != 1 {
		t.Errorf("Answered() = %v, expected [1]", got)
	}
	if m.SavePoints() != 1 {
		t.Errorf("lenient mode should take a save point, got %d", m.SavePoints())
	}

	advance(m, 490)
	if m.Popup() != PopupReveal {
		t.Fatalf("reveal ended early: %s", m.Popup())
	}
	advance(m, 10)
	if m.Popup() != PopupReward {
		t.Fatalf("expected reward popup, got %s", m.Popup())
	}
	if rec.Count(audio.CueReward) != 1 || len(m.Rewards()) != 1 {
		t.Errorf("reward not granted: cues %v, rewards %v", rec.Cues, m.Rewards())
	}
}

func TestNoRewardFlow(t *testing.T) {
	m, rec := newTestMachine(t, config.ModeLenient)
	m.answered.Add(1) // skip to question 2, which carries no reward
	playUntilQuestion(t, m)

	m.Answer(correctSlot(t, m))
	advance(m, 500)
	if m.Popup() != PopupNoReward {
		t.Fatalf("expected no-reward popup, got %s", m.Popup())
	}
	if rec.Count(audio.CueReward) != 0 || len(m.Rewards()) != 0 {
		t.Error("no reward should be granted for question 2")
	}
}

func TestContinueDuringRevealRevealsOnce(t *testing.T) {
	m, rec := newTestMachine(t, config.ModeLenient)
	playUntilQuestion(t, m)
	m.Answer(correctSlot(t, m))

	m.Continue()
	if m.Popup() != PopupReward {
		t.Fatalf("Continue during reveal should reveal now, got %s", m.Popup())
	}

	advance(m, 1000)
	if rec.Count(audio.CueReward) != 1 {
		t.Errorf("stale reveal event fired again: %v", rec.Cues)
	}
	if m.Popup() != PopupReward {
		t.Errorf("reward popup must stay until Continue, got %s", m.Popup())
	}
}

func TestRewardContinueRunsCountdownOnce(t *testing.T) {
	m, _ := newTestMachine(t, config.ModeLenient)
	playUntilQuestion(t, m)
	m.Answer(correctSlot(t, m))
	advance(m, 500)

	m.Continue()
	m.Continue()
	if m.Popup() != PopupCountdown || m.Countdown() != CountdownReady {
		t.Fatalf("expected ready countdown, got %s", m)
	}
	if m.PendingEvents() != 2 {
		t.Errorf("PendingEvents() = %d, expected exactly one countdown", m.PendingEvents())
	}

	elapsed := m.Elapsed()
	advance(m, 990)
	if m.Countdown() != CountdownReady {
		t.Error("countdown switched to go early")
	}
	advance(m, 10)
	if m.Countdown() != CountdownGo || m.Popup() != PopupCountdown {
		t.Errorf("expected go phase, got %s", m)
	}
	advance(m, 990)
	if m.State() == StatePlaying || m.Elapsed() != elapsed {
		t.Fatal("play resumed before the countdown completed")
	}
	advance(m, 10)
	if m.State() != StatePlaying || m.Popup() != PopupNone {
		t.Errorf("countdown did not resume play: %s", m)
	}
	if m.PendingEvents() != 0 {
		t.Errorf("PendingEvents() = %d after countdown", m.PendingEvents())
	}
}

func TestWrongAnswerWithoutCreditsRecoversDirectly(t *testing.T) {
	m, rec := newTestMachine(t, config.ModeLenient)
	m.credits = 0
	playUntilQuestion(t, m)

	m.Answer(wrongSlot(t, m))
	if m.Popup() == PopupRevival {
		t.Fatal("revival must not be offered without credits")
	}
	if m.Popup() != PopupCountdown || m.Deaths() != 1 {
		t.Errorf("expected recovery countdown, got %s deaths=%d", m, m.Deaths())
	}
	if rec.Count(audio.CueDeath) != 1 {
		t.Errorf("death cue count = %d", rec.Count(audio.CueDeath))
	}
	if got := m.Answered(); len(got) != 1 || got[0] != 1 {
		t.Errorf("wrong answer should still resolve the question, Answered() = %v", got)
	}

	finishCountdown(t, m)
	playUntilQuestion(t, m)
	if q, _, _ := m.OpenQuestion(); q.ID == 1 {
		t.Error("a resolved question was asked again")
	}
}

func TestRevivalSuccess(t *testing.T) {
	m, rec := newTestMachine(t, config.ModeLenient)
	playUntilQuestion(t, m)

	m.Answer(wrongSlot(t, m))
	if m.Popup() != PopupRevival {
		t.Fatalf("expected revival popup, got %s", m.Popup())
	}
	if len(m.Answered()) != 0 {
		t.Error("question should stay open while the revival challenge runs")
	}

	m.Revive(0)
	if m.Credits() != 2 {
		t.Errorf("Credits() = %d, expected 2", m.Credits())
	}
	if m.Popup() != PopupReveal || len(m.Answered()) != 1 {
		t.Errorf("revival should resolve and reveal: %s", m)
	}
	advance(m, 500)
	if m.Popup() != PopupReward || rec.Count(audio.CueReward) != 1 {
		t.Errorf("revived reward question should grant its reward: %s", m)
	}
	if m.Deaths() != 0 {
		t.Error("successful revival is not a death")
	}
}

func TestRevivalAnswersAreSingleUse(t *testing.T) {
	m, _ := newTestMachine(t, config.ModeLenient)

	for round := 0; round < 2; round++ {
		playUntilQuestion(t, m)
		m.Answer(wrongSlot(t, m))
		if m.Popup() != PopupRevival {
			t.Fatalf("round %d: expected revival popup, got %s", round, m.Popup())
		}
		if round == 1 {
			m.Revive(0)
			if m.Popup() != PopupRevival || m.Credits() != 2 {
				t.Fatalf("reused answer should be ignored: %s credits=%d", m, m.Credits())
			}
		}
		m.Revive(round)
		if m.Popup() != PopupReveal {
			t.Fatalf("round %d: expected reveal, got %s", round, m.Popup())
		}
		m.Continue()
		m.Continue()
		finishCountdown(t, m)
	}

	if m.Credits() != 1 {
		t.Errorf("Credits() = %d, expected 1", m.Credits())
	}
	_, used := m.RevivalOptions()
	if !used[0] || !used[1] || used[2] {
		t.Errorf("used = %v, expected first two redeemed", used)
	}
}

func TestRevivalFailure(t *testing.T) {
	tests := []struct {
		name string
		act  func(m *Machine)
	}{
		{"decoy answer", func(m *Machine) { m.Revive(3) }},
		{"give up", func(m *Machine) { m.GiveUp() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine(t, config.ModeLenient)
			playUntilQuestion(t, m)
			m.Answer(wrongSlot(t, m))
			tt.act(m)

			if m.Credits() != 3 {
				t.Errorf("failed revival must not consume a credit, Credits() = %d", m.Credits())
			}
			if m.Deaths() != 1 || m.Popup() != PopupCountdown {
				t.Errorf("expected failure recovery, got %s deaths=%d", m, m.Deaths())
			}
			if len(m.Answered()) != 1 {
				t.Errorf("failed revival should resolve the question, Answered() = %v", m.Answered())
			}
		})
	}
}

func TestCollisionRestoresSavePoint(t *testing.T) {
	m, rec := newTestMachine(t, config.ModeLenient)
	playUntilQuestion(t, m)
	m.Answer(correctSlot(t, m))
	saved := m.saves.points[0]

	m.Continue()
	m.Continue()
	finishCountdown(t, m)
	advance(m, 3000)
	m.score = saved.Score + 4

	r := crash(m)
	if !r.Died || rec.Count(audio.CueDeath) != 1 {
		t.Fatalf("expected a death, report %+v", r)
	}
	if m.Elapsed() != saved.Elapsed || m.Score() != saved.Score {
		t.Errorf("restored elapsed=%g score=%d, expected %g and %d", m.Elapsed(), m.Score(), saved.Elapsed, saved.Score)
	}
	if m.Bird() != saved.Bird {
		t.Errorf("restored bird %+v, expected %+v", m.Bird(), saved.Bird)
	}
	if len(m.Answered()) < saved.Answered.Len() || m.ProgressIndex() < saved.ProgressIndex {
		t.Error("restore must not shrink quiz progress")
	}
	if m.Popup() != PopupCountdown {
		t.Errorf("recovery should re-enter through the countdown, got %s", m.Popup())
	}

	finishCountdown(t, m)
	playUntilQuestion(t, m)
	if q, _, _ := m.OpenQuestion(); q.ID != 2 {
		t.Errorf("next question after restore = %d, expected 2", q.ID)
	}
}

func TestRestoreKeepsLaterAnswers(t *testing.T) {
	m, _ := newTestMachine(t, config.ModeLenient)
	playUntilQuestion(t, m)
	m.Answer(correctSlot(t, m))
	m.Continue()
	m.Continue()
	finishCountdown(t, m)

	// Resolved after the save point through a path that takes none.
	m.answered.Add(4)
	crash(m)

	answered := quiz.NewIDSet(m.Answered()...)
	if !answered.Has(1) || !answered.Has(4) {
		t.Errorf("Answered() = %v, expected to keep 1 and 4", m.Answered())
	}
}

func TestHardModeRestartsWithProgress(t *testing.T) {
	m, _ := newTestMachine(t, config.ModeHard)
	playUntilQuestion(t, m)
	m.Answer(wrongSlot(t, m))
	m.Revive(0)
	m.Continue()
	m.Continue()
	finishCountdown(t, m)

	if m.SavePoints() != 0 {
		t.Fatalf("hard mode took %d save points", m.SavePoints())
	}
	advance(m, 2000)
	m.score = 5
	crash(m)

	if m.Score() != 0 || m.Elapsed() != 0 {
		t.Errorf("restart should reset score and time, got %d / %g", m.Score(), m.Elapsed())
	}
	if m.Bird().Y != 250 || len(m.Pipes()) != 1 {
		t.Errorf("restart should respawn bird and first pipe: %+v, %d pipes", m.Bird(), len(m.Pipes()))
	}
	if len(m.Answered()) != 1 || len(m.Rewards()) != 1 || m.Credits() != 2 {
		t.Errorf("restart must keep quiz progress: answered %v rewards %v credits %d", m.Answered(), m.Rewards(), m.Credits())
	}
	if m.State() != StatePaused || m.Popup() != PopupCountdown {
		t.Errorf("expected countdown after restart, got %s", m)
	}
}

func TestVictoryRegardlessOfOrder(t *testing.T) {
	orders := [][]int{
		{1, 3, 5, 8, 9},
		{9, 8, 5, 3, 1},
		{5, 1, 9, 3, 8},
	}

	for _, order := range orders {
		m, _ := newTestMachine(t, config.ModeLenient)
		for i, id := range order {
			m.beginReveal(id)
			m.reveal()
			if i < len(order)-1 && m.State() == StateVictory {
				t.Fatalf("order %v: victory after %d rewards", order, i+1)
			}
		}
		if m.State() != StateVictory {
			t.Errorf("order %v: state = %s, expected victory", order, m.State())
		}
	}
}

func TestFullPlaythroughReachesVictory(t *testing.T) {
	m, _ := newTestMachine(t, config.ModeLenient)

	for i := 0; i < 9 && m.State() != StateVictory; i++ {
		playUntilQuestion(t, m)
		m.Answer(correctSlot(t, m))
		advance(m, 500)
		if m.State() == StateVictory {
			break
		}
		m.Continue()
		finishCountdown(t, m)
	}

	if m.State() != StateVictory {
		t.Fatalf("expected victory, got %s", m)
	}
	if len(m.Rewards()) != 5 || len(m.Answered()) != 9 {
		t.Errorf("rewards %v answered %v", m.Rewards(), m.Answered())
	}

	before := m.Elapsed()
	advance(m, 5000)
	m.Jump()
	m.Pause()
	if m.State() != StateVictory || m.Elapsed() != before {
		t.Error("victory is terminal until restart")
	}

	m.Restart()
	if m.State() != StateMenu || len(m.Answered()) != 0 || len(m.Rewards()) != 0 || m.SavePoints() != 0 {
		t.Errorf("Restart should clear the session: %s", m)
	}
	if m.Credits() != 3 {
		t.Errorf("Restart should refill credits, got %d", m.Credits())
	}
}

func TestSchedulerDormantAfterAllAnswered(t *testing.T) {
	m, _ := newTestMachine(t, config.ModeLenient)
	for i := 1; i <= 9; i++ {
		m.answered.Add(i)
	}

	advance(m, 60000)
	if m.Popup() != PopupNone || m.State() != StatePlaying {
		t.Errorf("no question should appear once all are answered: %s", m)
	}
	if m.UntilNextQuestion() != -1 {
		t.Errorf("UntilNextQuestion() = %g, expected -1", m.UntilNextQuestion())
	}
}

func TestAnsweredSetOnlyGrows(t *testing.T) {
	m, _ := newTestMachine(t, config.ModeLenient)
	m.credits = 1
	prev := 0

	for i := 0; i < 9; i++ {
		playUntilQuestion(t, m)
		if i%2 == 0 {
			m.Answer(correctSlot(t, m))
			m.Continue()
			if m.State() == StateVictory {
				break
			}
			m.Continue()
		} else {
			m.Answer(wrongSlot(t, m))
			if m.Popup() == PopupRevival {
				m.GiveUp()
			}
		}
		if n := len(m.Answered()); n <= prev {
			t.Fatalf("answered set did not grow: %d -> %d", prev, n)
		}
		prev = len(m.Answered())
		finishCountdown(t, m)

		if i%3 == 0 {
			crash(m)
			if len(m.Answered()) < prev {
				t.Fatalf("answered set shrank after recovery")
			}
			finishCountdown(t, m)
		}
	}

	if len(m.Answered()) != 9 {
		t.Errorf("Answered() = %v, expected all nine", m.Answered())
	}
}

func TestStaleEventIsDropped(t *testing.T) {
	m, _ := newTestMachine(t, config.ModeLenient)
	playUntilQuestion(t, m)
	m.Answer(correctSlot(t, m))

	// Swap the popup underneath the pending reveal.
	m.setPopup(PopupNoReward)
	advance(m, 1000)
	if m.Popup() != PopupNoReward || len(m.Rewards()) != 0 {
		t.Errorf("stale reveal applied: %s", m)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (int, []Pipe) {
		cfg := config.DefaultGameConfig()
		m := NewMachine(cfg, quiz.DefaultBank(), 12345)
		m.StartGame()
		for i := 0; i < 3000; i++ {
			if i%12 == 0 {
				m.Jump()
			}
			m.Tick(1000.0 / 60)
			if m.Popup() == PopupQuestion {
				m.Answer(0)
			}
			m.Continue()
		}
		return m.Score(), m.Pipes()
	}

	s1, p1 := run()
	s2, p2 := run()
	if s1 != s2 || len(p1) != len(p2) {
		t.Fatalf("runs diverged: score %d vs %d, %d vs %d pipes", s1, s2, len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Errorf("pipe %d differs: %+v vs %+v", i, p1[i], p2[i])
		}
	}
}
