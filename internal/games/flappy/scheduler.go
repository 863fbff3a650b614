package flappy

import (
	"github.com/vovakirdan/flaptrivia/internal/config"
	"github.com/vovakirdan/flaptrivia/internal/quiz"
)

// noQuestionYet marks a session in which no question has been shown.
const noQuestionYet = -1

// Scheduler decides when the next trivia interruption is due and which
// question it shows. It holds no mutable state.
type Scheduler struct {
	FirstDelay float64 // ms of play before the first question
	Interval   float64 // ms between questions
	bank       *quiz.Bank
}

// NewScheduler creates a scheduler over bank.
func NewScheduler(cfg config.TriviaConfig, bank *quiz.Bank) Scheduler {
	return Scheduler{
		FirstDelay: float64(cfg.FirstDelay),
		Interval:   float64(cfg.Interval),
		bank:       bank,
	}
}

// Due reports whether enough playing time passed since the last question.
// lastAt is noQuestionYet before the first one.
func (s Scheduler) Due(elapsed, lastAt float64) bool {
	return elapsed >= s.dueAt(lastAt)
}

// Until returns the milliseconds left until the next question is due.
func (s Scheduler) Until(elapsed, lastAt float64) float64 {
	left := s.dueAt(lastAt) - elapsed
	if left < 0 {
		return 0
	}
	return left
}

func (s Scheduler) dueAt(lastAt float64) float64 {
	if lastAt < 0 {
		return s.FirstDelay
	}
	return lastAt + s.Interval
}

// Poll returns the bank position of the question to show now, if any.
func (s Scheduler) Poll(elapsed, lastAt float64, progress int, answered quiz.IDSet) (int, bool) {
	if !s.Due(elapsed, lastAt) {
		return 0, false
	}
	return s.bank.NextUnanswered(progress, answered)
}

// Dormant reports whether no question remains from progress on.
func (s Scheduler) Dormant(progress int, answered quiz.IDSet) bool {
	_, ok := s.bank.NextUnanswered(progress, answered)
	return !ok
}
