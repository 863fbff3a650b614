package flappy

import (
	"fmt"

	"github.com/vovakirdan/flaptrivia/internal/core"
)

// AnswerPolicy decides how the autopilot answers questions.
type AnswerPolicy string

const (
	AnswerCorrect AnswerPolicy = "correct" // Always pick the correct option
	AnswerWrong   AnswerPolicy = "wrong"   // Always pick a wrong option
	AnswerFirst   AnswerPolicy = "first"   // Always pick the first displayed option
)

// ParseAnswerPolicy validates a policy name.
func ParseAnswerPolicy(s string) (AnswerPolicy, error) {
	switch p := AnswerPolicy(s); p {
	case AnswerCorrect, AnswerWrong, AnswerFirst:
		return p, nil
	case "":
		return AnswerCorrect, nil
	default:
		return "", fmt.Errorf("flappy: unknown answer policy %q", s)
	}
}

// Autopilot produces input for a machine without a player: it flaps to stay
// above the next gap's lower edge, answers questions by Policy, redeems the
// first unused revival answer and dismisses result popups.
type Autopilot struct {
	Policy AnswerPolicy
	Margin float64 // Clearance kept above the lower pipe, in playfield units
}

// NewAutopilot returns an autopilot with the default clearance.
func NewAutopilot(policy AnswerPolicy) Autopilot {
	return Autopilot{Policy: policy, Margin: 12}
}

// Input returns the actions to press for the coming tick.
func (a Autopilot) Input(m *Machine) core.InputFrame {
	in := core.NewInputFrame()

	switch m.Popup() {
	case PopupQuestion:
		if slot := a.answer(m); slot >= 0 {
			in.Set(optionAction(slot))
		}
		return in
	case PopupRevival:
		if slot := a.redeem(m); slot >= 0 {
			in.Set(optionAction(slot))
		} else {
			in.Set(core.ActionBack)
		}
		return in
	case PopupReveal, PopupReward, PopupNoReward:
		in.Set(core.ActionConfirm)
		return in
	}

	if m.State() == StatePlaying && a.shouldFlap(m) {
		in.Set(core.ActionJump)
	}
	return in
}

func (a Autopilot) answer(m *Machine) int {
	_, opts, ok := m.OpenQuestion()
	if !ok {
		return -1
	}
	if a.Policy == AnswerFirst {
		return 0
	}
	for i, o := range opts {
		if o.Correct == (a.Policy != AnswerWrong) {
			return i
		}
	}
	return -1
}

func (a Autopilot) redeem(m *Machine) int {
	c, used := m.RevivalOptions()
	for i, o := range c.Options {
		if o.Accepted && !used[i] {
			return i
		}
	}
	return -1
}

func (a Autopilot) shouldFlap(m *Machine) bool {
	cfg := m.Config()
	b := m.Bird()
	r := cfg.Bird.Radius()

	floor := cfg.Playfield.GroundY() - a.Margin
	ceiling := cfg.Physics.TopBound
	for _, p := range m.Pipes() {
		if p.X+cfg.Obstacles.Width < b.X-r {
			continue // already behind the bird
		}
		floor = p.BottomY - a.Margin
		ceiling = p.TopHeight + a.Margin
		break
	}

	if b.Y+r < floor {
		return false
	}
	// Never flap into the upper pipe.
	return b.Y-cfg.Physics.JumpHeight-r > ceiling
}

func optionAction(slot int) core.Action {
	return core.ActionOption1 + core.Action(slot)
}
