package quiz

import "math/rand"

// Presentation is the on-screen ordering of a question's options.
// Order[slot] is the index into Question.Options shown at that slot.
type Presentation struct {
	QuestionID int
	Order      []int
}

// Present shuffles q's options using rng. The result depends only on q and
// the state of rng, so a seeded source reproduces the same order.
func Present(q Question, rng *rand.Rand) Presentation {
	order := make([]int, len(q.Options))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return Presentation{QuestionID: q.ID, Order: order}
}

// Original maps a displayed slot back to the option index, or -1.
func (p Presentation) Original(slot int) int {
	if slot < 0 || slot >= len(p.Order) {
		return -1
	}
	return p.Order[slot]
}

// IsCorrect reports whether choosing slot answers q correctly.
func (p Presentation) IsCorrect(q Question, slot int) bool {
	i := p.Original(slot)
	return i >= 0 && i < len(q.Options) && q.Options[i].Correct
}

// Options returns q's options in displayed order.
func (p Presentation) Options(q Question) []Option {
	out := make([]Option, 0, len(p.Order))
	for _, i := range p.Order {
		if i < len(q.Options) {
			out = append(out, q.Options[i])
		}
	}
	return out
}
