package quiz

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/flaptrivia/internal/config"
)

// OptionsPerQuestion is the fixed number of options a question carries.
const OptionsPerQuestion = 2

// ErrInvalidBank is wrapped by every question bank validation failure.
var ErrInvalidBank = errors.New("invalid question bank")

// Bank is an ordered question list with stable ids and one revival challenge.
// It is read-only after loading.
type Bank struct {
	questions []Question
	index     map[int]int
	revival   Challenge
}

type bankFile struct {
	Questions []Question `yaml:"questions"`
	Revival   Challenge  `yaml:"revival"`
}

// NewBank builds and validates a bank from in-memory data.
func NewBank(questions []Question, revival Challenge) (*Bank, error) {
	b := &Bank{
		questions: append([]Question(nil), questions...),
		index:     make(map[int]int, len(questions)),
		revival:   revival,
	}
	for i, q := range b.questions {
		if _, dup := b.index[q.ID]; !dup {
			b.index[q.ID] = i
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// ParseBank decodes and validates YAML question data.
func ParseBank(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	return NewBank(f.Questions, f.Revival)
}

// LoadBank loads the question bank using the config search order.
func LoadBank(customPath string) (*Bank, error) {
	data, source, err := config.LoadQuestionData(customPath)
	if err != nil {
		return nil, err
	}
	b, err := ParseBank(data)
	if err != nil {
		return nil, fmt.Errorf("questions %s: %w", source, err)
	}
	return b, nil
}

// DefaultBank returns the embedded question bank.
func DefaultBank() *Bank {
	b, err := ParseBank(config.GetDefaultYAML("questions"))
	if err != nil {
		panic(fmt.Sprintf("quiz: embedded question bank is invalid: %v", err))
	}
	return b
}

// Validate checks ids are positive and unique and that every question has
// exactly one correct option among OptionsPerQuestion.
func (b *Bank) Validate() error {
	if len(b.questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidBank)
	}
	seen := make(map[int]bool, len(b.questions))
	for i, q := range b.questions {
		if q.ID <= 0 {
			return fmt.Errorf("%w: question #%d has non-positive id %d", ErrInvalidBank, i+1, q.ID)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalidBank, q.ID)
		}
		seen[q.ID] = true
		if len(q.Options) != OptionsPerQuestion {
			return fmt.Errorf("%w: question %d has %d options, expected %d", ErrInvalidBank, q.ID, len(q.Options), OptionsPerQuestion)
		}
		correct := 0
		for _, o := range q.Options {
			if o.Correct {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("%w: question %d has %d correct options", ErrInvalidBank, q.ID, correct)
		}
	}
	if err := b.revival.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	return nil
}

// CheckRewardTarget fails when fewer questions carry a reward than target,
// which would make victory unreachable.
func (b *Bank) CheckRewardTarget(target int) error {
	if n := b.RewardCount(); n < target {
		return fmt.Errorf("%w: %d reward questions, victory needs %d", ErrInvalidBank, n, target)
	}
	return nil
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// At returns the question at position i in presentation order.
func (b *Bank) At(i int) Question {
	return b.questions[i]
}

// ByID looks a question up by id.
func (b *Bank) ByID(id int) (Question, bool) {
	i, ok := b.index[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// HasReward reports whether question id carries a reward. Unknown ids never do.
func (b *Bank) HasReward(id int) bool {
	q, ok := b.ByID(id)
	return ok && q.HasReward()
}

// RewardCount returns the number of reward-bearing questions.
func (b *Bank) RewardCount() int {
	n := 0
	for _, q := range b.questions {
		if q.HasReward() {
			n++
		}
	}
	return n
}

// Revival returns the bank's revival challenge.
func (b *Bank) Revival() Challenge {
	return b.revival
}

// NextUnanswered scans from position from for the first question whose id is
// not in answered. It returns false when every remaining question is resolved.
func (b *Bank) NextUnanswered(from int, answered IDSet) (int, bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(b.questions); i++ {
		if !answered.Has(b.questions[i].ID) {
			return i, true
		}
	}
	return 0, false
}
