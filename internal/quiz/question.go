// Package quiz holds the trivia side of flaptrivia: questions, option
// presentation, progress sets and the revival challenge.
package quiz

// Option is one answer of a question.
type Option struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

// Question is immutable reference data loaded from a Bank.
type Question struct {
	ID      int      `yaml:"id"`
	Title   string   `yaml:"title"`
	Prompt  string   `yaml:"prompt"`
	Options []Option `yaml:"options"`
	Reward  string   `yaml:"reward"`
}

// HasReward reports whether a correct answer is eligible for a reward.
func (q Question) HasReward() bool {
	return q.Reward != ""
}

// CorrectIndex returns the index of the correct option, or -1.
func (q Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.Correct {
			return i
		}
	}
	return -1
}
