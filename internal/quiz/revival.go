package quiz

import "errors"

// ChallengeOption is one answer of the revival challenge.
type ChallengeOption struct {
	Text     string `yaml:"text"`
	Accepted bool   `yaml:"accepted"`
}

// Challenge is the bonus question offered after a wrong answer while
// revival credits remain. Every accepted option redeems at most once per
// session.
type Challenge struct {
	Prompt  string            `yaml:"prompt"`
	Options []ChallengeOption `yaml:"options"`
}

func (c Challenge) validate() error {
	if c.Prompt == "" {
		return errors.New("revival challenge has no prompt")
	}
	for _, o := range c.Options {
		if o.Accepted {
			return nil
		}
	}
	return errors.New("revival challenge has no accepted option")
}

// Verdict is the outcome of a revival attempt.
type Verdict int

const (
	// VerdictIgnored means the choice was out of range or already redeemed.
	VerdictIgnored Verdict = iota
	// VerdictRevived means an unused accepted option was chosen.
	VerdictRevived
	// VerdictFailed means a non-accepted option was chosen.
	VerdictFailed
)

// Redemptions tracks which accepted options were already used this session.
type Redemptions struct {
	used map[int]bool
}

// NewRedemptions returns an empty tracker.
func NewRedemptions() *Redemptions {
	return &Redemptions{used: make(map[int]bool)}
}

// Used reports whether option i was redeemed.
func (r *Redemptions) Used(i int) bool {
	return r.used[i]
}

// Count returns the number of redeemed options.
func (r *Redemptions) Count() int {
	return len(r.used)
}

// Attempt judges choosing option i of c and records a successful redemption.
func (r *Redemptions) Attempt(c Challenge, i int) Verdict {
	if i < 0 || i >= len(c.Options) {
		return VerdictIgnored
	}
	if !c.Options[i].Accepted {
		return VerdictFailed
	}
	if r.used[i] {
		return VerdictIgnored
	}
	r.used[i] = true
	return VerdictRevived
}

// Reset forgets every redemption.
func (r *Redemptions) Reset() {
	r.used = make(map[int]bool)
}
