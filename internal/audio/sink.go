// Package audio turns game cues into sound. The simulation only sees the
// Sink interface; playback failures never reach it.
package audio

// Cue is a fire-and-forget sound signal emitted by the game.
type Cue int

const (
	CueJump Cue = iota
	CueDeath
	CueReward
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueDeath:
		return "death"
	case CueReward:
		return "reward"
	default:
		return "unknown"
	}
}

// Sink receives cues. Play must not block the caller.
type Sink interface {
	Play(c Cue)
}

// Nop is a Sink that discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// Recorder is a Sink that remembers cues in order. Used by tests and the
// headless simulator.
type Recorder struct {
	Cues []Cue
}

// Play appends c.
func (r *Recorder) Play(c Cue) {
	r.Cues = append(r.Cues, c)
}

// Count returns how many times c was played.
func (r *Recorder) Count(c Cue) int {
	n := 0
	for _, got := range r.Cues {
		if got == c {
			n++
		}
	}
	return n
}

// OrNop returns s, or Nop when s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop{}
	}
	return s
}
