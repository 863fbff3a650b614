package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Segment is one leg of a tone: a linear sweep from From to To Hz.
type Segment struct {
	From, To float64
	Length   time.Duration
}

// ToneGenerator streams a sequence of sine sweeps with a short attack and a
// linear release per segment. It ends after the last segment.
type ToneGenerator struct {
	sr       beep.SampleRate
	segments []Segment
	volume   float64
	harmonic float64 // weight of the second harmonic, adds grit

	seg   int
	pos   int
	phase float64
}

// NewToneGenerator creates a generator for segments.
func NewToneGenerator(sr beep.SampleRate, volume, harmonic float64, segments ...Segment) *ToneGenerator {
	return &ToneGenerator{
		sr:       sr,
		segments: segments,
		volume:   volume,
		harmonic: harmonic,
	}
}

// Stream fills samples and reports false once every segment was played.
func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		length := g.skipEmpty()
		if length == 0 {
			break
		}
		s := g.segments[g.seg]

		progress := float64(g.pos) / float64(length)
		freq := s.From + (s.To-s.From)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		attack := math.Min(float64(g.pos)/float64(g.sr.N(5*time.Millisecond)+1), 1)
		envelope := attack * (1 - progress)
		sample := math.Sin(g.phase) + g.harmonic*math.Sin(2*g.phase)
		sample *= g.volume * envelope / (1 + g.harmonic)

		samples[n][0] = sample
		samples[n][1] = sample
		n++

		g.pos++
		if g.pos >= length {
			g.seg++
			g.pos = 0
		}
	}
	return n, n > 0
}

// skipEmpty moves past segments shorter than one sample and returns the
// sample length of the current one, or 0 when none is left.
func (g *ToneGenerator) skipEmpty() int {
	for ; g.seg < len(g.segments); g.seg++ {
		if length := g.sr.N(g.segments[g.seg].Length); length > 0 {
			return length
		}
		g.pos = 0
	}
	return 0
}

// Scale multiplies the output volume by v.
func (g *ToneGenerator) Scale(v float64) {
	g.volume *= v
}

// Err implements beep.Streamer.
func (g *ToneGenerator) Err() error {
	return nil
}

// Duration returns the total length of the tone.
func (g *ToneGenerator) Duration() time.Duration {
	var d time.Duration
	for _, s := range g.segments {
		d += s.Length
	}
	return d
}

// ToneFor returns a fresh generator for c. Unknown cues are silent.
func ToneFor(sr beep.SampleRate, c Cue) *ToneGenerator {
	switch c {
	case CueJump:
		return NewToneGenerator(sr, 0.25, 0,
			Segment{From: 620, To: 940, Length: 70 * time.Millisecond},
		)
	case CueDeath:
		return NewToneGenerator(sr, 0.3, 0.5,
			Segment{From: 420, To: 300, Length: 120 * time.Millisecond},
			Segment{From: 300, To: 110, Length: 220 * time.Millisecond},
		)
	case CueReward:
		return NewToneGenerator(sr, 0.25, 0.2,
			Segment{From: 523.25, To: 523.25, Length: 110 * time.Millisecond},
			Segment{From: 659.25, To: 659.25, Length: 110 * time.Millisecond},
			Segment{From: 783.99, To: 783.99, Length: 110 * time.Millisecond},
			Segment{From: 1046.5, To: 1046.5, Length: 220 * time.Millisecond},
		)
	default:
		return NewToneGenerator(sr, 0, 0)
	}
}
