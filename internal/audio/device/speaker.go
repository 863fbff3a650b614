// Package device plays audio cues on the host sound card. It is kept apart
// from package audio so the game core never links the sound backend.
package device

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/flaptrivia/internal/audio"
)

const sampleRate = beep.SampleRate(44100)

// Speaker is an audio.Sink that synthesizes cues on the default audio
// device. Calls before Initialize succeeds are dropped.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSpeaker creates an uninitialized speaker sink.
func NewSpeaker() *Speaker {
	return &Speaker{
		mixer:  &beep.Mixer{},
		volume: 1,
	}
}

// Initialize opens the audio device. Calling it again is a no-op.
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// SetVolume scales every later cue; 0 mutes.
func (s *Speaker) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v < 0 {
		v = 0
	}
	s.volume = v
}

// Play queues the tone for c on the mixer and returns immediately.
func (s *Speaker) Play(c audio.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.volume == 0 {
		return
	}
	gen := audio.ToneFor(sampleRate, c)
	gen.Scale(s.volume)

	// The speaker goroutine reads the mixer; guard the mutation.
	speaker.Lock()
	s.mixer.Add(beep.Take(sampleRate.N(gen.Duration()), gen))
	speaker.Unlock()
}

// Close silences pending cues. The device stays open for the process.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// Open returns a speaker sink when enabled and the device opens, otherwise
// a silent sink. Failures are logged, never returned.
func Open(enabled bool, logger *log.Logger) audio.Sink {
	if !enabled {
		return audio.Nop{}
	}
	sp := NewSpeaker()
	if err := sp.Initialize(); err != nil {
		if logger != nil {
			logger.Warn("audio unavailable, continuing silently", "err", err)
		}
		return audio.Nop{}
	}
	return sp
}
