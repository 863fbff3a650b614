package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/flaptrivia/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

// Validate rejects configurations the generator or integrator cannot honor.
// Checks run once at load time so spawning never has to.
func Validate(cfg GameConfig) error {
	p := cfg.Playfield
	if p.Width <= 0 || p.Height <= 0 {
		return invalid("playfield %gx%g must be positive", p.Width, p.Height)
	}
	if p.GroundHeight < 0 || p.GroundHeight >= p.Height {
		return invalid("ground height %g outside playfield height %g", p.GroundHeight, p.Height)
	}

	b := cfg.Bird
	if b.Size <= 0 {
		return invalid("bird size %g must be positive", b.Size)
	}
	if b.Size >= p.GroundY() {
		return invalid("bird size %g does not fit above ground %g", b.Size, p.GroundY())
	}
	if b.X < 0 || b.X > p.Width {
		return invalid("bird x %g outside playfield", b.X)
	}

	ph := cfg.Physics
	if ph.MaxVelocity <= 0 {
		return invalid("max velocity %g must be positive", ph.MaxVelocity)
	}
	if ph.JumpHeight < 0 {
		return invalid("jump height %g must not be negative", ph.JumpHeight)
	}

	o := cfg.Obstacles
	if o.Width <= 0 {
		return invalid("pipe width %g must be positive", o.Width)
	}
	if o.Gap <= 0 {
		return invalid("gap %g must be positive", o.Gap)
	}
	if o.MinHeight < 0 {
		return invalid("min pipe height %g must not be negative", o.MinHeight)
	}
	if o.Gap+2*o.MinHeight > p.GroundY() {
		return invalid("gap %g with min pipe height %g exceeds playfield height %g", o.Gap, o.MinHeight, p.GroundY())
	}
	if o.Gap < b.Size {
		return invalid("gap %g is smaller than the bird %g", o.Gap, b.Size)
	}
	if o.SpawnInterval <= 0 {
		return invalid("spawn interval %dms must be positive", o.SpawnInterval)
	}
	if o.MaxStepFrames <= 0 {
		return invalid("max step frames %g must be positive", o.MaxStepFrames)
	}

	t := cfg.Trivia
	if t.FirstDelay < 0 || t.Interval <= 0 {
		return invalid("question timing first=%dms interval=%dms", t.FirstDelay, t.Interval)
	}
	if t.RevealDelay < 0 || t.ReadyDuration < 0 || t.GoDuration < 0 {
		return invalid("popup durations must not be negative")
	}
	if t.RevivalCredits < 0 {
		return invalid("revival credits %d must not be negative", t.RevivalCredits)
	}
	if t.RewardTarget <= 0 {
		return invalid("reward target %d must be positive", t.RewardTarget)
	}

	if cfg.Active.PipeSpeed <= 0 {
		return invalid("pipe speed %g for mode %q must be positive", cfg.Active.PipeSpeed, cfg.Active.Name)
	}
	return nil
}

// ValidateRuntime rejects runtime settings the tick loop cannot run with.
func ValidateRuntime(rc core.RuntimeConfig) error {
	if rc.TickRate <= 0 {
		return invalid("tick rate %d must be positive", rc.TickRate)
	}
	if rc.TickRate > 1000 {
		return invalid("tick rate %d exceeds one tick per millisecond", rc.TickRate)
	}
	return nil
}
