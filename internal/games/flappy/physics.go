package flappy

import (
	"math"

	"github.com/vovakirdan/flaptrivia/internal/config"
	"github.com/vovakirdan/flaptrivia/internal/core"
)

// Rotation limits in radians; rotation only affects rendering.
const (
	minRotation  = -math.Pi / 4
	maxRotation  = math.Pi / 2
	jumpRotation = -math.Pi / 6
	rotationGain = 0.1
)

// Bird is the player. X never changes during a session.
type Bird struct {
	X        float64
	Y        float64
	Velocity float64
	Rotation float64
}

// Box returns the bird's bounding box for a given radius.
func (b Bird) Box(radius float64) core.Box {
	return core.BoxAround(b.X, b.Y, radius)
}

// Physics integrates the bird. It is a pure value: every method returns a
// new Bird and keeps no state between calls.
type Physics struct {
	Gravity     float64
	MaxVelocity float64
	Radius      float64
	GroundY     float64
	JumpHeight  float64
	TopBound    float64
}

// NewPhysics derives integrator parameters from cfg.
func NewPhysics(cfg config.GameConfig) Physics {
	return Physics{
		Gravity:     cfg.Physics.Gravity,
		MaxVelocity: cfg.Physics.MaxVelocity,
		Radius:      cfg.Bird.Radius(),
		GroundY:     cfg.Playfield.GroundY(),
		JumpHeight:  cfg.Physics.JumpHeight,
		TopBound:    cfg.Physics.TopBound,
	}
}

// Integrate advances b by dt milliseconds. Negative dt is treated as zero.
func (p Physics) Integrate(b Bird, dt float64) Bird {
	if dt < 0 {
		dt = 0
	}
	secs := dt / 1000
	b.Velocity = core.ClampF(b.Velocity+p.Gravity*secs, -p.MaxVelocity, p.MaxVelocity)
	b.Y = core.ClampF(b.Y+b.Velocity*secs, p.Radius, p.GroundY-p.Radius)
	b.Rotation = rotationFor(b.Velocity)
	return b
}

// Jump snaps the bird upward by JumpHeight, never above TopBound, and zeroes
// its velocity. This is a position snap, not an impulse.
func (p Physics) Jump(b Bird) Bird {
	b.Y = math.Max(p.TopBound, b.Y-p.JumpHeight)
	b.Velocity = 0
	b.Rotation = jumpRotation
	return b
}

func rotationFor(velocity float64) float64 {
	return core.ClampF(velocity*rotationGain, minRotation, maxRotation)
}
