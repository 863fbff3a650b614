package flappy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/flaptrivia/internal/config"
)

func TestIntegrateOneSecond(t *testing.T) {
	tests := []struct {
		name    string
		gravity float64
		wantV   float64
		wantY   float64
	}{
		{"below max velocity", 100, 100, 350},
		{"clamped to max velocity", 7500, 150, 400},
		{"zero gravity", 0, 0, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultGameConfig()
			cfg.Physics.Gravity = tt.gravity
			p := NewPhysics(cfg)

			b := p.Integrate(Bird{X: 100, Y: 250}, 1000)
			if b.Velocity != tt.wantV {
				t.Errorf("Velocity = %g, expected %g", b.Velocity, tt.wantV)
			}
			if b.Y != tt.wantY {
				t.Errorf("Y = %g, expected %g", b.Y, tt.wantY)
			}
		})
	}
}

func TestIntegrateClampsToGround(t *testing.T) {
	p := NewPhysics(config.DefaultGameConfig())

	b := p.Integrate(Bird{X: 100, Y: 500, Velocity: 150}, 1000)
	if b.Y != 535 {
		t.Errorf("Y = %g, expected ground bound 535", b.Y)
	}
}

func TestIntegrateStaysInBounds(t *testing.T) {
	p := NewPhysics(config.DefaultGameConfig())
	rng := rand.New(rand.NewSource(3))
	b := Bird{X: 100, Y: 250}

	for i := 0; i < 5000; i++ {
		if rng.Intn(4) == 0 {
			b = p.Jump(b)
		}
		if rng.Intn(50) == 0 {
			b.Velocity = -p.MaxVelocity
		}
		b = p.Integrate(b, rng.Float64()*2000)
		if b.Y < p.Radius || b.Y > p.GroundY-p.Radius {
			t.Fatalf("step %d: Y = %g outside [%g, %g]", i, b.Y, p.Radius, p.GroundY-p.Radius)
		}
		if math.Abs(b.Velocity) > p.MaxVelocity {
			t.Fatalf("step %d: |Velocity| = %g exceeds %g", i, b.Velocity, p.MaxVelocity)
		}
	}
}

func TestIntegrateRotation(t *testing.T) {
	p := NewPhysics(config.DefaultGameConfig())

	falling := p.Integrate(Bird{X: 100, Y: 250, Velocity: 150}, 0)
	if falling.Rotation != math.Pi/2 {
		t.Errorf("falling rotation = %g, expected π/2", falling.Rotation)
	}
	rising := p.Integrate(Bird{X: 100, Y: 250, Velocity: -150}, 0)
	if rising.Rotation != -math.Pi/4 {
		t.Errorf("rising rotation = %g, expected -π/4", rising.Rotation)
	}
}

func TestJump(t *testing.T) {
	p := NewPhysics(config.DefaultGameConfig())

	b := p.Jump(Bird{X: 100, Y: 250, Velocity: 120})
	if b.Y != 232 || b.Velocity != 0 {
		t.Errorf("Jump = (Y %g, V %g), expected (232, 0)", b.Y, b.Velocity)
	}
	if b.Rotation != -math.Pi/6 {
		t.Errorf("Jump rotation = %g, expected -π/6", b.Rotation)
	}

	high := p.Jump(Bird{X: 100, Y: 30})
	if high.Y != 20 {
		t.Errorf("Jump near the top = %g, expected top bound 20", high.Y)
	}
}
