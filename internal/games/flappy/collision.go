package flappy

import "github.com/vovakirdan/flaptrivia/internal/config"

// Collider checks the bird against the playfield bounds and pipes.
type Collider struct {
	Radius    float64
	GroundY   float64
	PipeWidth float64
}

// NewCollider derives collision parameters from cfg.
func NewCollider(cfg config.GameConfig) Collider {
	return Collider{
		Radius:    cfg.Bird.Radius(),
		GroundY:   cfg.Playfield.GroundY(),
		PipeWidth: cfg.Obstacles.Width,
	}
}

// Check reports whether b touches a boundary or any pipe. The first hit
// short-circuits.
func (c Collider) Check(b Bird, pipes []Pipe) bool {
	if c.HitsBounds(b) {
		return true
	}
	for _, p := range pipes {
		if c.HitsPipe(b, p) {
			return true
		}
	}
	return false
}

// HitsBounds reports whether the bird reaches the ceiling or the ground.
// Touching counts.
func (c Collider) HitsBounds(b Bird) bool {
	box := b.Box(c.Radius)
	return box.Top <= 0 || box.Bottom >= c.GroundY
}

// HitsPipe reports whether the bird overlaps p horizontally while sticking
// out of the gap vertically.
func (c Collider) HitsPipe(b Bird, p Pipe) bool {
	box := b.Box(c.Radius)
	if !box.OverlapsX(p.X, p.X+c.PipeWidth) {
		return false
	}
	return !box.WithinY(p.TopHeight, p.BottomY)
}
