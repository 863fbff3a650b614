package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/flaptrivia/internal/config"
)

// framesPerSecond is the reference rate pipe speed is expressed in.
const framesPerSecond = 60

// Pipe represents a vertical obstacle with a gap for the bird to pass through.
type Pipe struct {
	ID        uint64  // Sequential within a session
	X         float64 // Left edge
	TopHeight float64 // Bottom of the upper pipe, top of the gap
	BottomY   float64 // Top of the lower pipe, TopHeight + gap
	Passed    bool    // Set once when the bird clears the trailing edge
}

// PipeField handles spawning, movement, scoring and removal of pipes.
type PipeField struct {
	pipes    []Pipe
	rng      *rand.Rand
	nextID   uint64
	spawnAcc float64

	width        float64
	gap          float64
	minHeight    float64
	spawnX       float64
	removeMargin float64
	interval     float64
	maxFrames    float64
	groundY      float64
	speed        float64
}

// NewPipeField creates a pipe field seeded with seed.
func NewPipeField(cfg config.GameConfig, seed int64) *PipeField {
	f := &PipeField{
		pipes:        make([]Pipe, 0, 8),
		width:        cfg.Obstacles.Width,
		gap:          cfg.Obstacles.Gap,
		minHeight:    cfg.Obstacles.MinHeight,
		spawnX:       cfg.Playfield.Width + cfg.Obstacles.SpawnOffset,
		removeMargin: cfg.Obstacles.RemoveMargin,
		interval:     float64(cfg.Obstacles.SpawnInterval),
		maxFrames:    cfg.Obstacles.MaxStepFrames,
		groundY:      cfg.Playfield.GroundY(),
		speed:        cfg.Active.PipeSpeed,
	}
	f.Reset(seed)
	return f
}

// Reset clears all pipes, restarts ids and reseeds the generator.
func (f *PipeField) Reset(seed int64) {
	f.rng = rand.New(rand.NewSource(seed))
	f.nextID = 0
	f.Clear()
}

// Clear removes every pipe and restarts the spawn timer. The generator and
// id sequence continue.
func (f *PipeField) Clear() {
	f.pipes = f.pipes[:0]
	f.spawnAcc = 0
}

// Spawn appends a pipe at the right edge with a uniformly random gap in
// [minHeight, groundY - gap - minHeight].
func (f *PipeField) Spawn() Pipe {
	span := f.groundY - f.gap - 2*f.minHeight
	top := f.minHeight + f.rng.Float64()*span
	f.nextID++
	p := Pipe{
		ID:        f.nextID,
		X:         f.spawnX,
		TopHeight: top,
		BottomY:   top + f.gap,
	}
	f.pipes = append(f.pipes, p)
	return p
}

// Tick accumulates dt milliseconds of playing time and spawns a pipe once a
// full interval has built up. At most one pipe spawns per call and the timer
// restarts from zero, so a long tick never stacks pipes on the same X.
// Returns the number of pipes spawned.
func (f *PipeField) Tick(dt float64) int {
	if dt <= 0 {
		return 0
	}
	f.spawnAcc += dt
	if f.spawnAcc < f.interval {
		return 0
	}
	f.spawnAcc = 0
	f.Spawn()
	return 1
}

// Advance moves every pipe left by speed scaled to dt, marks pipes the bird
// at birdX has cleared and prunes pipes past the left margin. Returns the
// number of pipes newly passed this call.
func (f *PipeField) Advance(dt, birdX float64) int {
	if dt < 0 {
		dt = 0
	}
	dx := f.speed * math.Min(dt/1000*framesPerSecond, f.maxFrames)

	passed := 0
	kept := f.pipes[:0]
	for _, p := range f.pipes {
		p.X -= dx
		if !p.Passed && birdX > p.X+f.width {
			p.Passed = true
			passed++
		}
		if p.X > -f.removeMargin {
			kept = append(kept, p)
		}
	}
	f.pipes = kept
	return passed
}

// Pipes returns a copy of the live pipes, oldest first.
func (f *PipeField) Pipes() []Pipe {
	return append([]Pipe(nil), f.pipes...)
}

// Len returns the number of live pipes.
func (f *PipeField) Len() int {
	return len(f.pipes)
}

// Restore replaces the live pipes with a copy of pipes and restarts the
// spawn timer. Later spawns get ids above every restored pipe.
func (f *PipeField) Restore(pipes []Pipe) {
	f.pipes = append(f.pipes[:0], pipes...)
	f.spawnAcc = 0
	for _, p := range pipes {
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
	}
}

// Width returns the configured pipe width.
func (f *PipeField) Width() float64 {
	return f.width
}
