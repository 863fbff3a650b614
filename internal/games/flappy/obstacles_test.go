package flappy

import (
	"testing"

	"github.com/vovakirdan/flaptrivia/internal/config"
)

func TestSpawnRespectsGapBounds(t *testing.T) {
	cfg := config.DefaultGameConfig()
	maxBottom := cfg.Playfield.Height - cfg.Playfield.GroundHeight - cfg.Obstacles.MinHeight

	for seed := int64(0); seed < 20; seed++ {
		f := NewPipeField(cfg, seed)
		for i := 0; i < 50; i++ {
			p := f.Spawn()
			if p.TopHeight < cfg.Obstacles.MinHeight {
				t.Fatalf("seed %d: TopHeight %g below min %g", seed, p.TopHeight, cfg.Obstacles.MinHeight)
			}
			if p.BottomY != p.TopHeight+cfg.Obstacles.Gap {
				t.Fatalf("seed %d: BottomY %g, expected TopHeight %g + gap %g", seed, p.BottomY, p.TopHeight, cfg.Obstacles.Gap)
			}
			if p.BottomY > maxBottom {
				t.Fatalf("seed %d: BottomY %g exceeds %g", seed, p.BottomY, maxBottom)
			}
			if p.X != 450 {
				t.Fatalf("spawn X = %g, expected 450", p.X)
			}
		}
	}
}

func TestSpawnIDsAreSequential(t *testing.T) {
	f := NewPipeField(config.DefaultGameConfig(), 1)
	for want := uint64(1); want <= 5; want++ {
		if got := f.Spawn().ID; got != want {
			t.Fatalf("ID = %d, expected %d", got, want)
		}
	}

	f.Clear()
	if got := f.Spawn().ID; got != 6 {
		t.Errorf("Clear should keep the id sequence, got %d", got)
	}

	f.Reset(1)
	if got := f.Spawn().ID; got != 1 {
		t.Errorf("Reset should restart ids, got %d", got)
	}
}

func TestTickCadence(t *testing.T) {
	f := NewPipeField(config.DefaultGameConfig(), 1)

	if n := f.Tick(1999); n != 0 {
		t.Errorf("Tick(1999) spawned %d, expected 0", n)
	}
	if n := f.Tick(1); n != 1 {
		t.Errorf("Tick(1) spawned %d, expected 1", n)
	}
	if n := f.Tick(1999); n != 0 {
		t.Errorf("timer should restart after a spawn, Tick(1999) spawned %d", n)
	}
	if n := f.Tick(1); n != 1 {
		t.Errorf("Tick(1) spawned %d, expected 1", n)
	}
	if f.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", f.Len())
	}
}

func TestTickLongIntervalSpawnsOnce(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"two intervals", 4000},
		{"five intervals", 10000},
		{"interval and a half", 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewPipeField(config.DefaultGameConfig(), 1)
			if n := f.Tick(tt.dt); n != 1 {
				t.Fatalf("Tick(%g) spawned %d, expected 1", tt.dt, n)
			}
			if f.Len() != 1 {
				t.Fatalf("Len() = %d, expected 1", f.Len())
			}
			if n := f.Tick(1999); n != 0 {
				t.Errorf("leftover time carried into the next interval: spawned %d", n)
			}
		})
	}
}

func TestAdvanceSpeedPerMode(t *testing.T) {
	tests := []struct {
		mode config.Mode
		dx   float64
	}{
		{config.ModeLenient, 2.5},
		{config.ModeHard, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			cfg := config.DefaultGameConfig()
			if err := config.ApplyMode(&cfg, tt.mode); err != nil {
				t.Fatal(err)
			}
			f := NewPipeField(cfg, 1)
			f.Restore([]Pipe{{ID: 1, X: 300}})

			f.Advance(1000.0/60, 0)
			if got := 300 - f.Pipes()[0].X; got < tt.dx-1e-9 || got > tt.dx+1e-9 {
				t.Errorf("moved %g, expected %g", got, tt.dx)
			}

			// Long stalls are capped at three frames of movement.
			f.Restore([]Pipe{{ID: 1, X: 300}})
			f.Advance(5000, 0)
			if got := 300 - f.Pipes()[0].X; got != 3*tt.dx {
				t.Errorf("stall moved %g, expected %g", got, 3*tt.dx)
			}
		})
	}
}

func TestAdvanceTwoPassesInOneTick(t *testing.T) {
	f := NewPipeField(config.DefaultGameConfig(), 1)
	// Bird at x=100 passes a pipe once pipe.X+60 < 100.
	f.Restore([]Pipe{{ID: 1, X: 41}, {ID: 2, X: 45}, {ID: 3, X: 200}})

	if got := f.Advance(5000, 100); got != 2 {
		t.Fatalf("Advance passed %d pipes, expected 2", got)
	}
	if got := f.Advance(5000, 100); got != 0 {
		t.Errorf("already passed pipes scored again: %d", got)
	}

	passed := 0
	for _, p := range f.Pipes() {
		if p.Passed {
			passed++
		}
	}
	if passed != 2 {
		t.Errorf("%d pipes flagged passed, expected 2", passed)
	}
}

func TestAdvanceScoresEachPipeOnce(t *testing.T) {
	f := NewPipeField(config.DefaultGameConfig(), 9)
	f.Spawn()

	total := 0
	for i := 0; i < 2000; i++ {
		f.Tick(1000.0 / 60)
		total += f.Advance(1000.0/60, 100)
	}

	// Every pipe that has left the field was passed exactly once.
	spawned := int(f.nextID)
	onField := 0
	for _, p := range f.Pipes() {
		if !p.Passed {
			onField++
		}
	}
	if total != spawned-onField {
		t.Errorf("score %d, expected %d (spawned %d, unpassed %d)", total, spawned-onField, spawned, onField)
	}
}

func TestAdvancePrunesOffscreen(t *testing.T) {
	f := NewPipeField(config.DefaultGameConfig(), 1)
	f.Restore([]Pipe{{ID: 1, X: -78}, {ID: 2, X: 100}})

	f.Advance(1000.0/60, 100)
	pipes := f.Pipes()
	if len(pipes) != 1 || pipes[0].ID != 2 {
		t.Errorf("expected only pipe 2 to survive, got %+v", pipes)
	}
}

func TestRestoreContinuesIDs(t *testing.T) {
	f := NewPipeField(config.DefaultGameConfig(), 1)
	f.Restore([]Pipe{{ID: 7, X: 10}})

	if got := f.Spawn().ID; got != 8 {
		t.Errorf("ID after restore = %d, expected 8", got)
	}
}
