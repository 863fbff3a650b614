package flappy

import (
	"testing"

	"github.com/vovakirdan/flaptrivia/internal/config"
)

func TestCollision(t *testing.T) {
	c := NewCollider(config.DefaultGameConfig())
	pipe := Pipe{ID: 1, X: 90, TopHeight: 200, BottomY: 350}

	tests := []struct {
		name  string
		bird  Bird
		pipes []Pipe
		want  bool
	}{
		{"open sky", Bird{X: 100, Y: 250}, nil, false},
		{"on the ground", Bird{X: 100, Y: 535}, nil, true},
		{"below ground", Bird{X: 100, Y: 560}, nil, true},
		{"touching ceiling", Bird{X: 100, Y: 15}, nil, true},
		{"just under ceiling", Bird{X: 100, Y: 16}, nil, false},
		{"inside gap", Bird{X: 100, Y: 275}, []Pipe{pipe}, false},
		{"gap edges inclusive", Bird{X: 100, Y: 215}, []Pipe{pipe}, false},
		{"clips top pipe", Bird{X: 100, Y: 210}, []Pipe{pipe}, true},
		{"clips bottom pipe", Bird{X: 100, Y: 340}, []Pipe{pipe}, true},
		{"pipe ahead", Bird{X: 100, Y: 100}, []Pipe{{X: 115, TopHeight: 200, BottomY: 350}}, false},
		{"pipe front edge overlaps", Bird{X: 100, Y: 100}, []Pipe{{X: 114, TopHeight: 200, BottomY: 350}}, true},
		{"pipe behind", Bird{X: 100, Y: 100}, []Pipe{{X: 25, TopHeight: 200, BottomY: 350}}, false},
		{"second pipe hits", Bird{X: 100, Y: 100}, []Pipe{{X: 300, TopHeight: 50, BottomY: 200}, pipe}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Check(tt.bird, tt.pipes); got != tt.want {
				t.Errorf("Check() = %v, expected %v", got, tt.want)
			}
		})
	}
}
