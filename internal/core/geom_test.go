package core

import "testing"

func TestBoxOverlapsX(t *testing.T) {
	b := BoxAround(100, 100, 15) // [85, 115]

	tests := []struct {
		name        string
		left, right float64
		expected    bool
	}{
		{"fully inside", 90, 110, true},
		{"partial left", 50, 90, true},
		{"partial right", 110, 170, true},
		{"touching left edge", 25, 85, false},
		{"touching right edge", 115, 175, false},
		{"far away", 200, 260, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.OverlapsX(tc.left, tc.right); got != tc.expected {
				t.Errorf("OverlapsX(%v, %v) = %v, expected %v", tc.left, tc.right, got, tc.expected)
			}
		})
	}
}

func TestBoxWithinY(t *testing.T) {
	b := BoxAround(100, 200, 15) // [185, 215]

	tests := []struct {
		name        string
		top, bottom float64
		expected    bool
	}{
		{"comfortably inside", 100, 300, true},
		{"exact fit", 185, 215, true},
		{"clips top", 190, 300, false},
		{"clips bottom", 100, 210, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.WithinY(tc.top, tc.bottom); got != tc.expected {
				t.Errorf("WithinY(%v, %v) = %v, expected %v", tc.top, tc.bottom, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMax(t *testing.T) {
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestMin(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
}
