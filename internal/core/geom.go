// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an integer cell rectangle on the screen buffer.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in playfield units (pixels).
// Simulation runs in continuous space; only rendering snaps to cells.
type Box struct {
	Left, Top, Right, Bottom float64
}

// BoxAround returns the box of half-extent r centered on (x, y).
func BoxAround(x, y, r float64) Box {
	return Box{Left: x - r, Top: y - r, Right: x + r, Bottom: y + r}
}

// OverlapsX reports whether the horizontal extents strictly overlap.
// Touching edges do not count.
func (b Box) OverlapsX(left, right float64) bool {
	return b.Right > left && b.Left < right
}

// WithinY reports whether the vertical extent lies fully inside [top, bottom].
func (b Box) WithinY(top, bottom float64) bool {
	return b.Top >= top && b.Bottom <= bottom
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
