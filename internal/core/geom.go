// Package core holds the platform types shared by the game and its hosts:
// geometry, colors, the screen buffer and input frames. It has no
// dependency on Bubble Tea so game logic stays pure and testable.
package core

import "math"

// Rect is an integer cell rectangle used for screen drawing.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Box is an axis-aligned box in continuous world coordinates.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// CenteredBox builds the square box of side size centred on (x, y).
func CenteredBox(x, y, size float64) Box {
	half := size / 2
	return Box{MinX: x - half, MinY: y - half, MaxX: x + half, MaxY: y + half}
}

// Intersects reports whether two boxes overlap with positive area.
// Boxes that only share an edge or corner do not intersect.
func (b Box) Intersects(o Box) bool {
	return b.MinX < o.MaxX && o.MinX < b.MaxX &&
		b.MinY < o.MaxY && o.MinY < b.MaxY
}

// Width returns the horizontal extent.
func (b Box) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent.
func (b Box) Height() float64 {
	return b.MaxY - b.MinY
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
