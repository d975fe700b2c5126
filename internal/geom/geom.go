// Package geom provides the vector and rectangle types shared by the
// simulation packages.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a 2D position, velocity or force.
type Vec2 = mgl64.Vec2

// V is shorthand for building a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Finite reports whether both components are real numbers.
func Finite(v Vec2) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Coord represents a tile coordinate
type Coord struct {
	X, Y int
}

// CoordOf returns the tile containing a world point.
func CoordOf(p Vec2, tileSize float64) Coord {
	return Coord{
		X: int(math.Floor(p.X() / tileSize)),
		Y: int(math.Floor(p.Y() / tileSize)),
	}
}

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// RectAt builds a rectangle from a top-left position and a size.
func RectAt(pos, size Vec2) Rect {
	return Rect{X: pos.X(), Y: pos.Y(), W: size.X(), H: size.Y()}
}

// Left, Right, Top and Bottom return the box's edge coordinates.
func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// TopLeft returns the anchor corner.
func (r Rect) TopLeft() Vec2 {
	return Vec2{r.X, r.Y}
}

// Center returns the midpoint of the box.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Overlaps reports whether two boxes share interior area. Boxes that only
// touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether p lies inside the box. The left and top edges
// are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X() >= r.X && p.X() < r.X+r.W &&
		p.Y() >= r.Y && p.Y() < r.Y+r.H
}

// Translate returns the box moved by d.
func (r Rect) Translate(d Vec2) Rect {
	r.X += d.X()
	r.Y += d.Y()
	return r
}
