// Package physics moves bodies through the tile grid one axis at a time.
package physics

import (
	"math"

	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/invariant"
	"chosenoffset.com/soulsworn/internal/simulation"
)

// Tiles is the solid geometry a body collides with.
type Tiles interface {
	// SolidRectsNear returns the solid tiles in the neighborhood of pos.
	SolidRectsNear(pos geom.Vec2) []geom.Rect
	// IsSolid reports whether p lies inside a solid tile.
	IsSolid(p geom.Vec2) bool
	// HasSolidAbove reports whether a solid tile sits directly above p.
	HasSolidAbove(p geom.Vec2) bool
}

// Flags records which sides of a body hit solid geometry during the last move.
type Flags struct {
	Up, Down, Left, Right bool
}

// Body is the physical facet shared by every simulated entity.
type Body struct {
	Pos        geom.Vec2
	Vel        geom.Vec2
	Size       geom.Vec2
	FacingLeft bool
	Collisions Flags
}

// Rect returns the physics box.
func (b *Body) Rect() geom.Rect {
	return geom.RectAt(b.Pos, b.Size)
}

// Center returns the middle of the physics box.
func (b *Body) Center() geom.Vec2 {
	return b.Rect().Center()
}

// Facing returns -1 when the body faces left and 1 otherwise.
func (b *Body) Facing() float64 {
	if b.FacingLeft {
		return -1
	}
	return 1
}

// Resolver applies displacement, tile collision and gravity.
type Resolver struct {
	Gravity          float64
	TerminalVelocity float64
}

// NewResolver creates a resolver from the physics rules.
func NewResolver(cfg simulation.PhysicsConfig) *Resolver {
	return &Resolver{
		Gravity:          cfg.Gravity,
		TerminalVelocity: cfg.TerminalVelocity,
	}
}

// Move displaces b by input plus its own velocity and resolves penetration
// against the solid tiles, horizontal axis first. Zero displacement still
// runs the full resolve so gravity and flags stay current.
func (r *Resolver) Move(b *Body, input geom.Vec2, tiles Tiles) Flags {
	if !invariant.Check(geom.Finite(b.Vel), "non-finite velocity %v", b.Vel) {
		b.Vel = geom.Vec2{}
	}
	if !invariant.Check(geom.Finite(input), "non-finite input %v", input) {
		input = geom.Vec2{}
	}

	var flags Flags
	d := input.Add(b.Vel)

	b.Pos[0] += d.X()
	box := b.Rect()
	for _, tile := range tiles.SolidRectsNear(b.Pos) {
		if !box.Overlaps(tile) {
			continue
		}
		if d.X() > 0 {
			box.X = tile.Left() - box.W
			flags.Right = true
		} else if d.X() < 0 {
			box.X = tile.Right()
			flags.Left = true
		}
		b.Pos[0] = box.X
	}

	b.Pos[1] += d.Y()
	box = b.Rect()
	for _, tile := range tiles.SolidRectsNear(b.Pos) {
		if !box.Overlaps(tile) {
			continue
		}
		if d.Y() > 0 {
			box.Y = tile.Top() - box.H
			flags.Down = true
		} else if d.Y() < 0 {
			box.Y = tile.Bottom()
			flags.Up = true
		}
		b.Pos[1] = box.Y
	}

	if input.X() > 0 {
		b.FacingLeft = false
	} else if input.X() < 0 {
		b.FacingLeft = true
	}

	b.Vel[1] = math.Min(r.TerminalVelocity, b.Vel.Y()+r.Gravity)
	if flags.Down || flags.Up {
		b.Vel[1] = 0
	}

	b.Collisions = flags
	return flags
}
