package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/simulation"
)

// stubTiles returns every rect as "near"; enough for single-screen scenarios.
type stubTiles []geom.Rect

func (s stubTiles) SolidRectsNear(geom.Vec2) []geom.Rect { return s }

func (s stubTiles) IsSolid(p geom.Vec2) bool {
	for _, r := range s {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

func (s stubTiles) HasSolidAbove(geom.Vec2) bool { return false }

func tile(cx, cy int) geom.Rect {
	return geom.Rect{X: float64(cx * 16), Y: float64(cy * 16), W: 16, H: 16}
}

func newResolver() *Resolver {
	return NewResolver(simulation.DefaultConfig().Physics)
}

func TestMoveLandsOnFloor(t *testing.T) {
	r := newResolver()
	floor := stubTiles{tile(0, 2), tile(1, 2)}
	b := &Body{Pos: geom.V(4, 12), Vel: geom.V(0, 5), Size: geom.V(16, 16)}

	flags := r.Move(b, geom.Vec2{}, floor)

	assert.True(t, flags.Down)
	assert.Equal(t, 16.0, b.Pos.Y(), "bottom edge clamped to the tile top")
	assert.Equal(t, 0.0, b.Vel.Y(), "landing resets vertical velocity")
	assert.Equal(t, flags, b.Collisions)
}

func TestMoveStationaryOnGroundStaysPut(t *testing.T) {
	r := newResolver()
	floor := stubTiles{tile(0, 2)}
	b := &Body{Pos: geom.V(0, 16), Size: geom.V(16, 16)}

	downs := 0
	for i := 0; i < 6; i++ {
		if r.Move(b, geom.Vec2{}, floor).Down {
			downs++
			assert.Equal(t, 16.0, b.Pos.Y(), "tick %d", i)
		}
	}
	// Resting velocity is zero, so contact is re-established every other tick.
	assert.Equal(t, 3, downs)
}

func TestMoveHorizontalWallClamps(t *testing.T) {
	r := newResolver()
	wall := stubTiles{tile(2, 0)}

	right := &Body{Pos: geom.V(14, 0), Size: geom.V(16, 16)}
	flags := r.Move(right, geom.V(2.5, 0), wall)
	assert.True(t, flags.Right)
	assert.Equal(t, 16.0, right.Pos.X())
	assert.False(t, right.FacingLeft)

	left := &Body{Pos: geom.V(50, 0), Size: geom.V(16, 16)}
	flags = r.Move(left, geom.V(-3, 0), wall)
	assert.True(t, flags.Left)
	assert.Equal(t, 48.0, left.Pos.X())
	assert.True(t, left.FacingLeft)
}

func TestMoveSlidesDownWall(t *testing.T) {
	r := newResolver()
	wall := stubTiles{tile(1, 0), tile(1, 1), tile(1, 2)}
	b := &Body{Pos: geom.V(0, 0), Vel: geom.V(0, 3), Size: geom.V(16, 16)}

	flags := r.Move(b, geom.V(2, 0), wall)

	assert.True(t, flags.Right)
	assert.False(t, flags.Down, "pressing into a wall does not catch the corner")
	assert.Equal(t, 3.0, b.Pos.Y())
}

func TestMoveHeadBumpResetsVelocity(t *testing.T) {
	r := newResolver()
	ceiling := stubTiles{tile(0, 0)}
	b := &Body{Pos: geom.V(0, 17), Vel: geom.V(0, -3), Size: geom.V(16, 16)}

	flags := r.Move(b, geom.Vec2{}, ceiling)

	assert.True(t, flags.Up)
	assert.Equal(t, 16.0, b.Pos.Y())
	assert.Equal(t, 0.0, b.Vel.Y())
}

func TestGravityCapsAtTerminalVelocity(t *testing.T) {
	r := newResolver()
	b := &Body{Size: geom.V(16, 16), Vel: geom.V(0, 4.95)}

	r.Move(b, geom.Vec2{}, stubTiles{})
	assert.Equal(t, 5.0, b.Vel.Y())

	r.Move(b, geom.Vec2{}, stubTiles{})
	assert.Equal(t, 5.0, b.Vel.Y())
}

func TestFacingPersistsOnZeroInput(t *testing.T) {
	r := newResolver()
	b := &Body{Size: geom.V(16, 16)}

	r.Move(b, geom.V(-1, 0), stubTiles{})
	assert.True(t, b.FacingLeft)
	r.Move(b, geom.Vec2{}, stubTiles{})
	assert.True(t, b.FacingLeft)
	assert.Equal(t, -1.0, b.Facing())
}

func TestNonFiniteVelocityIsReset(t *testing.T) {
	r := newResolver()
	b := &Body{Pos: geom.V(10, 10), Vel: geom.V(math.NaN(), 0), Size: geom.V(16, 16)}

	r.Move(b, geom.Vec2{}, stubTiles{})

	assert.True(t, geom.Finite(b.Pos))
	assert.Equal(t, 10.0, b.Pos.X())
}
