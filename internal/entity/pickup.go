package entity

import (
	"math"

	"chosenoffset.com/soulsworn/internal/anim"
	"chosenoffset.com/soulsworn/internal/geom"
)

// Pickup is a bobbing powerup consumed on contact.
type Pickup struct {
	Base

	baseY float64
	bob   float64
}

// NewPickup creates a pickup of kind at pos.
func NewPickup(kind Kind, pos geom.Vec2) *Pickup {
	return &Pickup{
		Base:  newBase(kind, pos, geom.V(16, 16)),
		baseY: pos.Y(),
	}
}

// Bob floats the pickup on a sine wave.
func (p *Pickup) Bob() {
	p.bob += 0.1
	p.Pos[1] = p.baseY + math.Sin(p.bob)*2
}

// Apply grants the pickup's ability to the player.
func (p *Pickup) Apply(player *Player) {
	switch p.Kind {
	case KindJumpPickup:
		player.GrantJump()
	case KindFireballPickup:
		player.GrantFireball()
	case KindDashPickup:
		player.GrantDash()
	case KindHealthPickup:
		player.GrantHealth()
	}
}

// UpdateAction always shows idle.
func (p *Pickup) UpdateAction(src anim.Source) {
	p.SetAction(src, anim.Idle)
}

// IsPickup reports whether k is one of the powerup kinds.
func IsPickup(k Kind) bool {
	return k >= KindJumpPickup && k <= KindHealthPickup
}
