package combat

import (
	"math"

	"chosenoffset.com/soulsworn/internal/entity"
	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/physics"
	"chosenoffset.com/soulsworn/internal/simulation"
)

// Contact settles hazards touching the player.
type Contact struct {
	Cfg simulation.ContactConfig
	FX  *feedback.Emitter
}

// NewContact creates the contact pass.
func NewContact(cfg *simulation.Config, fx *feedback.Emitter) *Contact {
	return &Contact{Cfg: cfg.Contact, FX: fx}
}

// Walls hurts the player for every drifting wall it overlaps and shoves it
// along the wall's drift.
func (c *Contact) Walls(p *entity.Player, walls []*entity.Wall, tiles physics.Tiles) {
	for _, w := range walls {
		if w.IsDead() || !p.Rect().Overlaps(w.HitRegion()) {
			continue
		}
		if !p.Vulnerable() {
			continue
		}
		p.TakeDamage(c.Cfg.WallDamage)
		c.FX.Play(feedback.SoundPlayerHurt)
		c.FX.Shake.Raise(c.FX.Cfg.ScreenshakeFloor)

		dir := math.Copysign(1, w.Vel.X())
		c.shove(p, geom.V(dir*c.Cfg.WallKnockbackX, c.Cfg.WallKnockbackY), tiles)
	}
}

// Ufos hurts the player for every ufo it overlaps, knocks it toward the
// ufo's side and sends the ufo into retreat.
func (c *Contact) Ufos(p *entity.Player, ufos []*entity.Ufo, tiles physics.Tiles, now int64) {
	for _, u := range ufos {
		if u.IsDead() || !p.Rect().Overlaps(u.HitRegion()) {
			continue
		}
		if !p.Vulnerable() {
			continue
		}
		p.TakeDamage(c.Cfg.UfoDamage)
		c.FX.Play(feedback.SoundUfoAttack)
		c.FX.Shake.Raise(c.FX.Cfg.ScreenshakeFloor)

		dir := 1.0
		if u.Center().X() < p.Center().X() {
			dir = -1
		}
		c.shove(p, geom.V(dir*c.Cfg.UfoKnockbackX, c.Cfg.UfoKnockbackY), tiles)
		u.Repel(now)
	}
}

// shove applies knockback unless the player is dead or pinned under a
// ceiling.
func (c *Contact) shove(p *entity.Player, force geom.Vec2, tiles physics.Tiles) {
	if p.IsDead() || tiles.HasSolidAbove(p.Pos) {
		return
	}
	p.ApplyKnockback(force, c.Cfg.KnockbackFrames)
}
