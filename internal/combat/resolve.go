package combat

import (
	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/physics"
	"chosenoffset.com/soulsworn/internal/projectile"
	"chosenoffset.com/soulsworn/internal/simulation"
)

type shotRule struct {
	hostile bool           // hits the player instead of the field
	tile    feedback.Sound // struck a solid tile
	impact  feedback.Sound // struck a target; empty means the target's blade sound
}

var shotRules = map[projectile.Class]shotRule{
	projectile.EnemyShot: {hostile: true, tile: feedback.SoundProjectileHit, impact: feedback.SoundProjectileHit},
	projectile.Fireball:  {tile: feedback.SoundFireballHit, impact: feedback.SoundFireballHit},
	projectile.Sword:     {tile: feedback.SoundSwordHitTile},
	projectile.Egg:       {hostile: true, tile: feedback.SoundEggHit, impact: feedback.SoundEggHit},
}

// Resolver advances projectiles and settles what they hit.
type Resolver struct {
	FX           *feedback.Emitter
	Rules        simulation.ProjectileConfig
	HeavyDivisor int
	PlayerDamage int
}

// NewResolver creates a projectile resolver from the rules.
func NewResolver(cfg *simulation.Config, fx *feedback.Emitter) *Resolver {
	return &Resolver{
		FX:           fx,
		Rules:        cfg.Projectiles,
		HeavyDivisor: cfg.Player.DashWallDivisor,
		PlayerDamage: 1,
	}
}

// Resolve runs one pass over every projectile class in order.
func (r *Resolver) Resolve(shots *projectile.Set, tiles physics.Tiles, player Target, foes Field) {
	for _, c := range projectile.Classes {
		r.ResolveClass(c, shots.List(c), tiles, player, foes)
	}
}

// ResolveClass advances every projectile in list once. A tile hit wins over
// expiry, and expiry wins over striking a target. Each projectile strikes
// at most one target and leaves the list before the next one moves.
func (r *Resolver) ResolveClass(c projectile.Class, list *projectile.List, tiles physics.Tiles, player Target, foes Field) {
	rule := shotRules[c]
	rules := projectile.RulesFor(r.Rules, c)

	for _, p := range list.Snapshot() {
		p.Advance(rules)

		if tiles.IsSolid(p.Pos) {
			list.Remove(p)
			r.FX.Play(rule.tile)
			r.FX.Sparks(p.Pos, recoil(p.Dir))
			continue
		}
		if p.Age > rules.MaxAge {
			list.Remove(p)
			continue
		}

		if rule.hostile {
			r.strikePlayer(rule, list, p, player)
		} else {
			r.strikeField(rule, list, p, foes)
		}
	}
}

func (r *Resolver) strikePlayer(rule shotRule, list *projectile.List, p *projectile.Projectile, player Target) {
	if player == nil || player.IsDead() || !player.Vulnerable() {
		return
	}
	box := player.HitRegion()
	if !box.Contains(p.Pos) {
		return
	}
	list.Remove(p)
	player.TakeDamage(r.PlayerDamage)
	r.FX.Play(rule.impact, feedback.SoundPlayerHurt)
	r.FX.Impact(box.Center())
}

func (r *Resolver) strikeField(rule shotRule, list *projectile.List, p *projectile.Projectile, foes Field) {
	for _, g := range foes {
		for _, t := range g.Members {
			if t.IsDead() || !t.HitRegion().Contains(p.Pos) {
				continue
			}
			list.Remove(p)
			t.TakeDamage(damageFor(g.Class, t, r.HeavyDivisor))
			t.MarkHit()
			lethal := t.IsDead()

			impact := rule.impact
			if impact == "" {
				impact = classRules[g.Class].blade
			}
			r.FX.Play(impact, hitSound(g.Class, lethal))
			if lethal {
				r.FX.Impact(t.HitRegion().Center())
			} else {
				r.FX.Sparks(p.Pos, recoil(p.Dir))
			}
			return
		}
	}
}
