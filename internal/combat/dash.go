package combat

import (
	"chosenoffset.com/soulsworn/internal/entity"
	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/simulation"
)

// DashStrike settles a dashing player ramming into targets.
type DashStrike struct {
	FX           *feedback.Emitter
	HeavyDivisor int
	HeavyBounce  float64
}

// NewDashStrike creates the dash pass.
func NewDashStrike(cfg *simulation.Config, fx *feedback.Emitter) *DashStrike {
	return &DashStrike{
		FX:           fx,
		HeavyDivisor: cfg.Player.DashWallDivisor,
		HeavyBounce:  cfg.Player.DashHeavyBounce,
	}
}

// Resolve strikes every live target the player's box overlaps while a dash
// is underway. Light targets take their full health; heavy ones a fraction.
// Each strike bounces the player back, harder off a heavy target that
// survives. It returns the number of targets struck.
func (d *DashStrike) Resolve(p *entity.Player, foes Field) int {
	if !p.Kit.Dash.Active() {
		return 0
	}
	box := p.Rect()
	struck := 0
	for _, g := range foes {
		heavy := classRules[g.Class].heavy
		for _, t := range g.Members {
			if t.IsDead() || !box.Overlaps(t.HitRegion()) {
				continue
			}
			struck++

			amount := t.MaxHealth()
			if heavy {
				amount = t.MaxHealth() / d.HeavyDivisor
			}
			t.TakeDamage(amount)
			t.MarkHit()
			lethal := t.IsDead()

			d.FX.Play(feedback.SoundDashHit, classRules[g.Class].hurt)
			if lethal && heavy {
				d.FX.Play(classRules[g.Class].dead)
			}
			d.FX.Impact(p.Center())

			if heavy && !lethal {
				p.Bounce(d.HeavyBounce)
			} else {
				p.Bounce(1)
			}
		}
	}
	return struck
}
