package entity

import (
	"math"

	"chosenoffset.com/soulsworn/internal/anim"
	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/physics"
	"chosenoffset.com/soulsworn/internal/projectile"
	"chosenoffset.com/soulsworn/internal/simulation"
)

// Walker is a ground enemy that idles, wanders in bursts and shoots at the
// player when a walk ends facing them. Enemies and chickens differ only in
// tuning and what they shoot.
type Walker struct {
	Base
	Vitals

	cfg     simulation.WalkerConfig
	shot    projectile.Class
	sound   feedback.Sound
	walking int
	intent  float64
}

// NewEnemy creates a gun-toting walker.
func NewEnemy(pos geom.Vec2, cfg *simulation.Config) *Walker {
	return newWalker(KindEnemy, pos, cfg.Enemy, cfg.Feedback, projectile.EnemyShot, feedback.SoundShootProjectile)
}

// NewChicken creates an egg-laying walker.
func NewChicken(pos geom.Vec2, cfg *simulation.Config) *Walker {
	return newWalker(KindChicken, pos, cfg.Chicken, cfg.Feedback, projectile.Egg, feedback.SoundShootEgg)
}

func newWalker(kind Kind, pos geom.Vec2, wc simulation.WalkerConfig, fc simulation.FeedbackConfig, shot projectile.Class, sound feedback.Sound) *Walker {
	return &Walker{
		Base:   newBase(kind, pos, geom.V(wc.Size.W, wc.Size.H)),
		Vitals: NewVitals(wc.MaxHealth, fc.FlickerFrames),
		cfg:    wc,
		shot:   shot,
		sound:  sound,
	}
}

// Vulnerable is always true for walkers.
func (w *Walker) Vulnerable() bool { return true }

// TakeDamage lowers health.
func (w *Walker) TakeDamage(amount int) bool {
	w.Damage(amount)
	return true
}

// Walking returns the ticks left in the current walk.
func (w *Walker) Walking() int {
	return w.walking
}

// StartWalking commits to a walk of ticks frames.
func (w *Walker) StartWalking(ticks int) {
	w.walking = ticks
}

// Think runs the wander sub-state and decides this tick's movement. target
// is the player's position.
func (w *Walker) Think(env *Env, target geom.Vec2) {
	w.intent = 0
	w.TickFlicker()

	if w.walking == 0 {
		if env.Rng.Float64() < w.cfg.WanderChance {
			w.walking = w.cfg.WanderMin + env.Rng.Intn(w.cfg.WanderMax-w.cfg.WanderMin+1)
		}
		return
	}

	probe := geom.V(w.Center().X()+w.Facing()*w.cfg.ProbeAhead, w.Pos.Y()+w.cfg.ProbeBelow)
	if env.Tiles.IsSolid(probe) {
		if w.Collisions.Left || w.Collisions.Right {
			w.FacingLeft = !w.FacingLeft
		} else {
			w.intent = w.Facing() * w.cfg.WalkSpeed
		}
	} else {
		// ledge ahead
		w.FacingLeft = !w.FacingLeft
	}

	w.walking--
	if w.walking == 0 {
		w.shootAt(env, target)
	}
}

// shootAt fires one projectile if the target is inside the vertical sight
// band and on the side the walker faces.
func (w *Walker) shootAt(env *Env, target geom.Vec2) {
	d := target.Sub(w.Pos)
	if math.Abs(d.Y()) >= w.cfg.SightBand {
		return
	}
	facingTarget := (w.FacingLeft && d.X() < 0) || (!w.FacingLeft && d.X() > 0)
	if !facingTarget {
		return
	}

	c := w.Center()
	muzzle := geom.V(c.X()+w.Facing()*w.cfg.MuzzleOffset, c.Y())
	env.Shots.Fire(w.shot, muzzle, w.Facing()*env.ShotSpeed)
	env.FX.Play(w.sound)

	angle := 0.0
	if w.FacingLeft {
		angle = math.Pi
	}
	env.FX.Sparks(muzzle, angle)
}

// Move applies this tick's intent through the resolver.
func (w *Walker) Move(r *physics.Resolver, tiles physics.Tiles) physics.Flags {
	return r.Move(&w.Body, geom.V(w.intent, 0), tiles)
}

// UpdateAction picks run or idle from the walk intent.
func (w *Walker) UpdateAction(src anim.Source) {
	if w.intent != 0 {
		w.SetAction(src, anim.Run)
	} else {
		w.SetAction(src, anim.Idle)
	}
}
