package entity

import (
	"math"

	"chosenoffset.com/soulsworn/internal/anim"
	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/simulation"
)

// UfoState is the aerial hazard's behavior state.
type UfoState int

// Aerial hazard states
const (
	Hovering UfoState = iota
	Attacking
	Retreating
)

func (s UfoState) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case Attacking:
		return "attacking"
	case Retreating:
		return "retreating"
	default:
		return "unknown"
	}
}

// Ufo floats freely, dives at the player when close and flees for a while
// after contact or when the player gets away.
type Ufo struct {
	Base
	Vitals

	State UfoState

	cfg          simulation.UfoConfig
	retreatUntil int64
	redirectAt   int64
}

// NewUfo creates a hovering ufo.
func NewUfo(pos geom.Vec2, cfg *simulation.Config) *Ufo {
	uc := cfg.Ufo
	return &Ufo{
		Base:   newBase(KindUfo, pos, geom.V(uc.Size.W, uc.Size.H)),
		Vitals: NewVitals(uc.MaxHealth, cfg.Feedback.FlickerFrames),
		cfg:    uc,
	}
}

// Vulnerable is always true for ufos.
func (u *Ufo) Vulnerable() bool { return true }

// TakeDamage lowers health.
func (u *Ufo) TakeDamage(amount int) bool {
	u.Damage(amount)
	return true
}

// RetreatUntil returns the retreat deadline.
func (u *Ufo) RetreatUntil() int64 {
	return u.retreatUntil
}

// Repel forces a retreat and arms the deadline, whatever the current state.
func (u *Ufo) Repel(now int64) {
	u.State = Retreating
	u.retreatUntil = now + u.cfg.RetreatMS
	u.redirectAt = 0
}

// Think runs one transition check and one motion step. player is the
// target; the ufo holds off while the player is invulnerable.
func (u *Ufo) Think(env *Env, player *Player) {
	u.TickFlicker()

	toPlayer := player.Pos.Sub(u.Pos)
	dist := toPlayer.Len()

	switch {
	case u.State == Hovering && dist <= u.cfg.NearDistance:
		u.State = Attacking
	case u.State == Attacking && (dist > u.cfg.FarDistance || u.retreatUntil > env.Now):
		u.Repel(env.Now)
	case u.State == Retreating && env.Now > u.retreatUntil:
		u.State = Hovering
	}

	switch u.State {
	case Hovering:
		u.Pos[1] += math.Sin(float64(env.Now)/u.cfg.HoverPeriodMS) * u.cfg.HoverAmplitude
	case Attacking:
		if player.Vulnerable() {
			angle := math.Atan2(toPlayer.Y(), toPlayer.X())
			u.Vel = geom.V(math.Cos(angle), math.Sin(angle)).Mul(u.cfg.AttackSpeed)
			u.Pos = u.Pos.Add(u.Vel)
		}
	case Retreating:
		if u.redirectAt <= env.Now {
			angle := env.Rng.Float64() * 2 * math.Pi
			u.Vel = geom.V(math.Cos(angle), math.Sin(angle)).Mul(u.cfg.RetreatSpeed)
			span := u.cfg.RedirectMaxMS - u.cfg.RedirectMinMS
			u.redirectAt = env.Now + u.cfg.RedirectMinMS + env.Rng.Int63n(span+1)
		}
		u.Pos = u.Pos.Add(u.Vel)
	}

	u.FacingLeft = u.Vel.X() < 0
}

// UpdateAction always shows idle.
func (u *Ufo) UpdateAction(src anim.Source) {
	u.SetAction(src, anim.Idle)
}

// Wall is the large drifting hazard. Its hit region is far taller than
// its sprite.
type Wall struct {
	Base
	Vitals

	cfg simulation.WallConfig
}

// NewWall creates a wall drifting at the configured speed.
func NewWall(pos geom.Vec2, cfg *simulation.Config) *Wall {
	wc := cfg.Wall
	w := &Wall{
		Base:   newBase(KindWall, pos, geom.V(wc.Size.W, wc.Size.H)),
		Vitals: NewVitals(wc.MaxHealth, cfg.Feedback.FlickerFrames),
		cfg:    wc,
	}
	w.Vel = geom.V(wc.Drift, 0)
	return w
}

// Vulnerable is always true for walls.
func (w *Wall) Vulnerable() bool { return true }

// TakeDamage lowers health.
func (w *Wall) TakeDamage(amount int) bool {
	w.Damage(amount)
	return true
}

// HitRegion is the tall contact box anchored at the wall's position.
func (w *Wall) HitRegion() geom.Rect {
	return geom.RectAt(w.Pos, geom.V(w.cfg.HitRegion.W, w.cfg.HitRegion.H))
}

// Drift moves the wall one tick. Walls ignore tiles.
func (w *Wall) Drift() {
	w.TickFlicker()
	w.Pos = w.Pos.Add(w.Vel)
	w.FacingLeft = w.Vel.X() < 0
}

// UpdateAction always shows idle.
func (w *Wall) UpdateAction(src anim.Source) {
	w.SetAction(src, anim.Idle)
}
