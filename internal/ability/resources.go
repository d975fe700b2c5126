package ability

import "chosenoffset.com/soulsworn/internal/geom"

// Jumps are refilled to Capacity on a ground-contact tick.
type Jumps struct {
	Capacity  int
	Available int
}

// Use spends one jump.
func (j *Jumps) Use() bool {
	if j.Available <= 0 {
		return false
	}
	j.Available--
	return true
}

// Refill restores every charge.
func (j *Jumps) Refill() {
	j.Available = j.Capacity
}

// ShotPool is a burst of ranged shots sharing one recharge. The pool refills
// to Capacity once the cooldown has elapsed since the last cast.
type ShotPool struct {
	Capacity  int
	Available int
	lastCast  Cooldown
}

// NewShotPool creates an empty pool.
func NewShotPool(cooldownMS int64) ShotPool {
	return ShotPool{lastCast: Cooldown{PeriodMS: cooldownMS}}
}

// Refresh refills the pool when the recharge is complete.
func (p *ShotPool) Refresh(now int64) {
	elapsed, cast := p.lastCast.Elapsed(now)
	if !cast || elapsed > p.lastCast.PeriodMS {
		p.Available = p.Capacity
	}
}

// Take spends one shot and restarts the recharge.
func (p *ShotPool) Take(now int64) bool {
	if p.Available <= 0 {
		return false
	}
	p.Available--
	p.lastCast.Trigger(now)
	return true
}

// SetCapacity changes the burst size and tops the pool up.
func (p *ShotPool) SetCapacity(n int) {
	p.Capacity = n
	p.Available = n
}

// Reset empties the pool and forgets the recharge.
func (p *ShotPool) Reset() {
	p.Capacity = 0
	p.Available = 0
	p.lastCast.Reset()
}

// Invulnerability blocks damage while active. It counts down once per tick
// and is never extended by damage attempts.
type Invulnerability struct {
	remaining int
	active    bool
}

// Grant starts a window of frames ticks, replacing any current one.
func (v *Invulnerability) Grant(frames int) {
	v.active = frames > 0
	v.remaining = frames
}

// Active reports whether damage is currently blocked.
func (v *Invulnerability) Active() bool {
	return v.active
}

// Remaining returns the ticks left in the window.
func (v *Invulnerability) Remaining() int {
	return v.remaining
}

// Tick advances the window by one frame.
func (v *Invulnerability) Tick() {
	if !v.active {
		return
	}
	v.remaining--
	if v.remaining <= 0 {
		v.remaining = 0
		v.active = false
	}
}

// Clear ends the window immediately.
func (v *Invulnerability) Clear() {
	v.remaining = 0
	v.active = false
}

// Knockback overrides movement for a number of frames with a velocity that
// decays geometrically.
type Knockback struct {
	Decay     float64
	vel       geom.Vec2
	remaining int
}

// Apply replaces any current knockback.
func (k *Knockback) Apply(force geom.Vec2, frames int) {
	k.vel = force
	k.remaining = frames
}

// Active reports whether the override is in effect.
func (k *Knockback) Active() bool {
	return k.remaining > 0
}

// Velocity returns the displacement the next Step will yield.
func (k *Knockback) Velocity() geom.Vec2 {
	return k.vel
}

// Step returns this tick's displacement and decays the override.
func (k *Knockback) Step() geom.Vec2 {
	if k.remaining <= 0 {
		return geom.Vec2{}
	}
	v := k.vel
	k.vel = k.vel.Mul(k.Decay)
	k.remaining--
	if k.remaining == 0 {
		k.vel = geom.Vec2{}
	}
	return v
}

// Clear cancels the override.
func (k *Knockback) Clear() {
	k.vel = geom.Vec2{}
	k.remaining = 0
}
