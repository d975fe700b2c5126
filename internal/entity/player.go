package entity

import (
	"chosenoffset.com/soulsworn/internal/ability"
	"chosenoffset.com/soulsworn/internal/anim"
	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/physics"
	"chosenoffset.com/soulsworn/internal/projectile"
	"chosenoffset.com/soulsworn/internal/simulation"
)

// Player is the only Abled entity.
type Player struct {
	Base
	Vitals
	ability.Kit

	AirTime int

	cfg       simulation.PlayerConfig
	jumpGrace int
	inputX    float64
}

// NewPlayer creates a player at pos with no abilities granted.
func NewPlayer(pos geom.Vec2, cfg *simulation.Config) *Player {
	pc := cfg.Player
	return &Player{
		Base:      newBase(KindPlayer, pos, geom.V(pc.Size.W, pc.Size.H)),
		Vitals:    NewVitals(pc.MaxHealth, cfg.Feedback.FlickerFrames),
		Kit:       ability.NewKit(pc),
		cfg:       pc,
		jumpGrace: cfg.Physics.JumpGraceFrames,
	}
}

// Vulnerable reports whether damage would currently land.
func (p *Player) Vulnerable() bool {
	return !p.Invuln.Active()
}

// TakeDamage applies damage unless invulnerable, then opens the
// invulnerability window. It reports whether damage was applied.
func (p *Player) TakeDamage(amount int) bool {
	if p.Invuln.Active() {
		return false
	}
	p.Damage(amount)
	p.Invuln.Grant(p.cfg.InvulnFrames)
	return true
}

// ApplyKnockback overrides movement for frames ticks.
func (p *Player) ApplyKnockback(force geom.Vec2, frames int) {
	p.Knockback.Apply(force, frames)
}

// Jump spends a jump charge.
func (p *Player) Jump(fx *feedback.Emitter) bool {
	if !p.Jumps.Use() {
		return false
	}
	fx.Play(feedback.SoundJump)
	p.Vel[1] = p.cfg.JumpVelocity
	p.AirTime = p.cfg.JumpAirTime
	return true
}

// Attack starts a melee swing, firing a short-lived sword projectile.
func (p *Player) Attack(env *Env) bool {
	if !p.Swing.Start(env.Now) {
		return false
	}
	env.Shots.Fire(projectile.Sword, p.Center(), p.Facing()*env.ShotSpeed)
	return true
}

// CastRanged spends a fireball shot.
func (p *Player) CastRanged(env *Env) bool {
	if !p.Fireballs.Take(env.Now) {
		return false
	}
	env.Shots.Fire(projectile.Fireball, p.Center(), p.Facing()*env.ShotSpeed)
	env.FX.Play(feedback.SoundShootFireball)
	return true
}

// Dash claims a dash charge and bursts forward, invulnerable, for the dash
// duration.
func (p *Player) Dash(now int64, fx *feedback.Emitter) bool {
	if !p.Kit.Dash.Start(now, p.Facing()) {
		return false
	}
	p.Vel[0] = p.Kit.Dash.Velocity()
	p.Invuln.Grant(p.Kit.Dash.Frames)
	fx.Play(feedback.SoundDash)
	return true
}

// Bounce reverses the horizontal velocity, scaled by factor.
func (p *Player) Bounce(factor float64) {
	p.Vel[0] = -p.Vel[0] * factor
}

// Move runs the resolver. A live knockback replaces the input and leaves
// facing alone.
func (p *Player) Move(r *physics.Resolver, inputX float64, tiles physics.Tiles) physics.Flags {
	p.inputX = inputX
	if p.Knockback.Active() {
		facing := p.FacingLeft
		flags := r.Move(&p.Body, p.Knockback.Step(), tiles)
		p.FacingLeft = facing
		return flags
	}
	return r.Move(&p.Body, geom.V(inputX*p.cfg.MoveSpeed, 0), tiles)
}

// AfterMove does the per-tick bookkeeping that depends on this tick's
// collisions: timers, air time, ground refill and fall death.
func (p *Player) AfterMove(env *Env) {
	p.Invuln.Tick()
	p.Swing.Update(env.Now)
	p.TickFlicker()

	p.AirTime++
	if p.AirTime > p.cfg.FallDeathFrames && !p.IsDead() {
		env.FX.Play(feedback.SoundPlayerHurt)
		env.FX.Shake.Raise(env.FX.Cfg.ScreenshakeFloor)
		p.Kill()
	}
	if p.Collisions.Down {
		p.AirTime = 0
		p.Jumps.Refill()
	}

	p.Fireballs.Refresh(env.Now)

	if p.Swing.Active() {
		p.emitSwing(env)
	}
}

// EndDashTick counts the dash down; when it runs out the burst velocity
// and invulnerability expire together.
func (p *Player) EndDashTick(fx *feedback.Emitter) {
	if !p.Kit.Dash.Active() {
		return
	}
	fx.Sink.Particle(feedback.ParticleDust, p.Center(), geom.V(-p.Vel.X()*0.1, 0), 0)
	if p.Kit.Dash.Tick() {
		p.Vel[0] = 0
		p.Invuln.Clear()
	}
}

// UpdateAction derives the animation from air time and input.
func (p *Player) UpdateAction(src anim.Source) {
	switch {
	case p.AirTime > p.jumpGrace:
		p.SetAction(src, anim.Jump)
	case p.inputX != 0:
		p.SetAction(src, anim.Run)
	default:
		p.SetAction(src, anim.Idle)
	}
}

func (p *Player) emitSwing(env *Env) {
	kind := feedback.ParticleSwingRight
	offset := 20.0
	if p.FacingLeft {
		kind = feedback.ParticleSwingLeft
		offset = -5
	}
	at := p.Rect().Translate(geom.V(offset, -15)).Center()
	env.FX.Sink.Particle(kind, at, geom.V(0.15*env.Rng.Float64()*p.Facing(), 0), env.Rng.Intn(8))
}

// ResetForNewLevel moves the player to spawn and applies the level's
// grants. Health carries over.
func (p *Player) ResetForNewLevel(level simulation.LevelConfig, spawn geom.Vec2) {
	p.Kit.Reset(level)
	p.Pos = spawn
	p.Vel = geom.Vec2{}
	p.AirTime = 0
	p.FacingLeft = false
	p.Collisions = physics.Flags{}
}

// Respawn restores health, trimming any bonus max health, and moves the
// player to spawn.
func (p *Player) Respawn(spawn geom.Vec2) {
	if p.maxHealth > p.cfg.RespawnHealthCap {
		p.setMax(p.cfg.RespawnHealthCap)
	}
	p.health = p.maxHealth
	p.Pos = spawn
	p.Vel = geom.Vec2{}
	p.AirTime = 0
	p.Knockback.Clear()
	p.Kit.Dash.Stop()
	p.Invuln.Clear()
}

// GrantJump adds a jump charge and refills.
func (p *Player) GrantJump() {
	p.Jumps.Capacity++
	p.Jumps.Refill()
}

// GrantFireball enlarges the fireball burst and refills it.
func (p *Player) GrantFireball() {
	p.Fireballs.SetCapacity(p.Fireballs.Capacity + 1)
}

// GrantDash adds a ready dash slot.
func (p *Player) GrantDash() {
	p.Kit.Dash.Charges.Add()
}

// GrantHealth heals one point, or raises max health by one when already
// full and below the bonus cap.
func (p *Player) GrantHealth() {
	switch {
	case p.health < p.maxHealth:
		p.heal(1)
	case p.maxHealth >= p.cfg.BonusHealthCap:
	default:
		p.setMax(p.maxHealth + 1)
		p.health = p.maxHealth
	}
}
