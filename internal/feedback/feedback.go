// Package feedback is the cosmetic side-effect sink the simulation calls
// into: sounds, sparks, particles and the shared screenshake.
package feedback

import (
	"math"
	"math/rand"

	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/simulation"
)

// Sound names a sound effect.
type Sound string

// Sound effects the simulation can trigger
const (
	SoundJump            Sound = "jump"
	SoundDash            Sound = "dash"
	SoundDashHit         Sound = "dash_hit"
	SoundSwordHitFlesh   Sound = "sword_hit_flesh"
	SoundSwordHitMetal   Sound = "sword_hit_metal"
	SoundSwordHitTile    Sound = "sword_hit_tile"
	SoundShootFireball   Sound = "shoot_fireball"
	SoundFireballHit     Sound = "fireball_hit"
	SoundShootProjectile Sound = "shoot_projectile"
	SoundProjectileHit   Sound = "projectile_hit"
	SoundShootEgg        Sound = "shoot_egg"
	SoundEggHit          Sound = "egg_hit"
	SoundGetPowerup      Sound = "get_powerup"
	SoundPlayerHurt      Sound = "player_hurt"
	SoundPlayerDead      Sound = "player_dead"
	SoundUfoAttack       Sound = "ufo_attack"
	SoundUfoHurt         Sound = "ufo_hurt"
	SoundChickenHurt     Sound = "chicken_hurt"
	SoundEnemyHurt       Sound = "enemy_hurt"
	SoundEnemyDead       Sound = "enemy_dead"
	SoundWallHurt        Sound = "wall_hurt"
	SoundWallDead        Sound = "wall_dead"
	SoundAmbience        Sound = "ambience"
	SoundChickenAmbience Sound = "chicken_ambience"
	SoundBeatLevel       Sound = "beat_level"
	SoundBeatGame        Sound = "beat_game"
	SoundOpenPauseMenu   Sound = "open_pause_menu"
)

// ParticleKind names a particle animation.
type ParticleKind string

// Particle kinds
const (
	ParticleDust       ParticleKind = "particle"
	ParticleSwingLeft  ParticleKind = "swingleft"
	ParticleSwingRight ParticleKind = "swingright"
)

// Sink receives cosmetic events. Implementations must not feed anything
// back into the simulation.
type Sink interface {
	Play(id Sound)
	Spark(pos geom.Vec2, angle, speed float64)
	Particle(kind ParticleKind, pos, vel geom.Vec2, frame int)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Play(Sound)                                       {}
func (Nop) Spark(geom.Vec2, float64, float64)                {}
func (Nop) Particle(ParticleKind, geom.Vec2, geom.Vec2, int) {}

// Shake is the single screenshake intensity shared by the whole world.
type Shake struct {
	amount float64
}

// Raise lifts the intensity to at least floor. It never stacks.
func (s *Shake) Raise(floor float64) {
	s.amount = math.Max(s.amount, floor)
}

// Decay lowers the intensity by one, stopping at zero.
func (s *Shake) Decay() {
	s.amount = math.Max(0, s.amount-1)
}

// Reset drops the intensity to zero.
func (s *Shake) Reset() {
	s.amount = 0
}

// Amount returns the current intensity.
func (s *Shake) Amount() float64 {
	return s.amount
}

// Emitter composes the common effect patterns on top of a Sink.
type Emitter struct {
	Sink  Sink
	Rng   *rand.Rand
	Shake *Shake
	Cfg   simulation.FeedbackConfig
}

// NewEmitter creates an emitter. A nil sink discards everything.
func NewEmitter(sink Sink, rng *rand.Rand, cfg simulation.FeedbackConfig) *Emitter {
	if sink == nil {
		sink = Nop{}
	}
	return &Emitter{Sink: sink, Rng: rng, Shake: &Shake{}, Cfg: cfg}
}

// Play plays each sound in order.
func (e *Emitter) Play(ids ...Sound) {
	for _, id := range ids {
		e.Sink.Play(id)
	}
}

// Sparks emits the small spray used for glancing hits and muzzle flashes,
// fanned around angle.
func (e *Emitter) Sparks(pos geom.Vec2, angle float64) {
	for i := 0; i < e.Cfg.SparkCount; i++ {
		e.Sink.Spark(pos, angle+e.Rng.Float64()-0.5, 2+e.Rng.Float64())
	}
}

// Burst emits the large spark and dust explosion used for kills and
// heavy hits.
func (e *Emitter) Burst(center geom.Vec2) {
	for i := 0; i < e.Cfg.BurstSize; i++ {
		angle := e.Rng.Float64() * math.Pi * 2
		speed := e.Rng.Float64() * 5
		e.Sink.Spark(center, angle, 2+e.Rng.Float64())
		vel := geom.V(math.Cos(angle+math.Pi)*speed*0.5, math.Sin(angle+math.Pi)*speed*0.5)
		e.Sink.Particle(ParticleDust, center, vel, e.Rng.Intn(8))
	}
	e.Sink.Spark(center, 0, 5+e.Rng.Float64())
	e.Sink.Spark(center, math.Pi, 5+e.Rng.Float64())
}

// Impact is a Burst with a screenshake pulse.
func (e *Emitter) Impact(center geom.Vec2) {
	e.Shake.Raise(e.Cfg.ScreenshakeFloor)
	e.Burst(center)
}
