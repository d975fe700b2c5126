// Package entity defines everything that lives in the world. Each entity is
// a physical Body with an animation tag, plus optional Vitals (health) and,
// for the player, an ability Kit. Behavior is driven per Kind by the world's
// tick passes.
package entity

import (
	"math/rand"

	"chosenoffset.com/soulsworn/internal/anim"
	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/invariant"
	"chosenoffset.com/soulsworn/internal/physics"
	"chosenoffset.com/soulsworn/internal/projectile"
)

// Kind identifies an entity type.
type Kind int

// Entity kinds
const (
	KindPlayer Kind = iota
	KindEnemy
	KindChicken
	KindUfo
	KindWall
	KindJumpPickup
	KindFireballPickup
	KindDashPickup
	KindHealthPickup
)

var kindNames = map[Kind]string{
	KindPlayer:         "player",
	KindEnemy:          "enemy",
	KindChicken:        "chicken",
	KindUfo:            "ufo",
	KindWall:           "wall",
	KindJumpPickup:     "jump",
	KindFireballPickup: "fireball",
	KindDashPickup:     "dash",
	KindHealthPickup:   "health",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a spawn point name to a Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Env is what an entity may read and spawn into while it thinks.
type Env struct {
	Now       int64
	Tiles     physics.Tiles
	Rng       *rand.Rand
	FX        *feedback.Emitter
	Shots     *projectile.Set
	ShotSpeed float64 // Unscaled projectile speed
}

// Base is the physical facet every entity has.
type Base struct {
	physics.Body
	Kind     Kind
	Action   anim.Action
	animator anim.Animator
}

func newBase(kind Kind, pos, size geom.Vec2) Base {
	return Base{
		Body: physics.Body{Pos: pos, Size: size},
		Kind: kind,
	}
}

// Position returns the top-left corner.
func (b *Base) Position() geom.Vec2 {
	return b.Pos
}

// HitRegion is the box used for combat overlap. Most entities use their
// physics box.
func (b *Base) HitRegion() geom.Rect {
	return b.Rect()
}

// SetAction switches animation when the action changes.
func (b *Base) SetAction(src anim.Source, action anim.Action) {
	if action == b.Action && b.animator != nil {
		return
	}
	b.Action = action
	b.animator = src.Animation(b.Kind.String(), action)
	if b.animator == nil {
		b.animator = anim.Nop{}
	}
}

// Animate advances the current animation one tick.
func (b *Base) Animate() {
	if b.animator != nil {
		b.animator.Advance()
	}
}

// Frame returns the current animation frame, or nil.
func (b *Base) Frame() interface{} {
	if b.animator == nil {
		return nil
	}
	return b.animator.Frame()
}

// Vitals is the living facet: health clamped to [0, max] and a hit flicker.
type Vitals struct {
	health        int
	maxHealth     int
	flicker       int
	flickerFrames int
}

// NewVitals creates full health.
func NewVitals(maxHealth, flickerFrames int) Vitals {
	return Vitals{health: maxHealth, maxHealth: maxHealth, flickerFrames: flickerFrames}
}

// Health returns current health.
func (v *Vitals) Health() int { return v.health }

// MaxHealth returns the health ceiling.
func (v *Vitals) MaxHealth() int { return v.maxHealth }

// IsDead reports whether health reached zero.
func (v *Vitals) IsDead() bool { return v.health <= 0 }

// IsHurt reports whether the entity is alive but below full health.
func (v *Vitals) IsHurt() bool {
	return v.health < v.maxHealth && v.health > 0
}

// Damage lowers health by amount, never below zero, and reports whether the
// entity is now dead.
func (v *Vitals) Damage(amount int) bool {
	if !invariant.Check(amount >= 0, "negative damage %d", amount) {
		amount = 0
	}
	v.health -= amount
	if v.health < 0 {
		v.health = 0
	}
	return v.health == 0
}

// Kill drops health to zero.
func (v *Vitals) Kill() {
	v.health = 0
}

// MarkHit starts the hit flicker.
func (v *Vitals) MarkHit() {
	v.flicker = v.flickerFrames
}

// IsHit reports whether the hit flicker is showing.
func (v *Vitals) IsHit() bool {
	return v.flicker > 0
}

// TickFlicker counts the hit flicker down.
func (v *Vitals) TickFlicker() {
	if v.flicker > 0 {
		v.flicker--
	}
}

func (v *Vitals) setMax(maxHealth int) {
	v.maxHealth = maxHealth
	if v.health > maxHealth {
		v.health = maxHealth
	}
}

func (v *Vitals) heal(amount int) {
	v.health += amount
	if v.health > v.maxHealth {
		v.health = v.maxHealth
	}
}
