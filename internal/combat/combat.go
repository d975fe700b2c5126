// Package combat resolves everything that hurts: projectiles against tiles
// and targets, hazards touching the player, and dash strikes.
package combat

import (
	"math"

	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/geom"
)

// Target is anything that can be struck.
type Target interface {
	HitRegion() geom.Rect
	IsDead() bool
	MaxHealth() int
	Vulnerable() bool
	TakeDamage(amount int) bool
	MarkHit()
}

// Class groups targets that share damage and sound rules.
type Class int

// Target classes, in the order player attacks test them.
const (
	Enemies Class = iota
	Chickens
	Ufos
	Walls
)

func (c Class) String() string {
	switch c {
	case Enemies:
		return "enemies"
	case Chickens:
		return "chickens"
	case Ufos:
		return "ufos"
	case Walls:
		return "walls"
	default:
		return "unknown"
	}
}

type classRule struct {
	heavy bool // loses max/divisor instead of a fixed share
	share int  // projectile damage is max/share for light targets
	hurt  feedback.Sound
	dead  feedback.Sound
	blade feedback.Sound // sword impact sound
}

var classRules = map[Class]classRule{
	Enemies:  {share: 2, hurt: feedback.SoundEnemyHurt, dead: feedback.SoundEnemyDead, blade: feedback.SoundSwordHitFlesh},
	Chickens: {share: 1, hurt: feedback.SoundChickenHurt, dead: feedback.SoundChickenHurt, blade: feedback.SoundSwordHitFlesh},
	Ufos:     {share: 1, hurt: feedback.SoundUfoHurt, dead: feedback.SoundUfoHurt, blade: feedback.SoundSwordHitMetal},
	Walls:    {heavy: true, hurt: feedback.SoundWallHurt, dead: feedback.SoundWallDead, blade: feedback.SoundSwordHitFlesh},
}

// Group is one class of live targets.
type Group struct {
	Class   Class
	Members []Target
}

// Field is the set of things player attacks can hit, in test order.
type Field []Group

// Members converts a typed slice into targets.
func Members[T Target](xs []T) []Target {
	out := make([]Target, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

// hitSound is the hurt or death cry for a strike on a member of c.
func hitSound(c Class, lethal bool) feedback.Sound {
	r := classRules[c]
	if lethal {
		return r.dead
	}
	return r.hurt
}

// damageFor returns what a projectile hit deals to t.
func damageFor(c Class, t Target, heavyDivisor int) int {
	r := classRules[c]
	if r.heavy {
		return t.MaxHealth() / heavyDivisor
	}
	return t.MaxHealth() / r.share
}

// recoil is the spark angle pointing back along a projectile's travel.
func recoil(dir float64) float64 {
	if dir > 0 {
		return math.Pi
	}
	return 0
}
