// Package projectile holds the straight-line shots entities fire and the
// per-class lists the combat pass resolves.
package projectile

import (
	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/simulation"
)

// Class distinguishes projectile kinds.
type Class int

// Projectile classes in resolution order.
const (
	EnemyShot Class = iota
	Fireball
	Sword
	Egg
	classCount
)

// Classes lists every class in the order the combat pass resolves them.
var Classes = [classCount]Class{EnemyShot, Fireball, Sword, Egg}

func (c Class) String() string {
	switch c {
	case EnemyShot:
		return "enemy_shot"
	case Fireball:
		return "fireball"
	case Sword:
		return "sword"
	case Egg:
		return "egg"
	default:
		return "unknown"
	}
}

// Rules are a class's speed and range.
type Rules struct {
	SpeedMultiplier float64
	MaxAge          int
}

// RulesFor picks a class's rules out of the config.
func RulesFor(cfg simulation.ProjectileConfig, c Class) Rules {
	var pc simulation.ProjectileClassConfig
	switch c {
	case EnemyShot:
		pc = cfg.EnemyShot
	case Fireball:
		pc = cfg.Fireball
	case Sword:
		pc = cfg.Sword
	case Egg:
		pc = cfg.Egg
	}
	return Rules{SpeedMultiplier: pc.SpeedMultiplier, MaxAge: pc.MaxAge}
}

// Projectile is a point moving horizontally at a fixed signed speed.
type Projectile struct {
	Class Class
	Pos   geom.Vec2
	Dir   float64 // Signed base speed; the class multiplier scales it
	Age   int
}

// Advance moves one tick and ages the projectile.
func (p *Projectile) Advance(r Rules) {
	p.Pos[0] += p.Dir * r.SpeedMultiplier
	p.Age++
}

// List is the live collection for one class.
type List struct {
	items []*Projectile
}

// Add appends a projectile.
func (l *List) Add(p *Projectile) {
	l.items = append(l.items, p)
}

// Len returns the number of live projectiles.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns the live slice. Callers that remove while iterating must
// use Snapshot instead.
func (l *List) Items() []*Projectile {
	return l.items
}

// Snapshot returns a copy safe to iterate while the list is modified.
func (l *List) Snapshot() []*Projectile {
	out := make([]*Projectile, len(l.items))
	copy(out, l.items)
	return out
}

// Remove deletes p from the live list.
func (l *List) Remove(p *Projectile) bool {
	for i, q := range l.items {
		if q == p {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every projectile.
func (l *List) Clear() {
	l.items = nil
}

// Set owns the four class lists.
type Set struct {
	lists [classCount]List
}

// Fire spawns a projectile of class c.
func (s *Set) Fire(c Class, pos geom.Vec2, dir float64) *Projectile {
	p := &Projectile{Class: c, Pos: pos, Dir: dir}
	s.lists[c].Add(p)
	return p
}

// List returns the live list for c.
func (s *Set) List(c Class) *List {
	return &s.lists[c]
}

// Len counts projectiles across all classes.
func (s *Set) Len() int {
	n := 0
	for i := range s.lists {
		n += s.lists[i].Len()
	}
	return n
}

// Clear drops every projectile of every class.
func (s *Set) Clear() {
	for i := range s.lists {
		s.lists[i].Clear()
	}
}
