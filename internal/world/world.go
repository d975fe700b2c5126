// Package world owns every live collection of a level and advances them
// one fixed tick at a time.
package world

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/soulsworn/internal/anim"
	"chosenoffset.com/soulsworn/internal/clock"
	"chosenoffset.com/soulsworn/internal/combat"
	"chosenoffset.com/soulsworn/internal/entity"
	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/physics"
	"chosenoffset.com/soulsworn/internal/projectile"
	"chosenoffset.com/soulsworn/internal/simulation"
	"chosenoffset.com/soulsworn/internal/tilemap"
)

var log = logrus.WithField("component", "world")

// Input is one tick of player intent. Commands are edge-triggered: the
// driver sets them only on the tick the key went down.
type Input struct {
	MoveX  float64 // -1, 0 or 1
	Jump   bool
	Attack bool
	Dash   bool
	Cast   bool
}

// World is the simulation state of one level.
type World struct {
	Cfg   *simulation.Config
	Clock clock.Clock
	Rng   *rand.Rand
	FX    *feedback.Emitter
	Anims anim.Source
	Level int

	Player   *entity.Player
	Enemies  []*entity.Walker
	Chickens []*entity.Walker
	Ufos     []*entity.Ufo
	Walls    []*entity.Wall
	Pickups  []*entity.Pickup
	Shots    *projectile.Set

	resolver *physics.Resolver
	shots    *combat.Resolver
	contact  *combat.Contact
	dash     *combat.DashStrike
	ticks    uint64
}

// New creates an empty world. sink receives sounds, sparks and particles;
// anims supplies animations and may be nil.
func New(cfg *simulation.Config, clk clock.Clock, rng *rand.Rand, sink feedback.Sink, anims anim.Source) *World {
	fx := feedback.NewEmitter(sink, rng, cfg.Feedback)
	return &World{
		Cfg:      cfg,
		Clock:    clk,
		Rng:      rng,
		FX:       fx,
		Anims:    anim.Guard(anims),
		Shots:    &projectile.Set{},
		resolver: physics.NewResolver(cfg.Physics),
		shots:    combat.NewResolver(cfg, fx),
		contact:  combat.NewContact(cfg, fx),
		dash:     combat.NewDashStrike(cfg, fx),
	}
}

// Populate clears the world and spawns everything the map places. The
// player survives level changes with its health; abilities come from the
// level's grants.
func (w *World) Populate(m *tilemap.Map, level int) {
	w.Enemies = w.Enemies[:0]
	w.Chickens = w.Chickens[:0]
	w.Ufos = w.Ufos[:0]
	w.Walls = w.Walls[:0]
	w.Pickups = w.Pickups[:0]
	w.Shots.Clear()
	w.FX.Shake.Reset()
	w.Level = level

	for _, sp := range m.Spawns {
		kind, ok := entity.ParseKind(sp.Kind)
		if !ok {
			log.WithFields(logrus.Fields{"map": m.Name, "kind": sp.Kind}).Warn("unknown spawn kind, skipping")
			continue
		}
		pos := sp.Pos()
		switch {
		case kind == entity.KindPlayer:
			if w.Player == nil {
				w.Player = entity.NewPlayer(pos, w.Cfg)
			}
			w.Player.ResetForNewLevel(w.Cfg.Level(level), pos)
		case kind == entity.KindEnemy:
			w.Enemies = append(w.Enemies, entity.NewEnemy(pos, w.Cfg))
		case kind == entity.KindChicken:
			w.Chickens = append(w.Chickens, entity.NewChicken(pos, w.Cfg))
		case kind == entity.KindUfo:
			w.Ufos = append(w.Ufos, entity.NewUfo(pos, w.Cfg))
		case kind == entity.KindWall:
			w.Walls = append(w.Walls, entity.NewWall(pos, w.Cfg))
		case entity.IsPickup(kind):
			w.Pickups = append(w.Pickups, entity.NewPickup(kind, pos))
		}
	}

	log.WithFields(logrus.Fields{
		"map":     m.Name,
		"level":   level,
		"enemies": w.EnemiesRemaining(),
		"pickups": len(w.Pickups),
	}).Info("level populated")
}

// Restart reloads the current level after a death, restoring the player.
func (w *World) Restart(m *tilemap.Map) {
	w.Populate(m, w.Level)
	if w.Player != nil {
		w.Player.Respawn(w.Player.Pos)
	}
}

// EnemiesRemaining counts everything that must die to clear the level.
func (w *World) EnemiesRemaining() int {
	return len(w.Enemies) + len(w.Chickens) + len(w.Ufos) + len(w.Walls)
}

// Ticks returns how many ticks have run.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// Tick advances the simulation by one fixed step. While the player is
// dead the world keeps moving around it but the player and projectile
// passes are skipped.
func (w *World) Tick(in Input, tiles physics.Tiles) {
	if w.Player == nil {
		return
	}
	w.ticks++
	env := &entity.Env{
		Now:       w.Clock.NowMS(),
		Tiles:     tiles,
		Rng:       w.Rng,
		FX:        w.FX,
		Shots:     w.Shots,
		ShotSpeed: w.Cfg.Projectiles.BaseSpeed,
	}
	alive := !w.Player.IsDead()

	w.FX.Shake.Decay()
	if alive {
		w.commands(in, env)
	}
	w.think(env)
	w.move(in, tiles, alive)
	if alive {
		w.playerPass(env)
	}
	w.animateState()
	if alive {
		w.contact.Walls(w.Player, w.Walls, tiles)
		w.contact.Ufos(w.Player, w.Ufos, tiles, env.Now)
		w.collectPickups()
		w.shots.Resolve(w.Shots, tiles, w.Player, w.field())
	}
	w.prune()
	w.animate()
}

func (w *World) commands(in Input, env *entity.Env) {
	p := w.Player
	if in.Jump {
		p.Jump(w.FX)
	}
	if in.Dash {
		p.Dash(env.Now, w.FX)
	}
	if in.Attack {
		p.Attack(env)
	}
	if in.Cast {
		p.CastRanged(env)
	}
}

func (w *World) think(env *entity.Env) {
	target := w.Player.Pos
	for _, e := range w.Enemies {
		e.Think(env, target)
	}
	for _, c := range w.Chickens {
		c.Think(env, target)
	}
	for _, u := range w.Ufos {
		u.Think(env, w.Player)
	}
	for _, wall := range w.Walls {
		wall.Drift()
	}
	for _, pk := range w.Pickups {
		pk.Bob()
	}
}

func (w *World) move(in Input, tiles physics.Tiles, alive bool) {
	if alive {
		w.Player.Move(w.resolver, in.MoveX, tiles)
	}
	for _, e := range w.Enemies {
		e.Move(w.resolver, tiles)
	}
	for _, c := range w.Chickens {
		c.Move(w.resolver, tiles)
	}
}

func (w *World) playerPass(env *entity.Env) {
	w.Player.AfterMove(env)
	w.dash.Resolve(w.Player, w.field())
	w.Player.EndDashTick(w.FX)
}

func (w *World) animateState() {
	w.Player.UpdateAction(w.Anims)
	for _, e := range w.Enemies {
		e.UpdateAction(w.Anims)
	}
	for _, c := range w.Chickens {
		c.UpdateAction(w.Anims)
	}
	for _, u := range w.Ufos {
		u.UpdateAction(w.Anims)
	}
	for _, wall := range w.Walls {
		wall.UpdateAction(w.Anims)
	}
	for _, pk := range w.Pickups {
		pk.UpdateAction(w.Anims)
	}
}

func (w *World) collectPickups() {
	box := w.Player.Rect()
	kept := w.Pickups[:0]
	for _, pk := range w.Pickups {
		if box.Overlaps(pk.Rect()) {
			w.FX.Play(feedback.SoundGetPowerup)
			pk.Apply(w.Player)
			continue
		}
		kept = append(kept, pk)
	}
	w.Pickups = kept
}

// field lists the targets player attacks test, in order.
func (w *World) field() combat.Field {
	return combat.Field{
		{Class: combat.Enemies, Members: combat.Members(w.Enemies)},
		{Class: combat.Chickens, Members: combat.Members(w.Chickens)},
		{Class: combat.Ufos, Members: combat.Members(w.Ufos)},
		{Class: combat.Walls, Members: combat.Members(w.Walls)},
	}
}

func (w *World) prune() {
	w.Enemies = pruneDead(w.Enemies)
	w.Chickens = pruneDead(w.Chickens)
	w.Ufos = pruneDead(w.Ufos)
	w.Walls = pruneDead(w.Walls)
}

func pruneDead[T interface{ IsDead() bool }](xs []T) []T {
	kept := xs[:0]
	for _, x := range xs {
		if !x.IsDead() {
			kept = append(kept, x)
		}
	}
	var zero T
	for i := len(kept); i < len(xs); i++ {
		xs[i] = zero
	}
	return kept
}

func (w *World) animate() {
	w.Player.Animate()
	for _, e := range w.Enemies {
		e.Animate()
	}
	for _, c := range w.Chickens {
		c.Animate()
	}
	for _, u := range w.Ufos {
		u.Animate()
	}
	for _, wall := range w.Walls {
		wall.Animate()
	}
	for _, pk := range w.Pickups {
		pk.Animate()
	}
}
