// Package game drives the world from the frame loop: it maps input,
// advances levels, counts down respawns and draws the result.
package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/soulsworn/internal/anim"
	"chosenoffset.com/soulsworn/internal/clock"
	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/render"
	"chosenoffset.com/soulsworn/internal/simulation"
	"chosenoffset.com/soulsworn/internal/tilemap"
	"chosenoffset.com/soulsworn/internal/world"
)

var log = logrus.WithField("component", "game")

// Frame counts for level changes and respawns
const (
	transitionFrames = 30 // Fade length, and the wait after a level is cleared
	deathSoundFrame  = 10
	respawnFrame     = 40
	cameraLag        = 30
)

// Options configures a Game.
type Options struct {
	Config *simulation.Config
	Maps   []*tilemap.Map
	Level  int
	Seed   int64
	Clock  clock.Clock // Defaults to the monotonic clock

	Width, Height int

	Renderer render.Renderer
	Input    render.InputManager
	Sounds   Sounds
	Anims    anim.Library
}

// Game is the frame driver around a World.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	World   *world.World
	Maps    []*tilemap.Map
	Level   int
	Won     bool
	Paused  bool
	Effects *Effects
	Camera  Camera

	Renderer render.Renderer
	Input    render.InputManager
	Anims    anim.Library

	scene      render.Image
	cosmetic   *rand.Rand
	transition int
	dead       int
}

// New creates a game and loads the starting level.
func New(opts Options) (*Game, error) {
	if opts.Config == nil {
		opts.Config = simulation.DefaultConfig()
	}
	if len(opts.Maps) == 0 {
		return nil, errors.New("no maps to play")
	}
	if opts.Level < 0 || opts.Level >= len(opts.Maps) {
		return nil, fmt.Errorf("level %d out of range, have %d maps", opts.Level, len(opts.Maps))
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewMonotonic()
	}

	effects := NewEffects(opts.Sounds)
	g := &Game{
		ScreenWidth:  opts.Width,
		ScreenHeight: opts.Height,
		World:        world.New(opts.Config, opts.Clock, rand.New(rand.NewSource(opts.Seed)), effects, opts.Anims),
		Maps:         opts.Maps,
		Effects:      effects,
		Renderer:     opts.Renderer,
		Input:        opts.Input,
		Anims:        opts.Anims,
		cosmetic:     rand.New(rand.NewSource(opts.Seed + 1)),
	}

	g.loadLevel(opts.Level)
	if g.World.Player == nil {
		return nil, fmt.Errorf("map %s has no player spawn", opts.Maps[opts.Level].Name)
	}
	return g, nil
}

// StartAmbience starts the background loops when the sound backend can
// loop.
func (g *Game) StartAmbience() {
	looper, ok := g.Effects.Sounds.(Looper)
	if !ok {
		return
	}
	looper.Loop(feedback.SoundAmbience)
	looper.Loop(feedback.SoundChickenAmbience)
}

// Update runs one tick.
func (g *Game) Update() error {
	if g.Input.IsKeyJustPressed(render.KeyEscape) {
		g.Paused = !g.Paused
		g.Effects.Play(feedback.SoundOpenPauseMenu)
	}
	if g.Paused {
		switch {
		case g.Input.IsKeyJustPressed(render.KeyQ):
			log.Info("quit from pause menu")
			return render.ErrQuit
		case g.Input.IsKeyJustPressed(render.KeyR):
			g.Paused = false
			g.restart()
		}
		return nil
	}

	g.progress()
	g.World.Tick(g.readInput(), g.currentMap().Grid)
	g.Effects.Update()
	g.Camera.Follow(g.World.Player.Center(), g.ScreenWidth, g.ScreenHeight, cameraLag)
	return nil
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// progress handles clearing a level and dying.
func (g *Game) progress() {
	if g.World.EnemiesRemaining() == 0 && !g.Won {
		g.transition++
		if g.transition > transitionFrames {
			g.advance()
		}
	}
	if g.transition < 0 {
		g.transition++
	}

	if g.World.Player.IsDead() {
		g.dead++
		if g.dead == deathSoundFrame {
			g.Effects.Play(feedback.SoundPlayerDead)
		}
		if g.dead >= deathSoundFrame {
			g.transition = min(transitionFrames, g.transition+1)
		}
		if g.dead > respawnFrame {
			g.restart()
		}
	}
}

func (g *Game) advance() {
	if g.Level == len(g.Maps)-1 {
		g.Won = true
		g.transition = 0
		g.Effects.Play(feedback.SoundBeatGame)
		log.WithField("level", g.Level).Info("final level cleared")
		return
	}
	g.Effects.Play(feedback.SoundBeatLevel)
	g.loadLevel(g.Level + 1)
}

func (g *Game) loadLevel(level int) {
	g.Level = level
	g.World.Populate(g.Maps[level], level)
	g.reset()
}

func (g *Game) restart() {
	g.World.Restart(g.currentMap())
	log.WithField("level", g.Level).Info("level restarted")
	g.reset()
}

func (g *Game) reset() {
	g.transition = -transitionFrames
	g.dead = 0
	g.Camera = Camera{}
	g.Effects.Clear()
}

func (g *Game) currentMap() *tilemap.Map {
	return g.Maps[g.Level]
}

// readInput samples the keyboard: held keys steer, fresh presses command.
func (g *Game) readInput() world.Input {
	in := world.Input{
		Jump:   g.justPressed(render.KeySpace, render.KeyW, render.KeyUp),
		Attack: g.justPressed(render.KeyJ) || g.Input.IsMouseButtonJustPressed(render.MouseButtonLeft),
		Dash:   g.justPressed(render.KeyF),
		Cast:   g.justPressed(render.KeyC, render.KeyK),
	}
	if g.pressed(render.KeyA, render.KeyLeft) {
		in.MoveX--
	}
	if g.pressed(render.KeyD, render.KeyRight) {
		in.MoveX++
	}
	return in
}

func (g *Game) pressed(keys ...render.Key) bool {
	for _, k := range keys {
		if g.Input.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (g *Game) justPressed(keys ...render.Key) bool {
	for _, k := range keys {
		if g.Input.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
