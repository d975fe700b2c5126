package game

import (
	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/geom"
)

// Sounds plays effects by id. audio.Bank satisfies it.
type Sounds interface {
	Play(id feedback.Sound)
}

// Looper starts a sound that repeats until the player quits.
type Looper interface {
	Loop(id feedback.Sound)
}

// Effects is the feedback.Sink the world reports into. It keeps sparks
// and particles for drawing and forwards sounds.
type Effects struct {
	Sounds    Sounds
	Sparks    []*Spark
	Particles []*Particle
}

// NewEffects creates an effect list. A nil sounds plays nothing.
func NewEffects(sounds Sounds) *Effects {
	return &Effects{Sounds: sounds}
}

func (e *Effects) Play(id feedback.Sound) {
	if e.Sounds != nil {
		e.Sounds.Play(id)
	}
}

func (e *Effects) Spark(pos geom.Vec2, angle, speed float64) {
	e.Sparks = append(e.Sparks, &Spark{Pos: pos, Angle: angle, Speed: speed})
}

func (e *Effects) Particle(kind feedback.ParticleKind, pos, vel geom.Vec2, frame int) {
	e.Particles = append(e.Particles, &Particle{Kind: kind, Pos: pos, Vel: vel, Frame: frame})
}

// Update steps every spark and particle and drops the finished ones.
func (e *Effects) Update() {
	sparks := e.Sparks[:0]
	for _, s := range e.Sparks {
		if !s.Update() {
			sparks = append(sparks, s)
		}
	}
	clear(e.Sparks[len(sparks):])
	e.Sparks = sparks

	particles := e.Particles[:0]
	for _, p := range e.Particles {
		if !p.Update() {
			particles = append(particles, p)
		}
	}
	clear(e.Particles[len(particles):])
	e.Particles = particles
}

// Clear drops everything in flight.
func (e *Effects) Clear() {
	e.Sparks = nil
	e.Particles = nil
}
