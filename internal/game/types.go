package game

import (
	"math"

	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/geom"
)

// Camera tracks the viewport position for scrolling levels.
type Camera struct {
	X, Y float64 // Top-left corner of the viewport in world coords
}

// Follow eases the camera toward centering target in a w×h view, closing
// 1/lag of the gap each call.
func (c *Camera) Follow(target geom.Vec2, w, h int, lag float64) {
	c.X += (target.X() - float64(w)/2 - c.X) / lag
	c.Y += (target.Y() - float64(h)/2 - c.Y) / lag
}

// Offset returns the whole-pixel scroll used for drawing.
func (c Camera) Offset() (float64, float64) {
	return math.Trunc(c.X), math.Trunc(c.Y)
}

// Spark is a short streak that flies along its angle and slows down.
type Spark struct {
	Pos   geom.Vec2
	Angle float64
	Speed float64
}

// Update moves the spark and reports whether it has stopped.
func (s *Spark) Update() bool {
	s.Pos = s.Pos.Add(geom.V(math.Cos(s.Angle)*s.Speed, math.Sin(s.Angle)*s.Speed))
	s.Speed = math.Max(0, s.Speed-0.1)
	return s.Speed == 0
}

// Particle is a one-shot animated puff drifting at a fixed velocity.
type Particle struct {
	Kind  feedback.ParticleKind
	Pos   geom.Vec2
	Vel   geom.Vec2
	Frame int // Ticks into the particle's animation
}

// sheet is a particle animation: how many frames and how long each shows.
type sheet struct {
	frames   int
	duration int
}

func (s sheet) ticks() int {
	return s.frames * s.duration
}

var particleSheets = map[feedback.ParticleKind]sheet{
	feedback.ParticleDust:       {frames: 4, duration: 6},
	feedback.ParticleSwingRight: {frames: 4, duration: 2},
	feedback.ParticleSwingLeft:  {frames: 4, duration: 6},
}

// Update drifts the particle one tick and reports whether its animation
// had already finished.
func (p *Particle) Update() bool {
	s, ok := particleSheets[p.Kind]
	if !ok {
		return true
	}
	done := p.Frame >= s.ticks()-1
	p.Pos = p.Pos.Add(p.Vel)
	if !done {
		p.Frame++
	}
	return done
}
