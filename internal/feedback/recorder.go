package feedback

import "chosenoffset.com/soulsworn/internal/geom"

// SparkEvent is a recorded Spark call.
type SparkEvent struct {
	Pos          geom.Vec2
	Angle, Speed float64
}

// ParticleEvent is a recorded Particle call.
type ParticleEvent struct {
	Kind     ParticleKind
	Pos, Vel geom.Vec2
	Frame    int
}

// Recorder is a Sink that keeps every event for later inspection.
type Recorder struct {
	Sounds    []Sound
	Sparks    []SparkEvent
	Particles []ParticleEvent
}

func (r *Recorder) Play(id Sound) {
	r.Sounds = append(r.Sounds, id)
}

func (r *Recorder) Spark(pos geom.Vec2, angle, speed float64) {
	r.Sparks = append(r.Sparks, SparkEvent{Pos: pos, Angle: angle, Speed: speed})
}

func (r *Recorder) Particle(kind ParticleKind, pos, vel geom.Vec2, frame int) {
	r.Particles = append(r.Particles, ParticleEvent{Kind: kind, Pos: pos, Vel: vel, Frame: frame})
}

// Played counts how often id was played.
func (r *Recorder) Played(id Sound) int {
	n := 0
	for _, s := range r.Sounds {
		if s == id {
			n++
		}
	}
	return n
}

// ParticlesOf counts particles of a kind.
func (r *Recorder) ParticlesOf(kind ParticleKind) int {
	n := 0
	for _, p := range r.Particles {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.Sounds = nil
	r.Sparks = nil
	r.Particles = nil
}
