package feedback

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/simulation"
)

func newEmitter(rec *Recorder) *Emitter {
	return NewEmitter(rec, rand.New(rand.NewSource(1)), simulation.DefaultConfig().Feedback)
}

func TestShakeRaisesToFloorWithoutStacking(t *testing.T) {
	var s Shake

	s.Raise(16)
	s.Raise(16)
	assert.Equal(t, 16.0, s.Amount())

	s.Decay()
	s.Raise(4)
	assert.Equal(t, 15.0, s.Amount(), "a lower floor never lowers the intensity")

	for i := 0; i < 20; i++ {
		s.Decay()
	}
	assert.Equal(t, 0.0, s.Amount())
}

func TestBurstEmitsSparksAndDust(t *testing.T) {
	rec := &Recorder{}
	e := newEmitter(rec)

	e.Impact(geom.V(10, 10))

	assert.Len(t, rec.Sparks, 32)
	assert.Equal(t, 30, rec.ParticlesOf(ParticleDust))
	assert.Equal(t, 16.0, e.Shake.Amount())
	for _, p := range rec.Particles {
		assert.GreaterOrEqual(t, p.Frame, 0)
		assert.Less(t, p.Frame, 8)
	}
}

func TestSparksFanAroundAngle(t *testing.T) {
	rec := &Recorder{}
	e := newEmitter(rec)

	e.Sparks(geom.V(0, 0), 3)

	assert.Len(t, rec.Sparks, 4)
	assert.Empty(t, rec.Particles)
	for _, s := range rec.Sparks {
		assert.InDelta(t, 3, s.Angle, 0.5)
		assert.GreaterOrEqual(t, s.Speed, 2.0)
	}
}

func TestNilSinkIsSafe(t *testing.T) {
	e := NewEmitter(nil, rand.New(rand.NewSource(1)), simulation.DefaultConfig().Feedback)
	assert.NotPanics(t, func() {
		e.Play(SoundJump)
		e.Impact(geom.V(1, 1))
	})
}
