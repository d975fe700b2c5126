// Package anim provides the animation capability entities consume: advance
// one tick, report the current frame.
package anim

import "chosenoffset.com/soulsworn/internal/invariant"

// Action tags the animation an entity is showing.
type Action string

// Actions shared by every walking entity.
const (
	Idle Action = "idle"
	Run  Action = "run"
	Jump Action = "jump"
)

// Animator steps through frames.
type Animator interface {
	Advance()
	Frame() interface{}
}

// Source hands out a fresh Animator for an entity kind and action, or nil
// when it has none.
type Source interface {
	Animation(kind string, action Action) Animator
}

// Animation cycles a fixed list of frames, holding each for a number of ticks.
type Animation struct {
	frames        []interface{}
	frameDuration int
	loop          bool
	tick          int
	done          bool
}

// New creates an animation. frameDuration below one is treated as one.
func New(frames []interface{}, frameDuration int, loop bool) *Animation {
	if frameDuration < 1 {
		frameDuration = 1
	}
	return &Animation{frames: frames, frameDuration: frameDuration, loop: loop}
}

// Copy returns an independent animation at frame zero.
func (a *Animation) Copy() *Animation {
	return New(a.frames, a.frameDuration, a.loop)
}

// Advance moves one tick forward.
func (a *Animation) Advance() {
	total := a.frameDuration * len(a.frames)
	if total == 0 {
		return
	}
	if a.loop {
		a.tick = (a.tick + 1) % total
		return
	}
	if a.tick < total-1 {
		a.tick++
	}
	if a.tick >= total-1 {
		a.done = true
	}
}

// Frame returns the current frame, or nil for an empty animation.
func (a *Animation) Frame() interface{} {
	if len(a.frames) == 0 {
		return nil
	}
	return a.frames[a.tick/a.frameDuration]
}

// Done reports whether a non-looping animation reached its last frame.
func (a *Animation) Done() bool {
	return a.done
}

// Library is a Source backed by prototype animations keyed "kind/action".
type Library map[string]*Animation

// Key builds a Library key.
func Key(kind string, action Action) string {
	return kind + "/" + string(action)
}

// Animation returns a copy of the prototype, or nil.
func (l Library) Animation(kind string, action Action) Animator {
	proto, ok := l[Key(kind, action)]
	if !ok || len(proto.frames) == 0 {
		return nil
	}
	return proto.Copy()
}

// Nop is the stand-in for a missing animation.
type Nop struct{}

func (Nop) Advance()           {}
func (Nop) Frame() interface{} { return nil }

// Guarded wraps a Source so that a missing animation is reported once and
// replaced with Nop instead of reaching the simulation as nil.
type Guarded struct {
	src  Source
	once invariant.Once
}

// Guard wraps src. A nil src yields Nop for every request.
func Guard(src Source) *Guarded {
	return &Guarded{src: src}
}

// Animation implements Source.
func (g *Guarded) Animation(kind string, action Action) Animator {
	if g.src != nil {
		if a := g.src.Animation(kind, action); a != nil {
			return a
		}
	}
	g.once.Report(Key(kind, action), "missing animation, drawing nothing")
	return Nop{}
}

// FrameAt returns the prototype's frame tick ticks in, held on the last
// frame once it runs out. It returns nil when the key is unknown.
func (l Library) FrameAt(kind string, action Action, tick int) interface{} {
	proto, ok := l[Key(kind, action)]
	if !ok || len(proto.frames) == 0 {
		return nil
	}
	i := tick / proto.frameDuration
	if i >= len(proto.frames) {
		i = len(proto.frames) - 1
	}
	if i < 0 {
		i = 0
	}
	return proto.frames[i]
}
