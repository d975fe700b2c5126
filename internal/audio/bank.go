// Package audio plays the game's sound effects through beep. A Bank holds
// every effect decoded into memory so playing one never touches the disk.
package audio

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/invariant"
)

var log = logrus.WithField("component", "audio")

const sampleRate = beep.SampleRate(44100)

var bufferFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// Volumes is the mix level of each known effect, 0..1.
var Volumes = map[feedback.Sound]float64{
	feedback.SoundJump:            0.05,
	feedback.SoundDash:            0.05,
	feedback.SoundDashHit:         0.035,
	feedback.SoundSwordHitFlesh:   0.15,
	feedback.SoundSwordHitMetal:   0.035,
	feedback.SoundSwordHitTile:    0.35,
	feedback.SoundShootFireball:   0.075,
	feedback.SoundFireballHit:     0.085,
	feedback.SoundShootProjectile: 0.5,
	feedback.SoundProjectileHit:   0.5,
	feedback.SoundShootEgg:        0.35,
	feedback.SoundEggHit:          0.085,
	feedback.SoundGetPowerup:      0.03,
	feedback.SoundPlayerHurt:      0.3,
	feedback.SoundPlayerDead:      0.2,
	feedback.SoundUfoAttack:       0.5,
	feedback.SoundUfoHurt:         0.025,
	feedback.SoundChickenHurt:     0.12,
	feedback.SoundEnemyHurt:       0.3,
	feedback.SoundEnemyDead:       0.5,
	feedback.SoundWallHurt:        0.15,
	feedback.SoundWallDead:        0.35,
	feedback.SoundAmbience:        0.04,
	feedback.SoundChickenAmbience: 0.05,
	feedback.SoundBeatLevel:       0.2,
	feedback.SoundBeatGame:        0.2,
	feedback.SoundOpenPauseMenu:   0.2,
}

// Bank owns the decoded effects and the mixer they play into.
type Bank struct {
	mu          sync.Mutex
	buffers     map[feedback.Sound]*beep.Buffer
	mixer       *beep.Mixer
	loops       []*beep.Ctrl
	missing     invariant.Once
	initialized bool
}

// NewBank creates an empty bank.
func NewBank() *Bank {
	return &Bank{
		buffers: make(map[feedback.Sound]*beep.Buffer),
		mixer:   &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer.
func (b *Bank) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// LoadDir decodes <dir>/<id>.wav for every known effect. Effects that are
// missing or fail to decode are logged and stay silent; only an unreadable
// directory is an error. It returns how many effects loaded.
func (b *Bank) LoadDir(dir string) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, fmt.Errorf("failed to open sound directory %s: %w", dir, err)
	}

	loaded := 0
	for id := range Volumes {
		path := filepath.Join(dir, string(id)+".wav")
		f, err := os.Open(path)
		if err != nil {
			log.WithFields(logrus.Fields{"sound": id, "path": path}).Warn("sound file missing")
			continue
		}
		err = b.Load(id, f)
		f.Close()
		if err != nil {
			log.WithError(err).WithField("sound", id).Warn("sound failed to decode")
			continue
		}
		loaded++
	}
	log.WithFields(logrus.Fields{"dir": dir, "loaded": loaded}).Info("sounds loaded")
	return loaded, nil
}

// Load decodes one WAV stream into the bank under id.
func (b *Bank) Load(id feedback.Sound, r io.Reader) error {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", id, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, s)
	}
	buf := beep.NewBuffer(bufferFormat)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", id, err)
	}

	b.mu.Lock()
	b.buffers[id] = buf
	b.mu.Unlock()
	return nil
}

// Has reports whether id is loaded.
func (b *Bank) Has(id feedback.Sound) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.buffers[id]
	return ok
}

// Play starts one shot of id. Unknown effects are reported once and
// otherwise ignored.
func (b *Bank) Play(id feedback.Sound) {
	s, ok := b.streamer(id)
	if !ok {
		return
	}
	b.add(s)
}

// Loop plays id forever, until Close.
func (b *Bank) Loop(id feedback.Sound) {
	b.mu.Lock()
	buf, ok := b.buffers[id]
	b.mu.Unlock()
	if !ok {
		b.missing.Report(string(id), "missing sound, loop skipped")
		return
	}
	ctrl := &beep.Ctrl{Streamer: volume(id, beep.Loop(-1, buf.Streamer(0, buf.Len())))}
	b.mu.Lock()
	b.loops = append(b.loops, ctrl)
	b.mu.Unlock()
	b.add(ctrl)
}

// Playing returns the number of streams in the mixer.
func (b *Bank) Playing() int {
	b.lockSpeaker()
	defer b.unlockSpeaker()
	return b.mixer.Len()
}

// Close stops every stream.
func (b *Bank) Close() {
	b.mu.Lock()
	for _, ctrl := range b.loops {
		ctrl.Paused = true
	}
	b.loops = nil
	b.mu.Unlock()

	b.lockSpeaker()
	b.mixer.Clear()
	b.unlockSpeaker()
}

func (b *Bank) streamer(id feedback.Sound) (beep.Streamer, bool) {
	b.mu.Lock()
	buf, ok := b.buffers[id]
	b.mu.Unlock()
	if !ok {
		b.missing.Report(string(id), "missing sound, playing nothing")
		return nil, false
	}
	return volume(id, buf.Streamer(0, buf.Len())), true
}

func (b *Bank) add(s beep.Streamer) {
	b.lockSpeaker()
	b.mixer.Add(s)
	b.unlockSpeaker()
}

func (b *Bank) lockSpeaker() {
	if b.initialized {
		speaker.Lock()
	}
}

func (b *Bank) unlockSpeaker() {
	if b.initialized {
		speaker.Unlock()
	}
}

// volume scales s to the effect's mix level.
func volume(id feedback.Sound, s beep.Streamer) beep.Streamer {
	level, ok := Volumes[id]
	if !ok || level <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(level)}
}
