package game

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/soulsworn/internal/anim"
	"chosenoffset.com/soulsworn/internal/clock"
	"chosenoffset.com/soulsworn/internal/entity"
	"chosenoffset.com/soulsworn/internal/feedback"
	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/projectile"
	"chosenoffset.com/soulsworn/internal/render"
	"chosenoffset.com/soulsworn/internal/tilemap"
	"chosenoffset.com/soulsworn/internal/world"
)

// fakeInput reports a fixed set of held and fresh keys.
type fakeInput struct {
	held  map[render.Key]bool
	fresh map[render.Key]bool
	click bool
}

func newInput() *fakeInput {
	return &fakeInput{held: map[render.Key]bool{}, fresh: map[render.Key]bool{}}
}

func (f *fakeInput) IsKeyPressed(k render.Key) bool     { return f.held[k] }
func (f *fakeInput) IsKeyJustPressed(k render.Key) bool { return f.fresh[k] }
func (f *fakeInput) IsMouseButtonJustPressed(b render.MouseButton) bool {
	return f.click && b == render.MouseButtonLeft
}

func (f *fakeInput) release() {
	f.fresh = map[render.Key]bool{}
	f.click = false
}

// fakeImage is a surface that only counts blits.
type fakeImage struct {
	w, h  int
	blits int
	fills []color.Color
}

func (i *fakeImage) Bounds() image.Rectangle                          { return image.Rect(0, 0, i.w, i.h) }
func (i *fakeImage) Size() (int, int)                                 { return i.w, i.h }
func (i *fakeImage) SubImage(image.Rectangle) render.Image            { return i }
func (i *fakeImage) Fill(c color.Color)                               { i.fills = append(i.fills, c) }
func (i *fakeImage) Clear()                                           {}
func (i *fakeImage) DrawImage(render.Image, *render.DrawImageOptions) { i.blits++ }
func (i *fakeImage) Dispose()                                         {}

// fakeRenderer records what it was asked to draw.
type fakeRenderer struct {
	rects   []color.Color
	circles int
	lines   int
	texts   []string
}

func (r *fakeRenderer) NewImage(w, h int) render.Image { return &fakeImage{w: w, h: h} }
func (r *fakeRenderer) FillRect(_ render.Image, _, _, _, _ float32, c color.Color) {
	r.rects = append(r.rects, c)
}
func (r *fakeRenderer) FillCircle(render.Image, float32, float32, float32, color.Color) { r.circles++ }
func (r *fakeRenderer) StrokeLine(render.Image, float32, float32, float32, float32, float32, color.Color) {
	r.lines++
}
func (r *fakeRenderer) DrawText(_ render.Image, text string, _, _ int) { r.texts = append(r.texts, text) }

func (r *fakeRenderer) count(c color.Color) int {
	n := 0
	for _, got := range r.rects {
		if got == c {
			n++
		}
	}
	return n
}

type looper struct {
	feedback.Recorder
	loops []feedback.Sound
}

func (l *looper) Loop(id feedback.Sound) { l.loops = append(l.loops, id) }

var floor = []string{
	"", "", "", "",
	"stone",
}

func testMap(name string, spawns ...tilemap.SpawnPoint) *tilemap.Map {
	rows := make([][]string, len(floor))
	for y, tile := range floor {
		rows[y] = make([]string, 20)
		for x := range rows[y] {
			rows[y][x] = tile
		}
	}
	return tilemap.Build(&tilemap.MapData{
		Name:     name,
		Width:    20,
		Height:   len(rows),
		TileSize: 16,
		Solid:    []string{"stone"},
		Tiles:    rows,
		Spawns:   spawns,
	}, 1)
}

var (
	playerSpawn = tilemap.SpawnPoint{Kind: "player", X: 16, Y: 48}
	farEnemy    = tilemap.SpawnPoint{Kind: "enemy", X: 288, Y: 48}
)

type fixture struct {
	g     *Game
	input *fakeInput
	rend  *fakeRenderer
	rec   *feedback.Recorder
}

func newFixture(t *testing.T, maps ...*tilemap.Map) *fixture {
	t.Helper()
	f := &fixture{input: newInput(), rend: &fakeRenderer{}, rec: &feedback.Recorder{}}
	g, err := New(Options{
		Maps:     maps,
		Seed:     7,
		Clock:    clock.NewManual(0),
		Width:    320,
		Height:   240,
		Renderer: f.rend,
		Input:    f.input,
		Sounds:   f.rec,
	})
	require.NoError(t, err)
	f.g = g
	return f
}

func (f *fixture) update(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.g.Update())
	}
}

func TestNewRejectsUnplayableSetups(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{Maps: []*tilemap.Map{testMap("a", playerSpawn)}, Level: 1})
	assert.Error(t, err)

	_, err = New(Options{Maps: []*tilemap.Map{testMap("empty", farEnemy)}})
	assert.ErrorContains(t, err, "no player spawn")
}

func TestReadInputMapsKeys(t *testing.T) {
	f := newFixture(t, testMap("a", playerSpawn, farEnemy))

	f.input.held[render.KeyD] = true
	f.input.fresh[render.KeySpace] = true
	f.input.fresh[render.KeyK] = true
	assert.Equal(t, world.Input{MoveX: 1, Jump: true, Cast: true}, f.g.readInput())

	f.input.held[render.KeyLeft] = true
	f.input.release()
	f.input.click = true
	f.input.fresh[render.KeyF] = true
	assert.Equal(t, world.Input{MoveX: 0, Attack: true, Dash: true}, f.g.readInput(), "opposite keys cancel")
}

func TestHeldKeyMovesPlayer(t *testing.T) {
	f := newFixture(t, testMap("a", playerSpawn, farEnemy))
	start := f.g.World.Player.Pos.X()

	f.input.held[render.KeyD] = true
	f.update(t, 10)

	assert.InDelta(t, start+25, f.g.World.Player.Pos.X(), 1e-9)
	assert.False(t, f.g.World.Player.FacingLeft)
}

func TestClearedLevelAdvancesAfterTransition(t *testing.T) {
	f := newFixture(t, testMap("first", playerSpawn), testMap("second", playerSpawn, farEnemy))

	// The fade-in counts twice as fast while it is still negative
	f.update(t, 45)
	assert.Equal(t, 0, f.g.Level)
	assert.Zero(t, f.rec.Played(feedback.SoundBeatLevel))

	f.update(t, 1)
	assert.Equal(t, 1, f.g.Level)
	assert.Equal(t, 1, f.rec.Played(feedback.SoundBeatLevel))
	assert.Equal(t, 1, f.g.World.EnemiesRemaining())
	assert.Equal(t, -transitionFrames+1, f.g.transition, "the new level starts fading in on the same tick")
}

func TestClearingLastLevelWins(t *testing.T) {
	f := newFixture(t, testMap("only", playerSpawn))

	f.update(t, 46)
	assert.True(t, f.g.Won)
	assert.Equal(t, 0, f.g.Level)
	assert.Equal(t, 1, f.rec.Played(feedback.SoundBeatGame))
	assert.Zero(t, f.rec.Played(feedback.SoundBeatLevel))

	f.update(t, 60)
	assert.Equal(t, 1, f.rec.Played(feedback.SoundBeatGame), "the win plays once")
}

func TestDeathCountdownRestartsLevel(t *testing.T) {
	f := newFixture(t, testMap("a", playerSpawn, farEnemy))
	p := f.g.World.Player
	p.Pos = geom.V(100, 48)
	p.Kill()

	f.update(t, 9)
	assert.Zero(t, f.rec.Played(feedback.SoundPlayerDead))
	f.update(t, 1)
	assert.Equal(t, 1, f.rec.Played(feedback.SoundPlayerDead))

	f.update(t, 30)
	assert.True(t, p.IsDead())

	f.update(t, 1)
	assert.False(t, p.IsDead())
	assert.Equal(t, p.MaxHealth(), p.Health())
	assert.Equal(t, playerSpawn.Pos(), p.Pos)
	assert.Equal(t, 0, f.g.dead)
}

func TestPauseFreezesAndOffersRestartAndQuit(t *testing.T) {
	f := newFixture(t, testMap("a", playerSpawn, farEnemy))
	f.update(t, 3)
	ticks := f.g.World.Ticks()

	f.input.fresh[render.KeyEscape] = true
	f.update(t, 1)
	f.input.release()
	assert.True(t, f.g.Paused)
	assert.Equal(t, 1, f.rec.Played(feedback.SoundOpenPauseMenu))

	f.update(t, 5)
	assert.Equal(t, ticks, f.g.World.Ticks())

	f.input.fresh[render.KeyR] = true
	f.update(t, 1)
	f.input.release()
	assert.False(t, f.g.Paused)

	f.input.fresh[render.KeyEscape] = true
	f.update(t, 1)
	f.input.release()
	f.input.fresh[render.KeyQ] = true
	assert.True(t, errors.Is(f.g.Update(), render.ErrQuit))
}

func TestStartAmbienceNeedsLooper(t *testing.T) {
	f := newFixture(t, testMap("a", playerSpawn, farEnemy))
	assert.NotPanics(t, f.g.StartAmbience)

	l := &looper{}
	f.g.Effects.Sounds = l
	f.g.StartAmbience()
	assert.Equal(t, []feedback.Sound{feedback.SoundAmbience, feedback.SoundChickenAmbience}, l.loops)
}

func TestDrawUsesPlaceholdersWithoutArt(t *testing.T) {
	f := newFixture(t, testMap("a", playerSpawn, farEnemy))
	f.g.Effects.Spark(geom.V(50, 50), 0, 2)
	f.g.Effects.Particle(feedback.ParticleDust, geom.V(50, 50), geom.Vec2{}, 0)
	f.g.World.Shots.Fire(projectile.EnemyShot, geom.V(60, 50), 1.5)

	screen := &fakeImage{w: 320, h: 240}
	f.g.Draw(screen)

	assert.Equal(t, 1, screen.blits, "the scene lands on the screen once")
	assert.Equal(t, 20, f.rend.count(solidTileColor))
	assert.Equal(t, 1, f.rend.count(kindColors[entity.KindEnemy]), "one enemy placeholder")
	assert.Equal(t, 3, f.rend.count(heartColor))
	assert.Equal(t, 1, f.rend.lines)
	assert.Equal(t, 2, f.rend.circles)
	require.NotEmpty(t, f.rend.texts)
	assert.Contains(t, f.rend.texts[0], "LV 0")

	f.g.Paused = true
	f.g.Draw(screen)
	assert.Contains(t, f.rend.texts, "PAUSED")
}

// stubLoader hands out blank images for any path that exists.
type stubLoader struct {
	fail string
}

func (l stubLoader) LoadImage(path string) (render.Image, error) {
	if l.fail != "" && filepath.Base(path) == l.fail {
		return nil, errors.New("corrupt")
	}
	return &fakeImage{w: 16, h: 16}, nil
}

func writePNGs(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
}

func TestLoadAssetsFromDataDir(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	writePNGs(t, filepath.Join(images, "entities", "player", "idle"), "0.png", "1.png", "notes.txt")
	writePNGs(t, filepath.Join(images, "particles", "particle"), "0.png", "1.png", "2.png", "3.png")
	writePNGs(t, filepath.Join(images, "projectiles"), "fireball.png")
	writePNGs(t, filepath.Join(images, "tiles"), "stone.png", "grass.png")

	lib, err := LoadAssets(stubLoader{}, dir)
	require.NoError(t, err)

	idle := lib.Animation("player", anim.Idle)
	require.NotNil(t, idle)
	assert.NotNil(t, lib.FrameAt("player", anim.Idle, 6), "second frame after six ticks")
	assert.Nil(t, lib.Animation("player", anim.Run))
	assert.NotNil(t, lib.FrameAt(particleKind, "particle", 23))
	assert.NotNil(t, lib.FrameAt(projectileKind, "fireball", 0))
	assert.Nil(t, lib.FrameAt(projectileKind, "egg", 0))
	assert.NotNil(t, lib.FrameAt(tileKind, "stone", 0))
	assert.NotNil(t, lib.FrameAt(tileKind, "grass", 0))

	_, err = LoadAssets(stubLoader{fail: "1.png"}, dir)
	assert.ErrorContains(t, err, "corrupt")
}

func TestLoadAssetsWithoutImagesIsEmpty(t *testing.T) {
	lib, err := LoadAssets(stubLoader{}, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, lib)
}
