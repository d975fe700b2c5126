// Package ebiten implements the render interfaces on top of Ebitengine.
package ebiten

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/soulsworn/internal/render"
)

func init() {
	render.NewGeoM = func() render.GeoM {
		return &GeoM{}
	}
}

// Renderer implements render.Renderer.
type Renderer struct{}

// NewRenderer creates an Ebitengine renderer.
func NewRenderer() render.Renderer {
	return &Renderer{}
}

// NewImage creates an offscreen image.
func (r *Renderer) NewImage(width, height int) render.Image {
	return &Image{img: ebiten.NewImage(width, height)}
}

// FillRect draws a filled rectangle.
func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(unwrap(dst), x, y, width, height, clr, false)
}

// FillCircle draws a filled circle.
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(unwrap(dst), x, y, radius, clr, true)
}

// StrokeLine draws a line segment.
func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color) {
	vector.StrokeLine(unwrap(dst), x0, y0, x1, y1, strokeWidth, clr, true)
}

// DrawText prints with the debug font, which is always white.
func (r *Renderer) DrawText(dst render.Image, str string, x, y int) {
	ebitenutil.DebugPrintAt(unwrap(dst), str, x, y)
}

// Image wraps an *ebiten.Image.
type Image struct {
	img *ebiten.Image
}

func unwrap(i render.Image) *ebiten.Image {
	return i.(*Image).img
}

// Bounds returns the image bounds.
func (i *Image) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Size returns the width and height.
func (i *Image) Size() (width, height int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// SubImage returns a view of part of the image.
func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{img: i.img.SubImage(r).(*ebiten.Image)}
}

// Fill fills the image with clr.
func (i *Image) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear makes the image transparent.
func (i *Image) Clear() {
	i.img.Clear()
}

// Dispose releases the image.
func (i *Image) Dispose() {
	if i.img != nil {
		i.img.Deallocate()
	}
}

// DrawImage blits src onto the image.
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	op := &ebiten.DrawImageOptions{}
	if opts != nil {
		if g, ok := opts.GeoM.(*GeoM); ok && g != nil {
			op.GeoM = g.m
		}
		if opts.Alpha > 0 {
			op.ColorScale.ScaleAlpha(opts.Alpha)
		}
	}
	i.img.DrawImage(unwrap(src), op)
}

// GeoM wraps ebiten.GeoM.
type GeoM struct {
	m ebiten.GeoM
}

// Translate shifts by (tx, ty).
func (g *GeoM) Translate(tx, ty float64) {
	g.m.Translate(tx, ty)
}

// Scale scales by (sx, sy).
func (g *GeoM) Scale(sx, sy float64) {
	g.m.Scale(sx, sy)
}

// Reset restores the identity.
func (g *GeoM) Reset() {
	g.m.Reset()
}

// InputManager reads Ebitengine's input state.
type InputManager struct{}

// NewInputManager creates an input manager.
func NewInputManager() render.InputManager {
	return &InputManager{}
}

// IsKeyPressed reports whether key is held.
func (m *InputManager) IsKeyPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed reports whether key went down this tick.
func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && inpututil.IsKeyJustPressed(k)
}

// IsMouseButtonJustPressed reports whether button went down this tick.
func (m *InputManager) IsMouseButtonJustPressed(button render.MouseButton) bool {
	b := ebiten.MouseButtonLeft
	if button == render.MouseButtonRight {
		b = ebiten.MouseButtonRight
	}
	return inpututil.IsMouseButtonJustPressed(b)
}

var keys = map[render.Key]ebiten.Key{
	render.KeyA:      ebiten.KeyA,
	render.KeyD:      ebiten.KeyD,
	render.KeyW:      ebiten.KeyW,
	render.KeyC:      ebiten.KeyC,
	render.KeyF:      ebiten.KeyF,
	render.KeyJ:      ebiten.KeyJ,
	render.KeyK:      ebiten.KeyK,
	render.KeyQ:      ebiten.KeyQ,
	render.KeyR:      ebiten.KeyR,
	render.KeyUp:     ebiten.KeyArrowUp,
	render.KeyLeft:   ebiten.KeyArrowLeft,
	render.KeyRight:  ebiten.KeyArrowRight,
	render.KeySpace:  ebiten.KeySpace,
	render.KeyEnter:  ebiten.KeyEnter,
	render.KeyEscape: ebiten.KeyEscape,
}

// ResourceLoader loads images through ebitenutil.
type ResourceLoader struct{}

// NewResourceLoader creates a loader.
func NewResourceLoader() render.ResourceLoader {
	return &ResourceLoader{}
}

// LoadImage decodes the image at path.
func (l *ResourceLoader) LoadImage(path string) (render.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return &Image{img: img}, nil
}

// Engine runs the game in an Ebitengine window.
type Engine struct{}

// NewEngine creates an engine.
func NewEngine() render.Engine {
	return &Engine{}
}

// SetWindowSize sets the window size in pixels.
func (e *Engine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *Engine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetTPS sets the fixed update rate.
func (e *Engine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// RunGame runs until the game returns an error. render.ErrQuit is not
// reported.
func (e *Engine) RunGame(game render.Game) error {
	err := ebiten.RunGame(&adapter{game: game})
	if errors.Is(err, render.ErrQuit) {
		return nil
	}
	return err
}

type adapter struct {
	game render.Game
}

func (a *adapter) Update() error {
	return a.game.Update()
}

func (a *adapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&Image{img: screen})
}

func (a *adapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
