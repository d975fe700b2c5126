// Package render abstracts the graphics backend so the game driver can be
// drawn and tested without a window.
package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrQuit ends the game loop cleanly when returned from Game.Update.
var ErrQuit = errors.New("quit")

// Renderer draws primitives that have no source image.
type Renderer interface {
	NewImage(width, height int) Image

	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color)

	// DrawText prints with the backend's built-in debug font.
	DrawText(dst Image, text string, x, y int)
}

// Image is a drawable surface.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)
	SubImage(r image.Rectangle) Image

	Fill(clr color.Color)
	Clear()
	DrawImage(src Image, opts *DrawImageOptions)

	Dispose()
}

// DrawImageOptions controls how an image is blitted.
type DrawImageOptions struct {
	GeoM  GeoM
	Alpha float32 // 0 means fully opaque
}

// GeoM is a 2D affine transform.
type GeoM interface {
	Translate(tx, ty float64)
	Scale(sx, sy float64)
	Reset()
}

// NewGeoM creates an identity transform. The backend replaces it; until
// then transforms are discarded.
var NewGeoM = func() GeoM { return nopGeoM{} }

type nopGeoM struct{}

func (nopGeoM) Translate(float64, float64) {}
func (nopGeoM) Scale(float64, float64)     {}
func (nopGeoM) Reset()                     {}

// InputManager reports keyboard and mouse state.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	IsMouseButtonJustPressed(button MouseButton) bool
}

// Key is a keyboard key.
type Key int

// Keys the game binds
const (
	KeyA Key = iota
	KeyD
	KeyW
	KeyC
	KeyF
	KeyJ
	KeyK
	KeyQ
	KeyR
	KeyUp
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
)

// MouseButton is a mouse button.
type MouseButton int

// Mouse buttons
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
)

// ResourceLoader loads images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game is driven by the Engine once per tick and once per frame.
type Game interface {
	Update() error
	Draw(screen Image)
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine owns the window and the fixed-rate loop.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetTPS(tps int)

	// RunGame blocks until the game ends.
	RunGame(game Game) error
}
