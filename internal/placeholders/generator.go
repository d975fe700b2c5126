// Package placeholders draws stand-in art so the game runs before real
// sprites exist. The files it writes follow the layout game.LoadAssets reads.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/soulsworn/internal/anim"
	"chosenoffset.com/soulsworn/internal/entity"
	"chosenoffset.com/soulsworn/internal/projectile"
	"chosenoffset.com/soulsworn/internal/simulation"
)

var log = logrus.WithField("component", "placeholders")

// Palette defines the placeholder colors (meadow theme)
var Palette = struct {
	Stone   color.RGBA
	Grass   color.RGBA
	Border  color.RGBA
	Player  color.RGBA
	Enemy   color.RGBA
	Chicken color.RGBA
	Ufo     color.RGBA
	Wall    color.RGBA
	Pickup  color.RGBA
	Shot    color.RGBA
	Dust    color.RGBA
}{
	Stone:   color.RGBA{107, 85, 63, 255},
	Grass:   color.RGBA{63, 138, 58, 255},
	Border:  color.RGBA{40, 32, 24, 255},
	Player:  color.RGBA{240, 224, 96, 255},
	Enemy:   color.RGBA{160, 48, 48, 255},
	Chicken: color.RGBA{248, 248, 240, 255},
	Ufo:     color.RGBA{144, 144, 168, 255},
	Wall:    color.RGBA{176, 64, 96, 255},
	Pickup:  color.RGBA{64, 192, 240, 255},
	Shot:    color.RGBA{255, 160, 32, 255},
	Dust:    color.RGBA{208, 208, 208, 255},
}

// Frames per placeholder animation.
const Frames = 4

type sprite struct {
	kind    entity.Kind
	actions []anim.Action
	size    simulation.Size
	fill    color.RGBA
	round   bool
}

// Generate writes placeholder images for every entity, particle,
// projectile and tile under <dir>/images.
func Generate(dir string, cfg *simulation.Config) error {
	root := filepath.Join(dir, "images")
	pickup := simulation.Size{W: 16, H: 16}
	walking := []anim.Action{anim.Idle, anim.Run}
	sprites := []sprite{
		{entity.KindPlayer, []anim.Action{anim.Idle, anim.Run, anim.Jump}, cfg.Player.Size, Palette.Player, false},
		{entity.KindEnemy, walking, cfg.Enemy.Size, Palette.Enemy, false},
		{entity.KindChicken, walking, cfg.Chicken.Size, Palette.Chicken, true},
		{entity.KindUfo, []anim.Action{anim.Idle}, cfg.Ufo.Size, Palette.Ufo, true},
		{entity.KindWall, []anim.Action{anim.Idle}, cfg.Wall.Size, Palette.Wall, false},
		{entity.KindJumpPickup, []anim.Action{anim.Idle}, pickup, Palette.Pickup, true},
		{entity.KindFireballPickup, []anim.Action{anim.Idle}, pickup, Palette.Shot, true},
		{entity.KindDashPickup, []anim.Action{anim.Idle}, pickup, Lighten(Palette.Pickup, 0.4), true},
		{entity.KindHealthPickup, []anim.Action{anim.Idle}, pickup, Palette.Enemy, true},
	}

	count := 0
	for _, s := range sprites {
		w, h := int(s.size.W), int(s.size.H)
		for _, action := range s.actions {
			out := filepath.Join(root, "entities", s.kind.String(), string(action))
			for i := 0; i < Frames; i++ {
				// Frames pulse slightly so animation is visible
				fill := Darken(s.fill, 1-0.08*float64(i%2))
				img := CreateBox(w, h, fill, Darken(fill, 0.6))
				if s.round {
					img = CreateCircle(w, h, fill, Darken(fill, 0.6))
				}
				if err := save(img, out, fmt.Sprintf("%d.png", i)); err != nil {
					return err
				}
				count++
			}
		}
	}

	for _, name := range []string{"particle", "swingleft", "swingright"} {
		out := filepath.Join(root, "particles", name)
		for i := 0; i < Frames; i++ {
			r := 3 - i*3/Frames
			img := CreateCircle(2*r+1, 2*r+1, Palette.Dust, Palette.Dust)
			if err := save(img, out, fmt.Sprintf("%d.png", i)); err != nil {
				return err
			}
			count++
		}
	}

	for _, c := range projectile.Classes {
		img := CreateBox(6, 3, Palette.Shot, Darken(Palette.Shot, 0.7))
		if c == projectile.Sword {
			img = CreateBox(12, 3, Lighten(Palette.Ufo, 0.5), Palette.Ufo)
		}
		if err := save(img, filepath.Join(root, "projectiles"), c.String()+".png"); err != nil {
			return err
		}
		count++
	}

	tile := int(cfg.Physics.TileSize)
	tiles := map[string]*image.RGBA{
		"stone": CreateBox(tile, tile, Palette.Stone, Palette.Border),
		"grass": CreateBox(tile, tile, Palette.Grass, Darken(Palette.Grass, 0.6)),
	}
	for name, img := range tiles {
		if err := save(img, filepath.Join(root, "tiles"), name+".png"); err != nil {
			return err
		}
		count++
	}

	log.WithFields(logrus.Fields{"dir": root, "images": count}).Info("placeholders written")
	return nil
}

// CreateBox creates a filled rectangle with a one pixel border
func CreateBox(w, h int, fill, border color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)
	for x := 0; x < w; x++ {
		img.Set(x, 0, border)
		img.Set(x, h-1, border)
	}
	for y := 0; y < h; y++ {
		img.Set(0, y, border)
		img.Set(w-1, y, border)
	}
	return img
}

// CreateCircle creates an ellipse inscribed in a w×h sprite with a
// transparent background
func CreateCircle(w, h int, fill, outline color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w-1)/2, float64(h-1)/2
	rx, ry := float64(w)/2, float64(h)/2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := (float64(x)-cx)/rx, (float64(y)-cy)/ry
			d := dx*dx + dy*dy
			switch {
			case d <= 0.7:
				img.Set(x, y, fill)
			case d <= 1:
				img.Set(x, y, outline)
			}
		}
	}
	return img
}

func save(img image.Image, dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
