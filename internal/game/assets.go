package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/soulsworn/internal/anim"
	"chosenoffset.com/soulsworn/internal/entity"
	"chosenoffset.com/soulsworn/internal/projectile"
	"chosenoffset.com/soulsworn/internal/render"
)

// Library kinds for art that is not an entity
const (
	particleKind   = "particle"
	projectileKind = "projectile"
	tileKind       = "tile"
)

type animSpec struct {
	kind     string
	action   anim.Action
	dir      string
	duration int
	loop     bool
}

// defaultDuration matches the hold used when a sheet names none.
const defaultDuration = 5

func entitySpec(kind entity.Kind, action anim.Action, duration int) animSpec {
	name := kind.String()
	return animSpec{
		kind:     name,
		action:   action,
		dir:      filepath.Join("entities", name, string(action)),
		duration: duration,
		loop:     true,
	}
}

func particleSpec(action string, duration int) animSpec {
	return animSpec{
		kind:     particleKind,
		action:   anim.Action(action),
		dir:      filepath.Join("particles", action),
		duration: duration,
	}
}

var animSpecs = []animSpec{
	entitySpec(entity.KindPlayer, anim.Idle, 6),
	entitySpec(entity.KindPlayer, anim.Run, 7),
	entitySpec(entity.KindPlayer, anim.Jump, defaultDuration),
	entitySpec(entity.KindEnemy, anim.Idle, 6),
	entitySpec(entity.KindEnemy, anim.Run, 4),
	entitySpec(entity.KindChicken, anim.Idle, 6),
	entitySpec(entity.KindChicken, anim.Run, 4),
	entitySpec(entity.KindUfo, anim.Idle, 6),
	entitySpec(entity.KindWall, anim.Idle, 6),
	entitySpec(entity.KindJumpPickup, anim.Idle, defaultDuration),
	entitySpec(entity.KindFireballPickup, anim.Idle, 6),
	entitySpec(entity.KindDashPickup, anim.Idle, defaultDuration),
	entitySpec(entity.KindHealthPickup, anim.Idle, defaultDuration),
	particleSpec("particle", particleSheets["particle"].duration),
	particleSpec("swingright", particleSheets["swingright"].duration),
	particleSpec("swingleft", particleSheets["swingleft"].duration),
}

// LoadAssets builds the animation library from <dir>/images. Missing
// folders are skipped and drawn as placeholders; an image that exists but
// cannot be decoded is an error.
func LoadAssets(loader render.ResourceLoader, dir string) (anim.Library, error) {
	root := filepath.Join(dir, "images")
	lib := anim.Library{}

	for _, spec := range animSpecs {
		frames, err := loadFrames(loader, filepath.Join(root, spec.dir))
		if err != nil {
			return nil, err
		}
		if len(frames) == 0 {
			continue
		}
		lib[anim.Key(spec.kind, spec.action)] = anim.New(frames, spec.duration, spec.loop)
	}

	for _, c := range projectile.Classes {
		path := filepath.Join(root, "projectiles", c.String()+".png")
		if err := loadStill(loader, lib, projectileKind, c.String(), path); err != nil {
			return nil, err
		}
	}

	tiles, err := pngNames(filepath.Join(root, "tiles"))
	if err != nil {
		return nil, err
	}
	for _, name := range tiles {
		path := filepath.Join(root, "tiles", name)
		if err := loadStill(loader, lib, tileKind, strings.TrimSuffix(name, ".png"), path); err != nil {
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{"dir": root, "animations": len(lib)}).Info("assets loaded")
	return lib, nil
}

func loadFrames(loader render.ResourceLoader, dir string) ([]interface{}, error) {
	names, err := pngNames(dir)
	if err != nil {
		return nil, err
	}
	frames := make([]interface{}, 0, len(names))
	for _, name := range names {
		img, err := loader.LoadImage(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load animation frame: %w", err)
		}
		frames = append(frames, img)
	}
	return frames, nil
}

func loadStill(loader render.ResourceLoader, lib anim.Library, kind, name, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	img, err := loader.LoadImage(path)
	if err != nil {
		return fmt.Errorf("failed to load %s image: %w", kind, err)
	}
	lib[anim.Key(kind, anim.Action(name))] = anim.New([]interface{}{img}, 1, true)
	return nil
}

// pngNames lists the .png files in dir in name order. A missing dir has none.
func pngNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
