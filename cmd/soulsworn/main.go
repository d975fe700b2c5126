package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/soulsworn/internal/audio"
	"chosenoffset.com/soulsworn/internal/game"
	ebitenrender "chosenoffset.com/soulsworn/internal/render/ebiten"
	"chosenoffset.com/soulsworn/internal/simulation"
	"chosenoffset.com/soulsworn/internal/tilemap"
)

const (
	screenWidth  = 320
	screenHeight = 240
	windowScale  = 2
	ticksPerSec  = 60
)

var log = logrus.WithField("component", "main")

func main() {
	configPath := flag.String("config", "data/rules.yaml", "gameplay rules file; missing means defaults")
	dataDir := flag.String("data", "data", "directory holding maps/, images/ and sfx/")
	level := flag.Int("level", 0, "level to start on")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for the run")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.WithError(err).Fatal("bad log level")
	}
	logrus.SetLevel(lvl)

	if err := run(*configPath, *dataDir, *level, *seed, *mute); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}

func run(configPath, dataDir string, level int, seed int64, mute bool) error {
	cfg, err := simulation.LoadConfig(configPath)
	if err != nil {
		return err
	}

	maps, err := loadMaps(filepath.Join(dataDir, "maps"), cfg.Physics.CeilingProbe)
	if err != nil {
		return err
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	anims, err := game.LoadAssets(loader, dataDir)
	if err != nil {
		return err
	}

	var sounds game.Sounds
	if !mute {
		bank := audio.NewBank()
		defer bank.Close()
		if err := bank.Initialize(); err != nil {
			log.WithError(err).Warn("audio unavailable, continuing silently")
		} else if _, err := bank.LoadDir(filepath.Join(dataDir, "sfx")); err != nil {
			log.WithError(err).Warn("no sound effects loaded")
		}
		sounds = bank
	}

	g, err := game.New(game.Options{
		Config:   cfg,
		Maps:     maps,
		Level:    level,
		Seed:     seed,
		Width:    screenWidth,
		Height:   screenHeight,
		Renderer: renderer,
		Input:    inputMgr,
		Sounds:   sounds,
		Anims:    anims,
	})
	if err != nil {
		return err
	}
	g.StartAmbience()

	engine.SetWindowSize(screenWidth*windowScale, screenHeight*windowScale)
	engine.SetWindowTitle("Soulsworn")
	engine.SetTPS(ticksPerSec)

	log.WithFields(logrus.Fields{"level": level, "seed": seed, "maps": len(maps)}).Info("starting game")
	return engine.RunGame(g)
}

// loadMaps loads every <n>.json in dir, ordered by n.
func loadMaps(dir string, ceilingProbe int) ([]*tilemap.Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}

	type indexed struct {
		n    int
		path string
	}
	var files []indexed
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil {
			log.WithField("file", name).Warn("map file is not numbered, skipping")
			continue
		}
		files = append(files, indexed{n: n, path: filepath.Join(dir, name)})
	}
	if len(files) == 0 {
		return nil, errors.New("no numbered maps in " + dir)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].n < files[j].n })

	maps := make([]*tilemap.Map, 0, len(files))
	for _, f := range files {
		m, err := tilemap.LoadMap(f.path, ceilingProbe)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, nil
}
