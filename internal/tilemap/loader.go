package tilemap

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/soulsworn/internal/geom"
)

var log = logrus.WithField("component", "tilemap")

// SpawnPoint defines where an entity starts
type SpawnPoint struct {
	Kind string  `json:"kind"` // player, enemy, chicken, ufo, wall, jump, fireball, dash, health
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Pos returns the spawn position.
func (s SpawnPoint) Pos() geom.Vec2 {
	return geom.V(s.X, s.Y)
}

// MapData represents the level file
type MapData struct {
	Name     string       `json:"name"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	TileSize int          `json:"tile_size"`
	Solid    []string     `json:"solid"` // Tile names that block movement
	Tiles    [][]string   `json:"tiles"` // 2D array of tile names [y][x]; "" is empty
	Spawns   []SpawnPoint `json:"spawns"`
}

// Map is a loaded level: its collision grid plus where things start.
type Map struct {
	Name   string
	Grid   *Grid
	Spawns []SpawnPoint
}

// LoadMap loads a level from a JSON file
func LoadMap(path string, ceilingProbe int) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", path, err)
	}

	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", path, err)
	}

	if err := validateMapData(&mapData); err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", path, err)
	}

	m := Build(&mapData, ceilingProbe)
	log.WithFields(logrus.Fields{"map": m.Name, "tiles": m.Grid.Len(), "spawns": len(m.Spawns)}).Debug("map loaded")
	return m, nil
}

// Build turns validated map data into a Map.
func Build(data *MapData, ceilingProbe int) *Map {
	solid := make(map[string]bool, len(data.Solid))
	for _, name := range data.Solid {
		solid[name] = true
	}

	grid := NewGrid(float64(data.TileSize), ceilingProbe)
	for y, row := range data.Tiles {
		for x, name := range row {
			if name == "" {
				continue
			}
			grid.Set(geom.Coord{X: x, Y: y}, name, solid[name])
		}
	}

	return &Map{
		Name:   data.Name,
		Grid:   grid,
		Spawns: data.Spawns,
	}
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", data.Width, data.Height)
	}

	if data.TileSize <= 0 {
		return fmt.Errorf("invalid tile size: %d", data.TileSize)
	}

	if len(data.Tiles) != data.Height {
		return fmt.Errorf("tiles array height mismatch: expected %d, got %d", data.Height, len(data.Tiles))
	}

	for y, row := range data.Tiles {
		if len(row) != data.Width {
			return fmt.Errorf("tiles array width mismatch at row %d: expected %d, got %d", y, data.Width, len(row))
		}
	}

	players := 0
	for i, s := range data.Spawns {
		if s.Kind == "" {
			return fmt.Errorf("spawn %d has no kind", i)
		}
		if s.Kind == "player" {
			players++
		}
	}
	if players != 1 {
		return fmt.Errorf("expected exactly one player spawn, got %d", players)
	}

	return nil
}
