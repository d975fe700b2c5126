package tilemap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/soulsworn/internal/geom"
)

func TestSolidRectsNearOnlyReturnsNeighborhood(t *testing.T) {
	g := FromRows(16,
		"#....#",
		"......",
		"......",
		"######",
	)

	rects := g.SolidRectsNear(geom.V(20, 35))

	// anchor cell (1,2): neighbors span x 0..2, y 1..3
	assert.ElementsMatch(t, []geom.Rect{
		{X: 0, Y: 48, W: 16, H: 16},
		{X: 16, Y: 48, W: 16, H: 16},
		{X: 32, Y: 48, W: 16, H: 16},
	}, rects)
}

func TestIsSolid(t *testing.T) {
	g := FromRows(16, "#.", ".#")

	assert.True(t, g.IsSolid(geom.V(0, 0)))
	assert.True(t, g.IsSolid(geom.V(31.9, 31.9)))
	assert.False(t, g.IsSolid(geom.V(16, 0)))
	assert.False(t, g.IsSolid(geom.V(-1, -1)))
}

func TestNonSolidTilesDoNotCollide(t *testing.T) {
	g := NewGrid(16, 1)
	g.Set(geom.Coord{X: 0, Y: 0}, "grass_decor", false)

	assert.False(t, g.IsSolid(geom.V(4, 4)))
	assert.Empty(t, g.SolidRectsNear(geom.V(4, 4)))
	tile, ok := g.At(geom.Coord{})
	require.True(t, ok)
	assert.Equal(t, "grass_decor", tile.Name)
}

func TestHasSolidAbove(t *testing.T) {
	g := FromRows(16,
		"#..",
		"...",
		"...",
	)

	assert.True(t, g.HasSolidAbove(geom.V(4, 20)))
	assert.False(t, g.HasSolidAbove(geom.V(4, 36)), "probe reaches one cell by default")
	assert.False(t, g.HasSolidAbove(geom.V(20, 20)))

	g.CeilingProbe = 2
	assert.True(t, g.HasSolidAbove(geom.V(4, 36)))
}

func TestTilesAreRowMajor(t *testing.T) {
	g := FromRows(16, ".#", "#.")
	tiles := g.Tiles()
	require.Len(t, tiles, 2)
	assert.Equal(t, geom.Coord{X: 1, Y: 0}, tiles[0].Coord)
	assert.Equal(t, geom.Coord{X: 0, Y: 1}, tiles[1].Coord)
}

func TestLoadMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "0.json")
	data := `{
		"name": "meadow",
		"width": 3, "height": 2, "tile_size": 16,
		"solid": ["grass"],
		"tiles": [["", "", "flower"], ["grass", "grass", "grass"]],
		"spawns": [{"kind": "player", "x": 0, "y": 0}, {"kind": "enemy", "x": 32, "y": 0}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	m, err := LoadMap(path, 1)
	require.NoError(t, err)

	assert.Equal(t, "meadow", m.Name)
	assert.Equal(t, 4, m.Grid.Len())
	assert.True(t, m.Grid.IsSolid(geom.V(40, 20)))
	assert.False(t, m.Grid.IsSolid(geom.V(40, 4)), "flower is decoration")
	require.Len(t, m.Spawns, 2)
	assert.Equal(t, geom.V(32, 0), m.Spawns[1].Pos())
}

func TestLoadMapValidation(t *testing.T) {
	cases := map[string]string{
		"dimensions": `{"width": 0, "height": 1, "tile_size": 16, "tiles": [[]]}`,
		"height":     `{"width": 1, "height": 2, "tile_size": 16, "tiles": [[""]]}`,
		"width":      `{"width": 2, "height": 1, "tile_size": 16, "tiles": [[""]]}`,
		"player":     `{"width": 1, "height": 1, "tile_size": 16, "tiles": [[""]], "spawns": []}`,
		"kind":       `{"width": 1, "height": 1, "tile_size": 16, "tiles": [[""]], "spawns": [{"x": 1}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := LoadMap(path, 1)
			assert.Error(t, err)
		})
	}
}

func TestLoadMapMissingFile(t *testing.T) {
	_, err := LoadMap(filepath.Join(t.TempDir(), "nope.json"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read map file")
}
