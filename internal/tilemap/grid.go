// Package tilemap holds the level's tile grid and answers the solidity
// queries the physics resolver and entity AI depend on.
package tilemap

import (
	"sort"

	"chosenoffset.com/soulsworn/internal/geom"
)

// neighborhood is the 3x3 block of cells around a body's anchor tile.
var neighborhood = [9]geom.Coord{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Tile is a single placed tile.
type Tile struct {
	Coord geom.Coord
	Name  string
	Solid bool
}

// Grid is a sparse tile layer.
type Grid struct {
	TileSize     float64
	CeilingProbe int // Cells above a point scanned by HasSolidAbove
	tiles        map[geom.Coord]Tile
}

// NewGrid creates an empty grid.
func NewGrid(tileSize float64, ceilingProbe int) *Grid {
	if ceilingProbe < 1 {
		ceilingProbe = 1
	}
	return &Grid{
		TileSize:     tileSize,
		CeilingProbe: ceilingProbe,
		tiles:        make(map[geom.Coord]Tile),
	}
}

// FromRows builds a grid from an ASCII picture where '#' is solid ground
// and every other rune is empty. Handy for tests and debug levels.
func FromRows(tileSize float64, rows ...string) *Grid {
	g := NewGrid(tileSize, 1)
	for y, row := range rows {
		for x, r := range row {
			if r == '#' {
				g.Set(geom.Coord{X: x, Y: y}, "stone", true)
			}
		}
	}
	return g
}

// Set places a tile, replacing whatever was at c.
func (g *Grid) Set(c geom.Coord, name string, solid bool) {
	g.tiles[c] = Tile{Coord: c, Name: name, Solid: solid}
}

// Clear removes the tile at c.
func (g *Grid) Clear(c geom.Coord) {
	delete(g.tiles, c)
}

// At returns the tile at c.
func (g *Grid) At(c geom.Coord) (Tile, bool) {
	t, ok := g.tiles[c]
	return t, ok
}

// Rect returns the world-space box of cell c.
func (g *Grid) Rect(c geom.Coord) geom.Rect {
	return geom.Rect{
		X: float64(c.X) * g.TileSize,
		Y: float64(c.Y) * g.TileSize,
		W: g.TileSize,
		H: g.TileSize,
	}
}

// SolidRectsNear returns solid tile boxes in the 3x3 cells around pos.
func (g *Grid) SolidRectsNear(pos geom.Vec2) []geom.Rect {
	origin := geom.CoordOf(pos, g.TileSize)
	rects := make([]geom.Rect, 0, len(neighborhood))
	for _, off := range neighborhood {
		c := geom.Coord{X: origin.X + off.X, Y: origin.Y + off.Y}
		if t, ok := g.tiles[c]; ok && t.Solid {
			rects = append(rects, g.Rect(c))
		}
	}
	return rects
}

// IsSolid reports whether p lies in a solid tile.
func (g *Grid) IsSolid(p geom.Vec2) bool {
	t, ok := g.tiles[geom.CoordOf(p, g.TileSize)]
	return ok && t.Solid
}

// HasSolidAbove reports whether any of the CeilingProbe cells directly
// above the cell containing p is solid.
func (g *Grid) HasSolidAbove(p geom.Vec2) bool {
	c := geom.CoordOf(p, g.TileSize)
	for i := 1; i <= g.CeilingProbe; i++ {
		if t, ok := g.tiles[geom.Coord{X: c.X, Y: c.Y - i}]; ok && t.Solid {
			return true
		}
	}
	return false
}

// Tiles returns every placed tile in row-major order.
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, 0, len(g.tiles))
	for _, t := range g.tiles {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coord.Y != out[j].Coord.Y {
			return out[i].Coord.Y < out[j].Coord.Y
		}
		return out[i].Coord.X < out[j].Coord.X
	})
	return out
}

// Len returns the number of placed tiles.
func (g *Grid) Len() int {
	return len(g.tiles)
}
