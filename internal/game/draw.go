package game

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/soulsworn/internal/anim"
	"chosenoffset.com/soulsworn/internal/entity"
	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/projectile"
	"chosenoffset.com/soulsworn/internal/render"
)

var (
	skyColor       = color.RGBA{R: 0x5c, G: 0x9e, B: 0xd6, A: 0xff}
	solidTileColor = color.RGBA{R: 0x6b, G: 0x55, B: 0x3f, A: 0xff}
	decorTileColor = color.RGBA{R: 0x3f, G: 0x8a, B: 0x3a, A: 0xff}
	hitColor       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	sparkColor     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dustColor      = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xc0}
	heartColor     = color.RGBA{R: 0xd8, G: 0x20, B: 0x30, A: 0xff}
	emptyHeart     = color.RGBA{R: 0x40, G: 0x18, B: 0x1c, A: 0xff}
	overlayColor   = color.RGBA{A: 0xa0}
)

// Placeholder colors when an entity has no art.
var kindColors = map[entity.Kind]color.RGBA{
	entity.KindPlayer:         {R: 0xf0, G: 0xe0, B: 0x60, A: 0xff},
	entity.KindEnemy:          {R: 0xa0, G: 0x30, B: 0x30, A: 0xff},
	entity.KindChicken:        {R: 0xf8, G: 0xf8, B: 0xf0, A: 0xff},
	entity.KindUfo:            {R: 0x90, G: 0x90, B: 0xa8, A: 0xff},
	entity.KindWall:           {R: 0xb0, G: 0x40, B: 0x60, A: 0xff},
	entity.KindJumpPickup:     {R: 0x40, G: 0xc0, B: 0xf0, A: 0xff},
	entity.KindFireballPickup: {R: 0xf0, G: 0x80, B: 0x20, A: 0xff},
	entity.KindDashPickup:     {R: 0x60, G: 0xf0, B: 0x90, A: 0xff},
	entity.KindHealthPickup:   {R: 0xf0, G: 0x40, B: 0x80, A: 0xff},
}

var shotColors = map[projectile.Class]color.RGBA{
	projectile.EnemyShot: {R: 0xff, G: 0x50, B: 0x50, A: 0xff},
	projectile.Fireball:  {R: 0xff, G: 0xa0, B: 0x20, A: 0xff},
	projectile.Sword:     {R: 0xe0, G: 0xe8, B: 0xff, A: 0xff},
	projectile.Egg:       {R: 0xff, G: 0xf4, B: 0xd0, A: 0xff},
}

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	w, h := screen.Size()

	// The scene is drawn offscreen so screenshake can move it as one piece
	if g.scene == nil || needsResize(g.scene, w, h) {
		if g.scene != nil {
			g.scene.Dispose()
		}
		g.scene = g.Renderer.NewImage(w, h)
	}

	ox, oy := g.Camera.Offset()
	g.scene.Fill(skyColor)
	g.drawTiles(g.scene, ox, oy, w, h)
	g.drawEntities(g.scene, ox, oy)
	g.drawShots(g.scene, ox, oy)
	g.drawEffects(g.scene, ox, oy)
	g.drawTransition(g.scene, w, h)

	screen.Fill(color.Black)
	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	opts.GeoM.Translate(g.shakeOffset())
	screen.DrawImage(g.scene, opts)

	g.drawHUD(screen)
	if g.Paused {
		g.drawPauseMenu(screen, w, h)
	}
}

func needsResize(img render.Image, w, h int) bool {
	bounds := img.Bounds()
	return bounds.Dx() != w || bounds.Dy() != h
}

func (g *Game) shakeOffset() (float64, float64) {
	amount := g.World.FX.Shake.Amount()
	if amount == 0 {
		return 0, 0
	}
	return g.cosmetic.Float64()*amount - amount/2, g.cosmetic.Float64()*amount - amount/2
}

func (g *Game) drawTiles(dst render.Image, ox, oy float64, w, h int) {
	grid := g.currentMap().Grid
	size := grid.TileSize
	for _, t := range grid.Tiles() {
		x := float64(t.Coord.X)*size - ox
		y := float64(t.Coord.Y)*size - oy
		if x+size < 0 || y+size < 0 || x > float64(w) || y > float64(h) {
			continue
		}
		if img, ok := g.Anims.FrameAt(tileKind, anim.Action(t.Name), 0).(render.Image); ok {
			g.blit(dst, img, x, y, false, 0)
			continue
		}
		clr := decorTileColor
		if t.Solid {
			clr = solidTileColor
		}
		g.Renderer.FillRect(dst, float32(x), float32(y), float32(size), float32(size), clr)
	}
}

func (g *Game) drawEntities(dst render.Image, ox, oy float64) {
	w := g.World
	for _, e := range w.Enemies {
		g.drawBody(dst, &e.Base, e.IsHit(), ox, oy)
	}
	for _, c := range w.Chickens {
		g.drawBody(dst, &c.Base, c.IsHit(), ox, oy)
	}
	for _, wall := range w.Walls {
		g.drawBody(dst, &wall.Base, wall.IsHit(), ox, oy)
	}
	for _, u := range w.Ufos {
		g.drawBody(dst, &u.Base, u.IsHit(), ox, oy)
	}
	for _, p := range w.Pickups {
		g.drawBody(dst, &p.Base, false, ox, oy)
	}

	p := w.Player
	if p.IsDead() {
		return
	}
	// Blink while invulnerable
	if !p.Vulnerable() && (w.Ticks()/4)%2 == 0 {
		return
	}
	g.drawBody(dst, &p.Base, p.IsHit(), ox, oy)
}

func (g *Game) drawBody(dst render.Image, b *entity.Base, hit bool, ox, oy float64) {
	x, y := b.Pos.X()-ox, b.Pos.Y()-oy
	img, ok := b.Frame().(render.Image)
	if !ok {
		clr := kindColors[b.Kind]
		if hit {
			clr = hitColor
		}
		g.Renderer.FillRect(dst, float32(x), float32(y), float32(b.Size.X()), float32(b.Size.Y()), clr)
		return
	}
	var alpha float32
	if hit {
		alpha = 0.5
	}
	g.blit(dst, img, x, y, b.FacingLeft, alpha)
}

// blit draws img with its top-left at x, y, mirrored when flip is set.
func (g *Game) blit(dst, img render.Image, x, y float64, flip bool, alpha float32) {
	opts := &render.DrawImageOptions{GeoM: render.NewGeoM(), Alpha: alpha}
	if flip {
		iw, _ := img.Size()
		opts.GeoM.Scale(-1, 1)
		opts.GeoM.Translate(float64(iw), 0)
	}
	opts.GeoM.Translate(x, y)
	dst.DrawImage(img, opts)
}

func (g *Game) drawShots(dst render.Image, ox, oy float64) {
	for _, c := range projectile.Classes {
		img, hasImg := g.Anims.FrameAt(projectileKind, anim.Action(c.String()), 0).(render.Image)
		for _, p := range g.World.Shots.List(c).Items() {
			x, y := p.Pos.X()-ox, p.Pos.Y()-oy
			if !hasImg {
				g.Renderer.FillCircle(dst, float32(x), float32(y), 2, shotColors[c])
				continue
			}
			iw, ih := img.Size()
			g.blit(dst, img, x-float64(iw)/2, y-float64(ih)/2, p.Dir < 0, 0)
		}
	}
}

func (g *Game) drawEffects(dst render.Image, ox, oy float64) {
	for _, s := range g.Effects.Sparks {
		dir := geom.V(math.Cos(s.Angle), math.Sin(s.Angle)).Mul(s.Speed * 3)
		front, back := s.Pos.Add(dir), s.Pos.Sub(dir)
		width := float32(math.Max(1, s.Speed*0.5))
		g.Renderer.StrokeLine(dst,
			float32(back.X()-ox), float32(back.Y()-oy),
			float32(front.X()-ox), float32(front.Y()-oy),
			width, sparkColor)
	}
	for _, p := range g.Effects.Particles {
		x, y := p.Pos.X()-ox, p.Pos.Y()-oy
		img, ok := g.Anims.FrameAt(particleKind, anim.Action(p.Kind), p.Frame).(render.Image)
		if !ok {
			g.Renderer.FillCircle(dst, float32(x), float32(y), 1.5, dustColor)
			continue
		}
		iw, ih := img.Size()
		g.blit(dst, img, x-float64(iw)/2, y-float64(ih)/2, false, 0)
	}
}

func (g *Game) drawTransition(dst render.Image, w, h int) {
	if g.transition == 0 {
		return
	}
	t := math.Min(1, math.Abs(float64(g.transition))/transitionFrames)
	g.Renderer.FillRect(dst, 0, 0, float32(w), float32(h), color.RGBA{A: uint8(t * 0xff)})
}

func (g *Game) drawHUD(screen render.Image) {
	p := g.World.Player
	for i := 0; i < p.MaxHealth(); i++ {
		clr := emptyHeart
		if i < p.Health() {
			clr = heartColor
		}
		g.Renderer.FillRect(screen, float32(8+i*13), 8, 8, 8, clr)
	}

	now := g.World.Clock.NowMS()
	g.Renderer.DrawText(screen, fmt.Sprintf("LV %d  JUMP %d/%d  DASH %d/%d  FIRE %d/%d  FOES %d",
		g.Level,
		p.Jumps.Available, p.Jumps.Capacity,
		p.Kit.Dash.Charges.Ready(now), p.Kit.Dash.Charges.Len(),
		p.Fireballs.Available, p.Fireballs.Capacity,
		g.World.EnemiesRemaining()), 8, 20)

	if g.Won {
		g.Renderer.DrawText(screen, "ALL LEVELS CLEARED", g.ScreenWidth/2-54, g.ScreenHeight/3)
	}
}

func (g *Game) drawPauseMenu(screen render.Image, w, h int) {
	g.Renderer.FillRect(screen, 0, 0, float32(w), float32(h), overlayColor)
	g.Renderer.DrawText(screen, "PAUSED", w/2-18, h/2-24)
	g.Renderer.DrawText(screen, "[ESC] RESUME  [R] RESTART  [Q] QUIT", w/2-105, h/2)
}
