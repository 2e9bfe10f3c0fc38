// Package preview rasterizes generated levels into a core.Screen so they can
// be printed as text or drawn by the terminal viewer.
package preview

import (
	"math"

	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/level"
)

// Glyphs used by the preview.
const (
	GlyphPlatform   = '='
	GlyphMoving     = '~'
	GlyphBlinking   = ':'
	GlyphVanished   = '.'
	GlyphCoin       = 'o'
	GlyphBonus      = '$'
	GlyphHazard     = '^'
	GlyphSpecial    = '*'
	GlyphEnemy      = 'E'
	GlyphCheckpoint = 'F'
	GlyphGoal       = 'O'
	GlyphLocked     = '#'
	GlyphBoss       = 'B'
	GlyphSpawn      = '@'
)

// Camera maps world units onto character cells. Terminal cells are roughly
// twice as tall as they are wide, so a row spans 2*Scale units.
type Camera struct {
	X, Y  float64 // World position of the top-left cell
	Scale float64 // World units per column
}

func (cam Camera) scale() float64 {
	if cam.Scale <= 0 {
		return 1
	}
	return cam.Scale
}

// ToCell returns the cell containing a world point.
func (cam Camera) ToCell(p core.Point) (x, y int) {
	s := cam.scale()
	return int(math.Floor((p.X - cam.X) / s)), int(math.Floor((p.Y - cam.Y) / (2 * s)))
}

// CellRect returns the cells covered by a world rectangle. Every rectangle
// covers at least one cell.
func (cam Camera) CellRect(r core.Rect) (x, y, w, h int) {
	s := cam.scale()
	x0 := math.Floor((r.X - cam.X) / s)
	x1 := math.Ceil((r.Right() - cam.X) / s)
	y0 := math.Floor((r.Y - cam.Y) / (2 * s))
	y1 := math.Ceil((r.Bottom() - cam.Y) / (2 * s))
	x, y = int(x0), int(y0)
	w, h = core.Max(int(x1)-x, 1), core.Max(int(y1)-y, 1)
	return x, y, w, h
}

// Pan moves the camera by whole cells.
func (cam Camera) Pan(cols, rows int) Camera {
	s := cam.scale()
	cam.X += float64(cols) * s
	cam.Y += float64(rows) * 2 * s
	return cam
}

// Fit returns a camera that shows the whole of b in a width x height screen.
func Fit(b level.Bounds, width, height int) Camera {
	width, height = core.Max(width, 1), core.Max(height, 1)
	r := b.Rect()
	scale := math.Max(r.W/float64(width), r.H/(2*float64(height)))
	return Camera{X: r.X, Y: r.Y, Scale: math.Max(scale, 1)}
}

// Follow returns a camera at the given scale centered on p.
func Follow(p core.Point, width, height int, scale float64) Camera {
	cam := Camera{Scale: scale}
	s := cam.scale()
	cam.X = p.X - float64(width)*s/2
	cam.Y = p.Y - float64(height)*s
	return cam
}

// Render clears dst and draws the level through the camera.
func Render(dst *core.Screen, c *level.Content, cam Camera) {
	dst.Clear()
	if c == nil {
		return
	}

	accent := core.WorldColor(c.World)
	for i := range c.Platforms {
		p := &c.Platforms[i]
		glyph, color := platformGlyph(p, accent)
		fill(dst, cam, p.Rect, glyph, color)
	}

	for i := range c.Checkpoints {
		if !c.Checkpoints[i].Removed {
			fill(dst, cam, c.Checkpoints[i].Rect, GlyphCheckpoint, core.ColorGreen)
		}
	}
	for i := range c.Coins {
		coin := &c.Coins[i]
		if coin.Removed {
			continue
		}
		if coin.Bonus {
			fill(dst, cam, coin.Rect, GlyphBonus, core.ColorBrightYellow)
		} else {
			fill(dst, cam, coin.Rect, GlyphCoin, core.ColorYellow)
		}
	}
	for i := range c.Specials {
		if !c.Specials[i].Removed {
			fill(dst, cam, c.Specials[i].Rect, GlyphSpecial, core.ColorCyan)
		}
	}
	for i := range c.Hazards {
		if !c.Hazards[i].Removed {
			fill(dst, cam, c.Hazards[i].Rect, GlyphHazard, core.ColorRed)
		}
	}
	for i := range c.Enemies {
		if !c.Enemies[i].Removed {
			fill(dst, cam, c.Enemies[i].Rect, GlyphEnemy, core.ColorMagenta)
		}
	}
	if c.Goal != nil {
		if c.Goal.Active {
			fill(dst, cam, c.Goal.Rect, GlyphGoal, core.ColorBrightWhite)
		} else {
			fill(dst, cam, c.Goal.Rect, GlyphLocked, core.ColorGray)
		}
	}
	if c.Boss != nil {
		fill(dst, cam, c.Boss.Rect, GlyphBoss, core.ColorBrightRed)
	}
	if !c.IsEmpty() {
		x, y := cam.ToCell(c.Spawn.Add(0, -1))
		dst.Set(x, y, GlyphSpawn, core.ColorBrightCyan)
	}
}

// Snapshot renders the whole level into a new screen of the given size.
func Snapshot(c *level.Content, width, height int) *core.Screen {
	s := core.NewScreen(width, height)
	Render(s, c, Fit(c.Bounds, width, height))
	return s
}

func platformGlyph(p *level.Platform, accent core.Color) (rune, core.Color) {
	if !p.Solid {
		return GlyphVanished, core.ColorGray
	}
	if p.Motion == nil {
		return GlyphPlatform, accent
	}
	switch p.Motion.Kind() {
	case level.MotionMoving, level.MotionPath:
		return GlyphMoving, accent
	case level.MotionBlinking:
		return GlyphBlinking, accent
	default:
		return GlyphPlatform, accent
	}
}

func fill(dst *core.Screen, cam Camera, r core.Rect, glyph rune, color core.Color) {
	x, y, w, h := cam.CellRect(r)
	dst.FillRect(x, y, w, h, glyph, color)
}
