package preview

import (
	"strings"
	"testing"

	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/level"
	"github.com/vovakirdan/levelgen/internal/physics"
	"github.com/vovakirdan/levelgen/internal/worlds"
)

func TestCameraCellRect(t *testing.T) {
	cam := Camera{Scale: 16}

	tests := []struct {
		name       string
		r          core.Rect
		x, y, w, h int
	}{
		{"aligned", core.NewRect(0, 0, 64, 32), 0, 0, 4, 1},
		{"offset", core.NewRect(32, 64, 32, 64), 2, 2, 2, 2},
		{"partial cells round outward", core.NewRect(8, 8, 16, 16), 0, 0, 2, 1},
		{"tiny rect keeps one cell", core.NewRect(40, 40, 1, 1), 2, 1, 1, 1},
		{"negative coords", core.NewRect(-32, -32, 16, 16), -2, -1, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, w, h := cam.CellRect(tc.r)
			if x != tc.x || y != tc.y || w != tc.w || h != tc.h {
				t.Errorf("CellRect(%+v) = (%d, %d, %d, %d), expected (%d, %d, %d, %d)",
					tc.r, x, y, w, h, tc.x, tc.y, tc.w, tc.h)
			}
		})
	}
}

func TestCameraPanAndFit(t *testing.T) {
	cam := Camera{X: 100, Y: 50, Scale: 10}.Pan(2, -1)
	if cam.X != 120 || cam.Y != 30 {
		t.Errorf("Pan = (%v, %v), expected (120, 30)", cam.X, cam.Y)
	}

	b := level.Bounds{MinX: -100, MaxX: 1500, MinY: 0, MaxY: 800}
	fit := Fit(b, 80, 20)
	if fit.X != -100 || fit.Y != 0 || fit.Scale != 20 {
		t.Errorf("Fit = %+v, expected scale 20 at (-100, 0)", fit)
	}
	// The far corner must land inside the screen.
	x, y := fit.ToCell(core.Pt(1499, 799))
	if x >= 80 || y >= 20 {
		t.Errorf("bounds corner maps to (%d, %d), outside 80x20", x, y)
	}

	if Fit(level.Bounds{MaxX: 10, MaxY: 10}, 80, 20).Scale != 1 {
		t.Error("Fit should never zoom in past one unit per column")
	}
}

func TestFollowCentersPoint(t *testing.T) {
	cam := Follow(core.Pt(800, 400), 40, 10, 16)
	x, y := cam.ToCell(core.Pt(800, 400))
	if x != 20 || y != 5 {
		t.Errorf("followed point at (%d, %d), expected (20, 5)", x, y)
	}
}

func testContent() *level.Content {
	c := level.New(worlds.Default(), physics.New(12, 0.6, 6))
	c.World = 1
	c.AddPlatform(level.NewPlatform(core.NewRect(0, 64, 64, 32), 1, nil))
	c.AddPlatform(level.NewPlatform(core.NewRect(128, 64, 64, 32), 1, level.Moving{Amplitude: 16, Speed: 0.1}))
	c.AddPlatform(level.NewPlatform(core.NewRect(256, 64, 64, 32), 1, level.Blinking{OnFrames: 2, OffFrames: 2}))
	c.PlaceCoin(level.Coin{Entity: level.Entity{Rect: core.NewRect(16, 0, 16, 16)}}, core.NewRect(16, 0, 16, 16), true)
	c.PlaceHazard(level.Hazard{Entity: level.Entity{Rect: core.NewRect(160, 32, 16, 16)}, Key: "spike"}, core.NewRect(160, 32, 16, 16))
	c.SetGoal(level.Goal{Rect: core.NewRect(288, 0, 16, 32), PortalType: level.PortalExit, Active: true})
	c.Spawn = core.Pt(32, 64)
	return c
}

func TestRenderGlyphs(t *testing.T) {
	c := testContent()
	s := core.NewScreen(24, 6)
	Render(s, c, Camera{Scale: 16})

	checks := []struct {
		name  string
		x, y  int
		glyph rune
		color core.Color
	}{
		{"static platform", 0, 2, GlyphPlatform, core.WorldColor(1)},
		{"moving platform", 8, 2, GlyphMoving, core.WorldColor(1)},
		{"blinking platform", 16, 2, GlyphBlinking, core.WorldColor(1)},
		{"coin", 1, 0, GlyphCoin, core.ColorYellow},
		{"hazard", 10, 1, GlyphHazard, core.ColorRed},
		{"goal", 18, 0, GlyphGoal, core.ColorBrightWhite},
		{"spawn above platform", 2, 1, GlyphSpawn, core.ColorBrightCyan},
	}
	for _, tc := range checks {
		t.Run(tc.name, func(t *testing.T) {
			cell := s.GetCell(tc.x, tc.y)
			if cell.Rune != tc.glyph || cell.Color != tc.color {
				t.Errorf("cell (%d, %d) = %q/%v, expected %q/%v", tc.x, tc.y, cell.Rune, cell.Color, tc.glyph, tc.color)
			}
		})
	}
}

func TestRenderFollowsRuntimeState(t *testing.T) {
	c := testContent()
	s := core.NewScreen(24, 6)

	c.Remove(level.Handle{Kind: level.KindCoin, Index: 0})
	c.Step(2) // blinking platform is off on ticks 2 and 3
	Render(s, c, Camera{Scale: 16})

	if s.Get(1, 0) == GlyphCoin {
		t.Error("removed coin should not be drawn")
	}
	if s.Get(16, 2) != GlyphVanished {
		t.Errorf("vanished platform drawn as %q", s.Get(16, 2))
	}
}

func TestRenderLockedGoalAndBoss(t *testing.T) {
	c := testContent()
	c.SetGoal(level.Goal{Rect: core.NewRect(288, 0, 16, 32), PortalType: level.PortalBoss})
	c.SetBoss(level.Boss{Rect: core.NewRect(256, 0, 16, 32)})

	s := core.NewScreen(24, 6)
	Render(s, c, Camera{Scale: 16})
	if s.Get(18, 0) != GlyphLocked {
		t.Errorf("locked portal drawn as %q", s.Get(18, 0))
	}
	if s.Get(16, 0) != GlyphBoss {
		t.Errorf("boss drawn as %q", s.Get(16, 0))
	}
}

func TestSnapshotEmptyLevel(t *testing.T) {
	c := level.New(worlds.Default(), physics.New(12, 0.6, 6))
	s := Snapshot(c, 10, 3)
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("empty level should render blank, got %q", s.String())
	}
}
