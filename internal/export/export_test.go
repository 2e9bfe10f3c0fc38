package export

import (
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/generator"
	"github.com/vovakirdan/levelgen/internal/level"
	"github.com/vovakirdan/levelgen/internal/registry"
)

func generate(t *testing.T, world, lvl int) *level.Content {
	t.Helper()
	g, err := generator.New(config.DefaultConfig())
	if err != nil {
		t.Fatalf("generator.New: %v", err)
	}
	return g.GenerateSeeded(world, lvl, 0, 42)
}

func export(t *testing.T, format string, c *level.Content) string {
	t.Helper()
	e, err := registry.Create(format)
	if err != nil {
		t.Fatalf("Create(%q): %v", format, err)
	}
	var sb strings.Builder
	if err := e.Export(&sb, c); err != nil {
		t.Fatalf("Export(%q): %v", format, err)
	}
	return sb.String()
}

func TestFormatsRegistered(t *testing.T) {
	for _, id := range []string{"yaml", "ascii", "summary"} {
		if !registry.Exists(id) {
			t.Errorf("format %q is not registered", id)
		}
	}
}

func TestYAMLDocument(t *testing.T) {
	c := generate(t, 3, 5)
	out := export(t, "yaml", c)

	var doc Document
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("exported YAML does not parse: %v", err)
	}

	if doc.World != 3 || doc.Level != 5 || doc.Seed != 42 {
		t.Errorf("header = world %d level %d seed %d", doc.World, doc.Level, doc.Seed)
	}
	if doc.Mode != string(c.Mode) {
		t.Errorf("mode = %q, expected %q", doc.Mode, c.Mode)
	}
	if len(doc.Platforms) != len(c.Platforms) || len(doc.Path) != len(c.Path) {
		t.Errorf("platforms/path = %d/%d, expected %d/%d",
			len(doc.Platforms), len(doc.Path), len(c.Platforms), len(c.Path))
	}
	if len(doc.Coins) != c.Count(level.KindCoin) || len(doc.Hazards) != c.Count(level.KindHazard) {
		t.Errorf("coins/hazards = %d/%d", len(doc.Coins), len(doc.Hazards))
	}
	if doc.Physics.MaxStep != c.Physics.MaxStep() {
		t.Errorf("max_step = %v, expected %v", doc.Physics.MaxStep, c.Physics.MaxStep())
	}
	if doc.Bounds.X != c.Bounds.MinX || doc.Bounds.W != c.Bounds.MaxX-c.Bounds.MinX {
		t.Errorf("bounds = %+v, expected %+v", doc.Bounds, c.Bounds)
	}
	if doc.Goal == nil {
		t.Fatal("goal missing from document")
	}

	for i, p := range doc.Platforms {
		if p.Motion.Kind == "" {
			t.Errorf("platform %d has no motion kind", i)
		}
		if p.Rect.W != c.Platforms[i].Origin.W {
			t.Errorf("platform %d width = %v, expected %v", i, p.Rect.W, c.Platforms[i].Origin.W)
		}
	}
}

func TestYAMLSkipsRemovedEntities(t *testing.T) {
	c := generate(t, 1, 3)
	if c.Count(level.KindCoin) == 0 {
		t.Skip("level has no coins")
	}
	before := len(NewDocument(c).Coins)
	c.Remove(level.Handle{Kind: level.KindCoin, Index: 0})
	if after := len(NewDocument(c).Coins); after != before-1 {
		t.Errorf("coins after removal = %d, expected %d", after, before-1)
	}
}

func TestToMotion(t *testing.T) {
	tests := []struct {
		name string
		in   level.Motion
		kind string
	}{
		{"nil", nil, "static"},
		{"static", level.Static{SpeedMod: 1.1}, "static"},
		{"moving", level.Moving{Axis: level.AxisY, Amplitude: 20}, "moving"},
		{"blinking", level.Blinking{OnFrames: 60, OffFrames: 30}, "blinking"},
		{"path", level.PathFollowing{Speed: 1}, "path"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := toMotion(tc.in); got.Kind != tc.kind {
				t.Errorf("kind = %q, expected %q", got.Kind, tc.kind)
			}
		})
	}

	m := toMotion(level.Moving{Axis: level.AxisY, Amplitude: 20, Speed: 0.03})
	if m.Axis != "y" || m.Amplitude != 20 || m.Speed != 0.03 {
		t.Errorf("moving motion = %+v", m)
	}
}

func TestASCIIPreview(t *testing.T) {
	c := generate(t, 2, 4)

	e, err := registry.Create("ascii")
	if err != nil {
		t.Fatal(err)
	}
	sizer, ok := e.(Sizer)
	if !ok {
		t.Fatal("ascii exporter should accept a canvas size")
	}
	sizer.SetSize(60, 12)

	var sb strings.Builder
	if err := e.Export(&sb, c); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")

	// Header, 12 canvas rows, legend.
	if len(lines) != 14 {
		t.Fatalf("got %d lines, expected 14", len(lines))
	}
	if !strings.HasPrefix(lines[0], "world 2 level 4") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[len(lines)-1] != Legend {
		t.Errorf("last line should be the legend, got %q", lines[len(lines)-1])
	}
	canvas := strings.Join(lines[1:13], "\n")
	for _, glyph := range []string{"=", "@", "O"} {
		if !strings.Contains(canvas, glyph) {
			t.Errorf("canvas missing %q:\n%s", glyph, canvas)
		}
	}
	for i, line := range lines[1:13] {
		if len([]rune(line)) > 60 {
			t.Errorf("row %d is wider than the canvas: %d", i, len([]rune(line)))
		}
	}
}

func TestSummary(t *testing.T) {
	c := generate(t, 4, 5)
	out := export(t, "summary", c)

	for _, want := range []string{"World 4, level 5", "Seed", "42", "boss portal (locked)", "world4_guardian", "Bounds"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	fallback := export(t, "summary", generate(t, 11, 2))
	if !strings.Contains(fallback, "fallback (world 0)") {
		t.Errorf("out-of-range world should report the fallback rule:\n%s", fallback)
	}
}

func TestCollect(t *testing.T) {
	c := generate(t, 6, 8)
	s := Collect(c)

	if s.Platforms != len(c.Platforms) || s.PathLength != len(c.Path) {
		t.Errorf("platform counts = %+v", s)
	}
	if s.BonusCoins != s.Branches {
		t.Errorf("bonus coins = %d, branches = %d", s.BonusCoins, s.Branches)
	}
	if s.Moving+s.Blinking > s.Platforms {
		t.Errorf("more dynamic platforms than platforms: %+v", s)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExportWriteErrors(t *testing.T) {
	c := generate(t, 1, 2)
	for _, id := range registry.IDs() {
		e, err := registry.Create(id)
		if err != nil {
			t.Fatal(err)
		}
		if err := e.Export(failingWriter{}, c); err == nil {
			t.Errorf("%s: expected write error", id)
		}
	}
}
