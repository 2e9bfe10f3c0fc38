package generator

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/level"
	"github.com/vovakirdan/levelgen/internal/worlds"
)

// newPathRun returns a run whose candidates always land at the minimum gap
// with the minimum width, and at the previous height on default levels.
func newPathRun(t *testing.T, mode level.Mode) *run {
	t.Helper()
	cfg := config.DefaultConfig()
	jump := cfg.Player.Jump()
	rule := worlds.For(1)

	tuning := cfg.Generator.At(0.5)
	tuning.GapMin, tuning.GapMax = config.MinPlatformGap, config.MinPlatformGap
	tuning.WidthMin, tuning.WidthMax = config.MinPlatformWidth, config.MinPlatformWidth
	tuning.VerticalVariance = 0

	return &run{
		rng:     NewRNG(1),
		tuning:  tuning,
		jump:    jump,
		rule:    rule,
		mode:    mode,
		world:   1,
		content: level.New(rule, jump),
		logger:  log.New(io.Discard),
	}
}

func checkStep(t *testing.T, r *run, prev, next core.Rect) {
	t.Helper()
	exit, entry := level.StepPoints(prev, next)
	if !r.jump.CanReach(exit, entry) {
		t.Errorf("%+v is not reachable from %+v", next, prev)
	}
	if dy := math.Abs(next.Y - prev.Y); dy > r.jump.MaxRise()+epsilon {
		t.Errorf("rise %v exceeds %v", dy, r.jump.MaxRise())
	}
	if dx := math.Abs(next.CenterX() - prev.CenterX()); dx > r.jump.MaxStep()+epsilon {
		t.Errorf("step %v exceeds %v", dx, r.jump.MaxStep())
	}
}

func TestBuildNextPlatformFallsBack(t *testing.T) {
	tests := []struct {
		name string
		mode level.Mode
		dir  float64
	}{
		{"default right", level.ModeDefault, 1},
		{"default left", level.ModeDefault, -1},
		{"tower right", level.ModeTower, 1},
		{"tower left", level.ModeTower, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newPathRun(t, tc.mode)
			prev := core.NewRect(400, 400, 100, 24)

			// A tall column right where every candidate lands.
			blockX := prev.Right() + config.MinPlatformGap
			if tc.dir < 0 {
				blockX = prev.X - config.MinPlatformGap - config.MinPlatformWidth
			}
			blocker := core.NewRect(blockX, prev.Y-200, config.MinPlatformWidth, 400)
			steps := []step{{rect: blocker}, {rect: prev}}

			fb := r.buildNextPlatform(steps, tc.dir, config.MinPlatformWidth, config.MinPlatformWidth)

			if r.fallbacks != 1 {
				t.Fatalf("fallbacks = %d, expected 1", r.fallbacks)
			}
			checkStep(t, r, prev, fb)
			if overlapsSteps(steps, fb) {
				t.Errorf("fallback %+v overlaps an earlier step", fb)
			}
			if (fb.CenterX()-prev.CenterX())*tc.dir <= 0 {
				t.Errorf("fallback %+v is not on the %v side of %+v", fb, tc.dir, prev)
			}
			if fb.W != config.MinPlatformWidth {
				t.Errorf("fallback width = %v", fb.W)
			}

			switch tc.mode {
			case level.ModeTower:
				if fb.Y >= prev.Y {
					t.Errorf("tower fallback at y=%v does not climb from %v", fb.Y, prev.Y)
				}
			default:
				if fb.Y != prev.Y {
					t.Errorf("default fallback moved to y=%v, expected %v", fb.Y, prev.Y)
				}
			}
		})
	}
}

func TestFallbackKeepsBaseSpotWhenBoxedIn(t *testing.T) {
	tests := []struct {
		mode  level.Mode
		dir   float64
		wantX float64
		wantY float64
	}{
		{level.ModeDefault, 1, 536, 400},
		{level.ModeDefault, -1, 316, 400},
		{level.ModeTower, 1, 536, 400 - towerMinRise*90},
		{level.ModeTower, -1, 316, 400 - towerMinRise*90},
	}

	for _, tc := range tests {
		r := newPathRun(t, tc.mode)
		prev := core.NewRect(400, 400, 100, 24)
		steps := []step{{rect: core.NewRect(0, 0, 2000, 1000)}, {rect: prev}}

		fb := r.fallback(steps, tc.dir)

		if math.Abs(fb.X-tc.wantX) > 1e-9 || math.Abs(fb.Y-tc.wantY) > 1e-9 {
			t.Errorf("%s dir %v: fallback = %+v, expected (%v, %v)", tc.mode, tc.dir, fb, tc.wantX, tc.wantY)
		}
		checkStep(t, r, prev, fb)
	}
}

func TestFallbackHeights(t *testing.T) {
	r := newPathRun(t, level.ModeTower)
	ys := r.fallbackHeights(400)
	if len(ys) == 0 || ys[0] != 400-towerMinRise*r.jump.MaxRise() {
		t.Fatalf("tower heights = %v", ys)
	}
	for _, y := range ys {
		if rise := 400 - y; rise <= 0 || rise > r.jump.MaxRise()+epsilon {
			t.Errorf("tower height %v leaves the climb budget", y)
		}
	}

	r = newPathRun(t, level.ModeDefault)
	ys = r.fallbackHeights(r.tuning.PlatformYMax - 10)
	if ys[0] != r.tuning.PlatformYMax-10 {
		t.Errorf("default heights should start at the previous height, got %v", ys[0])
	}
	for _, y := range ys[1:] {
		if y < r.tuning.PlatformYMin || y > r.tuning.PlatformYMax {
			t.Errorf("default height %v outside [%v, %v]", y, r.tuning.PlatformYMin, r.tuning.PlatformYMax)
		}
	}
}

func TestEnforcePathSpacing(t *testing.T) {
	tests := []struct {
		name  string
		steps []core.Rect
		want  []core.Rect
	}{
		{
			name: "too far and too high",
			steps: []core.Rect{
				core.NewRect(0, 400, 100, 24),
				core.NewRect(900, 100, 100, 24),
				core.NewRect(1050, 100, 100, 24),
			},
			want: []core.Rect{
				core.NewRect(0, 400, 100, 24),
				core.NewRect(180, 310, 100, 24),
				core.NewRect(330, 310, 100, 24),
			},
		},
		{
			name: "too close",
			steps: []core.Rect{
				core.NewRect(0, 400, 100, 24),
				core.NewRect(60, 400, 100, 24),
				core.NewRect(220, 380, 100, 24),
			},
			want: []core.Rect{
				core.NewRect(0, 400, 100, 24),
				core.NewRect(136, 400, 100, 24),
				core.NewRect(296, 380, 100, 24),
			},
		},
		{
			name: "too far leftward and too low",
			steps: []core.Rect{
				core.NewRect(1000, 300, 100, 24),
				core.NewRect(0, 500, 100, 24),
			},
			want: []core.Rect{
				core.NewRect(1000, 300, 100, 24),
				core.NewRect(820, 390, 100, 24),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newPathRun(t, level.ModeDefault)
			steps := make([]step, len(tc.steps))
			for i, rect := range tc.steps {
				steps[i] = step{rect: rect}
			}

			r.enforcePathSpacing(steps)

			for i, s := range steps {
				w := tc.want[i]
				if math.Abs(s.rect.X-w.X) > 1e-6 || math.Abs(s.rect.Y-w.Y) > 1e-6 {
					t.Errorf("step %d = (%v, %v), expected (%v, %v)", i, s.rect.X, s.rect.Y, w.X, w.Y)
				}
				if i > 0 {
					checkStep(t, r, steps[i-1].rect, s.rect)
				}
			}
		})
	}
}

func TestEnforcePathSpacingIgnoresFloatNoise(t *testing.T) {
	r := newPathRun(t, level.ModeDefault)
	maxStep, maxRise := r.jump.MaxStep(), r.jump.MaxRise()

	a := core.NewRect(0, 400, 100, 24)
	b := core.NewRect(a.CenterX()+maxStep+1e-9-50, 400-maxRise-1e-9, 100, 24)
	lo := a.W/2 + 50 + config.MinPlatformGap
	c := core.NewRect(b.CenterX()+lo-1e-9-50, b.Y, 100, 24)
	steps := []step{{rect: a}, {rect: b}, {rect: c}}

	r.enforcePathSpacing(steps)

	for i, want := range []core.Rect{a, b, c} {
		if steps[i].rect != want {
			t.Errorf("step %d moved from %+v to %+v", i, want, steps[i].rect)
		}
	}
}
