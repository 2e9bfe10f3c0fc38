package generator

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/level"
	"github.com/vovakirdan/levelgen/internal/physics"
	"github.com/vovakirdan/levelgen/internal/skin"
	"github.com/vovakirdan/levelgen/internal/worlds"
)

const (
	maxRetries  = 8
	retryShrink = 0.85 // max gap multiplier per failed attempt

	spawnX     = 100.0
	startWidth = 160.0
	goalWidth  = 128.0

	towerSectionFactor = 1.9
	towerMinRise       = 0.45 // fraction of the max rise every tower step climbs
	towerFlipChance    = 0.3
	towerColumnLeft    = 60.0
	towerColumnRight   = level.ScreenWidth - 60

	motionPadding = 4.0
	minAmplitude  = 8.0
	epsilon       = 1e-6

	fallbackNudge = 16.0 // step between fallback placements
)

// run holds the state of a single generation call.
type run struct {
	rng      *SimpleRNG
	tuning   config.Tuning
	jump     physics.Jump
	rule     worlds.Rule
	mode     level.Mode
	world    int
	content  *level.Content
	provider skin.Provider
	logger   *log.Logger

	fallbacks int
}

// step is a main path platform before it is committed to the content.
type step struct {
	rect   core.Rect
	motion level.Motion
}

func (r *run) generate() {
	if r.tuning.SectionCount <= 0 {
		r.content.FinalizeBounds()
		r.logger.Debug("empty level", "world", r.world, "reason", "section_count is zero")
		return
	}

	steps := r.layoutPath()
	r.commitPath(steps)
	r.placeGoal()
	r.decoratePath()
	r.placeCheckpoints()
	r.finalize()

	c := r.content
	r.logger.Debug("level generated",
		"world", r.world,
		"mode", r.mode,
		"difficulty", c.Difficulty,
		"platforms", len(c.Platforms),
		"path", len(c.Path),
		"branches", len(c.Branches),
		"hazards", len(c.Hazards),
		"specials", len(c.Specials),
		"coins", len(c.Coins),
		"enemies", len(c.Enemies),
		"fallbacks", r.fallbacks,
	)
}

// layoutPath lays out the start platform, the sections and the goal
// platform, then re-clamps every step to the design budget.
func (r *run) layoutPath() []step {
	t := r.tuning
	steps := []step{{
		rect:   core.NewRect(spawnX, r.startY(), r.startWidth(), t.PlatformHeight),
		motion: level.Static{SpeedMod: 1},
	}}

	count := t.SectionCount
	if r.mode == level.ModeTower {
		count = int(math.Round(float64(count) * towerSectionFactor))
	}

	dir := 1.0
	for i := 0; i < count; i++ {
		dir = r.direction(steps[len(steps)-1].rect, dir)
		rect := r.buildNextPlatform(steps, dir, t.WidthMin, t.WidthMax)
		steps = append(steps, step{rect: rect, motion: r.createMotion()})
	}

	dir = r.direction(steps[len(steps)-1].rect, dir)
	goal := r.buildNextPlatform(steps, dir, goalWidth, goalWidth)
	steps = append(steps, step{rect: goal, motion: level.Static{SpeedMod: 1}})

	r.enforcePathSpacing(steps)
	r.capMotion(steps)
	return steps
}

func (r *run) startY() float64 {
	t := r.tuning
	if r.mode == level.ModeTower {
		return t.PlatformYMax
	}
	return core.ClampF(t.PlatformYMax-120, t.PlatformYMin, t.PlatformYMax)
}

// startWidth keeps the spawn platform inside the horizontal budget.
func (r *run) startWidth() float64 {
	limit := 2 * (r.jump.MaxStep() - config.MinPlatformGap - config.MinPlatformWidth/2)
	return math.Max(config.MinPlatformWidth, math.Min(startWidth, limit))
}

// direction returns the horizontal heading of the next step. Default levels
// always run right; towers zigzag inside a fixed column.
func (r *run) direction(prev core.Rect, dir float64) float64 {
	if r.mode != level.ModeTower {
		return 1
	}
	if r.rng.Chance(towerFlipChance) {
		dir = -dir
	}
	if dir > 0 && prev.Right()+r.jump.MaxStep() > towerColumnRight {
		dir = -1
	}
	if dir < 0 && prev.X-r.jump.MaxStep() < towerColumnLeft {
		dir = 1
	}
	return dir
}

// buildNextPlatform places the platform after the last step. Candidates are
// pre-clamped to the jump budget, so retries only recover from unlucky
// draws; after maxRetries a guaranteed-reachable fallback is used.
func (r *run) buildNextPlatform(steps []step, dir, widthLo, widthHi float64) core.Rect {
	prev := steps[len(steps)-1].rect
	maxGap := r.tuning.GapMax
	for attempt := 0; attempt < maxRetries; attempt++ {
		cand := r.candidate(prev, dir, maxGap, widthLo, widthHi)
		if r.accept(steps, prev, cand) {
			return cand
		}
		maxGap *= retryShrink
	}

	fb := r.fallback(steps, dir)
	r.fallbacks++
	r.logger.Debug("fallback platform", "after", len(steps)-1, "x", fb.X, "y", fb.Y)
	return fb
}

func (r *run) candidate(prev core.Rect, dir, maxGap, widthLo, widthHi float64) core.Rect {
	t := r.tuning
	maxStep := r.jump.MaxStep()

	gapLo := math.Max(config.MinPlatformGap, t.GapMin)
	gap := r.rng.Range(gapLo, math.Max(gapLo, maxGap))
	gap = math.Min(gap, maxStep-prev.W/2-config.MinPlatformWidth/2)
	gap = math.Max(gap, config.MinPlatformGap)

	w := r.rng.Range(widthLo, math.Max(widthLo, widthHi))
	w = math.Min(w, 2*(maxStep-prev.W/2-gap))
	w = math.Max(w, config.MinPlatformWidth)

	y := prev.Y + r.verticalDelta()
	if r.mode != level.ModeTower {
		y = core.ClampF(y, t.PlatformYMin, t.PlatformYMax)
	}

	x := prev.Right() + gap
	if dir < 0 {
		x = prev.X - gap - w
	}
	return core.NewRect(x, y, w, t.PlatformHeight)
}

// verticalDelta draws a step height. Negative is up.
func (r *run) verticalDelta() float64 {
	maxRise := r.jump.MaxRise()
	if r.mode == level.ModeTower {
		return -r.rng.Range(towerMinRise*maxRise, maxRise)
	}
	v := r.tuning.VerticalVariance
	dy := r.rng.Range(-v, v) + r.rule.VerticalBias*v
	return core.ClampF(dy, -maxRise, maxRise)
}

func (r *run) accept(steps []step, prev, cand core.Rect) bool {
	exit, entry := level.StepPoints(prev, cand)
	if !r.jump.CanReach(exit, entry) {
		return false
	}
	if math.Abs(cand.Y-prev.Y) > r.jump.MaxRise()+epsilon {
		return false
	}
	if math.Abs(cand.CenterX()-prev.CenterX()) > r.jump.MaxStep()+epsilon {
		return false
	}
	return !overlapsSteps(steps, cand)
}

func overlapsSteps(steps []step, rect core.Rect) bool {
	for _, s := range steps {
		if s.rect.Intersects(rect) {
			return true
		}
	}
	return false
}

// fallback is a minimum-width platform reachable from the last step. It
// starts at the minimum gap and the base height: the previous height for
// default levels, the minimum tower rise for towers. When that spot overlaps
// an earlier step it walks outward along dir and through the vertical
// budget, and keeps the base spot only if nothing inside the budget is clear.
func (r *run) fallback(steps []step, dir float64) core.Rect {
	prev := steps[len(steps)-1].rect
	w := config.MinPlatformWidth
	maxGap := math.Max(config.MinPlatformGap, r.jump.MaxStep()-prev.W/2-w/2)

	place := func(gap, y float64) core.Rect {
		x := prev.Right() + gap
		if dir < 0 {
			x = prev.X - gap - w
		}
		return core.NewRect(x, y, w, r.tuning.PlatformHeight)
	}

	heights := r.fallbackHeights(prev.Y)
	for _, y := range heights {
		for gap := config.MinPlatformGap; ; gap += fallbackNudge {
			g := math.Min(gap, maxGap)
			if rect := place(g, y); !overlapsSteps(steps, rect) {
				return rect
			}
			if g >= maxGap {
				break
			}
		}
	}
	return place(config.MinPlatformGap, heights[0])
}

// fallbackHeights lists the heights a fallback may use, nearest the base
// height first. Towers only climb.
func (r *run) fallbackHeights(prevY float64) []float64 {
	maxRise := r.jump.MaxRise()
	if r.mode == level.ModeTower {
		var ys []float64
		for rise := towerMinRise * maxRise; rise < maxRise+fallbackNudge; rise += fallbackNudge {
			ys = append(ys, prevY-math.Min(rise, maxRise))
		}
		return ys
	}

	t := r.tuning
	ys := []float64{prevY}
	for d := fallbackNudge; d <= maxRise; d += fallbackNudge {
		for _, y := range []float64{prevY - d, prevY + d} {
			if y >= t.PlatformYMin && y <= t.PlatformYMax {
				ys = append(ys, y)
			}
		}
	}
	return ys
}

// enforcePathSpacing re-clamps every consecutive pair to the height and
// spacing budget. A correction shifts the rest of the path with it so the
// later pairs keep their spacing.
func (r *run) enforcePathSpacing(steps []step) {
	maxRise := r.jump.MaxRise()
	maxStep := r.jump.MaxStep()

	for i := 1; i < len(steps); i++ {
		a, b := steps[i-1].rect, steps[i].rect

		var dx, dy float64
		if d := b.Y - a.Y; d > maxRise+epsilon {
			dy = maxRise - d
		} else if d < -maxRise-epsilon {
			dy = -maxRise - d
		}

		dir := 1.0
		if b.CenterX() < a.CenterX() {
			dir = -1
		}
		dist := math.Abs(b.CenterX() - a.CenterX())
		lo := a.W/2 + b.W/2 + config.MinPlatformGap
		if dist < lo-epsilon {
			dx = dir * (lo - dist)
		} else if dist > maxStep+epsilon {
			dx = -dir * (dist - maxStep)
		}

		if dx == 0 && dy == 0 {
			continue
		}
		for j := i; j < len(steps); j++ {
			steps[j].rect = steps[j].rect.Translate(dx, dy)
		}
		r.logger.Debug("path spacing corrected", "step", i, "dx", dx, "dy", dy)
	}
}

// capMotion shrinks each platform's motion until the area it sweeps keeps
// clear of every other platform's sweep. Platforms that cannot move far
// enough to matter become static.
func (r *run) capMotion(steps []step) {
	for i := range steps {
		m := steps[i].motion
		for m.Kind() == level.MotionMoving || m.Kind() == level.MotionPath {
			if !r.sweepCollides(steps, i, m) {
				break
			}
			var ok bool
			m, ok = shrinkMotion(m)
			if !ok {
				m = level.Static{SpeedMod: 1}
			}
		}
		steps[i].motion = m
	}
}

func (r *run) sweepCollides(steps []step, i int, m level.Motion) bool {
	swept := sweptRect(steps[i].rect, m).Expand(motionPadding)
	for j, s := range steps {
		if j == i {
			continue
		}
		if swept.Intersects(sweptRect(s.rect, s.motion)) {
			return true
		}
	}
	return false
}

func sweptRect(rect core.Rect, m level.Motion) core.Rect {
	p := level.NewPlatform(rect, 0, m)
	return p.SweptRect()
}

// shrinkMotion reduces a motion's reach by 30%. It reports false once the
// reach falls below minAmplitude.
func shrinkMotion(m level.Motion) (level.Motion, bool) {
	switch v := m.(type) {
	case level.Moving:
		v.Amplitude *= 0.7
		return v, v.Amplitude >= minAmplitude
	case level.PathFollowing:
		pts := make([]core.Point, len(v.Waypoints))
		for i, p := range v.Waypoints {
			pts[i] = core.Pt(p.X*0.7, p.Y*0.7)
		}
		v.Waypoints = pts
		return v, pathReach(pts) >= minAmplitude
	}
	return m, false
}

func pathReach(pts []core.Point) float64 {
	reach := 0.0
	for _, p := range pts {
		reach = math.Max(reach, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	return reach
}

// commitPath adds the laid-out steps to the content as the main path.
func (r *run) commitPath(steps []step) {
	c := r.content
	c.Path = make([]int, 0, len(steps))
	for _, s := range steps {
		p := level.NewPlatform(s.rect, r.world, s.motion)
		p.Skin = r.provider.Resolve(r.world, platformSkinKind(s.motion), s.rect.W, s.rect.H)
		c.Path = append(c.Path, c.AddPlatform(p))
	}
	start := c.Platforms[c.Path[0]].Origin
	c.Spawn = start.TopCenter()
}

func platformSkinKind(m level.Motion) string {
	switch m.Kind() {
	case level.MotionMoving, level.MotionPath:
		return "platform_moving"
	case level.MotionBlinking:
		return "platform_blinking"
	default:
		return "platform"
	}
}
