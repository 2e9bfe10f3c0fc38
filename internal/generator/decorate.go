package generator

import (
	"math"

	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/level"
)

const (
	surfaceMargin = 8.0

	coinSize    = 16.0
	coinSpacing = 48.0 // a cell plus a coin, so neighbouring coins never share a cell
	coinLift    = 40.0
	coinArc     = 20.0

	enemySize             = 28.0
	enemyMinWidth         = 90.0
	enemyBaseChance       = 0.08
	enemyDifficultyChance = 0.32

	branchPadding = 8.0
	branchMinRise = 0.35 // fractions of the max rise
	branchMaxRise = 0.6
	branchReach   = 0.5 // fraction of the max step
)

// decoratePath decorates every main path platform except the spawn and the
// goal, rolling for a branch after each one.
func (r *run) decoratePath() {
	c := r.content
	total := len(c.Path)
	path := append([]int(nil), c.Path...)

	for i, pi := range path[:total-1] {
		progress := float64(i) / float64(total)
		if i > 0 {
			r.decoratePlatform(pi, progress)
		}
		if r.rng.Chance(r.tuning.BranchChance) {
			r.buildBranch(pi, progress)
		}
	}
}

// decoratePlatform attempts, in order: a hazard, a coin arc, a world object
// and, only on a clean, wide, static platform, an enemy.
func (r *run) decoratePlatform(pi int, progress float64) {
	t := r.tuning
	p := r.content.Platforms[pi]
	blinking := p.Motion.Kind() == level.MotionBlinking

	hazardous := false
	if r.rng.Chance(t.HazardRate*(0.5+progress)) && !blinking {
		hazardous = r.placeHazard(pi, r.pickHazard())
	}

	if r.rng.Chance(t.CollectibleRate * (1 - 0.5*progress)) {
		r.placeCoins(pi)
	}

	objectRate := math.Min(1, t.WorldObjectRate*r.rule.ObjectMultiplier)
	if r.rng.Chance(objectRate) && !blinking && len(r.rule.HazardKeys) > 0 {
		key := r.rule.HazardKeys[r.rng.Intn(len(r.rule.HazardKeys))]
		if r.placeHazard(pi, key) {
			hazardous = true
		}
	}

	if hazardous || !p.IsStatic() || p.Origin.W < enemyMinWidth {
		return
	}
	if r.rng.Chance(enemyBaseChance + enemyDifficultyChance*t.Difficulty) {
		r.placeEnemy(pi)
	}
}

// pickHazard draws a harmful hazard from the world pool, or a spike when
// the pool has none.
func (r *run) pickHazard() string {
	var pool []string
	for _, key := range r.rule.HazardKeys {
		if spec, ok := level.LookupHazard(key); ok && spec.Category == level.CategoryHazard {
			pool = append(pool, key)
		}
	}
	if len(pool) == 0 {
		return "spike"
	}
	return pool[r.rng.Intn(len(pool))]
}

func (r *run) placeHazard(pi int, key string) bool {
	c := r.content
	surface := c.Platforms[pi].Origin
	spec, _ := level.LookupHazard(key)

	y := surface.Y - spec.H
	if spec.Floating {
		y -= level.FloatHeight
	}
	rect := core.NewRect(r.surfaceX(surface, spec.W), y, spec.W, spec.H)

	h := level.Hazard{
		Entity:   level.Entity{Rect: rect},
		Key:      spec.Key,
		Effect:   spec.Effect,
		Category: spec.Category,
		Skin:     r.provider.Resolve(r.world, spec.Key, spec.W, spec.H),
		Platform: pi,
	}
	if _, ok := c.PlaceHazard(h, footprintAbove(rect, surface.Y)); !ok {
		r.logger.Debug("hazard dropped", "platform", pi, "key", spec.Key)
		return false
	}
	return true
}

// placeCoins places one to three coins in a shallow arc over the platform.
func (r *run) placeCoins(pi int) {
	c := r.content
	surface := c.Platforms[pi].Origin

	n := 1 + r.rng.Intn(3)
	if fit := 1 + int((surface.W-coinSize)/coinSpacing); fit < n {
		n = core.Max(fit, 1)
	}

	x0 := surface.CenterX() - float64(n-1)*coinSpacing/2 - coinSize/2
	for k := 0; k < n; k++ {
		lift := coinLift + coinArc*math.Sin(math.Pi*float64(k+1)/float64(n+1))
		rect := core.NewRect(x0+float64(k)*coinSpacing, surface.Y-lift-coinSize, coinSize, coinSize)
		c.PlaceCoin(level.Coin{Entity: level.Entity{Rect: rect}}, footprintAbove(rect, surface.Y), false)
	}
}

func (r *run) placeBonusCoin(pi int) {
	c := r.content
	surface := c.Platforms[pi].Origin
	rect := core.NewRect(surface.CenterX()-coinSize/2, surface.Y-coinLift-coinSize, coinSize, coinSize)
	c.PlaceCoin(level.Coin{Entity: level.Entity{Rect: rect}, Bonus: true}, footprintAbove(rect, surface.Y), true)
}

func (r *run) placeEnemy(pi int) {
	c := r.content
	surface := c.Platforms[pi].Origin
	rect := core.NewRect(surface.CenterX()-enemySize/2, surface.Y-enemySize, enemySize, enemySize)

	e := level.Enemy{
		Entity:     level.Entity{Rect: rect},
		Platform:   pi,
		PatrolMinX: surface.X + surfaceMargin,
		PatrolMaxX: surface.Right() - surfaceMargin - enemySize,
		Speed:      0.6 + 0.8*r.tuning.Difficulty,
	}
	if _, ok := c.PlaceEnemy(e, footprintAbove(rect, surface.Y)); !ok {
		r.logger.Debug("enemy dropped", "platform", pi)
	}
}

// buildBranch tries to hang one reachable side platform above pi. Branches
// are static, decorated once and carry exactly one bonus coin.
func (r *run) buildBranch(from int, progress float64) {
	c := r.content
	t := r.tuning
	origin := c.Platforms[from].Origin
	maxRise := r.jump.MaxRise()
	reach := branchReach * r.jump.MaxStep()

	riseLo := math.Max(t.PlatformHeight+branchPadding, branchMinRise*maxRise)
	riseHi := math.Max(riseLo, branchMaxRise*maxRise)
	widthHi := math.Max(config.MinPlatformWidth, t.WidthMin)

	for attempt := 0; attempt < maxRetries; attempt++ {
		w := r.rng.Range(config.MinPlatformWidth, widthHi)
		rise := r.rng.Range(riseLo, riseHi)
		off := r.rng.Range(-reach, reach)
		rect := core.NewRect(origin.CenterX()+off-w/2, origin.Y-rise, w, t.PlatformHeight)
		if !r.branchFits(origin, rect) {
			continue
		}

		p := level.NewPlatform(rect, r.world, level.Static{SpeedMod: 1})
		p.Skin = r.provider.Resolve(r.world, "platform", rect.W, rect.H)
		bi := c.AddPlatform(p)
		c.Branches = append(c.Branches, level.Branch{From: from, Platform: bi})
		r.decoratePlatform(bi, progress)
		r.placeBonusCoin(bi)
		return
	}
	r.logger.Debug("branch dropped", "from", from)
}

func (r *run) branchFits(origin, rect core.Rect) bool {
	exit, entry := level.StepPoints(origin, rect)
	if !r.jump.CanReach(exit, entry) {
		return false
	}
	padded := rect.Expand(branchPadding)
	c := r.content
	for i := range c.Platforms {
		if padded.Intersects(c.Platforms[i].SweptRect()) {
			return false
		}
	}
	if c.Goal != nil && padded.Intersects(c.Goal.Rect) {
		return false
	}
	if c.Boss != nil && padded.Intersects(c.Boss.Rect) {
		return false
	}
	return true
}

// surfaceX picks a left edge for an object of width w on a surface.
func (r *run) surfaceX(surface core.Rect, w float64) float64 {
	span := surface.W - 2*surfaceMargin - w
	if span <= 0 {
		return surface.CenterX() - w/2
	}
	return surface.X + surfaceMargin + r.rng.Range(0, span)
}

// footprintAbove is the rectangle reserved for an object standing on a
// surface at top. It is lifted clear of the surface's own cell row so a
// platform never blocks the objects placed on it.
func footprintAbove(rect core.Rect, top float64) core.Rect {
	limit := level.CellTop(top)
	if rect.Bottom() > limit {
		return rect.Translate(0, limit-rect.Bottom())
	}
	return rect
}
