package generator

import (
	"fmt"
	"math"

	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/level"
)

const (
	portalW, portalH         = 40.0, 64.0
	bossW, bossH             = 64.0, 64.0
	checkpointW, checkpointH = 16.0, 48.0

	towerCheckpointClimb = 220.0
	restTolerance        = 0.5
)

// placeGoal puts the exit on the last path platform. Boss levels get a
// locked boss portal and the boss itself on the same platform.
func (r *run) placeGoal() {
	c := r.content
	gi := c.Path[len(c.Path)-1]
	surface := c.Platforms[gi].Origin

	x := surface.Right() - surfaceMargin - portalW
	if surface.W < portalW+2*surfaceMargin {
		x = surface.CenterX() - portalW/2
	}
	goal := level.Goal{
		Rect:       core.NewRect(x, surface.Y-portalH, portalW, portalH),
		PortalType: level.PortalExit,
		Active:     true,
		Platform:   gi,
	}

	if r.mode == level.ModeBoss {
		goal.PortalType = level.PortalBoss
		goal.Active = false
		c.SetBoss(level.Boss{
			Rect:     core.NewRect(surface.X+surfaceMargin, surface.Y-bossH, bossW, bossH),
			Key:      fmt.Sprintf("world%d_guardian", r.world),
			Platform: gi,
		})
	}
	c.SetGoal(goal)
}

// placeCheckpoints spaces checkpoints along the path: by climb in towers,
// by horizontal distance elsewhere. Only static platforms host them.
func (r *run) placeCheckpoints() {
	c := r.content
	last := len(c.Path) - 1

	if r.mode == level.ModeTower {
		startY := c.Platforms[c.Path[0]].Origin.Y
		next := towerCheckpointClimb
		for _, pi := range c.Path[1:last] {
			p := &c.Platforms[pi]
			climb := startY - p.Origin.Y
			if climb >= next && p.IsStatic() {
				r.placeCheckpoint(pi)
				next = climb + towerCheckpointClimb
			}
		}
		return
	}

	interval := r.tuning.CheckpointInterval
	if interval <= 0 {
		return
	}
	next := c.Spawn.X + interval
	for _, pi := range c.Path[1:last] {
		p := &c.Platforms[pi]
		if p.Origin.CenterX() >= next && p.IsStatic() {
			r.placeCheckpoint(pi)
			next = p.Origin.CenterX() + interval
		}
	}
}

func (r *run) placeCheckpoint(pi int) {
	surface := r.content.Platforms[pi].Origin
	r.content.PlaceCheckpoint(level.Checkpoint{
		Entity:   level.Entity{Rect: core.NewRect(surface.CenterX()-checkpointW/2, surface.Y-checkpointH, checkpointW, checkpointH)},
		Platform: pi,
	})
}

// finalize rests stray entities on the platforms they collide with, links
// entities to the moving platforms that carry them and computes bounds.
func (r *run) finalize() {
	moved := r.correctOverlaps()
	r.attachCarried()
	r.content.FinalizeBounds()
	if moved > 0 {
		r.logger.Debug("overlaps corrected", "entities", moved)
	}
}

func (r *run) correctOverlaps() int {
	c := r.content
	moved := 0

	rest := func(e *level.Entity) int {
		for pi := range c.Platforms {
			surface := c.Platforms[pi].Origin
			if e.Rect.Intersects(surface) {
				e.Rect.Y = surface.Y - e.Rect.H
				moved++
				return pi
			}
		}
		return -1
	}

	for i := range c.Enemies {
		rest(&c.Enemies[i].Entity)
	}
	for i := range c.Coins {
		rest(&c.Coins[i].Entity)
	}
	for i := range c.Hazards {
		if pi := rest(&c.Hazards[i].Entity); pi >= 0 {
			c.Hazards[i].Platform = pi
		}
	}
	for i := range c.Specials {
		if pi := rest(&c.Specials[i].Entity); pi >= 0 {
			c.Specials[i].Platform = pi
		}
	}
	return moved
}

func (r *run) attachCarried() {
	c := r.content
	for pi := range c.Platforms {
		p := &c.Platforms[pi]
		if !p.Moves() {
			continue
		}
		for i := range c.Hazards {
			if c.Hazards[i].Platform == pi || restsOn(c.Hazards[i].Rect, p.Origin) {
				p.Carried = append(p.Carried, level.Handle{Kind: level.KindHazard, Index: i})
			}
		}
		for i := range c.Specials {
			if c.Specials[i].Platform == pi || restsOn(c.Specials[i].Rect, p.Origin) {
				p.Carried = append(p.Carried, level.Handle{Kind: level.KindSpecial, Index: i})
			}
		}
		for i := range c.Coins {
			if restsOn(c.Coins[i].Rect, p.Origin) {
				p.Carried = append(p.Carried, level.Handle{Kind: level.KindCoin, Index: i})
			}
		}
	}
}

func restsOn(rect, surface core.Rect) bool {
	return math.Abs(rect.Bottom()-surface.Y) < restTolerance && rect.HOverlap(surface)
}
