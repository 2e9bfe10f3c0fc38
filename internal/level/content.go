package level

import (
	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/physics"
	"github.com/vovakirdan/levelgen/internal/worlds"
)

// Screen extents used as the bounds of an empty level, and the padding
// applied around placed entities.
const (
	ScreenWidth   = 1280.0
	ScreenHeight  = 720.0
	BoundsPadding = 120.0
)

// Portal types.
const (
	PortalExit = "exit"
	PortalBoss = "boss"
)

// Bounds is the playable area of a level.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// ScreenBounds returns the bounds of an empty level.
func ScreenBounds() Bounds {
	return Bounds{MinX: 0, MaxX: ScreenWidth, MinY: 0, MaxY: ScreenHeight}
}

// Rect returns the bounds as a rectangle.
func (b Bounds) Rect() core.Rect {
	return core.NewRect(b.MinX, b.MinY, b.MaxX-b.MinX, b.MaxY-b.MinY)
}

// Branch records an optional side platform and the path platform it hangs off.
type Branch struct {
	From     int // Platform index on the main path
	Platform int // Platform index of the branch
}

// Content is a generated level.
type Content struct {
	World      int
	Level      int
	Variant    int
	Seed       int64
	Mode       Mode
	Difficulty float64
	Rule       worlds.Rule
	Physics    physics.Jump
	Spawn      core.Point

	Platforms   []Platform
	Path        []int // Main path, in traversal order, as platform indices
	Branches    []Branch
	Enemies     []Enemy
	Coins       []Coin
	Hazards     []Hazard
	Specials    []Hazard
	Goal        *Goal
	Boss        *Boss
	Checkpoints []Checkpoint
	Bounds      Bounds

	grid *ReservationGrid
}

// New creates an empty level with screen bounds and a fresh grid.
func New(rule worlds.Rule, jump physics.Jump) *Content {
	return &Content{
		World:   rule.ID,
		Mode:    ModeDefault,
		Rule:    rule,
		Physics: jump,
		Bounds:  ScreenBounds(),
		grid:    NewReservationGrid(),
	}
}

// Grid returns the reservation grid, or nil once discarded.
func (c *Content) Grid() *ReservationGrid {
	return c.grid
}

// DiscardGrid drops the reservation grid. Placement helpers fail afterwards.
func (c *Content) DiscardGrid() {
	c.grid = nil
}

// IsEmpty reports whether the level has no platforms.
func (c *Content) IsEmpty() bool {
	return len(c.Platforms) == 0
}

// AddPlatform appends a platform and claims the area it sweeps.
func (c *Content) AddPlatform(p Platform) int {
	if c.grid != nil {
		c.grid.ReserveRect(TagPlatform, p.SweptRect(), false)
	}
	c.Platforms = append(c.Platforms, p)
	return len(c.Platforms) - 1
}

// PlaceCoin adds a coin if its footprint is free, or unconditionally when
// forced. It returns the coin's handle.
func (c *Content) PlaceCoin(coin Coin, footprint core.Rect, force bool) (Handle, bool) {
	if !c.reserve(TagCoin, footprint, force) {
		return Handle{}, false
	}
	c.Coins = append(c.Coins, coin)
	return Handle{Kind: KindCoin, Index: len(c.Coins) - 1}, true
}

// PlaceHazard adds a hazard or special tile depending on its category.
func (c *Content) PlaceHazard(h Hazard, footprint core.Rect) (Handle, bool) {
	if h.Category == CategorySpecial {
		if !c.reserve(TagSpecial, footprint, false) {
			return Handle{}, false
		}
		c.Specials = append(c.Specials, h)
		return Handle{Kind: KindSpecial, Index: len(c.Specials) - 1}, true
	}
	if !c.reserve(TagHazard, footprint, false) {
		return Handle{}, false
	}
	c.Hazards = append(c.Hazards, h)
	return Handle{Kind: KindHazard, Index: len(c.Hazards) - 1}, true
}

// PlaceEnemy adds an enemy if its footprint is free.
func (c *Content) PlaceEnemy(e Enemy, footprint core.Rect) (Handle, bool) {
	if !c.reserve(TagEnemy, footprint, false) {
		return Handle{}, false
	}
	c.Enemies = append(c.Enemies, e)
	return Handle{Kind: KindEnemy, Index: len(c.Enemies) - 1}, true
}

// PlaceCheckpoint always succeeds.
func (c *Content) PlaceCheckpoint(cp Checkpoint) Handle {
	c.reserve(TagCheckpoint, cp.Rect, true)
	c.Checkpoints = append(c.Checkpoints, cp)
	return Handle{Kind: KindCheckpoint, Index: len(c.Checkpoints) - 1}
}

// SetGoal places the level exit, replacing any previous one.
func (c *Content) SetGoal(g Goal) {
	c.reserve(TagPortal, g.Rect, true)
	c.Goal = &g
}

// SetBoss places the boss reference, replacing any previous one.
func (c *Content) SetBoss(b Boss) {
	c.reserve(TagBoss, b.Rect, true)
	c.Boss = &b
}

func (c *Content) reserve(tag Tag, r core.Rect, force bool) bool {
	if c.grid == nil {
		return false
	}
	return c.grid.ReserveRect(tag, r, force)
}

// Entity resolves a handle. Platforms are not entities and resolve to nil.
func (c *Content) Entity(h Handle) *Entity {
	switch h.Kind {
	case KindEnemy:
		if h.Index >= 0 && h.Index < len(c.Enemies) {
			return &c.Enemies[h.Index].Entity
		}
	case KindCoin:
		if h.Index >= 0 && h.Index < len(c.Coins) {
			return &c.Coins[h.Index].Entity
		}
	case KindHazard:
		if h.Index >= 0 && h.Index < len(c.Hazards) {
			return &c.Hazards[h.Index].Entity
		}
	case KindSpecial:
		if h.Index >= 0 && h.Index < len(c.Specials) {
			return &c.Specials[h.Index].Entity
		}
	case KindCheckpoint:
		if h.Index >= 0 && h.Index < len(c.Checkpoints) {
			return &c.Checkpoints[h.Index].Entity
		}
	}
	return nil
}

// Remove retires an entity. Carried handles to it are pruned on the next
// Step. It returns false if the handle is invalid or already removed.
func (c *Content) Remove(h Handle) bool {
	e := c.Entity(h)
	if e == nil || e.Removed {
		return false
	}
	e.Removed = true
	return true
}

// Step advances every platform to the given tick and drags carried
// entities along with it.
func (c *Content) Step(tick int) {
	for i := range c.Platforms {
		p := &c.Platforms[i]
		if p.Motion == nil {
			continue
		}
		off := p.Motion.Offset(tick)
		next := p.Origin.Translate(off.X, off.Y)
		dx, dy := next.X-p.Rect.X, next.Y-p.Rect.Y
		p.Rect = next
		p.Solid = p.Motion.Solid(tick)

		if len(p.Carried) == 0 {
			continue
		}
		kept := p.Carried[:0]
		for _, h := range p.Carried {
			e := c.Entity(h)
			if e == nil || e.Removed {
				continue
			}
			e.Rect = e.Rect.Translate(dx, dy)
			kept = append(kept, h)
		}
		p.Carried = kept
	}
}

// Count returns the number of live entities of a kind.
func (c *Content) Count(k Kind) int {
	n := 0
	switch k {
	case KindPlatform:
		return len(c.Platforms)
	case KindEnemy:
		for i := range c.Enemies {
			if !c.Enemies[i].Removed {
				n++
			}
		}
	case KindCoin:
		for i := range c.Coins {
			if !c.Coins[i].Removed {
				n++
			}
		}
	case KindHazard:
		for i := range c.Hazards {
			if !c.Hazards[i].Removed {
				n++
			}
		}
	case KindSpecial:
		for i := range c.Specials {
			if !c.Specials[i].Removed {
				n++
			}
		}
	case KindCheckpoint:
		for i := range c.Checkpoints {
			if !c.Checkpoints[i].Removed {
				n++
			}
		}
	}
	return n
}

// EntityRects returns the rectangle of every placed object. Platforms
// contribute the full area their motion sweeps.
func (c *Content) EntityRects() []core.Rect {
	rects := make([]core.Rect, 0, len(c.Platforms)+len(c.Enemies)+len(c.Coins)+len(c.Hazards)+len(c.Specials)+len(c.Checkpoints)+2)
	for i := range c.Platforms {
		rects = append(rects, c.Platforms[i].SweptRect())
	}
	for i := range c.Enemies {
		rects = append(rects, c.Enemies[i].Rect)
	}
	for i := range c.Coins {
		rects = append(rects, c.Coins[i].Rect)
	}
	for i := range c.Hazards {
		rects = append(rects, c.Hazards[i].Rect)
	}
	for i := range c.Specials {
		rects = append(rects, c.Specials[i].Rect)
	}
	for i := range c.Checkpoints {
		rects = append(rects, c.Checkpoints[i].Rect)
	}
	if c.Goal != nil {
		rects = append(rects, c.Goal.Rect)
	}
	if c.Boss != nil {
		rects = append(rects, c.Boss.Rect)
	}
	return rects
}

// ComputeBounds returns the padded bounding box of every placed object, or
// the screen bounds for an empty level.
func (c *Content) ComputeBounds() Bounds {
	rects := c.EntityRects()
	if len(rects) == 0 {
		return ScreenBounds()
	}
	u := rects[0]
	for _, r := range rects[1:] {
		u = u.Union(r)
	}
	u = u.Expand(BoundsPadding)
	return Bounds{MinX: u.X, MaxX: u.Right(), MinY: u.Y, MaxY: u.Bottom()}
}

// FinalizeBounds stores ComputeBounds.
func (c *Content) FinalizeBounds() {
	c.Bounds = c.ComputeBounds()
}
