package level

import "github.com/vovakirdan/levelgen/internal/core"

// Platform is a walkable rectangle with a motion behaviour.
type Platform struct {
	Origin  core.Rect // Rect as generated; motion offsets are relative to it
	Rect    core.Rect // Current rect, advanced by Content.Step
	World   int
	Motion  Motion
	Solid   bool
	Skin    string
	Carried []Handle // Entities that travel with this platform
}

// NewPlatform creates a platform at rest. A nil motion means static.
func NewPlatform(r core.Rect, world int, m Motion) Platform {
	if m == nil {
		m = Static{SpeedMod: 1}
	}
	return Platform{
		Origin: r,
		Rect:   r,
		World:  world,
		Motion: m,
		Solid:  true,
	}
}

// IsStatic reports whether the platform never moves or disappears.
func (p *Platform) IsStatic() bool {
	return p.Motion == nil || p.Motion.Kind() == MotionStatic
}

// Moves reports whether the platform changes position over time.
func (p *Platform) Moves() bool {
	if p.Motion == nil {
		return false
	}
	k := p.Motion.Kind()
	return k == MotionMoving || k == MotionPath
}

// SweptRect is the area the platform can occupy over its whole motion.
func (p *Platform) SweptRect() core.Rect {
	if p.Motion == nil {
		return p.Origin
	}
	s := p.Motion.Sweep()
	return core.NewRect(p.Origin.X+s.X, p.Origin.Y+s.Y, p.Origin.W+s.W, p.Origin.H+s.H)
}

// StepPoints returns where a jump from a to b leaves a and lands on b: the
// facing edges of their top surfaces.
func StepPoints(a, b core.Rect) (exit, entry core.Point) {
	if b.CenterX() >= a.CenterX() {
		return core.Pt(a.Right(), a.Y), core.Pt(b.X, b.Y)
	}
	return core.Pt(a.X, a.Y), core.Pt(b.Right(), b.Y)
}
