package level

import (
	"math"

	"github.com/vovakirdan/levelgen/internal/core"
)

// MotionKind names a platform motion variant.
type MotionKind string

const (
	MotionStatic   MotionKind = "static"
	MotionMoving   MotionKind = "moving"
	MotionBlinking MotionKind = "blinking"
	MotionPath     MotionKind = "path"
)

// Motion is a platform's behaviour over time, as a pure function of the
// tick. Offsets are relative to the platform's generated origin.
type Motion interface {
	Kind() MotionKind
	Offset(tick int) core.Point
	Solid(tick int) bool
	// Sweep is the bounding box of every offset the motion can produce.
	Sweep() core.Rect
}

// Axis is the direction of an oscillating platform.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Static never moves. SpeedMod is a cosmetic wobble factor for the renderer.
type Static struct {
	SpeedMod float64
}

func (Static) Kind() MotionKind { return MotionStatic }
func (Static) Offset(int) core.Point { return core.Point{} }
func (Static) Solid(int) bool { return true }
func (Static) Sweep() core.Rect { return core.Rect{} }

// Moving oscillates sinusoidally along one axis.
type Moving struct {
	Axis      Axis
	Amplitude float64 // Peak displacement in units
	Speed     float64 // Angular speed in radians per tick
	Phase     float64 // Radians
}

func (m Moving) Kind() MotionKind { return MotionMoving }

func (m Moving) Offset(tick int) core.Point {
	d := m.Amplitude * math.Sin(m.Phase+m.Speed*float64(tick))
	if m.Axis == AxisY {
		return core.Point{Y: d}
	}
	return core.Point{X: d}
}

func (m Moving) Solid(int) bool { return true }

func (m Moving) Sweep() core.Rect {
	if m.Axis == AxisY {
		return core.NewRect(0, -m.Amplitude, 0, 2*m.Amplitude)
	}
	return core.NewRect(-m.Amplitude, 0, 2*m.Amplitude, 0)
}

// Blinking is solid for OnFrames, then passable for OffFrames.
type Blinking struct {
	OnFrames  int
	OffFrames int
	Phase     int
}

func (b Blinking) Kind() MotionKind { return MotionBlinking }
func (b Blinking) Offset(int) core.Point { return core.Point{} }
func (b Blinking) Sweep() core.Rect { return core.Rect{} }

func (b Blinking) Solid(tick int) bool {
	cycle := b.OnFrames + b.OffFrames
	if cycle <= 0 || b.OffFrames <= 0 {
		return true
	}
	t := (tick + b.Phase) % cycle
	if t < 0 {
		t += cycle
	}
	return t < b.OnFrames
}

// PathFollowing loops through waypoints at a constant speed. Waypoints are
// offsets from the origin; the loop closes back to the first waypoint.
type PathFollowing struct {
	Waypoints []core.Point
	Speed     float64 // Units per tick
}

func (p PathFollowing) Kind() MotionKind { return MotionPath }
func (p PathFollowing) Solid(int) bool { return true }

func (p PathFollowing) Offset(tick int) core.Point {
	n := len(p.Waypoints)
	if n == 0 {
		return core.Point{}
	}
	total := p.loopLength()
	if n == 1 || total == 0 || p.Speed <= 0 {
		return p.Waypoints[0]
	}

	s := math.Mod(p.Speed*float64(tick), total)
	if s < 0 {
		s += total
	}
	for i := 0; i < n; i++ {
		a, b := p.Waypoints[i], p.Waypoints[(i+1)%n]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		if s <= seg {
			if seg == 0 {
				return a
			}
			t := s / seg
			return core.Point{X: core.Lerp(a.X, b.X, t), Y: core.Lerp(a.Y, b.Y, t)}
		}
		s -= seg
	}
	return p.Waypoints[0]
}

func (p PathFollowing) Sweep() core.Rect {
	if len(p.Waypoints) == 0 {
		return core.Rect{}
	}
	r := core.NewRect(p.Waypoints[0].X, p.Waypoints[0].Y, 0, 0)
	for _, w := range p.Waypoints[1:] {
		r = r.Union(core.NewRect(w.X, w.Y, 0, 0))
	}
	return r
}

func (p PathFollowing) loopLength() float64 {
	total := 0.0
	n := len(p.Waypoints)
	for i := 0; i < n; i++ {
		a, b := p.Waypoints[i], p.Waypoints[(i+1)%n]
		total += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return total
}
