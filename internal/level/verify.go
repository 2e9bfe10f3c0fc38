package level

import (
	"errors"
	"fmt"
	"math"
)

const epsilon = 1e-6

// Verify checks the structural guarantees of a generated level: every main
// path step is reachable and inside the design budget, no two platforms
// overlap, bounds match the placed entities, and the goal agrees with the
// boss. It returns all violations joined.
func Verify(c *Content) error {
	var errs []error

	for i, idx := range c.Path {
		if idx < 0 || idx >= len(c.Platforms) {
			errs = append(errs, fmt.Errorf("level: path entry %d references platform %d of %d", i, idx, len(c.Platforms)))
			return errors.Join(errs...)
		}
	}

	for i := 1; i < len(c.Path); i++ {
		a := c.Platforms[c.Path[i-1]].Origin
		b := c.Platforms[c.Path[i]].Origin
		exit, entry := StepPoints(a, b)
		if !c.Physics.CanReach(exit, entry) {
			errs = append(errs, fmt.Errorf("level: path step %d unreachable (%.1f,%.1f)->(%.1f,%.1f)", i, exit.X, exit.Y, entry.X, entry.Y))
		}
		if dy := math.Abs(b.Y - a.Y); dy > c.Physics.MaxRise()+epsilon {
			errs = append(errs, fmt.Errorf("level: path step %d rises %.1f, budget %.1f", i, dy, c.Physics.MaxRise()))
		}
		if dx := math.Abs(b.CenterX() - a.CenterX()); dx > c.Physics.MaxStep()+epsilon {
			errs = append(errs, fmt.Errorf("level: path step %d spans %.1f, budget %.1f", i, dx, c.Physics.MaxStep()))
		}
	}

	for i := range c.Platforms {
		for j := i + 1; j < len(c.Platforms); j++ {
			if c.Platforms[i].Origin.Intersects(c.Platforms[j].Origin) {
				errs = append(errs, fmt.Errorf("level: platforms %d and %d overlap", i, j))
			}
		}
	}

	if want := c.ComputeBounds(); !boundsEqual(want, c.Bounds) {
		errs = append(errs, fmt.Errorf("level: bounds %+v, expected %+v", c.Bounds, want))
	}

	if c.Boss != nil {
		if c.Goal == nil {
			errs = append(errs, errors.New("level: boss level without a goal"))
		} else if c.Goal.PortalType != PortalBoss || c.Goal.Active {
			errs = append(errs, errors.New("level: boss level must have a locked boss portal"))
		}
	}

	return errors.Join(errs...)
}

func boundsEqual(a, b Bounds) bool {
	return math.Abs(a.MinX-b.MinX) < epsilon &&
		math.Abs(a.MaxX-b.MaxX) < epsilon &&
		math.Abs(a.MinY-b.MinY) < epsilon &&
		math.Abs(a.MaxY-b.MaxY) < epsilon
}
