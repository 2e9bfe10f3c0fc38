// Package physics models the player's jump envelope. It answers the
// reachability questions the level generator asks when chaining platforms.
package physics

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/levelgen/internal/core"
)

// DesignMargin is the fraction of the raw jump envelope the generator is
// allowed to use for main-path steps.
const DesignMargin = 0.75

// Jump is a read-only value derived from player movement constants.
type Jump struct {
	JumpSpeed float64 // Magnitude of the initial upward velocity, units/tick
	Gravity   float64 // Downward acceleration, units/tick²
	MaxSpeed  float64 // Horizontal speed cap, units/tick
}

// New creates a jump model from player constants.
func New(jumpSpeed, gravity, maxSpeed float64) Jump {
	return Jump{JumpSpeed: jumpSpeed, Gravity: gravity, MaxSpeed: maxSpeed}
}

// Validate reports whether the constants describe a usable jump.
func (j Jump) Validate() error {
	if j.JumpSpeed <= 0 {
		return fmt.Errorf("physics: jump_speed must be positive, got %v", j.JumpSpeed)
	}
	if j.Gravity <= 0 {
		return fmt.Errorf("physics: gravity must be positive, got %v", j.Gravity)
	}
	if j.MaxSpeed <= 0 {
		return errors.New("physics: max_speed must be positive")
	}
	return nil
}

// MaxJumpHeight is the apex height of a full jump: v²/(2g).
func (j Jump) MaxJumpHeight() float64 {
	if j.Gravity <= 0 {
		return 0
	}
	return j.JumpSpeed * j.JumpSpeed / (2 * j.Gravity)
}

// TotalAirTime is the time from launch back to launch height: 2v/g.
func (j Jump) TotalAirTime() float64 {
	if j.Gravity <= 0 {
		return 0
	}
	return 2 * j.JumpSpeed / j.Gravity
}

// MaxJumpDistance is the horizontal distance covered during TotalAirTime at
// full speed.
func (j Jump) MaxJumpDistance() float64 {
	return j.MaxSpeed * j.TotalAirTime()
}

// MaxRise is the vertical budget for a single main-path step.
func (j Jump) MaxRise() float64 {
	return DesignMargin * j.MaxJumpHeight()
}

// MaxStep is the center-to-center horizontal budget for a main-path step.
func (j Jump) MaxStep() float64 {
	return DesignMargin * j.MaxJumpDistance()
}

// CanReach reports whether a jump from one point can land on another.
// It is a bounding test, not a trajectory simulation: a target higher than
// the jump apex or farther than the jump distance fails; any drop within
// the horizontal range succeeds.
func (j Jump) CanReach(from, to core.Point) bool {
	dx := to.X - from.X
	if dx < 0 {
		dx = -dx
	}
	dy := to.Y - from.Y
	if dy < -j.MaxJumpHeight() {
		return false
	}
	if dx > j.MaxJumpDistance() {
		return false
	}
	return true
}
