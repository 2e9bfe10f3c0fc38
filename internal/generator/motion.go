package generator

import (
	"math"

	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/level"
	"github.com/vovakirdan/levelgen/internal/worlds"
)

const (
	pathFollowShare = 0.3  // share of moving rolls that follow a loop
	verticalShare   = 0.35 // share of oscillating platforms moving on Y
	wobbleChance    = 0.15 // scaled by difficulty
)

// createMotion picks a platform behaviour: blinking first, then moving,
// otherwise static with an occasional cosmetic wobble.
func (r *run) createMotion() level.Motion {
	t := r.tuning

	if r.rng.Chance(t.BlinkingRate) {
		on := 60 + r.rng.Intn(60)
		off := int(float64(30+r.rng.Intn(30)) * (1 + 0.5*t.Difficulty))
		return level.Blinking{
			OnFrames:  on,
			OffFrames: off,
			Phase:     r.rng.Intn(on + off),
		}
	}

	if r.rng.Chance(t.MovingRate) {
		factor := worlds.MovingSpeedFactor(r.world)
		amp := r.rng.Range(24, 64)

		if r.rng.Chance(pathFollowShare) {
			half := amp / 2
			return level.PathFollowing{
				Waypoints: []core.Point{
					{X: 0, Y: 0},
					{X: amp, Y: 0},
					{X: amp, Y: -half},
					{X: -amp, Y: -half},
					{X: -amp, Y: 0},
				},
				Speed: r.rng.Range(0.6, 1.4) * factor,
			}
		}

		axis := level.AxisX
		if r.rng.Chance(verticalShare) {
			axis = level.AxisY
			amp = math.Min(amp, r.jump.MaxRise()/3)
		}
		return level.Moving{
			Axis:      axis,
			Amplitude: amp,
			Speed:     r.rng.Range(0.02, 0.05) * factor,
			Phase:     r.rng.Range(0, 2*math.Pi),
		}
	}

	mod := 1.0
	if r.rng.Chance(wobbleChance * t.Difficulty) {
		mod = r.rng.Range(0.9, 1.1)
	}
	return level.Static{SpeedMod: mod}
}
