package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/levelgen/internal/physics"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid generator settings")

// Validate checks the whole configuration.
func (c Config) Validate() error {
	jump := c.Player.Jump()
	if err := jump.Validate(); err != nil {
		return fmt.Errorf("config: %w: %w", ErrInvalidSettings, err)
	}
	return c.Generator.Validate(jump)
}

// Validate rejects settings no difficulty could turn into a playable level.
// It checks both range endpoints so every interpolated value is covered.
func (s GeneratorSettings) Validate(jump physics.Jump) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("config: %w: %s", ErrInvalidSettings, fmt.Sprintf(format, args...))
	}

	pairs := []struct {
		name     string
		min, max ScalarRange
	}{
		{"gap", s.GapMin, s.GapMax},
		{"width", s.WidthMin, s.WidthMax},
	}
	for _, p := range pairs {
		if p.min.Easy > p.max.Easy || p.min.Hard > p.max.Hard {
			return invalid("%s_min exceeds %s_max", p.name, p.name)
		}
	}

	type field struct {
		name string
		r    ScalarRange
	}

	nonNegative := []field{
		{"gap_min", s.GapMin},
		{"width_min", s.WidthMin},
		{"vertical_variance", s.VerticalVariance},
		{"section_count", s.SectionCount},
		{"checkpoint_interval", s.CheckpointInterval},
	}
	for _, f := range nonNegative {
		if f.r.Min() < 0 {
			return invalid("%s must not be negative", f.name)
		}
	}

	rates := []field{
		{"branch_chance", s.BranchChance},
		{"collectible_rate", s.CollectibleRate},
		{"hazard_rate", s.HazardRate},
		{"world_object_rate", s.WorldObjectRate},
		{"moving_rate", s.MovingRate},
		{"blinking_rate", s.BlinkingRate},
	}
	for _, f := range rates {
		if f.r.Min() < 0 || f.r.Max() > 1 {
			return invalid("%s must stay within [0, 1]", f.name)
		}
	}

	if jump.MaxStep() < MinPlatformGap+MinPlatformWidth {
		return invalid("jump reaches %.0f units, below the minimum step", jump.MaxStep())
	}

	// A minimum-width pair separated by the minimum gap must fit the
	// horizontal budget, otherwise no step could ever be placed.
	if limit := jump.MaxStep() - MinPlatformGap; s.WidthMin.Max() > limit {
		return invalid("width_min %.0f cannot fit the jump budget (max %.0f)", s.WidthMin.Max(), limit)
	}
	if s.WidthMax.Max() > 2*(jump.MaxStep()-MinPlatformGap-MinPlatformWidth/2) {
		return invalid("width_max %.0f cannot fit the jump budget", s.WidthMax.Max())
	}

	if s.BasePlatformHeight <= 0 {
		return invalid("base_platform_height must be positive")
	}
	if s.BasePlatformHeight >= jump.MaxRise() {
		return invalid("base_platform_height %.0f leaves no room to climb", s.BasePlatformHeight)
	}
	if s.PlatformYMin >= s.PlatformYMax {
		return invalid("platform_y_min must be below platform_y_max")
	}
	if s.BossInterval < 0 {
		return invalid("boss_interval must not be negative")
	}
	return nil
}
