// Package config provides YAML-based generator configuration loading,
// difficulty presets and settings validation for the level generator.
package config

import (
	"math"

	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/physics"
)

// Config is the root configuration document.
type Config struct {
	Player    PlayerConfig      `yaml:"player"`
	Generator GeneratorSettings `yaml:"generator"`
	Assets    []string          `yaml:"assets"` // Known skin keys for the asset catalog
}

// PlayerConfig holds the movement constants the layout is designed against.
// Keep these in sync with the gameplay tuning of the live player.
type PlayerConfig struct {
	JumpSpeed float64 `yaml:"jump_speed"` // Initial upward velocity, units per tick
	Gravity   float64 `yaml:"gravity"`    // Downward acceleration per tick
	MaxSpeed  float64 `yaml:"max_speed"`  // Horizontal speed cap, units per tick
}

// Jump returns the reachability model for these constants.
func (p PlayerConfig) Jump() physics.Jump {
	return physics.New(p.JumpSpeed, p.Gravity, p.MaxSpeed)
}

// ScalarRange is a tunable that moves linearly from Easy to Hard.
type ScalarRange struct {
	Easy float64 `yaml:"easy"`
	Hard float64 `yaml:"hard"`
}

// Lerp returns the value at difficulty t. t is clamped to [0, 1].
func (r ScalarRange) Lerp(t float64) float64 {
	return core.Lerp(r.Easy, r.Hard, core.ClampF(t, 0, 1))
}

// Min returns the smaller endpoint.
func (r ScalarRange) Min() float64 {
	return math.Min(r.Easy, r.Hard)
}

// Max returns the larger endpoint.
func (r ScalarRange) Max() float64 {
	return math.Max(r.Easy, r.Hard)
}

// GeneratorSettings bundles every difficulty-interpolated tunable plus the
// fixed layout bounds.
type GeneratorSettings struct {
	GapMin             ScalarRange `yaml:"gap_min"`
	GapMax             ScalarRange `yaml:"gap_max"`
	WidthMin           ScalarRange `yaml:"width_min"`
	WidthMax           ScalarRange `yaml:"width_max"`
	VerticalVariance   ScalarRange `yaml:"vertical_variance"`
	SectionCount       ScalarRange `yaml:"section_count"`
	BranchChance       ScalarRange `yaml:"branch_chance"`
	CollectibleRate    ScalarRange `yaml:"collectible_rate"`
	HazardRate         ScalarRange `yaml:"hazard_rate"`
	WorldObjectRate    ScalarRange `yaml:"world_object_rate"`
	MovingRate         ScalarRange `yaml:"moving_rate"`
	BlinkingRate       ScalarRange `yaml:"blinking_rate"`
	CheckpointInterval ScalarRange `yaml:"checkpoint_interval"`

	PlatformYMin       float64 `yaml:"platform_y_min"`
	PlatformYMax       float64 `yaml:"platform_y_max"`
	BasePlatformHeight float64 `yaml:"base_platform_height"`
	BossInterval       int     `yaml:"boss_interval"` // 0 disables boss levels

	Seed *int64 `yaml:"seed,omitempty"`
}

// Tuning is GeneratorSettings evaluated at a single difficulty.
type Tuning struct {
	Difficulty         float64
	GapMin             float64
	GapMax             float64
	WidthMin           float64
	WidthMax           float64
	VerticalVariance   float64
	SectionCount       int
	BranchChance       float64
	CollectibleRate    float64
	HazardRate         float64
	WorldObjectRate    float64
	MovingRate         float64
	BlinkingRate       float64
	CheckpointInterval float64
	PlatformYMin       float64
	PlatformYMax       float64
	PlatformHeight     float64
}

// At evaluates every range once for the given difficulty.
func (s GeneratorSettings) At(difficulty float64) Tuning {
	d := core.ClampF(difficulty, 0, 1)
	return Tuning{
		Difficulty:         d,
		GapMin:             s.GapMin.Lerp(d),
		GapMax:             s.GapMax.Lerp(d),
		WidthMin:           s.WidthMin.Lerp(d),
		WidthMax:           s.WidthMax.Lerp(d),
		VerticalVariance:   s.VerticalVariance.Lerp(d),
		SectionCount:       int(math.Round(s.SectionCount.Lerp(d))),
		BranchChance:       s.BranchChance.Lerp(d),
		CollectibleRate:    s.CollectibleRate.Lerp(d),
		HazardRate:         s.HazardRate.Lerp(d),
		WorldObjectRate:    s.WorldObjectRate.Lerp(d),
		MovingRate:         s.MovingRate.Lerp(d),
		BlinkingRate:       s.BlinkingRate.Lerp(d),
		CheckpointInterval: s.CheckpointInterval.Lerp(d),
		PlatformYMin:       s.PlatformYMin,
		PlatformYMax:       s.PlatformYMax,
		PlatformHeight:     s.BasePlatformHeight,
	}
}

// IsBossLevel reports whether a level of a ten-level world hosts a boss.
// Tower levels (every 10th) never do.
func (s GeneratorSettings) IsBossLevel(level int) bool {
	if s.BossInterval <= 0 || level <= 0 || level%10 == 0 {
		return false
	}
	return level%10 == s.BossInterval%10
}
