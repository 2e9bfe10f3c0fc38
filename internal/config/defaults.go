package config

import (
	_ "embed"
)

//go:embed defaults/generator.yaml
var defaultGeneratorYAML []byte

// Layout constants shared by validation and the generator.
const (
	MinPlatformGap   = 36.0 // Minimum edge-to-edge gap between path neighbours
	MinPlatformWidth = 48.0 // Floor applied after width clamping
)

// DefaultConfig returns the hardcoded generator configuration.
func DefaultConfig() Config {
	return Config{
		Player: PlayerConfig{
			JumpSpeed: 12,
			Gravity:   0.6,
			MaxSpeed:  6,
		},
		Generator: DefaultSettings(),
		Assets: []string{
			"platform",
			"platform_moving",
			"platform_blinking",
			"hazard",
			"special",
			"coin",
			"enemy",
			"portal",
			"boss",
			"checkpoint",
			"world1/platform_160x24",
			"world4/ice_tile_32x16",
			"world5/lava_vent_32x24",
		},
	}
}

// DefaultSettings returns the default generator tunables.
func DefaultSettings() GeneratorSettings {
	return GeneratorSettings{
		GapMin:             ScalarRange{Easy: 40, Hard: 70},
		GapMax:             ScalarRange{Easy: 90, Hard: 150},
		WidthMin:           ScalarRange{Easy: 110, Hard: 64},
		WidthMax:           ScalarRange{Easy: 144, Hard: 100},
		VerticalVariance:   ScalarRange{Easy: 30, Hard: 80},
		SectionCount:       ScalarRange{Easy: 14, Hard: 26},
		BranchChance:       ScalarRange{Easy: 0.25, Hard: 0.12},
		CollectibleRate:    ScalarRange{Easy: 0.7, Hard: 0.3},
		HazardRate:         ScalarRange{Easy: 0.05, Hard: 0.45},
		WorldObjectRate:    ScalarRange{Easy: 0.1, Hard: 0.3},
		MovingRate:         ScalarRange{Easy: 0, Hard: 0.25},
		BlinkingRate:       ScalarRange{Easy: 0, Hard: 0.15},
		CheckpointInterval: ScalarRange{Easy: 1400, Hard: 700},
		PlatformYMin:       220,
		PlatformYMax:       600,
		BasePlatformHeight: 24,
		BossInterval:       5,
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultGeneratorYAML
}
