package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty override.
type DifficultyPreset string

const (
	DifficultyAuto   DifficultyPreset = "auto" // Follow the world/level curve
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the accepted preset names.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyAuto, DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset resolves a preset name. An empty name means auto.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return DifficultyAuto, nil
	}
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty preset %q", name)
}

// Override returns the fixed difficulty for a preset. Auto has none.
func (p DifficultyPreset) Override() (float64, bool) {
	switch p {
	case DifficultyEasy:
		return 0.0, true
	case DifficultyNormal:
		return 0.5, true
	case DifficultyHard:
		return 1.0, true
	default:
		return 0, false
	}
}
