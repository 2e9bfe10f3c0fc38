package core

// ViewConfig contains the settings passed to the interactive previewer.
type ViewConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Motion ticks per second (default 30)
	Scale    float64 // World units per character column
	Seed     int64   // RNG seed; 0 means derive from world/level/variant
}

// DefaultViewConfig returns a ViewConfig with sensible defaults.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Scale:    16,
		Seed:     0,
	}
}
