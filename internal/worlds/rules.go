// Package worlds holds the per-world generation rules: which hazards a world
// draws from and how strongly it bends gaps, verticality and object density.
package worlds

import "github.com/vovakirdan/levelgen/internal/core"

// Count is the number of authored worlds.
const Count = 10

// Rule is the immutable rule-set for one world.
type Rule struct {
	ID               int
	Name             string
	HazardKeys       []string // Ordered pool of hazard/object type tags
	VerticalBias     float64  // Negative leans upward, positive leans downward
	GapMultiplier    float64
	ObjectMultiplier float64
}

var defaultRule = Rule{
	ID:               0,
	Name:             "Fallback",
	HazardKeys:       []string{"spike"},
	VerticalBias:     0,
	GapMultiplier:    1.0,
	ObjectMultiplier: 1.0,
}

var table = map[int]Rule{
	1: {
		ID:               1,
		Name:             "Neon Meadow",
		HazardKeys:       []string{"spike", "rock"},
		VerticalBias:     0,
		GapMultiplier:    1.0,
		ObjectMultiplier: 0.8,
	},
	2: {
		ID:               2,
		Name:             "Circuit Caves",
		HazardKeys:       []string{"spike", "electric_tile", "rock"},
		VerticalBias:     0.1,
		GapMultiplier:    1.05,
		ObjectMultiplier: 0.9,
	},
	3: {
		ID:               3,
		Name:             "Glass Dunes",
		HazardKeys:       []string{"spike", "quicksand", "cactus"},
		VerticalBias:     0.05,
		GapMultiplier:    1.1,
		ObjectMultiplier: 1.0,
	},
	4: {
		ID:               4,
		Name:             "Frost Relay",
		HazardKeys:       []string{"icicle", "ice_tile", "spike"},
		VerticalBias:     -0.1,
		GapMultiplier:    1.1,
		ObjectMultiplier: 1.0,
	},
	5: {
		ID:               5,
		Name:             "Magma Works",
		HazardKeys:       []string{"fire", "lava_vent", "spike"},
		VerticalBias:     0.15,
		GapMultiplier:    1.15,
		ObjectMultiplier: 1.1,
	},
	6: {
		ID:               6,
		Name:             "Sky Gardens",
		HazardKeys:       []string{"wind_orb", "thorn", "spike"},
		VerticalBias:     -0.25,
		GapMultiplier:    1.2,
		ObjectMultiplier: 1.1,
	},
	7: {
		ID:               7,
		Name:             "Acid Marsh",
		HazardKeys:       []string{"acid_pool", "quicksand", "spike"},
		VerticalBias:     0.2,
		GapMultiplier:    1.2,
		ObjectMultiplier: 1.2,
	},
	8: {
		ID:               8,
		Name:             "Clockwork Spire",
		HazardKeys:       []string{"saw", "electric_tile", "spike"},
		VerticalBias:     -0.2,
		GapMultiplier:    1.25,
		ObjectMultiplier: 1.2,
	},
	9: {
		ID:               9,
		Name:             "Void Rift",
		HazardKeys:       []string{"void_orb", "laser", "wind_orb", "spike"},
		VerticalBias:     -0.1,
		GapMultiplier:    1.3,
		ObjectMultiplier: 1.3,
	},
	10: {
		ID:               10,
		Name:             "Mainframe Core",
		HazardKeys:       []string{"laser", "saw", "fire", "electric_tile"},
		VerticalBias:     0,
		GapMultiplier:    1.35,
		ObjectMultiplier: 1.4,
	},
}

// Lookup returns the rule for a world and whether the world is authored.
// Unknown worlds get the world-0 fallback.
func Lookup(world int) (Rule, bool) {
	r, ok := table[world]
	if !ok {
		return Default(), false
	}
	return r.clone(), true
}

// For returns the rule for a world, falling back to the default.
func For(world int) Rule {
	r, _ := Lookup(world)
	return r
}

// Default returns the world-0 fallback rule.
func Default() Rule {
	return defaultRule.clone()
}

// All returns the authored rules ordered by world id.
func All() []Rule {
	out := make([]Rule, 0, Count)
	for id := 1; id <= Count; id++ {
		out = append(out, table[id].clone())
	}
	return out
}

// MovingSpeedFactor scales moving-platform speed per world. World 1 runs
// slower and each later world is about 5% faster.
func MovingSpeedFactor(world int) float64 {
	return core.ClampF(0.8+0.05*float64(world-1), 0.3, 1.6)
}

// clone copies the hazard slice so callers cannot mutate the table.
func (r Rule) clone() Rule {
	keys := make([]string, len(r.HazardKeys))
	copy(keys, r.HazardKeys)
	r.HazardKeys = keys
	return r
}
