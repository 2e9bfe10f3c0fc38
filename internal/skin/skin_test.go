package skin

import "testing"

func TestTieredLookup(t *testing.T) {
	p := NewTiered([]string{"platform", "world1/platform_160x24", "spike"})

	tests := []struct {
		name  string
		world int
		kind  string
		w, h  float64
		key   string
		tier  Tier
	}{
		{"specific", 1, "platform", 160, 24, "world1/platform_160x24", TierSpecific},
		{"generic by size", 1, "platform", 96, 24, "platform", TierGeneric},
		{"generic by world", 2, "platform", 160, 24, "platform", TierGeneric},
		{"generic hazard", 5, "spike", 32, 16, "spike", TierGeneric},
		{"placeholder", 3, "quicksand", 48, 12, "placeholder:quicksand", TierPlaceholder},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key, tier := p.Lookup(tc.world, tc.kind, tc.w, tc.h)
			if key != tc.key || tier != tc.tier {
				t.Errorf("Lookup = %q (%s), expected %q (%s)", key, tier, tc.key, tc.tier)
			}
			if got := p.Resolve(tc.world, tc.kind, tc.w, tc.h); got != tc.key {
				t.Errorf("Resolve = %q", got)
			}
		})
	}

	if p.Len() != 3 {
		t.Errorf("Len() = %d", p.Len())
	}
}

func TestSpecificKeyRounds(t *testing.T) {
	if got := SpecificKey(4, "ice_tile", 31.6, 16.2); got != "world4/ice_tile_32x16" {
		t.Errorf("SpecificKey = %q", got)
	}
}

func TestPlaceholderProvider(t *testing.T) {
	var p Provider = Placeholder{}
	if got := p.Resolve(1, "coin", 16, 16); got != "placeholder:coin" {
		t.Errorf("Resolve = %q", got)
	}
}
