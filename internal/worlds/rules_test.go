package worlds

import "testing"

func TestLookupAuthoredWorlds(t *testing.T) {
	for id := 1; id <= Count; id++ {
		r, ok := Lookup(id)
		if !ok {
			t.Fatalf("world %d should be authored", id)
		}
		if r.ID != id {
			t.Errorf("world %d: rule ID = %d", id, r.ID)
		}
		if len(r.HazardKeys) == 0 {
			t.Errorf("world %d: empty hazard pool", id)
		}
		if r.GapMultiplier <= 0 || r.ObjectMultiplier <= 0 {
			t.Errorf("world %d: multipliers must be positive", id)
		}
	}
}

func TestLookupFallback(t *testing.T) {
	for _, id := range []int{0, -3, 11, 999} {
		r, ok := Lookup(id)
		if ok {
			t.Errorf("world %d should not be authored", id)
		}
		if r.ID != 0 {
			t.Errorf("world %d: expected fallback rule 0, got %d", id, r.ID)
		}
	}
}

func TestRulesAreImmutable(t *testing.T) {
	r := For(1)
	r.HazardKeys[0] = "mutated"

	if For(1).HazardKeys[0] == "mutated" {
		t.Error("mutating a returned rule must not change the table")
	}
}

func TestAllOrdered(t *testing.T) {
	all := All()
	if len(all) != Count {
		t.Fatalf("All() returned %d rules, expected %d", len(all), Count)
	}
	for i, r := range all {
		if r.ID != i+1 {
			t.Errorf("All()[%d].ID = %d", i, r.ID)
		}
	}
}

func TestMovingSpeedFactor(t *testing.T) {
	tests := []struct {
		world    int
		expected float64
	}{
		{1, 0.8},
		{2, 0.85},
		{10, 1.25},
		{-100, 0.3},
		{100, 1.6},
	}

	for _, tc := range tests {
		got := MovingSpeedFactor(tc.world)
		if got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("MovingSpeedFactor(%d) = %v, expected %v", tc.world, got, tc.expected)
		}
	}

	if MovingSpeedFactor(1) >= MovingSpeedFactor(5) {
		t.Error("world 1 should move slower than world 5")
	}
}
