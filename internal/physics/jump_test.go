package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/levelgen/internal/core"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestJumpDerivedValues(t *testing.T) {
	j := New(12, 0.6, 6)

	if got := j.MaxJumpHeight(); !almostEqual(got, 120) {
		t.Errorf("MaxJumpHeight() = %v, expected 120", got)
	}
	if got := j.TotalAirTime(); !almostEqual(got, 40) {
		t.Errorf("TotalAirTime() = %v, expected 40", got)
	}
	if got := j.MaxJumpDistance(); !almostEqual(got, 240) {
		t.Errorf("MaxJumpDistance() = %v, expected 240", got)
	}
	if got := j.MaxRise(); !almostEqual(got, 90) {
		t.Errorf("MaxRise() = %v, expected 90", got)
	}
	if got := j.MaxStep(); !almostEqual(got, 180) {
		t.Errorf("MaxStep() = %v, expected 180", got)
	}
}

func TestJumpCanReach(t *testing.T) {
	j := New(12, 0.6, 6) // height 120, distance 240

	tests := []struct {
		name     string
		from, to core.Point
		expected bool
	}{
		{"same spot", core.Pt(0, 0), core.Pt(0, 0), true},
		{"flat within range", core.Pt(0, 100), core.Pt(200, 100), true},
		{"flat at exact range", core.Pt(0, 100), core.Pt(240, 100), true},
		{"flat beyond range", core.Pt(0, 100), core.Pt(241, 100), false},
		{"leftward within range", core.Pt(300, 100), core.Pt(100, 100), true},
		{"rise at apex", core.Pt(0, 200), core.Pt(50, 80), true},
		{"rise above apex", core.Pt(0, 200), core.Pt(50, 79), false},
		{"deep drop", core.Pt(0, 0), core.Pt(100, 5000), true},
		{"deep drop too far", core.Pt(0, 0), core.Pt(300, 5000), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := j.CanReach(tc.from, tc.to); got != tc.expected {
				t.Errorf("CanReach(%v, %v) = %v, expected %v", tc.from, tc.to, got, tc.expected)
			}
		})
	}
}

func TestJumpValidate(t *testing.T) {
	tests := []struct {
		name    string
		jump    Jump
		wantErr bool
	}{
		{"valid", New(12, 0.6, 6), false},
		{"zero gravity", New(12, 0, 6), true},
		{"negative jump", New(-1, 0.6, 6), true},
		{"zero speed", New(12, 0.6, 0), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.jump.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestJumpDegenerateNeverPanics(t *testing.T) {
	j := Jump{}
	if j.MaxJumpHeight() != 0 || j.TotalAirTime() != 0 || j.MaxJumpDistance() != 0 {
		t.Error("zero-value Jump should report a zero envelope")
	}
	if !j.CanReach(core.Pt(0, 0), core.Pt(0, 10)) {
		t.Error("a straight drop should be reachable even with a zero envelope")
	}
}
