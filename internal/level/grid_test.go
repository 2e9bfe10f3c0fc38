package level

import (
	"testing"

	"github.com/vovakirdan/levelgen/internal/core"
)

func TestCells(t *testing.T) {
	tests := []struct {
		name     string
		r        core.Rect
		expected int
	}{
		{"single cell", core.NewRect(0, 0, 32, 32), 1},
		{"spills right", core.NewRect(16, 0, 32, 16), 2},
		{"exact boundary stays", core.NewRect(32, 32, 32, 32), 1},
		{"two by two", core.NewRect(10, 10, 40, 40), 4},
		{"zero size", core.NewRect(5, 5, 0, 0), 1},
		{"negative coords", core.NewRect(-40, -8, 16, 16), 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(Cells(tc.r)); got != tc.expected {
				t.Errorf("len(Cells(%+v)) = %d, expected %d", tc.r, got, tc.expected)
			}
		})
	}
}

func TestCellTop(t *testing.T) {
	tests := []struct {
		y, expected float64
	}{
		{0, 0},
		{31, 0},
		{32, 32},
		{300, 288},
		{-1, -32},
	}
	for _, tc := range tests {
		if got := CellTop(tc.y); got != tc.expected {
			t.Errorf("CellTop(%v) = %v, expected %v", tc.y, got, tc.expected)
		}
	}
}

func TestReserveRectConflicts(t *testing.T) {
	tests := []struct {
		name     string
		first    Tag
		second   Tag
		force    bool
		expected bool
	}{
		{"coin on platform", TagPlatform, TagCoin, false, false},
		{"hazard on coin", TagCoin, TagHazard, false, false},
		{"enemy on special", TagSpecial, TagEnemy, false, false},
		{"platform on hazard", TagHazard, TagPlatform, false, true},
		{"boss on enemy", TagEnemy, TagBoss, false, true},
		{"portal on coin", TagCoin, TagPortal, false, true},
		{"forced checkpoint on platform", TagPlatform, TagCheckpoint, true, true},
		{"coin on checkpoint", TagCheckpoint, TagCoin, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewReservationGrid()
			r := core.NewRect(0, 0, 32, 32)
			if !g.ReserveRect(tc.first, r, false) {
				t.Fatal("first claim on an empty grid must succeed")
			}
			if got := g.ReserveRect(tc.second, r, tc.force); got != tc.expected {
				t.Errorf("ReserveRect(%s) = %v, expected %v", tc.second, got, tc.expected)
			}
		})
	}
}

func TestFailedClaimReservesNothing(t *testing.T) {
	g := NewReservationGrid()
	g.ReserveRect(TagHazard, core.NewRect(32, 0, 32, 32), false)

	// Covers a free cell and the hazard's cell
	if g.ReserveRect(TagCoin, core.NewRect(0, 0, 64, 32), false) {
		t.Fatal("claim overlapping a hazard should fail")
	}
	if occ := g.Occupants(Cell{X: 0, Y: 0}); len(occ) != 0 {
		t.Errorf("failed claim left occupants %v", occ)
	}
	if !g.Free(core.NewRect(0, 0, 32, 32)) {
		t.Error("cell 0,0 should still be free")
	}
}

func TestProtectedStacking(t *testing.T) {
	g := NewReservationGrid()
	r := core.NewRect(0, 0, 32, 32)
	g.ReserveRect(TagPlatform, r, false)
	g.ReserveRect(TagPortal, r, false)

	occ := g.Occupants(Cell{})
	if len(occ) != 2 || occ[0] != TagPlatform || occ[1] != TagPortal {
		t.Errorf("Occupants = %v", occ)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", g.Len())
	}
}
