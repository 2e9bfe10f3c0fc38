package level

import (
	"math"

	"github.com/vovakirdan/levelgen/internal/core"
)

// CellSize is the edge length of a reservation cell in world units.
const CellSize = 32.0

// Tag labels a reservation.
type Tag string

const (
	TagPlatform   Tag = "platform"
	TagBoss       Tag = "boss"
	TagPortal     Tag = "portal"
	TagEnemy      Tag = "enemy"
	TagCoin       Tag = "coin"
	TagSpecial    Tag = "special"
	TagHazard     Tag = "hazard"
	TagCheckpoint Tag = "checkpoint"
)

// Protected reports whether a tag always wins its reservation.
func (t Tag) Protected() bool {
	return t == TagPlatform || t == TagBoss || t == TagPortal
}

// blocking reports whether an occupant with this tag rejects later claims.
func (t Tag) blocking() bool {
	switch t {
	case TagPlatform, TagBoss, TagPortal, TagEnemy, TagCoin, TagSpecial, TagHazard:
		return true
	}
	return false
}

// Cell addresses one grid cell.
type Cell struct {
	X, Y int
}

// ReservationGrid is a coarse occupancy map used while placing entities.
// Claims are one-way; nothing is ever released during generation.
type ReservationGrid struct {
	cells map[Cell][]Tag
}

// NewReservationGrid creates an empty grid.
func NewReservationGrid() *ReservationGrid {
	return &ReservationGrid{cells: make(map[Cell][]Tag)}
}

// ReserveRect claims every cell r overlaps for tag.
// A non-forced, non-protected claim fails and reserves nothing when any of
// those cells already holds a blocking occupant.
func (g *ReservationGrid) ReserveRect(tag Tag, r core.Rect, force bool) bool {
	cells := Cells(r)
	if !force && !tag.Protected() {
		for _, c := range cells {
			for _, occupant := range g.cells[c] {
				if occupant.blocking() {
					return false
				}
			}
		}
	}
	for _, c := range cells {
		g.cells[c] = append(g.cells[c], tag)
	}
	return true
}

// Free reports whether a non-forced claim over r would succeed.
func (g *ReservationGrid) Free(r core.Rect) bool {
	for _, c := range Cells(r) {
		for _, occupant := range g.cells[c] {
			if occupant.blocking() {
				return false
			}
		}
	}
	return true
}

// Occupants returns the tags claimed in a cell, in claim order.
func (g *ReservationGrid) Occupants(c Cell) []Tag {
	return g.cells[c]
}

// Len returns the number of claimed cells.
func (g *ReservationGrid) Len() int {
	return len(g.cells)
}

// Cells returns the cells a rectangle overlaps. Edges that land exactly on
// a cell boundary do not spill into the next cell.
func Cells(r core.Rect) []Cell {
	x0 := int(math.Floor(r.X / CellSize))
	y0 := int(math.Floor(r.Y / CellSize))
	x1 := int(math.Ceil(r.Right()/CellSize)) - 1
	y1 := int(math.Ceil(r.Bottom()/CellSize)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}

	out := make([]Cell, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			out = append(out, Cell{X: x, Y: y})
		}
	}
	return out
}

// CellTop snaps y down to the top of the cell containing it.
func CellTop(y float64) float64 {
	return math.Floor(y/CellSize) * CellSize
}
