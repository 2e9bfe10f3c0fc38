// Package level defines the generated level aggregate: platforms and their
// motion, spawned entities, the reservation grid used while placing them,
// and the runtime hooks the gameplay loop uses to animate and retire them.
package level

import "github.com/vovakirdan/levelgen/internal/core"

// Kind identifies an entity collection inside Content.
type Kind uint8

const (
	KindPlatform Kind = iota
	KindEnemy
	KindCoin
	KindHazard
	KindSpecial
	KindCheckpoint
)

var kindNames = [...]string{"platform", "enemy", "coin", "hazard", "special", "checkpoint"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Handle is a non-owning reference to an entity: its collection and index.
// Handles stay valid for the lifetime of the Content because entities are
// never compacted, only marked removed.
type Handle struct {
	Kind  Kind
	Index int
}

// Mode selects the layout strategy for a level.
type Mode string

const (
	ModeDefault Mode = "default"
	ModeTower   Mode = "tower"
	ModeBoss    Mode = "boss"
)

// Entity is the state shared by everything spawned on a level.
type Entity struct {
	Rect    core.Rect
	Removed bool
}

// Enemy is a ground patrol spawned on a static platform.
type Enemy struct {
	Entity
	Platform   int     // Index of the platform it patrols
	PatrolMinX float64 // Leftmost x of the patrol
	PatrolMaxX float64 // Rightmost x of the patrol (left edge of the rect)
	Speed      float64
}

// Coin is a collectible. Bonus coins reward branch platforms.
type Coin struct {
	Entity
	Bonus bool
}

// Hazard is a harmful or modifying object. Specials share this type.
type Hazard struct {
	Entity
	Key      string
	Effect   HazardEffect
	Category Category
	Skin     string
	Platform int // Index of the platform it was placed on, -1 if none
}

// Goal is the level exit.
type Goal struct {
	Rect       core.Rect
	PortalType string // "exit" or "boss"
	Active     bool   // Boss portals stay locked until the boss is cleared
	Platform   int
}

// Boss marks where the scripted boss encounter spawns.
type Boss struct {
	Rect     core.Rect
	Key      string
	Platform int
}

// Checkpoint is a respawn marker.
type Checkpoint struct {
	Entity
	Platform int
}
