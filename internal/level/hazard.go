package level

// HazardEffect is what touching a hazard does to the player.
type HazardEffect uint8

const (
	EffectKill HazardEffect = iota
	EffectSlow
	EffectBoost
	EffectCollect
)

func (e HazardEffect) String() string {
	switch e {
	case EffectKill:
		return "kill"
	case EffectSlow:
		return "slow"
	case EffectBoost:
		return "boost"
	case EffectCollect:
		return "collect"
	default:
		return "unknown"
	}
}

// Category separates harmful hazards from special tiles.
type Category uint8

const (
	CategoryHazard Category = iota
	CategorySpecial
)

func (c Category) String() string {
	if c == CategorySpecial {
		return "special"
	}
	return "hazard"
}

// HazardSpec describes one hazard type.
type HazardSpec struct {
	Key      string
	Effect   HazardEffect
	Category Category
	W, H     float64
	Floating bool // Hovers above the platform instead of resting on it
}

// FloatHeight is the clearance between a platform and a floating object.
const FloatHeight = 48.0

var hazardCatalog = map[string]HazardSpec{
	"spike":         {Key: "spike", Effect: EffectKill, W: 32, H: 16},
	"saw":           {Key: "saw", Effect: EffectKill, W: 32, H: 32},
	"fire":          {Key: "fire", Effect: EffectKill, W: 24, H: 32},
	"laser":         {Key: "laser", Effect: EffectKill, W: 64, H: 8, Floating: true},
	"icicle":        {Key: "icicle", Effect: EffectKill, W: 16, H: 32, Floating: true},
	"acid_pool":     {Key: "acid_pool", Effect: EffectKill, W: 48, H: 12},
	"lava_vent":     {Key: "lava_vent", Effect: EffectKill, W: 32, H: 24},
	"cactus":        {Key: "cactus", Effect: EffectKill, W: 24, H: 32},
	"thorn":         {Key: "thorn", Effect: EffectKill, W: 32, H: 16},
	"void_orb":      {Key: "void_orb", Effect: EffectKill, W: 24, H: 24, Floating: true},
	"rock":          {Key: "rock", Effect: EffectSlow, W: 32, H: 24},
	"quicksand":     {Key: "quicksand", Effect: EffectSlow, Category: CategorySpecial, W: 48, H: 12},
	"wind_orb":      {Key: "wind_orb", Effect: EffectBoost, Category: CategorySpecial, W: 24, H: 24, Floating: true},
	"electric_tile": {Key: "electric_tile", Effect: EffectKill, Category: CategorySpecial, W: 32, H: 12},
	"ice_tile":      {Key: "ice_tile", Effect: EffectBoost, Category: CategorySpecial, W: 32, H: 16},
}

// LookupHazard returns the spec for a hazard key. Unknown keys resolve to a
// spike so a world pool can never produce an unplaceable object.
func LookupHazard(key string) (HazardSpec, bool) {
	spec, ok := hazardCatalog[key]
	if !ok {
		return hazardCatalog["spike"], false
	}
	return spec, true
}
