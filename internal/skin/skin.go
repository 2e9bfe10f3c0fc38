// Package skin resolves cosmetic asset keys for generated entities. The
// generator only ever asks for a key; pixels live with the renderer.
package skin

import (
	"fmt"
	"math"
)

// Provider maps a world, an entity kind and a size to an asset key.
// Implementations must be safe for concurrent use and free of side effects.
type Provider interface {
	Resolve(world int, kind string, w, h float64) string
}

// Tier reports which fallback level produced a key.
type Tier uint8

const (
	TierSpecific Tier = iota
	TierGeneric
	TierPlaceholder
)

func (t Tier) String() string {
	switch t {
	case TierSpecific:
		return "specific"
	case TierGeneric:
		return "generic"
	default:
		return "placeholder"
	}
}

// Tiered resolves keys against a fixed catalog: the world and size specific
// asset first, then the generic asset for the kind, then a placeholder the
// renderer draws procedurally.
type Tiered struct {
	known map[string]struct{}
}

// NewTiered builds a provider over the given catalog keys.
func NewTiered(keys []string) *Tiered {
	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		known[k] = struct{}{}
	}
	return &Tiered{known: known}
}

// Resolve implements Provider.
func (t *Tiered) Resolve(world int, kind string, w, h float64) string {
	key, _ := t.Lookup(world, kind, w, h)
	return key
}

// Lookup is Resolve that also reports the tier used.
func (t *Tiered) Lookup(world int, kind string, w, h float64) (string, Tier) {
	if key := SpecificKey(world, kind, w, h); t.has(key) {
		return key, TierSpecific
	}
	if t.has(kind) {
		return kind, TierGeneric
	}
	return PlaceholderKey(kind), TierPlaceholder
}

// Len returns the catalog size.
func (t *Tiered) Len() int {
	return len(t.known)
}

func (t *Tiered) has(key string) bool {
	_, ok := t.known[key]
	return ok
}

// SpecificKey is the catalog key of a world and size specific asset.
func SpecificKey(world int, kind string, w, h float64) string {
	return fmt.Sprintf("world%d/%s_%dx%d", world, kind, int(math.Round(w)), int(math.Round(h)))
}

// PlaceholderKey is the key of a procedurally drawn stand-in.
func PlaceholderKey(kind string) string {
	return "placeholder:" + kind
}

// Placeholder resolves everything to placeholders.
type Placeholder struct{}

// Resolve implements Provider.
func (Placeholder) Resolve(_ int, kind string, _, _ float64) string {
	return PlaceholderKey(kind)
}
