// Package registry provides a global registry for level exporters.
// Exporters register themselves in init() functions, allowing the CLI
// to discover output formats without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vovakirdan/levelgen/internal/level"
)

// Exporter writes generated content in one output format.
type Exporter interface {
	// ID returns the format name used on the command line (e.g., "yaml").
	ID() string

	// Description returns a one-line human-readable summary.
	Description() string

	// Export writes the content to w.
	Export(w io.Writer, c *level.Content) error
}

// Info contains metadata about a registered exporter.
type Info struct {
	ID          string
	Description string
}

// Factory is a function that creates a new exporter instance.
type Factory func() Exporter

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds an exporter factory to the registry.
// Panics if an exporter with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: exporter %q already registered", id))
	}

	factories[id] = f
	descriptions[id] = f().Description()
}

// List returns information about all registered exporters, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:          id,
			Description: descriptions[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// IDs returns the registered format names, sorted.
func IDs() []string {
	infos := List()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}

// Create instantiates an exporter by its ID.
func Create(id string) (Exporter, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown format %q", id)
	}

	return f(), nil
}

// Exists checks if an exporter with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
