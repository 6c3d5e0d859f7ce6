// Package theme defines the color palettes for the assistant surface.
// Themes come from a builtin registry and can be extended or overridden by
// TOML files dropped next to the client config.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme is the complete palette for the client.
type Theme struct {
	Name string

	// Base colors
	Background string // hex color e.g. "#1a1b26"
	Foreground string
	Dim        string
	Accent     string

	// Carousel colors
	GradientFrom string // left end of the scroll gradient
	GradientTo   string // right end of the scroll gradient
	CardBorder   string
	CardTitle    string

	// Tab strip
	TabActive   string
	TabInactive string

	// Status bar
	StatusSpeech    string
	StatusUtterance string
	StatusOK        string
	StatusError     string
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
}

// Get returns a named theme, falling back to the default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Names returns all registered theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// thRegister adds a theme to the registry under its lowercase name.
func thRegister(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
