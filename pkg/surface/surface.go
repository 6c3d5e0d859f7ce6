// Package surface keeps the client-side registry of swap targets: the
// elements the server may replace through the update stream. Each surface
// declares its swap spec and whether it suppresses the default transition,
// so transition decisions never depend on a hardcoded element-name list.
package surface

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/femelo/pyhtmx-gui-client/pkg/fragment"
)

// Surface is one swap target hosted by the client.
type Surface struct {
	ID       string `yaml:"id"`
	SwapSpec string `yaml:"swap-spec"`
	// SuppressesDefaultTransition replaces content silently instead of
	// applying the fade-in baseline. Status surfaces set this so partial
	// speech output does not flash on every token.
	SuppressesDefaultTransition bool `yaml:"suppresses-default-transition"`

	markup string
}

// Markup returns the raw markup last swapped into the surface.
func (s *Surface) Markup() string { return s.markup }

// Text returns the surface's current content with tags stripped.
func (s *Surface) Text() string { return fragment.Text(s.markup) }

// Registry indexes surfaces by id, preserving declaration order.
type Registry struct {
	order    []string
	surfaces map[string]*Surface
}

// NewRegistry builds a registry from surface declarations. Later
// declarations with a repeated id override earlier ones in place.
func NewRegistry(decls ...Surface) *Registry {
	r := &Registry{surfaces: make(map[string]*Surface, len(decls))}
	for _, d := range decls {
		d := d
		if _, ok := r.surfaces[d.ID]; !ok {
			r.order = append(r.order, d.ID)
		}
		r.surfaces[d.ID] = &d
	}
	return r
}

// Defaults returns the surfaces of the stock voice-assistant page: the
// page root, the modal dialog, the status bar elements, and the home
// carousel item slots.
func Defaults() []Surface {
	decls := []Surface{
		{ID: "root", SwapSpec: "innerHTML transition:true"},
		{ID: "dialog", SwapSpec: "outerHTML"},
		{ID: "speech", SwapSpec: "outerHTML transition:true", SuppressesDefaultTransition: true},
		{ID: "utterance", SwapSpec: "outerHTML transition:true", SuppressesDefaultTransition: true},
		{ID: "spinner", SwapSpec: "outerHTML transition:true", SuppressesDefaultTransition: true},
	}
	for i := 0; i < 4; i++ {
		decls = append(decls, Surface{
			ID:       fmt.Sprintf("carousel-item-%d", i),
			SwapSpec: "innerHTML transition:true",
		})
	}
	return decls
}

// Lookup returns the surface with the given id.
func (r *Registry) Lookup(id string) (*Surface, bool) {
	s, ok := r.surfaces[id]
	return s, ok
}

// IDs returns the registered surface ids in declaration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Apply swaps an update's markup into its target. Updates addressed at an
// unregistered target are skipped without mutating any state; the previous
// content stays in place.
func (r *Registry) Apply(up fragment.Update) bool {
	s, ok := r.surfaces[up.Target]
	if !ok {
		return false
	}
	s.markup = up.Markup
	return true
}

// LoadFile reads producer-supplied surface declarations from a YAML file.
// The declarations extend (and may override) the builtin defaults.
func LoadFile(path string) ([]Surface, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read surface declarations: %w", err)
	}
	var doc struct {
		Surfaces []Surface `yaml:"surfaces"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse surface declarations: %w", err)
	}
	return doc.Surfaces, nil
}
