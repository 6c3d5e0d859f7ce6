// Package transition decides which visual transition each streamed update
// gets and publishes the result as named style state for the render layer.
package transition

import (
	"strconv"

	"github.com/femelo/pyhtmx-gui-client/pkg/fragment"
	"github.com/femelo/pyhtmx-gui-client/pkg/hints"
	"github.com/femelo/pyhtmx-gui-client/pkg/surface"
)

const (
	// DefaultAnimation is the baseline applied to eligible updates that
	// carry no explicit hint. It is sticky across unhinted updates so that
	// alternating hinted/unhinted fragments do not flicker.
	DefaultAnimation = "fade-in"
	// NoAnimation clears the active transition.
	NoAnimation = "none"
)

// State is the process-wide style state. It has a single owner (the
// Director) and is read by the render layer each frame.
type State struct {
	// Animation is the active transition name, NoAnimation when cleared.
	Animation string
	// Periods holds the cadence timing properties in seconds. Entries are
	// only ever replaced by a later hint for the same kind.
	Periods map[hints.Kind]float64
}

// NewState returns style state initialized to "no transition".
func NewState() *State {
	return &State{
		Animation: NoAnimation,
		Periods:   make(map[hints.Kind]float64),
	}
}

// StyleVars renders the published property set: swap-animation plus one
// <kind>-period entry per known cadence. This is the only output contract
// toward the render layer.
func (s *State) StyleVars() map[string]string {
	vars := map[string]string{"swap-animation": s.Animation}
	for kind, secs := range s.Periods {
		vars[string(kind)+"-period"] = strconv.FormatFloat(secs, 'f', -1, 64)
	}
	return vars
}

// VisibilitySink receives overlay directives decoded from update hints.
type VisibilitySink interface {
	// ShowChrome reveals the overlay without arming an auto-hide timer;
	// hint-driven visibility persists until explicitly cleared.
	ShowChrome()
	// HideChrome hides the overlay immediately.
	HideChrome()
}

// Director inspects each incoming update and mutates the style state. It
// is the state's only writer.
type Director struct {
	state    *State
	surfaces *surface.Registry
	sink     VisibilitySink

	// overridden latches once an explicit transition hint has been
	// applied; from then on unhinted eligible updates clear the animation
	// instead of restoring the baseline.
	overridden bool
}

// NewDirector wires a director to its owned state, the swap-target
// registry, and the overlay sink. sink may be nil.
func NewDirector(state *State, surfaces *surface.Registry, sink VisibilitySink) *Director {
	return &Director{state: state, surfaces: surfaces, sink: sink}
}

// Apply consumes one streamed update. Period and visibility hints are
// independent channels and are honored even when the update is not
// transition-eligible; an ineligible update never touches the active
// animation, so it cannot interrupt one already in flight.
func (d *Director) Apply(up fragment.Update) {
	target, ok := d.surfaces.Lookup(up.Target)
	if !ok {
		return
	}
	set := hints.Parse(up.Markup)

	for kind, secs := range set.Periods {
		d.state.Periods[kind] = secs
	}

	if hints.Eligible(target.SwapSpec) {
		switch {
		case set.Transition != "":
			d.state.Animation = set.Transition
			d.overridden = true
		case target.SuppressesDefaultTransition:
			d.state.Animation = NoAnimation
		case !d.overridden:
			d.state.Animation = DefaultAnimation
		default:
			d.state.Animation = NoAnimation
		}
	}

	if d.sink != nil {
		switch set.Visibility {
		case hints.VisibilityShow:
			d.sink.ShowChrome()
		case hints.VisibilityHide:
			d.sink.HideChrome()
		}
	}
}
