// Package hints extracts the semantic hints a streamed fragment may carry
// in its class attribute: the visual transition to apply, cadence periods
// for the speech and utterance surfaces, and an overlay visibility
// directive. Absence of a hint is a normal outcome, never an error.
package hints

import (
	"strconv"
	"strings"

	"github.com/femelo/pyhtmx-gui-client/pkg/fragment"
)

// Kind identifies a cadence period channel published to the render layer.
type Kind string

const (
	Speech    Kind = "speech"
	Utterance Kind = "utterance"
)

// Visibility is an overlay show/hide directive decoded from class tokens.
type Visibility int

const (
	VisibilityNone Visibility = iota
	VisibilityShow
	VisibilityHide
)

// hideToken requests that the tab-strip overlay be hidden.
const hideToken = "no-text"

// transitionToken marks a swap target as transition-eligible inside its
// swap spec, e.g. "outerHTML transition:true".
const transitionToken = "transition:true"

// Set is the hint set derived from a single fragment. It is recomputed
// from scratch per update; stale hints never leak forward.
type Set struct {
	// Transition is the hinted transition class, "" when unhinted.
	Transition string
	// Periods holds hinted cadence periods in seconds, keyed by kind.
	Periods map[Kind]float64
	// Visibility is the overlay directive, VisibilityNone when absent.
	Visibility Visibility
}

// Neutral returns the empty hint set every failure path resolves to.
func Neutral() Set {
	return Set{Periods: map[Kind]float64{}}
}

// Parse derives the hint set from a fragment's markup. Only the root
// element's class tokens are considered. Transition tokens follow a
// last-match-wins rule: more specific classes are appended last.
func Parse(markup string) Set {
	set := Neutral()
	root, ok := fragment.ScanRoot(markup)
	if !ok {
		return set
	}
	for _, cls := range root.Classes {
		switch {
		case strings.Contains(cls, "fade-in") || strings.Contains(cls, "swipe-in"):
			set.Transition = cls
		case cls == hideToken:
			set.Visibility = VisibilityHide
		default:
			if kind, secs, ok := parsePeriod(cls); ok {
				set.Periods[kind] = secs
			}
		}
	}
	// A period hint implies the status overlay must be visible to show it.
	if len(set.Periods) > 0 {
		set.Visibility = VisibilityShow
	}
	return set
}

// Eligible reports whether a swap spec opts its target into transition
// handling. Absent specs and specs without transition:true opt out.
func Eligible(swapSpec string) bool {
	for _, tok := range strings.Fields(swapSpec) {
		if tok == transitionToken {
			return true
		}
	}
	return false
}

// parsePeriod matches "<kind>-period-<seconds>" class tokens. The server
// emits fractional values ("utterance-period-1.28"), so seconds are parsed
// as a decimal number.
func parsePeriod(cls string) (Kind, float64, bool) {
	for _, kind := range []Kind{Speech, Utterance} {
		prefix := string(kind) + "-period-"
		if !strings.HasPrefix(cls, prefix) {
			continue
		}
		secs, err := strconv.ParseFloat(strings.TrimPrefix(cls, prefix), 64)
		if err != nil || secs < 0 {
			return "", 0, false
		}
		return kind, secs, true
	}
	return "", 0, false
}
