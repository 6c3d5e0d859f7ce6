package transition

import (
	"testing"

	"github.com/femelo/pyhtmx-gui-client/pkg/fragment"
	"github.com/femelo/pyhtmx-gui-client/pkg/hints"
	"github.com/femelo/pyhtmx-gui-client/pkg/surface"
)

type sinkSpy struct {
	shows, hides int
}

func (s *sinkSpy) ShowChrome() { s.shows++ }
func (s *sinkSpy) HideChrome() { s.hides++ }

func newDirector(sink VisibilitySink) (*Director, *State) {
	state := NewState()
	reg := surface.NewRegistry(surface.Defaults()...)
	return NewDirector(state, reg, sink), state
}

func apply(d *Director, target, markup string) {
	d.Apply(fragment.Update{Target: target, Markup: markup})
}

func TestInitialStateHasNoTransition(t *testing.T) {
	_, state := newDirector(nil)
	if state.Animation != NoAnimation {
		t.Errorf("expected %q at startup, got %q", NoAnimation, state.Animation)
	}
	if len(state.Periods) != 0 {
		t.Errorf("expected no periods at startup, got %v", state.Periods)
	}
}

func TestExplicitHintOnEligibleTarget(t *testing.T) {
	sink := &sinkSpy{}
	d, state := newDirector(sink)

	apply(d, "carousel-item-0", `<div class="fade-in-from-left speech-period-3">x</div>`)

	if state.Animation != "fade-in-from-left" {
		t.Errorf("expected fade-in-from-left, got %q", state.Animation)
	}
	if got := state.Periods[hints.Speech]; got != 3 {
		t.Errorf("expected speech period 3, got %v", got)
	}
	if sink.shows != 1 {
		t.Errorf("expected one show, got %d", sink.shows)
	}
}

func TestIneligibleTargetLeavesAnimationUntouched(t *testing.T) {
	d, state := newDirector(nil)

	apply(d, "carousel-item-1", `<div class="swipe-in-from-right">x</div>`)
	apply(d, "dialog", `<div class="swipe-in-from-left utterance-period-2">y</div>`)

	if state.Animation != "swipe-in-from-right" {
		t.Errorf("ineligible update must not change the animation, got %q", state.Animation)
	}
	// Periods are an independent channel and still apply.
	if got := state.Periods[hints.Utterance]; got != 2 {
		t.Errorf("expected utterance period 2, got %v", got)
	}
}

func TestStatusTargetForcesNone(t *testing.T) {
	d, state := newDirector(nil)

	for i := 0; i < 3; i++ {
		apply(d, "utterance", `<div class="text-[24px] border-r-8">partial text</div>`)
		if state.Animation != NoAnimation {
			t.Fatalf("update %d: expected %q for status target, got %q", i, NoAnimation, state.Animation)
		}
	}
}

func TestStatusTargetExplicitHintOverrides(t *testing.T) {
	d, state := newDirector(nil)

	apply(d, "spinner", `<div class="fade-out">s</div>`)
	if state.Animation != NoAnimation {
		t.Fatalf("fade-out is not a transition hint; expected %q, got %q", NoAnimation, state.Animation)
	}
	apply(d, "spinner", `<div class="fade-in">s</div>`)
	if state.Animation != "fade-in" {
		t.Errorf("explicit hint must override status suppression, got %q", state.Animation)
	}
}

func TestBaselineIsStickyUntilOverridden(t *testing.T) {
	d, state := newDirector(nil)

	// Unhinted eligible updates ride the fade-in baseline.
	apply(d, "root", `<div id="home">page</div>`)
	apply(d, "root", `<div id="home">page 2</div>`)
	if state.Animation != DefaultAnimation {
		t.Fatalf("expected sticky %q, got %q", DefaultAnimation, state.Animation)
	}

	// An explicit override latches; the next unhinted update clears.
	apply(d, "root", `<div id="home" class="swipe-in-from-bottom">page 3</div>`)
	if state.Animation != "swipe-in-from-bottom" {
		t.Fatalf("expected override, got %q", state.Animation)
	}
	apply(d, "root", `<div id="home">page 4</div>`)
	if state.Animation != NoAnimation {
		t.Errorf("expected clear after override, got %q", state.Animation)
	}
}

func TestUnknownTargetSkipped(t *testing.T) {
	d, state := newDirector(nil)
	apply(d, "root", `<div class="fade-in">p</div>`)
	apply(d, "ghost", `<div class="swipe-in-from-top utterance-period-9">x</div>`)

	if state.Animation != "fade-in" {
		t.Errorf("unknown target must not mutate state, got %q", state.Animation)
	}
	if _, ok := state.Periods[hints.Utterance]; ok {
		t.Error("unknown target must not apply period hints")
	}
}

func TestPeriodsPersistAcrossUpdates(t *testing.T) {
	d, state := newDirector(nil)
	apply(d, "speech", `<div class="speech-period-1.5">a</div>`)
	apply(d, "speech", `<div>b</div>`)
	if got := state.Periods[hints.Speech]; got != 1.5 {
		t.Errorf("period must persist until overwritten, got %v", got)
	}
	apply(d, "speech", `<div class="speech-period-0.75">c</div>`)
	if got := state.Periods[hints.Speech]; got != 0.75 {
		t.Errorf("expected overwritten period 0.75, got %v", got)
	}
}

func TestNoTextForwardsHide(t *testing.T) {
	sink := &sinkSpy{}
	d, _ := newDirector(sink)
	apply(d, "speech", `<div class="no-text"></div>`)
	if sink.hides != 1 {
		t.Errorf("expected one hide, got %d", sink.hides)
	}
}

func TestStyleVars(t *testing.T) {
	d, state := newDirector(nil)
	apply(d, "utterance", `<div class="utterance-period-1.28">hi</div>`)
	vars := state.StyleVars()
	if vars["swap-animation"] != NoAnimation {
		t.Errorf("expected swap-animation %q, got %q", NoAnimation, vars["swap-animation"])
	}
	if vars["utterance-period"] != "1.28" {
		t.Errorf("expected utterance-period 1.28, got %q", vars["utterance-period"])
	}
}
