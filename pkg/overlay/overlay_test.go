package overlay

import (
	"testing"
	"time"
)

func TestShowShrinksMedia(t *testing.T) {
	c := New(nil)
	c.Show()
	if !c.Visible() || !c.MediaShrunk() {
		t.Error("show must set visible and shrink the media element")
	}
	c.Hide()
	if c.Visible() || c.MediaShrunk() {
		t.Error("hide must conceal the overlay and restore the media element")
	}
}

func TestDoubleArmLeavesOneTimer(t *testing.T) {
	c := New(nil)
	c.Show()

	_ = c.RequestTimedHide(10 * time.Millisecond)
	first := c.hideGen
	_ = c.RequestTimedHide(10 * time.Millisecond)
	second := c.hideGen

	if !c.HidePending() {
		t.Fatal("expected a pending hide after arming")
	}

	// The first timer fires with a stale generation: ignored.
	c.HandleTimer(HideTimerMsg{Gen: first})
	if !c.Visible() {
		t.Fatal("stale timer must not hide the overlay")
	}

	// The second (current) timer hides.
	c.HandleTimer(HideTimerMsg{Gen: second})
	if c.Visible() {
		t.Error("current timer must hide the overlay")
	}
	if c.HidePending() {
		t.Error("no timer may remain pending after firing")
	}
}

func TestShowCancelsPendingHide(t *testing.T) {
	c := New(nil)
	c.Show()
	_ = c.RequestTimedHide(time.Millisecond)
	armed := c.hideGen
	c.Show()
	if c.HidePending() {
		t.Error("show must cancel the pending hide")
	}
	c.HandleTimer(HideTimerMsg{Gen: armed})
	if !c.Visible() {
		t.Error("cancelled timer must not hide the overlay")
	}
}

func TestHideSuppressedWhileInputFocused(t *testing.T) {
	focused := true
	c := New(func() bool { return focused })
	c.Show()

	c.Hide()
	if !c.Visible() {
		t.Fatal("hide must be suppressed while the input holds focus")
	}

	// Focus is probed at hide time, not cached at arming time.
	_ = c.RequestTimedHide(time.Millisecond)
	gen := c.hideGen
	focused = false
	c.HandleTimer(HideTimerMsg{Gen: gen})
	if c.Visible() {
		// Focus released before the timer fired, so the hide goes through.
		t.Error("expected hide once focus was released")
	}
}

func TestTimedHideCommandDeliversCurrentGeneration(t *testing.T) {
	c := New(nil)
	cmd := c.RequestTimedHide(time.Nanosecond)
	msg := cmd()
	hide, ok := msg.(HideTimerMsg)
	if !ok {
		t.Fatalf("expected HideTimerMsg, got %T", msg)
	}
	if hide.Gen != c.hideGen {
		t.Errorf("command generation %d != controller generation %d", hide.Gen, c.hideGen)
	}
}
