// Package overlay owns the visibility of the transient tab-strip and the
// enlarged/shrunk state of the full-screen media element. The two are
// mutually exclusive: overlay visible means media shrunk.
//
// Timed hides are generation-counted bubbletea commands: arming a timer
// bumps the generation, and a firing message carrying a stale generation
// is ignored. That keeps the invariant of at most one live hide timer
// without tracking timer handles.
package overlay

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// HideTimerMsg fires when a timed hide elapses.
type HideTimerMsg struct {
	Gen int
}

// Controller is the single owner of overlay state. All calls happen on the
// program's event loop; no locking is needed.
type Controller struct {
	visible bool
	shrunk  bool
	hideGen int
	pending bool

	// inputFocused probes the designated text input at hide time. Focus is
	// never cached: it can change between arming and firing of a timer.
	inputFocused func() bool
}

// New creates a hidden overlay. inputFocused may be nil.
func New(inputFocused func() bool) *Controller {
	return &Controller{inputFocused: inputFocused}
}

// Visible reports whether the tab strip is shown.
func (c *Controller) Visible() bool { return c.visible }

// MediaShrunk reports whether the full-screen media element is shrunk to
// make room for the overlay.
func (c *Controller) MediaShrunk() bool { return c.shrunk }

// HidePending reports whether a timed hide is armed.
func (c *Controller) HidePending() bool { return c.pending }

// Show reveals the overlay, shrinks the media element, and cancels any
// pending timed hide.
func (c *Controller) Show() {
	c.hideGen++
	c.pending = false
	c.visible = true
	c.shrunk = true
}

// Hide conceals the overlay and restores the media element, cancelling
// pending timers. It is suppressed while the designated text input holds
// focus, so the chrome never vanishes under the user's cursor.
func (c *Controller) Hide() {
	if c.inputFocused != nil && c.inputFocused() {
		return
	}
	c.hideGen++
	c.pending = false
	c.visible = false
	c.shrunk = false
}

// RequestTimedHide arms the hide timer, cancelling any previous one, and
// returns the command that will deliver the matching HideTimerMsg.
func (c *Controller) RequestTimedHide(delay time.Duration) tea.Cmd {
	c.hideGen++
	c.pending = true
	gen := c.hideGen
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return HideTimerMsg{Gen: gen}
	})
}

// HandleTimer applies a fired hide timer. Messages from cancelled
// generations are dropped.
func (c *Controller) HandleTimer(msg HideTimerMsg) {
	if msg.Gen != c.hideGen {
		return
	}
	c.pending = false
	c.Hide()
}
