// Package carousel keeps the home screen's scroll position, highlighted
// tab, and keyboard navigation mutually consistent. It is a three-state
// machine (idle, scroll syncing, programmatic navigation) driven entirely
// by messages on the program's event loop.
package carousel

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"
)

// Mode enumerates the navigation states.
type Mode int

const (
	// Idle accepts any input.
	Idle Mode = iota
	// ScrollSyncing follows user-driven scrolling, deriving the selected
	// index from the raw offset.
	ScrollSyncing
	// ProgrammaticNavigating runs a spring-driven smooth scroll; keyboard
	// navigation is dropped (not queued) until the animation settles.
	ProgrammaticNavigating
)

func (m Mode) String() string {
	switch m {
	case ScrollSyncing:
		return "scroll-syncing"
	case ProgrammaticNavigating:
		return "navigating"
	default:
		return "idle"
	}
}

// Chrome is the transient overlay revealed on navigation activity.
type Chrome interface {
	Show()
	RequestTimedHide(delay time.Duration) tea.Cmd
}

// SettleMsg ends an animation window. Stale generations are ignored.
type SettleMsg struct {
	Gen int
}

// FrameMsg advances the smooth-scroll spring by one frame. Stale
// generations are dropped so only one chain ever ticks the spring.
type FrameMsg struct {
	Gen int
}

// Config carries the timing knobs; zero values fall back to defaults.
type Config struct {
	// SettleDelay is the fallback guard release for programmatic scrolls
	// whose spring never converges (reduced motion, stalled rendering).
	SettleDelay time.Duration
	// ScrollSettle is the quiet window after the last scroll sample.
	ScrollSettle time.Duration
	// InactivityTimeout is handed to the chrome's timed hide.
	InactivityTimeout time.Duration
	// FrameRate drives the spring animation.
	FrameRate int
}

func (c *Config) defaults() {
	if c.SettleDelay <= 0 {
		c.SettleDelay = 500 * time.Millisecond
	}
	if c.ScrollSettle <= 0 {
		c.ScrollSettle = 250 * time.Millisecond
	}
	if c.InactivityTimeout <= 0 {
		c.InactivityTimeout = 4 * time.Second
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 60
	}
}

// settleEpsilon is the convergence threshold, in cells, at which the
// spring counts as settled.
const settleEpsilon = 0.5

// Controller owns the carousel state. Invariant: 0 <= selected < count.
type Controller struct {
	cfg    Config
	chrome Chrome

	mode      Mode
	selected  int
	count     int
	itemWidth float64

	offset   float64
	velocity float64
	target   float64
	spring   harmonica.Spring

	settleGen int
	frameGen  int

	from, to colorful.Color
}

// New creates an idle carousel with count items of the given width (in
// cells). chrome may be nil.
func New(count int, itemWidth float64, chrome Chrome, cfg Config) *Controller {
	cfg.defaults()
	if count < 1 {
		count = 1
	}
	from, _ := colorful.Hex("#3b82f6")
	to, _ := colorful.Hex("#ffb6c1")
	return &Controller{
		cfg:       cfg,
		chrome:    chrome,
		count:     count,
		itemWidth: itemWidth,
		spring:    harmonica.NewSpring(harmonica.FPS(cfg.FrameRate), 6.0, 0.9),
		from:      from,
		to:        to,
	}
}

// SetGradient replaces the two fixed colors the background blends between.
func (c *Controller) SetGradient(fromHex, toHex string) {
	if col, err := colorful.Hex(fromHex); err == nil {
		c.from = col
	}
	if col, err := colorful.Hex(toHex); err == nil {
		c.to = col
	}
}

// SetItemWidth adjusts the per-item width (terminal resize). The offset is
// re-derived from the selected index so the view stays aligned.
func (c *Controller) SetItemWidth(w float64) {
	if w <= 0 {
		return
	}
	c.itemWidth = w
	c.offset = float64(c.selected) * w
	c.target = c.offset
	c.velocity = 0
}

// Mode returns the current navigation state.
func (c *Controller) Mode() Mode { return c.mode }

// SelectedIndex returns the highlighted item, always within [0, count).
func (c *Controller) SelectedIndex() int { return c.selected }

// ItemCount returns the number of carousel items.
func (c *Controller) ItemCount() int { return c.count }

// Offset returns the raw scroll offset in cells.
func (c *Controller) Offset() float64 { return c.offset }

// trackWidth is the total scrollable width.
func (c *Controller) trackWidth() float64 {
	return float64(c.count) * c.itemWidth
}

// maxOffset is the offset of the last item's left edge.
func (c *Controller) maxOffset() float64 {
	return float64(c.count-1) * c.itemWidth
}

// Progress normalizes the scroll position over the track to [0, 1].
func (c *Controller) Progress() float64 {
	tw := c.trackWidth()
	if tw <= 0 {
		return 0
	}
	return clampFloat(c.offset/tw, 0, 1)
}

// BackgroundHex linearly interpolates the two gradient colors by scroll
// progress and returns the result as a hex color.
func (c *Controller) BackgroundHex() string {
	return c.from.BlendRgb(c.to, c.Progress()).Hex()
}

// HandleScroll applies one user scroll sample (wheel or drag delta, in
// cells). Scroll-driven navigation is exempt from the programmatic guard:
// the user grabbing the track always wins over an in-flight animation.
func (c *Controller) HandleScroll(delta float64) tea.Cmd {
	if c.itemWidth <= 0 {
		return nil
	}
	c.mode = ScrollSyncing
	c.offset = clampFloat(c.offset+delta, 0, c.maxOffset())
	c.target = c.offset
	c.velocity = 0
	c.selected = clampIndex(int(math.Floor(c.offset/c.itemWidth)), c.count)
	if c.chrome != nil {
		c.chrome.Show()
	}
	return c.armSettle(c.cfg.ScrollSettle)
}

// HandleKey processes a debounced left/right navigation request
// (delta -1 or +1). Requests during a programmatic scroll are dropped, and
// navigating past either end is a no-op with no state change.
func (c *Controller) HandleKey(delta int) tea.Cmd {
	if c.mode == ProgrammaticNavigating {
		return nil
	}
	next := clampIndex(c.selected+delta, c.count)
	if next == c.selected {
		return nil
	}
	return c.navigateTo(next)
}

// HandleTabClick selects item i directly. Clicks are explicit target
// selections and are accepted regardless of the current mode.
func (c *Controller) HandleTabClick(i int) tea.Cmd {
	return c.navigateTo(clampIndex(i, c.count))
}

// navigateTo optimistically updates the index, starts the smooth scroll,
// reveals the chrome, and arms both the fallback settle timer and the
// inactivity hide.
func (c *Controller) navigateTo(i int) tea.Cmd {
	c.selected = i
	c.target = float64(i) * c.itemWidth

	cmds := []tea.Cmd{c.armSettle(c.cfg.SettleDelay)}
	if c.mode != ProgrammaticNavigating {
		// A retargeting click rides the chain already ticking; starting a
		// second one would step the spring twice per frame.
		c.frameGen++
		cmds = append(cmds, c.frameCmd(c.frameGen))
	}
	c.mode = ProgrammaticNavigating

	if c.chrome != nil {
		c.chrome.Show()
		if cmd := c.chrome.RequestTimedHide(c.cfg.InactivityTimeout); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// HandleFrame advances the spring one step. Settling is observed from the
// spring itself (position and velocity converged); the timer armed in
// navigateTo is only the fallback.
func (c *Controller) HandleFrame(msg FrameMsg) tea.Cmd {
	if c.mode != ProgrammaticNavigating || msg.Gen != c.frameGen {
		return nil
	}
	c.offset, c.velocity = c.spring.Update(c.offset, c.velocity, c.target)
	if math.Abs(c.offset-c.target) < settleEpsilon && math.Abs(c.velocity) < settleEpsilon {
		c.offset = c.target
		c.velocity = 0
		c.settleGen++ // retire the fallback timer
		c.mode = Idle
		return nil
	}
	return c.frameCmd(msg.Gen)
}

// HandleSettle releases the animation guard when the armed window elapses.
func (c *Controller) HandleSettle(msg SettleMsg) {
	if msg.Gen != c.settleGen {
		return
	}
	c.mode = Idle
}

// armSettle (re)arms the settle window, invalidating any previous one.
func (c *Controller) armSettle(d time.Duration) tea.Cmd {
	c.settleGen++
	gen := c.settleGen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SettleMsg{Gen: gen}
	})
}

func (c *Controller) frameCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(c.cfg.FrameRate), func(time.Time) tea.Msg {
		return FrameMsg{Gen: gen}
	})
}

func clampIndex(i, count int) int {
	if i < 0 {
		return 0
	}
	if i >= count {
		return count - 1
	}
	return i
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
