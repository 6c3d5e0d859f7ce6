package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/femelo/pyhtmx-gui-client/pkg/carousel"
	"github.com/femelo/pyhtmx-gui-client/pkg/config"
	"github.com/femelo/pyhtmx-gui-client/pkg/fragment"
	"github.com/femelo/pyhtmx-gui-client/pkg/media"
	"github.com/femelo/pyhtmx-gui-client/pkg/overlay"
	"github.com/femelo/pyhtmx-gui-client/pkg/status"
	"github.com/femelo/pyhtmx-gui-client/pkg/surface"
	"github.com/femelo/pyhtmx-gui-client/pkg/theme"
	"github.com/femelo/pyhtmx-gui-client/pkg/transition"
)

// carouselItems is the number of card slots on the home screen, matching
// the carousel-item surfaces the server addresses.
const carouselItems = 4

// Model is the root Bubbletea model. It owns every controller and routes
// messages between them; nothing else mutates their state.
type Model struct {
	cfg *config.Config
	log *slog.Logger
	th  theme.Theme

	zones *zone.Manager

	surfaces *surface.Registry
	style    *transition.State
	director *transition.Director
	bar      *status.Bar
	chrome   *overlay.Controller
	car      *carousel.Controller
	input    textinput.Model
	wall     *media.Renderer

	updates <-chan fragment.Update

	width  int
	height int

	hovering     bool
	lastNavKey   time.Time
	lastScroll   time.Time
	streamClosed bool
}

// New assembles the model from configuration and the stream's update
// channel.
func New(cfg *config.Config, updates <-chan fragment.Update, log *slog.Logger) *Model {
	if log == nil {
		log = slog.Default()
	}
	th := theme.Get(cfg.UI.Theme)

	decls := surface.Defaults()
	if cfg.UI.SurfacesFile != "" {
		extra, err := surface.LoadFile(cfg.UI.SurfacesFile)
		if err != nil {
			log.Warn("surface declarations not loaded", "error", err)
		} else {
			decls = append(decls, extra...)
		}
	}
	surfaces := surface.NewRegistry(decls...)

	input := textinput.New()
	input.Placeholder = "type a command"
	input.Prompt = "> "
	input.CharLimit = 256

	m := &Model{
		cfg:      cfg,
		log:      log,
		th:       th,
		zones:    zone.New(),
		surfaces: surfaces,
		style:    transition.NewState(),
		bar:      status.NewBar(),
		input:    input,
		updates:  updates,
	}
	m.chrome = overlay.New(func() bool { return m.input.Focused() })
	m.car = carousel.New(carouselItems, 80, m.chrome, carousel.Config{
		SettleDelay:       cfg.UI.SettleDelay.Duration,
		ScrollSettle:      cfg.UI.ScrollSettle.Duration,
		InactivityTimeout: cfg.UI.InactivityTimeout.Duration,
		FrameRate:         cfg.UI.FrameRate,
	})
	m.car.SetGradient(th.GradientFrom, th.GradientTo)
	m.director = transition.NewDirector(m.style, surfaces, chromeSink{m.chrome})
	if cfg.UI.Wallpaper != "" {
		m.wall = media.NewRenderer(cfg.UI.MediaProtocol)
	}
	return m
}

// chromeSink adapts the overlay controller to the transition director's
// visibility channel. Hint-driven shows are not timed.
type chromeSink struct {
	o *overlay.Controller
}

func (c chromeSink) ShowChrome() { c.o.Show() }
func (c chromeSink) HideChrome() { c.o.Hide() }

// Init arms the stream reader.
func (m *Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

// Update is the single entry point for every message in the program.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UpdateMsg:
		return m, m.applyUpdate(fragment.Update(msg))

	case StreamClosedMsg:
		m.streamClosed = true
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.car.SetItemWidth(float64(max(msg.Width, 1)))
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case carousel.FrameMsg:
		return m, m.car.HandleFrame(msg)

	case carousel.SettleMsg:
		m.car.HandleSettle(msg)
		return m, nil

	case overlay.HideTimerMsg:
		m.chrome.HandleTimer(msg)
		return m, nil

	case status.ResetMsg:
		m.bar.HandleReset(msg)
		return m, nil

	case spinner.TickMsg:
		return m, m.bar.HandleSpin(msg)
	}
	return m, nil
}

// applyUpdate routes one streamed fragment: swap it into its surface,
// let the director decide the transition, and feed the status bar when
// it is addressed.
func (m *Model) applyUpdate(up fragment.Update) tea.Cmd {
	cmds := []tea.Cmd{waitForUpdate(m.updates)}

	if !m.surfaces.Apply(up) {
		m.log.Debug("update for unknown target dropped", "target", up.Target)
		return tea.Batch(cmds...)
	}
	m.director.Apply(up)

	if status.IsStatusTarget(up.Target) {
		if cmd := m.bar.Apply(up); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// handleKey routes keyboard input. While the text input holds focus, all
// printable keys belong to it.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input.Focused() {
		switch msg.String() {
		case "esc":
			m.input.Blur()
			return m, nil
		case "enter":
			m.input.SetValue("")
			m.input.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "i", "/":
		// Focusing the input pins the chrome open until blur.
		m.chrome.Show()
		return m, m.input.Focus()
	case "left", "h":
		return m, m.debouncedNav(-1)
	case "right", "l":
		return m, m.debouncedNav(+1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(msg.String()[0] - '1')
		if i < m.car.ItemCount() {
			return m, m.car.HandleTabClick(i)
		}
	}
	return m, nil
}

// debouncedNav drops key repeats arriving faster than the configured
// window, then forwards the request to the carousel.
func (m *Model) debouncedNav(delta int) tea.Cmd {
	now := time.Now()
	if now.Sub(m.lastNavKey) < m.cfg.Input.KeyDebounce.Duration {
		return nil
	}
	m.lastNavKey = now
	return m.car.HandleKey(delta)
}

// handleMouse maps pointer activity onto the overlay and carousel using
// the marked zones from the last render.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	overCarousel := m.zones.Get(zoneCarousel).InBounds(msg)

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if !overCarousel {
			return m, nil
		}
		now := time.Now()
		if now.Sub(m.lastScroll) < m.cfg.Input.PointerDebounce.Duration {
			return m, nil
		}
		m.lastScroll = now
		delta := 3.0
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -3.0
		}
		return m, m.car.HandleScroll(delta)

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		for i := 0; i < m.car.ItemCount(); i++ {
			if m.zones.Get(zoneTab(i)).InBounds(msg) {
				return m, m.car.HandleTabClick(i)
			}
		}
		return m, nil

	case tea.MouseButtonNone:
		if msg.Action != tea.MouseActionMotion {
			return m, nil
		}
		// Pointer enter reveals the chrome and arms the inactivity hide;
		// pointer leave hides it immediately (unless the input is focused).
		if overCarousel && !m.hovering {
			m.hovering = true
			m.chrome.Show()
			return m, m.chrome.RequestTimedHide(m.cfg.UI.InactivityTimeout.Duration)
		}
		if !overCarousel && m.hovering {
			m.hovering = false
			m.chrome.Hide()
		}
	}
	return m, nil
}

// cardTitle labels tab i from the surface content, falling back to a
// positional name while the server has not populated the slot yet.
func (m *Model) cardTitle(i int) string {
	if s, ok := m.surfaces.Lookup(fmt.Sprintf("carousel-item-%d", i)); ok {
		if root, found := fragment.ScanRoot(s.Markup()); found {
			if title := root.Attrs["data-title"]; title != "" {
				return title
			}
		}
		if text := s.Text(); text != "" {
			if cut := strings.Fields(text); len(cut) > 0 {
				return cut[0]
			}
		}
	}
	return fmt.Sprintf("Card %d", i+1)
}
