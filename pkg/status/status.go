// Package status renders the transient voice status bar: the recognized
// utterance, the assistant's speech, and the listening spinner. Each
// surface clears itself after a period of silence, mirroring the server's
// reset cadence, so a lost stream never leaves stale text on screen.
package status

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/femelo/pyhtmx-gui-client/pkg/fragment"
	"github.com/femelo/pyhtmx-gui-client/pkg/theme"
)

// Kind identifies a status surface; the values double as swap-target ids.
type Kind string

const (
	Speech    Kind = "speech"
	Utterance Kind = "utterance"
	Spinner   Kind = "spinner"
)

// Reset timeouts per kind, matching the server's status handler.
var resetTimeouts = map[Kind]time.Duration{
	Speech:    5 * time.Second,
	Utterance: 5 * time.Second,
	Spinner:   20 * time.Second,
}

// Spinner states decoded from fragment classes.
const (
	spinHidden    = ""
	spinVisible   = "visible"
	spinSuccess   = "success"
	spinCancelled = "cancelled"
	spinFailure   = "failure"
	spinFadeOut   = "fade-out"
)

// ResetMsg clears a stale status surface. Stale generations are ignored.
type ResetMsg struct {
	Kind Kind
	Gen  int
}

// Bar owns the status surfaces. All mutation happens on the event loop.
type Bar struct {
	texts     map[Kind]string
	gens      map[Kind]int
	spin      spinner.Model
	spinState string
}

// NewBar returns an empty status bar.
func NewBar() *Bar {
	return &Bar{
		texts: map[Kind]string{},
		gens:  map[Kind]int{},
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// IsStatusTarget reports whether a swap-target id addresses this bar.
func IsStatusTarget(id string) bool {
	switch Kind(id) {
	case Speech, Utterance, Spinner:
		return true
	}
	return false
}

// Apply ingests a streamed fragment addressed at a status surface and
// returns the commands keeping it alive: the reset timer and, for a
// visible spinner, the tick that animates it.
func (b *Bar) Apply(up fragment.Update) tea.Cmd {
	kind := Kind(up.Target)
	switch kind {
	case Speech, Utterance:
		b.texts[kind] = fragment.Text(up.Markup)
		if b.texts[kind] == "" {
			// Explicit clear from the server; nothing left to expire.
			b.gens[kind]++
			return nil
		}
		return b.armReset(kind)
	case Spinner:
		state := decodeSpinnerState(up.Markup)
		restarted := state == spinVisible && b.spinState != spinVisible
		b.spinState = state
		cmds := []tea.Cmd{b.armReset(Spinner)}
		if restarted {
			cmds = append(cmds, b.spin.Tick)
		}
		return tea.Batch(cmds...)
	}
	return nil
}

// HandleReset expires a status surface when its quiet period elapses.
func (b *Bar) HandleReset(msg ResetMsg) {
	if msg.Gen != b.gens[msg.Kind] {
		return
	}
	switch msg.Kind {
	case Speech, Utterance:
		b.texts[msg.Kind] = ""
	case Spinner:
		b.spinState = spinFadeOut
	}
}

// HandleSpin forwards the animation tick while the spinner is visible.
func (b *Bar) HandleSpin(msg spinner.TickMsg) tea.Cmd {
	if b.spinState != spinVisible {
		return nil
	}
	var cmd tea.Cmd
	b.spin, cmd = b.spin.Update(msg)
	return cmd
}

// Text returns the current content of a text surface.
func (b *Bar) Text(kind Kind) string { return b.texts[kind] }

// SpinnerState returns the decoded spinner state token.
func (b *Bar) SpinnerState() string { return b.spinState }

// armReset re-arms the kind's reset timer, cancelling the previous one.
func (b *Bar) armReset(kind Kind) tea.Cmd {
	b.gens[kind]++
	gen := b.gens[kind]
	return tea.Tick(resetTimeouts[kind], func(time.Time) tea.Msg {
		return ResetMsg{Kind: kind, Gen: gen}
	})
}

// decodeSpinnerState reads the spinner's visual state off the fragment's
// class list; the last state token wins.
func decodeSpinnerState(markup string) string {
	root, ok := fragment.ScanRoot(markup)
	if !ok {
		return spinHidden
	}
	state := spinHidden
	for _, cls := range root.Classes {
		switch cls {
		case spinVisible, spinSuccess, spinCancelled, spinFailure, spinFadeOut:
			state = cls
		}
	}
	return state
}

// View renders the bar across the given width: utterance and speech lines
// on the left, the spinner glyph on the right.
func (b *Bar) View(th theme.Theme, width int) string {
	if width <= 0 {
		return ""
	}
	utterStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.StatusUtterance))
	speechStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.StatusSpeech)).Bold(true)

	lines := []string{
		utterStyle.Render(capitalize(b.texts[Utterance])),
		speechStyle.Render(capitalize(b.texts[Speech])),
	}
	glyph := b.spinnerGlyph(th)
	for i, line := range lines {
		pad := width - ansi.StringWidth(line)
		suffix := ""
		if i == 0 && glyph != "" {
			pad -= ansi.StringWidth(glyph)
			suffix = glyph
		}
		if pad < 0 {
			pad = 0
		}
		lines[i] = line + strings.Repeat(" ", pad) + suffix
	}
	return strings.Join(lines, "\n")
}

// spinnerGlyph maps the spinner state to a styled indicator.
func (b *Bar) spinnerGlyph(th theme.Theme) string {
	style := lipgloss.NewStyle()
	switch b.spinState {
	case spinVisible:
		return style.Foreground(lipgloss.Color(th.Accent)).Render(b.spin.View())
	case spinSuccess:
		return style.Foreground(lipgloss.Color(th.StatusOK)).Render("●")
	case spinCancelled:
		return style.Foreground(lipgloss.Color(th.Dim)).Render("●")
	case spinFailure:
		return style.Foreground(lipgloss.Color(th.StatusError)).Render("●")
	default:
		return ""
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
