package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// zoneCarousel marks the card area reacting to pointer hover and wheel.
const zoneCarousel = "carousel"

func zoneTab(i int) string { return fmt.Sprintf("tab-%d", i) }

// View renders the whole screen: status bar, optional wallpaper, the
// active carousel card, the transient tab strip, and the text input.
// Zones are re-marked every frame so mouse routing follows the layout.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "connecting..."
	}

	var sections []string
	sections = append(sections, m.bar.View(m.th, m.width))

	if wall := m.viewWallpaper(); wall != "" {
		sections = append(sections, wall)
	}

	sections = append(sections, m.zones.Mark(zoneCarousel, m.viewCard()))

	if m.chrome.Visible() {
		sections = append(sections, m.viewTabs())
	}
	if m.input.Focused() {
		sections = append(sections, m.input.View())
	}
	if m.streamClosed {
		notice := lipgloss.NewStyle().Foreground(lipgloss.Color(m.th.StatusError))
		sections = append(sections, notice.Render("connection lost"))
	}

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// viewWallpaper renders the configured wallpaper. The overlay shrinks it
// to make room for the chrome.
func (m *Model) viewWallpaper() string {
	if m.wall == nil || m.cfg.UI.Wallpaper == "" {
		return ""
	}
	h := m.wallpaperHeight()
	if h < 2 {
		return ""
	}
	out, err := m.wall.RenderFile(m.cfg.UI.Wallpaper, m.width, h)
	if err != nil {
		m.log.Debug("wallpaper render failed", "error", err)
		return ""
	}
	return out
}

func (m *Model) wallpaperHeight() int {
	h := (m.height - 6) / 3
	if m.chrome.MediaShrunk() {
		h /= 2
	}
	return h
}

// viewCard renders the selected carousel card. The background blends the
// theme gradient by scroll progress, and a fresh transition lights the
// border up until the style state clears.
func (m *Model) viewCard() string {
	vars := m.style.StyleVars()
	border := m.th.Dim
	if vars["swap-animation"] != "none" {
		border = m.th.Accent
	}

	i := m.car.SelectedIndex()
	body := "waiting for content"
	if s, ok := m.surfaces.Lookup(fmt.Sprintf("carousel-item-%d", i)); ok {
		if text := s.Text(); text != "" {
			body = text
		}
	}
	if dialog, ok := m.surfaces.Lookup("dialog"); ok && dialog.Text() != "" {
		body = dialog.Text()
	}

	w := m.width - 4
	if w < 10 {
		w = 10
	}
	h := m.cardHeight()

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.th.CardTitle)).
		Bold(true).
		Render(m.cardTitle(i))

	card := lipgloss.NewStyle().
		Width(w).
		Height(h).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Background(lipgloss.Color(m.car.BackgroundHex())).
		Foreground(lipgloss.Color(m.th.Foreground))

	return card.Render(title + "\n\n" + body)
}

func (m *Model) cardHeight() int {
	h := m.height - 5
	if m.wall != nil {
		h -= m.wallpaperHeight()
	}
	if m.chrome.Visible() {
		h -= 1
	}
	if m.input.Focused() {
		h -= 1
	}
	if h < 3 {
		h = 3
	}
	return h
}

// viewTabs renders one clickable label per card, highlighting the
// selected index.
func (m *Model) viewTabs() string {
	active := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.th.TabActive)).
		Bold(true).
		Underline(true)
	inactive := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.th.TabInactive))

	var tabs []string
	for i := 0; i < m.car.ItemCount(); i++ {
		label := fmt.Sprintf(" %d %s ", i+1, m.cardTitle(i))
		style := inactive
		if i == m.car.SelectedIndex() {
			style = active
		}
		tabs = append(tabs, m.zones.Mark(zoneTab(i), style.Render(label)))
	}
	return strings.Join(tabs, " ")
}
