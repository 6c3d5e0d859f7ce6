// Package app hosts the root Bubbletea model for the GUI client. Every
// stream update, key press, mouse event, and timer lands on the same
// update loop, so the controllers it owns never need locks.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/femelo/pyhtmx-gui-client/pkg/fragment"
)

// UpdateMsg delivers one streamed fragment update to the model.
type UpdateMsg fragment.Update

// StreamClosedMsg signals that the update channel was closed and no
// further server content will arrive.
type StreamClosedMsg struct{}

// waitForUpdate blocks on the stream channel and re-arms itself from the
// update loop after each delivery.
func waitForUpdate(ch <-chan fragment.Update) tea.Cmd {
	return func() tea.Msg {
		up, ok := <-ch
		if !ok {
			return StreamClosedMsg{}
		}
		return UpdateMsg(up)
	}
}
