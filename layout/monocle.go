package layout

import (
	"github.com/intio/tilewm/client"
)

// Monocle displays only the focused client, maximized. Every other
// client is hidden. Without a focus hint the first client is shown.
func Monocle(clients []*client.Client, focused client.WinID, r Region, _ uint, _ float64) []ResizeAction {
	if len(clients) == 0 {
		return nil
	}
	shown := clients[0].ID
	for _, c := range clients {
		if c.ID == focused {
			shown = focused
			break
		}
	}
	actions := make([]ResizeAction, 0, len(clients))
	for _, c := range clients {
		if c.ID == shown {
			actions = append(actions, show(c.ID, r))
		} else {
			actions = append(actions, hide(c.ID))
		}
	}
	return actions
}
