package layout

import (
	"math"

	"github.com/intio/tilewm/client"
)

// Columns arranges clients into even columns, one per client.
func Columns(clients []*client.Client, _ client.WinID, r Region, _ uint, _ float64) []ResizeAction {
	actions := make([]ResizeAction, 0, len(clients))
	for i, col := range r.EvenColumns(len(clients)) {
		actions = append(actions, show(clients[i].ID, col))
	}
	return actions
}

// SideStack keeps up to maxMain clients in a main column on the left,
// ratio of the screen wide, and stacks the rest on the right. With
// maxMain at zero, or few enough clients, everything is stacked in
// rows across the whole region.
func SideStack(clients []*client.Client, _ client.WinID, r Region, maxMain uint, ratio float64) []ResizeAction {
	n := len(clients)
	if maxMain == 0 || uint(n) <= maxMain {
		return tile(clients, r.EvenRows(n))
	}
	main, stack := r.SplitAtWidth(uint32(math.Round(float64(r.W) * ratio)))
	regions := append(main.EvenRows(int(maxMain)), stack.EvenRows(n-int(maxMain))...)
	return tile(clients, regions)
}

// BottomStack is SideStack turned on its side: the main row sits on
// top and the remaining clients share the bottom in columns.
func BottomStack(clients []*client.Client, _ client.WinID, r Region, maxMain uint, ratio float64) []ResizeAction {
	n := len(clients)
	if maxMain == 0 || uint(n) <= maxMain {
		return tile(clients, r.EvenColumns(n))
	}
	main, stack := r.SplitAtHeight(uint32(math.Round(float64(r.H) * ratio)))
	regions := append(main.EvenColumns(int(maxMain)), stack.EvenColumns(n-int(maxMain))...)
	return tile(clients, regions)
}

func tile(clients []*client.Client, regions []Region) []ResizeAction {
	actions := make([]ResizeAction, 0, len(clients))
	for i, c := range clients {
		actions = append(actions, show(c.ID, regions[i]))
	}
	return actions
}
