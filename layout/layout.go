// Package layout describes how a Workspace arranges its clients on a
// screen: a Layout pairs a display symbol and a small configuration
// with an arrangement function and its adjustable parameters.
package layout

import (
	"sort"

	"github.com/intio/tilewm/client"
)

// Conf tells the window manager when and how a Layout should be
// applied.
type Conf struct {
	// FollowFocus layouts are re-applied on every focus change and
	// never let focus wrap from one end of the client list to the other.
	FollowFocus bool `json:"follow_focus"`
	// Gapless layouts ignore the configured gap between windows.
	Gapless bool `json:"gapless"`
}

// ResizeAction places a single client. A nil Region means the client
// should not be shown at all.
type ResizeAction struct {
	ID     client.WinID `json:"id"`
	Region *Region      `json:"region,omitempty"`
}

func show(id client.WinID, r Region) ResizeAction {
	return ResizeAction{ID: id, Region: &r}
}

func hide(id client.WinID) ResizeAction {
	return ResizeAction{ID: id}
}

// Func arranges clients (in workspace order) inside r. It must return
// exactly one ResizeAction per client. focused is client.None when no
// client has focus.
type Func func(clients []*client.Client, focused client.WinID, r Region, maxMain uint, ratio float64) []ResizeAction

// Change is a directional adjustment of a Layout parameter.
type Change int

const (
	More = Change(+1)
	Less = Change(-1)
)

// ParseChange maps "more"/"less" (or "inc"/"dec") to a Change.
func ParseChange(s string) (Change, bool) {
	switch s {
	case "more", "inc", "+":
		return More, true
	case "less", "dec", "-":
		return Less, true
	}
	return 0, false
}

// Layout arranges clients in a Workspace (e.g. columns, tiles, etc).
type Layout struct {
	Symbol  string
	Conf    Conf
	MaxMain uint
	Ratio   float64
	fn      Func
}

// New creates a Layout. ratio is clamped to [0, 1].
func New(symbol string, conf Conf, fn Func, maxMain uint, ratio float64) *Layout {
	return &Layout{
		Symbol:  symbol,
		Conf:    conf,
		MaxMain: maxMain,
		Ratio:   clamp(ratio),
		fn:      fn,
	}
}

// Arrange runs the layout function over clients.
func (l *Layout) Arrange(clients []*client.Client, focused client.WinID, r Region) []ResizeAction {
	return l.fn(clients, focused, r, l.MaxMain, l.Ratio)
}

// UpdateMaxMain grows or shrinks the number of clients in the main
// area. It never goes below zero.
func (l *Layout) UpdateMaxMain(c Change) {
	switch c {
	case More:
		l.MaxMain++
	case Less:
		if l.MaxMain > 0 {
			l.MaxMain--
		}
	}
}

// UpdateMainRatio moves the share of the screen given to the main area
// by step, staying within [0, 1].
func (l *Layout) UpdateMainRatio(c Change, step float64) {
	switch c {
	case More:
		l.Ratio = clamp(l.Ratio + step)
	case Less:
		l.Ratio = clamp(l.Ratio - step)
	}
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

var builtins = map[string]Func{
	"side_stack":   SideStack,
	"bottom_stack": BottomStack,
	"monocle":      Monocle,
	"columns":      Columns,
}

// ByName looks up a built-in layout function.
func ByName(kind string) (Func, bool) {
	fn, ok := builtins[kind]
	return fn, ok
}

// Kinds lists the names accepted by ByName.
func Kinds() []string {
	kinds := make([]string, 0, len(builtins))
	for k := range builtins {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
