// Package workspace tracks the clients of a single named workspace,
// their order and focus, and the layouts available to arrange them.
package workspace

import (
	"fmt"
	"iter"

	"github.com/charmbracelet/log"

	"github.com/intio/tilewm/client"
	"github.com/intio/tilewm/internal/ring"
	"github.com/intio/tilewm/layout"
)

// Direction moves focus or a dragged client along the client list.
type Direction = ring.Direction

const (
	Forward  = ring.Forward
	Backward = ring.Backward
)

// Lookup resolves client ids to their metadata.
type Lookup interface {
	Get(client.WinID) (*client.Client, bool)
}

// Workspace represents a named set of windows displayed at once,
// arranged using one of its Layouts. Clients are referenced by id only;
// their metadata lives with the window manager.
type Workspace struct {
	name    string
	clients *ring.Ring[client.WinID]
	layouts *ring.Ring[*layout.Layout]
}

// New creates an empty Workspace. It panics if layouts is empty: a
// workspace that cannot arrange anything is a configuration bug.
func New(name string, layouts []*layout.Layout) *Workspace {
	if len(layouts) == 0 {
		panic(fmt.Sprintf("%s: require at least one layout", name))
	}
	return &Workspace{
		name:    name,
		clients: ring.New[client.WinID](nil),
		layouts: ring.New(layouts),
	}
}

// Name returns the workspace name given on creation.
func (w *Workspace) Name() string {
	return w.name
}

// Len returns the number of clients on this workspace.
func (w *Workspace) Len() int {
	return w.clients.Len()
}

// Clients iterates over the client ids in position order.
func (w *Workspace) Clients() iter.Seq[client.WinID] {
	return w.clients.All()
}

// ClientIDs returns a snapshot of the client ids in position order.
func (w *Workspace) ClientIDs() []client.WinID {
	return w.clients.Elements()
}

// Contains reports whether this workspace is managing that client.
func (w *Workspace) Contains(id client.WinID) bool {
	for c := range w.clients.All() {
		if c == id {
			return true
		}
	}
	return false
}

// FocusedClient returns the focused client, if there is one.
func (w *Workspace) FocusedClient() (client.WinID, bool) {
	return w.clients.Focused()
}

// AddClient puts a new client at the top of the stack and focuses it.
func (w *Workspace) AddClient(id client.WinID) {
	w.clients.Insert(0, id)
}

// FocusClient focuses the client with the given id and returns the
// previously focused client. The previous focus is reported even when
// id is not on this workspace, in which case focus does not move.
func (w *Workspace) FocusClient(id client.WinID) (client.WinID, bool) {
	prev, ok := w.clients.Focused()
	if !ok {
		return client.None, false
	}
	w.clients.FocusBy(func(c client.WinID) bool { return c == id })
	return prev, true
}

// RemoveClient removes a client, keeping focus at the same position in
// the stack. It returns the removed client if there was one.
func (w *Workspace) RemoveClient(id client.WinID) (client.WinID, bool) {
	return w.clients.RemoveBy(func(c client.WinID) bool { return c == id })
}

// RemoveFocusedClient removes the focused client, keeping focus at the
// same position in the stack.
func (w *Workspace) RemoveFocusedClient() (client.WinID, bool) {
	return w.clients.RemoveFocused()
}

// Arrange runs the current layout over the clients of this workspace
// and returns the resulting actions for the window manager to apply.
// Every client on the workspace must be known to clients; a missing
// entry is a bookkeeping bug in the caller and panics.
func (w *Workspace) Arrange(r layout.Region, clients Lookup) []layout.ResizeAction {
	if w.clients.Len() == 0 {
		return nil
	}
	resolved := make([]*client.Client, 0, w.clients.Len())
	for id := range w.clients.All() {
		c, ok := clients.Get(id)
		if !ok {
			panic(fmt.Sprintf("workspace %q: client %s is not registered", w.name, id))
		}
		resolved = append(resolved, c)
	}
	l := w.Layout()
	log.Debug("arranging workspace",
		"workspace", w.name,
		"layout", l.Symbol,
		"clients", len(resolved),
	)
	focused, _ := w.FocusedClient()
	return l.Arrange(resolved, focused, r)
}

// Layout returns the active layout.
func (w *Workspace) Layout() *layout.Layout {
	l, _ := w.layouts.Focused()
	return l
}

// CycleLayout switches to the next or previous layout and returns its
// symbol.
func (w *Workspace) CycleLayout(d Direction) string {
	w.layouts.CycleFocus(d)
	return w.LayoutSymbol()
}

// LayoutSymbol returns the symbol of the active layout.
func (w *Workspace) LayoutSymbol() string {
	return w.Layout().Symbol
}

// LayoutSymbols returns the symbols of all layouts in cycle order.
func (w *Workspace) LayoutSymbols() []string {
	symbols := make([]string, 0, w.layouts.Len())
	for l := range w.layouts.All() {
		symbols = append(symbols, l.Symbol)
	}
	return symbols
}

// LayoutConf returns the Conf of the active layout, which the window
// manager uses to decide when and how to apply it.
func (w *Workspace) LayoutConf() layout.Conf {
	return w.Layout().Conf
}

// CycleClient moves focus to the next or previous client, returning the
// previous and new focus. It refuses to wrap around when the active
// layout follows focus, and needs at least two clients.
func (w *Workspace) CycleClient(d Direction) (prev, next client.WinID, ok bool) {
	if w.clients.Len() < 2 {
		return client.None, client.None, false
	}
	if w.LayoutConf().FollowFocus && w.clients.WouldWrap(d) {
		return client.None, client.None, false
	}
	prev, _ = w.clients.Focused()
	next, _ = w.clients.CycleFocus(d)
	if prev == next {
		return client.None, client.None, false
	}
	return prev, next, true
}

// DragClient moves the focused client through the stack, keeping it
// focused. The same wrapping rule as CycleClient applies.
func (w *Workspace) DragClient(d Direction) (client.WinID, bool) {
	if w.LayoutConf().FollowFocus && w.clients.WouldWrap(d) {
		return client.None, false
	}
	return w.clients.DragFocused(d)
}

// UpdateMaxMain adjusts the number of main area clients of the active
// layout.
func (w *Workspace) UpdateMaxMain(c layout.Change) {
	if l := w.layouts.FocusedPtr(); l != nil {
		(*l).UpdateMaxMain(c)
	}
}

// UpdateMainRatio adjusts the main area ratio of the active layout.
func (w *Workspace) UpdateMainRatio(c layout.Change, step float64) {
	if l := w.layouts.FocusedPtr(); l != nil {
		(*l).UpdateMainRatio(c, step)
	}
}
