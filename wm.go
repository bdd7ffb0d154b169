package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/intio/tilewm/client"
	"github.com/intio/tilewm/internal/config"
	"github.com/intio/tilewm/layout"
	"github.com/intio/tilewm/workspace"
)

// backend applies the window manager's decisions to real windows.
type backend interface {
	// Screen returns the region windows are arranged in.
	Screen() layout.Region
	// Prepare makes sure the window can be managed and subscribes to
	// its events.
	Prepare(id client.WinID) error
	Configure(id client.WinID, r layout.Region, border uint32) error
	Show(id client.WinID) error
	Hide(id client.WinID) error
	Focus(id client.WinID) error
	Unfocus(id client.WinID) error
	Close(id client.WinID, force bool) error
	Describe(id client.WinID) (name, class string)
}

// WM holds the global window manager state. Everything but the request
// channel is owned by the goroutine running Run.
type WM struct {
	cfg *config.Config
	x   backend

	workspaces []*workspace.Workspace
	active     int
	clients    client.Registry

	// Unmaps we asked for ourselves, which must not be mistaken for the
	// client withdrawing its window.
	pendingUnmaps map[client.WinID]int

	// xfocus is the client holding X input focus and the focused border
	// color, or client.None.
	xfocus client.WinID

	hub      *eventHub
	requests chan func()
	quitting bool
	spawn    func(cmd string, args ...string) error
}

// NewWM creates a window manager with one workspace per configured
// name, each with its own copy of the configured layouts.
func NewWM(cfg *config.Config, x backend) *WM {
	wm := &WM{
		cfg:           cfg,
		x:             x,
		clients:       client.Registry{},
		pendingUnmaps: map[client.WinID]int{},
		hub:           newEventHub(),
		requests:      make(chan func()),
		spawn:         spawn,
	}
	for _, name := range cfg.Workspaces {
		wm.workspaces = append(wm.workspaces, workspace.New(name, cfg.BuildLayouts()))
	}
	wm.observe()
	return wm
}

// Run processes window system events and API requests until ctx is
// done, the event source closes, or a quit command is executed.
func (wm *WM) Run(ctx context.Context, events <-chan func(*WM) error) error {
	for !wm.quitting {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-wm.requests:
			fn()
		case ev, ok := <-events:
			if !ok {
				return errors.New("event source closed")
			}
			if err := ev(wm); err != nil {
				log.Error("handling event", "err", err)
			}
		}
	}
	log.Info("quitting")
	return nil
}

// Do runs fn on the goroutine running Run and waits for it to finish.
func (wm *WM) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case wm.requests <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetActiveWorkspace returns the Workspace currently on screen.
func (wm *WM) GetActiveWorkspace() *workspace.Workspace {
	return wm.workspaces[wm.active]
}

// Manages reports whether id is a managed client.
func (wm *WM) Manages(id client.WinID) bool {
	_, ok := wm.clients[id]
	return ok
}

// Manage starts managing a window on the active workspace and focuses
// it.
func (wm *WM) Manage(id client.WinID) error {
	if wm.Manages(id) {
		return nil
	}
	if err := wm.x.Prepare(id); err != nil {
		return fmt.Errorf("cannot manage %s: %w", id, err)
	}
	name, class := wm.x.Describe(id)
	c := client.New(id, name, class, wm.active)
	// Not mapped until the first arrange shows it.
	c.Hidden = true
	wm.clients[id] = c

	ws := wm.GetActiveWorkspace()
	ws.AddClient(id)
	log.Info("managing client", "id", id, "name", name, "class", class, "workspace", ws.Name())
	wm.observe()
	wm.hub.publish(Event{Type: "manage", Workspace: ws.Name(), Client: id})

	if err := wm.arrange(); err != nil {
		return err
	}
	return wm.setFocus(id)
}

// Unmanage forgets a window, wherever it is. The client leaves its
// workspace before it leaves the registry so an arrange never sees a
// dangling id.
func (wm *WM) Unmanage(id client.WinID) error {
	c, ok := wm.clients[id]
	if !ok {
		return nil
	}
	ws := wm.workspaces[c.Workspace]
	ws.RemoveClient(id)
	delete(wm.clients, id)
	delete(wm.pendingUnmaps, id)
	if wm.xfocus == id {
		wm.xfocus = client.None
	}
	log.Info("forgetting client", "id", id, "workspace", ws.Name())
	wm.observe()
	wm.hub.publish(Event{Type: "unmanage", Workspace: ws.Name(), Client: id})

	if c.Workspace != wm.active {
		return nil
	}
	if err := wm.arrange(); err != nil {
		return err
	}
	if next, ok := ws.FocusedClient(); ok {
		return wm.setFocus(next)
	}
	return nil
}

// UnmapNotify handles a window being unmapped. Unmaps caused by hiding
// the window ourselves are swallowed.
func (wm *WM) UnmapNotify(id client.WinID) error {
	if n := wm.pendingUnmaps[id]; n > 0 {
		if n == 1 {
			delete(wm.pendingUnmaps, id)
		} else {
			wm.pendingUnmaps[id] = n - 1
		}
		return nil
	}
	return wm.Unmanage(id)
}

// FocusClient focuses a client on the active workspace, e.g. when the
// pointer enters it.
func (wm *WM) FocusClient(id client.WinID) error {
	c, ok := wm.clients[id]
	if !ok || c.Workspace != wm.active {
		return nil
	}
	prev, ok := wm.GetActiveWorkspace().FocusClient(id)
	if !ok || prev == id {
		return nil
	}
	return wm.setFocus(id)
}

// CycleClient moves focus along the client list of the active
// workspace.
func (wm *WM) CycleClient(d workspace.Direction) error {
	_, next, ok := wm.GetActiveWorkspace().CycleClient(d)
	if !ok {
		return nil
	}
	return wm.setFocus(next)
}

// DragClient moves the focused client along the client list.
func (wm *WM) DragClient(d workspace.Direction) error {
	if _, ok := wm.GetActiveWorkspace().DragClient(d); !ok {
		return nil
	}
	return wm.arrange()
}

// CycleLayout switches the active workspace to its next or previous
// layout.
func (wm *WM) CycleLayout(d workspace.Direction) error {
	ws := wm.GetActiveWorkspace()
	symbol := ws.CycleLayout(d)
	log.Debug("layout changed", "workspace", ws.Name(), "layout", symbol)
	wm.hub.publish(Event{Type: "layout", Workspace: ws.Name(), Layout: symbol})
	return wm.arrange()
}

// UpdateMaxMain changes how many clients the active layout keeps in its
// main area.
func (wm *WM) UpdateMaxMain(c layout.Change) error {
	wm.GetActiveWorkspace().UpdateMaxMain(c)
	return wm.arrange()
}

// UpdateMainRatio grows or shrinks the main area of the active layout
// by the configured step.
func (wm *WM) UpdateMainRatio(c layout.Change) error {
	wm.GetActiveWorkspace().UpdateMainRatio(c, wm.cfg.RatioStep)
	return wm.arrange()
}

// KillFocused asks the focused client to close, or destroys its window
// when force is set.
func (wm *WM) KillFocused(force bool) error {
	id, ok := wm.GetActiveWorkspace().FocusedClient()
	if !ok {
		log.Info("tried to close client, but no client is focused")
		return nil
	}
	return wm.x.Close(id, force)
}

// SwitchWorkspace hides the active workspace and shows workspace i.
func (wm *WM) SwitchWorkspace(i int) error {
	if i < 0 || i >= len(wm.workspaces) {
		return fmt.Errorf("no workspace %d", i)
	}
	if i == wm.active {
		return nil
	}
	var errs []error
	for _, c := range wm.clients.OnWorkspace(wm.active) {
		errs = append(errs, wm.hide(c))
	}
	wm.active = i
	ws := wm.GetActiveWorkspace()
	log.Debug("switched workspace", "workspace", ws.Name())
	wm.hub.publish(Event{Type: "workspace", Workspace: ws.Name(), Layout: ws.LayoutSymbol()})

	errs = append(errs, wm.arrange())
	if id, ok := ws.FocusedClient(); ok {
		errs = append(errs, wm.setFocus(id))
	} else {
		errs = append(errs, wm.clearFocus())
	}
	return errors.Join(errs...)
}

// SendToWorkspace moves the focused client to workspace i.
func (wm *WM) SendToWorkspace(i int) error {
	if i < 0 || i >= len(wm.workspaces) {
		return fmt.Errorf("no workspace %d", i)
	}
	if i == wm.active {
		return nil
	}
	ws := wm.GetActiveWorkspace()
	id, ok := ws.RemoveFocusedClient()
	if !ok {
		return nil
	}
	c := wm.clients[id]
	c.Workspace = i
	wm.workspaces[i].AddClient(id)
	wm.observe()
	wm.hub.publish(Event{Type: "move", Workspace: wm.workspaces[i].Name(), Client: id})

	errs := []error{wm.hide(c), wm.arrange()}
	if next, ok := ws.FocusedClient(); ok {
		errs = append(errs, wm.setFocus(next))
	} else {
		errs = append(errs, wm.clearFocus())
	}
	return errors.Join(errs...)
}

// arrange applies the active layout to the active workspace.
func (wm *WM) arrange() error {
	ws := wm.GetActiveWorkspace()
	conf := ws.LayoutConf()
	border := wm.cfg.BorderWidth
	var errs []error
	for _, a := range ws.Arrange(wm.x.Screen(), wm.clients) {
		c := wm.clients[a.ID]
		if a.Region == nil {
			errs = append(errs, wm.hide(c))
			continue
		}
		r := *a.Region
		if !conf.Gapless {
			r = r.Shrink(wm.cfg.Gap)
		}
		// X draws the border outside of the window geometry.
		r.W = shrinkBy(r.W, 2*border)
		r.H = shrinkBy(r.H, 2*border)
		errs = append(errs, wm.x.Configure(a.ID, r, border), wm.show(c))
	}
	return errors.Join(errs...)
}

func shrinkBy(v, by uint32) uint32 {
	if v <= by {
		return 1
	}
	return v - by
}

func (wm *WM) show(c *client.Client) error {
	if !c.Hidden {
		return nil
	}
	c.Hidden = false
	return wm.x.Show(c.ID)
}

func (wm *WM) hide(c *client.Client) error {
	if c.Hidden {
		return nil
	}
	c.Hidden = true
	wm.pendingUnmaps[c.ID]++
	if err := wm.x.Hide(c.ID); err != nil {
		wm.pendingUnmaps[c.ID]--
		return err
	}
	return nil
}

// setFocus moves input focus to next, taking it away from whichever
// client held it. Layouts that follow focus are re-applied.
func (wm *WM) setFocus(next client.WinID) error {
	if prev := wm.xfocus; prev != next {
		if err := wm.clearFocus(); err != nil {
			log.Warn("unfocusing client", "id", prev, "err", err)
		}
	}
	wm.xfocus = next
	ws := wm.GetActiveWorkspace()
	wm.hub.publish(Event{Type: "focus", Workspace: ws.Name(), Client: next})
	if ws.LayoutConf().FollowFocus {
		if err := wm.arrange(); err != nil {
			return err
		}
	}
	return wm.x.Focus(next)
}

// clearFocus paints the client holding focus as unfocused and forgets
// it.
func (wm *WM) clearFocus() error {
	prev := wm.xfocus
	wm.xfocus = client.None
	if prev == client.None || !wm.Manages(prev) {
		return nil
	}
	return wm.x.Unfocus(prev)
}

// observe refreshes the per-workspace client gauges.
func (wm *WM) observe() {
	for _, ws := range wm.workspaces {
		workspaceClients.WithLabelValues(ws.Name()).Set(float64(ws.Len()))
	}
}

// WorkspaceState is a read-only view of a workspace for the API.
type WorkspaceState struct {
	Index   int            `json:"index"`
	Name    string         `json:"name"`
	Active  bool           `json:"active"`
	Layout  string         `json:"layout"`
	Layouts []string       `json:"layouts"`
	MaxMain uint           `json:"max_main"`
	Ratio   float64        `json:"ratio"`
	Focused client.WinID   `json:"focused,omitempty"`
	Clients []client.WinID `json:"clients"`
}

// Snapshot describes every workspace.
func (wm *WM) Snapshot() []WorkspaceState {
	out := make([]WorkspaceState, 0, len(wm.workspaces))
	for i, ws := range wm.workspaces {
		l := ws.Layout()
		focused, _ := ws.FocusedClient()
		out = append(out, WorkspaceState{
			Index:   i,
			Name:    ws.Name(),
			Active:  i == wm.active,
			Layout:  l.Symbol,
			Layouts: ws.LayoutSymbols(),
			MaxMain: l.MaxMain,
			Ratio:   l.Ratio,
			Focused: focused,
			Clients: ws.ClientIDs(),
		})
	}
	return out
}

// ClientList returns copies of all managed clients, in workspace order.
func (wm *WM) ClientList() []client.Client {
	var out []client.Client
	for _, ws := range wm.workspaces {
		for id := range ws.Clients() {
			out = append(out, *wm.clients[id])
		}
	}
	return out
}

// workspaceIndex resolves a workspace by name, falling back to its
// 1-based position.
func (wm *WM) workspaceIndex(arg string) (int, error) {
	for i, ws := range wm.workspaces {
		if ws.Name() == arg {
			return i, nil
		}
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(wm.workspaces) {
		return 0, fmt.Errorf("no workspace %q", arg)
	}
	return n - 1, nil
}
