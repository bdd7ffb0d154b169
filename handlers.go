package main

import (
	"slices"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/charmbracelet/log"

	"github.com/intio/tilewm/client"
)

// handler translates an X event into an operation to run on the WM
// loop, or nil if the event is of no interest.
func (x *xBackend) handler(xev xgb.Event) func(*WM) error {
	switch e := xev.(type) {
	case xproto.KeyPressEvent:
		return x.handleKeyPressEvent(e)
	case xproto.MapRequestEvent:
		return x.handleMapRequestEvent(e)
	case xproto.DestroyNotifyEvent:
		return func(wm *WM) error {
			return wm.Unmanage(client.WinID(e.Window))
		}
	case xproto.UnmapNotifyEvent:
		return func(wm *WM) error {
			return wm.UnmapNotify(client.WinID(e.Window))
		}
	case xproto.EnterNotifyEvent:
		return func(wm *WM) error {
			return wm.FocusClient(client.WinID(e.Event))
		}
	case xproto.ConfigureRequestEvent:
		return x.handleConfigureRequestEvent(e)
	case xproto.ConfigureNotifyEvent:
		if e.Window != x.xroot.Root {
			return nil
		}
		return func(wm *WM) error {
			if err := x.updateScreens(); err != nil {
				return err
			}
			return wm.arrange()
		}
	}
	return nil
}

func (x *xBackend) handleKeyPressEvent(e xproto.KeyPressEvent) func(*WM) error {
	state := e.State & grabModMask
	for _, g := range x.grabs {
		if g.modifiers == state && slices.Contains(g.codes, e.Detail) {
			line := g.command
			return func(wm *WM) error {
				return wm.Exec(line)
			}
		}
	}
	return nil
}

func (x *xBackend) handleMapRequestEvent(e xproto.MapRequestEvent) func(*WM) error {
	return func(wm *WM) error {
		attrs, err := xproto.GetWindowAttributes(x.xc, e.Window).Reply()
		if err == nil && attrs.OverrideRedirect {
			return xproto.MapWindowChecked(x.xc, e.Window).Check()
		}
		return wm.Manage(client.WinID(e.Window))
	}
}

// handleConfigureRequestEvent lets unmanaged windows configure
// themselves as they please. Managed windows get the layout's geometry
// re-applied instead.
func (x *xBackend) handleConfigureRequestEvent(e xproto.ConfigureRequestEvent) func(*WM) error {
	return func(wm *WM) error {
		if wm.Manages(client.WinID(e.Window)) {
			return wm.arrange()
		}
		var values []uint32
		if e.ValueMask&xproto.ConfigWindowX != 0 {
			values = append(values, uint32(e.X))
		}
		if e.ValueMask&xproto.ConfigWindowY != 0 {
			values = append(values, uint32(e.Y))
		}
		if e.ValueMask&xproto.ConfigWindowWidth != 0 {
			values = append(values, uint32(e.Width))
		}
		if e.ValueMask&xproto.ConfigWindowHeight != 0 {
			values = append(values, uint32(e.Height))
		}
		if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
			values = append(values, uint32(e.BorderWidth))
		}
		if e.ValueMask&xproto.ConfigWindowSibling != 0 {
			values = append(values, uint32(e.Sibling))
		}
		if e.ValueMask&xproto.ConfigWindowStackMode != 0 {
			values = append(values, uint32(e.StackMode))
		}
		log.Debug("configure request", "window", e.Window, "mask", e.ValueMask)
		return xproto.ConfigureWindowChecked(x.xc, e.Window, e.ValueMask, values).Check()
	}
}
