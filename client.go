package main

import (
	"strings"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/charmbracelet/log"

	"github.com/intio/tilewm/client"
	"github.com/intio/tilewm/layout"
)

// Prepare ensures that we can manage this window and asks for
// notifications when it is deleted or entered.
func (x *xBackend) Prepare(id client.WinID) error {
	win := xproto.Window(id)
	if err := xproto.ChangeWindowAttributesChecked(
		x.xc,
		win,
		xproto.CwBorderPixel|xproto.CwEventMask,
		[]uint32{
			x.unfocusedPixel,
			xproto.EventMaskStructureNotify |
				xproto.EventMaskEnterWindow,
		},
	).Check(); err != nil {
		return err
	}
	return nil
}

// Configure sends a configuration request to inflict the layout's
// decision on the real world.
func (x *xBackend) Configure(id client.WinID, r layout.Region, border uint32) error {
	return xproto.ConfigureWindowChecked(
		x.xc,
		xproto.Window(id),
		xproto.ConfigWindowX|
			xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|
			xproto.ConfigWindowHeight|
			xproto.ConfigWindowBorderWidth,
		[]uint32{
			r.X,
			r.Y,
			max(r.W, 1),
			max(r.H, 1),
			border,
		},
	).Check()
}

// Show requests the client to show up.
func (x *xBackend) Show(id client.WinID) error {
	return xproto.MapWindowChecked(x.xc, xproto.Window(id)).Check()
}

// Hide requests the client to unmap.
func (x *xBackend) Hide(id client.WinID) error {
	return xproto.UnmapWindowChecked(x.xc, xproto.Window(id)).Check()
}

// Focus gives the client input focus, following ICCCM's WM_TAKE_FOCUS
// protocol when the client supports it.
func (x *xBackend) Focus(id client.WinID) error {
	win := xproto.Window(id)
	if err := x.setBorder(win, x.focusedPixel); err != nil {
		log.Debug("setting border", "id", id, "err", err)
	}
	if x.supportsProtocol(win, protoTakeFocus) {
		if err := x.sendProtocol(win, x.atomTakeFocus); err != nil {
			return err
		}
	} else if err := xproto.SetInputFocusChecked(
		x.xc,
		xproto.InputFocusPointerRoot, // revert to
		win,                          // focus
		xproto.TimeCurrentTime,       // time
	).Check(); err != nil {
		return err
	}
	if err := ewmh.ActiveWindowSet(x.xu, win); err != nil {
		log.Debug("setting _NET_ACTIVE_WINDOW", "id", id, "err", err)
	}
	return nil
}

// Unfocus paints the client's border in the unfocused color.
func (x *xBackend) Unfocus(id client.WinID) error {
	return x.setBorder(xproto.Window(id), x.unfocusedPixel)
}

func (x *xBackend) setBorder(win xproto.Window, pixel uint32) error {
	return xproto.ChangeWindowAttributesChecked(
		x.xc,
		win,
		xproto.CwBorderPixel,
		[]uint32{pixel},
	).Check()
}

// Close asks the client to close via WM_DELETE_WINDOW, or destroys its
// window when force is set or the client does not follow ICCCM.
func (x *xBackend) Close(id client.WinID, force bool) error {
	win := xproto.Window(id)
	if !force && x.supportsProtocol(win, protoDeleteWindow) {
		return x.sendProtocol(win, x.atomDeleteWindow)
	}
	return xproto.DestroyWindowChecked(x.xc, win).Check()
}

// Describe returns the window title and class, preferring the EWMH
// title over the ICCCM one.
func (x *xBackend) Describe(id client.WinID) (name, class string) {
	win := xproto.Window(id)
	if title, err := ewmh.WmNameGet(x.xu, win); err == nil {
		name = strings.TrimSpace(title)
	}
	if name == "" {
		if title, err := icccm.WmNameGet(x.xu, win); err == nil {
			name = strings.TrimSpace(title)
		}
	}
	if wc, err := icccm.WmClassGet(x.xu, win); err == nil && wc != nil {
		class = wc.Class
	}
	return name, class
}

// sendProtocol delivers an ICCCM 4.2.8 ClientMessage.
func (x *xBackend) sendProtocol(win xproto.Window, atom xproto.Atom) error {
	t := time.Now().Unix()
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   x.atomProtocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(atom),
			uint32(t),
			0,
			0,
			0,
		}),
	}
	return xproto.SendEventChecked(
		x.xc,
		false,                   // propagate
		win,                     // destination
		xproto.EventMaskNoEvent, // eventmask
		string(ev.Bytes()),      // event
	).Check()
}
