package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/charmbracelet/log"

	"github.com/intio/tilewm/client"
	"github.com/intio/tilewm/internal/config"
	"github.com/intio/tilewm/layout"
)

var errAnotherWM = errors.New("another WM already running")

// xBackend talks to the X server on behalf of the WM.
type xBackend struct {
	xc    *xgb.Conn
	xu    *xgbutil.XUtil
	xroot xproto.ScreenInfo

	// Only the first attached screen is used.
	screen layout.Region

	focusedPixel   uint32
	unfocusedPixel uint32

	atomProtocols    xproto.Atom
	atomDeleteWindow xproto.Atom
	atomTakeFocus    xproto.Atom

	grabs  []*Grab
	keymap [256][]xproto.Keysym
}

// dialX connects to the X server and becomes its window manager.
func dialX(cfg *config.Config) (*xBackend, error) {
	xc, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connecting to X: %w", err)
	}
	x := &xBackend{xc: xc}
	if err := x.init(cfg); err != nil {
		xc.Close()
		return nil, err
	}
	return x, nil
}

func (x *xBackend) init(cfg *config.Config) (err error) {
	if x.xu, err = xgbutil.NewConnXgb(x.xc); err != nil {
		return err
	}
	setup := xproto.Setup(x.xc)
	if setup == nil || len(setup.Roots) < 1 {
		return errors.New("could not parse X setup info")
	}
	x.xroot = setup.Roots[0]

	if x.focusedPixel, err = config.ParseColor(cfg.FocusedBorder); err != nil {
		return err
	}
	if x.unfocusedPixel, err = config.ParseColor(cfg.UnfocusedBorder); err != nil {
		return err
	}
	if err := xinerama.Init(x.xc); err != nil {
		return fmt.Errorf("xinerama: %w", err)
	}
	if err := x.updateScreens(); err != nil {
		return err
	}
	if err := x.initAtoms(); err != nil {
		return err
	}

	if err := xproto.ChangeWindowAttributesChecked(
		x.xc,
		x.xroot.Root,
		xproto.CwEventMask,
		[]uint32{
			xproto.EventMaskKeyPress |
				xproto.EventMaskStructureNotify |
				xproto.EventMaskSubstructureRedirect |
				xproto.EventMaskSubstructureNotify,
		},
	).Check(); err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return errAnotherWM
		}
		return err
	}
	return nil
}

// Disconnect drops the X connection.
func (x *xBackend) Disconnect() {
	x.xc.Close()
}

// Screen returns the area of the first attached screen.
func (x *xBackend) Screen() layout.Region {
	return x.screen
}

func (x *xBackend) updateScreens() error {
	reply, err := xinerama.QueryScreens(x.xc).Reply()
	if err != nil {
		return fmt.Errorf("querying screens: %w", err)
	}
	if len(reply.ScreenInfo) == 0 {
		x.screen = layout.Region{
			W: uint32(x.xroot.WidthInPixels),
			H: uint32(x.xroot.HeightInPixels),
		}
	} else {
		s := reply.ScreenInfo[0]
		x.screen = layout.Region{
			X: uint32(s.XOrg),
			Y: uint32(s.YOrg),
			W: uint32(s.Width),
			H: uint32(s.Height),
		}
	}
	log.Debug("screen updated", "region", x.screen, "screens", len(reply.ScreenInfo))
	return nil
}

// existingWindows lists the mapped top-level windows that were there
// before we started.
func (x *xBackend) existingWindows() ([]client.WinID, error) {
	tree, err := xproto.QueryTree(x.xc, x.xroot.Root).Reply()
	if err != nil {
		return nil, err
	}
	var ids []client.WinID
	for _, win := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(x.xc, win).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		ids = append(ids, client.WinID(win))
	}
	return ids, nil
}

// events reads X events and turns them into WM operations. The channel
// is closed when the connection goes away.
func (x *xBackend) events() <-chan func(*WM) error {
	ch := make(chan func(*WM) error)
	go func() {
		defer close(ch)
		for {
			xev, xerr := x.xc.WaitForEvent()
			if xev == nil && xerr == nil {
				log.Warn("X connection closed")
				return
			}
			if xerr != nil {
				log.Warn("X error", "err", xerr)
				continue
			}
			if h := x.handler(xev); h != nil {
				ch <- h
			}
		}
	}()
	return ch
}
