package main

import (
	"fmt"
	"slices"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
)

// ICCCM protocol names clients may list in WM_PROTOCOLS.
const (
	protoDeleteWindow = "WM_DELETE_WINDOW"
	protoTakeFocus    = "WM_TAKE_FOCUS"
)

func (x *xBackend) initAtoms() error {
	for name, dst := range map[string]*xproto.Atom{
		"WM_PROTOCOLS":    &x.atomProtocols,
		protoDeleteWindow: &x.atomDeleteWindow,
		protoTakeFocus:    &x.atomTakeFocus,
	} {
		atom, err := xprop.Atm(x.xu, name)
		if err != nil {
			return fmt.Errorf("interning %s: %w", name, err)
		}
		*dst = atom
	}
	return nil
}

// supportsProtocol reports whether win lists proto in WM_PROTOCOLS.
// Windows without the property don't follow ICCCM.
func (x *xBackend) supportsProtocol(win xproto.Window, proto string) bool {
	protos, err := icccm.WmProtocolsGet(x.xu, win)
	if err != nil {
		return false
	}
	return slices.Contains(protos, proto)
}
