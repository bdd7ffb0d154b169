package main

import "github.com/BurntSushi/xgb/xproto"

// Keysyms from X11/keysymdef.h that bindings may refer to by name.
const (
	XK_BackSpace = 0xff08
	XK_Tab       = 0xff09
	XK_Return    = 0xff0d
	XK_Escape    = 0xff1b
	XK_Left      = 0xff51
	XK_Up        = 0xff52
	XK_Right     = 0xff53
	XK_Down      = 0xff54
	XK_space     = 0x0020
)

var keysyms = map[string]xproto.Keysym{
	"BackSpace": XK_BackSpace,
	"Tab":       XK_Tab,
	"Return":    XK_Return,
	"Escape":    XK_Escape,
	"Left":      XK_Left,
	"Up":        XK_Up,
	"Right":     XK_Right,
	"Down":      XK_Down,
	"space":     XK_space,
}

func init() {
	// Latin-1 letters and digits map to their ASCII codes.
	for c := 'a'; c <= 'z'; c++ {
		keysyms[string(c)] = xproto.Keysym(c)
	}
	for c := '0'; c <= '9'; c++ {
		keysyms[string(c)] = xproto.Keysym(c)
	}
}
