package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/charmbracelet/log"
)

// Grab represents a key grab and the command it runs.
type Grab struct {
	sym       xproto.Keysym
	modifiers uint16
	codes     []xproto.Keycode
	command   string
}

// grabModMask selects the modifiers that take part in matching a key
// press against a Grab. CapsLock and NumLock are masked out here, and
// grabbed in every combination by initKeys, since X only delivers a
// passive grab on an exact modifier match.
const grabModMask = xproto.ModMaskShift | xproto.ModMaskControl | xproto.ModMask1 | xproto.ModMask4

// lockMasks are the CapsLock and NumLock (Mod2) states a binding must
// keep working under.
var lockMasks = []uint16{
	0,
	xproto.ModMaskLock,
	xproto.ModMask2,
	xproto.ModMaskLock | xproto.ModMask2,
}

// grabModifiers returns every modifier state grabbed for g.
func (g *Grab) grabModifiers() []uint16 {
	mods := make([]uint16, 0, len(lockMasks))
	for _, lock := range lockMasks {
		mods = append(mods, g.modifiers|lock)
	}
	return mods
}

var modifierNames = map[string]uint16{
	"S": xproto.ModMaskShift,
	"C": xproto.ModMaskControl,
	"M": xproto.ModMask1,
	"A": xproto.ModMask1,
	"W": xproto.ModMask4,
	"4": xproto.ModMask4,
}

// parseKey parses bindings such as "M-S-Return" into modifiers and a
// keysym.
func parseKey(binding string) (uint16, xproto.Keysym, error) {
	parts := strings.Split(binding, "-")
	var mods uint16
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierNames[p]
		if !ok {
			return 0, 0, fmt.Errorf("key %q: unknown modifier %q", binding, p)
		}
		mods |= m
	}
	name := parts[len(parts)-1]
	sym, ok := keysyms[name]
	if !ok {
		return 0, 0, fmt.Errorf("key %q: unknown key %q", binding, name)
	}
	return mods, sym, nil
}

// parseBindings turns the configured bindings into Grabs, checking that
// every command exists. Grabs come out sorted by key for stable logs.
func parseBindings(bindings map[string]string) ([]*Grab, error) {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	grabs := make([]*Grab, 0, len(keys))
	for _, k := range keys {
		mods, sym, err := parseKey(k)
		if err != nil {
			return nil, err
		}
		if err := checkCommand(bindings[k]); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		grabs = append(grabs, &Grab{sym: sym, modifiers: mods, command: bindings[k]})
	}
	return grabs, nil
}

func (x *xBackend) initKeys(bindings map[string]string) error {
	const (
		loKey = 8
		hiKey = 255
	)

	grabs, err := parseBindings(bindings)
	if err != nil {
		return err
	}
	x.grabs = grabs

	reply, err := xproto.GetKeyboardMapping(x.xc, loKey, hiKey-loKey+1).Reply()
	if err != nil {
		return err
	}
	if reply == nil {
		return fmt.Errorf("could not load keyboard map")
	}
	per := int(reply.KeysymsPerKeycode)
	for i := 0; i < hiKey-loKey+1; i++ {
		x.keymap[loKey+i] = reply.Keysyms[i*per : (i+1)*per]
	}

	for i, syms := range x.keymap {
		for _, sym := range syms {
			for _, g := range x.grabs {
				if g.sym == sym {
					g.codes = append(g.codes, xproto.Keycode(i))
				}
			}
		}
	}
	for _, g := range x.grabs {
		if len(g.codes) == 0 {
			log.Warn("no keycode for binding", "command", g.command, "keysym", g.sym)
		}
		for _, code := range g.codes {
			for _, mods := range g.grabModifiers() {
				if err := xproto.GrabKeyChecked(
					x.xc,
					false,
					x.xroot.Root,
					mods,
					code,
					xproto.GrabModeAsync,
					xproto.GrabModeAsync,
				).Check(); err != nil {
					log.Warn("grabbing key", "command", g.command, "modifiers", mods, "err", err)
				}
			}
		}
	}
	return nil
}
