package main

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intio/tilewm/internal/config"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		binding string
		mods    uint16
		sym     xproto.Keysym
	}{
		{"a", 0, 'a'},
		{"M-j", xproto.ModMask1, 'j'},
		{"M-S-Return", xproto.ModMask1 | xproto.ModMaskShift, XK_Return},
		{"C-A-Tab", xproto.ModMaskControl | xproto.ModMask1, XK_Tab},
		{"W-space", xproto.ModMask4, XK_space},
		{"4-1", xproto.ModMask4, '1'},
	}
	for _, tt := range tests {
		t.Run(tt.binding, func(t *testing.T) {
			mods, sym, err := parseKey(tt.binding)
			require.NoError(t, err)
			assert.Equal(t, tt.mods, mods)
			assert.Equal(t, tt.sym, sym)
		})
	}
}

func TestParseKeyErrors(t *testing.T) {
	for _, binding := range []string{"", "X-a", "M-", "M-Hyper", "M-S"} {
		_, _, err := parseKey(binding)
		assert.Error(t, err, binding)
	}
}

func TestParseBindings(t *testing.T) {
	grabs, err := parseBindings(map[string]string{
		"M-k": "cycle_client backward",
		"M-j": "cycle_client forward",
	})
	require.NoError(t, err)
	require.Len(t, grabs, 2)
	assert.Equal(t, "cycle_client forward", grabs[0].command)
	assert.Equal(t, xproto.Keysym('j'), grabs[0].sym)
	assert.Equal(t, uint16(xproto.ModMask1), grabs[0].modifiers)

	_, err = parseBindings(map[string]string{"M-j": "teleport"})
	assert.ErrorContains(t, err, "unknown command")

	_, err = parseBindings(map[string]string{"Q-j": "quit"})
	assert.ErrorContains(t, err, "unknown modifier")
}

func TestGrabModifiersCoverLockKeys(t *testing.T) {
	g := &Grab{modifiers: xproto.ModMask1 | xproto.ModMaskShift}
	base := uint16(xproto.ModMask1 | xproto.ModMaskShift)
	assert.ElementsMatch(t, []uint16{
		base,
		base | xproto.ModMaskLock,
		base | xproto.ModMask2,
		base | xproto.ModMaskLock | xproto.ModMask2,
	}, g.grabModifiers())

	// Every grabbed state maps back onto the binding once locks are
	// masked out.
	for _, mods := range g.grabModifiers() {
		assert.Equal(t, g.modifiers, mods&grabModMask)
	}
}

func TestKeyPressIgnoresLockKeys(t *testing.T) {
	x := &xBackend{grabs: []*Grab{{
		modifiers: xproto.ModMask1,
		codes:     []xproto.Keycode{44},
		command:   "cycle_client forward",
	}}}
	for _, state := range []uint16{
		xproto.ModMask1,
		xproto.ModMask1 | xproto.ModMaskLock,
		xproto.ModMask1 | xproto.ModMask2,
		xproto.ModMask1 | xproto.ModMaskLock | xproto.ModMask2,
	} {
		assert.NotNil(t, x.handleKeyPressEvent(xproto.KeyPressEvent{Detail: 44, State: state}), "state %#x", state)
	}
	assert.Nil(t, x.handleKeyPressEvent(xproto.KeyPressEvent{Detail: 44, State: xproto.ModMask1 | xproto.ModMaskShift}))
	assert.Nil(t, x.handleKeyPressEvent(xproto.KeyPressEvent{Detail: 45, State: xproto.ModMask1}))
}

func TestDefaultBindingsParse(t *testing.T) {
	grabs, err := parseBindings(config.Default().Bindings)
	require.NoError(t, err)
	assert.Len(t, grabs, len(config.Default().Bindings))
}
