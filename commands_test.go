package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intio/tilewm/client"
)

func TestExecUnknownCommand(t *testing.T) {
	wm, _ := newTestWM(t, testConfig())
	assert.ErrorContains(t, wm.Exec("frobnicate"), "unknown command")
	assert.ErrorContains(t, wm.Exec("   "), "empty command")
}

func TestExecBadArguments(t *testing.T) {
	wm, _ := newTestWM(t, testConfig())
	for _, line := range []string{
		"cycle_client",
		"cycle_client sideways",
		"drag_client forward backward",
		"max_main lots",
		"workspace",
		"workspace nope",
		"workspace 0",
		"send_to_workspace 4",
		"spawn",
	} {
		t.Run(line, func(t *testing.T) {
			err := wm.Exec(line)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "usage:")
		})
	}
}

func TestExecDispatches(t *testing.T) {
	wm, x := newTestWM(t, testConfig())
	manage(t, wm, 1, 2, 3)

	require.NoError(t, wm.Exec("cycle_client next"))
	assert.Equal(t, client.WinID(2), x.focused)

	require.NoError(t, wm.Exec("drag_client backward"))
	assert.Equal(t, []client.WinID{2, 3, 1}, wm.GetActiveWorkspace().ClientIDs())

	require.NoError(t, wm.Exec("max_main more"))
	assert.Equal(t, uint(2), wm.GetActiveWorkspace().Layout().MaxMain)

	require.NoError(t, wm.Exec("cycle_layout forward"))
	assert.Equal(t, "[botm]", wm.GetActiveWorkspace().LayoutSymbol())

	require.NoError(t, wm.Exec("kill"))
	force, ok := x.closed[2]
	assert.True(t, ok)
	assert.False(t, force)
}

func TestExecWorkspaceByNameOrNumber(t *testing.T) {
	wm, _ := newTestWM(t, testConfig())

	require.NoError(t, wm.Exec("workspace web"))
	assert.Equal(t, "web", wm.GetActiveWorkspace().Name())

	require.NoError(t, wm.Exec("workspace 3"))
	assert.Equal(t, "chat", wm.GetActiveWorkspace().Name())

	manage(t, wm, 9)
	require.NoError(t, wm.Exec("send_to_workspace main"))
	assert.Equal(t, []client.WinID{9}, wm.workspaces[0].ClientIDs())
}

func TestExecSpawn(t *testing.T) {
	wm, _ := newTestWM(t, testConfig())
	var got []string
	wm.spawn = func(cmd string, args ...string) error {
		got = append([]string{cmd}, args...)
		return nil
	}
	require.NoError(t, wm.Exec("spawn xterm -e top"))
	assert.Equal(t, []string{"xterm", "-e", "top"}, got)

	wm.spawn = func(string, ...string) error { return errors.New("not found") }
	assert.ErrorContains(t, wm.Exec("spawn nothing"), "not found")
}

func TestExecQuit(t *testing.T) {
	wm, _ := newTestWM(t, testConfig())
	require.NoError(t, wm.Exec("quit"))
	assert.True(t, wm.quitting)
}

func TestCheckCommand(t *testing.T) {
	assert.NoError(t, checkCommand("cycle_layout forward"))
	assert.NoError(t, checkCommand("spawn dmenu_run"))
	assert.Error(t, checkCommand("teleport"))
	assert.Error(t, checkCommand(""))
}
