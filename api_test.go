package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/intio/tilewm/client"
)

func startTestAPI(t *testing.T) (*WM, *fakeBackend, *httptest.Server) {
	t.Helper()
	wm, x := newTestWM(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go wm.Run(ctx, nil)

	as := NewAPIServer(wm, "")
	srv := httptest.NewServer(as.server.Handler)
	t.Cleanup(srv.Close)
	return wm, x, srv
}

func postCommand(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	res, err := http.Post(srv.URL+"/commands", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func getJSON(t *testing.T, url string, v interface{}) int {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	if v != nil && res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(v))
	}
	return res.StatusCode
}

func TestAPIWorkspaces(t *testing.T) {
	_, _, srv := startTestAPI(t)

	var list struct {
		Items []WorkspaceState `json:"items"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/workspaces/", &list))
	require.Len(t, list.Items, 3)
	assert.True(t, list.Items[0].Active)
	assert.Equal(t, "[side]", list.Items[0].Layout)
	assert.Len(t, list.Items[0].Layouts, 4)

	var one struct {
		Item WorkspaceState `json:"item"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/workspaces/2", &one))
	assert.Equal(t, "chat", one.Item.Name)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/workspaces/3", nil))
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/workspaces/web", nil))
}

func TestAPICommands(t *testing.T) {
	wm, _, srv := startTestAPI(t)

	res := postCommand(t, srv, `{"command": "workspace web"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var active string
	require.NoError(t, wm.Do(context.Background(), func() {
		active = wm.GetActiveWorkspace().Name()
	}))
	assert.Equal(t, "web", active)

	assert.Equal(t, http.StatusBadRequest, postCommand(t, srv, `{"command": "teleport"}`).StatusCode)
	assert.Equal(t, http.StatusBadRequest, postCommand(t, srv, `{"command": "workspace 12"}`).StatusCode)
	assert.Equal(t, http.StatusUnprocessableEntity, postCommand(t, srv, `{"command":`).StatusCode)
}

func TestAPIClients(t *testing.T) {
	wm, x, srv := startTestAPI(t)
	require.NoError(t, wm.Do(context.Background(), func() {
		_ = wm.Manage(5)
		_ = wm.Manage(6)
	}))

	var list struct {
		Items []client.Client `json:"items"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/clients/", &list))
	require.Len(t, list.Items, 2)
	assert.Equal(t, client.WinID(6), list.Items[0].ID)

	var one struct {
		Item client.Client `json:"item"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/clients/5", &one))
	assert.Equal(t, "Fake", one.Item.Class)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/clients/123", nil))

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/clients/5", nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var closed bool
	require.NoError(t, wm.Do(context.Background(), func() {
		_, closed = x.closed[5]
	}))
	assert.True(t, closed)
}

func TestAPIMetrics(t *testing.T) {
	_, _, srv := startTestAPI(t)
	postCommand(t, srv, `{"command": "cycle_layout forward"}`)

	res, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tilewm_commands_total{command="cycle_layout"}`)
	assert.Contains(t, string(body), "tilewm_workspace_clients")
}

func TestAPIUnknownPath(t *testing.T) {
	_, _, srv := startTestAPI(t)
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/nope", nil))
}

func TestAPIEvents(t *testing.T) {
	wm, _, srv := startTestAPI(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/events", nil)
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")

	require.Eventually(t, func() bool {
		wm.hub.mu.Lock()
		defer wm.hub.mu.Unlock()
		return len(wm.hub.subs) == 1
	}, 5*time.Second, 10*time.Millisecond)

	postCommand(t, srv, `{"command": "cycle_layout forward"}`)

	var ev Event
	require.NoError(t, wsjson.Read(ctx, c, &ev))
	assert.Equal(t, "layout", ev.Type)
	assert.Equal(t, "main", ev.Workspace)
	assert.Equal(t, "[botm]", ev.Layout)
}
