// Package client holds the metadata the window manager keeps about each
// managed window.
package client

import "fmt"

// WinID is the X11 window id of a managed client.
type WinID uint32

// None is the X11 "no window" id. It is never handed out for a real
// window, so it doubles as the "no focused client" hint for layouts.
const None = WinID(0)

func (id WinID) String() string {
	return fmt.Sprintf("0x%x", uint32(id))
}

// Client is an X11 client managed by us.
type Client struct {
	// ID is X11's internal window ID.
	ID WinID `json:"id"`
	// Name is the window title (_NET_WM_NAME or WM_NAME).
	Name string `json:"name"`
	// Class is the WM_CLASS class part.
	Class string `json:"class"`
	// Workspace is the index of the workspace holding this client.
	Workspace int `json:"workspace"`
	// Hidden is set while the client is unmapped by the window manager,
	// either because its workspace is not visible or because the layout
	// chose not to show it.
	Hidden bool `json:"hidden"`
}

// New creates the metadata for a freshly managed window.
func New(id WinID, name, class string, workspace int) *Client {
	return &Client{
		ID:        id,
		Name:      name,
		Class:     class,
		Workspace: workspace,
	}
}

// Registry maps window ids to their client metadata.
type Registry map[WinID]*Client

// Get returns the client registered for id.
func (r Registry) Get(id WinID) (*Client, bool) {
	c, ok := r[id]
	return c, ok
}

// OnWorkspace returns the clients registered on workspace ws, in no
// particular order.
func (r Registry) OnWorkspace(ws int) []*Client {
	var out []*Client
	for _, c := range r {
		if c.Workspace == ws {
			out = append(out, c)
		}
	}
	return out
}
