package main

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/intio/tilewm/client"
)

// Event is pushed to websocket subscribers whenever the window manager
// state changes.
type Event struct {
	Type      string       `json:"type"`
	Workspace string       `json:"workspace,omitempty"`
	Client    client.WinID `json:"client,omitempty"`
	Layout    string       `json:"layout,omitempty"`
}

const subscriberBuffer = 64

// eventHub fans events out to websocket subscribers. Slow subscribers
// lose events rather than blocking the window manager.
type eventHub struct {
	mu   sync.Mutex
	subs map[uuid.UUID]chan Event
}

func newEventHub() *eventHub {
	return &eventHub{subs: map[uuid.UUID]chan Event{}}
}

func (h *eventHub) subscribe() (uuid.UUID, <-chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := uuid.New()
	ch := make(chan Event, subscriberBuffer)
	h.subs[id] = ch
	eventSubscribers.Set(float64(len(h.subs)))
	return id, ch
}

func (h *eventHub) unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
	eventSubscribers.Set(float64(len(h.subs)))
}

func (h *eventHub) publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			log.Warn("dropping event for slow subscriber", "subscriber", id, "type", ev.Type)
		}
	}
}

// serve streams events to a websocket client until it goes away.
func (h *eventHub) serve(ctx context.Context, c *websocket.Conn) {
	id, ch := h.subscribe()
	defer h.unsubscribe(id)
	log.Debug("event subscriber connected", "subscriber", id)

	// We never expect messages from the client; this also handles
	// close frames and pings.
	ctx = c.CloseRead(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch:
			if err := wsjson.Write(ctx, c, ev); err != nil {
				log.Debug("event subscriber gone", "subscriber", id, "err", err)
				return
			}
		}
	}
}

func makeWSHandler(
	handler func(context.Context, *websocket.Conn),
) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Error("websocket connect", "err", err)
			return
		}
		log.Info("websocket connect", "path", r.URL.Path, "remote", r.RemoteAddr)
		defer log.Info("websocket disconnect", "remote", r.RemoteAddr)
		defer c.Close(websocket.StatusNormalClosure, "")
		handler(r.Context(), c)
	}
}
