package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventHub(t *testing.T) {
	h := newEventHub()
	a, chA := h.subscribe()
	_, chB := h.subscribe()

	h.publish(Event{Type: "focus", Client: 3})
	require.Len(t, chA, 1)
	require.Len(t, chB, 1)
	assert.Equal(t, Event{Type: "focus", Client: 3}, <-chA)

	h.unsubscribe(a)
	h.publish(Event{Type: "layout"})
	assert.Len(t, chA, 0)
	assert.Len(t, chB, 2)
}

func TestEventHubDropsForSlowSubscribers(t *testing.T) {
	h := newEventHub()
	_, ch := h.subscribe()
	for i := 0; i < subscriberBuffer+10; i++ {
		h.publish(Event{Type: "focus"})
	}
	assert.Len(t, ch, subscriberBuffer)
}
