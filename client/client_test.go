package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryGet(t *testing.T) {
	r := Registry{
		1: New(1, "term", "XTerm", 0),
		2: New(2, "browser", "Firefox", 1),
	}

	c, ok := r.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "browser", c.Name)
	assert.Equal(t, 1, c.Workspace)

	_, ok = r.Get(3)
	assert.False(t, ok)
}

func TestRegistryOnWorkspace(t *testing.T) {
	r := Registry{
		1: New(1, "", "", 0),
		2: New(2, "", "", 1),
		3: New(3, "", "", 0),
	}
	got := r.OnWorkspace(0)
	assert.Len(t, got, 2)
	assert.Empty(t, r.OnWorkspace(4))
}

func TestWinIDString(t *testing.T) {
	assert.Equal(t, "0x1a00003", WinID(0x1a00003).String())
}
