package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestUpdateCentersAndClamps(t *testing.T) {
	tests := []struct {
		name   string
		target core.Rect
		want   core.Vec2
	}{
		{"centered", core.NewRect(990, 490, 20, 20), core.V(600, 300)},
		{"left edge", core.NewRect(10, 490, 20, 20), core.V(0, 300)},
		{"top edge", core.NewRect(990, 0, 20, 20), core.V(600, 0)},
		{"bottom right corner", core.NewRect(1990, 990, 20, 20), core.V(1200, 600)},
		{"past the world", core.NewRect(5000, 5000, 20, 20), core.V(1200, 600)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(800, 400, 2000, 1000)
			c.Update(tc.target)
			assert.Equal(t, tc.want, c.Offset())
		})
	}
}

func TestSmallWorldPinsToOrigin(t *testing.T) {
	c := New(800, 600, 320, 1000)
	c.Update(core.NewRect(300, 900, 10, 10))
	assert.Equal(t, 0.0, c.Offset().X)
	assert.Equal(t, 400.0, c.Offset().Y)
}

func TestToScreen(t *testing.T) {
	c := New(800, 400, 2000, 1000)
	c.Update(core.NewRect(990, 490, 20, 20))

	got := c.ToScreen(core.NewRect(650, 320, 64, 64))
	assert.Equal(t, core.NewRect(50, 20, 64, 64), got)
	assert.True(t, c.Visible(core.NewRect(650, 320, 64, 64)))
	assert.False(t, c.Visible(core.NewRect(0, 0, 64, 64)))
}

func TestResizeReclamps(t *testing.T) {
	c := New(800, 400, 2000, 1000)
	c.Update(core.NewRect(1990, 990, 20, 20))
	c.Resize(1600, 800)
	assert.Equal(t, core.V(400, 200), c.Offset())
}
