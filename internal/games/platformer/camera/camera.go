// Package camera maps world coordinates to the visible viewport.
package camera

import "github.com/vovakirdan/tui-platformer/internal/core"

// Camera is a viewport over a larger world. Its offset is the world
// position of the viewport's top-left corner.
type Camera struct {
	viewW, viewH   float64
	worldW, worldH float64
	offset         core.Vec2
}

// New creates a camera at the world origin.
func New(viewW, viewH, worldW, worldH float64) *Camera {
	return &Camera{viewW: viewW, viewH: viewH, worldW: worldW, worldH: worldH}
}

// Resize changes the viewport size and re-clamps the offset.
func (c *Camera) Resize(viewW, viewH float64) {
	c.viewW, c.viewH = viewW, viewH
	c.offset = c.clamp(c.offset)
}

// Update centers the viewport on target. The viewport never shows anything
// outside [0, worldW] x [0, worldH]; on an axis where the world is smaller
// than the viewport the offset is 0.
func (c *Camera) Update(target core.Rect) {
	center := target.Center()
	c.offset = c.clamp(core.V(center.X-c.viewW/2, center.Y-c.viewH/2))
}

func (c *Camera) clamp(off core.Vec2) core.Vec2 {
	return core.V(
		core.ClampF(off.X, 0, max(0, c.worldW-c.viewW)),
		core.ClampF(off.Y, 0, max(0, c.worldH-c.viewH)),
	)
}

// Offset returns the world position of the viewport's top-left corner.
func (c *Camera) Offset() core.Vec2 { return c.offset }

// View returns the visible world rectangle.
func (c *Camera) View() core.Rect {
	return core.RectAt(c.offset, c.viewW, c.viewH)
}

// ToScreen translates a world rectangle into viewport space.
func (c *Camera) ToScreen(r core.Rect) core.Rect {
	return core.NewRect(r.X-c.offset.X, r.Y-c.offset.Y, r.W, r.H)
}

// Visible reports whether any part of r is inside the viewport.
func (c *Camera) Visible(r core.Rect) bool {
	return c.View().Intersects(r)
}
