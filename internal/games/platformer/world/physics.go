package world

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sprite"
)

// integrate advances a body one step. Friction is linear in velocity and
// applied per axis: acc += vel * friction; vel += acc; pos += vel + acc/2.
// Horizontal speeds below the snap threshold become exactly zero.
func (w *World) integrate(b *Base, m *Body, friction core.Vec2) {
	ph := w.cfg.Physics
	m.Acc = m.Acc.Add(m.Vel.Mul(friction))
	m.Vel = m.Vel.Add(m.Acc)
	if math.Abs(m.Vel.X) < ph.VelocitySnap {
		m.Vel.X = 0
	}
	if m.Vel.Y > ph.MaxFallSpeed {
		m.Vel.Y = ph.MaxFallSpeed
	}
	b.Pos = b.Pos.Add(m.Vel).Add(m.Acc.Scale(0.5))
}

// resolveVertical lands a falling body. Among the terrain tiles its mask
// touches, the lowest one (largest bottom) is the contact surface; the body
// snaps so its bottom sits GroundInset px below that tile's top, unless it
// has already sunk past the tile's middle.
func (w *World) resolveVertical(b *Base, m *Body, mask *sprite.Mask) bool {
	if m.Vel.Y <= 0 {
		return false
	}
	r := b.Rect()
	var lowest *Terrain
	for _, t := range w.index.query(r) {
		if !sprite.Collide(mask, r, t.Mask(), t.Rect()) {
			continue
		}
		if lowest == nil || t.Rect().Bottom() > lowest.Rect().Bottom() {
			lowest = t
		}
	}
	if lowest == nil {
		return false
	}
	inset := w.cfg.Physics.GroundInset
	if r.Bottom()+inset >= lowest.Rect().CenterY() {
		return false
	}
	b.Pos.Y = lowest.Rect().Top() + inset - b.H
	m.Vel.Y = 0
	return true
}

// resolveHorizontal pushes a walking body out of a wall. It only runs when
// the body moves sideways and is not airborne. Among overlapping tiles the
// highest one (smallest bottom) is used so floor seams never snag, and the
// push happens only when that tile's top is above the body's top.
func (w *World) resolveHorizontal(b *Base, m *Body) bool {
	if m.Vel.X == 0 || m.Vel.Y != 0 {
		return false
	}
	r := b.Rect()
	var highest *Terrain
	for _, t := range w.index.query(r) {
		if highest == nil || t.Rect().Bottom() < highest.Rect().Bottom() {
			highest = t
		}
	}
	if highest == nil || r.Top() <= highest.Rect().Top() {
		return false
	}
	if m.Vel.X > 0 {
		b.Pos.X = highest.Rect().Left() - b.W
	} else {
		b.Pos.X = highest.Rect().Right()
	}
	m.Vel.X = 0
	return true
}

// resolve runs both axes, vertical first.
func (w *World) resolve(b *Base, m *Body, mask *sprite.Mask) (landed, blocked bool) {
	landed = w.resolveVertical(b, m, mask)
	blocked = w.resolveHorizontal(b, m)
	return landed, blocked
}

// standingOn returns the tile a body rests on. The body is probed one pixel
// down; of the tiles the probe overlaps, the one with the greatest top is
// the floor, and the body stands on it only if its bottom sits exactly at
// the rest line.
func (w *World) standingOn(b *Base) (*Terrain, bool) {
	probe := b.Rect().Offset(0, 1)
	var floor *Terrain
	for _, t := range w.index.query(probe) {
		if floor == nil || t.Rect().Top() > floor.Rect().Top() {
			floor = t
		}
	}
	if floor == nil {
		return nil, false
	}
	rest := floor.Rect().Top() + w.cfg.Physics.GroundInset
	if math.Abs(b.Rect().Bottom()-rest) > w.cfg.Physics.StandEpsilon {
		return floor, false
	}
	return floor, true
}

// footOnGround probes a 2x2 px box under the leading foot of a body moving
// in direction dir (+1 right, -1 left).
func (w *World) footOnGround(b *Base, dir float64) bool {
	r := b.Rect()
	x := r.Left()
	if dir > 0 {
		x = r.Right() - 2
	}
	probe := core.NewRect(x, r.Bottom()-2, 2, 2)
	return len(w.index.query(probe)) > 0
}
