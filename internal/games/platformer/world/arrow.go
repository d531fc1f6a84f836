package world

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Arrow is the hero's projectile. It accelerates in its fired direction
// until it strikes terrain or an enemy. A struck arrow is left in place
// with Hit set and removed on its next update.
type Arrow struct {
	Base
	Body

	Dir    float64
	Damage float64
	Hit    bool
}

// newArrow centers an arrow on pos facing dir.
func (w *World) newArrow(center core.Vec2, dir float64) *Arrow {
	ac := w.cfg.Arrow
	if dir == 0 {
		dir = 1
	}
	a := &Arrow{
		Base: Base{
			kind: KindArrow,
			Pos:  core.V(center.X-ac.Width/2, center.Y-ac.Height/2),
			W:    ac.Width,
			H:    ac.Height,
		},
		Dir:    dir,
		Damage: ac.Damage * w.hero.Multiplier,
	}
	a.anim = w.animator(KindArrow)
	return a
}

// spawnArrow fires an arrow from the hero.
func (w *World) spawnArrow(center core.Vec2, dir float64) {
	a := w.newArrow(center, dir)
	w.add(a)
	w.arrows = append(w.arrows, a)
	w.emit(Event{Kind: EventArrowFired, ID: a.id})
}

// liveArrows counts arrows still in flight or awaiting removal.
func (w *World) liveArrows() int {
	n := 0
	for _, a := range w.arrows {
		if a.Alive() {
			n++
		}
	}
	return n
}

func (w *World) updateArrow(a *Arrow) {
	r := a.Rect()
	if a.Hit || r.Right() < 0 || r.Left() > w.width {
		w.kill(a)
		return
	}

	a.Acc = core.V(a.Dir*w.cfg.Arrow.Acc, 0)
	a.Vel = a.Vel.Add(a.Acc)
	a.Pos = a.Pos.Add(a.Vel).Add(a.Acc.Scale(0.5))

	if tiles := w.index.query(a.Rect()); len(tiles) > 0 {
		// stick into the face of the first wall hit
		t := tiles[0].Rect()
		off := w.cfg.Arrow.WallOffset
		cx := t.Left() - off
		if a.Dir < 0 {
			cx = t.Right() + off
		}
		a.Pos.X = cx - a.W/2
		a.Vel.X = 0
		a.Hit = true
		return
	}

	if target := w.arrowTarget(a); target != nil {
		target.Damage(a.Damage)
		a.Hit = true
		w.logger.Debug("arrow hit", "arrow", a.id, "target", target.ID(), "health", target.Health())
		w.emit(Event{Kind: EventArrowHit, ID: target.ID(), Value: int(a.Damage)})
		if target.Health() <= 0 {
			w.killEnemy(target)
		}
	}
}

// arrowTarget returns the first enemy the arrow touches, by lowest id.
func (w *World) arrowTarget(a *Arrow) Damageable {
	var best Damageable
	consider := func(e Damageable) {
		if !e.Alive() || e.Health() <= 0 || !touches(a, e) {
			return
		}
		if best == nil || e.ID() < best.ID() {
			best = e
		}
	}
	for _, o := range w.orcs {
		consider(o)
	}
	for _, f := range w.flies {
		consider(f)
	}
	return best
}

var _ Entity = (*Arrow)(nil)
