package world

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Orc is the melee enemy. It patrols until the hero comes within range on
// the same band, then chases with friction-damped acceleration.
type Orc struct {
	Base
	Body

	HP       float64
	Facing   float64 // patrol direction, +1 right, -1 left
	Chasing  bool
	Cooldown int // 0 when ready to attack, otherwise steps since the last attack
	Spawner  EntityID
}

// Health implements Damageable.
func (o *Orc) Health() float64 { return o.HP }

// Damage implements Damageable.
func (o *Orc) Damage(amount float64) { o.HP -= amount }

func (w *World) updateOrc(o *Orc, now int64) {
	if o.HP <= 0 {
		w.killEnemy(o)
		return
	}
	oc := w.cfg.Orc
	h := w.hero

	o.anim.Tick(now, oc.FrameMs)

	grounded := o.Vel.Y == 0
	before := o.Pos
	o.Acc = core.V(0, w.cfg.Physics.Gravity)

	hr, or := h.Rect(), o.Rect()
	o.Chasing = math.Abs(hr.CenterX()-or.CenterX()) < oc.ChaseRange &&
		hr.CenterY() > or.Top() && hr.CenterY() < or.Bottom()

	if o.Chasing {
		if hr.CenterX() > or.CenterX() {
			o.Acc.X = oc.Acc
		} else {
			o.Acc.X = -oc.Acc
		}
		w.integrate(&o.Base, &o.Body, core.V(oc.Friction, oc.Friction))
	} else {
		o.Vel.X = o.Facing * oc.PatrolSpeed
		o.Vel = o.Vel.Add(o.Acc)
		if o.Vel.Y > w.cfg.Physics.MaxFallSpeed {
			o.Vel.Y = w.cfg.Physics.MaxFallSpeed
		}
		o.Pos = o.Pos.Add(o.Vel)
	}

	dir := core.Sign(o.Pos.X - before.X)
	_, blocked := w.resolve(&o.Base, &o.Body, o.Mask())

	switch {
	case blocked && !o.Chasing:
		o.Facing = -o.Facing
	case grounded && dir != 0 && !w.footOnGround(&o.Base, dir):
		// about to walk off a ledge: step back and turn around
		o.Pos.X = before.X
		o.Facing = -dir
		if o.Chasing {
			o.Vel.X = 0
		}
	}
	if o.Vel.X != 0 {
		o.anim.SetState("walk")
	}

	w.orcAttack(o)
}

func (w *World) orcAttack(o *Orc) {
	if !cooldownReady(&o.Cooldown, w.cfg.Orc.AttackCooldown) {
		return
	}
	if !touches(w.hero, o) {
		return
	}
	o.Cooldown = 1
	dmg := w.profile.OrcDamage
	if dmg <= 0 {
		return
	}
	w.hero.Hit(dmg)
	w.emit(Event{Kind: EventHeroHurt, ID: o.id, Value: dmg})
}

// cooldownReady advances an attack cooldown counter and reports whether an
// attack may happen this step. A counter of 1 starts the cooldown; it counts
// up every step and clears once it passes limit.
func cooldownReady(c *int, limit int) bool {
	if *c > 0 {
		*c++
	}
	if *c > limit {
		*c = 0
	}
	return *c == 0
}

var _ Damageable = (*Orc)(nil)
