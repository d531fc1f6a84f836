package world

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Fly is the flying enemy. It bobs freely and homes in on the hero when
// the hero enters its sensor box. Terrain does not stop it.
type Fly struct {
	Base

	Vel      core.Vec2
	BobAcc   float64
	HP       float64
	Chasing  bool
	Facing   float64
	Cooldown int
}

// Health implements Damageable.
func (f *Fly) Health() float64 { return f.HP }

// Damage implements Damageable.
func (f *Fly) Damage(amount float64) { f.HP -= amount }

func (w *World) randomFlySpeed() float64 {
	speeds := w.cfg.Fly.Speeds
	return speeds[w.rng.Intn(len(speeds))]
}

func (w *World) updateFly(f *Fly, now int64) {
	if f.HP <= 0 {
		w.killEnemy(f)
		return
	}
	fc := w.cfg.Fly
	f.anim.Tick(now, fc.FrameMs)

	target := w.hero.Rect().MidTop()
	c := f.Rect().Center()
	f.Chasing = math.Abs(target.X-c.X) < fc.ChaseRangeX && math.Abs(target.Y-c.Y) < fc.ChaseRangeY

	if f.Chasing {
		sx, sy := w.randomFlySpeed(), w.randomFlySpeed()
		if target.X > c.X {
			f.Vel.X = sx
		} else {
			f.Vel.X = -sx
		}
		if target.Y > c.Y {
			f.Vel.Y = sy
		} else {
			f.Vel.Y = -sy
		}
		f.Pos = f.Pos.Add(f.Vel)
	} else {
		f.Vel.Y += f.BobAcc
		f.Pos = f.Pos.Add(f.Vel)
		if math.Abs(f.Vel.Y) > fc.BobLimit {
			f.BobAcc = -f.BobAcc
		}
		if (f.Pos.X > w.width && f.Vel.X > 0) || (f.Pos.X < 0 && f.Vel.X < 0) {
			f.Vel.X = -f.Vel.X
		}
	}
	if f.Vel.X != 0 {
		f.Facing = core.Sign(f.Vel.X)
	}

	w.flyAttack(f)
}

func (w *World) flyAttack(f *Fly) {
	if !cooldownReady(&f.Cooldown, w.cfg.Fly.AttackCooldown) {
		return
	}
	if !touches(w.hero, f) {
		return
	}
	f.Cooldown = 1
	dmg := w.profile.FlyDamage
	if dmg <= 0 {
		return
	}
	w.hero.Hit(dmg)
	w.emit(Event{Kind: EventHeroHurt, ID: f.id, Value: dmg})
}

var _ Damageable = (*Fly)(nil)
