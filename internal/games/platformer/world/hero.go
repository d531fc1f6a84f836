package world

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// HeroState is the hero's animation state. Shooting overrides running,
// which overrides idle.
type HeroState int

const (
	HeroIdle HeroState = iota
	HeroRunning
	HeroShooting
)

func (s HeroState) String() string {
	switch s {
	case HeroRunning:
		return "run"
	case HeroShooting:
		return "shoot"
	default:
		return "idle"
	}
}

// lastShootFrame ends the shooting animation.
const lastShootFrame = 12

// Hero is the player character.
type Hero struct {
	Base
	Body

	Hearts     int
	Armour     int
	Coins      int
	Keys       []EntityID
	Facing     float64 // +1 right, -1 left
	State      HeroState
	ArrowTimer int // 0 when the bow is ready, otherwise steps since the last shot
	Dead       bool
	Multiplier float64

	shooting bool
	onSpikes bool
}

// HeroProfile is what the hero carries between levels.
type HeroProfile struct {
	Hearts int
	Armour int
	Coins  int
}

// Profile returns the carried-over part of the hero.
func (h *Hero) Profile() HeroProfile {
	return HeroProfile{Hearts: h.Hearts, Armour: h.Armour, Coins: h.Coins}
}

// Hit applies melee or contact damage. Armour absorbs the whole hit when the
// hero has any; otherwise hearts are lost. Never both.
func (h *Hero) Hit(damage int) {
	if damage <= 0 {
		return
	}
	if h.Armour > 0 {
		h.Armour = max(0, h.Armour-damage)
		return
	}
	h.hurtHearts(damage)
}

// hurtHearts removes hearts directly, bypassing armour.
func (h *Hero) hurtHearts(damage int) {
	h.Hearts = max(0, h.Hearts-damage)
}

func (w *World) updateHero(in core.InputFrame, now int64) {
	h := w.hero
	if h.Dead {
		return
	}
	w.animateHero(now)
	w.heroInput(in, now)
	w.integrate(&h.Base, &h.Body, core.V(w.cfg.Hero.Friction, 0))
	w.resolve(&h.Base, &h.Body, h.Mask())
	w.checkHeroDeath()
}

func (w *World) animateHero(now int64) {
	h := w.hero
	hc := w.cfg.Hero

	switch {
	case h.shooting:
		h.State = HeroShooting
		h.anim.SetState(h.State.String())
		if h.anim.Tick(now, hc.ShootFrameMs) && h.anim.Index() == lastShootFrame {
			h.shooting = false
		}
	case h.Vel.X != 0:
		h.State = HeroRunning
		h.anim.SetState(h.State.String())
		h.anim.Tick(now, hc.RunFrameMs)
	default:
		h.State = HeroIdle
		h.anim.SetState(h.State.String())
		h.anim.Tick(now, hc.IdleFrameMs)
	}
}

func (w *World) heroInput(in core.InputFrame, now int64) {
	h := w.hero
	hc := w.cfg.Hero

	h.Acc = core.V(0, w.cfg.Physics.Gravity)

	if h.ArrowTimer > 0 {
		h.ArrowTimer++
	}
	if h.ArrowTimer >= hc.ArrowCooldown {
		h.ArrowTimer = 0
	}

	if in.Has(core.ActionLeft) {
		h.Acc.X = -hc.Acc
		h.Facing = -1
	}
	if in.Has(core.ActionRight) {
		h.Acc.X = hc.Acc
		h.Facing = 1
	}
	if in.Has(core.ActionUp) {
		w.heroJump(now)
	}
	if in.Has(core.ActionFire) && h.ArrowTimer == 0 && w.liveArrows() < hc.MaxArrows {
		h.shooting = true
		h.ArrowTimer = 1
		w.spawnArrow(h.Rect().Center(), h.Facing)
	}
}

// heroJump launches the hero if it is standing on terrain. Standing on a
// jump pad as well gives the higher launch and extends the pad.
func (w *World) heroJump(now int64) bool {
	h := w.hero
	if _, ok := w.standingOn(&h.Base); !ok {
		return false
	}
	if pad := w.padUnder(h); pad != nil {
		pad.activate(now)
		h.Vel.Y = w.cfg.Physics.PadJumpVelocity
		w.emit(Event{Kind: EventJumpPad, ID: pad.id})
		return true
	}
	h.Vel.Y = w.cfg.Physics.JumpVelocity
	return true
}

// checkHeroDeath is terminal: out of hearts or out of the map.
func (w *World) checkHeroDeath() {
	h := w.hero
	r := h.Rect()
	outside := r.CenterX() < 0 || r.CenterX() > w.width || r.Bottom() > w.height
	if h.Hearts < 1 || outside {
		h.Dead = true
		cause := "hearts"
		if outside {
			cause = "fell"
		}
		w.logger.Info("hero died", "tick", w.tick, "cause", cause)
		w.emit(Event{Kind: EventHeroDied, ID: h.id})
	}
}

var _ Entity = (*Hero)(nil)
