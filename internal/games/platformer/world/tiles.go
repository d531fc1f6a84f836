package world

// Terrain is a static solid tile. It never changes for the level's lifetime.
type Terrain struct {
	Base
	Code  string
	order int // row-major grid order, used as the collision tie-break
}

// JumpPad launches the hero higher while it is used.
type JumpPad struct {
	Base
	Active      bool
	activatedMs int64
}

// Spikes hurt the hero on contact, ignoring armour.
type Spikes struct {
	Base
}

// Key must be collected before the door opens.
type Key struct {
	Base
}

// Door completes the level once every key is held.
type Door struct {
	Base
	Open bool
}

// Coin is a one-shot pickup.
type Coin struct {
	Base
}

// activate extends the pad until ActiveMs have passed.
func (p *JumpPad) activate(now int64) {
	p.Active = true
	p.activatedMs = now
	p.anim.SetState("active")
}

func (w *World) updateJumpPad(p *JumpPad, now int64) {
	if p.Active && now-p.activatedMs > w.cfg.JumpPad.ActiveMs {
		p.Active = false
		p.anim.SetState("idle")
	}
}

// updateSpikes deals damage once per entry into any spike tile.
func (w *World) updateSpikes(now int64) {
	h := w.hero
	touching := false
	for _, s := range w.spikes {
		if touches(h, s) {
			touching = true
			break
		}
	}
	if touching && !h.onSpikes && w.profile.SpikeDamage > 0 {
		h.hurtHearts(w.profile.SpikeDamage)
		w.emit(Event{Kind: EventSpikeHit, ID: h.id, Value: w.profile.SpikeDamage})
	}
	h.onSpikes = touching
}

func (w *World) updateKey(k *Key) {
	if !touches(w.hero, k) {
		return
	}
	w.hero.Keys = append(w.hero.Keys, k.id)
	w.kill(k)
	w.emit(Event{Kind: EventKeyCollected, ID: k.id, Value: len(w.hero.Keys)})
}

// updateDoor opens the door while the hero stands in it with no keys left
// in the world. Completion fires only on the first such step.
func (w *World) updateDoor(d *Door) {
	open := w.keysRemaining() == 0 && overlaps(w.hero, d)
	if open != d.Open {
		d.Open = open
		if open {
			d.anim.SetState("open")
		} else {
			d.anim.SetState("closed")
		}
	}
	if open && !w.completed {
		w.completed = true
		w.logger.Info("level complete", "tick", w.tick, "coins", w.hero.Coins)
		w.emit(Event{Kind: EventLevelComplete, ID: d.id})
	}
}

func (w *World) updateCoin(c *Coin, now int64) {
	c.anim.Tick(now, w.cfg.Pickups.CoinFrameMs)
	if !touches(w.hero, c) {
		return
	}
	gained := 0
	if w.profile.CoinChance >= 1 || w.rng.Float64() < w.profile.CoinChance {
		gained = w.profile.CoinValue
	}
	h := w.hero
	h.Coins = min(h.Coins+gained, w.cfg.Hero.MaxCoins)
	w.kill(c)
	w.emit(Event{Kind: EventCoinCollected, ID: c.id, Value: gained})
}

// keysRemaining counts keys still lying in the world.
func (w *World) keysRemaining() int {
	n := 0
	for _, k := range w.keys {
		if k.Alive() {
			n++
		}
	}
	return n
}

// padUnder returns the jump pad the hero is in contact with, if any.
func (w *World) padUnder(h *Hero) *JumpPad {
	for _, p := range w.jumpPads {
		if touches(h, p) {
			return p
		}
	}
	return nil
}

// compile-time capability checks
var (
	_ Entity = (*Terrain)(nil)
	_ Entity = (*JumpPad)(nil)
	_ Entity = (*Spikes)(nil)
	_ Entity = (*Key)(nil)
	_ Entity = (*Door)(nil)
	_ Entity = (*Coin)(nil)
)
