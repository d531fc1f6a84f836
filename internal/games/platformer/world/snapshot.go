package world

import "math"

// EntityState is the observable state of one entity.
type EntityState struct {
	ID    EntityID
	Kind  Kind
	X, Y  float64
	Extra float64 // health for enemies, activation for tiles
}

// Snapshot is a read-only copy of the world state, used by determinism
// tests and the headless simulate command.
type Snapshot struct {
	Tick      int64
	HeroX     float64
	HeroY     float64
	HeroVX    float64
	HeroVY    float64
	Hearts    int
	Armour    int
	Coins     int
	Keys      int
	Completed bool
	HeroDead  bool
	Entities  []EntityState
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	h := w.hero
	snap := Snapshot{
		Tick:      w.tick,
		HeroX:     h.Pos.X,
		HeroY:     h.Pos.Y,
		HeroVX:    h.Vel.X,
		HeroVY:    h.Vel.Y,
		Hearts:    h.Hearts,
		Armour:    h.Armour,
		Coins:     h.Coins,
		Keys:      len(h.Keys),
		Completed: w.completed,
		HeroDead:  h.Dead,
	}
	for _, e := range w.all {
		if !e.Alive() || e.Kind() == KindTerrain || e.Kind() == KindHero {
			continue
		}
		r := e.Rect()
		st := EntityState{ID: e.ID(), Kind: e.Kind(), X: r.X, Y: r.Y}
		switch v := e.(type) {
		case Damageable:
			st.Extra = v.Health()
		case *JumpPad:
			if v.Active {
				st.Extra = 1
			}
		case *Spawner:
			st.Extra = float64(len(v.Orcs))
		}
		snap.Entities = append(snap.Entities, st)
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.HeroX)
	h = h*31 + math.Float64bits(snap.HeroY)
	h = h*31 + math.Float64bits(snap.HeroVX)
	h = h*31 + math.Float64bits(snap.HeroVY)
	h = h*31 + uint64(snap.Hearts) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Armour) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Coins)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Keys)   //#nosec G115 -- hash computation
	if snap.Completed {
		h = h*31 + 1
	}
	if snap.HeroDead {
		h = h*31 + 2
	}

	for _, e := range snap.Entities {
		h = h*31 + uint64(e.ID)
		h = h*31 + uint64(e.Kind) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(e.X)
		h = h*31 + math.Float64bits(e.Y)
		h = h*31 + math.Float64bits(e.Extra)
	}
	return h
}
