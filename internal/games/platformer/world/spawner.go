package world

// Spawner releases orcs on the global spawn timer, up to the difficulty cap
// of concurrently alive orcs.
type Spawner struct {
	Base

	Spawning bool
	openedMs int64
	Orcs     []EntityID
}

// aliveOrcs drops ids of dead orcs and returns how many remain.
func (w *World) aliveOrcs(s *Spawner) int {
	kept := s.Orcs[:0]
	for _, id := range s.Orcs {
		if e, ok := w.byID[id]; ok && e.Alive() {
			kept = append(kept, id)
		}
	}
	s.Orcs = kept
	return len(s.Orcs)
}

// scheduleSpawn picks the next global spawn time.
func (w *World) scheduleSpawn(now int64) {
	sc := w.cfg.Spawner
	next := sc.IntervalMs
	if sc.JitterMs > 0 {
		next += w.rng.Int63n(sc.JitterMs + 1)
	}
	w.nextSpawnMs = now + next
}

// spawnTick runs every spawner once the global timer elapses.
func (w *World) spawnTick(now int64) {
	if len(w.spawners) == 0 || now < w.nextSpawnMs {
		return
	}
	w.scheduleSpawn(now)
	for _, s := range w.spawners {
		if !s.Alive() {
			continue
		}
		w.trySpawn(s, now)
	}
}

func (w *World) trySpawn(s *Spawner, now int64) bool {
	limit := w.profile.SpawnerCap
	if w.aliveOrcs(s) >= limit {
		return false
	}
	o := w.newOrc(s.Pos)
	o.Spawner = s.id
	// stand on the spawner's floor line
	o.Pos.Y = s.Rect().Bottom() - o.H
	o.Pos.X = s.Rect().CenterX() - o.W/2
	w.add(o)
	w.orcs = append(w.orcs, o)
	s.Orcs = append(s.Orcs, o.id)

	s.Spawning = true
	s.openedMs = now
	s.anim.SetState("open")
	w.logger.Debug("orc spawned", "spawner", s.id, "orc", o.id, "alive", len(s.Orcs), "cap", limit)
	w.emit(Event{Kind: EventOrcSpawned, ID: o.id, Value: int(s.id)})
	return true
}

func (w *World) updateSpawner(s *Spawner, now int64) {
	if s.Spawning && now-s.openedMs > w.cfg.Spawner.OpenMs {
		s.Spawning = false
		s.anim.SetState("closed")
	}
}

var _ Entity = (*Spawner)(nil)
