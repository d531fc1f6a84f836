package world

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sprite"
)

// ErrInvariantViolation is returned when a caller asks the world to do
// something that can only happen through a bug, such as removing an entity
// that is not there.
var ErrInvariantViolation = errors.New("world: invariant violation")

// Options configure a new World. The zero value is usable: default config,
// normal difficulty, seed 0, discarded logs and the embedded sprites.
type Options struct {
	Config     *config.PlatformerConfig
	Difficulty config.Difficulty
	Seed       int64
	Logger     *log.Logger
	Sprites    sprite.Provider
	// Profile carries hearts, armour and coins over from a previous level.
	// Nil starts a fresh hero.
	Profile *HeroProfile
}

// StepResult reports what one step did.
type StepResult struct {
	Tick      int64
	Events    []Event
	Completed bool
	HeroDead  bool
}

// Done reports whether the level run has ended.
func (r StepResult) Done() bool { return r.Completed || r.HeroDead }

// World is the simulation of one level. It is single-threaded: one caller
// owns it and drives it with Step.
type World struct {
	cfg        config.PlatformerConfig
	difficulty config.Difficulty
	profile    config.DifficultyProfile
	level      *levels.Level
	sprites    sprite.Provider
	logger     *log.Logger
	rng        *rand.Rand

	width, height float64
	index         *terrainIndex

	tick        int64
	nowMs       int64
	nextSpawnMs int64
	nextID      EntityID
	completed   bool
	dirty       bool
	events      []Event

	byID map[EntityID]Entity
	all  []Entity

	hero     *Hero
	terrain  []*Terrain
	jumpPads []*JumpPad
	spikes   []*Spikes
	keys     []*Key
	doors    []*Door
	coins    []*Coin
	spawners []*Spawner
	arrows   []*Arrow
	orcs     []*Orc
	flies    []*Fly
}

// New populates a world from a parsed level.
func New(level *levels.Level, opts Options) (*World, error) {
	if level == nil {
		return nil, fmt.Errorf("%w: nil level", levels.ErrMalformedLevel)
	}

	cfg := config.DefaultPlatformerConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	diff := opts.Difficulty
	if diff == "" {
		diff = config.DifficultyNormal
	}
	profile, err := cfg.Profile(diff)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sprites := opts.Sprites
	if sprites == nil {
		sprites = sprite.Default()
	}
	if err := checkSprites(cfg, sprites); err != nil {
		return nil, err
	}

	w := &World{
		cfg:        cfg,
		difficulty: diff,
		profile:    profile,
		level:      level,
		sprites:    sprites,
		logger:     logger.With("level", level.ID),
		rng:        rand.New(rand.NewSource(opts.Seed)), //#nosec G404 -- gameplay randomness, not security
		width:      level.PixelWidth(),
		height:     level.PixelHeight(),
		byID:       make(map[EntityID]Entity),
	}
	w.populate(opts.Profile)
	w.index = newTerrainIndex(w.width, w.height, cfg.Physics.TileSize, w.terrain)
	w.scheduleSpawn(0)

	w.logger.Debug("world ready",
		"difficulty", diff,
		"terrain", len(w.terrain),
		"entities", len(w.all),
		"unknown_tokens", len(level.Unknown),
	)
	return w, nil
}

func (w *World) populate(carry *HeroProfile) {
	ts := float64(w.cfg.Physics.TileSize)
	lv := w.level

	for _, t := range lv.Terrain {
		tile := &Terrain{
			Base: Base{kind: KindTerrain, Pos: t.Pos.Pixel(), W: ts, H: ts},
			Code: t.Code,
		}
		tile.order = t.Pos.Row*lv.Cols + t.Pos.Col
		tile.anim = sprite.NewAnimator(w.sprites, sprite.Terrain(t.Code), sprite.DefaultState, w.logger)
		w.add(tile)
		w.terrain = append(w.terrain, tile)
	}

	for _, s := range lv.Spawns {
		cell := s.Pos.Pixel()
		switch s.Kind {
		case levels.SpawnDoor:
			d := &Door{Base: w.tileBase(KindDoor, cell)}
			w.add(d)
			w.doors = append(w.doors, d)
		case levels.SpawnSpikes:
			sp := &Spikes{Base: w.tileBase(KindSpikes, cell)}
			w.add(sp)
			w.spikes = append(w.spikes, sp)
		case levels.SpawnJumpPad:
			p := &JumpPad{Base: w.tileBase(KindJumpPad, cell)}
			w.add(p)
			w.jumpPads = append(w.jumpPads, p)
		case levels.SpawnSpawner:
			sp := &Spawner{Base: w.tileBase(KindSpawner, cell)}
			w.add(sp)
			w.spawners = append(w.spawners, sp)
		case levels.SpawnKey:
			size := w.cfg.Pickups.KeySize
			off := (ts - size) / 2
			k := &Key{Base: Base{kind: KindKey, Pos: cell.Add(core.V(off, off)), W: size, H: size}}
			k.anim = w.animator(KindKey)
			w.add(k)
			w.keys = append(w.keys, k)
		case levels.SpawnCoin:
			size, inset := w.cfg.Pickups.CoinSize, w.cfg.Pickups.Inset
			c := &Coin{Base: Base{kind: KindCoin, Pos: cell.Add(core.V(inset, inset)), W: size, H: size}}
			c.anim = w.animator(KindCoin)
			w.add(c)
			w.coins = append(w.coins, c)
		case levels.SpawnOrc:
			o := w.newOrc(cell)
			w.add(o)
			w.orcs = append(w.orcs, o)
		case levels.SpawnFly:
			f := w.newFly(cell)
			w.add(f)
			w.flies = append(w.flies, f)
		}
	}

	w.hero = w.newHero(lv.Hero.Pixel(), carry)
	w.add(w.hero)
}

func (w *World) tileBase(kind Kind, cell core.Vec2) Base {
	ts := float64(w.cfg.Physics.TileSize)
	return Base{kind: kind, Pos: cell, W: ts, H: ts, anim: w.animator(kind)}
}

// animator returns an animator in the initial state of the kind's sprite.
func (w *World) animator(kind Kind) *sprite.Animator {
	name, state := spriteOf(kind)
	return sprite.NewAnimator(w.sprites, name, state, w.logger)
}

// spriteOf names the sprite and initial state drawn for kind.
func spriteOf(kind Kind) (name, state string) {
	name, state = sprite.DefaultState, sprite.DefaultState
	switch kind {
	case KindHero:
		name, state = sprite.Hero, HeroIdle.String()
	case KindOrc:
		name, state = sprite.Orc, "walk"
	case KindFly:
		name, state = sprite.Fly, "fly"
	case KindArrow:
		name = sprite.Arrow
	case KindSpawner:
		name, state = sprite.Spawner, "closed"
	case KindJumpPad:
		name, state = sprite.JumpPad, "idle"
	case KindSpikes:
		name = sprite.Spikes
	case KindKey:
		name = sprite.Key
	case KindDoor:
		name, state = sprite.Door, "closed"
	case KindCoin:
		name, state = sprite.Coin, "spin"
	}
	return name, state
}

// checkSprites rejects a config whose body sizes differ from the sprite
// masks, since mask collision assumes the two line up pixel for pixel.
func checkSprites(cfg config.PlatformerConfig, p sprite.Provider) error {
	ts := float64(cfg.Physics.TileSize)
	bodies := []struct {
		kind Kind
		w, h float64
	}{
		{KindHero, cfg.Hero.Width, cfg.Hero.Height},
		{KindOrc, cfg.Orc.Width, cfg.Orc.Height},
		{KindFly, cfg.Fly.Width, cfg.Fly.Height},
		{KindArrow, cfg.Arrow.Width, cfg.Arrow.Height},
		{KindKey, cfg.Pickups.KeySize, cfg.Pickups.KeySize},
		{KindCoin, cfg.Pickups.CoinSize, cfg.Pickups.CoinSize},
		{KindSpikes, ts, ts},
		{KindJumpPad, ts, ts},
		{KindDoor, ts, ts},
		{KindSpawner, ts, ts},
	}
	for _, b := range bodies {
		name, state := spriteOf(b.kind)
		if err := sprite.CheckSize(p, name, state, b.w, b.h); err != nil {
			return err
		}
	}
	return nil
}

// bottomCentered places a w×h box on the floor line of a grid cell.
func (w *World) bottomCentered(cell core.Vec2, bw, bh float64) core.Vec2 {
	ts := float64(w.cfg.Physics.TileSize)
	return core.V(cell.X+(ts-bw)/2, cell.Y+ts-bh)
}

func (w *World) newHero(cell core.Vec2, carry *HeroProfile) *Hero {
	hc := w.cfg.Hero
	h := &Hero{
		Base:       Base{kind: KindHero, Pos: w.bottomCentered(cell, hc.Width, hc.Height), W: hc.Width, H: hc.Height},
		Hearts:     hc.MaxHearts,
		Facing:     1,
		Multiplier: w.profile.Multiplier,
	}
	if carry != nil {
		h.Hearts = core.Clamp(carry.Hearts, 0, hc.MaxHearts)
		h.Armour = core.Clamp(carry.Armour, 0, hc.MaxArmour)
		h.Coins = core.Clamp(carry.Coins, 0, hc.MaxCoins)
	}
	h.anim = w.animator(KindHero)
	return h
}

func (w *World) newOrc(cell core.Vec2) *Orc {
	oc := w.cfg.Orc
	o := &Orc{
		Base:   Base{kind: KindOrc, Pos: w.bottomCentered(cell, oc.Width, oc.Height), W: oc.Width, H: oc.Height},
		HP:     oc.Health,
		Facing: 1,
	}
	o.anim = w.animator(KindOrc)
	return o
}

func (w *World) newFly(cell core.Vec2) *Fly {
	fc := w.cfg.Fly
	ts := float64(w.cfg.Physics.TileSize)
	f := &Fly{
		Base:   Base{kind: KindFly, Pos: cell.Add(core.V((ts-fc.Width)/2, (ts-fc.Height)/2)), W: fc.Width, H: fc.Height},
		HP:     fc.Health,
		BobAcc: fc.BobAcc,
	}
	f.Vel.X = w.randomFlySpeed()
	if w.rng.Intn(2) == 0 {
		f.Vel.X = -f.Vel.X
	}
	f.Facing = core.Sign(f.Vel.X)
	f.anim = w.animator(KindFly)
	return f
}

// add registers an entity and gives it the next id.
func (w *World) add(e Entity) {
	w.nextID++
	e.base().id = w.nextID
	w.byID[w.nextID] = e
	w.all = append(w.all, e)
}

// kill marks an entity dead. It stays in every collection until the end of
// the current controller pass.
func (w *World) kill(e Entity) {
	b := e.base()
	if b.dead {
		return
	}
	b.dead = true
	w.dirty = true
}

// killEnemy removes an orc or fly whose health ran out. It never attacks
// again, not even later in the step that killed it.
func (w *World) killEnemy(e Damageable) {
	if !e.Alive() {
		return
	}
	w.kill(e)
	w.logger.Debug("enemy killed", "id", e.ID(), "kind", e.Kind())
	w.emit(Event{Kind: EventEnemyKilled, ID: e.ID()})
}

// Remove kills the entity with the given id. Removing an unknown or already
// removed id is an invariant violation: it is logged, reported as an event
// and otherwise ignored.
func (w *World) Remove(id EntityID) error {
	e, ok := w.byID[id]
	if !ok || !e.Alive() {
		w.logger.Error("remove of unknown entity", "id", id, "tick", w.tick)
		w.emit(Event{Kind: EventInvariantViolation, ID: id})
		return fmt.Errorf("%w: remove of unknown entity %d", ErrInvariantViolation, id)
	}
	if e.Kind() == KindHero {
		w.hero.Dead = true
		w.emit(Event{Kind: EventHeroDied, ID: id})
		return nil
	}
	w.kill(e)
	w.compact()
	return nil
}

// compact drops dead entities from every collection at once.
func (w *World) compact() {
	if !w.dirty {
		return
	}
	w.dirty = false

	w.all = prune(w.all)
	for id, e := range w.byID {
		if !e.Alive() {
			delete(w.byID, id)
		}
	}
	w.keys = prune(w.keys)
	w.coins = prune(w.coins)
	w.arrows = prune(w.arrows)
	w.orcs = prune(w.orcs)
	w.flies = prune(w.flies)
	w.spawners = prune(w.spawners)
	w.jumpPads = prune(w.jumpPads)
	w.spikes = prune(w.spikes)
	w.doors = prune(w.doors)
}

func prune[E Entity](list []E) []E {
	kept := list[:0]
	for _, e := range list {
		if e.Alive() {
			kept = append(kept, e)
		}
	}
	var zero E
	for i := len(kept); i < len(list); i++ {
		list[i] = zero
	}
	return kept
}

func (w *World) emit(ev Event) {
	ev.Tick = w.tick
	w.events = append(w.events, ev)
}

// Step advances the world by one fixed step using input sampled once by the
// caller and the clock value nowMs. Once the level is complete or the hero
// is dead further steps change nothing.
func (w *World) Step(in core.InputFrame, nowMs int64) StepResult {
	if w.completed || w.hero.Dead {
		res := w.result()
		res.Events = nil
		return res
	}
	w.tick++
	w.nowMs = nowMs
	w.events = nil

	w.spawnTick(nowMs)
	w.compact()

	w.stepTiles(nowMs)
	w.compact()

	for _, a := range w.arrows {
		w.updateArrow(a)
	}
	w.compact()

	for _, o := range w.orcs {
		w.updateOrc(o, nowMs)
	}
	w.compact()

	for _, f := range w.flies {
		w.updateFly(f, nowMs)
	}
	w.compact()

	w.updateHero(in, nowMs)
	w.compact()

	return w.result()
}

func (w *World) stepTiles(now int64) {
	for _, p := range w.jumpPads {
		w.updateJumpPad(p, now)
	}
	w.updateSpikes(now)
	for _, k := range w.keys {
		w.updateKey(k)
	}
	for _, c := range w.coins {
		w.updateCoin(c, now)
	}
	for _, s := range w.spawners {
		w.updateSpawner(s, now)
	}
	// after keys so a key picked up inside the door counts this step
	for _, d := range w.doors {
		w.updateDoor(d)
	}
}

func (w *World) result() StepResult {
	return StepResult{
		Tick:      w.tick,
		Events:    w.events,
		Completed: w.completed,
		HeroDead:  w.hero.Dead,
	}
}

// Hero returns the player character.
func (w *World) Hero() *Hero { return w.hero }

// Level returns the level the world was built from.
func (w *World) Level() *levels.Level { return w.level }

// Difficulty returns the active difficulty.
func (w *World) Difficulty() config.Difficulty { return w.difficulty }

// Tick returns the number of steps taken.
func (w *World) Tick() int64 { return w.tick }

// Completed reports whether the level-complete edge has fired.
func (w *World) Completed() bool { return w.completed }

// Size returns the world size in pixels.
func (w *World) Size() (width, height float64) { return w.width, w.height }

// KeysRemaining returns how many keys are still in the world.
func (w *World) KeysRemaining() int { return w.keysRemaining() }

// Lookup returns a live entity by id.
func (w *World) Lookup(id EntityID) (Entity, bool) {
	e, ok := w.byID[id]
	if !ok || !e.Alive() {
		return nil, false
	}
	return e, true
}

// Entities returns every live entity in creation order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.all))
	for _, e := range w.all {
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many live entities of a kind exist.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, e := range w.all {
		if e.Alive() && e.Kind() == kind {
			n++
		}
	}
	return n
}

// Orcs returns the live orcs.
func (w *World) Orcs() []*Orc { return w.orcs }

// Flies returns the live flies.
func (w *World) Flies() []*Fly { return w.flies }

// Arrows returns the arrows in flight.
func (w *World) Arrows() []*Arrow { return w.arrows }

// Spawners returns the spawners.
func (w *World) Spawners() []*Spawner { return w.spawners }

// DrawList returns live entities in paint order: terrain, interactive
// tiles, hazards, projectiles, pickups, spawners, enemies, hero.
func (w *World) DrawList() []Entity {
	out := make([]Entity, 0, len(w.all))
	appendAll := func(list []Entity) {
		for _, e := range list {
			if e.Alive() {
				out = append(out, e)
			}
		}
	}
	appendAll(asEntities(w.terrain))
	appendAll(asEntities(w.doors))
	appendAll(asEntities(w.jumpPads))
	appendAll(asEntities(w.spikes))
	appendAll(asEntities(w.arrows))
	appendAll(asEntities(w.keys))
	appendAll(asEntities(w.coins))
	appendAll(asEntities(w.spawners))
	appendAll(asEntities(w.orcs))
	appendAll(asEntities(w.flies))
	if !w.hero.Dead {
		out = append(out, w.hero)
	}
	return out
}

func asEntities[E Entity](list []E) []Entity {
	out := make([]Entity, len(list))
	for i, e := range list {
		out[i] = e
	}
	return out
}
