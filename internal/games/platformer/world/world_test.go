package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sprite"
)

type stepper struct {
	w     *World
	clock *core.TickClock
}

func newStepper(t *testing.T, rows []string, opts Options) *stepper {
	t.Helper()
	lv, err := levels.Parse("test", "test", rows)
	require.NoError(t, err)
	w, err := New(lv, opts)
	require.NoError(t, err)
	return &stepper{w: w, clock: core.NewTickClock(core.DefaultTickRate)}
}

func (s *stepper) step(in core.InputFrame) StepResult {
	s.clock.Advance()
	return s.w.Step(in, s.clock.NowMillis())
}

// run steps n times and returns every event emitted.
func (s *stepper) run(n int, in core.InputFrame) []Event {
	var events []Event
	for i := 0; i < n; i++ {
		events = append(events, s.step(in).Events...)
	}
	return events
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewPopulatesEntities(t *testing.T) {
	s := newStepper(t, []string{
		". . . . . .",
		"P c K D s j",
		"g g g g g g",
	}, Options{})
	w := s.w

	assert.Equal(t, 6, w.Count(KindTerrain))
	assert.Equal(t, 1, w.Count(KindCoin))
	assert.Equal(t, 1, w.Count(KindKey))
	assert.Equal(t, 1, w.Count(KindDoor))
	assert.Equal(t, 1, w.Count(KindSpikes))
	assert.Equal(t, 1, w.Count(KindJumpPad))
	assert.Equal(t, 1, w.Count(KindHero))
	assert.Equal(t, 1, w.KeysRemaining())

	width, height := w.Size()
	assert.Equal(t, 6*64.0, width)
	assert.Equal(t, 3*64.0, height)

	h := w.Hero()
	assert.Equal(t, 3, h.Hearts)
	assert.Equal(t, 0, h.Armour)
	assert.Equal(t, 1.0, h.Multiplier)
	assert.InDelta(t, 128.0, h.Rect().Bottom(), 1e-9, "hero spawns standing on its cell's floor line")
}

func TestNewRejectsUnknownDifficulty(t *testing.T) {
	lv, err := levels.Parse("x", "x", []string{"P", "g"})
	require.NoError(t, err)
	_, err = New(lv, Options{Difficulty: "nightmare"})
	assert.ErrorIs(t, err, config.ErrUnknownDifficulty)
}

func TestNewRejectsBodySizeMismatch(t *testing.T) {
	lv, err := levels.Parse("x", "x", []string{"P", "g"})
	require.NoError(t, err)

	cfg := config.DefaultPlatformerConfig()
	cfg.Hero.Width = 50
	_, err = New(lv, Options{Config: &cfg})
	assert.ErrorIs(t, err, sprite.ErrSizeMismatch)

	cfg = config.DefaultPlatformerConfig()
	cfg.Pickups.CoinSize = 20
	_, err = New(lv, Options{Config: &cfg})
	assert.ErrorIs(t, err, sprite.ErrSizeMismatch)
}

func TestNewCarriesHeroProfile(t *testing.T) {
	s := newStepper(t, []string{"P", "g"}, Options{Profile: &HeroProfile{Hearts: 2, Armour: 7, Coins: 40}})
	h := s.w.Hero()
	assert.Equal(t, 2, h.Hearts)
	assert.Equal(t, 3, h.Armour, "armour is clamped to the maximum")
	assert.Equal(t, 40, h.Coins)
	assert.Equal(t, HeroProfile{Hearts: 2, Armour: 3, Coins: 40}, h.Profile())
}

// Scenario A
func TestHeroSettlesOnGround(t *testing.T) {
	s := newStepper(t, []string{
		". P .",
		"g g g",
	}, Options{})

	s.run(10, core.NewInputFrame())

	h := s.w.Hero()
	assert.Zero(t, h.Vel.Y)
	assert.InDelta(t, 64.0+10, h.Rect().Bottom(), 1e-9)

	_, standing := s.w.standingOn(&h.Base)
	assert.True(t, standing)
}

// P2
func TestGravitySnapFromAnyHeight(t *testing.T) {
	for _, rows := range [][]string{
		{"P", "g"},
		{"P", ".", "g"},
		{"P", ".", ".", "g"},
		{"P", ".", ".", ".", ".", "g"},
	} {
		s := newStepper(t, rows, Options{})
		top := float64((len(rows) - 1) * 64)

		landed := -1
		for i := 0; i < 200; i++ {
			s.step(core.NewInputFrame())
			if s.w.Hero().Vel.Y == 0 {
				landed = i
				break
			}
		}
		require.NotEqual(t, -1, landed, "hero never landed from %d rows", len(rows))
		assert.InDelta(t, top+10, s.w.Hero().Rect().Bottom(), 1e-9)

		// stays put afterwards
		s.run(20, core.NewInputFrame())
		assert.Zero(t, s.w.Hero().Vel.Y)
		assert.InDelta(t, top+10, s.w.Hero().Rect().Bottom(), 1e-9)
	}
}

// P1
func TestFrictionConvergesWithoutOscillation(t *testing.T) {
	s := newStepper(t, []string{"P"}, Options{})
	w := s.w
	friction := core.V(w.cfg.Hero.Friction, 0)

	for _, v0 := range []float64{0.19, 0.5, 1, 4, 25, -0.5, -4, -25} {
		b := &Base{Pos: core.V(0, 0), W: 10, H: 10}
		m := &Body{Vel: core.V(v0, 0)}
		steps := 0
		for m.Vel.X != 0 {
			m.Acc = core.Vec2{}
			w.integrate(b, m, friction)
			require.False(t, m.Vel.X*v0 < 0, "velocity changed sign from %v", v0)
			steps++
			require.Less(t, steps, 500, "friction did not converge from %v", v0)
		}
	}
}

func TestHeroRunsAndStops(t *testing.T) {
	s := newStepper(t, []string{
		"P . . . . . . . . . . . . . . . . . . .",
		"g g g g g g g g g g g g g g g g g g g g",
	}, Options{})
	s.run(10, core.NewInputFrame())

	s.run(30, core.Held(core.ActionRight))
	h := s.w.Hero()
	assert.Greater(t, h.Vel.X, 0.0)
	assert.Equal(t, HeroRunning, h.State)
	assert.Equal(t, 1.0, h.Facing)

	prev := h.Vel.X
	for i := 0; i < 200 && h.Vel.X != 0; i++ {
		s.step(core.NewInputFrame())
		assert.LessOrEqual(t, h.Vel.X, prev)
		assert.GreaterOrEqual(t, h.Vel.X, 0.0)
		prev = h.Vel.X
	}
	assert.Zero(t, h.Vel.X)
	s.step(core.NewInputFrame())
	assert.Equal(t, HeroIdle, h.State)
}

func TestHeroBlockedByWall(t *testing.T) {
	s := newStepper(t, []string{
		"P . . g",
		"g g g g",
	}, Options{})
	h := s.w.Hero()
	for i := 0; i < 150; i++ {
		s.step(core.Held(core.ActionRight))
		require.LessOrEqual(t, h.Rect().Right(), 3*64.0, "step %d", i)
	}
	assert.InDelta(t, 74.0, h.Rect().Bottom(), 1e-9, "hero stays on the floor")
}

func TestIndexFindsSubPixelOverlap(t *testing.T) {
	s := newStepper(t, []string{
		"P . . g",
		"g g g g",
	}, Options{})
	ix := s.w.index

	// right edge 0.3px into the wall column
	hits := ix.query(core.NewRect(3*64-44+0.3, 0, 44, 60))
	require.Len(t, hits, 1)
	assert.InDelta(t, 3*64.0, hits[0].Rect().Left(), 1e-9)

	// bottom edge 0.3px into the floor row
	hits = ix.query(core.NewRect(0, 64-60+0.3, 44, 60))
	require.NotEmpty(t, hits)
	assert.InDelta(t, 64.0, hits[0].Rect().Top(), 1e-9)

	// touching is not overlapping
	assert.Empty(t, ix.query(core.NewRect(3*64-44, 0, 44, 60)))
}

func TestJump(t *testing.T) {
	s := newStepper(t, []string{
		". . .",
		". P .",
		"g g g",
	}, Options{})
	s.run(10, core.NewInputFrame())
	require.InDelta(t, 138.0, s.w.Hero().Rect().Bottom(), 1e-9)

	s.step(core.Held(core.ActionUp))
	h := s.w.Hero()
	assert.InDelta(t, -7+0.2, h.Vel.Y, 1e-9)

	// no double jump while airborne
	s.step(core.Held(core.ActionUp))
	assert.Greater(t, h.Vel.Y, -7+0.2)

	// comes back down onto the same floor
	s.run(120, core.NewInputFrame())
	assert.Zero(t, h.Vel.Y)
	assert.InDelta(t, 138.0, h.Rect().Bottom(), 1e-9)
}

func TestJumpPad(t *testing.T) {
	s := newStepper(t, []string{
		". . . .",
		". . . .",
		"P . j .",
		"g g g g",
	}, Options{})
	w := s.w
	pad := w.jumpPads[0]
	w.hero.Pos.X = pad.Pos.X + 10
	s.run(10, core.NewInputFrame())

	events := s.run(1, core.Held(core.ActionUp))
	assert.InDelta(t, -10.2+0.2, w.hero.Vel.Y, 1e-9)
	assert.True(t, pad.Active)
	assert.Equal(t, "active", pad.Sprite().State())
	assert.Equal(t, 1, countEvents(events, EventJumpPad))

	// 5.5 s at 40 tps
	s.run(225, core.NewInputFrame())
	assert.False(t, pad.Active)
	assert.Equal(t, "idle", pad.Sprite().State())
}

func TestHeroDiesFallingOutOfMap(t *testing.T) {
	s := newStepper(t, []string{
		"P .",
		". .",
	}, Options{})
	events := s.run(100, core.NewInputFrame())
	assert.True(t, s.w.Hero().Dead)
	assert.Equal(t, 1, countEvents(events, EventHeroDied))

	res := s.step(core.NewInputFrame())
	assert.True(t, res.HeroDead)
	assert.True(t, res.Done())
	assert.Empty(t, res.Events, "a finished run does not step")
}

// Scenario B
func TestOrcHitUsesArmourFirst(t *testing.T) {
	tests := []struct {
		name       string
		armour     int
		wantHearts int
		wantArmour int
	}{
		{"no armour", 0, 2, 0},
		{"armour absorbs", 1, 3, 0},
		{"full armour", 3, 3, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStepper(t, []string{". P . O", "g g g g"}, Options{})
			w := s.w
			w.hero.Armour = tc.armour
			o := w.orcs[0]
			o.Pos = w.hero.Pos

			w.orcAttack(o)
			assert.Equal(t, tc.wantHearts, w.hero.Hearts)
			assert.Equal(t, tc.wantArmour, w.hero.Armour)

			// cooldown blocks an immediate second hit
			w.orcAttack(o)
			assert.Equal(t, tc.wantHearts, w.hero.Hearts)
			assert.Equal(t, tc.wantArmour, w.hero.Armour)
		})
	}
}

func TestHitNeverGoesNegative(t *testing.T) {
	h := &Hero{Hearts: 1, Armour: 1}
	h.Hit(3)
	assert.Equal(t, 0, h.Armour)
	assert.Equal(t, 1, h.Hearts, "armour and hearts are never both reduced by one hit")
	h.Hit(3)
	assert.Equal(t, 0, h.Hearts)
}

func TestOrcChasesAndAttacks(t *testing.T) {
	s := newStepper(t, []string{
		". P . . O .",
		"g g g g g g",
	}, Options{})

	hurt := false
	for i := 0; i < 400 && !hurt; i++ {
		hurt = countEvents(s.step(core.NewInputFrame()).Events, EventHeroHurt) > 0
	}
	require.True(t, hurt)
	assert.Equal(t, 2, s.w.Hero().Hearts)
	assert.True(t, s.w.orcs[0].Chasing)
}

func TestOrcPatrolTurnsAtLedge(t *testing.T) {
	s := newStepper(t, []string{
		". . O . . . .",
		". g g g . . .",
		". . . . . . P",
		"g g g g g g g",
	}, Options{})
	o := s.w.orcs[0]

	minX, maxX := o.Rect().CenterX(), o.Rect().CenterX()
	for i := 0; i < 600; i++ {
		s.step(core.NewInputFrame())
		require.False(t, o.Chasing)
		minX = min(minX, o.Rect().CenterX())
		maxX = max(maxX, o.Rect().CenterX())
	}
	assert.InDelta(t, 64.0+10, o.Rect().Bottom(), 1e-9, "orc never walks off its platform")
	assert.GreaterOrEqual(t, o.Rect().Left(), 64.0-2)
	assert.LessOrEqual(t, o.Rect().Right(), 4*64.0+2)
	assert.Greater(t, maxX-minX, 64.0, "orc patrols back and forth")
}

func TestArrowKillsOrc(t *testing.T) {
	s := newStepper(t, []string{
		". P . . . O .",
		"g g g g g g g",
	}, Options{})
	in := core.NewInputFrame()
	in.Press(core.ActionFire)
	events := s.run(1, in)
	require.Equal(t, 1, countEvents(events, EventArrowFired))
	events = append(events, s.run(1, core.NewInputFrame())...)
	assert.Equal(t, HeroShooting, s.w.hero.State)

	events = append(events, s.run(120, core.NewInputFrame())...)
	assert.Equal(t, 1, countEvents(events, EventEnemyKilled))
	assert.Empty(t, s.w.Orcs())
	assert.Empty(t, s.w.Arrows())
	assert.Equal(t, 3, s.w.hero.Hearts)
}

func TestDeadEnemiesNeverAttack(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		enemy func(w *World) Damageable
	}{
		{"orc", []string{"P . O", "g g g"}, func(w *World) Damageable { return w.orcs[0] }},
		{"fly", []string{"P . F", "g g g"}, func(w *World) Damageable { return w.flies[0] }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStepper(t, tc.rows, Options{})
			e := tc.enemy(s.w)
			e.base().Pos = s.w.hero.Pos
			require.True(t, touches(s.w.hero, e))

			e.Damage(e.Health())
			events := s.run(1, core.NewInputFrame())
			assert.Equal(t, 0, countEvents(events, EventHeroHurt))
			assert.Equal(t, 1, countEvents(events, EventEnemyKilled))
			assert.Equal(t, 3, s.w.hero.Hearts)
			assert.Empty(t, s.w.Orcs())
			assert.Empty(t, s.w.Flies())
		})
	}
}

func TestArrowKillStopsAttackSameStep(t *testing.T) {
	s := newStepper(t, []string{"P . O", "g g g"}, Options{})
	w := s.w
	o := w.orcs[0]
	o.Pos = w.hero.Pos
	o.HP = w.cfg.Arrow.Damage
	w.spawnArrow(o.Rect().Center(), 1)

	events := s.run(1, core.NewInputFrame())
	assert.Equal(t, 1, countEvents(events, EventArrowHit))
	assert.Equal(t, 1, countEvents(events, EventEnemyKilled))
	assert.Equal(t, 0, countEvents(events, EventHeroHurt))
	assert.Equal(t, 3, w.hero.Hearts)
	assert.Empty(t, w.Orcs())
}

// P5
func TestArrowCap(t *testing.T) {
	s := newStepper(t, []string{
		". P . . . . . . . . . .",
		"g g g g g g g g g g g g",
	}, Options{})
	s.run(10, core.NewInputFrame())

	fire := core.Held(core.ActionFire)
	for i := 0; i < 20; i++ {
		s.w.hero.ArrowTimer = 0
		s.step(fire)
		assert.LessOrEqual(t, s.w.liveArrows(), s.w.cfg.Hero.MaxArrows)
	}
	assert.Equal(t, 5, len(s.w.Arrows()))
}

func TestArrowCooldown(t *testing.T) {
	s := newStepper(t, []string{
		". P . . . . . . . . . .",
		"g g g g g g g g g g g g",
	}, Options{})
	events := s.run(60, core.Held(core.ActionFire))
	assert.Equal(t, 2, countEvents(events, EventArrowFired), "one shot, then one more after the cooldown")
}

// P5
func TestArrowRemovedAfterWallHit(t *testing.T) {
	s := newStepper(t, []string{
		". P . . g",
		"g g g g g",
	}, Options{})
	s.run(10, core.NewInputFrame())

	in := core.NewInputFrame()
	in.Press(core.ActionFire)
	s.step(in)
	require.Len(t, s.w.Arrows(), 1)
	a := s.w.Arrows()[0]

	for i := 0; i < 200 && !a.Hit; i++ {
		s.step(core.NewInputFrame())
	}
	require.True(t, a.Hit)
	assert.InDelta(t, 4*64.0-10, a.Rect().CenterX(), 1e-9)
	assert.Zero(t, a.Vel.X)

	s.step(core.NewInputFrame())
	assert.Empty(t, s.w.Arrows())
	assert.False(t, a.Alive())
	_, ok := s.w.Lookup(a.ID())
	assert.False(t, ok)
}

// P5
func TestArrowRemovedOffMap(t *testing.T) {
	s := newStepper(t, []string{
		"P . .",
		"g g g",
	}, Options{})
	s.run(10, core.NewInputFrame())
	s.w.hero.Facing = -1

	in := core.NewInputFrame()
	in.Press(core.ActionFire)
	s.step(in)
	require.Len(t, s.w.Arrows(), 1)
	assert.Equal(t, -1.0, s.w.Arrows()[0].Dir)

	s.run(60, core.NewInputFrame())
	assert.Empty(t, s.w.Arrows())
}

func TestFlyChasesHero(t *testing.T) {
	s := newStepper(t, []string{
		". P . . F",
		"g g g g g",
	}, Options{Seed: 3})
	f := s.w.flies[0]
	before := f.Rect().CenterX()

	s.step(core.NewInputFrame())
	assert.True(t, f.Chasing)
	assert.Less(t, f.Rect().CenterX(), before)
	assert.Equal(t, -1.0, f.Facing)
}

func TestFlyBobsWhenIdle(t *testing.T) {
	s := newStepper(t, []string{
		"F . . . . . . . . . . . . .",
		". . . . . . . . . . . . . .",
		". . . . . . . . . . . . . .",
		". . . . . . . . . . . . . .",
		". . . . . . . . . . . . . .",
		". . . . . . . . . . . . . P",
		"g g g g g g g g g g g g g g",
	}, Options{Seed: 1})
	f := s.w.flies[0]
	for i := 0; i < 100; i++ {
		s.step(core.NewInputFrame())
		require.False(t, f.Chasing)
		assert.LessOrEqual(t, f.Vel.Y, s.w.cfg.Fly.BobLimit+s.w.cfg.Fly.BobAcc+1e-9)
		assert.GreaterOrEqual(t, f.Vel.Y, -s.w.cfg.Fly.BobLimit-s.w.cfg.Fly.BobAcc-1e-9)
	}
}

// P3 and Scenario C
func TestDoorWithoutKeysCompletesOnFirstOverlap(t *testing.T) {
	s := newStepper(t, []string{
		"P . D",
		"g g g",
	}, Options{})
	w := s.w
	s.run(10, core.NewInputFrame())
	require.False(t, w.Completed())

	d := w.doors[0]
	w.hero.Pos.X = d.Pos.X + 10
	res := s.step(core.NewInputFrame())
	assert.True(t, res.Completed)
	assert.True(t, d.Open)
	assert.Equal(t, "open", d.Sprite().State())
	assert.Equal(t, 1, countEvents(res.Events, EventLevelComplete))

	events := s.run(10, core.NewInputFrame())
	assert.Zero(t, countEvents(events, EventLevelComplete))
}

// P3
func TestDoorNeedsEveryKey(t *testing.T) {
	s := newStepper(t, []string{
		"P . D . K",
		"g g g g g",
	}, Options{})
	w := s.w
	s.run(10, core.NewInputFrame())

	d := w.doors[0]
	w.hero.Pos.X = d.Pos.X + 10
	events := s.run(5, core.NewInputFrame())
	assert.False(t, w.Completed(), "door stays shut while a key lies in the world")
	assert.False(t, d.Open)
	assert.Zero(t, countEvents(events, EventLevelComplete))

	w.hero.Pos.X = w.keys[0].Pos.X
	events = s.run(1, core.NewInputFrame())
	assert.Equal(t, 1, countEvents(events, EventKeyCollected))
	assert.Len(t, w.hero.Keys, 1)
	assert.Zero(t, w.KeysRemaining())

	w.hero.Pos.X = d.Pos.X + 10
	events = s.run(5, core.NewInputFrame())
	assert.True(t, w.Completed())
	assert.Equal(t, 1, countEvents(events, EventLevelComplete))
}

func TestWalkToDoorThroughKey(t *testing.T) {
	s := newStepper(t, []string{
		"P . K . D",
		"g g g g g",
	}, Options{})
	var events []Event
	for i := 0; i < 400; i++ {
		res := s.step(core.Held(core.ActionRight))
		events = append(events, res.Events...)
		if res.Done() {
			break
		}
	}
	assert.True(t, s.w.Completed())
	assert.Equal(t, 1, countEvents(events, EventKeyCollected))
	assert.Equal(t, 1, countEvents(events, EventLevelComplete))
}

func TestSpikesHurtOncePerEntry(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	p := cfg.Difficulties[config.DifficultyNormal]
	p.SpikeDamage = 1
	cfg.Difficulties[config.DifficultyNormal] = p

	s := newStepper(t, []string{
		"P . s .",
		"g g g g",
	}, Options{Config: &cfg})
	w := s.w
	w.hero.Armour = 3
	s.run(10, core.NewInputFrame())

	spikeX := w.spikes[0].Pos.X + 10
	w.hero.Pos.X = spikeX
	events := s.run(5, core.NewInputFrame())
	assert.Equal(t, 2, w.hero.Hearts)
	assert.Equal(t, 3, w.hero.Armour, "spikes ignore armour")
	assert.Equal(t, 1, countEvents(events, EventSpikeHit))

	w.hero.Pos.X = 0
	s.step(core.NewInputFrame())
	w.hero.Pos.X = spikeX
	s.step(core.NewInputFrame())
	assert.Equal(t, 1, w.hero.Hearts)
}

func TestCoinPickup(t *testing.T) {
	s := newStepper(t, []string{
		"P c .",
		"g g g",
	}, Options{})
	w := s.w
	s.run(10, core.NewInputFrame())
	w.hero.Pos.X = w.coins[0].Pos.X - 5
	events := s.run(1, core.NewInputFrame())
	assert.Equal(t, 1, countEvents(events, EventCoinCollected))
	assert.Equal(t, 1, w.hero.Coins)
	assert.Zero(t, w.Count(KindCoin))
}

func TestCoinsCapped(t *testing.T) {
	s := newStepper(t, []string{"P c", "g g"}, Options{Difficulty: config.DifficultyGod})
	w := s.w
	w.hero.Coins = 998
	c := w.coins[0]
	w.hero.Pos = c.Pos
	w.updateCoin(c, 0)
	assert.Equal(t, 999, w.hero.Coins)
}

// Scenario D
func TestImpossibleCoinsPayAboutHalf(t *testing.T) {
	s := newStepper(t, []string{"P .", "g g"}, Options{Difficulty: config.DifficultyImpossible, Seed: 42})
	w := s.w

	collected := 0
	for i := 0; i < 1000; i++ {
		c := &Coin{Base: Base{kind: KindCoin, Pos: w.hero.Pos, W: 30, H: 30}}
		c.anim = w.animator(KindCoin)
		w.add(c)
		w.events = nil
		w.updateCoin(c, 0)
		require.False(t, c.Alive())
		for _, e := range w.events {
			if e.Kind == EventCoinCollected {
				collected += e.Value
			}
		}
		w.compact()
	}
	assert.InDelta(t, 500, collected, 60)
	assert.Equal(t, collected, w.hero.Coins)
}

// P4
func TestSpawnerCap(t *testing.T) {
	for _, tc := range []struct {
		diff config.Difficulty
		cap  int
	}{
		{config.DifficultyNormal, 2},
		{config.DifficultyGod, 2},
		{config.DifficultyImpossible, 4},
	} {
		t.Run(string(tc.diff), func(t *testing.T) {
			s := newStepper(t, []string{
				". . . . . . . . S",
				"P . . . . . . . .",
				"g g g g g g g g g",
			}, Options{Difficulty: tc.diff})
			w := s.w
			sp := w.spawners[0]

			now := int64(0)
			for i := 0; i < 10; i++ {
				now += 13000
				w.spawnTick(now)
				w.compact()
				require.LessOrEqual(t, len(sp.Orcs), tc.cap)
			}
			assert.Len(t, sp.Orcs, tc.cap)
			assert.Equal(t, tc.cap, w.Count(KindOrc))
			assert.True(t, sp.Spawning)

			// a death frees a slot
			w.kill(w.orcs[0])
			w.compact()
			now += 13000
			w.spawnTick(now)
			assert.Equal(t, tc.cap, w.aliveOrcs(sp))
		})
	}
}

func TestSpawnerTimer(t *testing.T) {
	s := newStepper(t, []string{
		". . . . . . S",
		"P . . . . . .",
		"g g g g g g g",
	}, Options{})
	sp := s.w.spawners[0]

	// nothing before the base interval
	events := s.run(390, core.NewInputFrame())
	assert.Zero(t, countEvents(events, EventOrcSpawned))
	assert.Empty(t, sp.Orcs)

	// base 10 s plus at most 2 s of jitter
	events = s.run(100, core.NewInputFrame())
	assert.Equal(t, 1, countEvents(events, EventOrcSpawned))
	assert.Equal(t, "open", sp.Sprite().State())
	for _, o := range s.w.Orcs() {
		assert.Equal(t, sp.ID(), o.Spawner)
	}
}

func TestRemove(t *testing.T) {
	s := newStepper(t, []string{"P c .", "g g g"}, Options{})
	w := s.w
	c := w.coins[0]

	require.NoError(t, w.Remove(c.ID()))
	assert.Zero(t, w.Count(KindCoin))
	assert.Empty(t, w.coins)

	err := w.Remove(c.ID())
	assert.ErrorIs(t, err, ErrInvariantViolation)
	require.NotEmpty(t, w.events)
	assert.Equal(t, EventInvariantViolation, w.events[len(w.events)-1].Kind)

	assert.ErrorIs(t, w.Remove(9999), ErrInvariantViolation)
}

func TestDrawListOrder(t *testing.T) {
	s := newStepper(t, []string{
		"F . . . . . . . .",
		"P c K D s j S O .",
		"g g g g g g g g g",
	}, Options{})
	w := s.w
	w.spawnArrow(w.hero.Rect().Center(), 1)

	rank := map[Kind]int{
		KindTerrain: 0,
		KindDoor:    1, KindJumpPad: 1,
		KindSpikes:  2,
		KindArrow:   3,
		KindKey:     4, KindCoin: 4,
		KindSpawner: 5,
		KindOrc:     6, KindFly: 6,
		KindHero:    7,
	}
	list := w.DrawList()
	require.Len(t, list, len(w.Entities()))
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, rank[list[i-1].Kind()], rank[list[i].Kind()],
			"%s drawn before %s", list[i-1].Kind(), list[i].Kind())
	}
	assert.Equal(t, KindHero, list[len(list)-1].Kind())
}

func TestDeterminism(t *testing.T) {
	all, err := levels.Builtin()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	script := func(i int) core.InputFrame {
		in := core.NewInputFrame()
		if i%90 < 60 {
			in.Set(core.ActionRight)
		} else {
			in.Set(core.ActionLeft)
		}
		if i%37 == 0 {
			in.Set(core.ActionUp)
		}
		if i%25 == 0 {
			in.Set(core.ActionFire)
		}
		return in
	}

	for _, lv := range all {
		t.Run(lv.ID, func(t *testing.T) {
			hashes := make([]uint64, 2)
			for run := range hashes {
				w, err := New(lv, Options{Seed: 12345, Difficulty: config.DifficultyImpossible})
				require.NoError(t, err)
				clock := core.NewTickClock(core.DefaultTickRate)
				for i := 0; i < 800; i++ {
					clock.Advance()
					w.Step(script(i), clock.NowMillis())
				}
				snap := w.Snapshot()
				hashes[run] = snap.Hash()
			}
			assert.Equal(t, hashes[0], hashes[1])
		})
	}
}

func TestSnapshot(t *testing.T) {
	s := newStepper(t, []string{". P . O", "g g g g"}, Options{})
	s.run(5, core.NewInputFrame())

	snap := s.w.Snapshot()
	assert.Equal(t, int64(5), snap.Tick)
	assert.Equal(t, 3, snap.Hearts)
	require.Len(t, snap.Entities, 1)
	assert.Equal(t, KindOrc, snap.Entities[0].Kind)
	assert.Equal(t, 100.0, snap.Entities[0].Extra)

	other := snap
	other.Coins++
	assert.NotEqual(t, snap.Hash(), other.Hash())
}
