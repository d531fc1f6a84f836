package town

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sprite"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

func newHub(t *testing.T, opts Options) *Hub {
	t.Helper()
	town, err := levels.BuiltinTown()
	require.NoError(t, err)
	h, err := New(town, opts)
	require.NoError(t, err)
	return h
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Press(a)
	return in
}

func run(h *Hub, n int, in core.InputFrame) []Event {
	var events []Event
	for i := 0; i < n; i++ {
		events = append(events, h.Step(in, int64(i)*25).Events...)
	}
	return events
}

func TestHeroSpawn(t *testing.T) {
	h := newHub(t, Options{})
	assert.Equal(t, core.V(128, 256), h.Hero().Pos)
	w, ht := h.Size()
	assert.Equal(t, 12*64.0, w)
	assert.Equal(t, 7*64.0, ht)
	assert.False(t, h.Done())
}

func TestGrassBlocksMovement(t *testing.T) {
	h := newHub(t, Options{})
	run(h, 120, core.Held(core.ActionDown))
	assert.InDelta(t, 6*64.0-60, h.Hero().Pos.Y, 1e-9)
	assert.Zero(t, h.Hero().Vel.Y)

	h = newHub(t, Options{})
	run(h, 120, core.Held(core.ActionLeft))
	assert.InDelta(t, 64.0, h.Hero().Pos.X, 1e-9)
	assert.Equal(t, core.ActionLeft, h.Hero().Facing)
}

func TestBlockFoundOnSubPixelOverlap(t *testing.T) {
	h := newHub(t, Options{})
	hero := h.Hero()

	// bottom edge 0.3px into the bottom grass row
	r := core.NewRect(128, 6*64-hero.H+0.3, hero.W, hero.H)
	tile := h.firstBlock(r)
	require.NotNil(t, tile)
	assert.InDelta(t, 6*64.0, tile.Rect().Top(), 1e-9)

	// right edge 0.3px into the right grass column
	r = core.NewRect(11*64-hero.W+0.3, 256, hero.W, hero.H)
	tile = h.firstBlock(r)
	require.NotNil(t, tile)
	assert.InDelta(t, 11*64.0, tile.Rect().Left(), 1e-9)

	assert.Nil(t, h.firstBlock(core.NewRect(128, 6*64-hero.H, hero.W, hero.H)))
}

func TestClosingShopKeepsHeroOutOfTerrain(t *testing.T) {
	town, err := levels.ParseTown("shop", []string{
		"g   g   g   g   g",
		"g   rD  P   D   g",
		"g   g   g   g   g",
	})
	require.NoError(t, err)
	h, err := New(town, Options{})
	require.NoError(t, err)

	h.Hero().Pos = core.V(64, 64)
	h.Shop().Open = true
	events := run(h, 1, press(core.ActionBack))
	require.Len(t, events, 1)
	assert.Equal(t, EventShopClosed, events[0].Kind)

	assert.Nil(t, h.firstBlock(h.Hero().Rect()), "hero inside terrain")
	assert.InDelta(t, 128-h.Hero().H, h.Hero().Pos.Y, 1e-9)
}

func TestFrictionStopsHero(t *testing.T) {
	h := newHub(t, Options{})
	run(h, 10, core.Held(core.ActionRight))
	require.Greater(t, h.Hero().Vel.X, 0.0)
	run(h, 200, core.NewInputFrame())
	assert.True(t, h.Hero().Vel.IsZero())
}

func TestShop(t *testing.T) {
	h := newHub(t, Options{Profile: world.HeroProfile{Hearts: 1, Coins: 20}})

	// fire away from the door does nothing
	events := run(h, 1, core.Held(core.ActionFire))
	assert.Empty(t, events)
	assert.False(t, h.Shop().Open)

	run(h, 100, core.Held(core.ActionUp))
	require.InDelta(t, 128.0, h.Hero().Pos.Y, 1e-9, "hero stops under the roof")
	assert.Equal(t, "open", h.shopDoors[0].Sprite().State())

	events = run(h, 1, core.Held(core.ActionFire))
	require.Len(t, events, 1)
	assert.Equal(t, EventShopOpened, events[0].Kind)
	require.True(t, h.Shop().Open)

	// movement is frozen while shopping
	run(h, 10, core.Held(core.ActionLeft))
	assert.InDelta(t, 128.0, h.Hero().Pos.X, 1e-9)

	events = run(h, 1, press(core.ActionConfirm))
	require.Len(t, events, 1)
	assert.Equal(t, Event{Kind: EventPurchase, Item: ItemArmour, Price: 5}, events[0])
	assert.Equal(t, world.HeroProfile{Hearts: 1, Armour: 1, Coins: 15}, h.Profile())

	run(h, 1, press(core.ActionDown))
	assert.Equal(t, ItemMedicine, h.Shop().Selected().Item)
	run(h, 1, press(core.ActionFire))
	assert.Equal(t, world.HeroProfile{Hearts: 3, Armour: 1, Coins: 5}, h.Profile())

	events = run(h, 1, press(core.ActionConfirm))
	assert.Equal(t, EventPurchaseDenied, events[0].Kind, "hearts already full")

	run(h, 1, press(core.ActionDown))
	assert.Equal(t, ItemArmour, h.Shop().Selected().Item, "cursor wraps")
	run(h, 1, press(core.ActionConfirm))
	assert.Equal(t, world.HeroProfile{Hearts: 3, Armour: 2, Coins: 0}, h.Profile())

	events = run(h, 1, press(core.ActionConfirm))
	assert.Equal(t, EventPurchaseDenied, events[0].Kind, "no coins left")

	events = run(h, 1, press(core.ActionBack))
	assert.Equal(t, EventShopClosed, events[0].Kind)
	assert.False(t, h.Shop().Open)
	assert.InDelta(t, 192.0, h.Hero().Pos.Y, 1e-9)
}

func TestShopPrices(t *testing.T) {
	tests := []struct {
		diff     config.Difficulty
		armour   int
		medicine int
	}{
		{config.DifficultyNormal, 5, 10},
		{config.DifficultyImpossible, 10, 20},
		{config.DifficultyGod, 0, 0},
	}
	for _, tc := range tests {
		t.Run(string(tc.diff), func(t *testing.T) {
			h := newHub(t, Options{Difficulty: tc.diff})
			offers := h.Shop().Offers
			require.Len(t, offers, 2)
			assert.Equal(t, tc.armour, offers[0].Price)
			assert.Equal(t, tc.medicine, offers[1].Price)
		})
	}
}

func TestArmourCapped(t *testing.T) {
	p := world.HeroProfile{Hearts: 3, Armour: 3, Coins: 100}
	hc := config.DefaultPlatformerConfig().Hero
	assert.False(t, buy(&p, Offer{Item: ItemArmour, Price: 5}, hc))
	assert.Equal(t, 100, p.Coins)
}

func TestTownDoorEndsVisit(t *testing.T) {
	h := newHub(t, Options{Profile: world.HeroProfile{Hearts: 2, Coins: 7}})

	var events []Event
	for i := 0; i < 400 && !h.Done(); i++ {
		events = append(events, h.Step(core.Held(core.ActionRight), int64(i)*25).Events...)
	}
	require.True(t, h.Done())
	assert.Len(t, events, 1)
	assert.Equal(t, EventLeft, events[0].Kind)
	assert.Equal(t, world.HeroProfile{Hearts: 2, Coins: 7}, h.Profile())

	res := h.Step(core.Held(core.ActionRight), 0)
	assert.True(t, res.Done)
	assert.Empty(t, res.Events)
}

func TestUnknownDifficulty(t *testing.T) {
	town, err := levels.BuiltinTown()
	require.NoError(t, err)
	_, err = New(town, Options{Difficulty: "nope"})
	assert.ErrorIs(t, err, config.ErrUnknownDifficulty)
}

func TestHeroSizeMustMatchSprite(t *testing.T) {
	town, err := levels.BuiltinTown()
	require.NoError(t, err)
	cfg := config.DefaultPlatformerConfig()
	cfg.Hero.Height = 48
	_, err = New(town, Options{Config: &cfg})
	assert.ErrorIs(t, err, sprite.ErrSizeMismatch)
}
