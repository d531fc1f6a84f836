// Package town is the top-down hub the hero visits between levels. The
// hero walks the dirt paths, can buy armour and medicine in the shop and
// leaves through the town door.
package town

import (
	"io"
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sprite"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

const tagBlock = "block"

// EventKind classifies something that happened in the hub.
type EventKind int

const (
	EventShopOpened EventKind = iota
	EventShopClosed
	EventPurchase
	EventPurchaseDenied
	EventLeft
)

func (k EventKind) String() string {
	switch k {
	case EventShopOpened:
		return "shop_opened"
	case EventShopClosed:
		return "shop_closed"
	case EventPurchase:
		return "purchase"
	case EventPurchaseDenied:
		return "purchase_denied"
	case EventLeft:
		return "left_town"
	default:
		return "unknown"
	}
}

// Event is emitted by Step. Item and Price are set for purchases.
type Event struct {
	Kind  EventKind
	Item  Item
	Price int
}

// StepResult reports what one hub step did.
type StepResult struct {
	Events []Event
	Done   bool
}

// Tile is one placed town cell.
type Tile struct {
	levels.TownTile
	rect core.Rect
	anim *sprite.Animator
}

// Rect returns the tile's world rectangle.
func (t *Tile) Rect() core.Rect { return t.rect }

// Sprite returns the tile's animator.
func (t *Tile) Sprite() *sprite.Animator { return t.anim }

// Hero is the top-down hero.
type Hero struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Acc    core.Vec2
	W, H   float64
	Facing core.Action
	anim   *sprite.Animator
}

// Rect returns the hero's world rectangle.
func (h *Hero) Rect() core.Rect { return core.RectAt(h.Pos, h.W, h.H) }

// Sprite returns the hero's animator.
func (h *Hero) Sprite() *sprite.Animator { return h.anim }

// Options configure a hub visit.
type Options struct {
	Config     *config.PlatformerConfig
	Difficulty config.Difficulty
	Logger     *log.Logger
	Sprites    sprite.Provider
	Profile    world.HeroProfile
}

// Hub is one visit to the town.
type Hub struct {
	cfg     config.PlatformerConfig
	town    *levels.Town
	logger  *log.Logger
	profile world.HeroProfile

	hero      *Hero
	tiles     []*Tile
	shopDoors []*Tile
	doors     []*Tile
	shop      *Shop
	space     *resolv.Space
	probe     *resolv.Object
	done      bool
}

// New builds a hub from a parsed town map.
func New(town *levels.Town, opts Options) (*Hub, error) {
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

	ts := cfg.Physics.TileSize
	if err := sprite.CheckSize(sprites, sprite.TownHero, "walk", cfg.Hero.Width, cfg.Hero.Height); err != nil {
		return nil, err
	}
	if err := sprite.CheckSize(sprites, sprite.TownDoor, "closed", float64(ts), float64(ts)); err != nil {
		return nil, err
	}
	h := &Hub{
		cfg:     cfg,
		town:    town,
		logger:  logger.With("town", town.ID),
		profile: opts.Profile,
		shop:    newShop(cfg.Shop, profile),
		space:   resolv.NewSpace(int(town.PixelWidth())+ts, int(town.PixelHeight())+ts, ts, ts),
	}

	for _, tt := range town.Tiles {
		t := &Tile{
			TownTile: tt,
			rect:     core.RectAt(tt.Pos.Pixel(), float64(ts), float64(ts)),
		}
		name, state := tileSprite(tt)
		t.anim = sprite.NewAnimator(sprites, name, state, h.logger)
		h.tiles = append(h.tiles, t)

		switch tt.Kind {
		case levels.TownShopDoor:
			h.shopDoors = append(h.shopDoors, t)
		case levels.TownDoor:
			h.doors = append(h.doors, t)
		}
		if tt.Blocking() {
			obj := resolv.NewObject(t.rect.X, t.rect.Y, t.rect.W, t.rect.H, tagBlock)
			obj.Data = t
			h.space.Add(obj)
		}
	}
	h.probe = resolv.NewObject(0, 0, 1, 1)
	h.space.Add(h.probe)

	hc := cfg.Hero
	h.hero = &Hero{
		Pos:    town.Hero.Pixel(),
		W:      hc.Width,
		H:      hc.Height,
		Facing: core.ActionRight,
		anim:   sprite.NewAnimator(sprites, sprite.TownHero, "walk", h.logger),
	}

	h.logger.Debug("town ready", "tiles", len(h.tiles), "coins", h.profile.Coins)
	return h, nil
}

func tileSprite(t levels.TownTile) (name, state string) {
	switch t.Kind {
	case levels.TownGrass:
		return sprite.TownTile("g"), sprite.DefaultState
	case levels.TownWater:
		return sprite.TownTile("w"), sprite.DefaultState
	case levels.TownPath:
		return sprite.TownTile("p"), sprite.DefaultState
	case levels.TownDecoration:
		return sprite.TownTile("b"), sprite.DefaultState
	case levels.TownShopDoor:
		return sprite.ShopDoor, "closed"
	case levels.TownDoor:
		return sprite.TownDoor, "closed"
	default:
		return sprite.Building, sprite.DefaultState
	}
}

// Hero returns the town hero.
func (h *Hub) Hero() *Hero { return h.hero }

// Profile returns the hero profile as modified by purchases.
func (h *Hub) Profile() world.HeroProfile { return h.profile }

// Shop returns the shop menu.
func (h *Hub) Shop() *Shop { return h.shop }

// Done reports whether the hero has left through the town door.
func (h *Hub) Done() bool { return h.done }

// Size returns the town size in pixels.
func (h *Hub) Size() (width, height float64) {
	return h.town.PixelWidth(), h.town.PixelHeight()
}

// Tiles returns every town tile in grid order.
func (h *Hub) Tiles() []*Tile { return h.tiles }

// Step advances the hub by one step.
func (h *Hub) Step(in core.InputFrame, nowMs int64) StepResult {
	var res StepResult
	if h.done {
		res.Done = true
		return res
	}

	if h.shop.Open {
		res.Events = h.shopInput(in)
	} else {
		res.Events = h.heroInput(in)
		h.move()
		h.animateHero(nowMs)
	}

	for _, t := range h.shopDoors {
		setOpen(t, t.rect.Intersects(h.hero.Rect()))
	}
	for _, t := range h.doors {
		setOpen(t, t.rect.Intersects(h.hero.Rect()))
		if !h.shop.Open && h.touches(t) {
			h.done = true
			h.logger.Info("left town", "coins", h.profile.Coins, "armour", h.profile.Armour, "hearts", h.profile.Hearts)
			res.Events = append(res.Events, Event{Kind: EventLeft})
		}
	}
	res.Done = h.done
	return res
}

func setOpen(t *Tile, open bool) {
	if open {
		t.anim.SetState("open")
	} else {
		t.anim.SetState("closed")
	}
}

// heroInput reads one direction with left > right > up > down priority.
// Fire at a shop door opens the shop.
func (h *Hub) heroInput(in core.InputFrame) []Event {
	hero := h.hero
	acc := h.cfg.Town.Acc
	hero.Acc = core.Vec2{}

	switch {
	case in.Has(core.ActionLeft):
		hero.Acc.X = -acc
		hero.Facing = core.ActionLeft
	case in.Has(core.ActionRight):
		hero.Acc.X = acc
		hero.Facing = core.ActionRight
	case in.Has(core.ActionUp):
		hero.Acc.Y = -acc
		hero.Facing = core.ActionUp
	case in.Has(core.ActionDown):
		hero.Acc.Y = acc
		hero.Facing = core.ActionDown
	case in.Has(core.ActionFire):
		if h.canShop() {
			h.shop.Open = true
			h.shop.Cursor = 0
			hero.Vel = core.Vec2{}
			h.logger.Debug("shop opened", "coins", h.profile.Coins)
			return []Event{{Kind: EventShopOpened}}
		}
	}
	return nil
}

func (h *Hub) shopInput(in core.InputFrame) []Event {
	s := h.shop
	switch {
	case in.WasPressed(core.ActionBack):
		s.Open = false
		// step the hero off the door so the shop does not reopen at once
		h.hero.Pos.Y += float64(h.cfg.Physics.TileSize)
		h.resolveY(1)
		return []Event{{Kind: EventShopClosed}}
	case in.WasPressed(core.ActionUp):
		s.move(-1)
	case in.WasPressed(core.ActionDown):
		s.move(1)
	case in.WasPressed(core.ActionConfirm), in.WasPressed(core.ActionFire):
		o := s.Selected()
		if !buy(&h.profile, o, h.cfg.Hero) {
			h.logger.Debug("purchase denied", "item", o.Item, "price", o.Price, "coins", h.profile.Coins)
			return []Event{{Kind: EventPurchaseDenied, Item: o.Item, Price: o.Price}}
		}
		h.logger.Info("purchase", "item", o.Item, "price", o.Price, "coins", h.profile.Coins)
		return []Event{{Kind: EventPurchase, Item: o.Item, Price: o.Price}}
	}
	return nil
}

// move integrates with friction on both axes, then resolves x and y
// separately against blocking tiles.
func (h *Hub) move() {
	hero := h.hero
	tc := h.cfg.Town
	snap := h.cfg.Physics.VelocitySnap

	hero.Acc = hero.Acc.Add(hero.Vel.Scale(tc.Friction))
	hero.Vel = hero.Vel.Add(hero.Acc)
	if math.Abs(hero.Vel.X) < snap {
		hero.Vel.X = 0
	}
	if math.Abs(hero.Vel.Y) < snap {
		hero.Vel.Y = 0
	}
	step := hero.Vel.Add(hero.Acc.Scale(0.5))

	hero.Pos.X += step.X
	if t := h.firstBlock(hero.Rect()); t != nil {
		if hero.Vel.X > 0 {
			hero.Pos.X = t.rect.Left() - hero.W
		} else if hero.Vel.X < 0 {
			hero.Pos.X = t.rect.Right()
		}
		hero.Vel.X = 0
	}

	hero.Pos.Y += step.Y
	h.resolveY(hero.Vel.Y)
}

// resolveY pushes the hero out of the first blocking tile after a vertical
// move in direction dy.
func (h *Hub) resolveY(dy float64) {
	hero := h.hero
	if t := h.firstBlock(hero.Rect()); t != nil {
		if dy > 0 {
			hero.Pos.Y = t.rect.Top() - hero.H
		} else if dy < 0 {
			hero.Pos.Y = t.rect.Bottom()
		}
		hero.Vel.Y = 0
	}
}

// firstBlock returns the first blocking tile in grid order overlapping r.
func (h *Hub) firstBlock(r core.Rect) *Tile {
	// one extra pixel so sub-pixel overlaps reach the next cell
	h.probe.X, h.probe.Y, h.probe.W, h.probe.H = r.X, r.Y, r.W+1, r.H+1
	h.probe.Update()
	c := h.probe.Check(0, 0, tagBlock)
	if c == nil {
		return nil
	}
	var hits []*Tile
	for _, obj := range c.Objects {
		if t, ok := obj.Data.(*Tile); ok && t.rect.Intersects(r) {
			hits = append(hits, t)
		}
	}
	if len(hits) == 0 {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i].Pos, hits[j].Pos
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	return hits[0]
}

func (h *Hub) animateHero(nowMs int64) {
	if h.hero.Vel.IsZero() {
		return
	}
	h.hero.anim.Tick(nowMs, h.cfg.Town.FrameMs)
}

// touches is the mask test between the hero and a tile.
func (h *Hub) touches(t *Tile) bool {
	hr := h.hero.Rect()
	if !hr.Intersects(t.rect) {
		return false
	}
	return sprite.Collide(h.hero.anim.Mask(), hr, t.anim.Mask(), t.rect)
}

func (h *Hub) canShop() bool {
	for _, t := range h.shopDoors {
		if h.touches(t) {
			return true
		}
	}
	return false
}
