package sprite

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ErrAssetMissing is returned when a sprite or animation state is unknown.
var ErrAssetMissing = errors.New("sprite: asset missing")

// ErrSizeMismatch is returned when a sprite's masks are not the size of the
// body that uses them.
var ErrSizeMismatch = errors.New("sprite: size mismatch")

// Sprite names used by the simulation.
const (
	Hero     = "hero"
	Orc      = "orc"
	Fly      = "fly"
	Arrow    = "arrow"
	Spawner  = "spawner"
	JumpPad  = "jump_pad"
	Spikes   = "spikes"
	Key      = "key"
	Door     = "door"
	Coin     = "coin"
	TownHero = "town_hero"
	Building = "building"
	ShopDoor = "shop_door"
	TownDoor = "town_door"
)

// DefaultState is the animation state of sprites without animations.
const DefaultState = "default"

// Terrain returns the sprite name of a platformer terrain code.
func Terrain(code string) string { return "terrain." + code }

// TownTile returns the sprite name of a town ground code (g, w, p, b).
func TownTile(code string) string { return "town." + code }

//go:embed data/sprites.yaml
var defaultSpritesYAML []byte

// Frame is one drawable frame of an animation.
type Frame struct {
	Glyph rune
	Color core.Color
	Mask  *Mask
}

// Sprite is a catalog entry.
type Sprite struct {
	Name       string
	Width      int
	Height     int
	Glyph      rune
	Color      core.Color
	Mask       *Mask
	Animations map[string][]Frame
}

// Provider hands out animation frames by sprite name and state.
type Provider interface {
	Frames(name, state string) ([]Frame, error)
}

// Catalog is the set of sprites known to the game.
type Catalog struct {
	sprites map[string]*Sprite
}

type animationDef struct {
	Frames int       `yaml:"frames"`
	Glyphs string    `yaml:"glyphs"`
	Mask   *MaskSpec `yaml:"mask"`
}

type spriteDef struct {
	Size       [2]int                  `yaml:"size"`
	Glyph      string                  `yaml:"glyph"`
	Color      string                  `yaml:"color"`
	Mask       MaskSpec                `yaml:"mask"`
	Animations map[string]animationDef `yaml:"animations"`
}

// ParseCatalog builds a catalog from YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var defs map[string]spriteDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("sprite: parse catalog: %w", err)
	}

	c := &Catalog{sprites: make(map[string]*Sprite, len(defs))}
	for name, def := range defs {
		s, err := buildSprite(name, def)
		if err != nil {
			return nil, err
		}
		c.sprites[name] = s
	}
	return c, nil
}

func buildSprite(name string, def spriteDef) (*Sprite, error) {
	w, h := def.Size[0], def.Size[1]
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("sprite: %s: size must be positive, got %dx%d", name, w, h)
	}
	glyph := '?'
	if def.Glyph != "" {
		glyph = []rune(def.Glyph)[0]
	}
	mask, err := def.Mask.Build(w, h)
	if err != nil {
		return nil, fmt.Errorf("sprite: %s: %w", name, err)
	}

	s := &Sprite{
		Name:       name,
		Width:      w,
		Height:     h,
		Glyph:      glyph,
		Color:      core.ParseColor(def.Color),
		Mask:       mask,
		Animations: make(map[string][]Frame),
	}

	if len(def.Animations) == 0 {
		s.Animations[DefaultState] = []Frame{{Glyph: glyph, Color: s.Color, Mask: mask}}
		return s, nil
	}

	for state, a := range def.Animations {
		frameMask := mask
		if a.Mask != nil {
			if frameMask, err = a.Mask.Build(w, h); err != nil {
				return nil, fmt.Errorf("sprite: %s/%s: %w", name, state, err)
			}
		}
		glyphs := []rune(a.Glyphs)
		if len(glyphs) == 0 {
			glyphs = []rune{glyph}
		}
		frames := make([]Frame, a.Frames)
		for i := range frames {
			frames[i] = Frame{Glyph: glyphs[i%len(glyphs)], Color: s.Color, Mask: frameMask}
		}
		s.Animations[state] = frames
	}
	return s, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded data is
// invalid, which is caught by the package tests.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := ParseCatalog(defaultSpritesYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Sprite returns the named sprite.
func (c *Catalog) Sprite(name string) (*Sprite, error) {
	s, ok := c.sprites[name]
	if !ok {
		return nil, fmt.Errorf("%w: sprite %q", ErrAssetMissing, name)
	}
	return s, nil
}

// Frames implements Provider.
func (c *Catalog) Frames(name, state string) ([]Frame, error) {
	s, err := c.Sprite(name)
	if err != nil {
		return nil, err
	}
	frames, ok := s.Animations[state]
	if !ok || len(frames) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrAssetMissing, name, state)
	}
	return frames, nil
}

// CheckSize verifies that every frame of name/state masks a w x h body.
// Unknown sprites pass: their bodies collide as full boxes.
func CheckSize(p Provider, name, state string, w, h float64) error {
	frames, err := p.Frames(name, state)
	if err != nil {
		return nil
	}
	mw, mh := int(math.Ceil(w)), int(math.Ceil(h))
	for _, f := range frames {
		if f.Mask == nil {
			continue
		}
		if f.Mask.Width() != mw || f.Mask.Height() != mh {
			return fmt.Errorf("%w: %s is %dx%d, body is %dx%d",
				ErrSizeMismatch, name, f.Mask.Width(), f.Mask.Height(), mw, mh)
		}
	}
	return nil
}

// Mask returns the base mask of the named sprite, or nil if it is unknown.
func (c *Catalog) Mask(name string) *Mask {
	if s, ok := c.sprites[name]; ok {
		return s.Mask
	}
	return nil
}

// Names returns all sprite names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.sprites))
	for name := range c.sprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
