// Package world holds the live simulation of one level: every entity, the
// physics and collision resolver, the per-kind controllers and the fixed
// step that runs them in order.
package world

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sprite"
)

// EntityID identifies an entity for its whole life. IDs are never reused
// within a world, so holding one is a safe weak reference.
type EntityID uint32

// Kind tags the variant of an entity.
type Kind int

const (
	KindTerrain Kind = iota
	KindJumpPad
	KindSpikes
	KindKey
	KindDoor
	KindCoin
	KindSpawner
	KindArrow
	KindOrc
	KindFly
	KindHero
)

func (k Kind) String() string {
	switch k {
	case KindTerrain:
		return "terrain"
	case KindJumpPad:
		return "jump_pad"
	case KindSpikes:
		return "spikes"
	case KindKey:
		return "key"
	case KindDoor:
		return "door"
	case KindCoin:
		return "coin"
	case KindSpawner:
		return "spawner"
	case KindArrow:
		return "arrow"
	case KindOrc:
		return "orc"
	case KindFly:
		return "fly"
	case KindHero:
		return "hero"
	default:
		return "unknown"
	}
}

// Entity is the capability every live object has.
type Entity interface {
	ID() EntityID
	Kind() Kind
	Rect() core.Rect
	Alive() bool
	Mask() *sprite.Mask
	Sprite() *sprite.Animator

	base() *Base
}

// Damageable is implemented by enemies the hero's arrows can hurt.
type Damageable interface {
	Entity
	Health() float64
	Damage(amount float64)
}

// Base carries the fields shared by every entity. Pos is the top-left corner.
type Base struct {
	id   EntityID
	kind Kind
	Pos  core.Vec2
	W, H float64
	dead bool
	anim *sprite.Animator
}

// ID returns the entity id.
func (b *Base) ID() EntityID { return b.id }

// Kind returns the entity variant.
func (b *Base) Kind() Kind { return b.kind }

// Rect returns the world-space bounding box.
func (b *Base) Rect() core.Rect { return core.RectAt(b.Pos, b.W, b.H) }

// Alive reports whether the entity is still part of the world.
func (b *Base) Alive() bool { return !b.dead }

func (b *Base) base() *Base { return b }

// Sprite returns the animator, which may be nil for invisible helpers.
func (b *Base) Sprite() *sprite.Animator { return b.anim }

// Mask returns the collision mask of the current frame. A nil mask means
// the full bounding box is solid.
func (b *Base) Mask() *sprite.Mask {
	if b.anim == nil {
		return nil
	}
	return b.anim.Mask()
}

// Body is the mutable motion state of a mobile entity.
type Body struct {
	Vel core.Vec2
	Acc core.Vec2
}

// touches is the pixel-accurate contact test between two entities.
func touches(a, b Entity) bool {
	ra, rb := a.Rect(), b.Rect()
	if !ra.Intersects(rb) {
		return false
	}
	return sprite.Collide(a.Mask(), ra, b.Mask(), rb)
}

// overlaps is the coarse bounding-box test.
func overlaps(a, b Entity) bool {
	return a.Rect().Intersects(b.Rect())
}
