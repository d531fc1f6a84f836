// Package sprite describes how entities look and which of their pixels are
// solid. The simulation never decodes images: every sprite is a size, a
// glyph for the terminal, a color and a procedurally built opacity mask.
package sprite

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Mask is a per-pixel opacity bitmap.
type Mask struct {
	w, h int
	bits []bool
}

// NewMask creates a fully transparent mask.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Mask{w: w, h: h, bits: make([]bool, w*h)}
}

// FullMask creates a fully opaque mask.
func FullMask(w, h int) *Mask {
	m := NewMask(w, h)
	for i := range m.bits {
		m.bits[i] = true
	}
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.h }

// Set marks a pixel opaque or transparent. Out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, opaque bool) {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return
	}
	m.bits[y*m.w+x] = opaque
}

// At reports whether a pixel is opaque. Out-of-bounds pixels are transparent.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	return m.bits[y*m.w+x]
}

// Count returns the number of opaque pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Overlap reports whether any opaque pixel of m coincides with an opaque
// pixel of other when other's origin sits at (dx, dy) in m's space.
func (m *Mask) Overlap(other *Mask, dx, dy int) bool {
	x0, y0 := max(0, dx), max(0, dy)
	x1, y1 := min(m.w, dx+other.w), min(m.h, dy+other.h)
	for y := y0; y < y1; y++ {
		row := m.bits[y*m.w : (y+1)*m.w]
		oy := y - dy
		for x := x0; x < x1; x++ {
			if row[x] && other.bits[oy*other.w+x-dx] {
				return true
			}
		}
	}
	return false
}

// Collide is the pixel-accurate test between two placed sprites. Positions
// are floored to whole pixels first. A nil mask stands for a fully opaque
// box the size of its rect.
func Collide(a *Mask, ra core.Rect, b *Mask, rb core.Rect) bool {
	if a == nil && b == nil {
		return ra.Intersects(rb)
	}
	if a == nil {
		a = FullMask(int(math.Ceil(ra.W)), int(math.Ceil(ra.H)))
	}
	if b == nil {
		b = FullMask(int(math.Ceil(rb.W)), int(math.Ceil(rb.H)))
	}
	ax, ay := ra.Pixel()
	bx, by := rb.Pixel()
	return a.Overlap(b, bx-ax, by-ay)
}
