package sprite

import "fmt"

// MaskSpec describes a procedural mask in the sprite catalog.
type MaskSpec struct {
	Shape  string `yaml:"shape"`
	Amount int    `yaml:"amount"`
}

// Build renders the shape into a w x h mask.
//
//	full      every pixel opaque
//	inset     a transparent border Amount pixels wide
//	bottom    only the lowest Amount rows
//	top       only the highest Amount rows
//	teeth     a row of upward triangles Amount pixels tall, standing on the bottom edge
//	circle    the inscribed ellipse
func (s MaskSpec) Build(w, h int) (*Mask, error) {
	switch s.Shape {
	case "", "full":
		return FullMask(w, h), nil
	case "inset":
		m := NewMask(w, h)
		for y := s.Amount; y < h-s.Amount; y++ {
			for x := s.Amount; x < w-s.Amount; x++ {
				m.Set(x, y, true)
			}
		}
		return m, nil
	case "bottom":
		m := NewMask(w, h)
		for y := max(0, h-s.Amount); y < h; y++ {
			for x := 0; x < w; x++ {
				m.Set(x, y, true)
			}
		}
		return m, nil
	case "top":
		m := NewMask(w, h)
		for y := 0; y < min(h, s.Amount); y++ {
			for x := 0; x < w; x++ {
				m.Set(x, y, true)
			}
		}
		return m, nil
	case "teeth":
		return teeth(w, h, s.Amount), nil
	case "circle":
		return ellipse(w, h), nil
	default:
		return nil, fmt.Errorf("unknown mask shape %q", s.Shape)
	}
}

func teeth(w, h, toothH int) *Mask {
	m := NewMask(w, h)
	if toothH <= 0 || toothH > h {
		toothH = h
	}
	toothW := toothH
	if toothW == 0 {
		return m
	}
	base := h - toothH
	for x := 0; x < w; x++ {
		// distance from the nearest tooth center, 0 at the tip
		off := x % toothW
		d := off - toothW/2
		if d < 0 {
			d = -d
		}
		tip := base + d*2
		for y := tip; y < h; y++ {
			m.Set(x, y, true)
		}
	}
	return m
}

func ellipse(w, h int) *Mask {
	m := NewMask(w, h)
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - cx) / cx
			dy := (float64(y) + 0.5 - cy) / cy
			if dx*dx+dy*dy <= 1 {
				m.Set(x, y, true)
			}
		}
	}
	return m
}
