package sprite

import (
	"io"

	"github.com/charmbracelet/log"
)

// Animator sequences the frames of one sprite. Frame advancement is driven by
// the millisecond clock passed to Tick, never by wall time.
type Animator struct {
	provider Provider
	name     string
	state    string
	frames   []Frame
	index    int
	lastMs   int64
	current  Frame
	valid    bool
	logger   *log.Logger
	missing  map[string]bool
}

// NewAnimator creates an animator for the named sprite starting in state.
// A nil logger discards warnings.
func NewAnimator(p Provider, name, state string, logger *log.Logger) *Animator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &Animator{
		provider: p,
		name:     name,
		logger:   logger,
		missing:  make(map[string]bool),
	}
	a.SetState(state)
	return a
}

// Name returns the sprite name.
func (a *Animator) Name() string { return a.name }

// State returns the current animation state.
func (a *Animator) State() string { return a.state }

// Index returns the current frame index.
func (a *Animator) Index() int { return a.index }

// SetState switches animation. Switching to the current state is a no-op;
// any other switch rewinds to frame 0.
func (a *Animator) SetState(state string) {
	if state == a.state && a.frames != nil {
		return
	}
	a.state = state
	a.index = 0
	frames, err := a.provider.Frames(a.name, state)
	if err != nil {
		if !a.missing[state] {
			a.missing[state] = true
			a.logger.Warn("animation frames missing, keeping last frame", "sprite", a.name, "state", state, "err", err)
		}
		a.frames = nil
		return
	}
	a.frames = frames
	a.current = frames[0]
	a.valid = true
}

// Tick advances one frame if more than periodMs elapsed since the previous
// advance. It reports whether the frame changed.
func (a *Animator) Tick(nowMs, periodMs int64) bool {
	if nowMs-a.lastMs <= periodMs {
		return false
	}
	a.lastMs = nowMs
	if len(a.frames) == 0 {
		return false
	}
	a.index = (a.index + 1) % len(a.frames)
	a.current = a.frames[a.index]
	return true
}

// Len returns the number of frames in the current state.
func (a *Animator) Len() int { return len(a.frames) }

// Frame returns the current frame. When the current state has no frames the
// last valid frame is returned; ok is false only if no frame was ever valid.
func (a *Animator) Frame() (f Frame, ok bool) {
	return a.current, a.valid
}

// Mask returns the mask of the current frame, or nil.
func (a *Animator) Mask() *Mask {
	if !a.valid {
		return nil
	}
	return a.current.Mask
}
