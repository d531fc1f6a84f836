package core

import "time"

// Clock is a monotonic millisecond time source. The simulation samples it
// once per step and threads the value through every controller.
type Clock interface {
	NowMillis() int64
}

// TickClock derives time from the number of elapsed simulation steps, which
// keeps runs reproducible regardless of wall-clock jitter.
type TickClock struct {
	tickRate int
	ticks    int64
}

// NewTickClock creates a clock advancing 1000/tickRate ms per Advance.
func NewTickClock(tickRate int) *TickClock {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &TickClock{tickRate: tickRate}
}

// Advance moves the clock forward by one step.
func (c *TickClock) Advance() {
	c.ticks++
}

// Ticks returns the number of steps taken so far.
func (c *TickClock) Ticks() int64 {
	return c.ticks
}

// NowMillis returns the elapsed simulated time in milliseconds.
func (c *TickClock) NowMillis() int64 {
	return c.ticks * 1000 / int64(c.tickRate)
}

// Reset rewinds the clock to zero.
func (c *TickClock) Reset() {
	c.ticks = 0
}

// WallClock measures real elapsed time since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a wall clock at the current instant.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// NowMillis returns milliseconds elapsed since the clock started.
func (c *WallClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}
