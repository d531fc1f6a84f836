package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// segment holds a set of actions for a number of steps.
type segment struct {
	actions []core.Action
	steps   int
}

var actionNames = map[string]core.Action{
	"none":    core.ActionNone,
	"left":    core.ActionLeft,
	"right":   core.ActionRight,
	"up":      core.ActionUp,
	"jump":    core.ActionUp,
	"down":    core.ActionDown,
	"fire":    core.ActionFire,
	"shoot":   core.ActionFire,
	"confirm": core.ActionConfirm,
	"back":    core.ActionBack,
	"pause":   core.ActionPause,
	"restart": core.ActionRestart,
}

// parseScript reads "right:120,right+up:1,none:40". Each segment holds its
// actions for the given number of steps; its first step also counts as a
// key press.
func parseScript(s string) ([]segment, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out []segment
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		names, count, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("script segment %d %q: want actions:steps", i+1, part)
		}
		steps, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || steps < 1 {
			return nil, fmt.Errorf("script segment %d %q: steps must be a positive number", i+1, part)
		}

		seg := segment{steps: steps}
		for _, name := range strings.Split(names, "+") {
			a, ok := actionNames[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return nil, fmt.Errorf("script segment %d: unknown action %q", i+1, name)
			}
			if a != core.ActionNone {
				seg.actions = append(seg.actions, a)
			}
		}
		out = append(out, seg)
	}
	return out, nil
}

// frame builds the input of step i (0-based) within the segment.
func (s segment) frame(i int) core.InputFrame {
	if i == 0 {
		return core.Pressed(s.actions...)
	}
	return core.Held(s.actions...)
}

// frames expands a script into exactly n frames, padding with empty input.
func frames(script []segment, n int) []core.InputFrame {
	out := make([]core.InputFrame, 0, n)
	for _, seg := range script {
		for i := 0; i < seg.steps && len(out) < n; i++ {
			out = append(out, seg.frame(i))
		}
	}
	for len(out) < n {
		out = append(out, core.NewInputFrame())
	}
	return out
}
