package main

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestParseScript(t *testing.T) {
	script, err := parseScript("right:3, right+up:1,none:2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(script) != 3 {
		t.Fatalf("got %d segments, want 3", len(script))
	}
	if script[0].steps != 3 || len(script[0].actions) != 1 || script[0].actions[0] != core.ActionRight {
		t.Errorf("segment 0 = %+v", script[0])
	}
	if len(script[1].actions) != 2 {
		t.Errorf("segment 1 = %+v", script[1])
	}
	if len(script[2].actions) != 0 {
		t.Errorf("none should hold nothing, got %+v", script[2])
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []string{
		"right",
		"right:0",
		"right:x",
		"sideways:3",
	}
	for _, s := range tests {
		if _, err := parseScript(s); err == nil {
			t.Errorf("parseScript(%q) should fail", s)
		}
	}
}

func TestFrames(t *testing.T) {
	script, err := parseScript("restart:1,right:2")
	if err != nil {
		t.Fatal(err)
	}
	fs := frames(script, 5)
	if len(fs) != 5 {
		t.Fatalf("got %d frames, want 5", len(fs))
	}
	if !fs[0].WasPressed(core.ActionRestart) {
		t.Error("frame 0 should press restart")
	}
	if !fs[1].WasPressed(core.ActionRight) || !fs[1].Has(core.ActionRight) {
		t.Error("frame 1 should press and hold right")
	}
	if fs[2].WasPressed(core.ActionRight) || !fs[2].Has(core.ActionRight) {
		t.Error("frame 2 should only hold right")
	}
	if fs[3].Has(core.ActionRight) || fs[4].Has(core.ActionRight) {
		t.Error("frames past the script should be empty")
	}

	if got := frames(script, 1); len(got) != 1 {
		t.Errorf("script longer than the run should be truncated, got %d", len(got))
	}
	if got := parseOrEmpty(t, ""); got != nil {
		t.Errorf("empty script should parse to nil, got %v", got)
	}
}

func parseOrEmpty(t *testing.T, s string) []segment {
	t.Helper()
	script, err := parseScript(s)
	if err != nil {
		t.Fatal(err)
	}
	return script
}
