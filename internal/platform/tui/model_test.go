package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// fakeGame records every frame it is stepped with.
type fakeGame struct {
	frames []core.InputFrame
	resets int
	quits  int
}

func (g *fakeGame) ID() string               { return "fake" }
func (g *fakeGame) Title() string            { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState    { return core.GameState{} }
func (g *fakeGame) Quit()                    { g.quits++ }
func (g *fakeGame) RunID() string            { return "run-1" }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func newTestModel(g *fakeGame) Model {
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	return NewModel(g, nil, cfg)
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"right", core.ActionRight, false},
		{"w", core.ActionUp, false},
		{" ", core.ActionUp, false},
		{"s", core.ActionDown, false},
		{"f", core.ActionFire, false},
		{"enter", core.ActionConfirm, false},
		{"esc", core.ActionBack, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"z", core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(keyMsg(tt.key))
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, action, quit, tt.action, tt.quit)
		}
	}
}

func TestHoldSteps(t *testing.T) {
	tests := []struct {
		rate int
		want int
	}{
		{40, 10},
		{60, 15},
		{1, 1},
	}
	for _, tt := range tests {
		if got := HoldSteps(tt.rate); got != tt.want {
			t.Errorf("HoldSteps(%d) = %d, want %d", tt.rate, got, tt.want)
		}
	}
}

func TestHeldKeyEmulation(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = send(m, keyMsg("right"))
	for i := 0; i < m.holdSteps+2; i++ {
		m = send(m, TickMsg{})
	}

	if len(g.frames) != m.holdSteps+2 {
		t.Fatalf("got %d steps, want %d", len(g.frames), m.holdSteps+2)
	}
	if !g.frames[0].WasPressed(core.ActionRight) {
		t.Error("first step should carry the press")
	}
	if g.frames[1].WasPressed(core.ActionRight) {
		t.Error("press must only be delivered once")
	}
	for i := 0; i < m.holdSteps; i++ {
		if !g.frames[i].Has(core.ActionRight) {
			t.Errorf("step %d: right should still be held", i)
		}
	}
	if g.frames[m.holdSteps].Has(core.ActionRight) {
		t.Error("right should be released after the hold window")
	}
}

func TestOppositeDirectionCancelsHold(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = send(m, keyMsg("right"), TickMsg{}, keyMsg("left"), TickMsg{})

	last := g.frames[len(g.frames)-1]
	if last.Has(core.ActionRight) || !last.Has(core.ActionLeft) {
		t.Errorf("want only left held, got %v", last.Actions)
	}
}

func TestDiscreteActionsAreNotHeld(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	send(m, keyMsg("p"), TickMsg{}, TickMsg{})
	if !g.frames[0].WasPressed(core.ActionPause) {
		t.Error("pause press lost")
	}
	if g.frames[1].Has(core.ActionPause) {
		t.Error("pause must not be held")
	}
}

func TestLedgerOverlayFreezesGame(t *testing.T) {
	ledger, err := storage.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer ledger.Close()
	if _, err := ledger.RecordRun(storage.RunRecord{RunID: "run-1", LevelID: "01-meadow", Outcome: storage.OutcomeCleared, Coins: 4, Ticks: 400}); err != nil {
		t.Fatal(err)
	}

	g := &fakeGame{}
	cfg := core.DefaultConfig()
	m := NewModel(g, ledger, cfg)

	m = send(m, keyMsg("tab"), TickMsg{}, TickMsg{})
	if len(g.frames) != 0 {
		t.Fatalf("game stepped %d times behind the ledger", len(g.frames))
	}
	view := m.View()
	if !strings.Contains(view, "01-meadow") || !strings.Contains(view, "cleared") {
		t.Errorf("ledger view missing the run:\n%s", view)
	}

	m = send(m, keyMsg("esc"), TickMsg{})
	if len(g.frames) != 1 {
		t.Errorf("game should resume after closing the ledger, got %d steps", len(g.frames))
	}
}

func TestQuitNotifiesGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)
	m = send(m, keyMsg("q"))
	if g.quits != 1 {
		t.Errorf("Quit called %d times, want 1", g.quits)
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestFormatTicks(t *testing.T) {
	tests := []struct {
		ticks int64
		want  string
	}{
		{0, "0:00.0"},
		{40, "0:01.0"},
		{2404, "1:00.1"},
	}
	for _, tt := range tests {
		if got := formatTicks(tt.ticks, 40); got != tt.want {
			t.Errorf("formatTicks(%d) = %q, want %q", tt.ticks, got, tt.want)
		}
	}
}

func TestMenuChoice(t *testing.T) {
	m := NewMenuModel([]string{"01-meadow", "02-caverns"}, core.DefaultConfig())
	m.games = []registry.GameInfo{{ID: "platformer", Title: "Platformer Campaign"}}

	next := func(msgs ...string) {
		for _, s := range msgs {
			model, _ := m.Update(keyMsg(s))
			m = model.(MenuModel)
		}
	}
	next("down", "right", "down", "right", "right", "enter", "enter")

	choice, ok := m.Choice()
	if !ok {
		t.Fatal("menu should have a choice")
	}
	if choice.GameID != "platformer" {
		t.Errorf("game = %q", choice.GameID)
	}
	if choice.Difficulty != m.difficulties[1] {
		t.Errorf("difficulty = %q", choice.Difficulty)
	}
	if choice.StartLevel != "02-caverns" {
		t.Errorf("level = %q", choice.StartLevel)
	}
}
