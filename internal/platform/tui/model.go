package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// HoldWindow is how long a continuous action stays held after its key was
// last seen. Terminal auto-repeat refreshes it while the key is down.
const HoldWindow = 250 * time.Millisecond

// helpRows is the space kept below the game for the key help bar.
const helpRows = 1

// Model is the Bubble Tea model for running the platformer.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	ledger     *storage.Ledger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	held       map[core.Action]int // remaining steps per held action
	holdSteps  int
	gameState  core.GameState
	runs       *LedgerView // open while the ledger is shown
	width      int
	height     int
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, ledger *storage.Ledger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultTickRate
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 1)),
		ledger:     ledger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		held:       make(map[core.Action]int),
		holdSteps:  HoldSteps(cfg.TickRate),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
}

// HoldSteps converts HoldWindow to simulation steps, at least one.
func HoldSteps(tickRate int) int {
	n := int(HoldWindow * time.Duration(tickRate) / time.Second)
	return max(n, 1)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys

	switch {
	case key.Matches(msg, keys.Quit):
		m.quit()
		return m, tea.Quit
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if m.runs != nil {
		switch {
		case key.Matches(msg, keys.Ledger), key.Matches(msg, keys.Back):
			m.runs = nil
		default:
			v := m.runs.Update(msg)
			m.runs = &v
		}
		return m, nil
	}

	if key.Matches(msg, keys.Ledger) {
		runID := ""
		if r, ok := m.game.(RunIdentifier); ok {
			runID = r.RunID()
		}
		v := NewLedgerView(m.ledger, runID, m.width, m.height, m.config.TickRate)
		m.runs = &v
		m.releaseAll()
		return m, nil
	}

	action, _ := m.keyMapper.MapKey(msg)
	if action == core.ActionNone {
		return m, nil
	}
	m.inputFrame.Press(action)
	if Holdable(action) {
		m.hold(action)
	}
	return m, nil
}

// hold keeps a continuous action held for the hold window. Opposite
// directions cancel each other since only one key auto-repeats at a time.
func (m Model) hold(a core.Action) {
	switch a {
	case core.ActionLeft:
		delete(m.held, core.ActionRight)
	case core.ActionRight:
		delete(m.held, core.ActionLeft)
	case core.ActionUp:
		delete(m.held, core.ActionDown)
	case core.ActionDown:
		delete(m.held, core.ActionUp)
	}
	m.held[a] = m.holdSteps
}

func (m Model) releaseAll() {
	for a := range m.held {
		delete(m.held, a)
	}
	m.inputFrame.Clear()
}

// quit tells the game the session is over.
func (m *Model) quit() {
	m.quitting = true
	if q, ok := m.game.(registry.Quitter); ok {
		q.Quit()
	}
}

// handleResize processes window resize events. The game keeps running; the
// camera picks up the new screen size on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 1))
	m.help.Width = msg.Width
	if m.runs != nil {
		runID := ""
		if r, ok := m.game.(RunIdentifier); ok {
			runID = r.RunID()
		}
		v := NewLedgerView(m.ledger, runID, m.width, m.height, m.config.TickRate)
		m.runs = &v
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// The ledger overlay freezes the simulation.
	if m.runs != nil {
		return m, tickCmd(m.config.TickRate)
	}

	for a, n := range m.held {
		m.inputFrame.Set(a)
		if n <= 1 {
			delete(m.held, a)
		} else {
			m.held[a] = n - 1
		}
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".platformer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.runs != nil {
		return m.runs.View()
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys))
}

// GameState returns the state after the last step.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, ledger *storage.Ledger, cfg core.RuntimeConfig) error {
	model := NewModel(game, ledger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
