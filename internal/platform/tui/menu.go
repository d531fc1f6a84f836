package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// menuRow is one line of the start menu.
type menuRow int

const (
	rowGame menuRow = iota
	rowDifficulty
	rowLevel
	rowStart
	rowCount
)

// MenuChoice is what the player picked.
type MenuChoice struct {
	GameID     string
	Difficulty config.Difficulty
	StartLevel string // empty means the first level
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	games        []registry.GameInfo
	difficulties []config.Difficulty
	levels       []string

	row        menuRow
	game       int
	difficulty int
	level      int // 0 is "first level", i>0 is levels[i-1]

	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	chosen    bool
}

// NewMenuModel creates a start menu offering the registered games, every
// difficulty and the given level ids.
func NewMenuModel(levelIDs []string, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		games:        registry.List(),
		difficulties: config.Difficulties(),
		levels:       levelIDs,
		width:        cfg.ScreenW,
		height:       cfg.ScreenH,
		config:       cfg,
		keyMapper:    NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.row = (m.row + rowCount - 1) % rowCount

	case MenuActionDown:
		m.row = (m.row + 1) % rowCount

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionSelect:
		if m.row != rowStart {
			m.row = rowStart
			return m, nil
		}
		if len(m.games) == 0 {
			return m, nil
		}
		m.chosen = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *MenuModel) cycle(delta int) {
	wrap := func(i, n int) int {
		if n == 0 {
			return 0
		}
		return ((i+delta)%n + n) % n
	}
	switch m.row {
	case rowGame:
		m.game = wrap(m.game, len(m.games))
	case rowDifficulty:
		m.difficulty = wrap(m.difficulty, len(m.difficulties))
	case rowLevel:
		m.level = wrap(m.level, len(m.levels)+1)
	}
}

// Choice returns the selection. ok is false when the player quit.
func (m MenuModel) Choice() (choice MenuChoice, ok bool) {
	if !m.chosen {
		return MenuChoice{}, false
	}
	choice.GameID = m.games[m.game].ID
	if len(m.difficulties) > 0 {
		choice.Difficulty = m.difficulties[m.difficulty]
	}
	if m.level > 0 {
		choice.StartLevel = m.levels[m.level-1]
	}
	return choice, true
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  P L A T F O R M E R  "), m.width))
	b.WriteString("\n\n")

	gameName := "-"
	if len(m.games) > 0 {
		gameName = m.games[m.game].Title
	}
	diffName := "-"
	if len(m.difficulties) > 0 {
		diffName = string(m.difficulties[m.difficulty])
	}
	levelName := "first"
	if m.level > 0 {
		levelName = m.levels[m.level-1]
	}

	lines := []string{
		fmt.Sprintf("Game        < %s >", gameName),
		fmt.Sprintf("Difficulty  < %s >", diffName),
		fmt.Sprintf("Level       < %s >", levelName),
		"Start",
	}
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	for i, line := range lines {
		cursor := "  "
		if menuRow(i) == m.row {
			cursor = "> "
			line = active.Render(line)
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Row  |  Left/Right: Change  |  Enter: Start  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// RunMenu runs the start menu. ok is false when the player quit.
func RunMenu(levelIDs []string, cfg core.RuntimeConfig) (choice MenuChoice, out core.RuntimeConfig, ok bool, err error) {
	p := tea.NewProgram(NewMenuModel(levelIDs, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuChoice{}, cfg, false, err
	}
	m, isMenu := finalModel.(MenuModel)
	if !isMenu {
		return MenuChoice{}, cfg, false, nil
	}
	choice, ok = m.Choice()
	return choice, m.Config(), ok, nil
}
