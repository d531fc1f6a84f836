package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// RunIdentifier is implemented by games that tag their ledger rows with a
// run id.
type RunIdentifier interface {
	RunID() string
}

// LedgerView is the table of finished level runs shown over the game.
type LedgerView struct {
	table   table.Model
	summary storage.Summary
	rows    int
	err     error
	width   int
	tickHz  int
}

// NewLedgerView loads the runs of runID (all runs when empty).
func NewLedgerView(l *storage.Ledger, runID string, width, height, tickRate int) LedgerView {
	v := LedgerView{width: width, tickHz: tickRate}
	v.table = newRunsTable(width, height)
	if l == nil {
		v.err = errors.New("no ledger for this session")
		return v
	}

	runs, err := l.Runs(runID)
	if err != nil {
		v.err = err
		return v
	}
	v.summary, v.err = l.Summary(runID)
	v.rows = len(runs)

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.LevelID,
			string(r.Outcome),
			fmt.Sprintf("%d", r.Coins),
			fmt.Sprintf("%d", r.Keys),
			formatTicks(r.Ticks, tickRate),
			r.Difficulty,
		}
	}
	v.table.SetRows(rows)
	v.table.GotoBottom()
	return v
}

func newRunsTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 14},
		{Title: "Outcome", Width: 9},
		{Title: "Coins", Width: 6},
		{Title: "Keys", Width: 5},
		{Title: "Time", Width: 8},
		{Title: "Difficulty", Width: 11},
	}
	if width > 80 {
		columns[1].Width = 14 + min(width-80, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-8, 3)), // Leave room for title, summary and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Update scrolls the table.
func (v LedgerView) Update(msg tea.Msg) LedgerView {
	v.table, _ = v.table.Update(msg)
	return v
}

// View renders the ledger.
func (v LedgerView) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("LEVEL RUNS", v.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case v.err != nil:
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(boxStyle.Render(errStyle.Render(v.err.Error())))
	case v.rows == 0:
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		b.WriteString(boxStyle.Render(dim.Render("No finished levels yet.")))
	default:
		b.WriteString(boxStyle.Render(v.table.View()))
	}
	b.WriteString("\n")

	s := v.summary
	summary := fmt.Sprintf("runs %d  cleared %d  deaths %d  best coins %d  time %s",
		s.Runs, s.Cleared, s.Deaths, s.BestCoins, formatTicks(s.Ticks, v.tickHz))
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(summary))
	return b.String()
}

// formatTicks renders a step count as m:ss.t.
func formatTicks(ticks int64, tickRate int) string {
	if tickRate <= 0 {
		tickRate = core.DefaultTickRate
	}
	tenths := ticks * 10 / int64(tickRate)
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
