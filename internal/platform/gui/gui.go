// Package gui runs a game in a desktop window through Ebiten. It reads the
// same core.Screen the terminal frontend does and paints every cell as a
// filled rectangle, so the two frontends always show the same picture.
package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// Size of one screen cell in window pixels.
const (
	CellW = 8
	CellH = 16
)

var background = color.RGBA{R: 16, G: 16, B: 24, A: 255}

// binding maps a physical key to an action.
type binding struct {
	key    ebiten.Key
	action core.Action
}

var bindings = []binding{
	{ebiten.KeyA, core.ActionLeft},
	{ebiten.KeyArrowLeft, core.ActionLeft},
	{ebiten.KeyD, core.ActionRight},
	{ebiten.KeyArrowRight, core.ActionRight},
	{ebiten.KeyW, core.ActionUp},
	{ebiten.KeyArrowUp, core.ActionUp},
	{ebiten.KeySpace, core.ActionUp},
	{ebiten.KeyS, core.ActionDown},
	{ebiten.KeyArrowDown, core.ActionDown},
	{ebiten.KeyShiftLeft, core.ActionFire},
	{ebiten.KeyShiftRight, core.ActionFire},
	{ebiten.KeyF, core.ActionFire},
	{ebiten.KeyEnter, core.ActionConfirm},
	{ebiten.KeyEscape, core.ActionBack},
	{ebiten.KeyP, core.ActionPause},
	{ebiten.KeyR, core.ActionRestart},
}

// Window is an ebiten.Game driving a registry.Game at a fixed tick rate.
type Window struct {
	game   registry.Game
	screen *core.Screen
	frame  core.InputFrame
	cols   int
	rows   int
}

// NewWindow creates a window of cols x rows cells.
func NewWindow(game registry.Game, cols, rows int) *Window {
	return &Window{
		game:   game,
		screen: core.NewScreen(cols, rows),
		frame:  core.NewInputFrame(),
		cols:   cols,
		rows:   rows,
	}
}

// Update samples the keyboard and advances the game by one step.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || ebiten.IsWindowBeingClosed() {
		if q, ok := w.game.(registry.Quitter); ok {
			q.Quit()
		}
		return ebiten.Termination
	}

	w.frame.Clear()
	for _, b := range bindings {
		if ebiten.IsKeyPressed(b.key) {
			w.frame.Set(b.action)
		}
		if inpututil.IsKeyJustPressed(b.key) {
			w.frame.Press(b.action)
		}
	}
	w.game.Step(w.frame)
	return nil
}

// Draw paints the game's screen buffer.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	w.screen.Clear()
	w.game.Render(w.screen)

	for y := 0; y < w.screen.Height(); y++ {
		for x := 0; x < w.screen.Width(); x++ {
			cell := w.screen.GetCell(x, y)
			if cell.Rune == ' ' || cell.Rune == 0 {
				continue
			}
			px, py := float32(x*CellW), float32(y*CellH)
			vector.DrawFilledRect(screen, px, py, CellW, CellH, shade(cell.Color), false)
			if cell.Rune < 0x80 {
				ebitenutil.DebugPrintAt(screen, string(cell.Rune), x*CellW+1, y*CellH)
			}
		}
	}
}

// Layout keeps the logical size fixed; Ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.cols * CellW, w.rows * CellH
}

// shade darkens a cell color so the white glyph on top stays readable.
func shade(c core.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r / 2, G: g / 2, B: b / 2, A: 255}
}

// Run opens the window and blocks until it is closed.
func Run(game registry.Game, cfg core.RuntimeConfig) error {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultTickRate
	}
	game.Reset(cfg)

	w := NewWindow(game, cfg.ScreenW, cfg.ScreenH)
	ebiten.SetWindowSize(cfg.ScreenW*CellW, cfg.ScreenH*CellH)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
