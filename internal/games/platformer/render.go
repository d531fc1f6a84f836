package platformer

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/camera"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sprite"
)

// World pixels covered by one terminal cell. Cells are roughly twice as tall
// as they are wide, so a 64px tile becomes a 4x2 block.
const (
	CellW = 16
	CellH = 32

	hudRows = 1
)

// Drawable is anything the renderer can paint.
type Drawable interface {
	Rect() core.Rect
	Sprite() *sprite.Animator
}

// Render draws the active scene, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	if g.mode == ModeError {
		g.renderError(dst)
		return
	}

	switch {
	case g.hub != nil:
		g.renderTown(dst)
	case g.world != nil:
		g.renderLevel(dst)
	}

	switch {
	case g.paused:
		drawBanner(dst, "PAUSED", "P to resume")
	case g.mode == ModeDead:
		drawBanner(dst, "YOU DIED", "R to retry the level")
	case g.mode == ModeVictory:
		drawBanner(dst, "VICTORY", fmt.Sprintf("%d coins kept. R to play again", g.world.Hero().Coins))
	}
}

// fit sizes the camera to the screen. Steps keep it centered on the hero.
func (g *Game) fit(dst *core.Screen) *camera.Camera {
	rows := max(dst.Height()-hudRows, 0)
	g.cam.Resize(float64(dst.Width()*CellW), float64(rows*CellH))
	return g.cam
}

func (g *Game) renderLevel(dst *core.Screen) {
	w := g.world
	cam := g.fit(dst)
	for _, e := range w.DrawList() {
		drawSprite(dst, cam, e)
	}
	worldW, worldH := w.Size()
	drawBounds(dst, cam, worldW, worldH)

	hero := w.Hero()
	keys := len(hero.Keys)
	lvl := w.Level()
	name := lvl.Name
	if name == "" {
		name = lvl.ID
	}
	left := fmt.Sprintf(" %s %s  $%d  K %d/%d",
		meter('♥', '♡', hero.Hearts, g.cfg.Hero.MaxHearts),
		meter('◆', '◇', hero.Armour, g.cfg.Hero.MaxArmour),
		hero.Coins, keys, keys+w.KeysRemaining())
	right := fmt.Sprintf("%d/%d %s [%s] ", g.index+1, len(g.levels), name, g.diff)
	drawHUD(dst, left, right)
}

func (g *Game) renderTown(dst *core.Screen) {
	h := g.hub
	cam := g.fit(dst)
	for _, t := range h.Tiles() {
		drawSprite(dst, cam, t)
	}
	drawSprite(dst, cam, h.Hero())
	townW, townH := h.Size()
	drawBounds(dst, cam, townW, townH)

	p := h.Profile()
	left := fmt.Sprintf(" %s %s  $%d",
		meter('♥', '♡', p.Hearts, g.cfg.Hero.MaxHearts),
		meter('◆', '◇', p.Armour, g.cfg.Hero.MaxArmour),
		p.Coins)
	right := "Town "
	if g.index+1 < len(g.levels) {
		right = fmt.Sprintf("Town, next: %s ", g.levels[g.index+1].ID)
	}
	drawHUD(dst, left, right)

	if shop := h.Shop(); shop.Open {
		drawShop(dst, g, p.Coins)
	}
}

func (g *Game) renderError(dst *core.Screen) {
	dst.DrawTextColor(1, 0, "Cannot start the game:", core.ColorBrightRed)
	msg := "unknown error"
	if g.err != nil {
		msg = g.err.Error()
	}
	for i, line := range wrap(msg, dst.Width()-2) {
		dst.DrawText(1, 2+i, line)
	}
	dst.DrawTextCentered(dst.Height()-1, "Q to quit")
}

// drawSprite paints d's rectangle with its current frame glyph. Anything
// visible covers at least one cell.
func drawSprite(dst *core.Screen, cam *camera.Camera, d Drawable) {
	r := d.Rect()
	if !cam.Visible(r) {
		return
	}
	glyph, color := '?', core.ColorDefault
	if a := d.Sprite(); a != nil {
		if f, ok := a.Frame(); ok {
			glyph, color = f.Glyph, f.Color
		}
	}

	sr := cam.ToScreen(r)
	x0 := int(math.Floor(sr.Left() / CellW))
	x1 := int(math.Ceil(sr.Right() / CellW))
	y0 := int(math.Floor(sr.Top() / CellH))
	y1 := int(math.Ceil(sr.Bottom() / CellH))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	dst.FillRect(x0, y0+hudRows, x1-x0, y1-y0, glyph, color)
}

// drawBounds outlines the world's right and bottom edges when the world is
// smaller than the screen.
func drawBounds(dst *core.Screen, cam *camera.Camera, worldW, worldH float64) {
	sr := cam.ToScreen(core.NewRect(0, 0, worldW, worldH))
	right := int(math.Ceil(sr.Right() / CellW))
	bottom := int(math.Ceil(sr.Bottom()/CellH)) + hudRows
	if right < dst.Width() {
		dst.DrawVLine(right, hudRows, min(bottom, dst.Height())-hudRows, '│')
	}
	if bottom < dst.Height() {
		dst.DrawHLine(0, bottom, min(right, dst.Width()), '─')
	}
}

func drawHUD(dst *core.Screen, left, right string) {
	dst.DrawRect(0, 0, dst.Width(), hudRows, ' ')
	dst.DrawTextColor(0, 0, left, core.ColorBrightWhite)
	dst.DrawTextColor(dst.Width()-len([]rune(right)), 0, right, core.ColorGray)
}

// meter renders n full and max-n empty glyphs.
func meter(full, empty rune, n, limit int) string {
	n = core.Clamp(n, 0, limit)
	return strings.Repeat(string(full), n) + strings.Repeat(string(empty), limit-n)
}

func drawBanner(dst *core.Screen, title, hint string) {
	w := max(len([]rune(title)), len([]rune(hint))) + 6
	h := 5
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2
	dst.DrawRect(x, y, w, h, ' ')
	dst.DrawBox(x, y, w, h)
	dst.DrawTextColor(x+(w-len([]rune(title)))/2, y+1, title, core.ColorBrightYellow)
	dst.DrawTextColor(x+(w-len([]rune(hint)))/2, y+3, hint, core.ColorGray)
}

func drawShop(dst *core.Screen, g *Game, coins int) {
	shop := g.hub.Shop()
	w, h := 32, len(shop.Offers)+6
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2
	dst.DrawRect(x, y, w, h, ' ')
	dst.DrawBox(x, y, w, h)
	dst.DrawTextColor(x+2, y+1, "SHOP", core.ColorBrightYellow)
	dst.DrawTextColor(x+w-2-len(fmt.Sprintf("$%d", coins)), y+1, fmt.Sprintf("$%d", coins), core.ColorYellow)
	dst.DrawHLine(x+1, y+2, w-2, '─')

	for i, o := range shop.Offers {
		cursor, color := "  ", core.ColorWhite
		if i == shop.Cursor {
			cursor, color = "> ", core.ColorBrightCyan
		}
		if o.Price > coins {
			color = core.ColorGray
		}
		dst.DrawTextColor(x+2, y+3+i, fmt.Sprintf("%s%-16s $%d", cursor, o.Item, o.Price), color)
	}
	dst.DrawTextColor(x+2, y+h-2, "Enter buy  Esc leave", core.ColorGray)
}

// wrap splits text into lines of at most width runes.
func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var line []rune
	for _, word := range strings.Fields(text) {
		wr := []rune(word)
		if len(line) > 0 && len(line)+1+len(wr) > width {
			lines = append(lines, string(line))
			line = nil
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, wr...)
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
