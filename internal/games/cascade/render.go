package cascade

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/color-cascade/internal/config"
	"github.com/vovakirdan/color-cascade/internal/core"
	"github.com/vovakirdan/color-cascade/internal/games/cascade/engine"
)

// A block is drawn 4 columns wide and 2 rows tall, which looks square in
// most terminal fonts.
const (
	cellsPerBlockX = 4
	cellsPerBlockY = 2

	sidebarW     = 24
	hudRows      = 1
	minBlocksW   = 4
	minFieldRows = 10
)

// Visual characters
const (
	blockChar    = '█'
	specialOn    = '▓'
	specialOff   = '▒'
	sparkChar    = '*'
	fadingChar   = '·'
	chargeFull   = '■'
	chargeEmpty  = '□'
	comboBarChar = '━'
)

var (
	hudColor    = core.RGB(0xEC, 0xEF, 0xF1)
	dimColor    = core.RGB(0x78, 0x90, 0x9C)
	accentColor = core.RGB(0xFF, 0xD5, 0x4F)
	dangerColor = core.RGB(0xEF, 0x53, 0x50)
)

var typeGlyphs = map[engine.BlockType]rune{
	engine.Bomb:        '✹',
	engine.Rainbow:     '◈',
	engine.Multiplier:  '×',
	engine.Gravity:     '↓',
	engine.Transformer: '⇄',
}

// layout maps world units onto screen cells.
type layout struct {
	cols, rows       int // field interior in cells
	originX, originY int // screen cell of the interior's top-left
	sideX            int
	unitX, unitY     float64 // world units per cell
	worldW, worldH   float64
}

// fitLayout sizes the field to the screen. The second result is true when the
// screen cannot hold a playable field.
func fitLayout(screenW, screenH int, f config.FieldConfig) (layout, bool) {
	blocksW := min(int(f.Width/f.BlockSize), (screenW-2-1-sidebarW)/cellsPerBlockX)
	unitY := f.BlockSize / cellsPerBlockY
	rows := min(screenH-hudRows-2, int(f.Floor()/unitY))
	if blocksW < minBlocksW || rows < minFieldRows {
		return layout{}, true
	}

	cols := blocksW * cellsPerBlockX
	total := cols + 2 + 1 + sidebarW
	l := layout{
		cols:    cols,
		rows:    rows,
		originX: (screenW-total)/2 + 1,
		originY: hudRows + 1,
		unitX:   f.BlockSize / cellsPerBlockX,
		unitY:   unitY,
	}
	l.sideX = l.originX + cols + 2
	l.worldW = float64(cols) * l.unitX
	l.worldH = float64(rows)*l.unitY + f.UIMargin
	return l, false
}

func (l layout) frame() core.Rect {
	return core.NewRect(l.originX-1, l.originY-1, l.cols+2, l.rows+2)
}

// toCell converts a world coordinate into a screen cell.
func (l layout) toCell(x, y float64) (int, int) {
	return l.originX + int(math.Floor(x/l.unitX)), l.originY + int(math.Floor(y/l.unitY))
}

func (l layout) inside(cx, cy int) bool {
	return cx >= l.originX && cx < l.originX+l.cols && cy >= l.originY && cy < l.originY+l.rows
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small!", dangerColor)
		dst.DrawTextCentered(dst.Height()/2+1, "Resize to continue", dimColor)
		return
	}

	g.renderFrame(dst)
	g.renderBoard(dst)
	g.renderSidebar(dst)
	g.renderOverlays(dst)
}

// renderFrame draws the border, tinted by the engine's background hue.
func (g *Game) renderFrame(dst *core.Screen) {
	tint := core.HSV(g.eng.HuePhase(), 0.45, 0.85)
	dst.DrawBox(g.layout.frame(), tint)
	dst.DrawTextColored(g.layout.originX, 0, "COLOR CASCADE", tint)
}

func (g *Game) shakeOffset() int {
	shake := g.eng.ScreenShake()
	if shake <= 0 {
		return 0
	}
	return int(math.Round(math.Sin(float64(g.frames)*1.9) * shake / 10))
}

func (g *Game) renderBoard(dst *core.Screen) {
	dx := g.shakeOffset()

	for _, p := range g.eng.Particles() {
		cx, cy := g.layout.toCell(p.X, p.Y)
		cx += dx
		if !g.layout.inside(cx, cy) {
			continue
		}
		fade := p.Fade()
		ch := sparkChar
		if fade < 0.4 {
			ch = fadingChar
		}
		dst.SetColored(cx, cy, ch, p.Color.Scale(max(fade, 0.25)))
	}

	for _, b := range g.eng.Blocks() {
		g.drawBlock(dst, b, dx)
	}
	if cur, ok := g.eng.Current(); ok {
		g.drawBlock(dst, cur, dx)
	}
}

// drawBlock fills the cells a block covers. Special blocks pulse between two
// shades and carry their glyph in the middle.
func (g *Game) drawBlock(dst *core.Screen, b engine.Block, dx int) {
	l := g.layout
	half := b.Size / 2
	left := l.originX + int(math.Round((b.X-half)/l.unitX)) + dx
	right := l.originX + int(math.Round((b.X+half)/l.unitX)) + dx
	top := l.originY + int(math.Round((b.Y-half)/l.unitY))
	bottom := l.originY + int(math.Round((b.Y+half)/l.unitY))

	fill := blockChar
	if b.Type.Special() {
		fill = specialOff
		if math.Sin(b.Pulse) > 0 {
			fill = specialOn
		}
	}

	color := b.DisplayColor()
	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			if l.inside(x, y) {
				dst.SetColored(x, y, fill, color)
			}
		}
	}

	if glyph, ok := typeGlyphs[b.Type]; ok {
		gx, gy := (left+right-1)/2, (top+bottom-1)/2
		if l.inside(gx, gy) {
			dst.SetColored(gx, gy, glyph, core.ColorWhite)
		}
	}
}

// renderSidebar draws the next piece, score, level, combo and charge.
func (g *Game) renderSidebar(dst *core.Screen) {
	x := g.layout.sideX + 1
	y := g.layout.originY

	stats := g.eng.Stats()
	combo := g.eng.Combo()

	dst.DrawTextColored(x, y, "NEXT", dimColor)
	next := g.eng.Next()
	for row := range cellsPerBlockY {
		fill := strings.Repeat(string(blockChar), cellsPerBlockX)
		dst.DrawTextColored(x+1, y+1+row, fill, next.DisplayColor())
	}
	if glyph, ok := typeGlyphs[next.Type]; ok {
		dst.SetColored(x+2, y+1, glyph, core.ColorWhite)
		dst.DrawTextColored(x+cellsPerBlockX+2, y+1, next.Type.String(), dimColor)
	}
	y += cellsPerBlockY + 2

	dst.DrawTextColored(x, y, fmt.Sprintf("Score   %d", stats.Score), hudColor)
	dst.DrawTextColored(x, y+1, fmt.Sprintf("Level   %d", stats.Level), hudColor)
	dst.DrawTextColored(x, y+2, fmt.Sprintf("Cleared %d", stats.BlocksCleared), hudColor)
	y += 4

	if combo.Count > 0 {
		dst.DrawTextColored(x, y, fmt.Sprintf("Combo x%.1f (%d)", combo.Multiplier, combo.Count), accentColor)
		barW := sidebarW - 4
		filled := 0
		if combo.Window > 0 {
			filled = int(math.Ceil(combo.TimeLeft / combo.Window * float64(barW)))
		}
		dst.DrawTextColored(x, y+1, strings.Repeat(string(comboBarChar), core.Clamp(filled, 0, barW)), accentColor)
	} else {
		dst.DrawTextColored(x, y, fmt.Sprintf("Best combo %d", stats.BestCombo), dimColor)
	}
	y += 3

	charge, full := g.eng.PowerUpCharge(), g.eng.PowerUpMax()
	dst.DrawTextColored(x, y, "Power-up", dimColor)
	dst.DrawText(x, y+1, chargeBar(charge, full, sidebarW-4))
	if charge >= full {
		dst.DrawTextColored(x, y+2, "READY! press E", accentColor)
	}
	y += 4

	if y < g.layout.originY+g.layout.rows {
		gravity := fmt.Sprintf("Gravity %.1f", g.eng.Gravity())
		dst.DrawTextColored(x, y, gravity, dimColor)
	}
}

// chargeBar renders charge as a fixed-width gauge.
func chargeBar(charge, full, width int) string {
	if full <= 0 || width <= 0 {
		return ""
	}
	filled := core.Clamp(charge*width/full, 0, width)
	return strings.Repeat(string(chargeFull), filled) + strings.Repeat(string(chargeEmpty), width-filled)
}

func (g *Game) renderOverlays(dst *core.Screen) {
	switch {
	case g.eng.GameOver():
		g.drawMessage(dst, "GAME OVER",
			fmt.Sprintf("Score %d", g.eng.Score()),
			fmt.Sprintf("Level %d", g.eng.Level()),
			"R:restart Q:quit")
	case g.paused:
		g.drawMessage(dst, "PAUSED", "P to resume")
	}
}

// drawMessage draws a boxed message centred on the field.
func (g *Game) drawMessage(dst *core.Screen, lines ...string) {
	w := 0
	for _, line := range lines {
		w = max(w, len([]rune(line)))
	}
	boxW := min(w+4, g.layout.cols+2)
	boxH := len(lines)*2 + 1
	boxX := g.layout.originX + (g.layout.cols-boxW)/2
	boxY := g.layout.originY + (g.layout.rows-boxH)/2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, hudColor)
	for i, line := range lines {
		lx := boxX + (boxW-len([]rune(line)))/2
		color := hudColor
		if i == 0 {
			color = accentColor
		}
		dst.DrawTextColored(lx, boxY+1+i*2, line, color)
	}
}
