package engine

import "github.com/vovakirdan/color-cascade/internal/core"

// Palette is the set of colors a Normal block is drawn from.
var Palette = [...]core.Color{
	core.RGB(0xFF, 0x6B, 0x6B), // red
	core.RGB(0x4E, 0xCD, 0xC4), // teal
	core.RGB(0x45, 0xB7, 0xD1), // blue
	core.RGB(0xFF, 0xA7, 0x26), // orange
	core.RGB(0x66, 0xBB, 0x6A), // green
	core.RGB(0xAB, 0x47, 0xBC), // purple
	core.RGB(0xFF, 0xEE, 0x58), // yellow
	core.RGB(0xEC, 0x40, 0x7A), // pink
}

// Dedicated colors for special block types.
var (
	BombColor        = core.RGB(0x37, 0x47, 0x4F)
	RainbowColor     = core.RGB(0xFF, 0xFF, 0xFF)
	MultiplierColor  = core.RGB(0xFF, 0xD7, 0x00)
	GravityColor     = core.RGB(0x8D, 0x6E, 0x63)
	TransformerColor = core.RGB(0x00, 0xE5, 0xFF)

	// RainbowDisplayColor is what renderers show for a Rainbow block.
	RainbowDisplayColor = core.RGB(0xE0, 0xE0, 0xE0)
)
