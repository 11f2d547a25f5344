package engine

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/color-cascade/internal/core"
)

// BlockType selects a block's special behaviour.
type BlockType uint8

const (
	Normal BlockType = iota
	Bomb
	Rainbow
	Multiplier
	Gravity
	Transformer
)

var blockTypeNames = [...]string{"normal", "bomb", "rainbow", "multiplier", "gravity", "transformer"}

func (t BlockType) String() string {
	if int(t) < len(blockTypeNames) {
		return blockTypeNames[t]
	}
	return "unknown"
}

// Special reports whether the type is anything but Normal.
func (t BlockType) Special() bool {
	return t != Normal
}

// dedicatedColor returns the fixed color of a special type.
func (t BlockType) dedicatedColor() (core.Color, bool) {
	switch t {
	case Bomb:
		return BombColor, true
	case Rainbow:
		return RainbowColor, true
	case Multiplier:
		return MultiplierColor, true
	case Gravity:
		return GravityColor, true
	case Transformer:
		return TransformerColor, true
	default:
		return 0, false
	}
}

// Cumulative upper bounds for a uniform roll in [0, 1).
var typeThresholds = [...]struct {
	below float64
	typ   BlockType
}{
	{0.75, Normal},
	{0.85, Bomb},
	{0.92, Rainbow},
	{0.96, Multiplier},
	{0.98, Gravity},
}

// TypeForRoll maps a uniform roll in [0, 1) to a block type.
func TypeForRoll(r float64) BlockType {
	for _, th := range typeThresholds {
		if r < th.below {
			return th.typ
		}
	}
	return Transformer
}

// Block is a square piece, positioned by its center.
type Block struct {
	ID     uint32
	X, Y   float64
	Size   float64
	Color  core.Color
	Type   BlockType
	Active bool

	// Animation phases. Renderers read these; gameplay never does.
	Pulse    float64 // radians, wraps at 2π
	Rotation float64 // degrees, wraps at 360
	Age      float64 // seconds since the block was created
}

// Bounds returns the block's bounding box.
func (b Block) Bounds() core.Box {
	return core.CenteredBox(b.X, b.Y, b.Size)
}

// Intersects reports whether two blocks overlap. Touching edges do not count.
func (b Block) Intersects(o Block) bool {
	return b.Bounds().Intersects(o.Bounds())
}

// AdjacentForClustering reports whether two blocks join the same cluster:
// centers within radius, and matching colors unless either is Rainbow.
func (b Block) AdjacentForClustering(o Block, radius float64) bool {
	if core.Distance(b.X, b.Y, o.X, o.Y) > radius {
		return false
	}
	return b.Color == o.Color || b.Type == Rainbow || o.Type == Rainbow
}

// DisplayColor is the color a renderer should use.
func (b Block) DisplayColor() core.Color {
	if b.Type == Rainbow {
		return RainbowDisplayColor
	}
	return b.Color
}

func (b *Block) animate(dt float64) {
	b.Age += dt
	b.Pulse = math.Mod(b.Pulse+dt*4, 2*math.Pi)
	if b.Type.Special() {
		b.Rotation = math.Mod(b.Rotation+dt*90, 360)
	}
}

// randomBlock draws a type, then a palette color, from rng.
// Both draws always happen so the stream stays aligned whatever the type.
func randomBlock(rng *rand.Rand, x, y, size float64) Block {
	typ := TypeForRoll(rng.Float64())
	color := Palette[rng.Intn(len(Palette))]
	if dedicated, ok := typ.dedicatedColor(); ok {
		color = dedicated
	}
	return Block{X: x, Y: y, Size: size, Color: color, Type: typ, Active: true}
}
