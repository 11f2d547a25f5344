package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/color-cascade/internal/core"
)

var (
	red  = Palette[0]
	teal = Palette[1]
	blue = Palette[2]
)

func TestBlockIntersects(t *testing.T) {
	a := Block{X: 100, Y: 100, Size: 60}

	tests := []struct {
		name string
		b    Block
		want bool
	}{
		{"overlap", Block{X: 140, Y: 100, Size: 60}, true},
		{"touching right edge", Block{X: 160, Y: 100, Size: 60}, false},
		{"touching bottom edge", Block{X: 100, Y: 160, Size: 60}, false},
		{"diagonal corner", Block{X: 160, Y: 160, Size: 60}, false},
		{"bigger block reaching over", Block{X: 170, Y: 100, Size: 90}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Intersects(tc.b))
			assert.Equal(t, tc.want, tc.b.Intersects(a), "intersection must be symmetric")
		})
	}
}

func TestBlockAdjacentForClustering(t *testing.T) {
	const radius = 60

	tests := []struct {
		name string
		a, b Block
		want bool
	}{
		{
			name: "same color within radius",
			a:    Block{X: 0, Y: 0, Color: red},
			b:    Block{X: 60, Y: 0, Color: red},
			want: true,
		},
		{
			name: "same color just beyond radius",
			a:    Block{X: 0, Y: 0, Color: red},
			b:    Block{X: 60.01, Y: 0, Color: red},
			want: false,
		},
		{
			name: "different colors",
			a:    Block{X: 0, Y: 0, Color: red},
			b:    Block{X: 30, Y: 0, Color: blue},
			want: false,
		},
		{
			name: "rainbow matches any color",
			a:    Block{X: 0, Y: 0, Color: red},
			b:    Block{X: 0, Y: 50, Color: RainbowColor, Type: Rainbow},
			want: true,
		},
		{
			name: "rainbow with rainbow",
			a:    Block{X: 0, Y: 0, Color: RainbowColor, Type: Rainbow},
			b:    Block{X: 40, Y: 40, Color: RainbowColor, Type: Rainbow},
			want: true,
		},
		{
			name: "rainbow still needs proximity",
			a:    Block{X: 0, Y: 0, Color: red},
			b:    Block{X: 100, Y: 0, Color: RainbowColor, Type: Rainbow},
			want: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.AdjacentForClustering(tc.b, radius))
			assert.Equal(t, tc.want, tc.b.AdjacentForClustering(tc.a, radius))
		})
	}
}

func TestBlockDisplayColor(t *testing.T) {
	assert.Equal(t, RainbowDisplayColor, Block{Type: Rainbow, Color: RainbowColor}.DisplayColor())
	assert.Equal(t, teal, Block{Type: Normal, Color: teal}.DisplayColor())
	assert.Equal(t, BombColor, Block{Type: Bomb, Color: BombColor}.DisplayColor())
}

func TestTypeForRoll(t *testing.T) {
	tests := []struct {
		roll float64
		want BlockType
	}{
		{0, Normal},
		{0.7499, Normal},
		{0.75, Bomb},
		{0.8499, Bomb},
		{0.85, Rainbow},
		{0.9199, Rainbow},
		{0.92, Multiplier},
		{0.96, Gravity},
		{0.9799, Gravity},
		{0.98, Transformer},
		{0.9999, Transformer},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, TypeForRoll(tc.roll), "roll %v", tc.roll)
	}
}

func TestRandomBlockColors(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	palette := make(map[core.Color]bool, len(Palette))
	for _, c := range Palette {
		palette[c] = true
	}

	seen := make(map[BlockType]int)
	for range 5000 {
		b := randomBlock(rng, 0, 0, 60)
		seen[b.Type]++
		assert.True(t, b.Active)
		assert.Equal(t, 60.0, b.Size)

		if dedicated, ok := b.Type.dedicatedColor(); ok {
			assert.Equal(t, dedicated, b.Color, "special %s must use its dedicated color", b.Type)
		} else {
			assert.True(t, palette[b.Color], "normal block color %s not in palette", b.Color.Hex())
		}
	}

	// Roughly 75% normal; every type shows up over 5000 draws.
	assert.InDelta(t, 0.75, float64(seen[Normal])/5000, 0.03)
	for _, typ := range []BlockType{Bomb, Rainbow, Multiplier, Gravity, Transformer} {
		assert.Positive(t, seen[typ], "type %s never drawn", typ)
	}
}

func TestRandomBlockDeterministic(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for range 100 {
		assert.Equal(t, randomBlock(a, 1, 2, 60), randomBlock(b, 1, 2, 60))
	}
}
