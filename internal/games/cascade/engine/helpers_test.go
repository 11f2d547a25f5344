package engine

import (
	"testing"

	"github.com/vovakirdan/color-cascade/internal/core"
)

type explosion struct {
	X, Y  float64
	Color core.Color
	Count int
}

// recordingSink remembers every trigger the engine fires.
type recordingSink struct {
	explosions []explosion
	trails     int
}

func (r *recordingSink) SpawnExplosion(x, y float64, color core.Color, count int) {
	r.explosions = append(r.explosions, explosion{X: x, Y: y, Color: color, Count: count})
}

func (r *recordingSink) SpawnTrail(x, y float64, color core.Color) {
	r.trails++
}

// withCount returns the explosions spawned with exactly n particles.
func (r *recordingSink) withCount(n int) []explosion {
	var out []explosion
	for _, ex := range r.explosions {
		if ex.Count == n {
			out = append(out, ex)
		}
	}
	return out
}

func (r *recordingSink) total() int {
	sum := r.trails
	for _, ex := range r.explosions {
		sum += ex.Count
	}
	return sum
}

func newTestEngine(t *testing.T) (*Engine, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	return New(Options{Seed: 1, Effects: sink}), sink
}

// setBoard replaces the settled blocks, filling in IDs and the default size.
func (e *Engine) setBoard(blocks ...Block) {
	e.blocks = e.blocks[:0]
	for _, b := range blocks {
		if b.ID == 0 {
			b.ID = e.allocID()
		}
		if b.Size == 0 {
			b.Size = e.cfg.Field.BlockSize
		}
		b.Active = true
		e.blocks = append(e.blocks, b)
	}
}

// setCurrent replaces the falling block.
func (e *Engine) setCurrent(x, y float64, color core.Color, typ BlockType) Block {
	e.current = Block{
		ID:     e.allocID(),
		X:      x,
		Y:      y,
		Size:   e.cfg.Field.BlockSize,
		Color:  color,
		Type:   typ,
		Active: true,
	}
	e.hasCurrent = true
	return e.current
}

func at(x, y float64, color core.Color) Block {
	return Block{X: x, Y: y, Color: color}
}

func special(x, y float64, typ BlockType) Block {
	color, _ := typ.dedicatedColor()
	return Block{X: x, Y: y, Color: color, Type: typ}
}

func assertNoOverlap(t *testing.T, blocks []Block) {
	t.Helper()
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].Intersects(blocks[j]) {
				t.Fatalf("blocks overlap: %+v and %+v", blocks[i], blocks[j])
			}
		}
	}
}
