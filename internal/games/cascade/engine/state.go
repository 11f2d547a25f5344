package engine

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Blocks returns a copy of the settled blocks.
func (e *Engine) Blocks() []Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Block(nil), e.blocks...)
}

// Current returns the falling block and whether there is one.
func (e *Engine) Current() (Block, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current, e.hasCurrent
}

// Next returns the lookahead block.
func (e *Engine) Next() Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.next
}

// Score is the running score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Level is the current level, starting at 1.
func (e *Engine) Level() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level
}

// BlocksCleared is the number of blocks cleared this run.
func (e *Engine) BlocksCleared() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blocksCleared
}

// GameOver reports whether the stack has reached the top.
func (e *Engine) GameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameOver
}

// Combo returns the current combo state.
func (e *Engine) Combo() ComboState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.combo.state()
}

// Particles returns a copy of the live particles.
func (e *Engine) Particles() []Particle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.particles.Snapshot()
}

// ScreenShake is the current shake magnitude in world units.
func (e *Engine) ScreenShake() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shake
}

// HuePhase is the background hue in degrees, [0, 360).
func (e *Engine) HuePhase() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hue
}

// PowerUpCharge is the current power-up gauge.
func (e *Engine) PowerUpCharge() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.charge
}

// PowerUpMax is the gauge value at which UsePowerUp fires.
func (e *Engine) PowerUpMax() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.PowerUp.Max
}

// Gravity is the settling step currently in effect.
func (e *Engine) Gravity() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gravity
}

// Field returns the current play field geometry.
func (e *Engine) Field() Field {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Field{
		Width:     e.width,
		Height:    e.height,
		Floor:     e.floor(),
		BlockSize: e.cfg.Field.BlockSize,
	}
}

// Stats summarises a run for score keeping.
type Stats struct {
	Score         int
	Level         int
	BlocksCleared int
	BestCombo     int
	Landings      int
	Elapsed       float64 // simulated seconds
	GameOver      bool
}

// Stats returns the run summary so far.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Score:         e.score,
		Level:         e.level,
		BlocksCleared: e.blocksCleared,
		BestCombo:     e.combo.Best(),
		Landings:      e.landings,
		Elapsed:       e.clock,
		GameOver:      e.gameOver,
	}
}

// Snapshot captures the gameplay state for determinism checks.
// Cosmetic state (particles, shake, animation phases) is left out.
type Snapshot struct {
	Tick          uint64
	Score         int
	Level         int
	BlocksCleared int
	GameOver      bool
	Combo         int
	Charge        int
	Gravity       float64
	Current       Block
	HasCurrent    bool
	Next          Block
	Blocks        []Block
}

// Snapshot returns the current snapshot.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Tick:          e.ticks,
		Score:         e.score,
		Level:         e.level,
		BlocksCleared: e.blocksCleared,
		GameOver:      e.gameOver,
		Combo:         e.combo.Count(),
		Charge:        e.charge,
		Gravity:       e.gravity,
		Current:       e.current,
		HasCurrent:    e.hasCurrent,
		Next:          e.next,
		Blocks:        append([]Block(nil), e.blocks...),
	}
}

// Hash folds the snapshot into an FNV-1a digest.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "T:%d;S:%d;L:%d;C:%d;G:%v;K:%d;P:%d;g:%x;",
		s.Tick, s.Score, s.Level, s.BlocksCleared, s.GameOver, s.Combo, s.Charge, math.Float64bits(s.Gravity))
	writeBlock := func(tag string, b Block) {
		fmt.Fprintf(h, "%s%d:%x:%x:%x:%06x:%d,", tag, b.ID,
			math.Float64bits(b.X), math.Float64bits(b.Y), math.Float64bits(b.Size), uint32(b.Color), b.Type)
	}
	if s.HasCurrent {
		writeBlock("c", s.Current)
	}
	writeBlock("n", s.Next)
	for _, b := range s.Blocks {
		writeBlock("b", b)
	}
	return h.Sum64()
}
