// Package engine is the Color Cascade simulation: a falling block, a board of
// settled blocks, cluster merging, special-block effects, combo scoring and
// level progression. It knows nothing about terminals; hosts call Update once
// per frame and the player actions in between.
package engine

import (
	"io"
	"math"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/color-cascade/internal/config"
	"github.com/vovakirdan/color-cascade/internal/core"
)

// Replacement blocks grow by this much per merged member, up to maxGrowth x block size.
const (
	growthPerMember = 3.0
	maxGrowth       = 1.5
)

// liftEpsilon keeps a lifted block strictly clear of rounding error.
const liftEpsilon = 1e-9

// Options configures a new Engine.
type Options struct {
	Config config.CascadeConfig // Zero value uses config.DefaultCascadeConfig()

	// Viewport in world units. Zero takes the size from Config.Field.
	Width, Height float64

	Seed    int64
	Logger  *log.Logger // nil discards
	Effects EffectSink  // Optional observer fed alongside the built-in particles
}

// Field describes the play field geometry.
type Field struct {
	Width, Height float64
	Floor         float64 // Height minus the reserved UI margin
	BlockSize     float64
}

// Engine owns the whole game state. Every exported method takes the same
// lock, so a host may drive it from one goroutine and read it from another.
type Engine struct {
	mu sync.Mutex

	cfg        config.CascadeConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger
	rng        *rand.Rand // gameplay draws
	fxRng      *rand.Rand // cosmetic draws (trail chance)

	width, height float64

	blocks     []Block
	current    Block
	hasCurrent bool
	next       Block
	nextID     uint32
	index      *spatialIndex

	combo     *ComboSystem
	particles *ParticleSystem
	effects   EffectSink

	score         int
	level         int
	blocksCleared int
	gameOver      bool

	baseGravity float64
	gravity     float64
	boostLeft   float64

	charge int
	shake  float64
	hue    float64

	clock    float64
	ticks    uint64
	landings int
}

// New creates an engine in the Playing state with a falling block and a lookahead.
func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg.Field.BlockSize <= 0 {
		cfg = config.DefaultCascadeConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg),
		logger:     logger,
		rng:        rand.New(rand.NewSource(opts.Seed)),   //#nosec G404 -- deterministic gameplay
		fxRng:      rand.New(rand.NewSource(opts.Seed + 2)), //#nosec G404 -- cosmetic randomness
		width:      cfg.Field.Width,
		height:     cfg.Field.Height,
		index:      newSpatialIndex(cfg.Field.BlockSize),
		combo:      NewComboSystem(cfg.Combo.Window, cfg.Combo.Step),
		particles:  NewParticleSystem(opts.Seed+1, cfg.Physics.ParticleGravity, cfg.Effects.MaxParticles),
	}
	if opts.Width > 0 && opts.Height > 0 {
		e.width, e.height = opts.Width, opts.Height
	}
	e.effects = e.particles
	if opts.Effects != nil {
		e.effects = effectFanout{e.particles, opts.Effects}
	}

	e.reset()
	return e
}

func (e *Engine) reset() {
	e.blocks = e.blocks[:0]
	e.particles.Clear()
	e.combo.ResetAll()

	e.score = 0
	e.level = 1
	e.blocksCleared = 0
	e.gameOver = false
	e.baseGravity = e.difficulty.Gravity(1)
	e.gravity = e.baseGravity
	e.boostLeft = 0
	e.charge = 0
	e.shake = 0
	e.hue = 0
	e.clock = 0
	e.ticks = 0
	e.landings = 0

	e.next = e.newBlock()
	e.spawnNext()
}

// Update advances the simulation by dt seconds. It does nothing once the game
// is over. A negative or non-finite dt counts as zero.
func (e *Engine) Update(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver {
		return
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}

	e.ticks++
	e.clock += dt
	e.combo.Tick(dt)
	e.particles.Update(dt)
	e.shake = max(0, e.shake-e.cfg.Effects.ShakeDecay*dt)
	e.hue = math.Mod(e.hue+e.cfg.Effects.HueSpeed*dt, 360)
	e.tickGravityBoost(dt)

	for i := range e.blocks {
		e.blocks[i].animate(dt)
	}

	e.emitTrails()
	if e.hasCurrent {
		e.current.animate(dt)
		cand := e.current
		cand.Y += e.fallStep()
		if e.collides(cand) {
			// Stay one step short of the contact.
			e.land()
		} else {
			e.current = cand
		}
	}

	e.settle()
	e.checkLevel()
}

// MoveLeft shifts the falling block one block width left. It reports whether the move happened.
func (e *Engine) MoveLeft() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shift(-1)
}

// MoveRight shifts the falling block one block width right. It reports whether the move happened.
func (e *Engine) MoveRight() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shift(1)
}

func (e *Engine) shift(dir float64) bool {
	if e.gameOver || !e.hasCurrent {
		return false
	}
	cand := e.current
	cand.X += dir * e.cfg.Field.BlockSize
	half := cand.Size / 2
	if cand.X-half < 0 || cand.X+half > e.width {
		return false
	}
	if e.hitsBoard(cand, -1) {
		return false
	}
	e.current = cand
	return true
}

// Drop hard-drops the falling block: it descends by whole fall steps until
// the next step would collide, then lands exactly as a normal landing does.
func (e *Engine) Drop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver || !e.hasCurrent {
		return
	}
	step := e.fallStep()
	limit := max(int(math.Ceil((e.floor()-e.current.Y)/step))+2, 1)
	for range limit {
		cand := e.current
		cand.Y += step
		if e.collides(cand) {
			break
		}
		e.current = cand
	}
	e.land()
	e.checkLevel()
}

// UsePowerUp clears the bottom band of the field when the charge is full.
// It reports whether the power-up fired.
func (e *Engine) UsePowerUp() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver || e.charge < e.cfg.PowerUp.Max {
		return false
	}
	e.charge = 0

	bandTop := e.floor() - e.cfg.PowerUp.BandHeight
	removed := 0
	kept := e.blocks[:0]
	for _, b := range e.blocks {
		if b.Y >= bandTop {
			e.effects.SpawnExplosion(b.X, b.Y, b.DisplayColor(), e.cfg.Effects.Explosions.PowerUp)
			removed++
			continue
		}
		kept = append(kept, b)
	}
	e.blocks = kept

	e.score += removed * e.cfg.PowerUp.BonusPerBlock
	e.blocksCleared += removed
	e.addShake(e.cfg.Effects.ShakeStrong)
	e.logger.Debug("power-up fired", "removed", removed, "score", e.score)

	e.checkLevel()
	return true
}

// Restart clears everything and starts a fresh game.
func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Debug("restart", "previous_score", e.score, "level", e.level)
	e.reset()
}

// Resize updates the viewport. New blocks spawn in the middle of the new width.
func (e *Engine) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.width, e.height = width, height
}

func (e *Engine) floor() float64 {
	return e.height - e.cfg.Field.UIMargin
}

func (e *Engine) fallStep() float64 {
	return e.difficulty.FallStep(e.level)
}

func (e *Engine) newBlock() Block {
	b := randomBlock(e.rng, 0, 0, e.cfg.Field.BlockSize)
	b.ID = e.allocID()
	return b
}

func (e *Engine) allocID() uint32 {
	e.nextID++
	return e.nextID
}

// spawnNext promotes the lookahead to the falling slot and draws a new lookahead.
func (e *Engine) spawnNext() {
	e.current = e.next
	e.current.X = e.width / 2
	e.current.Y = e.cfg.Field.BlockSize / 2
	e.hasCurrent = true
	e.next = e.newBlock()
}

// collides reports whether b crosses the floor or overlaps a settled block.
func (e *Engine) collides(b Block) bool {
	return b.Y+b.Size/2 > e.floor() || e.hitsBoard(b, -1)
}

// hitsBoard reports whether b overlaps any settled block other than blocks[skip].
func (e *Engine) hitsBoard(b Block, skip int) bool {
	for i := range e.blocks {
		if i != skip && b.Intersects(e.blocks[i]) {
			return true
		}
	}
	return false
}

// land commits the falling block and runs the landing sequence.
func (e *Engine) land() {
	b := e.current
	e.hasCurrent = false
	e.placeClear(&b)
	landingY := b.Y

	e.blocks = append(e.blocks, b)
	e.landings++

	e.applyLandingEffect(b)
	e.resolveMerges()
	e.spawnNext()

	if landingY <= e.cfg.Field.BlockSize {
		e.gameOver = true
		e.effects.SpawnExplosion(e.width/2, e.height/2, b.DisplayColor(), e.cfg.Effects.Explosions.GameOver)
		e.addShake(e.cfg.Effects.ShakeStrong)
		e.logger.Debug("game over", "score", e.score, "level", e.level, "cleared", e.blocksCleared)
	}
}

// placeClear moves b inside the field horizontally, onto or above the floor,
// then lifts it above any settled block it overlaps until it overlaps none.
func (e *Engine) placeClear(b *Block) {
	half := b.Size / 2
	if e.width >= b.Size {
		b.X = core.ClampF(b.X, half, e.width-half)
	}
	b.Y = min(b.Y, e.floor()-half)

	// Every lift puts b entirely above one more block, so this ends within len(blocks) rounds.
	for range len(e.blocks) + 1 {
		lifted := false
		for _, s := range e.blocks {
			if b.Intersects(s) {
				b.Y = s.Bounds().MinY - half - liftEpsilon
				lifted = true
			}
		}
		if !lifted {
			return
		}
	}
}

// settle drops every settled block by the gravity step until nothing moves.
func (e *Engine) settle() {
	if e.gravity <= 0 {
		return
	}
	floor := e.floor()
	for moved := true; moved; {
		moved = false
		for i := range e.blocks {
			cand := e.blocks[i]
			cand.Y += e.gravity
			if cand.Y+cand.Size/2 > floor || e.hitsBoard(cand, i) {
				continue
			}
			e.blocks[i].Y = cand.Y
			moved = true
		}
	}
}

// emitTrails gives every settled special block a chance to shed a spark.
func (e *Engine) emitTrails() {
	chance := e.cfg.Effects.TrailChance
	for _, b := range e.blocks {
		if b.Type.Special() && e.fxRng.Float64() < chance {
			e.effects.SpawnTrail(b.X, b.Y, b.DisplayColor())
		}
	}
}

func (e *Engine) tickGravityBoost(dt float64) {
	if e.boostLeft <= 0 {
		return
	}
	e.boostLeft -= dt
	if e.boostLeft <= 0 {
		e.boostLeft = 0
		e.gravity = e.baseGravity
	}
}

func (e *Engine) addShake(amount float64) {
	e.shake = max(e.shake, amount)
}

func (e *Engine) addCharge(amount int) {
	e.charge = min(e.charge+amount, e.cfg.PowerUp.Max)
}

// checkLevel keeps level equal to blocksCleared/perLevel + 1.
func (e *Engine) checkLevel() {
	lvl := e.difficulty.LevelFor(e.blocksCleared)
	if lvl <= e.level {
		return
	}
	e.level = lvl
	e.baseGravity = e.difficulty.Gravity(lvl)
	if e.boostLeft <= 0 {
		e.gravity = e.baseGravity
	}
	e.effects.SpawnExplosion(e.width/2, e.height/2, core.HSV(e.hue, 0.6, 1), e.cfg.Effects.Explosions.LevelUp)
	e.addShake(e.cfg.Effects.ShakeLevelUp)
	e.logger.Debug("level up", "level", lvl, "cleared", e.blocksCleared, "gravity", e.baseGravity)
}
