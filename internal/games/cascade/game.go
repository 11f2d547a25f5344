// Package cascade adapts the Color Cascade engine to the arcade platform:
// it maps platform actions onto engine calls, sizes the play field to the
// terminal, and draws the board into a character screen.
package cascade

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/color-cascade/internal/config"
	"github.com/vovakirdan/color-cascade/internal/core"
	"github.com/vovakirdan/color-cascade/internal/games/cascade/engine"
	"github.com/vovakirdan/color-cascade/internal/registry"
)

// ID is the registry key for the game.
const ID = "cascade"

// Package-level host settings, set before Reset.
var (
	gameLogger = log.New(io.Discard)
)

// SetLogger routes engine and adapter logs to l. nil discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	gameLogger = l
}

// Game implements registry.Game on top of engine.Engine.
type Game struct {
	eng    *engine.Engine
	tuning config.CascadeConfig
	cfg    core.RuntimeConfig
	layout layout
	logger *log.Logger

	frames   uint64
	paused   bool
	tooSmall bool
}

// New creates an unstarted game. Call Reset before Step.
func New() *Game {
	return &Game{}
}

// ID returns the registry key.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Color Cascade"
}

// Reset loads tuning, fits the field to the screen and starts a fresh run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.logger = gameLogger.WithPrefix(ID)
	g.frames = 0
	g.paused = false

	tuning, err := config.LoadCascade(cfg.ConfigPath)
	if err != nil {
		g.logger.Warn("using default tuning", "path", cfg.ConfigPath, "error", err)
		tuning = config.DefaultCascadeConfig()
	}
	config.ApplyCascadePreset(&tuning, config.ParsePreset(cfg.Difficulty))
	g.tuning = tuning

	g.layout, g.tooSmall = fitLayout(cfg.ScreenW, cfg.ScreenH, tuning.Field)
	width, height := tuning.Field.Width, tuning.Field.Height
	if !g.tooSmall {
		width, height = g.layout.worldW, g.layout.worldH
	}

	g.eng = engine.New(engine.Options{
		Config: tuning,
		Width:  width,
		Height: height,
		Seed:   cfg.Seed,
		Logger: g.logger,
	})
	g.logger.Debug("game reset", "seed", cfg.Seed, "difficulty", cfg.Difficulty,
		"field_w", width, "field_h", height)
}

// Step applies this tick's actions and advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil {
		g.Reset(core.DefaultConfig())
	}

	if in.Has(core.ActionRestart) {
		g.eng.Restart()
		g.paused = false
		return core.StepResult{State: g.State()}
	}

	if g.eng.GameOver() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.frames++
	for _, a := range in.Actions {
		switch a {
		case core.ActionLeft:
			g.eng.MoveLeft()
		case core.ActionRight:
			g.eng.MoveRight()
		case core.ActionDrop:
			g.eng.Drop()
		case core.ActionPowerUp:
			g.eng.UsePowerUp()
		}
	}
	g.eng.Update(g.cfg.DeltaTime())

	return core.StepResult{State: g.State()}
}

// Resize refits the field to a new screen size. The run carries on; blocks
// already settled keep their world positions.
func (g *Game) Resize(screenW, screenH int) {
	if g.eng == nil {
		return
	}
	g.cfg.ScreenW, g.cfg.ScreenH = screenW, screenH
	g.layout, g.tooSmall = fitLayout(screenW, screenH, g.tuning.Field)
	if !g.tooSmall {
		g.eng.Resize(g.layout.worldW, g.layout.worldH)
	}
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		Level:    g.eng.Level(),
		GameOver: g.eng.GameOver(),
		Paused:   g.paused,
	}
}

// Summary reports the run so far for the score store.
func (g *Game) Summary() registry.RunSummary {
	if g.eng == nil {
		return registry.RunSummary{}
	}
	s := g.eng.Stats()
	return registry.RunSummary{
		Score:         s.Score,
		Level:         s.Level,
		BlocksCleared: s.BlocksCleared,
		MaxCombo:      s.BestCombo,
		Duration:      s.Elapsed,
	}
}

// Snapshot returns the engine snapshot for determinism checks.
func (g *Game) Snapshot() engine.Snapshot {
	return g.eng.Snapshot()
}

// Engine exposes the underlying simulation to headless hosts.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
