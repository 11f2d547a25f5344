// Package registry maps game IDs to factories. Games register from init(),
// so hosts (the local TUI, the SSH server, the headless simulator) can look
// them up by name without importing them directly.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/color-cascade/internal/core"
)

// Game is what a host drives: fixed ticks in, a character grid out.
// Implementations must not depend on any terminal library.
type Game interface {
	ID() string
	Title() string

	// Reset (re)starts the game for the given screen, seed and tuning.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions collected since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst. Games clear dst themselves.
	Render(dst *core.Screen)

	State() core.GameState
}

// RunSummary describes a finished or in-progress run for persistence.
type RunSummary struct {
	Score         int
	Level         int
	BlocksCleared int
	MaxCombo      int
	Duration      float64 // simulated seconds
}

// Summarizer is implemented by games that can report more than a score.
type Summarizer interface {
	Summary() RunSummary
}

// Resizer is implemented by games that can follow a terminal resize without
// restarting the run.
type Resizer interface {
	Resize(screenW, screenH int)
}

// GameInfo is the listing entry for a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	title   string
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. It panics on an empty or duplicate id.
func Register(id string, f Factory) {
	if strings.TrimSpace(id) == "" {
		panic("registry: empty game id")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: f().Title(), factory: f}
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
