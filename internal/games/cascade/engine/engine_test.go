package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/color-cascade/internal/config"
)

const dt = 1.0 / 60.0

func TestNewEngine(t *testing.T) {
	e := New(Options{Seed: 3})

	cur, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, 210.0, cur.X)
	assert.Equal(t, 30.0, cur.Y)
	assert.NotEqual(t, cur.ID, e.Next().ID)

	assert.Equal(t, 1, e.Level())
	assert.Zero(t, e.Score())
	assert.False(t, e.GameOver())
	assert.Equal(t, 3.0, e.Gravity())
	assert.Equal(t, 100, e.PowerUpMax())
	assert.Equal(t, Field{Width: 420, Height: 820, Floor: 720, BlockSize: 60}, e.Field())
}

func TestNewEngineViewportOverride(t *testing.T) {
	e := New(Options{Width: 600, Height: 1000})
	cur, _ := e.Current()
	assert.Equal(t, 300.0, cur.X)
	assert.Equal(t, 900.0, e.Field().Floor)
}

func TestFallingBlockDescends(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setCurrent(210, 30, red, Normal)

	e.Update(dt)

	cur, _ := e.Current()
	assert.Equal(t, 32.5, cur.Y, "drop speed 2 + level 1 * 0.5")
}

func TestLandsOnFloor(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setCurrent(210, 690, red, Normal)

	e.Update(dt)

	require.Len(t, e.blocks, 1)
	assert.Equal(t, 690.0, e.blocks[0].Y, "rests exactly at floor - size/2")
	assert.False(t, e.GameOver())

	cur, ok := e.Current()
	require.True(t, ok, "a new block spawns after landing")
	assert.Equal(t, 30.0, cur.Y)
}

func TestLandingNearTopEndsGame(t *testing.T) {
	e, sink := newTestEngine(t)
	e.setBoard(at(210, 90, teal))
	e.setCurrent(210, 30, red, Normal)

	e.Update(dt)

	require.True(t, e.GameOver())
	over := sink.withCount(50)
	require.Len(t, over, 1)
	assert.Equal(t, 210.0, over[0].X)
	assert.Equal(t, 410.0, over[0].Y)

	before := e.Snapshot()
	e.Update(dt)
	assert.False(t, e.MoveLeft())
	assert.False(t, e.MoveRight())
	e.Drop()
	assert.False(t, e.UsePowerUp())
	assert.Equal(t, before.Hash(), e.Snapshot().Hash(), "game over freezes the simulation")
}

func TestLandingBelowThresholdKeepsPlaying(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setBoard(at(210, 121, teal))
	e.setCurrent(210, 61, red, Normal)

	e.Update(dt)

	assert.Len(t, e.blocks, 2)
	assert.False(t, e.GameOver(), "landing at y=61 is below one block size")
}

func TestBombLandingClearsNeighbours(t *testing.T) {
	e, sink := newTestEngine(t)
	green := Palette[4]
	e.setBoard(at(210, 690, red), at(150, 690, blue), at(390, 690, green))
	e.setCurrent(210, 630, BombColor, Bomb)

	e.Update(dt)

	require.Len(t, e.blocks, 1)
	assert.Equal(t, green, e.blocks[0].Color, "only the distant block survives")
	assert.Equal(t, 50, e.Score(), "25 per non-bomb neighbour")
	assert.Equal(t, 2, e.BlocksCleared())
	assert.Equal(t, 1, e.Combo().Count)
	assert.Len(t, sink.withCount(15), 3, "one per removed neighbour plus the bomb")
}

func TestBombNeighbourBombsDoNotScore(t *testing.T) {
	e, _ := newTestEngine(t)
	bomb := special(210, 630, Bomb)
	e.setBoard(at(210, 690, red), special(150, 690, Bomb), bomb)

	e.applyLandingEffect(e.blocks[2])

	assert.Empty(t, e.blocks)
	assert.Equal(t, 25, e.score)
	assert.Equal(t, 1, e.blocksCleared)
}

func TestLoneBombRegistersNoHit(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setBoard(special(210, 690, Bomb))

	e.applyLandingEffect(e.blocks[0])

	assert.Empty(t, e.blocks)
	assert.Zero(t, e.score)
	assert.Zero(t, e.combo.Count())
}

func TestGravityBoostReverts(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setBoard(special(210, 690, Gravity))

	e.applyLandingEffect(e.blocks[0])
	assert.Equal(t, 8.0, e.gravity)

	e.tickGravityBoost(4.9)
	assert.Equal(t, 8.0, e.gravity)

	e.tickGravityBoost(0.2)
	assert.Equal(t, 3.0, e.gravity)
}

func TestLevelUpDuringBoostKeepsBoost(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setBoard(special(210, 690, Gravity))
	e.applyLandingEffect(e.blocks[0])

	e.blocksCleared = 50
	e.checkLevel()
	assert.Equal(t, 2, e.level)
	assert.Equal(t, 8.0, e.gravity)

	e.tickGravityBoost(5.1)
	assert.Equal(t, 3.5, e.gravity, "reverts to the level 2 gravity")
}

func TestTransformerRecolors(t *testing.T) {
	e, sink := newTestEngine(t)
	e.setBoard(
		at(30, 690, Palette[0]),
		at(90, 690, Palette[1]),
		at(150, 690, Palette[2]),
		at(210, 690, Palette[3]),
		at(270, 690, Palette[4]),
		special(390, 690, Transformer),
	)

	e.applyLandingEffect(e.blocks[5])

	recolored := 0
	for _, b := range e.blocks[:5] {
		if b.Color == TransformerColor {
			recolored++
		}
	}
	assert.Equal(t, 3, recolored)
	assert.Len(t, e.blocks, 6)
	assert.Len(t, sink.withCount(5), 3)
}

func TestTransformerWithFewTargets(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setBoard(at(30, 690, red), at(90, 690, blue), special(390, 690, Transformer))

	e.applyLandingEffect(e.blocks[2])

	assert.Equal(t, TransformerColor, e.blocks[0].Color)
	assert.Equal(t, TransformerColor, e.blocks[1].Color)
}

func TestMoveWithinBounds(t *testing.T) {
	e, _ := newTestEngine(t)

	e.setCurrent(30, 300, red, Normal)
	assert.False(t, e.MoveLeft(), "left wall")
	assert.True(t, e.MoveRight())
	cur, _ := e.Current()
	assert.Equal(t, 90.0, cur.X)

	e.setCurrent(390, 300, red, Normal)
	assert.False(t, e.MoveRight(), "right wall")
	assert.True(t, e.MoveLeft())
}

func TestMoveBlockedBySettledBlock(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setBoard(at(270, 300, teal))

	e.setCurrent(210, 300, red, Normal)
	assert.False(t, e.MoveRight())

	e.setCurrent(210, 200, red, Normal)
	assert.True(t, e.MoveRight(), "clear at the current height")
}

func TestDropToFloor(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setCurrent(210, 30, red, Normal)

	e.Drop()

	require.Len(t, e.blocks, 1)
	y := e.blocks[0].Y
	assert.LessOrEqual(t, y, 690.0)
	assert.Greater(t, y, 690.0-2.5, "stays within one fall step of contact")
	cur, _ := e.Current()
	assert.Equal(t, 30.0, cur.Y)
}

func TestDropOntoStack(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setBoard(at(210, 690, teal))
	e.setCurrent(210, 30, red, Normal)

	e.Drop()

	require.Len(t, e.blocks, 2)
	assertNoOverlap(t, e.blocks)
	assert.LessOrEqual(t, e.blocks[1].Y, 630.0)
	assert.Greater(t, e.blocks[1].Y, 630.0-2.5)
}

func TestDropTriggersMerge(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setBoard(at(150, 690, red), at(270, 690, red))
	e.setCurrent(210, 30, red, Normal)

	e.Drop()

	assert.Len(t, e.blocks, 1)
	assert.Equal(t, 30, e.Score())
}

func TestPowerUpBelowMaxIsNoop(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setBoard(at(210, 690, red))
	e.charge = 99
	before := e.Snapshot()

	assert.False(t, e.UsePowerUp())
	assert.Equal(t, before, e.Snapshot())
}

func TestPowerUpClearsBottomBand(t *testing.T) {
	e, sink := newTestEngine(t)
	e.setBoard(at(90, 690, red), at(150, 600, blue), at(210, 500, teal))
	e.charge = 100

	require.True(t, e.UsePowerUp())

	require.Len(t, e.blocks, 1)
	assert.Equal(t, 500.0, e.blocks[0].Y, "only blocks centred in the bottom 150 units go")
	assert.Equal(t, 30, e.score, "15 per removed block")
	assert.Equal(t, 2, e.blocksCleared)
	assert.Zero(t, e.charge)
	assert.Equal(t, 15.0, e.shake)
	assert.Len(t, sink.withCount(10), 2)
}

func TestChargeSaturates(t *testing.T) {
	e, _ := newTestEngine(t)
	e.charge = 98
	e.setBoard(at(100, 100, red), at(140, 100, red), at(100, 140, red))

	e.resolveMerges()

	assert.Equal(t, 100, e.PowerUpCharge())
}

func TestLevelUp(t *testing.T) {
	e, sink := newTestEngine(t)
	e.blocksCleared = 49
	e.setBoard(at(100, 100, red), at(140, 100, red), at(100, 140, red))

	e.resolveMerges()
	e.checkLevel()

	assert.Equal(t, 2, e.Level())
	assert.Equal(t, 3.5, e.Gravity())
	assert.Equal(t, 10.0, e.ScreenShake())
	assert.Len(t, sink.withCount(30), 1)

	cur, _ := e.Current()
	e.setCurrent(cur.X, 30, red, Normal)
	e.Update(dt)
	cur, _ = e.Current()
	assert.Equal(t, 33.0, cur.Y, "fall step grows with level")
}

func TestRestart(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setBoard(at(210, 690, red), at(90, 690, blue))
	e.score = 400
	e.blocksCleared = 120
	e.level = 3
	e.gravity = 8
	e.boostLeft = 2
	e.charge = 60
	e.shake = 12
	e.gameOver = true
	e.combo.RegisterHit(10)
	e.particles.SpawnExplosion(0, 0, red, 20)

	e.Restart()

	assert.Empty(t, e.Blocks())
	assert.Empty(t, e.Particles())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.BlocksCleared())
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 3.0, e.Gravity())
	assert.Zero(t, e.PowerUpCharge())
	assert.Zero(t, e.ScreenShake())
	assert.False(t, e.GameOver())
	assert.Equal(t, ComboState{Multiplier: 1, Window: 3}, e.Combo())
	_, ok := e.Current()
	assert.True(t, ok)
}

func TestShakeAndHueAdvance(t *testing.T) {
	e, _ := newTestEngine(t)
	e.shake = 15

	e.Update(0.1)

	assert.InDelta(t, 12, e.ScreenShake(), 1e-9)
	assert.InDelta(t, 2, e.HuePhase(), 1e-9)

	e.Update(1)
	assert.Zero(t, e.ScreenShake())
}

func TestTrailsOnlyFromSpecialBlocks(t *testing.T) {
	e, sink := newTestEngine(t)
	e.setBoard(at(30, 690, red), at(90, 690, blue))
	e.setCurrent(210, 30, red, Normal)
	for range 100 {
		e.Update(dt)
	}
	assert.Zero(t, sink.trails)

	e, sink = newTestEngine(t)
	var specials []Block
	for i := range 7 {
		specials = append(specials, special(30+float64(i)*60, 690, Multiplier))
	}
	e.setBoard(specials...)
	e.setCurrent(210, 30, red, Normal)
	for range 100 {
		e.Update(dt)
	}
	assert.InDelta(t, 70, sink.trails, 35, "about one in ten frames per special block")
}

func TestEffectsReachBothSinks(t *testing.T) {
	e, sink := newTestEngine(t)
	e.setBoard(at(100, 100, red), at(140, 100, red), at(100, 140, red))

	e.resolveMerges()

	assert.Equal(t, sink.total(), e.particles.Len())
	assert.Equal(t, 30, sink.total())
}

func TestAccessorsReturnCopies(t *testing.T) {
	e, _ := newTestEngine(t)
	e.setBoard(at(210, 690, red))

	blocks := e.Blocks()
	blocks[0].X = -1
	assert.Equal(t, 210.0, e.blocks[0].X)

	snap := e.Snapshot()
	snap.Blocks[0].Y = -1
	assert.Equal(t, 690.0, e.blocks[0].Y)
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	e := New(Options{Seed: 2024})
	script := rand.New(rand.NewSource(7))
	perLevel := config.DefaultCascadeConfig().Scoring.BlocksPerLevel
	restarts := 0

	for tick := range 4000 {
		switch script.Intn(40) {
		case 0:
			e.MoveLeft()
		case 1:
			e.MoveRight()
		case 2:
			e.Drop()
		case 3:
			e.UsePowerUp()
		}
		e.Update(dt)

		blocks := e.Blocks()
		assertNoOverlap(t, blocks)
		require.Equal(t, e.BlocksCleared()/perLevel+1, e.Level(), "tick %d", tick)
		require.LessOrEqual(t, e.PowerUpCharge(), e.PowerUpMax())
		for _, b := range blocks {
			require.Greater(t, b.Size, 0.0)
		}

		if e.GameOver() {
			restarts++
			e.Restart()
		}
	}
	assert.Positive(t, e.Stats().Landings+restarts, "the run should have landed blocks")
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := New(Options{Seed: 12345})
		for tick := range 1500 {
			switch {
			case tick%37 == 0:
				e.MoveLeft()
			case tick%53 == 0:
				e.MoveRight()
			case tick%97 == 0:
				e.Drop()
			case tick%211 == 0:
				e.UsePowerUp()
			}
			e.Update(dt)
			if e.GameOver() {
				e.Restart()
			}
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a, b)
}

func TestConfigOverrides(t *testing.T) {
	cfg := config.DefaultCascadeConfig()
	cfg.Field.BlockSize = 40
	cfg.Physics.DropSpeed = 5
	e := New(Options{Config: cfg})

	cur, _ := e.Current()
	assert.Equal(t, 40.0, cur.Size)
	assert.Equal(t, 20.0, cur.Y)
	e.setCurrent(cur.X, 20, red, Normal)
	e.Update(dt)
	cur, _ = e.Current()
	assert.Equal(t, 25.5, cur.Y)
}

func TestSettleDropsFloatingBlocks(t *testing.T) {
	tests := []struct {
		name    string
		gravity float64
		lower   float64 // resting Y of the block on the floor
		stacked float64 // resting Y of the block stacked on it
		lone    float64 // resting Y of the lone block in its own column
	}{
		{"level gravity", 3, 690, 629, 688},
		{"boosted gravity", 8, 684, 624, 684},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			e.setCurrent(30, 30, red, Normal)
			e.setBoard(
				at(90, 300, red),
				at(90, 200, blue),
				at(330, 100, teal),
				at(210, 690, blue),
			)
			e.gravity = tt.gravity
			if tt.gravity != e.baseGravity {
				e.boostLeft = 5
			}

			e.Update(dt)

			require.Len(t, e.blocks, 4)
			floor := e.floor()
			lower, stacked, lone, grounded := e.blocks[0], e.blocks[1], e.blocks[2], e.blocks[3]

			assert.Equal(t, tt.lower, lower.Y)
			assert.Equal(t, tt.stacked, stacked.Y)
			assert.Equal(t, tt.lone, lone.Y)
			assert.Equal(t, 690.0, grounded.Y, "a block touching the floor stays put")

			// Each block is within one gravity step of its support.
			for _, b := range []Block{lower, lone} {
				gap := floor - b.Bounds().MaxY
				assert.GreaterOrEqual(t, gap, 0.0)
				assert.Less(t, gap, tt.gravity)
			}
			gap := lower.Bounds().MinY - stacked.Bounds().MaxY
			assert.GreaterOrEqual(t, gap, 0.0, "stacked block stops on the block below")
			assert.Less(t, gap, tt.gravity)

			for _, b := range e.blocks {
				assert.Contains(t, []float64{90, 210, 330}, b.X, "settling never moves sideways")
			}
			assertNoOverlap(t, e.blocks)
		})
	}
}

func TestUpdateIgnoresNonFiniteDelta(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1} {
		e, _ := newTestEngine(t)
		e.combo.RegisterHit(10)
		e.addShake(5)

		e.Update(bad)

		assert.Zero(t, e.Stats().Elapsed, "dt %v", bad)
		assert.False(t, math.IsNaN(e.ScreenShake()), "dt %v", bad)
		assert.False(t, math.IsNaN(e.HuePhase()), "dt %v", bad)

		// Four seconds outlasts the combo window and ends before the first landing.
		for range 240 {
			e.Update(dt)
		}
		assert.Zero(t, e.Combo().Count, "combo should expire after a bad dt %v", bad)
	}
}
