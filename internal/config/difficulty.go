package config

// DifficultyManager derives level-dependent physics from a CascadeConfig.
type DifficultyManager struct {
	physics    PhysicsConfig
	perLevel   int
	enabled    bool
	speedScale float64
}

// NewDifficultyManager creates a difficulty manager for the given tuning.
func NewDifficultyManager(cfg CascadeConfig) *DifficultyManager {
	scale := cfg.Difficulty.SpeedScale
	if scale <= 0 {
		scale = 1
	}
	perLevel := cfg.Scoring.BlocksPerLevel
	if perLevel <= 0 {
		perLevel = 1 // Prevent division by zero
	}
	return &DifficultyManager{
		physics:    cfg.Physics,
		perLevel:   perLevel,
		enabled:    cfg.Difficulty.Enabled,
		speedScale: scale,
	}
}

// IsEnabled returns whether speed follows the level.
func (d *DifficultyManager) IsEnabled() bool {
	return d.enabled
}

// LevelFor returns the level reached after clearing the given number of blocks.
// Levels start at 1 regardless of whether progression is enabled.
func (d *DifficultyManager) LevelFor(blocksCleared int) int {
	if blocksCleared < 0 {
		blocksCleared = 0
	}
	return blocksCleared/d.perLevel + 1
}

// FallStep returns how far the falling block moves per tick at a level.
func (d *DifficultyManager) FallStep(level int) float64 {
	base := d.physics.DropSpeed * d.speedScale
	if !d.enabled {
		level = 1
	}
	return base + float64(level)*d.physics.LevelSpeedFactor
}

// Gravity returns the settling step at a level.
func (d *DifficultyManager) Gravity(level int) float64 {
	if !d.enabled || level < 1 {
		level = 1
	}
	return d.physics.BaseGravity + float64(level-1)*d.physics.GravityPerLevel
}
