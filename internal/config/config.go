// Package config provides YAML-based tuning for Color Cascade and the
// difficulty manager that turns it into per-level physics.
package config

// CascadeConfig contains every tunable of the Color Cascade simulation.
type CascadeConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Combo      ComboConfig      `yaml:"combo"`
	PowerUp    PowerUpConfig    `yaml:"power_up"`
	Effects    EffectsConfig    `yaml:"effects"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the play field in world units.
type FieldConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	BlockSize float64 `yaml:"block_size"`
	UIMargin  float64 `yaml:"ui_margin"` // Reserved strip above the bottom edge
}

// Floor returns the y coordinate of the play-field floor.
func (f FieldConfig) Floor() float64 {
	return f.Height - f.UIMargin
}

// PhysicsConfig defines falling and settling speeds.
type PhysicsConfig struct {
	DropSpeed            float64 `yaml:"drop_speed"`             // Fall step per tick at level 0
	LevelSpeedFactor     float64 `yaml:"level_speed_factor"`     // Extra fall step per level
	BaseGravity          float64 `yaml:"base_gravity"`           // Settling step at level 1
	GravityPerLevel      float64 `yaml:"gravity_per_level"`      // Extra settling step per level
	GravityBoost         float64 `yaml:"gravity_boost"`          // Settling step while a Gravity block is active
	GravityBoostDuration float64 `yaml:"gravity_boost_duration"` // Seconds
	ParticleGravity      float64 `yaml:"particle_gravity"`
}

// ScoringConfig defines merge and bomb scoring.
type ScoringConfig struct {
	MinCluster       int     `yaml:"min_cluster"`
	BigCluster       int     `yaml:"big_cluster"` // Upgrades the replacement to a Bomb
	PointsPerBlock   int     `yaml:"points_per_block"`
	ExtraBlockBonus  int     `yaml:"extra_block_bonus"` // Per member beyond MinCluster
	MultiplierFactor int     `yaml:"multiplier_factor"`
	RainbowBonus     int     `yaml:"rainbow_bonus"`
	BombPoints       int     `yaml:"bomb_points"` // Per removed non-bomb neighbour
	BombRadius       float64 `yaml:"bomb_radius"` // In block sizes
	BlocksPerLevel   int     `yaml:"blocks_per_level"`
	TransformCount   int     `yaml:"transform_count"`
}

// ComboConfig defines the combo window.
type ComboConfig struct {
	Window float64 `yaml:"window"` // Seconds
	Step   float64 `yaml:"step"`   // Multiplier increase per extra hit
}

// PowerUpConfig defines the bottom-band clear.
type PowerUpConfig struct {
	Max            int     `yaml:"max"`
	ChargePerBlock int     `yaml:"charge_per_block"`
	BandHeight     float64 `yaml:"band_height"`
	BonusPerBlock  int     `yaml:"bonus_per_block"`
}

// EffectsConfig defines particle and shake output.
type EffectsConfig struct {
	MaxParticles int     `yaml:"max_particles"`
	TrailChance  float64 `yaml:"trail_chance"`
	HueSpeed     float64 `yaml:"hue_speed"` // Degrees per second
	ShakeMild    float64 `yaml:"shake_mild"`
	ShakeStrong  float64 `yaml:"shake_strong"`
	ShakeLevelUp float64 `yaml:"shake_level_up"`
	ShakeDecay   float64 `yaml:"shake_decay"` // Units per second

	Explosions ExplosionCounts `yaml:"explosions"`
}

// ExplosionCounts is the particle count spawned at each trigger point.
type ExplosionCounts struct {
	Merge     int `yaml:"merge"`
	BigMerge  int `yaml:"big_merge"`
	Bomb      int `yaml:"bomb"`
	Transform int `yaml:"transform"`
	GameOver  int `yaml:"game_over"`
	LevelUp   int `yaml:"level_up"`
	PowerUp   int `yaml:"power_up"`
}

// DifficultyConfig defines how speed reacts to the level.
type DifficultyConfig struct {
	Enabled    bool    `yaml:"enabled"`     // false freezes speed at level-1 values
	SpeedScale float64 `yaml:"speed_scale"` // Multiplies drop_speed
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown names yield "".
func ParsePreset(name string) DifficultyPreset {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// SpeedScaleForPreset returns the drop-speed multiplier for a preset.
func SpeedScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.5
	default:
		return 1.0
	}
}
