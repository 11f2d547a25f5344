package config

import (
	_ "embed"
)

//go:embed defaults/cascade.yaml
var defaultCascadeYAML []byte

// DefaultCascadeConfig returns the built-in Color Cascade tuning.
// It mirrors defaults/cascade.yaml and backs it up if the embed fails to parse.
func DefaultCascadeConfig() CascadeConfig {
	return CascadeConfig{
		Field: FieldConfig{
			Width:     420,
			Height:    820,
			BlockSize: 60,
			UIMargin:  100,
		},
		Physics: PhysicsConfig{
			DropSpeed:            2,
			LevelSpeedFactor:     0.5,
			BaseGravity:          3,
			GravityPerLevel:      0.5,
			GravityBoost:         8,
			GravityBoostDuration: 5,
			ParticleGravity:      500,
		},
		Scoring: ScoringConfig{
			MinCluster:       3,
			BigCluster:       5,
			PointsPerBlock:   10,
			ExtraBlockBonus:  5,
			MultiplierFactor: 2,
			RainbowBonus:     50,
			BombPoints:       25,
			BombRadius:       2,
			BlocksPerLevel:   50,
			TransformCount:   3,
		},
		Combo: ComboConfig{
			Window: 3.0,
			Step:   0.5,
		},
		PowerUp: PowerUpConfig{
			Max:            100,
			ChargePerBlock: 2,
			BandHeight:     150,
			BonusPerBlock:  15,
		},
		Effects: EffectsConfig{
			MaxParticles: 2000,
			TrailChance:  0.1,
			HueSpeed:     20,
			ShakeMild:    5,
			ShakeStrong:  15,
			ShakeLevelUp: 10,
			ShakeDecay:   30,
			Explosions: ExplosionCounts{
				Merge:     10,
				BigMerge:  40,
				Bomb:      15,
				Transform: 5,
				GameOver:  50,
				LevelUp:   30,
				PowerUp:   10,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			SpeedScale: 1.0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	if gameID == "cascade" {
		return defaultCascadeYAML
	}
	return nil
}
