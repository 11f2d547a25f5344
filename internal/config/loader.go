package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const cascadeFile = "cascade.yaml"

// LoadCascade loads Color Cascade configuration.
// Search order: customPath -> ~/.arcade/configs/cascade.yaml -> ./configs/cascade.yaml -> embedded default.
// Files are decoded over the defaults, so a partial YAML only overrides what it names.
func LoadCascade(customPath string) (CascadeConfig, error) {
	cfg := DefaultCascadeConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath(cascadeFile), filepath.Join("configs", cascadeFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultCascadeConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	if err := yaml.Unmarshal(defaultCascadeYAML, &cfg); err != nil {
		return DefaultCascadeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate rejects tunings the simulation cannot run with.
func (c CascadeConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("field.width", c.Field.Width)
	positive("field.height", c.Field.Height)
	positive("field.block_size", c.Field.BlockSize)
	positive("physics.drop_speed", c.Physics.DropSpeed)
	positive("physics.base_gravity", c.Physics.BaseGravity)
	positive("combo.window", c.Combo.Window)
	positive("scoring.blocks_per_level", float64(c.Scoring.BlocksPerLevel))
	positive("power_up.max", float64(c.PowerUp.Max))

	if c.Field.UIMargin < 0 || c.Field.Floor() < c.Field.BlockSize {
		errs = append(errs, fmt.Errorf("field.ui_margin %v leaves no room for a block", c.Field.UIMargin))
	}
	if c.Scoring.MinCluster < 2 {
		errs = append(errs, fmt.Errorf("scoring.min_cluster must be at least 2, got %d", c.Scoring.MinCluster))
	}
	if c.Physics.LevelSpeedFactor < 0 {
		errs = append(errs, fmt.Errorf("physics.level_speed_factor must not be negative, got %v", c.Physics.LevelSpeedFactor))
	}
	if c.Effects.MaxParticles < 0 {
		errs = append(errs, fmt.Errorf("effects.max_particles must not be negative, got %d", c.Effects.MaxParticles))
	}
	if c.Effects.TrailChance < 0 || c.Effects.TrailChance > 1 {
		errs = append(errs, fmt.Errorf("effects.trail_chance must be within [0, 1], got %v", c.Effects.TrailChance))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ApplyCascadePreset modifies the config based on a difficulty preset.
func ApplyCascadePreset(cfg *CascadeConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.SpeedScale = 1.0
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.SpeedScale = SpeedScaleForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Combo.Window = 4.0
		cfg.Physics.LevelSpeedFactor = 0.25
	case DifficultyHard:
		cfg.Combo.Window = 2.0
		cfg.Physics.LevelSpeedFactor = 0.75
		cfg.PowerUp.Max = 150
	}
}
