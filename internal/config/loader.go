package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	var cfg RunnerConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.sanitize()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				cfg.sanitize()
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/runner.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			cfg.sanitize()
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.sanitize()
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runner", "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay alongside the progression curve
	switch preset {
	case DifficultyEasy:
		cfg.Patterns.DangerDistance = cfg.Patterns.DangerDistance * 1.5
	case DifficultyHard:
		cfg.Patterns.DangerDistance = cfg.Patterns.DangerDistance * 0.5
		cfg.World.SpeedAccel = cfg.World.SpeedAccel * 1.5
	}
}

// sanitize clamps malformed values to a playable range. A hand-edited
// config must not be able to produce NaN positions or a zero-size world.
func (c *RunnerConfig) sanitize() {
	def := DefaultRunnerConfig()

	fixF(&c.Physics.Gravity, def.Physics.Gravity)
	fixF(&c.Physics.JumpSpeed, def.Physics.JumpSpeed)
	fixF(&c.Physics.MaxFallSpeed, def.Physics.MaxFallSpeed)
	if c.Physics.HoldGravityFactor <= 0 || c.Physics.HoldGravityFactor > 1 || math.IsNaN(c.Physics.HoldGravityFactor) {
		c.Physics.HoldGravityFactor = def.Physics.HoldGravityFactor
	}
	if c.Physics.MaxJumpHold < 0 || math.IsNaN(c.Physics.MaxJumpHold) {
		c.Physics.MaxJumpHold = def.Physics.MaxJumpHold
	}
	if c.Physics.MaxJumps < 1 {
		c.Physics.MaxJumps = def.Physics.MaxJumps
	}

	fixF(&c.World.BaseSpeed, def.World.BaseSpeed)
	if c.World.SpeedAccel < 0 || math.IsNaN(c.World.SpeedAccel) {
		c.World.SpeedAccel = def.World.SpeedAccel
	}
	if c.World.MaxSpeed < 0 || math.IsNaN(c.World.MaxSpeed) {
		c.World.MaxSpeed = 0
	}
	if c.World.PlayerSpeedFactor < 1 || math.IsNaN(c.World.PlayerSpeedFactor) {
		c.World.PlayerSpeedFactor = def.World.PlayerSpeedFactor
	}
	fixF(&c.World.GCMargin, def.World.GCMargin)
	fixF(&c.World.VoidDepth, def.World.VoidDepth)
	fixF(&c.World.SpawnAhead, def.World.SpawnAhead)
	fixF(&c.World.MaxLead, def.World.MaxLead)
	fixF(&c.World.StepTolerance, def.World.StepTolerance)

	fixF(&c.Player.Width, def.Player.Width)
	fixF(&c.Player.Height, def.Player.Height)
	fixF(&c.Player.StartX, def.Player.StartX)

	fixF(&c.Patterns.TileWidth, def.Patterns.TileWidth)
	if c.Patterns.CapWidth < 0 || math.IsNaN(c.Patterns.CapWidth) {
		c.Patterns.CapWidth = def.Patterns.CapWidth
	}
	if c.Patterns.MinTiles < 1 {
		c.Patterns.MinTiles = 1
	}
	if c.Patterns.MaxTiles < c.Patterns.MinTiles {
		c.Patterns.MaxTiles = c.Patterns.MinTiles
	}
	fixF(&c.Patterns.DangerDistance, def.Patterns.DangerDistance)
	if c.Patterns.PickupChance < 0 || c.Patterns.PickupChance > 1 || math.IsNaN(c.Patterns.PickupChance) {
		c.Patterns.PickupChance = def.Patterns.PickupChance
	}

	if c.Score.DistanceStep <= 0 || math.IsNaN(c.Score.DistanceStep) {
		c.Score.DistanceStep = def.Score.DistanceStep
	}
	if c.Score.PowerupTier <= 0 {
		c.Score.PowerupTier = def.Score.PowerupTier
	}
	fixF(&c.Score.InvincibilityDuration, def.Score.InvincibilityDuration)

	if c.Session.GraceDelay < 0 || math.IsNaN(c.Session.GraceDelay) {
		c.Session.GraceDelay = def.Session.GraceDelay
	}
	if c.Session.DeathDelay < 0 || math.IsNaN(c.Session.DeathDelay) {
		c.Session.DeathDelay = def.Session.DeathDelay
	}
}

// fixF replaces non-positive or NaN values with a fallback.
func fixF(v *float64, fallback float64) {
	if *v <= 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		*v = fallback
	}
}
