package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
// Mirrors defaults/runner.yaml so the game stays playable even if the
// embedded file fails to parse.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: PhysicsConfig{
			Gravity:           4000,
			JumpSpeed:         1400,
			HoldGravityFactor: 0.45,
			MaxJumpHold:       0.25,
			MaxFallSpeed:      3200,
			MaxJumps:          2,
		},
		World: WorldConfig{
			BaseSpeed:         420,
			SpeedAccel:        12,
			MaxSpeed:          0, // Uncapped
			PlayerSpeedFactor: 1.06,
			GCMargin:          400,
			VoidDepth:         4000,
			SpawnAhead:        2400,
			MaxLead:           1200,
			StepTolerance:     40,
		},
		Player: PlayerConfig{
			Width:  48,
			Height: 96,
			StartX: 300,
		},
		Patterns: PatternsConfig{
			TileWidth:      70,
			CapWidth:       34,
			MinTiles:       6,
			MaxTiles:       14,
			DangerDistance: 2500,
			PickupChance:   0.5,
			PlainWeight:    30,
			GapWeight:      16,
			SpikeWeight:    16,
			BlockWeight:    14,
			PlaneWeight:    10,
			MixedWeight:    14,
		},
		Score: ScoreConfig{
			PickupPoints:          1,
			DistancePoints:        15,
			DistanceStep:          100,
			PowerupTier:           1000,
			InvincibilityDuration: 6,
			BlinkWarning:          1,
		},
		Session: SessionConfig{
			GraceDelay:   0.5,
			PitFallSpeed: 60,
			PitFallDepth: 12,
			DeathDelay:   0.45,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
				HazardBoost:     0.8,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for the runner game.
func GetDefaultYAML() []byte {
	return defaultRunnerYAML
}
