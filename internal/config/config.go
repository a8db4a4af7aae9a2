// Package config provides YAML-based game configuration loading and
// difficulty management for the runner platform.
package config

// RunnerConfig contains all configuration for the runner game.
type RunnerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Patterns   PatternsConfig   `yaml:"patterns"`
	Score      ScoreConfig      `yaml:"score"`
	Session    SessionConfig    `yaml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the player's vertical kinematics.
// Units are world units and seconds; Y grows downward.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`             // Downward acceleration (units/s^2)
	JumpSpeed         float64 `yaml:"jump_speed"`          // Upward launch speed (units/s)
	HoldGravityFactor float64 `yaml:"hold_gravity_factor"` // Gravity fraction while jump is held during ascent
	MaxJumpHold       float64 `yaml:"max_jump_hold"`       // Hold-extension budget (seconds)
	MaxFallSpeed      float64 `yaml:"max_fall_speed"`      // Terminal velocity (units/s)
	MaxJumps          int     `yaml:"max_jumps"`           // Mid-air jumps before landing; the ground jump is always free
}

// WorldConfig defines scroll, camera, and world-management parameters.
type WorldConfig struct {
	BaseSpeed         float64 `yaml:"base_speed"`          // Initial scroll speed (units/s)
	SpeedAccel        float64 `yaml:"speed_accel"`         // Scroll acceleration (units/s^2)
	MaxSpeed          float64 `yaml:"max_speed"`           // Speed cap; 0 disables the cap
	PlayerSpeedFactor float64 `yaml:"player_speed_factor"` // Player advance relative to scroll (>1 closes on obstacles)
	GCMargin          float64 `yaml:"gc_margin"`           // Distance behind the camera before colliders are collected
	VoidDepth         float64 `yaml:"void_depth"`          // Fallback surface Y where no pattern exists
	SpawnAhead        float64 `yaml:"spawn_ahead"`         // How far past the camera right edge to keep paved
	MaxLead           float64 `yaml:"max_lead"`            // Max player lead over the camera anchor
	StepTolerance     float64 `yaml:"step_tolerance"`      // Max surface rise the player walks up without jumping
}

// PlayerConfig defines the player's collision body.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`   // Hitbox width (world units)
	Height float64 `yaml:"height"`  // Hitbox height (world units)
	StartX float64 `yaml:"start_x"` // Initial world X at run start
}

// PatternsConfig defines pattern factory geometry and selection weights.
type PatternsConfig struct {
	TileWidth      float64 `yaml:"tile_width"`      // Width of one ground tile
	CapWidth       float64 `yaml:"cap_width"`       // Width of each end cap (left cap draws at negative local X)
	MinTiles       int     `yaml:"min_tiles"`       // Minimum tiles per pattern
	MaxTiles       int     `yaml:"max_tiles"`       // Maximum tiles per pattern
	DangerDistance float64 `yaml:"danger_distance"` // World distance before Medium+ patterns are allowed
	PickupChance   float64 `yaml:"pickup_chance"`   // Probability a pattern carries pickups

	// Relative selection weights per variant.
	PlainWeight int `yaml:"plain_weight"`
	GapWeight   int `yaml:"gap_weight"`
	SpikeWeight int `yaml:"spike_weight"`
	BlockWeight int `yaml:"block_weight"`
	PlaneWeight int `yaml:"plane_weight"`
	MixedWeight int `yaml:"mixed_weight"`
}

// ScoreConfig defines scoring and power-up thresholds.
type ScoreConfig struct {
	PickupPoints          int     `yaml:"pickup_points"`          // Points per collected pickup
	DistancePoints        int     `yaml:"distance_points"`        // Points per distance step crossed
	DistanceStep          float64 `yaml:"distance_step"`          // World units per distance scoring tier
	PowerupTier           int     `yaml:"powerup_tier"`           // Score tier that triggers invincibility
	InvincibilityDuration float64 `yaml:"invincibility_duration"` // Seconds of invincibility per power-up
	BlinkWarning          float64 `yaml:"blink_warning"`          // Final seconds with the blink cue
}

// SessionConfig defines game-over and death-sequence timing.
type SessionConfig struct {
	GraceDelay   float64 `yaml:"grace_delay"`    // Soft game-over grace window (seconds)
	PitFallSpeed float64 `yaml:"pit_fall_speed"` // Min downward speed for the pit-fall test (units/s)
	PitFallDepth float64 `yaml:"pit_fall_depth"` // How far below the surface counts as fallen (units)
	DeathDelay   float64 `yaml:"death_delay"`    // Delay between lethal contact and forced game-over
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Extra speed fraction at max difficulty
	HazardBoost     float64 `yaml:"hazard_boost"`     // Extra weight fraction for hazard patterns at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
