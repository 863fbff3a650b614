// Package config provides YAML-based game configuration loading, mode
// presets and validation for flaptrivia.
package config

// GameConfig contains all tunables of a flaptrivia session.
// Distances are playfield units, durations are milliseconds.
type GameConfig struct {
	Playfield PlayfieldConfig     `yaml:"playfield"`
	Physics   PhysicsConfig       `yaml:"physics"`
	Bird      BirdConfig          `yaml:"bird"`
	Obstacles ObstacleConfig      `yaml:"obstacles"`
	Trivia    TriviaConfig        `yaml:"trivia"`
	Modes     map[Mode]ModeConfig `yaml:"modes"`

	// Active is filled by ApplyMode and never read from YAML.
	Active ModeConfig `yaml:"-"`
}

// PlayfieldConfig describes the logical canvas the simulation runs on.
type PlayfieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// GroundY returns the y coordinate of the ground surface.
func (p PlayfieldConfig) GroundY() float64 {
	return p.Height - p.GroundHeight
}

// PhysicsConfig defines the bird integrator parameters.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // units/s²
	MaxVelocity float64 `yaml:"max_velocity"` // units/s, symmetric clamp
	JumpHeight  float64 `yaml:"jump_height"`  // snap distance per jump
	TopBound    float64 `yaml:"top_bound"`    // a jump never lifts the bird above this
}

// BirdConfig defines the bird's spawn point and size.
type BirdConfig struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Size float64 `yaml:"size"`
}

// Radius returns half of the bird size.
func (b BirdConfig) Radius() float64 {
	return b.Size / 2
}

// ObstacleConfig defines pipe geometry and cadence.
type ObstacleConfig struct {
	Width         float64 `yaml:"width"`
	Gap           float64 `yaml:"gap"`
	MinHeight     float64 `yaml:"min_height"`
	SpawnOffset   float64 `yaml:"spawn_offset"`
	RemoveMargin  float64 `yaml:"remove_margin"`
	SpawnInterval int64   `yaml:"spawn_interval_ms"`
	MaxStepFrames float64 `yaml:"max_step_frames"` // cap on frame-normalized movement per tick
}

// TriviaConfig defines question timing, revival and victory parameters.
type TriviaConfig struct {
	FirstDelay     int64 `yaml:"first_delay_ms"`
	Interval       int64 `yaml:"interval_ms"`
	RevealDelay    int64 `yaml:"reveal_delay_ms"`
	ReadyDuration  int64 `yaml:"ready_ms"`
	GoDuration     int64 `yaml:"go_ms"`
	RevivalCredits int   `yaml:"revival_credits"`
	RewardTarget   int   `yaml:"reward_target"`
}

// ModeConfig is the per-tier part of the configuration.
type ModeConfig struct {
	Name       Mode    `yaml:"-"`
	PipeSpeed  float64 `yaml:"pipe_speed"`
	SavePoints bool    `yaml:"save_points"`
}
