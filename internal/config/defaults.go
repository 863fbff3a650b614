package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

//go:embed defaults/questions.yaml
var defaultQuestionsYAML []byte

// DefaultGameConfig returns the built-in configuration with the lenient
// tier applied.
func DefaultGameConfig() GameConfig {
	cfg := GameConfig{
		Playfield: PlayfieldConfig{
			Width:        400,
			Height:       600,
			GroundHeight: 50,
		},
		Physics: PhysicsConfig{
			Gravity:     7500,
			MaxVelocity: 150,
			JumpHeight:  18,
			TopBound:    20,
		},
		Bird: BirdConfig{
			X:    100,
			Y:    250,
			Size: 30,
		},
		Obstacles: ObstacleConfig{
			Width:         60,
			Gap:           150,
			MinHeight:     50,
			SpawnOffset:   50,
			RemoveMargin:  80,
			SpawnInterval: 2000,
			MaxStepFrames: 3,
		},
		Trivia: TriviaConfig{
			FirstDelay:     10000,
			Interval:       10000,
			RevealDelay:    500,
			ReadyDuration:  1000,
			GoDuration:     1000,
			RevivalCredits: 3,
			RewardTarget:   5,
		},
		Modes: defaultModes(),
	}
	_ = ApplyMode(&cfg, DefaultMode)
	return cfg
}

// GetDefaultYAML returns the embedded default YAML for a named document.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "game":
		return defaultGameYAML
	case "questions":
		return defaultQuestionsYAML
	default:
		return nil
	}
}
