package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default 2048 configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Size:              4,
			StartTiles:        2,
			Spawn4Probability: 0.1,
		},
		Animation: AnimationConfig{
			Enabled:    true,
			SlideTicks: 8,
			PopTicks:   6,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGameYAML
}
