// Package config provides YAML-based game configuration loading for the
// puzzle: board rules and animation timing.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// GameConfig contains all configuration for a 2048 game.
type GameConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Animation AnimationConfig `yaml:"animation"`
}

// BoardConfig defines the board rules.
type BoardConfig struct {
	Size              int     `yaml:"size"`
	StartTiles        int     `yaml:"start_tiles"`
	Spawn4Probability float64 `yaml:"spawn4_probability"` // 0.0-1.0
}

// AnimationConfig defines tile animation timing in ticks.
type AnimationConfig struct {
	Enabled    bool `yaml:"enabled"`
	SlideTicks int  `yaml:"slide_ticks"`
	PopTicks   int  `yaml:"pop_ticks"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks that the configuration describes a playable game.
func (c GameConfig) Validate() error {
	b := c.Board
	switch {
	case b.Size < 2 || b.Size > 8:
		return fmt.Errorf("%w: board.size %d must be within 2..8", ErrInvalidConfig, b.Size)
	case b.StartTiles < 1 || b.StartTiles >= b.Size*b.Size:
		return fmt.Errorf("%w: board.start_tiles %d must be within 1..%d", ErrInvalidConfig, b.StartTiles, b.Size*b.Size-1)
	case b.Spawn4Probability < 0 || b.Spawn4Probability > 1:
		return fmt.Errorf("%w: board.spawn4_probability %.2f must be within 0..1", ErrInvalidConfig, b.Spawn4Probability)
	}

	a := c.Animation
	if a.Enabled && (a.SlideTicks < 1 || a.PopTicks < 1) {
		return fmt.Errorf("%w: animation ticks must be positive", ErrInvalidConfig)
	}
	return nil
}

// EngineConfig converts the board rules into engine session rules.
func (c GameConfig) EngineConfig(seed int64) engine.Config {
	return engine.Config{
		Size:              c.Board.Size,
		Spawn4Probability: c.Board.Spawn4Probability,
		StartTiles:        c.Board.StartTiles,
		Seed:              seed,
	}
}
