package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultGameConfig(), cfg)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("board:\n  size: 5\n  spawn4_probability: 0.25\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Board.Size)
	assert.InDelta(t, 0.25, cfg.Board.Spawn4Probability, 1e-9)
	assert.Equal(t, 2, cfg.Board.StartTiles, "unset keys keep their defaults")
	assert.Equal(t, 8, cfg.Animation.SlideTicks)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  size: 1\n"), 0o600))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, os.WriteFile(path, []byte("board: [\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *GameConfig)
		ok     bool
	}{
		{"defaults", func(c *GameConfig) {}, true},
		{"board too large", func(c *GameConfig) { c.Board.Size = 9 }, false},
		{"too many start tiles", func(c *GameConfig) { c.Board.StartTiles = 16 }, false},
		{"no start tiles", func(c *GameConfig) { c.Board.StartTiles = 0 }, false},
		{"negative probability", func(c *GameConfig) { c.Board.Spawn4Probability = -0.1 }, false},
		{"zero slide ticks", func(c *GameConfig) { c.Animation.SlideTicks = 0 }, false},
		{"animation off ignores ticks", func(c *GameConfig) {
			c.Animation.Enabled = false
			c.Animation.SlideTicks = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := DefaultGameConfig()
	ec := cfg.EngineConfig(99)
	assert.Equal(t, 4, ec.Size)
	assert.Equal(t, 2, ec.StartTiles)
	assert.Equal(t, int64(99), ec.Seed)
}
