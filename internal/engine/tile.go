// Package engine implements the move-resolution engine of the 2048 puzzle:
// the grid of cells, the per-direction slide/merge resolver, the legal-move
// detector and the turn controller that sequences a full turn.
//
// The engine has no UI dependency. Rendering and animation timing are
// collaborators reached through the Observer and Animator interfaces.
package engine

import "math/rand"

// DefaultSpawn4Probability is the chance that a spawned tile is a 4.
const DefaultSpawn4Probability = 0.1

// Tile is a mergeable unit with a power-of-two value.
// A tile does not know its position; the cell that holds it does.
type Tile struct {
	id     uint64
	value  int
	merged bool
}

// NewTile creates a tile with the given identifier and value.
func NewTile(id uint64, value int) *Tile {
	return &Tile{id: id, value: value}
}

// ID returns the tile identifier, unique within a session.
func (t *Tile) ID() uint64 {
	return t.id
}

// Value returns the tile value.
func (t *Tile) Value() int {
	return t.value
}

// MergedThisTurn reports whether the tile absorbed another tile in the current turn.
func (t *Tile) MergedThisTurn() bool {
	return t.merged
}

// Double doubles the tile value and marks it as merged for this turn.
func (t *Tile) Double() {
	t.value *= 2
	t.merged = true
}

// resetTurn clears per-turn flags.
func (t *Tile) resetTurn() {
	t.merged = false
}

// SpawnValue picks the value for a newly spawned tile: 4 with probability
// spawn4Prob, otherwise 2.
func SpawnValue(rng *rand.Rand, spawn4Prob float64) int {
	if rng.Float64() < spawn4Prob {
		return 4
	}
	return 2
}
