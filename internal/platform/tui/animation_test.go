package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

var testTiming = config.AnimationConfig{Enabled: true, SlideTicks: 3, PopTicks: 2}

func pos(r, c int) engine.Position {
	return engine.Position{Row: r, Column: c}
}

// mergeTurn is the event stream of [2,2,0] sliding left with a spawn at (1,1).
func mergeTurn() ([][]int, []engine.Event) {
	before := [][]int{
		{2, 2, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
	events := []engine.Event{
		engine.TileMoved{TileID: 2, Value: 2, From: pos(0, 1), To: pos(0, 0), Merge: true},
		engine.TileValueChanged{TileID: 1, Value: 4, At: pos(0, 0)},
		engine.TileRemoved{TileID: 2, At: pos(0, 0)},
		engine.TileCreated{TileID: 3, Value: 2, At: pos(1, 1)},
	}
	return before, events
}

func TestTurnAnimationPhases(t *testing.T) {
	before, events := mergeTurn()
	a := newTurnAnimation(before, events, testTiming)

	require.True(t, a.Active())
	assert.Equal(t, PhaseSlide, a.Phase())
	require.Len(t, a.sprites, 1)
	assert.Equal(t, TileSprite{Value: 2, From: pos(0, 1), To: pos(0, 0), Merge: true}, a.sprites[0])

	// The moving tile leaves its cell; the tile it merges into stays
	assert.Equal(t, [][]int{{2, 0, 0}, {0, 0, 0}, {0, 0, 0}}, a.static)
	assert.Equal(t, [][]int{{2, 2, 0}, {0, 0, 0}, {0, 0, 0}}, before, "input board must not be modified")

	assert.True(t, a.Advance())
	assert.True(t, a.Advance())
	assert.Equal(t, PhaseSlide, a.Phase())
	assert.True(t, a.Advance())
	assert.Equal(t, PhasePop, a.Phase())

	assert.True(t, a.Popping(pos(0, 0)), "merged cell pops")
	assert.True(t, a.Popping(pos(1, 1)), "spawned cell pops")
	assert.True(t, a.Spawned(pos(1, 1)))
	assert.False(t, a.Popping(pos(2, 2)))

	assert.True(t, a.Advance())
	assert.False(t, a.Advance())
	assert.False(t, a.Active())
	assert.False(t, a.Popping(pos(1, 1)))
}

func TestTurnAnimationDisabled(t *testing.T) {
	before, events := mergeTurn()
	a := newTurnAnimation(before, events, config.AnimationConfig{Enabled: false})

	assert.False(t, a.Active())
	assert.False(t, a.Advance())
}

func TestTurnAnimationSpawnOnly(t *testing.T) {
	before := [][]int{{0, 0}, {0, 0}}
	events := []engine.Event{engine.TileCreated{TileID: 1, Value: 4, At: pos(1, 0)}}

	a := newTurnAnimation(before, events, testTiming)
	assert.Equal(t, PhasePop, a.Phase())
	assert.True(t, a.Popping(pos(1, 0)))
}

func TestTurnAnimationProgress(t *testing.T) {
	before, events := mergeTurn()
	a := newTurnAnimation(before, events, config.AnimationConfig{Enabled: true, SlideTicks: 4, PopTicks: 1})

	assert.InDelta(t, 0.0, a.Progress(), 1e-9)
	a.Advance()
	a.Advance()
	assert.InDelta(t, easeOutQuad(0.5), a.Progress(), 1e-9)

	row, col := a.sprites[0].interpolate(a.Progress())
	assert.InDelta(t, 0.0, row, 1e-9)
	assert.InDelta(t, 1-easeOutQuad(0.5), col, 1e-9)
}

func TestEventLogDrain(t *testing.T) {
	l := &eventLog{}
	l.Notify(engine.TileRemoved{TileID: 1})
	l.Notify(engine.GameEnded{Moves: 3})

	assert.Len(t, l.drain(), 2)
	assert.Empty(t, l.drain())
}
