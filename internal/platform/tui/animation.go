package tui

import (
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// AnimationPhase represents the current phase of a turn animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// TileSprite is a tile drawn between cells while it slides.
type TileSprite struct {
	Value int
	From  engine.Position
	To    engine.Position
	Merge bool // Slides into a tile of equal value
}

// eventLog collects engine events between two turns.
type eventLog struct {
	events []engine.Event
}

// Notify implements engine.Observer.
func (l *eventLog) Notify(ev engine.Event) {
	l.events = append(l.events, ev)
}

// drain returns the collected events and empties the log.
func (l *eventLog) drain() []engine.Event {
	events := l.events
	l.events = nil
	return events
}

// TurnAnimation plays one turn: moving tiles slide to their destination,
// then merged and spawned tiles pop. Input is ignored until it finishes.
type TurnAnimation struct {
	phase      AnimationPhase
	ticks      int
	slideTicks int
	popTicks   int
	progress   float64

	// static holds the values of tiles that stay put during the slide.
	static  [][]int
	sprites []TileSprite
	merged  map[engine.Position]bool
	spawned *engine.Position
}

// newTurnAnimation builds the animation for a turn from the board before the
// move and the events the engine emitted while playing it.
func newTurnAnimation(before [][]int, events []engine.Event, timing config.AnimationConfig) TurnAnimation {
	a := TurnAnimation{
		slideTicks: timing.SlideTicks,
		popTicks:   timing.PopTicks,
		merged:     make(map[engine.Position]bool),
	}
	if !timing.Enabled {
		return a
	}

	a.static = make([][]int, len(before))
	for r := range before {
		a.static[r] = append([]int(nil), before[r]...)
	}

	for _, ev := range events {
		switch ev := ev.(type) {
		case engine.TileMoved:
			a.sprites = append(a.sprites, TileSprite{
				Value: ev.Value,
				From:  ev.From,
				To:    ev.To,
				Merge: ev.Merge,
			})
			a.static[ev.From.Row][ev.From.Column] = 0
		case engine.TileValueChanged:
			a.merged[ev.At] = true
		case engine.TileCreated:
			at := ev.At
			a.spawned = &at
		}
	}

	switch {
	case len(a.sprites) > 0:
		a.phase = PhaseSlide
	case a.spawned != nil:
		a.phase = PhasePop
	}
	return a
}

// Active reports whether the animation is still playing.
func (a TurnAnimation) Active() bool {
	return a.phase != PhaseNone
}

// Phase returns the current animation phase.
func (a TurnAnimation) Phase() AnimationPhase {
	return a.phase
}

// Progress returns the eased progress of the current phase in [0, 1].
func (a TurnAnimation) Progress() float64 {
	return easeOutQuad(a.progress)
}

// Advance moves the animation forward by one tick.
// Returns true if animation is still in progress.
func (a *TurnAnimation) Advance() bool {
	if a.phase == PhaseNone {
		return false
	}

	a.ticks++

	duration := a.popTicks
	if a.phase == PhaseSlide {
		duration = a.slideTicks
	}
	if duration < 1 {
		duration = 1
	}

	a.progress = float64(a.ticks) / float64(duration)
	if a.progress > 1.0 {
		a.progress = 1.0
	}

	if a.ticks >= duration {
		a.finishPhase()
	}
	return a.phase != PhaseNone
}

// finishPhase completes the current animation phase.
func (a *TurnAnimation) finishPhase() {
	a.ticks = 0
	a.progress = 0

	if a.phase == PhaseSlide && (a.spawned != nil || len(a.merged) > 0) {
		a.phase = PhasePop
		a.sprites = nil
		return
	}

	a.phase = PhaseNone
	a.sprites = nil
	a.static = nil
}

// Popping reports whether the tile at p is highlighted in the pop phase.
func (a TurnAnimation) Popping(p engine.Position) bool {
	if a.phase != PhasePop {
		return false
	}
	if a.spawned != nil && *a.spawned == p {
		return true
	}
	return a.merged[p]
}

// Spawned reports whether p holds the tile spawned this turn.
func (a TurnAnimation) Spawned(p engine.Position) bool {
	return a.spawned != nil && *a.spawned == p
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolate returns the sprite's current position in fractional cells.
func (s TileSprite) interpolate(t float64) (row, col float64) {
	row = core.Lerp(float64(s.From.Row), float64(s.To.Row), t)
	col = core.Lerp(float64(s.From.Column), float64(s.To.Column), t)
	return row, col
}
