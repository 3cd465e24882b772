package engine

// Event is a notification from the engine to a renderer.
type Event interface {
	tileEvent()
}

// TileCreated is sent when a tile spawns into a cell.
type TileCreated struct {
	TileID uint64
	Value  int
	At     Position
}

func (TileCreated) tileEvent() {}

// TileMoved is sent when a tile changes cell. Merge is set when the tile
// travels onto a tile it will merge with.
type TileMoved struct {
	TileID uint64
	Value  int
	From   Position
	To     Position
	Merge  bool
}

func (TileMoved) tileEvent() {}

// TileValueChanged is sent when a surviving tile doubles.
type TileValueChanged struct {
	TileID uint64
	Value  int
	At     Position
}

func (TileValueChanged) tileEvent() {}

// TileRemoved is sent when a tile is consumed by a merge or the board is cleared.
type TileRemoved struct {
	TileID uint64
	At     Position
}

func (TileRemoved) tileEvent() {}

// GameEnded is sent once when the session reaches game over.
type GameEnded struct {
	Moves    int
	MaxValue int
}

func (GameEnded) tileEvent() {}

// Observer receives engine events in the order they happen.
type Observer interface {
	Notify(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// Notify calls f(ev).
func (f ObserverFunc) Notify(ev Event) {
	f(ev)
}

// Animator exposes the two suspension points of a turn. Both calls block
// until the presentation layer is done; a turn never cancels mid-way.
type Animator interface {
	// AwaitTransitions returns once every moved tile finished its slide.
	AwaitTransitions(moves []Move)

	// AwaitSpawn returns once the spawned tile finished its entry animation.
	AwaitSpawn(t *Tile)
}

type nopObserver struct{}

func (nopObserver) Notify(Event) {}

type nopAnimator struct{}

func (nopAnimator) AwaitTransitions([]Move) {}
func (nopAnimator) AwaitSpawn(*Tile)        {}
