package engine

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// State is the turn controller state.
type State int

const (
	StateNotStarted State = iota
	StateIdle
	StateResolving
	StateSpawning
	StateCheckingTerminal
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateIdle:
		return "Idle"
	case StateResolving:
		return "Resolving"
	case StateSpawning:
		return "Spawning"
	case StateCheckingTerminal:
		return "CheckingTerminal"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Config holds the rules of a session.
type Config struct {
	Size              int     // Board dimension
	Spawn4Probability float64 // Chance a spawned tile is a 4
	StartTiles        int     // Tiles spawned by Start
	Seed              int64   // RNG seed, 0 means time-based
}

// DefaultConfig returns the classic 4×4 rules.
func DefaultConfig() Config {
	return Config{
		Size:              DefaultSize,
		Spawn4Probability: DefaultSpawn4Probability,
		StartTiles:        2,
	}
}

// MinSize is the smallest board a session can play on.
const MinSize = 2

// Validate checks that the rules leave room to play after the start tiles.
func (c Config) Validate() error {
	if c.Size < MinSize {
		return fmt.Errorf("%w: size %d is below %d", ErrInvalidConfig, c.Size, MinSize)
	}
	if c.StartTiles < 1 || c.StartTiles >= c.Size*c.Size {
		return fmt.Errorf("%w: %d start tiles on a %dx%d board", ErrInvalidConfig, c.StartTiles, c.Size, c.Size)
	}
	if c.Spawn4Probability < 0 || c.Spawn4Probability > 1 {
		return fmt.Errorf("%w: spawn 4 probability %v", ErrInvalidConfig, c.Spawn4Probability)
	}
	return nil
}

// Turn is the outcome of one accepted move.
type Turn struct {
	Resolution Resolution
	Spawned    *Tile
	SpawnedAt  Position
	GameOver   bool
}

// Option configures a Session.
type Option func(*Session)

// WithObserver sets the event receiver.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithAnimator sets the presentation layer waited on at suspension points.
func WithAnimator(a Animator) Option {
	return func(s *Session) { s.animator = a }
}

// WithLogger sets the logger used for turn tracing.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides the time source used for start/end timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session owns one game: the grid, the RNG and the turn state machine.
// Input is accepted one move at a time; a Session is not safe for
// concurrent use.
type Session struct {
	id     string
	cfg    Config
	rng    *rand.Rand
	grid   *Grid
	state  State
	nextID uint64
	moves  int

	startedAt time.Time
	endedAt   time.Time

	observer Observer
	animator Animator
	logger   *log.Logger
	now      func() time.Time
}

// NewSession creates a session in the NotStarted state. Zero size and start
// tiles fall back to the classic rules; other values are checked by Start.
func NewSession(cfg Config, opts ...Option) *Session {
	if cfg.Size == 0 {
		cfg.Size = DefaultSize
	}
	if cfg.StartTiles == 0 {
		cfg.StartTiles = 2
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		observer: nopObserver{},
		animator: nopAnimator{},
		logger:   log.New(io.Discard),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the identifier of the current game. It changes on every Start.
func (s *Session) ID() string { return s.id }

// State returns the controller state.
func (s *Session) State() State { return s.state }

// Grid returns the current grid. Callers must not mutate it.
func (s *Session) Grid() *Grid { return s.grid }

// Moves returns the number of accepted moves in the current game.
func (s *Session) Moves() int { return s.moves }

// Config returns the session rules.
func (s *Session) Config() Config { return s.cfg }

// Start builds a fresh grid and spawns the starting tiles. It is valid
// before the first game, after game over, and between turns. Invalid rules
// are rejected before the current game is touched.
func (s *Session) Start() error {
	if s.busy() {
		return ErrTurnInProgress
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	s.clear()
	s.reset(NewGrid(s.cfg.Size))

	for range s.cfg.StartTiles {
		if _, _, err := s.spawn(); err != nil {
			s.finish()
			return fmt.Errorf("engine: start: %w", err)
		}
	}

	s.state = StateCheckingTerminal
	if !s.grid.CanMoveAny() {
		s.finish()
		return nil
	}

	s.state = StateIdle
	s.logger.Debug("game started", "session", s.id, "size", s.cfg.Size)
	return nil
}

// Restart is Start under the name the restart trigger uses.
func (s *Session) Restart() error {
	return s.Start()
}

// StartFrom begins a game on an existing grid. A grid with no legal move goes
// straight to game over without spawning.
func (s *Session) StartFrom(g *Grid) error {
	if s.busy() {
		return ErrTurnInProgress
	}

	s.clear()
	s.reset(g)
	for _, c := range g.cells {
		if c.tile != nil && c.tile.id > s.nextID {
			s.nextID = c.tile.id
		}
	}

	s.state = StateCheckingTerminal
	if !g.CanMoveAny() {
		s.finish()
		return nil
	}
	s.state = StateIdle
	return nil
}

// HandleInput parses an input symbol and plays the move. Unknown symbols
// return ErrInvalidDirection and leave the session untouched.
func (s *Session) HandleInput(symbol string) (Turn, error) {
	dir, err := ParseDirection(symbol)
	if err != nil {
		return Turn{}, err
	}
	return s.Move(dir)
}

// Move plays one full turn: resolve, spawn, terminal check. Moves outside
// Idle, in an unknown direction, or in a direction with no legal move are
// rejected without touching the board.
func (s *Session) Move(dir Direction) (Turn, error) {
	switch s.state {
	case StateIdle:
	case StateNotStarted:
		return Turn{}, ErrNotStarted
	case StateGameOver:
		return Turn{}, ErrGameOver
	default:
		return Turn{}, ErrTurnInProgress
	}

	if !dir.Valid() {
		return Turn{}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	if !s.grid.CanMove(dir) {
		if !s.grid.CanMoveAny() {
			s.finish()
			return Turn{}, ErrGameOver
		}
		return Turn{}, fmt.Errorf("%w: %s", ErrIllegalMove, dir)
	}

	turn := Turn{}

	// Resolving
	s.state = StateResolving
	moves := planMoves(s.grid, dir)
	for _, m := range moves {
		s.observer.Notify(TileMoved{
			TileID: m.Tile.id,
			Value:  m.Tile.value,
			From:   m.From,
			To:     m.To,
			Merge:  m.Merge,
		})
	}
	s.animator.AwaitTransitions(moves)

	merges := commitMerges(s.grid)
	for _, m := range merges {
		s.observer.Notify(TileValueChanged{TileID: m.Survivor.id, Value: m.Survivor.value, At: m.At})
		s.observer.Notify(TileRemoved{TileID: m.Consumed.id, At: m.At})
	}
	turn.Resolution = Resolution{Direction: dir, Moves: moves, Merges: merges}
	s.moves++

	// Spawning
	s.state = StateSpawning
	tile, cell, err := s.spawn()
	if err != nil {
		s.finish()
		return turn, fmt.Errorf("engine: spawn after %s: %w", dir, err)
	}
	turn.Spawned = tile
	turn.SpawnedAt = cell.pos

	s.logger.Debug("turn resolved",
		"session", s.id,
		"dir", dir,
		"moves", len(moves),
		"merges", len(merges),
		"spawn", tile.value,
		"at", cell.pos,
	)

	// CheckingTerminal
	s.state = StateCheckingTerminal
	if !s.grid.CanMoveAny() {
		s.animator.AwaitSpawn(tile)
		s.finish()
		turn.GameOver = true
		return turn, nil
	}

	s.state = StateIdle
	return turn, nil
}

// Snapshot captures the state of the current game.
type Snapshot struct {
	SessionID string
	State     State
	Size      int
	Values    [][]int
	Moves     int
	MaxValue  int
	Sum       int
	StartedAt time.Time
	EndedAt   time.Time
}

// Snapshot returns the current game snapshot.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID: s.id,
		State:     s.state,
		Size:      s.cfg.Size,
		Moves:     s.moves,
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
	}
	if s.grid != nil {
		snap.Size = s.grid.size
		snap.Values = s.grid.Values()
		snap.MaxValue = s.grid.MaxValue()
		snap.Sum = s.grid.Sum()
	}
	return snap
}

// Duration returns how long the current game lasted, or has lasted so far.
func (s *Session) Duration() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	if s.endedAt.IsZero() {
		return s.now().Sub(s.startedAt)
	}
	return s.endedAt.Sub(s.startedAt)
}

func (s *Session) busy() bool {
	return s.state == StateResolving || s.state == StateSpawning || s.state == StateCheckingTerminal
}

// clear drops every tile of the previous game.
func (s *Session) clear() {
	if s.grid == nil {
		return
	}
	for _, c := range s.grid.cells {
		if c.tile != nil {
			s.observer.Notify(TileRemoved{TileID: c.tile.id, At: c.pos})
		}
	}
}

func (s *Session) reset(g *Grid) {
	s.id = uuid.NewString()
	s.grid = g
	s.nextID = 0
	s.moves = 0
	s.startedAt = s.now()
	s.endedAt = time.Time{}
}

// spawn links a new tile into a random empty cell.
func (s *Session) spawn() (*Tile, *Cell, error) {
	cell, err := s.grid.RandomEmptyCell(s.rng)
	if err != nil {
		return nil, nil, err
	}

	s.nextID++
	tile := NewTile(s.nextID, SpawnValue(s.rng, s.cfg.Spawn4Probability))
	cell.LinkTile(tile)
	s.observer.Notify(TileCreated{TileID: tile.id, Value: tile.value, At: cell.pos})
	return tile, cell, nil
}

func (s *Session) finish() {
	s.state = StateGameOver
	s.endedAt = s.now()
	s.observer.Notify(GameEnded{Moves: s.moves, MaxValue: s.grid.MaxValue()})
	s.logger.Debug("game over",
		"session", s.id,
		"moves", s.moves,
		"max", s.grid.MaxValue(),
	)
}
