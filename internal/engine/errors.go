package engine

import "errors"

var (
	// ErrNoEmptyCell is returned when a random empty cell is requested on a
	// full grid. Reaching it during a turn is a programming error.
	ErrNoEmptyCell = errors.New("engine: no empty cell")

	// ErrInvalidDirection is returned for input that maps to no direction.
	ErrInvalidDirection = errors.New("engine: invalid direction")

	// ErrIllegalMove is returned when the direction has no legal move.
	ErrIllegalMove = errors.New("engine: illegal move")

	// ErrTurnInProgress is returned for input received while a turn runs.
	ErrTurnInProgress = errors.New("engine: turn in progress")

	// ErrGameOver is returned for moves after the game ended.
	ErrGameOver = errors.New("engine: game over")

	// ErrNotStarted is returned for moves before Start.
	ErrNotStarted = errors.New("engine: game not started")

	// ErrInvalidConfig is returned by Start when the rules cannot deal a
	// playable board.
	ErrInvalidConfig = errors.New("engine: invalid config")
)

// IsRearm reports whether err only means "ignore this input and wait for the
// next one". None of these conditions change the board.
func IsRearm(err error) bool {
	return errors.Is(err, ErrInvalidDirection) ||
		errors.Is(err, ErrIllegalMove) ||
		errors.Is(err, ErrTurnInProgress) ||
		errors.Is(err, ErrNotStarted)
}
