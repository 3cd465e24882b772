package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

// SimReport summarises a batch of simulated games.
type SimReport struct {
	Games    int
	Turns    int
	MaxValue int
	MaxMoves int
}

// Simulate plays games to completion with uniformly random legal moves and
// checks the engine invariants after every turn. The first violation is
// returned as an error.
func Simulate(cfg Config, games int, rng *rand.Rand) (SimReport, error) {
	var report SimReport

	for g := range games {
		cfg.Seed = rng.Int63() | 1
		s := NewSession(cfg)
		if err := s.Start(); err != nil {
			return report, fmt.Errorf("game %d: %w", g, err)
		}

		for s.State() == StateIdle {
			legal, err := checkLegality(s.grid)
			if err != nil {
				return report, fmt.Errorf("game %d turn %d: %w", g, s.moves, err)
			}
			if len(legal) == 0 {
				return report, fmt.Errorf("game %d turn %d: idle with no legal move", g, s.moves)
			}

			dir := legal[rng.Intn(len(legal))]
			before := s.grid.Sum()

			turn, err := s.Move(dir)
			if err != nil {
				return report, fmt.Errorf("game %d turn %d: %w", g, s.moves, err)
			}
			if err := checkTurn(s.grid, turn, before); err != nil {
				return report, fmt.Errorf("game %d turn %d: %w", g, s.moves, err)
			}
			report.Turns++
		}

		for _, dir := range Directions {
			if _, err := s.Move(dir); !errors.Is(err, ErrGameOver) {
				return report, fmt.Errorf("game %d: move %s after game over returned %v", g, dir, err)
			}
		}

		report.Games++
		report.MaxValue = max(report.MaxValue, s.grid.MaxValue())
		report.MaxMoves = max(report.MaxMoves, s.moves)
	}

	return report, nil
}

// checkLegality verifies that the adjacency check agrees with a full
// resolution for every direction and returns the legal directions.
func checkLegality(g *Grid) ([]Direction, error) {
	var legal []Direction
	for _, dir := range Directions {
		probe := g.Clone()
		res := Resolve(probe, dir)
		canMove := g.CanMove(dir)

		if canMove != res.Changed() {
			return nil, fmt.Errorf("%s: legality %t but resolution changed=%t", dir, canMove, res.Changed())
		}
		if canMove && len(probe.EmptyCells()) == 0 {
			return nil, fmt.Errorf("%s: legal move leaves no empty cell", dir)
		}
		if canMove {
			legal = append(legal, dir)
		}
	}
	return legal, nil
}

// checkTurn verifies value conservation and the single-merge rule.
func checkTurn(g *Grid, turn Turn, sumBefore int) error {
	if turn.Spawned == nil {
		return fmt.Errorf("no tile spawned")
	}
	if got, want := g.Sum(), sumBefore+turn.Spawned.Value(); got != want {
		return fmt.Errorf("sum %d, want %d", got, want)
	}

	perLine := make(map[int]int)
	for _, m := range turn.Resolution.Merges {
		line := m.At.Row
		if d := turn.Resolution.Direction; d == DirUp || d == DirDown {
			line = m.At.Column
		}
		perLine[line]++
		if perLine[line] > g.size/2 {
			return fmt.Errorf("line %d has %d merges", line, perLine[line])
		}
	}

	seen := make(map[*Tile]bool)
	for _, m := range turn.Resolution.Moves {
		if seen[m.Tile] {
			return fmt.Errorf("tile %d moved twice", m.Tile.id)
		}
		seen[m.Tile] = true
	}
	return nil
}
