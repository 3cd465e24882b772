// Package storage provides SQLite-based persistence for finished game results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// GameResult records one finished game.
type GameResult struct {
	ID        int64
	SessionID string
	Player    string // SSH user name, or "local"
	BoardSize int
	Moves     int
	MaxTile   int
	TileSum   int
	Duration  int // Duration in seconds
	CreatedAt time.Time
}

// ResultStats contains aggregated statistics for one board size.
type ResultStats struct {
	BoardSize  int
	GamesCount int
	BestTile   int
	AvgMoves   float64
	TotalMoves int64
	LastPlayed time.Time
}

const resultColumns = `id, session_id, player, board_size, moves, max_tile, tile_sum, duration_secs, created_at`

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			board_size INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			tile_sum INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_board ON results(board_size);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(board_size, max_tile DESC, moves ASC);
		CREATE INDEX IF NOT EXISTS idx_results_player ON results(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r GameResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results
		 (session_id, player, board_size, moves, max_tile, tile_sum, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.Player,
		r.BoardSize,
		r.Moves,
		r.MaxTile,
		r.TileSum,
		r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// ResultBySession retrieves the result of a game by its session ID.
// Returns nil if no such game was recorded.
func (s *Store) ResultBySession(sessionID string) (*GameResult, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+` FROM results WHERE session_id = ?`,
		sessionID,
	)

	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	return &r, nil
}

// BestResults retrieves the top N games for a board size: highest tile
// first, fewer moves breaking ties.
func (s *Store) BestResults(boardSize, limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE board_size = ?
		 ORDER BY max_tile DESC, moves ASC, id ASC
		 LIMIT ?`,
		boardSize, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return collectResults(rows)
}

// RecentResults retrieves the most recent games across all board sizes.
func (s *Store) RecentResults(limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return collectResults(rows)
}

// PlayerResults retrieves the most recent games of one player.
func (s *Store) PlayerResults(player string, limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player results: %w", err)
	}
	return collectResults(rows)
}

// Stats retrieves aggregated statistics for a board size.
func (s *Store) Stats(boardSize int) (*ResultStats, error) {
	stats := &ResultStats{BoardSize: boardSize}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(max_tile), 0), COALESCE(AVG(moves), 0), COALESCE(SUM(moves), 0), MAX(created_at)
		 FROM results WHERE board_size = ?`,
		boardSize,
	).Scan(&stats.GamesCount, &stats.BestTile, &stats.AvgMoves, &stats.TotalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearResults deletes all results for the given board size.
func (s *Store) ClearResults(boardSize int) error {
	_, err := s.db.Exec("DELETE FROM results WHERE board_size = ?", boardSize)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (GameResult, error) {
	var r GameResult
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.SessionID,
		&r.Player,
		&r.BoardSize,
		&r.Moves,
		&r.MaxTile,
		&r.TileSum,
		&r.Duration,
		&createdAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

func collectResults(rows *sql.Rows) ([]GameResult, error) {
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// parseTime handles the datetime as either time.Time or string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
