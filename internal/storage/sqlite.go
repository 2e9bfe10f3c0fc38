// Package storage provides SQLite-based persistence for the generation log.
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

	"github.com/vovakirdan/levelgen/internal/level"
)

// Sources recorded alongside a generation.
const (
	SourceCLI    = "cli"
	SourceBatch  = "batch"
	SourceViewer = "viewer"
	SourceSSH    = "ssh"
)

// Store manages the SQLite database connection for the generation log.
type Store struct {
	db *sql.DB
}

// Generation is one recorded level generation. Replaying World, Level,
// Variant and Seed through the same settings reproduces the level.
type Generation struct {
	ID          int64
	World       int
	Level       int
	Variant     int
	Seed        int64
	Mode        string
	Difficulty  float64
	Platforms   int
	Coins       int
	Hazards     int
	Enemies     int
	Checkpoints int
	Source      string
	CreatedAt   time.Time
}

// FromContent summarizes generated content for the log.
func FromContent(c *level.Content, source string) Generation {
	return Generation{
		World:       c.World,
		Level:       c.Level,
		Variant:     c.Variant,
		Seed:        c.Seed,
		Mode:        string(c.Mode),
		Difficulty:  c.Difficulty,
		Platforms:   c.Count(level.KindPlatform),
		Coins:       c.Count(level.KindCoin),
		Hazards:     c.Count(level.KindHazard) + c.Count(level.KindSpecial),
		Enemies:     c.Count(level.KindEnemy),
		Checkpoints: c.Count(level.KindCheckpoint),
		Source:      source,
	}
}

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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS generations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			world INTEGER NOT NULL,
			level INTEGER NOT NULL,
			variant INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL,
			mode TEXT NOT NULL,
			difficulty REAL NOT NULL,
			platforms INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			hazards INTEGER NOT NULL DEFAULT 0,
			enemies INTEGER NOT NULL DEFAULT 0,
			checkpoints INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT 'cli',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_generations_world ON generations(world);
		CREATE INDEX IF NOT EXISTS idx_generations_key ON generations(world, level, variant);
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

// SaveGeneration records a generation and returns its ID.
func (s *Store) SaveGeneration(g Generation) (int64, error) {
	if g.Source == "" {
		g.Source = SourceCLI
	}
	result, err := s.db.Exec(
		`INSERT INTO generations
		 (world, level, variant, seed, mode, difficulty, platforms, coins, hazards, enemies, checkpoints, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.World, g.Level, g.Variant, g.Seed, g.Mode, g.Difficulty,
		g.Platforms, g.Coins, g.Hazards, g.Enemies, g.Checkpoints, g.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save generation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Record saves a summary of generated content.
func (s *Store) Record(c *level.Content, source string) (int64, error) {
	return s.SaveGeneration(FromContent(c, source))
}

const generationColumns = `id, world, level, variant, seed, mode, difficulty,
	platforms, coins, hazards, enemies, checkpoints, source, created_at`

// RecentGenerations retrieves the most recent generations, newest first.
func (s *Store) RecentGenerations(limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+generationColumns+`
		 FROM generations
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generations: %w", err)
	}
	return scanGenerations(rows)
}

// GenerationsForWorld retrieves the most recent generations of one world.
func (s *Store) GenerationsForWorld(world, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+generationColumns+`
		 FROM generations
		 WHERE world = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		world, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generations: %w", err)
	}
	return scanGenerations(rows)
}

// FindSeed returns the most recently recorded seed for a level slot.
// The boolean is false if the slot was never generated.
func (s *Store) FindSeed(world, lvl, variant int) (int64, bool, error) {
	var seed int64
	err := s.db.QueryRow(
		`SELECT seed FROM generations
		 WHERE world = ? AND level = ? AND variant = ?
		 ORDER BY id DESC LIMIT 1`,
		world, lvl, variant,
	).Scan(&seed)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot find seed: %w", err)
	}
	return seed, true, nil
}

// ClearGenerations deletes the whole log.
func (s *Store) ClearGenerations() error {
	if _, err := s.db.Exec("DELETE FROM generations"); err != nil {
		return fmt.Errorf("storage: cannot clear generations: %w", err)
	}
	return nil
}

func scanGenerations(rows *sql.Rows) ([]Generation, error) {
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var g Generation
		var createdAt any
		if err := rows.Scan(
			&g.ID, &g.World, &g.Level, &g.Variant, &g.Seed, &g.Mode, &g.Difficulty,
			&g.Platforms, &g.Coins, &g.Hazards, &g.Enemies, &g.Checkpoints, &g.Source, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.CreatedAt = parseTime(createdAt)
		out = append(out, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// parseTime handles both time.Time and string datetime values.
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

// WorldStats contains aggregated statistics for a world.
type WorldStats struct {
	World         int
	Generations   int
	AvgDifficulty float64
	AvgPlatforms  float64
	TotalHazards  int64
	LastGenerated time.Time
}

// AllWorldStats retrieves statistics for every world that has been generated.
func (s *Store) AllWorldStats() (map[int]*WorldStats, error) {
	rows, err := s.db.Query(
		`SELECT world, COUNT(*), AVG(difficulty), AVG(platforms), SUM(hazards), MAX(created_at)
		 FROM generations
		 GROUP BY world`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get world stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*WorldStats)
	for rows.Next() {
		var ws WorldStats
		var last any
		if err := rows.Scan(&ws.World, &ws.Generations, &ws.AvgDifficulty, &ws.AvgPlatforms, &ws.TotalHazards, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ws.LastGenerated = parseTime(last)
		stats[ws.World] = &ws
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
