// Package storage provides SQLite-based persistence for simulation run
// records. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord is one persisted simulation run.
type RunRecord struct {
	ID               int64
	Seed             uint32
	Tier             string
	Outcome          string // "victory" or "defeat"
	WavesCleared     int
	PacketsSpawned   int
	PacketsDestroyed int
	Arrivals         int
	Gold             int
	DurationSecs     float64
	CreatedAt        time.Time
}

// TierStats contains aggregated statistics for one difficulty tier.
type TierStats struct {
	Tier       string
	RunsCount  int
	Victories  int
	BestWaves  int
	AvgWaves   float64
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			tier TEXT NOT NULL,
			outcome TEXT NOT NULL,
			waves_cleared INTEGER NOT NULL DEFAULT 0,
			packets_spawned INTEGER NOT NULL DEFAULT 0,
			packets_destroyed INTEGER NOT NULL DEFAULT 0,
			arrivals INTEGER NOT NULL DEFAULT 0,
			gold INTEGER NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_tier ON runs(tier);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(tier, waves_cleared DESC, duration_secs ASC);
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

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (seed, tier, outcome, waves_cleared, packets_spawned, packets_destroyed, arrivals, gold, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Tier, r.Outcome, r.WavesCleared,
		r.PacketsSpawned, r.PacketsDestroyed, r.Arrivals, r.Gold, r.DurationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, seed, tier, outcome, waves_cleared, packets_spawned,
	packets_destroyed, arrivals, gold, duration_secs, created_at`

// RecentRuns retrieves the most recent runs across all tiers.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// BestRun returns the run with the most waves cleared on the given tier,
// ties broken by shortest duration. Returns nil if no runs exist.
func (s *Store) BestRun(tier string) (*RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE tier = ?
		 ORDER BY waves_cleared DESC, duration_secs ASC
		 LIMIT 1`,
		tier,
	)

	r, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return r, nil
}

// StatsForTier retrieves aggregated statistics for the given tier.
func (s *Store) StatsForTier(tier string) (*TierStats, error) {
	stats := &TierStats{Tier: tier}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'victory' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(waves_cleared), 0),
		        COALESCE(AVG(waves_cleared), 0)
		 FROM runs WHERE tier = ?`,
		tier,
	).Scan(&stats.RunsCount, &stats.Victories, &stats.BestWaves, &stats.AvgWaves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get tier stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE tier = ? ORDER BY created_at DESC LIMIT 1`,
		tier,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// ClearRuns deletes all runs for the given tier.
func (s *Store) ClearRuns(tier string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE tier = ?", tier)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var records []RunRecord
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

func scanRun(scan func(dest ...any) error) (*RunRecord, error) {
	var r RunRecord
	var createdAt any
	if err := scan(
		&r.ID, &r.Seed, &r.Tier, &r.Outcome, &r.WavesCleared,
		&r.PacketsSpawned, &r.PacketsDestroyed, &r.Arrivals, &r.Gold,
		&r.DurationSecs, &createdAt,
	); err != nil {
		return nil, err
	}
	r.CreatedAt = parseTimestamp(createdAt)
	return &r, nil
}

// parseTimestamp handles both time.Time and string datetime values returned
// by the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
