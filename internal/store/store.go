// Package store keeps the round log of the current run in an in-memory SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/tuinote/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for drill data.
type Store struct {
	db *sql.DB
}

// OpenMemory opens a private in-memory database. Nothing outlives Close.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS drills (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			rounds INTEGER NOT NULL,
			score INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS drill_attempts (
			drill_id INTEGER NOT NULL,
			round INTEGER NOT NULL,
			letter TEXT NOT NULL,
			octave INTEGER NOT NULL,
			clef TEXT NOT NULL,
			label TEXT NOT NULL,
			answer TEXT NOT NULL,
			correct INTEGER NOT NULL,
			latency_ms INTEGER NOT NULL,
			PRIMARY KEY (drill_id, round)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_drills_ended_at ON drills(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_drill_attempts_pitch ON drill_attempts(letter, octave, clef, label);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertDrill stores a finished drill and its attempts.
func (s *Store) InsertDrill(ctx context.Context, stats model.DrillStats, attempts []model.AttemptStats) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO drills (started_at, ended_at, mode, rounds, score) VALUES (?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Mode,
		stats.Rounds,
		stats.Score,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(attempts) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO drill_attempts (drill_id, round, letter, octave, clef, label, answer, correct, latency_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, a := range attempts {
			if _, err = stmt.ExecContext(ctx, id, a.Round, a.Letter, a.Octave, a.Clef, a.Label, a.Answer, boolInt(a.Correct), a.LatencyMs); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetWeakPitches aggregates attempts over the most recent drills of a mode.
func (s *Store) GetWeakPitches(ctx context.Context, window int, mode string) ([]model.PitchAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent AS (
		SELECT id FROM drills
		WHERE (? = '' OR mode = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT a.letter, a.octave, a.clef, a.label,
		SUM(a.correct) AS correct, SUM(1 - a.correct) AS incorrect, SUM(a.latency_ms) AS latency_sum_ms
	FROM drill_attempts a
	JOIN recent r ON r.id = a.drill_id
	GROUP BY a.letter, a.octave, a.clef, a.label`

	rows, err := s.db.QueryContext(ctx, query, mode, mode, window)
	if err != nil {
		return nil, err
	}
	return scanPitchAggregates(rows)
}

// ListDrills returns drill summaries, oldest first, optionally filtered by mode.
func (s *Store) ListDrills(ctx context.Context, mode string) ([]model.DrillAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if mode != "" {
		clauses = append(clauses, "d.mode = ?")
		args = append(args, mode)
	}
	query := fmt.Sprintf(`SELECT d.id, d.started_at, d.ended_at, d.mode, d.rounds, d.score,
		COUNT(a.round), COALESCE(SUM(a.latency_ms), 0)
		FROM drills d
		LEFT JOIN drill_attempts a ON a.drill_id = d.id
		WHERE %s
		GROUP BY d.id
		ORDER BY d.ended_at ASC, d.id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var drills []model.DrillAggregate
	for rows.Next() {
		var agg model.DrillAggregate
		var startedAt, endedAt string
		if err := rows.Scan(&agg.DrillID, &startedAt, &endedAt, &agg.Mode, &agg.Rounds, &agg.Score, &agg.Answered, &agg.LatencyMs); err != nil {
			return nil, err
		}
		started, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		ended, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = ended
		agg.DurationMs = ended.Sub(started).Milliseconds()
		drills = append(drills, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return drills, nil
}

// ListPitchAggregatesForDrills aggregates attempts per pitch across drills.
func (s *Store) ListPitchAggregatesForDrills(ctx context.Context, drillIDs []int64) ([]model.PitchAggregate, error) {
	if len(drillIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(drillIDs))
	args := make([]any, len(drillIDs))
	for i, id := range drillIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT letter, octave, clef, label,
		SUM(correct) AS correct, SUM(1 - correct) AS incorrect, SUM(latency_ms) AS latency_sum_ms
		FROM drill_attempts
		WHERE drill_id IN (%s)
		GROUP BY letter, octave, clef, label`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanPitchAggregates(rows)
}

// ListAttempts returns the attempts of one drill in round order.
func (s *Store) ListAttempts(ctx context.Context, drillID int64) ([]model.AttemptStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT round, letter, octave, clef, label, answer, correct, latency_ms
		 FROM drill_attempts WHERE drill_id = ? ORDER BY round ASC`, drillID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []model.AttemptStats
	for rows.Next() {
		var a model.AttemptStats
		var correct int
		if err := rows.Scan(&a.Round, &a.Letter, &a.Octave, &a.Clef, &a.Label, &a.Answer, &correct, &a.LatencyMs); err != nil {
			return nil, err
		}
		a.Correct = correct != 0
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPitchAggregates(rows *sql.Rows) ([]model.PitchAggregate, error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.PitchAggregate
	for rows.Next() {
		var agg model.PitchAggregate
		if err := rows.Scan(&agg.Letter, &agg.Octave, &agg.Clef, &agg.Label, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
