package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"ictdetect/internal/engine"
	"ictdetect/internal/series"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// New creates a new database connection
func New(connStr string) (*DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id UUID PRIMARY KEY,
			symbol TEXT NOT NULL,
			interval TEXT NOT NULL,
			candle_count INT NOT NULL,
			degenerate_count INT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create analysis_runs table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS detections (
			id SERIAL PRIMARY KEY,
			run_id UUID NOT NULL REFERENCES analysis_runs(run_id),
			kind TEXT NOT NULL,
			idx INT NOT NULL,
			direction TEXT NOT NULL,
			level_top DOUBLE PRECISION,
			level_bottom DOUBLE PRECISION,
			strength DOUBLE PRECISION,
			resolved BOOLEAN NOT NULL DEFAULT FALSE,
			resolved_idx INT
		)
	`)
	if err != nil {
		return fmt.Errorf("create detections table: %w", err)
	}
	return nil
}

// RecordAnalysis persists one engine run and its discrete detections for
// historical reporting. Returns the generated run id.
func (db *DB) RecordAnalysis(symbol, interval string, s *series.Store, a *engine.Analysis) (string, error) {
	runID := uuid.New().String()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO analysis_runs (run_id, symbol, interval, candle_count, degenerate_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, runID, symbol, interval, s.Len(), s.DegenerateCount(), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO detections (run_id, kind, idx, direction, level_top, level_bottom, strength, resolved, resolved_idx)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return "", fmt.Errorf("prepare detections: %w", err)
	}
	defer stmt.Close()

	for _, ob := range a.OrderBlocks {
		resolvedIdx := sql.NullInt64{}
		if ob.Mitigated {
			resolvedIdx = sql.NullInt64{Int64: int64(ob.MitigationIndex), Valid: true}
		}
		if _, err := stmt.Exec(runID, "order_block", ob.StartIndex, string(ob.Direction),
			ob.Top, ob.Bottom, ob.Strength, ob.Mitigated, resolvedIdx); err != nil {
			return "", fmt.Errorf("insert order block: %w", err)
		}
	}
	for _, g := range a.Gaps {
		resolvedIdx := sql.NullInt64{}
		if g.Filled {
			resolvedIdx = sql.NullInt64{Int64: int64(g.FillIndex), Valid: true}
		}
		if _, err := stmt.Exec(runID, "fvg", g.Index, string(g.Direction),
			g.GapTop, g.GapBottom, nil, g.Filled, resolvedIdx); err != nil {
			return "", fmt.Errorf("insert fvg: %w", err)
		}
	}
	for _, g := range a.Grabs {
		if _, err := stmt.Exec(runID, "liquidity_grab", g.Index, string(g.Direction),
			g.SweptLevel, nil, g.SweepMagnitudePct, g.ReversalConfirmed, nil); err != nil {
			return "", fmt.Errorf("insert liquidity grab: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}
