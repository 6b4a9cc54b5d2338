// Package sqlite keeps the latest dashboard reading per province in a SQLite
// database (pure Go driver modernc.org/sqlite), so the HTTP API can answer
// without replaying the sink topic.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/couchcryptid/clima-metrics-etl/internal/domain"
	"github.com/couchcryptid/clima-metrics-etl/internal/observability"
)

const schema = `CREATE TABLE IF NOT EXISTS latest_readings (
	provincia_key TEXT PRIMARY KEY,
	provincia     TEXT NOT NULL,
	reading_id    TEXT NOT NULL,
	observed_at   TEXT,
	processed_at  TEXT NOT NULL,
	payload       TEXT NOT NULL
)`

// upsert keeps the newest observation per province. A reading without an
// observation time always replaces the stored one.
const upsert = `INSERT INTO latest_readings
	(provincia_key, provincia, reading_id, observed_at, processed_at, payload)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(provincia_key) DO UPDATE SET
	provincia    = excluded.provincia,
	reading_id   = excluded.reading_id,
	observed_at  = excluded.observed_at,
	processed_at = excluded.processed_at,
	payload      = excluded.payload
WHERE excluded.observed_at IS NULL
	OR latest_readings.observed_at IS NULL
	OR excluded.observed_at >= latest_readings.observed_at`

// timeLayout sorts lexically in UTC.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements pipeline.BatchLoader and the HTTP snapshot lookups.
type Store struct {
	db      *sql.DB
	metrics *observability.Metrics
	logger  *slog.Logger
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string, metrics *observability.Metrics, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	// A single connection serializes writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		logger.Warn("could not enable WAL mode", "path", path, "error", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply snapshot schema: %w", err)
	}

	return &Store{db: db, metrics: metrics, logger: logger}, nil
}

// LoadBatch upserts every reading in one transaction.
func (s *Store) LoadBatch(ctx context.Context, readings []domain.DashboardReading) (err error) {
	if len(readings) == 0 {
		return nil
	}
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		s.metrics.SnapshotWrites.WithLabelValues(outcome).Add(float64(len(readings)))
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return fmt.Errorf("prepare snapshot upsert: %w", err)
	}
	defer stmt.Close()

	for i := range readings {
		r := &readings[i]
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal reading %s: %w", r.ID, err)
		}

		var observed any
		if r.ObservedAt != nil {
			observed = r.ObservedAt.UTC().Format(timeLayout)
		}

		if _, err := stmt.ExecContext(ctx,
			domain.NormalizeProvince(r.Provincia),
			r.Provincia,
			r.ID,
			observed,
			r.ProcessedAt.UTC().Format(timeLayout),
			string(payload),
		); err != nil {
			return fmt.Errorf("upsert reading %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}
	return nil
}

// Latest returns the stored reading for a province, matched accent- and
// case-insensitively. It returns domain.ErrReadingNotFound when none exists.
func (s *Store) Latest(ctx context.Context, provincia string) (domain.DashboardReading, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM latest_readings WHERE provincia_key = ?`,
		domain.NormalizeProvince(provincia),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DashboardReading{}, domain.ErrReadingNotFound
	}
	if err != nil {
		return domain.DashboardReading{}, fmt.Errorf("query latest reading: %w", err)
	}
	return decode(payload)
}

// List returns the latest reading of every province, ordered by province key.
func (s *Store) List(ctx context.Context) ([]domain.DashboardReading, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM latest_readings ORDER BY provincia_key`)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	out := make([]domain.DashboardReading, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		r, err := decode(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CheckReadiness pings the database.
func (s *Store) CheckReadiness(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func decode(payload string) (domain.DashboardReading, error) {
	var r domain.DashboardReading
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return domain.DashboardReading{}, fmt.Errorf("decode stored reading: %w", err)
	}
	return r, nil
}
