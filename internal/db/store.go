package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	_ "modernc.org/sqlite"

	"github.com/jwulff/eclipse/internal/eclipse"
)

// Store is the local record cache.
type Store struct {
	db *sql.DB
}

// DefaultDBPath returns the default cache path.
func DefaultDBPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "eclipses.sqlite"
	}
	return filepath.Join(dir, "eclipse", "eclipses.sqlite")
}

// Open opens (creating if needed) the cache at path with WAL. ":memory:" opens
// a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the cache tables.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ReplaceAll swaps the cached catalog for records in one transaction and
// stamps the fetch time.
func (s *Store) ReplaceAll(ctx context.Context, records []eclipse.Record, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM eclipses`); err != nil {
		return fmt.Errorf("clear eclipses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO eclipses (
			id, category, subtype, date, timeOfMax, durationSeconds, pathWidthKm,
			magnitude, sunAltitude, sunAzimuth, lunation, saros, gamma, deltaT,
			latitude, longitude, geometry
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		geom, err := encodeGeometry(r.Geometry)
		if err != nil {
			return fmt.Errorf("encode geometry %d: %w", r.ID, err)
		}
		var timeOfMax sql.NullInt64
		if !r.TimeOfMax.IsZero() {
			timeOfMax = sql.NullInt64{Int64: r.TimeOfMax.UnixMilli(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Category.String(), r.Subtype, r.Date.UnixMilli(), timeOfMax,
			r.DurationSeconds, r.PathWidthKm, r.Magnitude, r.SunAltitudeDeg, r.SunAzimuthDeg,
			r.Lunation, r.Saros, r.Gamma, r.DeltaTSeconds, r.Latitude, r.Longitude, geom,
		); err != nil {
			return fmt.Errorf("insert eclipse %d: %w", r.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO fetches (fetchedAt, records) VALUES (?, ?)`,
		unixFromTime(fetchedAt), len(records),
	); err != nil {
		return fmt.Errorf("record fetch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Records returns every cached record ordered by date.
func (s *Store) Records(ctx context.Context) ([]eclipse.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, subtype, date, timeOfMax, durationSeconds, pathWidthKm,
			magnitude, sunAltitude, sunAzimuth, lunation, saros, gamma, deltaT,
			latitude, longitude, geometry
		FROM eclipses
		ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query eclipses: %w", err)
	}
	defer rows.Close()

	var records []eclipse.Record
	for rows.Next() {
		var r eclipse.Record
		var category string
		var date int64
		var timeOfMax sql.NullInt64
		var geom sql.NullString
		if err := rows.Scan(&r.ID, &category, &r.Subtype, &date, &timeOfMax,
			&r.DurationSeconds, &r.PathWidthKm, &r.Magnitude, &r.SunAltitudeDeg,
			&r.SunAzimuthDeg, &r.Lunation, &r.Saros, &r.Gamma, &r.DeltaTSeconds,
			&r.Latitude, &r.Longitude, &geom); err != nil {
			return nil, fmt.Errorf("scan eclipse: %w", err)
		}
		r.Category = eclipse.ParseCategory(category)
		r.Date = time.UnixMilli(date).UTC()
		if timeOfMax.Valid {
			r.TimeOfMax = time.UnixMilli(timeOfMax.Int64).UTC()
		}
		if geom.Valid {
			mp, err := decodeGeometry(geom.String)
			if err != nil {
				return nil, fmt.Errorf("decode geometry %d: %w", r.ID, err)
			}
			r.Geometry = mp
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// FetchedAt returns when the cache was last filled. ok is false for an empty
// cache.
func (s *Store) FetchedAt(ctx context.Context) (at time.Time, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT fetchedAt FROM fetches ORDER BY id DESC LIMIT 1`)
	var ts float64
	if err := row.Scan(&ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("scan fetch: %w", err)
	}
	return timeFromUnix(ts), true, nil
}

// Fresh reports whether the cache was filled within ttl of now.
func (s *Store) Fresh(ctx context.Context, ttl time.Duration, now time.Time) (bool, error) {
	at, ok, err := s.FetchedAt(ctx)
	if err != nil || !ok {
		return false, err
	}
	return now.Sub(at) < ttl, nil
}

func encodeGeometry(mp orb.MultiPolygon) (sql.NullString, error) {
	if len(mp) == 0 {
		return sql.NullString{}, nil
	}
	data, err := geojson.NewGeometry(mp).MarshalJSON()
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeGeometry(s string) (orb.MultiPolygon, error) {
	g, err := geojson.UnmarshalGeometry([]byte(s))
	if err != nil {
		return nil, err
	}
	switch v := g.Geometry().(type) {
	case orb.MultiPolygon:
		return v, nil
	case orb.Polygon:
		return orb.MultiPolygon{v}, nil
	default:
		return nil, fmt.Errorf("unexpected geometry %s", g.Type)
	}
}

func unixFromTime(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}
