// Package db caches the eclipse catalog in a local SQLite database so the
// explorer can start without hitting the feature service.
package db

// schema is applied by Migrate. Eclipse times are unix milliseconds, fetch
// times fractional unix seconds, geometry GeoJSON.
const schema = `
CREATE TABLE IF NOT EXISTS eclipses (
	id              INTEGER PRIMARY KEY,
	category        TEXT NOT NULL,
	subtype         TEXT NOT NULL DEFAULT '',
	date            INTEGER NOT NULL,
	timeOfMax       INTEGER,
	durationSeconds REAL NOT NULL DEFAULT 0,
	pathWidthKm     REAL NOT NULL DEFAULT 0,
	magnitude       REAL NOT NULL DEFAULT 0,
	sunAltitude     REAL NOT NULL DEFAULT 0,
	sunAzimuth      REAL NOT NULL DEFAULT 0,
	lunation        INTEGER NOT NULL DEFAULT 0,
	saros           INTEGER NOT NULL DEFAULT 0,
	gamma           REAL NOT NULL DEFAULT 0,
	deltaT          REAL NOT NULL DEFAULT 0,
	latitude        REAL NOT NULL DEFAULT 0,
	longitude       REAL NOT NULL DEFAULT 0,
	geometry        TEXT
);

CREATE INDEX IF NOT EXISTS idx_eclipses_date ON eclipses(date);

CREATE TABLE IF NOT EXISTS fetches (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	fetchedAt REAL NOT NULL,
	records   INTEGER NOT NULL
);
`
