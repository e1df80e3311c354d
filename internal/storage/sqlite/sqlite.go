// Package sqlite opens a single-file database with the same tables the MySQL
// migrations create, so the mysql.Repo statements run unchanged against it.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = "" +
	"CREATE TABLE IF NOT EXISTS reviews (\n" +
	"  id         INTEGER PRIMARY KEY AUTOINCREMENT,\n" +
	"  name       TEXT     NOT NULL,\n" +
	"  role       TEXT,\n" +
	"  company    TEXT,\n" +
	"  rating     INTEGER  NOT NULL,\n" +
	"  `text`     TEXT     NOT NULL,\n" +
	"  created_at DATETIME NOT NULL\n" +
	");\n" +
	"CREATE INDEX IF NOT EXISTS idx_reviews_created ON reviews (created_at, id);\n" +
	"CREATE TABLE IF NOT EXISTS bookings (\n" +
	"  id             INTEGER PRIMARY KEY AUTOINCREMENT,\n" +
	"  reference      TEXT     NOT NULL UNIQUE,\n" +
	"  name           TEXT     NOT NULL,\n" +
	"  email          TEXT     NOT NULL,\n" +
	"  phone          TEXT,\n" +
	"  company        TEXT,\n" +
	"  service        TEXT     NOT NULL,\n" +
	"  preferred_date TEXT,\n" +
	"  budget         TEXT,\n" +
	"  message        TEXT     NOT NULL,\n" +
	"  created_at     DATETIME NOT NULL\n" +
	");\n" +
	"CREATE INDEX IF NOT EXISTS idx_bookings_created ON bookings (created_at, id);\n"

// Open opens (or creates) the database at path and applies the schema.
// ":memory:" gives a private in-memory database pinned to one connection.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		// every new connection would see an empty database
		db.SetMaxOpenConns(1)
	} else {
		if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite wal: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite busy_timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return db, nil
}
