// Package sqlite implements the repository interfaces on an embedded SQLite
// database via the pure-Go modernc.org/sqlite driver. One file on disk is
// the whole store; tests point it at a file in a temp directory.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository interfaces.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath, applies pragmas, runs
// migrations, and seeds read-only content.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL keeps readers unblocked during writes; foreign keys are off by
	// default in SQLite and must be enabled per connection.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}
	// Writers wait instead of failing with SQLITE_BUSY when another write
	// is in flight.
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting busy timeout: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}
	if err := db.seedModules(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: seeding modules: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. Every statement is idempotent, so the full
// set runs on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id                 TEXT PRIMARY KEY,
			email              TEXT NOT NULL DEFAULT '',
			password_hash      TEXT NOT NULL DEFAULT '',
			google_id          TEXT NOT NULL DEFAULT '',
			display_name       TEXT NOT NULL DEFAULT '',
			has_completed_poll INTEGER NOT NULL DEFAULT 0,
			poll_completed_at  DATETIME,
			created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email
			ON users(email) WHERE email != '';
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_google_id
			ON users(google_id) WHERE google_id != '';
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// The UNIQUE(user_id, name) index is what makes badge awards race-free:
	// concurrent awards of the same name collapse into one row at the
	// storage layer instead of being filtered by a check-then-write.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS badges (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL REFERENCES users(id),
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			level       TEXT NOT NULL,
			type        TEXT NOT NULL,
			date_earned DATETIME NOT NULL,
			UNIQUE(user_id, name)
		);
		CREATE INDEX IF NOT EXISTS idx_badges_user_id ON badges(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating badges table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS feature_usage (
			user_id    TEXT NOT NULL REFERENCES users(id),
			feature    TEXT NOT NULL,
			use_count  INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, feature)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating feature_usage table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS poll_answers (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			question   TEXT NOT NULL,
			answer     TEXT NOT NULL,
			other_text TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_poll_answers_user_id ON poll_answers(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating poll_answers table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS budget_items (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			category   TEXT NOT NULL,
			amount     REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_budget_items_user_id ON budget_items(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating budget_items table: %w", err)
	}

	// Module sections are nested documents; they're stored as a JSON column
	// rather than normalized tables since the app only ever reads a module
	// whole.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS modules (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			sections    TEXT NOT NULL DEFAULT '[]'
		);
	`)
	if err != nil {
		return fmt.Errorf("creating modules table: %w", err)
	}

	return nil
}
