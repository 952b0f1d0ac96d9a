// Package sqlite implements the store driver on SQLite for installs that
// want state to survive restarts.
package sqlite

import (
	"context"
	"database/sql"
	"sync"

	"github.com/pkg/errors"

	// Import the SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/mindwell-ai/mindwell/internal/profile"
	"github.com/mindwell-ai/mindwell/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile

	// mu serializes read-modify-write sequences (per-user id allocation
	// and memory blob updates). SQLite is already single-writer; this
	// keeps the id allocation race-free at the application level too.
	mu sync.Mutex
}

// NewDB opens the SQLite database named by the profile DSN and runs the
// schema migration.
//
// Notes on the DSN pragmas (modernc.org/sqlite prefixes each with _pragma=):
// busy_timeout avoids spurious SQLITE_BUSY under concurrent readers, and WAL
// is the recommended journal mode for local use.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	sqliteDB, err := sql.Open("sqlite", profile.DSN+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	// A single connection is optimal for SQLite with WAL.
	sqliteDB.SetMaxOpenConns(1)
	sqliteDB.SetMaxIdleConns(1)
	sqliteDB.SetConnMaxLifetime(0)

	driver := &DB{db: sqliteDB, profile: profile}
	if err := driver.Migrate(context.Background()); err != nil {
		_ = sqliteDB.Close()
		return nil, err
	}
	return driver, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS task (
	user_id TEXT NOT NULL,
	id INTEGER NOT NULL,
	title TEXT NOT NULL,
	due_date TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT 'medium',
	completed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS reminder (
	user_id TEXT NOT NULL,
	id INTEGER NOT NULL,
	title TEXT NOT NULL,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS goal (
	user_id TEXT NOT NULL,
	id INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	routine TEXT NOT NULL DEFAULT '',
	frequency TEXT NOT NULL DEFAULT '',
	duration TEXT NOT NULL DEFAULT '',
	start_date TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending_approval',
	approved INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	approved_at TEXT,
	updated_at TEXT,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS user_memory (
	user_id TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);
`

// Migrate creates the schema. All statements are idempotent.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}
	return nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

// nextID allocates the next per-user id for the given table.
// Caller must hold d.mu.
func (d *DB) nextID(ctx context.Context, table, userID string) (int, error) {
	var next int
	query := "SELECT COALESCE(MAX(id), 0) + 1 FROM " + table + " WHERE user_id = ?"
	if err := d.db.QueryRowContext(ctx, query, userID).Scan(&next); err != nil {
		return 0, errors.Wrapf(err, "failed to allocate %s id", table)
	}
	return next, nil
}
