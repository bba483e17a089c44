// Package index keeps a SQLite catalog of questions with optional FTS5
// full-text search, synced from the content tree.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// schemaVersion is stored in PRAGMA user_version. The catalog is derived
// from the content tree, so a database with another version is dropped and
// rebuilt by the next Sync instead of migrated.
const schemaVersion = 1

const questionsSchemaSQL = `
CREATE TABLE IF NOT EXISTS questions (
	slug       TEXT PRIMARY KEY,
	locale     TEXT NOT NULL DEFAULT '',
	title      TEXT NOT NULL DEFAULT '',
	level      TEXT NOT NULL DEFAULT '',
	ranking    INTEGER NOT NULL DEFAULT 0,
	featured   INTEGER NOT NULL DEFAULT 0,
	published  INTEGER NOT NULL DEFAULT 0,
	excerpt    TEXT NOT NULL DEFAULT '',
	checksum   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_questions_level ON questions(level);
CREATE INDEX IF NOT EXISTS idx_questions_ranking ON questions(ranking);
`

// DB is the question catalog.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the catalog at path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &DB{conn: conn}, nil
}

func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("index: read schema version: %w", err)
	}
	if version != schemaVersion {
		if _, err := conn.Exec(`DROP TABLE IF EXISTS questions`); err != nil {
			return fmt.Errorf("index: drop stale schema: %w", err)
		}
		if err := dropFTS(conn); err != nil {
			return fmt.Errorf("index: drop stale fts schema: %w", err)
		}
	}
	if _, err := conn.Exec(questionsSchemaSQL); err != nil {
		return fmt.Errorf("index: apply schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		return fmt.Errorf("index: apply fts schema: %w", err)
	}
	if _, err := conn.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
		return fmt.Errorf("index: write schema version: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
