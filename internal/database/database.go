package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/claude-memory/claude-memory/internal/logging"
)

var log = logging.GetLogger("database")

// Schema creates the memories table, its FTS5 mirror, and the triggers that
// keep the two synchronized. The FTS table is content-linked via rowid so
// the text is stored once.
const Schema = `
CREATE TABLE IF NOT EXISTS memories (
	id TEXT PRIMARY KEY,
	created TEXT NOT NULL,
	gate TEXT NOT NULL,
	person TEXT,
	project TEXT,
	confidence REAL NOT NULL,
	last_accessed TEXT NOT NULL,
	access_count INTEGER NOT NULL DEFAULT 1,
	decay_class TEXT NOT NULL,
	content TEXT NOT NULL
);

CREATE VIRTUAL TABLE IF NOT EXISTS memories_fts USING fts5(
	content, person, project,
	content='memories', content_rowid='rowid'
);

CREATE TRIGGER IF NOT EXISTS memories_ai AFTER INSERT ON memories BEGIN
	INSERT INTO memories_fts(rowid, content, person, project)
	VALUES (new.rowid, new.content, new.person, new.project);
END;

CREATE TRIGGER IF NOT EXISTS memories_ad AFTER DELETE ON memories BEGIN
	INSERT INTO memories_fts(memories_fts, rowid, content, person, project)
	VALUES ('delete', old.rowid, old.content, old.person, old.project);
END;

CREATE TRIGGER IF NOT EXISTS memories_au AFTER UPDATE ON memories BEGIN
	INSERT INTO memories_fts(memories_fts, rowid, content, person, project)
	VALUES ('delete', old.rowid, old.content, old.person, old.project);
	INSERT INTO memories_fts(rowid, content, person, project)
	VALUES (new.rowid, new.content, new.person, new.project);
END;
`

// Database is the connection to the lexical index.
type Database struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open opens (creating if needed) the index at <root>/index.db and applies
// the schema.
func Open(root string) (*Database, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store root: %w", err)
	}
	path := filepath.Join(root, "index.db")
	log.Info("opening lexical index", "path", path)

	dsn := fmt.Sprintf("%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping index: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply index schema: %w", err)
	}

	return &Database{db: db, path: path}, nil
}

// Close closes the index connection.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Path returns the index file path.
func (d *Database) Path() string {
	return d.path
}
