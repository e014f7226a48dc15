package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/claude-memory/claude-memory/internal/memory"
)

const memoryColumns = `id, created, gate, person, project, confidence,
	last_accessed, access_count, decay_class, content`

// Upsert inserts or replaces a memory row by id. The FTS mirror is kept in
// sync by triggers.
func (d *Database) Upsert(m *memory.Memory) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(`
		INSERT OR REPLACE INTO memories
			(id, created, gate, person, project, confidence,
			 last_accessed, access_count, decay_class, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.ID,
		m.Created.UTC().Format(time.RFC3339),
		m.Gate.String(),
		nullString(m.Person),
		nullString(m.Project),
		m.Confidence,
		m.LastAccessed.UTC().Format(time.RFC3339),
		m.AccessCount,
		string(m.DecayClass),
		m.Content,
	)
	if err != nil {
		return fmt.Errorf("failed to index memory %s: %w", m.ID, err)
	}
	return nil
}

// SearchFTS runs an FTS5 MATCH over content, person, and project, joined
// back to the full rows and ordered by relevance rank. The query is passed
// through verbatim; FTS5 syntax is the caller's to use.
func (d *Database) SearchFTS(query string, limit int) ([]*memory.Memory, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rows, err := d.db.Query(`
		SELECT m.id, m.created, m.gate, m.person, m.project,
		       m.confidence, m.last_accessed, m.access_count,
		       m.decay_class, m.content
		FROM memories_fts f
		JOIN memories m ON f.rowid = m.rowid
		WHERE memories_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fts search failed: %w", err)
	}
	defer rows.Close()

	var results []*memory.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// Touch records a recall hit: bumps access_count and refreshes
// last_accessed.
func (d *Database) Touch(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(`
		UPDATE memories
		SET access_count = access_count + 1, last_accessed = ?
		WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to touch memory %s: %w", id, err)
	}
	return nil
}

// Get returns a memory by id, or nil when absent.
func (d *Database) Get(id string) (*memory.Memory, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.get(id)
}

func (d *Database) get(id string) (*memory.Memory, error) {
	row := d.db.QueryRow(`
		SELECT `+memoryColumns+`
		FROM memories WHERE id = ?
	`, id)
	m, err := scanMemory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get memory %s: %w", id, err)
	}
	return m, nil
}

// Delete removes a memory row, returning the prior record so the caller can
// archive it. Returns nil when no row existed.
func (d *Database) Delete(id string) (*memory.Memory, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	m, err := d.get(id)
	if err != nil || m == nil {
		return m, err
	}
	if _, err := d.db.Exec(`DELETE FROM memories WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete memory %s: %w", id, err)
	}
	return m, nil
}

// All returns every indexed memory, oldest first. Used by the fading report
// and by re-indexing sweeps.
func (d *Database) All() ([]*memory.Memory, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rows, err := d.db.Query(`
		SELECT ` + memoryColumns + `
		FROM memories ORDER BY created
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list memories: %w", err)
	}
	defer rows.Close()

	var results []*memory.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// Count returns the number of indexed memories.
func (d *Database) Count() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM memories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count memories: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMemory(row rowScanner) (*memory.Memory, error) {
	var m memory.Memory
	var created, gate, lastAccessed, decayClass string
	var person, project sql.NullString

	err := row.Scan(&m.ID, &created, &gate, &person, &project,
		&m.Confidence, &lastAccessed, &m.AccessCount, &decayClass, &m.Content)
	if err != nil {
		return nil, err
	}

	m.Created = parseTime(created)
	m.LastAccessed = parseTime(lastAccessed)
	if m.Gate, err = memory.ParseGate(gate); err != nil {
		m.Gate = memory.GateEpistemic
	}
	m.DecayClass = memory.ParseDecayClass(decayClass)
	m.Person = person.String
	m.Project = project.String
	return &m, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
