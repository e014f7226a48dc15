package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude-memory/claude-memory/internal/markdown"
)

const (
	ftsLimit    = 5
	vectorLimit = 5
	grepLimit   = 3
)

// Recall fuses lexical, vector, and graph search, de-duplicated by memory
// id, with a filesystem grep as the last resort. Every hit returned from
// the lexical index is touched first so decay reflects the access. A
// backend being down only removes its contribution.
func (e *Engine) Recall(ctx context.Context, query string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var results []string
	var seenOrder []string
	seen := make(map[string]bool)

	add := func(id string) bool {
		if seen[id] {
			return false
		}
		seen[id] = true
		seenOrder = append(seenOrder, id)
		return true
	}

	// 1. Full-text search.
	ftsHits, err := e.db.SearchFTS(query, ftsLimit)
	if err != nil {
		e.log.Warn("fts search failed", "error", err)
	}
	for _, m := range ftsHits {
		if !add(m.ID) {
			continue
		}
		if err := e.db.Touch(m.ID); err != nil {
			e.log.Warn("touch failed", "memory_id", m.ID, "error", err)
		}
		person := m.Person
		if person == "" {
			person = "?"
		}
		results = append(results, fmt.Sprintf("[%s] (%s, %s) %s\n  id: %s",
			m.Gate, m.Created.UTC().Format("2006-01-02"), person, m.Content, m.ID))
	}

	// 2. Vector similarity.
	if e.vectors != nil {
		matches, err := e.vectors.SearchSimilar(ctx, query, vectorLimit)
		if err != nil {
			e.log.Warn("vector search failed", "error", err)
		}
		for _, match := range matches {
			if match.MemoryID == "" || !add(match.MemoryID) {
				continue
			}
			results = append(results, fmt.Sprintf("[vector match, score=%.2f] id: %s",
				match.Score, match.MemoryID))
		}
	}

	// 3. Graph neighborhood, only when results are sparse.
	if len(results) < 3 && e.graph != nil {
		anchors := seenOrder
		if len(anchors) > 2 {
			anchors = anchors[:2]
		}
		for _, id := range anchors {
			related, err := e.graph.FindRelated(ctx, id)
			if err != nil {
				e.log.Warn("graph traversal failed", "memory_id", id, "error", err)
				continue
			}
			for _, r := range related {
				if !add(r.ID) {
					continue
				}
				results = append(results, fmt.Sprintf("[graph: %s] %s (id: %s)",
					r.Relation, r.Preview, r.ID))
			}
		}
	}

	// 4. Grep the markdown tree when every index came back empty.
	if len(results) == 0 {
		files, err := markdown.GrepAll(e.root, query)
		if err != nil {
			e.log.Warn("markdown grep failed", "error", err)
		}
		for i, content := range files {
			if i >= grepLimit {
				break
			}
			results = append(results, "[file search] "+truncateRunes(content, 300))
		}
	}

	if len(results) == 0 {
		return "No memories found matching that query.", nil
	}
	return fmt.Sprintf("Found %d memories:\n\n%s",
		len(results), strings.Join(results, "\n\n")), nil
}
