package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ErrInvalidRelation is returned when an edge relation name contains no
// usable characters after sanitization.
var ErrInvalidRelation = errors.New("invalid relation type")

// previewLimit bounds the content preview stored on each node.
const previewLimit = 200

// Store wraps the Neo4j driver.
type Store struct {
	driver neo4j.DriverWithContext
}

// Connect opens a Neo4j driver and ensures the Memory schema (unique id
// constraint, gate index) exists. Empty or placeholder settings return an
// error so the engine can disable graph search for the process lifetime.
func Connect(ctx context.Context, uri, user, password string) (*Store, error) {
	if unconfigured(uri) {
		return nil, fmt.Errorf("NEO4J_URI is not configured")
	}
	if unconfigured(password) {
		return nil, fmt.Errorf("NEO4J_PASSWORD is not configured")
	}
	if user == "" {
		user = "neo4j"
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("neo4j unreachable: %w", err)
	}

	s := &Store{driver: driver}
	if err := s.ensureSchema(ctx); err != nil {
		driver.Close(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	statements := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (m:Memory) REQUIRE m.id IS UNIQUE",
		"CREATE INDEX IF NOT EXISTS FOR (m:Memory) ON (m.gate)",
	}
	for _, stmt := range statements {
		if _, err := neo4j.ExecuteQuery(ctx, s.driver, stmt, nil,
			neo4j.EagerResultTransformer); err != nil {
			return fmt.Errorf("failed to ensure graph schema: %w", err)
		}
	}
	return nil
}

// UpsertNode merges a Memory node by id and refreshes its properties.
func (s *Store) UpsertNode(ctx context.Context, id, gate, person, project, content string) error {
	_, err := neo4j.ExecuteQuery(ctx, s.driver, `
		MERGE (m:Memory {id: $id})
		SET m.gate = $gate, m.person = $person,
		    m.project = $project, m.preview = $preview`,
		map[string]any{
			"id":      id,
			"gate":    gate,
			"person":  person,
			"project": project,
			"preview": Truncate(content, previewLimit),
		}, neo4j.EagerResultTransformer)
	if err != nil {
		return fmt.Errorf("failed to upsert node %s: %w", id, err)
	}
	return nil
}

// AddEdge merges a typed edge between two memories. The relation name is
// the one value that cannot be parameterized in Cypher, so it is reduced to
// [A-Za-z0-9_] before interpolation; everything else goes through
// parameters.
func (s *Store) AddEdge(ctx context.Context, fromID, toID, relation string) error {
	safe := SanitizeRelation(relation)
	if safe == "" {
		return fmt.Errorf("%w: %q", ErrInvalidRelation, relation)
	}

	cypher := fmt.Sprintf(`
		MATCH (a:Memory {id: $from_id}), (b:Memory {id: $to_id})
		MERGE (a)-[r:%s]->(b)
		SET r.created = datetime()`, safe)
	_, err := neo4j.ExecuteQuery(ctx, s.driver, cypher,
		map[string]any{"from_id": fromID, "to_id": toID},
		neo4j.EagerResultTransformer)
	if err != nil {
		return fmt.Errorf("failed to add edge %s-[%s]->%s: %w", fromID, safe, toID, err)
	}
	return nil
}

// AutoLink connects a memory to every other memory sharing its person or
// project tag.
func (s *Store) AutoLink(ctx context.Context, id, person, project string) error {
	if person != "" {
		_, err := neo4j.ExecuteQuery(ctx, s.driver, `
			MATCH (a:Memory {id: $id}), (b:Memory {person: $person})
			WHERE a <> b
			MERGE (a)-[:RELATED_TO]->(b)`,
			map[string]any{"id": id, "person": person},
			neo4j.EagerResultTransformer)
		if err != nil {
			return fmt.Errorf("failed to auto-link %s by person: %w", id, err)
		}
	}
	if project != "" {
		_, err := neo4j.ExecuteQuery(ctx, s.driver, `
			MATCH (a:Memory {id: $id}), (b:Memory {project: $project})
			WHERE a <> b
			MERGE (a)-[:RELATED_TO]->(b)`,
			map[string]any{"id": id, "project": project},
			neo4j.EagerResultTransformer)
		if err != nil {
			return fmt.Errorf("failed to auto-link %s by project: %w", id, err)
		}
	}
	return nil
}

// Related is one graph-traversal hit.
type Related struct {
	ID       string
	Relation string
	Preview  string
}

// FindRelated walks up to two hops out from a memory and returns at most 10
// connected memories with the first edge type on each path.
func (s *Store) FindRelated(ctx context.Context, id string) ([]Related, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, `
		MATCH (a:Memory {id: $id})-[r*1..2]-(b:Memory)
		RETURN b.id AS id, b.preview AS preview, type(r[0]) AS relation
		LIMIT 10`,
		map[string]any{"id": id}, neo4j.EagerResultTransformer)
	if err != nil {
		return nil, fmt.Errorf("graph traversal from %s failed: %w", id, err)
	}

	var related []Related
	for _, record := range result.Records {
		related = append(related, Related{
			ID:       stringField(record, "id"),
			Relation: stringField(record, "relation"),
			Preview:  stringField(record, "preview"),
		})
	}
	return related, nil
}

// DeleteNode detach-deletes a memory node and all its edges.
func (s *Store) DeleteNode(ctx context.Context, id string) error {
	_, err := neo4j.ExecuteQuery(ctx, s.driver,
		`MATCH (m:Memory {id: $id}) DETACH DELETE m`,
		map[string]any{"id": id}, neo4j.EagerResultTransformer)
	if err != nil {
		return fmt.Errorf("failed to delete node %s: %w", id, err)
	}
	return nil
}

// Close shuts down the driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func stringField(record *neo4j.Record, key string) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}
	str, _ := v.(string)
	return str
}

// SanitizeRelation keeps only [A-Za-z0-9_] from a relation name.
func SanitizeRelation(relation string) string {
	var b strings.Builder
	for _, r := range relation {
		if r == '_' ||
			(r >= '0' && r <= '9') ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncate cuts s to at most max bytes on a rune boundary, appending "..."
// when anything was dropped.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	end := max
	for end > 0 && !isRuneStart(s[end]) {
		end--
	}
	return s[:end] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func unconfigured(v string) bool {
	return v == "" || strings.HasPrefix(v, "<")
}
