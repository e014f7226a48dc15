package vector

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/claude-memory/claude-memory/internal/logging"
)

var log = logging.GetLogger("vector")

// Collection is the single Qdrant collection holding memory embeddings.
const Collection = "claude_memories"

// Store wraps the Qdrant client plus the local embedder.
type Store struct {
	client   *qdrant.Client
	embedder *Embedder
}

// Connect builds a Qdrant client from the endpoint settings and ensures the
// collection exists. An empty or placeholder URL or API key returns an
// error so the engine can disable vector search for the process lifetime.
func Connect(ctx context.Context, rawURL, apiKey string) (*Store, error) {
	if unconfigured(rawURL) {
		return nil, fmt.Errorf("QDRANT_URL is not configured")
	}
	if unconfigured(apiKey) {
		return nil, fmt.Errorf("QDRANT_API_KEY is not configured")
	}

	host, port, useTLS, err := parseEndpoint(rawURL)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	s := &Store{client: client, embedder: NewEmbedder()}
	if err := s.ensureCollection(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureCollection(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, Collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: Collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     Dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return fmt.Errorf("failed to create collection: %w", err)
	}
	log.Info("created qdrant collection", "collection", Collection)
	return nil
}

// EmbedAndStore embeds content locally and upserts one point. The point id
// is a random UUID (Qdrant requires UUID or integer ids); the memory id
// lives in the payload and is the join key for every cross-store lookup.
func (s *Store) EmbedAndStore(ctx context.Context, memoryID, content, person, project string) error {
	vec := s.embedder.Embed(content)

	fields := map[string]any{
		"memory_id": memoryID,
		"content":   content,
	}
	if person != "" {
		fields["person"] = person
	}
	if project != "" {
		fields["project"] = project
	}
	payload := make(map[string]*qdrant.Value, len(fields))
	for key, value := range fields {
		val, err := qdrant.NewValue(value)
		if err != nil {
			return fmt.Errorf("failed to convert payload field %s: %w", key, err)
		}
		payload[key] = val
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(uuid.New().String()),
		Vectors: qdrant.NewVectors(vec...),
		Payload: payload,
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: Collection,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point for %s: %w", memoryID, err)
	}
	return nil
}

// Match is one similarity hit: the memory id from the payload and its
// cosine score.
type Match struct {
	MemoryID string
	Score    float32
}

// SearchSimilar embeds the query and returns the top-k payload memory ids
// with scores.
func (s *Store) SearchSimilar(ctx context.Context, query string, k int) ([]Match, error) {
	vec := s.embedder.Embed(query)

	resp, err := s.client.GetPointsClient().Search(ctx, &qdrant.SearchPoints{
		CollectionName: Collection,
		Vector:         vec,
		Limit:          uint64(k),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	var matches []Match
	for _, point := range resp.Result {
		var memoryID string
		if v, ok := point.Payload["memory_id"]; ok {
			memoryID = v.GetStringValue()
		}
		matches = append(matches, Match{MemoryID: memoryID, Score: point.Score})
	}
	return matches, nil
}

// Delete removes every point whose payload memory_id matches.
func (s *Store) Delete(ctx context.Context, memoryID string) error {
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: Collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{
						qdrant.NewMatch("memory_id", memoryID),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete points for %s: %w", memoryID, err)
	}
	return nil
}

// Close tears down the gRPC connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// parseEndpoint splits a Qdrant URL into the host/port/TLS triple the gRPC
// client wants. Scheme https implies TLS; the port defaults to Qdrant's
// gRPC port 6334.
func parseEndpoint(rawURL string) (host string, port int, useTLS bool, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", 0, false, fmt.Errorf("invalid qdrant url %q: %w", rawURL, err)
	}
	if u.Host == "" {
		// Bare host[:port] with no scheme.
		u, err = url.Parse("http://" + rawURL)
		if err != nil || u.Host == "" {
			return "", 0, false, fmt.Errorf("invalid qdrant url %q", rawURL)
		}
	}

	host = u.Hostname()
	useTLS = u.Scheme == "https"

	// Qdrant serves gRPC on 6334 locally and in the cloud.
	port = 6334
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return "", 0, false, fmt.Errorf("invalid qdrant port %q", p)
		}
	}
	return host, port, useTLS, nil
}

func unconfigured(v string) bool {
	return v == "" || strings.HasPrefix(v, "<")
}
