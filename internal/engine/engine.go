package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/claude-memory/claude-memory/internal/database"
	"github.com/claude-memory/claude-memory/internal/graph"
	"github.com/claude-memory/claude-memory/internal/logging"
	"github.com/claude-memory/claude-memory/internal/memory"
	"github.com/claude-memory/claude-memory/internal/vector"
)

// ErrInvalidGate marks a caller error: an unknown write gate name.
var ErrInvalidGate = errors.New("invalid gate")

// VectorIndex is the slice of the vector store the engine uses. Nil means
// vector search is disabled for this process.
type VectorIndex interface {
	EmbedAndStore(ctx context.Context, memoryID, content, person, project string) error
	SearchSimilar(ctx context.Context, query string, k int) ([]vector.Match, error)
	Delete(ctx context.Context, memoryID string) error
}

// GraphIndex is the slice of the relation graph the engine uses. Nil means
// graph search is disabled for this process.
type GraphIndex interface {
	UpsertNode(ctx context.Context, id, gate, person, project, content string) error
	AutoLink(ctx context.Context, id, person, project string) error
	FindRelated(ctx context.Context, id string) ([]graph.Related, error)
	DeleteNode(ctx context.Context, id string) error
}

// Summarizer is the external text-to-text service. Nil means extraction and
// consolidation degrade with a user-visible notice.
type Summarizer interface {
	Extract(ctx context.Context, transcript string) ([]memory.Extracted, error)
	Digest(ctx context.Context, entries string) (string, error)
	Identity(ctx context.Context, memories string) (string, error)
}

// Options carries the optional collaborators. Leave a field nil to run
// degraded without it.
type Options struct {
	Vectors    VectorIndex
	Graph      GraphIndex
	Summarizer Summarizer
}

// Engine is the facade over all stores. The mutex serializes the multi-store
// fan-out of mutating operations; reads take it too, which is acceptable at
// tool-call rates.
type Engine struct {
	root       string
	db         *database.Database
	vectors    VectorIndex
	graph      GraphIndex
	summarizer Summarizer

	mu  sync.Mutex
	log *logging.Logger
	now func() time.Time
}

// New assembles an engine over an opened lexical index and store root.
func New(root string, db *database.Database, opts Options) *Engine {
	return &Engine{
		root:       root,
		db:         db,
		vectors:    opts.Vectors,
		graph:      opts.Graph,
		summarizer: opts.Summarizer,
		log:        logging.GetLogger("engine"),
		now:        time.Now,
	}
}

// Root returns the canonical store root.
func (e *Engine) Root() string {
	return e.root
}

// FadingMemories returns every indexed memory whose decay score has fallen
// below the fading threshold. Candidates for forgetting; nothing is removed
// automatically.
func (e *Engine) FadingMemories() ([]*memory.Memory, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	all, err := e.db.All()
	if err != nil {
		return nil, err
	}
	now := e.now()
	var fading []*memory.Memory
	for _, m := range all {
		if memory.IsFading(m, now) {
			fading = append(fading, m)
		}
	}
	return fading, nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
