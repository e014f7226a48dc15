package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/claude-memory/claude-memory/internal/ai"
	"github.com/claude-memory/claude-memory/internal/database"
	"github.com/claude-memory/claude-memory/internal/engine"
	"github.com/claude-memory/claude-memory/internal/graph"
	"github.com/claude-memory/claude-memory/internal/logging"
	"github.com/claude-memory/claude-memory/internal/markdown"
	"github.com/claude-memory/claude-memory/internal/vector"
	"github.com/claude-memory/claude-memory/pkg/config"
)

// Version is set during build
var Version = "1.0.0"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claude-memory",
	Short: "Persistent tri-store memory for a conversational agent",
	Long: `claude-memory stores first-person memories across a canonical markdown
tree, a SQLite full-text index, a Qdrant vector collection, and a Neo4j
graph, and serves fused recall over all of them.

Run with no arguments to start the MCP server on stdin/stdout. The vector
and graph stores are optional; the engine degrades to lexical search and
filesystem grep when they are unreachable.

Examples:
  claude-memory                 # MCP server over stdio
  claude-memory extract < chat  # extract memories from a transcript
  claude-memory api             # optional REST surface`,
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command, exiting nonzero on bootstrap failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads environment and config, prepares the store, and wires the
// engine with whatever shadow stores are reachable.
func bootstrap(ctx context.Context) (*engine.Engine, *config.Config, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error loading config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: "stderr",
	})
	log := logging.GetLogger("bootstrap")

	if err := markdown.EnsureTree(cfg.StorePath); err != nil {
		return nil, nil, nil, fmt.Errorf("cannot create store root %s: %w", cfg.StorePath, err)
	}

	db, err := database.Open(cfg.StorePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error opening index: %w", err)
	}

	opts := engine.Options{}
	cleanup := func() { db.Close() }

	if vectors, err := vector.Connect(ctx, cfg.Qdrant.URL, cfg.Qdrant.APIKey); err != nil {
		log.Warn("qdrant unavailable, vector search disabled", "error", err)
	} else {
		log.Info("qdrant connected")
		opts.Vectors = vectors
		prev := cleanup
		cleanup = func() { vectors.Close(); prev() }
	}

	if g, err := graph.Connect(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password); err != nil {
		log.Warn("neo4j unavailable, graph search disabled", "error", err)
	} else {
		log.Info("neo4j connected")
		opts.Graph = g
		prev := cleanup
		cleanup = func() { g.Close(context.Background()); prev() }
	}

	if summarizer, err := ai.NewClient(cfg.Anthropic.APIKey); err != nil {
		log.Warn("summarizer disabled", "error", err)
	} else {
		opts.Summarizer = summarizer
	}

	return engine.New(cfg.StorePath, db, opts), cfg, cleanup, nil
}
