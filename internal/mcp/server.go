package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/claude-memory/claude-memory/internal/engine"
	"github.com/claude-memory/claude-memory/internal/logging"
)

const (
	ProtocolVersion = "2024-11-05"
	ServerName      = "claude-memory"
	ServerVersion   = "1.0.0"
)

const serverInstructions = "Claude's persistent memory system. 6 tools: " +
	"remember (store with write gates), " +
	"recall (tri-store search: FTS5 + Qdrant vectors + Neo4j graph), " +
	"reflect (consolidate and compress memories), " +
	"identity (load who-am-I card), " +
	"forget (archive with reason), " +
	"auto_extract (pull memories from transcript). " +
	"Memories are first-person prose, not structured data. " +
	"Call identity at session start. Call remember when something matters."

// Server speaks JSON-RPC 2.0 over stdio and dispatches tool calls to the
// engine.
type Server struct {
	eng *engine.Engine
	log *logging.Logger

	stdin  io.Reader
	stdout io.Writer

	mu          sync.Mutex
	initialized bool
}

// NewServer creates an MCP server over an assembled engine.
func NewServer(eng *engine.Engine) *Server {
	log := logging.GetLogger("mcp")
	log.Info("initializing MCP server", "version", ServerVersion, "protocol", ProtocolVersion)

	return &Server{
		eng:    eng,
		log:    log,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// Run starts the MCP server main loop
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("starting MCP server main loop")
	scanner := bufio.NewScanner(s.stdin)
	// Transcripts for auto_extract can be large.
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			s.log.Info("context cancelled, shutting down")
			return ctx.Err()
		default:
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		response := s.handleRequest(ctx, line)
		if response != nil {
			s.sendResponse(response)
		}
	}

	if err := scanner.Err(); err != nil {
		s.log.Error("scanner error", "error", err)
		return fmt.Errorf("scanner error: %w", err)
	}

	s.log.Info("MCP server shutdown complete")
	return nil
}

// handleRequest processes a single JSON-RPC request
func (s *Server) handleRequest(ctx context.Context, line string) *Response {
	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		s.log.Error("failed to parse request", "error", err)
		return &Response{
			JSONRPC: "2.0",
			Error: &RPCError{
				Code:    ParseError,
				Message: "Parse error",
				Data:    err.Error(),
			},
		}
	}

	s.log.Debug("received request", "method", req.Method, "id", req.ID)

	if req.JSONRPC != "2.0" {
		s.log.Warn("invalid jsonrpc version", "version", req.JSONRPC)
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &RPCError{
				Code:    InvalidRequest,
				Message: "Invalid Request",
				Data:    "jsonrpc must be '2.0'",
			},
		}
	}

	switch req.Method {
	case "initialize":
		s.log.Info("handling initialize request")
		return s.handleInitialize(req)
	case "initialized":
		// Notification, no response needed
		return nil
	case "tools/list":
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  ToolsListResult{Tools: s.getToolDefinitions()},
		}
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		s.log.Warn("method not found", "method", req.Method)
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &RPCError{
				Code:    MethodNotFound,
				Message: "Method not found",
				Data:    req.Method,
			},
		}
	}
}

// handleInitialize handles the initialize request
func (s *Server) handleInitialize(req Request) *Response {
	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities: ServerCapabilities{
				Tools: &ToolsCapability{ListChanged: false},
			},
			ServerInfo: ServerInfo{
				Name:    ServerName,
				Version: ServerVersion,
			},
			Instructions: serverInstructions,
		},
	}
}

// handleToolsCall handles tool invocation
func (s *Server) handleToolsCall(ctx context.Context, req Request) *Response {
	var params CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.log.Error("failed to parse tool params", "error", err)
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &RPCError{
				Code:    InvalidParams,
				Message: "Invalid params",
				Data:    err.Error(),
			},
		}
	}

	s.log.LogRequest("tools/call", "tool", params.Name)
	startTime := time.Now()

	result, err := s.callTool(ctx, params.Name, params.Arguments)
	durationMs := time.Since(startTime).Seconds() * 1000
	if err != nil {
		s.log.LogError("tool_call", err, "tool", params.Name, "duration_ms", durationMs)
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: CallToolResult{
				Content: []ContentBlock{
					{Type: "text", Text: fmt.Sprintf("Error: %v", err)},
				},
				IsError: true,
			},
		}
	}

	s.log.LogResponse("tools/call", durationMs, "tool", params.Name)
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: CallToolResult{
			Content: []ContentBlock{
				{Type: "text", Text: result},
			},
		},
	}
}

// callTool dispatches to the appropriate engine operation
func (s *Server) callTool(ctx context.Context, name string, args json.RawMessage) (string, error) {
	switch name {
	case "remember":
		var p struct {
			Content string `json:"content"`
			Gate    string `json:"gate"`
			Person  string `json:"person"`
			Project string `json:"project"`
		}
		if err := unmarshalArgs(args, &p); err != nil {
			return "", err
		}
		return s.eng.Remember(ctx, p.Content, p.Gate, p.Person, p.Project)
	case "recall":
		var p struct {
			Query string `json:"query"`
		}
		if err := unmarshalArgs(args, &p); err != nil {
			return "", err
		}
		return s.eng.Recall(ctx, p.Query)
	case "reflect":
		return s.eng.Reflect(ctx)
	case "identity":
		return s.eng.Identity(ctx)
	case "forget":
		var p struct {
			MemoryID string `json:"memory_id"`
			Reason   string `json:"reason"`
		}
		if err := unmarshalArgs(args, &p); err != nil {
			return "", err
		}
		return s.eng.Forget(ctx, p.MemoryID, p.Reason)
	case "auto_extract":
		var p struct {
			Transcript string `json:"transcript"`
		}
		if err := unmarshalArgs(args, &p); err != nil {
			return "", err
		}
		return s.eng.AutoExtract(ctx, p.Transcript)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// sendResponse sends a JSON-RPC response to stdout
func (s *Server) sendResponse(resp *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("failed to marshal response", "error", err)
		return
	}

	fmt.Fprintln(s.stdout, string(data))
}

// getToolDefinitions returns all tool definitions
func (s *Server) getToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "remember",
			Description: "Store a new memory. Must pass a write gate: behavioral (changes future actions), " +
				"relational (about a person), epistemic (lesson learned), or promissory (commitment made). " +
				"Write in first person.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"content": {Type: "string", Description: "The memory content, written in first person"},
					"gate":    {Type: "string", Description: "Write gate: behavioral, relational, epistemic, or promissory"},
					"person":  {Type: "string", Description: "Person this memory is about (optional)"},
					"project": {Type: "string", Description: "Project context (optional)"},
				},
				Required: []string{"content", "gate"},
			},
		},
		{
			Name: "recall",
			Description: "Search memories. Uses FTS5 for keywords, Qdrant for semantic similarity, " +
				"and Neo4j for relational connections. Returns ranked results with IDs.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"query": {Type: "string", Description: "Search query. Can be keywords, a question, or a concept"},
				},
				Required: []string{"query"},
			},
		},
		{
			Name: "reflect",
			Description: "Trigger memory consolidation. Compresses old journal entries into digests, " +
				"regenerates identity card from recent memories. Runs Haiku for compression.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"reason": {Type: "string", Description: "Optional: reason for triggering reflection"},
				},
			},
		},
		{
			Name: "identity",
			Description: "Load identity card. Returns who you are in relation to this person and project " +
				"(~200 tokens). On first session, returns a priming message.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"person":  {Type: "string", Description: "Person context (optional; accepted but not used, there is a single identity card)"},
					"project": {Type: "string", Description: "Project context (optional; accepted but not used, there is a single identity card)"},
				},
			},
		},
		{
			Name: "forget",
			Description: "Explicitly forget a memory. Requires the memory ID (from recall) and a reason. " +
				"Memory is archived, not deleted.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"memory_id": {Type: "string", Description: "ID of the memory to forget (from recall results)"},
					"reason":    {Type: "string", Description: "Why this memory should be forgotten"},
				},
				Required: []string{"memory_id", "reason"},
			},
		},
		{
			Name: "auto_extract",
			Description: "Extract memories from a conversation transcript. Uses Haiku to identify memories " +
				"that pass write gates. Called automatically by session hooks.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"transcript": {Type: "string", Description: "Conversation transcript to extract memories from"},
				},
				Required: []string{"transcript"},
			},
		},
	}
}
