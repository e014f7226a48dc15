package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/claude-memory/claude-memory/internal/logging"
	"github.com/claude-memory/claude-memory/internal/memory"
)

var log = logging.GetLogger("ai")

// Model runs all summarization. Haiku keeps consolidation cheap enough to
// run on every reflect call.
const Model = "claude-haiku-4-5-20251001"

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
)

// Sentinel errors for summarizer failures. Callers report these; they never
// abort unrelated consolidation steps.
var (
	ErrUpstream        = errors.New("summarizer request failed")
	ErrUpstreamTimeout = errors.New("summarizer request timed out")
)

// Client wraps the Anthropic API.
type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewClient builds a summarizer client. An empty API key is an error; the
// caller decides whether to run degraded instead.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  Model,
	}, nil
}

// Extract pulls gated memories out of a conversation transcript.
func (c *Client) Extract(ctx context.Context, transcript string) ([]memory.Extracted, error) {
	text, err := c.call(ctx, fmt.Sprintf("%s\n\n---\n\nTranscript:\n%s", extractionPrompt, transcript), 2048)
	if err != nil {
		return nil, err
	}
	return ParseExtracted(text), nil
}

// Digest compresses a week of journal entries into first-person prose.
func (c *Client) Digest(ctx context.Context, entries string) (string, error) {
	return c.call(ctx, fmt.Sprintf("%s\n\n---\n\nJournal entries:\n%s", digestPrompt, entries), 1024)
}

// Identity rewrites the identity card from recent memories.
func (c *Client) Identity(ctx context.Context, memories string) (string, error) {
	return c.call(ctx, fmt.Sprintf("%s\n\n---\n\nMemories:\n%s", identityPrompt, memories), 512)
}

// call sends one user message and returns the first text block. Every call
// carries its own timeout; rate limits and server errors are retried with
// exponential backoff.
func (c *Client) call(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := initialBackoff * time.Duration(math.Pow(2, float64(attempt-1)))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		message, err := c.client.Messages.New(callCtx, params)
		cancel()

		if err == nil {
			for _, block := range message.Content {
				if block.Type == "text" {
					return block.Text, nil
				}
			}
			return "", fmt.Errorf("%w: response had no text block", ErrUpstream)
		}

		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			lastErr = fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
			continue
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !isRetryable(err) {
			return "", fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		lastErr = fmt.Errorf("%w: %v", ErrUpstream, err)
		log.Warn("summarizer call failed, retrying", "attempt", attempt+1, "error", err)
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries+1, lastErr)
}

func isRetryable(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}
