package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dhabedank/referat/internal/core"
)

// Usage counts the characters exchanged with a provider.
type Usage struct {
	Calls       int
	InputChars  int
	OutputChars int
}

// Client is the text generation boundary used by the pipeline. It binds one
// adapter, logs every failure once and keeps usage counters.
type Client struct {
	adapter Adapter
	logger  zerolog.Logger

	mu    sync.Mutex
	usage Usage
}

// NewClient wraps an adapter.
func NewClient(adapter Adapter, logger zerolog.Logger) *Client {
	return &Client{
		adapter: adapter,
		logger: logger.With().
			Str("provider", adapter.Name()).
			Str("model", adapter.Model()).
			Logger(),
	}
}

func (c *Client) Name() string {
	return c.adapter.Name()
}

func (c *Client) Model() string {
	return c.adapter.Model()
}

// Generate returns the provider's raw text. Any provider failure, including a
// blank reply, comes back as an error naming the provider.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	start := time.Now()
	text, err := c.adapter.Generate(ctx, systemPrompt, userPrompt)
	elapsed := time.Since(start)

	c.mu.Lock()
	c.usage.Calls++
	c.usage.InputChars += len(systemPrompt) + len(userPrompt)
	c.usage.OutputChars += len(text)
	c.mu.Unlock()

	if err == nil && strings.TrimSpace(text) == "" {
		err = core.ErrEmptyResponse
	}
	if err != nil {
		c.logger.Error().Err(err).Dur("elapsed", elapsed).Msg("generation failed")
		return "", fmt.Errorf("%s: %w", c.adapter.Name(), err)
	}

	c.logger.Debug().Dur("elapsed", elapsed).Int("chars", len(text)).Msg("generation complete")
	return text, nil
}

// Usage returns the counters accumulated so far.
func (c *Client) Usage() Usage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usage
}
