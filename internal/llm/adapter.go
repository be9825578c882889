package llm

import (
	"context"
)

// Adapter is the interface all LLM adapters must implement.
type Adapter interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// Model returns the model the adapter sends requests to.
	Model() string

	// IsAvailable checks if this adapter can be used (CLI installed, API key set, etc.)
	IsAvailable() bool

	// Generate sends prompts to the LLM and returns its raw text.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds configuration for LLM adapters.
type Config struct {
	// Provider names the adapter to use (claude-cli, codex-cli, anthropic-api,
	// openai-api, echo). Empty means auto-detect.
	Provider string

	// PreferCLI prefers CLI tools (claude, codex) over API when auto-detecting.
	PreferCLI bool

	// Model specifies which model to use (optional, adapter chooses default).
	Model string

	// APIKey for direct API access (optional, falls back to the provider's env var).
	APIKey string

	// BaseURL overrides the API endpoint of the openai-api provider, for
	// OpenAI-compatible gateways.
	BaseURL string

	// MaxTokens limits response length.
	MaxTokens int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PreferCLI: true, // Use CLI tools when available (already authenticated)
		MaxTokens: 4096,
	}
}
