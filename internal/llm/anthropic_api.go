package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicAPIAdapter uses the Anthropic API directly.
// Fallback when Claude CLI is not available.
type AnthropicAPIAdapter struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicAPIAdapter creates an Anthropic API adapter.
func NewAnthropicAPIAdapter(config Config) (*AnthropicAPIAdapter, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := config.Model
	if model == "" {
		model = DefaultModel("anthropic-api")
	}

	maxTokens := config.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultConfig().MaxTokens
	}

	return &AnthropicAPIAdapter{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (a *AnthropicAPIAdapter) Name() string {
	return "anthropic-api"
}

func (a *AnthropicAPIAdapter) Model() string {
	return a.model
}

// IsAvailable is true once the adapter was constructed with a key.
func (a *AnthropicAPIAdapter) IsAvailable() bool {
	return a != nil
}

func (a *AnthropicAPIAdapter) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var output strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			output.WriteString(block.Text)
		}
	}

	return strings.TrimSpace(output.String()), nil
}
