package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIAPIAdapter uses the chat completions API of OpenAI or of any
// OpenAI-compatible gateway reachable at BaseURL.
type OpenAIAPIAdapter struct {
	client    openai.Client
	model     string
	maxTokens int
}

// NewOpenAIAPIAdapter creates an OpenAI API adapter.
func NewOpenAIAPIAdapter(config Config) (*OpenAIAPIAdapter, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv("OPENAI_BASE_URL")
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	model := config.Model
	if model == "" {
		model = DefaultModel("openai-api")
	}

	return &OpenAIAPIAdapter{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: config.MaxTokens,
	}, nil
}

func (a *OpenAIAPIAdapter) Name() string {
	return "openai-api"
}

func (a *OpenAIAPIAdapter) Model() string {
	return a.model
}

// IsAvailable is true once the adapter was constructed with a key.
func (a *OpenAIAPIAdapter) IsAvailable() bool {
	return a != nil
}

func (a *OpenAIAPIAdapter) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	}
	if a.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(a.maxTokens))
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai API returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
