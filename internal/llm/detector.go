package llm

import (
	"fmt"
)

// ModelInfo describes an available model.
type ModelInfo struct {
	ID          string // Model identifier (e.g., "claude-sonnet-4-5-20250929")
	Name        string // Human-readable name (e.g., "Claude Sonnet 4.5")
	Description string // Brief description
	Provider    string // Provider name (e.g., "anthropic", "openai")
}

// claudeModels lists Claude models, shared by the CLI and the API adapters.
// The first entry is the default.
var claudeModels = []ModelInfo{
	{ID: "claude-sonnet-4-5-20250929", Name: "Claude Sonnet 4.5", Description: "Best balance of speed and capability ($3/$15 per MTok)", Provider: "anthropic"},
	{ID: "claude-opus-4-5-20251101", Name: "Claude Opus 4.5", Description: "Premium model, maximum intelligence ($5/$25 per MTok)", Provider: "anthropic"},
	{ID: "claude-haiku-4-5-20251001", Name: "Claude Haiku 4.5", Description: "Fastest, most cost-effective ($1/$5 per MTok)", Provider: "anthropic"},
	{ID: "claude-sonnet-4-20250514", Name: "Claude Sonnet 4", Description: "Previous balanced model ($3/$15 per MTok)", Provider: "anthropic"},
}

// codexModels lists models available through the Codex CLI.
var codexModels = []ModelInfo{
	{ID: "o3", Name: "O3", Description: "Most capable reasoning model", Provider: "openai"},
	{ID: "o3-mini", Name: "O3 Mini", Description: "Fast reasoning model", Provider: "openai"},
	{ID: "gpt-4o", Name: "GPT-4o", Description: "Fast multimodal model", Provider: "openai"},
}

// openAIModels lists chat models for the OpenAI API. Compatible gateways
// accept their own model ids through --model.
var openAIModels = []ModelInfo{
	{ID: "gpt-4o-mini", Name: "GPT-4o Mini", Description: "Most cost-effective", Provider: "openai"},
	{ID: "gpt-4o", Name: "GPT-4o", Description: "Fast multimodal model", Provider: "openai"},
	{ID: "gpt-4-turbo", Name: "GPT-4 Turbo", Description: "Previous flagship", Provider: "openai"},
	{ID: "deepseek-chat", Name: "DeepSeek Chat", Description: "Via an OpenAI-compatible base URL", Provider: "deepseek"},
}

var echoModels = []ModelInfo{
	{ID: "echo", Name: "Echo", Description: "Offline placeholder text, no model calls", Provider: "local"},
}

// Providers lists every provider name in detection order.
var Providers = []string{"claude-cli", "codex-cli", "anthropic-api", "openai-api", "echo"}

// ModelsFor returns the model list of a provider. The first entry is its default.
func ModelsFor(provider string) []ModelInfo {
	switch provider {
	case "claude-cli", "anthropic-api":
		return claudeModels
	case "codex-cli":
		return codexModels
	case "openai-api":
		return openAIModels
	case "echo":
		return echoModels
	default:
		return nil
	}
}

// DefaultModel returns the default model id of a provider.
func DefaultModel(provider string) string {
	models := ModelsFor(provider)
	if len(models) == 0 {
		return ""
	}
	return models[0].ID
}

// New creates the named adapter. An empty name auto-detects.
func New(name string, config Config) (Adapter, error) {
	switch name {
	case "":
		return DetectBestAdapter(config)
	case "claude-cli":
		a := NewClaudeCLIAdapter(config)
		if !a.IsAvailable() {
			return nil, fmt.Errorf("claude CLI not found in PATH")
		}
		return a, nil
	case "codex-cli":
		a := NewCodexCLIAdapter(config)
		if !a.IsAvailable() {
			return nil, fmt.Errorf("codex CLI not found in PATH")
		}
		return a, nil
	case "anthropic-api":
		return NewAnthropicAPIAdapter(config)
	case "openai-api":
		return NewOpenAIAPIAdapter(config)
	case "echo":
		return NewEchoAdapter(config), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q (available: claude-cli, codex-cli, anthropic-api, openai-api, echo)", name)
	}
}

// DetectBestAdapter finds the best available LLM adapter.
// Priority: Claude CLI > Codex CLI > Anthropic API > OpenAI API.
// The echo adapter is never picked automatically.
func DetectBestAdapter(config Config) (Adapter, error) {
	if config.PreferCLI {
		claude := NewClaudeCLIAdapter(config)
		if claude.IsAvailable() {
			return claude, nil
		}

		codex := NewCodexCLIAdapter(config)
		if codex.IsAvailable() {
			return codex, nil
		}
	}

	anthropic, err := NewAnthropicAPIAdapter(config)
	if err == nil && anthropic.IsAvailable() {
		return anthropic, nil
	}

	openai, err := NewOpenAIAPIAdapter(config)
	if err == nil && openai.IsAvailable() {
		return openai, nil
	}

	return nil, fmt.Errorf("no LLM adapter available - install Claude Code or Codex, set ANTHROPIC_API_KEY or OPENAI_API_KEY, or use --llm echo")
}

// ListAvailableAdapters returns all adapters that could be used.
func ListAvailableAdapters(config Config) []string {
	available := []string{}

	claude := NewClaudeCLIAdapter(config)
	if claude.IsAvailable() {
		available = append(available, "claude-cli")
	}

	codex := NewCodexCLIAdapter(config)
	if codex.IsAvailable() {
		available = append(available, "codex-cli")
	}

	anthropic, _ := NewAnthropicAPIAdapter(config)
	if anthropic != nil && anthropic.IsAvailable() {
		available = append(available, "anthropic-api")
	}

	openai, _ := NewOpenAIAPIAdapter(config)
	if openai != nil && openai.IsAvailable() {
		available = append(available, "openai-api")
	}

	return append(available, "echo")
}
