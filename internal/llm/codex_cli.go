package llm

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CodexCLIAdapter uses the Codex CLI for generation.
type CodexCLIAdapter struct {
	model string
}

// NewCodexCLIAdapter creates a Codex CLI adapter.
func NewCodexCLIAdapter(config Config) *CodexCLIAdapter {
	model := config.Model
	if model == "" {
		model = DefaultModel("codex-cli")
	}
	return &CodexCLIAdapter{model: model}
}

func (a *CodexCLIAdapter) Name() string {
	return "codex-cli"
}

func (a *CodexCLIAdapter) Model() string {
	return a.model
}

// IsAvailable checks if the codex CLI is installed.
func (a *CodexCLIAdapter) IsAvailable() bool {
	_, err := exec.LookPath("codex")
	return err == nil
}

func (a *CodexCLIAdapter) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	// Codex has no separate system prompt input.
	cmd := exec.CommandContext(ctx, "codex",
		"--model", a.model,
		"--quiet",
	)
	cmd.Stdin = strings.NewReader(combinePrompts(systemPrompt, userPrompt))

	output, err := cmd.Output()
	if err != nil {
		return "", cliError(ctx, "codex", err)
	}

	return strings.TrimSpace(string(output)), nil
}

func combinePrompts(systemPrompt, userPrompt string) string {
	return fmt.Sprintf("SYSTEM INSTRUCTIONS:\n%s\n\nUSER REQUEST:\n%s", systemPrompt, userPrompt)
}
