package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ClaudeCLIAdapter uses the Claude Code CLI for generation.
// This is preferred because users already have it authenticated.
type ClaudeCLIAdapter struct {
	model string
}

// NewClaudeCLIAdapter creates a Claude CLI adapter.
func NewClaudeCLIAdapter(config Config) *ClaudeCLIAdapter {
	model := config.Model
	if model == "" {
		model = DefaultModel("claude-cli")
	}
	return &ClaudeCLIAdapter{model: model}
}

func (a *ClaudeCLIAdapter) Name() string {
	return "claude-cli"
}

func (a *ClaudeCLIAdapter) Model() string {
	return a.model
}

// IsAvailable checks if the claude CLI is installed.
func (a *ClaudeCLIAdapter) IsAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}

func (a *ClaudeCLIAdapter) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	// The system prompt goes through a file, the user prompt through stdin.
	systemFile, err := os.CreateTemp("", "referat-system-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create system prompt file: %w", err)
	}
	defer os.Remove(systemFile.Name())

	if _, err := systemFile.WriteString(systemPrompt); err != nil {
		systemFile.Close()
		return "", fmt.Errorf("failed to write system prompt: %w", err)
	}
	systemFile.Close()

	cmd := exec.CommandContext(ctx, "claude",
		"--model", a.model,
		"--system-prompt-file", systemFile.Name(),
		"--print",
		"--output-format", "text",
	)
	cmd.Stdin = strings.NewReader(userPrompt)

	output, err := cmd.Output()
	if err != nil {
		return "", cliError(ctx, "claude", err)
	}

	return strings.TrimSpace(string(output)), nil
}

// cliError turns a failed subprocess into an error carrying its stderr. A
// process killed because ctx ended also wraps the context error.
func cliError(ctx context.Context, name string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s CLI interrupted: %w", name, errors.Join(ctxErr, err))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if stderr != "" {
			return fmt.Errorf("%s CLI failed: %s: %w", name, stderr, err)
		}
	}
	return fmt.Errorf("%s CLI failed: %w", name, err)
}
