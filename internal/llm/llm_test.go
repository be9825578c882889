package llm

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dhabedank/referat/internal/core"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if !config.PreferCLI {
		t.Error("PreferCLI should be true by default")
	}
	if config.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want 4096", config.MaxTokens)
	}
}

func TestAdapterNamesAndDefaultModels(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	anthropic, err := NewAnthropicAPIAdapter(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewAnthropicAPIAdapter() error = %v", err)
	}
	openai, err := NewOpenAIAPIAdapter(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAIAPIAdapter() error = %v", err)
	}

	tests := []struct {
		adapter Adapter
		name    string
	}{
		{NewClaudeCLIAdapter(Config{}), "claude-cli"},
		{NewCodexCLIAdapter(Config{}), "codex-cli"},
		{anthropic, "anthropic-api"},
		{openai, "openai-api"},
		{NewEchoAdapter(Config{}), "echo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.adapter.Name() != tt.name {
				t.Errorf("Name() = %s, want %s", tt.adapter.Name(), tt.name)
			}
			if tt.adapter.Model() != DefaultModel(tt.name) {
				t.Errorf("Model() = %s, want %s", tt.adapter.Model(), DefaultModel(tt.name))
			}
		})
	}
}

func TestAdapterCustomModel(t *testing.T) {
	adapter := NewClaudeCLIAdapter(Config{Model: "claude-haiku-4-5-20251001"})
	if adapter.Model() != "claude-haiku-4-5-20251001" {
		t.Errorf("Model() = %s", adapter.Model())
	}
}

func TestAPIAdaptersWithoutKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewAnthropicAPIAdapter(Config{}); err == nil {
		t.Error("NewAnthropicAPIAdapter() should fail without a key")
	}
	if _, err := NewOpenAIAPIAdapter(Config{}); err == nil {
		t.Error("NewOpenAIAPIAdapter() should fail without a key")
	}
}

func TestListAvailableAdaptersIncludesEcho(t *testing.T) {
	adapters := ListAvailableAdapters(DefaultConfig())
	t.Logf("Available adapters: %v", adapters)

	if len(adapters) == 0 || adapters[len(adapters)-1] != "echo" {
		t.Errorf("ListAvailableAdapters() = %v, want echo last", adapters)
	}
}

func TestListAvailableAdaptersSeesAPIKeys(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("OPENAI_API_KEY", "test-key")

	adapters := strings.Join(ListAvailableAdapters(DefaultConfig()), ",")
	if !strings.Contains(adapters, "anthropic-api,openai-api,echo") {
		t.Errorf("ListAvailableAdapters() = %s", adapters)
	}
}

func TestNew(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"echo", Config{}, false},
		{"openai-api", Config{APIKey: "k", BaseURL: "https://gateway.example/v1", Model: "deepseek-chat"}, false},
		{"openai-api", Config{}, true},
		{"gemini", Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, err := New(tt.name, tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err == nil && adapter.Name() != tt.name {
				t.Errorf("Name() = %s, want %s", adapter.Name(), tt.name)
			}
		})
	}
}

func TestModelsFor(t *testing.T) {
	for _, provider := range Providers {
		models := ModelsFor(provider)
		if len(models) == 0 {
			t.Errorf("ModelsFor(%q) is empty", provider)
			continue
		}
		if DefaultModel(provider) != models[0].ID {
			t.Errorf("DefaultModel(%q) = %s, want first entry %s", provider, DefaultModel(provider), models[0].ID)
		}
	}
	if ModelsFor("unknown") != nil {
		t.Error("ModelsFor(unknown) should be nil")
	}
}

func TestEchoOutline(t *testing.T) {
	config := core.DefaultPipelineConfig()
	config.OutlineItems = 4

	adapter := NewEchoAdapter(Config{})
	raw, err := adapter.Generate(context.Background(),
		core.BuildOutlineSystemPrompt(config),
		core.BuildOutlinePrompt("Noble gases", config))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	outline := core.ParseOutline(raw)
	if len(outline) != 4 {
		t.Fatalf("got %d items, want 4: %q", len(outline), outline)
	}
	if outline[0] != "1. Introduction to Noble gases" {
		t.Errorf("first item = %q", outline[0])
	}
}

func TestEchoContent(t *testing.T) {
	adapter := NewEchoAdapter(Config{})
	outline := []string{"1. Intro", "2. Body"}

	text, err := adapter.Generate(context.Background(),
		core.BuildContentSystemPrompt(core.DefaultPipelineConfig()),
		core.BuildContentPrompt("2. Body", outline))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(text, "2. Body") || strings.Contains(text, "\n") {
		t.Errorf("content = %q, want one paragraph about the item", text)
	}
}

func TestEchoRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewEchoAdapter(Config{}).Generate(ctx, "", "topic"); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}

type failingAdapter struct{ err error }

func (a failingAdapter) Name() string      { return "failing" }
func (a failingAdapter) Model() string     { return "none" }
func (a failingAdapter) IsAvailable() bool { return true }
func (a failingAdapter) Generate(context.Context, string, string) (string, error) {
	return "", a.err
}

func TestClientWrapsFailure(t *testing.T) {
	cause := errors.New("503 service unavailable")
	client := NewClient(failingAdapter{err: cause}, zerolog.Nop())

	_, err := client.Generate(context.Background(), "system", "user")
	if !errors.Is(err, cause) {
		t.Fatalf("Generate() error = %v, want wrapped cause", err)
	}
	if !strings.HasPrefix(err.Error(), "failing: ") {
		t.Errorf("error %q does not name the provider", err)
	}
}

// replyAdapter returns its replies in order, then blank text.
type replyAdapter struct {
	replies []string
	calls   int
}

func (a *replyAdapter) Name() string      { return "replies" }
func (a *replyAdapter) Model() string     { return "none" }
func (a *replyAdapter) IsAvailable() bool { return true }
func (a *replyAdapter) Generate(context.Context, string, string) (string, error) {
	defer func() { a.calls++ }()
	if a.calls < len(a.replies) {
		return a.replies[a.calls], nil
	}
	return "", nil
}

func TestClientRejectsBlankReply(t *testing.T) {
	for _, reply := range []string{"", "  \n\t"} {
		client := NewClient(&replyAdapter{replies: []string{reply}}, zerolog.Nop())

		text, err := client.Generate(context.Background(), "system", "user")
		if !errors.Is(err, core.ErrEmptyResponse) {
			t.Errorf("Generate() with reply %q: text = %q, err = %v, want ErrEmptyResponse", reply, text, err)
		}
		if err != nil && !strings.HasPrefix(err.Error(), "replies: ") {
			t.Errorf("error %q does not name the provider", err)
		}
		if client.Usage().Calls != 1 {
			t.Errorf("Calls = %d, want 1", client.Usage().Calls)
		}
	}
}

func TestPipelineFailsOnBlankItemReply(t *testing.T) {
	adapter := &replyAdapter{replies: []string{"1. Intro\n2. Body\n3. End", "intro text", ""}}
	client := NewClient(adapter, zerolog.Nop())

	var opened int
	writers := func(string) (core.DocumentWriter, error) {
		opened++
		return nil, errors.New("no writer expected")
	}
	p := core.NewPipeline(client, writers, core.DefaultPipelineConfig(), zerolog.Nop())

	result, err := p.Run(context.Background(), "Atoms", "out.docx", nil)

	var partial *core.PartialContentError
	if !errors.As(err, &partial) || partial.Index != 1 {
		t.Fatalf("Run() error = %v, want *PartialContentError at index 1", err)
	}
	if result.State != core.StateFailed {
		t.Errorf("State = %s, want failed", result.State)
	}
	if opened != 0 {
		t.Errorf("writer opened %d times after a blank reply", opened)
	}
}

func TestClientUsage(t *testing.T) {
	client := NewClient(NewEchoAdapter(Config{}), zerolog.Nop())

	text, err := client.Generate(context.Background(), "sys", "Tell me about atoms")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	usage := client.Usage()
	if usage.Calls != 1 {
		t.Errorf("Calls = %d, want 1", usage.Calls)
	}
	if usage.InputChars != len("sys")+len("Tell me about atoms") {
		t.Errorf("InputChars = %d", usage.InputChars)
	}
	if usage.OutputChars != len(text) {
		t.Errorf("OutputChars = %d, want %d", usage.OutputChars, len(text))
	}
	if client.Name() != "echo" || client.Model() != "echo" {
		t.Errorf("Name/Model = %s/%s", client.Name(), client.Model())
	}
}

func TestClientSatisfiesGenerator(t *testing.T) {
	var _ core.Generator = NewClient(NewEchoAdapter(Config{}), zerolog.Nop())
}

func TestCLIErrorKeepsCause(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	_, runErr := exec.Command(sh, "-c", "echo quota exceeded >&2; exit 3").Output()
	if runErr == nil {
		t.Fatal("command succeeded")
	}

	err = cliError(context.Background(), "claude", runErr)
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Errorf("cliError() = %v, want the exit error in the chain", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("cliError() = %q, want stderr in the message", err)
	}
}

func TestCLIErrorAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	killed := errors.New("signal: killed")
	err := cliError(ctx, "codex", killed)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cliError() = %v, want context.Canceled in the chain", err)
	}
	if !errors.Is(err, killed) {
		t.Errorf("cliError() = %v, want the process error in the chain", err)
	}
}
