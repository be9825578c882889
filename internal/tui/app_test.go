package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/dhabedank/referat/internal/core"
)

func newTestApp(providers ...string) *App {
	if len(providers) == 0 {
		providers = []string{"echo"}
	}
	config := core.DefaultPipelineConfig()
	config.OutlineItems = 3
	return NewApp(AppOptions{
		Providers: providers,
		Provider:  providers[0],
		Pipeline:  config,
		Logger:    zerolog.Nop(),
	})
}

func typeText(a *App, s string) {
	for _, r := range s {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestAppGeneratesDocument(t *testing.T) {
	a := newTestApp()
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	typeText(a, "Noble gases")
	a.path.SetValue(filepath.Join(t.TempDir(), "essay"))

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if !a.running {
		t.Fatalf("run did not start, notice = %+v", a.notice)
	}
	if !strings.HasSuffix(a.path.Value(), "essay.docx") {
		t.Errorf("path = %q, want .docx enforced", a.path.Value())
	}

	for ev := range a.events {
		a.Update(eventMsg(ev))
	}
	a.Update(streamClosedMsg{})

	if a.running {
		t.Error("still running after the stream closed")
	}
	if a.notice == nil || a.notice.failed {
		t.Fatalf("notice = %+v, want success", a.notice)
	}
	if len(a.outline) != 3 || len(a.sections) != 3 {
		t.Errorf("outline %d, sections %d, want 3 and 3", len(a.outline), len(a.sections))
	}
	if a.percent() != 1 {
		t.Errorf("percent() = %f, want 1", a.percent())
	}
	if _, err := os.Stat(a.path.Value()); err != nil {
		t.Errorf("document not written: %v", err)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if a.notice != nil {
		t.Error("enter did not close the notice")
	}
}

func TestAppRejectsEmptyTopic(t *testing.T) {
	a := newTestApp()
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlG})

	if a.running {
		t.Error("run started without a topic")
	}
	if a.notice == nil || !a.notice.failed {
		t.Errorf("notice = %+v, want failure", a.notice)
	}
}

func TestAppIgnoresFormWhileRunning(t *testing.T) {
	a := newTestApp()
	a.running = true
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(a, "x")

	if a.focus != fieldTopic || a.topic.Value() != "" {
		t.Errorf("form changed while running: focus %d, topic %q", a.focus, a.topic.Value())
	}
}

func TestAppProviderAndModelSelection(t *testing.T) {
	a := newTestApp("echo", "openai-api")

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	if a.focus != fieldProvider {
		t.Fatalf("focus = %d, want provider", a.focus)
	}
	a.Update(tea.KeyMsg{Type: tea.KeyRight})
	if a.provider() != "openai-api" {
		t.Errorf("provider = %s, want openai-api", a.provider())
	}

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a.Update(tea.KeyMsg{Type: tea.KeyRight})
	if a.model().ID != "gpt-4o" {
		t.Errorf("model = %s, want gpt-4o", a.model().ID)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if a.provider() != "echo" || a.model().ID != "echo" {
		t.Errorf("selection = %s/%s, want echo/echo", a.provider(), a.model().ID)
	}
}

func TestAppOffersConfiguredModel(t *testing.T) {
	a := NewApp(AppOptions{
		Providers: []string{"echo", "openai-api"},
		Provider:  "openai-api",
		Model:     "deepseek-reasoner",
		Logger:    zerolog.Nop(),
	})

	if a.provider() != "openai-api" || a.model().ID != "deepseek-reasoner" {
		t.Errorf("selection = %s/%s, want openai-api/deepseek-reasoner", a.provider(), a.model().ID)
	}
}

func TestAppView(t *testing.T) {
	a := newTestApp()
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := a.View()
	for _, want := range []string{"Topic", "Provider", "Model", "Save as", "Generate", "Outline", "Sections"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q", want)
		}
	}

	a.notice = &notice{text: "Essay saved to x.docx"}
	if !strings.Contains(a.View(), "Essay saved to x.docx") {
		t.Error("notice not shown")
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := map[string]string{
		"1. Intro":     `1\. Intro`,
		"12) Summary":  `12\) Summary`,
		"Intro":        "Intro",
		"v1.2 release": "v1.2 release",
		" 3. padded ":  `3\. padded`,
	}
	for in, want := range tests {
		if got := escapeMarkdown(in); got != want {
			t.Errorf("escapeMarkdown(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSectionsMarkdown(t *testing.T) {
	got := sectionsMarkdown([]core.Section{{Item: "1. Intro", Content: " text \n"}})
	if got != "## 1\\. Intro\n\ntext\n\n" {
		t.Errorf("sectionsMarkdown() = %q", got)
	}
}
