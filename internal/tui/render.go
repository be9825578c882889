package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/dhabedank/referat/internal/core"
)

// renderMarkdown renders markdown for a terminal pane of the given width.
func renderMarkdown(input string, width int) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithWordWrap(width),
		glamour.WithStandardStyle("dark"),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(input)
}

// outlineMarkdown formats outline items as a markdown block. Items keep their
// own numbering, so they are written as hard-broken lines, not a list.
func outlineMarkdown(outline []string) string {
	var sb strings.Builder
	for _, item := range outline {
		sb.WriteString(escapeMarkdown(item))
		sb.WriteString("  \n")
	}
	return sb.String()
}

// sectionsMarkdown formats generated sections, one "##" heading per item.
func sectionsMarkdown(sections []core.Section) string {
	var sb strings.Builder
	for _, s := range sections {
		sb.WriteString("## ")
		sb.WriteString(escapeMarkdown(s.Item))
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(s.Content))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// escapeMarkdown keeps "1. Intro" from being parsed as a list item.
func escapeMarkdown(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".)"); i > 0 && isDigits(s[:i]) {
		return s[:i] + `\` + s[i:]
	}
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
