package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/dhabedank/referat/internal/core"
)

// MarkdownAdapter renders plain Markdown: headings become "#" lines, item
// headings become "##" lines and page breaks become thematic breaks.
type MarkdownAdapter struct{}

// NewMarkdownAdapter creates a Markdown adapter.
func NewMarkdownAdapter() *MarkdownAdapter {
	return &MarkdownAdapter{}
}

func (a *MarkdownAdapter) Name() string {
	return "markdown"
}

func (a *MarkdownAdapter) Extension() string {
	return ".md"
}

func (a *MarkdownAdapter) Render(w io.Writer, blocks []Block, styles StyleSheet) error {
	bw := bufio.NewWriter(w)
	for i, b := range blocks {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(markdownBlock(b))
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// MarkdownBlocks renders blocks to a Markdown string.
func MarkdownBlocks(blocks []Block) string {
	var sb strings.Builder
	_ = NewMarkdownAdapter().Render(&sb, blocks, DefaultStyles())
	return sb.String()
}

func markdownBlock(b Block) string {
	switch {
	case b.Kind == BlockPageBreak:
		return "---"
	case b.Kind == BlockHeading:
		return strings.Repeat("#", clampLevel(b.Level)) + " " + singleLine(b.Text)
	case b.Style == core.StyleHeading:
		return "## " + singleLine(b.Text)
	default:
		return strings.TrimSpace(b.Text)
	}
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// singleLine folds line breaks so a heading stays on one line.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
