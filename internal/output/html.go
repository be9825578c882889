package output

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"

	"github.com/dhabedank/referat/internal/core"
)

// HTMLAdapter renders the Markdown form of a document to a standalone HTML page.
type HTMLAdapter struct {
	md goldmark.Markdown
}

// NewHTMLAdapter creates an HTML adapter.
func NewHTMLAdapter() *HTMLAdapter {
	return &HTMLAdapter{md: goldmark.New()}
}

func (a *HTMLAdapter) Name() string {
	return "html"
}

func (a *HTMLAdapter) Extension() string {
	return ".html"
}

func (a *HTMLAdapter) Render(w io.Writer, blocks []Block, styles StyleSheet) error {
	var body bytes.Buffer
	if err := a.md.Convert([]byte(MarkdownBlocks(blocks)), &body); err != nil {
		return fmt.Errorf("failed to convert markdown: %w", err)
	}

	heading := styles.Resolve("Heading 1")
	item := styles.Resolve(core.StyleHeading)
	text := styles.Resolve(core.StyleBody)

	_, err := fmt.Fprintf(w, htmlPage,
		html.EscapeString(documentTitle(blocks)),
		text.Font, text.SizePt,
		heading.SizePt,
		item.SizePt,
		body.String(),
	)
	return err
}

func documentTitle(blocks []Block) string {
	for _, b := range blocks {
		if b.Kind == BlockHeading {
			return singleLine(b.Text)
		}
	}
	return ""
}

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: "%s", serif; font-size: %dpt; max-width: 48em; margin: 2em auto; }
h1 { font-size: %dpt; text-align: center; }
h2 { font-size: %dpt; }
hr { page-break-after: always; border: 0; }
</style>
</head>
<body>
%s</body>
</html>
`
