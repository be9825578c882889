package output

import (
	"io"

	"github.com/fumiama/go-docx"
)

// DocxAdapter renders Word documents. Formatting is applied per run since
// the default theme carries no custom paragraph styles.
type DocxAdapter struct{}

// NewDocxAdapter creates a docx adapter.
func NewDocxAdapter() *DocxAdapter {
	return &DocxAdapter{}
}

func (a *DocxAdapter) Name() string {
	return "docx"
}

func (a *DocxAdapter) Extension() string {
	return ".docx"
}

func (a *DocxAdapter) Render(w io.Writer, blocks []Block, styles StyleSheet) error {
	doc := docx.New().WithDefaultTheme()

	for _, b := range blocks {
		switch b.Kind {
		case BlockPageBreak:
			doc.AddParagraph().AddPageBreaks()
		case BlockHeading:
			para := doc.AddParagraph()
			if b.Level == 1 {
				para.Justification("center")
			}
			applyStyle(para.AddText(b.Text), styles.Resolve(b.Style))
		default:
			applyStyle(doc.AddParagraph().AddText(b.Text), styles.Resolve(b.Style))
		}
	}

	// Section properties close the body.
	doc.WithA4Page()

	_, err := doc.WriteTo(w)
	return err
}

func applyStyle(run *docx.Run, style Style) {
	run.Size(style.HalfPoints()).Font(style.Font, style.Font, style.Font, "")
	if style.Bold {
		run.Bold()
	}
}
