package core

// AssembleDocument writes the essay layout into w:
// title, page break, outline summary, page break, then every section as an
// item heading followed by its body text.
func AssembleDocument(w DocumentWriter, doc Document, labels Labels) {
	w.AddHeading(labels.TitlePrefix+doc.Topic, 1)
	w.AddPageBreak()

	w.AddParagraph(labels.Outline, StyleHeading)
	for _, item := range doc.Outline {
		w.AddParagraph(item, StyleHeading)
	}
	w.AddPageBreak()

	for _, s := range doc.Sections {
		w.AddParagraph(s.Item, StyleHeading)
		w.AddParagraph(s.Content, StyleBody)
	}
}
