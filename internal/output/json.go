package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONAdapter outputs the document as an ordered block list plus the styles
// the blocks refer to.
type JSONAdapter struct{}

// NewJSONAdapter creates a JSON adapter.
func NewJSONAdapter() *JSONAdapter {
	return &JSONAdapter{}
}

func (a *JSONAdapter) Name() string {
	return "json"
}

func (a *JSONAdapter) Extension() string {
	return ".json"
}

type jsonBlock struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"`
	Style string `json:"style,omitempty"`
}

type jsonDocument struct {
	Blocks []jsonBlock      `json:"blocks"`
	Styles map[string]Style `json:"styles"`
}

func (a *JSONAdapter) Render(w io.Writer, blocks []Block, styles StyleSheet) error {
	out := jsonDocument{
		Blocks: make([]jsonBlock, 0, len(blocks)),
		Styles: make(map[string]Style),
	}
	for _, b := range blocks {
		out.Blocks = append(out.Blocks, jsonBlock{
			Type:  b.Kind.String(),
			Text:  b.Text,
			Level: b.Level,
			Style: b.Style,
		})
		if b.Style != "" {
			out.Styles[b.Style] = styles.Resolve(b.Style)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
