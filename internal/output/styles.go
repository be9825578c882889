package output

import (
	"fmt"

	"github.com/dhabedank/referat/internal/core"
)

// DefaultFont is the typeface of every registered style.
const DefaultFont = "Times New Roman"

// Style describes paragraph formatting.
type Style struct {
	Name    string `json:"name"`
	BasedOn string `json:"based_on,omitempty"`
	Font    string `json:"font"`
	SizePt  int    `json:"size_pt"`
	Bold    bool   `json:"bold"`
}

// HalfPoints returns the size in the half-point units used by Word.
func (s Style) HalfPoints() string {
	return fmt.Sprintf("%d", s.SizePt*2)
}

// StyleSheet maps style names to styles.
type StyleSheet map[string]Style

// DefaultStyles registers the essay styles and the title heading style.
func DefaultStyles() StyleSheet {
	return StyleSheet{
		core.StyleHeading: {Name: core.StyleHeading, BasedOn: "Heading 1", Font: DefaultFont, SizePt: 16, Bold: true},
		core.StyleBody:    {Name: core.StyleBody, BasedOn: "Normal", Font: DefaultFont, SizePt: 14},
		"Heading 1":       {Name: "Heading 1", Font: DefaultFont, SizePt: 20, Bold: true},
		"Heading 2":       {Name: "Heading 2", Font: DefaultFont, SizePt: 18, Bold: true},
		"Heading 3":       {Name: "Heading 3", Font: DefaultFont, SizePt: 16, Bold: true},
	}
}

// Resolve returns the named style, falling back to the body style.
func (s StyleSheet) Resolve(name string) Style {
	if style, ok := s[name]; ok {
		return style
	}
	return s[core.StyleBody]
}

// HeadingStyleName returns the built-in style name for a heading level.
// Levels outside 1..3 are clamped.
func HeadingStyleName(level int) string {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	return fmt.Sprintf("Heading %d", level)
}
