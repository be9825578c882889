package core

import (
	"fmt"
	"strings"
)

// Paragraph style names registered by every DocumentWriter.
const (
	StyleHeading = "HeadingCustom" // bold 16pt, based on "Heading 1"
	StyleBody    = "BodyCustom"    // regular 14pt, based on "Normal"
)

// Section pairs one outline item with the prose generated for it.
type Section struct {
	Item    string `json:"item"`
	Content string `json:"content"`
}

// Document is the fully generated essay, built only after every section exists.
type Document struct {
	RunID    string    `json:"run_id"`
	Topic    string    `json:"topic"`
	Provider string    `json:"provider,omitempty"`
	Model    string    `json:"model,omitempty"`
	Outline  []string  `json:"outline"`
	Sections []Section `json:"sections"`
}

// Labels holds the fixed texts placed in the document around generated content.
type Labels struct {
	// TitlePrefix is prepended to the topic in the title heading.
	TitlePrefix string `yaml:"title_prefix"`

	// Outline is the heading above the outline summary block.
	Outline string `yaml:"outline"`
}

// PipelineConfig configures one pipeline. It is read-only once a run starts.
type PipelineConfig struct {
	OutlineItems int    // Default: 8
	Language     string // Optional language instruction appended to prompts
	Labels       Labels
}

// DefaultPipelineConfig returns sensible defaults.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		OutlineItems: 8,
		Labels: Labels{
			TitlePrefix: "Essay on the topic: ",
			Outline:     "Outline",
		},
	}
}

// Validate checks the config for values a run cannot work with.
func (c PipelineConfig) Validate() error {
	if c.OutlineItems < 1 {
		return &ValidationError{Field: "outline_items", Message: "must be at least 1"}
	}
	if strings.TrimSpace(c.Labels.Outline) == "" {
		return &ValidationError{Field: "labels.outline", Message: "required"}
	}
	return nil
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}
