package core

import (
	"fmt"
	"strings"
)

// OutlineSystemPrompt asks for a bare enumerated outline. %d is the item count.
const OutlineSystemPrompt = `You write outlines for school and university essays.
Answer ONLY with a numbered list of exactly %d outline items, one item per line.
Do not add a title, an introduction, explanations or any other text.`

// ContentSystemPrompt is the instruction for expanding a single outline item.
const ContentSystemPrompt = `You are an experienced author of scientific texts.
Write a detailed text for the given item of an essay outline, keeping the rest of the outline in mind so that sections do not repeat each other.
Do not repeat the item title as a heading. Output only the section text, nothing extra.`

// BuildOutlineSystemPrompt returns the outline instruction for the configured size.
func BuildOutlineSystemPrompt(config PipelineConfig) string {
	return withLanguage(fmt.Sprintf(OutlineSystemPrompt, config.OutlineItems), config.Language)
}

// BuildContentSystemPrompt returns the per-item instruction.
func BuildContentSystemPrompt(config PipelineConfig) string {
	return withLanguage(ContentSystemPrompt, config.Language)
}

// BuildOutlinePrompt embeds the topic into the outline request.
func BuildOutlinePrompt(topic string, config PipelineConfig) string {
	return fmt.Sprintf("Write a short %d-item essay outline on the topic: %s", config.OutlineItems, topic)
}

// BuildContentPrompt embeds the focus item and the whole outline for context.
func BuildContentPrompt(item string, outline []string) string {
	var sb strings.Builder
	sb.WriteString("Write the essay section for this outline item: ")
	sb.WriteString(item)
	sb.WriteString("\n\nFull outline:\n")
	for _, o := range outline {
		sb.WriteString(o)
		sb.WriteString("\n")
	}
	sb.WriteString("\nReturn only the content of the section, without its title.")
	return sb.String()
}

func withLanguage(prompt, language string) string {
	if strings.TrimSpace(language) == "" {
		return prompt
	}
	return prompt + "\nWrite in " + strings.TrimSpace(language) + "."
}
