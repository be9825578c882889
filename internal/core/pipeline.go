package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Generator is the text generation capability used by the pipeline.
// This matches llm.Client but is defined here to avoid import cycles.
type Generator interface {
	// Name returns the provider identifier for logging.
	Name() string

	// Model returns the model the provider was configured with.
	Model() string

	// Generate sends one system/user prompt pair and returns the raw text.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// DocumentWriter accumulates document blocks and persists them on Save.
// This matches output.Writer but is defined here to avoid import cycles.
type DocumentWriter interface {
	AddHeading(text string, level int)
	AddParagraph(text, style string)
	AddPageBreak()
	Save() error
}

// WriterFactory creates a DocumentWriter that saves to path.
type WriterFactory func(path string) (DocumentWriter, error)

// RunResult describes how a run ended.
type RunResult struct {
	RunID    string
	Topic    string
	State    State
	FailedAt State // state the run was in when it failed; only meaningful when State is StateFailed
	Outline  []string
	Sections []Section // nil unless the run reached Done
	Path     string    // set once the document is saved
	Err      error     // why the run failed; nil unless State is StateFailed
}

// Pipeline turns a topic into a saved essay: outline, then one expansion per
// outline item, then document assembly.
type Pipeline struct {
	generator Generator
	writers   WriterFactory
	config    PipelineConfig
	logger    zerolog.Logger
	newID     func() string
}

// NewPipeline creates a pipeline bound to one generator and configuration.
func NewPipeline(generator Generator, writers WriterFactory, config PipelineConfig, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		generator: generator,
		writers:   writers,
		config:    config,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Start executes one run on its own goroutine and returns its events.
// The channel yields OutlineReady, one ItemReady per item and a final
// Finished event, then closes.
func (p *Pipeline) Start(ctx context.Context, topic, path string) <-chan Event {
	in := make(chan Event)
	out := make(chan Event)
	go relay(in, out)

	go func() {
		defer close(in)
		_, _ = p.Run(ctx, topic, path, func(ev Event) { in <- ev })
	}()

	return out
}

// Run executes one run synchronously. observe may be nil.
func (p *Pipeline) Run(ctx context.Context, topic, path string, observe Observer) (*RunResult, error) {
	result := &RunResult{
		RunID: p.newID(),
		Topic: topic,
		State: StateIdle,
	}
	log := p.logger.With().
		Str("run_id", result.RunID).
		Str("provider", p.generator.Name()).
		Logger()

	emit := func(ev Event) {
		if observe == nil {
			return
		}
		ev.RunID = result.RunID
		observe(ev)
	}

	err := p.execute(ctx, result, path, log, emit)
	if err != nil {
		result.FailedAt = result.State
		result.State = StateFailed
		result.Sections = nil
		result.Err = err
		log.Error().Err(err).Str("failed_at", result.FailedAt.String()).Msg("run failed")
	} else {
		log.Info().Str("path", result.Path).Int("sections", len(result.Sections)).Msg("essay saved")
	}

	emit(Event{
		Kind:    EventFinished,
		Result:  result,
		Err:     err,
		Message: finishMessage(result, err),
	})
	return result, err
}

func (p *Pipeline) execute(ctx context.Context, result *RunResult, path string, log zerolog.Logger, emit func(Event)) error {
	if err := p.config.Validate(); err != nil {
		return err
	}
	topic := strings.TrimSpace(result.Topic)
	if topic == "" {
		return ErrEmptyTopic
	}

	// Outline
	result.State = StateOutlineRequested
	systemPrompt := BuildOutlineSystemPrompt(p.config)
	userPrompt := BuildOutlinePrompt(topic, p.config)

	result.State = StateOutlinePending
	log.Info().Str("topic", topic).Msg("requesting outline")
	raw, err := p.generator.Generate(ctx, systemPrompt, userPrompt)
	if errors.Is(err, ErrEmptyResponse) {
		return ErrEmptyOutline
	}
	if err != nil {
		return &BackendError{Stage: "outline", Err: err}
	}

	outline := ParseOutline(raw)
	if len(outline) == 0 {
		return ErrEmptyOutline
	}
	result.Outline = outline
	result.State = StateOutlineReady
	log.Info().Int("items", len(outline)).Msg("outline ready")
	emit(Event{Kind: EventOutlineReady, Outline: outline})

	// Sections, strictly in outline order
	result.State = StatePerItemGeneration
	contentSystem := BuildContentSystemPrompt(p.config)
	contents := make([]string, 0, len(outline))
	for i, item := range outline {
		log.Debug().Int("index", i).Str("item", item).Msg("expanding item")
		content, err := p.generator.Generate(ctx, contentSystem, BuildContentPrompt(item, outline))
		if err == nil && strings.TrimSpace(content) == "" {
			err = ErrEmptyResponse
		}
		if err != nil {
			return &PartialContentError{
				Index: i,
				Item:  item,
				Err:   &BackendError{Stage: "item", Err: err},
			}
		}
		contents = append(contents, content)
		emit(Event{
			Kind:    EventItemReady,
			Index:   i,
			Total:   len(outline),
			Item:    item,
			Content: content,
		})
	}

	sections := make([]Section, len(outline))
	for i := range outline {
		sections[i] = Section{Item: outline[i], Content: contents[i]}
	}
	result.State = StateAllItemsReady

	// Document
	result.State = StateSaving
	doc := Document{
		RunID:    result.RunID,
		Topic:    topic,
		Provider: p.generator.Name(),
		Model:    p.generator.Model(),
		Outline:  outline,
		Sections: sections,
	}
	if err := p.save(doc, path); err != nil {
		return err
	}

	result.Sections = sections
	result.Path = path
	result.State = StateDone
	return nil
}

func (p *Pipeline) save(doc Document, path string) error {
	w, err := p.writers(path)
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	AssembleDocument(w, doc, p.config.Labels)
	if err := w.Save(); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

func finishMessage(result *RunResult, err error) string {
	if err != nil {
		return fmt.Sprintf("Generation failed: %v", err)
	}
	return fmt.Sprintf("Essay saved to %s", result.Path)
}
