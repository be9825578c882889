package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/dhabedank/referat/internal/core"
	"github.com/dhabedank/referat/internal/llm"
	"github.com/dhabedank/referat/internal/output"
)

// Form fields, in focus order.
const (
	fieldTopic = iota
	fieldProvider
	fieldModel
	fieldPath
	fieldGenerate
	fieldCount
)

// AppOptions configures the interactive generator.
type AppOptions struct {
	Providers []string // operational providers, in display order
	Provider  string   // preselected provider
	Model     string   // preselected model id
	Path      string   // preselected save path
	LLM       llm.Config
	Pipeline  core.PipelineConfig
	Logger    zerolog.Logger
}

type eventMsg core.Event

type streamClosedMsg struct{}

type notice struct {
	text   string
	failed bool
}

// App is the Bubble Tea model of the interactive generator. It runs at most
// one pipeline at a time and ignores form input while a run is in flight.
type App struct {
	opts AppOptions

	topic       textinput.Model
	path        textinput.Model
	providerIdx int
	modelIdx    int
	focus       int

	outlinePane  viewport.Model
	sectionsPane viewport.Model
	progress     progress.Model
	spinner      spinner.Model

	running  bool
	cancel   context.CancelFunc
	events   <-chan core.Event
	client   *llm.Client
	outline  []string
	sections []core.Section
	notice   *notice

	width  int
	height int
}

// NewApp creates the interactive generator.
func NewApp(opts AppOptions) *App {
	if len(opts.Providers) == 0 {
		opts.Providers = []string{"echo"}
	}

	topic := textinput.New()
	topic.Placeholder = "Essay topic"
	topic.CharLimit = 300
	topic.Width = 60
	topic.Focus()

	path := textinput.New()
	path.Placeholder = "referat_<topic>.docx"
	path.CharLimit = 500
	path.Width = 60
	path.SetValue(opts.Path)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	a := &App{
		opts:         opts,
		topic:        topic,
		path:         path,
		outlinePane:  viewport.New(30, 10),
		sectionsPane: viewport.New(60, 10),
		progress:     progress.New(progress.WithDefaultGradient()),
		spinner:      s,
	}

	for i, p := range opts.Providers {
		if p == opts.Provider {
			a.providerIdx = i
		}
	}
	for i, m := range a.models() {
		if m.ID == opts.Model {
			a.modelIdx = i
		}
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case eventMsg:
		a.handleEvent(core.Event(msg))
		return a, waitForEvent(a.events)

	case streamClosedMsg:
		a.running = false
		a.events = nil
		return a, nil

	case spinner.TickMsg:
		if !a.running {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, a.updateInputs(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, a.quit()
	}

	if a.notice != nil {
		switch msg.String() {
		case "enter", "esc", " ":
			a.notice = nil
		}
		return a, nil
	}

	if a.running {
		var cmd tea.Cmd
		a.sectionsPane, cmd = a.sectionsPane.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "esc":
		return a, a.quit()
	case "tab", "down":
		return a, a.setFocus((a.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return a, a.setFocus((a.focus + fieldCount - 1) % fieldCount)
	case "left", "right":
		if a.focus == fieldProvider || a.focus == fieldModel {
			a.cycle(msg.String() == "right")
			return a, nil
		}
	case "ctrl+g":
		return a, a.start()
	case "enter":
		if a.focus == fieldGenerate {
			return a, a.start()
		}
		return a, a.setFocus(a.focus + 1)
	}

	return a, a.updateInputs(msg)
}

func (a *App) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.focus {
	case fieldTopic:
		a.topic, cmd = a.topic.Update(msg)
	case fieldPath:
		a.path, cmd = a.path.Update(msg)
	}
	return cmd
}

func (a *App) setFocus(field int) tea.Cmd {
	a.focus = field
	a.topic.Blur()
	a.path.Blur()
	switch field {
	case fieldTopic:
		return a.topic.Focus()
	case fieldPath:
		return a.path.Focus()
	}
	return nil
}

func (a *App) cycle(forward bool) {
	step := 1
	if !forward {
		step = -1
	}
	if a.focus == fieldProvider {
		n := len(a.opts.Providers)
		a.providerIdx = (a.providerIdx + step + n) % n
		a.modelIdx = 0
		return
	}
	if n := len(a.models()); n > 0 {
		a.modelIdx = (a.modelIdx + step + n) % n
	}
}

func (a *App) provider() string {
	return a.opts.Providers[a.providerIdx]
}

// models lists the models of the selected provider. A preselected model that
// is not in the fixed list is offered first.
func (a *App) models() []llm.ModelInfo {
	models := llm.ModelsFor(a.provider())
	if a.provider() != a.opts.Provider || a.opts.Model == "" {
		return models
	}
	for _, m := range models {
		if m.ID == a.opts.Model {
			return models
		}
	}
	custom := llm.ModelInfo{ID: a.opts.Model, Name: a.opts.Model, Description: "From configuration"}
	return append([]llm.ModelInfo{custom}, models...)
}

func (a *App) model() llm.ModelInfo {
	models := a.models()
	if len(models) == 0 {
		return llm.ModelInfo{}
	}
	return models[a.modelIdx]
}

func (a *App) start() tea.Cmd {
	topic := strings.TrimSpace(a.topic.Value())
	if topic == "" {
		a.notice = &notice{text: "Enter a topic first.", failed: true}
		return nil
	}

	path := strings.TrimSpace(a.path.Value())
	if path == "" {
		path = output.TopicFilename(topic, ".docx")
	} else {
		path = output.EnsureExtension(path, ".docx")
	}
	a.path.SetValue(path)

	config := a.opts.LLM
	config.Model = a.model().ID
	adapter, err := llm.New(a.provider(), config)
	if err != nil {
		a.notice = &notice{text: fmt.Sprintf("Provider %s is not usable: %v", a.provider(), err), failed: true}
		return nil
	}
	a.client = llm.NewClient(adapter, a.opts.Logger)
	pipeline := core.NewPipeline(a.client, output.Open, a.opts.Pipeline, a.opts.Logger)

	a.outline = nil
	a.sections = nil
	a.outlinePane.SetContent("")
	a.sectionsPane.SetContent("")

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.events = pipeline.Start(ctx, topic, path)
	a.running = true

	return tea.Batch(waitForEvent(a.events), a.spinner.Tick)
}

func (a *App) quit() tea.Cmd {
	if a.cancel != nil {
		a.cancel()
	}
	return tea.Quit
}

func (a *App) handleEvent(ev core.Event) {
	switch ev.Kind {
	case core.EventOutlineReady:
		a.outline = ev.Outline
		a.refreshOutline()
	case core.EventItemReady:
		a.sections = append(a.sections, core.Section{Item: ev.Item, Content: ev.Content})
		a.refreshSections()
	case core.EventFinished:
		a.running = false
		text := ev.Message
		if a.client != nil {
			usage := a.client.Usage()
			cost := EstimateCostFromChars(a.client.Model(), usage.InputChars, usage.OutputChars)
			text += fmt.Sprintf("\n\n%d calls, ~%s tokens, est. %s",
				usage.Calls,
				FormatTokens(EstimateTokens(usage.InputChars+usage.OutputChars)),
				FormatCost(cost))
		}
		a.notice = &notice{text: text, failed: ev.Err != nil}
	}
}

// waitForEvent delivers the next pipeline event as a message.
func waitForEvent(events <-chan core.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func (a *App) layout() {
	paneHeight := a.height - 17
	if paneHeight < 5 {
		paneHeight = 5
	}
	outlineWidth := a.width / 3
	if outlineWidth < 20 {
		outlineWidth = 20
	}
	sectionsWidth := a.width - outlineWidth - 8
	if sectionsWidth < 20 {
		sectionsWidth = 20
	}

	a.outlinePane.Width = outlineWidth
	a.outlinePane.Height = paneHeight
	a.sectionsPane.Width = sectionsWidth
	a.sectionsPane.Height = paneHeight
	a.progress.Width = a.width - 30
	if a.progress.Width < 10 {
		a.progress.Width = 10
	}

	a.refreshOutline()
	a.refreshSections()
}

func (a *App) refreshOutline() {
	a.outlinePane.SetContent(a.renderPane(outlineMarkdown(a.outline), a.outlinePane.Width))
}

func (a *App) refreshSections() {
	a.sectionsPane.SetContent(a.renderPane(sectionsMarkdown(a.sections), a.sectionsPane.Width))
	a.sectionsPane.GotoBottom()
}

func (a *App) renderPane(markdown string, width int) string {
	rendered, err := renderMarkdown(markdown, width)
	if err != nil {
		a.opts.Logger.Warn().Err(err).Msg("markdown rendering failed")
		return markdown
	}
	return rendered
}

func (a *App) percent() float64 {
	if len(a.outline) == 0 {
		return 0
	}
	return float64(len(a.sections)+1) / float64(len(a.outline)+1)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.notice != nil {
		return a.noticeView()
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("referat"))
	b.WriteString(HelpStyle.Render("  essay generator"))
	b.WriteString("\n\n")

	b.WriteString(a.fieldLabel(fieldTopic, "Topic") + a.topic.View() + "\n")
	b.WriteString(a.fieldLabel(fieldProvider, "Provider") + a.selector(ModelStyle.Render(a.provider())) + "\n")
	m := a.model()
	b.WriteString(a.fieldLabel(fieldModel, "Model") + a.selector(ModelStyle.Render(m.Name)+" "+HelpStyle.Render(m.Description)) + "\n")
	b.WriteString(a.fieldLabel(fieldPath, "Save as") + a.path.View() + "\n\n")

	button := "[ Generate ]"
	if a.focus == fieldGenerate && !a.running {
		b.WriteString("  " + SelectedStyle.Render(button))
	} else {
		b.WriteString("  " + UnselectedStyle.Render(button))
	}
	b.WriteString("\n\n")

	b.WriteString(a.statusLine())
	b.WriteString("\n")

	outlineBox := BoxStyle.Render(SubtitleStyle.Render("Outline") + "\n" + a.outlinePane.View())
	sectionsBox := BoxStyle.Render(SubtitleStyle.Render("Sections") + "\n" + a.sectionsPane.View())
	if a.running {
		sectionsBox = HighlightBoxStyle.Render(SubtitleStyle.Render("Sections") + "\n" + a.sectionsPane.View())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, outlineBox, sectionsBox))
	b.WriteString("\n")

	if a.running {
		b.WriteString(HelpStyle.Render("Generating... pgup/pgdn scroll • ctrl+c quit"))
	} else {
		b.WriteString(HelpStyle.Render("tab/↑↓ move • ←/→ choose • enter/ctrl+g generate • esc quit"))
	}
	return b.String()
}

func (a *App) fieldLabel(field int, label string) string {
	text := fmt.Sprintf("  %-9s", label)
	if a.focus == field && !a.running {
		return SelectedStyle.Render(text)
	}
	return UnselectedStyle.Render(text)
}

func (a *App) selector(value string) string {
	return HelpStyle.Render("‹ ") + value + HelpStyle.Render(" ›")
}

func (a *App) statusLine() string {
	total := len(a.outline)
	switch {
	case a.running && total == 0:
		return fmt.Sprintf("  %s Requesting outline...", a.spinner.View())
	case a.running:
		return fmt.Sprintf("  %s %d/%d  %s", a.spinner.View(), len(a.sections), total, a.progress.ViewAs(a.percent()))
	case total > 0:
		return fmt.Sprintf("  %d/%d  %s", len(a.sections), total, a.progress.ViewAs(a.percent()))
	default:
		return ""
	}
}

func (a *App) noticeView() string {
	style := ModalStyle
	title := SuccessStyle.Render("Done")
	if a.notice.failed {
		style = ErrorModalStyle
		title = ErrorStyle.Render("Error")
	}
	box := style.Render(title + "\n\n" + a.notice.text + "\n\n" + HelpStyle.Render("enter to close"))
	if a.width == 0 || a.height == 0 {
		return box
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}
