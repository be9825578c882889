package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dhabedank/referat/internal/llm"
	"github.com/dhabedank/referat/internal/tui"
	"github.com/dhabedank/referat/internal/version"
)

var resetConfig bool

// SetupCmd represents the setup command.
var SetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Long: `Configure referat with an interactive wizard.

The wizard asks for:
- Provider: which available LLM provider generates the essays
- Model: which of the provider's models to use

Other keys already present in the config file are kept.
Configuration is saved to ~/.referat.yaml`,
	RunE: runSetup,
}

func init() {
	SetupCmd.Flags().BoolVar(&resetConfig, "reset", false, "Reset configuration to defaults")
}

func runSetup(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if resetConfig {
		if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove config: %w", err)
		}
		fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration reset to defaults")
		fmt.Printf("  Removed: %s\n", configPath)
		return nil
	}

	providers := llm.ListAvailableAdapters(llmConfig())

	p := tea.NewProgram(newSetupModel(providers))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	final := m.(setupModel)
	if final.cancelled {
		fmt.Println("Setup cancelled")
		return nil
	}

	config := &configFileData{}
	if _, err := os.Stat(configPath); err == nil {
		if config, err = readConfigFile(configPath); err != nil {
			return err
		}
	}
	config.LLM = final.provider
	config.Model = final.model

	if err := saveConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if err := version.MarkInitialized(); err != nil {
		logger.Debug().Err(err).Msg("could not write first-run marker")
	}

	fmt.Println()
	fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration saved to " + configPath)
	fmt.Println()
	fmt.Printf("  Provider: %s\n", final.provider)
	fmt.Printf("  Model:    %s\n", tui.ModelStyle.Render(final.model))

	return nil
}

func getConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return version.ConfigFileName
	}
	return filepath.Join(home, version.ConfigFileName)
}

func saveConfig(path string, config *configFileData) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Bubble Tea model for the setup wizard

type setupModel struct {
	step      int // 0=provider, 1=model
	providers list.Model
	models    list.Model
	provider  string
	model     string
	cancelled bool
	width     int
	height    int
}

type providerItem struct {
	name string
}

func (p providerItem) Title() string { return p.name }
func (p providerItem) Description() string {
	if p.name == "echo" {
		return "Offline placeholder text"
	}
	return "Default model: " + llm.DefaultModel(p.name)
}
func (p providerItem) FilterValue() string { return p.name }

type modelItem struct {
	info llm.ModelInfo
}

func (m modelItem) Title() string       { return m.info.Name }
func (m modelItem) Description() string { return m.info.Description }
func (m modelItem) FilterValue() string { return m.info.Name }

func newSetupList(items []list.Item, title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("#9b59b6"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(lipgloss.Color("#95a5a6"))

	l := list.New(items, delegate, 60, 14)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = tui.TitleStyle
	return l
}

func newSetupModel(providers []string) setupModel {
	items := make([]list.Item, len(providers))
	for i, p := range providers {
		items[i] = providerItem{name: p}
	}

	return setupModel{
		providers: newSetupList(items, "Select Provider"),
		models:    newSetupList(nil, "Select Model"),
	}
}

// selectProvider fills the model list with the provider's models.
func (m *setupModel) selectProvider(name string) {
	m.provider = name
	models := llm.ModelsFor(name)
	items := make([]list.Item, len(models))
	for i, info := range models {
		items[i] = modelItem{info: info}
	}
	m.models.SetItems(items)
	m.models.Select(0)
	m.models.Title = "Select Model (" + name + ")"
}

func (m setupModel) current() *list.Model {
	if m.step == 0 {
		return &m.providers
	}
	return &m.models
}

func (m setupModel) Init() tea.Cmd {
	return nil
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.providers, &m.models} {
			l.SetWidth(msg.Width)
			l.SetHeight(msg.Height - 4)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if m.step == 0 {
				item, ok := m.providers.SelectedItem().(providerItem)
				if !ok {
					return m, nil
				}
				m.selectProvider(item.name)
				m.step = 1
				return m, nil
			}
			if item, ok := m.models.SelectedItem().(modelItem); ok {
				m.model = item.info.ID
			}
			return m, tea.Quit

		case "left", "h":
			if m.step > 0 {
				m.step--
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.step == 0 {
		m.providers, cmd = m.providers.Update(msg)
	} else {
		m.models, cmd = m.models.Update(msg)
	}
	return m, cmd
}

func (m setupModel) View() string {
	if m.cancelled {
		return ""
	}

	steps := []string{"Provider", "Model"}
	progress := "\n  "
	for i, s := range steps {
		if i == m.step {
			progress += tui.SelectedStyle.Render(fmt.Sprintf("[%s]", s))
		} else if i < m.step {
			progress += tui.SuccessStyle.Render(fmt.Sprintf("✓ %s", s))
		} else {
			progress += tui.UnselectedStyle.Render(fmt.Sprintf("○ %s", s))
		}
		if i < len(steps)-1 {
			progress += " → "
		}
	}
	progress += "\n\n"

	help := tui.HelpStyle.Render("\n  ↑/↓: navigate • enter: select • ←: back • q: quit")

	return progress + m.current().View() + help
}
