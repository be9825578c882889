package cmd

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dhabedank/referat/internal/llm"
	"github.com/dhabedank/referat/internal/tui"
)

var savePath string

// GenerateCmd opens the interactive essay generator.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one essay interactively",
	Long: `Open a terminal form to generate a single essay.

Enter a topic, pick one of the available providers and one of its models,
choose where to save the document (.docx is enforced) and start generation.
The outline and every finished section are shown as they arrive.

Logs go to referat.log in the user cache directory.`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVar(&savePath, "out", "", "Preselected save path (default: referat_<topic>.docx)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	lvl, _ := zerolog.ParseLevel(logLevel)
	fileLogger := zerolog.New(logFile).Level(lvl).With().Timestamp().Logger()

	config := llmConfig()
	providers := llm.ListAvailableAdapters(config)
	provider, err := preselectProvider(config, providers)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.AppOptions{
		Providers: providers,
		Provider:  provider,
		Model:     llmModel,
		Path:      savePath,
		LLM:       config,
		Pipeline:  pipelineConfig(),
		Logger:    fileLogger,
	})

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("interactive generator failed: %w", err)
	}
	return nil
}

// preselectProvider returns the provider selected when the form opens: the
// configured one if it is operational, else the best detected one.
func preselectProvider(config llm.Config, providers []string) (string, error) {
	if config.Provider != "" {
		if !slices.Contains(providers, config.Provider) {
			return "", fmt.Errorf("LLM provider %s is not available (available: %v)", config.Provider, providers)
		}
		return config.Provider, nil
	}
	if adapter, err := llm.DetectBestAdapter(config); err == nil {
		return adapter.Name(), nil
	}
	return "echo", nil
}
