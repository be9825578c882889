package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dhabedank/referat/internal/core"
	"github.com/dhabedank/referat/internal/llm"
	"github.com/dhabedank/referat/internal/version"
)

var (
	configFile   string // Config file path
	llmProvider  string
	llmModel     string
	baseURL      string
	logLevel     string
	outlineItems int
	language     string

	// Config file only
	maxTokens int
	labels    core.Labels

	logger = zerolog.Nop()
)

// configFileData is the structure of .referat.yaml.
type configFileData struct {
	LLM          string       `yaml:"llm,omitempty"`
	Model        string       `yaml:"model,omitempty"`
	BaseURL      string       `yaml:"base_url,omitempty"`
	MaxTokens    int          `yaml:"max_tokens,omitempty"`
	OutlineItems int          `yaml:"outline_items,omitempty"`
	Language     string       `yaml:"language,omitempty"`
	Format       string       `yaml:"format,omitempty"`
	OutDir       string       `yaml:"out_dir,omitempty"`
	LogLevel     string       `yaml:"log_level,omitempty"`
	Labels       *core.Labels `yaml:"labels,omitempty"`
}

// AddPersistentFlags registers the flags shared by every command.
func AddPersistentFlags(root *cobra.Command) {
	defaults := core.DefaultPipelineConfig()

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default: ./.referat.yaml, then ~/.referat.yaml)")
	flags.StringVarP(&llmProvider, "llm", "l", "auto", "LLM provider (auto/claude-cli/codex-cli/anthropic-api/openai-api/echo)")
	flags.StringVarP(&llmModel, "model", "m", "", "Model to use (provider-specific)")
	flags.StringVar(&baseURL, "base-url", "", "API base URL for OpenAI-compatible gateways")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level (debug/info/warn/error)")
	flags.IntVarP(&outlineItems, "outline-items", "n", defaults.OutlineItems, "Number of outline items to request")
	flags.StringVar(&language, "language", "", "Language to write the essay in (default: the model's choice)")
}

// Prepare runs before every command: loads .env and the config file, then
// sets up logging. It is the root command's PersistentPreRunE.
func Prepare(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	labels = core.DefaultPipelineConfig().Labels
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err = newLogger(os.Stderr, logLevel)
	if err != nil {
		return err
	}
	if path != "" {
		logger.Debug().Str("path", path).Msg("loaded config")
	}

	applyCommandConfig(cmd, cfg)

	if path == "" && cmd.Name() != "setup" && version.IsFirstRun() {
		version.PrintFirstRunNotice(os.Stdout)
	}
	return nil
}

// findConfigPath returns the config file to read, or "" if there is none.
func findConfigPath() string {
	if configFile != "" {
		return configFile
	}
	if _, err := os.Stat(version.ConfigFileName); err == nil {
		return version.ConfigFileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, version.ConfigFileName)
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}
	return ""
}

func readConfigFile(path string) (*configFileData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg configFileData
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// loadConfig reads the config file and applies its values wherever the
// matching flag was not set explicitly.
func loadConfig(cmd *cobra.Command) (*configFileData, string, error) {
	path := findConfigPath()
	if path == "" {
		return &configFileData{}, "", nil
	}

	cfg, err := readConfigFile(path)
	if err != nil {
		return nil, path, err
	}

	if !cmd.Flags().Changed("llm") && cfg.LLM != "" {
		llmProvider = cfg.LLM
	}
	if !cmd.Flags().Changed("model") && cfg.Model != "" {
		llmModel = cfg.Model
	}
	if !cmd.Flags().Changed("base-url") && cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		logLevel = cfg.LogLevel
	}
	if !cmd.Flags().Changed("outline-items") && cfg.OutlineItems > 0 {
		outlineItems = cfg.OutlineItems
	}
	if !cmd.Flags().Changed("language") && cfg.Language != "" {
		language = cfg.Language
	}
	if cfg.MaxTokens > 0 {
		maxTokens = cfg.MaxTokens
	}
	if cfg.Labels != nil {
		if cfg.Labels.TitlePrefix != "" {
			labels.TitlePrefix = cfg.Labels.TitlePrefix
		}
		if cfg.Labels.Outline != "" {
			labels.Outline = cfg.Labels.Outline
		}
	}

	return cfg, path, nil
}

// applyCommandConfig applies config values for flags that only some
// commands define.
func applyCommandConfig(cmd *cobra.Command, cfg *configFileData) {
	if cmd.Flags().Lookup("format") != nil && !cmd.Flags().Changed("format") && cfg.Format != "" {
		format = cfg.Format
	}
	if cmd.Flags().Lookup("out-dir") != nil && !cmd.Flags().Changed("out-dir") && cfg.OutDir != "" {
		outDir = cfg.OutDir
	}
}

// newLogger creates the console logger used by non-interactive commands.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q (use debug/info/warn/error)", level)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().
		Logger(), nil
}

// openLogFile opens the log file of the interactive app in the user cache dir.
func openLogFile() (*os.File, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	dir = filepath.Join(dir, "referat")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, "referat.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

func llmConfig() llm.Config {
	config := llm.DefaultConfig()
	config.Provider = providerName()
	config.Model = llmModel
	config.BaseURL = baseURL
	if maxTokens > 0 {
		config.MaxTokens = maxTokens
	}
	return config
}

// providerName returns the configured provider, "" for auto-detection.
func providerName() string {
	if llmProvider == "auto" {
		return ""
	}
	return llmProvider
}

func pipelineConfig() core.PipelineConfig {
	config := core.DefaultPipelineConfig()
	config.OutlineItems = outlineItems
	config.Language = language
	config.Labels = labels
	return config
}

// createClient builds the generation client for the configured provider.
func createClient(log zerolog.Logger) (*llm.Client, error) {
	config := llmConfig()
	adapter, err := llm.New(config.Provider, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM adapter: %w", err)
	}
	return llm.NewClient(adapter, log), nil
}
