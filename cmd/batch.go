package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dhabedank/referat/internal/core"
	"github.com/dhabedank/referat/internal/output"
	"github.com/dhabedank/referat/internal/tui"
)

var (
	topicsFile string
	outDir     string
	format     string
	failFast   bool
)

// DefaultTopics is the built-in topic list used when no topics are given.
var DefaultTopics = []string{
	"Периодический закон и периодическая система. Периодичность изменения свойств элементов в периодах и группах;",
	"Состав и строение атома. Радиоактивность;",
	"Катализ. Гомогенный и гетерогенный катализ. Катализаторы;",
	"Экологическое воздействие оксидов азота, нитратов и диоксида серы на окружающую среду;",
	"Проблемы охраны окружающей среды при производстве металлов;",
}

// BatchCmd generates one essay per topic without interaction.
var BatchCmd = &cobra.Command{
	Use:   "batch [topics...]",
	Short: "Generate one essay per topic",
	Long: `Generate an essay for every topic, one after another.

Each essay is built in three steps:
- an outline is requested for the topic
- every outline item is expanded into a section
- the document is assembled and saved as referat_<topic>.<format>

A failed topic is reported and skipped; the command exits non-zero if any
topic failed. Without arguments or --topics-file the built-in list is used.`,
	RunE: runBatch,
}

func init() {
	BatchCmd.Flags().StringVarP(&topicsFile, "topics-file", "f", "", "File with one topic per line, or a YAML list (.yaml/.yml)")
	BatchCmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "Directory for the generated documents")
	BatchCmd.Flags().StringVar(&format, "format", "docx", "Output format ("+strings.Join(output.Formats, "/")+")")
	BatchCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failed topic")
}

func runBatch(cmd *cobra.Command, args []string) error {
	topics, err := resolveTopics(args, topicsFile)
	if err != nil {
		return err
	}

	adapter, err := output.AdapterForFormat(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	client, err := createClient(logger)
	if err != nil {
		return err
	}
	fmt.Printf("Using LLM: %s  %s\n", client.Name(), tui.ModelStyle.Render(client.Model()))
	fmt.Printf("Topics: %d  Output: %s (%s)\n\n", len(topics), outDir, adapter.Name())

	pipeline := core.NewPipeline(client, output.Open, pipelineConfig(), logger)
	reporter := tui.NewReporter(os.Stdout, client.Model(), client.Usage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report := core.RunBatch(ctx, pipeline, topics, core.BatchOptions{
		PathFor: func(topic string) string {
			return filepath.Join(outDir, output.TopicFilename(topic, adapter.Extension()))
		},
		FailFast: failFast,
		Started:  reporter.TopicStarted,
		Observe:  reporter.Observe,
	})

	fmt.Print(reporter.Summary(report))
	for _, result := range report.Results {
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "  %s %s: %v\n", tui.ErrorStyle.Render("✗"), result.Topic, result.Err)
		}
	}

	return report.Err()
}

// resolveTopics picks the topics from arguments, the topics file or the
// built-in list, in that order.
func resolveTopics(args []string, file string) ([]string, error) {
	var topics []string
	if file != "" {
		fromFile, err := readTopicsFile(file)
		if err != nil {
			return nil, err
		}
		topics = append(topics, fromFile...)
	}
	for _, arg := range args {
		if t := strings.TrimSpace(arg); t != "" {
			topics = append(topics, t)
		}
	}

	if len(topics) > 0 {
		return topics, nil
	}
	if file != "" {
		return nil, fmt.Errorf("no topics found in %s", file)
	}
	return DefaultTopics, nil
}

// readTopicsFile reads topics from a YAML list or from a text file with one
// topic per line; blank lines and lines starting with # are skipped.
func readTopicsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open topics file: %w", err)
	}
	defer f.Close()

	var topics []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var list []string
		if err := yaml.NewDecoder(f).Decode(&list); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse topics file: %w", err)
		}
		for _, t := range list {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}
	default:
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			topics = append(topics, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read topics file: %w", err)
		}
	}

	return topics, nil
}
