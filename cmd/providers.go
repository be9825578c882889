package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dhabedank/referat/internal/llm"
	"github.com/dhabedank/referat/internal/tui"
)

// ProvidersCmd lists the LLM providers and their models.
var ProvidersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List LLM providers and their models",
	RunE:  runProviders,
}

func runProviders(cmd *cobra.Command, args []string) error {
	config := llmConfig()
	available := llm.ListAvailableAdapters(config)

	best := ""
	if adapter, err := llm.DetectBestAdapter(config); err == nil {
		best = adapter.Name()
	}

	for _, name := range llm.Providers {
		status := tui.ErrorStyle.Render("✗ unavailable")
		if slices.Contains(available, name) {
			status = tui.SuccessStyle.Render("✓ available")
		}
		line := fmt.Sprintf("%s  %s", tui.TitleStyle.Render(name), status)
		if name == best {
			line += "  " + tui.HelpStyle.Render("(auto)")
		}
		fmt.Println(line)

		for i, m := range llm.ModelsFor(name) {
			marker := " "
			if i == 0 {
				marker = "*"
			}
			fmt.Printf("  %s %-28s %s\n", marker, tui.ModelStyle.Render(m.ID), tui.HelpStyle.Render(m.Description))
		}
		fmt.Println()
	}

	fmt.Println(tui.HelpStyle.Render("* default model of the provider"))
	return nil
}
